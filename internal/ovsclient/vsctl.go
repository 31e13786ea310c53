// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

package ovsclient

import (
	"fmt"
	"os/exec"
	"strconv"
	"strings"

	agenterrors "github.com/ovn-bgp/ovn-bgp-agent/internal/errors"
)

// OVSVSwitchClient backs Client with the ovs-vsctl/ovs-ofctl command-line
// tools, the same way the rest of this codebase wraps external CLI tools
// (conntrack) rather than re-implementing their wire protocols.
type OVSVSwitchClient struct {
	// VSCtl and OFCtl let tests substitute a fake binary path.
	VSCtl string
	OFCtl string
}

// NewOVSVSwitchClient returns a client using the ovs-vsctl/ovs-ofctl found
// on PATH.
func NewOVSVSwitchClient() *OVSVSwitchClient {
	return &OVSVSwitchClient{VSCtl: "ovs-vsctl", OFCtl: "ovs-ofctl"}
}

func (c *OVSVSwitchClient) vsctl(args ...string) (string, error) {
	out, err := exec.Command(c.VSCtl, args...).CombinedOutput()
	if err != nil {
		return "", agenterrors.Wrapf(err, agenterrors.KindUnavailable, "ovsclient: ovs-vsctl %s: %s", strings.Join(args, " "), string(out))
	}
	return strings.TrimSpace(string(out)), nil
}

func (c *OVSVSwitchClient) ofctl(args ...string) (string, error) {
	out, err := exec.Command(c.OFCtl, args...).CombinedOutput()
	if err != nil {
		return "", agenterrors.Wrapf(err, agenterrors.KindUnavailable, "ovsclient: ovs-ofctl %s: %s", strings.Join(args, " "), string(out))
	}
	return strings.TrimSpace(string(out)), nil
}

func (c *OVSVSwitchClient) ChassisName() (string, error) {
	out, err := c.vsctl("get", "Open_vSwitch", ".", "external_ids:system-id")
	if err != nil {
		return "", err
	}
	return strings.Trim(out, `"`), nil
}

func (c *OVSVSwitchClient) OVNRemote() (string, error) {
	out, err := c.vsctl("get", "Open_vSwitch", ".", "external_ids:ovn-remote")
	if err != nil {
		return "", err
	}
	return strings.Trim(out, `"`), nil
}

func (c *OVSVSwitchClient) BridgeMappings() (map[string]string, error) {
	out, err := c.vsctl("get", "Open_vSwitch", ".", "external_ids:ovn-bridge-mappings")
	if err != nil {
		return nil, err
	}
	return ParseBridgeMappings(strings.Trim(out, `"`)), nil
}

func (c *OVSVSwitchClient) EnsureFlows(bridge string, want []FlowRule) error {
	have, err := c.flowsOnBridge(bridge)
	if err != nil {
		return err
	}
	existing := make(map[string]bool, len(have))
	for _, f := range have {
		existing[flowKey(f)] = true
	}
	for _, f := range want {
		if existing[flowKey(f)] {
			continue
		}
		spec := fmt.Sprintf("cookie=0x%x,%s,actions=%s", f.Cookie, f.Match, f.Actions)
		if _, err := c.ofctl("add-flow", bridge, spec); err != nil {
			return err
		}
	}
	return nil
}

func (c *OVSVSwitchClient) FlowsByCookie(bridge string, cookie uint64) ([]FlowRule, error) {
	all, err := c.flowsOnBridge(bridge)
	if err != nil {
		return nil, err
	}
	var out []FlowRule
	for _, f := range all {
		if f.Cookie == cookie {
			out = append(out, f)
		}
	}
	return out, nil
}

func (c *OVSVSwitchClient) RemoveFlows(bridge string, flows []FlowRule) error {
	for _, f := range flows {
		spec := fmt.Sprintf("cookie=0x%x/-1,%s", f.Cookie, f.Match)
		if _, err := c.ofctl("del-flows", bridge, spec); err != nil {
			return err
		}
	}
	return nil
}

// flowsOnBridge parses `ovs-ofctl dump-flows <bridge>` output. Each line
// looks like: "cookie=0x1f007, duration=12.3s, table=0, n_packets=0,
// n_bytes=0, priority=100,in_port=1 actions=output:2".
func (c *OVSVSwitchClient) flowsOnBridge(bridge string) ([]FlowRule, error) {
	out, err := c.ofctl("dump-flows", bridge)
	if err != nil {
		return nil, err
	}

	var flows []FlowRule
	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "NXST_FLOW") {
			continue
		}
		fields := strings.Split(line, ", ")
		var cookie uint64
		var match, actions string
		for _, f := range fields {
			switch {
			case strings.HasPrefix(f, "cookie="):
				v := strings.TrimPrefix(f, "cookie=")
				v = strings.TrimPrefix(v, "0x")
				cookie, _ = strconv.ParseUint(v, 16, 64)
			default:
				if idx := strings.Index(f, "actions="); idx >= 0 {
					match = strings.TrimSpace(f[:idx])
					actions = f[idx+len("actions="):]
				}
			}
		}
		flows = append(flows, FlowRule{Cookie: cookie, Bridge: bridge, Match: match, Actions: actions})
	}
	return flows, nil
}

func flowKey(f FlowRule) string {
	return fmt.Sprintf("%d|%s|%s", f.Cookie, f.Match, f.Actions)
}
