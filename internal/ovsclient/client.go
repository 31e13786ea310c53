// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

// Package ovsclient is the agent's seam onto the local virtual-switch
// database and its flow tables - an out-of-scope collaborator per the
// design: the agent never speaks its wire protocol directly, only the
// narrow surface this package's Client interface exposes.
package ovsclient

import "strings"

// FlowRule is a steering rule the agent owns on a provider bridge, tagged
// with Cookie so a later sync can tell its own rules apart from rules
// other agents or the operator installed by hand.
type FlowRule struct {
	Cookie  uint64
	Bridge  string
	Match   string
	Actions string
}

// Client is the local virtual-switch database and flow-table surface the
// exposure engine depends on.
type Client interface {
	// ChassisName returns this host's chassis identifier as known to the
	// southbound database.
	ChassisName() (string, error)

	// OVNRemote returns the southbound database connection string this
	// host was configured to attach to.
	OVNRemote() (string, error)

	// BridgeMappings returns the network-name -> bridge mapping, e.g.
	// {"physnet1": "br-ex"}, decoded from the "net1:br-ex,net2:br-ex2"
	// configuration string.
	BridgeMappings() (map[string]string, error)

	// EnsureFlows installs want, skipping any that already exist.
	EnsureFlows(bridge string, want []FlowRule) error

	// FlowsByCookie returns the flows currently installed on bridge that
	// carry cookie.
	FlowsByCookie(bridge string, cookie uint64) ([]FlowRule, error)

	// RemoveFlows deletes the given flows from bridge.
	RemoveFlows(bridge string, flows []FlowRule) error
}

// ParseBridgeMappings decodes the "net1:br-ex,net2:br-ex2" configuration
// string format used by the local virtual switch's own bridge-mapping
// option.
func ParseBridgeMappings(s string) map[string]string {
	out := make(map[string]string)
	for _, pair := range strings.Split(s, ",") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		kv := strings.SplitN(pair, ":", 2)
		if len(kv) != 2 {
			continue
		}
		out[kv[0]] = kv[1]
	}
	return out
}
