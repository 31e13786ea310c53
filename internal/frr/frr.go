// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

// Package frr is the agent's seam onto the routing daemon: the single
// bootstrap call that leaks a VRF into a BGP instance so addresses assigned
// inside that VRF get originated. Everything past that call is out of
// scope - the daemon's own configuration and peering are managed
// independently of this agent.
package frr

import (
	"fmt"
	"os/exec"
	"strings"

	agenterrors "github.com/ovn-bgp/ovn-bgp-agent/internal/errors"
)

// Leaker leaks a VRF into a BGP autonomous system.
type Leaker interface {
	VRFLeak(vrf string, as uint32, routerID string) error
}

// VtyshLeaker issues the leak as a vtysh configuration script, the same
// exec.Command-wrapping idiom used elsewhere in this codebase for external
// CLI tools.
type VtyshLeaker struct {
	// Vtysh is the binary name or path; tests substitute a fake.
	Vtysh string
}

// NewVtyshLeaker returns a Leaker using the vtysh found on PATH.
func NewVtyshLeaker() *VtyshLeaker {
	return &VtyshLeaker{Vtysh: "vtysh"}
}

func (l *VtyshLeaker) VRFLeak(vrf string, as uint32, routerID string) error {
	script := fmt.Sprintf(`
configure terminal
router bgp %d vrf %s
 bgp router-id %s
 no bgp ebgp-requires-policy
address-family ipv4 unicast
 redistribute connected
exit-address-family
address-family ipv6 unicast
 redistribute connected
exit-address-family
exit
router bgp %d
 address-family ipv4 unicast
  import vrf %s
 exit-address-family
 address-family ipv6 unicast
  import vrf %s
 exit-address-family
exit
end
`, as, vrf, routerID, as, vrf, vrf)

	cmd := exec.Command(l.Vtysh, "-c", script)
	out, err := cmd.CombinedOutput()
	if err != nil {
		return agenterrors.Wrapf(err, agenterrors.KindUnavailable, "frr: vrf leak %s: %s", vrf, strings.TrimSpace(string(out)))
	}
	return nil
}

// Fake is an in-memory Leaker used by tests.
type Fake struct {
	Leaked []FakeLeak
}

// FakeLeak records one VRFLeak call.
type FakeLeak struct {
	VRF      string
	AS       uint32
	RouterID string
}

func (f *Fake) VRFLeak(vrf string, as uint32, routerID string) error {
	f.Leaked = append(f.Leaked, FakeLeak{VRF: vrf, AS: as, RouterID: routerID})
	return nil
}
