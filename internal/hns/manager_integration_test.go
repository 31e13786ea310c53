// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

//go:build linux
// +build linux

package hns

import (
	"os"
	"testing"

	"github.com/ovn-bgp/ovn-bgp-agent/internal/testutil"
)

// TestManager_RealKernel exercises Manager against the real netlink stack:
// VRF creation, dummy enslavement, and address assignment. It needs root
// and a disposable network namespace, so it only runs under
// OVN_BGP_AGENT_VM_TEST.
func TestManager_RealKernel(t *testing.T) {
	testutil.RequireVM(t)
	if os.Getuid() != 0 {
		t.Skip("requires root to create VRF and dummy devices")
	}

	m := NewManager("bgp-nic-it")
	const vrf = "bgp-vrf-it"
	const table = 10299

	if err := m.EnsureVRF(vrf, table); err != nil {
		t.Fatalf("EnsureVRF: %v", err)
	}
	if err := m.EnsureDummyInVRF("bgp-nic-it", vrf); err != nil {
		t.Fatalf("EnsureDummyInVRF: %v", err)
	}
	if err := m.AddAddresses("bgp-nic-it", []string{"198.51.100.5/32"}); err != nil {
		t.Fatalf("AddAddresses: %v", err)
	}
	exposed, err := m.EnumerateExposed("bgp-nic-it")
	if err != nil {
		t.Fatalf("EnumerateExposed: %v", err)
	}
	if !exposed["198.51.100.5"] {
		t.Fatalf("expected 198.51.100.5 to be exposed, got %v", exposed)
	}
	if err := m.RemoveAddresses("bgp-nic-it", []string{"198.51.100.5/32"}); err != nil {
		t.Fatalf("RemoveAddresses: %v", err)
	}
}
