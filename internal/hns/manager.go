// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

//go:build linux
// +build linux

package hns

import (
	"net"
)

// Surface is the Host Network Surface contract the exposure engine drives.
// Every method must be safe to call when the target state already holds.
type Surface interface {
	EnsureVRF(name string, table int) error
	EnsureDummyInVRF(device, vrf string) error
	EnsureARPNDPEnabled(bridge string, index int) error
	EnsureVLANDevice(bridge string, vlan int) error
	EnsureRoutingTable(bridge string) (int, error)

	AddAddresses(device string, ips []string) error
	RemoveAddresses(device string, ips []string) error
	EnumerateExposed(device string) (map[string]bool, error)
	EnumerateExposedInNetwork(device string, network *net.IPNet) (map[string]bool, error)
	DeleteLeftoverAddresses(device string, kept map[string]bool) error

	AddRule(dest, bridge string, table int, lladdr string) error
	RemoveRule(dest, bridge string, table int, lladdr string) error
	EnumerateRules(tables []int) (map[string]RuleInfo, error)
	DeleteLeftoverRules(tables []int, kept map[string]RuleInfo) error

	AddRoute(bridge, dest string, table, vlan int, mask, via string) error
	RemoveRoute(bridge, dest string, table, vlan int, mask, via string) error
	DeleteLeftoverBridgeRoutes(tables map[string]int, kept map[string]bool) error

	AddNDPProxy(ip, bridge string, vlan int) error
	RemoveNDPProxy(ip, bridge string, vlan int, force bool) error
}

// RuleInfo is a snapshot of a policy rule keyed by destination CIDR.
type RuleInfo struct {
	Dest  string
	Table int
}

// Manager is the production Surface, backed by a Netlinker and a
// SystemController for sysctl toggles.
type Manager struct {
	nl  Netlinker
	sys SystemController

	deviceName string

	// routingTables memoizes bridge -> allocated table id across the
	// lifetime of the process; table assignments must persist across
	// sync passes even though per-bridge route bookkeeping is reset.
	routingTables map[string]int
	nextTable     int

	ndpResponders *ndpResponderSet
}

// NewManager constructs a Manager using the real netlink and sysctl
// backends.
func NewManager(deviceName string) *Manager {
	return NewManagerWithDeps(RealNetlinker{}, RealSystemController{}, deviceName)
}

// NewManagerWithDeps constructs a Manager with injected dependencies, for
// testing.
func NewManagerWithDeps(nl Netlinker, sys SystemController, deviceName string) *Manager {
	return &Manager{
		nl:            nl,
		sys:           sys,
		deviceName:    deviceName,
		routingTables: make(map[string]int),
		nextTable:     10201,
		ndpResponders: newNDPResponderSet(),
	}
}
