// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

package hns

import "net"

// Fake is an in-memory Surface used by the exposure engine's test suite.
// Unlike Manager it carries no build tag and needs no real netlink socket,
// so it can run anywhere the rest of the engine's tests run.
type Fake struct {
	VRFs          map[string]int
	DummyMembers  map[string]string // device -> vrf
	ARPNDP        map[string]bool
	VLANDevices   map[string]int
	RoutingTables map[string]int
	nextTable     int

	Addresses map[string]map[string]bool // device -> ip set
	Rules     map[string]RuleInfo        // dest -> rule
	Routes    map[string]routeEntry      // dest -> route
	NDPProxy  map[string]bool            // ip -> present
}

type routeEntry struct {
	Bridge string
	Table  int
	Vlan   int
	Mask   string
	Via    string
}

// NewFake returns an empty Fake.
func NewFake() *Fake {
	return &Fake{
		VRFs:          make(map[string]int),
		DummyMembers:  make(map[string]string),
		ARPNDP:        make(map[string]bool),
		VLANDevices:   make(map[string]int),
		RoutingTables: make(map[string]int),
		nextTable:     10201,
		Addresses:     make(map[string]map[string]bool),
		Rules:         make(map[string]RuleInfo),
		Routes:        make(map[string]routeEntry),
		NDPProxy:      make(map[string]bool),
	}
}

func (f *Fake) EnsureVRF(name string, table int) error {
	f.VRFs[name] = table
	return nil
}

func (f *Fake) EnsureDummyInVRF(device, vrf string) error {
	f.DummyMembers[device] = vrf
	return nil
}

func (f *Fake) EnsureARPNDPEnabled(bridge string, index int) error {
	f.ARPNDP[bridge] = true
	return nil
}

func (f *Fake) EnsureVLANDevice(bridge string, vlan int) error {
	f.VLANDevices[bridge] = vlan
	return nil
}

func (f *Fake) EnsureRoutingTable(bridge string) (int, error) {
	if t, ok := f.RoutingTables[bridge]; ok {
		return t, nil
	}
	t := f.nextTable
	f.nextTable++
	f.RoutingTables[bridge] = t
	return t, nil
}

func (f *Fake) AddAddresses(device string, ips []string) error {
	set, ok := f.Addresses[device]
	if !ok {
		set = make(map[string]bool)
		f.Addresses[device] = set
	}
	for _, ip := range ips {
		set[bareIP(ip)] = true
	}
	return nil
}

func (f *Fake) RemoveAddresses(device string, ips []string) error {
	set, ok := f.Addresses[device]
	if !ok {
		return nil
	}
	for _, ip := range ips {
		delete(set, bareIP(ip))
	}
	return nil
}

func (f *Fake) EnumerateExposed(device string) (map[string]bool, error) {
	out := make(map[string]bool)
	for ip := range f.Addresses[device] {
		out[ip] = true
	}
	return out, nil
}

func (f *Fake) EnumerateExposedInNetwork(device string, network *net.IPNet) (map[string]bool, error) {
	out := make(map[string]bool)
	for ip := range f.Addresses[device] {
		if network.Contains(net.ParseIP(ip)) {
			out[ip] = true
		}
	}
	return out, nil
}

func (f *Fake) DeleteLeftoverAddresses(device string, kept map[string]bool) error {
	set, ok := f.Addresses[device]
	if !ok {
		return nil
	}
	for ip := range set {
		if !kept[ip] {
			delete(set, ip)
		}
	}
	return nil
}

func (f *Fake) AddRule(dest, bridge string, table int, lladdr string) error {
	f.Rules[bareIP(dest)] = RuleInfo{Dest: bareIP(dest), Table: table}
	return nil
}

func (f *Fake) RemoveRule(dest, bridge string, table int, lladdr string) error {
	delete(f.Rules, bareIP(dest))
	return nil
}

func (f *Fake) EnumerateRules(tables []int) (map[string]RuleInfo, error) {
	wanted := make(map[int]bool, len(tables))
	for _, t := range tables {
		wanted[t] = true
	}
	out := make(map[string]RuleInfo)
	for dest, r := range f.Rules {
		if wanted[r.Table] {
			out[dest] = r
		}
	}
	return out, nil
}

func (f *Fake) DeleteLeftoverRules(tables []int, kept map[string]RuleInfo) error {
	wanted := make(map[int]bool, len(tables))
	for _, t := range tables {
		wanted[t] = true
	}
	for dest, r := range f.Rules {
		if !wanted[r.Table] {
			continue
		}
		if _, ok := kept[dest]; ok {
			continue
		}
		delete(f.Rules, dest)
	}
	return nil
}

func (f *Fake) AddRoute(bridge, dest string, table, vlan int, mask, via string) error {
	f.Routes[bareIP(dest)] = routeEntry{Bridge: bridge, Table: table, Vlan: vlan, Mask: mask, Via: via}
	return nil
}

func (f *Fake) RemoveRoute(bridge, dest string, table, vlan int, mask, via string) error {
	delete(f.Routes, bareIP(dest))
	return nil
}

func (f *Fake) DeleteLeftoverBridgeRoutes(tables map[string]int, kept map[string]bool) error {
	wanted := make(map[int]bool, len(tables))
	for _, t := range tables {
		wanted[t] = true
	}
	for dest, r := range f.Routes {
		if !wanted[r.Table] {
			continue
		}
		if kept[dest] {
			continue
		}
		delete(f.Routes, dest)
	}
	return nil
}

func (f *Fake) AddNDPProxy(ip, bridge string, vlan int) error {
	f.NDPProxy[bareIP(ip)] = true
	return nil
}

func (f *Fake) RemoveNDPProxy(ip, bridge string, vlan int, force bool) error {
	if force {
		delete(f.NDPProxy, bareIP(ip))
	}
	return nil
}

func bareIP(ip string) string {
	for i, c := range ip {
		if c == '/' {
			return ip[:i]
		}
	}
	return ip
}
