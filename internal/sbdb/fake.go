// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

package sbdb

import "sync"

// Fake is an in-memory southbound view and event source used throughout
// the exposure engine's test suite. Tests populate its fields directly to
// describe a scenario, then call Emit to push an event.
type Fake struct {
	mu sync.Mutex

	PortsByChassis   map[string][]Row
	CRLRPByChassis   map[string][]Row
	ProviderNetworks map[string]bool
	FIPs             map[string]FIPEntry
	NetworkNames     map[string]NetworkInfo
	NetworkTags      map[string]int
	LRPsByRouter     map[string][]Row
	CRLRPNAT         map[string]NATInfo
	PortDatapaths    map[string]string
	PortsByDatapath  map[string][]Row
	RouterGateways   map[string]string // "datapath|chassis" -> cr-lrp name
	PortChassis      map[string]string
	LRPForDatapath   map[string]string

	events chan Event
}

type FIPEntry struct {
	FIP      string
	Datapath string
}

type NetworkInfo struct {
	Name    string
	VLANTag int
	HasTag  bool
}

type NATInfo struct {
	IPs      []string
	PatchRow Row
}

// NewFake returns an empty Fake with a buffered event channel.
func NewFake() *Fake {
	return &Fake{
		PortsByChassis:   make(map[string][]Row),
		CRLRPByChassis:   make(map[string][]Row),
		ProviderNetworks: make(map[string]bool),
		FIPs:             make(map[string]FIPEntry),
		NetworkNames:     make(map[string]NetworkInfo),
		NetworkTags:      make(map[string]int),
		LRPsByRouter:     make(map[string][]Row),
		CRLRPNAT:         make(map[string]NATInfo),
		PortDatapaths:    make(map[string]string),
		PortsByDatapath:  make(map[string][]Row),
		RouterGateways:   make(map[string]string),
		PortChassis:      make(map[string]string),
		LRPForDatapath:   make(map[string]string),
		events:           make(chan Event, 64),
	}
}

func (f *Fake) Events() <-chan Event { return f.events }

// Emit pushes an event onto the stream; tests drive the engine with it.
func (f *Fake) Emit(e Event) { f.events <- e }

// Close closes the event channel, signalling end of stream.
func (f *Fake) Close() { close(f.events) }

func (f *Fake) PortsOnChassis(chassis string) ([]Row, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.PortsByChassis[chassis], nil
}

func (f *Fake) CRLRPPortsOnChassis(chassis string) ([]Row, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.CRLRPByChassis[chassis], nil
}

func (f *Fake) IsProviderNetwork(datapath string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.ProviderNetworks[datapath], nil
}

func (f *Fake) FIPAssociated(logicalPort string) (string, string, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	e, ok := f.FIPs[logicalPort]
	return e.FIP, e.Datapath, ok, nil
}

func (f *Fake) NetworkNameAndTag(datapath string) (string, int, bool, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	info, ok := f.NetworkNames[datapath]
	if !ok {
		return "", 0, false, false, nil
	}
	return info.Name, info.VLANTag, info.HasTag, true, nil
}

func (f *Fake) NetworkVLANTagByName(name string) (int, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	tag, ok := f.NetworkTags[name]
	return tag, ok, nil
}

func (f *Fake) LRPPortsForRouter(routerDatapath string) ([]Row, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.LRPsByRouter[routerDatapath], nil
}

func (f *Fake) CRLRPNATAddressesInfo(crLRPPort string) ([]string, Row, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	info, ok := f.CRLRPNAT[crLRPPort]
	return info.IPs, info.PatchRow, ok, nil
}

func (f *Fake) PortDatapath(portName string) (string, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	dp, ok := f.PortDatapaths[portName]
	return dp, ok, nil
}

func (f *Fake) PortsOnDatapath(datapath string) ([]Row, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.PortsByDatapath[datapath], nil
}

func (f *Fake) IsRouterGatewayOnChassis(datapath, chassis string) (string, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	crLRP, ok := f.RouterGateways[datapath+"|"+chassis]
	return crLRP, ok, nil
}

func (f *Fake) IsPortOnChassis(name, chassis string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.PortChassis[name] == chassis, nil
}

func (f *Fake) LRPPortForDatapath(datapath string) (string, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	lrp, ok := f.LRPForDatapath[datapath]
	return lrp, ok, nil
}
