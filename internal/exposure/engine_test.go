// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

package exposure

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ovn-bgp/ovn-bgp-agent/internal/frr"
	"github.com/ovn-bgp/ovn-bgp-agent/internal/hns"
	"github.com/ovn-bgp/ovn-bgp-agent/internal/logging"
	"github.com/ovn-bgp/ovn-bgp-agent/internal/ovsclient"
	"github.com/ovn-bgp/ovn-bgp-agent/internal/sbdb"
)

const testChassis = "chassis-1"

type harness struct {
	engine *Engine
	sb     *sbdb.Fake
	hns    *hns.Fake
	ovs    *ovsclient.Fake
}

func newHarness(t *testing.T, exposeTenant bool) *harness {
	t.Helper()
	log, err := logging.New("engine", logging.Config{Level: logging.LevelDebug})
	require.NoError(t, err)

	sbFake := sbdb.NewFake()
	hnsFake := hns.NewFake()
	ovsFake := ovsclient.NewFake(testChassis, "tcp:127.0.0.1:6642")

	cfg := Config{
		Chassis:              testChassis,
		DeviceName:           "bgp-nic",
		VRFName:              "bgp-vrf",
		VRFTable:             10200,
		OVSFlowCookie:        0x1b6,
		ExposeTenantNetworks: exposeTenant,
	}
	e := New(cfg, sbFake, hnsFake, ovsFake, &frr.Fake{}, log)
	// The engine reads bridge mappings only at Sync; share the fake's map so
	// mappings a test adds to h.ovs.Bridges are loaded as a sync would load them.
	e.bridgeMappings = ovsFake.Bridges
	return &harness{engine: e, sb: sbFake, hns: hnsFake, ovs: ovsFake}
}

// Scenario 1: provider VM bind.
func TestExposePortBinding_ProviderVM(t *testing.T) {
	h := newHarness(t, false)
	h.ovs.Bridges["physnet1"] = "br-ex"
	h.sb.NetworkNames["dp-provider"] = sbdb.NetworkInfo{Name: "physnet1"}
	h.sb.ProviderNetworks["dp-provider"] = true

	row := sbdb.Row{
		Type:        sbdb.PortTypeVM,
		Datapath:    "dp-provider",
		LogicalPort: "vm1",
		MAC:         []string{"fa:16:3e:aa:bb:cc 10.0.0.5"},
		Chassis:     testChassis,
	}

	h.engine.ExposePortBinding(row)

	table := h.hns.RoutingTables["br-ex"]
	assert.True(t, h.hns.Addresses["bgp-nic"]["10.0.0.5"])
	assert.Equal(t, table, h.hns.Rules["10.0.0.5"].Table)
	route, ok := h.hns.Routes["10.0.0.5"]
	require.True(t, ok)
	assert.Equal(t, "br-ex", route.Bridge)
	assert.Equal(t, table, route.Table)
}

// Scenario 2: floating IP set.
func TestExposeFIP(t *testing.T) {
	h := newHarness(t, false)
	h.ovs.Bridges["physnet1"] = "br-ex"
	h.sb.NetworkNames["dp-fip"] = sbdb.NetworkInfo{Name: "physnet1"}

	h.engine.ExposeFIP("192.0.2.10", "dp-fip")

	assert.True(t, h.hns.Addresses["bgp-nic"]["192.0.2.10"])
	table := h.hns.RoutingTables["br-ex"]
	assert.Equal(t, table, h.hns.Rules["192.0.2.10"].Table)
	route, ok := h.hns.Routes["192.0.2.10"]
	require.True(t, ok)
	assert.Equal(t, "br-ex", route.Bridge)
}

// Scenario 3: CR-LRP with IPv6 gateway.
func TestExposeCRLRP_IPv6Gateway(t *testing.T) {
	h := newHarness(t, false)
	h.ovs.Bridges["physnet2"] = "br-ex2"
	h.sb.NetworkNames["dp-patch"] = sbdb.NetworkInfo{Name: "physnet2", VLANTag: 100, HasTag: true}

	crLRP := sbdb.Row{
		Type:        sbdb.PortTypeChassisRedirect,
		Datapath:    "dp-router",
		LogicalPort: "cr-lrp-1",
		MAC:         []string{"fa:16:3e:11:22:33 2001:db8::1/64"},
		Chassis:     testChassis,
	}
	h.sb.CRLRPNAT["cr-lrp-1"] = sbdb.NATInfo{
		PatchRow: sbdb.Row{Datapath: "dp-patch"},
	}

	h.engine.ExposePortBinding(crLRP)

	assert.True(t, h.hns.Addresses["bgp-nic"]["2001:db8::1"])
	table := h.hns.RoutingTables["br-ex2"]
	rule, ok := h.hns.Rules["2001:db8::1"]
	require.True(t, ok)
	assert.Equal(t, table, rule.Table)
	route, ok := h.hns.Routes["2001:db8::1"]
	require.True(t, ok)
	assert.Equal(t, 100, route.Vlan)
	assert.True(t, h.hns.NDPProxy["2001:db8::1"])

	info, tracked := h.engine.localCRLRPs["cr-lrp-1"]
	require.True(t, tracked)
	assert.Equal(t, "dp-router", info.RouterDatapath)
	assert.Equal(t, "dp-patch", info.ProviderDatapath)
}

// Scenario 4: tenant subnet attach.
func TestExposeSubnet_TenantAttach(t *testing.T) {
	h := newHarness(t, true)
	h.ovs.Bridges["physnet2"] = "br-ex2"
	h.sb.NetworkNames["dp-patch"] = sbdb.NetworkInfo{Name: "physnet2"}

	crLRP := sbdb.Row{
		Type:        sbdb.PortTypeChassisRedirect,
		Datapath:    "dp-router",
		LogicalPort: "cr-lrp-1",
		MAC:         []string{"fa:16:3e:11:22:33 2001:db8::1/64"},
		Chassis:     testChassis,
	}
	h.sb.CRLRPNAT["cr-lrp-1"] = sbdb.NATInfo{PatchRow: sbdb.Row{Datapath: "dp-patch"}}
	h.sb.LRPsByRouter["dp-router"] = nil // no distributed LRPs at CR-LRP exposure time
	h.engine.ExposePortBinding(crLRP)

	lrp := sbdb.Row{
		Type:        "router-port",
		Datapath:    "dp-tenant",
		LogicalPort: "lrp-1",
		MAC:         []string{"fa:16:3e:44:55:66 2001:db8:1::1/64"},
	}
	h.sb.PortsByDatapath["dp-tenant"] = []sbdb.Row{
		{Type: sbdb.PortTypeVM, LogicalPort: "vm2", Datapath: "dp-tenant", MAC: []string{"fa:16:3e:77:88:99 2001:db8:1::a"}},
	}

	h.engine.ExposeSubnet(lrp, "dp-router")

	table := h.hns.RoutingTables["br-ex2"]
	rule, ok := h.hns.Rules["2001:db8:1::1"]
	require.True(t, ok)
	assert.Equal(t, table, rule.Table)
	route, ok := h.hns.Routes["2001:db8:1::"]
	require.True(t, ok)
	assert.Equal(t, "2001:db8::1", route.Via)
	assert.True(t, h.hns.Addresses["bgp-nic"]["2001:db8:1::a"])
}

// Scenario 5: stale address removed on restart sync.
func TestSync_RemovesStaleAddress(t *testing.T) {
	h := newHarness(t, false)
	h.ovs.Bridges["physnet1"] = "br-ex" // first bridge seen allocates table 10201
	h.hns.Addresses["bgp-nic"] = map[string]bool{"10.0.0.99": true}
	h.hns.Rules["10.0.0.99"] = hns.RuleInfo{Dest: "10.0.0.99", Table: 10201}

	err := h.engine.Sync()
	require.NoError(t, err)

	assert.False(t, h.hns.Addresses["bgp-nic"]["10.0.0.99"])
	_, stillThere := h.hns.Rules["10.0.0.99"]
	assert.False(t, stillThere)
}

// Scenario 6: withdraw a CR-LRP with a sibling on the same bridge.
func TestWithdrawCRLRP_SiblingPreservesNDPProxy(t *testing.T) {
	h := newHarness(t, false)
	h.ovs.Bridges["physnet2"] = "br-ex2"
	h.sb.NetworkNames["dp-patch"] = sbdb.NetworkInfo{Name: "physnet2"}

	first := sbdb.Row{
		Type: sbdb.PortTypeChassisRedirect, Datapath: "dp-router-a", LogicalPort: "cr-lrp-a",
		MAC: []string{"fa:16:3e:11:22:33 2001:db8::1/64"}, Chassis: testChassis,
	}
	second := sbdb.Row{
		Type: sbdb.PortTypeChassisRedirect, Datapath: "dp-router-b", LogicalPort: "cr-lrp-b",
		MAC: []string{"fa:16:3e:11:22:44 2001:db8::2/64"}, Chassis: testChassis,
	}
	h.sb.CRLRPNAT["cr-lrp-a"] = sbdb.NATInfo{PatchRow: sbdb.Row{Datapath: "dp-patch"}}
	h.sb.CRLRPNAT["cr-lrp-b"] = sbdb.NATInfo{PatchRow: sbdb.Row{Datapath: "dp-patch"}}

	h.engine.ExposePortBinding(first)
	h.engine.ExposePortBinding(second)

	h.engine.WithdrawPortBinding(first)

	assert.False(t, h.hns.Addresses["bgp-nic"]["2001:db8::1"])
	assert.True(t, h.hns.Addresses["bgp-nic"]["2001:db8::2"])
	assert.True(t, h.hns.NDPProxy["2001:db8::2"], "sibling's proxy entry must survive")
	_, tracked := h.engine.localCRLRPs["cr-lrp-a"]
	assert.False(t, tracked)
	_, stillTracked := h.engine.localCRLRPs["cr-lrp-b"]
	assert.True(t, stillTracked)
}

// P2: applying the same event twice yields the same state as once.
func TestExposePortBinding_Idempotent(t *testing.T) {
	h := newHarness(t, false)
	h.ovs.Bridges["physnet1"] = "br-ex"
	h.sb.NetworkNames["dp-provider"] = sbdb.NetworkInfo{Name: "physnet1"}
	h.sb.ProviderNetworks["dp-provider"] = true

	row := sbdb.Row{
		Type: sbdb.PortTypeVM, Datapath: "dp-provider", LogicalPort: "vm1",
		MAC: []string{"fa:16:3e:aa:bb:cc 10.0.0.5"}, Chassis: testChassis,
	}
	h.engine.ExposePortBinding(row)
	h.engine.ExposePortBinding(row)

	assert.Len(t, h.hns.Addresses["bgp-nic"], 1)
}

// P3: expose followed by withdraw restores prior kernel state (the table
// allocation itself persists).
func TestExposeThenWithdraw_RestoresState(t *testing.T) {
	h := newHarness(t, false)
	h.ovs.Bridges["physnet1"] = "br-ex"
	h.sb.NetworkNames["dp-provider"] = sbdb.NetworkInfo{Name: "physnet1"}
	h.sb.ProviderNetworks["dp-provider"] = true

	row := sbdb.Row{
		Type: sbdb.PortTypeVM, Datapath: "dp-provider", LogicalPort: "vm1",
		MAC: []string{"fa:16:3e:aa:bb:cc 10.0.0.5"}, Chassis: testChassis,
	}
	h.engine.ExposePortBinding(row)
	h.engine.WithdrawPortBinding(row)

	assert.Empty(t, h.hns.Addresses["bgp-nic"])
	assert.Empty(t, h.hns.Rules)
	assert.Empty(t, h.hns.Routes)
	assert.Contains(t, h.hns.RoutingTables, "br-ex")
}

// A CR-LRP's distributed NAT addresses are exposed alongside its own
// gateway address, and both are withdrawn together.
func TestExposeCRLRP_NATAddresses(t *testing.T) {
	h := newHarness(t, false)
	h.ovs.Bridges["physnet2"] = "br-ex2"
	h.sb.NetworkNames["dp-patch"] = sbdb.NetworkInfo{Name: "physnet2"}

	crLRP := sbdb.Row{
		Type:        sbdb.PortTypeChassisRedirect,
		Datapath:    "dp-router",
		LogicalPort: "cr-lrp-1",
		MAC:         []string{"fa:16:3e:11:22:33 192.0.2.1/24"},
		Chassis:     testChassis,
	}
	h.sb.CRLRPNAT["cr-lrp-1"] = sbdb.NATInfo{
		IPs:      []string{"192.0.2.50"},
		PatchRow: sbdb.Row{Datapath: "dp-patch"},
	}

	h.engine.ExposePortBinding(crLRP)

	assert.True(t, h.hns.Addresses["bgp-nic"]["192.0.2.1"])
	assert.True(t, h.hns.Addresses["bgp-nic"]["192.0.2.50"])
	_, hasRule := h.hns.Rules["192.0.2.50"]
	assert.True(t, hasRule)
	_, hasRoute := h.hns.Routes["192.0.2.50"]
	assert.True(t, hasRoute)

	h.engine.WithdrawPortBinding(crLRP)

	assert.False(t, h.hns.Addresses["bgp-nic"]["192.0.2.1"])
	assert.False(t, h.hns.Addresses["bgp-nic"]["192.0.2.50"])
}

// A sync pass keeps a CR-LRP's NAT addresses instead of reaping them as
// stale leftovers.
func TestSync_KeepsCRLRPNATAddresses(t *testing.T) {
	h := newHarness(t, false)
	h.ovs.Bridges["physnet2"] = "br-ex2"
	h.sb.NetworkNames["dp-patch"] = sbdb.NetworkInfo{Name: "physnet2"}

	crLRP := sbdb.Row{
		Type:        sbdb.PortTypeChassisRedirect,
		Datapath:    "dp-router",
		LogicalPort: "cr-lrp-1",
		MAC:         []string{"fa:16:3e:11:22:33 192.0.2.1/24"},
		Chassis:     testChassis,
	}
	h.sb.CRLRPByChassis[testChassis] = []sbdb.Row{crLRP}
	h.sb.CRLRPNAT["cr-lrp-1"] = sbdb.NATInfo{
		IPs:      []string{"192.0.2.50"},
		PatchRow: sbdb.Row{Datapath: "dp-patch"},
	}

	require.NoError(t, h.engine.Sync())

	assert.True(t, h.hns.Addresses["bgp-nic"]["192.0.2.50"])
}

// A router port whose own address coincides with the CR-LRP's gateway
// address is the gateway port itself - not a tenant subnet - and must not
// be exposed.
func TestExposeSubnet_SkipsGatewayCollision(t *testing.T) {
	h := newHarness(t, true)
	h.ovs.Bridges["physnet2"] = "br-ex2"
	h.sb.NetworkNames["dp-patch"] = sbdb.NetworkInfo{Name: "physnet2"}

	crLRP := sbdb.Row{
		Type:        sbdb.PortTypeChassisRedirect,
		Datapath:    "dp-router",
		LogicalPort: "cr-lrp-1",
		MAC:         []string{"fa:16:3e:11:22:33 2001:db8::1/64"},
		Chassis:     testChassis,
	}
	h.sb.CRLRPNAT["cr-lrp-1"] = sbdb.NATInfo{PatchRow: sbdb.Row{Datapath: "dp-patch"}}
	h.sb.LRPsByRouter["dp-router"] = nil
	h.engine.ExposePortBinding(crLRP)

	lrp := sbdb.Row{
		Type:        "router-port",
		Datapath:    "dp-tenant",
		LogicalPort: "lrp-gw",
		MAC:         []string{"fa:16:3e:44:55:66 2001:db8::1/64"},
	}

	h.engine.ExposeSubnet(lrp, "dp-router")

	_, hasSubnetRoute := h.hns.Routes["2001:db8::"]
	assert.False(t, hasSubnetRoute, "gateway-coincident router port must not be exposed as a tenant subnet")
	_, tracked := h.engine.localLRPs["lrp-gw"]
	assert.False(t, tracked)
}
