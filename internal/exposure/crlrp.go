// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

package exposure

import (
	"strings"

	"github.com/ovn-bgp/ovn-bgp-agent/internal/netutil"
	"github.com/ovn-bgp/ovn-bgp-agent/internal/sbdb"
)

// isChassisRedirect reports whether row is a chassisredirect port this
// engine should track - the type tag plus the "cr-" naming convention used
// for router-gateway ports.
func isChassisRedirect(row sbdb.Row) bool {
	return row.Type == sbdb.PortTypeChassisRedirect && strings.HasPrefix(row.LogicalPort, "cr-")
}

// exposeCRLRP exposes a locally-hosted router's chassis-redirect gateway
// addresses, tracks the port in local_cr_lrps, and - when tenant exposure
// is enabled - exposes every distributed logical-router-port attached to
// the same router.
func (e *Engine) exposeCRLRP(row sbdb.Row, ss *syncState) {
	if len(row.MAC) == 0 {
		return
	}
	addrs, ok := netutil.ParsePortMAC(row.MAC[0])
	if !ok {
		e.log.Warnf("skip cr-lrp %s: malformed mac field", row.LogicalPort)
		return
	}

	natIPs, patchRow, ok, err := e.sb.CRLRPNATAddressesInfo(row.LogicalPort)
	if err != nil || !ok {
		e.log.Warnf("resolve nat info for cr-lrp %s: %v", row.LogicalPort, err)
		return
	}

	bridge, table, vlan, ok, err := e.bridgeFor(patchRow.Datapath)
	if err != nil || !ok {
		e.log.Warnf("resolve bridge for cr-lrp %s: %v", row.LogicalPort, err)
		return
	}

	for _, ip := range addrs.IPs {
		if err := e.exposeIP(ip, bridge, table, vlan, addrs.HWAddr, true, ss); err != nil {
			continue
		}
	}

	// Distributed NAT addresses bound to the router ride the same dummy
	// device as a patch port's FIPs would: no lladdr, no NDP proxy.
	for _, ip := range natIPs {
		if err := e.exposeIP(ip, bridge, table, vlan, "", false, ss); err != nil {
			continue
		}
	}

	e.localCRLRPs[row.LogicalPort] = crlrpInfo{
		RouterDatapath:   row.Datapath,
		ProviderDatapath: patchRow.Datapath,
		IPs:              addrs.IPs,
		NATIPs:           natIPs,
	}

	if !e.cfg.ExposeTenantNetworks {
		return
	}
	lrps, err := e.sb.LRPPortsForRouter(row.Datapath)
	if err != nil {
		e.log.Warnf("enumerate lrps for router %s: %v", row.Datapath, err)
		return
	}
	for _, lrp := range lrps {
		if lrp.Chassis != "" {
			continue // bound to a chassis: not distributed, already exposed there
		}
		e.ensureNetworkExposed(lrp, bridge, table, vlan, addrs.IPs, ss)
	}
}

// withdrawCRLRP reverses exposeCRLRP. An IPv6 gateway's NDP proxy entry is
// removed only when a sibling CR-LRP still shares the provider datapath;
// withdrawing the last CR-LRP on that datapath leaves the entry in place.
func (e *Engine) withdrawCRLRP(row sbdb.Row) {
	info, ok := e.localCRLRPs[row.LogicalPort]
	if !ok {
		return
	}

	if e.cfg.ExposeTenantNetworks {
		lrps, err := e.sb.LRPPortsForRouter(info.RouterDatapath)
		if err == nil {
			bridge, table, vlan, bok, berr := e.bridgeFor(info.ProviderDatapath)
			if berr == nil && bok {
				for _, lrp := range lrps {
					if lrp.Chassis != "" {
						continue
					}
					e.removeNetworkExposed(lrp, bridge, table, vlan, info.IPs)
				}
			}
		}
	}

	bridge, table, vlan, ok, err := e.bridgeFor(info.ProviderDatapath)
	if err != nil || !ok {
		delete(e.localCRLRPs, row.LogicalPort)
		return
	}

	force := e.siblingCRLRPOnDatapath(row.LogicalPort, info.ProviderDatapath)
	for _, ip := range info.IPs {
		_ = e.withdrawIP(ip, bridge, table, vlan, "", force)
	}
	for _, ip := range info.NATIPs {
		_ = e.withdrawIP(ip, bridge, table, vlan, "", false)
	}
	delete(e.localCRLRPs, row.LogicalPort)
}

// siblingCRLRPOnDatapath reports whether any tracked CR-LRP other than
// exclude still shares providerDatapath.
func (e *Engine) siblingCRLRPOnDatapath(exclude, providerDatapath string) bool {
	for name, info := range e.localCRLRPs {
		if name == exclude {
			continue
		}
		if info.ProviderDatapath == providerDatapath {
			return true
		}
	}
	return false
}
