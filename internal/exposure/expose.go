// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

package exposure

import (
	"github.com/ovn-bgp/ovn-bgp-agent/internal/netutil"
	"github.com/ovn-bgp/ovn-bgp-agent/internal/sbdb"
)

// bridgeFor resolves the bridge and routing table for datapath, returning
// ok=false when the network isn't bridge-mapped - callers must skip the IP
// silently in that case.
func (e *Engine) bridgeFor(datapath string) (bridge string, table, vlan int, ok bool, err error) {
	name, tag, hasTag, found, err := e.sb.NetworkNameAndTag(datapath)
	if err != nil || !found {
		return "", 0, 0, false, err
	}
	bridge, ok = e.bridgeMappings[name]
	if !ok {
		return "", 0, 0, false, nil
	}
	table, err = e.hns.EnsureRoutingTable(bridge)
	if err != nil {
		return "", 0, 0, false, err
	}
	if hasTag {
		vlan = tag
	}
	return bridge, table, vlan, true, nil
}

// exposeIP runs the per-IP expose contract: assign the address to the
// dummy device, add a policy rule and on-link route through bridge's
// table, and - for an IPv6 gateway address - an NDP proxy entry.
func (e *Engine) exposeIP(ip, bridge string, table, vlan int, lladdr string, ndpProxy bool, ss *syncState) error {
	host := stripMask(ip)
	if err := e.hns.AddAddresses(e.cfg.DeviceName, []string{host}); err != nil {
		e.log.Warnf("add address %s: %v", ip, err)
		return err
	}
	ss.keepAddr(host)

	if err := e.hns.AddRule(host, bridge, table, lladdr); err != nil {
		e.log.Warnf("add rule for %s: %v", ip, err)
		return err
	}
	ss.keepRule(host, table)

	if err := e.hns.AddRoute(bridge, stripMask(ip), table, vlan, "", ""); err != nil {
		e.log.Warnf("add route for %s: %v", ip, err)
		return err
	}
	ss.keepRoute(host)

	if ndpProxy && isIPv6(ip) {
		if err := e.hns.AddNDPProxy(stripMask(ip), bridge, vlan); err != nil {
			e.log.Warnf("add ndp proxy for %s: %v", ip, err)
			return err
		}
	}
	e.log.Infof("add BGP route for ip %s", ip)
	return nil
}

// withdrawIP reverses exposeIP. ndpProxyForce controls whether an IPv6
// gateway's NDP proxy entry is actually removed - the engine only sets it
// true when a sibling CR-LRP still shares the provider datapath.
func (e *Engine) withdrawIP(ip, bridge string, table, vlan int, lladdr string, ndpProxyForce bool) error {
	host := stripMask(ip)
	if isIPv6(ip) {
		if err := e.hns.RemoveNDPProxy(host, bridge, vlan, ndpProxyForce); err != nil {
			e.log.Warnf("remove ndp proxy for %s: %v", ip, err)
		}
	}
	if err := e.hns.RemoveRoute(bridge, host, table, vlan, "", ""); err != nil {
		e.log.Warnf("remove route for %s: %v", ip, err)
	}
	if err := e.hns.RemoveRule(host, bridge, table, lladdr); err != nil {
		e.log.Warnf("remove rule for %s: %v", ip, err)
	}
	if err := e.hns.RemoveAddresses(e.cfg.DeviceName, []string{host}); err != nil {
		e.log.Warnf("remove address %s: %v", ip, err)
		return err
	}
	e.log.Infof("delete BGP route for ip %s", ip)
	return nil
}

// exposePortIPs handles a provider-attached VM or virtual-VIF port: its own
// IPs are exposed directly against the bridge mapped to its datapath.
func (e *Engine) exposePortIPs(row sbdb.Row, ips []string, ss *syncState) {
	bridge, table, vlan, ok, err := e.bridgeFor(row.Datapath)
	if err != nil {
		e.log.Warnf("resolve bridge for datapath %s: %v", row.Datapath, err)
		return
	}
	if !ok {
		return
	}
	for _, ip := range ips {
		if err := e.exposeIP(ip, bridge, table, vlan, "", false, ss); err != nil {
			continue
		}
	}
}

func (e *Engine) withdrawPortIPs(row sbdb.Row, ips []string) {
	bridge, table, vlan, ok, err := e.bridgeFor(row.Datapath)
	if err != nil || !ok {
		return
	}
	for _, ip := range ips {
		_ = e.withdrawIP(ip, bridge, table, vlan, "", false)
	}
}

// ensureNetworkExposed implements the tenant-network exposure step for a
// single distributed logical-router-port: it rules and routes the
// LRP's subnet through the owning CR-LRP's matching-family gateway
// address, then shadows every VM address already present on the subnet's
// peer datapath onto the dummy device.
func (e *Engine) ensureNetworkExposed(lrp sbdb.Row, bridge string, table, vlan int, gateways []string, ss *syncState) {
	if len(lrp.MAC) == 0 {
		return
	}
	addrs, ok := netutil.ParsePortMAC(lrp.MAC[0])
	if !ok {
		return
	}
	for _, subnet := range addrs.IPs {
		if isGatewayIP(subnet, gateways) {
			return
		}
	}
	for _, subnet := range addrs.IPs {
		gw, ok := pickGateway(subnet, gateways)
		if !ok {
			continue
		}
		if err := e.hns.AddRule(subnet, bridge, table, ""); err != nil {
			e.log.Warnf("add subnet rule %s: %v", subnet, err)
			continue
		}
		ss.keepRule(subnet, table)

		netAddr, mask := networkAndMask(subnet)
		if err := e.hns.AddRoute(bridge, netAddr, table, vlan, mask, gw); err != nil {
			e.log.Warnf("add subnet route %s: %v", subnet, err)
			continue
		}
		ss.keepRoute(subnet)

		ports, err := e.sb.PortsOnDatapath(lrp.Datapath)
		if err != nil {
			continue
		}
		for _, port := range ports {
			if len(port.MAC) == 0 {
				continue
			}
			pa, ok := netutil.ParsePortMAC(port.MAC[0])
			if !ok {
				continue
			}
			for _, vmIP := range pa.IPs {
				if !sameFamily(vmIP, subnet) {
					continue
				}
				if err := e.hns.AddAddresses(e.cfg.DeviceName, []string{vmIP}); err != nil {
					e.log.Warnf("shadow tenant vm address %s: %v", vmIP, err)
					continue
				}
				ss.keepAddr(vmIP)
			}
		}
	}
	e.localLRPs[lrp.LogicalPort] = true
}

func (e *Engine) removeNetworkExposed(lrp sbdb.Row, bridge string, table, vlan int, gateways []string) {
	if len(lrp.MAC) == 0 {
		return
	}
	addrs, ok := netutil.ParsePortMAC(lrp.MAC[0])
	if !ok {
		return
	}
	for _, subnet := range addrs.IPs {
		if isGatewayIP(subnet, gateways) {
			return
		}
	}
	for _, subnet := range addrs.IPs {
		gw, ok := pickGateway(subnet, gateways)
		if !ok {
			continue
		}
		netAddr, mask := networkAndMask(subnet)
		_ = e.hns.RemoveRoute(bridge, netAddr, table, vlan, mask, gw)
		_ = e.hns.RemoveRule(subnet, bridge, table, "")

		ports, err := e.sb.PortsOnDatapath(lrp.Datapath)
		if err != nil {
			continue
		}
		for _, port := range ports {
			if len(port.MAC) == 0 {
				continue
			}
			pa, ok := netutil.ParsePortMAC(port.MAC[0])
			if !ok {
				continue
			}
			for _, vmIP := range pa.IPs {
				if !sameFamily(vmIP, subnet) {
					continue
				}
				_ = e.hns.RemoveAddresses(e.cfg.DeviceName, []string{vmIP})
			}
		}
	}
	delete(e.localLRPs, lrp.LogicalPort)
}
