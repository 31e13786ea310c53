// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

//go:build linux
// +build linux

package hns

import (
	"fmt"
	"net"
	"strings"

	"github.com/vishvananda/netlink"
	"golang.org/x/sys/unix"

	agenterrors "github.com/ovn-bgp/ovn-bgp-agent/internal/errors"
)

func vlanDeviceName(bridge string, vlan int) string {
	if vlan <= 0 {
		return bridge
	}
	return fmt.Sprintf("%s.%d", bridge, vlan)
}

// EnsureRoutingTable allocates (and memoizes) a kernel routing table id for
// bridge. The assignment persists for the lifetime of the process; a later
// sync must not reallocate it.
func (m *Manager) EnsureRoutingTable(bridge string) (int, error) {
	if t, ok := m.routingTables[bridge]; ok {
		return t, nil
	}
	t := m.nextTable
	m.nextTable++
	m.routingTables[bridge] = t
	return t, nil
}

func routeDest(dest, mask string) (*net.IPNet, error) {
	cidr := dest
	if mask != "" {
		cidr = dest + "/" + mask
	} else {
		cidr = withHostMask(dest)
	}
	_, ipnet, err := net.ParseCIDR(cidr)
	return ipnet, err
}

// AddRoute installs an on-link route for dest in table through bridge (or
// bridge's VLAN sub-interface when vlan > 0), or, when via is set, a route
// for the dest/mask subnet through the via gateway.
func (m *Manager) AddRoute(bridge, dest string, table, vlan int, mask, via string) error {
	ipnet, err := routeDest(dest, mask)
	if err != nil {
		return agenterrors.Attr(agenterrors.Wrap(err, agenterrors.KindValidation, "hns: invalid route destination"), "ip", dest)
	}

	dev := vlanDeviceName(bridge, vlan)
	link, err := m.nl.LinkByName(dev)
	if err != nil {
		return agenterrors.Wrapf(err, agenterrors.KindUnavailable, "hns: lookup route device %s", dev)
	}

	route := &netlink.Route{
		LinkIndex: link.Attrs().Index,
		Dst:       ipnet,
		Table:     table,
	}
	if via != "" {
		route.Gw = net.ParseIP(via)
	} else {
		route.Scope = netlink.SCOPE_LINK
	}

	existing, err := m.nl.RouteList(link, routeFamily(dest))
	if err == nil {
		for _, r := range existing {
			if r.Table == table && r.Dst != nil && r.Dst.String() == ipnet.String() {
				return nil
			}
		}
	}

	if err := m.nl.RouteAdd(route); err != nil {
		return agenterrors.Wrapf(err, agenterrors.KindUnavailable, "hns: add route %s table %d", ipnet.String(), table)
	}
	return nil
}

// RemoveRoute deletes the route matching dest/mask in table, tolerating its
// absence.
func (m *Manager) RemoveRoute(bridge, dest string, table, vlan int, mask, via string) error {
	ipnet, err := routeDest(dest, mask)
	if err != nil {
		return agenterrors.Attr(agenterrors.Wrap(err, agenterrors.KindValidation, "hns: invalid route destination"), "ip", dest)
	}

	dev := vlanDeviceName(bridge, vlan)
	link, err := m.nl.LinkByName(dev)
	if err != nil {
		return nil
	}

	existing, err := m.nl.RouteList(link, routeFamily(dest))
	if err != nil {
		return agenterrors.Wrapf(err, agenterrors.KindUnavailable, "hns: list routes on %s", dev)
	}
	for _, r := range existing {
		if r.Table == table && r.Dst != nil && r.Dst.String() == ipnet.String() {
			route := r
			if err := m.nl.RouteDel(&route); err != nil {
				return agenterrors.Wrapf(err, agenterrors.KindUnavailable, "hns: delete route %s", ipnet.String())
			}
			break
		}
	}
	return nil
}

// DeleteLeftoverBridgeRoutes removes every route in one of tables whose
// destination is not in kept. tables maps bridge name to table id purely so
// callers can log which bridge a stale route belonged to; deletion is keyed
// on table id and destination.
func (m *Manager) DeleteLeftoverBridgeRoutes(tables map[string]int, kept map[string]bool) error {
	wanted := make(map[int]bool, len(tables))
	for _, t := range tables {
		wanted[t] = true
	}

	for _, family := range []int{unix.AF_INET, unix.AF_INET6} {
		routes, err := m.nl.RouteList(nil, family)
		if err != nil {
			return agenterrors.Wrap(err, agenterrors.KindUnavailable, "hns: list routes")
		}
		for _, r := range routes {
			if r.Dst == nil || !wanted[r.Table] {
				continue
			}
			if kept[r.Dst.String()] {
				continue
			}
			route := r
			if err := m.nl.RouteDel(&route); err != nil {
				return agenterrors.Wrapf(err, agenterrors.KindUnavailable, "hns: delete stale route %s", r.Dst.String())
			}
		}
	}
	return nil
}

func routeFamily(dest string) int {
	if strings.Contains(dest, ":") {
		return unix.AF_INET6
	}
	return unix.AF_INET
}
