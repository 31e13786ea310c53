// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

//go:build linux
// +build linux

package hns

import "github.com/vishvananda/netlink"

// Netlinker is the injectable seam over github.com/vishvananda/netlink. Real
// code uses RealNetlinker; tests drive MockNetlinker (testify/mock) so HNS
// logic can be exercised without root or a live kernel.
type Netlinker interface {
	LinkByName(name string) (netlink.Link, error)
	LinkAdd(link netlink.Link) error
	LinkDel(link netlink.Link) error
	LinkSetUp(link netlink.Link) error
	LinkSetDown(link netlink.Link) error
	LinkSetMaster(link netlink.Link, master netlink.Link) error
	LinkSetMTU(link netlink.Link, mtu int) error

	AddrList(link netlink.Link, family int) ([]netlink.Addr, error)
	AddrAdd(link netlink.Link, addr *netlink.Addr) error
	AddrDel(link netlink.Link, addr *netlink.Addr) error
	ParseAddr(s string) (*netlink.Addr, error)

	RuleAdd(rule *netlink.Rule) error
	RuleDel(rule *netlink.Rule) error
	RuleList(family int) ([]netlink.Rule, error)

	RouteAdd(route *netlink.Route) error
	RouteDel(route *netlink.Route) error
	RouteList(link netlink.Link, family int) ([]netlink.Route, error)

	NeighAdd(neigh *netlink.Neigh) error
	NeighDel(neigh *netlink.Neigh) error
	NeighList(linkIndex, family int) ([]netlink.Neigh, error)
}

// RealNetlinker is the production Netlinker: every method is a direct
// pass-through to the vishvananda/netlink package, operating against the
// calling process's network namespace.
type RealNetlinker struct{}

func (RealNetlinker) LinkByName(name string) (netlink.Link, error) { return netlink.LinkByName(name) }
func (RealNetlinker) LinkAdd(link netlink.Link) error               { return netlink.LinkAdd(link) }
func (RealNetlinker) LinkDel(link netlink.Link) error               { return netlink.LinkDel(link) }
func (RealNetlinker) LinkSetUp(link netlink.Link) error             { return netlink.LinkSetUp(link) }
func (RealNetlinker) LinkSetDown(link netlink.Link) error           { return netlink.LinkSetDown(link) }

func (RealNetlinker) LinkSetMaster(link, master netlink.Link) error {
	return netlink.LinkSetMaster(link, master)
}

func (RealNetlinker) LinkSetMTU(link netlink.Link, mtu int) error {
	return netlink.LinkSetMTU(link, mtu)
}

func (RealNetlinker) AddrList(link netlink.Link, family int) ([]netlink.Addr, error) {
	return netlink.AddrList(link, family)
}

func (RealNetlinker) AddrAdd(link netlink.Link, addr *netlink.Addr) error {
	return netlink.AddrAdd(link, addr)
}

func (RealNetlinker) AddrDel(link netlink.Link, addr *netlink.Addr) error {
	return netlink.AddrDel(link, addr)
}

func (RealNetlinker) ParseAddr(s string) (*netlink.Addr, error) { return netlink.ParseAddr(s) }

func (RealNetlinker) RuleAdd(rule *netlink.Rule) error { return netlink.RuleAdd(rule) }
func (RealNetlinker) RuleDel(rule *netlink.Rule) error { return netlink.RuleDel(rule) }

func (RealNetlinker) RuleList(family int) ([]netlink.Rule, error) {
	return netlink.RuleList(family)
}

func (RealNetlinker) RouteAdd(route *netlink.Route) error { return netlink.RouteAdd(route) }
func (RealNetlinker) RouteDel(route *netlink.Route) error { return netlink.RouteDel(route) }

func (RealNetlinker) RouteList(link netlink.Link, family int) ([]netlink.Route, error) {
	return netlink.RouteList(link, family)
}

func (RealNetlinker) NeighAdd(neigh *netlink.Neigh) error { return netlink.NeighAdd(neigh) }
func (RealNetlinker) NeighDel(neigh *netlink.Neigh) error { return netlink.NeighDel(neigh) }

func (RealNetlinker) NeighList(linkIndex, family int) ([]netlink.Neigh, error) {
	return netlink.NeighList(linkIndex, family)
}
