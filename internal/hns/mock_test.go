// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

//go:build linux
// +build linux

package hns

import (
	"github.com/stretchr/testify/mock"
	"github.com/vishvananda/netlink"
)

// MockNetlinker is a testify/mock-driven Netlinker used by the HNS unit
// tests to assert on exact netlink calls without touching a real kernel.
type MockNetlinker struct {
	mock.Mock
}

func (m *MockNetlinker) LinkByName(name string) (netlink.Link, error) {
	args := m.Called(name)
	link, _ := args.Get(0).(netlink.Link)
	return link, args.Error(1)
}

func (m *MockNetlinker) LinkAdd(link netlink.Link) error { return m.Called(link).Error(0) }
func (m *MockNetlinker) LinkDel(link netlink.Link) error { return m.Called(link).Error(0) }
func (m *MockNetlinker) LinkSetUp(link netlink.Link) error { return m.Called(link).Error(0) }
func (m *MockNetlinker) LinkSetDown(link netlink.Link) error { return m.Called(link).Error(0) }

func (m *MockNetlinker) LinkSetMaster(link, master netlink.Link) error {
	return m.Called(link, master).Error(0)
}

func (m *MockNetlinker) LinkSetMTU(link netlink.Link, mtu int) error {
	return m.Called(link, mtu).Error(0)
}

func (m *MockNetlinker) AddrList(link netlink.Link, family int) ([]netlink.Addr, error) {
	args := m.Called(link, family)
	addrs, _ := args.Get(0).([]netlink.Addr)
	return addrs, args.Error(1)
}

func (m *MockNetlinker) AddrAdd(link netlink.Link, addr *netlink.Addr) error {
	return m.Called(link, addr).Error(0)
}

func (m *MockNetlinker) AddrDel(link netlink.Link, addr *netlink.Addr) error {
	return m.Called(link, addr).Error(0)
}

func (m *MockNetlinker) ParseAddr(s string) (*netlink.Addr, error) {
	args := m.Called(s)
	addr, _ := args.Get(0).(*netlink.Addr)
	return addr, args.Error(1)
}

func (m *MockNetlinker) RuleAdd(rule *netlink.Rule) error { return m.Called(rule).Error(0) }
func (m *MockNetlinker) RuleDel(rule *netlink.Rule) error { return m.Called(rule).Error(0) }

func (m *MockNetlinker) RuleList(family int) ([]netlink.Rule, error) {
	args := m.Called(family)
	rules, _ := args.Get(0).([]netlink.Rule)
	return rules, args.Error(1)
}

func (m *MockNetlinker) RouteAdd(route *netlink.Route) error { return m.Called(route).Error(0) }
func (m *MockNetlinker) RouteDel(route *netlink.Route) error { return m.Called(route).Error(0) }

func (m *MockNetlinker) RouteList(link netlink.Link, family int) ([]netlink.Route, error) {
	args := m.Called(link, family)
	routes, _ := args.Get(0).([]netlink.Route)
	return routes, args.Error(1)
}

func (m *MockNetlinker) NeighAdd(neigh *netlink.Neigh) error { return m.Called(neigh).Error(0) }
func (m *MockNetlinker) NeighDel(neigh *netlink.Neigh) error { return m.Called(neigh).Error(0) }

func (m *MockNetlinker) NeighList(linkIndex, family int) ([]netlink.Neigh, error) {
	args := m.Called(linkIndex, family)
	neighs, _ := args.Get(0).([]netlink.Neigh)
	return neighs, args.Error(1)
}

// MockSystemController is a testify/mock-driven SystemController.
type MockSystemController struct {
	mock.Mock
}

func (m *MockSystemController) ReadSysctl(path string) (string, error) {
	args := m.Called(path)
	return args.String(0), args.Error(1)
}

func (m *MockSystemController) WriteSysctl(path, value string) error {
	return m.Called(path, value).Error(0)
}

func (m *MockSystemController) IsNotExist(err error) bool {
	return m.Called(err).Bool(0)
}
