// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

//go:build linux
// +build linux

package hns

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vishvananda/netlink"
	"golang.org/x/sys/unix"
)

func TestAddAddresses_SkipsExisting(t *testing.T) {
	mockNetlink := new(MockNetlinker)
	m := NewManagerWithDeps(mockNetlink, nil, "bgp-nic")

	dev := &netlink.Dummy{LinkAttrs: netlink.LinkAttrs{Name: "bgp-nic", Index: 7}}
	mockNetlink.On("LinkByName", "bgp-nic").Return(dev, nil).Once()

	existing, _ := netlink.ParseAddr("10.0.0.5/32")
	mockNetlink.On("AddrList", dev, unix.AF_UNSPEC).Return([]netlink.Addr{*existing}, nil).Once()

	newAddr, _ := netlink.ParseAddr("10.0.0.6/32")
	mockNetlink.On("ParseAddr", "10.0.0.6/32").Return(newAddr, nil).Once()
	mockNetlink.On("AddrAdd", dev, newAddr).Return(nil).Once()

	err := m.AddAddresses("bgp-nic", []string{"10.0.0.5", "10.0.0.6"})
	assert.NoError(t, err)
	mockNetlink.AssertExpectations(t)
}

func TestDeleteLeftoverAddresses(t *testing.T) {
	mockNetlink := new(MockNetlinker)
	m := NewManagerWithDeps(mockNetlink, nil, "bgp-nic")

	dev := &netlink.Dummy{LinkAttrs: netlink.LinkAttrs{Name: "bgp-nic", Index: 7}}
	keep, _ := netlink.ParseAddr("10.0.0.5/32")
	stale, _ := netlink.ParseAddr("10.0.0.99/32")

	mockNetlink.On("LinkByName", "bgp-nic").Return(dev, nil).Times(2)
	mockNetlink.On("AddrList", dev, unix.AF_UNSPEC).Return([]netlink.Addr{*keep, *stale}, nil).Times(2)
	mockNetlink.On("AddrDel", dev, stale).Return(nil).Once()

	err := m.DeleteLeftoverAddresses("bgp-nic", map[string]bool{"10.0.0.5": true})
	assert.NoError(t, err)
	mockNetlink.AssertExpectations(t)
}
