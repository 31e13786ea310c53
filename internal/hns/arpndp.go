// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

//go:build linux
// +build linux

package hns

import (
	"fmt"

	"github.com/vishvananda/netlink"

	agenterrors "github.com/ovn-bgp/ovn-bgp-agent/internal/errors"
)

// EnsureARPNDPEnabled turns on proxy ARP and proxy NDP for bridge, so NDP
// proxy entries added later (hns.AddNDPProxy) are actually honored. index
// is not used: no per-bridge offset is assigned.
func (m *Manager) EnsureARPNDPEnabled(bridge string, index int) error {
	if err := m.sys.WriteSysctl(fmt.Sprintf("net/ipv4/conf/%s/proxy_arp", bridge), "1"); err != nil {
		return agenterrors.Wrapf(err, agenterrors.KindUnavailable, "hns: enable proxy_arp on %s", bridge)
	}
	if err := m.sys.WriteSysctl(fmt.Sprintf("net/ipv6/conf/%s/proxy_ndp", bridge), "1"); err != nil {
		return agenterrors.Wrapf(err, agenterrors.KindUnavailable, "hns: enable proxy_ndp on %s", bridge)
	}
	return nil
}

// EnsureVLANDevice creates the VLAN sub-interface for bridge/vlan (if vlan
// is non-zero) and brings it up.
func (m *Manager) EnsureVLANDevice(bridge string, vlan int) error {
	if vlan <= 0 {
		return nil
	}
	name := vlanDeviceName(bridge, vlan)

	link, err := m.nl.LinkByName(name)
	if err != nil {
		parent, err := m.nl.LinkByName(bridge)
		if err != nil {
			return agenterrors.Wrapf(err, agenterrors.KindUnavailable, "hns: lookup bridge %s for vlan device", bridge)
		}
		vlanLink := &netlink.Vlan{
			LinkAttrs: netlink.LinkAttrs{Name: name, ParentIndex: parent.Attrs().Index},
			VlanId:    vlan,
		}
		if err := m.nl.LinkAdd(vlanLink); err != nil {
			return agenterrors.Wrapf(err, agenterrors.KindUnavailable, "hns: create vlan device %s", name)
		}
		link, err = m.nl.LinkByName(name)
		if err != nil {
			return agenterrors.Wrapf(err, agenterrors.KindUnavailable, "hns: lookup vlan device %s after create", name)
		}
	}
	return agenterrors.Wrapf(m.nl.LinkSetUp(link), agenterrors.KindUnavailable, "hns: bring up vlan device %s", name)
}
