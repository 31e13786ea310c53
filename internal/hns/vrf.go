// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

//go:build linux
// +build linux

package hns

import (
	"github.com/vishvananda/netlink"

	agenterrors "github.com/ovn-bgp/ovn-bgp-agent/internal/errors"
)

// EnsureVRF creates the VRF device with the given routing table if it
// doesn't already exist, and brings it up either way.
func (m *Manager) EnsureVRF(name string, table int) error {
	link, err := m.nl.LinkByName(name)
	if err != nil {
		vrf := &netlink.Vrf{
			LinkAttrs: netlink.LinkAttrs{Name: name},
			Table:     uint32(table),
		}
		if err := m.nl.LinkAdd(vrf); err != nil {
			return agenterrors.Wrapf(err, agenterrors.KindUnavailable, "hns: create vrf %s", name)
		}
		link, err = m.nl.LinkByName(name)
		if err != nil {
			return agenterrors.Wrapf(err, agenterrors.KindUnavailable, "hns: lookup vrf %s after create", name)
		}
	}
	if err := m.nl.LinkSetUp(link); err != nil {
		return agenterrors.Wrapf(err, agenterrors.KindUnavailable, "hns: bring up vrf %s", name)
	}
	return nil
}

// EnsureDummyInVRF creates the dummy exposure device and enslaves it to vrf,
// if it isn't already.
func (m *Manager) EnsureDummyInVRF(device, vrf string) error {
	link, err := m.nl.LinkByName(device)
	if err != nil {
		dummy := &netlink.Dummy{LinkAttrs: netlink.LinkAttrs{Name: device}}
		if err := m.nl.LinkAdd(dummy); err != nil {
			return agenterrors.Wrapf(err, agenterrors.KindUnavailable, "hns: create dummy %s", device)
		}
		link, err = m.nl.LinkByName(device)
		if err != nil {
			return agenterrors.Wrapf(err, agenterrors.KindUnavailable, "hns: lookup dummy %s after create", device)
		}
	}

	vrfLink, err := m.nl.LinkByName(vrf)
	if err != nil {
		return agenterrors.Wrapf(err, agenterrors.KindUnavailable, "hns: lookup vrf %s", vrf)
	}

	if link.Attrs().MasterIndex != vrfLink.Attrs().Index {
		if err := m.nl.LinkSetMaster(link, vrfLink); err != nil {
			return agenterrors.Wrapf(err, agenterrors.KindUnavailable, "hns: enslave %s to vrf %s", device, vrf)
		}
	}

	return agenterrors.Wrapf(m.nl.LinkSetUp(link), agenterrors.KindUnavailable, "hns: bring up %s", device)
}
