// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

//go:build linux
// +build linux

package hns

import (
	"net"
	"strings"

	"github.com/mdlayher/ndp"
	"github.com/vishvananda/netlink"

	agenterrors "github.com/ovn-bgp/ovn-bgp-agent/internal/errors"
)

// AddNDPProxy installs a kernel proxy-neighbour entry for ip (an IPv6
// gateway address) on bridge's VLAN sub-interface, and starts a
// mdlayher/ndp-backed responder on that interface so neighbour solicitations
// arriving from outside the bridge's subnet are answered on this host's
// behalf. A no-op for non-IPv6 addresses.
func (m *Manager) AddNDPProxy(ip, bridge string, vlan int) error {
	if !strings.Contains(ip, ":") {
		return nil
	}
	dev := vlanDeviceName(bridge, vlan)
	link, err := m.nl.LinkByName(dev)
	if err != nil {
		return agenterrors.Wrapf(err, agenterrors.KindUnavailable, "hns: lookup ndp proxy device %s", dev)
	}

	neigh := &netlink.Neigh{
		LinkIndex: link.Attrs().Index,
		Family:    ndpNeighFamily,
		Flags:     netlink.NTF_PROXY,
		IP:        net.ParseIP(ip),
	}
	if err := m.nl.NeighAdd(neigh); err != nil {
		return agenterrors.Wrapf(err, agenterrors.KindUnavailable, "hns: add ndp proxy entry %s on %s", ip, dev)
	}

	return m.ndpResponders.register(dev, ip)
}

// RemoveNDPProxy removes the proxy-neighbour entry for ip on bridge, and
// does nothing unless force is true. The exposure engine sets force only
// when a sibling router port still shares the provider network, so the
// last router port's withdrawal leaves the entry in place.
func (m *Manager) RemoveNDPProxy(ip, bridge string, vlan int, force bool) error {
	if !strings.Contains(ip, ":") || !force {
		return nil
	}
	dev := vlanDeviceName(bridge, vlan)
	link, err := m.nl.LinkByName(dev)
	if err != nil {
		return nil
	}

	neigh := &netlink.Neigh{
		LinkIndex: link.Attrs().Index,
		Family:    ndpNeighFamily,
		Flags:     netlink.NTF_PROXY,
		IP:        net.ParseIP(ip),
	}
	if err := m.nl.NeighDel(neigh); err != nil {
		return agenterrors.Wrapf(err, agenterrors.KindUnavailable, "hns: remove ndp proxy entry %s on %s", ip, dev)
	}

	m.ndpResponders.unregister(dev, ip)
	return nil
}

const ndpNeighFamily = 10 // unix.AF_INET6

// ndpResponderSet owns one mdlayher/ndp-backed responder per interface,
// answering neighbour solicitations for the registered proxy addresses.
type ndpResponderSet struct {
	byDevice map[string]*ndpResponder
	dial     func(iface string) (*ndp.Conn, net.IP, error)
}

func newNDPResponderSet() *ndpResponderSet {
	return &ndpResponderSet{
		byDevice: make(map[string]*ndpResponder),
		dial: func(iface string) (*ndp.Conn, net.IP, error) {
			ifi, err := net.InterfaceByName(iface)
			if err != nil {
				return nil, nil, err
			}
			return ndp.Listen(ifi, ndp.LinkLocal)
		},
	}
}

func (s *ndpResponderSet) register(device, ip string) error {
	if s == nil {
		return nil
	}
	r, ok := s.byDevice[device]
	if !ok {
		conn, _, err := s.dial(device)
		if err != nil {
			// No usable interface yet (agent running without a live
			// bridge, or in a test harness) - the kernel proxy-neighbour
			// entry still does the heavy lifting; the responder is a
			// best-effort path answering neighbour solicitations.
			return nil
		}
		r = &ndpResponder{conn: conn, addrs: make(map[string]bool)}
		s.byDevice[device] = r
		go r.run()
	}
	r.addrs[ip] = true
	return nil
}

func (s *ndpResponderSet) unregister(device, ip string) {
	if s == nil {
		return
	}
	r, ok := s.byDevice[device]
	if !ok {
		return
	}
	delete(r.addrs, ip)
	if len(r.addrs) == 0 {
		r.conn.Close()
		delete(s.byDevice, device)
	}
}

// ndpResponder answers neighbour solicitations for its registered addrs on
// a single interface.
type ndpResponder struct {
	conn  *ndp.Conn
	addrs map[string]bool
}

func (r *ndpResponder) run() {
	for {
		msg, _, from, err := r.conn.ReadFrom()
		if err != nil {
			return
		}
		sol, ok := msg.(*ndp.NeighborSolicitation)
		if !ok {
			continue
		}
		if !r.addrs[sol.TargetAddress.String()] {
			continue
		}
		adv := &ndp.NeighborAdvertisement{
			Solicited:     true,
			Override:      true,
			TargetAddress: sol.TargetAddress,
		}
		_ = r.conn.WriteTo(adv, nil, from)
	}
}
