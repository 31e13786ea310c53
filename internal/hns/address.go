// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

//go:build linux
// +build linux

package hns

import (
	"net"
	"strings"

	"github.com/vishvananda/netlink"
	"golang.org/x/sys/unix"

	agenterrors "github.com/ovn-bgp/ovn-bgp-agent/internal/errors"
)

func hostMask(ip string) string {
	if strings.Contains(ip, ":") {
		return "/128"
	}
	return "/32"
}

// withHostMask returns ip at host width, discarding any mask the caller
// passed in - an exposed address is always a single host, never a subnet.
func withHostMask(ip string) string {
	bare := strings.SplitN(ip, "/", 2)[0]
	return bare + hostMask(bare)
}

// AddAddresses assigns each ip (bare, without mask) to device, skipping any
// that are already present.
func (m *Manager) AddAddresses(device string, ips []string) error {
	link, err := m.nl.LinkByName(device)
	if err != nil {
		return agenterrors.Wrapf(err, agenterrors.KindUnavailable, "hns: lookup device %s", device)
	}

	existing, err := m.nl.AddrList(link, unix.AF_UNSPEC)
	if err != nil {
		return agenterrors.Wrapf(err, agenterrors.KindUnavailable, "hns: list addresses on %s", device)
	}
	have := make(map[string]bool, len(existing))
	for _, a := range existing {
		have[a.IP.String()] = true
	}

	for _, ip := range ips {
		bare := strings.SplitN(ip, "/", 2)[0]
		if have[bare] {
			continue
		}
		addr, err := m.nl.ParseAddr(withHostMask(ip))
		if err != nil {
			return agenterrors.Attr(agenterrors.Wrapf(err, agenterrors.KindValidation, "hns: invalid exposed ip"), "ip", ip)
		}
		if err := m.nl.AddrAdd(link, addr); err != nil {
			return agenterrors.Wrapf(err, agenterrors.KindUnavailable, "hns: add address %s to %s", ip, device)
		}
	}
	return nil
}

// RemoveAddresses removes each ip from device, tolerating addresses that are
// already absent.
func (m *Manager) RemoveAddresses(device string, ips []string) error {
	link, err := m.nl.LinkByName(device)
	if err != nil {
		return agenterrors.Wrapf(err, agenterrors.KindUnavailable, "hns: lookup device %s", device)
	}

	existing, err := m.nl.AddrList(link, unix.AF_UNSPEC)
	if err != nil {
		return agenterrors.Wrapf(err, agenterrors.KindUnavailable, "hns: list addresses on %s", device)
	}
	byIP := make(map[string]netlink.Addr, len(existing))
	for _, a := range existing {
		byIP[a.IP.String()] = a
	}

	for _, ip := range ips {
		bare := strings.SplitN(ip, "/", 2)[0]
		addr, ok := byIP[bare]
		if !ok {
			continue
		}
		if err := m.nl.AddrDel(link, &addr); err != nil {
			return agenterrors.Wrapf(err, agenterrors.KindUnavailable, "hns: remove address %s from %s", ip, device)
		}
	}
	return nil
}

// EnumerateExposed returns the bare IP addresses currently assigned to
// device.
func (m *Manager) EnumerateExposed(device string) (map[string]bool, error) {
	link, err := m.nl.LinkByName(device)
	if err != nil {
		return nil, agenterrors.Wrapf(err, agenterrors.KindUnavailable, "hns: lookup device %s", device)
	}
	addrs, err := m.nl.AddrList(link, unix.AF_UNSPEC)
	if err != nil {
		return nil, agenterrors.Wrapf(err, agenterrors.KindUnavailable, "hns: list addresses on %s", device)
	}
	out := make(map[string]bool, len(addrs))
	for _, a := range addrs {
		out[a.IP.String()] = true
	}
	return out, nil
}

// EnumerateExposedInNetwork returns the subset of exposed addresses on
// device that fall within network.
func (m *Manager) EnumerateExposedInNetwork(device string, network *net.IPNet) (map[string]bool, error) {
	all, err := m.EnumerateExposed(device)
	if err != nil {
		return nil, err
	}
	out := make(map[string]bool)
	for ip := range all {
		if network.Contains(net.ParseIP(ip)) {
			out[ip] = true
		}
	}
	return out, nil
}

// DeleteLeftoverAddresses removes every address currently on device that is
// not in kept.
func (m *Manager) DeleteLeftoverAddresses(device string, kept map[string]bool) error {
	current, err := m.EnumerateExposed(device)
	if err != nil {
		return err
	}
	var stale []string
	for ip := range current {
		if !kept[ip] {
			stale = append(stale, ip)
		}
	}
	if len(stale) == 0 {
		return nil
	}
	return m.RemoveAddresses(device, stale)
}
