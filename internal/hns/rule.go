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

func parseCIDR(dest string) (*net.IPNet, int, error) {
	d := dest
	if !strings.Contains(dest, "/") {
		d = withHostMask(dest)
	}
	_, ipnet, err := net.ParseCIDR(d)
	if err != nil {
		return nil, 0, err
	}
	family := unix.AF_INET
	if strings.Contains(dest, ":") {
		family = unix.AF_INET6
	}
	return ipnet, family, nil
}

// AddRule installs a policy rule routing dest to table. A bare dest gets a
// host-width rule; a dest with a mask (a tenant subnet) keeps its mask. When lladdr is
// non-empty (a CR-LRP gateway address), a companion static neighbour entry
// on bridge binds the rule's destination to the router's MAC so the kernel
// doesn't need to ARP/NDP for it.
func (m *Manager) AddRule(dest, bridge string, table int, lladdr string) error {
	ipnet, family, err := parseCIDR(dest)
	if err != nil {
		return agenterrors.Attr(agenterrors.Wrap(err, agenterrors.KindValidation, "hns: invalid rule destination"), "ip", dest)
	}

	existing, err := m.nl.RuleList(family)
	if err != nil {
		return agenterrors.Wrap(err, agenterrors.KindUnavailable, "hns: list rules")
	}
	for _, r := range existing {
		if r.Table == table && r.Dst != nil && r.Dst.String() == ipnet.String() {
			return m.bindRuleLLAddr(bridge, ipnet.IP.String(), lladdr)
		}
	}

	rule := netlink.NewRule()
	rule.Dst = ipnet
	rule.Table = table
	rule.Family = family

	if err := m.nl.RuleAdd(rule); err != nil {
		return agenterrors.Wrapf(err, agenterrors.KindUnavailable, "hns: add rule %s -> table %d", dest, table)
	}
	return m.bindRuleLLAddr(bridge, ipnet.IP.String(), lladdr)
}

func (m *Manager) bindRuleLLAddr(bridge, ip, lladdr string) error {
	if lladdr == "" || bridge == "" {
		return nil
	}
	link, err := m.nl.LinkByName(bridge)
	if err != nil {
		return agenterrors.Wrapf(err, agenterrors.KindUnavailable, "hns: lookup bridge %s", bridge)
	}
	hw, err := net.ParseMAC(lladdr)
	if err != nil {
		return agenterrors.Attr(agenterrors.Wrap(err, agenterrors.KindValidation, "hns: invalid lladdr"), "mac", lladdr)
	}
	family := unix.AF_INET
	if strings.Contains(ip, ":") {
		family = unix.AF_INET6
	}
	neigh := &netlink.Neigh{
		LinkIndex:    link.Attrs().Index,
		Family:       family,
		State:        netlink.NUD_PERMANENT,
		IP:           net.ParseIP(ip),
		HardwareAddr: hw,
	}
	return agenterrors.Wrapf(m.nl.NeighAdd(neigh), agenterrors.KindUnavailable, "hns: bind neighbour %s on %s", ip, bridge)
}

// RemoveRule deletes the policy rule matching dest/table, tolerating its
// absence.
func (m *Manager) RemoveRule(dest, bridge string, table int, lladdr string) error {
	ipnet, family, err := parseCIDR(dest)
	if err != nil {
		return agenterrors.Attr(agenterrors.Wrap(err, agenterrors.KindValidation, "hns: invalid rule destination"), "ip", dest)
	}

	existing, err := m.nl.RuleList(family)
	if err != nil {
		return agenterrors.Wrap(err, agenterrors.KindUnavailable, "hns: list rules")
	}
	for _, r := range existing {
		if r.Table == table && r.Dst != nil && r.Dst.String() == ipnet.String() {
			rule := r
			if err := m.nl.RuleDel(&rule); err != nil {
				return agenterrors.Wrapf(err, agenterrors.KindUnavailable, "hns: delete rule %s", dest)
			}
			break
		}
	}
	return nil
}

// EnumerateRules returns every policy rule currently pointing at one of the
// given routing tables, keyed by destination CIDR.
func (m *Manager) EnumerateRules(tables []int) (map[string]RuleInfo, error) {
	wanted := make(map[int]bool, len(tables))
	for _, t := range tables {
		wanted[t] = true
	}

	out := make(map[string]RuleInfo)
	for _, family := range []int{unix.AF_INET, unix.AF_INET6} {
		rules, err := m.nl.RuleList(family)
		if err != nil {
			return nil, agenterrors.Wrap(err, agenterrors.KindUnavailable, "hns: list rules")
		}
		for _, r := range rules {
			if r.Dst == nil || !wanted[r.Table] {
				continue
			}
			out[r.Dst.String()] = RuleInfo{Dest: r.Dst.String(), Table: r.Table}
		}
	}
	return out, nil
}

// DeleteLeftoverRules removes every rule pointing at one of tables that is
// not present in kept. Rules outside the agent's managed tables are left
// untouched.
func (m *Manager) DeleteLeftoverRules(tables []int, kept map[string]RuleInfo) error {
	wanted := make(map[int]bool, len(tables))
	for _, t := range tables {
		wanted[t] = true
	}

	for _, family := range []int{unix.AF_INET, unix.AF_INET6} {
		rules, err := m.nl.RuleList(family)
		if err != nil {
			return agenterrors.Wrap(err, agenterrors.KindUnavailable, "hns: list rules")
		}
		for _, r := range rules {
			if r.Dst == nil || !wanted[r.Table] {
				continue
			}
			if info, ok := kept[r.Dst.String()]; ok && info.Table == r.Table {
				continue
			}
			rule := r
			if err := m.nl.RuleDel(&rule); err != nil {
				return agenterrors.Wrapf(err, agenterrors.KindUnavailable, "hns: delete stale rule %s", r.Dst.String())
			}
		}
	}
	return nil
}
