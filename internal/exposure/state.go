// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

package exposure

import "github.com/ovn-bgp/ovn-bgp-agent/internal/hns"

// syncState accumulates the kernel-state keys every expose step touches
// while a full sync is in progress, so the final reconciliation step knows
// what to keep. Event handlers run with a nil syncState and skip this
// bookkeeping entirely - they mutate the kernel directly and leave the
// next sync to reconcile.
type syncState struct {
	addrs  map[string]bool
	rules  map[string]hns.RuleInfo
	routes map[string]bool
}

func newSyncState() *syncState {
	return &syncState{
		addrs:  make(map[string]bool),
		rules:  make(map[string]hns.RuleInfo),
		routes: make(map[string]bool),
	}
}

func (s *syncState) keepAddr(ip string) {
	if s == nil {
		return
	}
	s.addrs[stripMask(ip)] = true
}

func (s *syncState) keepRule(dest string, table int) {
	if s == nil {
		return
	}
	s.rules[normalizeCIDR(dest)] = hns.RuleInfo{Dest: normalizeCIDR(dest), Table: table}
}

func (s *syncState) keepRoute(dest string) {
	if s == nil {
		return
	}
	s.routes[normalizeCIDR(dest)] = true
}
