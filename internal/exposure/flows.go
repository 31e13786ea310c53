// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

package exposure

import "github.com/ovn-bgp/ovn-bgp-agent/internal/ovsclient"

// baselineFlows returns the fixed set of steering rules the engine owns on
// bridge: traffic entering from the physical uplink port is steered into
// the overlay-integration pipeline, tagged with the agent's flow cookie so
// later syncs can tell its own rules apart from anything else installed on
// the bridge.
func (e *Engine) baselineFlows(bridge string) []ovsclient.FlowRule {
	return []ovsclient.FlowRule{
		{
			Cookie:  e.cfg.OVSFlowCookie,
			Bridge:  bridge,
			Match:   "in_port=LOCAL",
			Actions: "resubmit(,0)",
		},
	}
}

// ensureBaselineFlows installs the bridge's baseline rules and removes any
// previously-tagged rule that is no longer part of the desired set.
func (e *Engine) ensureBaselineFlows(bridge string) {
	want := e.baselineFlows(bridge)
	if err := e.ovs.EnsureFlows(bridge, want); err != nil {
		e.log.Warnf("ensure baseline flows on %s: %v", bridge, err)
		return
	}

	have, err := e.ovs.FlowsByCookie(bridge, e.cfg.OVSFlowCookie)
	if err != nil {
		e.log.Warnf("enumerate flows on %s: %v", bridge, err)
		return
	}
	wantKeys := make(map[string]bool, len(want))
	for _, f := range want {
		wantKeys[f.Match+"|"+f.Actions] = true
	}
	var stale []ovsclient.FlowRule
	for _, f := range have {
		if !wantKeys[f.Match+"|"+f.Actions] {
			stale = append(stale, f)
		}
	}
	if len(stale) == 0 {
		return
	}
	if err := e.ovs.RemoveFlows(bridge, stale); err != nil {
		e.log.Warnf("remove stale flows on %s: %v", bridge, err)
	}
}

// reassertBaselineFlows re-installs bridge's baseline rules defensively
// when an event handler detects a missing FIP association - a cheaper
// fallback than forcing a full sync.
func (e *Engine) reassertBaselineFlows(bridge string) {
	if err := e.ovs.EnsureFlows(bridge, e.baselineFlows(bridge)); err != nil {
		e.log.Warnf("reassert baseline flows on %s: %v", bridge, err)
	}
}
