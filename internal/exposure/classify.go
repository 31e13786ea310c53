// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

package exposure

import (
	"github.com/ovn-bgp/ovn-bgp-agent/internal/netutil"
	"github.com/ovn-bgp/ovn-bgp-agent/internal/sbdb"
)

// ensurePortExposed classifies row by port type and exposes whatever it
// resolves to. This is shared by event handling and by sync's per-port
// reconciliation pass.
func (e *Engine) ensurePortExposed(row sbdb.Row, ss *syncState) {
	switch row.Type {
	case sbdb.PortTypeVM, sbdb.PortTypeVirtual:
		e.ensureVIFExposed(row, ss)
	case sbdb.PortTypeChassisRedirect:
		if isChassisRedirect(row) {
			e.exposeCRLRP(row, ss)
		}
	case sbdb.PortTypePatch:
		e.ensurePatchExposed(row, ss)
	}
}

// ensureVIFExposed handles a VM or virtual-VIF port: provider-attached
// ports expose their own addresses directly, everything else is only
// exposed when it carries a floating IP.
func (e *Engine) ensureVIFExposed(row sbdb.Row, ss *syncState) {
	isProvider, err := e.sb.IsProviderNetwork(row.Datapath)
	if err != nil {
		e.log.Warnf("check provider network for %s: %v", row.LogicalPort, err)
		return
	}
	if isProvider {
		if len(row.MAC) == 0 {
			return
		}
		addrs, ok := netutil.ParsePortMAC(row.MAC[0])
		if !ok {
			e.log.Warnf("skip port %s: malformed mac field", row.LogicalPort)
			return
		}
		e.exposePortIPs(row, addrs.IPs, ss)
		return
	}

	fip, fipDatapath, ok, err := e.sb.FIPAssociated(row.LogicalPort)
	if err != nil {
		e.log.Warnf("resolve fip for %s: %v", row.LogicalPort, err)
		return
	}
	if !ok {
		return
	}
	e.exposeFIP(fip, fipDatapath, ss)
}

// ensurePatchExposed handles the provider-side patch port of a floating
// IP: exposed only when its associated VM port is bound to this chassis.
func (e *Engine) ensurePatchExposed(row sbdb.Row, ss *syncState) {
	assoc, ok := row.Options["associated_port"]
	if !ok || assoc == "" {
		return
	}
	onChassis, err := e.sb.IsPortOnChassis(assoc, e.cfg.Chassis)
	if err != nil || !onChassis {
		return
	}
	fip, fipDatapath, ok, err := e.sb.FIPAssociated(assoc)
	if err != nil || !ok {
		// The patch port exists but its floating IP association is gone
		// or unreadable - reassert the bridge's baseline steering rules
		// defensively rather than forcing a full sync.
		if bridge, _, _, bok, berr := e.bridgeFor(row.Datapath); berr == nil && bok {
			e.reassertBaselineFlows(bridge)
		}
		return
	}
	e.exposeFIP(fip, fipDatapath, ss)
}

func (e *Engine) withdrawPort(row sbdb.Row) {
	switch row.Type {
	case sbdb.PortTypeVM, sbdb.PortTypeVirtual:
		if len(row.MAC) == 0 {
			return
		}
		addrs, ok := netutil.ParsePortMAC(row.MAC[0])
		if !ok {
			return
		}
		e.withdrawPortIPs(row, addrs.IPs)
		if fip, fipDatapath, ok, _ := e.sb.FIPAssociated(row.LogicalPort); ok {
			e.withdrawFIP(fip, fipDatapath)
		}
	case sbdb.PortTypeChassisRedirect:
		if isChassisRedirect(row) {
			e.withdrawCRLRP(row)
		}
	case sbdb.PortTypePatch:
		assoc, ok := row.Options["associated_port"]
		if !ok || assoc == "" {
			return
		}
		if fip, fipDatapath, ok, _ := e.sb.FIPAssociated(assoc); ok {
			e.withdrawFIP(fip, fipDatapath)
		}
	}
}
