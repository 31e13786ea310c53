// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

package exposure

// Sync is the periodic and startup reconciler: it recomputes desired state
// from the southbound view and the live kernel surface and converges the
// two. It is the authoritative path; event handlers are an optimization
// that make convergence faster between syncs.
func (e *Engine) Sync() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.syncLocked()
}

func (e *Engine) syncLocked() error {
	// 1. Clear per-sync bookkeeping. Routing-table assignments are NOT
	// cleared here - they persist for the process lifetime. The bridge
	// mapping is rebuilt from the virtual switch at step 3.
	e.localCRLRPs = make(map[string]crlrpInfo)
	e.localLRPs = make(map[string]bool)

	// 2. Ensure the VRF and dummy device exist.
	if err := e.hns.EnsureVRF(e.cfg.VRFName, e.cfg.VRFTable); err != nil {
		return err
	}
	if err := e.hns.EnsureDummyInVRF(e.cfg.DeviceName, e.cfg.VRFName); err != nil {
		return err
	}

	// 3. Rebuild the bridge mapping, ensure per-bridge routing tables,
	// ARP/NDP knobs, VLAN sub-interfaces, and baseline flow rules.
	mappings, err := e.ovs.BridgeMappings()
	if err != nil {
		return err
	}
	e.bridgeMappings = mappings

	tableIDs := make([]int, 0, len(mappings))
	tablesByBridge := make(map[string]int, len(mappings))
	for network, bridge := range mappings {
		table, err := e.hns.EnsureRoutingTable(bridge)
		if err != nil {
			e.log.Warnf("ensure routing table for %s: %v", bridge, err)
			continue
		}
		tableIDs = append(tableIDs, table)
		tablesByBridge[bridge] = table

		if vlan, hasTag, err := e.sb.NetworkVLANTagByName(network); err == nil && hasTag {
			if err := e.hns.EnsureVLANDevice(bridge, vlan); err != nil {
				e.log.Warnf("ensure vlan device for %s: %v", bridge, err)
			}
		}
		if err := e.hns.EnsureARPNDPEnabled(bridge, table); err != nil {
			e.log.Warnf("enable arp/ndp proxy on %s: %v", bridge, err)
		}
		e.ensureBaselineFlows(bridge)
	}

	// 4. The live kernel state (current exposed addresses, current policy
	// rules pointing at any known table) is snapshotted by the host
	// network surface itself at step 8 - ss below accumulates the "kept"
	// side of that diff as steps 5-7 expose what's still wanted.
	ss := newSyncState()

	// 5. Expose every port bound to this chassis.
	ports, err := e.sb.PortsOnChassis(e.cfg.Chassis)
	if err != nil {
		return err
	}
	for _, port := range ports {
		e.ensurePortExposed(port, ss)
	}

	// 6. Expose every locally-hosted CR-LRP. When tenant-network exposure
	// is enabled, exposeCRLRP also fans out to every distributed
	// logical-router-port attached to that router (step 7 of the source
	// driver's sync, folded in here rather than repeated).
	crlrps, err := e.sb.CRLRPPortsOnChassis(e.cfg.Chassis)
	if err != nil {
		return err
	}
	for _, row := range crlrps {
		e.exposeCRLRP(row, ss)
	}

	// 8. Whatever is left in the snapshots is stale: remove it.
	if err := e.hns.DeleteLeftoverAddresses(e.cfg.DeviceName, ss.addrs); err != nil {
		e.log.Warnf("delete leftover addresses: %v", err)
	}
	if err := e.hns.DeleteLeftoverRules(tableIDs, ss.rules); err != nil {
		e.log.Warnf("delete leftover rules: %v", err)
	}
	if err := e.hns.DeleteLeftoverBridgeRoutes(tablesByBridge, ss.routes); err != nil {
		e.log.Warnf("delete leftover bridge routes: %v", err)
	}

	return nil
}
