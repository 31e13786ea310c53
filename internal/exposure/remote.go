// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

package exposure

import "github.com/ovn-bgp/ovn-bgp-agent/internal/sbdb"

// exposeRemoteLocked implements expose_remote: a tenant VM appearing on a
// datapath whose distributed router interface is locally exposed gets its
// addresses shadowed onto the dummy device directly - no rule or route
// changes, those are already in place from subnet exposure.
func (e *Engine) exposeRemoteLocked(row sbdb.Row, ips []string) {
	lrpPort, ok, err := e.sb.LRPPortForDatapath(row.Datapath)
	if err != nil || !ok || !e.localLRPs[lrpPort] {
		return
	}
	if err := e.hns.AddAddresses(e.cfg.DeviceName, ips); err != nil {
		e.log.Warnf("expose remote tenant addresses: %v", err)
	}
}

func (e *Engine) withdrawRemoteLocked(row sbdb.Row, ips []string) {
	lrpPort, ok, err := e.sb.LRPPortForDatapath(row.Datapath)
	if err != nil || !ok || !e.localLRPs[lrpPort] {
		return
	}
	if err := e.hns.RemoveAddresses(e.cfg.DeviceName, ips); err != nil {
		e.log.Warnf("withdraw remote tenant addresses: %v", err)
	}
}
