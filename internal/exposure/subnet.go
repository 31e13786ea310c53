// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

package exposure

import "github.com/ovn-bgp/ovn-bgp-agent/internal/sbdb"

// exposeSubnetLocked implements expose_subnet: when routerDatapath is
// locally hosted as a tracked CR-LRP, the newly-attached subnet's LRP is
// exposed exactly as it would be during CR-LRP exposure.
func (e *Engine) exposeSubnetLocked(lrp sbdb.Row, routerDatapath string) {
	info, local := e.crlrpForRouter(routerDatapath)
	if !local {
		return
	}
	bridge, table, vlan, ok, err := e.bridgeFor(info.ProviderDatapath)
	if err != nil || !ok {
		e.log.Warnf("resolve bridge for subnet attach on %s: %v", lrp.LogicalPort, err)
		return
	}
	e.ensureNetworkExposed(lrp, bridge, table, vlan, info.IPs, nil)
}

func (e *Engine) withdrawSubnetLocked(lrp sbdb.Row, routerDatapath string) {
	info, local := e.crlrpForRouter(routerDatapath)
	if !local {
		return
	}
	bridge, table, vlan, ok, err := e.bridgeFor(info.ProviderDatapath)
	if err != nil || !ok {
		return
	}
	e.removeNetworkExposed(lrp, bridge, table, vlan, info.IPs)
}

func (e *Engine) crlrpForRouter(routerDatapath string) (crlrpInfo, bool) {
	for _, info := range e.localCRLRPs {
		if info.RouterDatapath == routerDatapath {
			return info, true
		}
	}
	return crlrpInfo{}, false
}
