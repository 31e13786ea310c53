// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

package exposure

// exposeFIP exposes a floating IP bound to a local VM's patch port. fip is
// bare (no mask); fipDatapath is the floating IP's own provider datapath.
func (e *Engine) exposeFIP(fip, fipDatapath string, ss *syncState) {
	bridge, table, vlan, ok, err := e.bridgeFor(fipDatapath)
	if err != nil {
		e.log.Warnf("resolve bridge for fip %s: %v", fip, err)
		return
	}
	if !ok {
		return
	}
	_ = e.exposeIP(fip, bridge, table, vlan, "", false, ss)
}

func (e *Engine) withdrawFIP(fip, fipDatapath string) {
	bridge, table, vlan, ok, err := e.bridgeFor(fipDatapath)
	if err != nil || !ok {
		return
	}
	_ = e.withdrawIP(fip, bridge, table, vlan, "", false)
}
