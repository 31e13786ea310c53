// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

package exposure

import "github.com/ovn-bgp/ovn-bgp-agent/internal/sbdb"

// ExposePortBinding handles a port-binding-create event: classify row and
// expose whatever it resolves to.
func (e *Engine) ExposePortBinding(row sbdb.Row) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.ensurePortExposed(row, nil)
}

// WithdrawPortBinding handles a port-binding-delete event.
func (e *Engine) WithdrawPortBinding(row sbdb.Row) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.withdrawPort(row)
}

// ExposeFIP handles a FIP-set event: fip is exposed through the bridge
// mapped to fipDatapath.
func (e *Engine) ExposeFIP(fip, fipDatapath string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.exposeFIP(fip, fipDatapath, nil)
}

// WithdrawFIP handles a FIP-unset event.
func (e *Engine) WithdrawFIP(fip, fipDatapath string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.withdrawFIP(fip, fipDatapath)
}

// ExposeSubnet handles a subnet-router-attached event.
func (e *Engine) ExposeSubnet(lrp sbdb.Row, routerDatapath string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.exposeSubnetLocked(lrp, routerDatapath)
}

// WithdrawSubnet handles a subnet-router-detached event.
func (e *Engine) WithdrawSubnet(lrp sbdb.Row, routerDatapath string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.withdrawSubnetLocked(lrp, routerDatapath)
}

// ExposeRemote handles a tenant-port-created event.
func (e *Engine) ExposeRemote(row sbdb.Row, ips []string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.exposeRemoteLocked(row, ips)
}

// WithdrawRemote handles a tenant-port-deleted event.
func (e *Engine) WithdrawRemote(row sbdb.Row, ips []string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.withdrawRemoteLocked(row, ips)
}
