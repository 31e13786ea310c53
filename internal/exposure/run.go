// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

package exposure

import (
	"context"
	"time"

	"github.com/ovn-bgp/ovn-bgp-agent/internal/sbdb"
)

// Run pulls events off source one at a time and dispatches each under the
// serialization gate, and drives a periodic full Sync at syncInterval. It
// blocks until ctx is cancelled or source's event channel is closed.
func (e *Engine) Run(ctx context.Context, source sbdb.EventSource, syncInterval time.Duration) error {
	if err := e.WaitReady(ctx); err != nil {
		return err
	}

	ticker := time.NewTicker(syncInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := e.Sync(); err != nil {
				e.log.Errorf("sync: %v", err)
			}
		case ev, ok := <-source.Events():
			if !ok {
				return nil
			}
			e.handleEvent(ev)
		}
	}
}

func (e *Engine) handleEvent(ev sbdb.Event) {
	switch ev.Kind {
	case sbdb.PortBindingChassisCreated:
		e.ExposePortBinding(ev.Row)
	case sbdb.PortBindingChassisDeleted:
		e.WithdrawPortBinding(ev.Row)
	case sbdb.FIPSet:
		if len(ev.IPs) == 0 {
			return
		}
		e.ExposeFIP(ev.IPs[0], ev.Row.Datapath)
	case sbdb.FIPUnset:
		if len(ev.IPs) == 0 {
			return
		}
		e.WithdrawFIP(ev.IPs[0], ev.Row.Datapath)
	case sbdb.ChassisCreated:
		if err := e.Sync(); err != nil {
			e.log.Errorf("sync after chassis create: %v", err)
		}
	case sbdb.SubnetRouterAttached:
		e.ExposeSubnet(ev.Row, ev.AssociatedPort)
	case sbdb.SubnetRouterDetached:
		e.WithdrawSubnet(ev.Row, ev.AssociatedPort)
	case sbdb.TenantPortCreated:
		e.ExposeRemote(ev.Row, ev.IPs)
	case sbdb.TenantPortDeleted:
		e.WithdrawRemote(ev.Row, ev.IPs)
	}
}
