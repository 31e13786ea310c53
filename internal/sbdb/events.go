// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

package sbdb

// EventSource delivers southbound notifications as a message stream: the
// exposure engine pulls one Event at a time off Events() rather than
// registering per-kind callbacks, so dispatch is a single, easily-tested
// loop regardless of how many kinds of event exist.
type EventSource interface {
	// Events returns the channel new notifications are delivered on. It
	// is closed when the underlying connection is torn down.
	Events() <-chan Event
}

// EventSet returns the event kinds the agent subscribes to: the baseline
// set, plus the tenant-exposure set when exposeTenantNetworks is true.
func EventSet(exposeTenantNetworks bool) []EventKind {
	kinds := []EventKind{
		PortBindingChassisCreated,
		PortBindingChassisDeleted,
		FIPSet,
		FIPUnset,
		ChassisCreated,
	}
	if exposeTenantNetworks {
		kinds = append(kinds,
			SubnetRouterAttached,
			SubnetRouterDetached,
			TenantPortCreated,
			TenantPortDeleted,
		)
	}
	return kinds
}
