// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

// Package sbdb is the agent's seam onto the southbound database: the
// control-plane state describing logical ports, routers, chassis, and
// floating IPs. No wire-protocol client lives here - the real southbound
// database speaks a protocol this codebase never implements - only the
// typed read surface and event stream the exposure engine consumes.
package sbdb

// Port-binding type tags recognized by the exposure engine. Anything else
// is ignored.
const (
	PortTypeVM              = "vm"
	PortTypeVirtual         = "virtual"
	PortTypePatch           = "patch"
	PortTypeChassisRedirect = "chassisredirect"
)

// Row is an immutable snapshot of a southbound database row delivered with
// an event or returned from a Client query.
type Row struct {
	Type        string
	Datapath    string
	LogicalPort string
	// MAC holds this port's mac field entries; [0] is the hardware
	// address plus the one or two IP addresses the port carries,
	// space-separated, e.g. "fa:16:3e:aa:bb:cc 10.0.0.5/32".
	MAC     []string
	Chassis string
	Options map[string]string
}

// EventKind enumerates the southbound events the agent subscribes to.
type EventKind int

const (
	PortBindingChassisCreated EventKind = iota
	PortBindingChassisDeleted
	FIPSet
	FIPUnset
	ChassisCreated
	SubnetRouterAttached
	SubnetRouterDetached
	TenantPortCreated
	TenantPortDeleted
)

func (k EventKind) String() string {
	switch k {
	case PortBindingChassisCreated:
		return "port_binding_chassis_created"
	case PortBindingChassisDeleted:
		return "port_binding_chassis_deleted"
	case FIPSet:
		return "fip_set"
	case FIPUnset:
		return "fip_unset"
	case ChassisCreated:
		return "chassis_created"
	case SubnetRouterAttached:
		return "subnet_router_attached"
	case SubnetRouterDetached:
		return "subnet_router_detached"
	case TenantPortCreated:
		return "tenant_port_created"
	case TenantPortDeleted:
		return "tenant_port_deleted"
	default:
		return "unknown"
	}
}

// Event is one southbound notification.
type Event struct {
	Kind EventKind
	// IPs is the set of addresses the event concerns - a port's exposed
	// IPs for port-binding/tenant events, or the floating IP for FIP
	// events.
	IPs []string
	Row Row
	// AssociatedPort carries event-specific contextual identifiers: the
	// bound logical port for FIP events, the owning router's datapath for
	// subnet-router attach/detach events. Unused by other event kinds.
	AssociatedPort string
}
