// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

// Package exposure is the route-exposure reconciler: it maps southbound
// database events and a periodic full sync onto idempotent mutations of
// the host network surface, local flow tables, and the routing daemon's
// VRF leak. A single lock totally orders every mutation; convergence after
// arbitrary divergence is achieved by Sync rather than by persisted state.
package exposure
