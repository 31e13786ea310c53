// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

// Package hns (Host Network Surface) is the agent's sole point of contact
// with the kernel: VRF and dummy-device management, address exposure,
// policy routing, and NDP proxying. Every operation here is idempotent -
// applying it when the target state already holds must succeed silently,
// and removing state that is already absent must not error. This lets the
// exposure engine call these operations freely from both event handlers and
// the full reconciliation pass without tracking what it has already done.
package hns
