// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

package netutil

import "strings"

// PortAddresses is the hardware address and the one or two IP addresses
// (CIDR notation) carried by a southbound port-binding's mac field, e.g.
// "fa:16:3e:aa:bb:cc 10.0.0.5/24" or "fa:16:3e:aa:bb:cc 10.0.0.5/24 2001:db8::5/64".
type PortAddresses struct {
	HWAddr string
	IPs    []string
}

// ParsePortMAC splits a southbound mac field into its hardware address and
// IP tuple. A port carries one IP entry, or two when it has both a v4 and a
// v6 address. Entries with fewer than two space-separated fields are
// considered malformed and return ok=false; the caller should skip the row.
func ParsePortMAC(field string) (PortAddresses, bool) {
	parts := strings.Fields(field)
	if len(parts) < 2 || len(parts) > 3 {
		return PortAddresses{}, false
	}
	return PortAddresses{HWAddr: parts[0], IPs: parts[1:]}, true
}
