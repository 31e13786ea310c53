// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

package exposure

import (
	"net"
	"strings"
)

// stripMask returns ip with any trailing "/..." removed.
func stripMask(ip string) string {
	if i := strings.IndexByte(ip, '/'); i >= 0 {
		return ip[:i]
	}
	return ip
}

// isIPv6 reports whether addr (bare or CIDR) is an IPv6 address.
func isIPv6(addr string) bool {
	return strings.Contains(stripMask(addr), ":")
}

// sameFamily reports whether a and b are both IPv4 or both IPv6.
func sameFamily(a, b string) bool {
	return isIPv6(a) == isIPv6(b)
}

// normalizeCIDR canonicalizes a bare or masked address the same way the
// host network surface does internally, so sync bookkeeping keys agree
// with what it reports back from the kernel.
func normalizeCIDR(addr string) string {
	cidr := addr
	if !strings.Contains(cidr, "/") {
		if isIPv6(cidr) {
			cidr += "/128"
		} else {
			cidr += "/32"
		}
	}
	_, ipnet, err := net.ParseCIDR(cidr)
	if err != nil {
		return addr
	}
	return ipnet.String()
}

// networkAndMask splits a CIDR like "2001:db8:1::1/64" into its network
// address ("2001:db8:1::") and decimal mask width ("64").
func networkAndMask(cidr string) (network string, mask string) {
	parts := strings.SplitN(cidr, "/", 2)
	if len(parts) != 2 {
		return cidr, ""
	}
	_, ipnet, err := net.ParseCIDR(cidr)
	if err != nil {
		return parts[0], parts[1]
	}
	return ipnet.IP.String(), parts[1]
}

// pickGateway returns the first address in gateways whose family matches
// addr - the first-match-wins behavior carried over from the source
// driver for routers with mixed-family gateway addresses.
func pickGateway(addr string, gateways []string) (string, bool) {
	for _, g := range gateways {
		if sameFamily(addr, g) {
			return stripMask(g), true
		}
	}
	return "", false
}

// isGatewayIP reports whether addr (bare or masked) is one of gateways -
// an LRP whose own interface address coincides with the CR-LRP's gateway
// is the gateway port itself, not a tenant subnet to expose.
func isGatewayIP(addr string, gateways []string) bool {
	bare := stripMask(addr)
	for _, g := range gateways {
		if stripMask(g) == bare {
			return true
		}
	}
	return false
}
