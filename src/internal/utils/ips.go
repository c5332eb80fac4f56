package utils

import (
	"fmt"
	"net/netip"
	"strings"
)

// ParseNetworkPrefix parses a network address in CIDR notation.
//
// A bare address is accepted as a single-host prefix (/32 or /128). Prefixes
// with host bits set (10.0.0.1/8) are rejected: they name an address, not a
// network.
func ParseNetworkPrefix(value string) (netip.Prefix, error) {
	s := strings.TrimSpace(value)
	if s == "" {
		return netip.Prefix{}, fmt.Errorf("empty prefix")
	}

	if !strings.Contains(s, "/") {
		addr, err := netip.ParseAddr(s)
		if err != nil {
			return netip.Prefix{}, fmt.Errorf("invalid address %q: %w", value, err)
		}
		if addr.Zone() != "" {
			return netip.Prefix{}, fmt.Errorf("zoned address %q is not a network", value)
		}
		return netip.PrefixFrom(addr, addr.BitLen()), nil
	}

	prefix, err := netip.ParsePrefix(s)
	if err != nil {
		return netip.Prefix{}, fmt.Errorf("invalid prefix %q: %w", value, err)
	}
	if prefix.Masked() != prefix {
		return netip.Prefix{}, fmt.Errorf("%q has host bits set (network is %s)", value, prefix.Masked())
	}

	return prefix, nil
}

// IsIPv4Prefix reports whether the prefix belongs to the IPv4 family.
// IPv4-mapped IPv6 prefixes are IPv6.
func IsIPv4Prefix(p netip.Prefix) bool {
	return p.Addr().Is4()
}
