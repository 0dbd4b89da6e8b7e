package netlist

import (
	"cmp"
	"fmt"
	"net/netip"
	"strings"
)

// Family is the IP address family of a prefix.
type Family uint8

const (
	IPv4 Family = 4
	IPv6 Family = 6
)

func (f Family) String() string {
	switch f {
	case IPv4:
		return "ipv4"
	case IPv6:
		return "ipv6"
	default:
		return fmt.Sprintf("family(%d)", uint8(f))
	}
}

// FamilyOf returns the family of p. IPv4-mapped IPv6 prefixes are IPv6.
func FamilyOf(p netip.Prefix) Family {
	if p.Addr().Is4() {
		return IPv4
	}
	return IPv6
}

// ParsePrefix parses a single CIDR literal or bare address and returns it in
// canonical form: host bits cleared, bare addresses widened to a host route
// (/32 or /128). Zone identifiers are rejected.
func ParsePrefix(s string) (netip.Prefix, error) {
	if strings.Contains(s, "/") {
		p, err := netip.ParsePrefix(s)
		if err != nil {
			return netip.Prefix{}, err
		}
		return p.Masked(), nil
	}

	addr, err := netip.ParseAddr(s)
	if err != nil {
		return netip.Prefix{}, err
	}
	if addr.Zone() != "" {
		return netip.Prefix{}, fmt.Errorf("address %q has a zone identifier", s)
	}
	return netip.PrefixFrom(addr, addr.BitLen()), nil
}

// Compare orders prefixes by family, then address, then prefix length.
// IPv4 sorts before IPv6.
func Compare(a, b netip.Prefix) int {
	// Addr.Compare orders by bit length before address bytes, which puts
	// every IPv4 address before every IPv6 one.
	if c := a.Addr().Compare(b.Addr()); c != 0 {
		return c
	}
	return cmp.Compare(a.Bits(), b.Bits())
}
