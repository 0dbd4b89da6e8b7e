// Package netlist parses, normalizes and serializes sets of IP prefixes.
//
// Every prefix is stored in canonical form: a netip.Prefix whose host bits are
// cleared. Two different spellings of the same network, such as 10.0.0.5/24
// and 10.0.0.0/24 or 2001:0db8::/32 and 2001:db8::/32, are therefore the same
// set key.
//
// The serialized form of a PrefixSet is one CIDR literal per line, IPv4 before
// IPv6, then by address, then by prefix length. It does not depend on the
// order in which prefixes were added.
package netlist
