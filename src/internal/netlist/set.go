package netlist

import (
	"bytes"
	"io"
	"iter"
	"maps"
	"net/netip"
	"slices"
)

// PrefixSet is a set of canonical prefixes. The zero value is not usable;
// create sets with NewPrefixSet.
type PrefixSet struct {
	prefixes map[netip.Prefix]struct{}
}

// NewPrefixSet returns an empty set.
func NewPrefixSet() *PrefixSet {
	return &PrefixSet{prefixes: make(map[netip.Prefix]struct{})}
}

// Add inserts p in canonical form. Invalid prefixes are ignored.
func (s *PrefixSet) Add(p netip.Prefix) {
	if !p.IsValid() {
		return
	}
	s.prefixes[p.Masked()] = struct{}{}
}

// AddAll inserts every prefix of seq.
func (s *PrefixSet) AddAll(seq iter.Seq[netip.Prefix]) {
	for p := range seq {
		s.Add(p)
	}
}

// Merge adds every prefix of other to s.
func (s *PrefixSet) Merge(other *PrefixSet) {
	for p := range other.prefixes {
		s.prefixes[p] = struct{}{}
	}
}

// Contains reports whether the canonical form of p is in the set.
func (s *PrefixSet) Contains(p netip.Prefix) bool {
	_, ok := s.prefixes[p.Masked()]
	return ok
}

func (s *PrefixSet) Len() int {
	return len(s.prefixes)
}

// Count returns the number of prefixes per family.
func (s *PrefixSet) Count() (ipv4, ipv6 int) {
	for p := range s.prefixes {
		if FamilyOf(p) == IPv4 {
			ipv4++
		} else {
			ipv6++
		}
	}
	return ipv4, ipv6
}

// Sorted returns the prefixes ordered by Compare.
func (s *PrefixSet) Sorted() []netip.Prefix {
	return slices.SortedFunc(maps.Keys(s.prefixes), Compare)
}

// WriteTo writes the serialized set to w: one CIDR literal per line in Compare
// order, every line newline-terminated. An empty set writes nothing.
func (s *PrefixSet) WriteTo(w io.Writer) (int64, error) {
	var buf bytes.Buffer
	for _, p := range s.Sorted() {
		buf.WriteString(p.String())
		buf.WriteByte('\n')
	}
	return buf.WriteTo(w)
}

// Bytes returns the serialized set as produced by WriteTo.
func (s *PrefixSet) Bytes() []byte {
	var buf bytes.Buffer
	_, _ = s.WriteTo(&buf)
	return buf.Bytes()
}
