package netlist

import (
	"iter"
	"net/netip"
	"strings"
)

// Parser turns raw list text into canonical prefixes.
//
// In strict mode (the default) a line must consist of exactly one address or
// CIDR literal after trimming surrounding whitespace. In lenient mode only the
// leading run of address characters is considered, so trailing annotations
// such as "192.0.2.0/24 spam source" are tolerated.
type Parser struct {
	Lenient bool
	// OnMalformed, if set, is called for every non-blank line that could not
	// be parsed. lineNo is 1-based.
	OnMalformed func(lineNo int, line string, err error)
}

// Prefixes returns a lazy sequence over the prefixes found in text. Blank
// lines are ignored and malformed lines are skipped.
func (p Parser) Prefixes(text string) iter.Seq[netip.Prefix] {
	return func(yield func(netip.Prefix) bool) {
		lineNo := 0
		rest := text
		for len(rest) > 0 {
			var line string
			line, rest, _ = strings.Cut(rest, "\n")
			lineNo++

			candidate := strings.TrimSpace(line)
			if p.Lenient {
				candidate = leadingNetwork(line)
			}
			if candidate == "" {
				if p.Lenient && strings.TrimSpace(line) != "" {
					p.malformed(lineNo, line, errNoAddress)
				}
				continue
			}

			prefix, err := ParsePrefix(candidate)
			if err != nil {
				p.malformed(lineNo, line, err)
				continue
			}
			if !yield(prefix) {
				return
			}
		}
	}
}

// ParseAll collects every prefix of text into a new set.
func (p Parser) ParseAll(text string) *PrefixSet {
	set := NewPrefixSet()
	for prefix := range p.Prefixes(text) {
		set.Add(prefix)
	}
	return set
}

func (p Parser) malformed(lineNo int, line string, err error) {
	if p.OnMalformed != nil {
		p.OnMalformed(lineNo, strings.TrimRight(line, "\r"), err)
	}
}

type parseError string

func (e parseError) Error() string { return string(e) }

const errNoAddress = parseError("line does not start with an address")

func isNetChar(c byte) bool {
	return (c >= '0' && c <= '9') ||
		(c >= 'a' && c <= 'f') ||
		(c >= 'A' && c <= 'F') ||
		c == '.' || c == ':' || c == '/'
}

// leadingNetwork strips leading whitespace, then cuts the line at the first
// character that cannot be part of an address or CIDR literal.
func leadingNetwork(line string) string {
	trimmed := strings.TrimLeft(line, " \t\r\v\f")
	for i := 0; i < len(trimmed); i++ {
		if !isNetChar(trimmed[i]) {
			return trimmed[:i]
		}
	}
	return trimmed
}
