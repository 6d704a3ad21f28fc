package mib

import (
	"fmt"
	"slices"
	"strings"
)

// MaxArcs is the longest object identifier the client handles.
const MaxArcs = 128

// Oid is a sequence of arc values representing an SNMP Object Identifier.
// It is a defined type (not alias) so methods can be attached.
type Oid []uint32

// ParseNumeric parses a purely numeric dotted OID (e.g. "1.3.6.1.2.1").
// A single leading dot is permitted and ignored. Symbolic names are handled
// by [Mib.Parse].
func ParseNumeric(s string) (Oid, error) {
	orig := s
	s = strings.TrimPrefix(s, ".")
	if s == "" {
		return nil, fmt.Errorf("empty OID: %q", orig)
	}

	var arcs Oid
	var current uint64
	var hasDigit bool
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= '0' && c <= '9':
			current = current*10 + uint64(c-'0')
			if current > 0xffffffff {
				return nil, fmt.Errorf("arc overflow in OID: %s", orig)
			}
			hasDigit = true
		case c == '.':
			if !hasDigit {
				return nil, fmt.Errorf("empty arc in OID: %s", orig)
			}
			arcs = append(arcs, uint32(current))
			current = 0
			hasDigit = false
		default:
			return nil, fmt.Errorf("invalid character %q in OID: %s", c, orig)
		}
	}
	if !hasDigit {
		return nil, fmt.Errorf("trailing dot in OID: %s", orig)
	}
	arcs = append(arcs, uint32(current))
	if len(arcs) > MaxArcs {
		return nil, fmt.Errorf("OID exceeds %d arcs: %s", MaxArcs, orig)
	}
	return arcs, nil
}

// String returns the dotted string representation (e.g. "1.3.6.1.2.1").
func (o Oid) String() string {
	if len(o) == 0 {
		return ""
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%d", o[0])
	for _, arc := range o[1:] {
		fmt.Fprintf(&b, ".%d", arc)
	}
	return b.String()
}

// Clone returns an independent copy.
func (o Oid) Clone() Oid {
	return slices.Clone(o)
}

// Parent returns the parent OID (all arcs except the last).
// Returns nil if the OID is empty or has only one arc.
func (o Oid) Parent() Oid {
	if len(o) <= 1 {
		return nil
	}
	return slices.Clone(o[:len(o)-1])
}

// Child returns a new OID with the given arc appended.
func (o Oid) Child(arc uint32) Oid {
	result := make(Oid, len(o)+1)
	copy(result, o)
	result[len(result)-1] = arc
	return result
}

// HasPrefix returns true if this OID starts with the given prefix.
func (o Oid) HasPrefix(prefix Oid) bool {
	if len(prefix) > len(o) {
		return false
	}
	for i, arc := range prefix {
		if o[i] != arc {
			return false
		}
	}
	return true
}

// Equal returns true if the OIDs are identical.
func (o Oid) Equal(other Oid) bool {
	return slices.Equal(o, other)
}

// Compare returns -1 if o < other, 0 if equal, 1 if o > other.
// Comparison is lexicographic by arc value; a strict prefix sorts before
// any of its extensions.
func (o Oid) Compare(other Oid) int {
	return slices.Compare(o, other)
}

// CompareTree is Compare extended with subtree information:
//
//	 0  equal
//	 2  o is a strict prefix of other (other lies under subtree o)
//	-2  other is a strict prefix of o
//	-1  o sorts before other, no prefix relation
//	 1  o sorts after other, no prefix relation
//
// The walk engine keys off the 2 case to detect leaving the start subtree.
func (o Oid) CompareTree(other Oid) int {
	n := min(len(o), len(other))
	for i := 0; i < n; i++ {
		if o[i] != other[i] {
			if o[i] < other[i] {
				return -1
			}
			return 1
		}
	}
	switch {
	case len(o) < len(other):
		return 2
	case len(o) > len(other):
		return -2
	default:
		return 0
	}
}

// LastArc returns the last arc value, or 0 if empty.
func (o Oid) LastArc() uint32 {
	if len(o) == 0 {
		return 0
	}
	return o[len(o)-1]
}
