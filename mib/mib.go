// Package mib implements the OID model and the in-memory symbol table used
// by the SNMP client: parsing and printing of object identifiers in
// numeric, short symbolic, and full symbolic form, and per-object display
// metadata (base type, DISPLAY-HINT, enumerations).
//
// The table is populated from the compiled-in baseline (see Baseline) or
// programmatically through a Builder, and is read-only afterwards.
package mib

import (
	"fmt"
	"iter"
	"strings"
)

// Lookup selects how an OID is rendered.
type Lookup int

const (
	LookupShort   Lookup = iota // shortest unambiguous symbolic form, MODULE::name.suffix
	LookupNumeric               // dotted numeric arcs
	LookupFull                  // complete symbolic path from the root
)

// UnknownNameError reports a symbolic OID segment that is not in the table.
type UnknownNameError struct {
	Name string
}

func (e *UnknownNameError) Error() string {
	return fmt.Sprintf("unknown object identifier: %s", e.Name)
}

// Mib is the symbol table: an OID trie with a name index. It is immutable
// once built.
type Mib struct {
	root        *Node
	nameToNodes map[string][]*Node
	typeByName  map[string]*Type
	nodeCount   int
}

func newMib() *Mib {
	return &Mib{
		root:        &Node{kind: KindInternal},
		nameToNodes: make(map[string][]*Node),
		typeByName:  make(map[string]*Type),
	}
}

// Root returns the unnamed pseudo-root of the OID tree.
func (m *Mib) Root() *Node { return m.root }

// NodeCount returns the number of registered nodes.
func (m *Mib) NodeCount() int { return m.nodeCount }

// Nodes returns an in-order iterator over every node in the tree,
// excluding the pseudo-root.
func (m *Mib) Nodes() iter.Seq[*Node] {
	return func(yield func(*Node) bool) {
		for _, child := range m.root.sortedChildren() {
			if !child.yieldAll(yield) {
				return
			}
		}
	}
}

// Node returns the node with the given name, or nil if not found.
// Nodes carrying type metadata are preferred over bare identity nodes.
func (m *Mib) Node(name string) *Node {
	nodes := m.nameToNodes[name]
	for _, nd := range nodes {
		if nd.typ != nil {
			return nd
		}
	}
	if len(nodes) > 0 {
		return nodes[0]
	}
	return nil
}

// Type returns the named type (textual convention), or nil if not found.
func (m *Mib) Type(name string) *Type {
	return m.typeByName[name]
}

// NodeByOID returns the node registered at exactly the given OID, or nil.
func (m *Mib) NodeByOID(oid Oid) *Node {
	if len(oid) == 0 {
		return nil
	}
	nd, exact := m.root.walkOID(oid)
	if !exact {
		return nil
	}
	return nd
}

// LongestPrefixByOID returns the deepest node matching a prefix of the
// given OID, or nil when not even the first arc matches.
func (m *Mib) LongestPrefixByOID(oid Oid) *Node {
	if len(oid) == 0 {
		return nil
	}
	nd := m.root.LongestPrefix(oid)
	if nd == m.root {
		return nil
	}
	return nd
}

// ObjectFor returns the nearest ancestor-or-self of the given OID that
// carries type metadata. This is the object definition a varbind name like
// ifDescr.1 resolves to.
func (m *Mib) ObjectFor(oid Oid) *Node {
	for nd := m.LongestPrefixByOID(oid); nd != nil && nd.parent != nil; nd = nd.parent {
		if nd.typ != nil {
			return nd
		}
	}
	return nil
}

// Parse resolves an OID string: purely numeric ("1.3.6.1.2.1"), fully
// symbolic ("system.sysDescr.0"), or mixed ("sysDescr.0"). A leading dot is
// permitted and ignored. Symbolic segments resolve through the name index;
// the first segment may be any registered name, later segments must name a
// child of the node reached so far. Unknown symbols fail with
// *UnknownNameError.
func (m *Mib) Parse(s string) (Oid, error) {
	trimmed := strings.TrimPrefix(s, ".")
	if trimmed == "" {
		return nil, fmt.Errorf("empty OID: %q", s)
	}
	if isNumericOid(trimmed) {
		return ParseNumeric(trimmed)
	}

	var arcs Oid
	nd := m.root
	first := true
	for _, seg := range strings.Split(trimmed, ".") {
		if seg == "" {
			return nil, fmt.Errorf("empty segment in OID: %s", s)
		}
		switch {
		case isDigits(seg):
			sub, err := ParseNumeric(seg)
			if err != nil {
				return nil, err
			}
			arcs = append(arcs, sub[0])
			if nd != nil {
				nd = nd.Child(sub[0])
			}
		case first:
			// Any registered name can open a symbolic OID.
			if nd = m.Node(seg); nd == nil {
				return nil, &UnknownNameError{Name: seg}
			}
			arcs = append(arcs, nd.OID()...)
		case nd == nil:
			// A numeric detour left the registered tree; no names
			// can resolve below this point.
			return nil, &UnknownNameError{Name: seg}
		default:
			if nd = nd.ChildNamed(seg); nd == nil {
				return nil, &UnknownNameError{Name: seg}
			}
			arcs = append(arcs, nd.arc)
		}
		first = false
	}
	if len(arcs) > MaxArcs {
		return nil, fmt.Errorf("OID exceeds %d arcs: %s", MaxArcs, s)
	}
	return arcs, nil
}

// Format renders an OID in the given lookup mode. Arcs below the deepest
// registered node render as numbers; an OID with no named node on its path
// renders fully numerically in short mode.
func (m *Mib) Format(oid Oid, mode Lookup) string {
	if len(oid) == 0 {
		return ""
	}
	switch mode {
	case LookupNumeric:
		return "." + oid.String()
	case LookupFull:
		return m.formatFull(oid)
	default:
		return m.formatShort(oid)
	}
}

// formatShort renders MODULE::name followed by the numeric arcs below the
// deepest named node.
func (m *Mib) formatShort(oid Oid) string {
	nd := m.namedPrefix(oid)
	if nd == nil {
		return "." + oid.String()
	}
	depth := len(nd.OID())
	var b strings.Builder
	if nd.module != "" {
		b.WriteString(nd.module)
		b.WriteString("::")
	}
	b.WriteString(nd.name)
	for _, arc := range oid[depth:] {
		fmt.Fprintf(&b, ".%d", arc)
	}
	return b.String()
}

// formatFull renders the complete path from the root, using names where
// registered and arc numbers elsewhere.
func (m *Mib) formatFull(oid Oid) string {
	var b strings.Builder
	nd := m.root
	for _, arc := range oid {
		if nd != nil {
			nd = nd.Child(arc)
		}
		b.WriteByte('.')
		if nd != nil && nd.name != "" {
			b.WriteString(nd.name)
		} else {
			fmt.Fprintf(&b, "%d", arc)
		}
	}
	return b.String()
}

// namedPrefix returns the deepest named node on the path of oid.
func (m *Mib) namedPrefix(oid Oid) *Node {
	var named *Node
	nd := m.root
	for _, arc := range oid {
		if nd = nd.Child(arc); nd == nil {
			break
		}
		if nd.name != "" {
			named = nd
		}
	}
	return named
}

func isNumericOid(s string) bool {
	for i := 0; i < len(s); i++ {
		if c := s[i]; c != '.' && (c < '0' || c > '9') {
			return false
		}
	}
	return true
}

func isDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return len(s) > 0
}
