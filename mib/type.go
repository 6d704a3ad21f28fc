package mib

import (
	"fmt"
	"strconv"
)

// Kind identifies what an OID node represents.
type Kind int

const (
	KindUnknown      Kind = iota
	KindInternal          // internal node without a definition
	KindNode              // OBJECT-IDENTITY, MODULE-IDENTITY, value assignment
	KindScalar            // scalar OBJECT-TYPE
	KindTable             // table (SEQUENCE OF)
	KindRow               // row (has INDEX or AUGMENTS)
	KindColumn            // column (child of row)
	KindNotification      // NOTIFICATION-TYPE or TRAP-TYPE
)

func (k Kind) String() string {
	switch k {
	case KindUnknown:
		return "unknown"
	case KindInternal:
		return "internal"
	case KindNode:
		return "node"
	case KindScalar:
		return "scalar"
	case KindTable:
		return "table"
	case KindRow:
		return "row"
	case KindColumn:
		return "column"
	case KindNotification:
		return "notification"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// BaseType identifies the fundamental SMI type of an object.
type BaseType int

const (
	BaseUnknown BaseType = iota
	BaseInteger32
	BaseUnsigned32
	BaseCounter32
	BaseCounter64
	BaseGauge32
	BaseTimeTicks
	BaseIpAddress
	BaseOctetString
	BaseObjectIdentifier
	BaseBits
	BaseOpaque
)

func (b BaseType) String() string {
	switch b {
	case BaseUnknown:
		return "unknown"
	case BaseInteger32:
		return "Integer32"
	case BaseUnsigned32:
		return "Unsigned32"
	case BaseCounter32:
		return "Counter32"
	case BaseCounter64:
		return "Counter64"
	case BaseGauge32:
		return "Gauge32"
	case BaseTimeTicks:
		return "TimeTicks"
	case BaseIpAddress:
		return "IpAddress"
	case BaseOctetString:
		return "OCTET STRING"
	case BaseObjectIdentifier:
		return "OBJECT IDENTIFIER"
	case BaseBits:
		return "BITS"
	case BaseOpaque:
		return "Opaque"
	default:
		return "BaseType(" + strconv.Itoa(int(b)) + ")"
	}
}

// NamedValue represents a labeled integer from an enum or BITS definition.
type NamedValue struct {
	Label string
	Value int64
}

// Type carries the display metadata the printer needs for a node: the
// resolved base type, DISPLAY-HINT, and enumeration labels. Named types
// model textual conventions (DisplayString, PhysAddress, ...); anonymous
// ones model inline refinements.
type Type struct {
	name  string
	base  BaseType
	hint  string
	enums []NamedValue
	isTC  bool
}

// NewType returns a named type with the given base.
func NewType(name string, base BaseType) *Type {
	return &Type{name: name, base: base}
}

// TextualConvention returns a type flagged as a TEXTUAL-CONVENTION with a
// DISPLAY-HINT.
func TextualConvention(name string, base BaseType, hint string) *Type {
	return &Type{name: name, base: base, hint: hint, isTC: true}
}

// WithEnums returns a copy of t carrying the given enumeration labels.
func (t *Type) WithEnums(enums ...NamedValue) *Type {
	dup := *t
	dup.enums = enums
	return &dup
}

// Name returns the type's name (e.g. "DisplayString"), or "" for anonymous types.
func (t *Type) Name() string { return t.name }

// Base returns the fundamental SMI type.
func (t *Type) Base() BaseType { return t.base }

// DisplayHint returns the DISPLAY-HINT string, or "".
func (t *Type) DisplayHint() string { return t.hint }

// Enums returns the enumeration labels, if any.
func (t *Type) Enums() []NamedValue { return t.enums }

// EnumLabel returns the label for an enumeration value.
func (t *Type) EnumLabel(v int64) (string, bool) {
	for _, nv := range t.enums {
		if nv.Value == v {
			return nv.Label, true
		}
	}
	return "", false
}

// IsTextualConvention reports whether this type was defined as a TEXTUAL-CONVENTION.
func (t *Type) IsTextualConvention() bool { return t.isTC }

// String returns a brief summary: "Name (BaseType)" or just "BaseType"
// for anonymous types.
func (t *Type) String() string {
	if t == nil {
		return "<nil>"
	}
	if t.name == "" {
		return t.base.String()
	}
	return t.name + " (" + t.base.String() + ")"
}
