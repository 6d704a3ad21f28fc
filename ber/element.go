// Package ber implements the subset of ASN.1 BER needed to build and parse
// SNMPv1/v2c messages, including the SNMP application-class types
// (IpAddress, Counter32, Gauge32, TimeTicks, Opaque, Counter64).
//
// An Element is a tagged sum: a constructed element carries an ordered list
// of children, a primitive element carries raw content bytes. Constructors
// encode typed values into content bytes up front; accessors decode them
// back, so Encode and Decode deal only in tag/length/content framing.
package ber

import (
	"errors"
	"fmt"
	"math"
)

// Class is the two-bit tag class of a BER identifier octet.
type Class uint8

const (
	ClassUniversal   Class = 0
	ClassApplication Class = 1
	ClassContext     Class = 2
	ClassPrivate     Class = 3
)

func (c Class) String() string {
	switch c {
	case ClassUniversal:
		return "universal"
	case ClassApplication:
		return "application"
	case ClassContext:
		return "context"
	case ClassPrivate:
		return "private"
	default:
		return fmt.Sprintf("Class(%d)", uint8(c))
	}
}

// Universal tags used by SNMP messages.
const (
	TagBoolean          uint32 = 1
	TagInteger          uint32 = 2
	TagBitString        uint32 = 3
	TagOctetString      uint32 = 4
	TagNull             uint32 = 5
	TagObjectIdentifier uint32 = 6
	TagSequence         uint32 = 16
)

// Application tags defined by the SNMP SMI.
const (
	TagIPAddress uint32 = 0
	TagCounter32 uint32 = 1
	TagGauge32   uint32 = 2
	TagTimeTicks uint32 = 3
	TagOpaque    uint32 = 4
	TagCounter64 uint32 = 6
)

// Context tags for the varbind exception markers of RFC 3416.
const (
	TagNoSuchObject   uint32 = 0
	TagNoSuchInstance uint32 = 1
	TagEndOfMibView   uint32 = 2
)

// Element is a single BER node. Exactly one of Bytes (primitive) or
// Children (constructed) is meaningful, selected by Constructed.
type Element struct {
	Class       Class
	Tag         uint32
	Constructed bool
	Bytes       []byte
	Children    []*Element
}

var (
	errNotConstructed = errors.New("ber: element is not constructed")
	errWrongType      = errors.New("ber: element has unexpected type")
)

// Integer returns a UNIVERSAL INTEGER element.
func Integer(v int64) *Element {
	return &Element{Class: ClassUniversal, Tag: TagInteger, Bytes: intContents(v)}
}

// Boolean returns a UNIVERSAL BOOLEAN element.
func Boolean(v bool) *Element {
	b := byte(0x00)
	if v {
		b = 0xff
	}
	return &Element{Class: ClassUniversal, Tag: TagBoolean, Bytes: []byte{b}}
}

// OctetString returns a UNIVERSAL OCTET STRING element.
func OctetString(b []byte) *Element {
	return &Element{Class: ClassUniversal, Tag: TagOctetString, Bytes: b}
}

// String returns an OCTET STRING element holding s.
func String(s string) *Element {
	return OctetString([]byte(s))
}

// Null returns a UNIVERSAL NULL element.
func Null() *Element {
	return &Element{Class: ClassUniversal, Tag: TagNull}
}

// ObjectIdentifier returns a UNIVERSAL OBJECT IDENTIFIER element.
// At least two arcs are required by the encoding.
func ObjectIdentifier(arcs []uint32) (*Element, error) {
	b, err := encodeOIDContents(arcs)
	if err != nil {
		return nil, err
	}
	return &Element{Class: ClassUniversal, Tag: TagObjectIdentifier, Bytes: b}, nil
}

// Sequence returns a UNIVERSAL SEQUENCE with the given children.
func Sequence(children ...*Element) *Element {
	return &Element{Class: ClassUniversal, Tag: TagSequence, Constructed: true, Children: children}
}

// Context returns a constructed CONTEXT-class element, as used for PDU
// wrappers (GetRequest, GetResponse, ...).
func Context(tag uint32, children ...*Element) *Element {
	return &Element{Class: ClassContext, Tag: tag, Constructed: true, Children: children}
}

// ContextNull returns a primitive zero-length CONTEXT-class element, as used
// for the noSuchObject/noSuchInstance/endOfMibView markers.
func ContextNull(tag uint32) *Element {
	return &Element{Class: ClassContext, Tag: tag}
}

// IPAddress returns an APPLICATION IpAddress element (4 octets).
func IPAddress(addr [4]byte) *Element {
	return &Element{Class: ClassApplication, Tag: TagIPAddress, Bytes: addr[:]}
}

// Counter32 returns an APPLICATION Counter32 element.
func Counter32(v uint32) *Element {
	return appUint(TagCounter32, uint64(v))
}

// Gauge32 returns an APPLICATION Gauge32 element.
func Gauge32(v uint32) *Element {
	return appUint(TagGauge32, uint64(v))
}

// TimeTicks returns an APPLICATION TimeTicks element.
func TimeTicks(v uint32) *Element {
	return appUint(TagTimeTicks, uint64(v))
}

// Counter64 returns an APPLICATION Counter64 element.
func Counter64(v uint64) *Element {
	return appUint(TagCounter64, v)
}

// Opaque returns an APPLICATION Opaque element wrapping raw bytes.
func Opaque(b []byte) *Element {
	return &Element{Class: ClassApplication, Tag: TagOpaque, Bytes: b}
}

// appUint builds an application-class non-negative integer. The contents are
// INTEGER two's-complement bytes; a leading zero pad keeps the top bit clear
// so the value cannot read back negative.
func appUint(tag uint32, v uint64) *Element {
	return &Element{Class: ClassApplication, Tag: tag, Bytes: uintContents(v)}
}

// IsNull reports whether the element is a UNIVERSAL NULL.
func (e *Element) IsNull() bool {
	return e.Class == ClassUniversal && e.Tag == TagNull && !e.Constructed
}

// IsException reports whether the element is one of the context-class
// exception markers that appear in place of a value in v2c responses.
func (e *Element) IsException() bool {
	return e.Class == ClassContext && !e.Constructed && e.Tag <= TagEndOfMibView
}

// Int64 decodes the element contents as a signed two's-complement integer.
// It accepts UNIVERSAL INTEGER and the application integer types.
func (e *Element) Int64() (int64, error) {
	if e.Constructed {
		return 0, errWrongType
	}
	if len(e.Bytes) == 0 {
		return 0, errors.New("ber: empty integer contents")
	}
	if len(e.Bytes) > 8 {
		return 0, errors.New("ber: integer exceeds 64 bits")
	}
	v := int64(0)
	if e.Bytes[0]&0x80 != 0 {
		v = -1
	}
	for _, b := range e.Bytes {
		v = v<<8 | int64(b)
	}
	return v, nil
}

// Uint64 decodes the element contents as an unsigned integer, as used by the
// application counter and gauge types. A single leading zero pad octet is
// accepted (and required when the top bit of the value is set).
func (e *Element) Uint64() (uint64, error) {
	if e.Constructed {
		return 0, errWrongType
	}
	b := e.Bytes
	if len(b) == 0 {
		return 0, errors.New("ber: empty integer contents")
	}
	if b[0]&0x80 != 0 {
		return 0, errors.New("ber: negative value for unsigned type")
	}
	if len(b) > 1 && b[0] == 0 {
		b = b[1:]
	}
	if len(b) > 8 {
		return 0, errors.New("ber: unsigned integer exceeds 64 bits")
	}
	v := uint64(0)
	for _, octet := range b {
		v = v<<8 | uint64(octet)
	}
	return v, nil
}

// OctetString returns the raw contents of a primitive string-like element.
func (e *Element) OctetString() ([]byte, error) {
	if e.Constructed {
		return nil, errWrongType
	}
	return e.Bytes, nil
}

// ObjectIdentifier decodes the element contents as an OID arc sequence.
func (e *Element) ObjectIdentifier() ([]uint32, error) {
	if e.Constructed || e.Class != ClassUniversal || e.Tag != TagObjectIdentifier {
		return nil, errWrongType
	}
	return decodeOIDContents(e.Bytes)
}

// IPAddr returns the 4-octet contents of an APPLICATION IpAddress element.
func (e *Element) IPAddr() ([4]byte, error) {
	var addr [4]byte
	if e.Constructed || e.Class != ClassApplication || e.Tag != TagIPAddress {
		return addr, errWrongType
	}
	if len(e.Bytes) != 4 {
		return addr, fmt.Errorf("ber: IpAddress contents are %d octets, want 4", len(e.Bytes))
	}
	copy(addr[:], e.Bytes)
	return addr, nil
}

// At returns the i-th child of a constructed element.
func (e *Element) At(i int) (*Element, error) {
	if !e.Constructed {
		return nil, errNotConstructed
	}
	if i < 0 || i >= len(e.Children) {
		return nil, fmt.Errorf("ber: child index %d out of range (%d children)", i, len(e.Children))
	}
	return e.Children[i], nil
}

// intContents returns the minimal two's-complement encoding of v.
func intContents(v int64) []byte {
	n := 1
	for ; n < 8; n++ {
		// The encoding fits in n bytes when the remaining high bits are
		// all sign extension.
		shifted := v >> (uint(n)*8 - 1)
		if shifted == 0 || shifted == -1 {
			break
		}
	}
	out := make([]byte, n)
	for i := n - 1; i >= 0; i-- {
		out[i] = byte(v)
		v >>= 8
	}
	return out
}

// uintContents returns the minimal INTEGER encoding of a non-negative value,
// padding with a leading zero octet when the top bit would be set.
func uintContents(v uint64) []byte {
	if v <= math.MaxInt64 {
		return intContents(int64(v))
	}
	out := make([]byte, 9)
	for i := 8; i >= 1; i-- {
		out[i] = byte(v)
		v >>= 8
	}
	return out
}
