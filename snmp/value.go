package snmp

import (
	"math"
	"strconv"
	"strings"

	"github.com/golangsnmp/snmpc/ber"
	"github.com/golangsnmp/snmpc/mib"
)

// ParseTypedValue builds a trap varbind value from a single-letter type tag
// and its literal, as accepted on the trap command line:
//
//	a  IpAddress, dotted IPv4
//	b  BITS (encoded as an OCTET STRING), decimal bit indices
//	c  Counter32
//	d  OCTET STRING from a decimal byte list
//	i  INTEGER
//	n  NULL (no value)
//	o  OBJECT IDENTIFIER, resolved through m
//	s  OCTET STRING literal
//	t  TimeTicks
//	u  INTEGER (unsigned notation)
//	x  OCTET STRING from a hex byte list
//
// Literals that do not parse under their tag fail with *BadValueError,
// except for tag o, which returns the error of m.Parse (for an unknown
// name, a *mib.UnknownNameError).
func ParseTypedValue(m *mib.Mib, tag byte, literal string) (*ber.Element, error) {
	bad := func() error { return &BadValueError{Tag: tag, Literal: literal} }

	switch tag {
	case 'a':
		addr, ok := parseIPv4(literal)
		if !ok {
			return nil, bad()
		}
		return ber.IPAddress(addr), nil

	case 'b':
		bits, err := parseBits(literal)
		if err != nil {
			return nil, bad()
		}
		// RFC 3416 section 2.5: a BITS value is encoded as an OCTET STRING.
		return ber.OctetString(bits), nil

	case 'c':
		v, err := strconv.ParseInt(literal, 10, 64)
		if err != nil || v < math.MinInt32 || v > math.MaxInt32 {
			return nil, bad()
		}
		return ber.Counter32(uint32(v)), nil

	case 'd':
		b, err := parseByteList(literal, 10)
		if err != nil {
			return nil, bad()
		}
		return ber.OctetString(b), nil

	case 'i', 'u':
		v, err := strconv.ParseInt(literal, 10, 64)
		if err != nil {
			return nil, bad()
		}
		return ber.Integer(v), nil

	case 'n':
		return ber.Null(), nil

	case 'o':
		oid, err := m.Parse(literal)
		if err != nil {
			return nil, err
		}
		return ber.ObjectIdentifier(oid)

	case 's':
		return ber.String(literal), nil

	case 't':
		v, err := strconv.ParseUint(literal, 10, 32)
		if err != nil {
			return nil, bad()
		}
		return ber.TimeTicks(uint32(v)), nil

	case 'x':
		b, err := parseByteList(literal, 16)
		if err != nil {
			return nil, bad()
		}
		return ber.OctetString(b), nil
	}
	return nil, bad()
}

// parseIPv4 parses a dotted quad.
func parseIPv4(s string) ([4]byte, bool) {
	var addr [4]byte
	parts := strings.Split(s, ".")
	if len(parts) != 4 {
		return addr, false
	}
	for i, p := range parts {
		v, err := strconv.ParseUint(p, 10, 8)
		if err != nil {
			return addr, false
		}
		addr[i] = byte(v)
	}
	return addr, true
}

// parseBits turns whitespace- or comma-separated bit indices into the
// octet string where bit n sets 0x80 >> (n mod 8) in byte n/8.
func parseBits(s string) ([]byte, error) {
	var out []byte
	for _, field := range strings.FieldsFunc(s, func(r rune) bool {
		return r == ' ' || r == '\t' || r == ','
	}) {
		n, err := strconv.ParseUint(field, 10, 16)
		if err != nil {
			return nil, err
		}
		byteIdx := int(n / 8)
		for len(out) <= byteIdx {
			out = append(out, 0)
		}
		out[byteIdx] |= 0x80 >> (n % 8)
	}
	return out, nil
}

// parseByteList parses whitespace-separated byte values in the given base.
func parseByteList(s string, base int) ([]byte, error) {
	var out []byte
	for _, field := range strings.Fields(s) {
		v, err := strconv.ParseUint(field, base, 8)
		if err != nil {
			return nil, err
		}
		out = append(out, byte(v))
	}
	return out, nil
}
