package ber

import (
	"errors"
	"fmt"
)

// Encode serializes the element tree into identifier, length, and content
// octets. Lengths use the definite short form below 128 and the minimal
// long form above.
func Encode(e *Element) ([]byte, error) {
	content, err := encodeContents(e)
	if err != nil {
		return nil, err
	}
	out := encodeIdentifier(e.Class, e.Constructed, e.Tag)
	out = append(out, encodeLength(len(content))...)
	return append(out, content...), nil
}

func encodeContents(e *Element) ([]byte, error) {
	if !e.Constructed {
		return e.Bytes, nil
	}
	var content []byte
	for _, child := range e.Children {
		b, err := Encode(child)
		if err != nil {
			return nil, err
		}
		content = append(content, b...)
	}
	return content, nil
}

// encodeIdentifier emits the identifier octets. Tags below 31 use the short
// form; larger tags use the 0x1f marker followed by base-128 octets.
func encodeIdentifier(class Class, constructed bool, tag uint32) []byte {
	lead := byte(class) << 6
	if constructed {
		lead |= 0x20
	}
	if tag < 0x1f {
		return []byte{lead | byte(tag)}
	}
	out := []byte{lead | 0x1f}
	return append(out, base128(tag)...)
}

// encodeLength emits the definite length octets, minimal long form.
func encodeLength(n int) []byte {
	if n < 0x80 {
		return []byte{byte(n)}
	}
	var digits []byte
	for v := n; v > 0; v >>= 8 {
		digits = append([]byte{byte(v)}, digits...)
	}
	return append([]byte{0x80 | byte(len(digits))}, digits...)
}

// base128 encodes v with the high bit set on every octet but the last.
func base128(v uint32) []byte {
	var out []byte
	for ok := true; ok; ok = v > 0 {
		out = append([]byte{byte(v & 0x7f)}, out...)
		v >>= 7
	}
	for i := 0; i < len(out)-1; i++ {
		out[i] |= 0x80
	}
	return out
}

// encodeOIDContents packs the arc sequence: the first two arcs combine into
// 40*a+b, the rest are base-128.
func encodeOIDContents(arcs []uint32) ([]byte, error) {
	if len(arcs) < 2 {
		return nil, errors.New("ber: OID needs at least two arcs")
	}
	if arcs[0] > 2 {
		return nil, fmt.Errorf("ber: invalid first OID arc %d", arcs[0])
	}
	if arcs[0] < 2 && arcs[1] >= 40 {
		return nil, fmt.Errorf("ber: invalid second OID arc %d under %d", arcs[1], arcs[0])
	}
	out := base128(arcs[0]*40 + arcs[1])
	for _, arc := range arcs[2:] {
		out = append(out, base128(arc)...)
	}
	return out, nil
}
