package ber

import "fmt"

// MalformedError reports a decoding failure at a byte offset from the start
// of the buffer passed to Decode.
type MalformedError struct {
	Offset int
	Reason string
}

func (e *MalformedError) Error() string {
	return fmt.Sprintf("ber: malformed element at offset %d: %s", e.Offset, e.Reason)
}

func malformed(offset int, format string, args ...any) error {
	return &MalformedError{Offset: offset, Reason: fmt.Sprintf(format, args...)}
}

// Decode reads one element from the front of buf and returns it along with
// the unconsumed remainder. Decoding is strict: indefinite and non-minimal
// length forms are rejected, as are elements overrunning the buffer and
// trailing bytes inside a constructed element.
func Decode(buf []byte) (*Element, []byte, error) {
	e, n, err := decodeAt(buf, 0)
	if err != nil {
		return nil, nil, err
	}
	return e, buf[n:], nil
}

// decodeAt decodes the element starting at buf[0]; base is the offset of
// buf[0] in the original buffer, used for error reporting. Returns the
// element and the number of bytes consumed.
func decodeAt(buf []byte, base int) (*Element, int, error) {
	if len(buf) == 0 {
		return nil, 0, malformed(base, "empty input")
	}
	class := Class(buf[0] >> 6)
	constructed := buf[0]&0x20 != 0
	tag := uint32(buf[0] & 0x1f)
	n := 1
	if tag == 0x1f {
		var err error
		tag, n, err = decodeLongTag(buf, base)
		if err != nil {
			return nil, 0, err
		}
	}

	length, n, err := decodeLen(buf, n, base)
	if err != nil {
		return nil, 0, err
	}
	if length > len(buf)-n {
		return nil, 0, malformed(base+n, "content length %d overruns buffer (%d left)", length, len(buf)-n)
	}
	content := buf[n : n+length]
	e := &Element{Class: class, Tag: tag, Constructed: constructed}

	if !constructed {
		e.Bytes = content
		return e, n + length, nil
	}
	for off := 0; off < len(content); {
		child, consumed, err := decodeAt(content[off:], base+n+off)
		if err != nil {
			return nil, 0, err
		}
		e.Children = append(e.Children, child)
		off += consumed
	}
	return e, n + length, nil
}

// decodeLongTag reads a base-128 tag following a 0x1f identifier octet.
func decodeLongTag(buf []byte, base int) (uint32, int, error) {
	tag := uint32(0)
	for i := 1; ; i++ {
		if i >= len(buf) {
			return 0, 0, malformed(base+i, "truncated long-form tag")
		}
		if i == 1 && buf[i]&0x7f == 0 {
			return 0, 0, malformed(base+i, "non-minimal long-form tag")
		}
		if tag > (1<<25)-1 {
			return 0, 0, malformed(base+i, "tag overflow")
		}
		tag = tag<<7 | uint32(buf[i]&0x7f)
		if buf[i]&0x80 == 0 {
			if tag < 0x1f {
				return 0, 0, malformed(base+1, "long-form tag below 31")
			}
			return tag, i + 1, nil
		}
	}
}

// decodeLen reads the length octets at buf[start:]. Rejects the indefinite
// form and long forms that are non-minimal or exceed the int range.
func decodeLen(buf []byte, start, base int) (length, end int, err error) {
	if start >= len(buf) {
		return 0, 0, malformed(base+start, "missing length octet")
	}
	first := buf[start]
	if first < 0x80 {
		return int(first), start + 1, nil
	}
	count := int(first & 0x7f)
	if count == 0 {
		return 0, 0, malformed(base+start, "indefinite length not supported")
	}
	if count > 4 {
		return 0, 0, malformed(base+start, "length field of %d bytes too large", count)
	}
	if start+1+count > len(buf) {
		return 0, 0, malformed(base+start, "truncated length field")
	}
	if buf[start+1] == 0 {
		return 0, 0, malformed(base+start+1, "non-minimal length encoding")
	}
	for i := 0; i < count; i++ {
		length = length<<8 | int(buf[start+1+i])
	}
	if length < 0x80 {
		return 0, 0, malformed(base+start, "long-form length %d fits short form", length)
	}
	return length, start + 1 + count, nil
}

// decodeOIDContents unpacks OID content octets into an arc sequence.
func decodeOIDContents(b []byte) ([]uint32, error) {
	if len(b) == 0 {
		return nil, malformed(0, "empty OID contents")
	}
	var arcs []uint32
	val := uint32(0)
	pending := false
	for i, octet := range b {
		if !pending && octet == 0x80 {
			return nil, malformed(i, "non-minimal OID sub-identifier")
		}
		if val > (1<<25)-1 {
			return nil, malformed(i, "OID sub-identifier overflow")
		}
		val = val<<7 | uint32(octet&0x7f)
		pending = octet&0x80 != 0
		if pending {
			continue
		}
		if len(arcs) == 0 {
			first := val / 40
			if first > 2 {
				first = 2
			}
			arcs = append(arcs, first, val-first*40)
		} else {
			arcs = append(arcs, val)
		}
		val = 0
	}
	if pending {
		return nil, malformed(len(b), "truncated OID sub-identifier")
	}
	return arcs, nil
}
