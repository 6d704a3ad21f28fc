// Package snmp implements the SNMPv1/v2c client protocol: agent address
// parsing and connected transports, sessions with retransmission and
// response matching, the GET/GETNEXT/GETBULK/TRAP operations, and the
// subtree walk engine.
package snmp

import (
	"fmt"

	"github.com/golangsnmp/snmpc/ber"
	"github.com/golangsnmp/snmpc/mib"
)

// Version selects the SNMP protocol version of a session.
type Version int

// Wire values for the message version field.
const (
	V1  Version = 0
	V2c Version = 1
)

func (v Version) String() string {
	switch v {
	case V1:
		return "1"
	case V2c:
		return "2c"
	default:
		return fmt.Sprintf("Version(%d)", int(v))
	}
}

// PDUType is the context-class tag wrapping a PDU.
type PDUType uint32

// PDU type tags from RFC 1157 and RFC 3416.
const (
	GetRequest     PDUType = 0
	GetNextRequest PDUType = 1
	GetResponse    PDUType = 2
	SetRequest     PDUType = 3
	TrapV1         PDUType = 4
	GetBulkRequest PDUType = 5
	InformRequest  PDUType = 6
	TrapV2         PDUType = 7
)

// Varbind is a single variable binding: an object name and its value.
type Varbind struct {
	Name  mib.Oid
	Value *ber.Element
}

// NullVarbind returns a varbind with a NULL value, as sent in requests.
func NullVarbind(name mib.Oid) Varbind {
	return Varbind{Name: name, Value: ber.Null()}
}

// PDU is a protocol data unit. For GetBulkRequest, ErrorStatus holds
// non-repeaters and ErrorIndex holds max-repetitions.
type PDU struct {
	Type        PDUType
	RequestID   int32
	ErrorStatus int32
	ErrorIndex  int32
	Varbinds    []Varbind
}

// element builds the BER representation of the PDU.
func (p *PDU) element() (*ber.Element, error) {
	bindings := make([]*ber.Element, 0, len(p.Varbinds))
	for _, vb := range p.Varbinds {
		name, err := ber.ObjectIdentifier(vb.Name)
		if err != nil {
			return nil, fmt.Errorf("varbind %s: %w", vb.Name, err)
		}
		bindings = append(bindings, ber.Sequence(name, vb.Value))
	}
	return ber.Context(uint32(p.Type),
		ber.Integer(int64(p.RequestID)),
		ber.Integer(int64(p.ErrorStatus)),
		ber.Integer(int64(p.ErrorIndex)),
		ber.Sequence(bindings...),
	), nil
}

// encodeMessage wraps the PDU in the v1/v2c message envelope.
func encodeMessage(version Version, community string, p *PDU) ([]byte, error) {
	pdu, err := p.element()
	if err != nil {
		return nil, err
	}
	return ber.Encode(ber.Sequence(
		ber.Integer(int64(version)),
		ber.String(community),
		pdu,
	))
}

// decodeMessage parses a received message envelope into its version,
// community, and PDU.
func decodeMessage(buf []byte) (Version, string, *PDU, error) {
	root, rest, err := ber.Decode(buf)
	if err != nil {
		return 0, "", nil, err
	}
	if len(rest) != 0 {
		return 0, "", nil, fmt.Errorf("snmp: %d trailing bytes after message", len(rest))
	}
	if root.Class != ber.ClassUniversal || root.Tag != ber.TagSequence || len(root.Children) != 3 {
		return 0, "", nil, fmt.Errorf("snmp: message is not a 3-element SEQUENCE")
	}

	version, err := root.Children[0].Int64()
	if err != nil {
		return 0, "", nil, fmt.Errorf("snmp: message version: %w", err)
	}
	communityBytes, err := root.Children[1].OctetString()
	if err != nil {
		return 0, "", nil, fmt.Errorf("snmp: community: %w", err)
	}

	pdu, err := decodePDU(root.Children[2])
	if err != nil {
		return 0, "", nil, err
	}
	return Version(version), string(communityBytes), pdu, nil
}

// decodePDU parses a context-wrapped PDU element.
func decodePDU(e *ber.Element) (*PDU, error) {
	if e.Class != ber.ClassContext || !e.Constructed {
		return nil, fmt.Errorf("snmp: PDU has class %s, want constructed context", e.Class)
	}
	if len(e.Children) != 4 {
		return nil, fmt.Errorf("snmp: PDU has %d fields, want 4", len(e.Children))
	}
	requestID, err := e.Children[0].Int64()
	if err != nil {
		return nil, fmt.Errorf("snmp: request-id: %w", err)
	}
	errorStatus, err := e.Children[1].Int64()
	if err != nil {
		return nil, fmt.Errorf("snmp: error-status: %w", err)
	}
	errorIndex, err := e.Children[2].Int64()
	if err != nil {
		return nil, fmt.Errorf("snmp: error-index: %w", err)
	}

	list := e.Children[3]
	if list.Class != ber.ClassUniversal || list.Tag != ber.TagSequence {
		return nil, fmt.Errorf("snmp: varbind list is not a SEQUENCE")
	}
	p := &PDU{
		Type:        PDUType(e.Tag),
		RequestID:   int32(requestID),
		ErrorStatus: int32(errorStatus),
		ErrorIndex:  int32(errorIndex),
	}
	for i, binding := range list.Children {
		if binding.Class != ber.ClassUniversal || binding.Tag != ber.TagSequence || len(binding.Children) != 2 {
			return nil, fmt.Errorf("snmp: varbind %d is not a 2-element SEQUENCE", i)
		}
		arcs, err := binding.Children[0].ObjectIdentifier()
		if err != nil {
			return nil, fmt.Errorf("snmp: varbind %d name: %w", i, err)
		}
		if len(arcs) == 0 {
			return nil, fmt.Errorf("snmp: varbind %d has empty name", i)
		}
		p.Varbinds = append(p.Varbinds, Varbind{Name: mib.Oid(arcs), Value: binding.Children[1]})
	}
	return p, nil
}
