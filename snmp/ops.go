package snmp

import (
	"fmt"

	"github.com/golangsnmp/snmpc/ber"
	"github.com/golangsnmp/snmpc/mib"
)

// Well-known varbind names prepended to every v2 trap.
var (
	oidSysUpTimeInstance = mib.Oid{1, 3, 6, 1, 2, 1, 1, 3, 0}
	oidSnmpTrapOID0      = mib.Oid{1, 3, 6, 1, 6, 3, 1, 1, 4, 1, 0}
)

// Get issues a GetRequest for the given OIDs and returns the response PDU.
func (s *Session) Get(oids ...mib.Oid) (*PDU, error) {
	return s.RoundTrip(requestPDU(GetRequest, oids))
}

// GetNext issues a GetNextRequest for the given OIDs.
func (s *Session) GetNext(oids ...mib.Oid) (*PDU, error) {
	return s.RoundTrip(requestPDU(GetNextRequest, oids))
}

// GetBulk issues a GetBulkRequest. Valid on v2c sessions only; the first
// nonRepeaters OIDs are fetched GETNEXT-style, the rest are repeated up to
// maxRepetitions times.
func (s *Session) GetBulk(oids []mib.Oid, nonRepeaters, maxRepetitions int32) (*PDU, error) {
	if s.version < V2c {
		return nil, ErrVersion
	}
	if int(nonRepeaters) > len(oids) {
		return nil, fmt.Errorf("non-repeaters %d exceeds %d objects", nonRepeaters, len(oids))
	}
	p := requestPDU(GetBulkRequest, oids)
	p.ErrorStatus = nonRepeaters
	p.ErrorIndex = maxRepetitions
	return s.RoundTrip(p)
}

// SendTrap sends an SNMPv2-Trap and does not await a reply. The varbind
// list opens with the two bindings RFC 3416 mandates: sysUpTime.0 carrying
// uptime (hundredths of a second) and snmpTrapOID.0 carrying trapOid.
// SNMPv1 Trap-PDU encoding is not supported; v1 sessions are rejected with
// ErrVersion.
func (s *Session) SendTrap(uptime uint32, trapOid mib.Oid, varbinds []Varbind) error {
	if s.version < V2c {
		return ErrVersion
	}
	trapValue, err := ber.ObjectIdentifier(trapOid)
	if err != nil {
		return fmt.Errorf("trap oid %s: %w", trapOid, err)
	}
	p := &PDU{
		Type: TrapV2,
		Varbinds: append([]Varbind{
			{Name: oidSysUpTimeInstance, Value: ber.TimeTicks(uptime)},
			{Name: oidSnmpTrapOID0, Value: trapValue},
		}, varbinds...),
	}
	return s.send(p)
}

// requestPDU builds a request with NULL-valued varbinds.
func requestPDU(typ PDUType, oids []mib.Oid) *PDU {
	p := &PDU{Type: typ}
	for _, oid := range oids {
		p.Varbinds = append(p.Varbinds, NullVarbind(oid))
	}
	return p
}

// CheckStatus converts a non-zero error-status in a response into a
// *ServerError, resolving the error-index against the request OIDs
// rendered with their original spelling.
func CheckStatus(resp *PDU, requested []string, fallback string) error {
	if resp.ErrorStatus == 0 {
		return nil
	}
	return serverError(resp.ErrorStatus, resp.ErrorIndex, requested, fallback)
}
