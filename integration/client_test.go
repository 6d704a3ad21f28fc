// Package integration exercises the client end to end against an
// in-process stub agent speaking real BER over loopback UDP.
package integration

import (
	"fmt"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/golangsnmp/snmpc/ber"
	"github.com/golangsnmp/snmpc/mib"
	"github.com/golangsnmp/snmpc/smi"
	"github.com/golangsnmp/snmpc/snmp"
)

// binding is one entry of the stub agent's sorted store.
type binding struct {
	oid   mib.Oid
	value *ber.Element
}

// stubAgent answers GET, GETNEXT, and GETBULK from its store the way a
// well-behaved v2c agent would. Traps are recorded.
type stubAgent struct {
	pc    *net.UDPConn
	store []binding
	traps chan *ber.Element

	// misbehave, when set, rewrites every GETNEXT answer to this fixed
	// OID, simulating a broken agent that does not increase.
	misbehave mib.Oid
}

func newStubAgent(t *testing.T, store []binding) *stubAgent {
	t.Helper()
	pc, err := net.ListenUDP("udp4", &net.UDPAddr{IP: net.IPv4(127, 0, 0, 1)})
	require.NoError(t, err)
	a := &stubAgent{pc: pc, store: store, traps: make(chan *ber.Element, 4)}
	t.Cleanup(func() { pc.Close() })
	go a.serve()
	return a
}

func (a *stubAgent) spec() string {
	return fmt.Sprintf("udp:127.0.0.1:%d", a.pc.LocalAddr().(*net.UDPAddr).Port)
}

func (a *stubAgent) serve() {
	buf := make([]byte, 65535)
	for {
		n, peer, err := a.pc.ReadFromUDP(buf)
		if err != nil {
			return
		}
		msg, _, err := ber.Decode(buf[:n])
		if err != nil || len(msg.Children) != 3 {
			continue
		}
		resp := a.respond(msg)
		if resp == nil {
			continue
		}
		out, err := ber.Encode(resp)
		if err != nil {
			continue
		}
		a.pc.WriteToUDP(out, peer)
	}
}

// respond builds the response message for one decoded request message.
func (a *stubAgent) respond(msg *ber.Element) *ber.Element {
	community := msg.Children[1]
	pdu := msg.Children[2]
	if pdu.Class != ber.ClassContext {
		return nil
	}
	if pdu.Tag == 7 { // SNMPv2-Trap
		a.traps <- pdu
		return nil
	}
	if len(pdu.Children) != 4 {
		return nil
	}
	requestID, _ := pdu.Children[0].Int64()
	list := pdu.Children[3]

	var out []*ber.Element
	switch pdu.Tag {
	case 0: // GetRequest
		for _, vb := range list.Children {
			name, _ := vb.Children[0].ObjectIdentifier()
			out = append(out, a.exact(mib.Oid(name)))
		}
	case 1: // GetNextRequest
		for _, vb := range list.Children {
			name, _ := vb.Children[0].ObjectIdentifier()
			out = append(out, a.next(mib.Oid(name)))
		}
	case 5: // GetBulkRequest
		maxRep, _ := pdu.Children[2].Int64()
		for _, vb := range list.Children {
			name, _ := vb.Children[0].ObjectIdentifier()
			cursor := mib.Oid(name)
			for r := int64(0); r < maxRep; r++ {
				nvb := a.next(cursor)
				out = append(out, nvb)
				next, _ := nvb.Children[0].ObjectIdentifier()
				if len(next) == 0 || nvb.Children[1].IsException() {
					break
				}
				cursor = mib.Oid(next)
			}
		}
	default:
		return nil
	}

	return ber.Sequence(
		ber.Integer(1), // v2c
		community,
		ber.Context(2, // GetResponse
			ber.Integer(requestID),
			ber.Integer(0),
			ber.Integer(0),
			ber.Sequence(out...),
		),
	)
}

func (a *stubAgent) exact(oid mib.Oid) *ber.Element {
	for _, b := range a.store {
		if b.oid.Equal(oid) {
			return varbind(b.oid, b.value)
		}
	}
	return varbind(oid, ber.ContextNull(ber.TagNoSuchInstance))
}

func (a *stubAgent) next(oid mib.Oid) *ber.Element {
	if a.misbehave != nil {
		return varbind(a.misbehave, ber.Integer(0))
	}
	for _, b := range a.store {
		if b.oid.Compare(oid) == 1 {
			return varbind(b.oid, b.value)
		}
	}
	return varbind(oid, ber.ContextNull(ber.TagEndOfMibView))
}

func varbind(oid mib.Oid, value *ber.Element) *ber.Element {
	name, err := ber.ObjectIdentifier(oid)
	if err != nil {
		panic(err)
	}
	return ber.Sequence(name, value)
}

func open(t *testing.T, a *stubAgent, opts ...snmp.Option) *snmp.Session {
	t.Helper()
	s, err := snmp.Open(a.spec(), "161", opts...)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

var systemStore = []binding{
	{mib.Oid{1, 3, 6, 1, 2, 1, 1, 1, 0}, ber.String("x")},
	{mib.Oid{1, 3, 6, 1, 2, 1, 1, 2, 0}, ber.String("y")},
	{mib.Oid{1, 3, 6, 1, 2, 1, 1, 3, 0}, ber.Integer(42)},
	{mib.Oid{1, 3, 6, 1, 2, 1, 2, 1, 0}, ber.Integer(3)},
}

// Scenario: a GET of sysDescr.0 against an agent returning "OpenBSD"
// renders exactly the net-snmp-style line.
func TestGetSysDescrRendering(t *testing.T) {
	m := mib.Baseline()
	a := newStubAgent(t, []binding{
		{mib.Oid{1, 3, 6, 1, 2, 1, 1, 1, 0}, ber.String("OpenBSD")},
	})
	s := open(t, a)

	oid, err := m.Parse("1.3.6.1.2.1.1.1.0")
	require.NoError(t, err)

	resp, err := s.Get(oid)
	require.NoError(t, err)
	require.NoError(t, snmp.CheckStatus(resp, []string{"1.3.6.1.2.1.1.1.0"}, ""))
	require.Len(t, resp.Varbinds, 1)

	line := smi.FormatVarbind(m, resp.Varbinds[0].Name, resp.Varbinds[0].Value, smi.Options{})
	require.Equal(t, `SNMPv2-MIB::sysDescr.0 = STRING: "OpenBSD"`, line)
}

// Scenario: walking 1.3.6.1.2.1.1 with numeric OIDs yields three lines in
// store order.
func TestWalkNumericRendering(t *testing.T) {
	m := mib.Baseline()
	a := newStubAgent(t, systemStore)
	s := open(t, a)

	w := &snmp.Walker{
		Start:         mib.Oid{1, 3, 6, 1, 2, 1, 1},
		CheckIncrease: true,
		FallbackGet:   true,
	}
	var lines []string
	_, err := w.Run(s, func(vb snmp.Varbind) error {
		lines = append(lines, smi.FormatVarbind(m, vb.Name, vb.Value, smi.Options{OIDMode: mib.LookupNumeric}))
		return nil
	})
	require.NoError(t, err)
	require.Equal(t, []string{
		`.1.3.6.1.2.1.1.1.0 = STRING: "x"`,
		`.1.3.6.1.2.1.1.2.0 = STRING: "y"`,
		`.1.3.6.1.2.1.1.3.0 = INTEGER: 42`,
	}, lines)
}

// Scenario: GETBULK on a v1 session is rejected with the canonical message.
func TestBulkOnV1Rejected(t *testing.T) {
	a := newStubAgent(t, systemStore)
	s := open(t, a, snmp.WithVersion(snmp.V1))

	_, err := s.GetBulk([]mib.Oid{{1, 3, 6, 1}}, 0, 10)
	require.Error(t, err)
	require.Contains(t, err.Error(), "Cannot send V2 PDU on V1 session")
}

// Scenario: an agent that answers with a non-increasing OID aborts the walk.
func TestWalkNotIncreasingAborts(t *testing.T) {
	a := newStubAgent(t, systemStore)
	a.misbehave = mib.Oid{1, 3, 6, 1, 2, 1, 1, 1, 0}
	s := open(t, a)

	// The cursor starts above the agent's fixed answer, so the very first
	// varbind already goes backwards.
	w := &snmp.Walker{Start: mib.Oid{1, 3, 6, 1, 2, 1, 1, 5}, CheckIncrease: true}
	walked := 0
	_, err := w.Run(s, func(snmp.Varbind) error { walked++; return nil })
	require.ErrorIs(t, err, snmp.ErrNotIncreasing)
	require.Contains(t, err.Error(), "OID not increasing")
	require.Equal(t, 0, walked)
}

// Scenario: an SNMPv2-Trap opens with sysUpTime.0 and snmpTrapOID.0, and no
// reply is awaited.
func TestTrapVarbindPrefix(t *testing.T) {
	a := newStubAgent(t, nil)
	s := open(t, a)

	trapOid := mib.Oid{1, 3, 6, 1, 6, 3, 1, 1, 5, 1}
	require.NoError(t, s.SendTrap(12345, trapOid, nil))

	select {
	case pdu := <-a.traps:
		require.Len(t, pdu.Children, 4)
		list := pdu.Children[3]
		require.Len(t, list.Children, 2)

		first, _ := list.Children[0].Children[0].ObjectIdentifier()
		require.Equal(t, mib.Oid{1, 3, 6, 1, 2, 1, 1, 3, 0}, mib.Oid(first))
		uptime := list.Children[0].Children[1]
		require.Equal(t, ber.ClassApplication, uptime.Class)
		require.Equal(t, ber.TagTimeTicks, uptime.Tag)
		v, err := uptime.Uint64()
		require.NoError(t, err)
		require.EqualValues(t, 12345, v)

		second, _ := list.Children[1].Children[0].ObjectIdentifier()
		require.Equal(t, mib.Oid{1, 3, 6, 1, 6, 3, 1, 1, 4, 1, 0}, mib.Oid(second))
		value, err := list.Children[1].Children[1].ObjectIdentifier()
		require.NoError(t, err)
		require.Equal(t, trapOid, mib.Oid(value))
	case <-time.After(2 * time.Second):
		t.Fatal("trap not received")
	}
}

// Scenario: symbolic OID parsing with the baseline table.
func TestSymbolicParse(t *testing.T) {
	m := mib.Baseline()
	oid, err := m.Parse("system.sysDescr.0")
	require.NoError(t, err)
	require.Equal(t, mib.Oid{1, 3, 6, 1, 2, 1, 1, 1, 0}, oid)
}

// A GETBULK over a subtree of known size terminates in ceil(size/R) round
// trips and yields every entry exactly once.
func TestBulkWalkCompletes(t *testing.T) {
	var store []binding
	for i := uint32(1); i <= 9; i++ {
		store = append(store, binding{mib.Oid{1, 3, 6, 1, 9, 1, i}, ber.Counter32(i)})
	}
	a := newStubAgent(t, store)
	s := open(t, a)

	w := &snmp.Walker{
		Start:          mib.Oid{1, 3, 6, 1, 9},
		CheckIncrease:  true,
		Bulk:           true,
		MaxRepetitions: 4,
	}
	var got []mib.Oid
	n, err := w.Run(s, func(vb snmp.Varbind) error {
		got = append(got, vb.Name)
		return nil
	})
	require.NoError(t, err)
	require.Equal(t, 9, n)
	for i, oid := range got {
		require.Equal(t, mib.Oid{1, 3, 6, 1, 9, 1, uint32(i + 1)}, oid)
	}
}
