package snmp

import (
	"errors"
	"testing"

	"github.com/golangsnmp/snmpc/ber"
	"github.com/golangsnmp/snmpc/mib"
)

var walkStart = mib.Oid{1, 3, 6, 1, 2, 1, 1}

func collectWalk(t *testing.T, w *Walker, s *Session) ([]Varbind, error) {
	t.Helper()
	var out []Varbind
	for vb, err := range w.Walk(s) {
		if err != nil {
			return out, err
		}
		out = append(out, vb)
	}
	return out, nil
}

func walkNames(vbs []Varbind) []string {
	var names []string
	for _, vb := range vbs {
		names = append(names, vb.Name.String())
	}
	return names
}

func TestWalkSubtree(t *testing.T) {
	a := newStubAgent(t, storeHandler(systemStore))
	s := openTestSession(t, a)

	got, err := collectWalk(t, &Walker{Start: walkStart, CheckIncrease: true}, s)
	if err != nil {
		t.Fatalf("walk: %v", err)
	}
	want := []string{
		"1.3.6.1.2.1.1.1.0",
		"1.3.6.1.2.1.1.2.0",
		"1.3.6.1.2.1.1.3.0",
	}
	names := walkNames(got)
	if len(names) != len(want) {
		t.Fatalf("walked %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("varbind %d = %s, want %s", i, names[i], want[i])
		}
	}

	// Emitted OIDs strictly increasing, all strictly under the start.
	for i, vb := range got {
		if walkStart.CompareTree(vb.Name) != 2 {
			t.Errorf("varbind %s not under %s", vb.Name, walkStart)
		}
		if i > 0 && got[i-1].Name.Compare(vb.Name) != -1 {
			t.Errorf("varbind %s not above %s", vb.Name, got[i-1].Name)
		}
	}
}

func TestBulkWalkRoundTrips(t *testing.T) {
	// Ten columns under the start; max-repetitions 4 must finish the walk
	// in ceil(10/4) = 3 round trips (the third carries the terminator).
	var store []Varbind
	for i := uint32(1); i <= 10; i++ {
		store = append(store, Varbind{
			Name:  mib.Oid{1, 3, 6, 1, 9, 1, i},
			Value: ber.Integer(int64(i)),
		})
	}
	a := newStubAgent(t, storeHandler(store))
	s := openTestSession(t, a)

	w := &Walker{
		Start:          mib.Oid{1, 3, 6, 1, 9},
		CheckIncrease:  true,
		Bulk:           true,
		MaxRepetitions: 4,
	}
	got, err := collectWalk(t, w, s)
	if err != nil {
		t.Fatalf("bulkwalk: %v", err)
	}
	if len(got) != 10 {
		t.Fatalf("walked %d varbinds, want 10", len(got))
	}
	if reqs := a.requests.Load(); reqs != 3 {
		t.Errorf("bulkwalk used %d round trips, want 3", reqs)
	}
}

func TestBulkWalkOnV1(t *testing.T) {
	a := newStubAgent(t, storeHandler(systemStore))
	s := openTestSession(t, a, WithVersion(V1))

	w := &Walker{Start: walkStart, Bulk: true, MaxRepetitions: 10}
	_, err := collectWalk(t, w, s)
	if !errors.Is(err, ErrVersion) {
		t.Fatalf("err = %v, want ErrVersion", err)
	}
}

func TestWalkNotIncreasing(t *testing.T) {
	a := newStubAgent(t, func(req *PDU) []*PDU {
		// Always answer with an OID below the requested one.
		return []*PDU{{
			Type:      GetResponse,
			RequestID: req.RequestID,
			Varbinds: []Varbind{{
				Name:  mib.Oid{1, 3, 6, 1, 2, 1, 1, 0},
				Value: ber.Integer(1),
			}},
		}}
	})
	s := openTestSession(t, a)

	w := &Walker{Start: mib.Oid{1, 3, 6, 1, 2, 1, 1, 5}, CheckIncrease: true}
	_, err := collectWalk(t, w, s)
	if !errors.Is(err, ErrNotIncreasing) {
		t.Fatalf("err = %v, want ErrNotIncreasing", err)
	}
}

func TestWalkNoCheckIncreaseStops(t *testing.T) {
	// With the monotonicity check disabled, a non-increasing answer is not
	// an error; leaving the subtree still terminates the walk.
	a := newStubAgent(t, func(req *PDU) []*PDU {
		return []*PDU{{
			Type:      GetResponse,
			RequestID: req.RequestID,
			Varbinds: []Varbind{{
				Name:  mib.Oid{1, 3, 5},
				Value: ber.Integer(1),
			}},
		}}
	})
	s := openTestSession(t, a)

	got, err := collectWalk(t, &Walker{Start: walkStart}, s)
	if err != nil {
		t.Fatalf("walk: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("walked %v, want nothing", walkNames(got))
	}
}

func TestWalkEndBound(t *testing.T) {
	a := newStubAgent(t, storeHandler(systemStore))
	s := openTestSession(t, a)

	w := &Walker{
		Start: walkStart,
		End:   mib.Oid{1, 3, 6, 1, 2, 1, 1, 3},
	}
	got, err := collectWalk(t, w, s)
	if err != nil {
		t.Fatalf("walk: %v", err)
	}
	names := walkNames(got)
	want := []string{"1.3.6.1.2.1.1.1.0", "1.3.6.1.2.1.1.2.0"}
	if len(names) != 2 || names[0] != want[0] || names[1] != want[1] {
		t.Errorf("walked %v, want %v", names, want)
	}
}

func TestWalkIncludeStart(t *testing.T) {
	a := newStubAgent(t, storeHandler(systemStore))
	s := openTestSession(t, a)

	start := mib.Oid{1, 3, 6, 1, 2, 1, 1, 1, 0}
	w := &Walker{Start: start, IncludeStart: true}
	got, err := collectWalk(t, w, s)
	if err != nil {
		t.Fatalf("walk: %v", err)
	}
	if len(got) == 0 || !got[0].Name.Equal(start) {
		t.Fatalf("walk did not open with a GET of the start: %v", walkNames(got))
	}
}

func TestWalkFallbackGet(t *testing.T) {
	a := newStubAgent(t, storeHandler(systemStore))
	s := openTestSession(t, a)

	// Walking a leaf instance yields nothing; the fallback GET recovers
	// its value.
	start := mib.Oid{1, 3, 6, 1, 2, 1, 1, 3, 0}
	got, err := collectWalk(t, &Walker{Start: start, FallbackGet: true}, s)
	if err != nil {
		t.Fatalf("walk: %v", err)
	}
	if len(got) != 1 || !got[0].Name.Equal(start) {
		t.Fatalf("fallback walk = %v, want the leaf itself", walkNames(got))
	}
	if v, _ := got[0].Value.Int64(); v != 42 {
		t.Errorf("fallback value = %d, want 42", v)
	}

	// Without the fallback, the same walk yields nothing.
	got, err = collectWalk(t, &Walker{Start: start}, s)
	if err != nil {
		t.Fatalf("walk: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("walk without fallback = %v, want nothing", walkNames(got))
	}
}

func TestWalkServerErrorAborts(t *testing.T) {
	a := newStubAgent(t, func(req *PDU) []*PDU {
		return []*PDU{{
			Type:        GetResponse,
			RequestID:   req.RequestID,
			ErrorStatus: int32(GenErr),
			ErrorIndex:  5, // out of range on purpose
			Varbinds:    req.Varbinds,
		}}
	})
	s := openTestSession(t, a)

	_, err := collectWalk(t, &Walker{Start: walkStart}, s)
	var server *ServerError
	if !errors.As(err, &server) {
		t.Fatalf("err = %v, want *ServerError", err)
	}
	if server.Status != GenErr {
		t.Errorf("status = %v, want GenErr", server.Status)
	}
	if server.OID != walkStart.String() {
		t.Errorf("error OID = %q, want the walk cursor %q", server.OID, walkStart)
	}
}

func TestWalkRunCount(t *testing.T) {
	a := newStubAgent(t, storeHandler(systemStore))
	s := openTestSession(t, a)

	n, err := (&Walker{Start: walkStart}).Run(s, func(Varbind) error { return nil })
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if n != 3 {
		t.Errorf("Run counted %d, want 3", n)
	}
}
