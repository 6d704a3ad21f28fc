package snmp

import (
	"iter"

	"github.com/golangsnmp/snmpc/mib"
)

// Walker enumerates a subtree in lexicographic order by driving GETNEXT
// (or GETBULK) requests from a start OID until the agent leaves the
// subtree, reports an end-of-view condition, or reaches the End bound.
type Walker struct {
	Start mib.Oid
	End   mib.Oid // stop before emitting End or anything above it; nil = none

	CheckIncrease bool // fail with ErrNotIncreasing on non-monotonic agents
	IncludeStart  bool // emit a plain GET of Start first
	FallbackGet   bool // on an empty walk, emit a plain GET of Start

	Bulk           bool // use GETBULK instead of GETNEXT
	NonRepeaters   int32
	MaxRepetitions int32
}

// Walk returns an iterator over the varbinds of the subtree. Iteration
// stops at the first error; the error is yielded with a zero varbind.
// OIDs found by the walk lie strictly below Start, and with CheckIncrease
// they are strictly increasing. The IncludeStart and FallbackGet paths also
// emit the response to a GET of Start itself.
func (w *Walker) Walk(s *Session) iter.Seq2[Varbind, error] {
	return func(yield func(Varbind, error) bool) {
		emitted := 0

		if w.IncludeStart {
			if !w.yieldGet(s, yield, &emitted) {
				return
			}
		}

		last := w.Start.Clone()
	outer:
		for {
			resp, err := w.step(s, last)
			if err != nil {
				yield(Varbind{}, err)
				return
			}
			if err := CheckStatus(resp, nil, s.render(last)); err != nil {
				yield(Varbind{}, err)
				return
			}
			if len(resp.Varbinds) == 0 {
				break
			}
			for _, vb := range resp.Varbinds {
				if vb.Value.IsException() {
					break outer
				}
				cmp := last.CompareTree(vb.Name)
				if w.CheckIncrease && (cmp == 1 || cmp == -2) {
					yield(Varbind{}, ErrNotIncreasing)
					return
				}
				if cmp == 0 {
					break outer
				}
				if w.Start.CompareTree(vb.Name) != 2 {
					break outer
				}
				// Inclusive upper bound: stop at End or anything
				// lexicographically above it, exclusive of End itself.
				if len(w.End) != 0 && vb.Name.Compare(w.End) != -1 {
					break outer
				}
				if !yield(vb, nil) {
					return
				}
				emitted++
				last = vb.Name.Clone()
			}
		}

		if w.FallbackGet && emitted == 0 {
			w.yieldGet(s, yield, &emitted)
		}
	}
}

// Run drives the walk to completion, calling fn for each varbind, and
// returns the number of varbinds emitted.
func (w *Walker) Run(s *Session, fn func(Varbind) error) (int, error) {
	n := 0
	for vb, err := range w.Walk(s) {
		if err != nil {
			return n, err
		}
		if err := fn(vb); err != nil {
			return n, err
		}
		n++
	}
	return n, nil
}

// step issues the next request from the cursor position.
func (w *Walker) step(s *Session, last mib.Oid) (*PDU, error) {
	if w.Bulk {
		return s.GetBulk([]mib.Oid{last}, w.NonRepeaters, w.MaxRepetitions)
	}
	return s.GetNext(last)
}

// yieldGet performs a plain GET of Start and yields its varbinds, for the
// include-start and empty-walk-fallback paths.
func (w *Walker) yieldGet(s *Session, yield func(Varbind, error) bool, emitted *int) bool {
	resp, err := s.Get(w.Start)
	if err != nil {
		yield(Varbind{}, err)
		return false
	}
	rendered := s.render(w.Start)
	if err := CheckStatus(resp, []string{rendered}, rendered); err != nil {
		yield(Varbind{}, err)
		return false
	}
	for _, vb := range resp.Varbinds {
		if !yield(vb, nil) {
			return false
		}
		*emitted++
	}
	return true
}

// render gives an OID string for error context.
func (s *Session) render(oid mib.Oid) string {
	return oid.String()
}
