package filler

import (
	"fmt"

	"github.com/domino14/crossfill/xword"
)

// An Arc is a directed consistency obligation: make X's domain consistent
// with Y's.
type Arc struct {
	X xword.Variable
	Y xword.Variable
}

// EnforceNodeConsistency removes from every domain each word whose letter
// count differs from the variable's length. It never fails; an emptied
// domain simply means the puzzle is unsolvable, which propagation or search
// discovers later. Running it twice is a no-op the second time.
func (s *Solver) EnforceNodeConsistency() {
	for _, v := range s.cw.Variables() {
		for _, w := range s.domains.Words(v) {
			if s.cw.WordLength(w) != v.Length {
				s.domains.Remove(v, w)
			}
		}
	}
}

// Revise makes x arc-consistent with y: it removes every word in x's domain
// with no supporting word in y's domain at the shared cell, and reports
// whether it removed anything. The caller must only pass crossing variables;
// a missing overlap is a bug, not a runtime condition.
func (s *Solver) Revise(x, y xword.Variable) bool {
	ov, ok := s.cw.Overlap(x, y)
	if !ok {
		panic(fmt.Sprintf("revise called on non-crossing variables %v / %v", x, y))
	}
	revised := false
	for _, xw := range s.domains.Words(x) {
		if ov.X >= s.cw.WordLength(xw) {
			// Can't even reach the shared cell; node consistency should
			// have removed it already.
			s.domains.Remove(x, xw)
			revised = true
			continue
		}
		xl := s.cw.Letter(xw, ov.X)
		supported := false
		for yw := range s.domains.words[y] {
			if ov.Y < s.cw.WordLength(yw) && s.cw.Letter(yw, ov.Y) == xl {
				supported = true
				break
			}
		}
		if !supported {
			s.domains.Remove(x, xw)
			revised = true
		}
	}
	s.revisions++
	return revised
}

// Propagate runs AC-3 to a fixed point. A nil worklist seeds the queue with
// every ordered pair of crossing variables; a non-nil worklist (possibly
// empty) is processed as given, which is how inference bounds propagation to
// the neighborhood of a new assignment. It returns false as soon as any
// domain empties, leaving other domains in their partially reduced state;
// callers treat that as terminal for the branch.
func (s *Solver) Propagate(arcs []Arc) bool {
	var queue []Arc
	if arcs == nil {
		for _, x := range s.cw.Variables() {
			for _, y := range s.cw.Neighbors(x) {
				queue = append(queue, Arc{X: x, Y: y})
			}
		}
	} else {
		queue = append(queue, arcs...)
	}

	for len(queue) > 0 {
		arc := queue[0]
		queue = queue[1:]
		if !s.Revise(arc.X, arc.Y) {
			continue
		}
		if s.domains.Count(arc.X) == 0 {
			return false
		}
		// x's domain shrank, so every other neighbor's consistency with x
		// needs re-checking.
		for _, z := range s.cw.Neighbors(arc.X) {
			if z != arc.Y {
				queue = append(queue, Arc{X: z, Y: arc.X})
			}
		}
	}
	return true
}
