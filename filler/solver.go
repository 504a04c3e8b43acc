// Package filler implements the crossword filling engine: a backtracking
// search over slot assignments that interleaves MRV/degree variable
// selection and least-constraining-value ordering with arc-consistency
// propagation (AC-3) as its inference step.
package filler

import (
	"context"
	"errors"
	"io"
	"sort"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
	"gopkg.in/yaml.v3"

	"github.com/domino14/crossfill/xword"
)

var ErrNoSolution = errors.New("no consistent fill exists for this grid and word list")

// An Assignment maps variables to the words chosen for them. A solution
// covers every variable with pairwise distinct, length-matching words that
// agree on every shared cell.
type Assignment map[xword.Variable]string

// A Solver fills one crossword. It holds per-solve state and must not be
// reused after Solve returns.
type Solver struct {
	cw      *xword.Crossword
	domains *Domains

	logStream io.Writer

	nodes        int
	revisions    int
	autoAssigned int
}

func NewSolver(cw *xword.Crossword) *Solver {
	return &Solver{cw: cw, domains: NewDomains(cw)}
}

// SetLogStream directs a per-decision search log, one YAML document per
// event, to w. Mostly useful for debugging fills that take a long time.
func (s *Solver) SetLogStream(w io.Writer) {
	s.logStream = w
}

type logEntry struct {
	Depth    int    `yaml:"depth"`
	Variable string `yaml:"variable"`
	Word     string `yaml:"word"`
	Event    string `yaml:"event"`
}

func (s *Solver) logEvent(depth int, v xword.Variable, word, event string) {
	if s.logStream == nil {
		return
	}
	out, err := yaml.Marshal([]logEntry{{
		Depth: depth, Variable: v.String(), Word: word, Event: event,
	}})
	if err != nil {
		log.Err(err).Msg("marshaling search log entry")
		return
	}
	s.logStream.Write(out)
}

// Solve enforces node and arc consistency and then backtracks to a complete
// assignment. It returns ErrNoSolution if no consistent complete assignment
// exists; that is an expected outcome for unsolvable inputs, not a fault.
// The context is checked between branches, so callers can bound the search
// with a deadline or cancellation.
func (s *Solver) Solve(ctx context.Context) (Assignment, error) {
	start := time.Now()
	s.EnforceNodeConsistency()
	if !s.Propagate(nil) {
		log.Debug().Dur("elapsed", time.Since(start)).
			Msg("arc consistency emptied a domain before search")
		return nil, ErrNoSolution
	}
	asgn, err := s.backtrack(ctx, Assignment{}, 0)
	log.Debug().
		Int("nodes", s.nodes).
		Int("revisions", s.revisions).
		Int("auto-assigned", s.autoAssigned).
		Dur("elapsed", time.Since(start)).
		Bool("solved", asgn != nil).
		Msg("search done")
	if err != nil {
		return nil, err
	}
	if asgn == nil {
		return nil, ErrNoSolution
	}
	return asgn, nil
}

// backtrack extends asgn one variable at a time. It returns (nil, nil) when
// every candidate for the chosen variable fails; that outcome unwinds to the
// next candidate one level up. The domain trail and the assignment are
// restored on every exit from a branch except success, which propagates the
// finished assignment upward untouched.
func (s *Solver) backtrack(ctx context.Context, asgn Assignment, depth int) (Assignment, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(asgn) == len(s.cw.Variables()) {
		return asgn, nil
	}
	s.nodes++
	v := s.selectUnassigned(asgn)
	for _, word := range s.orderDomainValues(v, asgn) {
		if !s.consistent(asgn, v, word) {
			continue
		}
		mark := s.domains.Mark()
		asgn[v] = word
		s.domains.Collapse(v, word)
		s.logEvent(depth, v, word, "assign")

		inferred, ok := s.infer(v, asgn)
		if ok {
			result, err := s.backtrack(ctx, asgn, depth+1)
			if err != nil {
				return nil, err
			}
			if result != nil {
				return result, nil
			}
		}

		delete(asgn, v)
		for _, iv := range inferred {
			delete(asgn, iv)
		}
		s.domains.RestoreTo(mark)
		s.logEvent(depth, v, word, "backtrack")
	}
	return nil, nil
}

// selectUnassigned picks the unassigned variable with the fewest remaining
// candidates, breaking ties by the most neighbors. Remaining ties fall to
// grid order, keeping a run reproducible.
func (s *Solver) selectUnassigned(asgn Assignment) xword.Variable {
	var best xword.Variable
	bestCount, bestDegree := 0, 0
	found := false
	for _, v := range s.cw.Variables() {
		if _, ok := asgn[v]; ok {
			continue
		}
		count := s.domains.Count(v)
		degree := len(s.cw.Neighbors(v))
		if !found || count < bestCount ||
			(count == bestCount && degree > bestDegree) {
			best, bestCount, bestDegree = v, count, degree
			found = true
		}
	}
	return best
}

// orderDomainValues sorts v's candidates least-constraining first: ascending
// by how many unassigned neighbors also hold the candidate in their domain.
// The count deliberately only checks presence, not how many neighbor words
// the candidate would eliminate at the shared cell. Ties keep lexicographic
// order.
func (s *Solver) orderDomainValues(v xword.Variable, asgn Assignment) []string {
	unassigned := lo.Filter(s.cw.Neighbors(v), func(n xword.Variable, _ int) bool {
		_, ok := asgn[n]
		return !ok
	})
	words := s.domains.Words(v)
	counts := make(map[string]int, len(words))
	for _, w := range words {
		n := 0
		for _, nb := range unassigned {
			if s.domains.Contains(nb, w) {
				n++
			}
		}
		counts[w] = n
	}
	sort.SliceStable(words, func(a, b int) bool {
		return counts[words[a]] < counts[words[b]]
	})
	return words
}

// consistent reports whether assigning word to v keeps the assignment
// valid: the word is not already used, it fits the slot, and it agrees with
// every assigned neighbor at the shared cell.
func (s *Solver) consistent(asgn Assignment, v xword.Variable, word string) bool {
	for _, used := range asgn {
		if used == word {
			return false
		}
	}
	if s.cw.WordLength(word) != v.Length {
		return false
	}
	for _, n := range s.cw.Neighbors(v) {
		nw, ok := asgn[n]
		if !ok {
			continue
		}
		ov, _ := s.cw.Overlap(v, n)
		if s.cw.Letter(word, ov.X) != s.cw.Letter(nw, ov.Y) {
			return false
		}
	}
	return true
}

// infer propagates arc consistency outward from a fresh assignment to v,
// seeding AC-3 with only the arcs into v from its unassigned neighbors, then
// assigns any variable whose domain was forced down to a single unused word.
// It returns the variables it auto-assigned so the caller can unwind them,
// and false if propagation emptied a domain.
func (s *Solver) infer(v xword.Variable, asgn Assignment) ([]xword.Variable, bool) {
	arcs := make([]Arc, 0, len(s.cw.Neighbors(v)))
	for _, n := range s.cw.Neighbors(v) {
		if _, ok := asgn[n]; !ok {
			arcs = append(arcs, Arc{X: n, Y: v})
		}
	}
	if !s.Propagate(arcs) {
		return nil, false
	}
	return s.assignForced(asgn), true
}

// assignForced scans for unassigned variables with singleton domains and
// assigns them directly, short-circuiting search for forced moves. A
// singleton whose word is already used elsewhere is left alone; search will
// discover the dead end.
func (s *Solver) assignForced(asgn Assignment) []xword.Variable {
	used := make(map[string]bool, len(asgn))
	for _, w := range asgn {
		used[w] = true
	}
	var added []xword.Variable
	for _, v := range s.cw.Variables() {
		if _, ok := asgn[v]; ok {
			continue
		}
		if s.domains.Count(v) != 1 {
			continue
		}
		w := s.domains.Words(v)[0]
		if used[w] {
			continue
		}
		asgn[v] = w
		used[w] = true
		added = append(added, v)
		s.autoAssigned++
	}
	return added
}
