package filler

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/matryer/is"

	"github.com/domino14/crossfill/xword"
)

var disjointRows = []string{
	"___##",
	"#####",
	"##___",
}

// A ladder-shaped grid. With the number words it has exactly one fill:
// SIX / SEVEN / NINE / FIVE.
var ladderRows = []string{
	"#___#",
	"#_##_",
	"#_##_",
	"#_##_",
	"#____",
}

var numberWords = []string{
	"ONE", "TWO", "THREE", "FOUR", "FIVE",
	"SIX", "SEVEN", "EIGHT", "NINE", "TEN",
}

// checkSolution verifies the full solution contract: every variable covered,
// words pairwise distinct, lengths matching, and every overlap agreeing.
func checkSolution(t *testing.T, cw *xword.Crossword, asgn Assignment) {
	t.Helper()
	is := is.New(t)
	is.Equal(len(asgn), len(cw.Variables()))
	seen := map[string]bool{}
	for _, v := range cw.Variables() {
		w, ok := asgn[v]
		is.True(ok)
		is.True(!seen[w])
		seen[w] = true
		is.Equal(cw.WordLength(w), v.Length)
		for _, n := range cw.Neighbors(v) {
			ov, ok := cw.Overlap(v, n)
			is.True(ok)
			is.Equal(cw.Letter(w, ov.X), cw.Letter(asgn[n], ov.Y))
		}
	}
}

func TestSolveCrossingPair(t *testing.T) {
	is := is.New(t)
	cw := mustCrossword(t, hookRows, []string{"SIX", "SAILS"})
	asgn, err := NewSolver(cw).Solve(context.Background())
	is.NoErr(err)
	checkSolution(t, cw, asgn)
	is.Equal(asgn[hookAcross], "SAILS")
	is.Equal(asgn[hookDown], "SIX")
}

func TestSolveCrossingPairDisagrees(t *testing.T) {
	is := is.New(t)
	cw := mustCrossword(t, hookRows, []string{"MIX", "SAILS"})
	asgn, err := NewSolver(cw).Solve(context.Background())
	is.True(errors.Is(err, ErrNoSolution))
	is.Equal(asgn, nil)
}

func TestSolveDisjointSlots(t *testing.T) {
	is := is.New(t)
	cw := mustCrossword(t, disjointRows, []string{"CAT", "DOG"})
	asgn, err := NewSolver(cw).Solve(context.Background())
	is.NoErr(err)
	checkSolution(t, cw, asgn)
}

func TestSolveDisjointSlotsNeedDistinctWords(t *testing.T) {
	is := is.New(t)
	// Two slots, one word: the distinctness constraint makes this
	// unsolvable even though the word fits both.
	cw := mustCrossword(t, disjointRows, []string{"CAT"})
	_, err := NewSolver(cw).Solve(context.Background())
	is.True(errors.Is(err, ErrNoSolution))
}

func TestSolveLadder(t *testing.T) {
	is := is.New(t)
	cw := mustCrossword(t, ladderRows, numberWords)
	asgn, err := NewSolver(cw).Solve(context.Background())
	is.NoErr(err)
	checkSolution(t, cw, asgn)

	is.Equal(asgn[xword.Variable{Row: 0, Col: 1, Length: 3, Direction: xword.Across}], "SIX")
	is.Equal(asgn[xword.Variable{Row: 0, Col: 1, Length: 5, Direction: xword.Down}], "SEVEN")
	is.Equal(asgn[xword.Variable{Row: 4, Col: 1, Length: 4, Direction: xword.Across}], "NINE")
	is.Equal(asgn[xword.Variable{Row: 1, Col: 4, Length: 4, Direction: xword.Down}], "FIVE")
}

func TestSolveIsDeterministic(t *testing.T) {
	is := is.New(t)
	cw := mustCrossword(t, ladderRows, numberWords)
	first, err := NewSolver(cw).Solve(context.Background())
	is.NoErr(err)
	second, err := NewSolver(cw).Solve(context.Background())
	is.NoErr(err)
	is.Equal(first, second)
}

func TestSolveRespectsContext(t *testing.T) {
	is := is.New(t)
	cw := mustCrossword(t, ladderRows, numberWords)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewSolver(cw).Solve(ctx)
	is.True(errors.Is(err, context.Canceled))
}

func TestAssignForcedSkipsUsedWords(t *testing.T) {
	is := is.New(t)
	cw := mustCrossword(t, disjointRows, []string{"CAT", "DOG"})
	s := NewSolver(cw)
	s.EnforceNodeConsistency()
	vars := cw.Variables()

	// Force both domains down to the same singleton.
	s.domains.Collapse(vars[0], "CAT")
	s.domains.Collapse(vars[1], "CAT")

	asgn := Assignment{}
	added := s.assignForced(asgn)
	is.Equal(added, []xword.Variable{vars[0]})
	is.Equal(asgn[vars[0]], "CAT")
	_, ok := asgn[vars[1]]
	is.True(!ok)
}

func TestSearchLog(t *testing.T) {
	is := is.New(t)
	cw := mustCrossword(t, hookRows, []string{"SIX", "SAILS"})
	s := NewSolver(cw)
	var buf bytes.Buffer
	s.SetLogStream(&buf)
	_, err := s.Solve(context.Background())
	is.NoErr(err)
	is.True(strings.Contains(buf.String(), "event: assign"))
}

func TestSolverStats(t *testing.T) {
	is := is.New(t)
	cw := mustCrossword(t, ladderRows, numberWords)
	s := NewSolver(cw)
	_, err := s.Solve(context.Background())
	is.NoErr(err)
	is.True(s.nodes > 0)
	is.True(s.revisions > 0)
}
