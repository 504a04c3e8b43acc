// Package xword holds the crossword puzzle model: the occupancy grid, the
// slots (variables) derived from it, the overlap table between crossing
// slots, and the candidate dictionary.
package xword

import (
	"errors"
	"sort"
	"strings"

	"github.com/samber/lo"
)

// OpenCell is the rune that marks a fillable cell in a structure row.
const OpenCell = '_'

var ErrEmptyStructure = errors.New("structure has no rows")

// An Overlap identifies the single cell shared by two crossing slots as a
// pair of character positions: X is the offset within the first slot's word,
// Y the offset within the second slot's.
type Overlap struct {
	X int
	Y int
}

type varPair struct {
	a, b Variable
}

// A Crossword is the puzzle model consumed by the filler: grid dimensions,
// an occupancy grid, the derived variables, a precomputed overlap table for
// every pair of variables sharing a cell, and the dictionary. It is immutable
// after New returns.
type Crossword struct {
	Width  int
	Height int

	open      [][]bool
	words     []string
	letters   map[string][]rune
	byLength  map[int][]string
	variables []Variable
	overlaps  map[varPair]Overlap
	neighbors map[Variable][]Variable
}

// New builds a Crossword from structure rows and a dictionary. A row cell is
// open iff it holds OpenCell; rows shorter than the widest row are padded
// with blocked cells. Only runs of two or more open cells become variables.
func New(structure []string, words []string) (*Crossword, error) {
	if len(structure) == 0 {
		return nil, ErrEmptyStructure
	}
	height := len(structure)
	width := 0
	for _, row := range structure {
		if len([]rune(row)) > width {
			width = len([]rune(row))
		}
	}

	open := make([][]bool, height)
	for i, row := range structure {
		open[i] = make([]bool, width)
		for j, r := range []rune(row) {
			open[i][j] = r == OpenCell
		}
	}

	cw := &Crossword{
		Width:  width,
		Height: height,
		open:   open,
		words:  normalizeWords(words),
	}
	cw.letters = make(map[string][]rune, len(cw.words))
	cw.byLength = map[int][]string{}
	for _, w := range cw.words {
		rs := []rune(w)
		cw.letters[w] = rs
		cw.byLength[len(rs)] = append(cw.byLength[len(rs)], w)
	}
	cw.findVariables()
	cw.computeOverlaps()
	return cw, nil
}

func normalizeWords(words []string) []string {
	uniq := lo.Uniq(lo.Map(words, func(w string, _ int) string {
		return strings.ToUpper(strings.TrimSpace(w))
	}))
	uniq = lo.Filter(uniq, func(w string, _ int) bool { return w != "" })
	sort.Strings(uniq)
	return uniq
}

// findVariables scans every row for maximal horizontal runs and every column
// for maximal vertical runs. Single cells belong to the crossing run only.
func (cw *Crossword) findVariables() {
	for i := 0; i < cw.Height; i++ {
		for j := 0; j < cw.Width; j++ {
			if !cw.open[i][j] || (j > 0 && cw.open[i][j-1]) {
				continue
			}
			length := 0
			for k := j; k < cw.Width && cw.open[i][k]; k++ {
				length++
			}
			if length > 1 {
				cw.variables = append(cw.variables, Variable{
					Row: i, Col: j, Length: length, Direction: Across,
				})
			}
		}
	}
	for j := 0; j < cw.Width; j++ {
		for i := 0; i < cw.Height; i++ {
			if !cw.open[i][j] || (i > 0 && cw.open[i-1][j]) {
				continue
			}
			length := 0
			for k := i; k < cw.Height && cw.open[k][j]; k++ {
				length++
			}
			if length > 1 {
				cw.variables = append(cw.variables, Variable{
					Row: i, Col: j, Length: length, Direction: Down,
				})
			}
		}
	}
	sort.Slice(cw.variables, func(a, b int) bool {
		va, vb := cw.variables[a], cw.variables[b]
		if va.Row != vb.Row {
			return va.Row < vb.Row
		}
		if va.Col != vb.Col {
			return va.Col < vb.Col
		}
		if va.Direction != vb.Direction {
			return va.Direction < vb.Direction
		}
		return va.Length < vb.Length
	})
}

func (cw *Crossword) computeOverlaps() {
	cw.overlaps = map[varPair]Overlap{}
	cw.neighbors = map[Variable][]Variable{}

	cells := map[Variable]map[[2]int]int{}
	for _, v := range cw.variables {
		m := make(map[[2]int]int, v.Length)
		for k := 0; k < v.Length; k++ {
			r, c := v.Cell(k)
			m[[2]int{r, c}] = k
		}
		cells[v] = m
	}

	for _, x := range cw.variables {
		for _, y := range cw.variables {
			if x == y {
				continue
			}
			for cell, i := range cells[x] {
				if j, ok := cells[y][cell]; ok {
					cw.overlaps[varPair{x, y}] = Overlap{X: i, Y: j}
					cw.neighbors[x] = append(cw.neighbors[x], y)
					break
				}
			}
		}
	}
	for _, ns := range cw.neighbors {
		sort.Slice(ns, func(a, b int) bool {
			va, vb := ns[a], ns[b]
			if va.Row != vb.Row {
				return va.Row < vb.Row
			}
			if va.Col != vb.Col {
				return va.Col < vb.Col
			}
			return va.Direction < vb.Direction
		})
	}
}

// Variables returns every slot, in a deterministic row/column/direction
// order. The returned slice must not be modified.
func (cw *Crossword) Variables() []Variable {
	return cw.variables
}

// CellOpen reports whether (row, col) is a fillable cell.
func (cw *Crossword) CellOpen(row, col int) bool {
	if row < 0 || row >= cw.Height || col < 0 || col >= cw.Width {
		return false
	}
	return cw.open[row][col]
}

// Overlap returns the shared-cell offsets for x and y, and whether the two
// slots share a cell at all.
func (cw *Crossword) Overlap(x, y Variable) (Overlap, bool) {
	o, ok := cw.overlaps[varPair{x, y}]
	return o, ok
}

// Neighbors returns the slots crossing v, in a deterministic order. The
// returned slice must not be modified.
func (cw *Crossword) Neighbors(v Variable) []Variable {
	return cw.neighbors[v]
}

// Words returns the full dictionary, uppercased, deduplicated and sorted.
func (cw *Crossword) Words() []string {
	return cw.words
}

// WordsOfLength returns the dictionary words of exactly n letters.
func (cw *Crossword) WordsOfLength(n int) []string {
	return cw.byLength[n]
}

// WordLength returns the number of letters in w. Word lists may contain
// multi-byte letters, so this is a rune count, not len(w).
func (cw *Crossword) WordLength(w string) int {
	if rs, ok := cw.letters[w]; ok {
		return len(rs)
	}
	return len([]rune(w))
}

// Letter returns the i-th letter of w.
func (cw *Crossword) Letter(w string, i int) rune {
	if rs, ok := cw.letters[w]; ok {
		return rs[i]
	}
	return []rune(w)[i]
}
