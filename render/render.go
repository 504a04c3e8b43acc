// Package render turns a finished assignment into something a person can
// look at: a terminal rendering or a PNG.
package render

import (
	"strings"

	"github.com/domino14/crossfill/filler"
	"github.com/domino14/crossfill/xword"
)

// Block is drawn for cells no slot occupies.
const Block = '█'

// LetterGrid lays the assigned words onto a Height×Width rune grid. Cells
// not covered by any assigned variable stay zero.
func LetterGrid(cw *xword.Crossword, asgn filler.Assignment) [][]rune {
	letters := make([][]rune, cw.Height)
	for i := range letters {
		letters[i] = make([]rune, cw.Width)
	}
	for v, word := range asgn {
		for k := 0; k < v.Length; k++ {
			r, c := v.Cell(k)
			letters[r][c] = cw.Letter(word, k)
		}
	}
	return letters
}

// Text renders the assignment for a terminal, one line per grid row, with
// blocked cells drawn as Block.
func Text(cw *xword.Crossword, asgn filler.Assignment) string {
	letters := LetterGrid(cw, asgn)
	var sb strings.Builder
	for i := 0; i < cw.Height; i++ {
		for j := 0; j < cw.Width; j++ {
			switch {
			case !cw.CellOpen(i, j):
				sb.WriteRune(Block)
			case letters[i][j] != 0:
				sb.WriteRune(letters[i][j])
			default:
				sb.WriteRune(' ')
			}
		}
		sb.WriteRune('\n')
	}
	return sb.String()
}
