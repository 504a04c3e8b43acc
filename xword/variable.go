package xword

import "fmt"

type Direction uint8

const (
	Across Direction = iota
	Down
)

func (d Direction) String() string {
	if d == Across {
		return "across"
	}
	return "down"
}

// A Variable is a slot in the grid: a maximal run of open cells in one
// direction. Two variables are equal iff all four fields match, which lets
// a Variable be used directly as a map key.
type Variable struct {
	Row       int
	Col       int
	Length    int
	Direction Direction
}

func (v Variable) String() string {
	return fmt.Sprintf("%d,%d %s (%d)", v.Row, v.Col, v.Direction, v.Length)
}

// Cell returns the grid coordinates of the k-th letter of the slot.
func (v Variable) Cell(k int) (row, col int) {
	if v.Direction == Down {
		return v.Row + k, v.Col
	}
	return v.Row, v.Col + k
}
