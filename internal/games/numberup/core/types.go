// Package core implements the NumberUp rule engine: grid storage, weighted tile
// generation, match detection, merging with gravity cascades and the placement
// state machine. It has no dependency on the terminal platform.
package core

import "fmt"

// Rule constants.
const (
	DefaultGridSize       = 5
	Empty                 = 0
	MinMatchCount         = 3
	DefaultWeightExponent = 1.8
	DefaultClearValue     = 9
	DefaultClearBonus     = 1000
)

// Coord addresses a grid cell. Row 0 is the bottom of a column.
type Coord struct {
	Col int
	Row int
}

// At is a convenience constructor for Coord.
func At(col, row int) Coord {
	return Coord{Col: col, Row: row}
}

// String returns a string representation of the coordinate.
func (c Coord) String() string {
	return fmt.Sprintf("(%d,%d)", c.Col, c.Row)
}

// Overflow is the virtual "sixth square" above a full column.
// It lives at row N of its column until the placement is resolved.
type Overflow struct {
	Col   int
	Value int
}

// Cell returns the virtual coordinate of the overflow on a grid of size n.
func (o Overflow) Cell(n int) Coord {
	return Coord{Col: o.Col, Row: n}
}

// MatchGroup is one maximal 4-connected region of equal tile values.
type MatchGroup struct {
	Value int
	Cells []Coord
}

// Size returns the number of cells in the group.
func (m MatchGroup) Size() int {
	return len(m.Cells)
}

// Contains reports whether the group includes the given cell.
func (m MatchGroup) Contains(c Coord) bool {
	for _, cell := range m.Cells {
		if cell == c {
			return true
		}
	}
	return false
}

// Target returns the cell that receives the merged tile: smallest row,
// ties broken by smallest column.
func (m MatchGroup) Target() Coord {
	target := m.Cells[0]
	for _, c := range m.Cells[1:] {
		if c.Row < target.Row || (c.Row == target.Row && c.Col < target.Col) {
			target = c
		}
	}
	return target
}

// Rules holds the tunable constants of the merge rules.
type Rules struct {
	MinMatch   int // Minimum group size that merges
	ClearValue int // Group value that clears the whole grid
	ClearBonus int // Score awarded for a full clear
}

// DefaultRules returns the standard NumberUp rules.
func DefaultRules() Rules {
	return Rules{
		MinMatch:   MinMatchCount,
		ClearValue: DefaultClearValue,
		ClearBonus: DefaultClearBonus,
	}
}
