package core

import (
	"fmt"
	"strings"
)

// Grid is an immutable N×N snapshot of cell values.
// Cells are stored column-major: index = col*N + row.
type Grid struct {
	n     int
	cells []int
}

// NewGrid creates an empty grid of size n.
func NewGrid(n int) Grid {
	if n < 1 {
		n = DefaultGridSize
	}
	return Grid{n: n, cells: make([]int, n*n)}
}

// GridFromColumns builds a grid from column slices listed bottom-up.
// Columns shorter than n are padded with Empty; extra values are dropped.
func GridFromColumns(n int, columns ...[]int) Grid {
	g := NewGrid(n)
	for col := 0; col < len(columns) && col < g.n; col++ {
		for row := 0; row < len(columns[col]) && row < g.n; row++ {
			g.cells[col*g.n+row] = columns[col][row]
		}
	}
	return g
}

// Size returns the grid dimension N.
func (g Grid) Size() int {
	return g.n
}

// InBounds returns true if (col, row) lies inside the grid.
func (g Grid) InBounds(col, row int) bool {
	return col >= 0 && col < g.n && row >= 0 && row < g.n
}

// At returns the value at (col, row), or Empty when out of bounds.
func (g Grid) At(col, row int) int {
	if !g.InBounds(col, row) {
		return Empty
	}
	return g.cells[col*g.n+row]
}

// Column returns a copy of the column's values, bottom-up.
func (g Grid) Column(col int) []int {
	out := make([]int, g.n)
	if col < 0 || col >= g.n {
		return out
	}
	copy(out, g.cells[col*g.n:(col+1)*g.n])
	return out
}

// LowestEmptyRow returns the first empty row in the column, or -1 if full.
func (g Grid) LowestEmptyRow(col int) int {
	if col < 0 || col >= g.n {
		return -1
	}
	for row := 0; row < g.n; row++ {
		if g.cells[col*g.n+row] == Empty {
			return row
		}
	}
	return -1
}

// HasOpenColumn returns true if at least one column has an empty top cell.
func (g Grid) HasOpenColumn() bool {
	for col := 0; col < g.n; col++ {
		if g.At(col, g.n-1) == Empty {
			return true
		}
	}
	return false
}

// MaxValue returns the highest tile value on the grid.
func (g Grid) MaxValue() int {
	maxVal := Empty
	for _, v := range g.cells {
		if v > maxVal {
			maxVal = v
		}
	}
	return maxVal
}

// FilledCount returns the number of non-empty cells.
func (g Grid) FilledCount() int {
	count := 0
	for _, v := range g.cells {
		if v != Empty {
			count++
		}
	}
	return count
}

// IsEmpty returns true if no cell holds a tile.
func (g Grid) IsEmpty() bool {
	return g.FilledCount() == 0
}

// Equal returns true if two grids have the same size and contents.
func (g Grid) Equal(other Grid) bool {
	if g.n != other.n || len(g.cells) != len(other.cells) {
		return false
	}
	for i, v := range g.cells {
		if v != other.cells[i] {
			return false
		}
	}
	return true
}

// with returns a copy of the grid with one cell changed.
// Out-of-bounds coordinates return the grid unchanged.
func (g Grid) with(col, row, value int) Grid {
	if !g.InBounds(col, row) {
		return g
	}
	cells := make([]int, len(g.cells))
	copy(cells, g.cells)
	cells[col*g.n+row] = value
	return Grid{n: g.n, cells: cells}
}

// mutable returns a private copy of the cell storage for batch edits.
func (g Grid) mutable() []int {
	cells := make([]int, len(g.cells))
	copy(cells, g.cells)
	return cells
}

// String renders the grid top row first, for debugging and test failures.
func (g Grid) String() string {
	var sb strings.Builder
	for row := g.n - 1; row >= 0; row-- {
		for col := 0; col < g.n; col++ {
			if col > 0 {
				sb.WriteByte(' ')
			}
			v := g.At(col, row)
			if v == Empty {
				sb.WriteByte('.')
			} else {
				fmt.Fprintf(&sb, "%d", v)
			}
		}
		if row > 0 {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}

// GridStore owns the current grid and is the only way to mutate it.
// Every write produces a new snapshot; snapshots already returned by Read
// are never modified.
type GridStore struct {
	snap Grid
}

// NewGridStore creates a store holding an empty grid of size n.
func NewGridStore(n int) *GridStore {
	return &GridStore{snap: NewGrid(n)}
}

// Set writes a value. Out-of-bounds coordinates are ignored.
func (s *GridStore) Set(col, row, value int) {
	s.snap = s.snap.with(col, row, value)
}

// Read returns the current snapshot.
func (s *GridStore) Read() Grid {
	return s.snap
}

// Replace swaps in a whole snapshot computed elsewhere, such as by the resolver.
// A snapshot of a different size is ignored.
func (s *GridStore) Replace(g Grid) {
	if g.n != s.snap.n {
		return
	}
	s.snap = g
}

// Reset empties every cell.
func (s *GridStore) Reset() {
	s.snap = NewGrid(s.snap.n)
}
