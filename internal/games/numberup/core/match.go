package core

import "sort"

// neighbours are the 4-connected offsets (col, row). No diagonals.
var neighbours = [4][2]int{{0, -1}, {0, 1}, {-1, 0}, {1, 0}}

// matchBoard is the grid plus the optional overflow cell, viewed as a graph.
type matchBoard struct {
	grid     Grid
	overflow *Overflow
}

// maxRow returns the highest addressable row in the column.
// The column holding the overflow reaches one row higher.
func (b matchBoard) maxRow(col int) int {
	if b.overflow != nil && col == b.overflow.Col {
		return b.grid.n
	}
	return b.grid.n - 1
}

func (b matchBoard) inBounds(col, row int) bool {
	return col >= 0 && col < b.grid.n && row >= 0 && row <= b.maxRow(col)
}

func (b matchBoard) value(col, row int) int {
	if b.overflow != nil && col == b.overflow.Col && row == b.grid.n {
		return b.overflow.Value
	}
	return b.grid.At(col, row)
}

// FindMatches returns every connected group of at least minMatch equal tiles,
// ordered by decreasing value. The overflow, when non-nil, takes part as the
// cell directly above its column.
func FindMatches(g Grid, overflow *Overflow, minMatch int) []MatchGroup {
	if minMatch < 1 {
		minMatch = MinMatchCount
	}
	if overflow != nil && (overflow.Col < 0 || overflow.Col >= g.n) {
		overflow = nil
	}

	b := matchBoard{grid: g, overflow: overflow}
	rows := g.n + 1
	visited := make([]bool, g.n*rows)
	queue := make([]Coord, 0, g.n*rows)

	var groups []MatchGroup
	for startCol := 0; startCol < g.n; startCol++ {
		for startRow := 0; startRow <= b.maxRow(startCol); startRow++ {
			value := b.value(startCol, startRow)
			if value == Empty || visited[startCol*rows+startRow] {
				continue
			}

			queue = queue[:0]
			queue = append(queue, At(startCol, startRow))
			visited[startCol*rows+startRow] = true

			for head := 0; head < len(queue); head++ {
				cur := queue[head]
				for _, d := range neighbours {
					col, row := cur.Col+d[0], cur.Row+d[1]
					if !b.inBounds(col, row) || visited[col*rows+row] {
						continue
					}
					if b.value(col, row) != value {
						continue
					}
					visited[col*rows+row] = true
					queue = append(queue, At(col, row))
				}
			}

			if len(queue) >= minMatch {
				cells := make([]Coord, len(queue))
				copy(cells, queue)
				groups = append(groups, MatchGroup{Value: value, Cells: cells})
			}
		}
	}

	sort.SliceStable(groups, func(i, j int) bool {
		return groups[i].Value > groups[j].Value
	})
	return groups
}
