package core

// ApplyGravity compacts each column downward, preserving tile order.
// Returns the new grid and whether any column changed.
func ApplyGravity(g Grid) (Grid, bool) {
	cells := g.mutable()
	changed := false

	for col := 0; col < g.n; col++ {
		base := col * g.n
		write := 0
		for row := 0; row < g.n; row++ {
			v := cells[base+row]
			if v == Empty {
				continue
			}
			if write != row {
				cells[base+write] = v
				cells[base+row] = Empty
				changed = true
			}
			write++
		}
	}

	if !changed {
		return g, false
	}
	return Grid{n: g.n, cells: cells}, true
}
