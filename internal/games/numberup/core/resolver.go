package core

// MergeEvent describes one merge for the presentation layer to animate.
type MergeEvent struct {
	ID       string
	Col      int
	Row      int
	OldValue int
	NewValue int
	Size     int // Number of tiles in the merged group
}

// Pass is the outcome of one match-merge-gravity step.
type Pass struct {
	Groups           []MatchGroup
	Events           []MergeEvent
	Grid             Grid // Grid after merges and gravity
	ScoreDelta       int
	Highest          int
	Cleared          bool // A clear-value group fired; Grid is empty
	OverflowConsumed bool
	GravityChanged   bool
}

// Matched reports whether the pass found anything to merge.
func (p Pass) Matched() bool {
	return len(p.Groups) > 0
}

// Resolution is the outcome of a whole cascade.
type Resolution struct {
	Passes           []Pass // Only passes that matched, in cascade order
	Grid             Grid
	ScoreDelta       int
	Highest          int
	Cleared          bool
	OverflowConsumed bool
	GameOver         bool
}

// Depth returns the number of merge layers in the cascade.
func (r Resolution) Depth() int {
	return len(r.Passes)
}

// Events returns every merge event of the cascade in order.
func (r Resolution) Events() []MergeEvent {
	var events []MergeEvent
	for _, p := range r.Passes {
		events = append(events, p.Events...)
	}
	return events
}

// Resolver applies the merge rules.
type Resolver struct {
	rules Rules
	newID func() string
}

// NewResolver creates a resolver. A nil id function leaves event IDs empty.
func NewResolver(rules Rules, newID func() string) *Resolver {
	if rules.MinMatch < 1 {
		rules.MinMatch = MinMatchCount
	}
	if rules.ClearValue < 1 {
		rules.ClearValue = DefaultClearValue
	}
	return &Resolver{rules: rules, newID: newID}
}

// Rules returns the rules in effect.
func (r *Resolver) Rules() Rules {
	return r.rules
}

func (r *Resolver) id() string {
	if r.newID == nil {
		return ""
	}
	return r.newID()
}

// ResolvePass finds matches once, merges them highest value first and applies
// gravity a single time.
func (r *Resolver) ResolvePass(g Grid, overflow *Overflow, highest int) Pass {
	pass := Pass{Grid: g, Highest: highest}

	groups := FindMatches(g, overflow, r.rules.MinMatch)
	if len(groups) == 0 {
		return pass
	}
	pass.Groups = groups

	for _, group := range groups {
		if group.Value == r.rules.ClearValue {
			pass.Cleared = true
			pass.ScoreDelta = r.rules.ClearBonus
			pass.Highest = max(highest, r.rules.ClearValue)
			pass.OverflowConsumed = overflow != nil
			pass.Grid = NewGrid(g.n)
			pass.GravityChanged = false
			pass.Events = nil
			return pass
		}
	}

	cells := g.mutable()
	for _, group := range groups {
		target := group.Target()
		merged := group.Value + 1

		for _, c := range group.Cells {
			if !g.InBounds(c.Col, c.Row) {
				// The overflow cell never lands in the grid
				continue
			}
			if c == target {
				cells[c.Col*g.n+c.Row] = merged
			} else {
				cells[c.Col*g.n+c.Row] = Empty
			}
		}

		pass.ScoreDelta += group.Value * group.Value * group.Size()
		pass.Highest = max(pass.Highest, merged)
		if overflow != nil && group.Contains(overflow.Cell(g.n)) {
			pass.OverflowConsumed = true
		}
		pass.Events = append(pass.Events, MergeEvent{
			ID:       r.id(),
			Col:      target.Col,
			Row:      target.Row,
			OldValue: group.Value,
			NewValue: merged,
			Size:     group.Size(),
		})
	}

	pass.Grid, pass.GravityChanged = ApplyGravity(Grid{n: g.n, cells: cells})
	return pass
}

// Resolve runs passes until one finds no matches. Only the first pass sees the
// overflow; later passes run while gravity keeps changing the grid.
func (r *Resolver) Resolve(g Grid, overflow *Overflow, highest int) Resolution {
	res := Resolution{Grid: g, Highest: highest}

	current := overflow
	for {
		pass := r.ResolvePass(res.Grid, current, res.Highest)
		if !pass.Matched() {
			break
		}

		res.Passes = append(res.Passes, pass)
		res.Grid = pass.Grid
		res.ScoreDelta += pass.ScoreDelta
		res.Highest = pass.Highest
		res.OverflowConsumed = res.OverflowConsumed || pass.OverflowConsumed
		current = nil

		if pass.Cleared {
			res.Cleared = true
			break
		}
		if !pass.GravityChanged {
			break
		}
	}

	if overflow != nil && !res.OverflowConsumed {
		res.GameOver = true
	}
	if !res.Grid.HasOpenColumn() {
		res.GameOver = true
	}
	return res
}
