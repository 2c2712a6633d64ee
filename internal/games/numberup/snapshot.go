package numberup

// GameStateType is a coarse phase for tests and replays.
type GameStateType string

const (
	StatePlaying     GameStateType = "playing"
	StateAnimating   GameStateType = "animating"
	StatePaused      GameStateType = "paused"
	StateGameOver    GameStateType = "game_over"
	StatePausedSmall GameStateType = "paused_small_window"
)

// Snapshot captures the game for determinism tests.
type Snapshot struct {
	Tick     uint64
	Variant  string
	Size     int
	Cursor   int
	Score    int
	MaxTile  int
	NextTile int
	Columns  [][]int // Bottom-up, one slice per column
	Engine   string  // Engine state name
	Anim     string
	State    GameStateType
}

// Snapshot returns the current game snapshot.
func (g *Game) Snapshot() Snapshot {
	if g.engine == nil {
		return Snapshot{Variant: g.ID()}
	}

	state := StatePlaying
	switch {
	case g.tooSmall:
		state = StatePausedSmall
	case g.engine.IsGameOver():
		state = StateGameOver
	case g.paused || g.showHelp:
		state = StatePaused
	case g.anim.phase != phaseNone:
		state = StateAnimating
	}

	grid := g.engine.Grid()
	cols := make([][]int, grid.Size())
	for c := range cols {
		cols[c] = grid.Column(c)
	}

	return Snapshot{
		Tick:     g.tick,
		Variant:  g.ID(),
		Size:     grid.Size(),
		Cursor:   g.cursor,
		Score:    g.engine.Score(),
		MaxTile:  g.engine.HighestUnlocked(),
		NextTile: g.engine.NextTile(),
		Columns:  cols,
		Engine:   g.engine.State().String(),
		Anim:     g.anim.phase.String(),
		State:    state,
	}
}
