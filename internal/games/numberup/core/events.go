package core

// State is a phase of the placement/resolution cycle.
type State int

const (
	StateIdle State = iota
	StateAwaitingPlacementResolution
	StateAwaitingOverflowResolution
	StateAnimatingMerges
	StateClearing
	StateGameOver
)

// String returns a human-readable name for the state.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateAwaitingPlacementResolution:
		return "awaiting_placement"
	case StateAwaitingOverflowResolution:
		return "awaiting_overflow"
	case StateAnimatingMerges:
		return "animating_merges"
	case StateClearing:
		return "clearing"
	case StateGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// Placement is a tile drop waiting for its animation to finish.
type Placement struct {
	ID         string
	Column     int
	TargetRow  int // Equals the grid size for an overflow placement
	Value      int
	IsOverflow bool
}

// GameOverReason describes why the game ended.
type GameOverReason int

const (
	ReasonOverflow GameOverReason = iota // Sixth square was not merged away
	ReasonGridFull                       // No column has room at the top
)

func (r GameOverReason) String() string {
	switch r {
	case ReasonOverflow:
		return "overflow"
	case ReasonGridFull:
		return "grid full"
	default:
		return "unknown"
	}
}

// Event is sent to subscribers whenever the machine changes phase.
type Event interface {
	engineEvent()
}

// Listener receives engine events synchronously.
type Listener func(Event)

// PlacementStarted is sent when a tile drop begins.
type PlacementStarted struct {
	Placement Placement
}

func (PlacementStarted) engineEvent() {}

// MergesStarted is sent when a cascade layer is published for animation.
type MergesStarted struct {
	Layer  int // 1-based position within the current cascade
	Merges []MergeEvent
	Grid   Grid
	Score  int
}

func (MergesStarted) engineEvent() {}

// ClearStarted is sent when a clear-value group fires.
type ClearStarted struct {
	Bonus int
	Score int
}

func (ClearStarted) engineEvent() {}

// TurnFinished is sent when resolution converges and the next tile is ready.
type TurnFinished struct {
	NextTile int
	Grid     Grid
}

func (TurnFinished) engineEvent() {}

// GameEnded is sent when the game reaches its terminal state.
type GameEnded struct {
	Reason  GameOverReason
	Score   int
	Highest int
}

func (GameEnded) engineEvent() {}

// GameReset is sent after Reset.
type GameReset struct {
	NextTile int
}

func (GameReset) engineEvent() {}
