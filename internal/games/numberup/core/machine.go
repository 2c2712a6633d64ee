package core

import (
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

// Option configures a Machine.
type Option func(*machineConfig)

type machineConfig struct {
	size     int
	rules    Rules
	exponent float64
	src      Source
	logger   *log.Logger
	newID    func() string
}

// WithGridSize sets the grid dimension N.
func WithGridSize(n int) Option {
	return func(c *machineConfig) {
		if n >= 1 {
			c.size = n
		}
	}
}

// WithRules overrides the merge rules.
func WithRules(r Rules) Option {
	return func(c *machineConfig) { c.rules = r }
}

// WithWeightExponent sets the tile generation exponent.
func WithWeightExponent(e float64) Option {
	return func(c *machineConfig) { c.exponent = e }
}

// WithSource sets the random source used for tile generation.
func WithSource(src Source) Option {
	return func(c *machineConfig) { c.src = src }
}

// WithSeed seeds a math/rand source for reproducible games.
func WithSeed(seed int64) Option {
	return func(c *machineConfig) { c.src = rand.New(rand.NewSource(seed)) }
}

// WithLogger sets the logger for debug tracing.
func WithLogger(l *log.Logger) Option {
	return func(c *machineConfig) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithIDGenerator replaces the UUID generator for placement and merge IDs.
func WithIDGenerator(fn func() string) Option {
	return func(c *machineConfig) {
		if fn != nil {
			c.newID = fn
		}
	}
}

// Machine sequences placement, match resolution, overflow resolution and tile
// generation. It advances only on explicit calls; calls that are not valid in
// the current state are ignored.
type Machine struct {
	size     int
	store    *GridStore
	gen      *TileGenerator
	resolver *Resolver
	logger   *log.Logger
	newID    func() string

	state    State
	score    int
	highest  int
	nextTile int

	placement        *Placement
	overflow         *Overflow
	overflowConsumed bool

	layers      []Pass       // Computed cascade layers not yet published
	layerIndex  int          // 1-based index of the published layer
	pending     []MergeEvent // Published merges awaiting acknowledgement
	clearing    bool
	lastOutcome GameOverReason

	listeners []Listener
}

// NewMachine creates a machine and starts a fresh game.
func NewMachine(opts ...Option) *Machine {
	cfg := machineConfig{
		size:     DefaultGridSize,
		rules:    DefaultRules(),
		exponent: DefaultWeightExponent,
		logger:   log.New(io.Discard),
		newID:    uuid.NewString,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.src == nil {
		cfg.src = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	m := &Machine{
		size:   cfg.size,
		store:  NewGridStore(cfg.size),
		gen:    NewTileGenerator(cfg.src, cfg.exponent),
		logger: cfg.logger,
		newID:  cfg.newID,
	}
	m.resolver = NewResolver(cfg.rules, cfg.newID)
	m.Reset()
	return m
}

// Subscribe registers a listener for engine events.
func (m *Machine) Subscribe(l Listener) {
	if l != nil {
		m.listeners = append(m.listeners, l)
	}
}

func (m *Machine) emit(e Event) {
	for _, l := range m.listeners {
		l(e)
	}
}

// Reseed replaces the tile generator's random source.
func (m *Machine) Reseed(seed int64) {
	m.gen.SetSource(rand.New(rand.NewSource(seed)))
}

// Reset starts a new game. Valid from any state.
func (m *Machine) Reset() {
	m.store.Reset()
	m.score = 0
	m.highest = 1
	m.placement = nil
	m.overflow = nil
	m.overflowConsumed = false
	m.layers = nil
	m.layerIndex = 0
	m.pending = nil
	m.clearing = false
	m.lastOutcome = ReasonOverflow
	m.nextTile = m.gen.Next(m.highest)
	m.state = StateIdle

	m.logger.Debug("game reset", "size", m.size, "next", m.nextTile)
	m.emit(GameReset{NextTile: m.nextTile})
}

// PlaceTile drops the next tile into a column. A full column produces an
// overflow placement instead of a grid write. Returns false when ignored.
func (m *Machine) PlaceTile(col int) (Placement, bool) {
	if m.state != StateIdle || col < 0 || col >= m.size {
		return Placement{}, false
	}

	grid := m.store.Read()
	row := grid.LowestEmptyRow(col)
	p := Placement{
		ID:        m.newID(),
		Column:    col,
		TargetRow: row,
		Value:     m.nextTile,
	}

	if row < 0 {
		p.TargetRow = m.size
		p.IsOverflow = true
		m.overflow = &Overflow{Col: col, Value: p.Value}
		m.overflowConsumed = false
		m.state = StateAwaitingOverflowResolution
	} else {
		m.state = StateAwaitingPlacementResolution
	}
	m.placement = &p

	m.logger.Debug("tile placed", "col", col, "row", p.TargetRow, "value", p.Value, "overflow", p.IsOverflow)
	m.emit(PlacementStarted{Placement: p})
	return p, true
}

// PlacementAnimationComplete commits the pending placement and resolves it.
// Unknown or repeated IDs are ignored.
func (m *Machine) PlacementAnimationComplete(id string) {
	if m.placement == nil || m.placement.ID != id {
		return
	}
	if m.state != StateAwaitingPlacementResolution && m.state != StateAwaitingOverflowResolution {
		return
	}

	p := *m.placement
	m.placement = nil
	if !p.IsOverflow {
		m.store.Set(p.Column, p.TargetRow, p.Value)
	}
	m.resolve(m.overflow)
}

// ValueChangeAnimationComplete acknowledges one merge animation. When every
// merge of the published layer is acknowledged, the next layer is published.
func (m *Machine) ValueChangeAnimationComplete(id string) {
	if m.state != StateAnimatingMerges {
		return
	}
	for i, e := range m.pending {
		if e.ID == id {
			m.pending = append(m.pending[:i], m.pending[i+1:]...)
			break
		}
	}
	if len(m.pending) == 0 {
		m.publishNextLayer()
	}
}

// ClearAnimationComplete empties the grid after a clear and resumes resolution.
func (m *Machine) ClearAnimationComplete() {
	if m.state != StateClearing {
		return
	}
	m.store.Reset()
	m.clearing = false
	m.layers = nil
	m.publishNextLayer()
}

// resolve runs a full cascade on the current grid and starts publishing it.
func (m *Machine) resolve(overflow *Overflow) {
	res := m.resolver.Resolve(m.store.Read(), overflow, m.highest)
	if res.Depth() == 0 {
		m.finishTurn()
		return
	}

	m.logger.Debug("cascade resolved", "depth", res.Depth(), "score", res.ScoreDelta, "cleared", res.Cleared)
	m.layers = res.Passes
	m.layerIndex = 0
	m.publishNextLayer()
}

// publishNextLayer exposes the next computed cascade layer to the presentation
// layer, or re-invokes resolution once all layers have played.
func (m *Machine) publishNextLayer() {
	if len(m.layers) == 0 {
		m.resolve(nil)
		return
	}

	layer := m.layers[0]
	m.layers = m.layers[1:]
	m.layerIndex++

	m.score += layer.ScoreDelta
	m.highest = max(m.highest, layer.Highest)
	if layer.OverflowConsumed {
		m.overflowConsumed = true
	}

	if layer.Cleared {
		m.state = StateClearing
		m.clearing = true
		m.pending = nil
		m.logger.Debug("grid clear", "bonus", layer.ScoreDelta, "score", m.score)
		m.emit(ClearStarted{Bonus: layer.ScoreDelta, Score: m.score})
		return
	}

	m.store.Replace(layer.Grid)
	m.pending = append([]MergeEvent(nil), layer.Events...)
	m.state = StateAnimatingMerges
	m.emit(MergesStarted{
		Layer:  m.layerIndex,
		Merges: append([]MergeEvent(nil), layer.Events...),
		Grid:   layer.Grid,
		Score:  m.score,
	})
}

// finishTurn ends the placement cycle once resolution has converged.
func (m *Machine) finishTurn() {
	grid := m.store.Read()
	overflowLost := m.overflow != nil && !m.overflowConsumed
	m.overflow = nil
	m.overflowConsumed = false
	m.layers = nil
	m.layerIndex = 0
	m.pending = nil

	if overflowLost || !grid.HasOpenColumn() {
		m.lastOutcome = ReasonGridFull
		if overflowLost {
			m.lastOutcome = ReasonOverflow
		}
		m.state = StateGameOver
		m.logger.Debug("game over", "reason", m.lastOutcome, "score", m.score, "highest", m.highest)
		m.emit(GameEnded{Reason: m.lastOutcome, Score: m.score, Highest: m.highest})
		return
	}

	m.nextTile = m.gen.Next(m.highest)
	m.state = StateIdle
	m.emit(TurnFinished{NextTile: m.nextTile, Grid: grid})
}

// State returns the current phase.
func (m *Machine) State() State {
	return m.state
}

// Size returns the grid dimension N.
func (m *Machine) Size() int {
	return m.size
}

// Grid returns the current grid snapshot.
func (m *Machine) Grid() Grid {
	return m.store.Read()
}

// NextTile returns the value that the next placement will drop.
func (m *Machine) NextTile() int {
	return m.nextTile
}

// Score returns the current score.
func (m *Machine) Score() int {
	return m.score
}

// HighestUnlocked returns the highest value produced so far.
func (m *Machine) HighestUnlocked() int {
	return m.highest
}

// IsGameOver returns true once the game has ended.
func (m *Machine) IsGameOver() bool {
	return m.state == StateGameOver
}

// GameOverReason returns why the game ended. Only meaningful after game over.
func (m *Machine) GameOverReason() GameOverReason {
	return m.lastOutcome
}

// IsClearing returns true while a clear animation is pending.
func (m *Machine) IsClearing() bool {
	return m.clearing
}

// PendingPlacement returns the placement awaiting its animation, if any.
func (m *Machine) PendingPlacement() *Placement {
	if m.placement == nil {
		return nil
	}
	p := *m.placement
	return &p
}

// PendingOverflow returns the unresolved overflow cell, if any.
func (m *Machine) PendingOverflow() *Overflow {
	if m.overflow == nil {
		return nil
	}
	o := *m.overflow
	return &o
}

// PendingMerges returns the merge events awaiting acknowledgement.
func (m *Machine) PendingMerges() []MergeEvent {
	return append([]MergeEvent(nil), m.pending...)
}

// Snapshot captures the observable state.
type Snapshot struct {
	State     State
	Grid      Grid
	NextTile  int
	Score     int
	Highest   int
	GameOver  bool
	Clearing  bool
	Placement *Placement
	Overflow  *Overflow
	Merges    []MergeEvent
}

// Snapshot returns the current observable state.
func (m *Machine) Snapshot() Snapshot {
	return Snapshot{
		State:     m.state,
		Grid:      m.store.Read(),
		NextTile:  m.nextTile,
		Score:     m.score,
		Highest:   m.highest,
		GameOver:  m.IsGameOver(),
		Clearing:  m.clearing,
		Placement: m.PendingPlacement(),
		Overflow:  m.PendingOverflow(),
		Merges:    m.PendingMerges(),
	}
}
