// Package numberup adapts the NumberUp rule engine to the arcade platform:
// it maps input to column drops, paces engine animations on the tick clock
// and renders the board.
package numberup

import (
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/numberup/internal/config"
	platformcore "github.com/vovakirdan/numberup/internal/core"
	"github.com/vovakirdan/numberup/internal/games/numberup/core"
	"github.com/vovakirdan/numberup/internal/registry"
)

// Variant selects the board size.
type Variant string

const (
	VariantClassic Variant = "numberup"
	VariantLarge   Variant = "numberup_large"
)

// Package-level settings applied on the next Reset
var (
	configPath string
	logger     *log.Logger
)

// SetConfigPath sets a custom YAML config path. Empty uses the search path.
func SetConfigPath(path string) {
	configPath = path
}

// SetLogger sets the logger handed to new engines.
func SetLogger(l *log.Logger) {
	logger = l
}

// Game is a NumberUp session.
type Game struct {
	variant Variant
	cfg     config.NumberUpConfig
	engine  *core.Machine
	tick    uint64

	cursor int
	anim   animation

	screenW  int
	screenH  int
	paused   bool
	tooSmall bool
	showHelp bool
}

// New creates a classic 5x5 game.
func New() *Game {
	return &Game{variant: VariantClassic}
}

// NewLarge creates a game one column and row larger than configured.
func NewLarge() *Game {
	return &Game{variant: VariantLarge}
}

func init() {
	registry.Register(string(VariantClassic), func() registry.Game {
		return New()
	})
	registry.Register(string(VariantLarge), func() registry.Game {
		return NewLarge()
	})
}

// ID returns the game identifier.
func (g *Game) ID() string {
	return string(g.variant)
}

// Title returns the display name.
func (g *Game) Title() string {
	if g.variant == VariantLarge {
		return "NumberUp (Large)"
	}
	return "NumberUp"
}

// Reset starts a new game with a freshly loaded config.
func (g *Game) Reset(cfg platformcore.RuntimeConfig) {
	loaded, err := config.LoadNumberUp(configPath)
	if err != nil {
		if logger != nil {
			logger.Warn("using default config", "error", err)
		}
		loaded = config.DefaultNumberUpConfig()
	}
	if g.variant == VariantLarge {
		loaded = loaded.WithGridSize(loaded.Grid.Size + 1)
	}
	g.cfg = loaded

	opts := []core.Option{
		core.WithGridSize(loaded.Grid.Size),
		core.WithRules(core.Rules{
			MinMatch:   loaded.Grid.MinMatch,
			ClearValue: loaded.Special.ClearValue,
			ClearBonus: loaded.Special.ClearBonus,
		}),
		core.WithWeightExponent(loaded.Generation.WeightExponent),
		core.WithSeed(cfg.Seed),
	}
	if logger != nil {
		opts = append(opts, core.WithLogger(logger.With("game", g.ID())))
	}

	g.engine = core.NewMachine(opts...)
	g.engine.Subscribe(g.onEvent)

	g.tick = 0
	g.cursor = loaded.Grid.Size / 2
	g.anim = animation{}
	g.paused = false
	g.showHelp = false
	g.Resize(cfg.ScreenW, cfg.ScreenH)
}

// Resize updates the screen size without restarting the game.
func (g *Game) Resize(w, h int) {
	g.screenW = w
	g.screenH = h
	n := g.size()
	g.tooSmall = w < boardWidth(n)+4 || h < boardHeight(n)+hudHeight+4
}

func (g *Game) size() int {
	if g.engine == nil {
		return g.cfg.Grid.Size
	}
	return g.engine.Size()
}

// Step advances one tick.
func (g *Game) Step(in platformcore.InputFrame) platformcore.StepResult {
	g.tick++

	if g.tooSmall {
		return platformcore.StepResult{State: g.State()}
	}

	if in.Has(platformcore.ActionPause) {
		g.paused = !g.paused
	}
	if in.Has(platformcore.ActionHelp) {
		g.showHelp = !g.showHelp
	}
	if g.paused || g.showHelp || g.engine.IsGameOver() {
		return platformcore.StepResult{State: g.State()}
	}

	g.updateAnimation()
	g.handleInput(in)

	return platformcore.StepResult{State: g.State()}
}

// handleInput moves the column cursor and drops tiles. Drops are only
// accepted while the engine waits for a placement.
func (g *Game) handleInput(in platformcore.InputFrame) {
	n := g.size()

	switch {
	case in.Has(platformcore.ActionLeft):
		g.cursor = platformcore.Clamp(g.cursor-1, 0, n-1)
	case in.Has(platformcore.ActionRight):
		g.cursor = platformcore.Clamp(g.cursor+1, 0, n-1)
	}

	drop := in.Has(platformcore.ActionDrop) || in.Has(platformcore.ActionDown)
	if col, ok := in.SelectedColumn(); ok && col < n {
		g.cursor = col
		drop = true
	}

	if drop && g.engine.State() == core.StateIdle {
		g.engine.PlaceTile(g.cursor)
	}
}

// State returns the current platform state.
func (g *Game) State() platformcore.GameState {
	if g.engine == nil {
		return platformcore.GameState{}
	}
	return platformcore.GameState{
		Score:    g.engine.Score(),
		MaxTile:  g.engine.HighestUnlocked(),
		GameOver: g.engine.IsGameOver(),
		Paused:   g.paused || g.tooSmall || g.showHelp,
	}
}

// Controls returns the control hints for the game.
func (g *Game) Controls() string {
	return "Left/Right 1-9: Column  Space: Drop  H: Rules  P: Pause  Q: Quit"
}
