package numberup

import (
	"github.com/vovakirdan/numberup/internal/games/numberup/core"
)

// animPhase is the kind of engine step being played back.
type animPhase int

const (
	phaseNone animPhase = iota
	phaseDrop
	phaseMerge
	phaseClear
)

func (p animPhase) String() string {
	switch p {
	case phaseDrop:
		return "drop"
	case phaseMerge:
		return "merge"
	case phaseClear:
		return "clear"
	default:
		return "none"
	}
}

// animation plays one engine step. When it runs out of ticks the engine is
// told, which may start the next step.
type animation struct {
	phase     animPhase
	ticks     int
	duration  int
	placement core.Placement
	merges    []core.MergeEvent
	layer     int
	bonus     int
}

// progress returns 0..1 through the current phase.
func (a animation) progress() float64 {
	if a.duration <= 0 {
		return 1
	}
	p := float64(a.ticks) / float64(a.duration)
	if p > 1 {
		return 1
	}
	return p
}

// onEvent starts the animation matching an engine event.
func (g *Game) onEvent(e core.Event) {
	switch ev := e.(type) {
	case core.PlacementStarted:
		g.anim = animation{phase: phaseDrop, duration: g.cfg.Animation.DropTicks, placement: ev.Placement}
	case core.MergesStarted:
		g.anim = animation{phase: phaseMerge, duration: g.cfg.Animation.MergeTicks, merges: ev.Merges, layer: ev.Layer}
	case core.ClearStarted:
		g.anim = animation{phase: phaseClear, duration: g.cfg.Animation.ClearTicks, bonus: ev.Bonus}
	case core.TurnFinished, core.GameEnded, core.GameReset:
		g.anim = animation{}
	}
}

// updateAnimation advances the running animation and acknowledges it once done.
func (g *Game) updateAnimation() {
	if g.anim.phase == phaseNone {
		return
	}

	g.anim.ticks++
	if g.anim.ticks < g.anim.duration {
		return
	}

	done := g.anim
	g.anim = animation{}

	switch done.phase {
	case phaseDrop:
		g.engine.PlacementAnimationComplete(done.placement.ID)
	case phaseMerge:
		for _, m := range done.merges {
			g.engine.ValueChangeAnimationComplete(m.ID)
		}
	case phaseClear:
		g.engine.ClearAnimationComplete()
	}
}

// easeOutQuad decelerates towards the end of the motion.
func easeOutQuad(t float64) float64 {
	return t * (2 - t)
}

// dropRow returns the fractional row of a falling tile. Row N is the slot
// above the grid where tiles hover before they drop.
func (a animation) dropRow(n int) float64 {
	from := float64(n)
	to := float64(a.placement.TargetRow)
	return from + (to-from)*easeOutQuad(a.progress())
}

// merging reports whether (col,row) is the target of a merge being animated.
func (a animation) merging(col, row int) (core.MergeEvent, bool) {
	if a.phase != phaseMerge {
		return core.MergeEvent{}, false
	}
	for _, m := range a.merges {
		if m.Col == col && m.Row == row {
			return m, true
		}
	}
	return core.MergeEvent{}, false
}
