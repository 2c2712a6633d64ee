package tui

import (
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/numberup/internal/core"
	"github.com/vovakirdan/numberup/internal/registry"
	"github.com/vovakirdan/numberup/internal/storage"
)

func init() {
	registry.Register("fake", func() registry.Game { return &fakeGame{} })
}

// fakeGame ends as soon as it sees a drop.
type fakeGame struct {
	resets   int
	resized  [2]int
	score    int
	gameOver bool
}

func (g *fakeGame) ID() string    { return "fake" }
func (g *fakeGame) Title() string { return "Fake" }

func (g *fakeGame) Reset(core.RuntimeConfig) {
	g.resets++
	g.score = 0
	g.gameOver = false
}

func (g *fakeGame) Step(in core.InputFrame) core.StepResult {
	if in.Has(core.ActionDrop) {
		g.score = 42
		g.gameOver = true
	}
	return core.StepResult{State: g.State()}
}

func (g *fakeGame) Render(dst *core.Screen) {
	dst.Clear()
	dst.DrawTextColored(0, 0, "fake game", core.ColorGreen)
}

func (g *fakeGame) State() core.GameState {
	return core.GameState{Score: g.score, MaxTile: 5, GameOver: g.gameOver}
}

func (g *fakeGame) Resize(w, h int) {
	g.resized = [2]int{w, h}
}

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	model, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return model
}

func openTestStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestModelResizeKeepsGame(t *testing.T) {
	game := &fakeGame{}
	m := newPlayerModel(game, nil, core.DefaultConfig(), "tester")
	m.Init()

	m = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 40})

	if game.resets != 1 {
		t.Errorf("resets = %d, resize should not restart", game.resets)
	}
	if game.resized != [2]int{100, 40} {
		t.Errorf("resized = %v", game.resized)
	}
	if m.screen.Width() != 100 || m.screen.Height() != 40 {
		t.Errorf("screen = %dx%d", m.screen.Width(), m.screen.Height())
	}
}

func TestModelSavesScoreOnce(t *testing.T) {
	store := openTestStore(t)
	game := &fakeGame{}
	m := newPlayerModel(game, store, core.DefaultConfig(), "tester")
	m.Init()

	m = update(t, m, tea.KeyMsg{Type: tea.KeySpace})
	m = update(t, m, TickMsg{})
	m = update(t, m, TickMsg{})

	scores, err := store.AllScores("fake")
	if err != nil {
		t.Fatal(err)
	}
	if len(scores) != 1 {
		t.Fatalf("saved %d scores, want 1", len(scores))
	}
	if scores[0].Player != "tester" || scores[0].Score != 42 || scores[0].MaxTile != 5 {
		t.Errorf("saved %+v", scores[0])
	}

	// Restart after game over
	m = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("r")})
	m = update(t, m, TickMsg{})
	if game.resets != 2 || m.gameState.GameOver {
		t.Errorf("restart: resets = %d, state = %+v", game.resets, m.gameState)
	}
}

func TestModelQuit(t *testing.T) {
	m := newPlayerModel(&fakeGame{}, nil, core.DefaultConfig(), "")
	m.Init()

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if view := next.(Model).View(); view != "" {
		t.Errorf("view after quit = %q", view)
	}
}

func TestRenderScreen(t *testing.T) {
	s := core.NewScreen(12, 2)
	s.DrawText(0, 0, "plain")
	s.DrawTextColored(6, 0, "red", core.ColorRed)
	s.DrawTextColored(0, 1, "gray", core.ColorGray)

	out := RenderScreen(s)
	lines := strings.Split(out, "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2", len(lines))
	}
	for _, want := range []string{"plain", "red", "gray"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q", want)
		}
	}
}

func TestGameModelBackToMenu(t *testing.T) {
	game := &fakeGame{}
	gm := NewGameModel(game, nil, core.DefaultConfig(), "ssh-user")
	gm.Init()

	next, _ := gm.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("b")})
	gm = next.(GameModel)
	if gm.BackToMenu() {
		t.Fatal("back should be ignored while playing")
	}

	next, _ = gm.Update(tea.KeyMsg{Type: tea.KeySpace})
	gm = next.(GameModel)
	next, _ = gm.Update(TickMsg{})
	gm = next.(GameModel)
	if !gm.gameState.GameOver {
		t.Fatal("expected game over")
	}

	next, _ = gm.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("b")})
	if !next.(GameModel).BackToMenu() {
		t.Error("back after game over should return to the menu")
	}
}

func TestMenuSelectAndScoreboard(t *testing.T) {
	store := openTestStore(t)
	if _, err := store.SaveScore(storage.Result{GameID: "fake", Player: "ann", Score: 77, MaxTile: 6}); err != nil {
		t.Fatal(err)
	}

	m := NewMenuModel(store, core.DefaultConfig())
	if len(m.items) != 1 || m.items[0].Best != 77 || m.items[0].Tile != 6 {
		t.Fatalf("items = %+v", m.items)
	}
	if !strings.Contains(m.View(), "best 77, tile 6") {
		t.Error("menu should show the saved best")
	}

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyUp})
	m = next.(MenuModel)
	if m.cursor != 0 {
		t.Errorf("cursor = %d, want 0", m.cursor)
	}

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyTab})
	if cmd == nil || !next.(MenuModel).WantsScoreboard() {
		t.Error("tab should open the scoreboard")
	}
}

func TestMenuSelect(t *testing.T) {
	m := NewMenuModel(nil, core.DefaultConfig())

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("select should end the menu")
	}
	if sel := next.(MenuModel).Selected(); sel == nil || sel.GameID != "fake" {
		t.Errorf("Selected() = %+v", sel)
	}
}

func TestScoreboardShowsScores(t *testing.T) {
	store := openTestStore(t)
	if _, err := store.SaveScore(storage.Result{GameID: "fake", Player: "ann", Score: 120, MaxTile: 7}); err != nil {
		t.Fatal(err)
	}

	sb := NewScoreboardModel(store, 100, 30)
	view := sb.View()
	for _, want := range []string{"HIGH SCORES", "Fake", "ann", "120", "Games: 1"} {
		if !strings.Contains(view, want) {
			t.Errorf("scoreboard missing %q", want)
		}
	}

	next, _ := sb.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if !next.(ScoreboardModel).IsGoingBack() {
		t.Error("esc should go back")
	}
}
