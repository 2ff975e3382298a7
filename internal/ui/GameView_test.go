package ui

import (
	"errors"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/Mshel/snake/internal/game"
	tea "github.com/charmbracelet/bubbletea"
)

type fixedRandom int

func (r fixedRandom) IntN(n int) int {
	return int(r) % n
}

type fakeScores struct {
	saved  []game.Score
	saveFn func() error
}

func (f *fakeScores) SaveScore(playerName string, score, gridWidth, gridHeight int) error {
	if f.saveFn != nil {
		if err := f.saveFn(); err != nil {
			return err
		}
	}
	f.saved = append(f.saved, game.Score{
		ID:         len(f.saved) + 1,
		PlayerName: playerName,
		Score:      score,
		GridWidth:  gridWidth,
		GridHeight: gridHeight,
	})
	return nil
}

func (f *fakeScores) GetHighScores(limit, offset int) ([]game.Score, error) {
	if offset >= len(f.saved) {
		return []game.Score{}, nil
	}
	end := min(offset+limit, len(f.saved))
	return f.saved[offset:end], nil
}

type fakePilot struct {
	dir game.Direction
	err error
}

func (p fakePilot) Decide(view game.RenderData) (game.Direction, error) {
	if p.err != nil {
		return view.Direction, p.err
	}
	return p.dir, nil
}

// testConfig ticks the simulation on every frame.
func testConfig() game.Config {
	cfg := game.DefaultConfig()
	cfg.GridWidth = 10
	cfg.GridHeight = 10
	cfg.FramesPerSec = 3
	cfg.TicksPerSecond = 3
	cfg.PlayerName = "tester"
	return cfg
}

func runeKey(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func updateGame(t *testing.T, m GameViewModel, msg tea.Msg) (GameViewModel, tea.Cmd) {
	t.Helper()
	model, cmd := m.Update(msg)
	gm, ok := model.(GameViewModel)
	if !ok {
		t.Fatalf("Update returned %T, want GameViewModel", model)
	}
	return gm, cmd
}

func frames(t *testing.T, m GameViewModel, n int) GameViewModel {
	t.Helper()
	for i := 0; i < n; i++ {
		m, _ = updateGame(t, m, frameMsg(time.Now()))
	}
	return m
}

func TestGameModelMovesOnKeyAndFrame(t *testing.T) {
	m := NewGameModel(Options{Config: testConfig(), Random: fixedRandom(0)})

	m, _ = updateGame(t, m, runeKey("d"))
	m = frames(t, m, 1)

	view := m.State().View()
	if want := (game.Coordinate{X: 6, Y: 5}); !view.Head.Equals(want) {
		t.Errorf("head = %v, want %v", view.Head, want)
	}

	m, _ = updateGame(t, m, tea.KeyMsg{Type: tea.KeyDown})
	m = frames(t, m, 1)

	view = m.State().View()
	if want := (game.Coordinate{X: 6, Y: 6}); !view.Head.Equals(want) {
		t.Errorf("head = %v, want %v", view.Head, want)
	}
}

func TestGameModelIgnoresReversal(t *testing.T) {
	m := NewGameModel(Options{Config: testConfig(), Random: fixedRandom(0)})

	m, _ = updateGame(t, m, runeKey("d"))
	m, _ = updateGame(t, m, runeKey("a"))

	if got := m.State().View().Direction; got != game.DirectionRight {
		t.Errorf("direction = %v, want right", got)
	}
}

func TestGameModelFramesPerTick(t *testing.T) {
	cfg := testConfig()
	cfg.FramesPerSec = 9
	m := NewGameModel(Options{Config: cfg, Random: fixedRandom(0)})

	m, _ = updateGame(t, m, runeKey("d"))
	m = frames(t, m, 2)
	if got := m.State().View().Head.X; got != 5 {
		t.Fatalf("head moved after 2 of 3 frames, x = %d", got)
	}

	m = frames(t, m, 1)
	if got := m.State().View().Head.X; got != 6 {
		t.Errorf("head x = %d after 3 frames, want 6", got)
	}
}

func TestGameModelPause(t *testing.T) {
	m := NewGameModel(Options{Config: testConfig(), Random: fixedRandom(0)})

	m, _ = updateGame(t, m, runeKey("d"))
	m, _ = updateGame(t, m, runeKey("p"))
	if !m.Paused() {
		t.Fatal("expected paused after p")
	}
	m = frames(t, m, 5)

	if got := m.State().View().Head.X; got != 5 {
		t.Errorf("head moved while paused, x = %d", got)
	}
	if !strings.Contains(m.View(), "Pause") {
		t.Error("paused view does not show Pause")
	}

	// Turning is still accepted while paused.
	m, _ = updateGame(t, m, runeKey("w"))
	if got := m.State().View().Direction; got != game.DirectionUp {
		t.Errorf("direction = %v, want up", got)
	}

	m, _ = updateGame(t, m, runeKey("p"))
	m = frames(t, m, 1)
	if want := (game.Coordinate{X: 5, Y: 4}); !m.State().View().Head.Equals(want) {
		t.Errorf("head = %v, want %v", m.State().View().Head, want)
	}
}

func TestGameModelGameOverAndRestart(t *testing.T) {
	m := NewGameModel(Options{Config: testConfig(), Random: fixedRandom(0)})

	m, _ = updateGame(t, m, runeKey("d"))
	m = frames(t, m, 5)

	if m.State().Running() {
		t.Fatal("expected game over after running into the right wall")
	}
	view := m.View()
	for _, want := range []string{"GameOver", "Score: 0", "Press R to restart"} {
		if !strings.Contains(view, want) {
			t.Errorf("game over view missing %q", want)
		}
	}

	// Direction requests are ignored after game over.
	m, _ = updateGame(t, m, runeKey("w"))
	if got := m.State().View().Direction; got != game.DirectionRight {
		t.Errorf("direction changed after game over: %v", got)
	}

	m, _ = updateGame(t, m, runeKey("r"))
	if !m.State().Running() {
		t.Fatal("expected running after restart")
	}
	if want := (game.Coordinate{X: 5, Y: 5}); !m.State().View().Head.Equals(want) {
		t.Errorf("head after restart = %v, want %v", m.State().View().Head, want)
	}
}

func TestGameModelRecordsScore(t *testing.T) {
	scores := &fakeScores{}
	m := NewGameModel(Options{Config: testConfig(), Random: fixedRandom(0), Scores: scores})

	m, _ = updateGame(t, m, runeKey("d"))
	m = frames(t, m, 5)

	cmd := m.recordScore()
	if cmd == nil {
		t.Fatal("recordScore returned nil with a score board configured")
	}
	msg, ok := cmd().(scoresMsg)
	if !ok {
		t.Fatalf("recordScore produced %T, want scoresMsg", msg)
	}
	if len(scores.saved) != 1 || scores.saved[0].PlayerName != "tester" || scores.saved[0].GridWidth != 10 {
		t.Fatalf("saved = %+v", scores.saved)
	}

	m, _ = updateGame(t, m, msg)
	if len(m.TopScores) != 1 {
		t.Errorf("TopScores = %+v, want one entry", m.TopScores)
	}
	if !strings.Contains(m.View(), "tester") {
		t.Error("game over panel does not list the saved score")
	}
}

func TestGameModelScoreSaveFailure(t *testing.T) {
	scores := &fakeScores{saveFn: func() error { return errors.New("disk full") }}
	m := NewGameModel(Options{Config: testConfig(), Random: fixedRandom(0), Scores: scores})

	msg := m.recordScore()()
	m, _ = updateGame(t, m, msg)

	if m.StatusLine != "High scores unavailable" {
		t.Errorf("StatusLine = %q", m.StatusLine)
	}
}

func TestGameModelWithoutScoreBoard(t *testing.T) {
	m := NewGameModel(Options{Config: testConfig(), Random: fixedRandom(0)})
	if cmd := m.recordScore(); cmd != nil {
		t.Error("recordScore should be a no-op without a score board")
	}
}

func TestGameModelPilotSteers(t *testing.T) {
	m := NewGameModel(Options{
		Config: testConfig(),
		Random: fixedRandom(0),
		Pilot:  fakePilot{dir: game.DirectionDown},
	})

	m = frames(t, m, 1)
	if want := (game.Coordinate{X: 5, Y: 6}); !m.State().View().Head.Equals(want) {
		t.Errorf("head = %v, want %v", m.State().View().Head, want)
	}
}

func TestGameModelPilotErrorKeepsDirection(t *testing.T) {
	m := NewGameModel(Options{
		Config: testConfig(),
		Random: fixedRandom(0),
		Pilot:  fakePilot{err: errors.New("boom")},
	})

	m, _ = updateGame(t, m, runeKey("a"))
	m = frames(t, m, 1)
	if want := (game.Coordinate{X: 4, Y: 5}); !m.State().View().Head.Equals(want) {
		t.Errorf("head = %v, want %v", m.State().View().Head, want)
	}
}

func TestGameModelSnapshot(t *testing.T) {
	cfg := testConfig()
	cfg.SnapshotDir = t.TempDir()
	cfg.CellSize = 4
	m := NewGameModel(Options{Config: cfg, Random: fixedRandom(0)})

	_, cmd := updateGame(t, m, runeKey("c"))
	if cmd == nil {
		t.Fatal("snapshot key produced no command")
	}
	msg, ok := cmd().(snapshotMsg)
	if !ok {
		t.Fatalf("snapshot command produced %T", msg)
	}
	if msg.err != nil {
		t.Fatalf("snapshot failed: %v", msg.err)
	}
	if _, err := os.Stat(msg.path); err != nil {
		t.Errorf("snapshot file missing: %v", err)
	}

	m, _ = updateGame(t, m, msg)
	if !strings.HasPrefix(m.StatusLine, "Saved ") {
		t.Errorf("StatusLine = %q", m.StatusLine)
	}
}

func TestGameModelSnapshotDisabledWithoutDir(t *testing.T) {
	m := NewGameModel(Options{Config: testConfig(), Random: fixedRandom(0)})

	if _, cmd := updateGame(t, m, runeKey("c")); cmd != nil {
		t.Error("snapshot key should do nothing without a snapshot directory")
	}
}

func TestGameModelWindowSize(t *testing.T) {
	m := NewGameModel(Options{Config: testConfig(), Random: fixedRandom(0)})
	m, _ = updateGame(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})

	if m.ScreenWidth != 120 || m.ScreenHeight != 40 {
		t.Errorf("screen = %dx%d", m.ScreenWidth, m.ScreenHeight)
	}
	if lines := strings.Count(m.View(), "\n") + 1; lines != 40 {
		t.Errorf("view has %d lines, want 40", lines)
	}
}

func TestGameModelWithOnlyConfig(t *testing.T) {
	m := NewGameModel(Options{Config: testConfig()})

	m, _ = updateGame(t, m, runeKey("d"))
	m = frames(t, m, 1)

	if want := (game.Coordinate{X: 6, Y: 5}); !m.State().View().Head.Equals(want) {
		t.Errorf("head = %v, want %v", m.State().View().Head, want)
	}
	fruit := m.State().View().Fruit
	if !fruit.InBounds(10, 10) {
		t.Errorf("fruit %v outside the grid", fruit)
	}
}

func TestGameModelPausedViewShowsOnlyPause(t *testing.T) {
	m := NewGameModel(Options{Config: testConfig(), Random: fixedRandom(0)})
	m, _ = updateGame(t, m, runeKey("p"))

	view := m.View()
	if !strings.Contains(view, "Pause") {
		t.Error("paused view does not show Pause")
	}
	for _, hidden := range []string{"Score:", "Press P to pause"} {
		if strings.Contains(view, hidden) {
			t.Errorf("paused view still shows %q", hidden)
		}
	}
}
