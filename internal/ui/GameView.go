package ui

import (
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/Mshel/snake/internal/game"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
)

const (
	// Each grid cell is two terminal columns wide so cells look square.
	cellWidth     = 2
	topScoreCount = 5
)

// ScoreBoard persists finished games. game.HighScoreService implements it.
type ScoreBoard interface {
	SaveScore(playerName string, score, gridWidth, gridHeight int) error
	GetHighScores(limit, offset int) ([]game.Score, error)
}

// Pilot picks a direction for the snake. autopilot.Pilot implements it.
type Pilot interface {
	Decide(view game.RenderData) (game.Direction, error)
}

// Options carries everything a game session needs. Only Config is required;
// a nil Random gets a freshly seeded PCG source.
type Options struct {
	Config   game.Config
	Random   game.RandomSource
	Scores   ScoreBoard
	Pilot    Pilot
	Renderer *lipgloss.Renderer
}

type frameMsg time.Time

type scoresMsg struct {
	scores []game.Score
	err    error
}

type snapshotMsg struct {
	path string
	err  error
}

type styles struct {
	emptyCell string
	fruitCell string
	headCell  string
	bodyCell  string

	board     lipgloss.Style
	status    lipgloss.Style
	highlight lipgloss.Style
	paused    lipgloss.Style
	panel     lipgloss.Style
	faint     lipgloss.Style
	bold      lipgloss.Style
	plain     lipgloss.Style
}

func newStyles(r *lipgloss.Renderer) styles {
	cell := func(color string) string {
		return r.NewStyle().Background(lipgloss.Color(color)).Render(strings.Repeat(" ", cellWidth))
	}

	return styles{
		emptyCell: cell("253"),
		fruitCell: cell("46"),
		headCell:  cell("196"),
		bodyCell:  cell("244"),

		board: r.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(lipgloss.Color("240")),
		status:    r.NewStyle().Bold(true),
		highlight: r.NewStyle().Bold(true).Foreground(lipgloss.Color("9")),
		paused: r.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15")).
			Background(lipgloss.Color("4")).
			Padding(0, 2),
		panel: r.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("8")).
			Padding(1, 2),
		faint: r.NewStyle().Faint(true),
		bold:  r.NewStyle().Bold(true),
		plain: r.NewStyle(),
	}
}

// GameViewModel drives one GameState: it paces frames, turns keys into
// commands and draws the board.
type GameViewModel struct {
	config game.Config
	state  *game.GameState
	clock  *game.FrameClock
	scores ScoreBoard
	pilot  Pilot

	keys   keyMap
	help   help.Model
	styles styles

	TopScores    []game.Score
	StatusLine   string
	ScreenWidth  int
	ScreenHeight int
}

func NewGameModel(opts Options) GameViewModel {
	renderer := opts.Renderer
	if renderer == nil {
		renderer = lipgloss.DefaultRenderer()
	}
	random := opts.Random
	if random == nil {
		random = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}

	keys := newKeyMap()
	keys.Snapshot.SetEnabled(opts.Config.SnapshotDir != "")
	keys.Leaderboard.SetEnabled(opts.Scores != nil)

	return GameViewModel{
		config: opts.Config,
		state:  game.NewGameState(opts.Config.GridWidth, opts.Config.GridHeight, random),
		clock:  game.NewFrameClock(opts.Config.FramesPerSec, opts.Config.TicksPerSecond),
		scores: opts.Scores,
		pilot:  opts.Pilot,
		keys:   keys,
		help:   help.New(),
		styles: newStyles(renderer),
	}
}

func (m GameViewModel) Init() tea.Cmd {
	return m.nextFrame()
}

func (m GameViewModel) nextFrame() tea.Cmd {
	return tea.Tick(m.config.FrameDuration(), func(t time.Time) tea.Msg {
		return frameMsg(t)
	})
}

func (m GameViewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.ScreenWidth = msg.Width
		m.ScreenHeight = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case frameMsg:
		return m, tea.Batch(m.nextFrame(), m.frame())

	case scoresMsg:
		if msg.err != nil {
			m.StatusLine = "High scores unavailable"
			return m, nil
		}
		m.TopScores = msg.scores
		return m, nil

	case snapshotMsg:
		if msg.err != nil {
			log.Error("Snapshot failed", "error", msg.err)
			m.StatusLine = "Snapshot failed"
			return m, nil
		}
		m.StatusLine = "Saved " + msg.path
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

// frame runs once per rendered frame and ticks the simulation when due.
func (m GameViewModel) frame() tea.Cmd {
	if !m.clock.Frame() {
		return nil
	}

	if m.pilot != nil && m.state.Running() {
		dir, err := m.pilot.Decide(m.state.View())
		if err != nil {
			log.Debug("Autopilot error, keeping direction", "error", err)
		}
		m.state.RequestDirection(dir)
	}

	if m.state.Tick() != game.TickCollided {
		return nil
	}

	log.Info("Game over", "player", m.config.PlayerName, "score", m.state.Score())
	return m.recordScore()
}

func (m GameViewModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Up):
		m.state.RequestDirection(game.DirectionUp)
	case key.Matches(msg, m.keys.Down):
		m.state.RequestDirection(game.DirectionDown)
	case key.Matches(msg, m.keys.Left):
		m.state.RequestDirection(game.DirectionLeft)
	case key.Matches(msg, m.keys.Right):
		m.state.RequestDirection(game.DirectionRight)
	case key.Matches(msg, m.keys.Pause):
		m.clock.TogglePause()
	case key.Matches(msg, m.keys.Restart):
		if m.state.RequestRestart() {
			m.TopScores = nil
			m.StatusLine = ""
		}
	case key.Matches(msg, m.keys.Snapshot):
		return m, m.takeSnapshot()
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	}
	return m, nil
}

func (m GameViewModel) recordScore() tea.Cmd {
	if m.scores == nil {
		return nil
	}

	scores := m.scores
	name := m.config.PlayerName
	score := m.state.Score()
	width, height := m.state.Width(), m.state.Height()

	return func() tea.Msg {
		if err := scores.SaveScore(name, score, width, height); err != nil {
			log.Error("High score persist failed", "player", name, "error", err)
			return scoresMsg{err: err}
		}

		top, err := scores.GetHighScores(topScoreCount, 0)
		if err != nil {
			log.Error("High score lookup failed", "error", err)
		}
		return scoresMsg{scores: top, err: err}
	}
}

func (m GameViewModel) takeSnapshot() tea.Cmd {
	view := m.state.View()
	dir := m.config.SnapshotDir
	cellSize := m.config.CellSize

	return func() tea.Msg {
		path, err := saveSnapshot(dir, view, cellSize)
		return snapshotMsg{path: path, err: err}
	}
}

// State exposes the engine for the controller and tests.
func (m GameViewModel) State() *game.GameState {
	return m.state
}

func (m GameViewModel) Paused() bool {
	return m.clock.Paused()
}

func (m GameViewModel) View() string {
	view := m.state.View()

	var content string
	if m.clock.Paused() {
		content = lipgloss.JoinVertical(lipgloss.Left,
			m.styles.board.Render(m.renderPaused(view)),
			m.help.View(m.keys),
		)
	} else {
		content = m.renderPlaying(view)
	}

	if m.ScreenWidth == 0 || m.ScreenHeight == 0 {
		return content
	}
	return lipgloss.Place(m.ScreenWidth, m.ScreenHeight, lipgloss.Center, lipgloss.Center, content)
}

func (m GameViewModel) renderPlaying(view game.RenderData) string {
	content := lipgloss.JoinVertical(lipgloss.Left,
		m.renderStatusLine(view),
		m.styles.board.Render(m.renderBoard(view)),
	)

	if !view.Running {
		gameOver := GameOverState{
			Score:     view.Score,
			TopScores: m.TopScores,
			styles:    m.styles,
		}
		content = lipgloss.JoinHorizontal(lipgloss.Top, content, gameOver.RenderGameOverPanel())
	}

	footer := m.help.View(m.keys)
	if m.StatusLine != "" {
		footer = m.styles.faint.Render(m.StatusLine) + "\n" + footer
	}
	return lipgloss.JoinVertical(lipgloss.Left, content, footer)
}

func (m GameViewModel) renderStatusLine(view game.RenderData) string {
	boardWidth := view.Width * cellWidth
	score := m.styles.status.Render(fmt.Sprintf("Score: %d", view.Score))
	hint := m.styles.faint.Render("Press P to pause")
	if !view.Running {
		hint = m.styles.faint.Render("Press R to restart")
	}

	gap := boardWidth + 2 - lipgloss.Width(score) - lipgloss.Width(hint)
	if gap < 1 {
		gap = 1
	}
	return score + strings.Repeat(" ", gap) + hint
}

func (m GameViewModel) renderBoard(view game.RenderData) string {
	var sb strings.Builder

	for row, cells := range view.Grid() {
		for _, occupant := range cells {
			switch occupant {
			case game.OccupantHead:
				sb.WriteString(m.styles.headCell)
			case game.OccupantBody:
				sb.WriteString(m.styles.bodyCell)
			case game.OccupantFruit:
				sb.WriteString(m.styles.fruitCell)
			default:
				sb.WriteString(m.styles.emptyCell)
			}
		}
		if row < view.Height-1 {
			sb.WriteString("\n")
		}
	}

	return sb.String()
}

func (m GameViewModel) renderPaused(view game.RenderData) string {
	return lipgloss.Place(view.Width*cellWidth, view.Height,
		lipgloss.Center, lipgloss.Center,
		m.styles.paused.Render("Pause"),
	)
}
