package ui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
)

type Screen int

const (
	GameScreen Screen = iota
	LeaderboardScreen
)

const leaderboardSize = 10

type leaderboardMsg scoresMsg

// ControllerModel routes messages between the game and the leaderboard.
type ControllerModel struct {
	CurrentScreen Screen
	GameModel     GameViewModel

	keys         keyMap
	leaderboard  GameOverState
	scores       ScoreBoard
	ScreenWidth  int
	ScreenHeight int
}

func NewControllerModel(opts Options) ControllerModel {
	gameModel := NewGameModel(opts)
	return ControllerModel{
		CurrentScreen: GameScreen,
		GameModel:     gameModel,
		keys:          gameModel.keys,
		leaderboard:   GameOverState{styles: gameModel.styles},
		scores:        opts.Scores,
	}
}

func (m ControllerModel) Init() tea.Cmd {
	return m.GameModel.Init()
}

func (m ControllerModel) View() string {
	switch m.CurrentScreen {
	case LeaderboardScreen:
		return m.leaderboard.RenderLeaderboardScreen()
	default:
		return m.GameModel.View()
	}
}

func (m ControllerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Quit) {
			return m, tea.Quit
		}
		if m.CurrentScreen == LeaderboardScreen {
			if key.Matches(msg, m.keys.Back) {
				m.CurrentScreen = GameScreen
			}
			return m, nil
		}
		if key.Matches(msg, m.keys.Leaderboard) && !m.GameModel.State().Running() {
			m.CurrentScreen = LeaderboardScreen
			return m, m.loadLeaderboard()
		}

	case tea.WindowSizeMsg:
		m.ScreenWidth = msg.Width
		m.ScreenHeight = msg.Height
		m.leaderboard.ScreenWidth = msg.Width
		m.leaderboard.ScreenHeight = msg.Height

	case leaderboardMsg:
		if msg.err != nil {
			log.Error("Leaderboard lookup failed", "error", msg.err)
		}
		m.leaderboard.TopScores = msg.scores
		return m, nil
	}

	// The game keeps its frame loop alive even while the leaderboard is shown.
	model, cmd := m.GameModel.Update(msg)
	m.GameModel = model.(GameViewModel)
	return m, cmd
}

func (m ControllerModel) loadLeaderboard() tea.Cmd {
	if m.scores == nil {
		return nil
	}
	scores := m.scores
	return func() tea.Msg {
		top, err := scores.GetHighScores(leaderboardSize, 0)
		return leaderboardMsg{scores: top, err: err}
	}
}
