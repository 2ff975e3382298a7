package ui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Mshel/snake/internal/game"
	"github.com/Mshel/snake/internal/snapshot"
	"github.com/charmbracelet/lipgloss"
)

var saveSnapshot = snapshot.Save

// GameOverState holds the data for rendering the game over panel and the
// leaderboard screen.
type GameOverState struct {
	Score        int
	TopScores    []game.Score
	ScreenWidth  int
	ScreenHeight int

	styles styles
}

// RenderGameOverPanel draws the death message next to the board.
func (g GameOverState) RenderGameOverPanel() string {
	title := g.styles.highlight.Render("GameOver")
	score := g.styles.highlight.Render(fmt.Sprintf("Score: %d", g.Score))
	restart := g.styles.faint.Render("Press R to restart")

	parts := []string{title, score, "", restart}
	if len(g.TopScores) > 0 {
		parts = append(parts, "", g.styles.bold.Render("Top scores"))
		for i, s := range g.TopScores {
			parts = append(parts, fmt.Sprintf("%d. %-12s %4d", i+1, truncate(s.PlayerName, 12), s.Score))
		}
	}

	return g.styles.panel.Render(lipgloss.JoinVertical(lipgloss.Left, parts...))
}

// RenderLeaderboardScreen draws the stored high score table.
func (g GameOverState) RenderLeaderboardScreen() string {
	const (
		rankWidth  = 4
		nameWidth  = 16
		scoreWidth = 7
		gridWidth  = 9
	)

	header := g.styles.bold.Underline(true)
	var table strings.Builder
	table.WriteString(lipgloss.JoinHorizontal(lipgloss.Top,
		header.Width(rankWidth).Render("#"),
		header.Width(nameWidth).Render("Player"),
		header.Width(scoreWidth).Render("Score"),
		header.Width(gridWidth).Render("Grid"),
	))
	table.WriteString("\n")

	if len(g.TopScores) == 0 {
		table.WriteString(g.styles.faint.Render("No scores yet"))
		table.WriteString("\n")
	}

	for i, s := range g.TopScores {
		row := lipgloss.JoinHorizontal(lipgloss.Top,
			g.styles.plain.Width(rankWidth).Render(strconv.Itoa(i+1)),
			g.styles.plain.Width(nameWidth).Render(truncate(s.PlayerName, nameWidth-1)),
			g.styles.plain.Width(scoreWidth).Render(strconv.Itoa(s.Score)),
			g.styles.plain.Width(gridWidth).Render(fmt.Sprintf("%dx%d", s.GridWidth, s.GridHeight)),
		)
		table.WriteString(row + "\n")
	}

	content := lipgloss.JoinVertical(lipgloss.Center,
		g.styles.bold.Render("LEADERBOARD"),
		"",
		table.String(),
		g.styles.faint.Render("Press ESC or ENTER to return to the game."),
	)

	box := g.styles.panel.Render(content)
	if g.ScreenWidth == 0 || g.ScreenHeight == 0 {
		return box
	}
	return lipgloss.Place(g.ScreenWidth, g.ScreenHeight, lipgloss.Center, lipgloss.Center, box)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
