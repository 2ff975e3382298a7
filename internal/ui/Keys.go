package ui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Up          key.Binding
	Down        key.Binding
	Left        key.Binding
	Right       key.Binding
	Pause       key.Binding
	Restart     key.Binding
	Snapshot    key.Binding
	Leaderboard key.Binding
	Back        key.Binding
	Help        key.Binding
	Quit        key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Up:          key.NewBinding(key.WithKeys("up", "w"), key.WithHelp("↑/w", "up")),
		Down:        key.NewBinding(key.WithKeys("down", "s"), key.WithHelp("↓/s", "down")),
		Left:        key.NewBinding(key.WithKeys("left", "a"), key.WithHelp("←/a", "left")),
		Right:       key.NewBinding(key.WithKeys("right", "d"), key.WithHelp("→/d", "right")),
		Pause:       key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "pause")),
		Restart:     key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "restart")),
		Snapshot:    key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "snapshot")),
		Leaderboard: key.NewBinding(key.WithKeys("l"), key.WithHelp("l", "leaderboard")),
		Back:        key.NewBinding(key.WithKeys("esc", "enter", "l"), key.WithHelp("esc", "back")),
		Help:        key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "more keys")),
		Quit:        key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Pause, k.Restart, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right},
		{k.Pause, k.Restart, k.Snapshot, k.Leaderboard},
		{k.Help, k.Quit},
	}
}
