package tui

import (
	tea "github.com/charmbracelet/bubbletea"
)

// Run starts a Bubble Tea program for the given model on the local terminal.
func Run(model tea.Model) error {
	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
