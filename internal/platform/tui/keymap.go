package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-sokoban/internal/game"
	"github.com/vovakirdan/tui-sokoban/internal/session"
)

// KeyMapper translates Bubble Tea key messages to session events.
// This centralizes key bindings and makes them testable.
type KeyMapper struct{}

// NewKeyMapper creates a new key mapper with default bindings.
func NewKeyMapper() *KeyMapper {
	return &KeyMapper{}
}

// MapKey translates a key message to a session event. The ok result is false
// when the key is not bound; isQuit reports a quit request.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) (ev session.Event, ok, isQuit bool) {
	switch msg.String() {
	case "ctrl+c", "q":
		return session.Event{}, false, true

	// Vim-style motions plus arrow keys.
	case "h", "left":
		return session.MotionEvent(game.DirLeft), true, false
	case "j", "down":
		return session.MotionEvent(game.DirDown), true, false
	case "k", "up":
		return session.MotionEvent(game.DirUp), true, false
	case "l", "right":
		return session.MotionEvent(game.DirRight), true, false

	case "u":
		return session.CommandEvent(session.CmdUndo), true, false
	case "r":
		return session.CommandEvent(session.CmdRestart), true, false
	case "n":
		return session.CommandEvent(session.CmdNext), true, false
	case "p":
		return session.CommandEvent(session.CmdPrevious), true, false
	}

	return session.Event{}, false, false
}
