package session

import "github.com/vovakirdan/tui-sokoban/internal/game"

// Command is a non-motion user action.
type Command int

const (
	CmdRestart Command = iota
	CmdNext
	CmdPrevious
	CmdUndo
)

// Event is a single inbound user action from the presenter: either a motion
// in one of the four directions or a command.
type Event struct {
	Motion    bool
	Direction game.Direction
	Command   Command
}

// MotionEvent builds a motion event.
func MotionEvent(dir game.Direction) Event {
	return Event{Motion: true, Direction: dir}
}

// CommandEvent builds a command event.
func CommandEvent(cmd Command) Event {
	return Event{Command: cmd}
}

// Dispatch routes one presenter event to the matching session operation.
func (s *Session) Dispatch(ev Event) error {
	if ev.Motion {
		return s.ApplyMotion(ev.Direction)
	}
	switch ev.Command {
	case CmdRestart:
		return s.StartStep(0)
	case CmdNext:
		return s.StartStep(1)
	case CmdPrevious:
		return s.StartStep(-1)
	case CmdUndo:
		s.ApplyUndo()
	}
	return nil
}
