package core

import "slices"

// Observer receives synchronous change notifications from inside
// ProcessKey and LoadText. Every field is optional. A callback must not
// call back into the engine; doing so panics with ErrReentrantCall.
type Observer struct {
	OnStateChange       func(State)
	OnModeChange        func(Mode)
	OnCommandLineChange func(string)
	OnCommand           func(string) // Canonical name of each completed command
}

// SelectionType indicates the selection status of a position
type SelectionType int

const (
	SelectionNone      SelectionType = iota // Position is not selected
	SelectionCharacter                      // Position is part of a character-wise visual selection
	SelectionLine                           // Position is part of a line-wise visual selection
)

// State is an immutable snapshot of everything a renderer needs.
type State struct {
	Lines        []string
	Cursor       Position
	Mode         Mode
	VisualAnchor *Position // nil outside VISUAL and VISUAL_LINE
	CommandLine  string
	Pending      string // Unresolved normal-mode keys, or the armed f/F/t/T/r
}

// State returns a snapshot that shares no memory with the engine.
func (e *Engine) State() State {
	s := State{
		Lines:       e.buffer.strings(),
		Cursor:      e.cursor.Position,
		Mode:        e.mode,
		CommandLine: string(e.commandLine),
		Pending:     e.commandBuffer,
	}
	if a, ok := e.anchor.Get(); ok {
		s.VisualAnchor = &a
	}
	if cmd, ok := e.pending.Get(); ok {
		s.Pending = cmd.String()
	}
	return s
}

// equal reports whether two snapshots describe the same engine state.
func (s State) equal(o State) bool {
	if s.Cursor != o.Cursor || s.Mode != o.Mode || s.CommandLine != o.CommandLine || s.Pending != o.Pending {
		return false
	}
	if (s.VisualAnchor == nil) != (o.VisualAnchor == nil) {
		return false
	}
	if s.VisualAnchor != nil && *s.VisualAnchor != *o.VisualAnchor {
		return false
	}
	return slices.Equal(s.Lines, o.Lines)
}

// Selection reports how pos relates to the visual selection in s.
func (s State) Selection(pos Position) SelectionType {
	if s.VisualAnchor == nil {
		return SelectionNone
	}
	start, end := NormalizeSelection(*s.VisualAnchor, s.Cursor)

	if s.Mode == VisualLineMode {
		if pos.Row >= start.Row && pos.Row <= end.Row {
			return SelectionLine
		}
		return SelectionNone
	}

	inCharSelection := (pos.Row > start.Row && pos.Row < end.Row) ||
		(pos.Row == start.Row && pos.Row == end.Row && pos.Col >= start.Col && pos.Col <= end.Col) ||
		(pos.Row == start.Row && pos.Row != end.Row && pos.Col >= start.Col) ||
		(pos.Row == end.Row && pos.Row != start.Row && pos.Col <= end.Col)

	if inCharSelection {
		return SelectionCharacter
	}
	return SelectionNone
}

func (e *Engine) dispatchState() {
	if e.observer.OnStateChange != nil {
		e.observer.OnStateChange(e.State())
	}
}

func (e *Engine) dispatchMode() {
	if e.observer.OnModeChange != nil {
		e.observer.OnModeChange(e.mode)
	}
}

func (e *Engine) dispatchCommandLine() {
	if e.observer.OnCommandLineChange != nil {
		e.observer.OnCommandLineChange(string(e.commandLine))
	}
}

func (e *Engine) dispatchCommand(name string) {
	if e.observer.OnCommand != nil {
		e.observer.OnCommand(name)
	}
}
