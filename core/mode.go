package core

type Mode string

const (
	NormalMode     Mode = "NORMAL"
	InsertMode     Mode = "INSERT"
	VisualMode     Mode = "VISUAL"
	VisualLineMode Mode = "VISUAL_LINE"
	CommandMode    Mode = "COMMAND"
)

// IsVisual reports whether m is one of the two selection modes.
func (m Mode) IsVisual() bool {
	return m == VisualMode || m == VisualLineMode
}

// setMode switches the active mode. Leaving a visual mode drops the anchor,
// and any half-typed normal-mode command never survives a mode change.
func (e *Engine) setMode(mode Mode) {
	if e.mode == mode {
		return
	}

	if e.mode.IsVisual() && !mode.IsVisual() {
		e.clearAnchor()
	}

	e.mode = mode
	e.commandBuffer = ""
	e.dispatchMode()
}
