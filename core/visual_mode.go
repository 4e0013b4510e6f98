package core

import "fmt"

// handleVisualKey moves the live end of the selection or applies d/y to it.
// Motions inside a selection are free; only d and y are charged.
func (e *Engine) handleVisualKey(key KeyEvent, allowed AllowList) (Result, error) {
	c := &e.cursor
	b := e.buffer

	if key.Key == KeyEscape {
		e.setMode(NormalMode)
		return escaped, nil
	}

	switch key.Rune {
	case 'h':
		c.moveLeft(b, e.mode)
	case 'j':
		c.moveDown(b, e.mode)
	case 'k':
		c.moveUp(b, e.mode)
	case 'l':
		c.moveRight(b, e.mode)
	case 'w':
		c.moveWordForward(b)
	case 'b':
		c.moveWordBackward(b)
	case '0':
		c.moveToLineStart()
	case '$':
		c.moveToLineEnd(b)

	case 'd':
		if !allowed.Allows("d") {
			return Result{}, notAllowed("d")
		}
		name := e.visualCommandName('d')
		e.saveUndo()
		e.deleteSelection()
		e.setMode(NormalMode)
		return Result{Executed: true, Command: name, CountsAsMove: true}, nil

	case 'y':
		if !allowed.Allows("y") {
			return Result{}, notAllowed("y")
		}
		name := e.visualCommandName('y')
		e.yankSelection()
		e.setMode(NormalMode)
		return Result{Executed: true, Command: name, CountsAsMove: true}, nil

	default:
		return Result{}, fmt.Errorf("%w: %s", ErrInvalidKey, key)
	}

	return Result{Executed: true}, nil
}

// visualCommandName names a selection operator: v+d, V+y and so on.
func (e *Engine) visualCommandName(op rune) string {
	prefix := CmdVisual
	if e.mode == VisualLineMode {
		prefix = CmdVisualLine
	}
	return fmt.Sprintf("%s+%c", prefix, op)
}

// selection returns the inclusive range between anchor and cursor. For
// VISUAL_LINE only the rows are meaningful.
func (e *Engine) selection() (start, end Position, linewise bool) {
	anchor := e.anchor.OrElse(e.cursor.Position)
	start, end = NormalizeSelection(anchor, e.cursor.Position)
	if e.mode == VisualLineMode {
		return Position{Row: start.Row}, Position{Row: end.Row}, true
	}
	return start, end, false
}

// deleteSelection cuts the selection into the clipboard and leaves the
// cursor at its start.
func (e *Engine) deleteSelection() {
	b := e.buffer
	start, end, linewise := e.selection()

	if linewise {
		e.clipboard = b.extractLines(start.Row, end.Row)
		b.deleteLines(start.Row, end.Row)
		e.cursor.Position = Position{Row: min(start.Row, b.lineCount()-1)}
		return
	}

	e.clipboard = b.extract(start, end)

	first := b.line(start.Row)
	headEnd, _ := clampSpan(len(first), start.Col, len(first))
	last := b.line(end.Row)
	tailStart, _ := clampSpan(len(last), end.Col+1, len(last))

	joined := make([]rune, 0, headEnd+len(last)-tailStart)
	joined = append(joined, first[:headEnd]...)
	joined = append(joined, last[tailStart:]...)

	b.setLine(start.Row, joined)
	if end.Row > start.Row {
		b.deleteLines(start.Row+1, end.Row)
	}
	e.cursor.Position = start
}

// yankSelection copies the selection and moves the cursor to its start.
func (e *Engine) yankSelection() {
	start, end, linewise := e.selection()
	if linewise {
		e.clipboard = e.buffer.extractLines(start.Row, end.Row)
	} else {
		e.clipboard = e.buffer.extract(start, end)
	}
	e.cursor.Position = start
}
