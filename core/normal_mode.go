package core

import (
	"fmt"
	"strings"

	"github.com/samber/mo"
)

// handleNormalKey appends key to the command buffer and tries to resolve
// it. Prefixes are kept for the next key, anything else that does not
// resolve is discarded.
func (e *Engine) handleNormalKey(key KeyEvent, allowed AllowList) (Result, error) {
	if !key.IsPrintable() {
		e.commandBuffer = ""
		return Result{}, fmt.Errorf("%w: %s", ErrInvalidKey, key)
	}

	buf := e.commandBuffer + string(key.Rune)
	cmd, status := parseNormal(buf)

	switch status {
	case parsePartial:
		e.commandBuffer = buf
		return Result{Partial: true}, nil
	case parseRejected:
		e.commandBuffer = ""
		return Result{}, fmt.Errorf("%w: %q", ErrUnknownCommand, buf)
	}

	e.commandBuffer = ""
	if cmd != CmdCommandLine && !allowed.Allows(cmd.String()) {
		return Result{}, notAllowed(cmd.String())
	}

	return e.executeNormal(cmd)
}

func (e *Engine) executeNormal(cmd Command) (Result, error) {
	c := &e.cursor
	b := e.buffer

	switch cmd {
	case CmdLeft:
		c.moveLeft(b, e.mode)
	case CmdDown:
		c.moveDown(b, e.mode)
	case CmdUp:
		c.moveUp(b, e.mode)
	case CmdRight:
		c.moveRight(b, e.mode)
	case CmdWordForward:
		c.moveWordForward(b)
	case CmdWordBackward:
		c.moveWordBackward(b)
	case CmdLineStart:
		c.moveToLineStart()
	case CmdLineEnd:
		c.moveToLineEnd(b)
	case CmdBufferStart:
		c.moveToBufferStart()
	case CmdBufferEnd:
		c.moveToBufferEnd(b)

	case CmdDeleteChar:
		if err := e.deleteChar(); err != nil {
			return Result{}, err
		}
		e.lastChange = mo.Some(changeMemo{kind: changeDeleteChar})

	case CmdDeleteLine:
		e.deleteLine()
		e.lastChange = mo.Some(changeMemo{kind: changeDeleteLine})

	case CmdYankLine:
		e.clipboard = string(e.currentLine())

	case CmdChangeWord:
		e.saveUndo()
		line := e.currentLine()
		b.setLine(c.Row, splice(line, c.Col, wordEnd(line, c.Col), nil))
		e.cwStart = mo.Some(c.Col)
		e.setMode(InsertMode)

	case CmdChangeInsideParen:
		return e.changeInside(cmd, '(')
	case CmdChangeInsideQuote:
		return e.changeInside(cmd, '"')
	case CmdDeleteInsideParen:
		return e.deleteInside(cmd, '(')
	case CmdDeleteInsideQuote:
		return e.deleteInside(cmd, '"')

	case CmdInsert:
		e.saveUndo()
		e.setMode(InsertMode)

	case CmdAppendLineEnd:
		e.saveUndo()
		e.setMode(InsertMode)
		c.moveToAfterLineEnd(b)

	case CmdOpenBelow:
		e.saveUndo()
		b.insertLines(c.Row+1, []rune{})
		c.Row++
		c.Col = 0
		e.setMode(InsertMode)

	case CmdPaste:
		if e.clipboard == "" {
			return Result{}, ErrClipboardEmpty
		}
		e.saveUndo()
		parts := strings.Split(e.clipboard, "\n")
		lines := make([][]rune, len(parts))
		for i, p := range parts {
			lines[i] = []rune(p)
		}
		b.insertLines(c.Row+1, lines...)
		c.Row++
		c.Col = 0

	case CmdUndo:
		if err := e.undoLast(); err != nil {
			return Result{}, err
		}

	case CmdFindForward, CmdFindBackward, CmdTillForward, CmdTillBackward, CmdReplaceChar:
		e.pending = mo.Some(cmd)
		return Result{Executed: true}, nil

	case CmdRepeatFind:
		return e.repeatFind()

	case CmdRepeatChange:
		return e.repeatChange()

	case CmdVisual:
		e.setAnchor(c.Position)
		e.setMode(VisualMode)
	case CmdVisualLine:
		e.setAnchor(c.Position)
		e.setMode(VisualLineMode)

	case CmdCommandLine:
		e.commandLine = e.commandLine[:0]
		e.setMode(CommandMode)
		e.dispatchCommandLine()
		return Result{Executed: true}, nil

	case CmdNone, CmdSubstitute:
		return Result{}, fmt.Errorf("%w: %s", ErrUnknownCommand, cmd)
	}

	return moved(cmd), nil
}

// deleteChar removes the rune under the cursor.
func (e *Engine) deleteChar() error {
	line := e.currentLine()
	if e.cursor.Col >= len(line) {
		return ErrEmptyLine
	}
	e.saveUndo()
	e.buffer.setLine(e.cursor.Row, splice(line, e.cursor.Col, e.cursor.Col+1, nil))
	e.cursor.clamp(e.buffer, e.mode)
	return nil
}

// deleteLine removes the cursor line into the clipboard. The last
// remaining line is blanked rather than removed.
func (e *Engine) deleteLine() {
	e.saveUndo()
	row := e.cursor.Row
	e.clipboard = string(e.buffer.line(row))
	if e.buffer.lineCount() == 1 {
		e.buffer.setLine(0, []rune{})
	} else {
		e.buffer.deleteLines(row, row)
	}
	e.cursor.clamp(e.buffer, e.mode)
	e.cursor.Col = 0
}

// replaceChar overwrites the rune under the cursor without moving.
func (e *Engine) replaceChar(ch rune) error {
	line := e.currentLine()
	if e.cursor.Col >= len(line) {
		return ErrEmptyLine
	}
	e.saveUndo()
	e.buffer.setLine(e.cursor.Row, splice(line, e.cursor.Col, e.cursor.Col+1, []rune{ch}))
	return nil
}

func (e *Engine) changeInside(cmd Command, delim rune) (Result, error) {
	start, end, err := findInside(e.currentLine(), e.cursor.Col, delim)
	if err != nil {
		return Result{}, err
	}
	e.saveUndo()
	e.buffer.setLine(e.cursor.Row, splice(e.currentLine(), start, end, nil))
	e.setMode(InsertMode)
	e.cursor.Col = start
	return moved(cmd), nil
}

func (e *Engine) deleteInside(cmd Command, delim rune) (Result, error) {
	line := e.currentLine()
	start, end, err := findInside(line, e.cursor.Col, delim)
	if err != nil {
		return Result{}, err
	}
	e.saveUndo()
	e.clipboard = string(line[start:end])
	e.buffer.setLine(e.cursor.Row, splice(line, start, end, nil))
	e.cursor.Col = min(start, max(0, e.buffer.lineLen(e.cursor.Row)-1))
	return moved(cmd), nil
}
