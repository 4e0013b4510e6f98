package core

import (
	"fmt"

	"github.com/samber/mo"
)

// handlePendingKey consumes key as the operand of an armed f/F/t/T/r. The
// armed command is spent whether or not the operand succeeds.
func (e *Engine) handlePendingKey(key KeyEvent) (Result, error) {
	cmd := e.pending.MustGet()
	e.pending = mo.None[Command]()

	if key.Key == KeyEscape {
		return escaped, nil
	}
	if !key.IsPrintable() {
		return Result{}, fmt.Errorf("%w: %s after %s", ErrInvalidKey, key, cmd)
	}

	if cmd == CmdReplaceChar {
		if err := e.replaceChar(key.Rune); err != nil {
			return Result{}, err
		}
		e.lastChange = mo.Some(changeMemo{kind: changeReplaceChar, ch: key.Rune})
		return moved(cmd), nil
	}

	if err := e.findChar(cmd, key.Rune); err != nil {
		return Result{}, err
	}
	e.lastFind = mo.Some(findMemo{cmd: cmd, ch: key.Rune})
	return moved(cmd), nil
}

// findChar moves to the f/F/t/T target for ch on the current line.
func (e *Engine) findChar(cmd Command, ch rune) error {
	col, ok := findTarget(cmd, e.currentLine(), e.cursor.Col, ch)
	if !ok {
		return fmt.Errorf("%w: %s%c", ErrNoTarget, cmd, ch)
	}
	e.cursor.Col = col
	return nil
}

// repeatFind replays the last f/F/t/T from the current cursor. A failed
// repeat keeps the memo.
func (e *Engine) repeatFind() (Result, error) {
	memo, ok := e.lastFind.Get()
	if !ok {
		return Result{}, ErrNoLastFind
	}
	if err := e.findChar(memo.cmd, memo.ch); err != nil {
		return Result{}, err
	}
	return moved(CmdRepeatFind), nil
}
