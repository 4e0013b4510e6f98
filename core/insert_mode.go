package core

import (
	"fmt"

	"github.com/samber/mo"
)

// handleInsertKey edits text directly. None of these keys count as moves;
// the command that entered INSERT was already charged.
func (e *Engine) handleInsertKey(key KeyEvent) (Result, error) {
	c := &e.cursor
	b := e.buffer
	row, col := c.Row, c.Col

	switch {
	case key.Key == KeyEscape:
		e.finishChangeWord()
		e.setMode(NormalMode)
		c.Col--
		return escaped, nil

	case key.Key == KeyBackspace:
		switch {
		case col > 0:
			b.setLine(row, splice(b.line(row), col-1, col, nil))
			c.Col--
		case row > 0:
			prevLen := b.lineLen(row - 1)
			joined := append(append([]rune{}, b.line(row-1)...), b.line(row)...)
			b.setLine(row-1, joined)
			b.deleteLines(row, row)
			c.Row--
			c.Col = prevLen
		}
		return Result{Executed: true}, nil

	case key.Key == KeyEnter:
		line := b.line(row)
		head := append([]rune{}, line[:col]...)
		tail := append([]rune{}, line[col:]...)
		b.setLine(row, head)
		b.insertLines(row+1, tail)
		c.Row++
		c.Col = 0
		return Result{Executed: true}, nil

	case key.IsPrintable():
		b.setLine(row, splice(b.line(row), col, col, []rune{key.Rune}))
		c.Col++
		return Result{Executed: true}, nil
	}

	return Result{}, fmt.Errorf("%w: %s", ErrInvalidKey, key)
}

// finishChangeWord captures the text typed since cw as the replay payload
// for '.'.
func (e *Engine) finishChangeWord() {
	start, ok := e.cwStart.Get()
	if !ok {
		return
	}
	e.cwStart = mo.None[int]()

	line := e.currentLine()
	from, to := clampSpan(len(line), start, e.cursor.Col)
	e.lastChange = mo.Some(changeMemo{
		kind: changeChangeWord,
		text: append([]rune(nil), line[from:to]...),
	})
}
