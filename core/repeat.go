package core

// repeatChange replays the last edit at the current cursor. Each replay
// saves its own undo snapshot; the memo itself is left unchanged.
func (e *Engine) repeatChange() (Result, error) {
	memo, ok := e.lastChange.Get()
	if !ok {
		return Result{}, ErrNoLastChange
	}

	switch memo.kind {
	case changeReplaceChar:
		if err := e.replaceChar(memo.ch); err != nil {
			return Result{}, err
		}
	case changeDeleteChar:
		if err := e.deleteChar(); err != nil {
			return Result{}, err
		}
	case changeDeleteLine:
		e.deleteLine()
	case changeChangeWord:
		e.saveUndo()
		line := e.currentLine()
		col := e.cursor.Col
		e.buffer.setLine(e.cursor.Row, splice(line, col, wordEnd(line, col), memo.text))
		e.cursor.Col = col + len(memo.text)
	}

	return moved(CmdRepeatChange), nil
}
