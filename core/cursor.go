package core

// cursor is the live end of every edit and selection.
type cursor struct {
	Position
}

// maxCol is the largest column the cursor may occupy on row in mode.
// INSERT may sit one past the last rune; every other mode sits on a rune.
func maxCol(b *textBuffer, row int, mode Mode) int {
	n := b.lineLen(row)
	if mode == InsertMode {
		return n
	}
	return max(0, n-1)
}

// clamp re-establishes the row and column bounds for mode.
func (c *cursor) clamp(b *textBuffer, mode Mode) {
	c.Row = max(0, min(c.Row, b.lineCount()-1))
	c.Col = max(0, min(c.Col, maxCol(b, c.Row, mode)))
}

func (c *cursor) moveLeft(b *textBuffer, mode Mode) {
	c.Col--
	c.clamp(b, mode)
}

func (c *cursor) moveRight(b *textBuffer, mode Mode) {
	c.Col++
	c.clamp(b, mode)
}

func (c *cursor) moveUp(b *textBuffer, mode Mode) {
	c.Row--
	c.clamp(b, mode)
}

func (c *cursor) moveDown(b *textBuffer, mode Mode) {
	c.Row++
	c.clamp(b, mode)
}

func (c *cursor) moveToLineStart() {
	c.Col = 0
}

// moveToLineEnd places the cursor on the last rune of the line.
func (c *cursor) moveToLineEnd(b *textBuffer) {
	c.Col = max(0, b.lineLen(c.Row)-1)
}

// moveToAfterLineEnd places the cursor one past the last rune, for appending.
func (c *cursor) moveToAfterLineEnd(b *textBuffer) {
	c.Col = b.lineLen(c.Row)
}

func (c *cursor) moveToBufferStart() {
	c.Row, c.Col = 0, 0
}

func (c *cursor) moveToBufferEnd(b *textBuffer) {
	c.Row, c.Col = b.lineCount()-1, 0
}

// --- Word Movement ---

// isWordChar matches the ASCII word class [A-Za-z0-9_].
func isWordChar(r rune) bool {
	return r == '_' ||
		(r >= 'a' && r <= 'z') ||
		(r >= 'A' && r <= 'Z') ||
		(r >= '0' && r <= '9')
}

// moveWordForward skips the word run under the cursor, then the non-word
// run after it. Running off the end of the line continues at column 0 of
// the next line, or stops on the last rune of the last line.
func (c *cursor) moveWordForward(b *textBuffer) {
	line := b.line(c.Row)
	pos := c.Col
	for pos < len(line) && isWordChar(line[pos]) {
		pos++
	}
	for pos < len(line) && !isWordChar(line[pos]) {
		pos++
	}

	if pos >= len(line) && c.Row < b.lineCount()-1 {
		c.Row++
		c.Col = 0
		return
	}
	c.Col = min(pos, max(0, len(line)-1))
}

// moveWordBackward lands on the first rune of the previous word run. At
// column 0 it wraps to the last rune of the previous line instead.
func (c *cursor) moveWordBackward(b *textBuffer) {
	if c.Col == 0 && c.Row > 0 {
		c.Row--
		c.moveToLineEnd(b)
		return
	}

	line := b.line(c.Row)
	pos := c.Col - 1
	for pos > 0 && !isWordChar(line[pos]) {
		pos--
	}
	for pos > 0 && isWordChar(line[pos-1]) {
		pos--
	}
	c.Col = max(0, pos)
}

// wordEnd returns the exclusive end of the word run starting at col. The
// run is empty when col is not on a word character.
func wordEnd(line []rune, col int) int {
	end := col
	for end < len(line) && isWordChar(line[end]) {
		end++
	}
	return end
}

// --- Character search (f/F/t/T) ---

func indexAfter(line []rune, col int, ch rune) int {
	for i := col + 1; i < len(line); i++ {
		if line[i] == ch {
			return i
		}
	}
	return -1
}

func indexBefore(line []rune, col int, ch rune) int {
	for i := min(col, len(line)) - 1; i >= 0; i-- {
		if line[i] == ch {
			return i
		}
	}
	return -1
}

// findTarget resolves an f/F/t/T search for ch from col within line.
func findTarget(cmd Command, line []rune, col int, ch rune) (int, bool) {
	switch cmd {
	case CmdFindForward:
		if i := indexAfter(line, col, ch); i >= 0 {
			return i, true
		}
	case CmdFindBackward:
		if i := indexBefore(line, col, ch); i >= 0 {
			return i, true
		}
	case CmdTillForward:
		if i := indexAfter(line, col, ch); i > 0 {
			return i - 1, true
		}
	case CmdTillBackward:
		if i := indexBefore(line, col, ch); i >= 0 {
			return i + 1, true
		}
	}
	return 0, false
}
