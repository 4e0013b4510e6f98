package core

import "strings"

// Position represents a specific location in the text buffer
type Position struct {
	Row int // Zero-indexed row (line number)
	Col int // Zero-indexed column (rune index in the line)
}

// Before reports whether p sorts before o, by row then column.
func (p Position) Before(o Position) bool {
	return p.Row < o.Row || (p.Row == o.Row && p.Col < o.Col)
}

// NormalizeSelection ensures start is before end, line by line, then column by column.
func NormalizeSelection(p1, p2 Position) (start, end Position) {
	if p2.Before(p1) {
		return p2, p1
	}
	return p1, p2
}

// textBuffer is an ordered, never empty, sequence of rune lines.
type textBuffer struct {
	lines [][]rune
}

func newBuffer() *textBuffer {
	return &textBuffer{lines: [][]rune{{}}}
}

// setText replaces the whole buffer with text split on '\n'.
func (b *textBuffer) setText(text string) {
	parts := strings.Split(text, "\n")
	lines := make([][]rune, len(parts))
	for i, p := range parts {
		lines[i] = []rune(p)
	}
	b.lines = lines
}

func (b *textBuffer) text() string {
	return strings.Join(b.strings(), "\n")
}

func (b *textBuffer) strings() []string {
	out := make([]string, len(b.lines))
	for i, l := range b.lines {
		out[i] = string(l)
	}
	return out
}

func (b *textBuffer) lineCount() int {
	return len(b.lines)
}

func (b *textBuffer) line(row int) []rune {
	if row < 0 || row >= len(b.lines) {
		return nil
	}
	return b.lines[row]
}

func (b *textBuffer) lineLen(row int) int {
	return len(b.line(row))
}

func (b *textBuffer) setLine(row int, runes []rune) {
	b.lines[row] = runes
}

// insertLines places lines so the first of them ends up at index row.
func (b *textBuffer) insertLines(row int, lines ...[]rune) {
	out := make([][]rune, 0, len(b.lines)+len(lines))
	out = append(out, b.lines[:row]...)
	out = append(out, lines...)
	out = append(out, b.lines[row:]...)
	b.lines = out
}

// deleteLines removes rows [from, to] inclusive. The buffer is refilled
// with a single empty line if nothing remains.
func (b *textBuffer) deleteLines(from, to int) {
	out := make([][]rune, 0, len(b.lines)-(to-from+1))
	out = append(out, b.lines[:from]...)
	out = append(out, b.lines[to+1:]...)
	if len(out) == 0 {
		out = [][]rune{{}}
	}
	b.lines = out
}

// copyLines returns a deep copy of the buffer content.
func (b *textBuffer) copyLines() [][]rune {
	out := make([][]rune, len(b.lines))
	for i, l := range b.lines {
		out[i] = append([]rune(nil), l...)
	}
	return out
}

// splice returns line with runes [from, to) replaced by repl. It never
// aliases the input slice.
func splice(line []rune, from, to int, repl []rune) []rune {
	out := make([]rune, 0, len(line)-(to-from)+len(repl))
	out = append(out, line[:from]...)
	out = append(out, repl...)
	out = append(out, line[to:]...)
	return out
}

// extract returns the text covered by the inclusive range start..end,
// joining partial first and last lines with full middle lines.
func (b *textBuffer) extract(start, end Position) string {
	if start.Row == end.Row {
		l := b.line(start.Row)
		from, to := clampSpan(len(l), start.Col, end.Col+1)
		return string(l[from:to])
	}

	parts := make([]string, 0, end.Row-start.Row+1)
	first := b.line(start.Row)
	from, _ := clampSpan(len(first), start.Col, len(first))
	parts = append(parts, string(first[from:]))
	for r := start.Row + 1; r < end.Row; r++ {
		parts = append(parts, string(b.line(r)))
	}
	last := b.line(end.Row)
	_, to := clampSpan(len(last), 0, end.Col+1)
	parts = append(parts, string(last[:to]))

	return strings.Join(parts, "\n")
}

// extractLines joins whole rows [from, to].
func (b *textBuffer) extractLines(from, to int) string {
	return strings.Join(b.strings()[from:to+1], "\n")
}

func clampSpan(n, from, to int) (int, int) {
	from = max(0, min(from, n))
	to = max(from, min(to, n))
	return from, to
}
