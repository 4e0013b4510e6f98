package bubble_adapter

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/rivo/uniseg"

	"github.com/ionut-t/vimpuzzle/core"
)

// chromeHeight is the number of rows around the buffer pane: header,
// status line, command log, hint, command line and help.
const chromeHeight = 6

// logTail is how many recent commands the log row shows.
const logTail = 12

func targetLines(text string) []string {
	return strings.Split(text, "\n")
}

func lineNumberWidth(totalLines int) int {
	w := len(strconv.Itoa(max(1, totalLines)))
	return min(max(3, w)+1, 10)
}

// renderBuffer projects the engine state into the viewport and keeps the
// cursor row visible.
func (m *Model) renderBuffer() {
	state := m.engine.State()

	if m.highlighter != nil {
		m.highlighter.Update(state.Lines)
	}

	numWidth := lineNumberWidth(len(state.Lines))

	var b strings.Builder
	for row, line := range state.Lines {
		if row > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(m.renderLineNumber(row, state.Cursor.Row, numWidth))
		b.WriteString(m.renderMarker(row))
		b.WriteString(m.renderLine(state, row, line))
	}

	m.viewport.SetContent(b.String())
	m.scrollToCursor(state.Cursor.Row)
}

func (m *Model) scrollToCursor(row int) {
	switch {
	case row < m.viewport.YOffset:
		m.viewport.SetYOffset(row)
	case row >= m.viewport.YOffset+m.viewport.Height:
		m.viewport.SetYOffset(row - m.viewport.Height + 1)
	}
}

func (m *Model) renderLineNumber(row, cursorRow, width int) string {
	style := m.theme.LineNumberStyle
	if row == cursorRow {
		style = m.theme.CurrentLineNumberStyle
	}
	return style.Width(width).Align(lipgloss.Right).Render(strconv.Itoa(row+1)) + " "
}

// renderMarker shows whether a line already equals its target line.
func (m *Model) renderMarker(row int) string {
	if m.session == nil {
		return ""
	}
	if m.session.LineMatches(row) {
		return m.theme.MatchMarkerStyle.Render("✓") + " "
	}
	return m.theme.DiffMarkerStyle.Render("✗") + " "
}

func (m *Model) renderLine(state core.State, row int, line string) string {
	runes := []rune(line)
	cursorHere := row == state.Cursor.Row && m.isFocused && m.cursorVisible
	selectionBg := m.theme.SelectionStyle.GetBackground()

	var b strings.Builder
	for col, r := range runes {
		pos := core.Position{Row: row, Col: col}

		style := lipgloss.NewStyle()
		if m.highlighter != nil {
			style = m.highlighter.StyleAt(row, col)
		}
		if state.Selection(pos) != core.SelectionNone {
			style = style.Background(selectionBg)
		}
		if cursorHere && col == state.Cursor.Col {
			style = m.cursorStyle(state.Mode)
		}

		b.WriteString(style.Render(string(r)))
	}

	switch {
	case cursorHere && state.Cursor.Col >= len(runes):
		b.WriteString(m.cursorStyle(state.Mode).Render(" "))
	case len(runes) == 0 && state.Selection(core.Position{Row: row}) != core.SelectionNone:
		b.WriteString(m.theme.SelectionStyle.Render(" "))
	}

	return b.String()
}

func (m *Model) cursorStyle(mode core.Mode) lipgloss.Style {
	switch mode {
	case core.InsertMode:
		return m.theme.InsertModeStyle
	case core.VisualMode, core.VisualLineMode:
		return m.theme.VisualModeStyle
	case core.CommandMode:
		return m.theme.CommandModeStyle
	default:
		return m.theme.NormalModeStyle
	}
}

// renderTarget draws the text the player has to reach.
func (m *Model) renderTarget(width, height int) string {
	lines := targetLines(m.session.Challenge().Target)
	numWidth := lineNumberWidth(len(lines))

	var b strings.Builder
	b.WriteString(m.theme.TitleStyle.Render("target"))
	for row, line := range lines {
		b.WriteByte('\n')
		b.WriteString(m.theme.LineNumberStyle.Width(numWidth).Align(lipgloss.Right).Render(strconv.Itoa(row + 1)))
		b.WriteString(" ")
		b.WriteString(m.theme.TargetStyle.Render(line))
	}

	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		MaxHeight(height).
		PaddingLeft(1).
		Render(b.String())
}

// renderHeader shows the challenge name, remaining moves and the allowed
// commands.
func (m *Model) renderHeader() string {
	if m.session == nil {
		return m.theme.TitleStyle.Render("free play")
	}

	c := m.session.Challenge()
	title := m.theme.TitleStyle.Render(fmt.Sprintf("%d/%d %s", m.current+1, len(m.challenges), c.Name))
	moves := fmt.Sprintf("  moves %d/%d", m.session.MovesLeft(), c.MaxMoves)

	allowed := "any command"
	if len(c.Allowed) > 0 {
		names := make([]string, len(c.Allowed))
		for i, name := range c.Allowed {
			names[i] = name
			if n := m.session.Uses(name); n > 0 {
				names[i] += fmt.Sprintf("×%d", n)
			}
		}
		allowed = strings.Join(names, " ")
	}

	header := title + moves + m.theme.LogStyle.Render("  allowed: "+allowed)
	return lipgloss.NewStyle().MaxWidth(m.width).Render(header)
}

func (m *Model) getStatusLine() string {
	state := m.engine.State()

	var badge string
	switch state.Mode {
	case core.NormalMode:
		badge = m.theme.NormalModeStyle.Render(" NORMAL ")
	case core.InsertMode:
		badge = m.theme.InsertModeStyle.Render(" INSERT ")
	case core.VisualMode:
		badge = m.theme.VisualModeStyle.Render(" VISUAL ")
	case core.VisualLineMode:
		badge = m.theme.VisualModeStyle.Render(" VISUAL LINE ")
	case core.CommandMode:
		badge = m.theme.CommandModeStyle.Render(" COMMAND ")
	}

	if m.rejected {
		badge += m.theme.RejectedStyle.Render(" ! ")
	}

	pending := ""
	if state.Pending != "" {
		pending = " " + state.Pending
	}

	cursorInfo := fmt.Sprintf("%d/%d ", state.Cursor.Row+1, state.Cursor.Col+1)

	gap := m.width - lipgloss.Width(badge) - uniseg.StringWidth(pending) - uniseg.StringWidth(cursorInfo)

	return badge + m.theme.StatusLineStyle.Render(pending+strings.Repeat(" ", max(0, gap))+cursorInfo)
}

// renderLog shows the most recent completed commands.
func (m *Model) renderLog() string {
	if m.session == nil {
		return ""
	}

	entries := m.session.Log()
	if len(entries) > logTail {
		entries = entries[len(entries)-logTail:]
	}

	return m.theme.LogStyle.Render("log: " + strings.Join(entries, " "))
}

// renderHint shows the challenge hint once asked for, and the solved
// rating once earned.
func (m *Model) renderHint() string {
	if m.session == nil {
		return ""
	}

	if n := m.session.Stars(); n > 0 {
		return m.theme.TitleStyle.Render(stars(n))
	}

	hint := m.session.Challenge().Hint
	switch {
	case hint == "":
		return ""
	case !m.showHint:
		return m.theme.LogStyle.Render(m.keyMap.Hint.Help().Key + " for a hint")
	}
	return m.theme.MessageStyle.Render("hint: " + hint)
}

// stars draws a rating out of three.
func stars(n int) string {
	n = max(0, min(n, 3))
	return strings.Repeat("★", n) + strings.Repeat("☆", 3-n)
}

func (m *Model) getCommandLine() string {
	var line string

	switch {
	case m.engine.Mode() == core.CommandMode:
		line = m.theme.CommandLineStyle.Render(":" + m.engine.CommandLine())
	case m.err != nil:
		line = m.theme.ErrorStyle.Render(m.err.Error())
	case m.message != "":
		line = m.theme.MessageStyle.Render(m.message)
	}

	if pad := m.width - lipgloss.Width(line); pad > 0 {
		line += m.theme.CommandLineStyle.Render(strings.Repeat(" ", pad))
	}

	return line
}

// paneWidths splits the screen between the buffer and the target pane. The
// target pane never gets narrower than its widest line.
func (m *Model) paneWidths() (buffer, target int) {
	if m.session == nil {
		return m.width, 0
	}

	widest := 0
	for _, line := range targetLines(m.session.Challenge().Target) {
		widest = max(widest, uniseg.StringWidth(line))
	}

	lines := targetLines(m.session.Challenge().Target)
	target = max(m.width/2, widest+lineNumberWidth(len(lines))+2)
	target = min(target, m.width-1)

	return max(1, m.width-target), target
}
