package bubble_adapter

import (
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	"github.com/ionut-t/vimpuzzle/core"
)

type fakeClipboard struct {
	writes []string
	err    error
}

func (f *fakeClipboard) Write(text string) error {
	f.writes = append(f.writes, text)
	return f.err
}

func newTestModel(t *testing.T) (*Model, *fakeClipboard) {
	t.Helper()
	m := New(80, 20)
	fake := &fakeClipboard{}
	m.WithClipboard(fake)
	m.Focus()
	return &m, fake
}

func runeMsg(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func sendKeys(t *testing.T, m *Model, msgs ...tea.KeyMsg) tea.Cmd {
	t.Helper()
	var cmd tea.Cmd
	for _, msg := range msgs {
		updated, c := m.Update(msg)
		*m = updated.(Model)
		cmd = c
	}
	return cmd
}

func TestConvertBubbleKeys(t *testing.T) {
	tests := []struct {
		name string
		msg  tea.KeyMsg
		want core.KeyEvent
	}{
		{"rune", runeMsg('a'), core.RuneKey('a')},
		{"alt rune", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'a'}, Alt: true}, core.KeyEvent{Rune: 'a', Modifiers: core.ModAlt}},
		{"space", tea.KeyMsg{Type: tea.KeySpace}, core.RuneKey(' ')},
		{"enter", tea.KeyMsg{Type: tea.KeyEnter}, core.SpecialKey(core.KeyEnter)},
		{"escape", tea.KeyMsg{Type: tea.KeyEsc}, core.SpecialKey(core.KeyEscape)},
		{"backspace", tea.KeyMsg{Type: tea.KeyBackspace}, core.SpecialKey(core.KeyBackspace)},
		{"tab", tea.KeyMsg{Type: tea.KeyTab}, core.SpecialKey(core.KeyTab)},
		{"arrow", tea.KeyMsg{Type: tea.KeyLeft}, core.SpecialKey(core.KeyLeft)},
		{"control", tea.KeyMsg{Type: tea.KeyCtrlA}, core.KeyEvent{Modifiers: core.ModCtrl}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, []core.KeyEvent{tt.want}, convertBubbleKeys(tt.msg))
		})
	}
}

func TestConvertBubbleKeys_PasteSplitsRunes(t *testing.T) {
	msg := tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("a(b"), Paste: true}

	got := convertBubbleKeys(msg)

	require.Equal(t, []core.KeyEvent{core.RuneKey('a'), core.RuneKey('('), core.RuneKey('b')}, got)
}

func TestModel_PasteFeedsEveryRune(t *testing.T) {
	m, _ := newTestModel(t)
	m.SetContent("")

	sendKeys(t, m,
		runeMsg('i'),
		tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("héllo"), Paste: true},
		tea.KeyMsg{Type: tea.KeyEsc},
	)

	require.Equal(t, "héllo", m.Engine().Text())
	require.Equal(t, core.NormalMode, m.Engine().Mode())
}

func TestModel_FreePlayEditing(t *testing.T) {
	m, _ := newTestModel(t)
	m.SetContent("hello world")

	sendKeys(t, m, runeMsg('w'), runeMsg('x'))

	require.Equal(t, "hello orld", m.Engine().Text())
	require.Nil(t, m.Session())
	require.Contains(t, m.View(), "free play")
}

func TestModel_TerminalFocusEvents(t *testing.T) {
	m, _ := newTestModel(t)
	m.SetContent("hello")

	updated, _ := m.Update(tea.BlurMsg{})
	*m = updated.(Model)
	require.False(t, m.IsFocused())

	sendKeys(t, m, runeMsg('x'))
	require.Equal(t, "hello", m.Engine().Text())

	updated, _ = m.Update(tea.FocusMsg{})
	*m = updated.(Model)
	require.True(t, m.IsFocused())

	sendKeys(t, m, runeMsg('x'))
	require.Equal(t, "ello", m.Engine().Text())
}

func TestModel_UnfocusedIgnoresKeys(t *testing.T) {
	m, _ := newTestModel(t)
	m.SetContent("hello")
	m.Blur()

	sendKeys(t, m, runeMsg('x'))

	require.Equal(t, "hello", m.Engine().Text())
}

func TestModel_FreePlayQuit(t *testing.T) {
	m, _ := newTestModel(t)
	m.SetContent("hello")

	cmd := sendKeys(t, m, runeMsg(':'), runeMsg('q'), tea.KeyMsg{Type: tea.KeyEnter})

	require.NotNil(t, cmd)
	require.IsType(t, tea.QuitMsg{}, cmd())
}

func TestModel_CtrlCQuits(t *testing.T) {
	m, _ := newTestModel(t)

	cmd := sendKeys(t, m, tea.KeyMsg{Type: tea.KeyCtrlC})

	require.IsType(t, tea.QuitMsg{}, cmd())
}

func TestModel_RejectedKeyIsFlagged(t *testing.T) {
	m, _ := newTestModel(t)
	m.SetContent("hello")

	m.handleKey(core.RuneKey('z'))
	require.True(t, m.rejected)

	m.handleKey(core.RuneKey('d'))
	require.False(t, m.rejected, "a partial command is not a rejection")
}

func TestModel_MirrorsClipboard(t *testing.T) {
	m, fake := newTestModel(t)
	m.SetContent("hello")

	cmd, _ := m.handleKey(core.RuneKey('y'))
	require.Nil(t, cmd)

	cmd, _ = m.handleKey(core.RuneKey('y'))
	require.NotNil(t, cmd)
	require.Equal(t, YankMsg{Content: "hello"}, cmd())
	require.Equal(t, []string{"hello"}, fake.writes)

	// The same payload is not written twice.
	m.handleKey(core.RuneKey('y'))
	cmd, _ = m.handleKey(core.RuneKey('y'))
	require.Nil(t, cmd)
}

func TestModel_ClipboardFailureReported(t *testing.T) {
	m, fake := newTestModel(t)
	fake.err = errors.New("no display")
	m.SetContent("hello")

	m.handleKey(core.RuneKey('y'))
	cmd, _ := m.handleKey(core.RuneKey('y'))

	require.Equal(t, ErrorMsg{Error: fake.err}, cmd())
}

func TestModel_NilClipboardDisablesMirroring(t *testing.T) {
	m, _ := newTestModel(t)
	m.WithClipboard(nil)
	m.SetContent("hello")

	m.handleKey(core.RuneKey('y'))
	cmd, _ := m.handleKey(core.RuneKey('y'))

	require.Nil(t, cmd)
}

func TestModel_ChallengeFlow(t *testing.T) {
	m, _ := newTestModel(t)
	m.SetChallenges([]Challenge{
		{Name: "trim", Initial: "xhello", Target: "hello", MaxMoves: 1},
		{Name: "second", Initial: "abc", Target: "ab", Cursor: Cursor{Col: 2}, MaxMoves: 2},
	})

	require.Contains(t, m.View(), "trim")

	sendKeys(t, m, runeMsg('x'))
	require.Equal(t, Solved, m.Session().Outcome())
	require.Contains(t, m.View(), "log: x")

	sendKeys(t, m, tea.KeyMsg{Type: tea.KeyCtrlN})
	require.Equal(t, "second", m.Session().Challenge().Name)
	require.Equal(t, core.Position{Col: 2}, m.Engine().Cursor())

	sendKeys(t, m, tea.KeyMsg{Type: tea.KeyCtrlP}, tea.KeyMsg{Type: tea.KeyCtrlP})
	require.Equal(t, "second", m.Session().Challenge().Name, "previous wraps around")
}

func TestModel_ResetRestartsChallenge(t *testing.T) {
	m, _ := newTestModel(t)
	m.SetChallenges([]Challenge{{Name: "n", Initial: "abc", Target: "a", MaxMoves: 1}})

	sendKeys(t, m, runeMsg('x'))
	require.Equal(t, Failed, m.Session().Outcome())

	sendKeys(t, m, tea.KeyMsg{Type: tea.KeyCtrlR})

	require.Equal(t, Playing, m.Session().Outcome())
	require.Equal(t, "abc", m.Engine().Text())
}

func TestModel_OutcomeCmd(t *testing.T) {
	m, _ := newTestModel(t)
	m.SetChallenges([]Challenge{{Name: "n", Initial: "ab", Target: "b", MaxMoves: 3}})
	m.handleKey(core.RuneKey('x'))

	require.Equal(t, SolvedMsg{Name: "n", Moves: 1, Stars: 3}, m.outcomeCmd(Solved)())
	require.Equal(t, FailedMsg{Name: "n"}, m.outcomeCmd(Failed)())
}

func TestModel_HintToggle(t *testing.T) {
	m, _ := newTestModel(t)
	m.SetChallenges([]Challenge{
		{Name: "one", Initial: "abc", Target: "bc", MaxMoves: 2, Hint: "x deletes"},
		{Name: "two", Initial: "abc", Target: "ab", MaxMoves: 2},
	})

	require.Contains(t, m.View(), "ctrl+g for a hint")
	require.NotContains(t, m.View(), "x deletes")

	sendKeys(t, m, tea.KeyMsg{Type: tea.KeyCtrlG})
	require.Contains(t, m.View(), "hint: x deletes")

	sendKeys(t, m, tea.KeyMsg{Type: tea.KeyCtrlG})
	require.NotContains(t, m.View(), "x deletes")

	sendKeys(t, m, tea.KeyMsg{Type: tea.KeyCtrlG}, tea.KeyMsg{Type: tea.KeyCtrlN}, tea.KeyMsg{Type: tea.KeyCtrlP})
	require.NotContains(t, m.View(), "x deletes", "a new challenge hides the hint again")
}

func TestModel_HeaderCountsCommandUses(t *testing.T) {
	m, _ := newTestModel(t)
	m.SetChallenges([]Challenge{{Name: "n", Initial: "abcd", Target: "d", Allowed: []string{"x", "l"}, MaxMoves: 5}})

	sendKeys(t, m, runeMsg('x'), runeMsg('x'))

	view := m.View()
	require.Contains(t, view, "x×2")
	require.NotContains(t, view, "l×")
}

func TestModel_SolvedShowsStars(t *testing.T) {
	m, _ := newTestModel(t)
	m.SetChallenges([]Challenge{{Name: "n", Initial: "ab", Target: "b", MaxMoves: 4}})

	sendKeys(t, m, runeMsg('x'))
	require.Contains(t, m.View(), "★★★")

	updated, _ := m.Update(SolvedMsg{Name: "n", Moves: 3, Stars: 2})
	*m = updated.(Model)
	require.Contains(t, m.message, "★★☆ solved in 3 moves")
}

func TestModel_MonoTheme(t *testing.T) {
	m, _ := newTestModel(t)
	m.WithTheme(MonoTheme)
	m.SetContent("hello")

	require.Equal(t, MonoTheme.TitleStyle, m.theme.TitleStyle)
	require.Contains(t, m.View(), "free play")
}

func TestStars(t *testing.T) {
	require.Equal(t, "☆☆☆", stars(0))
	require.Equal(t, "★☆☆", stars(1))
	require.Equal(t, "★★★", stars(3))
	require.Equal(t, "★★★", stars(7))
}
