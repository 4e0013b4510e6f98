package highlighter

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/require"
)

// requireCovered checks that the spans of row tile [0, width) in order.
func requireCovered(t *testing.T, h *Highlighter, row, width int) {
	t.Helper()
	col := 0
	for _, s := range h.Spans(row) {
		require.Equal(t, col, s.StartCol)
		require.Greater(t, s.EndCol, s.StartCol)
		col = s.EndCol
	}
	require.Equal(t, width, col)
}

func TestHighlighter_SpansCoverEveryLine(t *testing.T) {
	h := New("go", "monokai")

	h.Update([]string{"func main() {", `	s := "héllo"`, "}"})

	requireCovered(t, h, 0, 13)
	requireCovered(t, h, 1, 13)
	requireCovered(t, h, 2, 1)
	require.Empty(t, h.Spans(3))
}

func TestHighlighter_KeywordIsStyled(t *testing.T) {
	h := New("go", "monokai")
	h.Update([]string{"func main() {}"})

	require.NotEqual(t, lipgloss.NoColor{}, h.StyleAt(0, 0).GetForeground())
	require.Equal(t, lipgloss.NewStyle(), h.StyleAt(0, 99))
	require.Equal(t, lipgloss.NewStyle(), h.StyleAt(5, 0))
}

func TestHighlighter_UpdateReplacesSpans(t *testing.T) {
	h := New("go", "monokai")

	h.Update([]string{"a", "b"})
	requireCovered(t, h, 1, 1)

	h.Update([]string{"abc"})
	requireCovered(t, h, 0, 3)
	require.Empty(t, h.Spans(1))

	h.Update([]string{""})
	require.Empty(t, h.Spans(0))
}

func TestHighlighter_UnknownLanguageFallsBack(t *testing.T) {
	h := New("no-such-language", "no-such-style")

	h.Update([]string{"plain text"})

	requireCovered(t, h, 0, 10)
}
