package highlighter

import (
	"strings"
	"sync"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/charmbracelet/lipgloss"
)

// Highlighter colours puzzle text with a chroma lexer. Tokens are cached
// per line until the text changes.
type Highlighter struct {
	lexer      chroma.Lexer
	style      *chroma.Style
	source     string
	lexed      bool
	spans      map[int][]Span // Token spans by line number
	styleCache map[chroma.TokenType]lipgloss.Style
	mu         sync.RWMutex
}

// Span is a token's rune range within its line.
type Span struct {
	Type     chroma.TokenType
	StartCol int
	EndCol   int
}

// New creates a highlighter for language using a chroma style name.
// Unknown languages fall back to plain text.
func New(language string, theme string) *Highlighter {
	lexer := lexers.Get(language)
	if lexer == nil {
		lexer = lexers.Fallback
	}

	return &Highlighter{
		lexer:      chroma.Coalesce(lexer),
		style:      styles.Get(theme),
		spans:      make(map[int][]Span),
		styleCache: make(map[chroma.TokenType]lipgloss.Style),
	}
}

// Update tokenizes lines unless they are unchanged since the last call.
// The whole text is lexed at once so multi-line constructs colour
// correctly.
func (h *Highlighter) Update(lines []string) {
	content := strings.Join(lines, "\n")

	h.mu.Lock()
	defer h.mu.Unlock()

	if h.lexed && content == h.source {
		return
	}
	h.source = content
	h.lexed = true
	h.spans = make(map[int][]Span)

	if content == "" {
		return
	}

	iterator, err := h.lexer.Tokenise(nil, content)
	if err != nil {
		return
	}

	row, col := 0, 0
	for _, token := range iterator.Tokens() {
		value := token.Value
		for {
			before, after, found := strings.Cut(value, "\n")
			if n := len([]rune(before)); n > 0 {
				h.spans[row] = append(h.spans[row], Span{Type: token.Type, StartCol: col, EndCol: col + n})
				col += n
			}
			if !found {
				break
			}
			row++
			col = 0
			value = after
		}
	}
}

// Spans returns the cached token spans of a line.
func (h *Highlighter) Spans(row int) []Span {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.spans[row]
}

// StyleAt returns the style of the rune at row/col, or an empty style when
// no token covers it.
func (h *Highlighter) StyleAt(row, col int) lipgloss.Style {
	for _, s := range h.Spans(row) {
		if col >= s.StartCol && col < s.EndCol {
			return h.styleFor(s.Type)
		}
	}
	return lipgloss.NewStyle()
}

func (h *Highlighter) styleFor(tokenType chroma.TokenType) lipgloss.Style {
	h.mu.Lock()
	defer h.mu.Unlock()

	if style, ok := h.styleCache[tokenType]; ok {
		return style
	}

	entry := h.style.Get(tokenType)

	style := lipgloss.NewStyle()
	if entry.Colour.IsSet() {
		style = style.Foreground(lipgloss.Color(entry.Colour.String()))
	}
	if entry.Bold == chroma.Yes {
		style = style.Bold(true)
	}
	if entry.Italic == chroma.Yes {
		style = style.Italic(true)
	}
	if entry.Underline == chroma.Yes {
		style = style.Underline(true)
	}

	h.styleCache[tokenType] = style

	return style
}
