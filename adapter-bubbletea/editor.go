package bubble_adapter

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/ionut-t/vimpuzzle/adapter-bubbletea/highlighter"
	"github.com/ionut-t/vimpuzzle/core"
	"github.com/ionut-t/vimpuzzle/internal/log"
)

type Theme struct {
	NormalModeStyle        lipgloss.Style
	InsertModeStyle        lipgloss.Style
	VisualModeStyle        lipgloss.Style
	CommandModeStyle       lipgloss.Style
	StatusLineStyle        lipgloss.Style
	CommandLineStyle       lipgloss.Style
	MessageStyle           lipgloss.Style
	LineNumberStyle        lipgloss.Style
	CurrentLineNumberStyle lipgloss.Style
	SelectionStyle         lipgloss.Style
	ErrorStyle             lipgloss.Style
	RejectedStyle          lipgloss.Style
	MatchMarkerStyle       lipgloss.Style
	DiffMarkerStyle        lipgloss.Style
	TargetStyle            lipgloss.Style
	TitleStyle             lipgloss.Style
	LogStyle               lipgloss.Style
}

var DefaultTheme = Theme{
	NormalModeStyle:        lipgloss.NewStyle().Background(lipgloss.Color("62")).Foreground(lipgloss.Color("255")),
	InsertModeStyle:        lipgloss.NewStyle().Background(lipgloss.Color("26")).Foreground(lipgloss.Color("255")),
	VisualModeStyle:        lipgloss.NewStyle().Background(lipgloss.Color("127")).Foreground(lipgloss.Color("255")),
	CommandModeStyle:       lipgloss.NewStyle().Background(lipgloss.Color("208")).Foreground(lipgloss.Color("255")),
	CommandLineStyle:       lipgloss.NewStyle().Background(lipgloss.Color("235")).Foreground(lipgloss.Color("255")),
	StatusLineStyle:        lipgloss.NewStyle().Background(lipgloss.Color("236")).Foreground(lipgloss.Color("255")),
	MessageStyle:           lipgloss.NewStyle().Foreground(lipgloss.Color("34")),
	ErrorStyle:             lipgloss.NewStyle().Foreground(lipgloss.Color("208")),
	LineNumberStyle:        lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
	CurrentLineNumberStyle: lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
	SelectionStyle:         lipgloss.NewStyle().Background(lipgloss.Color("237")),
	RejectedStyle:          lipgloss.NewStyle().Background(lipgloss.Color("160")).Foreground(lipgloss.Color("255")).Bold(true),
	MatchMarkerStyle:       lipgloss.NewStyle().Foreground(lipgloss.Color("34")),
	DiffMarkerStyle:        lipgloss.NewStyle().Foreground(lipgloss.Color("160")),
	TargetStyle:            lipgloss.NewStyle().Foreground(lipgloss.Color("250")),
	TitleStyle:             lipgloss.NewStyle().Foreground(lipgloss.Color("62")).Bold(true),
	LogStyle:               lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
}

// MonoTheme marks modes and selections with reverse video and weight only,
// for terminals without colour.
var MonoTheme = Theme{
	NormalModeStyle:        lipgloss.NewStyle().Reverse(true),
	InsertModeStyle:        lipgloss.NewStyle().Reverse(true).Bold(true),
	VisualModeStyle:        lipgloss.NewStyle().Reverse(true).Underline(true),
	CommandModeStyle:       lipgloss.NewStyle().Reverse(true).Italic(true),
	CommandLineStyle:       lipgloss.NewStyle(),
	StatusLineStyle:        lipgloss.NewStyle().Reverse(true),
	MessageStyle:           lipgloss.NewStyle().Bold(true),
	ErrorStyle:             lipgloss.NewStyle().Bold(true).Underline(true),
	LineNumberStyle:        lipgloss.NewStyle().Faint(true),
	CurrentLineNumberStyle: lipgloss.NewStyle().Bold(true),
	SelectionStyle:         lipgloss.NewStyle().Underline(true),
	RejectedStyle:          lipgloss.NewStyle().Reverse(true).Bold(true),
	MatchMarkerStyle:       lipgloss.NewStyle().Bold(true),
	DiffMarkerStyle:        lipgloss.NewStyle().Faint(true),
	TargetStyle:            lipgloss.NewStyle(),
	TitleStyle:             lipgloss.NewStyle().Bold(true),
	LogStyle:               lipgloss.NewStyle().Faint(true),
}

type cursorBlinkMsg struct{}
type cursorBlinkCanceledMsg struct{}
type resumeBlinkCycleMsg struct{}

type CursorMode int

const (
	CursorSteady CursorMode = iota
	CursorBlink
)

const cursorBlinkInterval = 500 * time.Millisecond
const cursorActivityResetDelay = 250 * time.Millisecond

const messageDuration = 3 * time.Second

var errOutOfMoves = errors.New("out of moves, ctrl+r to retry")

type cursorBlinkContext struct {
	ctx    context.Context
	cancel context.CancelFunc
}

// Clipboard receives every new clipboard payload of the engine.
type Clipboard interface {
	Write(text string) error
}

type systemClipboard struct{}

func (systemClipboard) Write(text string) error {
	return clipboard.WriteAll(text)
}

type Model struct {
	engine             *core.Engine
	session            *Session
	challenges         []Challenge
	current            int
	viewport           viewport.Model
	help               help.Model
	keyMap             KeyMap
	width              int
	height             int
	theme              Theme
	err                error
	message            string
	rejected           bool
	showHint           bool
	clipboard          Clipboard
	mirrored           string // Last clipboard payload sent to the system clipboard
	isFocused          bool
	cursorMode         CursorMode
	cursorVisible      bool
	cursorBlinkContext *cursorBlinkContext
	clearMsgCancel     context.CancelFunc
	highlighter        *highlighter.Highlighter
	language           string
	highlighterTheme   string
}

// SolvedMsg is sent when the buffer reaches the challenge target.
type SolvedMsg struct {
	Name  string
	Moves int
	Stars int
}

// FailedMsg is sent when the move budget runs out first.
type FailedMsg struct {
	Name string
}

// YankMsg is sent after a yank or delete reached the system clipboard.
type YankMsg struct {
	Content string
}

type ErrorMsg struct {
	Error error
}

type QuitMsg struct{}

type clearMsg struct{}

func (m *Model) dispatchClearMsg(duration time.Duration) tea.Cmd {
	if m.clearMsgCancel != nil {
		m.clearMsgCancel()
	}

	ctx, cancel := context.WithTimeout(context.Background(), duration)
	m.clearMsgCancel = cancel

	return func() tea.Msg {
		defer cancel()
		<-ctx.Done()
		if ctx.Err() == context.DeadlineExceeded {
			return clearMsg{}
		}
		return nil
	}
}

func New(width, height int) Model {
	m := Model{
		engine:        core.New(),
		viewport:      viewport.New(width, height-chromeHeight),
		help:          help.New(),
		keyMap:        DefaultKeyMap,
		theme:         DefaultTheme,
		clipboard:     systemClipboard{},
		cursorMode:    CursorSteady,
		cursorVisible: true,
		cursorBlinkContext: &cursorBlinkContext{
			ctx: context.Background(),
		},
	}

	m.SetSize(width, height)

	return m
}

func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.help.Width = width

	bufferWidth, _ := m.paneWidths()
	m.viewport.Width = bufferWidth
	m.viewport.Height = max(1, height-chromeHeight)

	m.renderBuffer()
}

// SetChallenges replaces the puzzle list and starts the first one.
func (m *Model) SetChallenges(challenges []Challenge) {
	m.challenges = challenges
	m.start(0)
}

// SetContent leaves puzzle mode and loads text for free editing.
func (m *Model) SetContent(text string) {
	m.challenges = nil
	m.session = nil
	m.current = 0
	m.engine.SetObserver(core.Observer{})
	m.engine.LoadText(text)
	m.mirrored = ""
	m.SetSize(m.width, m.height)
}

func (m *Model) start(index int) {
	if len(m.challenges) == 0 {
		return
	}

	m.current = (index + len(m.challenges)) % len(m.challenges)
	c := m.challenges[m.current]

	m.session = NewSession(m.engine, c)
	m.mirrored = ""
	m.rejected = false
	m.showHint = false

	if c.Language != "" {
		m.SetLanguage(c.Language, m.highlighterTheme)
	}

	m.SetSize(m.width, m.height)
}

func (m *Model) WithTheme(theme Theme) {
	m.theme = theme
	m.renderBuffer()
}

// WithClipboard replaces the system clipboard, or disables mirroring when
// c is nil.
func (m *Model) WithClipboard(c Clipboard) {
	m.clipboard = c
}

// SetLanguage enables chroma highlighting. An empty language disables it.
// For the available themes, see: https://github.com/alecthomas/chroma/blob/master/styles
func (m *Model) SetLanguage(language string, theme string) {
	if m.language == language && m.highlighterTheme == theme && m.highlighter != nil {
		return
	}

	m.language = language
	m.highlighterTheme = theme
	if language == "" {
		m.highlighter = nil
		return
	}

	m.highlighter = highlighter.New(language, theme)
}

// DispatchMessage allows setting a message to be displayed in the command line for a specified duration.
func (m *Model) DispatchMessage(message string, duration time.Duration) tea.Cmd {
	m.message = message
	m.err = nil

	return m.dispatchClearMsg(duration)
}

// DispatchError allows setting an error to be displayed in the command line for a specified duration.
func (m *Model) DispatchError(err error, duration time.Duration) tea.Cmd {
	m.err = err
	m.message = ""

	return m.dispatchClearMsg(duration)
}

func (m *Model) Focus() {
	m.isFocused = true
	m.cursorVisible = true
	m.renderBuffer()
}

func (m *Model) Blur() {
	m.isFocused = false
	m.cursorVisible = false
	m.renderBuffer()
}

func (m *Model) IsFocused() bool {
	return m.isFocused
}

// SetCursorMode sets the cursor mode for the editor.
func (m *Model) SetCursorMode(mode CursorMode) {
	m.cursorMode = mode
	m.cursorVisible = true
}

func (m *Model) Engine() *core.Engine {
	return m.engine
}

// Session returns the running challenge, or nil in free play.
func (m *Model) Session() *Session {
	return m.session
}

func (m Model) Init() tea.Cmd {
	return m.CursorBlink()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keyMap.Quit):
			return m, tea.Quit
		case m.session != nil && key.Matches(msg, m.keyMap.Reset):
			m.session.Reset()
			m.mirrored = ""
			m.rejected = false
			m.renderBuffer()
			return m, m.DispatchMessage("restarted", messageDuration)
		case m.session != nil && key.Matches(msg, m.keyMap.Next):
			m.start(m.current + 1)
			return m, nil
		case m.session != nil && key.Matches(msg, m.keyMap.Prev):
			m.start(m.current - 1)
			return m, nil
		case m.session != nil && key.Matches(msg, m.keyMap.Hint):
			m.showHint = !m.showHint
			return m, nil
		}

		if !m.IsFocused() {
			break
		}

		for _, ev := range convertBubbleKeys(msg) {
			cmd, quit := m.handleKey(ev)
			if quit {
				return m, tea.Quit
			}
			cmds = append(cmds, cmd)
		}

		m.cursorVisible = true
		if m.cursorBlinkContext != nil && m.cursorBlinkContext.cancel != nil {
			m.cursorBlinkContext.cancel()
		}

		if m.cursorMode == CursorBlink {
			cmds = append(cmds, m.restartBlinkCycleCmd())
		}

		m.renderBuffer()

	case tea.FocusMsg:
		m.Focus()
		cmds = append(cmds, m.CursorBlink())

	case tea.BlurMsg:
		m.Blur()

	case SolvedMsg:
		text := fmt.Sprintf("%s solved in %d moves! ctrl+n for the next one", stars(msg.Stars), msg.Moves)
		cmds = append(cmds, m.DispatchMessage(text, messageDuration))

	case FailedMsg:
		cmds = append(cmds, m.DispatchError(errOutOfMoves, messageDuration))

	case YankMsg:
		cmds = append(cmds, m.DispatchMessage(fmt.Sprintf("%d bytes copied", len(msg.Content)), messageDuration))

	case ErrorMsg:
		cmds = append(cmds, m.DispatchError(msg.Error, messageDuration))

	case clearMsg:
		m.message = ""
		m.err = nil
		m.clearMsgCancel = nil

	case cursorBlinkMsg:
		if m.isFocused && m.cursorMode == CursorBlink {
			m.cursorVisible = !m.cursorVisible
			cmds = append(cmds, m.CursorBlink())
		} else {
			m.cursorVisible = m.isFocused
		}
		m.renderBuffer()

	case resumeBlinkCycleMsg:
		if m.isFocused && m.cursorMode == CursorBlink {
			m.cursorVisible = true
			cmds = append(cmds, m.CursorBlink())
		}

	case QuitMsg:
		return m, tea.Quit
	}

	return m, tea.Batch(cmds...)
}

// handleKey feeds one key to the session, or straight to the engine in
// free play. It reports whether the program should quit.
func (m *Model) handleKey(ev core.KeyEvent) (tea.Cmd, bool) {
	var res core.Result

	if m.session == nil {
		res = m.engine.ProcessKey(ev, nil)
		if res.Command == ":q" || res.Command == ":wq" {
			return nil, true
		}
	} else {
		before := m.session.Outcome()
		res = m.session.Press(ev)
		if after := m.session.Outcome(); after != before {
			return tea.Batch(m.mirrorClipboard(), m.outcomeCmd(after)), false
		}
	}

	m.rejected = !res.Executed && !res.Partial

	return m.mirrorClipboard(), false
}

func (m *Model) outcomeCmd(outcome Outcome) tea.Cmd {
	name := m.session.Challenge().Name
	moves := m.session.Moves()
	rating := m.session.Stars()

	return func() tea.Msg {
		if outcome == Solved {
			return SolvedMsg{Name: name, Moves: moves, Stars: rating}
		}
		return FailedMsg{Name: name}
	}
}

// mirrorClipboard copies a new engine clipboard payload to the system
// clipboard. Failures are logged and reported but never block editing.
func (m *Model) mirrorClipboard() tea.Cmd {
	content := m.engine.Clipboard()
	if m.clipboard == nil || content == "" || content == m.mirrored {
		return nil
	}
	m.mirrored = content

	cb := m.clipboard
	return func() tea.Msg {
		if err := cb.Write(content); err != nil {
			log.Warn("clipboard write failed", "err", err)
			return ErrorMsg{Error: err}
		}
		return YankMsg{Content: content}
	}
}

func (m Model) View() string {
	bufferWidth, targetWidth := m.paneWidths()

	body := m.viewport.View()
	if m.session != nil {
		body = lipgloss.JoinHorizontal(
			lipgloss.Top,
			lipgloss.NewStyle().Width(bufferWidth).Render(body),
			m.renderTarget(targetWidth, m.viewport.Height),
		)
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.renderHeader(),
		body,
		m.getStatusLine(),
		m.renderLog(),
		m.renderHint(),
		m.getCommandLine(),
		m.help.View(m.keyMap),
	)
}

// convertBubbleKeys maps a Bubble Tea key to engine key events. A rune
// message carries several runes when text is pasted; each becomes its own
// keystroke.
func convertBubbleKeys(msg tea.KeyMsg) []core.KeyEvent {
	var mods core.KeyModifiers
	if msg.Alt {
		mods |= core.ModAlt
	}

	if msg.Type == tea.KeyRunes {
		events := make([]core.KeyEvent, 0, len(msg.Runes))
		for _, r := range msg.Runes {
			events = append(events, core.KeyEvent{Rune: r, Modifiers: mods})
		}
		return events
	}

	ev := core.KeyEvent{Modifiers: mods}

	switch msg.Type {
	case tea.KeyEnter:
		ev.Key = core.KeyEnter
	case tea.KeySpace:
		ev.Rune = ' '
	case tea.KeyEsc:
		ev.Key = core.KeyEscape
	case tea.KeyBackspace:
		ev.Key = core.KeyBackspace
	case tea.KeyTab:
		ev.Key = core.KeyTab
	case tea.KeyUp:
		ev.Key = core.KeyUp
	case tea.KeyDown:
		ev.Key = core.KeyDown
	case tea.KeyLeft:
		ev.Key = core.KeyLeft
	case tea.KeyRight:
		ev.Key = core.KeyRight
	case tea.KeyDelete:
		ev.Key = core.KeyDelete
	default:
		// Control combinations and keys the engine has no use for.
		ev.Modifiers |= core.ModCtrl
	}

	return []core.KeyEvent{ev}
}

// CursorBlink is the main command for the blinking cursor effect (toggling visibility)
func (m *Model) CursorBlink() tea.Cmd {
	if m.cursorMode != CursorBlink || !m.isFocused {
		m.cursorVisible = m.isFocused
		return nil
	}

	if m.cursorBlinkContext != nil && m.cursorBlinkContext.cancel != nil {
		m.cursorBlinkContext.cancel()
	}

	ctx, cancel := context.WithTimeout(m.cursorBlinkContext.ctx, cursorBlinkInterval)
	m.cursorBlinkContext.cancel = cancel

	return func() tea.Msg {
		defer cancel()
		<-ctx.Done()
		if ctx.Err() == context.DeadlineExceeded {
			return cursorBlinkMsg{}
		}
		return cursorBlinkCanceledMsg{}
	}
}

// restartBlinkCycleCmd is used after user activity to delay the resumption of blinking.
func (m *Model) restartBlinkCycleCmd() tea.Cmd {
	if m.cursorMode != CursorBlink || !m.isFocused {
		m.cursorVisible = m.isFocused
		return nil
	}

	return tea.Tick(cursorActivityResetDelay, func(t time.Time) tea.Msg {
		return resumeBlinkCycleMsg{}
	})
}
