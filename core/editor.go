package core

import (
	"fmt"

	"github.com/samber/mo"

	"github.com/ionut-t/vimpuzzle/internal/log"
)

// Result reports what a single key did.
type Result struct {
	Executed     bool   // The key was consumed and took effect
	Command      string // Canonical name of the completed command, if any
	CountsAsMove bool   // The key completed a chargeable motion or edit
	Partial      bool   // The key extended an unresolved normal-mode command
}

func moved(cmd Command) Result {
	return Result{Executed: true, Command: cmd.String(), CountsAsMove: true}
}

func handled(name string) Result {
	return Result{Executed: true, Command: name}
}

// escaped is the result of every Escape that leaves a mode or cancels an
// armed command.
var escaped = handled("Esc")

type findMemo struct {
	cmd Command
	ch  rune
}

type changeKind int

const (
	changeReplaceChar changeKind = iota
	changeDeleteChar
	changeDeleteLine
	changeChangeWord
)

// changeMemo is enough to replay the last edit with '.'.
type changeMemo struct {
	kind changeKind
	ch   rune   // changeReplaceChar
	text []rune // changeChangeWord
}

// Engine is a modal text-editing command interpreter. It owns its buffer
// and is driven one key at a time; callers must serialize calls.
type Engine struct {
	buffer *textBuffer
	cursor cursor
	mode   Mode

	commandBuffer string            // Unresolved normal-mode keys
	pending       mo.Option[Command] // Armed f/F/t/T/r awaiting its operand
	anchor        mo.Option[Position]
	commandLine   []rune

	clipboard  string
	undo       *undoStack
	lastFind   mo.Option[findMemo]
	lastChange mo.Option[changeMemo]
	cwStart    mo.Option[int] // Column where a cw insert session began

	observer Observer
	busy     bool
}

// Option configures an Engine.
type Option func(*Engine)

// WithObserver registers change callbacks.
func WithObserver(o Observer) Option {
	return func(e *Engine) {
		e.observer = o
	}
}

// WithUndoLimit overrides the default bound of the undo stack.
func WithUndoLimit(n int) Option {
	return func(e *Engine) {
		e.undo = newUndoStack(n)
	}
}

// New creates an engine holding a single empty line in NORMAL mode.
func New(opts ...Option) *Engine {
	e := &Engine{
		buffer: newBuffer(),
		mode:   NormalMode,
		undo:   newUndoStack(DefaultUndoLimit),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// SetObserver replaces the registered callbacks.
func (e *Engine) SetObserver(o Observer) {
	e.observer = o
}

// LoadText resets every piece of state and loads text, split on '\n'.
func (e *Engine) LoadText(text string) {
	e.enter()
	defer e.leave()

	prev := e.mode

	e.buffer.setText(text)
	e.cursor = cursor{}
	e.mode = NormalMode
	e.commandBuffer = ""
	e.pending = mo.None[Command]()
	e.anchor = mo.None[Position]()
	e.commandLine = nil
	e.clipboard = ""
	e.undo.reset()
	e.lastFind = mo.None[findMemo]()
	e.lastChange = mo.None[changeMemo]()
	e.cwStart = mo.None[int]()

	if prev != NormalMode {
		e.dispatchMode()
		e.dispatchCommandLine()
	}
	e.dispatchState()
}

// Text returns the buffer joined with '\n'.
func (e *Engine) Text() string {
	return e.buffer.text()
}

// Lines returns a copy of the buffer lines.
func (e *Engine) Lines() []string {
	return e.buffer.strings()
}

func (e *Engine) Cursor() Position {
	return e.cursor.Position
}

// SetCursor moves the cursor, clamped to the bounds of the current mode.
// Puzzle layers use it to place a level's starting cursor.
func (e *Engine) SetCursor(pos Position) {
	e.cursor.Position = pos
	e.cursor.clamp(e.buffer, e.mode)
}

func (e *Engine) Mode() Mode {
	return e.mode
}

// Clipboard returns the unnamed register.
func (e *Engine) Clipboard() string {
	return e.clipboard
}

// CommandBuffer returns the keys of a normal-mode command still being typed.
func (e *Engine) CommandBuffer() string {
	return e.commandBuffer
}

// CommandLine returns the text typed after ':' while in COMMAND mode.
func (e *Engine) CommandLine() string {
	return string(e.commandLine)
}

// UndoDepth returns the number of recoverable snapshots.
func (e *Engine) UndoDepth() int {
	return e.undo.len()
}

// ProcessKey feeds one key to the engine. Keys that are disallowed,
// malformed, or whose preconditions fail are rejected silently: Executed
// is false and the buffer and cursor are unchanged. A rejected key may
// still discard half-typed input or close the command line, and the
// observer hears about that like any other state change.
func (e *Engine) ProcessKey(key KeyEvent, allowed AllowList) Result {
	e.enter()
	defer e.leave()

	before := e.State()

	var (
		res Result
		err error
	)

	switch {
	case e.pending.IsPresent():
		res, err = e.handlePendingKey(key)
	case e.mode == InsertMode:
		res, err = e.handleInsertKey(key)
	case e.mode == CommandMode:
		res, err = e.handleCommandKey(key, allowed)
	case e.mode.IsVisual():
		res, err = e.handleVisualKey(key, allowed)
	default:
		res, err = e.handleNormalKey(key, allowed)
	}

	if err != nil {
		log.Debug("key rejected", "key", key.String(), "mode", string(e.mode), "err", err)
		res = Result{}
	}

	if !res.Executed {
		if !before.equal(e.State()) {
			e.dispatchState()
		}
		return res
	}

	e.cursor.clamp(e.buffer, e.mode)
	if res.Command != "" && res != escaped {
		e.dispatchCommand(res.Command)
	}
	e.dispatchState()

	return res
}

// enter asserts that no observer callback is re-entering the engine.
func (e *Engine) enter() {
	if e.busy {
		panic(ErrReentrantCall)
	}
	e.busy = true
}

func (e *Engine) leave() {
	e.busy = false
}

func (e *Engine) currentLine() []rune {
	return e.buffer.line(e.cursor.Row)
}

func (e *Engine) setAnchor(pos Position) {
	e.anchor = mo.Some(pos)
}

func (e *Engine) clearAnchor() {
	e.anchor = mo.None[Position]()
}

func notAllowed(name string) error {
	return fmt.Errorf("%w: %s", ErrNotAllowed, name)
}
