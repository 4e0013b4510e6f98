package bubble_adapter

import (
	"strings"

	"github.com/ionut-t/vimpuzzle/core"
	"github.com/ionut-t/vimpuzzle/internal/log"
)

type Outcome int

const (
	Playing Outcome = iota
	Solved
	Failed
)

func (o Outcome) String() string {
	switch o {
	case Solved:
		return "solved"
	case Failed:
		return "failed"
	default:
		return "playing"
	}
}

// Session plays one challenge on an engine. It charges a move for every
// key the engine reports as chargeable and logs the command that key
// completed.
type Session struct {
	challenge Challenge
	engine    *core.Engine
	allowed   core.AllowList
	moves     int
	log       []string
	outcome   Outcome
}

// NewSession loads the challenge into engine and places the start cursor.
func NewSession(engine *core.Engine, c Challenge) *Session {
	s := &Session{
		challenge: c,
		engine:    engine,
		allowed:   c.AllowList(),
	}
	s.start()
	return s
}

func (s *Session) start() {
	s.moves = 0
	s.log = nil
	s.outcome = Playing

	c := s.challenge
	s.engine.LoadText(c.Initial)
	s.engine.SetCursor(core.Position{Row: c.Cursor.Row, Col: c.Cursor.Col})

	log.Info("challenge started", "name", c.Name, "max_moves", c.MaxMoves)
}

// Press feeds key to the engine unless the session is over.
func (s *Session) Press(key core.KeyEvent) core.Result {
	if s.outcome != Playing {
		return core.Result{}
	}

	res := s.engine.ProcessKey(key, s.allowed)
	if res.CountsAsMove {
		s.moves++
		if res.Command != "" {
			s.log = append(s.log, res.Command)
		}
	}

	switch {
	case s.engine.Text() == s.challenge.Target:
		s.outcome = Solved
		log.Info("challenge solved", "name", s.challenge.Name, "moves", s.moves)
	case s.moves >= s.challenge.MaxMoves:
		s.outcome = Failed
		log.Info("challenge failed", "name", s.challenge.Name, "moves", s.moves)
	}

	return res
}

// Reset restarts the challenge from its initial text.
func (s *Session) Reset() {
	s.start()
}

func (s *Session) Challenge() Challenge {
	return s.challenge
}

func (s *Session) Engine() *core.Engine {
	return s.engine
}

func (s *Session) Moves() int {
	return s.moves
}

// MovesLeft never goes below zero.
func (s *Session) MovesLeft() int {
	return max(0, s.challenge.MaxMoves-s.moves)
}

// Log returns the commands completed so far, oldest first.
func (s *Session) Log() []string {
	return append([]string(nil), s.log...)
}

func (s *Session) Outcome() Outcome {
	return s.outcome
}

// Uses counts logged commands that exercised the allowed name. A bare
// operator such as "d" also counts "dd", "di(" and the visual "v+d".
func (s *Session) Uses(name string) int {
	n := 0
	for _, entry := range s.log {
		if strings.HasPrefix(entry, name) || strings.HasSuffix(entry, "+"+name) {
			n++
		}
	}
	return n
}

// Stars rates a solved challenge from 1 to 3 by how much of the budget it
// took: at most half earns 3, at most three quarters earns 2. Unsolved
// sessions have no stars.
func (s *Session) Stars() int {
	if s.outcome != Solved {
		return 0
	}
	budget := s.challenge.MaxMoves
	switch {
	case s.moves <= ceilDiv(budget, 2):
		return 3
	case s.moves <= ceilDiv(3*budget, 4):
		return 2
	default:
		return 1
	}
}

func ceilDiv(a, b int) int {
	return (a + b - 1) / b
}

// LineMatches reports whether the live line at row equals the target line.
func (s *Session) LineMatches(row int) bool {
	lines := s.engine.Lines()
	target := targetLines(s.challenge.Target)
	if row >= len(lines) || row >= len(target) {
		return false
	}
	return lines[row] == target[row]
}
