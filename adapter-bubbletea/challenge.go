package bubble_adapter

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/ionut-t/vimpuzzle/core"
)

var (
	ErrNoChallenges    = errors.New("no challenges defined")
	ErrInvalidBudget   = errors.New("max_moves must be positive")
	ErrUnknownCommand  = errors.New("unknown command in allow-list")
	ErrMissingName     = errors.New("challenge has no name")
	ErrCursorOutOfText = errors.New("start cursor outside initial text")
)

// Challenge is one puzzle: turn Initial into Target within MaxMoves,
// using only the Allowed commands.
type Challenge struct {
	Name     string   `yaml:"name"`
	Language string   `yaml:"language,omitempty"`
	Initial  string   `yaml:"initial"`
	Target   string   `yaml:"target"`
	Cursor   Cursor   `yaml:"cursor"`
	Allowed  []string `yaml:"allowed,omitempty"`
	MaxMoves int      `yaml:"max_moves"`
	Hint     string   `yaml:"hint,omitempty"`
}

type Cursor struct {
	Row int `yaml:"row"`
	Col int `yaml:"col"`
}

type challengeFile struct {
	Challenges []Challenge `yaml:"challenges"`
}

// knownCommands is every name an allow-list may mention.
var knownCommands = core.NewAllowList(
	"h", "j", "k", "l", "w", "b", "x", "dd", "yy", "gg", "cw",
	"ci(", `ci"`, "di(", `di"`, "i", "A", "o", "p", "u", "0", "$", "G",
	"f", "F", "t", "T", "r", ";", ".", "v", "V", ":s", "d", "y",
)

// LoadChallenges reads a YAML document of the form
//
//	challenges:
//	  - name: ...
//	    initial: ...
//	    target: ...
//
// and validates every entry.
func LoadChallenges(path string) ([]Challenge, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read challenges: %w", err)
	}
	return ParseChallenges(data)
}

// ParseChallenges decodes and validates a challenge document.
func ParseChallenges(data []byte) ([]Challenge, error) {
	var f challengeFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse challenges: %w", err)
	}

	if len(f.Challenges) == 0 {
		return nil, ErrNoChallenges
	}

	for i, c := range f.Challenges {
		if err := c.Validate(); err != nil {
			return nil, fmt.Errorf("challenge %d (%s): %w", i+1, c.Name, err)
		}
	}

	return f.Challenges, nil
}

func (c Challenge) Validate() error {
	if c.Name == "" {
		return ErrMissingName
	}
	if c.MaxMoves <= 0 {
		return ErrInvalidBudget
	}
	for _, name := range c.Allowed {
		if !knownCommands.Allows(name) {
			return fmt.Errorf("%w: %q", ErrUnknownCommand, name)
		}
	}

	e := core.New()
	e.LoadText(c.Initial)
	want := core.Position{Row: c.Cursor.Row, Col: c.Cursor.Col}
	e.SetCursor(want)
	if e.Cursor() != want {
		return fmt.Errorf("%w: %d:%d", ErrCursorOutOfText, c.Cursor.Row, c.Cursor.Col)
	}

	return nil
}

// AllowList converts Allowed into the engine's form. An empty list allows
// every command.
func (c Challenge) AllowList() core.AllowList {
	if len(c.Allowed) == 0 {
		return nil
	}
	return core.NewAllowList(c.Allowed...)
}
