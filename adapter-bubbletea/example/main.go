package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/jessevdk/go-flags"
	"github.com/joho/godotenv"
	"github.com/mattn/go-isatty"

	editor "github.com/ionut-t/vimpuzzle/adapter-bubbletea"
	"github.com/ionut-t/vimpuzzle/internal/log"
)

var errNotTerminal = errors.New("stdout is not a terminal")

type Options struct {
	Challenges string `short:"c" long:"challenges" env:"VIMPUZZLE_CHALLENGES" default:"challenges.yaml" description:"YAML file with the puzzles to play"`
	Free       string `short:"f" long:"free" env:"VIMPUZZLE_FREE" description:"Edit this file's text freely instead of playing puzzles"`
	Language   string `short:"l" long:"language" env:"VIMPUZZLE_LANGUAGE" description:"Chroma lexer used to colour the buffer"`
	Theme      string `long:"theme" env:"VIMPUZZLE_THEME" default:"catppuccin-mocha" description:"Chroma style name"`
	LogFile    string `long:"log-file" env:"VIMPUZZLE_LOG_FILE" description:"Write debug logs to this file"`
	Blink      bool   `long:"blink" env:"VIMPUZZLE_BLINK" description:"Blink the cursor"`
	Mono       bool   `long:"mono" env:"VIMPUZZLE_MONO" description:"Draw without colours"`
}

type Model struct {
	editor editor.Model
}

func (m Model) Init() tea.Cmd {
	return m.editor.Init()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.WindowSizeMsg); ok {
		m.editor.SetSize(msg.Width-4, msg.Height-2)
	}

	editorModel, cmd := m.editor.Update(msg)
	m.editor = editorModel.(editor.Model)

	return m, cmd
}

func (m Model) View() string {
	return lipgloss.NewStyle().
		Border(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1).
		Render(m.editor.View())
}

func main() {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		fmt.Fprintf(os.Stderr, "Warning: could not load .env file: %v\n", err)
	}

	var opts Options
	parser := flags.NewParser(&opts, flags.Default)

	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	if err := run(opts); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(opts Options) error {
	if opts.LogFile != "" {
		f, err := os.OpenFile(opts.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		defer f.Close()

		log.SetOutput(f)
		log.SetLevel(slog.LevelDebug)
	}

	if !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		log.Error("refusing to start", "err", errNotTerminal)
		return errNotTerminal
	}

	textEditor := editor.New(80, 20)
	textEditor.Focus()
	if opts.Blink {
		textEditor.SetCursorMode(editor.CursorBlink)
	}
	if opts.Mono {
		textEditor.WithTheme(editor.MonoTheme)
	}
	textEditor.SetLanguage(opts.Language, opts.Theme)

	if opts.Free != "" {
		content, err := os.ReadFile(opts.Free)
		if err != nil {
			return fmt.Errorf("read %s: %w", opts.Free, err)
		}
		textEditor.SetContent(string(content))
	} else {
		challenges, err := editor.LoadChallenges(opts.Challenges)
		if err != nil {
			return err
		}
		textEditor.SetChallenges(challenges)
	}

	p := tea.NewProgram(Model{editor: textEditor}, tea.WithAltScreen(), tea.WithReportFocus())

	if _, err := p.Run(); err != nil {
		log.Error("program failed", "err", err)
		return fmt.Errorf("run program: %w", err)
	}

	return nil
}
