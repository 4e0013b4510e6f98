package core

import (
	"fmt"
	"strings"
)

// handleCommandKey edits the ':' command line and submits it on Enter.
func (e *Engine) handleCommandKey(key KeyEvent, allowed AllowList) (Result, error) {
	switch {
	case key.Key == KeyEscape:
		e.commandLine = e.commandLine[:0]
		e.setMode(NormalMode)
		e.dispatchCommandLine()
		return escaped, nil

	case key.Key == KeyBackspace:
		if len(e.commandLine) > 0 {
			e.commandLine = e.commandLine[:len(e.commandLine)-1]
		} else {
			// Backspace on an empty command line leaves the mode.
			e.setMode(NormalMode)
		}
		e.dispatchCommandLine()
		return Result{Executed: true}, nil

	case key.Key == KeyEnter:
		cmd := string(e.commandLine)
		e.commandLine = e.commandLine[:0]
		e.setMode(NormalMode)
		e.dispatchCommandLine()
		return e.executeCommandLine(cmd, allowed)

	case key.IsPrintable():
		e.commandLine = append(e.commandLine, key.Rune)
		e.dispatchCommandLine()
		return Result{Executed: true}, nil
	}

	return Result{}, fmt.Errorf("%w: %s", ErrInvalidKey, key)
}

// executeCommandLine runs a submitted command line (without the leading ':').
// Only a literal single substitution and the w/q/wq no-ops are known.
func (e *Engine) executeCommandLine(cmd string, allowed AllowList) (Result, error) {
	switch cmd {
	case "w", "q", "wq":
		return handled(":" + cmd), nil
	}

	if rest, ok := strings.CutPrefix(cmd, "s/"); ok {
		search, replace, ok := parseSubstitute(rest)
		if !ok {
			return Result{}, fmt.Errorf("%w: %q", ErrInvalidCommand, cmd)
		}
		if !allowed.Allows(CmdSubstitute.String()) {
			return Result{}, notAllowed(CmdSubstitute.String())
		}
		return e.substitute(search, replace)
	}

	return Result{}, fmt.Errorf("%w: %q", ErrInvalidCommand, cmd)
}

// parseSubstitute splits "<search>/<replace>". Neither part may contain a
// slash. An empty search is refused rather than matching at column 0, so
// ":s//x" never inserts text at the start of the line.
func parseSubstitute(s string) (search, replace string, ok bool) {
	parts := strings.Split(s, "/")
	if len(parts) != 2 || parts[0] == "" {
		return "", "", false
	}
	return parts[0], parts[1], true
}

// substitute replaces the first literal occurrence of search on the
// cursor line.
func (e *Engine) substitute(search, replace string) (Result, error) {
	line := string(e.currentLine())
	if !strings.Contains(line, search) {
		return Result{}, fmt.Errorf("%w: %s", ErrNoMatch, search)
	}
	e.saveUndo()
	e.buffer.setLine(e.cursor.Row, []rune(strings.Replace(line, search, replace, 1)))
	return moved(CmdSubstitute), nil
}
