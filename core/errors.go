package core

import "errors"

// Reasons a key is rejected. None of these escape ProcessKey: they only
// decide that a key was not executed and are logged at debug level.
var (
	ErrNotAllowed       = errors.New("command not allowed")
	ErrUnknownCommand   = errors.New("unknown command")
	ErrInvalidKey       = errors.New("invalid key for mode")
	ErrNoTarget         = errors.New("target character not found")
	ErrEmptyLine        = errors.New("no character under cursor")
	ErrClipboardEmpty   = errors.New("clipboard is empty")
	ErrNothingToUndo    = errors.New("already at oldest change")
	ErrNoLastFind       = errors.New("no previous find")
	ErrNoLastChange     = errors.New("no previous change")
	ErrNoEnclosingPair  = errors.New("no enclosing pair")
	ErrInvalidCommand   = errors.New("not an editor command")
	ErrNoMatch          = errors.New("pattern not found")
	ErrReentrantCall    = errors.New("engine re-entered from an observer callback")
	ErrInvalidDelimiter = errors.New("unsupported text object delimiter")
)
