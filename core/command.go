package core

// Command identifies a resolved normal-mode command.
type Command int

const (
	CmdNone Command = iota
	CmdLeft
	CmdDown
	CmdUp
	CmdRight
	CmdWordForward
	CmdWordBackward
	CmdLineStart
	CmdLineEnd
	CmdBufferStart
	CmdBufferEnd
	CmdDeleteChar
	CmdDeleteLine
	CmdYankLine
	CmdChangeWord
	CmdChangeInsideParen
	CmdChangeInsideQuote
	CmdDeleteInsideParen
	CmdDeleteInsideQuote
	CmdInsert
	CmdAppendLineEnd
	CmdOpenBelow
	CmdPaste
	CmdUndo
	CmdFindForward
	CmdFindBackward
	CmdTillForward
	CmdTillBackward
	CmdReplaceChar
	CmdRepeatFind
	CmdRepeatChange
	CmdVisual
	CmdVisualLine
	CmdCommandLine
	CmdSubstitute
)

// commandNames holds the canonical name of each command. Allow-lists and
// the command log speak this vocabulary.
var commandNames = map[Command]string{
	CmdLeft:              "h",
	CmdDown:              "j",
	CmdUp:                "k",
	CmdRight:             "l",
	CmdWordForward:       "w",
	CmdWordBackward:      "b",
	CmdLineStart:         "0",
	CmdLineEnd:           "$",
	CmdBufferStart:       "gg",
	CmdBufferEnd:         "G",
	CmdDeleteChar:        "x",
	CmdDeleteLine:        "dd",
	CmdYankLine:          "yy",
	CmdChangeWord:        "cw",
	CmdChangeInsideParen: "ci(",
	CmdChangeInsideQuote: `ci"`,
	CmdDeleteInsideParen: "di(",
	CmdDeleteInsideQuote: `di"`,
	CmdInsert:            "i",
	CmdAppendLineEnd:     "A",
	CmdOpenBelow:         "o",
	CmdPaste:             "p",
	CmdUndo:              "u",
	CmdFindForward:       "f",
	CmdFindBackward:      "F",
	CmdTillForward:       "t",
	CmdTillBackward:      "T",
	CmdReplaceChar:       "r",
	CmdRepeatFind:        ";",
	CmdRepeatChange:      ".",
	CmdVisual:            "v",
	CmdVisualLine:        "V",
	CmdCommandLine:       ":",
	CmdSubstitute:        ":s",
}

// String returns the canonical command name.
func (c Command) String() string {
	return commandNames[c]
}

// normalCommands is the complete normal-mode grammar. A command buffer
// resolves only when it equals one of these keys exactly.
var normalCommands = map[string]Command{
	"h":   CmdLeft,
	"j":   CmdDown,
	"k":   CmdUp,
	"l":   CmdRight,
	"w":   CmdWordForward,
	"b":   CmdWordBackward,
	"0":   CmdLineStart,
	"$":   CmdLineEnd,
	"gg":  CmdBufferStart,
	"G":   CmdBufferEnd,
	"x":   CmdDeleteChar,
	"dd":  CmdDeleteLine,
	"yy":  CmdYankLine,
	"cw":  CmdChangeWord,
	"ci(": CmdChangeInsideParen,
	`ci"`: CmdChangeInsideQuote,
	"di(": CmdDeleteInsideParen,
	`di"`: CmdDeleteInsideQuote,
	"i":   CmdInsert,
	"A":   CmdAppendLineEnd,
	"o":   CmdOpenBelow,
	"p":   CmdPaste,
	"u":   CmdUndo,
	"f":   CmdFindForward,
	"F":   CmdFindBackward,
	"t":   CmdTillForward,
	"T":   CmdTillBackward,
	"r":   CmdReplaceChar,
	";":   CmdRepeatFind,
	".":   CmdRepeatChange,
	"v":   CmdVisual,
	"V":   CmdVisualLine,
	":":   CmdCommandLine,
}

// normalPrefixes are buffers that cannot resolve yet but may with more keys.
var normalPrefixes = map[string]struct{}{
	"d":  {},
	"g":  {},
	"y":  {},
	"c":  {},
	"ci": {},
	"di": {},
}

type parseStatus int

const (
	parseRejected parseStatus = iota
	parsePartial
	parseMatched
)

// parseNormal resolves an accumulated command buffer.
func parseNormal(buf string) (Command, parseStatus) {
	if cmd, ok := normalCommands[buf]; ok {
		return cmd, parseMatched
	}
	if _, ok := normalPrefixes[buf]; ok {
		return CmdNone, parsePartial
	}
	return CmdNone, parseRejected
}

// AllowList restricts which canonical command names may execute. A nil
// AllowList allows every command.
type AllowList map[string]struct{}

func NewAllowList(names ...string) AllowList {
	a := make(AllowList, len(names))
	for _, n := range names {
		a[n] = struct{}{}
	}
	return a
}

// Allows reports whether name may execute.
func (a AllowList) Allows(name string) bool {
	if a == nil {
		return true
	}
	_, ok := a[name]
	return ok
}
