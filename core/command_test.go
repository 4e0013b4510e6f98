package core

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseNormal(t *testing.T) {
	tests := []struct {
		buf    string
		want   Command
		status parseStatus
	}{
		{"h", CmdLeft, parseMatched},
		{"gg", CmdBufferStart, parseMatched},
		{"dd", CmdDeleteLine, parseMatched},
		{"ci(", CmdChangeInsideParen, parseMatched},
		{`di"`, CmdDeleteInsideQuote, parseMatched},
		{":", CmdCommandLine, parseMatched},
		{"d", CmdNone, parsePartial},
		{"g", CmdNone, parsePartial},
		{"ci", CmdNone, parsePartial},
		{"di", CmdNone, parsePartial},
		{"dw", CmdNone, parseRejected},
		{"gx", CmdNone, parseRejected},
		{"ci[", CmdNone, parseRejected},
		{"z", CmdNone, parseRejected},
		{"", CmdNone, parseRejected},
	}

	for _, tt := range tests {
		t.Run(tt.buf, func(t *testing.T) {
			cmd, status := parseNormal(tt.buf)
			require.Equal(t, tt.status, status)
			require.Equal(t, tt.want, cmd)
		})
	}
}

func TestCommand_NamesRoundTrip(t *testing.T) {
	for buf, cmd := range normalCommands {
		require.Equal(t, buf, cmd.String())
	}
	require.Equal(t, ":s", CmdSubstitute.String())
	require.Empty(t, CmdNone.String())
}

func TestAllowList(t *testing.T) {
	var all AllowList
	require.True(t, all.Allows("dd"))

	empty := NewAllowList()
	require.False(t, empty.Allows("h"))

	some := NewAllowList("h", "dd")
	require.True(t, some.Allows("dd"))
	require.False(t, some.Allows("d"))
}
