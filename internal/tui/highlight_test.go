package tui

import (
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/require"
)

func TestHighlight_PreservesText(t *testing.T) {
	source := "{\n  \"name\": \"file_manager\",\n  \"required\": [\"command\", \"path\"]\n}"

	got := Highlight(source, "tools.json")
	require.NotEqual(t, source, got, "expected escape sequences")
	require.Equal(t, source, ansi.Strip(got))
}

func TestHighlight_UnknownFile(t *testing.T) {
	got := Highlight("plain words", "notes")
	require.Equal(t, "plain words", ansi.Strip(got))
}
