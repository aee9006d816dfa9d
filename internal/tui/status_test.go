package tui

import (
	"strings"
	"testing"

	"charm.land/bubbles/v2/spinner"
	"github.com/charmbracelet/x/ansi"
	"github.com/mark3labs/toolstatus/internal/toolcall"
	"github.com/stretchr/testify/require"
)

func editorInvocation(status toolcall.Status) toolcall.Invocation {
	return toolcall.Invocation{
		ID:       "call-1",
		ToolName: toolcall.ToolStrReplaceEditor,
		Args:     map[string]any{"command": "create", "path": "a.txt"},
		Status:   status,
	}
}

func TestRenderStatus(t *testing.T) {
	tests := []struct {
		name     string
		inv      toolcall.Invocation
		frame    string
		expected string
	}{
		{
			name:     "pending uses given frame",
			inv:      editorInvocation(toolcall.Pending{}),
			frame:    "*",
			expected: "* Creating a.txt",
		},
		{
			name:     "pending defaults to first spinner frame",
			inv:      editorInvocation(toolcall.Pending{}),
			expected: spinner.MiniDot.Frames[0] + " Creating a.txt",
		},
		{
			name:     "nil status is pending",
			inv:      editorInvocation(nil),
			frame:    "*",
			expected: "* Creating a.txt",
		},
		{
			name:     "completed shows dot",
			inv:      editorInvocation(toolcall.Completed{Result: "ok"}),
			frame:    "*",
			expected: IndicatorCompleted + " Creating a.txt",
		},
		{
			name: "unknown tool shows raw name",
			inv: toolcall.Invocation{
				ToolName: "web_search",
				Args:     map[string]any{"query": "go"},
				Status:   toolcall.Completed{},
			},
			expected: IndicatorCompleted + " web_search",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.expected, ansi.Strip(RenderStatus(tt.inv, tt.frame)))
		})
	}
}

func TestRenderStatus_SameLabelBothStates(t *testing.T) {
	pending := ansi.Strip(RenderStatus(editorInvocation(toolcall.Pending{}), "x"))
	done := ansi.Strip(RenderStatus(editorInvocation(toolcall.Completed{Result: 1}), "x"))

	_, pendingLabel, _ := strings.Cut(pending, " ")
	_, doneLabel, _ := strings.Cut(done, " ")
	require.Equal(t, pendingLabel, doneLabel)
}

func TestStatusLine_Animates(t *testing.T) {
	line := NewStatusLine()
	inv := editorInvocation(toolcall.Pending{})

	first := ansi.Strip(line.Render(inv))
	require.Equal(t, spinner.MiniDot.Frames[0]+" Creating a.txt", first)

	cmd := line.Init()
	require.NotNil(t, cmd, "Init should start the spinner")

	next := line.Update(cmd())
	require.NotNil(t, next, "a tick should schedule the next tick")
	require.Equal(t, spinner.MiniDot.Frames[1]+" Creating a.txt", ansi.Strip(line.Render(inv)))
}

func TestStatusLine_CompletedIgnoresSpinner(t *testing.T) {
	line := NewStatusLine()
	line.Update(line.Init()())

	got := ansi.Strip(line.Render(editorInvocation(toolcall.Completed{Result: "ok"})))
	require.Equal(t, IndicatorCompleted+" Creating a.txt", got)
}

func TestStatusLine_Truncates(t *testing.T) {
	line := NewStatusLine()
	line.SetWidth(8)

	got := ansi.Strip(line.Render(editorInvocation(toolcall.Completed{})))
	require.LessOrEqual(t, ansi.StringWidth(got), 8)
	require.True(t, strings.HasSuffix(got, "…"), "got %q", got)

	line.SetWidth(0)
	require.Equal(t, IndicatorCompleted+" Creating a.txt", ansi.Strip(line.Render(editorInvocation(toolcall.Completed{}))))
}
