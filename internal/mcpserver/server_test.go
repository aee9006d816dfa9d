package mcpserver

import (
	"context"
	"strconv"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/toolstatus/internal/feed"
	"github.com/nats-io/nats.go/jetstream"
	"github.com/stretchr/testify/require"
)

// setupTestServer creates a server backed by an embedded NATS store
func setupTestServer(t *testing.T) *Server {
	t.Helper()

	ns, err := feed.StartEmbedded(t.TempDir(), -1)
	require.NoError(t, err)

	nc, err := feed.ConnectInProcess(ns)
	require.NoError(t, err)
	t.Cleanup(func() { _ = feed.Shutdown(nc, ns) })

	js, err := jetstream.New(nc)
	require.NoError(t, err)

	store, err := feed.NewStore(context.Background(), js)
	require.NoError(t, err)

	return New(store, "test-session")
}

func callRequest(name string, args map[string]any) mcp.CallToolRequest {
	return mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Name:      name,
			Arguments: args,
		},
	}
}

// extractText extracts text from CallToolResult.Content[0]
func extractText(result *mcp.CallToolResult) string {
	if len(result.Content) == 0 {
		return ""
	}
	if textContent, ok := result.Content[0].(mcp.TextContent); ok {
		return textContent.Text
	}
	return ""
}

func TestHandleFormatLabel(t *testing.T) {
	srv := New(nil, "test-session")

	tests := []struct {
		name     string
		args     map[string]any
		expected string
	}{
		{
			name: "editor create",
			args: map[string]any{
				"tool_name": "str_replace_editor",
				"args":      map[string]any{"command": "create", "path": "main.go"},
			},
			expected: "Creating main.go",
		},
		{
			name: "file manager rename",
			args: map[string]any{
				"tool_name": "file_manager",
				"args":      map[string]any{"command": "rename", "path": "a", "new_path": "b"},
			},
			expected: "Renaming a → b",
		},
		{
			name:     "unknown tool falls back",
			args:     map[string]any{"tool_name": "web_search"},
			expected: "web_search",
		},
		{
			name:     "missing tool name",
			args:     map[string]any{},
			expected: "error: missing 'tool_name' parameter",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := srv.handleFormatLabel(context.Background(), callRequest("format-label", tt.args))
			require.NoError(t, err)
			require.Equal(t, tt.expected, extractText(result))
		})
	}
}

func TestHandleReportAndList(t *testing.T) {
	srv := setupTestServer(t)
	ctx := context.Background()

	result, err := srv.handleListToolCalls(ctx, callRequest("list-tool-calls", nil))
	require.NoError(t, err)
	require.Equal(t, "No tool calls recorded", extractText(result))

	result, err = srv.handleReportToolCall(ctx, callRequest("report-tool-call", map[string]any{
		"toolCallId": "call-1",
		"toolName":   "str_replace_editor",
		"args":       map[string]any{"command": "view", "path": "go.mod"},
		"state":      "call",
	}))
	require.NoError(t, err)
	require.Equal(t, "pending call-1: Viewing go.mod", extractText(result))

	result, err = srv.handleReportToolCall(ctx, callRequest("report-tool-call", map[string]any{
		"toolName": "web_search",
		"state":    "call",
	}))
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(extractText(result), "pending "))

	result, err = srv.handleReportToolCall(ctx, callRequest("report-tool-call", map[string]any{
		"toolCallId": "call-1",
		"toolName":   "str_replace_editor",
		"args":       map[string]any{"command": "view", "path": "go.mod"},
		"state":      "result",
		"result":     "module example",
	}))
	require.NoError(t, err)
	require.Equal(t, "completed call-1: Viewing go.mod", extractText(result))

	result, err = srv.handleListToolCalls(ctx, callRequest("list-tool-calls", nil))
	require.NoError(t, err)
	require.Equal(t, "[completed] Viewing go.mod\n[pending] web_search", extractText(result))
}

func TestReportToolCallSchema(t *testing.T) {
	srv := New(nil, "test-session")

	tool := srv.mcpServer.GetTool("report-tool-call")
	require.NotNil(t, tool)

	schema := tool.Tool.InputSchema
	for _, prop := range []string{"toolCallId", "toolName", "args", "state", "result"} {
		require.Contains(t, schema.Properties, prop)
	}
	require.ElementsMatch(t, []string{"toolName", "state"}, schema.Required)

	result, ok := schema.Properties["result"].(map[string]any)
	require.True(t, ok)
	require.NotContains(t, result, "type", "result accepts any JSON value")
}

func TestHandleReportToolCall_ResultStateWithoutResult(t *testing.T) {
	srv := setupTestServer(t)

	result, err := srv.handleReportToolCall(context.Background(), callRequest("report-tool-call", map[string]any{
		"toolCallId": "call-2",
		"toolName":   "file_manager",
		"args":       map[string]any{"command": "delete", "path": "x"},
		"state":      "result",
	}))
	require.NoError(t, err)
	require.Equal(t, "pending call-2: Deleting x", extractText(result))
}

func TestHandleReportToolCall_Validation(t *testing.T) {
	srv := New(nil, "test-session")
	ctx := context.Background()

	result, err := srv.handleReportToolCall(ctx, callRequest("report-tool-call", nil))
	require.NoError(t, err)
	require.Equal(t, "error: no arguments provided", extractText(result))

	result, err = srv.handleReportToolCall(ctx, callRequest("report-tool-call", map[string]any{"state": "call"}))
	require.NoError(t, err)
	require.Equal(t, "error: missing 'toolName' parameter", extractText(result))

	result, err = srv.handleReportToolCall(ctx, callRequest("report-tool-call", map[string]any{"toolName": "x"}))
	require.NoError(t, err)
	require.Equal(t, "error: no record store configured", extractText(result))
}

func TestServer_StartStop(t *testing.T) {
	srv := New(nil, "test-session")

	port, err := srv.Start(context.Background(), 0)
	require.NoError(t, err)
	require.Positive(t, port)
	require.Equal(t, "http://localhost:"+strconv.Itoa(port)+"/mcp", srv.URL())

	_, err = srv.Start(context.Background(), 0)
	require.Error(t, err, "second start fails")

	require.NoError(t, srv.Stop())
	require.NoError(t, srv.Stop(), "stop is idempotent")
}
