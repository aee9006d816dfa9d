package toolcall

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDecodeRecord(t *testing.T) {
	tests := []struct {
		name      string
		rec       map[string]any
		completed bool
		result    any
	}{
		{
			name: "partial call",
			rec:  map[string]any{"toolCallId": "a", "toolName": "str_replace_editor", "state": "partial-call"},
		},
		{
			name: "call",
			rec:  map[string]any{"toolCallId": "a", "toolName": "str_replace_editor", "state": "call"},
		},
		{
			name:      "result with result field",
			rec:       map[string]any{"toolCallId": "a", "toolName": "str_replace_editor", "state": "result", "result": "Success"},
			completed: true,
			result:    "Success",
		},
		{
			name:      "result with null result",
			rec:       map[string]any{"toolCallId": "a", "toolName": "str_replace_editor", "state": "result", "result": nil},
			completed: true,
		},
		{
			// The completed marker alone is not enough.
			name: "result marker without result field",
			rec:  map[string]any{"toolCallId": "a", "toolName": "str_replace_editor", "state": "result"},
		},
		{
			name: "result field with call state",
			rec:  map[string]any{"toolCallId": "a", "toolName": "str_replace_editor", "state": "call", "result": "Success"},
		},
		{
			name: "unknown state",
			rec:  map[string]any{"toolCallId": "a", "toolName": "x", "state": "done", "result": "Success"},
		},
		{
			name: "missing everything",
			rec:  map[string]any{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inv := DecodeRecord(tt.rec)
			require.Equal(t, tt.completed, inv.IsCompleted())
			if tt.completed {
				result, ok := inv.Result()
				require.True(t, ok)
				require.Equal(t, tt.result, result)
			} else {
				require.Equal(t, Pending{}, inv.Status)
			}
		})
	}
}

func TestDecodeRecordFields(t *testing.T) {
	inv := DecodeRecord(map[string]any{
		"toolCallId": "test-id",
		"toolName":   "file_manager",
		"args":       map[string]any{"command": "rename", "path": "/old.jsx", "new_path": "/new.jsx"},
		"state":      "result",
		"result":     "Success",
	})

	require.Equal(t, "test-id", inv.ID)
	require.Equal(t, "file_manager", inv.ToolName)
	require.Equal(t, "Renaming /old.jsx → /new.jsx", inv.Label())
}

func TestDecodeRecordMistypedFields(t *testing.T) {
	inv := DecodeRecord(map[string]any{"toolCallId": 7, "toolName": []any{"x"}, "state": 1})
	require.Empty(t, inv.ID)
	require.Empty(t, inv.ToolName)
	require.Empty(t, inv.Label())
	require.False(t, inv.IsCompleted())
}

func TestRecordRoundTrip(t *testing.T) {
	pending := Invocation{
		ID:       "p",
		ToolName: ToolStrReplaceEditor,
		Args:     map[string]any{"command": "view", "path": "/index.jsx"},
		Status:   Pending{},
	}
	done := Invocation{
		ID:       "d",
		ToolName: ToolFileManager,
		Args:     map[string]any{"command": "delete", "path": "/unused.jsx"},
		Status:   Completed{Result: "ok"},
	}

	for _, inv := range []Invocation{pending, done} {
		data, err := MarshalRecord(inv)
		require.NoError(t, err)

		got, err := UnmarshalRecord(data)
		require.NoError(t, err)
		require.Equal(t, inv, got)
	}

	require.Equal(t, StateCall, EncodeRecord(pending)["state"])
	require.NotContains(t, EncodeRecord(pending), "result")
	require.Equal(t, StateResult, EncodeRecord(done)["state"])
}

func TestUnmarshalRecordErrors(t *testing.T) {
	_, err := UnmarshalRecord([]byte(`{"toolName":`))
	require.Error(t, err)

	_, err = UnmarshalRecord([]byte(`null`))
	require.Error(t, err)
}

func TestReadRecords(t *testing.T) {
	jsonLines := `{"toolCallId":"1","toolName":"str_replace_editor","args":{"command":"create","path":"/App.jsx"},"state":"call"}
{"toolCallId":"2","toolName":"file_manager","args":{"command":"delete","path":"/old.jsx"},"state":"result","result":"Success"}
`
	jsonArray := `[
  {"toolCallId":"1","toolName":"str_replace_editor","args":{"command":"create","path":"/App.jsx"},"state":"call"},
  {"toolCallId":"2","toolName":"file_manager","args":{"command":"delete","path":"/old.jsx"},"state":"result","result":"Success"}
]`
	yamlStream := `toolCallId: "1"
toolName: str_replace_editor
args:
  command: create
  path: /App.jsx
state: call
---
toolCallId: "2"
toolName: file_manager
args:
  command: delete
  path: /old.jsx
state: result
result: Success
`
	yamlList := `- toolCallId: "1"
  toolName: str_replace_editor
  args: {command: create, path: /App.jsx}
  state: call
- toolCallId: "2"
  toolName: file_manager
  args: {command: delete, path: /old.jsx}
  state: result
  result: Success
`

	inputs := map[string]string{
		"json lines": jsonLines,
		"json array": jsonArray,
		"yaml":       yamlStream,
		"yaml list":  yamlList,
	}

	for name, input := range inputs {
		t.Run(name, func(t *testing.T) {
			invs, err := ReadRecords(strings.NewReader(input))
			require.NoError(t, err)
			require.Len(t, invs, 2)

			require.Equal(t, "1", invs[0].ID)
			require.Equal(t, "Creating /App.jsx", invs[0].Label())
			require.False(t, invs[0].IsCompleted())

			require.Equal(t, "2", invs[1].ID)
			require.Equal(t, "Deleting /old.jsx", invs[1].Label())
			require.True(t, invs[1].IsCompleted())
		})
	}
}

func TestReadRecordsFlowYAML(t *testing.T) {
	tests := map[string]struct {
		input string
		ids   []string
	}{
		"flow mapping": {`{toolCallId: a, toolName: file_manager, args: {command: delete, path: x}, state: call}`, []string{"a"}},
		"flow list":    {`[{toolCallId: a, toolName: web_search}, {toolCallId: b, toolName: file_manager, state: result, result: ok}]`, []string{"a", "b"}},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			invs, err := ReadRecords(strings.NewReader(tt.input))
			require.NoError(t, err)
			require.Len(t, invs, len(tt.ids))
			for i, id := range tt.ids {
				require.Equal(t, id, invs[i].ID)
			}
		})
	}

	invs, err := ReadRecords(strings.NewReader(`{toolName: file_manager, args: {command: delete, path: x}, state: result, result: done}`))
	require.NoError(t, err)
	require.Equal(t, "Deleting x", invs[0].Label())
	require.True(t, invs[0].IsCompleted())
}

func TestReadRecordsEmpty(t *testing.T) {
	invs, err := ReadRecords(strings.NewReader("  \n\t"))
	require.NoError(t, err)
	require.Empty(t, invs)
}

func TestReadRecordsErrors(t *testing.T) {
	tests := map[string]string{
		"truncated json":     `{"toolName":"x"`,
		"non-object in list": `[{"toolName":"x"}, 3]`,
		"scalar yaml":        "just a string",
		"bad yaml":           "toolName: [unclosed",
	}

	for name, input := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := ReadRecords(strings.NewReader(input))
			require.Error(t, err)
		})
	}

	_, err := ReadRecords(strings.NewReader(`{"toolName":"x"`))
	require.ErrorContains(t, err, "decoding JSON record", "JSON error is reported when YAML also fails")
}

func TestLatest(t *testing.T) {
	invs := []Invocation{
		{ID: "a", ToolName: "x", Status: Pending{}},
		{ID: "", ToolName: "anon"},
		{ID: "b", ToolName: "y", Status: Pending{}},
		{ID: "a", ToolName: "x", Status: Completed{Result: 1}},
		{ID: "", ToolName: "anon"},
	}

	got := Latest(invs)
	require.Len(t, got, 4)
	require.Equal(t, "a", got[0].ID)
	require.True(t, got[0].IsCompleted())
	require.Equal(t, "anon", got[1].ToolName)
	require.Equal(t, "b", got[2].ID)
	require.Equal(t, "anon", got[3].ToolName)

	require.Empty(t, Latest(nil))
}
