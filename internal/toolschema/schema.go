// Package toolschema declares the input schemas of the file-edit tools whose
// calls toolstatus labels. The command enums come from package toolcall so
// the declared schema and the label validator accept the same commands.
package toolschema

import (
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/toolstatus/internal/toolcall"
)

// StrReplaceEditor returns the str_replace_editor tool definition.
func StrReplaceEditor() mcp.Tool {
	return mcp.NewTool(toolcall.ToolStrReplaceEditor,
		mcp.WithDescription("View, create and edit files in the virtual file system"),
		mcp.WithString("command", mcp.Required(),
			mcp.Enum(toolcall.EditorCommands()...),
			mcp.Description("Operation to perform"),
		),
		mcp.WithString("path", mcp.Required(),
			mcp.Description("Absolute path of the file, rooted at /"),
		),
		mcp.WithString("file_text",
			mcp.Description("Content of the new file (create)"),
		),
		mcp.WithString("old_str",
			mcp.Description("Exact text to replace (str_replace)"),
		),
		mcp.WithString("new_str",
			mcp.Description("Replacement or inserted text (str_replace, insert)"),
		),
		mcp.WithNumber("insert_line",
			mcp.Description("Line after which new_str is inserted (insert)"),
		),
		mcp.WithArray("view_range",
			mcp.Description("Optional [start, end] line range (view)"),
			mcp.Items(map[string]any{"type": "number"}),
		),
	)
}

// FileManager returns the file_manager tool definition.
func FileManager() mcp.Tool {
	return mcp.NewTool(toolcall.ToolFileManager,
		mcp.WithDescription("Rename or delete files and folders in the virtual file system"),
		mcp.WithString("command", mcp.Required(),
			mcp.Enum(toolcall.FileManagerCommands()...),
			mcp.Description("Operation to perform"),
		),
		mcp.WithString("path", mcp.Required(),
			mcp.Description("Path of the file or folder"),
		),
		mcp.WithString("new_path",
			mcp.Description("Destination path (rename only)"),
		),
	)
}

// Tools returns every tool definition with a dedicated status label.
func Tools() []mcp.Tool {
	return []mcp.Tool{StrReplaceEditor(), FileManager()}
}

// JSON renders the tool definitions as indented JSON.
func JSON() ([]byte, error) {
	data, err := json.MarshalIndent(Tools(), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding tool schemas: %w", err)
	}
	return data, nil
}
