package toolcall

import (
	"encoding/json"
)

// Tool names with dedicated labels. Any other tool name is shown as-is.
const (
	ToolStrReplaceEditor = "str_replace_editor"
	ToolFileManager      = "file_manager"
)

// EditorCommand is the discriminator of a str_replace_editor call.
type EditorCommand string

const (
	EditorCreate     EditorCommand = "create"
	EditorStrReplace EditorCommand = "str_replace"
	EditorInsert     EditorCommand = "insert"
	EditorView       EditorCommand = "view"
	EditorUndoEdit   EditorCommand = "undo_edit"
)

// editorCommands is the closed set accepted by ParseEditorArgs.
// EditorArgs.Label must handle every entry.
var editorCommands = []EditorCommand{
	EditorCreate,
	EditorStrReplace,
	EditorInsert,
	EditorView,
	EditorUndoEdit,
}

// EditorCommands returns the accepted str_replace_editor commands in
// declaration order.
func EditorCommands() []string {
	out := make([]string, len(editorCommands))
	for i, c := range editorCommands {
		out[i] = string(c)
	}
	return out
}

// File manager commands.
const (
	FileManagerRename = "rename"
	FileManagerDelete = "delete"
)

// FileManagerCommands returns the accepted file_manager commands.
func FileManagerCommands() []string {
	return []string{FileManagerRename, FileManagerDelete}
}

// EditorArgs are validated str_replace_editor arguments.
type EditorArgs struct {
	Command EditorCommand
	Path    string
}

// Label returns the status text for the editor command. ok is false only for
// a command outside the accepted set, which ParseEditorArgs never yields.
func (a EditorArgs) Label() (label string, ok bool) {
	switch a.Command {
	case EditorCreate:
		return "Creating " + a.Path, true
	case EditorStrReplace, EditorInsert:
		return "Editing " + a.Path, true
	case EditorView:
		return "Viewing " + a.Path, true
	case EditorUndoEdit:
		return "Undoing changes to " + a.Path, true
	}
	return "", false
}

// FileManagerArgs is one of RenameArgs or DeleteArgs.
type FileManagerArgs interface {
	// Command returns the wire command of the variant.
	Command() string
	// Label returns the status text for the operation.
	Label() string

	fileManagerArgs()
}

// RenameArgs moves Path to NewPath.
type RenameArgs struct {
	Path    string
	NewPath string
}

func (RenameArgs) Command() string { return FileManagerRename }

func (a RenameArgs) Label() string { return "Renaming " + a.Path + " → " + a.NewPath }

func (RenameArgs) fileManagerArgs() {}

// DeleteArgs removes Path.
type DeleteArgs struct {
	Path string
}

func (DeleteArgs) Command() string { return FileManagerDelete }

func (a DeleteArgs) Label() string { return "Deleting " + a.Path }

func (DeleteArgs) fileManagerArgs() {}

// IsEditorArgs reports whether v has the str_replace_editor argument shape.
func IsEditorArgs(v any) bool {
	_, ok := ParseEditorArgs(v)
	return ok
}

// ParseEditorArgs narrows v to EditorArgs. v must be an object whose
// "command" is one of EditorCommands and whose "path" is a string.
func ParseEditorArgs(v any) (EditorArgs, bool) {
	obj, ok := asObject(v)
	if !ok {
		return EditorArgs{}, false
	}

	cmd, ok := obj["command"].(string)
	if !ok || !isEditorCommand(cmd) {
		return EditorArgs{}, false
	}
	path, ok := obj["path"].(string)
	if !ok {
		return EditorArgs{}, false
	}

	return EditorArgs{Command: EditorCommand(cmd), Path: path}, true
}

// IsFileManagerArgs reports whether v has the file_manager argument shape.
func IsFileManagerArgs(v any) bool {
	_, ok := ParseFileManagerArgs(v)
	return ok
}

// ParseFileManagerArgs narrows v to RenameArgs (string "path" and
// "new_path") or DeleteArgs (string "path"). Any other command is rejected.
func ParseFileManagerArgs(v any) (FileManagerArgs, bool) {
	obj, ok := asObject(v)
	if !ok {
		return nil, false
	}

	switch obj["command"] {
	case FileManagerRename:
		path, ok := obj["path"].(string)
		if !ok {
			return nil, false
		}
		newPath, ok := obj["new_path"].(string)
		if !ok {
			return nil, false
		}
		return RenameArgs{Path: path, NewPath: newPath}, true
	case FileManagerDelete:
		path, ok := obj["path"].(string)
		if !ok {
			return nil, false
		}
		return DeleteArgs{Path: path}, true
	}

	return nil, false
}

func isEditorCommand(s string) bool {
	for _, c := range editorCommands {
		if string(c) == s {
			return true
		}
	}
	return false
}

// asObject returns v as a string-keyed object. Raw JSON is decoded first;
// nil maps, primitives, slices and undecodable bytes are not objects.
func asObject(v any) (map[string]any, bool) {
	switch t := v.(type) {
	case map[string]any:
		return t, t != nil
	case map[string]string:
		if t == nil {
			return nil, false
		}
		obj := make(map[string]any, len(t))
		for k, s := range t {
			obj[k] = s
		}
		return obj, true
	case json.RawMessage:
		return decodeObject(t)
	case []byte:
		return decodeObject(t)
	}
	return nil, false
}

func decodeObject(data []byte) (map[string]any, bool) {
	var obj map[string]any
	if err := json.Unmarshal(data, &obj); err != nil {
		return nil, false
	}
	return obj, obj != nil
}
