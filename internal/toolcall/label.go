package toolcall

// FormatLabel maps a tool call to the short text shown next to its status
// indicator. It never fails: when the tool is unknown or the arguments do
// not match the tool's shape, the tool name itself is returned.
func FormatLabel(toolName string, args any) string {
	switch toolName {
	case ToolStrReplaceEditor:
		if a, ok := ParseEditorArgs(args); ok {
			if label, ok := a.Label(); ok {
				return label
			}
		}
	case ToolFileManager:
		if a, ok := ParseFileManagerArgs(args); ok {
			return a.Label()
		}
	}
	return toolName
}
