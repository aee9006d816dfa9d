package mcpserver

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/toolstatus/internal/toolcall"
)

func (s *Server) registerTools() {
	s.mcpServer.AddTool(
		mcp.NewTool("format-label",
			mcp.WithDescription("Return the human-readable status label for a tool call"),
			mcp.WithString("tool_name", mcp.Required(),
				mcp.Description("Name of the tool that was called")),
			mcp.WithObject("args",
				mcp.Description("Arguments the tool was called with")),
		),
		s.handleFormatLabel,
	)

	s.mcpServer.AddTool(
		mcp.NewTool("report-tool-call",
			mcp.WithDescription("Record a tool call or its result so watchers can show its status. "+
				"Send state \"result\" together with a result value once the call has finished."),
			mcp.WithString("toolCallId",
				mcp.Description("Call ID; reports with the same ID update one entry (generated when empty)")),
			mcp.WithString("toolName", mcp.Required(),
				mcp.Description("Name of the tool that was called")),
			mcp.WithObject("args",
				mcp.Description("Arguments the tool was called with")),
			mcp.WithString("state", mcp.Required(),
				mcp.Enum(toolcall.StatePartialCall, toolcall.StateCall, toolcall.StateResult),
				mcp.Description("Lifecycle state of the call")),
			mcp.WithAny("result",
				mcp.Description("Value the tool returned; the call shows as completed only when state is \"result\" and this is set")),
		),
		s.handleReportToolCall,
	)

	s.mcpServer.AddTool(
		mcp.NewTool("list-tool-calls",
			mcp.WithDescription("List the latest status of every tool call in the session"),
		),
		s.handleListToolCalls,
	)
}

// handleFormatLabel returns the label for a tool name and its arguments.
func (s *Server) handleFormatLabel(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.GetArguments()
	if args == nil {
		return mcp.NewToolResultText("error: no arguments provided"), nil
	}

	name, ok := args["tool_name"].(string)
	if !ok || name == "" {
		return mcp.NewToolResultText("error: missing 'tool_name' parameter"), nil
	}

	return mcp.NewToolResultText(toolcall.FormatLabel(name, args["args"])), nil
}

// handleReportToolCall publishes a wire record built from the request.
func (s *Server) handleReportToolCall(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.GetArguments()
	if args == nil {
		return mcp.NewToolResultText("error: no arguments provided"), nil
	}
	if name, ok := args["toolName"].(string); !ok || name == "" {
		return mcp.NewToolResultText("error: missing 'toolName' parameter"), nil
	}
	if s.store == nil {
		return mcp.NewToolResultText("error: no record store configured"), nil
	}

	inv, err := s.store.Publish(ctx, s.sessName, toolcall.DecodeRecord(args))
	if err != nil {
		return mcp.NewToolResultText(fmt.Sprintf("error: %v", err)), nil
	}

	return mcp.NewToolResultText(fmt.Sprintf("%s %s: %s", statusWord(inv), inv.ID, inv.Label())), nil
}

// handleListToolCalls lists the session's calls, one per line.
func (s *Server) handleListToolCalls(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if s.store == nil {
		return mcp.NewToolResultText("error: no record store configured"), nil
	}

	invs, err := s.store.Load(ctx, s.sessName)
	if err != nil {
		return mcp.NewToolResultText(fmt.Sprintf("error: %v", err)), nil
	}

	invs = toolcall.Latest(invs)
	if len(invs) == 0 {
		return mcp.NewToolResultText("No tool calls recorded"), nil
	}

	lines := make([]string, 0, len(invs))
	for _, inv := range invs {
		lines = append(lines, fmt.Sprintf("[%s] %s", statusWord(inv), inv.Label()))
	}
	return mcp.NewToolResultText(strings.Join(lines, "\n")), nil
}

func statusWord(inv toolcall.Invocation) string {
	if inv.IsCompleted() {
		return "completed"
	}
	return "pending"
}
