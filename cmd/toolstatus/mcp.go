package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/mark3labs/toolstatus/internal/mcpserver"
	"github.com/spf13/cobra"
)

var mcpFlags struct {
	http bool
	port int
}

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Serve tool-call labelling and reporting over MCP",
	Long: `Run an MCP server with three tools:

  format-label      label for a tool name and its arguments
  report-tool-call  record a call or its result in the session
  list-tool-calls   latest status of every call in the session

Serves on stdio by default, or over streamable HTTP with --http.`,
	RunE: runMCP,
}

func init() {
	mcpCmd.Flags().BoolVar(&mcpFlags.http, "http", false, "Serve over HTTP instead of stdio")
	mcpCmd.Flags().IntVarP(&mcpFlags.port, "port", "p", 0, "HTTP port (0 picks a free port)")
	rootCmd.AddCommand(mcpCmd)
}

func runMCP(cmd *cobra.Command, _ []string) error {
	store, cleanup, err := openStore(cmd.Context())
	if err != nil {
		return err
	}
	defer cleanup()

	srv := mcpserver.New(store, cfg.Session)
	if !mcpFlags.http {
		return srv.ServeStdio()
	}

	if _, err := srv.Start(cmd.Context(), mcpFlags.port); err != nil {
		return err
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "MCP server listening on %s (Ctrl+C to stop)\n", srv.URL())

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	select {
	case <-sigChan:
	case <-cmd.Context().Done():
	}
	return srv.Stop()
}
