package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/colorprofile"
	"github.com/mark3labs/toolstatus/internal/toolschema"
	"github.com/mark3labs/toolstatus/internal/tui"
	"github.com/spf13/cobra"
)

var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Print the tool definitions for str_replace_editor and file_manager",
	Long: `Print MCP tool definitions for the two tools toolstatus labels.

The command enums are the same lists the argument validator accepts, so a
model given these definitions only produces calls with readable labels.
Output is highlighted on a terminal and plain JSON otherwise.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		data, err := toolschema.JSON()
		if err != nil {
			return err
		}

		out := colorprofile.NewWriter(os.Stdout, os.Environ())
		if out.Profile == colorprofile.NoTTY {
			_, err = fmt.Fprintln(out, string(data))
		} else {
			_, err = fmt.Fprintln(out, tui.Highlight(string(data), "tools.json"))
		}
		if err != nil {
			return fmt.Errorf("writing schema: %w", err)
		}
		return nil
	},
}
