package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/colorprofile"
	"github.com/mark3labs/toolstatus/internal/toolcall"
	"github.com/mark3labs/toolstatus/internal/tui"
	"github.com/spf13/cobra"
)

var renderFlags struct {
	latest bool
	width  int
}

var renderCmd = &cobra.Command{
	Use:   "render [file...]",
	Short: "Print a status line for each tool-call record",
	Long: `Read tool-call records and print one status line per record.

Records are read from the given files, or stdin when none are given, as a
JSON array, JSON lines, or a YAML stream. Completed calls show a filled dot;
pending calls show a spinner frame.`,
	RunE: runRender,
}

func init() {
	renderCmd.Flags().BoolVar(&renderFlags.latest, "latest", false, "Show only the latest record for each call ID")
	renderCmd.Flags().IntVarP(&renderFlags.width, "width", "w", 0, "Truncate lines to this width (default: from config, 0=off)")
}

func runRender(cmd *cobra.Command, args []string) error {
	invs, err := readInputs(args)
	if err != nil {
		return err
	}

	if renderFlags.latest {
		invs = toolcall.Latest(invs)
	}

	width := cfg.Width
	if cmd.Flags().Changed("width") {
		width = renderFlags.width
	}

	line := tui.NewStatusLine()
	line.SetWidth(width)

	out := colorprofile.NewWriter(os.Stdout, os.Environ())
	for _, inv := range invs {
		if _, err := fmt.Fprintln(out, line.Render(inv)); err != nil {
			return fmt.Errorf("writing output: %w", err)
		}
	}
	return nil
}

// readInputs reads records from each path in order, or from stdin when
// paths is empty. "-" also means stdin.
func readInputs(paths []string) ([]toolcall.Invocation, error) {
	if len(paths) == 0 {
		paths = []string{"-"}
	}

	var all []toolcall.Invocation
	for _, path := range paths {
		invs, err := readInput(path)
		if err != nil {
			return nil, err
		}
		all = append(all, invs...)
	}
	return all, nil
}

func readInput(path string) ([]toolcall.Invocation, error) {
	var r io.Reader = os.Stdin
	name := "stdin"
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("opening records: %w", err)
		}
		defer func() { _ = f.Close() }()
		r = f
		name = path
	}

	invs, err := toolcall.ReadRecords(r)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", name, err)
	}
	return invs, nil
}
