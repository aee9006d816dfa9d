package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/colorprofile"
	"github.com/charmbracelet/x/editor"
	"github.com/mark3labs/toolstatus/internal/logger"
	"github.com/mark3labs/toolstatus/internal/template"
	"github.com/spf13/cobra"
)

var promptFlags struct {
	file   string
	pretty bool
	diff   bool
	edit   bool
}

var promptCmd = &cobra.Command{
	Use:   "prompt",
	Short: "Print the generation system prompt",
	Long: `Print the generation system prompt exactly as it is handed to the model.

With a prompt override configured (--file or prompt_file), the override is
printed instead. --pretty renders it as terminal markdown, --diff shows how an
override differs from the built-in text, and --edit opens the override in
$EDITOR, creating it from the built-in text first.`,
	RunE: runPrompt,
}

func init() {
	promptCmd.Flags().StringVarP(&promptFlags.file, "file", "f", "", "Prompt override file (default: from config)")
	promptCmd.Flags().BoolVar(&promptFlags.pretty, "pretty", false, "Render as terminal markdown")
	promptCmd.Flags().BoolVar(&promptFlags.diff, "diff", false, "Show a unified diff of the override against the built-in prompt")
	promptCmd.Flags().BoolVar(&promptFlags.edit, "edit", false, "Open the override in $EDITOR")
	promptCmd.MarkFlagsMutuallyExclusive("pretty", "diff", "edit")
}

func runPrompt(cmd *cobra.Command, _ []string) error {
	path := cfg.PromptFile
	if promptFlags.file != "" {
		path = promptFlags.file
	}

	if promptFlags.edit {
		if path == "" {
			path = filepath.Join(cfg.DataDir, "generation.md")
		}
		return editPrompt(cmd.OutOrStdout(), path)
	}

	content, err := template.Get(path)
	if err != nil {
		return err
	}

	switch {
	case promptFlags.diff:
		if path == "" {
			return fmt.Errorf("--diff needs a prompt override (--file or prompt_file)")
		}
		diff := template.Diff(path, content)
		if diff == "" {
			fmt.Fprintln(cmd.ErrOrStderr(), "Override matches the built-in prompt")
			return nil
		}
		_, err = io.WriteString(cmd.OutOrStdout(), diff)
	case promptFlags.pretty:
		out := colorprofile.NewWriter(os.Stdout, os.Environ())
		_, err = fmt.Fprintln(out, template.RenderMarkdown(content, cfg.Width))
	default:
		// Verbatim: no trailing newline is added.
		_, err = io.WriteString(cmd.OutOrStdout(), content)
	}
	if err != nil {
		return fmt.Errorf("writing prompt: %w", err)
	}
	return nil
}

// editPrompt seeds path with the built-in prompt if needed and opens it in
// the user's editor.
func editPrompt(w io.Writer, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create prompt directory: %w", err)
	}

	created, err := template.Seed(path)
	if err != nil {
		return err
	}
	if created {
		logger.Info("Seeded prompt override at %s", path)
	}

	c, err := editor.Command("toolstatus", path)
	if err != nil {
		return fmt.Errorf("failed to prepare editor: %w", err)
	}
	c.Stdin = os.Stdin
	c.Stdout = os.Stdout
	c.Stderr = os.Stderr
	if err := c.Run(); err != nil {
		return fmt.Errorf("editor exited with error: %w", err)
	}

	fmt.Fprintf(w, "Prompt override saved to %s\n", path)
	if cfg.PromptFile != path {
		fmt.Fprintf(w, "Use it with --file %s or set prompt_file in toolstatus.yml\n", path)
	}
	return nil
}
