// Package template holds the system prompt used by the code-generation
// feature whose file-edit tool calls toolstatus renders.
package template

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"charm.land/glamour/v2"
	"github.com/aymanbagabas/go-udiff"
	"github.com/mark3labs/toolstatus/internal/logger"
)

// GenerationPrompt is the built-in generation system prompt. It is handed
// to the generation pipeline verbatim.
//
//go:embed prompts/generation.md
var GenerationPrompt string

// builtinLabel names the built-in prompt in diffs.
const builtinLabel = "builtin:generation"

// LoadFromFile loads a prompt from a file.
// If the file doesn't exist or can't be read, returns an error.
func LoadFromFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read prompt file %s: %w", path, err)
	}
	return string(data), nil
}

// Get returns the prompt content.
// If customPath is non-empty, loads from that file.
// Otherwise returns the built-in prompt.
func Get(customPath string) (string, error) {
	if customPath == "" {
		return GenerationPrompt, nil
	}
	logger.Debug("Using custom prompt: %s", customPath)
	return LoadFromFile(customPath)
}

// Seed writes the built-in prompt to path unless the file already exists,
// so an override can be edited starting from the shipped text.
func Seed(path string) (created bool, err error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0644)
	if err != nil {
		if os.IsExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("creating prompt file %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	if _, err := f.WriteString(GenerationPrompt); err != nil {
		return false, fmt.Errorf("writing prompt file %s: %w", path, err)
	}
	return true, nil
}

// Diff returns a unified diff from the built-in prompt to custom, or an
// empty string when they are identical.
func Diff(customPath, custom string) string {
	return udiff.Unified(builtinLabel, customPath, GenerationPrompt, custom)
}

// RenderMarkdown renders the prompt as terminal markdown using glamour.
// Falls back to the raw text if rendering fails.
func RenderMarkdown(content string, width int) string {
	if width <= 0 || width > 120 {
		width = 120
	}

	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("dark"),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		logger.Warn("Markdown renderer unavailable: %v", err)
		return content
	}

	rendered, err := r.Render(content)
	if err != nil {
		logger.Warn("Markdown render failed: %v", err)
		return content
	}

	return strings.TrimSuffix(rendered, "\n")
}
