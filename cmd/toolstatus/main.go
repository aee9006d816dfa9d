package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/fang"
	"github.com/mark3labs/toolstatus/internal/config"
	"github.com/mark3labs/toolstatus/internal/logger"
	"github.com/mark3labs/toolstatus/internal/tui/theme"
	"github.com/spf13/cobra"
)

const (
	logoText1 = "▀█▀ █▀█ █▀█ █   █▀ ▀█▀ ▄▀█ ▀█▀ █ █ █▀"
	logoText2 = " █  █▄█ █▄█ █▄▄ ▄█  █  █▀█  █  █▄█ ▄█"
)

// Version set via ldflags during build
var version = "dev"

// cfg is loaded before every command runs.
var cfg *config.Config

var rootFlags struct {
	session  string
	dataDir  string
	natsURL  string
	logLevel string
}

func main() {
	defer func() { _ = logger.Close() }()

	if err := fang.Execute(context.Background(), rootCmd, fang.WithVersion(version)); err != nil {
		logger.Error("Command execution failed: %v", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:               "toolstatus",
	Short:             "Render and stream agent tool-call status",
	PersistentPreRunE: loadConfig,
}

// renderLogo creates the logo with gradient colors
func renderLogo() string {
	t := theme.NewCatppuccinMocha()
	line1 := theme.ApplyGradient(logoText1, t.Primary, t.Secondary)
	line2 := theme.ApplyGradient(logoText2, t.Primary, t.Secondary)
	return strings.Join([]string{line1, line2}, "\n")
}

func init() {
	rootCmd.Long = renderLogo() + `

toolstatus turns the tool calls of a coding agent into short status lines.
Calls to str_replace_editor and file_manager get readable labels such as
"Editing main.go"; anything else shows its tool name. Records can be rendered
once, streamed through embedded NATS JetStream, or watched live in a TUI.`

	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&rootFlags.session, "session", "s", "", "Session name (default: from config)")
	pf.StringVar(&rootFlags.dataDir, "data-dir", "", "Data directory for embedded NATS storage")
	pf.StringVar(&rootFlags.natsURL, "nats-url", "", "Connect to this NATS server instead of embedding one")
	pf.StringVar(&rootFlags.logLevel, "log-level", "", "Log level (debug, info, warn, error)")

	rootCmd.AddCommand(renderCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(publishCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(promptCmd)
	rootCmd.AddCommand(schemaCmd)
	rootCmd.AddCommand(configCmd)
}

// loadConfig resolves configuration and applies flag overrides on top.
func loadConfig(cmd *cobra.Command, _ []string) error {
	loaded, err := config.Load()
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("session") {
		loaded.Session = rootFlags.session
	}
	if flags.Changed("data-dir") {
		loaded.DataDir = rootFlags.dataDir
	}
	if flags.Changed("nats-url") {
		loaded.NATSURL = rootFlags.natsURL
	}
	if flags.Changed("log-level") {
		loaded.LogLevel = rootFlags.logLevel
	}

	if err := logger.Configure(loaded.LogLevel, loaded.LogFile); err != nil {
		return fmt.Errorf("configuring logger: %w", err)
	}
	logger.Debug("Config loaded: session=%s data_dir=%s nats_url=%q", loaded.Session, loaded.DataDir, loaded.NATSURL)

	cfg = loaded
	return nil
}
