package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	tea "charm.land/bubbletea/v2"
	"github.com/mark3labs/toolstatus/internal/hooks"
	"github.com/mark3labs/toolstatus/internal/logger"
	"github.com/mark3labs/toolstatus/internal/toolcall"
	"github.com/mark3labs/toolstatus/internal/tui"
	"github.com/spf13/cobra"
)

var watchFlags struct {
	file string
}

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Watch tool-call status live in a TUI",
	Long: `Open a full-screen view of a session's tool calls.

Stored records are replayed first, then new records appear as they are
published. Each call keeps its row; its indicator turns into a filled dot
once a result arrives. With --file, records are read from a file instead
of NATS.

Hooks in .toolstatus.hooks.yml run when a call first appears
(on_tool_call) and when it completes (on_tool_complete).`,
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().StringVarP(&watchFlags.file, "file", "f", "", "Read records from a file instead of NATS (- for stdin)")
}

func runWatch(cmd *cobra.Command, _ []string) error {
	ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	hookCfg, err := hooks.LoadConfig(".")
	if err != nil {
		return err
	}

	feedCh := make(chan toolcall.Invocation, 64)
	title := "toolstatus · " + cfg.Session
	var errCh chan error

	if watchFlags.file != "" {
		invs, err := readInputs([]string{watchFlags.file})
		if err != nil {
			return err
		}
		title = "toolstatus · " + watchFlags.file
		go func() {
			defer close(feedCh)
			for _, inv := range invs {
				select {
				case feedCh <- inv:
				case <-ctx.Done():
					return
				}
			}
		}()
	} else {
		store, cleanup, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer cleanup()

		errCh = make(chan error, 1)
		go func() {
			errCh <- store.Watch(ctx, cfg.Session, feedCh)
		}()
	}

	var feed <-chan toolcall.Invocation = feedCh
	if hookCfg != nil {
		feed = hooks.NewRunner(hookCfg, ".", cfg.Session).Tee(ctx, feedCh)
	}

	m := tui.NewWatchModel(title, feed)
	p := tea.NewProgram(m, tea.WithContext(ctx))
	if _, err := p.Run(); err != nil && ctx.Err() == nil {
		return fmt.Errorf("running watch view: %w", err)
	}

	cancel()
	if errCh == nil {
		return nil
	}
	if err := <-errCh; err != nil {
		logger.Warn("Watch stopped with error: %v", err)
		return err
	}
	return nil
}
