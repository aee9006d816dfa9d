package main

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/mark3labs/toolstatus/internal/feed"
	"github.com/nats-io/nats-server/v2/server"
	"github.com/spf13/cobra"
)

var serveFlags struct {
	port int
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run an embedded NATS server for publish and watch",
	Long: `Run the embedded NATS JetStream server with a network listener so that
publish and watch in other processes can share one record log. Point them at
it with --nats-url or TOOLSTATUS_NATS_URL.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().IntVarP(&serveFlags.port, "port", "p", server.DEFAULT_PORT, "Port to listen on (0 picks a free port)")
}

func runServe(cmd *cobra.Command, _ []string) error {
	port := serveFlags.port
	if !cmd.Flags().Changed("port") && cfg.Port >= 0 {
		port = cfg.Port
	}

	ns, err := feed.StartEmbedded(filepath.Join(cfg.DataDir, "nats"), port)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "NATS listening on %s (Ctrl+C to stop)\n", ns.ClientURL())

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	select {
	case <-sigChan:
	case <-cmd.Context().Done():
	}

	return feed.Shutdown(nil, ns)
}
