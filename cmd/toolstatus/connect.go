package main

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/mark3labs/toolstatus/internal/feed"
	"github.com/nats-io/nats-server/v2/server"
	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
)

// openStore connects to the configured NATS server, or embeds one backed by
// the data directory when no URL is set. The returned cleanup closes both.
func openStore(ctx context.Context) (*feed.Store, func(), error) {
	var (
		nc  *nats.Conn
		ns  *server.Server
		err error
	)

	if cfg.NATSURL != "" {
		nc, err = feed.Connect(cfg.NATSURL)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to connect to NATS (is toolstatus serve running?): %w", err)
		}
	} else {
		ns, err = feed.StartEmbedded(filepath.Join(cfg.DataDir, "nats"), -1)
		if err != nil {
			return nil, nil, err
		}
		nc, err = feed.ConnectInProcess(ns)
		if err != nil {
			_ = feed.Shutdown(nil, ns)
			return nil, nil, err
		}
	}

	cleanup := func() { _ = feed.Shutdown(nc, ns) }

	js, err := jetstream.New(nc)
	if err != nil {
		cleanup()
		return nil, nil, fmt.Errorf("failed to create JetStream context: %w", err)
	}

	setupCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	store, err := feed.NewStore(setupCtx, js)
	if err != nil {
		cleanup()
		return nil, nil, err
	}
	return store, cleanup, nil
}
