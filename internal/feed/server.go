package feed

import (
	"errors"
	"fmt"
	"time"

	"github.com/mark3labs/toolstatus/internal/logger"
	"github.com/nats-io/nats-server/v2/server"
	"github.com/nats-io/nats.go"
)

// StartEmbedded starts an embedded NATS server with JetStream enabled,
// storing streams under dataDir. A negative port disables the network
// listener so only in-process clients can connect; zero picks a free port.
func StartEmbedded(dataDir string, port int) (*server.Server, error) {
	logger.Debug("Starting embedded NATS server with data dir: %s", dataDir)

	opts := &server.Options{
		ServerName: "toolstatus",
		JetStream:  true,
		StoreDir:   dataDir,
		NoSigs:     true,
	}
	switch {
	case port < 0:
		opts.DontListen = true
	case port == 0:
		opts.Host = "127.0.0.1"
		opts.Port = server.RANDOM_PORT
	default:
		opts.Host = "127.0.0.1"
		opts.Port = port
	}

	ns, err := server.NewServer(opts)
	if err != nil {
		logger.Error("Failed to create NATS server: %v", err)
		return nil, fmt.Errorf("creating nats server: %w", err)
	}

	go ns.Start()

	if !ns.ReadyForConnections(4 * time.Second) {
		logger.Error("NATS server failed to start within 4s timeout")
		ns.Shutdown()
		return nil, errors.New("nats server failed to start within timeout")
	}

	if !opts.DontListen {
		logger.Info("NATS server listening on %s", ns.ClientURL())
	}
	return ns, nil
}

// ConnectInProcess creates an in-process connection to the embedded NATS server.
func ConnectInProcess(ns *server.Server) (*nats.Conn, error) {
	logger.Debug("Connecting to NATS server in-process")
	conn, err := nats.Connect("", nats.InProcessServer(ns), nats.Name("toolstatus"))
	if err != nil {
		logger.Error("Failed to connect to NATS in-process: %v", err)
		return nil, fmt.Errorf("connecting in-process: %w", err)
	}
	return conn, nil
}

// Connect dials a NATS server by URL.
func Connect(url string) (*nats.Conn, error) {
	logger.Debug("Connecting to NATS at %s", url)
	conn, err := nats.Connect(url,
		nats.Name("toolstatus"),
		nats.Timeout(4*time.Second),
	)
	if err != nil {
		logger.Error("Failed to connect to NATS at %s: %v", url, err)
		return nil, fmt.Errorf("connecting to %s: %w", url, err)
	}
	return conn, nil
}

// Shutdown drains and closes nc, then stops ns. Either may be nil.
// Draining is bounded at 2s and server shutdown at 5s.
func Shutdown(nc *nats.Conn, ns *server.Server) error {
	if nc != nil {
		drainDone := make(chan error, 1)
		go func() {
			drainDone <- nc.Drain()
		}()

		select {
		case err := <-drainDone:
			if err != nil {
				logger.Warn("NATS drain failed, forcing close: %v", err)
				nc.Close()
			}
		case <-time.After(2 * time.Second):
			logger.Warn("NATS drain timed out after 2s, forcing close")
			nc.Close()
		}
	}

	if ns != nil {
		ns.Shutdown()

		shutdownDone := make(chan struct{})
		go func() {
			ns.WaitForShutdown()
			close(shutdownDone)
		}()

		select {
		case <-shutdownDone:
		case <-time.After(5 * time.Second):
			logger.Error("NATS server shutdown timed out after 5s")
			return errors.New("nats server shutdown timed out")
		}
	}

	logger.Debug("NATS shutdown complete")
	return nil
}
