package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rpggio/swipecount/internal/app"
	"github.com/rpggio/swipecount/internal/config"
	"github.com/rpggio/swipecount/internal/logging"
	"github.com/rpggio/swipecount/internal/mcp"
	"github.com/rpggio/swipecount/internal/observability"
	"github.com/rpggio/swipecount/internal/transport"
)

var version = "0.1.0"

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}

	// Use stderr for logs in stdio mode to keep stdout clean for JSON-RPC.
	console := io.Writer(os.Stdout)
	if cfg.Transport.Mode == config.TransportStdio {
		console = os.Stderr
	}
	logger, logCloser, err := logging.New(cfg.Log, console)
	if err != nil {
		fmt.Fprintf(os.Stderr, "log file error: %v\n", err)
	}
	defer logCloser.Close()

	a, err := app.Open(context.Background(), cfg, logger, app.Options{})
	if err != nil {
		logger.Error("failed to open counter store", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := a.Close(); err != nil {
			logger.Error("close failed", "error", err)
		}
	}()

	mcpServer := mcp.NewServer(mcp.Config{
		Handler:       a.Handler,
		TransportMode: cfg.Transport.Mode,
		Version:       version,
		Logger:        logger,
	})

	if cfg.Transport.Mode == config.TransportStdio {
		err = runStdioMode(logger, mcpServer)
	} else {
		err = runHTTPMode(logger, a, mcpServer, cfg.Addr())
	}
	if err != nil {
		logger.Error("server error", "error", err)
	}
}

func runStdioMode(logger *slog.Logger, mcpServer *sdkmcp.Server) error {
	logger.Info("starting stdio transport")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Run blocks until stdin closes or context is canceled
	if err := mcpServer.Run(ctx, &sdkmcp.StdioTransport{}); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("stdio server: %w", err)
	}
	logger.Info("shutting down")
	return nil
}

func runHTTPMode(logger *slog.Logger, a *app.App, mcpServer *sdkmcp.Server, addr string) error {
	mcpHandler := sdkmcp.NewStreamableHTTPHandler(
		func(r *http.Request) *sdkmcp.Server { return mcpServer },
		&sdkmcp.StreamableHTTPOptions{
			Stateless:      false,
			SessionTimeout: 30 * time.Minute,
		},
	)

	router := transport.NewServer(a.Handler, transport.Options{
		MCP:     mcpHandler,
		Metrics: observability.Handler(),
		Logger:  logger,
	})

	httpServer := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", "addr", addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	return waitForShutdown(logger, httpServer, errCh)
}

func waitForShutdown(logger *slog.Logger, server *http.Server, errCh <-chan error) error {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(stop)

	select {
	case err := <-errCh:
		return err
	case <-stop:
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	logger.Info("shutting down")
	return server.Shutdown(ctx)
}
