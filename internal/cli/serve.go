package cli

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/tabscope/tabscope/internal/server"
)

// Execute implements the go-flags Commander interface for ServeCommand.
func (c *ServeCommand) Execute(args []string) error {
	cfg, err := loadConfig(c.globals)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	store, db, err := openStore(cfg)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer db.Close()
	defer store.Close()

	host := cfg.Server.Host
	if c.Host != "" {
		host = c.Host
	}

	port := cfg.Server.Port
	if env := os.Getenv("PORT"); env != "" {
		if n, err := strconv.Atoi(env); err == nil {
			port = n
		}
	}
	if c.Port != 0 {
		port = c.Port
	}

	staticDir := cfg.Server.StaticDir
	if c.StaticDir != "" {
		staticDir = c.StaticDir
	}

	logger := newLogger(cfg.Logging.Level, c.globals != nil && c.globals.Verbose)

	addr := fmt.Sprintf("%s:%d", host, port)
	srv := server.New(addr, staticDir, store, logger)

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() {
		logger.Info("tabscope server listening", "addr", addr, "version", c.version)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case <-done:
	}

	logger.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(ctx)
}

// newLogger builds the process logger at the configured level; --verbose
// forces debug.
func newLogger(level string, verbose bool) *slog.Logger {
	lvl := slog.LevelInfo
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	}
	if verbose {
		lvl = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
}
