// Package main runs the fee model service: JSON endpoints for scenario,
// sweep, and break-even computations, the live recompute WebSocket session,
// and Prometheus metrics.
package main

import (
	"context"
	"errors"
	"flag"
	"io/fs"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"redemption-fee-lab/internal/api"
	"redemption-fee-lab/internal/config"
)

// version is stamped at build time via -ldflags "-X main.version=...".
var version = "dev"

func main() {
	// .env feeds the flag defaults below; a missing file is fine.
	if err := config.LoadEnv(".env"); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Printf("load .env: %v", err)
	}

	// Parse flags (env vars as defaults)
	configPath := flag.String("config", envOr("CONFIG_PATH", "config.yaml"), "Path to YAML configuration")
	addr := flag.String("addr", os.Getenv("SERVER_ADDR"), "Listen address (overrides config)")
	flag.Parse()

	logger := log.New(os.Stdout, "[server] ", log.LstdFlags|log.Lshortfile)

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Fatalf("Failed to load config: %v", err)
	}
	if *addr != "" {
		cfg.Server.Addr = *addr
	}

	server := api.NewServer(api.Options{
		Bounds:         cfg.ParameterBounds(),
		Defaults:       cfg.DefaultParameters(),
		SweepRange:     cfg.SweepRange(),
		AllowedOrigins: cfg.Server.AllowedOrigins,
		Version:        version,
		Logger:         logger,
	})

	httpServer := &http.Server{
		Addr:        cfg.Server.Addr,
		Handler:     server.Router(),
		ReadTimeout: 15 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Printf("Listening on %s", cfg.Server.Addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	// Handle shutdown signals
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		logger.Fatalf("Server error: %v", err)
	case sig := <-sigCh:
		logger.Printf("Received signal %v, initiating graceful shutdown...", sig)
	}

	// Shutdown drains plain HTTP requests but does not track hijacked live
	// sessions; Close after the drain window ends those.
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(ctx); err != nil {
		logger.Printf("Graceful shutdown timed out: %v", err)
	}
	httpServer.Close()

	logger.Println("Shutdown complete")
}

// envOr returns the environment value for key, or fallback when unset.
func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
