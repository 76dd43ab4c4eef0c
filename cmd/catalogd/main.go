// catalogd is the media catalog HTTP service.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/voralis/catalogd/internal/config"
	"github.com/voralis/catalogd/internal/database"
	"github.com/voralis/catalogd/internal/events"
	"github.com/voralis/catalogd/internal/logger"
	"github.com/voralis/catalogd/internal/server"
)

func main() {
	configPath := flag.String("config", os.Getenv("CATALOGD_CONFIG"), "path to the YAML config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "catalogd: %v\n", err)
		os.Exit(1)
	}

	logger.Init(cfg.Logging.Level, cfg.Logging.Format)
	logger.Info("starting catalogd",
		"addr", fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		"strict_refs", cfg.Catalog.StrictRefs,
	)

	db, err := database.Connect(cfg)
	if err != nil {
		logger.Error("failed to connect to store", "error", err)
		os.Exit(1)
	}
	defer database.Close(db)

	if err := database.Migrate(db); err != nil {
		logger.Error("failed to migrate schema", "error", err)
		os.Exit(1)
	}

	bus := events.NewBus(64)
	defer bus.Close()

	srv := server.New(cfg, db, bus)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil {
			logger.Error("http server failed", "error", err)
			os.Exit(1)
		}
	case sig := <-quit:
		logger.Info("shutting down", "signal", sig.String())
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			logger.Error("forced shutdown", "error", err)
			os.Exit(1)
		}
	}

	logger.Info("catalogd stopped")
}
