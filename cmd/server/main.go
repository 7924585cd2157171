package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/amirasaad/bankapi/infra/initializer"
	"github.com/amirasaad/bankapi/pkg/app"
	"github.com/amirasaad/bankapi/pkg/config"
	"github.com/amirasaad/bankapi/webapi"
	log "github.com/charmbracelet/log"
)

// @title Bank API
// @version 1.0.0
// @description Users, accounts and transactions behind JWT authentication
// @host localhost:3000
// @BasePath /
//
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description "Enter your Bearer token in the format: `Bearer {token}`"
func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	// Load configuration
	cfg, err := config.Load(".env")
	if err != nil {
		return fmt.Errorf("failed to load application configuration: %w", err)
	}

	// Initialize all dependencies
	deps, cleanup, err := initializer.InitializeDependencies(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize dependencies: %w", err)
	}
	defer cleanup()
	logger := deps.Logger

	// Create the application and setup Fiber with all routes and middleware
	fiberApp := webapi.SetupApp(app.New(deps, cfg))

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info("Starting server",
		"env", cfg.Env,
		"address", addr,
		"scheme", cfg.Server.Scheme,
	)

	errCh := make(chan error, 1)
	go func() {
		errCh <- fiberApp.Listen(addr)
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("Shutting down server")
	if err := fiberApp.ShutdownWithTimeout(10 * time.Second); err != nil {
		return err
	}
	if err := <-errCh; err != nil && !errors.Is(err, context.Canceled) {
		slog.Warn("Listener stopped with error", "error", err)
	}
	return nil
}
