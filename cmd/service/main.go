package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"reply-bot/internal/config"
	"reply-bot/internal/service"
	"reply-bot/internal/telemetry"
)

const serviceName = "reply-bot"

func main() {
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := run(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}

// run returns once the service stops; deferred cleanup completes before main exits.
func run(ctx context.Context) error {
	cfg := config.New()
	defer cfg.Logger.Sync()
	if err := cfg.Load(); err != nil {
		cfg.Logger.Error("invalid configuration", zap.Error(err))
		return err
	}

	if cfg.Tracing.Enabled {
		shutdown, err := telemetry.InitTracer(serviceName, cfg.Logger)
		if err != nil {
			cfg.Logger.Error("could not initialize tracing", zap.Error(err))
			return err
		}
		defer shutdown(context.Background())
	}

	if err := service.New(cfg).Run(ctx); err != nil {
		cfg.Logger.Error("service stopped", zap.Error(err))
		return err
	}
	return nil
}
