package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/hallpass-io/hallpass/internal/auth/app"
	"github.com/hallpass-io/hallpass/pkg/slogx"
)

func main() {
	// Missing .env is fine; the environment itself still applies.
	_ = godotenv.Load()

	cfg, err := app.LoadConfig()
	if err != nil {
		slogx.New(slogx.Config{Service: "hallpass"}).Error("invalid configuration", "err", err)
		os.Exit(1)
	}

	log := slogx.New(slogx.Config{
		Service: "hallpass",
		Env:     cfg.Env,
		Level:   cfg.LogLevel,
		Format:  cfg.LogFormat,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := app.Run(ctx, cfg, log); err != nil {
		log.Error("fatal", "err", err)
		os.Exit(1)
	}
}
