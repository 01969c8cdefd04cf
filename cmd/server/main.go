package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/tatianab/mansion/internal/config"
	"github.com/tatianab/mansion/internal/logger"
	"github.com/tatianab/mansion/internal/server"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Init("info", "text", os.Stderr).Fatalf("Error loading config: %v", err)
	}
	log := logger.Init(cfg.LogLevel, cfg.LogFormat, os.Stdout)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := server.New(server.Config{
		Addr:   cfg.Addr,
		Seed:   cfg.Seed,
		Logger: log,
	})
	if err := srv.Run(ctx); err != nil {
		log.WithError(err).Fatal("server stopped")
	}
	log.Info("server shut down")
}
