package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joshu-sajeev/contactrelay/internal/app"
	"github.com/joshu-sajeev/contactrelay/internal/config"
	"github.com/joshu-sajeev/contactrelay/internal/logger"
	"go.uber.org/zap"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	zlog, err := logger.New(cfg.LogLevel, cfg.Env)
	if err != nil {
		log.Fatal("Failed to build logger:", err)
	}
	defer zlog.Sync()

	relay, err := app.New(ctx, cfg, zlog)
	if err != nil {
		zlog.Fatal("failed to start relay", zap.Error(err))
	}
	defer relay.Close()

	zlog.Info("server running",
		zap.String("url", "http://localhost:"+cfg.Port),
		zap.String("env", cfg.Env),
	)

	if err := relay.Run(ctx); err != nil {
		zlog.Error("server stopped", zap.Error(err))
		return
	}
	zlog.Info("shutdown complete")
}
