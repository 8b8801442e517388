package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/Matiasmdev/chef-claude/config"
	"github.com/Matiasmdev/chef-claude/internal/database"
	"github.com/Matiasmdev/chef-claude/internal/server"
)

func main() {
	// Local development convenience; deployed environments inject real vars
	_ = godotenv.Load()

	logger := logrus.New()

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.WithError(err).Fatal("failed to load configuration")
	}

	if level, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
		logger.SetLevel(level)
	}

	if missing := cfg.MissingCredentials(); len(missing) > 0 {
		// The server still boots; the pipeline rejects requests naming these.
		logger.WithField("missing", missing).Warn("required credentials absent")
	}

	redisClient, err := database.NewRedisClient(cfg, logger)
	if err != nil {
		logger.WithError(err).Warn("Redis unavailable at startup")
	}

	srv := server.New(cfg, redisClient, logger)

	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Start()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errChan:
		if err != nil {
			logger.WithError(err).Fatal("server error")
		}
	case sig := <-quit:
		logger.WithField("signal", sig.String()).Info("shutting down")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.WithError(err).Fatal("server shutdown error")
	}
	logger.Info("server stopped")
}
