package database

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/Matiasmdev/chef-claude/config"
)

// NewRedisClient creates a new Redis client. The client is returned even when
// the initial ping fails, so the server can come up before the store does;
// handlers surface store failures per request.
func NewRedisClient(cfg *config.Config, logger *logrus.Logger) (*redis.Client, error) {
	opts := &redis.Options{
		Addr:     fmt.Sprintf("%s:%s", cfg.RedisHost, cfg.RedisPort),
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	}

	// Use Redis URL if provided (for production deployments)
	if cfg.RedisURL != "" {
		parsedOpts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
		}
		opts = parsedOpts
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := client.Ping(ctx).Result(); err != nil {
		return client, fmt.Errorf("failed to connect to Redis at %s: %w", opts.Addr, err)
	}

	logger.WithField("addr", opts.Addr).Info("connected to Redis")
	return client, nil
}
