package redis

import (
	"context"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"tasktracker/internal/platform/config"
)

// NewRedisClient は設定からRedisクライアントを生成し、疎通を確認します。
func NewRedisClient(cfg config.Config) (*redis.Client, error) {
	addr := cfg.RedisHost + ":" + cfg.RedisPort

	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: cfg.RedisPassword,
		DB:       0,
	})

	// 接続確認
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		slog.Error("Redis connection failed", "address", addr, "error", err)
		return nil, err
	}

	slog.Info("Redis connection successful", "address", addr)
	return rdb, nil
}
