package cache

import (
	"context"
	"fmt"
	"os"

	"github.com/redis/go-redis/v9"
)

// RedisClient Redis接続のラッパー（バウンディングボックス問い合わせのキャッシュに使用）
type RedisClient struct {
	Client *redis.Client
}

// NewRedisClientFromEnv 環境変数から新しいRedisクライアントを作成
// REDIS_HOST未設定時はローカルの既定値にフォールバックする
func NewRedisClientFromEnv(ctx context.Context) (*RedisClient, error) {
	host := os.Getenv("REDIS_HOST")
	if host == "" {
		host = "127.0.0.1"
	}
	port := os.Getenv("REDIS_PORT")
	if port == "" {
		port = "6379"
	}

	client := redis.NewClient(&redis.Options{
		Addr:     host + ":" + port,
		Password: os.Getenv("REDIS_PASSWORD"),
	})

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("Redisへの接続に失敗: %w", err)
	}

	return &RedisClient{Client: client}, nil
}

// Close Redis接続を閉じる
func (rc *RedisClient) Close() error {
	if rc.Client != nil {
		return rc.Client.Close()
	}
	return nil
}
