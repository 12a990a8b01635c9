package cache

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

const revokedKeyPrefix = "farmmall:auth:revoked:"

func revokedKey(jti string) string {
	return revokedKeyPrefix + jti
}

// ログアウトしたトークンのjtiを有効期限まで保持する
type RedisTokenBlocklist struct {
	client *redis.Client
}

func NewRedisTokenBlocklist(client *redis.Client) *RedisTokenBlocklist {
	return &RedisTokenBlocklist{client: client}
}

func (b *RedisTokenBlocklist) Revoke(ctx context.Context, jti string, ttl time.Duration) error {
	if jti == "" || ttl <= 0 {
		return nil
	}
	return b.client.Set(ctx, revokedKey(jti), "1", ttl).Err()
}

func (b *RedisTokenBlocklist) IsRevoked(ctx context.Context, jti string) (bool, error) {
	if jti == "" {
		return false, nil
	}
	err := b.client.Get(ctx, revokedKey(jti)).Err()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// Redis未設定のとき
type NopTokenBlocklist struct{}

func (NopTokenBlocklist) Revoke(ctx context.Context, jti string, ttl time.Duration) error {
	return nil
}

func (NopTokenBlocklist) IsRevoked(ctx context.Context, jti string) (bool, error) {
	return false, nil
}
