package repository

import (
	"context"
	"time"
)

// ログアウト済みトークン（jti）の置き場
type TokenBlocklist interface {
	Revoke(ctx context.Context, jti string, ttl time.Duration) error
	IsRevoked(ctx context.Context, jti string) (bool, error)
}
