package auth

import (
	"context"
	"time"
)

// トークンのjtiを有効期限まで失効させる
type LogoutUsecase struct {
	revoker TokenRevoker
	clock   Clock
}

func NewLogoutUsecase(revoker TokenRevoker, clock Clock) *LogoutUsecase {
	return &LogoutUsecase{revoker: revoker, clock: clock}
}

func (u *LogoutUsecase) Execute(ctx context.Context, jti string, expiresAt time.Time) error {
	ttl := expiresAt.Sub(u.clock.Now())
	if jti == "" || ttl <= 0 {
		return nil
	}
	return u.revoker.Revoke(ctx, jti, ttl)
}
