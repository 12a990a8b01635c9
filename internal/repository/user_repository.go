package repository

import (
	"context"
	"time"

	"farmmall/internal/domain/model"
)

type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	FindByID(ctx context.Context, id string) (model.User, error)
	FindByUsername(ctx context.Context, username string) (model.User, error)
	UpdateLastLogin(ctx context.Context, id string, at time.Time) error

	// since が nil なら全件
	Count(ctx context.Context, since *time.Time) (int64, error)
}
