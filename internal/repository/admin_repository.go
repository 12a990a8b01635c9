package repository

import (
	"context"
	"time"

	"farmmall/internal/domain/model"
)

type AdminListFilter struct {
	Page
	Search string
	Role   model.Role
	Status model.AccountStatus
}

// 管理画面アカウントの保存・取得
type AdminRepository interface {
	Create(ctx context.Context, admin *model.Admin) error
	FindByID(ctx context.Context, id string) (model.Admin, error)
	FindByUsername(ctx context.Context, username string) (model.Admin, error)
	FindByIDs(ctx context.Context, ids []string) ([]model.Admin, error)
	List(ctx context.Context, f AdminListFilter) ([]model.Admin, int64, error)

	// email/phone/role/status を上書き
	UpdateProfile(ctx context.Context, admin model.Admin) error
	UpdatePassword(ctx context.Context, id string, hashed string) error
	UpdateLastLogin(ctx context.Context, id string, at time.Time) error
	Delete(ctx context.Context, id string) error
}
