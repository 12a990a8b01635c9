package repository

import (
	"context"

	"farmmall/internal/domain/model"
	repo "farmmall/internal/repository"

	"gorm.io/gorm"
)

const (
	defaultAuditPageSize = 50
	maxAuditPageSize     = 200
)

type auditGormRepository struct {
	db *gorm.DB
}

func NewAuditLogGormRepository(db *gorm.DB) repo.AuditLogRepository {
	return &auditGormRepository{db: db}
}

// Txの中でも同じ実装を使う（dbはTx側）
func (r *auditGormRepository) Create(ctx context.Context, entry model.AuditLog) error {
	return r.db.WithContext(ctx).Create(&entry).Error
}

// 新しい順。同じ時刻ならID降順で並びを固定する
func (r *auditGormRepository) List(ctx context.Context, f repo.AuditLogFilter) ([]model.AuditLog, error) {
	var out []model.AuditLog
	err := r.db.WithContext(ctx).
		Scopes(auditFilter(f), auditWindow(f.Limit, f.Offset)).
		Order("created_at DESC").
		Order("id DESC").
		Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

func auditFilter(f repo.AuditLogFilter) func(*gorm.DB) *gorm.DB {
	return func(q *gorm.DB) *gorm.DB {
		if f.ActorAdminID != nil {
			q = q.Where("actor_admin_id = ?", *f.ActorAdminID)
		}
		if f.Action != nil {
			q = q.Where("action = ?", *f.Action)
		}
		if f.ResourceType != nil {
			q = q.Where("resource_type = ?", *f.ResourceType)
		}
		if f.ResourceID != nil {
			q = q.Where("resource_id = ?", *f.ResourceID)
		}
		return q
	}
}

func auditWindow(limit int, offset int) func(*gorm.DB) *gorm.DB {
	if limit <= 0 || limit > maxAuditPageSize {
		limit = defaultAuditPageSize
	}
	if offset < 0 {
		offset = 0
	}
	return func(q *gorm.DB) *gorm.DB {
		return q.Limit(limit).Offset(offset)
	}
}
