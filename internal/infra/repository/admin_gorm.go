package repository

import (
	"context"
	"strings"
	"time"

	"farmmall/internal/domain/model"
	domainrepo "farmmall/internal/repository"

	"gorm.io/gorm"
)

type adminGormRepository struct {
	db *gorm.DB
}

// DI
func NewAdminGormRepository(db *gorm.DB) domainrepo.AdminRepository {
	return &adminGormRepository{db: db}
}

func (r *adminGormRepository) Create(ctx context.Context, admin *model.Admin) error {
	return translate(r.db.WithContext(ctx).Create(admin).Error)
}

func (r *adminGormRepository) FindByID(ctx context.Context, id string) (model.Admin, error) {
	var a model.Admin
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&a).Error; err != nil {
		return model.Admin{}, translate(err)
	}
	return a, nil
}

func (r *adminGormRepository) FindByUsername(ctx context.Context, username string) (model.Admin, error) {
	var a model.Admin
	if err := r.db.WithContext(ctx).Where("username = ?", username).First(&a).Error; err != nil {
		return model.Admin{}, translate(err)
	}
	return a, nil
}

func (r *adminGormRepository) FindByIDs(ctx context.Context, ids []string) ([]model.Admin, error) {
	if len(ids) == 0 {
		return []model.Admin{}, nil
	}
	var admins []model.Admin
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&admins).Error; err != nil {
		return nil, err
	}
	return admins, nil
}

// 管理者一覧（username/email/phoneで検索）
func (r *adminGormRepository) List(ctx context.Context, f domainrepo.AdminListFilter) ([]model.Admin, int64, error) {
	var total int64
	q := r.db.WithContext(ctx).Model(&model.Admin{})

	if s := strings.TrimSpace(f.Search); s != "" {
		like := likePattern(strings.ToLower(s))
		q = q.Where("LOWER(username) LIKE ? OR LOWER(email) LIKE ? OR phone LIKE ?", like, like, like)
	}
	if f.Role != "" {
		q = q.Where("role = ?", f.Role)
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}

	if err := q.Count(&total).Error; err != nil {
		return []model.Admin{}, 0, err
	}

	var admins []model.Admin
	err := q.Order("created_at desc").
		Offset(f.Offset()).
		Limit(pageSize(f.Page)).
		Find(&admins).Error
	if err != nil {
		return []model.Admin{}, 0, err
	}
	return admins, total, nil
}

func (r *adminGormRepository) UpdateProfile(ctx context.Context, admin model.Admin) error {
	res := r.db.WithContext(ctx).Model(&model.Admin{}).Where("id = ?", admin.ID).Updates(map[string]interface{}{
		"email":  admin.Email,
		"phone":  admin.Phone,
		"role":   admin.Role,
		"status": admin.Status,
	})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domainrepo.ErrNotFound
	}
	return nil
}

func (r *adminGormRepository) UpdatePassword(ctx context.Context, id string, hashed string) error {
	res := r.db.WithContext(ctx).Model(&model.Admin{}).Where("id = ?", id).Update("password", hashed)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domainrepo.ErrNotFound
	}
	return nil
}

func (r *adminGormRepository) UpdateLastLogin(ctx context.Context, id string, at time.Time) error {
	res := r.db.WithContext(ctx).Model(&model.Admin{}).Where("id = ?", id).Update("last_login_time", at)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domainrepo.ErrNotFound
	}
	return nil
}

func (r *adminGormRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Admin{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domainrepo.ErrNotFound
	}
	return nil
}
