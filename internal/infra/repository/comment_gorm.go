package repository

import (
	"context"

	"farmmall/internal/domain/model"
	repo "farmmall/internal/repository"

	"gorm.io/gorm"
)

type CommentGormRepository struct {
	db *gorm.DB
}

func NewCommentGormRepository(db *gorm.DB) *CommentGormRepository {
	return &CommentGormRepository{db: db}
}

// 新しい順、投稿者名付き
func (r *CommentGormRepository) ListByProduct(ctx context.Context, productID string, p repo.Page) ([]repo.CommentLine, int64, error) {
	q := r.db.WithContext(ctx).
		Table("comments").
		Joins("LEFT JOIN users ON users.id = comments.user_id").
		Where("comments.product_id = ?", productID)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return []repo.CommentLine{}, 0, err
	}

	var lines []repo.CommentLine
	err := q.Select("comments.*, users.username").
		Order("comments.create_time desc").
		Offset(p.Offset()).
		Limit(pageSize(p)).
		Scan(&lines).Error
	if err != nil {
		return []repo.CommentLine{}, 0, err
	}
	return lines, total, nil
}

func (r *CommentGormRepository) Create(ctx context.Context, c *model.Comment) error {
	return translate(r.db.WithContext(ctx).Create(c).Error)
}
