package usecase

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"farmmall/internal/domain/model"
	repo "farmmall/internal/repository"
)

// 管理画面のカテゴリ管理
type CategoryUsecase struct {
	tx           repo.TransactionManager
	categoryRepo repo.CategoryRepository
	productRepo  repo.ProductRepository
}

func NewCategoryUsecase(tx repo.TransactionManager, categoryRepo repo.CategoryRepository, productRepo repo.ProductRepository) *CategoryUsecase {
	return &CategoryUsecase{tx: tx, categoryRepo: categoryRepo, productRepo: productRepo}
}

type CreateCategoryInput struct {
	Value string
	Label string
	Image string
}

type UpdateCategoryInput struct {
	Label string
	Image string
}

// 新しい順、countは実際の商品数
func (u *CategoryUsecase) ListAdmin(ctx context.Context) ([]CategoryOutput, error) {
	cs, err := u.categoryRepo.ListNewest(ctx)
	if err != nil {
		return nil, dbError(err)
	}
	ids := make([]string, 0, len(cs))
	for _, c := range cs {
		ids = append(ids, c.ID)
	}
	counts, err := u.productRepo.CountByCategories(ctx, ids)
	if err != nil {
		return nil, dbError(err)
	}

	out := make([]CategoryOutput, 0, len(cs))
	for _, c := range cs {
		out = append(out, toCategoryOutput(c, counts[c.ID]))
	}
	return out, nil
}

func (u *CategoryUsecase) Create(ctx context.Context, in CreateCategoryInput) (CategoryOutput, error) {
	value := strings.TrimSpace(in.Value)
	label := strings.TrimSpace(in.Label)
	image := strings.TrimSpace(in.Image)
	if value == "" || label == "" || image == "" {
		return CategoryOutput{}, NewHTTPError(http.StatusBadRequest, "value, label and image are required")
	}

	_, err := u.categoryRepo.FindByValue(ctx, value)
	if err == nil {
		return CategoryOutput{}, NewHTTPError(http.StatusBadRequest, "category value already exists")
	}
	if !errors.Is(err, repo.ErrNotFound) {
		return CategoryOutput{}, dbError(err)
	}

	c := model.Category{Value: value, Label: label, Image: image}
	if err := u.categoryRepo.Create(ctx, &c); err != nil {
		if errors.Is(err, repo.ErrDuplicate) {
			return CategoryOutput{}, NewHTTPError(http.StatusBadRequest, "category value already exists")
		}
		return CategoryOutput{}, dbError(err)
	}
	return toCategoryOutput(c, 0), nil
}

func (u *CategoryUsecase) Update(ctx context.Context, id string, in UpdateCategoryInput) (CategoryOutput, error) {
	label := strings.TrimSpace(in.Label)
	image := strings.TrimSpace(in.Image)
	if label == "" || image == "" {
		return CategoryOutput{}, NewHTTPError(http.StatusBadRequest, "label and image are required")
	}

	if err := u.categoryRepo.UpdateLabelImage(ctx, id, label, image); err != nil {
		return CategoryOutput{}, notFoundOr(err, "category not found")
	}
	c, err := u.categoryRepo.FindByID(ctx, id)
	if err != nil {
		return CategoryOutput{}, notFoundOr(err, "category not found")
	}
	return toCategoryOutput(c, c.Count), nil
}

// 商品が残っていれば409
func (u *CategoryUsecase) Delete(ctx context.Context, actorAdminID string, id string) error {
	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		c, err := r.Categories().FindByID(ctx, id)
		if err != nil {
			return notFoundOr(err, "category not found")
		}

		n, err := r.Products().CountByCategory(ctx, id)
		if err != nil {
			return dbError(err)
		}
		if n > 0 {
			return NewHTTPError(http.StatusConflict, "category has products")
		}

		if err := r.Categories().Delete(ctx, id); err != nil {
			return notFoundOr(err, "category not found")
		}

		return writeAudit(ctx, r.AuditLogs(), auditEntry{
			actor:        actorAdminID,
			action:       model.AuditActionDeleteCategory,
			resourceType: model.AuditResourceCategory,
			resourceID:   id,
			before:       c,
		})
	})
	if err != nil {
		return passThrough(err)
	}
	return nil
}
