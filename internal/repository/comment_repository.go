package repository

import (
	"context"

	"farmmall/internal/domain/model"
)

type CommentLine struct {
	model.Comment
	Username string
}

type CommentRepository interface {
	ListByProduct(ctx context.Context, productID string, p Page) ([]CommentLine, int64, error)
	Create(ctx context.Context, c *model.Comment) error
}
