package usecase

import (
	"context"
	"net/http"
	"strings"
	"time"

	"farmmall/internal/domain/model"
	repo "farmmall/internal/repository"
)

type CommentUsecase struct {
	commentRepo repo.CommentRepository
	productRepo repo.ProductRepository
}

func NewCommentUsecase(commentRepo repo.CommentRepository, productRepo repo.ProductRepository) *CommentUsecase {
	return &CommentUsecase{commentRepo: commentRepo, productRepo: productRepo}
}

type CommentOutput struct {
	ID         string    `json:"id"`
	Username   string    `json:"username"`
	UserAvatar string    `json:"userAvatar"`
	Rating     int       `json:"rating"`
	Content    string    `json:"content"`
	CreateTime time.Time `json:"createTime"`
}

type CreateCommentInput struct {
	Rating  int
	Content string
}

func (u *CommentUsecase) List(ctx context.Context, productID string, page, pageSize int) (PageResult[CommentOutput], error) {
	lines, total, err := u.commentRepo.ListByProduct(ctx, productID, NormalizePage(page, pageSize))
	if err != nil {
		return PageResult[CommentOutput]{}, dbError(err)
	}

	items := make([]CommentOutput, 0, len(lines))
	for _, l := range lines {
		items = append(items, toCommentOutput(l.Comment, l.Username))
	}
	return PageResult[CommentOutput]{Total: total, Items: items}, nil
}

func (u *CommentUsecase) Create(ctx context.Context, userID string, productID string, in CreateCommentInput) (CommentOutput, error) {
	if in.Rating < 1 || in.Rating > 5 {
		return CommentOutput{}, NewHTTPError(http.StatusBadRequest, "rating must be between 1 and 5")
	}
	content := strings.TrimSpace(in.Content)
	if content == "" {
		return CommentOutput{}, NewHTTPError(http.StatusBadRequest, "content is required")
	}

	if _, err := u.productRepo.FindByID(ctx, productID); err != nil {
		return CommentOutput{}, notFoundOr(err, "product not found")
	}

	c := model.Comment{
		UserID:    userID,
		ProductID: productID,
		Rating:    in.Rating,
		Content:   content,
	}
	if err := u.commentRepo.Create(ctx, &c); err != nil {
		return CommentOutput{}, dbError(err)
	}
	return toCommentOutput(c, ""), nil
}

func toCommentOutput(c model.Comment, username string) CommentOutput {
	return CommentOutput{
		ID:         c.ID,
		Username:   username,
		UserAvatar: "",
		Rating:     c.Rating,
		Content:    c.Content,
		CreateTime: c.CreateTime,
	}
}
