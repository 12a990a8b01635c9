package usecase

import (
	"context"
	"errors"
	"net/http"
	"time"

	"farmmall/internal/domain/model"
	repo "farmmall/internal/repository"
)

type FavoriteUsecase struct {
	favoriteRepo repo.FavoriteRepository
	productRepo  repo.ProductRepository
}

func NewFavoriteUsecase(favoriteRepo repo.FavoriteRepository, productRepo repo.ProductRepository) *FavoriteUsecase {
	return &FavoriteUsecase{favoriteRepo: favoriteRepo, productRepo: productRepo}
}

type FavoriteOutput struct {
	ID        string    `json:"id"`
	ProductID string    `json:"productId"`
	Name      string    `json:"name"`
	Price     string    `json:"price"`
	Image     string    `json:"image"`
	CreatedAt time.Time `json:"createdAt"`
}

func (u *FavoriteUsecase) List(ctx context.Context, userID string, page, pageSize int) (PageResult[FavoriteOutput], error) {
	lines, total, err := u.favoriteRepo.ListByUser(ctx, userID, NormalizePage(page, pageSize))
	if err != nil {
		return PageResult[FavoriteOutput]{}, dbError(err)
	}
	items := make([]FavoriteOutput, 0, len(lines))
	for _, l := range lines {
		items = append(items, FavoriteOutput{
			ID:        l.ID,
			ProductID: l.ProductID,
			Name:      l.Name,
			Price:     l.Price.StringFixed(2),
			Image:     l.Image,
			CreatedAt: l.CreatedAt,
		})
	}
	return PageResult[FavoriteOutput]{Total: total, Items: items}, nil
}

func (u *FavoriteUsecase) Add(ctx context.Context, userID string, productID string) (model.Favorite, error) {
	if _, err := u.productRepo.FindByID(ctx, productID); err != nil {
		return model.Favorite{}, notFoundOr(err, "product not found")
	}

	exists, err := u.favoriteRepo.Exists(ctx, userID, productID)
	if err != nil {
		return model.Favorite{}, dbError(err)
	}
	if exists {
		return model.Favorite{}, NewHTTPError(http.StatusBadRequest, "already in favorites")
	}

	f := model.Favorite{UserID: userID, ProductID: productID}
	if err := u.favoriteRepo.Create(ctx, &f); err != nil {
		// 同時に追加されたとき
		if errors.Is(err, repo.ErrDuplicate) {
			return model.Favorite{}, NewHTTPError(http.StatusBadRequest, "already in favorites")
		}
		return model.Favorite{}, dbError(err)
	}
	return f, nil
}

func (u *FavoriteUsecase) Remove(ctx context.Context, userID string, favoriteID string) error {
	if err := u.favoriteRepo.DeleteForUser(ctx, favoriteID, userID); err != nil {
		return notFoundOr(err, "favorite not found")
	}
	return nil
}

func (u *FavoriteUsecase) RemoveByProduct(ctx context.Context, userID string, productID string) error {
	if err := u.favoriteRepo.DeleteByProductForUser(ctx, productID, userID); err != nil {
		return notFoundOr(err, "favorite not found")
	}
	return nil
}
