package usecase

import (
	"context"
	"errors"
	"net/http"

	"farmmall/internal/domain/model"
	repo "farmmall/internal/repository"
)

// CartUsecase は /cart の業務ロジックです。
type CartUsecase struct {
	cartRepo    repo.CartRepository
	productRepo repo.ProductRepository
}

func NewCartUsecase(cartRepo repo.CartRepository, productRepo repo.ProductRepository) *CartUsecase {
	return &CartUsecase{cartRepo: cartRepo, productRepo: productRepo}
}

// priceは現在の商品価格
type CartItemOutput struct {
	ID        string `json:"id"`
	ProductID string `json:"productId"`
	Name      string `json:"name"`
	Price     string `json:"price"`
	Image     string `json:"image"`
	Stock     int64  `json:"stock"`
	Quantity  int64  `json:"quantity"`
	Selected  bool   `json:"selected"`
}

type AddCartInput struct {
	ProductID string
	Quantity  int64
}

func (u *CartUsecase) List(ctx context.Context, userID string) ([]CartItemOutput, error) {
	lines, err := u.cartRepo.ListByUserID(ctx, userID)
	if err != nil {
		return nil, dbError(err)
	}
	out := make([]CartItemOutput, 0, len(lines))
	for _, l := range lines {
		out = append(out, CartItemOutput{
			ID:        l.ID,
			ProductID: l.ProductID,
			Name:      l.Name,
			Price:     l.Price.StringFixed(2),
			Image:     l.Image,
			Stock:     l.Stock,
			Quantity:  l.Quantity,
			Selected:  l.Selected,
		})
	}
	return out, nil
}

// 同じ商品があれば数量を足す
func (u *CartUsecase) Add(ctx context.Context, userID string, in AddCartInput) (model.Cart, error) {
	if in.Quantity < 1 {
		in.Quantity = 1
	}
	if in.Quantity > maxLineQuantity {
		return model.Cart{}, quantityTooLarge()
	}

	p, err := u.productRepo.FindByID(ctx, in.ProductID)
	if err != nil {
		return model.Cart{}, notFoundOr(err, "product not found")
	}
	if p.Stock <= 0 {
		return model.Cart{}, NewHTTPError(http.StatusBadRequest, "product sold out")
	}

	existing, err := u.cartRepo.FindByUserAndProduct(ctx, userID, in.ProductID)
	switch {
	case err == nil:
		// 足してから比べると溢れる
		if in.Quantity > p.Stock-existing.Quantity {
			return model.Cart{}, NewHTTPError(http.StatusBadRequest, "quantity exceeds stock")
		}
		if in.Quantity > maxLineQuantity-existing.Quantity {
			return model.Cart{}, quantityTooLarge()
		}
		qty := existing.Quantity + in.Quantity
		if err := u.cartRepo.UpdateQuantity(ctx, existing.ID, qty); err != nil {
			return model.Cart{}, dbError(err)
		}
		existing.Quantity = qty
		return existing, nil
	case errors.Is(err, repo.ErrNotFound):
		// 新規
	default:
		return model.Cart{}, dbError(err)
	}

	if in.Quantity > p.Stock {
		return model.Cart{}, NewHTTPError(http.StatusBadRequest, "quantity exceeds stock")
	}
	c := model.Cart{
		UserID:    userID,
		ProductID: in.ProductID,
		Quantity:  in.Quantity,
		Selected:  true,
	}
	if err := u.cartRepo.Create(ctx, &c); err != nil {
		return model.Cart{}, dbError(err)
	}
	return c, nil
}

func (u *CartUsecase) UpdateQuantity(ctx context.Context, userID string, cartID string, qty int64) (model.Cart, error) {
	if qty < 1 {
		return model.Cart{}, NewHTTPError(http.StatusBadRequest, "quantity must be at least 1")
	}
	if qty > maxLineQuantity {
		return model.Cart{}, quantityTooLarge()
	}

	c, err := u.cartRepo.FindByIDForUser(ctx, cartID, userID)
	if err != nil {
		return model.Cart{}, notFoundOr(err, "cart item not found")
	}
	p, err := u.productRepo.FindByID(ctx, c.ProductID)
	if err != nil {
		return model.Cart{}, notFoundOr(err, "product not found")
	}
	if qty > p.Stock {
		return model.Cart{}, NewHTTPError(http.StatusBadRequest, "quantity exceeds stock")
	}

	if err := u.cartRepo.UpdateQuantity(ctx, c.ID, qty); err != nil {
		return model.Cart{}, notFoundOr(err, "cart item not found")
	}
	c.Quantity = qty
	return c, nil
}

func (u *CartUsecase) Remove(ctx context.Context, userID string, cartID string) error {
	if err := u.cartRepo.DeleteForUser(ctx, cartID, userID); err != nil {
		return notFoundOr(err, "cart item not found")
	}
	return nil
}

func (u *CartUsecase) SetSelected(ctx context.Context, userID string, ids []string, selected bool) error {
	if len(ids) == 0 {
		return NewHTTPError(http.StatusBadRequest, "ids are required")
	}
	if err := u.cartRepo.SetSelected(ctx, userID, ids, selected); err != nil {
		return dbError(err)
	}
	return nil
}

func (u *CartUsecase) SetAllSelected(ctx context.Context, userID string, selected bool) error {
	if err := u.cartRepo.SetAllSelected(ctx, userID, selected); err != nil {
		return dbError(err)
	}
	return nil
}
