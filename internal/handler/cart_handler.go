package handler

import (
	"farmmall/internal/middleware"
	"farmmall/internal/usecase"

	"github.com/labstack/echo/v4"
)

type CartHandler struct {
	uc *usecase.CartUsecase
}

func NewCartHandler(uc *usecase.CartUsecase) *CartHandler {
	return &CartHandler{uc: uc}
}

type cartAddRequest struct {
	ProductID string `json:"productId" validate:"required"`
	Quantity  int64  `json:"quantity" validate:"gte=0,lte=10000"`
}

type cartQuantityRequest struct {
	Quantity int64 `json:"quantity" validate:"gte=1,lte=10000"`
}

type cartSelectRequest struct {
	IDs      []string `json:"ids" validate:"required,min=1"`
	Selected bool     `json:"selected"`
}

type cartSelectAllRequest struct {
	Selected bool `json:"selected"`
}

func (h *CartHandler) RegisterRoutes(api *echo.Group, g Guards) {
	r := api.Group("/cart", g.User...)
	r.GET("", h.list)
	r.POST("", h.add)
	// /:id より先に登録
	r.PUT("/selected", h.setSelected)
	r.PUT("/selected/all", h.setAllSelected)
	r.PUT("/:id", h.updateQuantity)
	r.DELETE("/:id", h.remove)
}

func (h *CartHandler) list(c echo.Context) error {
	out, err := h.uc.List(c.Request().Context(), middleware.UserID(c))
	if err != nil {
		return writeError(c, err)
	}
	return ok(c, out)
}

func (h *CartHandler) add(c echo.Context) error {
	var req cartAddRequest
	if err := bindAndValidate(c, &req); err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.Add(c.Request().Context(), middleware.UserID(c), usecase.AddCartInput{
		ProductID: req.ProductID,
		Quantity:  req.Quantity,
	})
	if err != nil {
		return writeError(c, err)
	}
	return ok(c, out)
}

func (h *CartHandler) updateQuantity(c echo.Context) error {
	var req cartQuantityRequest
	if err := bindAndValidate(c, &req); err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.UpdateQuantity(c.Request().Context(), middleware.UserID(c), c.Param("id"), req.Quantity)
	if err != nil {
		return writeError(c, err)
	}
	return ok(c, out)
}

func (h *CartHandler) remove(c echo.Context) error {
	if err := h.uc.Remove(c.Request().Context(), middleware.UserID(c), c.Param("id")); err != nil {
		return writeError(c, err)
	}
	return okMessage(c, "deleted")
}

func (h *CartHandler) setSelected(c echo.Context) error {
	var req cartSelectRequest
	if err := bindAndValidate(c, &req); err != nil {
		return writeError(c, err)
	}
	if err := h.uc.SetSelected(c.Request().Context(), middleware.UserID(c), req.IDs, req.Selected); err != nil {
		return writeError(c, err)
	}
	return okMessage(c, "updated")
}

func (h *CartHandler) setAllSelected(c echo.Context) error {
	var req cartSelectAllRequest
	if err := bindAndValidate(c, &req); err != nil {
		return writeError(c, err)
	}
	if err := h.uc.SetAllSelected(c.Request().Context(), middleware.UserID(c), req.Selected); err != nil {
		return writeError(c, err)
	}
	return okMessage(c, "updated")
}
