package handler

import (
	"farmmall/internal/middleware"
	"farmmall/internal/usecase"

	"github.com/labstack/echo/v4"
)

type FavoriteHandler struct {
	uc *usecase.FavoriteUsecase
}

func NewFavoriteHandler(uc *usecase.FavoriteUsecase) *FavoriteHandler {
	return &FavoriteHandler{uc: uc}
}

type favoriteRequest struct {
	ProductID string `json:"productId" validate:"required"`
}

func (h *FavoriteHandler) RegisterRoutes(api *echo.Group, g Guards) {
	r := api.Group("/favorites", g.User...)
	r.GET("", h.list)
	r.POST("", h.add)
	r.DELETE("/product/:productId", h.removeByProduct)
	r.DELETE("/:id", h.remove)
}

func (h *FavoriteHandler) list(c echo.Context) error {
	out, err := h.uc.List(c.Request().Context(), middleware.UserID(c), queryInt(c, "page"), queryInt(c, "pageSize"))
	if err != nil {
		return writeError(c, err)
	}
	return ok(c, out)
}

func (h *FavoriteHandler) add(c echo.Context) error {
	var req favoriteRequest
	if err := bindAndValidate(c, &req); err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.Add(c.Request().Context(), middleware.UserID(c), req.ProductID)
	if err != nil {
		return writeError(c, err)
	}
	return ok(c, out)
}

func (h *FavoriteHandler) remove(c echo.Context) error {
	if err := h.uc.Remove(c.Request().Context(), middleware.UserID(c), c.Param("id")); err != nil {
		return writeError(c, err)
	}
	return okMessage(c, "deleted")
}

func (h *FavoriteHandler) removeByProduct(c echo.Context) error {
	if err := h.uc.RemoveByProduct(c.Request().Context(), middleware.UserID(c), c.Param("productId")); err != nil {
		return writeError(c, err)
	}
	return okMessage(c, "deleted")
}
