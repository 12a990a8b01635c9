package handler

import (
	"farmmall/internal/domain/model"
	"farmmall/internal/middleware"
	"farmmall/internal/usecase"

	"github.com/labstack/echo/v4"
)

type OrderHandler struct {
	uc *usecase.OrderUsecase
}

func NewOrderHandler(uc *usecase.OrderUsecase) *OrderHandler {
	return &OrderHandler{uc: uc}
}

type orderLineRequest struct {
	ProductID string `json:"productId" validate:"required"`
	Quantity  int64  `json:"quantity" validate:"gte=1,lte=10000"`
}

type OrderCreateRequest struct {
	Products []orderLineRequest `json:"products" validate:"required,min=1,dive"`
	Address  *model.Address     `json:"address" validate:"required"`
}

func (h *OrderHandler) RegisterRoutes(api *echo.Group, g Guards) {
	r := api.Group("/orders", g.User...)
	r.POST("", h.create)
	r.GET("", h.list)
	r.GET("/:id", h.detail)
	r.POST("/:id/cancel", h.cancel)
	r.POST("/:id/pay", h.pay)
	r.POST("/:id/confirm", h.confirm)
	r.DELETE("/:id", h.delete)
}

func (h *OrderHandler) create(c echo.Context) error {
	var req OrderCreateRequest
	if err := bindAndValidate(c, &req); err != nil {
		return writeError(c, err)
	}

	lines := make([]usecase.OrderLineInput, 0, len(req.Products))
	for _, p := range req.Products {
		lines = append(lines, usecase.OrderLineInput{ProductID: p.ProductID, Quantity: p.Quantity})
	}

	out, err := h.uc.PlaceOrder(c.Request().Context(), middleware.UserID(c), usecase.PlaceOrderInput{
		Products: lines,
		Address:  *req.Address,
	})
	if err != nil {
		return writeError(c, err)
	}
	return ok(c, out)
}

func (h *OrderHandler) list(c echo.Context) error {
	out, err := h.uc.ListMyOrders(c.Request().Context(), middleware.UserID(c), usecase.ListOrdersInput{
		Page:     queryInt(c, "page"),
		PageSize: queryInt(c, "pageSize"),
		Status:   c.QueryParam("status"),
	})
	if err != nil {
		return writeError(c, err)
	}
	return ok(c, out)
}

func (h *OrderHandler) detail(c echo.Context) error {
	out, err := h.uc.GetMyOrderDetail(c.Request().Context(), middleware.UserID(c), c.Param("id"))
	if err != nil {
		return writeError(c, err)
	}
	return ok(c, out)
}

func (h *OrderHandler) cancel(c echo.Context) error {
	if err := h.uc.Cancel(c.Request().Context(), middleware.UserID(c), c.Param("id")); err != nil {
		return writeError(c, err)
	}
	return okMessage(c, "cancelled")
}

func (h *OrderHandler) pay(c echo.Context) error {
	if err := h.uc.Pay(c.Request().Context(), middleware.UserID(c), c.Param("id")); err != nil {
		return writeError(c, err)
	}
	return okMessage(c, "paid")
}

func (h *OrderHandler) confirm(c echo.Context) error {
	if err := h.uc.Confirm(c.Request().Context(), middleware.UserID(c), c.Param("id")); err != nil {
		return writeError(c, err)
	}
	return okMessage(c, "confirmed")
}

func (h *OrderHandler) delete(c echo.Context) error {
	if err := h.uc.Delete(c.Request().Context(), middleware.UserID(c), c.Param("id")); err != nil {
		return writeError(c, err)
	}
	return okMessage(c, "deleted")
}
