package handler

import (
	"farmmall/internal/middleware"
	"farmmall/internal/usecase"

	"github.com/labstack/echo/v4"
)

type AdminOrderHandler struct {
	uc *usecase.AdminOrderUsecase
}

func NewAdminOrderHandler(uc *usecase.AdminOrderUsecase) *AdminOrderHandler {
	return &AdminOrderHandler{uc: uc}
}

type orderStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

func (h *AdminOrderHandler) RegisterRoutes(api *echo.Group, g Guards) {
	r := api.Group("/admin/orders", g.Admin...)
	r.GET("", h.list)
	r.GET("/:id", h.detail)
	r.PUT("/:id/status", h.updateStatus)
	r.DELETE("/:id", h.delete)
}

func (h *AdminOrderHandler) list(c echo.Context) error {
	out, err := h.uc.List(c.Request().Context(), usecase.AdminListOrdersInput{
		Page:     queryInt(c, "page"),
		PageSize: queryInt(c, "pageSize"),
		Search:   c.QueryParam("search"),
		Status:   c.QueryParam("status"),
	})
	if err != nil {
		return writeError(c, err)
	}
	return ok(c, out)
}

func (h *AdminOrderHandler) detail(c echo.Context) error {
	out, err := h.uc.Detail(c.Request().Context(), c.Param("id"))
	if err != nil {
		return writeError(c, err)
	}
	return ok(c, out)
}

func (h *AdminOrderHandler) updateStatus(c echo.Context) error {
	var req orderStatusRequest
	if err := bindAndValidate(c, &req); err != nil {
		return writeError(c, err)
	}
	if err := h.uc.UpdateStatus(c.Request().Context(), middleware.UserID(c), c.Param("id"), req.Status); err != nil {
		return writeError(c, err)
	}
	return okMessage(c, "updated")
}

func (h *AdminOrderHandler) delete(c echo.Context) error {
	if err := h.uc.Delete(c.Request().Context(), middleware.UserID(c), c.Param("id")); err != nil {
		return writeError(c, err)
	}
	return okMessage(c, "deleted")
}
