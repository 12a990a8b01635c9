package handler

import (
	"farmmall/internal/middleware"
	"farmmall/internal/usecase"

	"github.com/labstack/echo/v4"
)

type AdminCategoryHandler struct {
	uc *usecase.CategoryUsecase
}

func NewAdminCategoryHandler(uc *usecase.CategoryUsecase) *AdminCategoryHandler {
	return &AdminCategoryHandler{uc: uc}
}

type categoryCreateRequest struct {
	Value string `json:"value" validate:"required,max=50"`
	Label string `json:"label" validate:"required,max=50"`
	Image string `json:"image" validate:"required"`
}

type categoryUpdateRequest struct {
	Label string `json:"label" validate:"required,max=50"`
	Image string `json:"image" validate:"required"`
}

func (h *AdminCategoryHandler) RegisterRoutes(api *echo.Group, g Guards) {
	r := api.Group("/admin/categories", g.Admin...)
	r.GET("", h.list)
	r.POST("", h.create, middleware.AdminRoleGuard())
	r.PUT("/:id", h.update, middleware.AdminRoleGuard())
	r.DELETE("/:id", h.delete, middleware.AdminRoleGuard())
}

func (h *AdminCategoryHandler) list(c echo.Context) error {
	out, err := h.uc.ListAdmin(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return ok(c, out)
}

func (h *AdminCategoryHandler) create(c echo.Context) error {
	var req categoryCreateRequest
	if err := bindAndValidate(c, &req); err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.Create(c.Request().Context(), usecase.CreateCategoryInput{
		Value: req.Value,
		Label: req.Label,
		Image: req.Image,
	})
	if err != nil {
		return writeError(c, err)
	}
	return created(c, "created", out)
}

func (h *AdminCategoryHandler) update(c echo.Context) error {
	var req categoryUpdateRequest
	if err := bindAndValidate(c, &req); err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.Update(c.Request().Context(), c.Param("id"), usecase.UpdateCategoryInput{
		Label: req.Label,
		Image: req.Image,
	})
	if err != nil {
		return writeError(c, err)
	}
	return ok(c, out)
}

func (h *AdminCategoryHandler) delete(c echo.Context) error {
	if err := h.uc.Delete(c.Request().Context(), middleware.UserID(c), c.Param("id")); err != nil {
		return writeError(c, err)
	}
	return okMessage(c, "deleted")
}
