package handler

import (
	"farmmall/internal/domain/model"
	"farmmall/internal/middleware"
	"farmmall/internal/usecase"

	"github.com/labstack/echo/v4"
)

type AdminUserHandler struct {
	uc *usecase.AdminUserUsecase
}

func NewAdminUserHandler(uc *usecase.AdminUserUsecase) *AdminUserHandler {
	return &AdminUserHandler{uc: uc}
}

type adminUpdateRequest struct {
	Email  string `json:"email" validate:"omitempty,email"`
	Phone  string `json:"phone" validate:"omitempty,max=30"`
	Role   string `json:"role" validate:"omitempty,oneof=admin merchant"`
	Status string `json:"status" validate:"omitempty,oneof=active disabled"`
}

type resetPasswordRequest struct {
	NewPassword string `json:"newPassword" validate:"required,min=6"`
}

func (h *AdminUserHandler) RegisterRoutes(api *echo.Group, g Guards) {
	// /admin/users 配下は admin 限定
	mw := append(append([]echo.MiddlewareFunc{}, g.Admin...), middleware.AdminRoleGuard())
	r := api.Group("/admin/users", mw...)

	r.GET("", h.list)
	r.POST("", h.create)
	r.PUT("/:id", h.update)
	r.POST("/:id/reset-password", h.resetPassword)
	r.DELETE("/:id", h.delete)
}

func (h *AdminUserHandler) list(c echo.Context) error {
	out, err := h.uc.List(c.Request().Context(), usecase.ListAdminsInput{
		Page:     queryInt(c, "page"),
		PageSize: queryInt(c, "pageSize"),
		Search:   c.QueryParam("search"),
		Role:     c.QueryParam("role"),
		Status:   c.QueryParam("status"),
	})
	if err != nil {
		return writeError(c, err)
	}
	return ok(c, out)
}

func (h *AdminUserHandler) create(c echo.Context) error {
	var req adminRegisterRequest
	if err := bindAndValidate(c, &req); err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.Create(c.Request().Context(), usecase.CreateAdminInput{
		Username: req.Username,
		Password: req.Password,
		Role:     model.Role(req.Role),
		Email:    req.Email,
		Phone:    req.Phone,
	})
	if err != nil {
		return writeError(c, err)
	}
	return created(c, "created", out)
}

func (h *AdminUserHandler) update(c echo.Context) error {
	var req adminUpdateRequest
	if err := bindAndValidate(c, &req); err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.Update(c.Request().Context(), middleware.UserID(c), c.Param("id"), usecase.UpdateAdminInput{
		Email:  req.Email,
		Phone:  req.Phone,
		Role:   model.Role(req.Role),
		Status: model.AccountStatus(req.Status),
	})
	if err != nil {
		return writeError(c, err)
	}
	return ok(c, out)
}

func (h *AdminUserHandler) resetPassword(c echo.Context) error {
	var req resetPasswordRequest
	if err := bindAndValidate(c, &req); err != nil {
		return writeError(c, err)
	}
	if err := h.uc.ResetPassword(c.Request().Context(), middleware.UserID(c), c.Param("id"), req.NewPassword); err != nil {
		return writeError(c, err)
	}
	return okMessage(c, "password reset")
}

func (h *AdminUserHandler) delete(c echo.Context) error {
	if err := h.uc.Delete(c.Request().Context(), middleware.UserID(c), c.Param("id")); err != nil {
		return writeError(c, err)
	}
	return okMessage(c, "deleted")
}
