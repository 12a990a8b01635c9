package handler

import (
	"farmmall/internal/domain/model"
	"farmmall/internal/middleware"
	auth "farmmall/internal/usecase/auth_usecase"

	"github.com/labstack/echo/v4"
)

// /admin/auth
type AdminAuthHandler struct {
	uc       *auth.AdminAuthUsecase
	logoutUC *auth.LogoutUsecase
}

// DI
func NewAdminAuthHandler(uc *auth.AdminAuthUsecase, logoutUC *auth.LogoutUsecase) *AdminAuthHandler {
	return &AdminAuthHandler{uc: uc, logoutUC: logoutUC}
}

type adminRegisterRequest struct {
	Username string `json:"username" validate:"required,max=64"`
	Password string `json:"password" validate:"required,min=6"`
	Role     string `json:"role" validate:"required,oneof=admin merchant"`
	Email    string `json:"email" validate:"omitempty,email"`
	Phone    string `json:"phone" validate:"omitempty,max=30"`
}

type changePasswordRequest struct {
	OldPassword string `json:"oldPassword" validate:"required"`
	NewPassword string `json:"newPassword" validate:"required,min=6"`
}

func (h *AdminAuthHandler) RegisterRoutes(api *echo.Group, g Guards) {
	r := api.Group("/admin/auth")
	r.POST("/login", h.login)
	r.POST("/register", h.register)
	r.GET("/profile", h.profile, g.Admin...)
	r.POST("/change-password", h.changePassword, g.Admin...)
	r.POST("/logout", h.logout, g.Admin...)
}

func (h *AdminAuthHandler) login(c echo.Context) error {
	var req loginRequest
	if err := bindAndValidate(c, &req); err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.Login(c.Request().Context(), auth.LoginInput{Username: req.Username, Password: req.Password})
	if err != nil {
		return writeAuthError(c, err)
	}
	return ok(c, out)
}

func (h *AdminAuthHandler) register(c echo.Context) error {
	var req adminRegisterRequest
	if err := bindAndValidate(c, &req); err != nil {
		return writeError(c, err)
	}
	admin, err := h.uc.Register(c.Request().Context(), auth.AdminRegisterInput{
		Username: req.Username,
		Password: req.Password,
		Role:     model.Role(req.Role),
		Email:    req.Email,
		Phone:    req.Phone,
	})
	if err != nil {
		return writeAuthError(c, err)
	}
	return created(c, "registered", admin)
}

func (h *AdminAuthHandler) profile(c echo.Context) error {
	admin, err := h.uc.Profile(c.Request().Context(), middleware.UserID(c))
	if err != nil {
		return writeAuthError(c, err)
	}
	return ok(c, admin)
}

func (h *AdminAuthHandler) changePassword(c echo.Context) error {
	var req changePasswordRequest
	if err := bindAndValidate(c, &req); err != nil {
		return writeError(c, err)
	}
	if err := h.uc.ChangePassword(c.Request().Context(), middleware.UserID(c), req.OldPassword, req.NewPassword); err != nil {
		return writeAuthError(c, err)
	}
	return okMessage(c, "password changed")
}

func (h *AdminAuthHandler) logout(c echo.Context) error {
	if err := h.logoutUC.Execute(c.Request().Context(), middleware.TokenID(c), middleware.TokenExpiresAt(c)); err != nil {
		return writeError(c, err)
	}
	return okMessage(c, "logged out")
}
