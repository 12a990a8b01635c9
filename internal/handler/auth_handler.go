package handler

import (
	"errors"
	"net/http"

	"farmmall/internal/middleware"
	auth "farmmall/internal/usecase/auth_usecase"

	"github.com/labstack/echo/v4"
)

type AuthHandler struct {
	registerUC *auth.RegisterUserUsecase // 会員登録usecase
	loginUC    *auth.LoginUsecase        // ログインusecase
	profileUC  *auth.ProfileUsecase
	logoutUC   *auth.LogoutUsecase
}

// DIコンストラクタ
func NewAuthHandler(
	registerUC *auth.RegisterUserUsecase,
	loginUC *auth.LoginUsecase,
	profileUC *auth.ProfileUsecase,
	logoutUC *auth.LogoutUsecase,
) *AuthHandler {
	return &AuthHandler{
		registerUC: registerUC,
		loginUC:    loginUC,
		profileUC:  profileUC,
		logoutUC:   logoutUC,
	}
}

// /auth/register のリクエストボディ。
type registerRequest struct {
	Username string `json:"username" validate:"required,max=64"`
	Password string `json:"password" validate:"required,min=6"`
	Phone    string `json:"phone" validate:"omitempty,max=30"`
}

// /auth/login のリクエストボディ。
type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

func (h *AuthHandler) RegisterRoutes(api *echo.Group, g Guards) {
	r := api.Group("/auth")
	r.POST("/register", h.register)
	r.POST("/login", h.login)
	r.GET("/profile", h.profile, g.User...)
	r.POST("/logout", h.logout, g.User...)
}

func (h *AuthHandler) register(c echo.Context) error {
	var req registerRequest
	if err := bindAndValidate(c, &req); err != nil {
		return writeError(c, err)
	}

	user, err := h.registerUC.Execute(c.Request().Context(), auth.RegisterUserInput{
		Username: req.Username,
		Password: req.Password,
		Phone:    req.Phone,
	})
	if err != nil {
		return writeAuthError(c, err)
	}
	return created(c, "registered", user)
}

func (h *AuthHandler) login(c echo.Context) error {
	var req loginRequest
	if err := bindAndValidate(c, &req); err != nil {
		return writeError(c, err)
	}

	out, err := h.loginUC.Execute(c.Request().Context(), auth.LoginInput{
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		return writeAuthError(c, err)
	}
	return ok(c, out)
}

func (h *AuthHandler) profile(c echo.Context) error {
	user, err := h.profileUC.Execute(c.Request().Context(), middleware.UserID(c))
	if err != nil {
		return writeAuthError(c, err)
	}
	return ok(c, user)
}

func (h *AuthHandler) logout(c echo.Context) error {
	if err := h.logoutUC.Execute(c.Request().Context(), middleware.TokenID(c), middleware.TokenExpiresAt(c)); err != nil {
		return writeError(c, err)
	}
	return okMessage(c, "logged out")
}

// auth usecaseのエラーをHTTPへ
func writeAuthError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, auth.ErrInvalidCredentials):
		return fail(c, http.StatusUnauthorized, "invalid username or password")
	case errors.Is(err, auth.ErrAccountDisabled):
		return fail(c, http.StatusForbidden, "account is disabled")
	case errors.Is(err, auth.ErrUsernameTaken):
		return fail(c, http.StatusBadRequest, "username already exists")
	case errors.Is(err, auth.ErrWrongPassword):
		return fail(c, http.StatusBadRequest, "old password is incorrect")
	case errors.Is(err, auth.ErrInvalidInput):
		return fail(c, http.StatusBadRequest, "invalid input")
	case errors.Is(err, auth.ErrAccountNotFound):
		return fail(c, http.StatusNotFound, "account not found")
	default:
		return writeError(c, err)
	}
}
