package middleware

import (
	"errors"
	"net/http"

	"farmmall/internal/domain/model"
	"farmmall/internal/repository"

	"github.com/labstack/echo/v4"
)

// 購入者トークンか、DBのユーザーがまだ有効かを確認。
func UserGuard(userRepo repository.UserRepository) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			//AuthJWTが入れたuser_idを取得する
			userID := UserID(c)
			if userID == "" || Role(c) != model.RoleUser {
				return abort(c, http.StatusUnauthorized, "unauthorized")
			}

			//DBから最新のuserを取得する
			user, err := userRepo.FindByID(c.Request().Context(), userID)
			if err != nil {
				if errors.Is(err, repository.ErrNotFound) {
					return abort(c, http.StatusUnauthorized, "unauthorized")
				}
				return abort(c, http.StatusInternalServerError, "db error")
			}

			//停止ユーザーは403
			if user.Status == model.AccountStatusDisabled {
				return abort(c, http.StatusForbidden, "account is disabled")
			}
			return next(c)
		}
	}
}

// 管理画面トークンか、DBの管理者がまだ有効かを確認。
func AdminGuard(adminRepo repository.AdminRepository) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			adminID := UserID(c)
			if adminID == "" || !Role(c).IsBackOffice() {
				return abort(c, http.StatusUnauthorized, "unauthorized")
			}

			admin, err := adminRepo.FindByID(c.Request().Context(), adminID)
			if err != nil {
				if errors.Is(err, repository.ErrNotFound) {
					return abort(c, http.StatusUnauthorized, "unauthorized")
				}
				return abort(c, http.StatusInternalServerError, "db error")
			}
			if admin.IsDisabled() {
				return abort(c, http.StatusForbidden, "account is disabled")
			}

			// ロール変更はDBを正とする
			c.Set(CtxUserRoleKey, admin.Role)
			return next(c)
		}
	}
}
