package middleware

import (
	"net/http"

	"farmmall/internal/domain/model"
	"farmmall/internal/policy"

	"github.com/labstack/echo/v4"
)

const CtxProductScopeKey = "product_scope" // policy.ProductScope

//contextに入っているroleが許可されたものか確認します。
func RequireRoles(roles ...model.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role := Role(c)
			if role == "" {
				return abort(c, http.StatusUnauthorized, "unauthorized")
			}
			for _, r := range roles {
				if r == role {
					return next(c)
				}
			}
			return abort(c, http.StatusForbidden, "forbidden")
		}
	}
}

// adminだけ許可
func AdminRoleGuard() echo.MiddlewareFunc {
	return RequireRoles(model.RoleAdmin)
}

// admin/merchant
func BackOfficeGuard() echo.MiddlewareFunc {
	return RequireRoles(model.RoleAdmin, model.RoleMerchant)
}

// 商品スコープはリクエストごとに1回だけ作る
func ProductScope() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set(CtxProductScopeKey, policy.NewProductScope(UserID(c), Role(c)))
			return next(c)
		}
	}
}

func ScopeFrom(c echo.Context) policy.ProductScope {
	if s, ok := c.Get(CtxProductScopeKey).(policy.ProductScope); ok {
		return s
	}
	return policy.NewProductScope(UserID(c), Role(c))
}
