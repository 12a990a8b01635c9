package server

import (
	"farmmall/internal/handler"

	"github.com/labstack/echo/v4"
)

type Handlers struct {
	Health        *handler.HealthHandler
	Auth          *handler.AuthHandler
	Product       *handler.ProductHandler
	Cart          *handler.CartHandler
	Order         *handler.OrderHandler
	Favorite      *handler.FavoriteHandler
	AdminAuth     *handler.AdminAuthHandler
	AdminUser     *handler.AdminUserHandler
	AdminProduct  *handler.AdminProductHandler
	AdminCategory *handler.AdminCategoryHandler
	AdminOrder    *handler.AdminOrderHandler
	Analysis      *handler.AnalysisHandler
}

// 全ルートは /api 配下
func RegisterRoutes(e *echo.Echo, h Handlers, g handler.Guards) {
	api := e.Group("/api")

	h.Health.RegisterRoutes(api)
	h.Auth.RegisterRoutes(api, g)
	h.Product.RegisterRoutes(api, g)
	h.Cart.RegisterRoutes(api, g)
	h.Order.RegisterRoutes(api, g)
	h.Favorite.RegisterRoutes(api, g)

	h.AdminAuth.RegisterRoutes(api, g)
	h.AdminUser.RegisterRoutes(api, g)
	h.AdminProduct.RegisterRoutes(api, g)
	h.AdminCategory.RegisterRoutes(api, g)
	h.AdminOrder.RegisterRoutes(api, g)
	h.Analysis.RegisterRoutes(api, g)
}
