package server

import (
	"farmmall/internal/config"
	"farmmall/internal/handler"
	infraRepo "farmmall/internal/infra/repository"
	"farmmall/internal/infra/token"
	"farmmall/internal/middleware"
	"farmmall/internal/repository"
	"farmmall/internal/usecase"
	auth "farmmall/internal/usecase/auth_usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// repository/usecase/handlerを組み立ててルートまで登録する
func NewApp(cfg config.Config, log *zap.Logger, gormDB *gorm.DB, blocklist repository.TokenBlocklist) (*echo.Echo, error) {
	sqlDB, err := gormDB.DB()
	if err != nil {
		return nil, err
	}

	//Repository（GORM実装）生成
	userRepo := infraRepo.NewUserGormRepository(gormDB)
	adminRepo := infraRepo.NewAdminGormRepository(gormDB)
	categoryRepo := infraRepo.NewCategoryGormRepository(gormDB)
	productRepo := infraRepo.NewProductGormRepository(gormDB)
	cartRepo := infraRepo.NewCartGormRepository(gormDB)
	orderRepo := infraRepo.NewOrderGormRepository(gormDB)
	orderItemRepo := infraRepo.NewOrderItemGormRepository(gormDB)
	favoriteRepo := infraRepo.NewFavoriteGormRepository(gormDB)
	commentRepo := infraRepo.NewCommentGormRepository(gormDB)
	analyticsRepo := infraRepo.NewAnalyticsGormRepository(gormDB)
	auditRepo := infraRepo.NewAuditLogGormRepository(gormDB)
	txm := infraRepo.NewTxManagerGorm(gormDB)

	//usecaseに渡す部品
	clock := auth.SystemClock{}
	hasher := auth.NewBcryptPasswordHasher(cfg.BcryptCost)
	verifier := auth.NewBcryptPasswordVerifier()
	jwtSvc := token.NewJWTService(cfg.JWTSecret, cfg.JWTTTL)

	//Usecase生成
	registerUC := auth.NewRegisterUserUsecase(userRepo, hasher, clock)
	loginUC := auth.NewLoginUsecase(userRepo, verifier, jwtSvc, clock)
	profileUC := auth.NewProfileUsecase(userRepo)
	logoutUC := auth.NewLogoutUsecase(blocklist, clock)
	adminAuthUC := auth.NewAdminAuthUsecase(adminRepo, hasher, verifier, jwtSvc, clock)

	productUC := usecase.NewProductUsecase(productRepo, categoryRepo, favoriteRepo)
	commentUC := usecase.NewCommentUsecase(commentRepo, productRepo)
	cartUC := usecase.NewCartUsecase(cartRepo, productRepo)
	orderUC := usecase.NewOrderUsecase(txm, orderRepo, orderItemRepo, middleware.OrderMetrics{})
	favoriteUC := usecase.NewFavoriteUsecase(favoriteRepo, productRepo)
	adminUserUC := usecase.NewAdminUserUsecase(adminRepo, auditRepo, hasher)
	adminProductUC := usecase.NewAdminProductUsecase(txm, productRepo, categoryRepo, adminRepo)
	categoryUC := usecase.NewCategoryUsecase(txm, categoryRepo, productRepo)
	adminOrderUC := usecase.NewAdminOrderUsecase(txm, orderRepo, orderItemRepo)
	analyticsUC := usecase.NewAnalyticsUsecase(analyticsRepo, userRepo)
	auditUC := usecase.NewAuditLogUsecase(auditRepo)

	//ミドルウェア
	authJWT := middleware.AuthJWT(jwtSvc, blocklist, log)
	guards := handler.Guards{
		Optional: middleware.OptionalAuth(jwtSvc, blocklist, log),
		User:     []echo.MiddlewareFunc{authJWT, middleware.UserGuard(userRepo)},
		Admin:    []echo.MiddlewareFunc{authJWT, middleware.AdminGuard(adminRepo)},
	}

	//Handler生成
	e := New(cfg, log)
	RegisterRoutes(e, Handlers{
		Health:        handler.NewHealthHandler(sqlDB),
		Auth:          handler.NewAuthHandler(registerUC, loginUC, profileUC, logoutUC),
		Product:       handler.NewProductHandler(productUC, commentUC),
		Cart:          handler.NewCartHandler(cartUC),
		Order:         handler.NewOrderHandler(orderUC),
		Favorite:      handler.NewFavoriteHandler(favoriteUC),
		AdminAuth:     handler.NewAdminAuthHandler(adminAuthUC, logoutUC),
		AdminUser:     handler.NewAdminUserHandler(adminUserUC),
		AdminProduct:  handler.NewAdminProductHandler(adminProductUC),
		AdminCategory: handler.NewAdminCategoryHandler(categoryUC),
		AdminOrder:    handler.NewAdminOrderHandler(adminOrderUC),
		Analysis:      handler.NewAnalysisHandler(analyticsUC, auditUC),
	}, guards)

	return e, nil
}
