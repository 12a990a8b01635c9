package handler

import (
	"farmmall/internal/domain/model"
	"farmmall/internal/middleware"
	"farmmall/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

// 商品の作成/更新
type ProductCreateRequest struct {
	Name           string                `json:"name" validate:"required,max=255"`
	Price          decimal.Decimal       `json:"price"`
	Description    string                `json:"description"`
	Image          string                `json:"image" validate:"required"`
	Images         []string              `json:"images"`
	Stock          int64                 `json:"stock" validate:"gte=0"`
	Tags           []string              `json:"tags"`
	Specifications []model.Specification `json:"specifications"`
	CategoryID     string                `json:"categoryId" validate:"required"`
}

func (r ProductCreateRequest) input() usecase.ProductInput {
	return usecase.ProductInput{
		Name:           r.Name,
		Price:          r.Price,
		Description:    r.Description,
		Image:          r.Image,
		Images:         r.Images,
		Stock:          r.Stock,
		Tags:           r.Tags,
		Specifications: r.Specifications,
		CategoryID:     r.CategoryID,
	}
}

type batchDeleteRequest struct {
	IDs []string `json:"ids" validate:"required,min=1"`
}

// /admin/products
type AdminProductHandler struct {
	uc *usecase.AdminProductUsecase
}

// DI
func NewAdminProductHandler(uc *usecase.AdminProductUsecase) *AdminProductHandler {
	return &AdminProductHandler{uc: uc}
}

func (h *AdminProductHandler) RegisterRoutes(api *echo.Group, g Guards) {
	mw := append(append([]echo.MiddlewareFunc{}, g.Admin...), middleware.BackOfficeGuard(), middleware.ProductScope())
	r := api.Group("/admin/products", mw...)

	r.GET("", h.list)
	r.POST("", h.create)
	r.POST("/batch/delete", h.batchDelete)
	r.GET("/:id", h.get)
	r.PUT("/:id", h.update)
	r.DELETE("/:id", h.delete)
}

func (h *AdminProductHandler) list(c echo.Context) error {
	out, err := h.uc.List(c.Request().Context(), middleware.ScopeFrom(c), usecase.AdminListProductsInput{
		Page:       queryInt(c, "page"),
		PageSize:   queryInt(c, "pageSize"),
		Search:     c.QueryParam("search"),
		CategoryID: c.QueryParam("category"),
	})
	if err != nil {
		return writeError(c, err)
	}
	return ok(c, out)
}

func (h *AdminProductHandler) get(c echo.Context) error {
	out, err := h.uc.Get(c.Request().Context(), middleware.ScopeFrom(c), c.Param("id"))
	if err != nil {
		return writeError(c, err)
	}
	return ok(c, out)
}

func (h *AdminProductHandler) create(c echo.Context) error {
	var req ProductCreateRequest
	if err := bindAndValidate(c, &req); err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.Create(c.Request().Context(), middleware.ScopeFrom(c), req.input())
	if err != nil {
		return writeError(c, err)
	}
	return created(c, "created", out)
}

func (h *AdminProductHandler) update(c echo.Context) error {
	var req ProductCreateRequest
	if err := bindAndValidate(c, &req); err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.Update(c.Request().Context(), middleware.ScopeFrom(c), c.Param("id"), req.input())
	if err != nil {
		return writeError(c, err)
	}
	return ok(c, out)
}

func (h *AdminProductHandler) delete(c echo.Context) error {
	if err := h.uc.Delete(c.Request().Context(), middleware.ScopeFrom(c), c.Param("id")); err != nil {
		return writeError(c, err)
	}
	return okMessage(c, "deleted")
}

func (h *AdminProductHandler) batchDelete(c echo.Context) error {
	var req batchDeleteRequest
	if err := bindAndValidate(c, &req); err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.BatchDelete(c.Request().Context(), middleware.ScopeFrom(c), req.IDs)
	if err != nil {
		return writeError(c, err)
	}
	return ok(c, out)
}
