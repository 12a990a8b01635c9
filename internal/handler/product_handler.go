package handler

import (
	"farmmall/internal/middleware"
	"farmmall/internal/usecase"

	"github.com/labstack/echo/v4"
)

// /products と /categories の公開API
type ProductHandler struct {
	uc        *usecase.ProductUsecase
	commentUC *usecase.CommentUsecase
}

// DI
func NewProductHandler(uc *usecase.ProductUsecase, commentUC *usecase.CommentUsecase) *ProductHandler {
	return &ProductHandler{uc: uc, commentUC: commentUC}
}

type commentRequest struct {
	Rating  int    `json:"rating" validate:"gte=1,lte=5"`
	Content string `json:"content" validate:"required,max=1000"`
}

// 公開商品のルートを登録
func (h *ProductHandler) RegisterRoutes(api *echo.Group, g Guards) {
	api.GET("/products", h.list, g.Optional)
	api.GET("/products/search", h.search)
	api.GET("/products/:id", h.detail, g.Optional)
	api.GET("/products/:id/comments", h.comments)
	api.POST("/products/:id/comments", h.comment, g.User...)

	api.GET("/categories", h.categories)
	api.GET("/categories/recommend", h.recommend)
}

func (h *ProductHandler) list(c echo.Context) error {
	out, err := h.uc.List(c.Request().Context(), usecase.ListProductsInput{
		Page:     queryInt(c, "page"),
		PageSize: queryInt(c, "pageSize"),
		Category: c.QueryParam("category"),
		Search:   c.QueryParam("search"),
		UserID:   middleware.UserID(c),
	})
	if err != nil {
		return writeError(c, err)
	}
	return ok(c, out)
}

func (h *ProductHandler) search(c echo.Context) error {
	out, err := h.uc.Search(c.Request().Context(), c.QueryParam("keyword"))
	if err != nil {
		return writeError(c, err)
	}
	return ok(c, out)
}

func (h *ProductHandler) detail(c echo.Context) error {
	out, err := h.uc.Detail(c.Request().Context(), c.Param("id"), middleware.UserID(c))
	if err != nil {
		return writeError(c, err)
	}
	return ok(c, out)
}

func (h *ProductHandler) comments(c echo.Context) error {
	out, err := h.commentUC.List(c.Request().Context(), c.Param("id"), queryInt(c, "page"), queryInt(c, "pageSize"))
	if err != nil {
		return writeError(c, err)
	}
	return ok(c, out)
}

func (h *ProductHandler) comment(c echo.Context) error {
	var req commentRequest
	if err := bindAndValidate(c, &req); err != nil {
		return writeError(c, err)
	}
	out, err := h.commentUC.Create(c.Request().Context(), middleware.UserID(c), c.Param("id"), usecase.CreateCommentInput{
		Rating:  req.Rating,
		Content: req.Content,
	})
	if err != nil {
		return writeError(c, err)
	}
	return created(c, "commented", out)
}

func (h *ProductHandler) categories(c echo.Context) error {
	out, err := h.uc.Categories(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return ok(c, out)
}

func (h *ProductHandler) recommend(c echo.Context) error {
	out, err := h.uc.Recommend(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return ok(c, out)
}
