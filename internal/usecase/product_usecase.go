package usecase

import (
	"context"
	"strings"

	"farmmall/internal/domain/model"
	repo "farmmall/internal/repository"
)

const (
	searchLimit          = 10
	recommendCategories  = 5
	recommendPerCategory = 3
)

type ProductUsecase struct {
	productRepo  repo.ProductRepository
	categoryRepo repo.CategoryRepository
	favoriteRepo repo.FavoriteRepository
}

// DI
func NewProductUsecase(
	productRepo repo.ProductRepository,
	categoryRepo repo.CategoryRepository,
	favoriteRepo repo.FavoriteRepository,
) *ProductUsecase {
	return &ProductUsecase{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		favoriteRepo: favoriteRepo,
	}
}

// GET /productsの入力DTO
type ListProductsInput struct {
	Page     int
	PageSize int
	Category string
	Search   string
	// 未ログインなら空
	UserID string
}

type ProductSummary struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	Price      string   `json:"price"`
	Image      string   `json:"image"`
	Stock      int64    `json:"stock"`
	Tags       []string `json:"tags"`
	Category   string   `json:"category"`
	IsFavorite bool     `json:"isFavorite"`
}

type ProductDetail struct {
	ProductSummary
	Description    string                `json:"description"`
	Images         []string              `json:"images"`
	Specifications []model.Specification `json:"specifications"`
}

type SearchItem struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Price string `json:"price"`
	Image string `json:"image"`
	Stock int64  `json:"stock"`
}

type CategoryOutput struct {
	ID    string `json:"id"`
	Value string `json:"value"`
	Label string `json:"label"`
	Count int64  `json:"count"`
	Image string `json:"image"`
}

type RecommendOutput struct {
	CategoryOutput
	Products []SearchItem `json:"products"`
}

func (u *ProductUsecase) List(ctx context.Context, in ListProductsInput) (PageResult[ProductSummary], error) {
	page := NormalizePage(in.Page, in.PageSize)

	products, total, err := u.productRepo.ListPublic(ctx, repo.ProductListQuery{
		Page:          page,
		CategoryValue: strings.TrimSpace(in.Category),
		Search:        strings.TrimSpace(in.Search),
	})
	if err != nil {
		return PageResult[ProductSummary]{}, dbError(err)
	}

	values, err := u.categoryValues(ctx)
	if err != nil {
		return PageResult[ProductSummary]{}, err
	}
	favs, err := u.favorited(ctx, in.UserID, products)
	if err != nil {
		return PageResult[ProductSummary]{}, err
	}

	items := make([]ProductSummary, 0, len(products))
	for _, p := range products {
		items = append(items, toProductSummary(p, values[p.CategoryID], favs[p.ID]))
	}
	return PageResult[ProductSummary]{Total: total, Items: items}, nil
}

func (u *ProductUsecase) Search(ctx context.Context, keyword string) ([]SearchItem, error) {
	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		return []SearchItem{}, nil
	}

	products, err := u.productRepo.SearchByName(ctx, keyword, searchLimit)
	if err != nil {
		return nil, dbError(err)
	}
	out := make([]SearchItem, 0, len(products))
	for _, p := range products {
		out = append(out, toSearchItem(p))
	}
	return out, nil
}

func (u *ProductUsecase) Detail(ctx context.Context, productID string, userID string) (ProductDetail, error) {
	p, err := u.productRepo.FindByID(ctx, productID)
	if err != nil {
		return ProductDetail{}, notFoundOr(err, "product not found")
	}

	categoryValue := ""
	if c, err := u.categoryRepo.FindByID(ctx, p.CategoryID); err == nil {
		categoryValue = c.Value
	}

	favs, err := u.favorited(ctx, userID, []model.Product{p})
	if err != nil {
		return ProductDetail{}, err
	}

	specs := p.Specifications
	if specs == nil {
		specs = []model.Specification{}
	}
	return ProductDetail{
		ProductSummary: toProductSummary(p, categoryValue, favs[p.ID]),
		Description:    p.Description,
		Images:         p.Gallery(),
		Specifications: specs,
	}, nil
}

func (u *ProductUsecase) Categories(ctx context.Context) ([]CategoryOutput, error) {
	cs, err := u.categoryRepo.List(ctx)
	if err != nil {
		return nil, dbError(err)
	}
	out := make([]CategoryOutput, 0, len(cs))
	for _, c := range cs {
		out = append(out, toCategoryOutput(c, c.Count))
	}
	return out, nil
}

// 商品数の多いカテゴリ5件＋それぞれの新着3件
func (u *ProductUsecase) Recommend(ctx context.Context) ([]RecommendOutput, error) {
	cs, err := u.categoryRepo.ListTop(ctx, recommendCategories)
	if err != nil {
		return nil, dbError(err)
	}

	out := make([]RecommendOutput, 0, len(cs))
	for _, c := range cs {
		products, err := u.productRepo.ListNewestByCategory(ctx, c.ID, recommendPerCategory)
		if err != nil {
			return nil, dbError(err)
		}
		items := make([]SearchItem, 0, len(products))
		for _, p := range products {
			items = append(items, toSearchItem(p))
		}
		out = append(out, RecommendOutput{CategoryOutput: toCategoryOutput(c, c.Count), Products: items})
	}
	return out, nil
}

// category id → value
func (u *ProductUsecase) categoryValues(ctx context.Context) (map[string]string, error) {
	cs, err := u.categoryRepo.List(ctx)
	if err != nil {
		return nil, dbError(err)
	}
	out := make(map[string]string, len(cs))
	for _, c := range cs {
		out[c.ID] = c.Value
	}
	return out, nil
}

func (u *ProductUsecase) favorited(ctx context.Context, userID string, products []model.Product) (map[string]bool, error) {
	if userID == "" || len(products) == 0 {
		return map[string]bool{}, nil
	}
	ids := make([]string, 0, len(products))
	for _, p := range products {
		ids = append(ids, p.ID)
	}
	favs, err := u.favoriteRepo.FavoritedProductIDs(ctx, userID, ids)
	if err != nil {
		return nil, dbError(err)
	}
	return favs, nil
}

func toProductSummary(p model.Product, categoryValue string, fav bool) ProductSummary {
	tags := p.Tags
	if tags == nil {
		tags = []string{}
	}
	return ProductSummary{
		ID:         p.ID,
		Name:       p.Name,
		Price:      p.Price.StringFixed(2),
		Image:      p.Image,
		Stock:      p.Stock,
		Tags:       tags,
		Category:   categoryValue,
		IsFavorite: fav,
	}
}

func toSearchItem(p model.Product) SearchItem {
	return SearchItem{
		ID:    p.ID,
		Name:  p.Name,
		Price: p.Price.StringFixed(2),
		Image: p.Image,
		Stock: p.Stock,
	}
}

func toCategoryOutput(c model.Category, count int64) CategoryOutput {
	return CategoryOutput{
		ID:    c.ID,
		Value: c.Value,
		Label: c.Label,
		Count: count,
		Image: c.Image,
	}
}
