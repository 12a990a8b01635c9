package usecase

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"farmmall/internal/domain/model"
	"farmmall/internal/policy"
	repo "farmmall/internal/repository"

	"github.com/shopspring/decimal"
)

// 管理画面の商品管理（merchantは自分の商品だけ）
type AdminProductUsecase struct {
	tx           repo.TransactionManager
	productRepo  repo.ProductRepository
	categoryRepo repo.CategoryRepository
	adminRepo    repo.AdminRepository
}

// DI
func NewAdminProductUsecase(
	tx repo.TransactionManager,
	productRepo repo.ProductRepository,
	categoryRepo repo.CategoryRepository,
	adminRepo repo.AdminRepository,
) *AdminProductUsecase {
	return &AdminProductUsecase{
		tx:           tx,
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		adminRepo:    adminRepo,
	}
}

type AdminListProductsInput struct {
	Page       int
	PageSize   int
	Search     string
	CategoryID string
}

// 作成/更新の入力
type ProductInput struct {
	Name           string
	Price          decimal.Decimal
	Description    string
	Image          string
	Images         []string
	Stock          int64
	Tags           []string
	Specifications []model.Specification
	CategoryID     string
}

type CategoryRef struct {
	ID    string `json:"id"`
	Value string `json:"value"`
	Label string `json:"label"`
}

type CreatorRef struct {
	ID       string     `json:"id"`
	Username string     `json:"username"`
	Role     model.Role `json:"role"`
}

type AdminProductOutput struct {
	ID             string                `json:"id"`
	Name           string                `json:"name"`
	Price          string                `json:"price"`
	Description    string                `json:"description"`
	Image          string                `json:"image"`
	Images         []string              `json:"images"`
	Stock          int64                 `json:"stock"`
	Tags           []string              `json:"tags"`
	Specifications []model.Specification `json:"specifications"`
	CategoryID     string                `json:"categoryId"`
	Category       *CategoryRef          `json:"category"`
	Creator        *CreatorRef           `json:"creator"`
	CreatedAt      time.Time             `json:"createdAt"`
	UpdatedAt      time.Time             `json:"updatedAt"`
}

// batch deleteで見つからなかったID
type BatchDeleteFailure struct {
	UnauthorizedIDs []string `json:"unauthorizedIds,omitempty"`
	NotFoundIDs     []string `json:"notFoundIds,omitempty"`
}

type BatchDeleteOutput struct {
	DeletedCount int `json:"deletedCount"`
}

func (u *AdminProductUsecase) List(ctx context.Context, scope policy.ProductScope, in AdminListProductsInput) (PageResult[AdminProductOutput], error) {
	products, total, err := u.productRepo.ListAdmin(ctx, repo.AdminProductListQuery{
		Page:       NormalizePage(in.Page, in.PageSize),
		Search:     in.Search,
		CategoryID: strings.TrimSpace(in.CategoryID),
		OwnerID:    scope.OwnerFilter(),
	})
	if err != nil {
		return PageResult[AdminProductOutput]{}, dbError(err)
	}

	items, err := u.decorate(ctx, products)
	if err != nil {
		return PageResult[AdminProductOutput]{}, err
	}
	return PageResult[AdminProductOutput]{Total: total, Items: items}, nil
}

func (u *AdminProductUsecase) Get(ctx context.Context, scope policy.ProductScope, id string) (AdminProductOutput, error) {
	p, err := u.productRepo.FindScoped(ctx, id, scope.OwnerFilter())
	if err != nil {
		return AdminProductOutput{}, notFoundOr(err, "product not found")
	}
	items, err := u.decorate(ctx, []model.Product{p})
	if err != nil {
		return AdminProductOutput{}, err
	}
	return items[0], nil
}

func (u *AdminProductUsecase) Create(ctx context.Context, scope policy.ProductScope, in ProductInput) (AdminProductOutput, error) {
	if err := validateProductInput(in); err != nil {
		return AdminProductOutput{}, err
	}

	p := model.Product{
		Name:           strings.TrimSpace(in.Name),
		Price:          in.Price,
		Description:    in.Description,
		Image:          strings.TrimSpace(in.Image),
		Images:         in.Images,
		Stock:          in.Stock,
		Tags:           in.Tags,
		Specifications: in.Specifications,
		CategoryID:     in.CategoryID,
		CreatedBy:      scope.AdminID,
	}

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		if _, err := r.Categories().FindByID(ctx, in.CategoryID); err != nil {
			return categoryMissing(err)
		}
		if err := r.Products().Create(ctx, &p); err != nil {
			return dbError(err)
		}
		if err := r.Categories().AdjustCount(ctx, in.CategoryID, 1); err != nil {
			return dbError(err)
		}
		if p.Stock > 0 {
			if err := r.Inventory().CreateAdjustment(ctx, model.InventoryAdjustment{
				ProductID: p.ID,
				Delta:     p.Stock,
				Reason:    "initial stock",
			}); err != nil {
				return dbError(err)
			}
		}
		return nil
	})
	if err != nil {
		return AdminProductOutput{}, passThrough(err)
	}

	return u.Get(ctx, scope, p.ID)
}

func (u *AdminProductUsecase) Update(ctx context.Context, scope policy.ProductScope, id string, in ProductInput) (AdminProductOutput, error) {
	if err := validateProductInput(in); err != nil {
		return AdminProductOutput{}, err
	}

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		cur, err := r.Products().FindScoped(ctx, id, scope.OwnerFilter())
		if err != nil {
			return notFoundOr(err, "product not found")
		}

		// カテゴリ変更ならcountを付け替える
		if in.CategoryID != cur.CategoryID {
			if _, err := r.Categories().FindByID(ctx, in.CategoryID); err != nil {
				return categoryMissing(err)
			}
			if err := r.Categories().AdjustCount(ctx, cur.CategoryID, -1); err != nil {
				return dbError(err)
			}
			if err := r.Categories().AdjustCount(ctx, in.CategoryID, 1); err != nil {
				return dbError(err)
			}
		}

		// 在庫の手動変更は履歴に残す
		if delta := in.Stock - cur.Stock; delta != 0 {
			if err := r.Inventory().CreateAdjustment(ctx, model.InventoryAdjustment{
				ProductID: id,
				Delta:     delta,
				Reason:    "admin edit",
			}); err != nil {
				return dbError(err)
			}
		}

		next := cur
		next.Name = strings.TrimSpace(in.Name)
		next.Price = in.Price
		next.Description = in.Description
		next.Image = strings.TrimSpace(in.Image)
		next.Images = in.Images
		next.Stock = in.Stock
		next.Tags = in.Tags
		next.Specifications = in.Specifications
		next.CategoryID = in.CategoryID

		if err := r.Products().Update(ctx, next); err != nil {
			return notFoundOr(err, "product not found")
		}
		return nil
	})
	if err != nil {
		return AdminProductOutput{}, passThrough(err)
	}

	return u.Get(ctx, scope, id)
}

func (u *AdminProductUsecase) Delete(ctx context.Context, scope policy.ProductScope, id string) error {
	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		p, err := r.Products().FindScoped(ctx, id, scope.OwnerFilter())
		if err != nil {
			return notFoundOr(err, "product not found")
		}
		return deleteProducts(ctx, r, scope.AdminID, []model.Product{p})
	})
	if err != nil {
		return passThrough(err)
	}
	return nil
}

// 1件でもスコープ外/存在しないIDがあれば何も消さない
func (u *AdminProductUsecase) BatchDelete(ctx context.Context, scope policy.ProductScope, ids []string) (BatchDeleteOutput, error) {
	ids = uniqueStrings(ids)
	if len(ids) == 0 {
		return BatchDeleteOutput{}, NewHTTPError(http.StatusBadRequest, "ids are required")
	}

	var out BatchDeleteOutput
	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		found, err := r.Products().FindScopedByIDs(ctx, ids, scope.OwnerFilter())
		if err != nil {
			return dbError(err)
		}

		if missing := missingIDs(ids, found); len(missing) > 0 {
			if scope.IsMerchant() {
				return NewHTTPErrorWithData(http.StatusForbidden, "no permission to delete some products", BatchDeleteFailure{UnauthorizedIDs: missing})
			}
			return NewHTTPErrorWithData(http.StatusNotFound, "some products were not found", BatchDeleteFailure{NotFoundIDs: missing})
		}

		if err := deleteProducts(ctx, r, scope.AdminID, found); err != nil {
			return err
		}
		out.DeletedCount = len(found)
		return nil
	})
	if err != nil {
		return BatchDeleteOutput{}, passThrough(err)
	}
	return out, nil
}

// カテゴリごとにcountを減らしてまとめて削除
func deleteProducts(ctx context.Context, r repo.TxRepos, actorAdminID string, products []model.Product) error {
	perCategory := make(map[string]int64)
	ids := make([]string, 0, len(products))
	for _, p := range products {
		perCategory[p.CategoryID]++
		ids = append(ids, p.ID)
	}

	if err := r.Products().DeleteByIDs(ctx, ids); err != nil {
		return notFoundOr(err, "product not found")
	}
	for categoryID, n := range perCategory {
		if err := r.Categories().AdjustCount(ctx, categoryID, -n); err != nil {
			return dbError(err)
		}
	}
	for _, p := range products {
		if err := writeAudit(ctx, r.AuditLogs(), auditEntry{
			actor:        actorAdminID,
			action:       model.AuditActionDeleteProduct,
			resourceType: model.AuditResourceProduct,
			resourceID:   p.ID,
			before:       p,
		}); err != nil {
			return dbError(err)
		}
	}
	return nil
}

// category/creator を付ける
func (u *AdminProductUsecase) decorate(ctx context.Context, products []model.Product) ([]AdminProductOutput, error) {
	categories, err := u.categoryRepo.List(ctx)
	if err != nil {
		return nil, dbError(err)
	}
	catByID := make(map[string]model.Category, len(categories))
	for _, c := range categories {
		catByID[c.ID] = c
	}

	creatorIDs := make([]string, 0, len(products))
	for _, p := range products {
		if p.CreatedBy != "" {
			creatorIDs = append(creatorIDs, p.CreatedBy)
		}
	}
	admins, err := u.adminRepo.FindByIDs(ctx, uniqueStrings(creatorIDs))
	if err != nil {
		return nil, dbError(err)
	}
	adminByID := make(map[string]model.Admin, len(admins))
	for _, a := range admins {
		adminByID[a.ID] = a
	}

	out := make([]AdminProductOutput, 0, len(products))
	for _, p := range products {
		o := AdminProductOutput{
			ID:             p.ID,
			Name:           p.Name,
			Price:          p.Price.StringFixed(2),
			Description:    p.Description,
			Image:          p.Image,
			Images:         p.Gallery(),
			Stock:          p.Stock,
			Tags:           nonNilStrings(p.Tags),
			Specifications: p.Specifications,
			CategoryID:     p.CategoryID,
			CreatedAt:      p.CreatedAt,
			UpdatedAt:      p.UpdatedAt,
		}
		if o.Specifications == nil {
			o.Specifications = []model.Specification{}
		}
		if c, ok := catByID[p.CategoryID]; ok {
			o.Category = &CategoryRef{ID: c.ID, Value: c.Value, Label: c.Label}
		}
		if a, ok := adminByID[p.CreatedBy]; ok {
			o.Creator = &CreatorRef{ID: a.ID, Username: a.Username, Role: a.Role}
		}
		out = append(out, o)
	}
	return out, nil
}

func validateProductInput(in ProductInput) error {
	switch {
	case strings.TrimSpace(in.Name) == "":
		return NewHTTPError(http.StatusBadRequest, "name is required")
	case strings.TrimSpace(in.Image) == "":
		return NewHTTPError(http.StatusBadRequest, "image is required")
	case in.Price.IsNegative():
		return NewHTTPError(http.StatusBadRequest, "price must not be negative")
	case in.Stock < 0:
		return NewHTTPError(http.StatusBadRequest, "stock must not be negative")
	case strings.TrimSpace(in.CategoryID) == "":
		return NewHTTPError(http.StatusBadRequest, "categoryId is required")
	}
	return nil
}

func categoryMissing(err error) error {
	if errors.Is(err, repo.ErrNotFound) {
		return NewHTTPError(http.StatusBadRequest, "category not found")
	}
	return dbError(err)
}

func missingIDs(ids []string, found []model.Product) []string {
	seen := make(map[string]bool, len(found))
	for _, p := range found {
		seen[p.ID] = true
	}
	var missing []string
	for _, id := range ids {
		if !seen[id] {
			missing = append(missing, id)
		}
	}
	return missing
}

func uniqueStrings(in []string) []string {
	seen := make(map[string]bool, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		s = strings.TrimSpace(s)
		if s == "" || seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	return out
}

func nonNilStrings(in []string) []string {
	if in == nil {
		return []string{}
	}
	return in
}
