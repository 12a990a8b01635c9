package repository

import (
	"context"
	"testing"
	"time"

	"farmmall/internal/domain/model"
	"farmmall/internal/infra/db/dbtest"
	repo "farmmall/internal/repository"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fixture struct {
	db       *gorm.DB
	user     model.User
	merchant model.Admin
	category model.Category
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	gdb := dbtest.Open(t)

	f := fixture{db: gdb}
	f.user = model.User{Username: "alice", Password: "x", Status: model.AccountStatusActive}
	require.NoError(t, gdb.Create(&f.user).Error)
	f.merchant = model.Admin{Username: "farm", Password: "x", Role: model.RoleMerchant, Status: model.AccountStatusActive}
	require.NoError(t, gdb.Create(&f.merchant).Error)
	f.category = model.Category{Value: "fruit", Label: "Fruit", Image: "fruit.png"}
	require.NoError(t, gdb.Create(&f.category).Error)
	return f
}

func (f fixture) product(t *testing.T, name string, price string, stock int64, owner string) model.Product {
	t.Helper()
	p := model.Product{
		Name:       name,
		Price:      decimal.RequireFromString(price),
		Image:      name + ".png",
		Stock:      stock,
		CategoryID: f.category.ID,
		CreatedBy:  owner,
	}
	require.NoError(t, f.db.Create(&p).Error)
	return p
}

func TestProductRepository_Scope(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	r := NewProductGormRepository(f.db)

	own := f.product(t, "apple", "3.50", 10, f.merchant.ID)
	other := f.product(t, "pear", "4.00", 10, "someone-else")

	_, err := r.FindScoped(ctx, other.ID, &f.merchant.ID)
	assert.ErrorIs(t, err, repo.ErrNotFound)

	got, err := r.FindScoped(ctx, own.ID, &f.merchant.ID)
	require.NoError(t, err)
	assert.Equal(t, "apple", got.Name)

	list, total, err := r.ListAdmin(ctx, repo.AdminProductListQuery{Page: repo.Page{Page: 1, PageSize: 10}, OwnerID: &f.merchant.ID})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, list, 1)
	assert.Equal(t, own.ID, list[0].ID)

	scoped, err := r.FindScopedByIDs(ctx, []string{own.ID, other.ID}, &f.merchant.ID)
	require.NoError(t, err)
	assert.Len(t, scoped, 1)

	// adminは全部見える
	all, err := r.FindScopedByIDs(ctx, []string{own.ID, other.ID}, nil)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestProductRepository_ListPublic(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	r := NewProductGormRepository(f.db)

	f.product(t, "Red Apple", "3.50", 10, f.merchant.ID)
	f.product(t, "Pear", "4.00", 10, f.merchant.ID)

	list, total, err := r.ListPublic(ctx, repo.ProductListQuery{Page: repo.Page{Page: 1, PageSize: 10}, CategoryValue: "fruit", Search: "apple"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, list, 1)
	assert.Equal(t, "Red Apple", list[0].Name)

	_, total, err = r.ListPublic(ctx, repo.ProductListQuery{Page: repo.Page{Page: 1, PageSize: 10}, CategoryValue: "veg"})
	require.NoError(t, err)
	assert.Zero(t, total)

	counts, err := r.CountByCategories(ctx, []string{f.category.ID})
	require.NoError(t, err)
	assert.Equal(t, int64(2), counts[f.category.ID])
}

func TestProductRepository_SoftDelete(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	r := NewProductGormRepository(f.db)
	p := f.product(t, "apple", "3.50", 10, f.merchant.ID)

	require.NoError(t, r.DeleteByIDs(ctx, []string{p.ID}))
	_, err := r.FindByID(ctx, p.ID)
	assert.ErrorIs(t, err, repo.ErrNotFound)

	n, err := r.CountByCategory(ctx, f.category.ID)
	require.NoError(t, err)
	assert.Zero(t, n)

	// 削除済みでも在庫は戻せる
	inv := NewInventoryGormRepository(f.db)
	require.NoError(t, inv.IncreaseStock(ctx, p.ID, 2))
}

func TestCartRepository_ListAndDelete(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	r := NewCartGormRepository(f.db)
	p := f.product(t, "apple", "3.50", 10, f.merchant.ID)

	c := model.Cart{UserID: f.user.ID, ProductID: p.ID, Quantity: 2, Selected: true}
	require.NoError(t, r.Create(ctx, &c))

	lines, err := r.ListByUserID(ctx, f.user.ID)
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, "apple", lines[0].Name)
	assert.True(t, decimal.RequireFromString("3.50").Equal(lines[0].Price))
	assert.Equal(t, int64(2), lines[0].Quantity)

	assert.ErrorIs(t, r.DeleteForUser(ctx, c.ID, "someone-else"), repo.ErrNotFound)

	require.NoError(t, r.DeleteByUserAndProducts(ctx, f.user.ID, []string{p.ID}))
	lines, err = r.ListByUserID(ctx, f.user.ID)
	require.NoError(t, err)
	assert.Empty(t, lines)
}

func TestOrderRepository_AdminListAndStatus(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	r := NewOrderGormRepository(f.db)
	p := f.product(t, "apple", "3.50", 10, f.merchant.ID)

	o := model.Order{
		OrderNo:     "ORDER1",
		UserID:      f.user.ID,
		Status:      model.OrderStatusPending,
		TotalAmount: decimal.RequireFromString("7.00"),
		Address:     model.Address{Name: "A", Phone: "1", Detail: "x"},
	}
	require.NoError(t, r.Create(ctx, &o))
	items := NewOrderItemGormRepository(f.db)
	require.NoError(t, items.CreateBulk(ctx, o.ID, []model.OrderItem{{ProductID: p.ID, Quantity: 2, Price: p.Price}}))

	rows, total, err := r.ListAdmin(ctx, repo.AdminOrderListFilter{Page: repo.Page{Page: 1, PageSize: 10}, Search: "ALI"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, rows, 1)
	assert.Equal(t, "alice", rows[0].Username)
	assert.Equal(t, "A", rows[0].Address.Name)

	ok, err := r.UpdateStatusIf(ctx, o.ID, model.OrderStatusPaid, model.OrderStatusCompleted)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = r.UpdateStatusIf(ctx, o.ID, model.OrderStatusPending, model.OrderStatusPaid)
	require.NoError(t, err)
	assert.True(t, ok)

	lines, err := items.ListByOrderID(ctx, o.ID)
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, "apple", lines[0].Name)

	require.NoError(t, r.Delete(ctx, o.ID))
	lines, err = items.ListByOrderID(ctx, o.ID)
	require.NoError(t, err)
	assert.Empty(t, lines)
	assert.ErrorIs(t, r.Delete(ctx, o.ID), repo.ErrNotFound)
}

func TestAnalyticsRepository_HotProducts(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	apple := f.product(t, "apple", "3.50", 10, f.merchant.ID)
	pear := f.product(t, "pear", "2.00", 10, f.merchant.ID)

	orders := NewOrderGormRepository(f.db)
	items := NewOrderItemGormRepository(f.db)
	place := func(status model.OrderStatus, p model.Product, qty int64) {
		o := model.Order{
			OrderNo:     "ORDER" + p.Name + string(status),
			UserID:      f.user.ID,
			Status:      status,
			TotalAmount: p.Price.Mul(decimal.NewFromInt(qty)),
			CreateTime:  time.Now(),
		}
		require.NoError(t, orders.Create(ctx, &o))
		require.NoError(t, items.CreateBulk(ctx, o.ID, []model.OrderItem{{ProductID: p.ID, Quantity: qty, Price: p.Price}}))
	}
	place(model.OrderStatusPaid, apple, 2)
	place(model.OrderStatusCompleted, pear, 5)
	place(model.OrderStatusPending, apple, 100)

	r := NewAnalyticsGormRepository(f.db)
	rows, err := r.HotProducts(ctx, model.QualifyingStatuses, 10)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "pear", rows[0].Name)
	assert.Equal(t, int64(5), rows[0].TotalSales)
	assert.True(t, decimal.RequireFromString("10.00").Equal(rows[0].TotalAmount))
	assert.Equal(t, "apple", rows[1].Name)
	assert.True(t, decimal.RequireFromString("7.00").Equal(rows[1].TotalAmount))

	sum, err := r.SumOrderAmount(ctx, model.QualifyingStatuses, nil)
	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("17.00").Equal(sum))

	n, err := r.CountOrders(ctx, model.QualifyingStatuses, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
}

func TestFavoriteRepository(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	r := NewFavoriteGormRepository(f.db)
	p := f.product(t, "apple", "3.50", 10, f.merchant.ID)

	require.NoError(t, r.Create(ctx, &model.Favorite{UserID: f.user.ID, ProductID: p.ID}))
	err := r.Create(ctx, &model.Favorite{UserID: f.user.ID, ProductID: p.ID})
	assert.ErrorIs(t, err, repo.ErrDuplicate)

	ids, err := r.FavoritedProductIDs(ctx, f.user.ID, []string{p.ID, "other"})
	require.NoError(t, err)
	assert.Equal(t, map[string]bool{p.ID: true}, ids)

	lines, total, err := r.ListByUser(ctx, f.user.ID, repo.Page{Page: 1, PageSize: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, lines, 1)
	assert.Equal(t, "apple", lines[0].Name)

	require.NoError(t, r.DeleteByProductForUser(ctx, p.ID, f.user.ID))
	assert.ErrorIs(t, r.DeleteByProductForUser(ctx, p.ID, f.user.ID), repo.ErrNotFound)
}

func TestCategoryRepository_AdjustCount(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	r := NewCategoryGormRepository(f.db)

	require.NoError(t, r.AdjustCount(ctx, f.category.ID, 2))
	require.NoError(t, r.AdjustCount(ctx, f.category.ID, -5))

	c, err := r.FindByID(ctx, f.category.ID)
	require.NoError(t, err)
	assert.Zero(t, c.Count)
}

func TestAuditLogRepository_List(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	r := NewAuditLogGormRepository(f.db)

	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	entries := []model.AuditLog{
		{ActorAdminID: "root", Action: model.AuditActionDeleteProduct, ResourceType: model.AuditResourceProduct, ResourceID: "p1", CreatedAt: base},
		{ActorAdminID: "root", Action: model.AuditActionUpdateOrderStatus, ResourceType: model.AuditResourceOrder, ResourceID: "o1", CreatedAt: base.Add(time.Minute)},
		{ActorAdminID: f.merchant.ID, Action: model.AuditActionDeleteProduct, ResourceType: model.AuditResourceProduct, ResourceID: "p2", CreatedAt: base.Add(2 * time.Minute)},
		{ActorAdminID: "root", Action: model.AuditActionUpdateOrderStatus, ResourceType: model.AuditResourceOrder, ResourceID: "o1", CreatedAt: base.Add(3 * time.Minute)},
	}
	for _, e := range entries {
		require.NoError(t, r.Create(ctx, e))
	}

	resources := func(logs []model.AuditLog) []string {
		out := make([]string, 0, len(logs))
		for _, l := range logs {
			out = append(out, l.ResourceID)
		}
		return out
	}

	all, err := r.List(ctx, repo.AuditLogFilter{})
	require.NoError(t, err)
	assert.Equal(t, []string{"o1", "p2", "o1", "p1"}, resources(all))

	root := "root"
	byActor, err := r.List(ctx, repo.AuditLogFilter{ActorAdminID: &root})
	require.NoError(t, err)
	assert.Equal(t, []string{"o1", "o1", "p1"}, resources(byActor))

	kind := model.AuditResourceProduct
	products, err := r.List(ctx, repo.AuditLogFilter{ActorAdminID: &root, ResourceType: &kind})
	require.NoError(t, err)
	assert.Equal(t, []string{"p1"}, resources(products))

	order := "o1"
	action := model.AuditActionUpdateOrderStatus
	history, err := r.List(ctx, repo.AuditLogFilter{Action: &action, ResourceID: &order, Limit: 1, Offset: 1})
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, base.Add(time.Minute).Unix(), history[0].CreatedAt.Unix())

	// 範囲外のlimit/offsetは既定値に寄せる
	clamped, err := r.List(ctx, repo.AuditLogFilter{Limit: 1000, Offset: -3})
	require.NoError(t, err)
	assert.Len(t, clamped, 4)
}
