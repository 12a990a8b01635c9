package usecase

import (
	"context"
	"testing"
	"time"

	"farmmall/internal/domain/model"
	"farmmall/internal/infra/db/dbtest"
	infrarepo "farmmall/internal/infra/repository"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func seedOrder(t *testing.T, db *gorm.DB, userID string, status model.OrderStatus, at time.Time, lines map[*model.Product]int64) model.Order {
	t.Helper()
	total := decimal.Zero
	for p, qty := range lines {
		total = total.Add(p.Price.Mul(decimal.NewFromInt(qty)))
	}
	o := model.Order{
		OrderNo:     newOrderNo(at),
		UserID:      userID,
		Status:      status,
		TotalAmount: total,
		Address:     testAddress,
		CreateTime:  at,
	}
	require.NoError(t, db.Create(&o).Error)
	for p, qty := range lines {
		require.NoError(t, db.Create(&model.OrderItem{OrderID: o.ID, ProductID: p.ID, Quantity: qty, Price: p.Price}).Error)
	}
	return o
}

func TestAnalytics(t *testing.T) {
	gdb := dbtest.Open(t)
	ctx := context.Background()

	now := time.Date(2026, 3, 10, 14, 0, 0, 0, time.Local)
	today := startOfDay(now)
	yesterday := today.Add(-time.Hour)

	uc := NewAnalyticsUsecase(infrarepo.NewAnalyticsGormRepository(gdb), infrarepo.NewUserGormRepository(gdb))
	uc.now = func() time.Time { return now }

	require.NoError(t, gdb.Create(&model.User{Username: "old", Password: "x", Status: model.AccountStatusActive, CreatedAt: yesterday}).Error)
	fresh := model.User{Username: "fresh", Password: "x", Status: model.AccountStatusActive, CreatedAt: today.Add(2 * time.Hour)}
	require.NoError(t, gdb.Create(&fresh).Error)

	cat := model.Category{Value: "veg", Label: "Veg", Image: "veg.png"}
	require.NoError(t, gdb.Create(&cat).Error)
	carrot := model.Product{Name: "carrot", Price: decimal.RequireFromString("2.50"), Image: "c.png", Stock: 100, CategoryID: cat.ID}
	melon := model.Product{Name: "melon", Price: decimal.RequireFromString("12.00"), Image: "m.png", Stock: 100, CategoryID: cat.ID}
	require.NoError(t, gdb.Create(&carrot).Error)
	require.NoError(t, gdb.Create(&melon).Error)

	// 昨日: 売上には入るが今日には入らない
	seedOrder(t, gdb, fresh.ID, model.OrderStatusCompleted, yesterday, map[*model.Product]int64{&melon: 1})
	// 今日 01:30 / 13:00 / 13:59
	seedOrder(t, gdb, fresh.ID, model.OrderStatusPaid, today.Add(90*time.Minute), map[*model.Product]int64{&carrot: 4})
	seedOrder(t, gdb, fresh.ID, model.OrderStatusShipping, today.Add(13*time.Hour), map[*model.Product]int64{&carrot: 2, &melon: 1})
	seedOrder(t, gdb, fresh.ID, model.OrderStatusPaid, today.Add(13*time.Hour+59*time.Minute), map[*model.Product]int64{&carrot: 1})
	// 未払い/キャンセルは数えない
	seedOrder(t, gdb, fresh.ID, model.OrderStatusPending, today.Add(10*time.Hour), map[*model.Product]int64{&melon: 5})
	seedOrder(t, gdb, fresh.ID, model.OrderStatusCancelled, today.Add(11*time.Hour), map[*model.Product]int64{&melon: 5})

	t.Run("statistics", func(t *testing.T) {
		st, err := uc.Statistics(ctx)
		require.NoError(t, err)

		// 12 + 10 + 17 + 2.5
		assert.Equal(t, 41.5, st.TotalSales)
		assert.Equal(t, 29.5, st.TodaySales)
		assert.Equal(t, int64(4), st.TotalOrders)
		assert.Equal(t, int64(3), st.TodayOrders)
		assert.Equal(t, int64(2), st.TotalUsers)
		assert.Equal(t, int64(1), st.TodayUsers)
	})

	t.Run("sales trend", func(t *testing.T) {
		points, err := uc.SalesTrend(ctx)
		require.NoError(t, err)
		require.Len(t, points, 9)

		assert.Equal(t, "00:00", points[0].Time)
		assert.Equal(t, "24:00", points[8].Time)

		assert.Equal(t, int64(1), points[0].Orders)
		assert.Equal(t, 10.0, points[0].Sales)
		assert.Equal(t, int64(2), points[4].Orders)
		assert.Equal(t, 19.5, points[4].Sales)
		for _, i := range []int{1, 2, 3, 5, 6, 7, 8} {
			assert.Zero(t, points[i].Orders, points[i].Time)
		}
	})

	t.Run("hot products", func(t *testing.T) {
		hot, err := uc.HotProducts(ctx)
		require.NoError(t, err)
		require.Len(t, hot, 2)

		assert.Equal(t, HotProductOutput{Key: "1", Index: 1, Name: "carrot", Sales: 7, Amount: "￥17.50"}, hot[0])
		assert.Equal(t, HotProductOutput{Key: "2", Index: 2, Name: "melon", Sales: 2, Amount: "￥24.00"}, hot[1])
	})
}

func TestAnalytics_EmptyStore(t *testing.T) {
	gdb := dbtest.Open(t)
	uc := NewAnalyticsUsecase(infrarepo.NewAnalyticsGormRepository(gdb), infrarepo.NewUserGormRepository(gdb))

	st, err := uc.Statistics(context.Background())
	require.NoError(t, err)
	assert.Equal(t, StatisticsOutput{}, st)

	hot, err := uc.HotProducts(context.Background())
	require.NoError(t, err)
	assert.Empty(t, hot)
	assert.NotNil(t, hot)
}
