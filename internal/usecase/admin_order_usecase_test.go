package usecase

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"

	"farmmall/internal/domain/model"
	repo "farmmall/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type adminOrderDeps struct {
	tx        *TxManagerMock
	orders    *OrderRepoMock
	items     *OrderItemRepoMock
	inventory *InventoryRepoMock
	audit     *AuditRepoMock
	uc        *AdminOrderUsecase
}

func newAdminOrderDeps() adminOrderDeps {
	d := adminOrderDeps{
		orders:    new(OrderRepoMock),
		items:     new(OrderItemRepoMock),
		inventory: new(InventoryRepoMock),
		audit:     new(AuditRepoMock),
	}
	d.tx = &TxManagerMock{Repos: &txReposMock{
		orders:     d.orders,
		orderItems: d.items,
		inventory:  d.inventory,
		auditLogs:  d.audit,
	}}
	d.uc = NewAdminOrderUsecase(d.tx, d.orders, d.items)
	return d
}

func (d adminOrderDeps) assertExpectations(t *testing.T) {
	d.tx.AssertExpectations(t)
	d.orders.AssertExpectations(t)
	d.items.AssertExpectations(t)
	d.inventory.AssertExpectations(t)
	d.audit.AssertExpectations(t)
}

func statusOf(t *testing.T, err error) int {
	t.Helper()
	he, ok := AsHTTPError(err)
	require.True(t, ok, "expected HTTPError, got %v", err)
	return he.Status
}

func auditWith(action model.AuditAction, resourceID string) any {
	return mock.MatchedBy(func(l model.AuditLog) bool {
		return l.Action == action && l.ResourceID == resourceID && l.ActorAdminID == "admin-1"
	})
}

func TestAdminOrderUpdateStatus_InvalidStatus(t *testing.T) {
	d := newAdminOrderDeps()

	err := d.uc.UpdateStatus(context.Background(), "admin-1", "o1", "lost")
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, statusOf(t, err))

	// Txにも入らない
	d.tx.AssertNotCalled(t, "WithinTx", mock.Anything)
}

func TestAdminOrderUpdateStatus_NotFound(t *testing.T) {
	d := newAdminOrderDeps()
	ctx := context.Background()

	d.tx.On("WithinTx", ctx).Return()
	d.orders.On("FindByID", ctx, "missing").Return(model.Order{}, repo.ErrNotFound)

	err := d.uc.UpdateStatus(ctx, "admin-1", "missing", "paid")
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, statusOf(t, err))
	d.assertExpectations(t)
}

func TestAdminOrderUpdateStatus_SameStatusIsNoop(t *testing.T) {
	d := newAdminOrderDeps()
	ctx := context.Background()

	d.tx.On("WithinTx", ctx).Return()
	d.orders.On("FindByID", ctx, "o1").Return(model.Order{ID: "o1", Status: model.OrderStatusPaid}, nil)

	require.NoError(t, d.uc.UpdateStatus(ctx, "admin-1", "o1", "paid"))

	d.orders.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
	d.audit.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	d.assertExpectations(t)
}

func TestAdminOrderUpdateStatus_ShipWritesAudit(t *testing.T) {
	d := newAdminOrderDeps()
	ctx := context.Background()

	d.tx.On("WithinTx", ctx).Return()
	d.orders.On("FindByID", ctx, "o1").Return(model.Order{ID: "o1", Status: model.OrderStatusPaid}, nil)
	d.orders.On("UpdateStatus", ctx, "o1", model.OrderStatusShipping).Return(nil)
	d.audit.On("Create", ctx, mock.MatchedBy(func(l model.AuditLog) bool {
		return l.Action == model.AuditActionUpdateOrderStatus &&
			strings.Contains(l.BeforeJSON, `"paid"`) &&
			strings.Contains(l.AfterJSON, `"shipping"`)
	})).Return(nil)

	require.NoError(t, d.uc.UpdateStatus(ctx, "admin-1", "o1", " shipping "))

	// 在庫には触らない
	d.inventory.AssertNotCalled(t, "IncreaseStock", mock.Anything, mock.Anything, mock.Anything)
	d.assertExpectations(t)
}

func TestAdminOrderUpdateStatus_CancelRestocks(t *testing.T) {
	d := newAdminOrderDeps()
	ctx := context.Background()

	d.tx.On("WithinTx", ctx).Return()
	d.orders.On("FindByID", ctx, "o1").Return(model.Order{ID: "o1", Status: model.OrderStatusPaid}, nil)
	d.orders.On("UpdateStatus", ctx, "o1", model.OrderStatusCancelled).Return(nil)
	d.items.On("ListByOrderID", ctx, "o1").Return([]repo.OrderItemLine{
		{OrderItem: model.OrderItem{ProductID: "p1", Quantity: 2}},
		{OrderItem: model.OrderItem{ProductID: "gone", Quantity: 1}},
		{OrderItem: model.OrderItem{ProductID: "p2", Quantity: 5}},
	}, nil)
	d.inventory.On("IncreaseStock", ctx, "p1", int64(2)).Return(nil)
	// 物理削除済みの商品は飛ばす
	d.inventory.On("IncreaseStock", ctx, "gone", int64(1)).Return(repo.ErrNotFound)
	d.inventory.On("IncreaseStock", ctx, "p2", int64(5)).Return(nil)
	d.inventory.On("CreateAdjustment", ctx, mock.MatchedBy(func(a model.InventoryAdjustment) bool {
		return a.ProductID == "p1" && a.Delta == 2
	})).Return(nil)
	d.inventory.On("CreateAdjustment", ctx, mock.MatchedBy(func(a model.InventoryAdjustment) bool {
		return a.ProductID == "p2" && a.Delta == 5
	})).Return(nil)
	d.audit.On("Create", ctx, auditWith(model.AuditActionUpdateOrderStatus, "o1")).Return(nil)

	require.NoError(t, d.uc.UpdateStatus(ctx, "admin-1", "o1", "cancelled"))
	d.assertExpectations(t)
	d.inventory.AssertNumberOfCalls(t, "CreateAdjustment", 2)
}

func TestAdminOrderUpdateStatus_RestockFailureIsDBError(t *testing.T) {
	d := newAdminOrderDeps()
	ctx := context.Background()

	d.tx.On("WithinTx", ctx).Return()
	d.orders.On("FindByID", ctx, "o1").Return(model.Order{ID: "o1", Status: model.OrderStatusPending}, nil)
	d.orders.On("UpdateStatus", ctx, "o1", model.OrderStatusCancelled).Return(nil)
	d.items.On("ListByOrderID", ctx, "o1").Return([]repo.OrderItemLine{
		{OrderItem: model.OrderItem{ProductID: "p1", Quantity: 2}},
	}, nil)
	d.inventory.On("IncreaseStock", ctx, "p1", int64(2)).Return(errors.New("connection reset"))

	err := d.uc.UpdateStatus(ctx, "admin-1", "o1", "cancelled")
	require.Error(t, err)
	assert.Equal(t, http.StatusInternalServerError, statusOf(t, err))
	d.audit.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestAdminOrderDelete(t *testing.T) {
	t.Run("writes audit without restock", func(t *testing.T) {
		d := newAdminOrderDeps()
		ctx := context.Background()

		d.tx.On("WithinTx", ctx).Return()
		d.orders.On("FindByID", ctx, "o1").Return(model.Order{ID: "o1", OrderNo: "ORDER1", Status: model.OrderStatusPaid}, nil)
		d.orders.On("Delete", ctx, "o1").Return(nil)
		d.audit.On("Create", ctx, mock.MatchedBy(func(l model.AuditLog) bool {
			return l.Action == model.AuditActionDeleteOrder && strings.Contains(l.BeforeJSON, "ORDER1")
		})).Return(nil)

		require.NoError(t, d.uc.Delete(ctx, "admin-1", "o1"))
		d.inventory.AssertNotCalled(t, "IncreaseStock", mock.Anything, mock.Anything, mock.Anything)
		d.assertExpectations(t)
	})

	t.Run("missing order is 404", func(t *testing.T) {
		d := newAdminOrderDeps()
		ctx := context.Background()

		d.tx.On("WithinTx", ctx).Return()
		d.orders.On("FindByID", ctx, "nope").Return(model.Order{}, repo.ErrNotFound)

		err := d.uc.Delete(ctx, "admin-1", "nope")
		require.Error(t, err)
		assert.Equal(t, http.StatusNotFound, statusOf(t, err))
		d.orders.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})
}
