package usecase

import (
	"context"
	"time"

	"farmmall/internal/domain/model"
	repo "farmmall/internal/repository"

	"github.com/stretchr/testify/mock"
)

// =====================
// TxManager / TxRepos mocks
// =====================

// TxManagerMock は WithinTx の中で渡す repos を固定して unit テストを回す
type TxManagerMock struct {
	mock.Mock
	Repos repo.TxRepos
}

func (m *TxManagerMock) WithinTx(ctx context.Context, fn func(r repo.TxRepos) error) error {
	// 呼ばれた事実だけ記録
	m.Called(ctx)
	return fn(m.Repos)
}

type txReposMock struct {
	orders     repo.OrderRepository
	orderItems repo.OrderItemRepository
	carts      repo.CartRepository
	inventory  repo.InventoryRepository
	products   repo.ProductRepository
	categories repo.CategoryRepository
	auditLogs  repo.AuditLogRepository
}

func (r *txReposMock) Orders() repo.OrderRepository         { return r.orders }
func (r *txReposMock) OrderItems() repo.OrderItemRepository { return r.orderItems }
func (r *txReposMock) Carts() repo.CartRepository           { return r.carts }
func (r *txReposMock) Inventory() repo.InventoryRepository  { return r.inventory }
func (r *txReposMock) Products() repo.ProductRepository     { return r.products }
func (r *txReposMock) Categories() repo.CategoryRepository  { return r.categories }
func (r *txReposMock) AuditLogs() repo.AuditLogRepository   { return r.auditLogs }

// =====================
// Repository mocks
// 使わないメソッドは埋め込んだ nil interface で panic させる
// =====================

type OrderRepoMock struct {
	mock.Mock
	repo.OrderRepository
}

func (m *OrderRepoMock) FindByID(ctx context.Context, orderID string) (model.Order, error) {
	args := m.Called(ctx, orderID)
	o, _ := args.Get(0).(model.Order)
	return o, args.Error(1)
}

func (m *OrderRepoMock) UpdateStatus(ctx context.Context, orderID string, status model.OrderStatus) error {
	args := m.Called(ctx, orderID, status)
	return args.Error(0)
}

func (m *OrderRepoMock) Delete(ctx context.Context, orderID string) error {
	args := m.Called(ctx, orderID)
	return args.Error(0)
}

type OrderItemRepoMock struct {
	mock.Mock
	repo.OrderItemRepository
}

func (m *OrderItemRepoMock) ListByOrderID(ctx context.Context, orderID string) ([]repo.OrderItemLine, error) {
	args := m.Called(ctx, orderID)
	items, _ := args.Get(0).([]repo.OrderItemLine)
	return items, args.Error(1)
}

type InventoryRepoMock struct {
	mock.Mock
	repo.InventoryRepository
}

func (m *InventoryRepoMock) IncreaseStock(ctx context.Context, productID string, qty int64) error {
	args := m.Called(ctx, productID, qty)
	return args.Error(0)
}

func (m *InventoryRepoMock) CreateAdjustment(ctx context.Context, adjustment model.InventoryAdjustment) error {
	args := m.Called(ctx, adjustment)
	return args.Error(0)
}

type AuditRepoMock struct {
	mock.Mock
	repo.AuditLogRepository
}

func (m *AuditRepoMock) Create(ctx context.Context, log model.AuditLog) error {
	args := m.Called(ctx, log)
	return args.Error(0)
}

type AdminRepoMock struct {
	mock.Mock
	repo.AdminRepository
}

func (m *AdminRepoMock) Create(ctx context.Context, admin *model.Admin) error {
	args := m.Called(ctx, admin)
	return args.Error(0)
}

func (m *AdminRepoMock) FindByID(ctx context.Context, id string) (model.Admin, error) {
	args := m.Called(ctx, id)
	a, _ := args.Get(0).(model.Admin)
	return a, args.Error(1)
}

func (m *AdminRepoMock) FindByUsername(ctx context.Context, username string) (model.Admin, error) {
	args := m.Called(ctx, username)
	a, _ := args.Get(0).(model.Admin)
	return a, args.Error(1)
}

func (m *AdminRepoMock) UpdateProfile(ctx context.Context, admin model.Admin) error {
	args := m.Called(ctx, admin)
	return args.Error(0)
}

func (m *AdminRepoMock) UpdatePassword(ctx context.Context, id string, hashed string) error {
	args := m.Called(ctx, id, hashed)
	return args.Error(0)
}

func (m *AdminRepoMock) UpdateLastLogin(ctx context.Context, id string, at time.Time) error {
	args := m.Called(ctx, id, at)
	return args.Error(0)
}

func (m *AdminRepoMock) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// 平文の前に"hashed:"を付けるだけ
type fakeHasher struct{}

func (fakeHasher) Hash(plain string) (string, error) { return "hashed:" + plain, nil }

// 注文結果の記録
type recordingMetrics struct {
	placed   int
	rejected []string
}

func (m *recordingMetrics) OrderPlaced()                { m.placed++ }
func (m *recordingMetrics) OrderRejected(reason string) { m.rejected = append(m.rejected, reason) }
