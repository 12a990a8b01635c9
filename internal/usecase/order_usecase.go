package usecase

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"net/http"
	"time"

	"farmmall/internal/domain/model"
	repo "farmmall/internal/repository"

	"github.com/shopspring/decimal"
)

// 注文の結果を数える（prometheusなど）
type OrderMetrics interface {
	OrderPlaced()
	OrderRejected(reason string)
}

type nopOrderMetrics struct{}

func (nopOrderMetrics) OrderPlaced()         {}
func (nopOrderMetrics) OrderRejected(string) {}

const (
	rejectInvalid      = "invalid"
	rejectNotFound     = "not_found"
	rejectInsufficient = "insufficient_stock"
	rejectError        = "error"
)

// 1行（マージ後も含む）あたりの数量上限
const maxLineQuantity int64 = 10000

type OrderUsecase struct {
	tx      repo.TransactionManager
	orders  repo.OrderRepository
	items   repo.OrderItemRepository
	metrics OrderMetrics
	now     func() time.Time
}

func NewOrderUsecase(tx repo.TransactionManager, orders repo.OrderRepository, items repo.OrderItemRepository, metrics OrderMetrics) *OrderUsecase {
	if metrics == nil {
		metrics = nopOrderMetrics{}
	}
	return &OrderUsecase{tx: tx, orders: orders, items: items, metrics: metrics, now: time.Now}
}

type OrderLineInput struct {
	ProductID string
	Quantity  int64
}

type PlaceOrderInput struct {
	Products []OrderLineInput
	Address  model.Address
}

type PlaceOrderOutput struct {
	ID          string            `json:"id"`
	OrderNo     string            `json:"orderNo"`
	TotalAmount string            `json:"totalAmount"`
	Status      model.OrderStatus `json:"status"`
}

type OrderItemOutput struct {
	ID        string `json:"id"`
	ProductID string `json:"productId"`
	Name      string `json:"name"`
	Price     string `json:"price"`
	Image     string `json:"image"`
	Quantity  int64  `json:"quantity"`
	Subtotal  string `json:"subtotal"`
}

type OrderOutput struct {
	ID          string            `json:"id"`
	OrderNo     string            `json:"orderNo"`
	UserID      string            `json:"userId"`
	Status      model.OrderStatus `json:"status"`
	TotalAmount string            `json:"totalAmount"`
	Address     model.Address     `json:"address"`
	CreateTime  time.Time         `json:"createTime"`
	Items       []OrderItemOutput `json:"items"`
}

type ListOrdersInput struct {
	Page     int
	PageSize int
	Status   string
}

// 注文作成：在庫減算・注文/明細作成・カート削除を1トランザクションで
func (u *OrderUsecase) PlaceOrder(ctx context.Context, userID string, in PlaceOrderInput) (PlaceOrderOutput, error) {
	lines, err := mergeLines(in.Products)
	if err != nil {
		u.metrics.OrderRejected(rejectInvalid)
		return PlaceOrderOutput{}, err
	}
	if !in.Address.IsComplete() {
		u.metrics.OrderRejected(rejectInvalid)
		return PlaceOrderOutput{}, NewHTTPError(http.StatusBadRequest, "address is required")
	}

	var out PlaceOrderOutput
	err = u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		ids := make([]string, 0, len(lines))
		for _, l := range lines {
			ids = append(ids, l.ProductID)
		}
		found, err := r.Products().FindByIDs(ctx, ids)
		if err != nil {
			return dbError(err)
		}
		byID := make(map[string]model.Product, len(found))
		for _, p := range found {
			byID[p.ID] = p
		}

		// 存在→在庫の順でチェック（最初の失敗を返す）
		for _, l := range lines {
			p, ok := byID[l.ProductID]
			if !ok {
				return NewHTTPError(http.StatusNotFound, "product not found: "+l.ProductID)
			}
			if p.Stock < l.Quantity {
				return insufficientStock(p)
			}
		}

		now := u.now()
		orderNo := newOrderNo(now)
		items := make([]model.OrderItem, 0, len(lines))
		total := decimal.Zero

		for _, l := range lines {
			p := byID[l.ProductID]

			//在庫減算（足りないなら false）
			ok, err := r.Inventory().DecreaseStockIfEnough(ctx, p.ID, l.Quantity)
			if err != nil {
				return dbError(err)
			}
			if !ok {
				return insufficientStock(p)
			}
			if err := r.Inventory().CreateAdjustment(ctx, model.InventoryAdjustment{
				ProductID: p.ID,
				Delta:     -l.Quantity,
				Reason:    "order " + orderNo,
			}); err != nil {
				return dbError(err)
			}

			//価格スナップショット
			item := model.OrderItem{
				ProductID: p.ID,
				Quantity:  l.Quantity,
				Price:     p.Price,
			}
			items = append(items, item)
			total = total.Add(item.Subtotal())
		}

		order := model.Order{
			OrderNo:     orderNo,
			UserID:      userID,
			Status:      model.OrderStatusPending,
			TotalAmount: total,
			Address:     in.Address,
			CreateTime:  now,
		}
		if err := r.Orders().Create(ctx, &order); err != nil {
			return dbError(err)
		}
		if err := r.OrderItems().CreateBulk(ctx, order.ID, items); err != nil {
			return dbError(err)
		}
		if err := r.Carts().DeleteByUserAndProducts(ctx, userID, ids); err != nil {
			return dbError(err)
		}

		out = PlaceOrderOutput{
			ID:          order.ID,
			OrderNo:     order.OrderNo,
			TotalAmount: order.TotalAmount.StringFixed(2),
			Status:      order.Status,
		}
		return nil
	})
	if err != nil {
		u.metrics.OrderRejected(rejectReason(err))
		return PlaceOrderOutput{}, passThrough(err)
	}

	u.metrics.OrderPlaced()
	return out, nil
}

func (u *OrderUsecase) ListMyOrders(ctx context.Context, userID string, in ListOrdersInput) (PageResult[OrderOutput], error) {
	status := model.OrderStatus(in.Status)
	if status != "" && !status.IsValid() {
		return PageResult[OrderOutput]{}, NewHTTPError(http.StatusBadRequest, "invalid status")
	}

	orders, total, err := u.orders.ListByUser(ctx, repo.OrderListFilter{
		Page:   NormalizePage(in.Page, in.PageSize),
		UserID: userID,
		Status: status,
	})
	if err != nil {
		return PageResult[OrderOutput]{}, dbError(err)
	}

	ids := make([]string, 0, len(orders))
	for _, o := range orders {
		ids = append(ids, o.ID)
	}
	byOrder, err := u.items.ListByOrderIDs(ctx, ids)
	if err != nil {
		return PageResult[OrderOutput]{}, dbError(err)
	}

	outs := make([]OrderOutput, 0, len(orders))
	for _, o := range orders {
		outs = append(outs, toOrderOutput(o, byOrder[o.ID]))
	}
	return PageResult[OrderOutput]{Total: total, Items: outs}, nil
}

func (u *OrderUsecase) GetMyOrderDetail(ctx context.Context, userID string, orderID string) (OrderOutput, error) {
	o, err := u.ownedOrder(ctx, u.orders, userID, orderID)
	if err != nil {
		return OrderOutput{}, err
	}
	items, err := u.items.ListByOrderID(ctx, orderID)
	if err != nil {
		return OrderOutput{}, dbError(err)
	}
	return toOrderOutput(o, items), nil
}

// pending → cancelled（在庫を戻す）
func (u *OrderUsecase) Cancel(ctx context.Context, userID string, orderID string) error {
	return u.transition(ctx, userID, orderID, model.OrderStatusPending, model.OrderStatusCancelled)
}

// pending → paid
func (u *OrderUsecase) Pay(ctx context.Context, userID string, orderID string) error {
	return u.transition(ctx, userID, orderID, model.OrderStatusPending, model.OrderStatusPaid)
}

// shipping → completed
func (u *OrderUsecase) Confirm(ctx context.Context, userID string, orderID string) error {
	return u.transition(ctx, userID, orderID, model.OrderStatusShipping, model.OrderStatusCompleted)
}

// 完了/キャンセル済みだけ削除できる
func (u *OrderUsecase) Delete(ctx context.Context, userID string, orderID string) error {
	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		o, err := u.ownedOrder(ctx, r.Orders(), userID, orderID)
		if err != nil {
			return err
		}
		if !o.Status.IsDeletable() {
			return NewHTTPError(http.StatusBadRequest, "only completed or cancelled orders can be deleted")
		}
		if err := r.Orders().Delete(ctx, orderID); err != nil {
			return notFoundOr(err, "order not found")
		}
		return nil
	})
	if err != nil {
		return passThrough(err)
	}
	return nil
}

func (u *OrderUsecase) transition(ctx context.Context, userID string, orderID string, from, to model.OrderStatus) error {
	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		if _, err := u.ownedOrder(ctx, r.Orders(), userID, orderID); err != nil {
			return err
		}

		// 現在値がfromのときだけ更新
		ok, err := r.Orders().UpdateStatusIf(ctx, orderID, from, to)
		if err != nil {
			return dbError(err)
		}
		if !ok {
			return NewHTTPError(http.StatusBadRequest, fmt.Sprintf("order status must be %s", from))
		}

		if to == model.OrderStatusCancelled {
			return restockOrder(ctx, r, orderID, "order cancelled")
		}
		return nil
	})
	if err != nil {
		return passThrough(err)
	}
	return nil
}

// 他人の注文は「存在しない扱い」にする
func (u *OrderUsecase) ownedOrder(ctx context.Context, orders repo.OrderRepository, userID string, orderID string) (model.Order, error) {
	o, err := orders.FindByID(ctx, orderID)
	if err != nil {
		return model.Order{}, notFoundOr(err, "order not found")
	}
	if o.UserID != userID {
		return model.Order{}, NewHTTPError(http.StatusNotFound, "order not found")
	}
	return o, nil
}

// 明細の数量を在庫に戻して履歴を残す
func restockOrder(ctx context.Context, r repo.TxRepos, orderID string, reason string) error {
	items, err := r.OrderItems().ListByOrderID(ctx, orderID)
	if err != nil {
		return dbError(err)
	}
	for _, it := range items {
		if err := r.Inventory().IncreaseStock(ctx, it.ProductID, it.Quantity); err != nil {
			// 物理削除された商品は戻せない
			if errors.Is(err, repo.ErrNotFound) {
				continue
			}
			return dbError(err)
		}
		if err := r.Inventory().CreateAdjustment(ctx, model.InventoryAdjustment{
			ProductID: it.ProductID,
			Delta:     it.Quantity,
			Reason:    reason,
		}); err != nil {
			return dbError(err)
		}
	}
	return nil
}

// キャンセル済みの注文を戻すときに在庫を取り直す
// 削除済みの商品は売れないので飛ばす
func reserveOrder(ctx context.Context, r repo.TxRepos, orderID string, reason string) error {
	items, err := r.OrderItems().ListByOrderID(ctx, orderID)
	if err != nil {
		return dbError(err)
	}
	for _, it := range items {
		ok, err := r.Inventory().DecreaseStockIfEnough(ctx, it.ProductID, it.Quantity)
		if err != nil {
			return dbError(err)
		}
		if !ok {
			if _, err := r.Products().FindByID(ctx, it.ProductID); errors.Is(err, repo.ErrNotFound) {
				continue
			} else if err != nil {
				return dbError(err)
			}
			return NewHTTPError(http.StatusBadRequest, "insufficient stock: "+it.Name)
		}
		if err := r.Inventory().CreateAdjustment(ctx, model.InventoryAdjustment{
			ProductID: it.ProductID,
			Delta:     -it.Quantity,
			Reason:    reason,
		}); err != nil {
			return dbError(err)
		}
	}
	return nil
}

// 同じ商品はまとめる（順番は最初に出た順）
func mergeLines(in []OrderLineInput) ([]OrderLineInput, error) {
	if len(in) == 0 {
		return nil, NewHTTPError(http.StatusBadRequest, "products are required")
	}

	out := make([]OrderLineInput, 0, len(in))
	index := make(map[string]int, len(in))
	for _, l := range in {
		if l.ProductID == "" {
			return nil, NewHTTPError(http.StatusBadRequest, "productId is required")
		}
		if l.Quantity < 1 {
			return nil, NewHTTPError(http.StatusBadRequest, "quantity must be at least 1")
		}
		if l.Quantity > maxLineQuantity {
			return nil, quantityTooLarge()
		}
		if i, ok := index[l.ProductID]; ok {
			// 足す前に上限と比べる
			if l.Quantity > maxLineQuantity-out[i].Quantity {
				return nil, quantityTooLarge()
			}
			out[i].Quantity += l.Quantity
			continue
		}
		index[l.ProductID] = len(out)
		out = append(out, l)
	}
	return out, nil
}

func insufficientStock(p model.Product) error {
	return NewHTTPError(http.StatusBadRequest, "insufficient stock: "+p.Name)
}

func quantityTooLarge() error {
	return NewHTTPError(http.StatusBadRequest, fmt.Sprintf("quantity must be at most %d", maxLineQuantity))
}

// ORDER + unix ms + 3桁の乱数
func newOrderNo(now time.Time) string {
	return fmt.Sprintf("ORDER%d%03d", now.UnixMilli(), rand.IntN(1000))
}

func rejectReason(err error) string {
	he, ok := AsHTTPError(err)
	if !ok {
		return rejectError
	}
	switch he.Status {
	case http.StatusNotFound:
		return rejectNotFound
	case http.StatusBadRequest:
		return rejectInsufficient
	default:
		return rejectError
	}
}

func toOrderOutput(o model.Order, items []repo.OrderItemLine) OrderOutput {
	outItems := make([]OrderItemOutput, 0, len(items))
	for _, it := range items {
		outItems = append(outItems, OrderItemOutput{
			ID:        it.ID,
			ProductID: it.ProductID,
			Name:      it.Name,
			Price:     it.Price.StringFixed(2),
			Image:     it.Image,
			Quantity:  it.Quantity,
			Subtotal:  it.Subtotal().StringFixed(2),
		})
	}

	return OrderOutput{
		ID:          o.ID,
		OrderNo:     o.OrderNo,
		UserID:      o.UserID,
		Status:      o.Status,
		TotalAmount: o.TotalAmount.StringFixed(2),
		Address:     o.Address,
		CreateTime:  o.CreateTime,
		Items:       outItems,
	}
}
