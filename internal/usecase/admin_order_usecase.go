package usecase

import (
	"context"
	"net/http"
	"strings"

	"farmmall/internal/domain/model"
	repo "farmmall/internal/repository"
)

type AdminOrderUsecase struct {
	tx     repo.TransactionManager
	orders repo.OrderRepository
	items  repo.OrderItemRepository
}

func NewAdminOrderUsecase(tx repo.TransactionManager, orders repo.OrderRepository, items repo.OrderItemRepository) *AdminOrderUsecase {
	return &AdminOrderUsecase{tx: tx, orders: orders, items: items}
}

type AdminListOrdersInput struct {
	Page     int
	PageSize int
	Search   string
	Status   string
}

type AdminOrderOutput struct {
	OrderOutput
	Username string `json:"username"`
	Phone    string `json:"phone"`
}

// 注文一覧（注文番号/ユーザー名で検索）
func (u *AdminOrderUsecase) List(ctx context.Context, in AdminListOrdersInput) (PageResult[AdminOrderOutput], error) {
	status := model.OrderStatus(strings.TrimSpace(in.Status))
	if status != "" && !status.IsValid() {
		return PageResult[AdminOrderOutput]{}, NewHTTPError(http.StatusBadRequest, "invalid status")
	}

	rows, total, err := u.orders.ListAdmin(ctx, repo.AdminOrderListFilter{
		Page:   NormalizePage(in.Page, in.PageSize),
		Search: in.Search,
		Status: status,
	})
	if err != nil {
		return PageResult[AdminOrderOutput]{}, dbError(err)
	}

	ids := make([]string, 0, len(rows))
	for _, o := range rows {
		ids = append(ids, o.ID)
	}
	byOrder, err := u.items.ListByOrderIDs(ctx, ids)
	if err != nil {
		return PageResult[AdminOrderOutput]{}, dbError(err)
	}

	outs := make([]AdminOrderOutput, 0, len(rows))
	for _, o := range rows {
		outs = append(outs, AdminOrderOutput{
			OrderOutput: toOrderOutput(o.Order, byOrder[o.ID]),
			Username:    o.Username,
			Phone:       o.Phone,
		})
	}
	return PageResult[AdminOrderOutput]{Total: total, Items: outs}, nil
}

func (u *AdminOrderUsecase) Detail(ctx context.Context, orderID string) (AdminOrderOutput, error) {
	o, err := u.orders.FindWithUser(ctx, orderID)
	if err != nil {
		return AdminOrderOutput{}, notFoundOr(err, "order not found")
	}
	items, err := u.items.ListByOrderID(ctx, orderID)
	if err != nil {
		return AdminOrderOutput{}, dbError(err)
	}
	return AdminOrderOutput{
		OrderOutput: toOrderOutput(o.Order, items),
		Username:    o.Username,
		Phone:       o.Phone,
	}, nil
}

// 管理者は任意のステータスに上書きできる（cancelledとの出入りで在庫を動かす）
func (u *AdminOrderUsecase) UpdateStatus(ctx context.Context, actorAdminID string, orderID string, status string) error {
	newStatus := model.OrderStatus(strings.TrimSpace(status))
	if !newStatus.IsValid() {
		return NewHTTPError(http.StatusBadRequest, "invalid status")
	}

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		o, err := r.Orders().FindByID(ctx, orderID)
		if err != nil {
			return notFoundOr(err, "order not found")
		}

		// すでに同じなら何もしない（200）
		if o.Status == newStatus {
			return nil
		}

		if err := r.Orders().UpdateStatus(ctx, orderID, newStatus); err != nil {
			return notFoundOr(err, "order not found")
		}

		// キャンセルに入るときだけ戻し、出るときは取り直す
		switch {
		case newStatus == model.OrderStatusCancelled:
			if err := restockOrder(ctx, r, orderID, "order cancelled by admin"); err != nil {
				return err
			}
		case o.Status == model.OrderStatusCancelled:
			if err := reserveOrder(ctx, r, orderID, "order reopened by admin"); err != nil {
				return err
			}
		}

		return writeAudit(ctx, r.AuditLogs(), auditEntry{
			actor:        actorAdminID,
			action:       model.AuditActionUpdateOrderStatus,
			resourceType: model.AuditResourceOrder,
			resourceID:   orderID,
			before:       map[string]model.OrderStatus{"status": o.Status},
			after:        map[string]model.OrderStatus{"status": newStatus},
		})
	})
	if err != nil {
		return passThrough(err)
	}
	return nil
}

// 明細ごと削除
func (u *AdminOrderUsecase) Delete(ctx context.Context, actorAdminID string, orderID string) error {
	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		o, err := r.Orders().FindByID(ctx, orderID)
		if err != nil {
			return notFoundOr(err, "order not found")
		}
		if err := r.Orders().Delete(ctx, orderID); err != nil {
			return notFoundOr(err, "order not found")
		}
		return writeAudit(ctx, r.AuditLogs(), auditEntry{
			actor:        actorAdminID,
			action:       model.AuditActionDeleteOrder,
			resourceType: model.AuditResourceOrder,
			resourceID:   orderID,
			before:       o,
		})
	})
	if err != nil {
		return passThrough(err)
	}
	return nil
}
