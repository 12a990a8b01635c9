package usecase

import (
	"context"
	"encoding/json"
	"time"

	"farmmall/internal/domain/model"
	repo "farmmall/internal/repository"
)

type auditEntry struct {
	actor        string
	action       model.AuditAction
	resourceType model.AuditResourceType
	resourceID   string
	before       any
	after        any
}

// 監査ログを1件書く（before/afterはJSON文字列にする）
func writeAudit(ctx context.Context, logs repo.AuditLogRepository, e auditEntry) error {
	return logs.Create(ctx, model.AuditLog{
		ActorAdminID: e.actor,
		Action:       e.action,
		ResourceType: e.resourceType,
		ResourceID:   e.resourceID,
		BeforeJSON:   toJSON(e.before),
		AfterJSON:    toJSON(e.after),
		CreatedAt:    time.Now(),
	})
}

func toJSON(v any) string {
	if v == nil {
		return ""
	}
	b, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return string(b)
}

type AuditLogUsecase struct {
	auditRepo repo.AuditLogRepository
}

func NewAuditLogUsecase(auditRepo repo.AuditLogRepository) *AuditLogUsecase {
	return &AuditLogUsecase{auditRepo: auditRepo}
}

type ListAuditLogsInput struct {
	ActorAdminID string
	Action       string
	ResourceType string
	ResourceID   string
	Limit        int
	Offset       int
}

func (u *AuditLogUsecase) List(ctx context.Context, in ListAuditLogsInput) ([]model.AuditLog, error) {
	f := repo.AuditLogFilter{Limit: in.Limit, Offset: in.Offset}
	if in.ActorAdminID != "" {
		actor := in.ActorAdminID
		f.ActorAdminID = &actor
	}
	if in.Action != "" {
		a := model.AuditAction(in.Action)
		f.Action = &a
	}
	if in.ResourceType != "" {
		rt := model.AuditResourceType(in.ResourceType)
		f.ResourceType = &rt
	}
	if in.ResourceID != "" {
		id := in.ResourceID
		f.ResourceID = &id
	}

	logs, err := u.auditRepo.List(ctx, f)
	if err != nil {
		return nil, dbError(err)
	}
	if logs == nil {
		logs = []model.AuditLog{}
	}
	return logs, nil
}
