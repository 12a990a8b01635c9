package usecase

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"farmmall/internal/domain/model"
	repo "farmmall/internal/repository"
)

// パスワードのハッシュ化（bcrypt実装はauthパッケージ）
type PasswordHasher interface {
	Hash(plain string) (string, error)
}

// 管理画面アカウントの管理（adminのみ）
type AdminUserUsecase struct {
	admins repo.AdminRepository
	audit  repo.AuditLogRepository
	hasher PasswordHasher
}

func NewAdminUserUsecase(admins repo.AdminRepository, audit repo.AuditLogRepository, hasher PasswordHasher) *AdminUserUsecase {
	return &AdminUserUsecase{admins: admins, audit: audit, hasher: hasher}
}

type ListAdminsInput struct {
	Page     int
	PageSize int
	Search   string
	Role     string
	Status   string
}

type CreateAdminInput struct {
	Username string
	Password string
	Role     model.Role
	Email    string
	Phone    string
}

type UpdateAdminInput struct {
	Email  string
	Phone  string
	Role   model.Role
	Status model.AccountStatus
}

func (u *AdminUserUsecase) List(ctx context.Context, in ListAdminsInput) (PageResult[model.Admin], error) {
	role := model.Role(strings.TrimSpace(in.Role))
	if role != "" && !role.IsBackOffice() {
		return PageResult[model.Admin]{}, NewHTTPError(http.StatusBadRequest, "invalid role")
	}
	status := model.AccountStatus(strings.TrimSpace(in.Status))
	if status != "" && !status.IsValid() {
		return PageResult[model.Admin]{}, NewHTTPError(http.StatusBadRequest, "invalid status")
	}

	admins, total, err := u.admins.List(ctx, repo.AdminListFilter{
		Page:   NormalizePage(in.Page, in.PageSize),
		Search: in.Search,
		Role:   role,
		Status: status,
	})
	if err != nil {
		return PageResult[model.Admin]{}, dbError(err)
	}
	if admins == nil {
		admins = []model.Admin{}
	}
	return PageResult[model.Admin]{Total: total, Items: admins}, nil
}

func (u *AdminUserUsecase) Create(ctx context.Context, in CreateAdminInput) (model.Admin, error) {
	username := strings.TrimSpace(in.Username)
	if username == "" || in.Password == "" {
		return model.Admin{}, NewHTTPError(http.StatusBadRequest, "username and password are required")
	}
	if !in.Role.IsBackOffice() {
		return model.Admin{}, NewHTTPError(http.StatusBadRequest, "invalid role")
	}

	_, err := u.admins.FindByUsername(ctx, username)
	if err == nil {
		return model.Admin{}, NewHTTPError(http.StatusBadRequest, "username already exists")
	}
	if !errors.Is(err, repo.ErrNotFound) {
		return model.Admin{}, dbError(err)
	}

	hashed, err := u.hasher.Hash(in.Password)
	if err != nil {
		return model.Admin{}, internalError(err)
	}

	admin := model.Admin{
		Username: username,
		Password: hashed,
		Role:     in.Role,
		Status:   model.AccountStatusActive,
		Email:    strings.TrimSpace(in.Email),
		Phone:    strings.TrimSpace(in.Phone),
	}
	if err := u.admins.Create(ctx, &admin); err != nil {
		if errors.Is(err, repo.ErrDuplicate) {
			return model.Admin{}, NewHTTPError(http.StatusBadRequest, "username already exists")
		}
		return model.Admin{}, dbError(err)
	}
	admin.Password = ""
	return admin, nil
}

func (u *AdminUserUsecase) Update(ctx context.Context, actorID string, id string, in UpdateAdminInput) (model.Admin, error) {
	if in.Role != "" && !in.Role.IsBackOffice() {
		return model.Admin{}, NewHTTPError(http.StatusBadRequest, "invalid role")
	}
	if in.Status != "" && !in.Status.IsValid() {
		return model.Admin{}, NewHTTPError(http.StatusBadRequest, "invalid status")
	}

	before, err := u.admins.FindByID(ctx, id)
	if err != nil {
		return model.Admin{}, notFoundOr(err, "admin not found")
	}

	after := before
	after.Email = strings.TrimSpace(in.Email)
	after.Phone = strings.TrimSpace(in.Phone)
	// 空なら変更しない
	if in.Role != "" {
		after.Role = in.Role
	}
	if in.Status != "" {
		after.Status = in.Status
	}

	if err := u.admins.UpdateProfile(ctx, after); err != nil {
		return model.Admin{}, notFoundOr(err, "admin not found")
	}

	if err := writeAudit(ctx, u.audit, auditEntry{
		actor:        actorID,
		action:       model.AuditActionUpdateAdmin,
		resourceType: model.AuditResourceAdmin,
		resourceID:   id,
		before:       before,
		after:        after,
	}); err != nil {
		return model.Admin{}, dbError(err)
	}

	after.Password = ""
	return after, nil
}

func (u *AdminUserUsecase) ResetPassword(ctx context.Context, actorID string, id string, newPassword string) error {
	if newPassword == "" {
		return NewHTTPError(http.StatusBadRequest, "newPassword is required")
	}
	hashed, err := u.hasher.Hash(newPassword)
	if err != nil {
		return internalError(err)
	}
	if err := u.admins.UpdatePassword(ctx, id, hashed); err != nil {
		return notFoundOr(err, "admin not found")
	}

	// パスワードそのものは残さない
	if err := writeAudit(ctx, u.audit, auditEntry{
		actor:        actorID,
		action:       model.AuditActionResetPassword,
		resourceType: model.AuditResourceAdmin,
		resourceID:   id,
	}); err != nil {
		return dbError(err)
	}
	return nil
}

func (u *AdminUserUsecase) Delete(ctx context.Context, actorID string, id string) error {
	if actorID == id {
		return NewHTTPError(http.StatusBadRequest, "cannot delete yourself")
	}

	before, err := u.admins.FindByID(ctx, id)
	if err != nil {
		return notFoundOr(err, "admin not found")
	}
	if err := u.admins.Delete(ctx, id); err != nil {
		return notFoundOr(err, "admin not found")
	}

	if err := writeAudit(ctx, u.audit, auditEntry{
		actor:        actorID,
		action:       model.AuditActionDeleteAdmin,
		resourceType: model.AuditResourceAdmin,
		resourceID:   id,
		before:       before,
	}); err != nil {
		return dbError(err)
	}
	return nil
}
