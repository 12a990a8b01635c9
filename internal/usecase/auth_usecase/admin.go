package auth

import (
	"context"
	"errors"
	"strings"

	"farmmall/internal/domain/model"
	"farmmall/internal/repository"
)

type AdminLoginOutput struct {
	Token string       `json:"token"`
	User  AdminSummary `json:"user"`
}

type AdminSummary struct {
	ID       string     `json:"id"`
	Username string     `json:"username"`
	Role     model.Role `json:"role"`
	Email    string     `json:"email"`
	Phone    string     `json:"phone"`
}

type AdminRegisterInput struct {
	Username string
	Password string
	Role     model.Role
	Email    string
	Phone    string
}

// 管理画面アカウントの認証（admin/merchant）
type AdminAuthUsecase struct {
	adminRepo repository.AdminRepository
	hasher    PasswordHasher
	verifier  PasswordVerifier
	issuer    AccessTokenIssuer
	clock     Clock
}

// DI
func NewAdminAuthUsecase(
	adminRepo repository.AdminRepository,
	hasher PasswordHasher,
	verifier PasswordVerifier,
	issuer AccessTokenIssuer,
	clock Clock,
) *AdminAuthUsecase {
	return &AdminAuthUsecase{
		adminRepo: adminRepo,
		hasher:    hasher,
		verifier:  verifier,
		issuer:    issuer,
		clock:     clock,
	}
}

func (u *AdminAuthUsecase) Login(ctx context.Context, in LoginInput) (AdminLoginOutput, error) {
	var out AdminLoginOutput

	admin, err := u.adminRepo.FindByUsername(ctx, strings.TrimSpace(in.Username))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return out, ErrInvalidCredentials
		}
		return out, err
	}

	// 停止チェックはパスワード照合より先
	if admin.IsDisabled() {
		return out, ErrAccountDisabled
	}
	if !u.verifier.Verify(in.Password, admin.Password) {
		return out, ErrInvalidCredentials
	}

	now := u.clock.Now()
	token, _, err := u.issuer.Issue(admin.ID, admin.Role, now)
	if err != nil {
		return out, err
	}
	if err := u.adminRepo.UpdateLastLogin(ctx, admin.ID, now); err != nil {
		return out, err
	}

	out.Token = token
	out.User = toAdminSummary(admin)
	return out, nil
}

func (u *AdminAuthUsecase) Register(ctx context.Context, in AdminRegisterInput) (model.Admin, error) {
	username := strings.TrimSpace(in.Username)
	if username == "" || in.Password == "" || !in.Role.IsBackOffice() {
		return model.Admin{}, ErrInvalidInput
	}

	_, err := u.adminRepo.FindByUsername(ctx, username)
	if err == nil {
		return model.Admin{}, ErrUsernameTaken
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return model.Admin{}, err
	}

	hashed, err := u.hasher.Hash(in.Password)
	if err != nil {
		return model.Admin{}, err
	}

	now := u.clock.Now()
	admin := model.Admin{
		Username:      username,
		Password:      hashed,
		Role:          in.Role,
		Status:        model.AccountStatusActive,
		Email:         strings.TrimSpace(in.Email),
		Phone:         strings.TrimSpace(in.Phone),
		LastLoginTime: &now,
	}
	if err := u.adminRepo.Create(ctx, &admin); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return model.Admin{}, ErrUsernameTaken
		}
		return model.Admin{}, err
	}

	admin.Password = ""
	return admin, nil
}

func (u *AdminAuthUsecase) Profile(ctx context.Context, adminID string) (model.Admin, error) {
	admin, err := u.adminRepo.FindByID(ctx, adminID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return model.Admin{}, ErrAccountNotFound
		}
		return model.Admin{}, err
	}
	admin.Password = ""
	return admin, nil
}

func (u *AdminAuthUsecase) ChangePassword(ctx context.Context, adminID string, oldPassword string, newPassword string) error {
	if newPassword == "" {
		return ErrInvalidInput
	}

	admin, err := u.adminRepo.FindByID(ctx, adminID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrAccountNotFound
		}
		return err
	}
	if !u.verifier.Verify(oldPassword, admin.Password) {
		return ErrWrongPassword
	}

	hashed, err := u.hasher.Hash(newPassword)
	if err != nil {
		return err
	}
	return u.adminRepo.UpdatePassword(ctx, adminID, hashed)
}

func toAdminSummary(a model.Admin) AdminSummary {
	return AdminSummary{
		ID:       a.ID,
		Username: a.Username,
		Role:     a.Role,
		Email:    a.Email,
		Phone:    a.Phone,
	}
}
