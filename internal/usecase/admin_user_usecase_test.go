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

func newAdminUserUC() (*AdminUserUsecase, *AdminRepoMock, *AuditRepoMock) {
	admins := new(AdminRepoMock)
	audit := new(AuditRepoMock)
	return NewAdminUserUsecase(admins, audit, fakeHasher{}), admins, audit
}

func TestAdminUserCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("duplicate username", func(t *testing.T) {
		uc, admins, _ := newAdminUserUC()
		admins.On("FindByUsername", ctx, "farm").Return(model.Admin{ID: "a1", Username: "farm"}, nil)

		_, err := uc.Create(ctx, CreateAdminInput{Username: "farm", Password: "secret1", Role: model.RoleMerchant})
		require.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, statusOf(t, err))
		assert.Contains(t, err.Error(), "username already exists")
		admins.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("customer role rejected", func(t *testing.T) {
		uc, _, _ := newAdminUserUC()

		_, err := uc.Create(ctx, CreateAdminInput{Username: "x", Password: "secret1", Role: model.RoleUser})
		require.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, statusOf(t, err))
	})

	t.Run("hashes password and hides it", func(t *testing.T) {
		uc, admins, _ := newAdminUserUC()
		admins.On("FindByUsername", ctx, "farm").Return(model.Admin{}, repo.ErrNotFound)
		admins.On("Create", ctx, mock.MatchedBy(func(a *model.Admin) bool {
			return a.Password == "hashed:secret1" && a.Status == model.AccountStatusActive
		})).Run(func(args mock.Arguments) {
			args.Get(1).(*model.Admin).ID = "a2"
		}).Return(nil)

		got, err := uc.Create(ctx, CreateAdminInput{Username: " farm ", Password: "secret1", Role: model.RoleMerchant, Email: "f@example.com"})
		require.NoError(t, err)
		assert.Equal(t, "a2", got.ID)
		assert.Equal(t, "farm", got.Username)
		assert.Empty(t, got.Password)
		admins.AssertExpectations(t)
	})
}

func TestAdminUserUpdate_EmptyRoleKeepsCurrent(t *testing.T) {
	ctx := context.Background()
	uc, admins, audit := newAdminUserUC()

	before := model.Admin{ID: "a2", Username: "farm", Role: model.RoleMerchant, Status: model.AccountStatusActive, Email: "old@example.com"}
	admins.On("FindByID", ctx, "a2").Return(before, nil)
	admins.On("UpdateProfile", ctx, mock.MatchedBy(func(a model.Admin) bool {
		return a.Role == model.RoleMerchant && a.Status == model.AccountStatusDisabled && a.Email == "new@example.com" && a.Phone == ""
	})).Return(nil)
	audit.On("Create", ctx, mock.MatchedBy(func(l model.AuditLog) bool {
		return l.Action == model.AuditActionUpdateAdmin && l.ActorAdminID == "root" &&
			strings.Contains(l.BeforeJSON, "old@example.com") &&
			strings.Contains(l.AfterJSON, "new@example.com")
	})).Return(nil)

	got, err := uc.Update(ctx, "root", "a2", UpdateAdminInput{Email: "new@example.com", Status: model.AccountStatusDisabled})
	require.NoError(t, err)
	assert.Equal(t, model.RoleMerchant, got.Role)
	assert.Equal(t, model.AccountStatusDisabled, got.Status)
	admins.AssertExpectations(t)
	audit.AssertExpectations(t)
}

func TestAdminUserResetPassword_AuditHasNoPassword(t *testing.T) {
	ctx := context.Background()
	uc, admins, audit := newAdminUserUC()

	admins.On("UpdatePassword", ctx, "a2", "hashed:newpass").Return(nil)
	audit.On("Create", ctx, mock.MatchedBy(func(l model.AuditLog) bool {
		return l.Action == model.AuditActionResetPassword && l.BeforeJSON == "" && l.AfterJSON == ""
	})).Return(nil)

	require.NoError(t, uc.ResetPassword(ctx, "root", "a2", "newpass"))
	audit.AssertExpectations(t)

	err := uc.ResetPassword(ctx, "root", "a2", "")
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, statusOf(t, err))
}

func TestAdminUserDelete(t *testing.T) {
	ctx := context.Background()

	t.Run("cannot delete yourself", func(t *testing.T) {
		uc, admins, _ := newAdminUserUC()

		err := uc.Delete(ctx, "root", "root")
		require.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, statusOf(t, err))
		assert.Contains(t, err.Error(), "cannot delete yourself")
		admins.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
	})

	t.Run("missing admin", func(t *testing.T) {
		uc, admins, _ := newAdminUserUC()
		admins.On("FindByID", ctx, "ghost").Return(model.Admin{}, repo.ErrNotFound)

		err := uc.Delete(ctx, "root", "ghost")
		require.Error(t, err)
		assert.Equal(t, http.StatusNotFound, statusOf(t, err))
	})

	t.Run("db failure", func(t *testing.T) {
		uc, admins, _ := newAdminUserUC()
		admins.On("FindByID", ctx, "a2").Return(model.Admin{}, errors.New("timeout"))

		err := uc.Delete(ctx, "root", "a2")
		require.Error(t, err)
		assert.Equal(t, http.StatusInternalServerError, statusOf(t, err))
	})

	t.Run("deletes and audits", func(t *testing.T) {
		uc, admins, audit := newAdminUserUC()
		admins.On("FindByID", ctx, "a2").Return(model.Admin{ID: "a2", Username: "farm"}, nil)
		admins.On("Delete", ctx, "a2").Return(nil)
		audit.On("Create", ctx, mock.MatchedBy(func(l model.AuditLog) bool {
			return l.Action == model.AuditActionDeleteAdmin && l.ResourceType == model.AuditResourceAdmin && l.ResourceID == "a2"
		})).Return(nil)

		require.NoError(t, uc.Delete(ctx, "root", "a2"))
		admins.AssertExpectations(t)
		audit.AssertExpectations(t)
	})
}
