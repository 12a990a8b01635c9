package auth

import (
	"context"
	"errors"
	"strings"

	"farmmall/internal/domain/model"
	"farmmall/internal/repository"
)

// 会員登録の入力
type RegisterUserInput struct {
	Username string
	Password string
	Phone    string
}

// RegisterUserUsecaseは会員登録の処理。
type RegisterUserUsecase struct {
	userRepo repository.UserRepository
	hasher   PasswordHasher
	clock    Clock
}

// DI
func NewRegisterUserUsecase(userRepo repository.UserRepository, hasher PasswordHasher, clock Clock) *RegisterUserUsecase {
	return &RegisterUserUsecase{userRepo: userRepo, hasher: hasher, clock: clock}
}

// 会員登録実行
func (u *RegisterUserUsecase) Execute(ctx context.Context, in RegisterUserInput) (model.User, error) {
	username := strings.TrimSpace(in.Username)
	if username == "" || in.Password == "" {
		return model.User{}, ErrInvalidInput
	}

	// username重複チェック
	_, err := u.userRepo.FindByUsername(ctx, username)
	if err == nil {
		return model.User{}, ErrUsernameTaken
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return model.User{}, err
	}

	// パスワードをハッシュ化
	hashed, err := u.hasher.Hash(in.Password)
	if err != nil {
		return model.User{}, err
	}

	now := u.clock.Now()
	user := model.User{
		Username:      username,
		Password:      hashed, // ハッシュを保存（平文は保存しない）
		Phone:         strings.TrimSpace(in.Phone),
		Status:        model.AccountStatusActive,
		LastLoginTime: &now,
	}
	if err := u.userRepo.Create(ctx, &user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return model.User{}, ErrUsernameTaken
		}
		return model.User{}, err
	}

	user.Password = ""
	return user, nil
}
