package auth

import (
	"context"
	"errors"
	"strings"

	"farmmall/internal/domain/model"
	"farmmall/internal/repository"
)

// handlerからusecaseに渡す入力
type LoginInput struct {
	Username string
	Password string
}

type LoginUser struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

// handlerがJSONにして返す
type LoginOutput struct {
	Token string    `json:"token"`
	User  LoginUser `json:"user"`
}

type LoginUsecase struct {
	userRepo repository.UserRepository
	verifier PasswordVerifier
	issuer   AccessTokenIssuer
	clock    Clock
}

func NewLoginUsecase(userRepo repository.UserRepository, verifier PasswordVerifier, issuer AccessTokenIssuer, clock Clock) *LoginUsecase {
	return &LoginUsecase{userRepo: userRepo, verifier: verifier, issuer: issuer, clock: clock}
}

// ログイン処理を実行する
func (u *LoginUsecase) Execute(ctx context.Context, in LoginInput) (LoginOutput, error) {
	var out LoginOutput

	user, err := u.userRepo.FindByUsername(ctx, strings.TrimSpace(in.Username))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return out, ErrInvalidCredentials
		}
		return out, err
	}

	//停止ユーザーはログイン不可
	if user.Status == model.AccountStatusDisabled {
		return out, ErrAccountDisabled
	}

	//パスワード照合
	if ok := u.verifier.Verify(in.Password, user.Password); !ok {
		return out, ErrInvalidCredentials
	}

	now := u.clock.Now()
	token, _, err := u.issuer.Issue(user.ID, model.RoleUser, now)
	if err != nil {
		return out, err
	}

	//最終ログイン時刻更新
	if err := u.userRepo.UpdateLastLogin(ctx, user.ID, now); err != nil {
		return out, err
	}

	out.Token = token
	out.User = LoginUser{ID: user.ID, Username: user.Username}
	return out, nil
}

// GET /auth/profile
type ProfileUsecase struct {
	userRepo repository.UserRepository
}

func NewProfileUsecase(userRepo repository.UserRepository) *ProfileUsecase {
	return &ProfileUsecase{userRepo: userRepo}
}

func (u *ProfileUsecase) Execute(ctx context.Context, userID string) (model.User, error) {
	user, err := u.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return model.User{}, ErrAccountNotFound
		}
		return model.User{}, err
	}
	user.Password = ""
	return user, nil
}
