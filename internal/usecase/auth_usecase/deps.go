package auth

import (
	"context"
	"errors"
	"time"

	"farmmall/internal/domain/model"

	"golang.org/x/crypto/bcrypt"
)

var (
	// ユーザー名またはパスワードが違う（401）
	ErrInvalidCredentials = errors.New("invalid credentials")
	// 停止済みアカウント（403）
	ErrAccountDisabled = errors.New("account is disabled")
	// 入力不足（400）
	ErrInvalidInput = errors.New("invalid input")
	// 競合（400）
	ErrUsernameTaken = errors.New("username already exists")
	// 旧パスワード違い（400）
	ErrWrongPassword = errors.New("old password is incorrect")
	// トークンの持ち主が消えた（404）
	ErrAccountNotFound = errors.New("account not found")
)

// 平文パスワードからハッシュへ。
type PasswordHasher interface {
	Hash(plain string) (string, error)
}

// 入力パスワードと保存したハッシュを比べる約束
type PasswordVerifier interface {
	Verify(plain string, hashed string) bool
}

// JWTを発行する約束
type AccessTokenIssuer interface {
	Issue(userID string, role model.Role, now time.Time) (token string, expiresAt time.Time, err error)
}

// ログアウト済みjtiの保存先
type TokenRevoker interface {
	Revoke(ctx context.Context, jti string, ttl time.Duration) error
}

// 現在の時間
type Clock interface {
	Now() time.Time
}

type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// bcryptハッシュ化
type BcryptPasswordHasher struct {
	cost int
}

// DI
func NewBcryptPasswordHasher(cost int) *BcryptPasswordHasher {
	if cost <= 0 {
		cost = bcrypt.DefaultCost
	}
	return &BcryptPasswordHasher{cost}
}

// bcryptでハッシュ化
func (h *BcryptPasswordHasher) Hash(plain string) (string, error) {
	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(plain), h.cost)
	if err != nil {
		return "", err
	}
	return string(hashedBytes), nil
}

// bcryptハッシュと平文を比較
type BcryptPasswordVerifier struct{}

// DI
func NewBcryptPasswordVerifier() *BcryptPasswordVerifier {
	return &BcryptPasswordVerifier{}
}

// 平文(plain)をbcryptで比較
func (v *BcryptPasswordVerifier) Verify(plain string, hashed string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plain))
	return err == nil
}
