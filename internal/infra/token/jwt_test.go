package token

import (
	"testing"
	"time"

	"farmmall/internal/domain/model"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTService_IssueAndParse(t *testing.T) {
	svc := NewJWTService("secret", 24*time.Hour)
	now := time.Now()

	raw, exp, err := svc.Issue("u-1", model.RoleMerchant, now)
	require.NoError(t, err)
	assert.WithinDuration(t, now.Add(24*time.Hour), exp, time.Second)

	claims, err := svc.Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, "u-1", claims.UserID)
	assert.Equal(t, model.RoleMerchant, claims.Role)
	assert.NotEmpty(t, claims.TokenID())
	assert.WithinDuration(t, exp, claims.ExpiresAt(), time.Second)
}

func TestJWTService_Parse_Rejects(t *testing.T) {
	svc := NewJWTService("secret", time.Hour)

	// 別の鍵
	other := NewJWTService("other", time.Hour)
	raw, _, err := other.Issue("u-1", model.RoleUser, time.Now())
	require.NoError(t, err)
	_, err = svc.Parse(raw)
	assert.ErrorIs(t, err, ErrInvalidToken)

	// 期限切れ
	raw, _, err = svc.Issue("u-1", model.RoleUser, time.Now().Add(-2*time.Hour))
	require.NoError(t, err)
	_, err = svc.Parse(raw)
	assert.ErrorIs(t, err, ErrInvalidToken)

	// HS256以外
	none, err := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{UserID: "u-1", Role: model.RoleAdmin}).
		SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	_, err = svc.Parse(none)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = svc.Parse("garbage")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
