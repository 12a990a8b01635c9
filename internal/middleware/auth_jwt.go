package middleware

import (
	"net/http"
	"strings"
	"time"

	"farmmall/internal/domain/model"
	"farmmall/internal/infra/token"
	"farmmall/internal/repository"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

const (
	CtxUserIDKey   = "user_id"   // string
	CtxUserRoleKey = "user_role" // model.Role
	CtxTokenIDKey  = "token_id"  // string（jti）
	CtxTokenExpKey = "token_exp" // time.Time
)

// JWTの検証（infra/token.JWTService）
type TokenParser interface {
	Parse(raw string) (token.Claims, error)
}

// bearerAuth用のJWT検証ミドルウェア。
func AuthJWT(parser TokenParser, blocklist repository.TokenBlocklist, log *zap.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, ok := authenticate(c, parser, blocklist, log)
			if !ok {
				return abort(c, http.StatusUnauthorized, "unauthorized")
			}
			setClaims(c, claims)
			return next(c)
		}
	}
}

// トークンがあれば検証してcontextへ、無効でも匿名として通す
func OptionalAuth(parser TokenParser, blocklist repository.TokenBlocklist, log *zap.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if claims, ok := authenticate(c, parser, blocklist, log); ok {
				setClaims(c, claims)
			}
			return next(c)
		}
	}
}

func authenticate(c echo.Context, parser TokenParser, blocklist repository.TokenBlocklist, log *zap.Logger) (token.Claims, bool) {
	//Authorizationヘッダを取得
	rawToken, ok := bearerToken(c.Request().Header.Get("Authorization"))
	if !ok {
		return token.Claims{}, false
	}

	//JWTをパースして検証する
	claims, err := parser.Parse(rawToken)
	if err != nil {
		return token.Claims{}, false
	}

	//ログアウト済みか（Redisが落ちていても通す）
	if jti := claims.TokenID(); jti != "" && blocklist != nil {
		revoked, err := blocklist.IsRevoked(c.Request().Context(), jti)
		if err != nil {
			log.Warn("token blocklist unavailable", zap.Error(err))
		} else if revoked {
			return token.Claims{}, false
		}
	}
	return claims, true
}

// Bearer形式か確認してtokenを抜く
func bearerToken(authz string) (string, bool) {
	parts := strings.SplitN(authz, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	raw := strings.TrimSpace(parts[1])
	return raw, raw != ""
}

//contextへ保存
func setClaims(c echo.Context, claims token.Claims) {
	c.Set(CtxUserIDKey, claims.UserID)
	c.Set(CtxUserRoleKey, claims.Role)
	c.Set(CtxTokenIDKey, claims.TokenID())
	c.Set(CtxTokenExpKey, claims.ExpiresAt())
}

// 認証済みならID、匿名なら""
func UserID(c echo.Context) string {
	id, _ := c.Get(CtxUserIDKey).(string)
	return id
}

func Role(c echo.Context) model.Role {
	role, _ := c.Get(CtxUserRoleKey).(model.Role)
	return role
}

func TokenID(c echo.Context) string {
	jti, _ := c.Get(CtxTokenIDKey).(string)
	return jti
}

func TokenExpiresAt(c echo.Context) time.Time {
	exp, _ := c.Get(CtxTokenExpKey).(time.Time)
	return exp
}

type errorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data"`
}

func abort(c echo.Context, status int, msg string) error {
	return c.JSON(status, errorResponse{Code: status, Message: msg})
}
