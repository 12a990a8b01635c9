package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"farmmall/internal/domain/model"
	"farmmall/internal/infra/token"
	"farmmall/internal/repository"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

// =====================
// fakes
// =====================

type fakeBlocklist struct {
	revoked map[string]bool
	err     error
}

func (f *fakeBlocklist) Revoke(ctx context.Context, jti string, ttl time.Duration) error {
	f.revoked[jti] = true
	return nil
}

func (f *fakeBlocklist) IsRevoked(ctx context.Context, jti string) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	return f.revoked[jti], nil
}

type fakeUserRepo struct {
	repository.UserRepository
	users map[string]model.User
}

func (f *fakeUserRepo) FindByID(ctx context.Context, id string) (model.User, error) {
	u, ok := f.users[id]
	if !ok {
		return model.User{}, repository.ErrNotFound
	}
	return u, nil
}

type fakeAdminRepo struct {
	repository.AdminRepository
	admins map[string]model.Admin
}

func (f *fakeAdminRepo) FindByID(ctx context.Context, id string) (model.Admin, error) {
	a, ok := f.admins[id]
	if !ok {
		return model.Admin{}, repository.ErrNotFound
	}
	return a, nil
}

// =====================
// helper
// =====================

const testSecret = "test-secret"

var jwtSvc = token.NewJWTService(testSecret, time.Hour)

func mustIssue(t *testing.T, userID string, role model.Role) (string, token.Claims) {
	t.Helper()
	raw, _, err := jwtSvc.Issue(userID, role, time.Now())
	require.NoError(t, err)
	claims, err := jwtSvc.Parse(raw)
	require.NoError(t, err)
	return raw, claims
}

type whoami struct {
	UserID string     `json:"user_id"`
	Role   model.Role `json:"role"`
}

func whoamiHandler(c echo.Context) error {
	return c.JSON(http.StatusOK, whoami{UserID: UserID(c), Role: Role(c)})
}

func runRequest(t *testing.T, e *echo.Echo, path string, authHeader string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) errorResponse {
	t.Helper()
	var r errorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&r))
	return r
}

// =====================
// AuthJWT
// =====================

func TestAuthJWT(t *testing.T) {
	bl := &fakeBlocklist{revoked: map[string]bool{}}
	e := echo.New()
	e.GET("/me", whoamiHandler, AuthJWT(jwtSvc, bl, zap.NewNop()))

	raw, claims := mustIssue(t, "u1", model.RoleUser)

	t.Run("no header", func(t *testing.T) {
		rec := runRequest(t, e, "/me", "")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, 401, decodeError(t, rec).Code)
	})

	t.Run("not bearer", func(t *testing.T) {
		rec := runRequest(t, e, "/me", "Basic "+raw)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("wrong secret", func(t *testing.T) {
		other := token.NewJWTService("other", time.Hour)
		bad, _, err := other.Issue("u1", model.RoleUser, time.Now())
		require.NoError(t, err)
		rec := runRequest(t, e, "/me", "Bearer "+bad)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("ok", func(t *testing.T) {
		rec := runRequest(t, e, "/me", "Bearer "+raw)
		require.Equal(t, http.StatusOK, rec.Code)
		var got whoami
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
		assert.Equal(t, whoami{UserID: "u1", Role: model.RoleUser}, got)
	})

	t.Run("revoked", func(t *testing.T) {
		bl.revoked[claims.TokenID()] = true
		rec := runRequest(t, e, "/me", "Bearer "+raw)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestAuthJWT_BlocklistDownFailsOpen(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	bl := &fakeBlocklist{err: errors.New("redis down")}

	e := echo.New()
	e.GET("/me", whoamiHandler, AuthJWT(jwtSvc, bl, zap.New(core)))

	raw, _ := mustIssue(t, "u1", model.RoleUser)
	rec := runRequest(t, e, "/me", "Bearer "+raw)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, logs.FilterMessage("token blocklist unavailable").Len())
}

func TestOptionalAuth(t *testing.T) {
	e := echo.New()
	e.GET("/products", whoamiHandler, OptionalAuth(jwtSvc, nil, zap.NewNop()))

	rec := runRequest(t, e, "/products", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var anon whoami
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&anon))
	assert.Empty(t, anon.UserID)

	rec = runRequest(t, e, "/products", "Bearer garbage")
	assert.Equal(t, http.StatusOK, rec.Code)

	raw, _ := mustIssue(t, "u1", model.RoleUser)
	rec = runRequest(t, e, "/products", "Bearer "+raw)
	var got whoami
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
	assert.Equal(t, "u1", got.UserID)
}

// =====================
// guards
// =====================

func TestUserGuard(t *testing.T) {
	users := &fakeUserRepo{users: map[string]model.User{
		"u1": {ID: "u1", Status: model.AccountStatusActive},
		"u2": {ID: "u2", Status: model.AccountStatusDisabled},
	}}
	e := echo.New()
	e.GET("/me", whoamiHandler, AuthJWT(jwtSvc, nil, zap.NewNop()), UserGuard(users))

	ok, _ := mustIssue(t, "u1", model.RoleUser)
	assert.Equal(t, http.StatusOK, runRequest(t, e, "/me", "Bearer "+ok).Code)

	disabled, _ := mustIssue(t, "u2", model.RoleUser)
	assert.Equal(t, http.StatusForbidden, runRequest(t, e, "/me", "Bearer "+disabled).Code)

	gone, _ := mustIssue(t, "u9", model.RoleUser)
	assert.Equal(t, http.StatusUnauthorized, runRequest(t, e, "/me", "Bearer "+gone).Code)

	// 管理画面のトークンでは購入者APIに入れない
	admin, _ := mustIssue(t, "u1", model.RoleAdmin)
	assert.Equal(t, http.StatusUnauthorized, runRequest(t, e, "/me", "Bearer "+admin).Code)
}

func TestAdminGuardAndRoles(t *testing.T) {
	admins := &fakeAdminRepo{admins: map[string]model.Admin{
		"a1": {ID: "a1", Role: model.RoleAdmin, Status: model.AccountStatusActive},
		"m1": {ID: "m1", Role: model.RoleMerchant, Status: model.AccountStatusActive},
		"m2": {ID: "m2", Role: model.RoleMerchant, Status: model.AccountStatusDisabled},
	}}
	e := echo.New()
	g := e.Group("/admin", AuthJWT(jwtSvc, nil, zap.NewNop()), AdminGuard(admins))
	g.GET("/any", whoamiHandler)
	g.GET("/users", whoamiHandler, AdminRoleGuard())
	g.GET("/products", whoamiHandler, BackOfficeGuard())

	adminTok, _ := mustIssue(t, "a1", model.RoleAdmin)
	merchantTok, _ := mustIssue(t, "m1", model.RoleMerchant)
	disabledTok, _ := mustIssue(t, "m2", model.RoleMerchant)
	userTok, _ := mustIssue(t, "u1", model.RoleUser)

	assert.Equal(t, http.StatusOK, runRequest(t, e, "/admin/users", "Bearer "+adminTok).Code)
	assert.Equal(t, http.StatusForbidden, runRequest(t, e, "/admin/users", "Bearer "+merchantTok).Code)
	assert.Equal(t, http.StatusOK, runRequest(t, e, "/admin/products", "Bearer "+merchantTok).Code)
	assert.Equal(t, http.StatusForbidden, runRequest(t, e, "/admin/any", "Bearer "+disabledTok).Code)
	assert.Equal(t, http.StatusUnauthorized, runRequest(t, e, "/admin/any", "Bearer "+userTok).Code)
}

func TestAdminGuard_RoleFromDatabase(t *testing.T) {
	// トークン発行後にmerchantへ降格
	admins := &fakeAdminRepo{admins: map[string]model.Admin{
		"a1": {ID: "a1", Role: model.RoleMerchant, Status: model.AccountStatusActive},
	}}
	e := echo.New()
	e.GET("/admin/users", whoamiHandler, AuthJWT(jwtSvc, nil, zap.NewNop()), AdminGuard(admins), AdminRoleGuard())

	tok, _ := mustIssue(t, "a1", model.RoleAdmin)
	rec := runRequest(t, e, "/admin/users", "Bearer "+tok)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "forbidden", decodeError(t, rec).Message)
}

func TestProductScope(t *testing.T) {
	e := echo.New()
	var ownerFilter *string
	e.GET("/p", func(c echo.Context) error {
		ownerFilter = ScopeFrom(c).OwnerFilter()
		return c.NoContent(http.StatusOK)
	}, AuthJWT(jwtSvc, nil, zap.NewNop()), ProductScope())

	merchant, _ := mustIssue(t, "m1", model.RoleMerchant)
	runRequest(t, e, "/p", "Bearer "+merchant)
	require.NotNil(t, ownerFilter)
	assert.Equal(t, "m1", *ownerFilter)

	admin, _ := mustIssue(t, "a1", model.RoleAdmin)
	runRequest(t, e, "/p", "Bearer "+admin)
	assert.Nil(t, ownerFilter)
}

// =====================
// logging / metrics
// =====================

func TestRequestLogger(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	e := echo.New()
	e.Use(RequestLogger(zap.New(core)))
	e.GET("/ok", func(c echo.Context) error {
		assert.NotNil(t, LoggerFrom(c))
		return c.NoContent(http.StatusOK)
	})
	e.GET("/boom", func(c echo.Context) error {
		return echo.NewHTTPError(http.StatusInternalServerError, "boom")
	})

	runRequest(t, e, "/ok", "")
	runRequest(t, e, "/boom", "")

	require.Equal(t, 2, logs.FilterMessage("http request").Len())
	assert.Equal(t, 1, logs.FilterLevelExact(zapcore.ErrorLevel).Len())
	first := logs.All()[0].ContextMap()
	assert.Equal(t, int64(200), first["status"])
	assert.Equal(t, "/ok", first["path"])
}

func counterValue(t *testing.T, c prometheus.Counter) float64 {
	t.Helper()
	var m dto.Metric
	require.NoError(t, c.Write(&m))
	return m.GetCounter().GetValue()
}

func TestMetrics(t *testing.T) {
	e := echo.New()
	e.Use(Metrics())
	e.GET("/api/orders/:id", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/metrics", PrometheusHandler())

	before := counterValue(t, httpRequestsTotal.WithLabelValues(http.MethodGet, "/api/orders/:id", "200"))
	runRequest(t, e, "/api/orders/abc", "")
	runRequest(t, e, "/api/orders/def", "")
	after := counterValue(t, httpRequestsTotal.WithLabelValues(http.MethodGet, "/api/orders/:id", "200"))
	assert.Equal(t, before+2, after)

	var m OrderMetrics
	placed := counterValue(t, ordersPlacedTotal.WithLabelValues("success"))
	m.OrderPlaced()
	m.OrderRejected("insufficient_stock")
	assert.Equal(t, placed+1, counterValue(t, ordersPlacedTotal.WithLabelValues("success")))
	assert.GreaterOrEqual(t, counterValue(t, ordersPlacedTotal.WithLabelValues("insufficient_stock")), 1.0)

	// 存在しないURLはそのままラベルにならない
	runRequest(t, e, "/no/such/path/1", "")
	runRequest(t, e, "/no/such/path/2", "")
	families, err := prometheus.DefaultGatherer.Gather()
	require.NoError(t, err)
	for _, mf := range families {
		if mf.GetName() != "http_requests_total" {
			continue
		}
		for _, metric := range mf.GetMetric() {
			for _, l := range metric.GetLabel() {
				if l.GetName() == "endpoint" {
					assert.NotContains(t, l.GetValue(), "/no/such/path")
				}
			}
		}
	}

	rec := runRequest(t, e, "/metrics", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "orders_placed_total")
}

func TestMetrics_UnmatchedRouteLabel(t *testing.T) {
	e := echo.New()
	// ルーティングを通さないのでc.Path()は空
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/no/such/path", nil), httptest.NewRecorder())

	before := counterValue(t, httpRequestsTotal.WithLabelValues(http.MethodGet, unmatchedEndpoint, "404"))
	err := Metrics()(func(c echo.Context) error { return echo.ErrNotFound })(c)
	require.NoError(t, err)
	assert.Equal(t, before+1, counterValue(t, httpRequestsTotal.WithLabelValues(http.MethodGet, unmatchedEndpoint, "404")))
}
