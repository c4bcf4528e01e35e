package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"app/internal/domain/model"
	"app/internal/middleware"
	"app/internal/token"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTokenService(t *testing.T) *token.Service {
	t.Helper()
	svc, err := token.NewService("test-secret")
	require.NoError(t, err)
	return svc
}

// ゲート通過後の身元情報をそのまま返すテスト用サーバー
func newGateEcho(t *testing.T, svc *token.Service) *echo.Echo {
	t.Helper()

	e := echo.New()
	e.Use(middleware.AccessGate(svc))

	identity := func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{
			"headerUserId":   c.Request().Header.Get(middleware.HeaderUserID),
			"headerUserRole": c.Request().Header.Get(middleware.HeaderUserRole),
		})
	}

	e.GET("/", identity)
	e.GET("/login", identity)
	e.GET("/admin", identity)
	e.GET("/admin/users", identity)
	e.GET("/staff", identity)
	e.GET("/customer", identity)
	e.GET("/api/protected/me", identity)

	return e
}

func issueFor(t *testing.T, svc *token.Service, id int64, role model.Role) string {
	t.Helper()
	signed, _, err := svc.Issue(&model.User{
		ID:       id,
		Email:    "user@test.com",
		Username: "user",
		RoleID:   int(role),
	})
	require.NoError(t, err)
	return signed
}

func TestAccessGate_PublicPathWithoutToken(t *testing.T) {
	svc := newTokenService(t)
	e := newGateEcho(t, svc)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

// 公開パスでもクライアント詐称の身元ヘッダは剥がす
func TestAccessGate_StripsSpoofedIdentityHeaders(t *testing.T) {
	svc := newTokenService(t)
	e := newGateEcho(t, svc)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(middleware.HeaderUserID, "999")
	req.Header.Set(middleware.HeaderUserRole, "Admin")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, rec.Body.String(), "999")
	assert.NotContains(t, rec.Body.String(), "Admin")
}

func TestAccessGate_NoToken_RedirectsToLogin(t *testing.T) {
	svc := newTokenService(t)
	e := newGateEcho(t, svc)

	req := httptest.NewRequest(http.MethodGet, "/api/protected/me", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get("Location"))
}

func TestAccessGate_InvalidToken_RedirectsToLogin(t *testing.T) {
	svc := newTokenService(t)
	e := newGateEcho(t, svc)

	req := httptest.NewRequest(http.MethodGet, "/api/protected/me", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get("Location"))
}

func TestAccessGate_ExpiredToken_RedirectsToLogin(t *testing.T) {
	svc := newTokenService(t)
	svc.AccessTTL = -time.Minute
	signed := issueFor(t, svc, 1, model.RoleAdmin)
	svc.AccessTTL = token.AccessTokenTTL

	e := newGateEcho(t, svc)

	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get("Location"))
}

// CUSTOMERのtokenでstaff区画→customerホームへ（500にも素通しにもしない）
func TestAccessGate_CustomerOnStaffPath_RedirectsToCustomerHome(t *testing.T) {
	svc := newTokenService(t)
	e := newGateEcho(t, svc)

	signed := issueFor(t, svc, 1, model.RoleCustomer)

	req := httptest.NewRequest(http.MethodGet, "/staff", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/customer", rec.Header().Get("Location"))
}

func TestAccessGate_NonAdminOnAdminSubPath_Redirected(t *testing.T) {
	svc := newTokenService(t)
	e := newGateEcho(t, svc)

	signed := issueFor(t, svc, 1, model.RoleStaff)

	req := httptest.NewRequest(http.MethodGet, "/admin/users", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/staff", rec.Header().Get("Location"))
}

// 正しいロールなら通過して身元ヘッダが付く
func TestAccessGate_AdminOnAdminPath_ForwardsWithIdentity(t *testing.T) {
	svc := newTokenService(t)
	e := newGateEcho(t, svc)

	signed := issueFor(t, svc, 7, model.RoleAdmin)

	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"headerUserId":"7"`)
	assert.Contains(t, rec.Body.String(), `"headerUserRole":"Admin"`)
}

// cookieのtokenでも認証できる
func TestAccessGate_CookieToken(t *testing.T) {
	svc := newTokenService(t)
	e := newGateEcho(t, svc)

	signed := issueFor(t, svc, 3, model.RoleCustomer)

	req := httptest.NewRequest(http.MethodGet, "/customer", nil)
	req.AddCookie(&http.Cookie{Name: "token", Value: signed})
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"headerUserId":"3"`)
}

// Authorizationヘッダがcookieより優先される
func TestAccessGate_HeaderTakesPrecedenceOverCookie(t *testing.T) {
	svc := newTokenService(t)
	e := newGateEcho(t, svc)

	headerToken := issueFor(t, svc, 10, model.RoleAdmin)
	cookieToken := issueFor(t, svc, 20, model.RoleCustomer)

	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set("Authorization", "Bearer "+headerToken)
	req.AddCookie(&http.Cookie{Name: "token", Value: cookieToken})
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"headerUserId":"10"`)
}
