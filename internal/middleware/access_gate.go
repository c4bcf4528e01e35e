package middleware

import (
	"net/http"
	"strings"

	"app/internal/domain/model"
	"app/internal/token"

	"github.com/labstack/echo/v4"
)

const (
	CtxUserIDKey   = "user_id"   // int64
	CtxUserRoleKey = "user_role" // model.Role

	// ゲート通過後だけ信用できるサーバー設定ヘッダ
	HeaderUserID   = "X-User-Id"
	HeaderUserRole = "X-User-Role"

	loginPath = "/login"
)

// 認証なしで通すパス（ページとAPIの両方）
var publicPaths = map[string]struct{}{
	"/":                         {},
	"/login":                    {},
	"/register":                 {},
	"/forgot-password":          {},
	"/api/auth/login":           {},
	"/api/auth/register":        {},
	"/api/auth/forgot-password": {},
	"/api/auth/reset-password":  {},
}

// パス前置と必要ロールの対応
var rolePrefixes = []struct {
	prefix string
	role   model.Role
}{
	{"/admin", model.RoleAdmin},
	{"/api/admin", model.RoleAdmin},
	{"/staff", model.RoleStaff},
	{"/api/staff", model.RoleStaff},
	{"/customer", model.RoleCustomer},
	{"/api/customer", model.RoleCustomer},
}

// トークン検証の約束（token.Serviceが満たす）
type TokenVerifier interface {
	Verify(raw string) (*token.AccessClaims, error)
}

// AccessGateは全リクエストの入口で認証・認可を判定するミドルウェア。
// 永続状態は一切書き換えない。
func AccessGate(verifier TokenVerifier) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			path := req.URL.Path

			//クライアントが詐称してきた身元ヘッダは先に剥がす
			req.Header.Del(HeaderUserID)
			req.Header.Del(HeaderUserRole)

			//公開パスは未認証のまま通す
			if _, ok := publicPaths[path]; ok {
				return next(c)
			}

			//ヘッダ優先・無ければcookie
			raw := extractToken(c)
			if raw == "" {
				return c.Redirect(http.StatusFound, loginPath)
			}

			//検証失敗（期限切れ・改ざん・別アルゴリズム）は全てログインへ
			claims, err := verifier.Verify(raw)
			if err != nil {
				return c.Redirect(http.StatusFound, loginPath)
			}

			userID, err := claims.UserID()
			if err != nil {
				return c.Redirect(http.StatusFound, loginPath)
			}

			role := model.RoleFromID(claims.Role)

			//ロール制限区画はロール不一致なら本人のホームへ返す
			if required, restricted := requiredRoleForPath(path); restricted && role != required {
				return c.Redirect(http.StatusFound, role.HomeRoute())
			}

			//後段はtokenを再パースせず、ここで付けた身元情報だけを見る
			req.Header.Set(HeaderUserID, claims.Subject)
			req.Header.Set(HeaderUserRole, role.DisplayName())
			c.Set(CtxUserIDKey, userID)
			c.Set(CtxUserRoleKey, role)

			return next(c)
		}
	}
}

// Authorizationヘッダ（Bearer）優先、無ければtokenクッキー
func extractToken(c echo.Context) string {
	authz := c.Request().Header.Get("Authorization")
	if authz != "" {
		parts := strings.SplitN(authz, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
			return strings.TrimSpace(parts[1])
		}
		return ""
	}

	cookie, err := c.Cookie("token")
	if err != nil {
		return ""
	}
	return cookie.Value
}

func requiredRoleForPath(path string) (model.Role, bool) {
	for _, rp := range rolePrefixes {
		if path == rp.prefix || strings.HasPrefix(path, rp.prefix+"/") {
			return rp.role, true
		}
	}
	return 0, false
}
