package middleware

import (
	"errors"
	"net/http"

	"app/internal/repository"

	"github.com/labstack/echo/v4"
)

type errorResponse struct {
	Error string `json:"error"`
}

// SessionGuardは単一セッション運用時、提示されたtokenがDBに保存されている
// 最新のセッショントークンと一致するか確認する。ログインし直しで保存tokenが
// 上書きされると、署名上まだ有効な旧tokenもここで弾かれる。
func SessionGuard(users repository.UserRepository, enabled bool) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !enabled {
				return next(c)
			}

			//AccessGateが入れたuser_idを取得する
			userID, ok := c.Get(CtxUserIDKey).(int64)
			if !ok || userID <= 0 {
				return c.JSON(http.StatusUnauthorized, errorResponse{Error: "unauthorized"})
			}

			raw := extractToken(c)
			if raw == "" {
				return c.JSON(http.StatusUnauthorized, errorResponse{Error: "unauthorized"})
			}

			//保存tokenの持ち主が本人でなければ旧セッション扱い
			user, err := users.FindBySessionToken(c.Request().Context(), raw)
			if err != nil {
				if errors.Is(err, repository.ErrUserNotFound) {
					return c.JSON(http.StatusUnauthorized, errorResponse{Error: "unauthorized"})
				}
				return c.JSON(http.StatusInternalServerError, errorResponse{Error: "internal error"})
			}
			if user.ID != userID {
				return c.JSON(http.StatusUnauthorized, errorResponse{Error: "unauthorized"})
			}

			return next(c)
		}
	}
}
