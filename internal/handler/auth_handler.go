package handler

import (
	"errors"
	"net/http"
	"time"

	"app/internal/token"
	"app/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
)

type AuthHandler struct {
	uc           *usecase.AuthUsecase
	cookieSecure bool
}

// DIコンストラクタ
func NewAuthHandler(uc *usecase.AuthUsecase, cookieSecure bool) *AuthHandler {
	return &AuthHandler{
		uc:           uc,
		cookieSecure: cookieSecure,
	}
}

type errorResponse struct {
	Error   string                `json:"error"`
	Details []usecase.FieldDetail `json:"details,omitempty"`
}

func errorJSON(msg string) errorResponse {
	return errorResponse{Error: msg}
}

type messageResponse struct {
	Message string `json:"message"`
}

// RegisterはPOST /api/auth/registerのハンドラ
func (h *AuthHandler) Register(c echo.Context) error {
	var req usecase.AuthRegisterRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorJSON("VALIDATION_ERROR"))
	}

	res, err := h.uc.Register(c.Request().Context(), req)
	if err != nil {
		return h.writeAuthError(c, err)
	}

	//cookieでもtokenを渡す（ページ遷移用）
	h.setTokenCookie(c, res.Token)

	return c.JSON(http.StatusOK, res)
}

// LoginはPOST /api/auth/loginのハンドラ
func (h *AuthHandler) Login(c echo.Context) error {
	var req usecase.AuthLoginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorJSON("VALIDATION_ERROR"))
	}

	res, err := h.uc.Login(c.Request().Context(), req)
	if err != nil {
		return h.writeAuthError(c, err)
	}

	h.setTokenCookie(c, res.Token)

	return c.JSON(http.StatusOK, res)
}

// /api/auth/forgot-password のリクエストボディ
type forgotPasswordRequest struct {
	Email string `json:"email"`
}

// ForgotPasswordはPOST /api/auth/forgot-passwordのハンドラ
func (h *AuthHandler) ForgotPassword(c echo.Context) error {
	var req forgotPasswordRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorJSON("VALIDATION_ERROR"))
	}

	if err := h.uc.ForgotPassword(c.Request().Context(), req.Email); err != nil {
		switch {
		case errors.Is(err, usecase.ErrNotFound):
			return c.JSON(http.StatusNotFound, errorJSON("NO_ACCOUNT_WITH_THIS_EMAIL"))
		default:
			return h.writeAuthError(c, err)
		}
	}

	return c.JSON(http.StatusOK, messageResponse{Message: "Reset code sent successfully"})
}

// ResetPasswordはPOST /api/auth/reset-passwordのハンドラ
func (h *AuthHandler) ResetPassword(c echo.Context) error {
	var req usecase.ResetPasswordRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorJSON("VALIDATION_ERROR"))
	}

	if err := h.uc.ResetPassword(c.Request().Context(), req); err != nil {
		switch {
		case errors.Is(err, usecase.ErrNotFound):
			return c.JSON(http.StatusNotFound, errorJSON("NO_PENDING_RESET"))
		case errors.Is(err, usecase.ErrExpired):
			return c.JSON(http.StatusBadRequest, errorJSON("RESET_CODE_EXPIRED"))
		case errors.Is(err, usecase.ErrInvalidResetCode):
			return c.JSON(http.StatusBadRequest, errorJSON("INVALID_RESET_CODE"))
		default:
			return h.writeAuthError(c, err)
		}
	}

	return c.JSON(http.StatusOK, messageResponse{Message: "Password reset successfully"})
}

// 共通のエラー→ステータス変換。内部エラーの詳細はログだけに残す
func (h *AuthHandler) writeAuthError(c echo.Context, err error) error {
	var ve *usecase.ValidationError
	switch {
	case errors.As(err, &ve):
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "VALIDATION_ERROR", Details: ve.Details})
	case errors.Is(err, usecase.ErrUnauthorized):
		return c.JSON(http.StatusUnauthorized, errorJSON("UNAUTHORIZED"))
	case errors.Is(err, usecase.ErrConflict):
		return c.JSON(http.StatusConflict, errorJSON("EMAIL_OR_USERNAME_ALREADY_EXISTS"))
	default:
		log.Errorf("auth error: %v", err)
		return c.JSON(http.StatusInternalServerError, errorJSON("INTERNAL"))
	}
}

// tokenをHttpOnly cookieにセット（有効期限はtokenと同じ24h）
func (h *AuthHandler) setTokenCookie(c echo.Context, signed string) {
	c.SetCookie(&http.Cookie{
		Name:     "token",
		Value:    signed,
		Path:     "/",
		HttpOnly: true,
		Secure:   h.cookieSecure,
		SameSite: http.SameSiteStrictMode,
		Expires:  time.Now().Add(token.AccessTokenTTL),
	})
}
