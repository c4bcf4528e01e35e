package handler

import (
	"errors"
	"net/http"

	"app/internal/middleware"
	"app/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
)

type UserHandler struct {
	uc *usecase.AuthUsecase
}

func NewUserHandler(uc *usecase.AuthUsecase) *UserHandler {
	return &UserHandler{uc: uc}
}

// MeはGET /api/protected/meのハンドラ。
// 身元はゲートがcontextに入れたものだけを信用する
func (h *UserHandler) Me(c echo.Context) error {
	userID, ok := c.Get(middleware.CtxUserIDKey).(int64)
	if !ok || userID <= 0 {
		return c.JSON(http.StatusUnauthorized, errorJSON("UNAUTHORIZED"))
	}

	dto, err := h.uc.Me(c.Request().Context(), userID)
	if err != nil {
		if errors.Is(err, usecase.ErrUnauthorized) {
			return c.JSON(http.StatusUnauthorized, errorJSON("UNAUTHORIZED"))
		}
		log.Errorf("me error: %v", err)
		return c.JSON(http.StatusInternalServerError, errorJSON("INTERNAL"))
	}

	return c.JSON(http.StatusOK, dto)
}

// UpdateはPUT /api/user/updateのハンドラ
func (h *UserHandler) Update(c echo.Context) error {
	userID, ok := c.Get(middleware.CtxUserIDKey).(int64)
	if !ok || userID <= 0 {
		return c.JSON(http.StatusUnauthorized, errorJSON("UNAUTHORIZED"))
	}

	var req usecase.UpdateProfileRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorJSON("VALIDATION_ERROR"))
	}

	dto, err := h.uc.UpdateProfile(c.Request().Context(), userID, req)
	if err != nil {
		var ve *usecase.ValidationError
		switch {
		case errors.As(err, &ve):
			return c.JSON(http.StatusBadRequest, errorResponse{Error: "VALIDATION_ERROR", Details: ve.Details})
		case errors.Is(err, usecase.ErrConflict):
			return c.JSON(http.StatusConflict, errorJSON("USERNAME_ALREADY_EXISTS"))
		case errors.Is(err, usecase.ErrNotFound):
			return c.JSON(http.StatusNotFound, errorJSON("USER_NOT_FOUND"))
		case errors.Is(err, usecase.ErrUnauthorized):
			return c.JSON(http.StatusUnauthorized, errorJSON("UNAUTHORIZED"))
		default:
			log.Errorf("update profile error: %v", err)
			return c.JSON(http.StatusInternalServerError, errorJSON("INTERNAL"))
		}
	}

	return c.JSON(http.StatusOK, echo.Map{
		"message": "Profile updated successfully",
		"user":    dto,
	})
}
