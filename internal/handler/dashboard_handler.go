package handler

import (
	"net/http"

	"app/internal/domain/model"
	"app/internal/middleware"

	"github.com/labstack/echo/v4"
)

// 役割ごとのホーム画面。表示内容は薄く、到達可否はゲートが決める
type DashboardHandler struct{}

func NewDashboardHandler() *DashboardHandler {
	return &DashboardHandler{}
}

func (h *DashboardHandler) Home(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{"message": "Welcome"})
}

func (h *DashboardHandler) LoginPage(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{"page": "login"})
}

func (h *DashboardHandler) RegisterPage(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{"page": "register"})
}

func (h *DashboardHandler) ForgotPasswordPage(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{"page": "forgot-password"})
}

func (h *DashboardHandler) Admin(c echo.Context) error {
	return h.dashboard(c, model.RoleAdmin)
}

func (h *DashboardHandler) Staff(c echo.Context) error {
	return h.dashboard(c, model.RoleStaff)
}

func (h *DashboardHandler) Customer(c echo.Context) error {
	return h.dashboard(c, model.RoleCustomer)
}

func (h *DashboardHandler) dashboard(c echo.Context, role model.Role) error {
	return c.JSON(http.StatusOK, echo.Map{
		"dashboard": role.DisplayName(),
		"userId":    c.Get(middleware.CtxUserIDKey),
	})
}
