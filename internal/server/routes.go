package server

import (
	"app/internal/handler"
	appmw "app/internal/middleware"
	"app/internal/repository"

	"github.com/labstack/echo/v4"
)

func RegisterRoutes(
	e *echo.Echo,
	users repository.UserRepository,
	singleSession bool,
	authH *handler.AuthHandler,
	userH *handler.UserHandler,
	dashH *handler.DashboardHandler,
) {
	//公開（ゲートのallow-listと対応）
	e.GET("/", dashH.Home)
	e.GET("/login", dashH.LoginPage)
	e.GET("/register", dashH.RegisterPage)
	e.GET("/forgot-password", dashH.ForgotPasswordPage)

	api := e.Group("/api")

	//認証API（公開）
	authAPI := api.Group("/auth")
	authAPI.POST("/register", authH.Register)
	authAPI.POST("/login", authH.Login)
	authAPI.POST("/forgot-password", authH.ForgotPassword)
	authAPI.POST("/reset-password", authH.ResetPassword)

	//認証必須API。単一セッション運用なら保存tokenとの一致も確認
	sessionGuard := appmw.SessionGuard(users, singleSession)
	api.GET("/protected/me", userH.Me, sessionGuard)
	api.PUT("/user/update", userH.Update, sessionGuard)

	//ロール別ホーム。到達可否はゲートのprefix判定
	e.GET("/admin", dashH.Admin)
	e.GET("/staff", dashH.Staff)
	e.GET("/customer", dashH.Customer)
}
