package server

import (
	"app/internal/handler"
	appmw "app/internal/middleware"
	"app/internal/repository"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
)

// NewはEchoインスタンスを組み立てる。
// ゲートは全リクエストの入口で1回だけ動く
func New(
	gateVerifier appmw.TokenVerifier,
	users repository.UserRepository,
	singleSession bool,
	authH *handler.AuthHandler,
	userH *handler.UserHandler,
	dashH *handler.DashboardHandler,
) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	e.Use(echomw.RequestID())
	e.Use(echomw.Logger())
	e.Use(echomw.Recover())
	e.Use(appmw.AccessGate(gateVerifier))

	RegisterRoutes(e, users, singleSession, authH, userH, dashH)

	return e
}
