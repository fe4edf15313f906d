// Package diag exposes the client's local diagnostics endpoints: a liveness
// probe and the Prometheus metrics registry. It binds to loopback by default
// and serves no business data.
package diag

import (
	"net/http"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
)

// NewServer builds the diagnostics Echo instance.
func NewServer() *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(echomiddleware.Recover())

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}
