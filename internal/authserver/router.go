package authserver

import "github.com/labstack/echo/v4"

func Register(e *echo.Echo, h *AuthHandler) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(200) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(200) })

	e.POST("/", h.Handle)
}
