package httpserver

import (
	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/skinstore/internal/handlers"
)

type Deps struct {
	CatalogHandler *handlers.CatalogHandler
	CartHandler    *handlers.CartHandler
	AuthHandler    *handlers.AuthHandler
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(200) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(200) })

	v1 := e.Group("/api/v1")

	v1.POST("/auth/register", d.AuthHandler.Register)
	v1.POST("/auth/login", d.AuthHandler.Login)
	v1.POST("/auth/logout", d.AuthHandler.Logout)
	v1.GET("/auth/session", d.AuthHandler.GetSession)

	v1.GET("/catalog", d.CatalogHandler.Browse)

	cart := v1.Group("/cart")

	cart.GET("", d.CartHandler.GetCart)
	cart.POST("", d.CartHandler.AddToCart)
	cart.DELETE("", d.CartHandler.ClearCart)
	cart.DELETE("/entries/:id", d.CartHandler.RemoveEntry)
	cart.DELETE("/items/:id", d.CartHandler.RemoveItem)
}
