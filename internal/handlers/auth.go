package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/skinstore/internal/logging"
	"github.com/Skotchmaster/skinstore/internal/session"
)

// AuthHandler translates auth intents into session manager calls. All
// remote outcomes arrive as one uniform result shape; only the HTTP status
// differs between success and failure.
type AuthHandler struct {
	Manager *session.Manager
}

func (h *AuthHandler) Login(c echo.Context) error {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	res := h.Manager.Login(c.Request().Context(), req.Username, req.Password)
	if !res.Success {
		return c.JSON(http.StatusUnauthorized, res)
	}
	return c.JSON(http.StatusOK, res)
}

func (h *AuthHandler) Register(c echo.Context) error {
	var req struct {
		Username        string `json:"username"`
		Email           string `json:"email"`
		Password        string `json:"password"`
		ConfirmPassword string `json:"confirm_password"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	res := h.Manager.Register(c.Request().Context(), req.Username, req.Email, req.Password, req.ConfirmPassword)
	if !res.Success {
		return c.JSON(http.StatusBadRequest, res)
	}
	return c.JSON(http.StatusOK, res)
}

func (h *AuthHandler) Logout(c echo.Context) error {
	ctx := c.Request().Context()
	if err := h.Manager.Logout(ctx); err != nil {
		logging.FromContext(ctx).Warn("logout_clear_failed", "error", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "logged out"})
}

// GetSession reports the current user, nil when not authenticated. Callers
// should wait for the startup bootstrap before trusting the balance here.
func (h *AuthHandler) GetSession(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{"user": h.Manager.User()})
}
