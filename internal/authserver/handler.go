// Package authserver implements the remote authentication endpoint the
// storefront client talks to: a single POST URL dispatching on an "action"
// field, backed by an accounts table and a sessions table.
package authserver

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/Skotchmaster/skinstore/internal/events"
	"github.com/Skotchmaster/skinstore/internal/hash"
	"github.com/Skotchmaster/skinstore/internal/logging"
)

type AuthHandler struct {
	DB        *gorm.DB
	JWTSecret []byte
	Producer  *events.Producer
}

type request struct {
	Action       string `json:"action"`
	Username     string `json:"username"`
	Email        string `json:"email"`
	Password     string `json:"password"`
	SessionToken string `json:"sessionToken"`
}

type userPayload struct {
	ID       uint    `json:"id"`
	Username string  `json:"username"`
	Email    string  `json:"email"`
	Balance  float64 `json:"balance"`
}

func payload(acc *Account) userPayload {
	return userPayload{ID: acc.ID, Username: acc.Username, Email: acc.Email, Balance: acc.Balance}
}

func fail(c echo.Context, status int, msg string) error {
	return c.JSON(status, echo.Map{"success": false, "error": msg})
}

// Handle dispatches one auth request. Every answer is a JSON body; the
// client never needs to look past it.
func (h *AuthHandler) Handle(c echo.Context) error {
	var req request
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "Invalid request body")
	}

	switch req.Action {
	case "register":
		return h.register(c, req)
	case "login":
		return h.login(c, req)
	case "verify":
		return h.verify(c, req)
	default:
		return fail(c, http.StatusBadRequest, "Invalid action")
	}
}

func (h *AuthHandler) register(c echo.Context, req request) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.register")

	if req.Username == "" || req.Email == "" || req.Password == "" {
		return fail(c, http.StatusBadRequest, "Missing required fields")
	}
	if len(req.Password) < 6 {
		return fail(c, http.StatusBadRequest, "Password must be at least 6 characters")
	}

	var existing Account
	err := h.DB.Where("username = ? OR email = ?", req.Username, req.Email).First(&existing).Error
	if err == nil {
		return fail(c, http.StatusBadRequest, "Username or email already exists")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		l.Error("register_error", "status", 500, "reason", "cannot query accounts", "error", err)
		return fail(c, http.StatusInternalServerError, "Internal server error")
	}

	pwHash, err := hash.HashPassword(req.Password)
	if err != nil {
		l.Error("register_error", "status", 500, "reason", "cannot hash password", "error", err)
		return fail(c, http.StatusInternalServerError, "Internal server error")
	}

	acc := Account{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: pwHash,
		Balance:      StartingBalance,
	}
	if err := h.DB.Create(&acc).Error; err != nil {
		l.Error("register_error", "status", 500, "reason", "cannot create account", "error", err)
		return fail(c, http.StatusInternalServerError, "Internal server error")
	}

	token, err := h.issueSession(&acc)
	if err != nil {
		l.Error("register_error", "status", 500, "reason", "cannot issue session", "error", err)
		return fail(c, http.StatusInternalServerError, "Internal server error")
	}

	h.publish(c, map[string]interface{}{
		"type":     "user_registered",
		"userID":   acc.ID,
		"username": acc.Username,
	})

	l.Info("register_success", "userID", acc.ID)
	return c.JSON(http.StatusOK, echo.Map{
		"success":      true,
		"user":         payload(&acc),
		"sessionToken": token,
	})
}

func (h *AuthHandler) login(c echo.Context, req request) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.login")

	if req.Username == "" || req.Password == "" {
		return fail(c, http.StatusBadRequest, "Missing username or password")
	}

	var acc Account
	if err := h.DB.Where("username = ?", req.Username).First(&acc).Error; err != nil {
		return fail(c, http.StatusUnauthorized, "Invalid credentials")
	}
	if !hash.CheckPassword(acc.PasswordHash, req.Password) {
		return fail(c, http.StatusUnauthorized, "Invalid credentials")
	}

	token, err := h.issueSession(&acc)
	if err != nil {
		l.Error("login_error", "status", 500, "reason", "cannot issue session", "error", err)
		return fail(c, http.StatusInternalServerError, "Internal server error")
	}

	h.publish(c, map[string]interface{}{
		"type":     "user_logged_in",
		"userID":   acc.ID,
		"username": acc.Username,
	})

	l.Info("login_success", "userID", acc.ID)
	return c.JSON(http.StatusOK, echo.Map{
		"success":      true,
		"user":         payload(&acc),
		"sessionToken": token,
	})
}

// verify answers with the current account state for a live token. It issues
// nothing and mutates nothing, so clients may call it on every startup.
func (h *AuthHandler) verify(c echo.Context, req request) error {
	if req.SessionToken == "" {
		return fail(c, http.StatusUnauthorized, "No session token provided")
	}

	var sess UserSession
	err := h.DB.Where("token = ? AND expires_at > ?", req.SessionToken, time.Now()).First(&sess).Error
	if err != nil {
		return fail(c, http.StatusUnauthorized, "Invalid or expired session")
	}

	var acc Account
	if err := h.DB.First(&acc, sess.AccountID).Error; err != nil {
		return fail(c, http.StatusUnauthorized, "Invalid or expired session")
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"user":    payload(&acc),
	})
}

// issueSession signs a fresh token and records it with its expiry. The
// token is opaque to clients; only this server reads its claims.
func (h *AuthHandler) issueSession(acc *Account) (string, error) {
	exp := time.Now().Add(SessionTTL)
	claims := jwt.RegisteredClaims{
		Subject:   fmt.Sprint(acc.ID),
		ExpiresAt: jwt.NewNumericDate(exp),
		ID:        uuid.NewString(),
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(h.JWTSecret)
	if err != nil {
		return "", err
	}

	sess := UserSession{Token: token, AccountID: acc.ID, ExpiresAt: exp}
	if err := h.DB.Create(&sess).Error; err != nil {
		return "", err
	}
	return token, nil
}

func (h *AuthHandler) publish(c echo.Context, event map[string]interface{}) {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	if err := h.Producer.PublishEvent(ctx, "user_events", fmt.Sprint(event["userID"]), event); err != nil {
		logging.FromContext(ctx).Warn("event_publish_failed", "error", err)
	}
}
