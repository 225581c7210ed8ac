package authserver

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/Skotchmaster/skinstore/internal/hash"
)

func initTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&Account{}, &UserSession{}))
	return db
}

func newTestHandler(t *testing.T) *AuthHandler {
	t.Helper()
	return &AuthHandler{DB: initTestDB(t), JWTSecret: []byte("test-jwt-secret")}
}

type authResponse struct {
	Success      bool   `json:"success"`
	SessionToken string `json:"sessionToken"`
	Error        string `json:"error"`
	User         *struct {
		ID       uint    `json:"id"`
		Username string  `json:"username"`
		Email    string  `json:"email"`
		Balance  float64 `json:"balance"`
	} `json:"user"`
}

func doAuth(t *testing.T, h *AuthHandler, payload map[string]string) (*httptest.ResponseRecorder, authResponse) {
	t.Helper()

	body, err := json.Marshal(payload)
	require.NoError(t, err)

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/", bytes.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.NoError(t, h.Handle(c))

	var resp authResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return rec, resp
}

func TestHandle_Register(t *testing.T) {
	h := newTestHandler(t)

	rec, resp := doAuth(t, h, map[string]string{
		"action": "register", "username": "gamer", "email": "g@example.com", "password": "hunter2!",
	})

	require.Equal(t, http.StatusOK, rec.Code)
	require.True(t, resp.Success)
	require.NotNil(t, resp.User)
	assert.Equal(t, "gamer", resp.User.Username)
	assert.Equal(t, "g@example.com", resp.User.Email)
	assert.Equal(t, StartingBalance, resp.User.Balance)
	assert.NotEmpty(t, resp.SessionToken)

	var acc Account
	require.NoError(t, h.DB.Where("username = ?", "gamer").First(&acc).Error)
	assert.NotEqual(t, "hunter2!", acc.PasswordHash)

	var sess UserSession
	require.NoError(t, h.DB.Where("token = ?", resp.SessionToken).First(&sess).Error)
	assert.Equal(t, acc.ID, sess.AccountID)
	assert.WithinDuration(t, time.Now().Add(SessionTTL), sess.ExpiresAt, time.Minute)
}

func TestHandle_RegisterRejectsDuplicates(t *testing.T) {
	h := newTestHandler(t)

	_, first := doAuth(t, h, map[string]string{
		"action": "register", "username": "gamer", "email": "g@example.com", "password": "hunter2!",
	})
	require.True(t, first.Success)

	rec, resp := doAuth(t, h, map[string]string{
		"action": "register", "username": "gamer", "email": "other@example.com", "password": "hunter2!",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.False(t, resp.Success)
	assert.Equal(t, "Username or email already exists", resp.Error)

	rec, resp = doAuth(t, h, map[string]string{
		"action": "register", "username": "other", "email": "g@example.com", "password": "hunter2!",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Username or email already exists", resp.Error)
}

func TestHandle_RegisterValidation(t *testing.T) {
	h := newTestHandler(t)

	rec, resp := doAuth(t, h, map[string]string{"action": "register", "username": "gamer"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Missing required fields", resp.Error)

	rec, resp = doAuth(t, h, map[string]string{
		"action": "register", "username": "gamer", "email": "g@example.com", "password": "short",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Password must be at least 6 characters", resp.Error)
}

func TestHandle_Login(t *testing.T) {
	h := newTestHandler(t)

	pwHash, err := hash.HashPassword("hunter2!")
	require.NoError(t, err)
	acc := Account{Username: "gamer", Email: "g@example.com", PasswordHash: pwHash, Balance: 250}
	require.NoError(t, h.DB.Create(&acc).Error)

	rec, resp := doAuth(t, h, map[string]string{
		"action": "login", "username": "gamer", "password": "hunter2!",
	})

	require.Equal(t, http.StatusOK, rec.Code)
	require.True(t, resp.Success)
	require.NotNil(t, resp.User)
	assert.Equal(t, 250.0, resp.User.Balance)
	assert.NotEmpty(t, resp.SessionToken)
}

func TestHandle_LoginInvalidCredentials(t *testing.T) {
	h := newTestHandler(t)

	pwHash, err := hash.HashPassword("hunter2!")
	require.NoError(t, err)
	require.NoError(t, h.DB.Create(&Account{Username: "gamer", Email: "g@example.com", PasswordHash: pwHash}).Error)

	for _, payload := range []map[string]string{
		{"action": "login", "username": "gamer", "password": "wrong"},
		{"action": "login", "username": "nobody", "password": "hunter2!"},
	} {
		rec, resp := doAuth(t, h, payload)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.False(t, resp.Success)
		assert.Equal(t, "Invalid credentials", resp.Error)
	}

	rec, resp := doAuth(t, h, map[string]string{"action": "login", "username": "gamer"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Missing username or password", resp.Error)
}

func TestHandle_Verify(t *testing.T) {
	h := newTestHandler(t)

	_, reg := doAuth(t, h, map[string]string{
		"action": "register", "username": "gamer", "email": "g@example.com", "password": "hunter2!",
	})
	require.True(t, reg.Success)

	rec, resp := doAuth(t, h, map[string]string{"action": "verify", "sessionToken": reg.SessionToken})
	require.Equal(t, http.StatusOK, rec.Code)
	require.True(t, resp.Success)
	require.NotNil(t, resp.User)
	assert.Equal(t, "gamer", resp.User.Username)
	assert.Empty(t, resp.SessionToken, "verify issues no new token")

	// Idempotent: the same token keeps verifying.
	rec, resp = doAuth(t, h, map[string]string{"action": "verify", "sessionToken": reg.SessionToken})
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, resp.Success)
}

func TestHandle_VerifyRejections(t *testing.T) {
	h := newTestHandler(t)

	rec, resp := doAuth(t, h, map[string]string{"action": "verify"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "No session token provided", resp.Error)

	rec, resp = doAuth(t, h, map[string]string{"action": "verify", "sessionToken": "garbage"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Invalid or expired session", resp.Error)

	acc := Account{Username: "gamer", Email: "g@example.com", PasswordHash: "x"}
	require.NoError(t, h.DB.Create(&acc).Error)
	expired := UserSession{Token: "tok-old", AccountID: acc.ID, ExpiresAt: time.Now().Add(-time.Hour)}
	require.NoError(t, h.DB.Create(&expired).Error)

	rec, resp = doAuth(t, h, map[string]string{"action": "verify", "sessionToken": "tok-old"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Invalid or expired session", resp.Error)
}

func TestHandle_InvalidAction(t *testing.T) {
	h := newTestHandler(t)

	rec, resp := doAuth(t, h, map[string]string{"action": "teleport"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.False(t, resp.Success)
	assert.Equal(t, "Invalid action", resp.Error)
}
