package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ketaqwaan/ketaqwaan/backend/go-services/internal/config"
	"github.com/ketaqwaan/ketaqwaan/backend/go-services/internal/models"
	"github.com/ketaqwaan/ketaqwaan/backend/go-services/internal/users"
	"github.com/ketaqwaan/ketaqwaan/backend/go-services/pkg/middleware"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{Environment: "test"},
		JWT:    config.JWTConfig{Secret: "test-secret", TokenTTL: time.Hour},
	}
}

type authFixture struct {
	engine *gin.Engine
	cfg    *config.Config
	svc    *users.Service
}

func newAuthFixture(t *testing.T) *authFixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := testConfig()
	svc := users.NewService(users.NewMemoryUserRepository())

	engine := gin.New()
	api := engine.Group("/api")
	auth := middleware.RequireAuth(cfg, svc)
	superAdmin := middleware.RequireRole(models.RoleSuperAdmin)
	NewAuthHandler(cfg, svc).Register(api, auth, superAdmin)

	return &authFixture{engine: engine, cfg: cfg, svc: svc}
}

func (f *authFixture) seed(t *testing.T, email, password string, role models.Role) *models.AdminUser {
	t.Helper()
	u, err := f.svc.Register(context.Background(), email, password, "Test User", role)
	require.NoError(t, err)
	return u
}

func (f *authFixture) do(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	f.engine.ServeHTTP(rec, req)
	return rec
}

func (f *authFixture) login(t *testing.T, email, password string) string {
	t.Helper()
	rec := f.do(t, http.MethodPost, "/api/auth/login", "", gin.H{"email": email, "password": password})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var resp struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)
	return resp.Token
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var m map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &m))
	return m
}

func TestLogin_SuccessAndMe(t *testing.T) {
	f := newAuthFixture(t)
	f.seed(t, "admin@example.com", "secret123", models.RoleAdmin)

	token := f.login(t, "admin@example.com", "secret123")

	rec := f.do(t, http.MethodGet, "/api/auth/me", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	user := body["user"].(map[string]interface{})
	require.Equal(t, "admin@example.com", user["email"])
	_, leaked := user["password"]
	require.False(t, leaked, "password hash must never be serialized")
}

func TestLogin_InvalidCredentials(t *testing.T) {
	f := newAuthFixture(t)
	f.seed(t, "admin@example.com", "secret123", models.RoleAdmin)

	rec := f.do(t, http.MethodPost, "/api/auth/login", "", gin.H{"email": "admin@example.com", "password": "wrong"})
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.Equal(t, "Invalid credentials", decodeBody(t, rec)["message"])

	// unknown email gets the same message as a wrong password
	rec = f.do(t, http.MethodPost, "/api/auth/login", "", gin.H{"email": "nobody@example.com", "password": "secret123"})
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.Equal(t, "Invalid credentials", decodeBody(t, rec)["message"])
}

func TestLogin_ValidationErrors(t *testing.T) {
	f := newAuthFixture(t)
	rec := f.do(t, http.MethodPost, "/api/auth/login", "", gin.H{"email": "not-an-email", "password": ""})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	body := decodeBody(t, rec)
	require.Len(t, body["errors"], 2)
}

func TestLogin_DeactivatedAccount(t *testing.T) {
	f := newAuthFixture(t)
	u := f.seed(t, "admin@example.com", "secret123", models.RoleAdmin)
	_, err := f.svc.ToggleActive(context.Background(), u.ID)
	require.NoError(t, err)

	rec := f.do(t, http.MethodPost, "/api/auth/login", "", gin.H{"email": "admin@example.com", "password": "secret123"})
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.Equal(t, "Account is deactivated", decodeBody(t, rec)["message"])
}

func TestChangePassword(t *testing.T) {
	f := newAuthFixture(t)
	f.seed(t, "admin@example.com", "secret123", models.RoleAdmin)
	token := f.login(t, "admin@example.com", "secret123")

	rec := f.do(t, http.MethodPut, "/api/auth/change-password", token,
		gin.H{"currentPassword": "wrong", "newPassword": "newsecret"})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, "Current password is incorrect", decodeBody(t, rec)["message"])

	rec = f.do(t, http.MethodPut, "/api/auth/change-password", token,
		gin.H{"currentPassword": "secret123", "newPassword": "short"})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = f.do(t, http.MethodPut, "/api/auth/change-password", token,
		gin.H{"currentPassword": "secret123", "newPassword": "newsecret"})
	require.Equal(t, http.StatusOK, rec.Code)

	// old password no longer works, new one does
	rec = f.do(t, http.MethodPost, "/api/auth/login", "", gin.H{"email": "admin@example.com", "password": "secret123"})
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	f.login(t, "admin@example.com", "newsecret")
}

func TestRegister_RequiresSuperAdmin(t *testing.T) {
	f := newAuthFixture(t)
	f.seed(t, "admin@example.com", "secret123", models.RoleAdmin)
	f.seed(t, "root@example.com", "secret123", models.RoleSuperAdmin)
	adminToken := f.login(t, "admin@example.com", "secret123")
	superToken := f.login(t, "root@example.com", "secret123")

	rec := f.do(t, http.MethodPost, "/api/auth/register", adminToken,
		gin.H{"email": "new@example.com", "password": "secret123", "name": "New", "role": "admin"})
	require.Equal(t, http.StatusForbidden, rec.Code)
	require.Equal(t, "Access denied. Super admin role required.", decodeBody(t, rec)["message"])

	// the rejected request must not have created anything
	rec = f.do(t, http.MethodGet, "/api/auth/users", superToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, decodeBody(t, rec)["users"], 2)
}

func TestRegister_CreatesUserAndRejectsDuplicates(t *testing.T) {
	f := newAuthFixture(t)
	f.seed(t, "root@example.com", "secret123", models.RoleSuperAdmin)
	token := f.login(t, "root@example.com", "secret123")

	rec := f.do(t, http.MethodPost, "/api/auth/register", token,
		gin.H{"email": "new@example.com", "password": "secret123", "name": "New Admin", "role": "admin"})
	require.Equal(t, http.StatusCreated, rec.Code)
	require.Equal(t, "User created successfully", decodeBody(t, rec)["message"])
	f.login(t, "new@example.com", "secret123")

	rec = f.do(t, http.MethodPost, "/api/auth/register", token,
		gin.H{"email": "new@example.com", "password": "secret123", "name": "New Admin", "role": "admin"})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, "User with this email already exists", decodeBody(t, rec)["message"])

	rec = f.do(t, http.MethodPost, "/api/auth/register", token,
		gin.H{"email": "other@example.com", "password": "secret123", "name": "Other", "role": "owner"})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.NotNil(t, decodeBody(t, rec)["errors"])
}

func TestToggleStatus(t *testing.T) {
	f := newAuthFixture(t)
	admin := f.seed(t, "admin@example.com", "secret123", models.RoleAdmin)
	root := f.seed(t, "root@example.com", "secret123", models.RoleSuperAdmin)
	token := f.login(t, "root@example.com", "secret123")

	rec := f.do(t, http.MethodPut, "/api/auth/users/"+admin.ID+"/toggle-status", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	user := decodeBody(t, rec)["user"].(map[string]interface{})
	require.Equal(t, false, user["isActive"])

	rec = f.do(t, http.MethodPut, "/api/auth/users/"+root.ID+"/toggle-status", token, nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, "You cannot deactivate your own account", decodeBody(t, rec)["message"])

	rec = f.do(t, http.MethodPut, "/api/auth/users/missing/toggle-status", token, nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Equal(t, "User not found", decodeBody(t, rec)["message"])
}
