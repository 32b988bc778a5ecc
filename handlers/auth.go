package handlers

import (
	"net/http"
	"net/mail"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/ketaqwaan/ketaqwaan/backend/go-services/internal/config"
	"github.com/ketaqwaan/ketaqwaan/backend/go-services/internal/content"
	"github.com/ketaqwaan/ketaqwaan/backend/go-services/internal/models"
	"github.com/ketaqwaan/ketaqwaan/backend/go-services/internal/tokens"
	"github.com/ketaqwaan/ketaqwaan/backend/go-services/internal/users"
	"github.com/ketaqwaan/ketaqwaan/backend/go-services/pkg/logger"
	"github.com/ketaqwaan/ketaqwaan/backend/go-services/pkg/metrics"
	"github.com/ketaqwaan/ketaqwaan/backend/go-services/pkg/middleware"
)

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
	Role     string `json:"role"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

// AuthHandler serves login and the super_admin user-management surface.
type AuthHandler struct {
	cfg      *config.Config
	usersSvc *users.Service
}

func NewAuthHandler(cfg *config.Config, u *users.Service) *AuthHandler {
	return &AuthHandler{cfg: cfg, usersSvc: u}
}

// Register mounts the /auth routes. auth re-validates the token per request;
// superAdmin additionally gates the user-management routes.
func (h *AuthHandler) Register(rg *gin.RouterGroup, auth, superAdmin gin.HandlerFunc) {
	a := rg.Group("/auth")
	a.POST("/login", h.Login)
	a.GET("/me", auth, h.Me)
	a.PUT("/change-password", auth, h.ChangePassword)
	a.GET("/users", auth, superAdmin, h.ListUsers)
	a.POST("/register", auth, superAdmin, h.RegisterUser)
	a.PUT("/users/:id/toggle-status", auth, superAdmin, h.ToggleStatus)
}

// Login authenticates email+password and returns a signed token plus the user.
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}
	var errs []content.FieldError
	if _, err := mail.ParseAddress(req.Email); err != nil {
		errs = append(errs, content.FieldError{Field: "email", Message: "Invalid value"})
	}
	if req.Password == "" {
		errs = append(errs, content.FieldError{Field: "password", Message: "Invalid value"})
	}
	if len(errs) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"errors": errs})
		return
	}

	u, err := h.usersSvc.Authenticate(c.Request.Context(), strings.ToLower(strings.TrimSpace(req.Email)), req.Password)
	if err != nil {
		switch err {
		case users.ErrInvalidCredentials:
			metrics.LoginAttempts.WithLabelValues("invalid_credentials").Inc()
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid credentials"})
		case users.ErrAccountDisabled:
			metrics.LoginAttempts.WithLabelValues("deactivated").Inc()
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Account is deactivated"})
		default:
			logger.Errorf("login error: %v", err)
			metrics.LoginAttempts.WithLabelValues("error").Inc()
			h.serverError(c, err)
		}
		return
	}

	token, err := tokens.GenerateToken(h.cfg, u, h.cfg.JWT.TokenTTL)
	if err != nil {
		logger.Errorf("token generation error: %v", err)
		h.serverError(c, err)
		return
	}
	metrics.LoginAttempts.WithLabelValues("success").Inc()
	c.JSON(http.StatusOK, gin.H{"token": token, "user": u})
}

// Me returns the authenticated admin user.
func (h *AuthHandler) Me(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"user": middleware.CurrentUser(c)})
}

// ChangePassword verifies the current password before storing a new one.
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	var req ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}
	var errs []content.FieldError
	if req.CurrentPassword == "" {
		errs = append(errs, content.FieldError{Field: "currentPassword", Message: "Invalid value"})
	}
	if len(req.NewPassword) < 6 {
		errs = append(errs, content.FieldError{Field: "newPassword", Message: "Password must be at least 6 characters"})
	}
	if len(errs) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"errors": errs})
		return
	}

	u := middleware.CurrentUser(c)
	if err := h.usersSvc.ChangePassword(c.Request.Context(), u.ID, req.CurrentPassword, req.NewPassword); err != nil {
		if err == users.ErrInvalidCredentials {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Current password is incorrect"})
			return
		}
		logger.Errorf("change password error: %v", err)
		h.serverError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Password changed successfully"})
}

// ListUsers returns every admin account, including deactivated ones.
func (h *AuthHandler) ListUsers(c *gin.Context) {
	list, err := h.usersSvc.List(c.Request.Context())
	if err != nil {
		logger.Errorf("list users error: %v", err)
		h.serverError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"users": list})
}

// RegisterUser creates a new admin account.
func (h *AuthHandler) RegisterUser(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}
	var errs []content.FieldError
	if _, err := mail.ParseAddress(req.Email); err != nil {
		errs = append(errs, content.FieldError{Field: "email", Message: "Invalid value"})
	}
	if len(req.Password) < 6 {
		errs = append(errs, content.FieldError{Field: "password", Message: "Password must be at least 6 characters"})
	}
	if strings.TrimSpace(req.Name) == "" {
		errs = append(errs, content.FieldError{Field: "name", Message: "Invalid value"})
	}
	role, ok := models.ParseRole(req.Role)
	if !ok {
		errs = append(errs, content.FieldError{Field: "role", Message: "Role must be admin or super_admin"})
	}
	if len(errs) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"errors": errs})
		return
	}

	u, err := h.usersSvc.Register(c.Request.Context(), strings.ToLower(strings.TrimSpace(req.Email)), req.Password, strings.TrimSpace(req.Name), role)
	if err != nil {
		if err == users.ErrEmailTaken {
			c.JSON(http.StatusBadRequest, gin.H{"message": "User with this email already exists"})
			return
		}
		logger.Errorf("register user error: %v", err)
		h.serverError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "User created successfully", "user": u})
}

// ToggleStatus flips isActive on an account. Accounts are never deleted, and
// an admin cannot lock themselves out.
func (h *AuthHandler) ToggleStatus(c *gin.Context) {
	id := c.Param("id")
	if id == middleware.CurrentUser(c).ID {
		c.JSON(http.StatusBadRequest, gin.H{"message": "You cannot deactivate your own account"})
		return
	}
	u, err := h.usersSvc.ToggleActive(c.Request.Context(), id)
	if err != nil {
		if err == users.ErrNotFound {
			c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
			return
		}
		logger.Errorf("toggle user status error: %v", err)
		h.serverError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "User status updated successfully", "user": u})
}

func (h *AuthHandler) serverError(c *gin.Context, err error) {
	resp := gin.H{"message": "Server error"}
	if !h.cfg.IsProduction() {
		resp["error"] = err.Error()
	}
	c.JSON(http.StatusInternalServerError, resp)
}
