// internal/interfaces/http/handlers/auth.go
package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/your-org/canteen-backend/internal/domain/storefront"
	"github.com/your-org/canteen-backend/internal/domain/user"
	"github.com/your-org/canteen-backend/internal/interfaces/http/middleware"
)

// LoginRequest represents user login data
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse is returned after every successful sign-in
type AuthResponse struct {
	User      *user.User `json:"user"`
	ExpiresAt time.Time  `json:"expires_at"`
	CSRFToken string     `json:"csrf_token"`
}

// AuthHandler handles authentication endpoints
type AuthHandler struct{}

// NewAuthHandler creates a new auth handler
func NewAuthHandler() *AuthHandler {
	return &AuthHandler{}
}

// Login handles user login
func (h *AuthHandler) Login(c *gin.Context) {
	ws, ok := requireWorkspace(c)
	if !ok {
		return
	}

	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	u, err := ws.Auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		writeAuthError(c, err)
		return
	}

	h.respondSignedIn(c, ws, u, http.StatusOK, "Login successful")
}

// LoginWithProvider handles the simulated third-party sign-in
func (h *AuthHandler) LoginWithProvider(c *gin.Context) {
	ws, ok := requireWorkspace(c)
	if !ok {
		return
	}

	u, err := ws.Auth.LoginWithProvider(c.Request.Context())
	if err != nil {
		writeAuthError(c, err)
		return
	}

	h.respondSignedIn(c, ws, u, http.StatusOK, "Login successful")
}

// Register handles user registration
func (h *AuthHandler) Register(c *gin.Context) {
	ws, ok := requireWorkspace(c)
	if !ok {
		return
	}

	var req user.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	u, err := ws.Auth.Register(c.Request.Context(), &req)
	if err != nil {
		writeAuthError(c, err)
		return
	}

	h.respondSignedIn(c, ws, u, http.StatusCreated, "User registered successfully")
}

// Logout handles user logout
func (h *AuthHandler) Logout(c *gin.Context) {
	ws, ok := requireWorkspace(c)
	if !ok {
		return
	}

	if err := ws.Auth.Logout(c.Request.Context()); err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to logout",
		})
		return
	}

	token := ws.Auth.Token()
	c.Header(middleware.CSRFHeader, token)
	c.JSON(http.StatusOK, gin.H{
		"message": "Logout successful",
		"data": gin.H{
			"csrf_token": token,
		},
	})
}

// Me returns the signed-in user
func (h *AuthHandler) Me(c *gin.Context) {
	u, exists := middleware.GetUserFromContext(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "Authentication required",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "User retrieved successfully",
		"data":    u,
	})
}

// CSRFToken returns the client's current anti-forgery token
func (h *AuthHandler) CSRFToken(c *gin.Context) {
	ws, ok := requireWorkspace(c)
	if !ok {
		return
	}

	token := ws.Auth.Token()
	c.Header(middleware.CSRFHeader, token)
	c.JSON(http.StatusOK, gin.H{
		"message": "Token issued",
		"data": gin.H{
			"csrf_token": token,
		},
	})
}

func (h *AuthHandler) respondSignedIn(c *gin.Context, ws *storefront.Workspace, u *user.User, status int, message string) {
	response := &AuthResponse{
		User:      u,
		CSRFToken: ws.Auth.Token(),
	}
	if session, ok := ws.Auth.Session(c.Request.Context()); ok {
		response.ExpiresAt = session.ExpiresAt().UTC()
	}

	c.Header(middleware.CSRFHeader, response.CSRFToken)
	c.JSON(status, gin.H{
		"message": message,
		"data":    response,
	})
}

func writeAuthError(c *gin.Context, err error) {
	switch {
	case user.IsValidationError(err):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, user.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	case errors.Is(err, user.ErrEmailTaken):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Authentication failed"})
	}
}
