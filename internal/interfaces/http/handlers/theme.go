package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/your-org/canteen-backend/internal/domain/theme"
)

// ThemeResponse describes the client's display preference
type ThemeResponse struct {
	DarkMode      bool   `json:"dark_mode"`
	DocumentClass string `json:"document_class"`
}

func newThemeResponse(s *theme.Store) *ThemeResponse {
	return &ThemeResponse{
		DarkMode:      s.DarkMode(),
		DocumentClass: s.DocumentClass(),
	}
}

// ThemeHandler handles the light/dark preference
type ThemeHandler struct{}

// NewThemeHandler creates a new theme handler
func NewThemeHandler() *ThemeHandler {
	return &ThemeHandler{}
}

// GetTheme handles GET /theme
func (h *ThemeHandler) GetTheme(c *gin.Context) {
	ws, ok := requireWorkspace(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Theme retrieved successfully",
		"data":    newThemeResponse(ws.Theme),
	})
}

// ToggleTheme handles POST /theme/toggle
func (h *ThemeHandler) ToggleTheme(c *gin.Context) {
	ws, ok := requireWorkspace(c)
	if !ok {
		return
	}

	ws.Theme.ToggleDarkMode(c.Request.Context())

	c.JSON(http.StatusOK, gin.H{
		"message": "Theme updated successfully",
		"data":    newThemeResponse(ws.Theme),
	})
}
