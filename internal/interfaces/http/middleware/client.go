package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/your-org/canteen-backend/internal/config"
	"github.com/your-org/canteen-backend/internal/domain/storefront"
)

// Context keys set by Client
const (
	ClientIDKey    = "client_id"
	FreshClientKey = "fresh_client"
	WorkspaceKey   = "workspace"

	workspaceLoaderKey = "workspace_loader"
)

// Client identifies the caller by a cookie, minting a new id when absent.
// The workspace is only loaded when a handler asks for it through
// GetWorkspace, and is released when the request ends.
func Client(cfg *config.Config, registry *storefront.Registry) gin.HandlerFunc {
	maxAge := int(cfg.Storage.TTL.Seconds())

	return func(c *gin.Context) {
		clientID, err := c.Cookie(cfg.Session.CookieName)
		fresh := err != nil || uuid.Validate(clientID) != nil
		if fresh {
			clientID = uuid.NewString()
		}
		// Refresh the cookie on every request so it follows the storage TTL
		c.SetSameSite(http.SameSiteLaxMode)
		c.SetCookie(cfg.Session.CookieName, clientID, maxAge, "/", "", cfg.Session.CookieSecure, true)

		var release func()
		c.Set(ClientIDKey, clientID)
		c.Set(FreshClientKey, fresh)
		c.Set(workspaceLoaderKey, func() (*storefront.Workspace, error) {
			ws, done, err := registry.Acquire(c.Request.Context(), clientID)
			if err != nil {
				return nil, err
			}
			release = done
			return ws, nil
		})

		defer func() {
			if release != nil {
				release()
			}
		}()

		c.Next()
	}
}

// IsFreshClient reports whether the caller arrived without a client cookie
func IsFreshClient(c *gin.Context) bool {
	return c.GetBool(FreshClientKey)
}

// GetWorkspace returns the caller's workspace, loading it on first use.
// It returns nil outside Client or when the workspace cannot be built.
func GetWorkspace(c *gin.Context) *storefront.Workspace {
	if ws, exists := c.Get(WorkspaceKey); exists {
		return ws.(*storefront.Workspace)
	}

	loader, exists := c.Get(workspaceLoaderKey)
	if !exists {
		return nil
	}

	ws, err := loader.(func() (*storefront.Workspace, error))()
	if err != nil {
		_ = c.Error(err)
		return nil
	}
	c.Set(WorkspaceKey, ws)
	return ws
}
