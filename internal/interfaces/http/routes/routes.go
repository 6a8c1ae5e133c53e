// internal/interfaces/http/routes/routes.go
package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/your-org/canteen-backend/internal/domain/order"
	"github.com/your-org/canteen-backend/internal/interfaces/http/handlers"
	"github.com/your-org/canteen-backend/internal/interfaces/http/middleware"
)

// SetupCatalogRoutes sets up the read-only menu routes
func SetupCatalogRoutes(rg *gin.RouterGroup) {
	catalogHandler := handlers.NewCatalogHandler()

	catalog := rg.Group("/catalog")
	{
		catalog.GET("/products", catalogHandler.ListProducts)
		catalog.GET("/products/popular", catalogHandler.PopularProducts)
		catalog.GET("/products/:id", catalogHandler.GetProduct)
		catalog.GET("/categories", catalogHandler.ListCategories)
	}
}

// SetupCartRoutes sets up cart related routes
func SetupCartRoutes(rg *gin.RouterGroup) {
	cartHandler := handlers.NewCartHandler()

	cart := rg.Group("/cart")
	cart.Use(middleware.CSRF())
	{
		cart.GET("", cartHandler.GetCart)
		cart.POST("/items", cartHandler.AddToCart)
		cart.PUT("/items/:id", cartHandler.UpdateCartItem)
		cart.DELETE("/items/:id", cartHandler.RemoveFromCart)
		cart.DELETE("", cartHandler.ClearCart)
		cart.PUT("/bag", cartHandler.SetBag)
		cart.POST("/checkout", cartHandler.Checkout)
	}
}

// SetupOrderRoutes sets up the order status routes
func SetupOrderRoutes(rg *gin.RouterGroup, orderService *order.Service) {
	orderHandler := handlers.NewOrderHandler(orderService)

	orders := rg.Group("/orders")
	{
		orders.GET("/last", orderHandler.GetLastOrder)
		orders.GET("/last/ticket.png", orderHandler.GetLastOrderTicket)
	}
}

// SetupAuthRoutes sets up authentication related routes
func SetupAuthRoutes(rg *gin.RouterGroup) {
	authHandler := handlers.NewAuthHandler()

	auth := rg.Group("/auth")
	auth.Use(middleware.CSRF())
	{
		auth.GET("/csrf", authHandler.CSRFToken)
		auth.POST("/login", authHandler.Login)
		auth.POST("/login/provider", authHandler.LoginWithProvider)
		auth.POST("/register", authHandler.Register)

		// Protected auth endpoints
		protected := auth.Group("")
		protected.Use(middleware.RequireUser())
		{
			protected.POST("/logout", authHandler.Logout)
			protected.GET("/me", authHandler.Me)
		}
	}
}

// SetupThemeRoutes sets up the display preference routes
func SetupThemeRoutes(rg *gin.RouterGroup) {
	themeHandler := handlers.NewThemeHandler()

	theme := rg.Group("/theme")
	theme.Use(middleware.CSRF())
	{
		theme.GET("", themeHandler.GetTheme)
		theme.POST("/toggle", themeHandler.ToggleTheme)
	}
}

// SetupRoutes registers every API route on rg. The catalog is public and
// stateless; every other route runs behind the client middleware.
func SetupRoutes(rg *gin.RouterGroup, client gin.HandlerFunc, orderService *order.Service) {
	SetupCatalogRoutes(rg)

	stateful := rg.Group("")
	stateful.Use(client)
	{
		SetupCartRoutes(stateful)
		SetupOrderRoutes(stateful, orderService)
		SetupAuthRoutes(stateful)
		SetupThemeRoutes(stateful)
	}
}
