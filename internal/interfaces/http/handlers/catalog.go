// internal/interfaces/http/handlers/catalog.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/your-org/canteen-backend/internal/domain/catalog"
)

// CatalogHandler serves the read-only menu
type CatalogHandler struct{}

// NewCatalogHandler creates a new catalog handler
func NewCatalogHandler() *CatalogHandler {
	return &CatalogHandler{}
}

// ListProducts handles GET /catalog/products, optionally filtered by ?category=
func (h *CatalogHandler) ListProducts(c *gin.Context) {
	products := catalog.All()

	if raw := c.Query("category"); raw != "" {
		category := catalog.Category(raw)
		if !category.Valid() {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Unknown category",
			})
			return
		}
		products = catalog.ByCategory(category)
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Products retrieved successfully",
		"data":    products,
	})
}

// PopularProducts handles GET /catalog/products/popular
func (h *CatalogHandler) PopularProducts(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "Popular products retrieved successfully",
		"data":    catalog.Popular(),
	})
}

// GetProduct handles GET /catalog/products/:id
func (h *CatalogHandler) GetProduct(c *gin.Context) {
	product, ok := catalog.ByID(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Product not found",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Product retrieved successfully",
		"data":    product,
	})
}

// ListCategories handles GET /catalog/categories
func (h *CatalogHandler) ListCategories(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "Categories retrieved successfully",
		"data":    catalog.Categories(),
	})
}
