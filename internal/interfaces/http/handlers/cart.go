// internal/interfaces/http/handlers/cart.go
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/your-org/canteen-backend/internal/domain/cart"
	"github.com/your-org/canteen-backend/internal/domain/catalog"
	"github.com/your-org/canteen-backend/internal/domain/storefront"
	"github.com/your-org/canteen-backend/internal/interfaces/http/middleware"
)

// AddToCartRequest represents a request to add an item to the cart
type AddToCartRequest struct {
	ProductID string `json:"product_id" binding:"required"`
	Quantity  int    `json:"quantity"`
}

// UpdateCartItemRequest represents a request to change a line quantity
type UpdateCartItemRequest struct {
	Quantity *int `json:"quantity" binding:"required"`
}

// SetBagRequest represents a request to change the bag preference
type SetBagRequest struct {
	IncludesBag *bool `json:"includes_bag" binding:"required"`
}

// CartResponse is the cart as returned to clients
type CartResponse struct {
	Items           []cart.Item `json:"items"`
	IncludesBag     bool        `json:"includes_bag"`
	TotalItems      int         `json:"total_items"`
	TotalPrice      int64       `json:"total_price"`
	LastOrderNumber *int        `json:"last_order_number,omitempty"`
}

func newCartResponse(state cart.State) *CartResponse {
	return &CartResponse{
		Items:           state.Items,
		IncludesBag:     state.IncludesBag,
		TotalItems:      state.TotalItems(),
		TotalPrice:      state.TotalPrice(),
		LastOrderNumber: state.LastOrderNumber,
	}
}

// CartHandler handles cart endpoints
type CartHandler struct{}

// NewCartHandler creates a new cart handler
func NewCartHandler() *CartHandler {
	return &CartHandler{}
}

// GetCart handles GET /cart
func (h *CartHandler) GetCart(c *gin.Context) {
	ws, ok := requireWorkspace(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Cart retrieved successfully",
		"data":    newCartResponse(ws.Cart.Snapshot()),
	})
}

// AddToCart handles POST /cart/items
func (h *CartHandler) AddToCart(c *gin.Context) {
	ws, ok := requireWorkspace(c)
	if !ok {
		return
	}

	var req AddToCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	state, err := ws.Cart.AddItemByID(c.Request.Context(), req.ProductID, req.Quantity)
	if err != nil {
		if errors.Is(err, catalog.ErrProductNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Product not found",
			})
			return
		}
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to add item to cart",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Item added to cart successfully",
		"data":    newCartResponse(state),
	})
}

// UpdateCartItem handles PUT /cart/items/:id. A quantity of zero or less
// removes the line.
func (h *CartHandler) UpdateCartItem(c *gin.Context) {
	ws, ok := requireWorkspace(c)
	if !ok {
		return
	}

	var req UpdateCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	state := ws.Cart.UpdateQuantity(c.Request.Context(), c.Param("id"), *req.Quantity)

	c.JSON(http.StatusOK, gin.H{
		"message": "Cart item updated successfully",
		"data":    newCartResponse(state),
	})
}

// RemoveFromCart handles DELETE /cart/items/:id
func (h *CartHandler) RemoveFromCart(c *gin.Context) {
	ws, ok := requireWorkspace(c)
	if !ok {
		return
	}

	state := ws.Cart.RemoveItem(c.Request.Context(), c.Param("id"))

	c.JSON(http.StatusOK, gin.H{
		"message": "Item removed from cart successfully",
		"data":    newCartResponse(state),
	})
}

// ClearCart handles DELETE /cart
func (h *CartHandler) ClearCart(c *gin.Context) {
	ws, ok := requireWorkspace(c)
	if !ok {
		return
	}

	state := ws.Cart.ClearCart(c.Request.Context())

	c.JSON(http.StatusOK, gin.H{
		"message": "Cart cleared successfully",
		"data":    newCartResponse(state),
	})
}

// SetBag handles PUT /cart/bag
func (h *CartHandler) SetBag(c *gin.Context) {
	ws, ok := requireWorkspace(c)
	if !ok {
		return
	}

	var req SetBagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	state := ws.Cart.SetIncludesBag(c.Request.Context(), *req.IncludesBag)

	c.JSON(http.StatusOK, gin.H{
		"message": "Bag preference updated successfully",
		"data":    newCartResponse(state),
	})
}

// Checkout handles POST /cart/checkout. It blocks for the simulated order
// delay before answering.
func (h *CartHandler) Checkout(c *gin.Context) {
	ws, ok := requireWorkspace(c)
	if !ok {
		return
	}

	if ws.Cart.TotalItems() == 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Cart is empty",
		})
		return
	}

	orderNumber := ws.Cart.PlaceOrder(c.Request.Context())

	c.JSON(http.StatusCreated, gin.H{
		"message": "Order placed successfully",
		"data": gin.H{
			"order_number": orderNumber,
		},
	})
}

// requireWorkspace fetches the caller's workspace or answers 500
func requireWorkspace(c *gin.Context) (*storefront.Workspace, bool) {
	ws := middleware.GetWorkspace(c)
	if ws == nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Client state unavailable",
		})
		return nil, false
	}
	return ws, true
}
