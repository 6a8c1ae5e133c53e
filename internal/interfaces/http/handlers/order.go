// internal/interfaces/http/handlers/order.go
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/your-org/canteen-backend/internal/domain/order"
)

// OrderHandler serves the status screen of the client's last order
type OrderHandler struct {
	orderService *order.Service
}

// NewOrderHandler creates a new order handler
func NewOrderHandler(orderService *order.Service) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

// GetLastOrder handles GET /orders/last
func (h *OrderHandler) GetLastOrder(c *gin.Context) {
	ws, ok := requireWorkspace(c)
	if !ok {
		return
	}

	number, _ := ws.Cart.LastOrderNumber()
	status, err := h.orderService.Status(number)
	if err != nil {
		writeOrderError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Order status retrieved successfully",
		"data":    status,
	})
}

// GetLastOrderTicket handles GET /orders/last/ticket.png
func (h *OrderHandler) GetLastOrderTicket(c *gin.Context) {
	ws, ok := requireWorkspace(c)
	if !ok {
		return
	}

	number, _ := ws.Cart.LastOrderNumber()
	png, err := h.orderService.Ticket(number)
	if err != nil {
		writeOrderError(c, err)
		return
	}

	c.Data(http.StatusOK, "image/png", png)
}

func writeOrderError(c *gin.Context, err error) {
	if errors.Is(err, order.ErrNoOrder) {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "No order has been placed yet",
		})
		return
	}
	_ = c.Error(err)
	c.JSON(http.StatusInternalServerError, gin.H{
		"error": "Failed to load order",
	})
}
