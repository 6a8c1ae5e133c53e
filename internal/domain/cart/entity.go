// internal/domain/cart/entity.go
package cart

import "github.com/your-org/canteen-backend/internal/domain/catalog"

// Item is one line of the cart. It keeps a full product snapshot, so later
// menu edits do not change items already in a cart.
type Item struct {
	Product  catalog.Product `json:"product"`
	Quantity int             `json:"quantity"`
}

// Subtotal returns price times quantity in cents
func (i Item) Subtotal() int64 {
	return i.Product.Price * int64(i.Quantity)
}

// State is an immutable snapshot of the cart
type State struct {
	Items           []Item `json:"items"`
	IncludesBag     bool   `json:"includes_bag"`
	LastOrderNumber *int   `json:"last_order_number,omitempty"`
}

// TotalItems returns the sum of quantities
func (s State) TotalItems() int {
	total := 0
	for _, item := range s.Items {
		total += item.Quantity
	}
	return total
}

// TotalPrice returns the sum of price times quantity, in cents
func (s State) TotalPrice() int64 {
	var total int64
	for _, item := range s.Items {
		total += item.Subtotal()
	}
	return total
}

// Totals represents calculated cart totals
type Totals struct {
	ItemCount     int   `json:"item_count"`     // Number of unique items
	TotalQuantity int   `json:"total_quantity"` // Sum of all quantities
	TotalPrice    int64 `json:"total_price"`
}

// Totals derives the totals of the snapshot
func (s State) Totals() Totals {
	return Totals{
		ItemCount:     len(s.Items),
		TotalQuantity: s.TotalItems(),
		TotalPrice:    s.TotalPrice(),
	}
}

// Notification is a short user-facing message raised by a cart operation
type Notification struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

const NotificationSuccess = "success"

// Notifier receives user-facing notifications
type Notifier interface {
	Notify(n Notification)
}

// NotifierFunc adapts a function to Notifier
type NotifierFunc func(n Notification)

func (f NotifierFunc) Notify(n Notification) { f(n) }
