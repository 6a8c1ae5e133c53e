// internal/domain/order/entity.go
package order

import "time"

// Status is the simulated queue status of a placed order
type Status struct {
	OrderNumber   int           `json:"order_number"`
	QueuePosition int           `json:"queue_position"`
	EstimatedWait time.Duration `json:"-"`
	EstimatedMins int           `json:"estimated_minutes"`
	Ready         bool          `json:"ready"`
}
