// internal/domain/order/service.go
package order

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/skip2/go-qrcode"
)

// ErrNoOrder is returned when the client has not placed an order yet
var ErrNoOrder = errors.New("no order has been placed")

const (
	// MaxQueuePosition bounds the simulated queue
	MaxQueuePosition = 10
	// WaitPerPosition is the estimated preparation time per order ahead
	WaitPerPosition = 2 * time.Minute

	ticketSize = 256
)

// Service produces the simulated order-status screen. Queue positions are
// random placeholders; no real sequencing exists.
type Service struct {
	position func() int
}

// NewService creates an order status service
func NewService() *Service {
	return &Service{position: func() int { return rand.IntN(MaxQueuePosition) + 1 }}
}

// NewServiceWithPosition creates a service with a fixed queue position source
func NewServiceWithPosition(position func() int) *Service {
	return &Service{position: position}
}

// Status returns the simulated queue status of orderNumber
func (s *Service) Status(orderNumber int) (*Status, error) {
	if orderNumber <= 0 {
		return nil, ErrNoOrder
	}

	position := s.position()
	wait := time.Duration(position) * WaitPerPosition

	return &Status{
		OrderNumber:   orderNumber,
		QueuePosition: position,
		EstimatedWait: wait,
		EstimatedMins: int(wait / time.Minute),
		Ready:         position <= 1,
	}, nil
}

// TicketPayload is the text encoded in the order QR code
func TicketPayload(orderNumber int) string {
	return fmt.Sprintf("CANTEEN-ORDER-%d", orderNumber)
}

// Ticket renders the pick-up QR code for orderNumber as PNG
func (s *Service) Ticket(orderNumber int) ([]byte, error) {
	if orderNumber <= 0 {
		return nil, ErrNoOrder
	}

	png, err := qrcode.Encode(TicketPayload(orderNumber), qrcode.Medium, ticketSize)
	if err != nil {
		return nil, fmt.Errorf("failed to render order ticket: %w", err)
	}
	return png, nil
}
