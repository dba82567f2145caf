// Package notify delivers transactional email about orders. Delivery is
// best-effort: callers enqueue and move on.
package notify

import (
	"context"

	"backoffice/internal/domain"
)

// Event is an order status change the customer should hear about.
type Event struct {
	To             string
	OrderID        string
	CustomerName   string
	Status         domain.OrderStatus
	PaymentStatus  domain.PaymentStatus
	TrackingNumber string
}

// Notifier accepts events without blocking the caller.
type Notifier interface {
	Notify(e Event)
}

type Message struct {
	ID      string
	From    string
	To      string
	Subject string
	HTML    string
}

type Transport interface {
	Send(ctx context.Context, m Message) error
}

// Discard drops every event.
type Discard struct{}

func (Discard) Notify(Event) {}
