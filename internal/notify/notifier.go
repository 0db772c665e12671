// Package notify delivers booking notifications. Delivery is best-effort:
// the booking exists by the time anything here runs, and failures are
// logged, never surfaced to the customer.
package notify

import (
	"context"

	"piqueunique/pkg/model"
)

// Notifier is the outbound notification sink consumed by the booking
// service. Both sends are fire-and-forget from the caller's perspective.
type Notifier interface {
	SendBookingConfirmation(ctx context.Context, booking *model.Booking) error
	SendAdminNotification(ctx context.Context, booking *model.Booking) error
	Close() error
}

// Event is the message published for downstream mail/calendar workers.
// Calendar carries the rendered ICS invite so workers need no knowledge
// of slot semantics.
type Event struct {
	EventID   string         `json:"event_id"`
	Type      string         `json:"type"`
	Booking   *model.Booking `json:"booking"`
	Calendar  string         `json:"calendar"`
	Recipient string         `json:"recipient"`
}

const (
	EventTypeConfirmation      = "booking.confirmation"
	EventTypeAdminNotification = "booking.admin_notification"
)
