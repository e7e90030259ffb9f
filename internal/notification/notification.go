// Package notification fans receipt lifecycle events out to registered
// subscribers. Delivery is best-effort: a failing or slow subscriber never
// blocks or fails the operation that produced the event.
package notification

import (
	"context"

	"go.uber.org/zap"
)

type EventType string

const (
	EventReceiptShared    EventType = "receipt_shared"
	EventReceiptAccepted  EventType = "receipt_accepted"
	EventReceiptDeclined  EventType = "receipt_declined"
	EventPaymentReceived  EventType = "payment_received"
	EventReceiptCompleted EventType = "receipt_completed"
)

type Event struct {
	Type      EventType
	ReceiptID int64
	UserID    string
	Amount    float64
}

type Subscriber interface {
	Notify(ctx context.Context, event Event) error
}

type Hub struct {
	subscribers []Subscriber
}

func NewHub(subscribers ...Subscriber) *Hub {
	return &Hub{subscribers: subscribers}
}

func (h *Hub) Register(sub Subscriber) {
	h.subscribers = append(h.subscribers, sub)
}

// Publish delivers the event to every subscriber. Errors are logged and
// swallowed.
func (h *Hub) Publish(ctx context.Context, event Event) {
	for _, sub := range h.subscribers {
		if err := sub.Notify(ctx, event); err != nil {
			zap.L().Warn("notification subscriber failed",
				zap.String("event", string(event.Type)),
				zap.Int64("receipt", event.ReceiptID),
				zap.Error(err))
		}
	}
}

// LogSubscriber records events in the application log. It stands in for
// external delivery channels (push, email) that are out of scope here.
type LogSubscriber struct{}

func (LogSubscriber) Notify(_ context.Context, event Event) error {
	zap.L().Info("receipt event",
		zap.String("type", string(event.Type)),
		zap.Int64("receipt", event.ReceiptID),
		zap.String("user", event.UserID),
		zap.Float64("amount", event.Amount))
	return nil
}
