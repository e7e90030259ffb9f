package notification

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

type recordingSubscriber struct {
	events []Event
	err    error
}

func (s *recordingSubscriber) Notify(_ context.Context, event Event) error {
	s.events = append(s.events, event)
	return s.err
}

func TestHub_Publish(t *testing.T) {
	event := Event{Type: EventReceiptShared, ReceiptID: 17, UserID: "user-2"}

	tests := []struct {
		name        string
		subscribers []*recordingSubscriber
	}{
		{
			name:        "Delivers to every subscriber",
			subscribers: []*recordingSubscriber{{}, {}},
		},
		{
			name:        "Failing subscriber does not block the rest",
			subscribers: []*recordingSubscriber{{err: errors.New("push gateway down")}, {}},
		},
		{
			name:        "No subscribers",
			subscribers: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hub := NewHub()
			for _, sub := range tt.subscribers {
				hub.Register(sub)
			}

			hub.Publish(context.Background(), event)

			for _, sub := range tt.subscribers {
				assert.Equal(t, []Event{event}, sub.events)
			}
		})
	}
}

func TestHub_Register(t *testing.T) {
	first := &recordingSubscriber{}
	hub := NewHub(first)

	second := &recordingSubscriber{}
	hub.Register(second)

	hub.Publish(context.Background(), Event{Type: EventPaymentReceived, ReceiptID: 17, UserID: "user-1", Amount: 30})

	assert.Len(t, first.events, 1)
	assert.Len(t, second.events, 1)
	assert.Equal(t, EventPaymentReceived, first.events[0].Type)
}

func TestLogSubscriber_Notify(t *testing.T) {
	err := LogSubscriber{}.Notify(context.Background(), Event{Type: EventReceiptCompleted, ReceiptID: 17})
	assert.NoError(t, err)
}
