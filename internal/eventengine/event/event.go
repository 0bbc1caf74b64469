package event

import (
	"time"

	"github.com/google/uuid"
)

type SubscriberName string
type EventName string

// Namer is implemented by every payload that travels through the engine.
type Namer interface {
	EventName() EventName
}

type Event struct {
	ID         uuid.UUID
	Name       EventName
	OccurredAt time.Time
	Payload    any
}

// New wraps payload in an Event named after it.
func New(payload Namer) *Event {
	return &Event{
		ID:         uuid.New(),
		Name:       payload.EventName(),
		OccurredAt: time.Now().UTC(),
		Payload:    payload,
	}
}

type Subscriber struct {
	Name      SubscriberName // Name of subscriber
	AddressCh chan<- *Event  // Where a subscriber is listening for events at.

	// DropWhenFull makes the engine skip this subscriber instead of waiting
	// when its AddressCh is full.
	DropWhenFull bool
}
