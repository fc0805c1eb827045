package notification

import (
	"context"
	"time"
)

type EventKind string

const (
	EventConfirmed   EventKind = "confirmed"
	EventApproved    EventKind = "approved"
	EventCancelled   EventKind = "cancelled"
	EventRescheduled EventKind = "rescheduled"
	EventCompleted   EventKind = "completed"
)

// Event is the booking snapshot handed to the notifier after a
// successful state change.
type Event struct {
	Kind          EventKind
	ReferenceCode string
	CustomerName  string
	CustomerEmail string
	Services      []string
	CheckIn       time.Time
	CheckOut      time.Time
	Message       string
}

// Notifier delivers a templated message for an event. The concrete
// transport (SMTP, SMS gateway) lives outside this core.
type Notifier interface {
	Send(ctx context.Context, event Event) error
}

// EventSink accepts events for asynchronous delivery. Dispatcher is the
// production implementation.
type EventSink interface {
	Dispatch(event Event)
}
