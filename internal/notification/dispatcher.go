package notification

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Dispatcher decouples notification delivery from the booking flow.
// Events are queued after a successful state change and delivered by a
// background worker, so a notifier failure can never roll back or block
// a valid transition.
type Dispatcher struct {
	notifier Notifier
	log      *zap.Logger
	events   chan Event

	closeOnce sync.Once
	wg        sync.WaitGroup
}

func NewDispatcher(notifier Notifier, buffer int, log *zap.Logger) *Dispatcher {
	if buffer <= 0 {
		buffer = 64
	}

	d := &Dispatcher{
		notifier: notifier,
		log:      log.With(zap.String("component", "notification_dispatcher")),
		events:   make(chan Event, buffer),
	}

	d.wg.Add(1)
	go d.run()

	return d
}

func (d *Dispatcher) run() {
	defer d.wg.Done()

	for event := range d.events {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		err := d.notifier.Send(ctx, event)
		cancel()

		if err != nil {
			d.log.Error("Failed to deliver notification",
				zap.Error(err),
				zap.String("kind", string(event.Kind)),
				zap.String("reference_code", event.ReferenceCode),
			)
			continue
		}

		d.log.Info("Notification delivered",
			zap.String("kind", string(event.Kind)),
			zap.String("reference_code", event.ReferenceCode),
		)
	}
}

// Dispatch queues an event without blocking the caller. When the queue
// is full the event is dropped with a warning; the booking state change
// has already committed and must not wait on delivery.
func (d *Dispatcher) Dispatch(event Event) {
	select {
	case d.events <- event:
	default:
		d.log.Warn("Notification queue full, dropping event",
			zap.String("kind", string(event.Kind)),
			zap.String("reference_code", event.ReferenceCode),
		)
	}
}

// Close drains the queue and stops the worker.
func (d *Dispatcher) Close() {
	d.closeOnce.Do(func() {
		close(d.events)
	})
	d.wg.Wait()
}
