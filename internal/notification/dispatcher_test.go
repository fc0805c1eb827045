package notification

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"go.uber.org/zap"
)

type captureNotifier struct {
	mu      sync.Mutex
	sent    []Event
	err     error
	entered chan struct{}
	release chan struct{}
}

func (n *captureNotifier) Send(_ context.Context, event Event) error {
	n.mu.Lock()
	n.sent = append(n.sent, event)
	n.mu.Unlock()
	if n.entered != nil {
		n.entered <- struct{}{}
		<-n.release
	}
	return n.err
}

func (n *captureNotifier) events() []Event {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]Event(nil), n.sent...)
}

func TestDispatcherDeliversInOrder(t *testing.T) {
	notifier := &captureNotifier{}
	d := NewDispatcher(notifier, 16, zap.NewNop())

	for i := 0; i < 5; i++ {
		d.Dispatch(Event{Kind: EventConfirmed, ReferenceCode: fmt.Sprintf("B20250610-%05d", i)})
	}
	d.Close()

	sent := notifier.events()
	if len(sent) != 5 {
		t.Fatalf("delivered %d events, want 5", len(sent))
	}
	for i, event := range sent {
		want := fmt.Sprintf("B20250610-%05d", i)
		if event.ReferenceCode != want {
			t.Errorf("event %d reference = %s, want %s", i, event.ReferenceCode, want)
		}
	}
}

func TestDispatcherSurvivesNotifierError(t *testing.T) {
	notifier := &captureNotifier{err: errors.New("smtp down")}
	d := NewDispatcher(notifier, 16, zap.NewNop())

	d.Dispatch(Event{Kind: EventConfirmed, ReferenceCode: "B20250610-AAAAA"})
	d.Dispatch(Event{Kind: EventApproved, ReferenceCode: "B20250610-BBBBB"})
	d.Close()

	if got := len(notifier.events()); got != 2 {
		t.Errorf("delivery attempts = %d, want 2", got)
	}
}

func TestDispatcherDropsWhenFull(t *testing.T) {
	// The worker is held inside Send for the first event, so further
	// dispatches pile into the single-slot queue and overflow is dropped.
	notifier := &captureNotifier{
		entered: make(chan struct{}),
		release: make(chan struct{}),
	}
	d := NewDispatcher(notifier, 1, zap.NewNop())

	d.Dispatch(Event{ReferenceCode: "first"})
	<-notifier.entered // worker is now inside Send for "first"

	d.Dispatch(Event{ReferenceCode: "second"}) // fills the buffer
	d.Dispatch(Event{ReferenceCode: "third"})  // dropped, must not block

	notifier.release <- struct{}{} // let "first" finish
	<-notifier.entered             // worker picked up "second"
	notifier.release <- struct{}{}
	d.Close()

	sent := notifier.events()
	if len(sent) != 2 {
		t.Fatalf("delivered %d events, want 2", len(sent))
	}
	if sent[0].ReferenceCode != "first" || sent[1].ReferenceCode != "second" {
		t.Errorf("unexpected deliveries: %v, %v", sent[0].ReferenceCode, sent[1].ReferenceCode)
	}
}

func TestDispatcherCloseIsIdempotent(t *testing.T) {
	d := NewDispatcher(&captureNotifier{}, 4, zap.NewNop())
	d.Close()
	d.Close()
}
