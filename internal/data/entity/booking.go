package entity

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

type BookingStatus string

const (
	BookingStatusPending     BookingStatus = "pending"
	BookingStatusApproved    BookingStatus = "approved"
	BookingStatusCancelled   BookingStatus = "cancelled"
	BookingStatusRescheduled BookingStatus = "rescheduled"
	BookingStatusCompleted   BookingStatus = "completed"
)

// statusTransitions defines the booking workflow. A booking may be
// rescheduled more than once; cancelled and completed are terminal.
// Completion is time-driven (the sweep), not user-driven, but the
// transition is validated here like any other.
var statusTransitions = map[BookingStatus][]BookingStatus{
	BookingStatusPending:     {BookingStatusApproved, BookingStatusCancelled, BookingStatusRescheduled},
	BookingStatusRescheduled: {BookingStatusApproved, BookingStatusCancelled, BookingStatusRescheduled},
	BookingStatusApproved:    {BookingStatusCompleted},
	BookingStatusCancelled:   {},
	BookingStatusCompleted:   {},
}

func (s BookingStatus) IsValid() bool {
	_, ok := statusTransitions[s]
	return ok
}

func (s BookingStatus) CanTransitionTo(target BookingStatus) bool {
	for _, t := range statusTransitions[s] {
		if t == target {
			return true
		}
	}
	return false
}

func (s BookingStatus) IsTerminal() bool {
	return s.IsValid() && len(statusTransitions[s]) == 0
}

// RequiresReason reports whether entering this status needs a non-empty
// status message (cancellation/reschedule reason).
func (s BookingStatus) RequiresReason() bool {
	return s == BookingStatusCancelled || s == BookingStatusRescheduled
}

func (s BookingStatus) String() string {
	return string(s)
}

func ParseBookingStatus(value string) (BookingStatus, error) {
	status := BookingStatus(value)
	if !status.IsValid() {
		return "", fmt.Errorf("invalid booking status %q", value)
	}
	return status, nil
}

// Booking is the central aggregate. The reference code is immutable
// once issued; status and dates change only through the workflow.
type Booking struct {
	Base
	ReferenceCode string        `db:"reference_code"`
	CustomerID    uuid.UUID     `db:"customer_id"`
	CheckIn       time.Time     `db:"check_in"`
	CheckOut      time.Time     `db:"check_out"`
	TotalPax      int           `db:"total_pax"`
	Notes         string        `db:"notes"`
	Status        BookingStatus `db:"status"`
	StatusMessage string        `db:"status_message"`
}

// Overlaps reports whether the booking's half-open interval
// [CheckIn, CheckOut) intersects [checkIn, checkOut). A stay ending
// exactly when another begins does not overlap, so same-day checkout
// and check-in never conflict.
func (b *Booking) Overlaps(checkIn, checkOut time.Time) bool {
	return checkIn.Before(b.CheckOut) && b.CheckIn.Before(checkOut)
}

// Nights returns the stay length in whole days.
func (b *Booking) Nights() int {
	return DaysBetween(b.CheckIn, b.CheckOut)
}

func DaysBetween(from, to time.Time) int {
	return int(to.Sub(from) / (24 * time.Hour))
}
