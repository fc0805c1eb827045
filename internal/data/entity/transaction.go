package entity

import (
	"github.com/google/uuid"
)

// Transaction is the proof-of-payment record created together with its
// booking (1:1). Immutable after creation.
type Transaction struct {
	BaseSimple
	BookingID uuid.UUID `db:"booking_id"`
	ProofURL  string    `db:"proof_url"`
	Amount    float64   `db:"amount"`
}
