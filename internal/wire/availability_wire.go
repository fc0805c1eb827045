package wire

import (
	"resort-booking/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireAvailability(r chi.Router, availabilityHandler *adaptor.AvailabilityHandler) {
	// GET /api/availability - Partition a category's services into
	// available/unavailable for a date range (public)
	r.Get("/api/availability", availabilityHandler.CheckAvailability)
}
