package wire

import (
	"resort-booking/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireBooking(r chi.Router, bookingHandler *adaptor.BookingHandler) {
	// ==================== PUBLIC ROUTES ====================
	// POST /api/booking - Create a new booking
	r.Post("/api/booking", bookingHandler.CreateBooking)

	// GET /api/booking/{code} - Look up a booking by reference code
	r.Get("/api/booking/{code}", bookingHandler.GetBooking)

	// ==================== ADMIN ROUTES ====================
	// Authentication sits in front of /api/admin at the gateway; the
	// core treats it as an external collaborator.
	r.Route("/api/admin/bookings", func(r chi.Router) {
		// GET /api/admin/bookings - Paginated booking listing
		r.Get("/", bookingHandler.ListBookings)

		// PUT /api/admin/bookings/{code}/status - Workflow transition
		r.Put("/{code}/status", bookingHandler.UpdateStatus)

		// PUT /api/admin/bookings/{code}/dates - Reschedule
		r.Put("/{code}/dates", bookingHandler.Reschedule)
	})
}
