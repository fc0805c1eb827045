package wire

import (
	"resort-booking/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireCatalog(r chi.Router, catalogHandler *adaptor.CatalogHandler) {
	// ==================== PUBLIC ROUTES ====================
	// GET /api/services - List bookable services, optionally by category
	r.Get("/api/services", catalogHandler.ListServices)

	// GET /api/services/{id} - Service details
	r.Get("/api/services/{id}", catalogHandler.GetService)

	// ==================== ADMIN ROUTES ====================
	r.Route("/api/admin/services", func(r chi.Router) {
		// POST /api/admin/services - Create a service
		r.Post("/", catalogHandler.CreateService)

		// PUT /api/admin/services/{id} - Update a service
		r.Put("/{id}", catalogHandler.UpdateService)

		// DELETE /api/admin/services/{id} - Delete a service
		r.Delete("/{id}", catalogHandler.DeleteService)
	})
}
