package adaptor

import (
	"net/http"
	"time"

	"resort-booking/internal/data/entity"
	"resort-booking/internal/usecase"
	"resort-booking/pkg/utils"

	"go.uber.org/zap"
)

type AvailabilityHandler struct {
	service usecase.AvailabilityService
	log     *zap.Logger
}

func NewAvailabilityHandler(service usecase.AvailabilityService, log *zap.Logger) *AvailabilityHandler {
	return &AvailabilityHandler{
		service: service,
		log:     log.With(zap.String("handler", "availability")),
	}
}

// CheckAvailability handles GET /api/availability?category=&check_in=&check_out= (public)
func (h *AvailabilityHandler) CheckAvailability(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	category := query.Get("category")
	if category == "" {
		utils.ResponseBadRequest(w, "category query parameter is required", nil)
		return
	}

	checkIn, err := time.ParseInLocation("2006-01-02", query.Get("check_in"), time.UTC)
	if err != nil {
		utils.ResponseBadRequest(w, "check_in must be a date in YYYY-MM-DD format", nil)
		return
	}

	checkOut, err := time.ParseInLocation("2006-01-02", query.Get("check_out"), time.UTC)
	if err != nil {
		utils.ResponseBadRequest(w, "check_out must be a date in YYYY-MM-DD format", nil)
		return
	}

	// A day tour occupies the whole day; an equal pair means that day.
	if entity.ServiceCategory(category) == entity.ServiceCategoryDayTour && checkIn.Equal(checkOut) {
		checkOut = checkIn.AddDate(0, 0, 1)
	}

	availability, err := h.service.Check(r.Context(), entity.ServiceCategory(category), checkIn, checkOut)
	if err != nil {
		respondServiceError(w, h.log, err, "check availability")
		return
	}

	utils.ResponseSuccess(w, "success", availability)
}
