package response

import (
	"resort-booking/internal/data/entity"
)

// ServiceAvailability reports whether one service is free over the
// requested interval, with the reference codes of conflicting bookings
// when it is not.
type ServiceAvailability struct {
	Service   ServiceResponse `json:"service"`
	Available bool            `json:"available"`
	Conflicts []string        `json:"conflicting_bookings,omitempty"`
}

type AvailabilityResponse struct {
	Category entity.ServiceCategory `json:"category"`
	CheckIn  string                 `json:"check_in"`
	CheckOut string                 `json:"check_out"`
	Services []ServiceAvailability  `json:"services"`
}
