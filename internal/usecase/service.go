package usecase

import (
	"resort-booking/internal/data/repository"
	"resort-booking/internal/notification"
	"resort-booking/pkg/utils"

	"go.uber.org/zap"
)

type Service struct {
	Availability AvailabilityService
	Booking      BookingService
	Catalog      CatalogService
}

func NewService(repo *repository.Repository, config *utils.Config, events notification.EventSink, log *zap.Logger) *Service {
	availability := NewAvailabilityService(repo, log)

	return &Service{
		Availability: availability,
		Booking:      NewBookingService(repo, availability, events, config, log),
		Catalog:      NewCatalogService(repo, log),
	}
}
