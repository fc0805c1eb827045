package usecase

import (
	"context"
	"fmt"
	"time"

	"resort-booking/internal/data/entity"
	"resort-booking/internal/data/repository"
	"resort-booking/internal/dto/response"
	"resort-booking/pkg/apperr"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type AvailabilityService interface {
	// Check partitions every service in the category into available and
	// unavailable over [checkIn, checkOut).
	Check(ctx context.Context, category entity.ServiceCategory, checkIn, checkOut time.Time) (*response.AvailabilityResponse, error)

	// CheckServices verifies a specific set of services, optionally
	// excluding one booking from conflict consideration (a rescheduled
	// booking must not conflict with itself). Returns the subset of
	// services that are not available.
	CheckServices(ctx context.Context, serviceIDs []uuid.UUID, checkIn, checkOut time.Time, exclude uuid.UUID) ([]*entity.Service, error)
}

type availabilityService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewAvailabilityService(repo *repository.Repository, log *zap.Logger) AvailabilityService {
	return &availabilityService{
		repo: repo,
		log:  log.With(zap.String("service", "availability")),
	}
}

func (s *availabilityService) Check(ctx context.Context, category entity.ServiceCategory, checkIn, checkOut time.Time) (*response.AvailabilityResponse, error) {
	if err := validateInterval(checkIn, checkOut); err != nil {
		return nil, err
	}
	if !category.IsValid() {
		return nil, apperr.Validation("unknown service category %q", string(category))
	}

	services, err := s.repo.Service.FindByCategory(ctx, category)
	if err != nil {
		return nil, fmt.Errorf("load services for category %s: %w", string(category), err)
	}

	result := &response.AvailabilityResponse{
		Category: category,
		CheckIn:  checkIn.Format("2006-01-02"),
		CheckOut: checkOut.Format("2006-01-02"),
		Services: make([]response.ServiceAvailability, 0, len(services)),
	}

	for _, service := range services {
		conflicts, err := s.repo.Booking.FindOverlapping(ctx, service.ID, checkIn, checkOut, uuid.Nil)
		if err != nil {
			return nil, fmt.Errorf("check conflicts for service %s: %w", service.Name, err)
		}

		availability := response.ServiceAvailability{
			Service:   response.ServiceToResponse(service),
			Available: len(conflicts) == 0,
		}
		for _, conflict := range conflicts {
			availability.Conflicts = append(availability.Conflicts, conflict.ReferenceCode)
		}

		result.Services = append(result.Services, availability)
	}

	s.log.Info("Availability checked",
		zap.String("category", string(category)),
		zap.Time("check_in", checkIn),
		zap.Time("check_out", checkOut),
		zap.Int("services", len(result.Services)),
	)

	return result, nil
}

func (s *availabilityService) CheckServices(ctx context.Context, serviceIDs []uuid.UUID, checkIn, checkOut time.Time, exclude uuid.UUID) ([]*entity.Service, error) {
	if err := validateInterval(checkIn, checkOut); err != nil {
		return nil, err
	}

	var unavailable []*entity.Service
	for _, serviceID := range serviceIDs {
		service, err := s.repo.Service.FindByID(ctx, serviceID)
		if err != nil {
			return nil, fmt.Errorf("load service %s: %w", serviceID.String(), err)
		}
		if service == nil {
			return nil, apperr.NotFound("service %s not found", serviceID.String())
		}

		conflicts, err := s.repo.Booking.FindOverlapping(ctx, serviceID, checkIn, checkOut, exclude)
		if err != nil {
			return nil, fmt.Errorf("check conflicts for service %s: %w", service.Name, err)
		}

		if len(conflicts) > 0 {
			unavailable = append(unavailable, service)
		}
	}

	return unavailable, nil
}

// validateInterval enforces the non-empty half-open interval invariant.
// Identical check-in and check-out instants are rejected here, not
// silently treated as available.
func validateInterval(checkIn, checkOut time.Time) error {
	if checkIn.IsZero() || checkOut.IsZero() {
		return apperr.Validation("check-in and check-out dates are required")
	}
	if !checkIn.Before(checkOut) {
		return apperr.Validation("check-in %s must be before check-out %s",
			checkIn.Format("2006-01-02"), checkOut.Format("2006-01-02"))
	}
	return nil
}
