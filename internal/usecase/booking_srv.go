package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"resort-booking/internal/data/entity"
	"resort-booking/internal/data/repository"
	"resort-booking/internal/dto/request"
	"resort-booking/internal/dto/response"
	"resort-booking/internal/notification"
	"resort-booking/pkg/apperr"
	"resort-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type BookingService interface {
	// Public endpoints
	CreateBooking(ctx context.Context, req *request.CreateBookingRequest) (*response.BookingResponse, error)
	GetByReferenceCode(ctx context.Context, code string) (*response.BookingResponse, error)

	// Admin endpoints
	ListBookings(ctx context.Context, req *request.PaginatedRequest) (*response.PaginatedResponse[response.BookingResponse], error)
	UpdateStatus(ctx context.Context, code string, req *request.UpdateStatusRequest) (*response.BookingResponse, error)
	Reschedule(ctx context.Context, code string, req *request.RescheduleRequest) (*response.BookingResponse, error)

	// CompleteElapsed moves approved bookings past their check-out into
	// completed. Invoked by the scheduled sweep, not by request handlers.
	CompleteElapsed(ctx context.Context, now time.Time) (int, error)
}

type bookingService struct {
	repo         *repository.Repository
	availability AvailabilityService
	events       notification.EventSink
	config       *utils.Config
	log          *zap.Logger
}

func NewBookingService(repo *repository.Repository, availability AvailabilityService, events notification.EventSink, config *utils.Config, log *zap.Logger) BookingService {
	return &bookingService{
		repo:         repo,
		availability: availability,
		events:       events,
		config:       config,
		log:          log.With(zap.String("service", "booking")),
	}
}

func (s *bookingService) CreateBooking(ctx context.Context, req *request.CreateBookingRequest) (*response.BookingResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create booking validation failed", zap.Any("errors", errs))
		return nil, apperr.Validation("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	checkIn, checkOut, err := parseDateRange(req.CheckIn, req.CheckOut)
	if err != nil {
		return nil, err
	}

	// Repeating a service ID must not change the request's meaning.
	serviceIDs := make([]uuid.UUID, 0, len(req.ServiceIDs))
	seen := make(map[uuid.UUID]struct{}, len(req.ServiceIDs))
	for _, serviceIDStr := range req.ServiceIDs {
		serviceID, err := uuid.Parse(serviceIDStr)
		if err != nil {
			return nil, apperr.Validation("invalid service ID %s", serviceIDStr)
		}
		if _, ok := seen[serviceID]; ok {
			continue
		}
		seen[serviceID] = struct{}{}
		serviceIDs = append(serviceIDs, serviceID)
	}

	services, err := s.repo.Service.FindByIDs(ctx, serviceIDs)
	if err != nil {
		return nil, fmt.Errorf("load selected services: %w", err)
	}
	if len(services) != len(serviceIDs) {
		return nil, apperr.NotFound("one or more selected services do not exist")
	}

	// A day tour spans a single day; collapse an empty interval to the
	// day's boundaries so the same overlap rule applies.
	checkOut = normalizeDayTourInterval(services, checkIn, checkOut)

	unavailable, err := s.availability.CheckServices(ctx, serviceIDs, checkIn, checkOut, uuid.Nil)
	if err != nil {
		return nil, err
	}
	if len(unavailable) > 0 {
		return nil, apperr.Conflict("not available for %s to %s: %s",
			req.CheckIn, req.CheckOut, serviceNames(unavailable))
	}

	customer, err := s.resolveCustomer(ctx, &req.Customer)
	if err != nil {
		return nil, err
	}

	code, err := GenerateReferenceCode(ctx, s.config.Booking.RefCodeMaxAttempts, s.repo.Booking.ReferenceCodeExists)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	booking := &entity.Booking{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		ReferenceCode: code,
		CustomerID:    customer.ID,
		CheckIn:       checkIn,
		CheckOut:      checkOut,
		TotalPax:      req.TotalPax,
		Notes:         req.Notes,
		Status:        entity.BookingStatusPending,
	}

	txn := &entity.Transaction{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: now,
		},
		BookingID: booking.ID,
		ProofURL:  req.PaymentProofURL,
		Amount:    req.Amount,
	}

	// Booking, service links and transaction persist as one unit; the
	// repository re-validates availability inside the same database
	// transaction to close the check-then-insert window.
	if err := s.repo.Booking.CreateWithDetails(ctx, booking, serviceIDs, txn); err != nil {
		s.log.Error("Failed to persist booking",
			zap.Error(err),
			zap.String("reference_code", code),
		)
		return nil, err
	}

	s.log.Info("Booking created",
		zap.String("reference_code", code),
		zap.String("customer", customer.Email),
		zap.Int("services", len(serviceIDs)),
		zap.Time("check_in", checkIn),
		zap.Time("check_out", checkOut),
	)

	s.events.Dispatch(bookingEvent(notification.EventConfirmed, booking, customer, services, ""))

	resp := response.BookingToResponse(booking, customer, services, txn)
	return &resp, nil
}

func (s *bookingService) GetByReferenceCode(ctx context.Context, code string) (*response.BookingResponse, error) {
	booking, err := s.findBooking(ctx, code)
	if err != nil {
		return nil, err
	}

	return s.buildResponse(ctx, booking)
}

func (s *bookingService) ListBookings(ctx context.Context, req *request.PaginatedRequest) (*response.PaginatedResponse[response.BookingResponse], error) {
	bookings, err := s.repo.Booking.FindAll(ctx, req.Limit(), req.Offset())
	if err != nil {
		s.log.Error("Failed to list bookings", zap.Error(err))
		return nil, fmt.Errorf("list bookings: %w", err)
	}

	total, err := s.repo.Booking.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("count bookings: %w", err)
	}

	bookingResponses := make([]response.BookingResponse, len(bookings))
	for i, booking := range bookings {
		resp, err := s.buildResponse(ctx, booking)
		if err != nil {
			return nil, err
		}
		bookingResponses[i] = *resp
	}

	return response.NewPaginatedResponse(bookingResponses, req.Page, req.PerPage, total), nil
}

func (s *bookingService) UpdateStatus(ctx context.Context, code string, req *request.UpdateStatusRequest) (*response.BookingResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, apperr.Validation("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	target, err := entity.ParseBookingStatus(req.Status)
	if err != nil {
		return nil, apperr.Validation("%v", err)
	}

	booking, err := s.findBooking(ctx, code)
	if err != nil {
		return nil, err
	}

	if !booking.Status.CanTransitionTo(target) {
		return nil, apperr.Invariant("cannot transition booking %s from %s to %s", code, booking.Status, target)
	}

	// The reason is mandatory entering cancelled/rescheduled. Other
	// transitions take no reason and leave the stored one untouched.
	message := strings.TrimSpace(req.Message)
	if target.RequiresReason() {
		if message == "" {
			return nil, apperr.Validation("a reason is required when %s a booking", progressiveVerb(target))
		}
	} else {
		message = booking.StatusMessage
	}

	if err := s.repo.Booking.UpdateStatus(ctx, booking.ID, target, message); err != nil {
		s.log.Error("Failed to update booking status",
			zap.Error(err),
			zap.String("reference_code", code),
			zap.String("target", string(target)),
		)
		return nil, err
	}

	booking.Status = target
	booking.StatusMessage = message

	s.log.Info("Booking status updated",
		zap.String("reference_code", code),
		zap.String("status", string(target)),
	)

	s.notifyChange(ctx, booking, statusEventKind(target), message)

	return s.buildResponse(ctx, booking)
}

func (s *bookingService) Reschedule(ctx context.Context, code string, req *request.RescheduleRequest) (*response.BookingResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, apperr.Validation("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	reason := strings.TrimSpace(req.Reason)
	if reason == "" {
		return nil, apperr.Validation("a reason is required when rescheduling a booking")
	}

	newCheckIn, newCheckOut, err := parseDateRange(req.CheckIn, req.CheckOut)
	if err != nil {
		return nil, err
	}

	booking, err := s.findBooking(ctx, code)
	if err != nil {
		return nil, err
	}

	if !booking.Status.CanTransitionTo(entity.BookingStatusRescheduled) {
		return nil, apperr.Invariant("cannot reschedule booking %s in status %s", code, booking.Status)
	}

	serviceIDs, err := s.repo.Booking.FindServiceIDs(ctx, booking.ID)
	if err != nil {
		return nil, err
	}

	services, err := s.repo.Service.FindByIDs(ctx, serviceIDs)
	if err != nil {
		return nil, fmt.Errorf("load booked services: %w", err)
	}

	// A day-tour reschedule uses the same single-day request shape as
	// creation; expand it before comparing durations.
	newCheckOut = normalizeDayTourInterval(services, newCheckIn, newCheckOut)

	// The stay is priced and allocated per night; a reschedule may shift
	// dates but never change the duration.
	if entity.DaysBetween(newCheckIn, newCheckOut) != booking.Nights() {
		return nil, apperr.Validation("reschedule must preserve the original %d-night duration", booking.Nights())
	}

	unavailable, err := s.availability.CheckServices(ctx, serviceIDs, newCheckIn, newCheckOut, booking.ID)
	if err != nil {
		return nil, err
	}
	if len(unavailable) > 0 {
		return nil, apperr.Conflict("not available for %s to %s: %s",
			req.CheckIn, req.CheckOut, serviceNames(unavailable))
	}

	if err := s.repo.Booking.Reschedule(ctx, booking, newCheckIn, newCheckOut, reason); err != nil {
		s.log.Error("Failed to reschedule booking",
			zap.Error(err),
			zap.String("reference_code", code),
		)
		return nil, err
	}

	booking.CheckIn = newCheckIn
	booking.CheckOut = newCheckOut
	booking.Status = entity.BookingStatusRescheduled
	booking.StatusMessage = reason

	s.log.Info("Booking rescheduled",
		zap.String("reference_code", code),
		zap.Time("check_in", newCheckIn),
		zap.Time("check_out", newCheckOut),
	)

	s.notifyChange(ctx, booking, notification.EventRescheduled, reason)

	return s.buildResponse(ctx, booking)
}

func (s *bookingService) CompleteElapsed(ctx context.Context, now time.Time) (int, error) {
	bookings, err := s.repo.Booking.FindApprovedEnded(ctx, now)
	if err != nil {
		return 0, err
	}

	completed := 0
	for _, booking := range bookings {
		if !booking.Status.CanTransitionTo(entity.BookingStatusCompleted) {
			continue
		}

		if err := s.repo.Booking.UpdateStatus(ctx, booking.ID, entity.BookingStatusCompleted, booking.StatusMessage); err != nil {
			s.log.Error("Failed to complete booking",
				zap.Error(err),
				zap.String("reference_code", booking.ReferenceCode),
			)
			continue
		}

		booking.Status = entity.BookingStatusCompleted
		s.notifyChange(ctx, booking, notification.EventCompleted, "")
		completed++
	}

	if completed > 0 {
		s.log.Info("Completed elapsed bookings", zap.Int("count", completed))
	}

	return completed, nil
}

// ==================== HELPER METHODS ====================

func (s *bookingService) findBooking(ctx context.Context, code string) (*entity.Booking, error) {
	booking, err := s.repo.Booking.FindByReferenceCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if booking == nil {
		return nil, apperr.NotFound("booking %s not found", code)
	}
	return booking, nil
}

// resolveCustomer looks up or creates the customer. Email and phone
// must identify the same record; either one belonging to a different
// existing customer is a conflict, distinct from not-found.
func (s *bookingService) resolveCustomer(ctx context.Context, payload *request.CustomerPayload) (*entity.Customer, error) {
	byEmail, err := s.repo.Customer.FindByEmail(ctx, payload.Email)
	if err != nil {
		return nil, err
	}
	byPhone, err := s.repo.Customer.FindByPhone(ctx, payload.Phone)
	if err != nil {
		return nil, err
	}

	if byEmail != nil && byPhone != nil && byEmail.ID == byPhone.ID {
		return byEmail, nil
	}
	if byEmail != nil {
		return nil, apperr.Conflict("email %s is registered to a different customer", payload.Email)
	}
	if byPhone != nil {
		return nil, apperr.Conflict("phone %s is registered to a different customer", payload.Phone)
	}

	now := time.Now()
	customer := &entity.Customer{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		FirstName: payload.FirstName,
		LastName:  payload.LastName,
		Email:     payload.Email,
		Phone:     payload.Phone,
	}

	if err := s.repo.Customer.Create(ctx, customer); err != nil {
		return nil, err
	}

	return customer, nil
}

func (s *bookingService) buildResponse(ctx context.Context, booking *entity.Booking) (*response.BookingResponse, error) {
	customer, err := s.repo.Customer.FindByID(ctx, booking.CustomerID)
	if err != nil {
		return nil, err
	}

	serviceIDs, err := s.repo.Booking.FindServiceIDs(ctx, booking.ID)
	if err != nil {
		return nil, err
	}

	services, err := s.repo.Service.FindByIDs(ctx, serviceIDs)
	if err != nil {
		return nil, err
	}

	txn, err := s.repo.Transaction.FindByBookingID(ctx, booking.ID)
	if err != nil {
		return nil, err
	}

	resp := response.BookingToResponse(booking, customer, services, txn)
	return &resp, nil
}

func (s *bookingService) notifyChange(ctx context.Context, booking *entity.Booking, kind notification.EventKind, message string) {
	customer, err := s.repo.Customer.FindByID(ctx, booking.CustomerID)
	if err != nil {
		s.log.Warn("Notification skipped, customer lookup failed",
			zap.Error(err),
			zap.String("reference_code", booking.ReferenceCode),
		)
		return
	}

	var services []*entity.Service
	if serviceIDs, err := s.repo.Booking.FindServiceIDs(ctx, booking.ID); err == nil {
		services, _ = s.repo.Service.FindByIDs(ctx, serviceIDs)
	}

	s.events.Dispatch(bookingEvent(kind, booking, customer, services, message))
}

func bookingEvent(kind notification.EventKind, booking *entity.Booking, customer *entity.Customer, services []*entity.Service, message string) notification.Event {
	event := notification.Event{
		Kind:          kind,
		ReferenceCode: booking.ReferenceCode,
		CheckIn:       booking.CheckIn,
		CheckOut:      booking.CheckOut,
		Message:       message,
	}

	if customer != nil {
		event.CustomerName = strings.TrimSpace(customer.FirstName + " " + customer.LastName)
		event.CustomerEmail = customer.Email
	}
	for _, service := range services {
		event.Services = append(event.Services, service.Name)
	}

	return event
}

func statusEventKind(status entity.BookingStatus) notification.EventKind {
	switch status {
	case entity.BookingStatusApproved:
		return notification.EventApproved
	case entity.BookingStatusCancelled:
		return notification.EventCancelled
	case entity.BookingStatusRescheduled:
		return notification.EventRescheduled
	case entity.BookingStatusCompleted:
		return notification.EventCompleted
	default:
		return notification.EventConfirmed
	}
}

func progressiveVerb(status entity.BookingStatus) string {
	if status == entity.BookingStatusCancelled {
		return "cancelling"
	}
	return "rescheduling"
}

func parseDateRange(checkInStr, checkOutStr string) (time.Time, time.Time, error) {
	checkIn, err := time.ParseInLocation("2006-01-02", checkInStr, time.UTC)
	if err != nil {
		return time.Time{}, time.Time{}, apperr.Validation("invalid check-in date %s", checkInStr)
	}

	checkOut, err := time.ParseInLocation("2006-01-02", checkOutStr, time.UTC)
	if err != nil {
		return time.Time{}, time.Time{}, apperr.Validation("invalid check-out date %s", checkOutStr)
	}

	if !checkIn.Before(checkOut) {
		// Same-day tours are expanded later; anything else is an empty
		// or inverted interval.
		if !checkIn.Equal(checkOut) {
			return time.Time{}, time.Time{}, apperr.Validation("check-in %s must be before check-out %s", checkInStr, checkOutStr)
		}
	}

	return checkIn, checkOut, nil
}

func normalizeDayTourInterval(services []*entity.Service, checkIn, checkOut time.Time) time.Time {
	if !checkIn.Equal(checkOut) {
		return checkOut
	}
	for _, service := range services {
		if service.Category != entity.ServiceCategoryDayTour {
			return checkOut
		}
	}
	return checkIn.AddDate(0, 0, 1)
}

func serviceNames(services []*entity.Service) string {
	names := make([]string, len(services))
	for i, service := range services {
		names[i] = service.Name
	}
	return strings.Join(names, ", ")
}
