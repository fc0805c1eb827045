package usecase

import (
	"context"
	"sync"
	"time"

	"resort-booking/internal/data/entity"
	"resort-booking/internal/data/repository"
	"resort-booking/internal/notification"
	"resort-booking/pkg/apperr"
	"resort-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// memStore backs in-memory repository fakes. It mirrors the database's
// guarantees: reference code uniqueness and availability re-validation
// under a single lock, so the concurrency tests exercise the same
// serialization the real transaction provides.
type memStore struct {
	mu        sync.Mutex
	services  map[uuid.UUID]*entity.Service
	customers map[uuid.UUID]*entity.Customer
	bookings  map[uuid.UUID]*entity.Booking
	links     map[uuid.UUID][]uuid.UUID
	txns      map[uuid.UUID]*entity.Transaction
}

func newMemStore() *memStore {
	return &memStore{
		services:  make(map[uuid.UUID]*entity.Service),
		customers: make(map[uuid.UUID]*entity.Customer),
		bookings:  make(map[uuid.UUID]*entity.Booking),
		links:     make(map[uuid.UUID][]uuid.UUID),
		txns:      make(map[uuid.UUID]*entity.Transaction),
	}
}

func newFakeRepository(store *memStore) *repository.Repository {
	return &repository.Repository{
		Service:     &fakeServiceRepo{store: store},
		Customer:    &fakeCustomerRepo{store: store},
		Booking:     &fakeBookingRepo{store: store},
		Transaction: &fakeTransactionRepo{store: store},
	}
}

// overlappingLocked returns non-cancelled bookings holding serviceID
// over [checkIn, checkOut), excluding one booking ID. Callers hold mu.
func (m *memStore) overlappingLocked(serviceID uuid.UUID, checkIn, checkOut time.Time, exclude uuid.UUID) []*entity.Booking {
	var result []*entity.Booking
	for id, booking := range m.bookings {
		if id == exclude || booking.Status == entity.BookingStatusCancelled {
			continue
		}
		holds := false
		for _, sid := range m.links[id] {
			if sid == serviceID {
				holds = true
				break
			}
		}
		if holds && booking.Overlaps(checkIn, checkOut) {
			result = append(result, booking)
		}
	}
	return result
}

// ==================== SERVICE ====================

type fakeServiceRepo struct {
	store *memStore
}

func (r *fakeServiceRepo) Create(_ context.Context, service *entity.Service) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	copied := *service
	r.store.services[service.ID] = &copied
	return nil
}

func (r *fakeServiceRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Service, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	service, ok := r.store.services[id]
	if !ok {
		return nil, nil
	}
	copied := *service
	return &copied, nil
}

func (r *fakeServiceRepo) FindByIDs(_ context.Context, ids []uuid.UUID) ([]*entity.Service, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var services []*entity.Service
	for _, id := range ids {
		if service, ok := r.store.services[id]; ok {
			copied := *service
			services = append(services, &copied)
		}
	}
	return services, nil
}

func (r *fakeServiceRepo) FindByCategory(_ context.Context, category entity.ServiceCategory) ([]*entity.Service, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var services []*entity.Service
	for _, service := range r.store.services {
		if service.Category == category {
			copied := *service
			services = append(services, &copied)
		}
	}
	return services, nil
}

func (r *fakeServiceRepo) FindAll(_ context.Context) ([]*entity.Service, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var services []*entity.Service
	for _, service := range r.store.services {
		copied := *service
		services = append(services, &copied)
	}
	return services, nil
}

func (r *fakeServiceRepo) Update(_ context.Context, service *entity.Service) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.store.services[service.ID]; !ok {
		return apperr.NotFound("service %s not found", service.ID.String())
	}
	copied := *service
	r.store.services[service.ID] = &copied
	return nil
}

func (r *fakeServiceRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.store.services[id]; !ok {
		return apperr.NotFound("service %s not found", id.String())
	}
	delete(r.store.services, id)
	return nil
}

// ==================== CUSTOMER ====================

type fakeCustomerRepo struct {
	store *memStore
}

func (r *fakeCustomerRepo) Create(_ context.Context, customer *entity.Customer) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, existing := range r.store.customers {
		if existing.Email == customer.Email || existing.Phone == customer.Phone {
			return apperr.Conflict("customer with email %s or phone %s already exists", customer.Email, customer.Phone)
		}
	}
	copied := *customer
	r.store.customers[customer.ID] = &copied
	return nil
}

func (r *fakeCustomerRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Customer, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	customer, ok := r.store.customers[id]
	if !ok {
		return nil, nil
	}
	copied := *customer
	return &copied, nil
}

func (r *fakeCustomerRepo) FindByEmail(_ context.Context, email string) (*entity.Customer, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, customer := range r.store.customers {
		if customer.Email == email {
			copied := *customer
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *fakeCustomerRepo) FindByPhone(_ context.Context, phone string) (*entity.Customer, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, customer := range r.store.customers {
		if customer.Phone == phone {
			copied := *customer
			return &copied, nil
		}
	}
	return nil, nil
}

// ==================== BOOKING ====================

type fakeBookingRepo struct {
	store *memStore
}

func (r *fakeBookingRepo) CreateWithDetails(_ context.Context, booking *entity.Booking, serviceIDs []uuid.UUID, txn *entity.Transaction) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for _, existing := range r.store.bookings {
		if existing.ReferenceCode == booking.ReferenceCode {
			return apperr.Conflict("reference code %s already taken", booking.ReferenceCode)
		}
	}

	for _, serviceID := range serviceIDs {
		if len(r.store.overlappingLocked(serviceID, booking.CheckIn, booking.CheckOut, uuid.Nil)) > 0 {
			return apperr.Conflict("service no longer available for %s to %s",
				booking.CheckIn.Format("2006-01-02"), booking.CheckOut.Format("2006-01-02"))
		}
	}

	copied := *booking
	r.store.bookings[booking.ID] = &copied
	r.store.links[booking.ID] = append([]uuid.UUID(nil), serviceIDs...)
	copiedTxn := *txn
	r.store.txns[booking.ID] = &copiedTxn
	return nil
}

func (r *fakeBookingRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Booking, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	booking, ok := r.store.bookings[id]
	if !ok {
		return nil, nil
	}
	copied := *booking
	return &copied, nil
}

func (r *fakeBookingRepo) FindByReferenceCode(_ context.Context, code string) (*entity.Booking, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, booking := range r.store.bookings {
		if booking.ReferenceCode == code {
			copied := *booking
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *fakeBookingRepo) FindAll(_ context.Context, limit, offset int) ([]*entity.Booking, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var bookings []*entity.Booking
	for _, booking := range r.store.bookings {
		copied := *booking
		bookings = append(bookings, &copied)
	}
	if offset >= len(bookings) {
		return nil, nil
	}
	bookings = bookings[offset:]
	if limit < len(bookings) {
		bookings = bookings[:limit]
	}
	return bookings, nil
}

func (r *fakeBookingRepo) Count(_ context.Context) (int64, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return int64(len(r.store.bookings)), nil
}

func (r *fakeBookingRepo) FindOverlapping(_ context.Context, serviceID uuid.UUID, checkIn, checkOut time.Time, exclude uuid.UUID) ([]*entity.Booking, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var result []*entity.Booking
	for _, booking := range r.store.overlappingLocked(serviceID, checkIn, checkOut, exclude) {
		copied := *booking
		result = append(result, &copied)
	}
	return result, nil
}

func (r *fakeBookingRepo) FindServiceIDs(_ context.Context, bookingID uuid.UUID) ([]uuid.UUID, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return append([]uuid.UUID(nil), r.store.links[bookingID]...), nil
}

func (r *fakeBookingRepo) FindApprovedEnded(_ context.Context, now time.Time) ([]*entity.Booking, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var result []*entity.Booking
	for _, booking := range r.store.bookings {
		if booking.Status == entity.BookingStatusApproved && !booking.CheckOut.After(now) {
			copied := *booking
			result = append(result, &copied)
		}
	}
	return result, nil
}

func (r *fakeBookingRepo) ReferenceCodeExists(_ context.Context, code string) (bool, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, booking := range r.store.bookings {
		if booking.ReferenceCode == code {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeBookingRepo) UpdateStatus(_ context.Context, id uuid.UUID, status entity.BookingStatus, message string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	booking, ok := r.store.bookings[id]
	if !ok {
		return apperr.NotFound("booking %s not found", id.String())
	}
	booking.Status = status
	booking.StatusMessage = message
	booking.UpdatedAt = time.Now()
	return nil
}

func (r *fakeBookingRepo) Reschedule(_ context.Context, booking *entity.Booking, checkIn, checkOut time.Time, reason string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	stored, ok := r.store.bookings[booking.ID]
	if !ok {
		return apperr.NotFound("booking %s not found", booking.ReferenceCode)
	}
	for _, serviceID := range r.store.links[booking.ID] {
		if len(r.store.overlappingLocked(serviceID, checkIn, checkOut, booking.ID)) > 0 {
			return apperr.Conflict("service no longer available for %s to %s",
				checkIn.Format("2006-01-02"), checkOut.Format("2006-01-02"))
		}
	}
	stored.CheckIn = checkIn
	stored.CheckOut = checkOut
	stored.Status = entity.BookingStatusRescheduled
	stored.StatusMessage = reason
	stored.UpdatedAt = time.Now()
	return nil
}

// ==================== TRANSACTION ====================

type fakeTransactionRepo struct {
	store *memStore
}

func (r *fakeTransactionRepo) FindByBookingID(_ context.Context, bookingID uuid.UUID) (*entity.Transaction, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	txn, ok := r.store.txns[bookingID]
	if !ok {
		return nil, nil
	}
	copied := *txn
	return &copied, nil
}

// ==================== WIRING HELPERS ====================

type recordingSink struct {
	mu     sync.Mutex
	events []notification.Event
}

func (s *recordingSink) Dispatch(event notification.Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, event)
}

func (s *recordingSink) kinds() []notification.EventKind {
	s.mu.Lock()
	defer s.mu.Unlock()
	kinds := make([]notification.EventKind, len(s.events))
	for i, event := range s.events {
		kinds[i] = event.Kind
	}
	return kinds
}

type testEnv struct {
	store *memStore
	repo  *repository.Repository
	sink  *recordingSink
	svc   *Service
}

func newTestEnv() *testEnv {
	store := newMemStore()
	repo := newFakeRepository(store)
	sink := &recordingSink{}
	config := &utils.Config{
		Booking: utils.BookingConfig{RefCodeMaxAttempts: 25},
	}

	return &testEnv{
		store: store,
		repo:  repo,
		sink:  sink,
		svc:   NewService(repo, config, sink, zap.NewNop()),
	}
}

func (e *testEnv) addService(name string, category entity.ServiceCategory) *entity.Service {
	now := time.Now()
	service := &entity.Service{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Category: category,
		Name:     name,
		Price:    4500,
	}
	e.repo.Service.Create(context.Background(), service)
	return service
}
