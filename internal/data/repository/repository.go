package repository

import (
	"resort-booking/pkg/database"

	"go.uber.org/zap"
)

type Repository struct {
	Service     ServiceRepository
	Customer    CustomerRepository
	Booking     BookingRepository
	Transaction TransactionRepository
}

func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	return &Repository{
		Service:     NewServiceRepository(db, log),
		Customer:    NewCustomerRepository(db, log),
		Booking:     NewBookingRepository(db, log),
		Transaction: NewTransactionRepository(db, log),
	}
}
