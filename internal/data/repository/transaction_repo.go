package repository

import (
	"context"
	"errors"
	"fmt"

	"resort-booking/internal/data/entity"
	"resort-booking/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type TransactionRepository interface {
	FindByBookingID(ctx context.Context, bookingID uuid.UUID) (*entity.Transaction, error)
}

type transactionRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewTransactionRepository(db database.PgxIface, log *zap.Logger) TransactionRepository {
	return &transactionRepository{
		db:  db,
		log: log.With(zap.String("repository", "transaction")),
	}
}

func (r *transactionRepository) FindByBookingID(ctx context.Context, bookingID uuid.UUID) (*entity.Transaction, error) {
	query := `
		SELECT id, booking_id, proof_url, amount, created_at
		FROM transactions
		WHERE booking_id = $1
	`

	var txn entity.Transaction
	err := r.db.QueryRow(ctx, query, bookingID).Scan(
		&txn.ID,
		&txn.BookingID,
		&txn.ProofURL,
		&txn.Amount,
		&txn.CreatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find transaction by booking ID",
			zap.Error(err),
			zap.String("booking_id", bookingID.String()),
		)
		return nil, fmt.Errorf("find transaction by booking ID %s: %w", bookingID.String(), err)
	}

	return &txn, nil
}
