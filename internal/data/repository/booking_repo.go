package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"resort-booking/internal/data/entity"
	"resort-booking/pkg/apperr"
	"resort-booking/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
)

const bookingColumns = `id, reference_code, customer_id, check_in, check_out, total_pax, notes, status, status_message, created_at, updated_at`

type BookingRepository interface {
	// CreateWithDetails persists the booking, its service links and its
	// transaction as one unit. Availability is re-validated inside the
	// database transaction after locking the service rows, so concurrent
	// writers for the same services serialize and the loser fails with a
	// conflict instead of over-booking.
	CreateWithDetails(ctx context.Context, booking *entity.Booking, serviceIDs []uuid.UUID, txn *entity.Transaction) error

	FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error)
	FindByReferenceCode(ctx context.Context, code string) (*entity.Booking, error)
	FindAll(ctx context.Context, limit, offset int) ([]*entity.Booking, error)
	Count(ctx context.Context) (int64, error)

	// Business queries
	FindOverlapping(ctx context.Context, serviceID uuid.UUID, checkIn, checkOut time.Time, exclude uuid.UUID) ([]*entity.Booking, error)
	FindServiceIDs(ctx context.Context, bookingID uuid.UUID) ([]uuid.UUID, error)
	FindApprovedEnded(ctx context.Context, now time.Time) ([]*entity.Booking, error)
	ReferenceCodeExists(ctx context.Context, code string) (bool, error)

	// UpdateStatus persists status and message together, atomically.
	UpdateStatus(ctx context.Context, id uuid.UUID, status entity.BookingStatus, message string) error

	// Reschedule moves the booking to new dates under the same locking
	// discipline as CreateWithDetails, excluding the booking itself from
	// conflict consideration.
	Reschedule(ctx context.Context, booking *entity.Booking, checkIn, checkOut time.Time, reason string) error
}

type bookingRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewBookingRepository(db database.PgxIface, log *zap.Logger) BookingRepository {
	return &bookingRepository{
		db:  db,
		log: log.With(zap.String("repository", "booking")),
	}
}

// overlapCountQuery counts non-cancelled bookings holding any of the
// given services over an interval intersecting [$2, $3) (half-open, so
// touching boundaries do not conflict). $4 excludes one booking ID;
// uuid.Nil excludes nothing.
const overlapCountQuery = `
	SELECT COUNT(DISTINCT b.id)
	FROM bookings b
	JOIN booking_services bs ON bs.booking_id = b.id
	WHERE bs.service_id = ANY($1)
	  AND b.status <> 'cancelled'
	  AND $2 < b.check_out
	  AND b.check_in < $3
	  AND b.id <> $4
`

func (r *bookingRepository) CreateWithDetails(ctx context.Context, booking *entity.Booking, serviceIDs []uuid.UUID, txn *entity.Transaction) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin create booking tx: %w", err)
	}
	defer tx.Rollback(ctx)

	// Serialize concurrent writers per service.
	if _, err := tx.Exec(ctx, `SELECT id FROM services WHERE id = ANY($1) FOR UPDATE`, serviceIDs); err != nil {
		return fmt.Errorf("lock services: %w", err)
	}

	var conflicts int
	err = tx.QueryRow(ctx, overlapCountQuery, serviceIDs, booking.CheckIn, booking.CheckOut, uuid.Nil).Scan(&conflicts)
	if err != nil {
		return fmt.Errorf("re-check availability: %w", err)
	}
	if conflicts > 0 {
		return apperr.Conflict("service no longer available for %s to %s",
			booking.CheckIn.Format("2006-01-02"), booking.CheckOut.Format("2006-01-02"))
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO bookings (id, reference_code, customer_id, check_in, check_out, total_pax, notes, status, status_message, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`,
		booking.ID,
		booking.ReferenceCode,
		booking.CustomerID,
		booking.CheckIn,
		booking.CheckOut,
		booking.TotalPax,
		booking.Notes,
		booking.Status,
		booking.StatusMessage,
		booking.CreatedAt,
		booking.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			// The generator's loop is the fast path; this constraint is
			// the backstop for the check-then-insert window.
			return apperr.Wrap(apperr.KindConflict, err, "reference code %s already taken", booking.ReferenceCode)
		}
		r.log.Error("Failed to insert booking",
			zap.Error(err),
			zap.String("reference_code", booking.ReferenceCode),
		)
		return fmt.Errorf("insert booking %s: %w", booking.ReferenceCode, err)
	}

	now := booking.CreatedAt
	for _, serviceID := range serviceIDs {
		_, err = tx.Exec(ctx, `
			INSERT INTO booking_services (id, booking_id, service_id, created_at)
			VALUES ($1, $2, $3, $4)
		`, uuid.New(), booking.ID, serviceID, now)
		if err != nil {
			return fmt.Errorf("insert booking service link %s: %w", serviceID.String(), err)
		}
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO transactions (id, booking_id, proof_url, amount, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`, txn.ID, booking.ID, txn.ProofURL, txn.Amount, txn.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert transaction for booking %s: %w", booking.ReferenceCode, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit create booking tx: %w", err)
	}

	return nil
}

func (r *bookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1`

	booking, err := r.scanBooking(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		r.log.Error("Failed to find booking by ID",
			zap.Error(err),
			zap.String("booking_id", id.String()),
		)
		return nil, fmt.Errorf("find booking by ID %s: %w", id.String(), err)
	}

	return booking, nil
}

func (r *bookingRepository) FindByReferenceCode(ctx context.Context, code string) (*entity.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE reference_code = $1`

	booking, err := r.scanBooking(r.db.QueryRow(ctx, query, code))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		r.log.Error("Failed to find booking by reference code",
			zap.Error(err),
			zap.String("reference_code", code),
		)
		return nil, fmt.Errorf("find booking by reference code %s: %w", code, err)
	}

	return booking, nil
}

func (r *bookingRepository) FindAll(ctx context.Context, limit, offset int) ([]*entity.Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`

	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		r.log.Error("Failed to list bookings",
			zap.Error(err),
			zap.Int("limit", limit),
			zap.Int("offset", offset),
		)
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	defer rows.Close()

	return r.scanBookings(rows)
}

func (r *bookingRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM bookings`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count bookings: %w", err)
	}
	return count, nil
}

func (r *bookingRepository) FindOverlapping(ctx context.Context, serviceID uuid.UUID, checkIn, checkOut time.Time, exclude uuid.UUID) ([]*entity.Booking, error) {
	query := `
		SELECT DISTINCT ` + prefixedBookingColumns("b") + `
		FROM bookings b
		JOIN booking_services bs ON bs.booking_id = b.id
		WHERE bs.service_id = $1
		  AND b.status <> 'cancelled'
		  AND $2 < b.check_out
		  AND b.check_in < $3
		  AND b.id <> $4
		ORDER BY b.check_in
	`

	rows, err := r.db.Query(ctx, query, serviceID, checkIn, checkOut, exclude)
	if err != nil {
		r.log.Error("Failed to find overlapping bookings",
			zap.Error(err),
			zap.String("service_id", serviceID.String()),
			zap.Time("check_in", checkIn),
			zap.Time("check_out", checkOut),
		)
		return nil, fmt.Errorf("find overlapping bookings for service %s: %w", serviceID.String(), err)
	}
	defer rows.Close()

	return r.scanBookings(rows)
}

func (r *bookingRepository) FindServiceIDs(ctx context.Context, bookingID uuid.UUID) ([]uuid.UUID, error) {
	rows, err := r.db.Query(ctx, `SELECT service_id FROM booking_services WHERE booking_id = $1`, bookingID)
	if err != nil {
		return nil, fmt.Errorf("find service IDs for booking %s: %w", bookingID.String(), err)
	}
	defer rows.Close()

	var serviceIDs []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan service ID: %w", err)
		}
		serviceIDs = append(serviceIDs, id)
	}

	return serviceIDs, nil
}

func (r *bookingRepository) FindApprovedEnded(ctx context.Context, now time.Time) ([]*entity.Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE status = 'approved' AND check_out <= $1
		ORDER BY check_out
	`

	rows, err := r.db.Query(ctx, query, now)
	if err != nil {
		r.log.Error("Failed to find approved bookings past check-out", zap.Error(err))
		return nil, fmt.Errorf("find approved bookings past check-out: %w", err)
	}
	defer rows.Close()

	return r.scanBookings(rows)
}

func (r *bookingRepository) ReferenceCodeExists(ctx context.Context, code string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM bookings WHERE reference_code = $1)`, code).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check reference code %s: %w", code, err)
	}
	return exists, nil
}

func (r *bookingRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status entity.BookingStatus, message string) error {
	query := `UPDATE bookings SET status = $2, status_message = $3, updated_at = NOW() WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id, status, message)
	if err != nil {
		r.log.Error("Failed to update booking status",
			zap.Error(err),
			zap.String("booking_id", id.String()),
			zap.String("status", string(status)),
		)
		return fmt.Errorf("update booking %s status to %s: %w", id.String(), string(status), err)
	}

	if result.RowsAffected() == 0 {
		return apperr.NotFound("booking %s not found", id.String())
	}

	return nil
}

func (r *bookingRepository) Reschedule(ctx context.Context, booking *entity.Booking, checkIn, checkOut time.Time, reason string) error {
	serviceIDs, err := r.FindServiceIDs(ctx, booking.ID)
	if err != nil {
		return err
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin reschedule tx: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `SELECT id FROM services WHERE id = ANY($1) FOR UPDATE`, serviceIDs); err != nil {
		return fmt.Errorf("lock services: %w", err)
	}

	var conflicts int
	err = tx.QueryRow(ctx, overlapCountQuery, serviceIDs, checkIn, checkOut, booking.ID).Scan(&conflicts)
	if err != nil {
		return fmt.Errorf("re-check availability: %w", err)
	}
	if conflicts > 0 {
		return apperr.Conflict("service no longer available for %s to %s",
			checkIn.Format("2006-01-02"), checkOut.Format("2006-01-02"))
	}

	result, err := tx.Exec(ctx, `
		UPDATE bookings
		SET check_in = $2, check_out = $3, status = $4, status_message = $5, updated_at = NOW()
		WHERE id = $1
	`, booking.ID, checkIn, checkOut, entity.BookingStatusRescheduled, reason)
	if err != nil {
		r.log.Error("Failed to reschedule booking",
			zap.Error(err),
			zap.String("booking_id", booking.ID.String()),
		)
		return fmt.Errorf("reschedule booking %s: %w", booking.ReferenceCode, err)
	}

	if result.RowsAffected() == 0 {
		return apperr.NotFound("booking %s not found", booking.ReferenceCode)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit reschedule tx: %w", err)
	}

	return nil
}

// ==================== HELPERS ====================

func (r *bookingRepository) scanBooking(row pgx.Row) (*entity.Booking, error) {
	var booking entity.Booking
	err := row.Scan(
		&booking.ID,
		&booking.ReferenceCode,
		&booking.CustomerID,
		&booking.CheckIn,
		&booking.CheckOut,
		&booking.TotalPax,
		&booking.Notes,
		&booking.Status,
		&booking.StatusMessage,
		&booking.CreatedAt,
		&booking.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

func (r *bookingRepository) scanBookings(rows pgx.Rows) ([]*entity.Booking, error) {
	var bookings []*entity.Booking
	for rows.Next() {
		booking, err := r.scanBooking(rows)
		if err != nil {
			r.log.Error("Failed to scan booking row", zap.Error(err))
			return nil, fmt.Errorf("scan booking row: %w", err)
		}
		bookings = append(bookings, booking)
	}
	return bookings, nil
}

func prefixedBookingColumns(alias string) string {
	return alias + ".id, " + alias + ".reference_code, " + alias + ".customer_id, " +
		alias + ".check_in, " + alias + ".check_out, " + alias + ".total_pax, " +
		alias + ".notes, " + alias + ".status, " + alias + ".status_message, " +
		alias + ".created_at, " + alias + ".updated_at"
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
