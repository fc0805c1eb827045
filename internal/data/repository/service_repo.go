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

type ServiceRepository interface {
	Create(ctx context.Context, service *entity.Service) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Service, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*entity.Service, error)
	FindByCategory(ctx context.Context, category entity.ServiceCategory) ([]*entity.Service, error)
	FindAll(ctx context.Context) ([]*entity.Service, error)
	Update(ctx context.Context, service *entity.Service) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type serviceRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewServiceRepository(db database.PgxIface, log *zap.Logger) ServiceRepository {
	return &serviceRepository{
		db:  db,
		log: log.With(zap.String("repository", "service")),
	}
}

const serviceColumns = `id, category, name, price, min_pax, max_pax, fee_type, fee_description, fee_amount, created_at, updated_at`

func (r *serviceRepository) Create(ctx context.Context, service *entity.Service) error {
	query := `
		INSERT INTO services (id, category, name, price, min_pax, max_pax, fee_type, fee_description, fee_amount, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	_, err := r.db.Exec(ctx, query,
		service.ID,
		service.Category,
		service.Name,
		service.Price,
		service.MinPax,
		service.MaxPax,
		nullableString(service.Fee.Type),
		nullableString(service.Fee.Description),
		nullableFloat(service.Fee.Amount),
		service.CreatedAt,
		service.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create service",
			zap.Error(err),
			zap.String("name", service.Name),
		)
		return fmt.Errorf("create service %s: %w", service.Name, err)
	}

	return nil
}

func (r *serviceRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Service, error) {
	query := `SELECT ` + serviceColumns + ` FROM services WHERE id = $1`

	service, err := scanService(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		r.log.Error("Failed to find service by ID",
			zap.Error(err),
			zap.String("service_id", id.String()),
		)
		return nil, fmt.Errorf("find service by ID %s: %w", id.String(), err)
	}

	return service, nil
}

func (r *serviceRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*entity.Service, error) {
	query := `SELECT ` + serviceColumns + ` FROM services WHERE id = ANY($1) ORDER BY name`

	rows, err := r.db.Query(ctx, query, ids)
	if err != nil {
		r.log.Error("Failed to find services by IDs", zap.Error(err))
		return nil, fmt.Errorf("find services by IDs: %w", err)
	}
	defer rows.Close()

	return r.scanServices(rows)
}

func (r *serviceRepository) FindByCategory(ctx context.Context, category entity.ServiceCategory) ([]*entity.Service, error) {
	query := `SELECT ` + serviceColumns + ` FROM services WHERE category = $1 ORDER BY name`

	rows, err := r.db.Query(ctx, query, category)
	if err != nil {
		r.log.Error("Failed to find services by category",
			zap.Error(err),
			zap.String("category", string(category)),
		)
		return nil, fmt.Errorf("find services by category %s: %w", string(category), err)
	}
	defer rows.Close()

	return r.scanServices(rows)
}

func (r *serviceRepository) FindAll(ctx context.Context) ([]*entity.Service, error) {
	query := `SELECT ` + serviceColumns + ` FROM services ORDER BY category, name`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		r.log.Error("Failed to list services", zap.Error(err))
		return nil, fmt.Errorf("list services: %w", err)
	}
	defer rows.Close()

	return r.scanServices(rows)
}

func (r *serviceRepository) Update(ctx context.Context, service *entity.Service) error {
	query := `
		UPDATE services
		SET category = $2, name = $3, price = $4, min_pax = $5, max_pax = $6,
		    fee_type = $7, fee_description = $8, fee_amount = $9, updated_at = $10
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query,
		service.ID,
		service.Category,
		service.Name,
		service.Price,
		service.MinPax,
		service.MaxPax,
		nullableString(service.Fee.Type),
		nullableString(service.Fee.Description),
		nullableFloat(service.Fee.Amount),
		service.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to update service",
			zap.Error(err),
			zap.String("service_id", service.ID.String()),
		)
		return fmt.Errorf("update service %s: %w", service.ID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("service %s not found", service.ID.String())
	}

	return nil
}

func (r *serviceRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.Exec(ctx, `DELETE FROM services WHERE id = $1`, id)
	if err != nil {
		r.log.Error("Failed to delete service",
			zap.Error(err),
			zap.String("service_id", id.String()),
		)
		return fmt.Errorf("delete service %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("service %s not found", id.String())
	}

	r.log.Info("Service deleted", zap.String("service_id", id.String()))
	return nil
}

func (r *serviceRepository) scanServices(rows pgx.Rows) ([]*entity.Service, error) {
	var services []*entity.Service
	for rows.Next() {
		service, err := scanService(rows)
		if err != nil {
			r.log.Error("Failed to scan service row", zap.Error(err))
			return nil, fmt.Errorf("scan service row: %w", err)
		}
		services = append(services, service)
	}
	return services, nil
}

func scanService(row pgx.Row) (*entity.Service, error) {
	var service entity.Service
	var feeType, feeDescription *string
	var feeAmount *float64

	err := row.Scan(
		&service.ID,
		&service.Category,
		&service.Name,
		&service.Price,
		&service.MinPax,
		&service.MaxPax,
		&feeType,
		&feeDescription,
		&feeAmount,
		&service.CreatedAt,
		&service.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if feeType != nil {
		service.Fee.Type = *feeType
	}
	if feeDescription != nil {
		service.Fee.Description = *feeDescription
	}
	if feeAmount != nil {
		service.Fee.Amount = *feeAmount
	}

	return &service, nil
}

func nullableString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func nullableFloat(f float64) *float64 {
	if f == 0 {
		return nil
	}
	return &f
}
