package usecase

import (
	"context"
	"fmt"
	"time"

	"resort-booking/internal/data/entity"
	"resort-booking/internal/data/repository"
	"resort-booking/internal/dto/request"
	"resort-booking/internal/dto/response"
	"resort-booking/pkg/apperr"
	"resort-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CatalogService manages the bookable service offerings (cabins and
// day tours). Administrator-facing CRUD; bookings only reference these.
type CatalogService interface {
	CreateService(ctx context.Context, req *request.CreateServiceRequest) (*response.ServiceResponse, error)
	GetService(ctx context.Context, serviceID string) (*response.ServiceResponse, error)
	ListServices(ctx context.Context, category string) ([]response.ServiceResponse, error)
	UpdateService(ctx context.Context, serviceID string, req *request.UpdateServiceRequest) (*response.ServiceResponse, error)
	DeleteService(ctx context.Context, serviceID string) error
}

type catalogService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewCatalogService(repo *repository.Repository, log *zap.Logger) CatalogService {
	return &catalogService{
		repo: repo,
		log:  log.With(zap.String("service", "catalog")),
	}
}

func (s *catalogService) CreateService(ctx context.Context, req *request.CreateServiceRequest) (*response.ServiceResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create service validation failed", zap.Any("errors", errs))
		return nil, apperr.Validation("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	service, err := serviceFromPayload(&req.ServicePayload)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	service.Base = entity.Base{
		ID:        uuid.New(),
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Service.Create(ctx, service); err != nil {
		return nil, err
	}

	s.log.Info("Service created",
		zap.String("service_id", service.ID.String()),
		zap.String("category", string(service.Category)),
		zap.String("name", service.Name),
	)

	resp := response.ServiceToResponse(service)
	return &resp, nil
}

func (s *catalogService) GetService(ctx context.Context, serviceID string) (*response.ServiceResponse, error) {
	service, err := s.findService(ctx, serviceID)
	if err != nil {
		return nil, err
	}

	resp := response.ServiceToResponse(service)
	return &resp, nil
}

func (s *catalogService) ListServices(ctx context.Context, category string) ([]response.ServiceResponse, error) {
	var services []*entity.Service
	var err error

	if category == "" {
		services, err = s.repo.Service.FindAll(ctx)
	} else {
		cat := entity.ServiceCategory(category)
		if !cat.IsValid() {
			return nil, apperr.Validation("unknown service category %q", category)
		}
		services, err = s.repo.Service.FindByCategory(ctx, cat)
	}
	if err != nil {
		return nil, fmt.Errorf("list services: %w", err)
	}

	responses := make([]response.ServiceResponse, len(services))
	for i, service := range services {
		responses[i] = response.ServiceToResponse(service)
	}

	return responses, nil
}

func (s *catalogService) UpdateService(ctx context.Context, serviceID string, req *request.UpdateServiceRequest) (*response.ServiceResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, apperr.Validation("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	existing, err := s.findService(ctx, serviceID)
	if err != nil {
		return nil, err
	}

	updated, err := serviceFromPayload(&req.ServicePayload)
	if err != nil {
		return nil, err
	}

	updated.Base = existing.Base
	updated.UpdatedAt = time.Now()

	if err := s.repo.Service.Update(ctx, updated); err != nil {
		return nil, err
	}

	s.log.Info("Service updated", zap.String("service_id", serviceID))

	resp := response.ServiceToResponse(updated)
	return &resp, nil
}

func (s *catalogService) DeleteService(ctx context.Context, serviceID string) error {
	service, err := s.findService(ctx, serviceID)
	if err != nil {
		return err
	}

	return s.repo.Service.Delete(ctx, service.ID)
}

func (s *catalogService) findService(ctx context.Context, serviceID string) (*entity.Service, error) {
	id, err := uuid.Parse(serviceID)
	if err != nil {
		return nil, apperr.Validation("invalid service ID %s", serviceID)
	}

	service, err := s.repo.Service.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if service == nil {
		return nil, apperr.NotFound("service %s not found", serviceID)
	}

	return service, nil
}

func serviceFromPayload(payload *request.ServicePayload) (*entity.Service, error) {
	service := &entity.Service{
		Category: entity.ServiceCategory(payload.Category),
		Name:     payload.Name,
		Price:    payload.Price,
		MinPax:   payload.MinPax,
		MaxPax:   payload.MaxPax,
		Fee: entity.AdditionalFee{
			Type:        payload.FeeType,
			Description: payload.FeeDescription,
			Amount:      payload.FeeAmount,
		},
	}

	// The additional fee is all-or-nothing: either type, description
	// and amount are all present or the fee is absent.
	if !service.Fee.IsComplete() {
		return nil, apperr.Validation("additional fee requires type, description and amount together")
	}

	if service.Category == entity.ServiceCategoryDayTour && (payload.MinPax != nil || payload.MaxPax != nil) {
		return nil, apperr.Validation("capacity bounds apply to cabins only")
	}
	if payload.MinPax != nil && payload.MaxPax != nil && *payload.MinPax > *payload.MaxPax {
		return nil, apperr.Validation("min pax %d exceeds max pax %d", *payload.MinPax, *payload.MaxPax)
	}

	return service, nil
}
