package usecase

import (
	"context"
	"testing"

	"resort-booking/internal/dto/request"
	"resort-booking/pkg/apperr"
)

func intPtr(v int) *int { return &v }

func cabinPayload() request.ServicePayload {
	return request.ServicePayload{
		Category: "cabin",
		Name:     "Seaside Cabin",
		Price:    4500,
		MinPax:   intPtr(2),
		MaxPax:   intPtr(6),
	}
}

func TestCreateServiceCabin(t *testing.T) {
	env := newTestEnv()

	created, err := env.svc.Catalog.CreateService(context.Background(), &request.CreateServiceRequest{ServicePayload: cabinPayload()})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created.Category != "cabin" || created.Name != "Seaside Cabin" {
		t.Errorf("unexpected service: %+v", created)
	}

	fetched, err := env.svc.Catalog.GetService(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if fetched.Name != created.Name {
		t.Errorf("fetched %q, want %q", fetched.Name, created.Name)
	}
}

func TestCreateServiceFeeAllOrNothing(t *testing.T) {
	env := newTestEnv()

	payload := cabinPayload()
	payload.FeeType = "extra_pax"
	payload.FeeAmount = 500
	// Description missing.
	_, err := env.svc.Catalog.CreateService(context.Background(), &request.CreateServiceRequest{ServicePayload: payload})
	if !apperr.IsValidation(err) {
		t.Errorf("expected validation error for partial fee, got %v", err)
	}

	payload.FeeDescription = "per head beyond base capacity"
	created, err := env.svc.Catalog.CreateService(context.Background(), &request.CreateServiceRequest{ServicePayload: payload})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created.Fee == nil || created.Fee.Amount != 500 {
		t.Errorf("complete fee must persist, got %+v", created.Fee)
	}
}

func TestCreateServiceCapacityRules(t *testing.T) {
	env := newTestEnv()

	payload := request.ServicePayload{
		Category: "day_tour",
		Name:     "Island Hopping",
		Price:    1500,
		MinPax:   intPtr(2),
	}
	_, err := env.svc.Catalog.CreateService(context.Background(), &request.CreateServiceRequest{ServicePayload: payload})
	if !apperr.IsValidation(err) {
		t.Errorf("expected validation error for day tour capacity, got %v", err)
	}

	inverted := cabinPayload()
	inverted.MinPax = intPtr(8)
	inverted.MaxPax = intPtr(4)
	_, err = env.svc.Catalog.CreateService(context.Background(), &request.CreateServiceRequest{ServicePayload: inverted})
	if !apperr.IsValidation(err) {
		t.Errorf("expected validation error for inverted capacity, got %v", err)
	}
}

func TestListServicesByCategory(t *testing.T) {
	env := newTestEnv()
	if _, err := env.svc.Catalog.CreateService(context.Background(), &request.CreateServiceRequest{ServicePayload: cabinPayload()}); err != nil {
		t.Fatalf("seed cabin: %v", err)
	}
	if _, err := env.svc.Catalog.CreateService(context.Background(), &request.CreateServiceRequest{ServicePayload: request.ServicePayload{
		Category: "day_tour",
		Name:     "Island Hopping",
		Price:    1500,
	}}); err != nil {
		t.Fatalf("seed day tour: %v", err)
	}

	all, err := env.svc.Catalog.ListServices(context.Background(), "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(all) != 2 {
		t.Errorf("len(all) = %d, want 2", len(all))
	}

	cabins, err := env.svc.Catalog.ListServices(context.Background(), "cabin")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cabins) != 1 || cabins[0].Category != "cabin" {
		t.Errorf("unexpected cabins: %+v", cabins)
	}

	if _, err := env.svc.Catalog.ListServices(context.Background(), "villa"); !apperr.IsValidation(err) {
		t.Errorf("expected validation error for unknown category, got %v", err)
	}
}

func TestUpdateAndDeleteService(t *testing.T) {
	env := newTestEnv()
	created, err := env.svc.Catalog.CreateService(context.Background(), &request.CreateServiceRequest{ServicePayload: cabinPayload()})
	if err != nil {
		t.Fatalf("seed cabin: %v", err)
	}

	payload := cabinPayload()
	payload.Name = "Seaside Cabin Deluxe"
	payload.Price = 6000
	updated, err := env.svc.Catalog.UpdateService(context.Background(), created.ID, &request.UpdateServiceRequest{ServicePayload: payload})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.Name != "Seaside Cabin Deluxe" || updated.Price != 6000 {
		t.Errorf("update not applied: %+v", updated)
	}
	if updated.ID != created.ID {
		t.Error("update must keep the service identity")
	}

	if err := env.svc.Catalog.DeleteService(context.Background(), created.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := env.svc.Catalog.GetService(context.Background(), created.ID); !apperr.IsNotFound(err) {
		t.Errorf("expected not-found after delete, got %v", err)
	}

	if _, err := env.svc.Catalog.GetService(context.Background(), "not-a-uuid"); !apperr.IsValidation(err) {
		t.Errorf("expected validation error for malformed ID, got %v", err)
	}
}
