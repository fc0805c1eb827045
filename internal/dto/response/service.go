package response

import (
	"resort-booking/internal/data/entity"
)

type AdditionalFeeResponse struct {
	Type        string  `json:"type"`
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
}

type ServiceResponse struct {
	ID       string                 `json:"id"`
	Category entity.ServiceCategory `json:"category"`
	Name     string                 `json:"name"`
	Price    float64                `json:"price"`
	MinPax   *int                   `json:"min_pax,omitempty"`
	MaxPax   *int                   `json:"max_pax,omitempty"`
	Fee      *AdditionalFeeResponse `json:"additional_fee,omitempty"`
}

func ServiceToResponse(service *entity.Service) ServiceResponse {
	resp := ServiceResponse{
		ID:       service.ID.String(),
		Category: service.Category,
		Name:     service.Name,
		Price:    service.Price,
		MinPax:   service.MinPax,
		MaxPax:   service.MaxPax,
	}

	if !service.Fee.IsZero() {
		resp.Fee = &AdditionalFeeResponse{
			Type:        service.Fee.Type,
			Description: service.Fee.Description,
			Amount:      service.Fee.Amount,
		}
	}

	return resp
}
