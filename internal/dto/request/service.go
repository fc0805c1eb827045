package request

type ServicePayload struct {
	Category       string  `json:"category" validate:"required,oneof=cabin day_tour"`
	Name           string  `json:"name" validate:"required,min=1,max=150"`
	Price          float64 `json:"price" validate:"required,gt=0"`
	MinPax         *int    `json:"min_pax,omitempty" validate:"omitempty,min=1"`
	MaxPax         *int    `json:"max_pax,omitempty" validate:"omitempty,min=1"`
	FeeType        string  `json:"fee_type,omitempty" validate:"max=50"`
	FeeDescription string  `json:"fee_description,omitempty" validate:"max=250"`
	FeeAmount      float64 `json:"fee_amount,omitempty" validate:"omitempty,gt=0"`
}

type CreateServiceRequest struct {
	ServicePayload
}

type UpdateServiceRequest struct {
	ServicePayload
}
