package request

type CustomerPayload struct {
	FirstName string `json:"first_name" validate:"required,min=1,max=100"`
	LastName  string `json:"last_name" validate:"required,min=1,max=100"`
	Email     string `json:"email" validate:"required,email"`
	Phone     string `json:"phone" validate:"required,min=7,max=20"`
}

type CreateBookingRequest struct {
	Customer        CustomerPayload `json:"customer" validate:"required"`
	ServiceIDs      []string        `json:"service_ids" validate:"required,min=1,dive,uuid"`
	CheckIn         string          `json:"check_in" validate:"required,datetime=2006-01-02"`
	CheckOut        string          `json:"check_out" validate:"required,datetime=2006-01-02"`
	TotalPax        int             `json:"total_pax" validate:"required,min=1"`
	Notes           string          `json:"notes" validate:"max=500"`
	PaymentProofURL string          `json:"payment_proof_url" validate:"required,url"`
	Amount          float64         `json:"amount" validate:"required,gt=0"`
}

type UpdateStatusRequest struct {
	Status  string `json:"status" validate:"required,oneof=approved cancelled rescheduled completed"`
	Message string `json:"message" validate:"max=500"`
}

type RescheduleRequest struct {
	CheckIn  string `json:"check_in" validate:"required,datetime=2006-01-02"`
	CheckOut string `json:"check_out" validate:"required,datetime=2006-01-02"`
	Reason   string `json:"reason" validate:"required,max=500"`
}
