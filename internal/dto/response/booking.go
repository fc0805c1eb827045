package response

import (
	"time"

	"resort-booking/internal/data/entity"
)

type CustomerResponse struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
}

type TransactionResponse struct {
	ProofURL string  `json:"proof_url"`
	Amount   float64 `json:"amount"`
}

type BookingResponse struct {
	ReferenceCode string               `json:"reference_code"`
	Customer      *CustomerResponse    `json:"customer,omitempty"`
	Services      []ServiceResponse    `json:"services"`
	CheckIn       string               `json:"check_in"`
	CheckOut      string               `json:"check_out"`
	Nights        int                  `json:"nights"`
	TotalPax      int                  `json:"total_pax"`
	Notes         string               `json:"notes,omitempty"`
	Status        entity.BookingStatus `json:"status"`
	StatusMessage string               `json:"status_message,omitempty"`
	Transaction   *TransactionResponse `json:"transaction,omitempty"`
	CreatedAt     time.Time            `json:"created_at"`
}

func CustomerToResponse(customer *entity.Customer) *CustomerResponse {
	if customer == nil {
		return nil
	}
	return &CustomerResponse{
		FirstName: customer.FirstName,
		LastName:  customer.LastName,
		Email:     customer.Email,
		Phone:     customer.Phone,
	}
}

func TransactionToResponse(txn *entity.Transaction) *TransactionResponse {
	if txn == nil {
		return nil
	}
	return &TransactionResponse{
		ProofURL: txn.ProofURL,
		Amount:   txn.Amount,
	}
}

func BookingToResponse(booking *entity.Booking, customer *entity.Customer, services []*entity.Service, txn *entity.Transaction) BookingResponse {
	serviceResponses := make([]ServiceResponse, len(services))
	for i, service := range services {
		serviceResponses[i] = ServiceToResponse(service)
	}

	return BookingResponse{
		ReferenceCode: booking.ReferenceCode,
		Customer:      CustomerToResponse(customer),
		Services:      serviceResponses,
		CheckIn:       booking.CheckIn.Format("2006-01-02"),
		CheckOut:      booking.CheckOut.Format("2006-01-02"),
		Nights:        booking.Nights(),
		TotalPax:      booking.TotalPax,
		Notes:         booking.Notes,
		Status:        booking.Status,
		StatusMessage: booking.StatusMessage,
		Transaction:   TransactionToResponse(txn),
		CreatedAt:     booking.CreatedAt,
	}
}
