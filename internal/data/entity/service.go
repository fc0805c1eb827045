package entity

type ServiceCategory string

const (
	ServiceCategoryCabin   ServiceCategory = "cabin"
	ServiceCategoryDayTour ServiceCategory = "day_tour"
)

func (c ServiceCategory) IsValid() bool {
	return c == ServiceCategoryCabin || c == ServiceCategoryDayTour
}

// AdditionalFee is an optional surcharge attached to a service.
// Either all three fields are set or the fee is absent entirely.
type AdditionalFee struct {
	Type        string  `db:"fee_type"`
	Description string  `db:"fee_description"`
	Amount      float64 `db:"fee_amount"`
}

func (f *AdditionalFee) IsZero() bool {
	return f.Type == "" && f.Description == "" && f.Amount == 0
}

// IsComplete reports whether the fee is either fully populated or fully
// absent. Partially filled fees are invalid.
func (f *AdditionalFee) IsComplete() bool {
	if f.IsZero() {
		return true
	}
	return f.Type != "" && f.Description != "" && f.Amount > 0
}

// Service is a bookable offering: a cabin or a day-tour activity.
// Services are managed by administrators and referenced, never owned,
// by bookings.
type Service struct {
	Base
	Category ServiceCategory `db:"category"`
	Name     string          `db:"name"`
	Price    float64         `db:"price"`

	// Capacity bounds apply to cabins only.
	MinPax *int `db:"min_pax"`
	MaxPax *int `db:"max_pax"`

	Fee AdditionalFee
}
