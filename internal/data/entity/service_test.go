package entity

import "testing"

func TestAdditionalFeeIsComplete(t *testing.T) {
	tests := []struct {
		name string
		fee  AdditionalFee
		want bool
	}{
		{"absent", AdditionalFee{}, true},
		{"fully populated", AdditionalFee{Type: "environmental", Description: "park entrance", Amount: 150}, true},
		{"type only", AdditionalFee{Type: "environmental"}, false},
		{"missing amount", AdditionalFee{Type: "environmental", Description: "park entrance"}, false},
		{"amount only", AdditionalFee{Amount: 150}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.fee.IsComplete(); got != tt.want {
				t.Errorf("IsComplete() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestServiceCategoryIsValid(t *testing.T) {
	if !ServiceCategoryCabin.IsValid() || !ServiceCategoryDayTour.IsValid() {
		t.Error("known categories must be valid")
	}
	if ServiceCategory("villa").IsValid() {
		t.Error("unknown category must be invalid")
	}
}
