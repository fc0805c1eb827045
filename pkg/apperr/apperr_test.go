package apperr

import (
	"errors"
	"fmt"
	"testing"
)

func TestKindOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{"validation", Validation("bad input"), KindValidation},
		{"conflict", Conflict("taken"), KindConflict},
		{"not found", NotFound("missing"), KindNotFound},
		{"invariant", Invariant("illegal transition"), KindInvariant},
		{"wrapped by fmt", fmt.Errorf("load booking: %w", NotFound("missing")), KindNotFound},
		{"plain error", errors.New("boom"), KindUnknown},
		{"nil", nil, KindUnknown},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := KindOf(tc.err); got != tc.want {
				t.Errorf("KindOf() = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestWrapKeepsCause(t *testing.T) {
	cause := errors.New("row locked")
	err := Wrap(KindConflict, cause, "booking %s", "B20250610-AB12C")

	if !IsConflict(err) {
		t.Error("wrapped error must keep its kind")
	}
	if !errors.Is(err, cause) {
		t.Error("wrapped error must expose its cause")
	}
	if err.Error() != "booking B20250610-AB12C: row locked" {
		t.Errorf("unexpected message: %s", err.Error())
	}
}

func TestKindString(t *testing.T) {
	if KindInvariant.String() != "invariant_violation" {
		t.Errorf("KindInvariant.String() = %s", KindInvariant.String())
	}
	if Kind(99).String() != "unknown" {
		t.Errorf("Kind(99).String() = %s", Kind(99).String())
	}
}
