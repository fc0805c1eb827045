package usecase

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"resort-booking/pkg/apperr"
)

const (
	refCodeCharset   = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	refCodeSuffixLen = 5

	// 36^5 codes per day makes collisions negligible; the guard only
	// keeps the loop provably finite. The database uniqueness constraint
	// on reference_code is the correctness backstop.
	defaultRefCodeMaxAttempts = 25
)

// RefCodeExistsFunc reports whether a candidate code is already taken.
type RefCodeExistsFunc func(ctx context.Context, code string) (bool, error)

// GenerateReferenceCode mints a booking code of the form
// B<YYYYMMDD>-<5 uppercase alphanumerics>, retrying with a fresh random
// suffix until the exists check passes or maxAttempts is exhausted.
func GenerateReferenceCode(ctx context.Context, maxAttempts int, exists RefCodeExistsFunc) (string, error) {
	if maxAttempts <= 0 {
		maxAttempts = defaultRefCodeMaxAttempts
	}

	datePart := time.Now().Format("20060102")

	for attempt := 0; attempt < maxAttempts; attempt++ {
		code := fmt.Sprintf("B%s-%s", datePart, randomSuffix(refCodeSuffixLen))

		taken, err := exists(ctx, code)
		if err != nil {
			return "", fmt.Errorf("check reference code uniqueness: %w", err)
		}
		if !taken {
			return code, nil
		}
	}

	return "", apperr.Conflict("could not mint a unique reference code after %d attempts", maxAttempts)
}

func randomSuffix(length int) string {
	suffix := make([]byte, length)
	for i := range suffix {
		suffix[i] = refCodeCharset[rand.Intn(len(refCodeCharset))]
	}
	return string(suffix)
}
