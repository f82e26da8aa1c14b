package powmod

import (
	"fmt"
	"math/big"

	apperrors "github.com/agbru/powmod/internal/errors"
)

// DefaultExactDigitLimit bounds the size of values Exact produces unless the
// caller picks another limit.
const DefaultExactDigitLimit = 100_000

// Exact returns base^exponent as an arbitrary-precision integer, with no
// modulus. It refuses 0^0 with ErrUndefinedResult and, when the estimated
// digit count exceeds maxDigits, returns a ValidationError for the exponent.
func Exact(base, exponent, maxDigits uint64) (*big.Int, error) {
	if base == 0 && exponent == 0 {
		return nil, apperrors.ErrUndefinedResult
	}
	if base == 0 {
		return new(big.Int), nil
	}
	digits, err := DigitCount(base, exponent)
	if err != nil {
		return nil, apperrors.CalculationError{Cause: err}
	}
	if digits > maxDigits {
		return nil, apperrors.ValidationError{
			Field:   "exponent",
			Message: fmt.Sprintf("exact result would have %d digits, limit is %d", digits, maxDigits),
		}
	}
	return exactPow(base, exponent), nil
}
