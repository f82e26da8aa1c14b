package powmod

import (
	"math"
	"math/big"
	"math/bits"

	apperrors "github.com/agbru/powmod/internal/errors"
)

// DigitCount returns the number of decimal digits of base^exponent, computed
// as floor(exponent * log10(base)) + 1.
//
// The value is a floating-point estimate. When the product lands within
// rounding distance of an integer and the power is small enough to build,
// the count is confirmed exactly, so powers of ten are counted correctly.
// Far from that window the estimate is returned as is. Counts beyond the
// uint64 range saturate at math.MaxUint64.
//
// Base 0 has no finite logarithm and yields ErrInvalidDomain.
func DigitCount(base, exponent uint64) (uint64, error) {
	if base == 0 {
		return 0, apperrors.ErrInvalidDomain
	}
	if exponent == 0 || base == 1 {
		return 1, nil
	}

	x := float64(exponent) * math.Log10(float64(base))
	if r := math.Round(x); math.Abs(x-r) < boundaryTolerance*math.Max(1, r) {
		if d, ok := confirmDigitCount(base, exponent, r); ok {
			return d, nil
		}
	}
	if x >= float64(math.MaxUint64) {
		return math.MaxUint64, nil
	}
	return uint64(math.Floor(x)) + 1, nil
}

// confirmDigitCount decides between r and r+1 digits by comparing
// base^exponent with 10^r. It reports false when the power is too large to
// materialise.
func confirmDigitCount(base, exponent uint64, r float64) (uint64, bool) {
	if exponent > exactCheckMaxBits || exponent*uint64(bits.Len64(base)) > exactCheckMaxBits {
		return 0, false
	}
	p := new(big.Int).Exp(new(big.Int).SetUint64(base), new(big.Int).SetUint64(exponent), nil)
	k := uint64(r)
	t := new(big.Int).Exp(big.NewInt(10), new(big.Int).SetUint64(k), nil)
	if p.Cmp(t) >= 0 {
		return k + 1, true
	}
	return k, true
}

// exceedsWord reports whether base^exponent is too large to trust to 64-bit
// arithmetic. Base 0 is never reported, so callers never hit ErrInvalidDomain.
func exceedsWord(base, exponent uint64) bool {
	if base == 0 {
		return false
	}
	digits, err := DigitCount(base, exponent)
	return err == nil && digits > MaxExactDigits
}
