package config

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	apperrors "github.com/agbru/powmod/internal/errors"
)

// ParseOperand parses a non-negative decimal operand. Signed, malformed and
// out-of-range tokens are rejected with a ValidationError for field; a
// negative exponent also matches ErrNegativeExponent.
func ParseOperand(field, token string) (uint64, error) {
	digits, negative := strings.TrimPrefix(token, "+"), false
	if rest, ok := strings.CutPrefix(token, "-"); ok {
		digits, negative = rest, true
	}

	v, err := strconv.ParseUint(digits, 10, 64)
	if negative && (err == nil || errors.Is(err, strconv.ErrRange)) {
		if err == nil && v == 0 {
			return 0, nil
		}
		verr := apperrors.ValidationError{Field: field, Message: fmt.Sprintf("%q is negative", token)}
		if field == "exponent" {
			verr.Cause = apperrors.ErrNegativeExponent
		}
		return 0, verr
	}
	if err == nil {
		return v, nil
	}

	if errors.Is(err, strconv.ErrRange) {
		return 0, apperrors.ValidationError{
			Field:   field,
			Message: fmt.Sprintf("%q is larger than %d", token, uint64(math.MaxUint64)),
			Cause:   err,
		}
	}
	return 0, apperrors.ValidationError{
		Field:   field,
		Message: fmt.Sprintf("%q is not a non-negative integer", token),
		Cause:   err,
	}
}

// operandFlag is a flag.Value for an operand. The flag package flattens
// Set errors into strings, so the typed error is also kept in *failed.
type operandFlag struct {
	field  string
	dst    *uint64
	failed *error
}

func (f *operandFlag) String() string {
	if f == nil || f.dst == nil {
		return "0"
	}
	return strconv.FormatUint(*f.dst, 10)
}

func (f *operandFlag) Set(s string) error {
	v, err := ParseOperand(f.field, s)
	if err != nil {
		*f.failed = err
		return err
	}
	*f.dst = v
	return nil
}
