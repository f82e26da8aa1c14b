package config

import (
	"errors"
	"math"
	"testing"

	apperrors "github.com/agbru/powmod/internal/errors"
)

func TestParseOperand(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		field   string
		token   string
		want    uint64
		wantErr bool
		wantIs  error
	}{
		{"plain", "base", "42", 42, false, nil},
		{"max", "base", "18446744073709551615", math.MaxUint64, false, nil},
		{"plus sign", "base", "+5", 5, false, nil},
		{"plus sign max", "exponent", "+18446744073709551615", math.MaxUint64, false, nil},
		{"plus sign overflow", "base", "+18446744073709551616", 0, true, nil},
		{"double sign", "exponent", "+-5", 0, true, nil},
		{"lone minus", "exponent", "-", 0, true, nil},
		{"negative zero", "exponent", "-0", 0, false, nil},
		{"negative exponent", "exponent", "-3", 0, true, apperrors.ErrNegativeExponent},
		{"huge negative exponent", "exponent", "-99999999999999999999", 0, true, apperrors.ErrNegativeExponent},
		{"negative base", "base", "-3", 0, true, nil},
		{"negative with plus", "exponent", "-+3", 0, true, nil},
		{"overflow", "base", "18446744073709551616", 0, true, nil},
		{"fraction", "exponent", "1.5", 0, true, nil},
		{"word", "base", "two", 0, true, nil},
		{"empty", "base", "", 0, true, nil},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := ParseOperand(tt.field, tt.token)
			if !tt.wantErr {
				if err != nil || got != tt.want {
					t.Errorf("ParseOperand(%q) = %d, %v; want %d", tt.token, got, err, tt.want)
				}
				return
			}
			var verr apperrors.ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected ValidationError, got %T: %v", err, err)
			}
			if verr.Field != tt.field {
				t.Errorf("Field = %q, want %q", verr.Field, tt.field)
			}
			if tt.wantIs != nil && !errors.Is(err, tt.wantIs) {
				t.Errorf("expected errors.Is(%v)", tt.wantIs)
			}
			if tt.wantIs == nil && errors.Is(err, apperrors.ErrNegativeExponent) {
				t.Error("only the exponent field reports ErrNegativeExponent")
			}
		})
	}
}
