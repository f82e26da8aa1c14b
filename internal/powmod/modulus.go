package powmod

import (
	"strconv"

	apperrors "github.com/agbru/powmod/internal/errors"
)

// Modulus is an optional modulus. The zero value is unset, meaning no
// reduction was requested; NewModulus builds an explicit one. An explicit
// math.MaxUint64 is an ordinary modulus, not a marker.
type Modulus struct {
	value uint64
	set   bool
}

// NewModulus returns an explicit modulus. Zero is rejected with
// ErrInvalidModulus.
func NewModulus(m uint64) (Modulus, error) {
	if m == 0 {
		return Modulus{}, apperrors.ErrInvalidModulus
	}
	return Modulus{value: m, set: true}, nil
}

// MustModulus is like NewModulus but panics on zero.
func MustModulus(m uint64) Modulus {
	mod, err := NewModulus(m)
	if err != nil {
		panic(err)
	}
	return mod
}

// IsSet reports whether the modulus is explicit.
func (m Modulus) IsSet() bool { return m.set }

// Value returns the modulus and whether it is set.
func (m Modulus) Value() (uint64, bool) { return m.value, m.set }

// String returns the decimal modulus, or "unset".
func (m Modulus) String() string {
	if !m.set {
		return "unset"
	}
	return strconv.FormatUint(m.value, 10)
}

// effectiveModulus decides, once per call, which modulus the recursion
// threads through. An unset modulus becomes FallbackModulus when the exact
// power would not fit in a word and stays unset otherwise.
func effectiveModulus(base, exponent uint64, mod Modulus) (eff Modulus, fellBack bool) {
	if mod.set {
		return mod, false
	}
	if exceedsWord(base, exponent) {
		return Modulus{value: FallbackModulus, set: true}, true
	}
	return Modulus{}, false
}
