package powmod

import "strconv"

// Result is the outcome of evaluating base^exponent for display.
type Result struct {
	Base     uint64
	Exponent uint64
	// Value is meaningless when Undefined is true.
	Value uint64
	// Undefined is set for 0^0.
	Undefined bool
	// Modulus is the effective modulus; unset when Value is exact.
	Modulus Modulus
	// FellBack reports that FallbackModulus replaced an unset modulus.
	FellBack bool
}

// Evaluate computes base^exponent with power and records how the value was
// obtained. 0^0 is reported as Undefined and power is not called.
func Evaluate(base, exponent uint64, mod Modulus, power PowerFunc) Result {
	r := Result{Base: base, Exponent: exponent}
	if base == 0 && exponent == 0 {
		r.Undefined = true
		return r
	}
	r.Modulus, r.FellBack = effectiveModulus(base, exponent, mod)
	r.Value = power(base, exponent, mod)
	return r
}

// ValueString returns the value as shown to the user: "undefined" for 0^0,
// the decimal value otherwise.
func (r Result) ValueString() string {
	if r.Undefined {
		return "undefined"
	}
	return strconv.FormatUint(r.Value, 10)
}

// Annotation describes the reduction applied to the value, or "" when the
// value is exact.
func (r Result) Annotation() string {
	switch {
	case r.Undefined:
		return ""
	case r.FellBack:
		return "modulo " + FallbackModulusLabel
	case r.Modulus.IsSet():
		return "modulo " + r.Modulus.String()
	default:
		return ""
	}
}
