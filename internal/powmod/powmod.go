package powmod

import "math/bits"

// Step is one operation of the square-and-multiply schedule.
type Step uint8

const (
	// Square replaces the accumulator with its square.
	Square Step = iota
	// Multiply multiplies the accumulator by the base.
	Multiply
)

// String returns the name of the step.
func (s Step) String() string {
	switch s {
	case Square:
		return "square"
	case Multiply:
		return "multiply"
	default:
		return "unknown"
	}
}

// PowerFunc is the signature shared by PowerMod and PowerModWide.
type PowerFunc func(base, exponent uint64, mod Modulus) uint64

// walk visits the operations that take the accumulator from base^0 to
// base^exponent, starting at the most significant bit of the exponent.
//
// The order matches the recursion
//
//	P(0) = 1
//	P(e) = P(e-1) * b      if e is odd
//	P(e) = P(e/2)^2        if e is even
//
// unrolled from the base case upwards: the leading bit contributes a single
// Multiply, and every lower bit contributes a Square followed by a Multiply
// when the bit is set.
func walk(exponent uint64, visit func(Step)) {
	if exponent == 0 {
		return
	}
	top := bits.Len64(exponent) - 1
	visit(Multiply)
	for i := top - 1; i >= 0; i-- {
		visit(Square)
		if (exponent>>uint(i))&1 == 1 {
			visit(Multiply)
		}
	}
}

// Schedule returns the sequence of operations PowerMod performs for the
// given exponent. It depends on nothing but the exponent.
func Schedule(exponent uint64) []Step {
	if exponent == 0 {
		return nil
	}
	steps := make([]Step, 0, 2*bits.Len64(exponent))
	walk(exponent, func(s Step) { steps = append(steps, s) })
	return steps
}

// word is 64-bit arithmetic optionally reduced by a modulus.
type word struct {
	m      uint64
	reduce bool
}

func (w word) one() uint64 {
	if w.reduce {
		return 1 % w.m
	}
	return 1
}

func (w word) mul(a, b uint64) uint64 {
	p := a * b
	if w.reduce {
		p %= w.m
	}
	return p
}

// PowerMod returns base^exponent reduced by the effective modulus.
//
// With an explicit modulus, that modulus is used. With an unset modulus the
// result is exact when it has at most MaxExactDigits digits, and is reduced
// by FallbackModulus otherwise. The decision is taken once, before the first
// step.
//
// Exponent 0 yields 1 (reduced by the modulus), also for base 0; callers
// that need 0^0 to be undefined must check for it first. Base 0 with a
// positive exponent yields 0.
//
// Arithmetic is plain uint64: each product is formed before it is reduced,
// and the base itself is never pre-reduced, so an explicit modulus above
// 2^32 or a base above 2^32 under the fallback modulus can wrap. Use
// PowerModWide when that matters.
func PowerMod(base, exponent uint64, mod Modulus) uint64 {
	eff, _ := effectiveModulus(base, exponent, mod)
	w := word{m: eff.value, reduce: eff.set}

	acc := w.one()
	walk(exponent, func(s Step) {
		switch s {
		case Square:
			acc = w.mul(acc, acc)
		case Multiply:
			acc = w.mul(acc, base)
		}
	})
	return acc
}

var _ PowerFunc = PowerMod
