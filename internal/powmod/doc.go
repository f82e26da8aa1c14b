// Package powmod computes base^exponent by exponentiation by squaring over
// unsigned 64-bit integers.
//
// When no modulus is requested and the exact power would need more than
// MaxExactDigits decimal digits, the result is silently reduced by
// FallbackModulus (10^9+7) so it stays representable. Evaluate packages that
// rule together with the 0^0 case for front ends, and Exact gives the full
// value when arbitrary precision is wanted.
package powmod
