//go:build !gmp

package powmod

import "math/big"

// ExactBackend names the arbitrary-precision library behind Exact.
const ExactBackend = "math/big"

func exactPow(base, exponent uint64) *big.Int {
	b := new(big.Int).SetUint64(base)
	e := new(big.Int).SetUint64(exponent)
	return b.Exp(b, e, nil)
}
