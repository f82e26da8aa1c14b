//go:build gmp

// Exact powers through GMP. Building with -tags=gmp requires libgmp
// (libgmp-dev on Debian/Ubuntu, `brew install gmp` on macOS); the default
// build uses math/big instead.

package powmod

import (
	"math/big"

	"github.com/ncw/gmp"
)

// ExactBackend names the arbitrary-precision library behind Exact.
const ExactBackend = "gmp"

func exactPow(base, exponent uint64) *big.Int {
	b := new(gmp.Int).SetUint64(base)
	e := new(gmp.Int).SetUint64(exponent)
	r := new(gmp.Int).Exp(b, e, nil)
	return new(big.Int).SetBytes(r.Bytes())
}
