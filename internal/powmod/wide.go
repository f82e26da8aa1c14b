package powmod

import "github.com/holiman/uint256"

// wide is modular arithmetic over 256-bit intermediates, so a product of two
// 64-bit operands is never truncated before it is reduced.
type wide struct {
	m      uint256.Int
	reduce bool
	x, y   uint256.Int
	z      uint256.Int
}

func newWide(eff Modulus) *wide {
	w := &wide{reduce: eff.set}
	if eff.set {
		w.m.SetUint64(eff.value)
	}
	return w
}

func (w *wide) one() uint64 {
	if w.reduce {
		return 1 % w.m.Uint64()
	}
	return 1
}

func (w *wide) mul(a, b uint64) uint64 {
	if !w.reduce {
		return a * b
	}
	w.x.SetUint64(a)
	w.y.SetUint64(b)
	w.z.MulMod(&w.x, &w.y, &w.m)
	return w.z.Uint64()
}

// PowerModWide follows the same schedule and modulus rules as PowerMod but
// forms every reduced product in 256 bits. Results are exact modular powers
// for any explicit modulus and any base.
func PowerModWide(base, exponent uint64, mod Modulus) uint64 {
	eff, _ := effectiveModulus(base, exponent, mod)
	w := newWide(eff)

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

var _ PowerFunc = PowerModWide
