package powmod

// ─────────────────────────────────────────────────────────────────────────────
// Overflow Heuristic Constants
// ─────────────────────────────────────────────────────────────────────────────

const (
	// FallbackModulus is the prime applied when no modulus was requested and
	// the exact power would not fit in 64 bits. It is chosen only to keep the
	// arithmetic in range, not for any cryptographic property.
	FallbackModulus uint64 = 1_000_000_007

	// FallbackModulusLabel is the human-readable form of FallbackModulus used
	// in result annotations.
	FallbackModulusLabel = "10^9+7"

	// MaxExactDigits is the largest decimal digit count trusted to fit in a
	// uint64. Powers with more digits are reduced by FallbackModulus.
	//
	// 10^19 itself has 20 digits, and every 19-digit value is below
	// 2^64 - 1, so exact results at or under this bound never wrap.
	MaxExactDigits = 19
)

// exactCheckMaxBits bounds the size of b^e that DigitCount is willing to
// materialise when confirming a count near a power of ten.
const exactCheckMaxBits = 4096

// boundaryTolerance is the distance from an integer below which the
// floating-point estimate of e*log10(b) is considered ambiguous.
const boundaryTolerance = 1e-9
