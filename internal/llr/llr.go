// Package llr implements the saturating 8-bit log-likelihood ratio type used
// by the LDPC rate dematcher and decoder.
//
// A value is never leaked as a plain int8: every arithmetic operation goes
// through LLR so callers cannot accidentally perform unsaturated math, the
// same discipline the teacher codec applies to its fixed-point samples.
package llr

// LLR is a saturating signed log-likelihood ratio. Finite values are bounded
// to [-maxFinite, maxFinite]; PosInf/NegInf represent certainty.
type LLR int8

const (
	// maxFinite is the largest magnitude a non-infinite LLR may take.
	maxFinite = 119
	// infMagnitude is the reserved magnitude representing +/-infinity.
	infMagnitude = 120
)

// PosInf and NegInf represent certain 0 and certain 1 respectively.
const (
	PosInf LLR = infMagnitude
	NegInf LLR = -infMagnitude
)

// Zero is the neutral LLR value (maximal uncertainty).
const Zero LLR = 0

// FromHardBit maps a hard decision bit (0 or 1) plus a magnitude to a
// saturated LLR, using the sign convention "positive means bit 0".
func FromHardBit(bit uint8, magnitude int) LLR {
	m := clampFinite(magnitude)
	if bit == 0 {
		return LLR(m)
	}
	return LLR(-m)
}

// clampFinite saturates an integer magnitude into [0, maxFinite].
func clampFinite(m int) int {
	if m > maxFinite {
		return maxFinite
	}
	if m < 0 {
		return 0
	}
	return m
}

// IsInf reports whether v represents +/- infinity.
func (v LLR) IsInf() bool {
	return v == PosInf || v == NegInf
}

// Sign returns +1, -1, or 0.
func (v LLR) Sign() int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}

// Abs returns the absolute value of v: NegInf maps to PosInf, and a finite
// value to its magnitude.
func (v LLR) Abs() LLR {
	if v == NegInf {
		return PosInf
	}
	if v < 0 {
		return saturate(-int(v))
	}
	return v
}

// saturate clamps an arbitrary-width finite sum into
// [-maxFinite, maxFinite]; it never produces the +/-inf sentinels.
func saturate(x int) LLR {
	if x > maxFinite {
		return LLR(maxFinite)
	}
	if x < -maxFinite {
		return LLR(-maxFinite)
	}
	return LLR(x)
}

// Add returns a saturating sum. It is the plain "bounded" add used for
// rate-dematching HARQ combining: +inf dominates any non -inf operand and
// vice versa; +inf plus -inf falls back to saturating the pre-combination
// finite-equivalent sum (the reference behaviour for the pathological case
// noted in spec.md's open questions).
func (a LLR) Add(b LLR) LLR {
	switch {
	case a == PosInf && b == NegInf, a == NegInf && b == PosInf:
		return saturate(int(finiteEquivalent(a)) + int(finiteEquivalent(b)))
	case a == PosInf || b == PosInf:
		return PosInf
	case a == NegInf || b == NegInf:
		return NegInf
	default:
		return saturate(int(a) + int(b))
	}
}

// finiteEquivalent maps an infinite sentinel to its signed finite-range
// boundary value, used only to resolve the +inf/-inf collision in Add.
func finiteEquivalent(v LLR) LLR {
	switch v {
	case PosInf:
		return maxFinite
	case NegInf:
		return -maxFinite
	default:
		return v
	}
}

// Sub returns a saturating difference a-b, used for the variable-to-check
// message computation (soft_bits - check_to_var).
func (a LLR) Sub(b LLR) LLR {
	return a.Add(b.Negate())
}

// Negate returns -v, preserving infinities.
func (v LLR) Negate() LLR {
	switch v {
	case PosInf:
		return NegInf
	case NegInf:
		return PosInf
	default:
		return saturate(-int(v))
	}
}

// BoxPlus computes the min-sum soft-XOR (box-plus) approximation:
// sign(a)*sign(b)*min(|a|,|b|).
func BoxPlus(a, b LLR) LLR {
	sign := a.Sign() * b.Sign()
	aAbs, bAbs := a.Abs(), b.Abs()
	m := aAbs
	if bAbs < aAbs {
		m = bAbs
	}
	if sign < 0 {
		return m.Negate()
	}
	return m
}

// PromotionSum adds two LLRs with "promotion to infinity" semantics: if
// either operand is +inf and neither is -inf, the result is +inf (and
// symmetrically for -inf), and a finite sum whose magnitude exceeds
// maxFinite is promoted to the infinity of its sign instead of being
// clamped. A +inf/-inf collision resolves as in Add. This is the soft-bit
// update of the decoder's layer pass; it differs from the HARQ-combining Add
// above, which clamps finite sums at +/-maxFinite.
func PromotionSum(a, b LLR) LLR {
	if a == PosInf && b != NegInf {
		return PosInf
	}
	if b == PosInf && a != NegInf {
		return PosInf
	}
	if a == NegInf && b != PosInf {
		return NegInf
	}
	if b == NegInf && a != PosInf {
		return NegInf
	}
	if a.IsInf() || b.IsInf() {
		return a.Add(b) // +inf/-inf collision
	}
	switch x := int(a) + int(b); {
	case x > maxFinite:
		return PosInf
	case x < -maxFinite:
		return NegInf
	default:
		return LLR(x)
	}
}

// Scale multiplies the magnitude of v by a normalised min-sum scaling factor
// in (0,1], rounding to nearest and preserving sign and infinities.
func (v LLR) Scale(factor float64) LLR {
	if v.IsInf() {
		return v
	}
	mag := float64(v.Abs())
	scaled := int(mag*factor + 0.5)
	out := saturate(scaled)
	if v < 0 {
		return out.Negate()
	}
	return out
}

// HardDecision returns 1 if v < 0, else 0 (the symmetric zero case resolves
// to a 0 bit, per spec.md §4.4).
func (v LLR) HardDecision() uint8 {
	if v < 0 {
		return 1
	}
	return 0
}

// CopySign returns a value with the magnitude of v and the sign of sign.
func CopySign(v LLR, sign int) LLR {
	mag := v.Abs()
	if sign < 0 {
		return mag.Negate()
	}
	return mag
}
