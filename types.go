package ldpc

import "github.com/nrphy/ldpc/internal/llr"

// LLR is a saturating signed 8-bit log-likelihood ratio: positive values
// favor bit 0, negative values favor bit 1, and the two extreme magnitudes
// (+120/-120) represent certainty.
type LLR = llr.LLR

// Certainty sentinels and the neutral (maximally uncertain) value, re-exported
// from the internal representation for callers building channel LLR inputs.
const (
	PosInf = llr.PosInf
	NegInf = llr.NegInf
	Zero   = llr.Zero
)
