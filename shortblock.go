package ldpc

import "github.com/nrphy/ldpc/internal/shortblock"

// ShortBlockLen is the natural (unmatched) output length of the short
// block code, before cyclic rate matching to an arbitrary E.
const ShortBlockLen = shortblock.N

// ShortBlockMaxPayload is the largest input size the short block code
// supports (TS38.212's 11-bit uplink control payload limit).
const ShortBlockMaxPayload = shortblock.MaxK

// EncodeShortBlock encodes a payload of up to ShortBlockMaxPayload bits
// (one byte per bit) into an e-bit codeword at modulation order qm: the
// (32,K) basis code (or, for k<=2, the special-cased repetition/parity
// encodings), cyclically rate-matched to length e and, for k>=3, Qm-bit
// interleaved.
// Panics if len(payload) > ShortBlockMaxPayload or e is smaller than the
// code's natural block length.
func EncodeShortBlock(payload []uint8, qm, e int) []uint8 {
	return shortblock.Encode(payload, qm, e)
}

// DecodeShortBlock runs the GLRT detector against a rate-matched,
// Qm-interleaved channel LLR vector, returning the most likely k-bit
// payload and whether the detector's per-K threshold was met. On failure
// it returns the all-ones payload, per spec.
func DecodeShortBlock(soft []LLR, k, qm int) ([]uint8, bool) {
	return shortblock.Detect(soft, k, qm)
}
