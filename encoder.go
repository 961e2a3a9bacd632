package ldpc

import "github.com/nrphy/ldpc/internal/ldpcenc"

// EncoderConfig selects the base graph and lifting size for one Encode call.
type EncoderConfig struct {
	BG BaseGraph
	Z  int
}

// Encoder expands a systematic codeblock into its full LDPC codeword. A
// single Encoder is stateful (it owns reusable scratch buffers) and is
// meant to be reused across codeblocks rather than reconstructed per call.
type Encoder struct {
	inner *ldpcenc.Encoder
}

// NewEncoder constructs an Encoder.
func NewEncoder() *Encoder {
	return &Encoder{inner: ldpcenc.NewEncoder()}
}

// EncoderBuffer is the view over one encoded codeblock. Encode computes
// every parity bit up front; Write copies the requested positions out of
// that precomputed codeword.
type EncoderBuffer struct {
	inner *ldpcenc.Buffer
}

// Len returns the number of codeword bits this buffer exposes, i.e.
// (N_full - 2) * Z (the first 2*Z systematic bits are always shortened and
// never transmitted).
func (b *EncoderBuffer) Len() int { return b.inner.CodeblockLength() }

// Write copies len(dest) codeword bits starting bitOffset bits past the
// first transmitted bit (offset 0 = the first bit after the shortened
// 2*Z prefix) into dest, one bit per byte.
func (b *EncoderBuffer) Write(dest []uint8, bitOffset int) {
	b.inner.Write(dest, bitOffset)
}

// Encode runs the systematic LDPC encoding of input (packed bits, one byte
// per bit, length K*Z where K = cfg.BG.K()) and returns an EncoderBuffer
// over the encoded codeword. Panics if len(input) != K*Z or cfg.Z is not
// one of the 51 defined lifting sizes (a callable-contract violation, per
// spec.md §7).
func (e *Encoder) Encode(input []uint8, cfg EncoderConfig) *EncoderBuffer {
	buf := e.inner.Encode(input, ldpcenc.Config{BG: cfg.BG, Z: cfg.Z})
	return &EncoderBuffer{inner: buf}
}
