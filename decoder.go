package ldpc

import (
	"github.com/nrphy/ldpc/internal/ldpcdec"
)

// DecoderConfig carries the per-codeblock parameters Decode needs: base
// graph, lifting size, iteration budget, and an optional CRC calculator
// for early termination once the decoded bits are self-consistent.
type DecoderConfig struct {
	BG            BaseGraph
	Z             int
	MaxIterations int
	CRC           CRCCalculator // nil disables early termination
}

// DecodeResult reports how many iterations ran and whether the CRC (if
// configured) passed before the iteration budget was exhausted.
type DecodeResult struct {
	UsedIterations int
	CRCPass        bool
}

// Decoder runs layered normalized min-sum belief propagation. A single
// Decoder is stateful (it owns reusable per-check-node message scratch) and
// is meant to be reused across codeblocks.
type Decoder struct {
	inner *ldpcdec.Decoder
}

// NewDecoder constructs a Decoder.
func NewDecoder() *Decoder {
	return &Decoder{inner: ldpcdec.NewDecoder()}
}

// Decode runs belief propagation over input (channel LLRs, one per variable
// node, length N_full*Z; shorter inputs are not supported. The 2*Z shortened
// systematic positions must already be set to +inf by the caller, same as
// any other known-zero filler bit) and writes
// the hard-decided systematic bits (K*Z of them) into output. It returns
// once either cfg.MaxIterations layer passes complete, or (if cfg.CRC is
// set) the decoded bits pass the checksum, whichever comes first.
func (d *Decoder) Decode(output []uint8, input []LLR, cfg DecoderConfig) DecodeResult {
	res := d.inner.Decode(input, output, ldpcdec.Config{
		BG:            cfg.BG,
		Z:             cfg.Z,
		MaxIterations: cfg.MaxIterations,
		CRC:           cfg.CRC,
	})
	return DecodeResult{UsedIterations: res.Iterations, CRCPass: res.CRCPass}
}
