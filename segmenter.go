package ldpc

import (
	"github.com/nrphy/ldpc/internal/crc"
	"github.com/nrphy/ldpc/internal/graph"
	"github.com/nrphy/ldpc/internal/llr"
	"github.com/nrphy/ldpc/internal/segmenter"
)

// CRCCalculator computes a CRC checksum over a sequence of bits, each given
// as one byte with value 0 or 1, returned right-aligned in the low Order()
// bits. Callers may supply their own implementation; it need not import
// this module's internal packages to satisfy the interface.
type CRCCalculator = crc.Calculator

// BaseGraph selects one of the two 3GPP NR LDPC base graphs.
type BaseGraph = graph.BaseGraph

// The two defined base graphs.
const (
	BG1 = graph.BG1
	BG2 = graph.BG2
)

// SegmentConfig carries the parameters SegmentTx needs beyond the raw
// transport block bytes: the effective code rate (used for base-graph
// selection), and the channel-bit budget G split across codeblocks per
// TS38.212 §5.4.2.1, are all supplied by the caller, which already knows
// the target MCS/PRB allocation and number of transmission layers.
type SegmentConfig struct {
	CodeRate float64
	G        int // total channel bits available for this transport block
	Qm       int // modulation order
	LLayers  int // number of transmission layers
}

// TxSegmenter splits transport blocks into codeblocks, attaching a
// per-codeblock CRC24B when segmentation produces more than one block.
//
// A TxSegmenter holds three CRC calculators (crc16, crc24a, crc24b).
// crc16/crc24a are exposed for callers that need to attach the
// transport-block-level CRC themselves before calling SegmentTx. The
// per-codeblock CRC24B is computed by the internal segmenter's own
// bit-serial calculator; the supplied crc24b is stored but not used.
type TxSegmenter struct {
	crc16  CRCCalculator
	crc24a CRCCalculator
	crc24b CRCCalculator
	inner  *segmenter.TxSegmenter
}

// NewTxSegmenter constructs a TxSegmenter, taking ownership of the three
// supplied CRC calculators (pass nil for any to use the package's bit-serial
// Generic implementation).
func NewTxSegmenter(crc16, crc24a, crc24b CRCCalculator) *TxSegmenter {
	if crc16 == nil {
		crc16 = crc.New(crc.CRC16)
	}
	if crc24a == nil {
		crc24a = crc.New(crc.CRC24A)
	}
	if crc24b == nil {
		crc24b = crc.New(crc.CRC24B)
	}
	return &TxSegmenter{
		crc16:  crc16,
		crc24a: crc24a,
		crc24b: crc24b,
		inner:  segmenter.NewTxSegmenter(),
	}
}

// TransportBlockCRC16 attaches a CRC16 to tb (small transport blocks, per
// TS38.212 §5.1).
func (s *TxSegmenter) TransportBlockCRC16(tb []uint8) []uint8 {
	return crc.Attach(s.crc16, tb)
}

// TransportBlockCRC24A attaches a CRC24A to tb (large transport blocks).
func (s *TxSegmenter) TransportBlockCRC24A(tb []uint8) []uint8 {
	return crc.Attach(s.crc24a, tb)
}

// SegmentTx splits tb (a transport block with its TB-level CRC already
// attached) into codeblocks per cfg, returning each codeblock's packed
// input bits (ready for Encode) and its derived parameters.
func (s *TxSegmenter) SegmentTx(tb []uint8, cfg SegmentConfig) ([][]uint8, segmenter.Params) {
	params := segmenter.ComputeParams(len(tb), cfg.CodeRate, cfg.G, cfg.Qm, cfg.LLayers)
	return s.inner.Segment(tb, params), params
}

// ReadCodeblock writes a single codeblock (index c) of tb into dest without
// materializing the rest of the transport block's segmentation, for
// callers encoding codeblocks one at a time. dest must already have length
// params.BG.K()*params.Z.
func (s *TxSegmenter) ReadCodeblock(dest, tb []uint8, c int, params segmenter.Params) {
	s.inner.ReadCodeblock(dest, tb, c, params)
}

// RxSegmenter exposes non-owning LLR views over a received codeword
// buffer for each codeblock, without copying.
type RxSegmenter struct {
	inner *segmenter.RxSegmenter
}

// NewRxSegmenter constructs an RxSegmenter.
func NewRxSegmenter() *RxSegmenter {
	return &RxSegmenter{inner: segmenter.NewRxSegmenter()}
}

// SegmentRx returns the LLR slice for codeblock index c within cwLLRs, a
// flat buffer holding all codeblocks of a transport block back to back,
// each of length blockLen (N_full - 2) * Z + 2 * Z, i.e. K*Z + M*Z).
// Use this only when every codeblock shares a uniform length; otherwise
// use SegmentRxVariable.
func (s *RxSegmenter) SegmentRx(cwLLRs []llr.LLR, c, blockLen int) []llr.LLR {
	return s.inner.View(cwLLRs, c, blockLen)
}

// SegmentRxVariable returns the LLR slice for codeblock index c within
// cwLLRs, a flat buffer holding all codeblocks of a transport block back to
// back, each sized per params.ERs[c] -- the general case per TS38.212
// §5.4.2.1, which does not guarantee equal E_r across codeblocks.
func (s *RxSegmenter) SegmentRxVariable(cwLLRs []llr.LLR, c int, params segmenter.Params) []llr.LLR {
	return s.inner.ViewVariable(cwLLRs, c, params)
}
