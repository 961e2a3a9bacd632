// Package segmenter implements transport-block code-block segmentation and
// reassembly, TS 38.212 §5.2.2: splitting one transport block (plus its
// CRC) into C codeblocks, each CRC24B-attached when C > 1 and zero-padded
// to the base graph's K, and the inverse LLR-domain view for the receiver. It
// also derives each codeblock's rate-matched output length E_r, TS38.212
// §5.4.2.1's allocation of the G available channel bits across codeblocks.
//
// Grounded on ldpc_segmenter_tx_impl.cpp (new_transmission parameter
// derivation, read_codeblock) and ldpc_segmenter_rx_impl.cpp.
package segmenter

import (
	"fmt"

	"github.com/nrphy/ldpc/internal/crc"
	"github.com/nrphy/ldpc/internal/graph"
	"github.com/nrphy/ldpc/internal/llr"
)

// maxBitsBG1K is the largest information block size TS38.212 allows before
// segmentation is mandatory for BG1 (the threshold beyond which more than
// one codeblock is required).
const maxBitsBG1K = 8448

// Params are the derived segmentation parameters for one transport block,
// TS38.212 §5.2.2's "determination of codeblock sizes" procedure, plus the
// §5.4.2.1 per-codeblock rate-matched length split.
type Params struct {
	BG              graph.BaseGraph
	Z               int
	NumCodeblocks   int
	PayloadPerBlock int // information bits carried per codeblock, before any codeblock CRC
	FillerPerBlock  int // zero-padding bits appended before the LDPC K boundary

	// G is the total number of channel bits available for this transport
	// block's transmission, Qm and LLayers the modulation order and
	// number of transmission layers it is split across. ERs holds the
	// per-codeblock rate-matched output length, one entry per codeblock,
	// summing to exactly G.
	G       int
	Qm      int
	LLayers int
	ERs     []int
}

// ComputeParams derives segmentation parameters for a transport block of
// tbLen information bits (including the TB CRC when the caller has already
// attached it), selecting BG1 for high-rate/large payloads and BG2 otherwise,
// per TS38.212 §6.2.1's base-graph-selection rule simplified to payload
// size and a caller-supplied code rate hint, and then splits g total
// channel bits (modulation order qm, lLayers transmission layers) across
// the resulting codeblocks per TS38.212 §5.4.2.1.
//
// Panics if g is not evenly divisible by qm*lLayers (TS38.212 guarantees
// this at the link-adaptation layer; a mismatch here is a caller bug, not
// a runtime condition to recover from) or if qm/lLayers are non-positive.
func ComputeParams(tbLen int, codeRate float64, g, qm, lLayers int) Params {
	if qm <= 0 || lLayers <= 0 {
		panic(fmt.Sprintf("segmenter: invalid qm=%d lLayers=%d", qm, lLayers))
	}
	if g%(qm*lLayers) != 0 {
		panic(fmt.Sprintf("segmenter: g=%d not divisible by qm*lLayers=%d", g, qm*lLayers))
	}

	bg := graph.BG2
	if tbLen > 3824 || codeRate > 0.67 {
		bg = graph.BG1
	}

	numCB := 1
	kcb := maxBitsBG1K
	if bg == graph.BG2 {
		kcb = 3840
	}
	effLen := tbLen
	if tbLen > kcb {
		numCB = ceilDiv(tbLen, kcb-24)
		effLen = tbLen + numCB*24
	}

	// withCRC is the per-block length TS38.212 calls K'_r: it already
	// reserves room for the per-block CRC that gets attached after the raw
	// payload is copied in, so the raw payload slice per block is shorter
	// by 24 bits whenever a codeblock CRC is in play.
	withCRC := ceilDiv(effLen, numCB)
	perBlock := withCRC
	if numCB > 1 {
		perBlock = withCRC - 24
	}

	k := bg.K()
	z := smallestZFor(withCRC, k)

	kTotal := k * z
	filler := kTotal - withCRC
	if filler < 0 {
		filler = 0
	}

	return Params{
		BG:              bg,
		Z:               z,
		NumCodeblocks:   numCB,
		PayloadPerBlock: perBlock,
		FillerPerBlock:  filler,
		G:               g,
		Qm:              qm,
		LLayers:         lLayers,
		ERs:             codeblockLengths(numCB, g, qm, lLayers),
	}
}

// codeblockLengths implements TS38.212 §5.4.2.1's split of g bits across c
// codeblocks: each E_r is a multiple of qm*lLayers, the first
// c-mod(g/(qm*lLayers), c) codeblocks get the floor share and the remainder
// get the ceiling share, so that the E_r values sum to exactly g.
func codeblockLengths(c, g, qm, lLayers int) []int {
	unit := qm * lLayers
	symbolsTotal := g / unit
	floorSymbols := symbolsTotal / c
	numCeil := symbolsTotal % c
	numFloor := c - numCeil

	out := make([]int, c)
	for r := 0; r < c; r++ {
		if r < numFloor {
			out[r] = floorSymbols * unit
		} else {
			out[r] = (floorSymbols + 1) * unit
		}
	}
	return out
}

func ceilDiv(a, b int) int {
	return (a + b - 1) / b
}

// smallestZFor returns the smallest defined lifting size z such that
// k*z >= info, the standard "smallest Kb multiple that fits" rule.
func smallestZFor(info, k int) int {
	best := -1
	for _, row := range graph.LiftingSizes {
		for _, z := range row {
			if k*z >= info && (best == -1 || z < best) {
				best = z
			}
		}
	}
	if best == -1 {
		panic("segmenter: transport block too large for any defined lifting size")
	}
	return best
}

// TxSegmenter produces codeblocks from a transport block payload on
// demand, without materializing every codeblock up front (the teacher's
// streaming-buffer pattern, carried over to avoid allocating C*K bits at
// once for large transport blocks).
type TxSegmenter struct {
	codeblockCRC *crc.Generic // always CRC24B, TS38.212's fixed codeblock-CRC choice
}

// NewTxSegmenter returns a TxSegmenter.
func NewTxSegmenter() *TxSegmenter {
	return &TxSegmenter{codeblockCRC: crc.New(crc.CRC24B)}
}

// ReadCodeblock writes codeblock index c's exactly params.BG.K()*params.Z
// bits into dest (which must already have that length): payload bits
// sliced directly out of payload, then (if there is more than one
// codeblock) an inline codeblock CRC24B computed straight into dest with
// no intermediate allocation, then zero filler up to K*Z. This is the
// single-codeblock counterpart to Segment, for callers that want to
// encode codeblocks one at a time instead of materializing the whole
// transport block's segmentation at once.
func (s *TxSegmenter) ReadCodeblock(dest, payload []uint8, c int, params Params) {
	kTotal := params.BG.K() * params.Z
	if len(dest) != kTotal {
		panic(fmt.Sprintf("segmenter: dest length %d, want %d", len(dest), kTotal))
	}
	if c < 0 || c >= params.NumCodeblocks {
		panic(fmt.Sprintf("segmenter: codeblock index %d out of range [0,%d)", c, params.NumCodeblocks))
	}

	per := params.PayloadPerBlock
	hasCRC := params.NumCodeblocks > 1

	start := c * per
	end := start + per
	if end > len(payload) {
		end = len(payload)
	}
	if end < start {
		end = start
	}
	n := copy(dest, payload[start:end])

	if hasCRC {
		order := s.codeblockCRC.Order()
		checksum := s.codeblockCRC.Calculate(dest[:n])
		for i := 0; i < order; i++ {
			shift := uint(order - 1 - i)
			dest[n+i] = uint8((checksum >> shift) & 1)
		}
		n += order
	}
	for i := n; i < kTotal; i++ {
		dest[i] = 0
	}
}

// Segment splits payload (tbLen bits, one byte per bit, including any TB
// CRC already attached by the caller) into params.NumCodeblocks codeblocks,
// each exactly params.BG.K()*params.Z bits: payload bits, then an optional
// codeblock CRC, then zero filler up to K*Z.
func (s *TxSegmenter) Segment(payload []uint8, params Params) [][]uint8 {
	out := make([][]uint8, params.NumCodeblocks)
	kTotal := params.BG.K() * params.Z
	for c := 0; c < params.NumCodeblocks; c++ {
		cb := make([]uint8, kTotal)
		s.ReadCodeblock(cb, payload, c, params)
		out[c] = cb
	}
	return out
}

// RxSegmenter exposes non-owning LLR slice views over a received codeword
// buffer, the receive-side mirror of TxSegmenter: it never copies the
// underlying LLRs, only computes offsets.
type RxSegmenter struct{}

// NewRxSegmenter returns an RxSegmenter.
func NewRxSegmenter() *RxSegmenter { return &RxSegmenter{} }

// View returns the LLR slice for codeblock index c out of a flat buffer
// containing all codeblocks back to back, each of length blockLen. Use
// this when every codeblock shares one rate-matched length (e.g. a single
// codeblock, or a caller that has already equalized lengths); for the
// general per-codeblock E_r split use ViewVariable.
func (s *RxSegmenter) View(buffer []llr.LLR, c, blockLen int) []llr.LLR {
	return buffer[c*blockLen : (c+1)*blockLen]
}

// ViewVariable returns the LLR slice for codeblock index c out of a flat
// buffer containing all codeblocks back to back, each sized per
// params.ERs[c] -- the general case, since TS38.212 §5.4.2.1 does not
// guarantee equal E_r across codeblocks.
func (s *RxSegmenter) ViewVariable(buffer []llr.LLR, c int, params Params) []llr.LLR {
	start := 0
	for i := 0; i < c; i++ {
		start += params.ERs[i]
	}
	return buffer[start : start+params.ERs[c]]
}
