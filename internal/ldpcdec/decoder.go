// Package ldpcdec implements the layered normalized min-sum LDPC decoder of
// TS 38.212 §5.4.2 (encoder-side) / §5.3.2 (decoder, non-normative in the
// 3GPP sense but the universally deployed receiver algorithm), grounded on
// ldpc_decoder_generic.cpp and ldpc_decoder_impl.cpp.
package ldpcdec

import (
	"github.com/nrphy/ldpc/internal/crc"
	"github.com/nrphy/ldpc/internal/graph"
	"github.com/nrphy/ldpc/internal/llr"
)

// ScalingFactor is the normalized min-sum correction factor applied to the
// magnitude of each check-to-variable message, per ldpc_decoder_generic.cpp
// (0.8 trades a little gain for decoder stability versus the un-normalized
// min-sum).
const ScalingFactor = 0.8

// firstDecodableRow excludes the four high-rate check rows from the
// layered schedule. This is not an independent design choice: it is a
// direct consequence of graph.BitExactShiftTables being false (see
// internal/graph/gen.go). Because the fabricated high-rate rows never
// carry real edges to the high-rate parity columns p0..p3 -- only to
// systematic nodes, to feed ldpcenc's closed-form recurrence -- they do
// not describe complete check equations and cannot be treated as ordinary
// Tanner-graph constraints here. A conformant §5.4.2 decoder propagates
// belief through all M rows, including the high-rate region; this one
// does not, and cannot, until real shift tables replace gen.go's
// substitute. The extension rows (4..M-1) do store complete check
// equations and carry the full belief-propagation load in their place.
const firstDecodableRow = 4

// Config selects the base graph, lifting size, iteration budget, and an
// optional CRC calculator for early termination.
type Config struct {
	BG            graph.BaseGraph
	Z             int
	MaxIterations int
	CRC           crc.Calculator // nil disables early termination
}

// Result reports how decoding concluded.
type Result struct {
	Iterations int
	CRCPass    bool
}

// Decoder runs the layered belief-propagation decoder. It keeps
// soft-decision scratch state sized for the largest supported codeblock and
// is meant to be reused across codeblocks: per spec.md §5's "no allocation
// occurs on the hot path after construction", every per-layer working
// vector below is grown once and reused, never reallocated inside Decode.
type Decoder struct {
	checkToVar map[int][]llr.LLR // keyed by row, one message slot per adjacency entry

	// Per-layer scratch, reused across rows/iterations/Decode calls. Sized
	// to the largest supported (degree, Z) on first use and reused via
	// slice re-truncation afterwards.
	working   []llr.LLR
	extrinsic []llr.LLR // deg*z scratch
	aligned   []llr.LLR // z-length rotation scratch
	min1      []llr.LLR // z-length per-lane running minimum
	min2      []llr.LLR // z-length per-lane second minimum
	minIdx    []int     // z-length per-lane argmin adjacency index
	signProd  []int     // z-length per-lane sign product (+1/-1)
	hardBits  []uint8   // CRC scratch, reused across iterations
}

// NewDecoder constructs a Decoder.
func NewDecoder() *Decoder {
	return &Decoder{checkToVar: make(map[int][]llr.LLR)}
}

// Decode runs layered normalized min-sum decoding over soft (length
// N_full*Z channel LLRs, shortened/filler positions already set to +inf by
// the caller) and writes the hard-decided systematic bits (K*Z of them)
// into hardOut. It returns once either cfg.MaxIterations layers-passes have
// run, or (if cfg.CRC is non-nil) the decoded systematic+CRC bits pass the
// checksum.
func (d *Decoder) Decode(soft []llr.LLR, hardOut []uint8, cfg Config) Result {
	g := graph.Get(cfg.BG, cfg.Z)
	m := cfg.BG.M()
	k := cfg.BG.K()
	z := cfg.Z

	if cap(d.working) < len(soft) {
		d.working = make([]llr.LLR, len(soft))
	}
	d.working = d.working[:len(soft)]
	copy(d.working, soft)
	working := d.working

	for row := firstDecodableRow; row < m; row++ {
		adj := g.Adjacency(row)
		if cap(d.checkToVar[row]) < len(adj)*z {
			d.checkToVar[row] = make([]llr.LLR, len(adj)*z)
		} else {
			d.checkToVar[row] = d.checkToVar[row][:len(adj)*z]
			for i := range d.checkToVar[row] {
				d.checkToVar[row][i] = llr.Zero
			}
		}
	}

	d.growScratch(graph.MaxCheckDegree, z, k*z)

	result := Result{}
	for iter := 1; iter <= cfg.MaxIterations; iter++ {
		for row := firstDecodableRow; row < m; row++ {
			d.updateLayer(g, row, working, z)
		}
		result.Iterations = iter

		for i := 0; i < k*z && i < len(hardOut); i++ {
			hardOut[i] = working[i].HardDecision()
		}

		if cfg.CRC != nil {
			copy(d.hardBits, hardOut[:k*z])
			if crc.Check(cfg.CRC, d.hardBits) {
				result.CRCPass = true
				return result
			}
		}
	}
	return result
}

// growScratch ensures the reusable per-layer buffers are large enough:
// maxDeg*z elements for the extrinsic scratch, z for each per-lane buffer,
// and k*z for the CRC scratch.
func (d *Decoder) growScratch(maxDeg, z, kz int) {
	if cap(d.extrinsic) < maxDeg*z {
		d.extrinsic = make([]llr.LLR, maxDeg*z)
	}
	if cap(d.aligned) < z {
		d.aligned = make([]llr.LLR, z)
	}
	d.aligned = d.aligned[:z]
	if cap(d.min1) < z {
		d.min1 = make([]llr.LLR, z)
		d.min2 = make([]llr.LLR, z)
		d.minIdx = make([]int, z)
		d.signProd = make([]int, z)
	}
	d.min1, d.min2 = d.min1[:z], d.min2[:z]
	d.minIdx, d.signProd = d.minIdx[:z], d.signProd[:z]
	if cap(d.hardBits) < kz {
		d.hardBits = make([]uint8, kz)
	}
	d.hardBits = d.hardBits[:kz]
}

// updateLayer runs one normalized min-sum update for checkRow, reading and
// writing directly into soft (the shared variable-node belief vector), per
// the "layered" schedule of ldpc_decoder_generic.cpp: each row's update is
// immediately visible to the next row in the same iteration.
//
// Work is organized column-major over the Z lanes of the quasi-cyclic
// block rather than edge-by-edge: for each incident variable node the
// entire Z-lane extrinsic vector is computed in one pass (llr.SubVector),
// and the min1/min2/argmin/sign-product tracking sweeps all Z lanes per
// edge instead of one lane at a time, the "vectorize naturally over the Z
// dimension" shape spec.md §9 calls for. llr.SubVector internally
// dispatches to a wider unrolled path when the host reports SIMD support
// (golang.org/x/sys/cpu), falling back to a portable scalar loop otherwise;
// both paths are bit-identical. The soft-bit update itself is a per-lane
// llr.PromotionSum.
func (d *Decoder) updateLayer(g *graph.Graph, checkRow int, soft []llr.LLR, z int) {
	adj := g.Adjacency(checkRow)
	deg := len(adj)
	msgs := d.checkToVar[checkRow]
	ext := d.extrinsic[:deg*z]
	aligned := d.aligned

	for idx, n16 := range adj {
		n := int(n16)
		shift, _ := g.Shift(checkRow, n)
		llr.ShiftInto(aligned, soft[n*z:(n+1)*z], int(shift))
		llr.SubVector(ext[idx*z:(idx+1)*z], aligned, msgs[idx*z:(idx+1)*z])
		// An infinite belief is passed on unchanged as the
		// variable-to-check message.
		for lane, v := range aligned {
			if v.IsInf() {
				ext[idx*z+lane] = v
			}
		}
	}

	min1, min2, minIdx, signProd := d.min1, d.min2, d.minIdx, d.signProd
	for lane := 0; lane < z; lane++ {
		min1[lane] = llr.PosInf
		min2[lane] = llr.PosInf
		minIdx[lane] = -1
		signProd[lane] = 1
	}

	for idx := 0; idx < deg; idx++ {
		row := ext[idx*z : (idx+1)*z]
		for lane := 0; lane < z; lane++ {
			v := row[lane]
			mag := v.Abs()
			if v.Sign() < 0 {
				signProd[lane] = -signProd[lane]
			}
			if mag < min1[lane] {
				min2[lane] = min1[lane]
				min1[lane] = mag
				minIdx[lane] = idx
			} else if mag < min2[lane] {
				min2[lane] = mag
			}
		}
	}

	for idx, n16 := range adj {
		n := int(n16)
		shift, _ := g.Shift(checkRow, n)
		row := ext[idx*z : (idx+1)*z]
		newMsg := aligned // reuse as scratch for the new check-to-var vector

		for lane := 0; lane < z; lane++ {
			mag := min1[lane]
			if idx == minIdx[lane] {
				mag = min2[lane]
			}
			scaled := mag.Scale(ScalingFactor)

			sign := signProd[lane]
			if row[lane].Sign() < 0 {
				sign = -sign
			}
			newMsg[lane] = llr.CopySign(scaled, sign)
		}

		slot := msgs[idx*z : (idx+1)*z]
		dstVar := soft[n*z : (n+1)*z]

		// soft[pos] = soft[pos] - oldMsg + newMsg, computed as a vector
		// over the check row's local lane frame, then scattered back into
		// the variable node's own circular-buffer frame.
		updated := ext[idx*z : (idx+1)*z] // reuse: ext[idx] already holds soft-old_msg (the extrinsic)
		for lane := range updated {
			updated[lane] = llr.PromotionSum(updated[lane], newMsg[lane])
		}
		llr.ScatterShifted(dstVar, updated, int(shift))
		copy(slot, newMsg)
	}
}
