// Package ldpcenc implements the systematic quasi-cyclic LDPC encoder of
// TS 38.212 §5.3.2, grounded on ldpc_encoder_generic.cpp.
package ldpcenc

import (
	"fmt"

	"github.com/nrphy/ldpc/internal/graph"
)

// Config selects the base graph and lifting size for one encode call.
type Config struct {
	BG graph.BaseGraph
	Z  int
}

// Encoder encodes one codeblock per Encode call and exposes the result via a
// Buffer. It is stateful (it keeps a reusable codeword working area and the
// four auxiliary vectors) and is meant to be reused across codeblocks, the
// same lifecycle as the teacher's stateful codec instances.
type Encoder struct {
	codeblock []uint8 // one byte per bit, length N_full*Z: [x0..x_{K-1}, p0..p_{M-1}]
	auxiliary [4][]uint8
}

// NewEncoder constructs an Encoder with scratch buffers sized for the
// largest supported parameters.
func NewEncoder() *Encoder {
	const maxN = 68 * 384 // BG1_N_FULL * MAX_LIFTING_SIZE
	e := &Encoder{codeblock: make([]uint8, maxN)}
	for i := range e.auxiliary {
		e.auxiliary[i] = make([]uint8, 384)
	}
	return e
}

// Buffer is the view over one codeblock that Encode has fully computed;
// Write only copies bits out of it. The leading 2*Z
// systematic bits are shortened (never written), so offset 0 refers to the
// first bit of x_2.
type Buffer struct {
	g         *graph.Graph
	codeblock []uint8 // one byte per bit, length N_full*Z
	k         int
	z         int
}

// CodeblockLength returns (N_full-2)*Z, the number of bits the Buffer
// exposes.
func (b *Buffer) CodeblockLength() int {
	return (b.g.BG.NFull()-2)*b.z
}

// Write writes exactly len(dest) bits starting bitOffset bits into the
// codeblock (offset 0 = first bit of x_2) into dest, one bit per byte
// (0/1). The result is position-stable: identical bits regardless of how
// the caller partitions offset/length across calls.
func (b *Buffer) Write(dest []uint8, bitOffset int) {
	shiftedStart := 2*b.z + bitOffset // index into the logical [x0..,p0..] codeblock
	for i := 0; i < len(dest); i++ {
		dest[i] = b.bitAt(shiftedStart + i)
	}
}

// bitAt returns the value of logical codeblock bit index idx, where the
// codeblock is laid out [x_0..x_{K-1}, p_0..p_{M-1}] (same as Encoder's
// internal working array).
func (b *Buffer) bitAt(idx int) uint8 {
	return b.codeblock[idx]
}

// Encode encodes the K*Z systematic input bits (one byte per bit) into a
// Buffer. cfg.Z must be one of the 51 defined lifting sizes; input size
// mismatch is a programmer error and panics (spec.md §4.2's "fatal
// configuration error", detected early).
func (e *Encoder) Encode(input []uint8, cfg Config) *Buffer {
	g := graph.Get(cfg.BG, cfg.Z)
	k := cfg.BG.K()
	z := cfg.Z
	nFull := cfg.BG.NFull()

	if len(input) != k*z {
		panic(fmt.Sprintf("ldpcenc: input length %d != K*Z (%d)", len(input), k*z))
	}

	codeblock := e.codeblock[:nFull*z]
	copy(codeblock[:k*z], input)
	for i := k * z; i < nFull*z; i++ {
		codeblock[i] = 0
	}

	e.accumulateAuxiliary(g, codeblock, k, z)
	e.computeHighRateParity(g, codeblock, k, z)
	e.computeExtendedParity(g, codeblock, k, z)

	return &Buffer{g: g, codeblock: codeblock, k: k, z: z}
}

// accumulateAuxiliary fills the four high-rate auxiliary vectors by XOR-ing
// the cyclically shifted systematic groups incident to check nodes 0..3,
// per ldpc_encoder_generic.cpp's preprocess_systematic_bits.
func (e *Encoder) accumulateAuxiliary(g *graph.Graph, codeblock []uint8, k, z int) {
	for m := 0; m < 4; m++ {
		aux := e.auxiliary[m][:z]
		for i := range aux {
			aux[i] = 0
		}
		for _, n16 := range g.Adjacency(m) {
			n := int(n16)
			if n >= k {
				continue
			}
			shift, ok := g.Shift(m, n)
			if !ok {
				continue
			}
			xorShiftedInto(aux, codeblock[n*z:(n+1)*z], int(shift), z)
		}
	}
}

// xorShiftedInto XORs a backward-circularly-shifted copy of src (shift
// positions) into dst, using the split-copy two-memcpy pattern spec.md §9
// asks for instead of per-bit index arithmetic.
func xorShiftedInto(dst, src []uint8, shift, z int) {
	if shift == 0 {
		for i := 0; i < z; i++ {
			dst[i] ^= src[i]
		}
		return
	}
	// circ_shift_backward(src, shift)[i] = src[(i+shift) mod z]
	for i := 0; i < z-shift; i++ {
		dst[i] ^= src[i+shift]
	}
	for i := z - shift; i < z; i++ {
		dst[i] ^= src[i-(z-shift)]
	}
}

// circShiftBackward writes a backward-circularly-shifted copy of src into dst.
func circShiftBackward(dst, src []uint8, shift, z int) {
	if shift == 0 {
		copy(dst, src)
		return
	}
	copy(dst[:z-shift], src[shift:])
	copy(dst[z-shift:], src[:shift])
}

// circShiftForward writes a forward-circularly-shifted copy of src into dst.
func circShiftForward(dst, src []uint8, shift, z int) {
	shift = ((shift % z) + z) % z
	circShiftBackward(dst, src, (z-shift)%z, z)
}

// computeHighRateParity derives p0..p3 from the four auxiliary vectors
// using the variant recurrence selected by (bg, lifting set), per spec.md
// §4.2 step 2.
func (e *Encoder) computeHighRateParity(g *graph.Graph, codeblock []uint8, k, z int) {
	aux := e.auxiliary
	p0 := codeblock[k*z : (k+1)*z]
	p1 := codeblock[(k+1)*z : (k+2)*z]
	p2 := codeblock[(k+2)*z : (k+3)*z]
	p3 := codeblock[(k+3)*z : (k+4)*z]

	tmp := make([]uint8, z)
	sum := make([]uint8, z)
	for i := 0; i < z; i++ {
		sum[i] = aux[0][i] ^ aux[1][i] ^ aux[2][i] ^ aux[3][i]
	}

	switch {
	case g.BG == graph.BG1 && g.LiftingSet() == 6:
		// Variant A: p0 = circ_shift_forward(sum, 105 mod Z).
		circShiftForward(p0, sum, 105%z, z)
		for i := 0; i < z; i++ {
			p1[i] = aux[0][i] ^ p0[i]
			p3[i] = aux[3][i] ^ p0[i]
			p2[i] = aux[2][i] ^ p3[i]
		}
	case g.BG == graph.BG1:
		// Variant B: r = circ_shift_backward(sum, 1).
		circShiftBackward(tmp, sum, 1, z)
		copy(p0, sum)
		for i := 0; i < z; i++ {
			p1[i] = aux[0][i] ^ tmp[i]
			p3[i] = aux[3][i] ^ tmp[i]
			p2[i] = aux[2][i] ^ p3[i]
		}
	case g.LiftingSet() == 3 || g.LiftingSet() == 7:
		// Variant C (BG2, sets 3/7): r = circ_shift_backward(sum, 1).
		circShiftBackward(tmp, sum, 1, z)
		copy(p0, sum)
		for i := 0; i < z; i++ {
			p1[i] = aux[0][i] ^ tmp[i]
			p2[i] = aux[1][i] ^ p1[i]
			p3[i] = aux[3][i] ^ tmp[i]
		}
	default:
		// Variant D (BG2, other): p0 = circ_shift_forward(sum, 1).
		circShiftForward(p0, sum, 1, z)
		for i := 0; i < z; i++ {
			p1[i] = aux[0][i] ^ p0[i]
			p2[i] = aux[1][i] ^ p1[i]
			p3[i] = aux[3][i] ^ p0[i]
		}
	}
}

// computeExtendedParity computes parity nodes m in [4,M) directly from the
// check-node adjacency (systematic nodes plus any of p0..p3), per spec.md
// §4.2 step 3 / ldpc_encoder_generic.cpp's ext_region_inner.
func (e *Encoder) computeExtendedParity(g *graph.Graph, codeblock []uint8, k, z int) {
	m := g.BG.M()
	tmp := make([]uint8, z)
	for row := 4; row < m; row++ {
		out := codeblock[(k+row)*z : (k+row+1)*z]
		for i := range out {
			out[i] = 0
		}
		for _, n16 := range g.Adjacency(row) {
			n := int(n16)
			if n == k+row {
				// The row's own dual-diagonal-free identity bit is the
				// quantity being solved for, not an input.
				continue
			}
			shift, ok := g.Shift(row, n)
			if !ok {
				continue
			}
			circShiftBackward(tmp, codeblock[n*z:(n+1)*z], int(shift), z)
			for i := 0; i < z; i++ {
				out[i] ^= tmp[i]
			}
		}
	}
}
