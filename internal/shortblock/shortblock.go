// Package shortblock implements the (32,K) Reed-Muller-derived short block
// code of TS 38.212 §5.3.3, used for control information too small to carry
// the full LDPC chain profitably: uplink control payloads of up to 11 bits.
//
// Grounded line-for-line on short_block_encoder_impl.cpp and
// short_block_detector_impl.cpp/.h: the basis matrix, the K=1/K=2 special
// encodings, the cyclic rate-match/dematch, and the GLRT detector with its
// per-K thresholds are all transcribed from that reference rather than
// reinvented, down to the index arithmetic of the K=2 case.
package shortblock

import "github.com/nrphy/ldpc/internal/llr"

// N is the fixed pre-rate-matching block length for K>=3 inputs.
const N = 32

// MaxK is the largest supported input size.
const MaxK = 11

// basis is TS38.212 Table 5.3.3.3-1, transcribed verbatim from
// short_block_encoder_impl.cpp's BASIS_SEQUENCES (row i = M_i,n for output
// position i across all 11 input columns n, as the 3GPP table lists it).
// Column 0 (basis sequence M_i,0) is all-ones: the first message bit
// toggles every output position,
// the property the GLRT detector's even/odd-message shortcut depends on.
var basis = [N][MaxK]uint8{
	{1, 1, 0, 0, 0, 0, 0, 0, 0, 0, 1},
	{1, 1, 1, 0, 0, 0, 0, 0, 0, 1, 1},
	{1, 0, 0, 1, 0, 0, 1, 0, 1, 1, 1},
	{1, 0, 1, 1, 0, 0, 0, 0, 1, 0, 1},
	{1, 1, 0, 1, 0, 0, 1, 1, 0, 0, 1},
	{1, 1, 0, 0, 1, 0, 1, 1, 1, 0, 1},
	{1, 1, 1, 0, 1, 0, 0, 0, 1, 0, 1},
	{1, 1, 0, 1, 1, 0, 1, 1, 0, 0, 1},
	{1, 1, 0, 0, 1, 1, 0, 1, 0, 1, 1},
	{1, 0, 1, 1, 1, 1, 1, 0, 0, 1, 1},
	{1, 0, 1, 1, 0, 1, 0, 1, 1, 1, 0},
	{1, 1, 1, 1, 0, 1, 1, 1, 0, 0, 0},
	{1, 0, 0, 1, 1, 1, 0, 0, 1, 1, 0},
	{1, 0, 0, 1, 1, 0, 0, 1, 1, 1, 1},
	{1, 1, 0, 0, 0, 1, 1, 0, 0, 1, 1},
	{1, 1, 1, 0, 0, 1, 1, 1, 1, 1, 1},
	{1, 1, 1, 0, 0, 0, 1, 0, 0, 0, 1},
	{1, 0, 1, 1, 0, 0, 0, 0, 1, 1, 0},
	{1, 0, 1, 0, 1, 0, 0, 1, 0, 0, 1},
	{1, 0, 1, 0, 0, 0, 0, 0, 1, 0, 0},
	{1, 0, 0, 1, 0, 0, 0, 1, 0, 0, 0},
	{1, 1, 0, 1, 0, 1, 0, 0, 0, 1, 1},
	{1, 0, 0, 0, 1, 0, 1, 0, 0, 1, 0},
	{1, 0, 0, 1, 0, 1, 1, 0, 1, 0, 1},
	{1, 1, 0, 1, 1, 1, 1, 1, 0, 1, 0},
	{1, 1, 0, 0, 1, 0, 1, 1, 0, 1, 1},
	{1, 0, 1, 0, 1, 1, 0, 1, 1, 0, 0},
	{1, 1, 1, 1, 0, 1, 1, 0, 1, 1, 0},
	{1, 1, 1, 0, 1, 0, 0, 1, 0, 1, 0},
	{1, 0, 1, 1, 0, 1, 1, 0, 1, 1, 1},
	{1, 1, 1, 0, 1, 1, 0, 1, 1, 1, 0},
	{1, 0, 0, 0, 0, 0, 0, 0, 0, 0, 1},
}

// Placeholder bit values used by the K=1/K=2 special encodings: neither
// carries information. placeholderOne marks a position the modulation
// mapper fixes to a known value (TS38.212's "y"/"x=1" convention);
// placeholderRepeat marks a position that always equals its immediately
// preceding real bit, preserving the intended modulation distance. Since
// modulation mapping is out of this module's scope (spec.md's Non-goals),
// both are carried only as far as rate matching/interleaving; no caller
// should branch on their numeric value.
const (
	placeholderOne    uint8 = 2
	placeholderRepeat uint8 = 3
)

// thresholds holds the GLRT decision threshold for a K-bit message, indexed
// [K-1], transcribed from short_block_detector_impl.cpp's THRESHOLDS. The
// K=1 and K=2 entries are 0: the reference detector's own comment notes
// these thresholds "are not meaningful" for such short codes, and K=1
// detection never fails at all.
var thresholds = [MaxK]float64{0, 0, 12, 14, 16, 18, 20, 22, 24, 26, 29}

// minOutputLen returns the smallest Encode output length e that can carry a
// K-bit message at modulation order qm, before cyclic rate matching.
func minOutputLen(k, qm int) int {
	switch {
	case k == 1:
		return qm
	case k == 2:
		return 3 * qm
	default:
		return N
	}
}

// Encode returns the e-bit rate-matched codeword for a k-bit input (one
// byte per bit, 0 or 1), Qm-bit interleaved for k>=3 per spec.md §4.5.
// Panics if k is outside [1,MaxK] or e is smaller than the code's natural
// block length at this modulation order.
func Encode(input []uint8, qm, e int) []uint8 {
	k := len(input)
	if k == 0 || k > MaxK {
		panic("shortblock: input length must be 1..11 bits")
	}
	if e < minOutputLen(k, qm) {
		panic("shortblock: output length e too small for this input/modulation order")
	}

	var tmp []uint8
	switch k {
	case 1:
		tmp = encode1(input[0], qm)
	case 2:
		tmp = encode2(input, qm)
	default:
		tmp = encode311(input)
	}

	out := make([]uint8, e)
	cyclicRepeat(out, tmp)
	if k >= 3 {
		interleaved := make([]uint8, e)
		interleaveBits(interleaved, out, qm)
		return interleaved
	}
	return out
}

// Detect performs GLRT maximum-likelihood detection of soft (e channel
// LLRs, in transmission order) for a k-bit message at modulation order qm.
// It returns the recovered k-bit message and whether detection succeeded;
// on failure the message is forced to all-ones, per TS38.212's convention
// for an undecodable short block.
func Detect(soft []llr.LLR, k, qm int) ([]uint8, bool) {
	if k == 0 || k > MaxK {
		panic("shortblock: k must be 1..11 bits")
	}
	switch k {
	case 1:
		return detect1(soft, qm)
	case 2:
		return detect2(soft, qm)
	default:
		return detect311(soft, k, qm)
	}
}

// encode1 builds the Qm-long K=1 pattern: the single message bit, followed
// by a repeat-placeholder and then fixed-one placeholders out to qm, per
// encode_1.
func encode1(bit uint8, qm int) []uint8 {
	out := make([]uint8, qm)
	for i := range out {
		out[i] = placeholderOne
	}
	out[0] = bit
	if len(out) > 1 {
		out[1] = placeholderRepeat
	}
	return out
}

// encode2 builds the 3*Qm-long K=2 pattern [b0, b1, b0^b1, ...], per
// encode_2's direct (qm=1) and strided (qm>1) index placement.
func encode2(input []uint8, qm int) []uint8 {
	n := 3 * qm
	out := make([]uint8, n)
	for i := range out {
		out[i] = placeholderOne
	}
	c0, c1 := input[0], input[1]
	c2 := c0 ^ c1
	out[0], out[1] = c0, c1
	if n == 3 {
		out[2] = c2
		return out
	}
	step := n / 3
	out[step] = c2
	out[step+1] = c0
	out[2*step] = c1
	out[2*step+1] = c2
	return out
}

// encode311 computes d_i = XOR_n(a_n * basis[i][n]) for 3<=K<=11, per
// encode_3_11.
func encode311(input []uint8) []uint8 {
	out := make([]uint8, N)
	for i := 0; i < N; i++ {
		var acc uint8
		for n, b := range input {
			if b == 1 {
				acc ^= basis[i][n]
			}
		}
		out[i] = acc
	}
	return out
}

// cyclicRepeat fills out by repeating in cyclically, per rate_match.
func cyclicRepeat(out, in []uint8) {
	for i := range out {
		out[i] = in[i%len(in)]
	}
}

// rateDematchCombine inverts cyclicRepeat over soft LLR values: it copies
// the first len(out) values of in, then adds each subsequent len(out)-sized
// block into out (log-domain soft combining of repeated transmissions of
// the same bit), per rate_dematch.
func rateDematchCombine(out, in []llr.LLR) {
	nofCopy := len(in)
	if len(out) < nofCopy {
		nofCopy = len(out)
	}
	copy(out[:nofCopy], in[:nofCopy])
	if len(in) <= len(out) {
		for i := nofCopy; i < len(out); i++ {
			out[i] = llr.Zero
		}
		return
	}
	rest := in[len(out):]
	for len(rest) > 0 {
		blockSize := len(out)
		if len(rest) < blockSize {
			blockSize = len(rest)
		}
		for i := 0; i < blockSize; i++ {
			out[i] = out[i].Add(rest[i])
		}
		rest = rest[blockSize:]
	}
}

// interleaveBits/deinterleaveLLR mirror internal/ratematch's Qm-wide bit
// interleaver exactly (spec.md §4.5: "the same Qm-bit interleaver as
// LDPC"). The algorithm is duplicated rather than imported to keep
// internal/ratematch and internal/shortblock as independent leaves under
// the root package, instead of introducing a dependency between two
// unrelated codec internals for an eight-line loop.
func interleaveBits(out, in []uint8, qm int) {
	if qm <= 1 {
		copy(out, in)
		return
	}
	rows := len(in) / qm
	idx := 0
	for col := 0; col < qm; col++ {
		for row := 0; row < rows; row++ {
			out[idx] = in[row*qm+col]
			idx++
		}
	}
}

func deinterleaveLLR(out, in []llr.LLR, qm int) {
	if qm <= 1 {
		copy(out, in)
		return
	}
	rows := len(in) / qm
	idx := 0
	for col := 0; col < qm; col++ {
		for row := 0; row < rows; row++ {
			out[row*qm+col] = in[idx]
			idx++
		}
	}
}

func detect1(soft []llr.LLR, qm int) ([]uint8, bool) {
	tmp := make([]llr.LLR, qm)
	rateDematchCombine(tmp, soft)
	// The reference detector always reports success for K=1: a single
	// symbol (let alone one bit) is not enough for a meaningful GLRT, so
	// it skips the threshold test entirely for this case.
	return []uint8{tmp[0].HardDecision()}, true
}

func detect2(soft []llr.LLR, qm int) ([]uint8, bool) {
	n := 3 * qm
	tmp := make([]llr.LLR, n)
	rateDematchCombine(tmp, soft)

	var llrInt [3]int
	if n == 3 {
		for i := 0; i < 3; i++ {
			llrInt[i] = int(tmp[i])
		}
	} else {
		step := n/3 - 2
		llrInt[0] = int(tmp[0]) + int(tmp[step+3])
		llrInt[1] = int(tmp[1]) + int(tmp[2*step+4])
		llrInt[2] = int(tmp[step+2]) + int(tmp[2*step+5])
	}

	table2 := [4][3]int{{1, 1, 1}, {-1, 1, -1}, {1, -1, -1}, {-1, -1, 1}}
	maxIdx := 0
	maxMetric := -1 << 30
	for idx, row := range table2 {
		metric := llrInt[0]*row[0] + llrInt[1]*row[1] + llrInt[2]*row[2]
		if metric > maxMetric {
			maxMetric = metric
			maxIdx = idx
		}
	}
	out := []uint8{uint8(maxIdx & 1), uint8((maxIdx >> 1) & 1)}

	metricSq := float64(maxMetric) * float64(maxMetric)
	normSqr := 0
	for _, v := range llrInt {
		normSqr += v * v
	}
	// GLRT metric for the 3-symbol case: 2*max^2 / (3*||llr||^2 - max^2).
	glrt := 2.0 * metricSq / (3.0*float64(normSqr) - metricSq)
	ok := glrt > thresholds[1]
	if !ok {
		out[0], out[1] = 1, 1
	}
	return out, ok
}

func detect311(soft []llr.LLR, k, qm int) ([]uint8, bool) {
	e := len(soft)
	deint := soft
	if e%qm == 0 {
		deint = make([]llr.LLR, e)
		deinterleaveLLR(deint, soft, qm)
	}

	tmp := make([]llr.LLR, N)
	rateDematchCombine(tmp, deint)

	// TS38.212's detector only needs to search the 2^(K-1) even-valued
	// messages (message bit 0 fixed to zero): basis row 0 is all-ones, so
	// the odd-message codeword is always the bit-complement (sign flip in
	// +-1 space) of its even counterpart, and the sign of the best
	// correlation recovers bit 0 directly.
	nofCandidates := 1 << uint(k-1)
	candidate := make([]uint8, k)
	maxIdx := 0
	maxMetric := 0
	var bit0 uint8
	for idx := 0; idx < nofCandidates; idx++ {
		candidate[0] = 0
		for n := 1; n < k; n++ {
			candidate[n] = uint8((idx >> uint(n-1)) & 1)
		}
		codeword := encode311(candidate)

		var metric int
		for i, c := range codeword {
			v := int(tmp[i])
			if c == 0 {
				metric += v
			} else {
				metric -= v
			}
		}
		abs := metric
		if abs < 0 {
			abs = -abs
		}
		if abs > maxMetric {
			maxMetric = abs
			maxIdx = idx
			if metric < 0 {
				bit0 = 1
			} else {
				bit0 = 0
			}
		}
	}

	msgVal := 2*maxIdx + int(bit0)
	msg := make([]uint8, k)
	for n := 0; n < k; n++ {
		msg[n] = uint8((msgVal >> uint(n)) & 1)
	}

	metricSq := float64(maxMetric) * float64(maxMetric)
	normSqr := 0.0
	for _, v := range tmp {
		fv := float64(v)
		normSqr += fv * fv
	}
	// GLRT metric for the 32-bit case: (N-1)*max^2 / (N*||llr||^2 - max^2).
	glrt := float64(N-1) * metricSq / (float64(N)*normSqr - metricSq)
	ok := glrt > thresholds[k-1]
	if !ok {
		for i := range msg {
			msg[i] = 1
		}
	}
	return msg, ok
}
