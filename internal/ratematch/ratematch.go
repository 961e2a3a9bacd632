// Package ratematch implements the LDPC rate matcher and rate dematcher of
// TS 38.212 §5.4.2: circular-buffer bit selection, bit interleaving per
// modulation order, and (for the dematcher) soft HARQ combining.
//
// Grounded on ldpc_rate_matcher_impl.cpp.
package ratematch

import (
	"github.com/nrphy/ldpc/internal/llr"
)

// shiftFactorBG1 and shiftFactorBG2 give the k0 starting-offset factor
// (multiplied by ncb in StartingOffset) per redundancy version, indexed [rv], per TS38.212 Table 5.4.2.1-2.
var (
	shiftFactorBG1 = [4]int{0, 17, 33, 56}
	shiftFactorBG2 = [4]int{0, 13, 25, 43}
)

// StartingOffset returns k0, the circular-buffer bit index the selection
// window begins at for redundancy version rv.
func StartingOffset(bg1 bool, rv int, z int, ncb int) int {
	var table [4]int
	if bg1 {
		table = shiftFactorBG1
	} else {
		table = shiftFactorBG2
	}
	return (table[rv] * ncb) / (ncb / z) % ncb
}

// Matcher selects E bits from a circular buffer of codeword bits starting
// at k0 and wrapping modulo Ncb, then interleaves them in groups of Qm
// (the modulation order), per select_bits/interleave_bits_Qm.
type Matcher struct{}

// NewMatcher returns a rate matcher.
func NewMatcher() *Matcher { return &Matcher{} }

// Match reads codeword bits from src (via the caller-supplied read function,
// letting the caller read from a Buffer instead of passing a full slice),
// selects E output bits starting at k0 modulo ncb, skipping positions
// isFiller reports as filler bits (TS38.212's "<NULL>" placeholder, never
// transmitted -- a circular-buffer position, not a bit value, since the
// encoder buffer itself only ever holds real 0/1 bits), and interleaves the
// selection into Qm-wide columns. isFiller may be nil, meaning no position
// is a filler bit.
func (m *Matcher) Match(out []uint8, read func(i int) uint8, ncb, k0, e, qm int, isFiller func(pos int) bool) {
	selected := make([]uint8, 0, e)
	i := k0
	for len(selected) < e {
		pos := i % ncb
		if isFiller == nil || !isFiller(pos) {
			selected = append(selected, read(pos))
		}
		i++
	}
	interleave(out, selected, qm)
}

// interleave writes selected into out in TS38.212's bit-interleaver order:
// out is read column-major from a Qm-row matrix filled row-major from
// selected.
func interleave(out, selected []uint8, qm int) {
	if qm <= 1 {
		copy(out, selected)
		return
	}
	rows := len(selected) / qm
	idx := 0
	for col := 0; col < qm; col++ {
		for row := 0; row < rows; row++ {
			out[idx] = selected[row*qm+col]
			idx++
		}
	}
}

// Dematcher reverses bit interleaving and circular-buffer selection for
// soft (LLR) values, combining repeated positions across HARQ
// retransmissions by addition (the standard log-domain soft-combining rule
// for independent received LLRs of the same coded bit).
type Dematcher struct{}

// NewDematcher returns a rate dematcher.
func NewDematcher() *Dematcher { return &Dematcher{} }

// Dematch deinterleaves in (E LLRs, already in transmission order) and
// accumulates them into buffer (length ncb, the full circular buffer for
// one codeblock), starting at k0 and wrapping modulo ncb, adding into any
// prior soft values already present (HARQ combining across retransmissions
// of the same codeblock). Positions never selected keep their buffer value
// unmodified. Positions filler reports as filler bits are skipped without
// consuming an input LLR and are left unchanged; the root package's
// RateDematch sets them to +inf on a fresh transmission.
func (d *Dematcher) Dematch(buffer []llr.LLR, in []llr.LLR, ncb, k0, qm int, filler func(pos int) bool) {
	deselected := make([]llr.LLR, len(in))
	deinterleave(deselected, in, qm)

	i := k0
	j := 0
	for j < len(deselected) {
		pos := i % ncb
		if filler != nil && filler(pos) {
			i++
			continue
		}
		buffer[pos] = buffer[pos].Add(deselected[j])
		j++
		i++
	}
}

// deinterleave inverts interleave: out is filled row-major by reading in
// column-major.
func deinterleave(out, in []llr.LLR, qm int) {
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
