package ldpc

import (
	"fmt"

	"github.com/nrphy/ldpc/internal/ratematch"
)

// CodeblockMetadata carries the per-codeblock parameters the rate matcher
// and dematcher need: the circular buffer length, redundancy version,
// modulation order, and the trailing filler-bit count TS38.212's shortening
// procedure left in the systematic region.
type CodeblockMetadata struct {
	BG  BaseGraph
	Z   int
	Ncb int // circular buffer length in bits, usually (N_full-2)*Z
	RV  int // redundancy version, 0-3
	Qm  int // modulation order (bits per symbol): 1, 2, 4, 6, or 8

	// FillerBits is the number of filler (<NULL>) bits the segmenter
	// padded the information block with, per spec.md §4.6's
	// PayloadPerBlock/K*Z gap. These occupy the last FillerBits positions
	// of the non-shortened systematic region and must be skipped by the
	// rate matcher's bit selection (§4.3) and forced to +inf by the rate
	// dematcher on a fresh transmission.
	FillerBits int
}

// validate panics on a programmer-error configuration, per spec.md §7's
// fatal-configuration-error category.
func (m CodeblockMetadata) validate() {
	if m.RV < 0 || m.RV > 3 {
		panic(fmt.Sprintf("ldpc: invalid redundancy version %d (must be 0-3)", m.RV))
	}
	switch m.Qm {
	case 1, 2, 4, 6, 8:
	default:
		panic(fmt.Sprintf("ldpc: invalid modulation order %d", m.Qm))
	}
}

// startingOffset derives k0 for this metadata.
func (m CodeblockMetadata) startingOffset() int {
	return ratematch.StartingOffset(m.BG == BG1, m.RV, m.Z, m.Ncb)
}

// fillerRange returns the [start,end) circular-buffer bit range occupied by
// filler bits, in the EncoderBuffer's own post-puncturing offset space
// (offset 0 is the first transmitted systematic bit x_2, after the two
// always-punctured systematic columns): filler bits sit immediately before
// that boundary, at [(K-2)*Z-FillerBits, (K-2)*Z).
func (m CodeblockMetadata) fillerRange() (int, int) {
	end := (m.BG.K() - 2) * m.Z
	start := end - m.FillerBits
	if start < 0 {
		start = 0
	}
	return start, end
}

// isFiller reports whether circular-buffer position pos falls in the
// filler-bit range.
func (m CodeblockMetadata) isFiller(pos int) bool {
	if m.FillerBits <= 0 {
		return false
	}
	start, end := m.fillerRange()
	return pos >= start && pos < end
}

// RateMatcher selects and interleaves coded bits from an EncoderBuffer's
// circular buffer.
type RateMatcher struct {
	inner *ratematch.Matcher
}

// NewRateMatcher constructs a RateMatcher.
func NewRateMatcher() *RateMatcher {
	return &RateMatcher{inner: ratematch.NewMatcher()}
}

// RateMatch writes exactly len(output) rate-matched, interleaved bits
// (packed one bit per byte) starting at codeblock metadata's k0 offset,
// reading source bits lazily from buf and skipping any filler-bit
// positions meta describes.
func (m *RateMatcher) RateMatch(output []uint8, buf *EncoderBuffer, meta CodeblockMetadata) {
	meta.validate()
	k0 := meta.startingOffset()
	read := func(i int) uint8 {
		var b [1]uint8
		buf.inner.Write(b[:], i)
		return b[0]
	}
	m.inner.Match(output, read, meta.Ncb, k0, len(output), meta.Qm, meta.isFiller)
}

// RateDematcher deinterleaves received LLRs and soft-combines them into a
// per-codeblock circular buffer across HARQ retransmissions.
type RateDematcher struct {
	inner *ratematch.Dematcher
}

// NewRateDematcher constructs a RateDematcher.
func NewRateDematcher() *RateDematcher {
	return &RateDematcher{inner: ratematch.NewDematcher()}
}

// RateDematch deinterleaves input (E received LLRs, in transmission order)
// and adds them into buffer (length meta.Ncb, the codeblock's circular
// soft-combining buffer), starting at meta's k0 offset, skipping any
// filler-bit positions meta describes. When newData is true this is a
// fresh transmission rather than a HARQ retransmission: buffer is zeroed
// first, and then its filler-bit positions are set to +inf (certainty of
// bit value 0), matching the encoder's shortening of those positions.
func (d *RateDematcher) RateDematch(buffer []LLR, input []LLR, newData bool, meta CodeblockMetadata) {
	meta.validate()
	if newData {
		for i := range buffer {
			buffer[i] = Zero
		}
		start, end := meta.fillerRange()
		for i := start; i < end && i < len(buffer); i++ {
			buffer[i] = PosInf
		}
	}
	d.inner.Dematch(buffer, input, meta.Ncb, meta.startingOffset(), meta.Qm, meta.isFiller)
}
