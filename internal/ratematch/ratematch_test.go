package ratematch

import (
	"testing"

	"github.com/nrphy/ldpc/internal/llr"
)

func TestInterleaveDeinterleaveRoundTrip(t *testing.T) {
	selected := []uint8{1, 0, 1, 1, 0, 0, 1, 0, 1, 0, 1, 1}
	for _, qm := range []int{1, 2, 4, 6} {
		if len(selected)%qm != 0 {
			continue
		}
		out := make([]uint8, len(selected))
		interleave(out, selected, qm)

		llrs := make([]llr.LLR, len(out))
		for i, b := range out {
			llrs[i] = llr.FromHardBit(b, 50)
		}
		back := make([]llr.LLR, len(llrs))
		deinterleave(back, llrs, qm)

		for i := range selected {
			if back[i].HardDecision() != selected[i] {
				t.Fatalf("qm=%d: bit %d round-trip mismatch", qm, i)
			}
		}
	}
}

func TestMatchSkipsFillerPositions(t *testing.T) {
	src := []uint8{1, 0, 0, 1, 0, 1} // positions 1 and 4 are filler, content irrelevant
	read := func(i int) uint8 { return src[i%len(src)] }
	isFiller := func(pos int) bool { return pos == 1 || pos == 4 }
	out := make([]uint8, 4)
	m := NewMatcher()
	m.Match(out, read, len(src), 0, 4, 1, isFiller)
	want := []uint8{1, 0, 1, 1}
	for i := range want {
		if out[i] != want[i] {
			t.Fatalf("index %d: got %d want %d", i, out[i], want[i])
		}
	}
}

func TestMatchWithNilIsFillerSelectsEverything(t *testing.T) {
	src := []uint8{1, 0, 1, 1}
	read := func(i int) uint8 { return src[i%len(src)] }
	out := make([]uint8, 4)
	NewMatcher().Match(out, read, len(src), 0, 4, 1, nil)
	for i := range src {
		if out[i] != src[i] {
			t.Fatalf("index %d: got %d want %d", i, out[i], src[i])
		}
	}
}

func TestDematchCombinesAcrossRetransmissions(t *testing.T) {
	ncb := 8
	buffer := make([]llr.LLR, ncb)
	d := NewDematcher()

	first := []llr.LLR{llr.FromHardBit(0, 10), llr.FromHardBit(0, 10), llr.FromHardBit(0, 10), llr.FromHardBit(0, 10)}
	d.Dematch(buffer, first, ncb, 0, 1, nil)

	second := []llr.LLR{llr.FromHardBit(0, 10), llr.FromHardBit(0, 10), llr.FromHardBit(0, 10), llr.FromHardBit(0, 10)}
	d.Dematch(buffer, second, ncb, 0, 1, nil)

	if buffer[0] <= first[0] {
		t.Fatal("a second transmission of the same bit should strengthen its LLR magnitude")
	}
}

func TestDematchSkipsFillerPositionsWithoutConsumingInput(t *testing.T) {
	ncb := 6
	buffer := make([]llr.LLR, ncb)
	isFiller := func(pos int) bool { return pos == 2 }
	in := []llr.LLR{llr.FromHardBit(0, 10), llr.FromHardBit(1, 10), llr.FromHardBit(0, 10), llr.FromHardBit(1, 10), llr.FromHardBit(0, 10)}

	d := NewDematcher()
	d.Dematch(buffer, in, ncb, 0, 1, isFiller)

	// Walking k0=0 with position 2 skipped: in[0]->pos0, in[1]->pos1,
	// (pos2 skipped), in[2]->pos3, in[3]->pos4, in[4]->pos5.
	if buffer[2] != llr.Zero {
		t.Fatalf("filler position 2 should be untouched, got %v", buffer[2])
	}
	if buffer[3].HardDecision() != 0 {
		t.Fatalf("position 3 should carry in[2]'s value (bit 0), got %v", buffer[3])
	}
}

func TestStartingOffsetZeroForRV0(t *testing.T) {
	if got := StartingOffset(true, 0, 64, 6400); got != 0 {
		t.Fatalf("RV0 starting offset should always be 0, got %d", got)
	}
}
