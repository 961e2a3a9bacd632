package segmenter

import (
	"testing"

	"github.com/nrphy/ldpc/internal/crc"
)

func TestComputeParamsSingleBlock(t *testing.T) {
	p := ComputeParams(1000, 0.5, 2000, 2, 1)
	if p.NumCodeblocks != 1 {
		t.Fatalf("small payload should not require segmentation, got %d codeblocks", p.NumCodeblocks)
	}
}

func TestComputeParamsMultiBlock(t *testing.T) {
	p := ComputeParams(20000, 0.9, 40000, 2, 1)
	if p.NumCodeblocks <= 1 {
		t.Fatalf("large high-rate payload should require segmentation, got %d codeblocks", p.NumCodeblocks)
	}
}

func TestComputeParamsPanicsOnIndivisibleG(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected a panic when g is not divisible by qm*lLayers")
		}
	}()
	ComputeParams(1000, 0.5, 2001, 2, 1)
}

func TestCodeblockLengthsSumToG(t *testing.T) {
	for _, tc := range []struct{ c, g, qm, l int }{
		{1, 1200, 2, 1},
		{2, 4000, 4, 1},
		{3, 9000, 6, 1},
		{5, 40000, 2, 2},
	} {
		ers := codeblockLengths(tc.c, tc.g, tc.qm, tc.l)
		if len(ers) != tc.c {
			t.Fatalf("c=%d: got %d lengths", tc.c, len(ers))
		}
		sum := 0
		for _, e := range ers {
			if e%(tc.qm*tc.l) != 0 {
				t.Fatalf("c=%d g=%d: E_r=%d not a multiple of qm*lLayers", tc.c, tc.g, e)
			}
			sum += e
		}
		if sum != tc.g {
			t.Fatalf("c=%d g=%d: E_r values sum to %d, want %d", tc.c, tc.g, sum, tc.g)
		}
		// every value differs from every other by at most one unit (floor/ceil split)
		for i := 1; i < len(ers); i++ {
			diff := ers[i] - ers[0]
			if diff < 0 {
				diff = -diff
			}
			if diff > tc.qm*tc.l {
				t.Fatalf("c=%d: E_r values spread too widely: %v", tc.c, ers)
			}
		}
	}
}

func TestSegmentProducesCRCCheckableBlocks(t *testing.T) {
	payload := make([]uint8, 20000)
	for i := range payload {
		payload[i] = uint8(i % 2)
	}
	params := ComputeParams(len(payload), 0.9, 40000, 2, 1)
	if params.NumCodeblocks <= 1 {
		t.Fatal("expected multi-codeblock segmentation for this test to be meaningful")
	}

	s := NewTxSegmenter()
	blocks := s.Segment(payload, params)
	if len(blocks) != params.NumCodeblocks {
		t.Fatalf("got %d codeblocks, want %d", len(blocks), params.NumCodeblocks)
	}

	calc := crc.New(crc.CRC24B)
	kTotal := params.BG.K() * params.Z
	for i, cb := range blocks {
		if len(cb) != kTotal {
			t.Fatalf("codeblock %d: length %d, want %d", i, len(cb), kTotal)
		}
		payloadLen := params.PayloadPerBlock + 24
		if !crc.Check(calc, cb[:payloadLen]) {
			t.Fatalf("codeblock %d: CRC24B check failed", i)
		}
	}
}

func TestReadCodeblockMatchesSegment(t *testing.T) {
	payload := make([]uint8, 9000)
	for i := range payload {
		payload[i] = uint8((i * 3) % 2)
	}
	params := ComputeParams(len(payload), 0.5, 12000, 2, 1)
	if params.NumCodeblocks <= 1 {
		t.Fatal("expected multi-codeblock segmentation for this test to be meaningful")
	}

	s := NewTxSegmenter()
	want := s.Segment(payload, params)

	kTotal := params.BG.K() * params.Z
	for c := 0; c < params.NumCodeblocks; c++ {
		got := make([]uint8, kTotal)
		s.ReadCodeblock(got, payload, c, params)
		for i := range got {
			if got[i] != want[c][i] {
				t.Fatalf("codeblock %d: bit %d = %d, want %d", c, i, got[i], want[c][i])
			}
		}
	}
}

func TestReadCodeblockPanicsOnBadIndex(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected a panic for an out-of-range codeblock index")
		}
	}()
	params := ComputeParams(1000, 0.5, 2000, 2, 1)
	s := NewTxSegmenter()
	dest := make([]uint8, params.BG.K()*params.Z)
	s.ReadCodeblock(dest, make([]uint8, 1000), params.NumCodeblocks, params)
}
