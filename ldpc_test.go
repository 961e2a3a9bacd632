package ldpc_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/nrphy/ldpc"
)

func TestEndToEndEncodeRateMatchDecode(t *testing.T) {
	bg := ldpc.BG2
	z := 10 // one of the 51 defined lifting sizes
	k := 10 // BG2.K() = NFull(52) - M(42)

	tb := NewTxInput(k, z)

	enc := ldpc.NewEncoder()
	buf := enc.Encode(tb, ldpc.EncoderConfig{BG: bg, Z: z})

	meta := ldpc.CodeblockMetadata{BG: bg, Z: z, Ncb: buf.Len(), RV: 0, Qm: 1}
	coded := make([]uint8, buf.Len())
	ldpc.NewRateMatcher().RateMatch(coded, buf, meta)

	softChannel := make([]ldpc.LLR, len(coded))
	for i, b := range coded {
		if b == 0 {
			softChannel[i] = ldpc.LLR(100)
		} else {
			softChannel[i] = ldpc.LLR(-100)
		}
	}

	dematchBuf := make([]ldpc.LLR, buf.Len())
	ldpc.NewRateDematcher().RateDematch(dematchBuf, softChannel, true, meta)

	fullSoft := make([]ldpc.LLR, (bg.NFull())*z)
	for i := 0; i < 2*z; i++ {
		fullSoft[i] = ldpc.PosInf
	}
	copy(fullSoft[2*z:], dematchBuf)

	dec := ldpc.NewDecoder()
	out := make([]uint8, k*z)
	res := dec.Decode(out, fullSoft, ldpc.DecoderConfig{BG: bg, Z: z, MaxIterations: 3})

	if res.UsedIterations == 0 {
		t.Fatal("decode ran zero iterations")
	}
	if diff := cmp.Diff(tb, out); diff != "" {
		t.Fatalf("decoded systematic bits differ from the transmitted ones (-want +got):\n%s", diff)
	}
}

func TestShortBlockRoundTrip(t *testing.T) {
	payload := []uint8{1, 1, 0, 1, 0}
	qm := 2
	e := ldpc.ShortBlockLen + 3*qm
	codeword := ldpc.EncodeShortBlock(payload, qm, e)
	if len(codeword) != e {
		t.Fatalf("codeword length %d, want %d", len(codeword), e)
	}

	soft := make([]ldpc.LLR, len(codeword))
	for i, b := range codeword {
		if b == 0 {
			soft[i] = ldpc.LLR(100)
		} else {
			soft[i] = ldpc.LLR(-100)
		}
	}

	got, ok := ldpc.DecodeShortBlock(soft, len(payload), qm)
	if !ok {
		t.Fatal("detection unexpectedly failed on a clean channel")
	}
	if diff := cmp.Diff(payload, got); diff != "" {
		t.Fatalf("recovered payload differs from original (-want +got):\n%s", diff)
	}
}

func TestEndToEndWithQmRVAndFillerBits(t *testing.T) {
	bg := ldpc.BG2
	z := 8
	k := bg.K() // 10
	fillerBits := z

	tb := NewTxInput(k, z)
	for i := len(tb) - fillerBits; i < len(tb); i++ {
		tb[i] = 0 // the shortened systematic padding filler bits occupy
	}

	enc := ldpc.NewEncoder()
	buf := enc.Encode(tb, ldpc.EncoderConfig{BG: bg, Z: z})

	fillerStart := (k-2)*z - fillerBits
	fillerEnd := (k - 2) * z

	for _, rv := range []int{1, 2, 3} {
		for _, qm := range []int{2, 4, 6} {
			meta := ldpc.CodeblockMetadata{BG: bg, Z: z, Ncb: buf.Len(), RV: rv, Qm: qm, FillerBits: fillerBits}

			e := ((buf.Len() - fillerBits) / qm) * qm
			coded := make([]uint8, e)
			ldpc.NewRateMatcher().RateMatch(coded, buf, meta)

			softChannel := make([]ldpc.LLR, len(coded))
			for i, b := range coded {
				if b == 0 {
					softChannel[i] = ldpc.LLR(100)
				} else {
					softChannel[i] = ldpc.LLR(-100)
				}
			}

			dematchBuf := make([]ldpc.LLR, buf.Len())
			ldpc.NewRateDematcher().RateDematch(dematchBuf, softChannel, true, meta)

			for i := fillerStart; i < fillerEnd; i++ {
				if dematchBuf[i] != ldpc.PosInf {
					t.Fatalf("rv=%d qm=%d: filler position %d = %v, want +inf", rv, qm, i, dematchBuf[i])
				}
			}

			fullSoft := make([]ldpc.LLR, bg.NFull()*z)
			for i := 0; i < 2*z; i++ {
				fullSoft[i] = ldpc.PosInf
			}
			copy(fullSoft[2*z:], dematchBuf)

			dec := ldpc.NewDecoder()
			out := make([]uint8, k*z)
			res := dec.Decode(out, fullSoft, ldpc.DecoderConfig{BG: bg, Z: z, MaxIterations: 20})
			if res.UsedIterations == 0 {
				t.Fatalf("rv=%d qm=%d: decode ran zero iterations", rv, qm)
			}
			if diff := cmp.Diff(tb, out); diff != "" {
				t.Fatalf("rv=%d qm=%d: decoded bits differ from transmitted ones (-want +got):\n%s", rv, qm, diff)
			}
		}
	}
}

func TestRateMatchPanicsOnInvalidRV(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected a panic for an out-of-range redundancy version")
		}
	}()
	meta := ldpc.CodeblockMetadata{BG: ldpc.BG2, Z: 8, Ncb: 400, RV: 4, Qm: 2}
	ldpc.NewRateMatcher().RateMatch(make([]uint8, 4), &ldpc.EncoderBuffer{}, meta)
}

func TestSegmentTxProducesCheckableCodeblocksWithVariableERs(t *testing.T) {
	payload := make([]uint8, 9000)
	for i := range payload {
		payload[i] = uint8((i * 5) % 2)
	}

	seg := ldpc.NewTxSegmenter(nil, nil, nil)
	tbWithCRC := seg.TransportBlockCRC24A(payload)

	cfg := ldpc.SegmentConfig{CodeRate: 0.5, G: 12000, Qm: 2, LLayers: 1}
	blocks, params := seg.SegmentTx(tbWithCRC, cfg)
	if params.NumCodeblocks <= 1 {
		t.Fatal("expected multi-codeblock segmentation for this test to be meaningful")
	}
	if len(blocks) != params.NumCodeblocks {
		t.Fatalf("got %d codeblocks, want %d", len(blocks), params.NumCodeblocks)
	}
	if len(params.ERs) != params.NumCodeblocks {
		t.Fatalf("got %d E_r entries, want %d", len(params.ERs), params.NumCodeblocks)
	}
	sum := 0
	for _, e := range params.ERs {
		sum += e
	}
	if sum != cfg.G {
		t.Fatalf("E_r values sum to %d, want G=%d", sum, cfg.G)
	}

	kTotal := params.BG.K() * params.Z
	for c, cb := range blocks {
		if len(cb) != kTotal {
			t.Fatalf("codeblock %d: length %d, want %d", c, len(cb), kTotal)
		}
		dest := make([]uint8, kTotal)
		seg.ReadCodeblock(dest, tbWithCRC, c, params)
		if diff := cmp.Diff(cb, dest); diff != "" {
			t.Fatalf("codeblock %d: ReadCodeblock differs from Segment (-want +got):\n%s", c, diff)
		}
	}
}

// NewTxInput builds a deterministic pseudo-random systematic bit pattern of
// length k*z for use as test input. The leading 2*z bits are always zero:
// they are the shortened systematic positions the decoder assumes are
// known-zero, the same convention the encoder's own doc comment describes.
func NewTxInput(k, z int) []uint8 {
	out := make([]uint8, k*z)
	for i := 2 * z; i < len(out); i++ {
		out[i] = uint8((i*37 + 11) % 2)
	}
	return out
}
