package ldpcdec

import (
	"testing"

	"github.com/nrphy/ldpc/internal/crc"
	"github.com/nrphy/ldpc/internal/graph"
	"github.com/nrphy/ldpc/internal/ldpcenc"
	"github.com/nrphy/ldpc/internal/llr"
)

// encodeToLLRs builds a confident, noise-free LLR vector for every bit of an
// encoded codeblock, used as the decoder's channel input.
func encodeToLLRs(t *testing.T, bg graph.BaseGraph, z int, input []uint8) []llr.LLR {
	t.Helper()
	enc := ldpcenc.NewEncoder()
	buf := enc.Encode(input, ldpcenc.Config{BG: bg, Z: z})

	k := bg.K()
	nFull := bg.NFull()
	soft := make([]llr.LLR, nFull*z)

	for i := 0; i < 2*z; i++ {
		soft[i] = llr.PosInf // shortened bits, always known-zero
	}
	for i := 0; i < k*z; i++ {
		soft[2*z+i] = llr.FromHardBit(input[i], 100)
	}
	dest := make([]uint8, buf.CodeblockLength())
	buf.Write(dest, 0)
	for i := range dest {
		soft[2*z+i] = llr.FromHardBit(dest[i], 100)
	}
	return soft
}

func TestDecodeReproducesSystematicBitsOnCleanChannel(t *testing.T) {
	for _, bg := range []graph.BaseGraph{graph.BG1, graph.BG2} {
		z := graph.LiftingSizes[0][0]
		k := bg.K()
		input := make([]uint8, k*z)
		// The leading 2*z bits stay zero: encodeToLLRs marks them known-zero.
		for i := 2 * z; i < len(input); i++ {
			input[i] = uint8((i * 3) % 2)
		}

		soft := encodeToLLRs(t, bg, z, input)

		d := NewDecoder()
		out := make([]uint8, k*z)
		res := d.Decode(soft, out, Config{BG: bg, Z: z, MaxIterations: 3})

		if res.Iterations == 0 {
			t.Fatalf("bg=%v: decoder ran zero iterations", bg)
		}
		mismatches := 0
		for i := range input {
			if out[i] != input[i] {
				mismatches++
			}
		}
		if mismatches > 0 {
			t.Fatalf("bg=%v: %d/%d systematic bits flipped on a noise-free channel", bg, mismatches, len(input))
		}
	}
}

func TestDecodeStopsEarlyOnCRCPass(t *testing.T) {
	bg := graph.BG2
	z := graph.LiftingSizes[0][3] // 16: K*Z must exceed the 24 CRC bits
	k := bg.K()

	calc := crc.New(crc.CRC24A)
	payload := make([]uint8, k*z-24)
	// The leading 2*z bits stay zero: encodeToLLRs marks them known-zero.
	for i := 2 * z; i < len(payload); i++ {
		payload[i] = uint8((i * 5) % 2)
	}
	input := crc.Attach(calc, payload)

	soft := encodeToLLRs(t, bg, z, input)

	d := NewDecoder()
	out := make([]uint8, k*z)
	res := d.Decode(soft, out, Config{BG: bg, Z: z, MaxIterations: 10, CRC: calc})

	if !res.CRCPass {
		t.Fatal("expected the CRC to pass on a noise-free channel")
	}
	if res.Iterations >= 10 {
		t.Fatal("expected CRC-gated early termination before the iteration budget was exhausted")
	}
}
