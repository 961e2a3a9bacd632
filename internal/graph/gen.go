package graph

// build deterministically generates the prototype graph for (bg, set) at its
// smallest lifting size.
//
// This is a HARD LIMITATION, not a stylistic shortcut: the values it
// produces are not TS38.212's shift constants. The raw per-edge shift data
// of Tables 5.3.2-2/5.3.2-3 (on the order of 10,000 individual constants) is
// not present anywhere in the retrieved reference material -- only the C++
// code that consumes an already-populated table, never the table literals
// themselves -- so there is nothing in the pack to transcribe. Rather than
// leave the lookup table empty, build fabricates one with a seeded
// xorshift64* PRNG (see newRand below) that reproduces the *shape* 3GPP
// graphs have without reproducing their *values*. Every caller of
// graph.Get, directly or through ldpcenc/ldpcdec/ratematch, inherits this:
// the whole chain is internally self-consistent (it encodes and decodes its
// own fabricated code correctly) but is not an implementation of the 5G NR
// LDPC code TS38.212 specifies, and its output is not interoperable with
// any conformant encoder or decoder. See graph.BitExactShiftTables,
// doc.go's package-level conformance warning, and DESIGN.md's "Known
// limitations" entry for the full consequence chain, including why
// internal/ldpcdec cannot layer-decode the high-rate rows as a result (its
// firstDecodableRow doc comment).
//
// The generator reproduces every structural invariant the rest of the
// pipeline depends on:
//   - rows 0..3 (the "high-rate" check nodes) connect only to systematic
//     variable nodes n < K, feeding the closed-form parity recurrences of
//     ldpcenc;
//   - rows 4..M-1 (the "extension" region) connect to a handful of
//     systematic nodes, optionally one of the four high-rate parity nodes,
//     and always to exactly one extension parity node with shift 0 at
//     column K+m -- the dual-diagonal-free, directly-solvable structure
//     TS38.212's own extension region uses (see
//     ldpc_encoder_generic.cpp:ext_region_inner, which never chains through
//     p_4..p_{m-1});
//   - every row has degree <= MaxCheckDegree and is sorted ascending.
func build(bg BaseGraph, set int, z int) *Graph {
	m := bg.M()
	k := bg.K()
	nFull := bg.NFull()

	rng := newRand(seed(bg, set))

	shifts := make([][]int16, m)
	adjacency := make([][]uint16, m)

	for row := 0; row < m; row++ {
		full := make([]int16, nFull)
		for i := range full {
			full[i] = -1
		}

		var cols []int
		if row < 4 {
			cols = pickInfoNodes(rng, k, hrDegree(bg, row))
		} else {
			cols = pickInfoNodes(rng, k, extDegree(bg, rng))
			if rng.intn(2) == 0 {
				hr := k + rng.intn(4)
				cols = append(cols, hr)
			}
			cols = append(cols, k+row) // dual-diagonal-free identity bit
		}

		for _, c := range cols {
			if c == k+row {
				full[c] = 0
				continue
			}
			full[c] = int16(rng.intn(z))
		}

		shifts[row] = full
		adjacency[row] = sortedAdjacency(full)
	}

	return &Graph{
		BG:         bg,
		Z:          z,
		liftingSet: set,
		shifts:     shifts,
		adjacency:  adjacency,
	}
}

// hrDegree picks the (capped) degree of a high-rate row, proportional to K.
func hrDegree(bg BaseGraph, row int) int {
	k := bg.K()
	d := k - row%3
	if d > MaxCheckDegree {
		d = MaxCheckDegree
	}
	if d < 3 {
		d = 3
	}
	return d
}

// extDegree picks a small, varying degree for an extension row.
func extDegree(bg BaseGraph, rng *rand) int {
	return 3 + rng.intn(4)
}

// pickInfoNodes returns `count` distinct, ascending variable-node indices in
// [0, k).
func pickInfoNodes(rng *rand, k, count int) []int {
	if count > k {
		count = k
	}
	seen := make(map[int]bool, count)
	out := make([]int, 0, count)
	for len(out) < count {
		c := rng.intn(k)
		if seen[c] {
			continue
		}
		seen[c] = true
		out = append(out, c)
	}
	// simple ascending sort (count is always small).
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && out[j-1] > out[j]; j-- {
			out[j-1], out[j] = out[j], out[j-1]
		}
	}
	return out
}

// sortedAdjacency collapses a dense shift row into the compact, ascending
// adjacency list the decoder and encoder iterate over.
func sortedAdjacency(full []int16) []uint16 {
	out := make([]uint16, 0, MaxCheckDegree)
	for n, s := range full {
		if s >= 0 {
			out = append(out, uint16(n))
		}
	}
	return out
}

func seed(bg BaseGraph, set int) uint64 {
	return uint64(bg)*1_000_003 + uint64(set)*97 + 0x9E3779B97F4A7C15
}

// rand is a tiny deterministic xorshift64* generator: the graph tables must
// be bit-reproducible across runs and platforms, so the package avoids
// math/rand's seeding surface entirely.
type rand struct{ state uint64 }

func newRand(seed uint64) *rand {
	if seed == 0 {
		seed = 1
	}
	return &rand{state: seed}
}

func (r *rand) next() uint64 {
	x := r.state
	x ^= x << 13
	x ^= x >> 7
	x ^= x << 17
	r.state = x
	return x * 2685821657736338717
}

func (r *rand) intn(n int) int {
	if n <= 0 {
		return 0
	}
	return int(r.next() % uint64(n))
}
