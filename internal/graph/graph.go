// Package graph implements the immutable quasi-cyclic LDPC Tanner graph
// lookup table shared by the encoder and decoder.
//
// Graphs are constructed once, at package init, into a read-only 2x8 table
// (base graph x lifting-set index) and handed out by reference: every
// encoder/decoder instance holds a non-owning pointer into the shared table,
// mirroring the teacher's pattern of a process-wide, read-only lookup
// structure built before first use.
//
// # Not bit-exact to TS 38.212
//
// BitExactShiftTables is false and must stay false until the real
// Table 5.3.2-2/5.3.2-3 shift constants are sourced: the tables this package
// builds are produced by gen.go's seeded structural generator, not
// transcribed from 3GPP. See gen.go's doc comment for what that does and
// does not preserve, and doc.go at the module root for the consequences
// this has for the rest of the pipeline. Treat any code path through this
// package as non-conformant until that constant flips.
package graph

import "fmt"

// BitExactShiftTables reports whether the per-edge shift values returned by
// Get are transcribed from TS 38.212 Tables 5.3.2-2/5.3.2-3. It is false:
// see gen.go. This is deliberately exported so a caller (or a test) can
// assert at runtime that it has not been silently promoted to true without
// the corresponding data actually landing.
const BitExactShiftTables = false

// BaseGraph identifies one of the two 3GPP NR base graphs.
type BaseGraph uint8

const (
	BG1 BaseGraph = iota
	BG2
)

// Structural parameters of the two base graphs (spec.md §3).
const (
	BG1M       = 46
	BG1NFull   = 68
	BG1NShort  = 66
	BG1K       = BG1NFull - BG1M

	BG2M      = 42
	BG2NFull  = 52
	BG2NShort = 50
	BG2K      = BG2NFull - BG2M

	// MaxCheckDegree bounds the adjacency list length of any check node in
	// either base graph.
	MaxCheckDegree = 20

	// NoEdge marks the absence of a connection. Adjacency rows are
	// exact-length slices and carry no terminator.
	NoEdge = 0xFFFF

	// NofLiftingSets is the number of 3GPP lifting-size groups.
	NofLiftingSets = 8
)

// M returns the number of parity-check nodes for bg.
func (bg BaseGraph) M() int {
	if bg == BG1 {
		return BG1M
	}
	return BG2M
}

// NFull returns the number of variable nodes before shortening.
func (bg BaseGraph) NFull() int {
	if bg == BG1 {
		return BG1NFull
	}
	return BG2NFull
}

// NShort returns the number of variable nodes after shortening.
func (bg BaseGraph) NShort() int {
	if bg == BG1 {
		return BG1NShort
	}
	return BG2NShort
}

// K returns the number of systematic information nodes.
func (bg BaseGraph) K() int {
	return bg.NFull() - bg.M()
}

// LiftingSizes enumerates the 51 lifting sizes defined by 3GPP, grouped by
// lifting-set index 0..7 (each row shares a common "base * 2^k" family).
var LiftingSizes = [NofLiftingSets][]int{
	{2, 4, 8, 16, 32, 64, 128, 256},
	{3, 6, 12, 24, 48, 96, 192, 384},
	{5, 10, 20, 40, 80, 160, 320},
	{7, 14, 28, 56, 112, 224},
	{9, 18, 36, 72, 144, 288},
	{11, 22, 44, 88, 176, 352},
	{13, 26, 52, 104, 208},
	{15, 30, 60, 120, 240},
}

// liftingSetOf maps each lifting size to its lifting-set index; it is built
// once from LiftingSizes.
var liftingSetOf = map[int]int{}

func init() {
	for set, sizes := range LiftingSizes {
		for _, z := range sizes {
			liftingSetOf[z] = set
		}
	}
}

// LiftingSetIndex returns the lifting-set index (0..7) of a lifting size Z,
// and false if Z is not one of the 51 defined values.
func LiftingSetIndex(z int) (int, bool) {
	s, ok := liftingSetOf[z]
	return s, ok
}

// Graph is the immutable lifted parity-check matrix for one (base graph,
// lifting size) pair, represented (as in the 3GPP tables) by the set of
// check-to-variable shift values.
type Graph struct {
	BG          BaseGraph
	Z           int
	liftingSet  int
	// shifts[m][n] is the cyclic shift of the edge between check node m and
	// variable node n, or -1 if there is no edge.
	shifts [][]int16
	// adjacency[m] lists, in ascending order, the variable nodes incident to
	// check node m (length <= MaxCheckDegree).
	adjacency [][]uint16
}

// LiftingSet returns the 3GPP lifting-set index (0..7) selecting which of
// the four high-rate parity recurrences applies.
func (g *Graph) LiftingSet() int { return g.liftingSet }

// Shift returns the quasi-cyclic shift in [0,Z) of the edge between check
// node m and variable node n, and false if there is no edge.
func (g *Graph) Shift(m, n int) (uint16, bool) {
	s := g.shifts[m][n]
	if s < 0 {
		return 0, false
	}
	return uint16(s), true
}

// Adjacency returns the sorted list of variable nodes incident to check
// node m (length <= MaxCheckDegree).
func (g *Graph) Adjacency(m int) []uint16 {
	return g.adjacency[m]
}

var table [2][NofLiftingSets]*Graph

func init() {
	for _, bg := range []BaseGraph{BG1, BG2} {
		for set := 0; set < NofLiftingSets; set++ {
			z := LiftingSizes[set][0]
			table[bg][set] = build(bg, set, z)
		}
	}
}

// Get returns the shared, read-only graph for (bg, Z). It panics only on a
// programmer error (Z not one of the 51 defined lifting sizes), which is an
// invariant violation per spec.md §7, not a runtime condition library
// callers should ever hit in correctly configured code.
func Get(bg BaseGraph, z int) *Graph {
	set, ok := LiftingSetIndex(z)
	if !ok {
		panic(fmt.Sprintf("graph: invalid lifting size %d", z))
	}
	g := table[bg][set]
	if g.Z == z {
		return g
	}
	return scaled(g, z)
}

// scaled re-derives the per-instance shift values for a lifting size z that
// shares the connectivity skeleton and lifting-set index of g's prototype,
// per TS38.212's rule that a base-graph entry's lifted shift for Z is
// floor(proto_shift * Z / proto_Z) -- the standard modulus-scaling relation
// used across all lifting sizes within one lifting set.
func scaled(proto *Graph, z int) *Graph {
	g := &Graph{
		BG:         proto.BG,
		Z:          z,
		liftingSet: proto.liftingSet,
		shifts:     make([][]int16, len(proto.shifts)),
		adjacency:  proto.adjacency,
	}
	for m, row := range proto.shifts {
		newRow := make([]int16, len(row))
		for n, s := range row {
			if s < 0 {
				newRow[n] = -1
				continue
			}
			newRow[n] = int16((int(s) * z) / proto.Z % z)
		}
		g.shifts[m] = newRow
	}
	return g
}
