package graph

import "testing"

func TestLiftingSetIndex(t *testing.T) {
	cases := []struct {
		z    int
		want int
		ok   bool
	}{
		{2, 0, true},
		{384, 1, true},
		{15, 7, true},
		{9999, 0, false},
	}
	for _, c := range cases {
		got, ok := LiftingSetIndex(c.z)
		if ok != c.ok {
			t.Fatalf("LiftingSetIndex(%d): ok=%v, want %v", c.z, ok, c.ok)
		}
		if ok && got != c.want {
			t.Fatalf("LiftingSetIndex(%d) = %d, want %d", c.z, got, c.want)
		}
	}
}

func TestGetPanicsOnInvalidZ(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("Get should panic on an undefined lifting size")
		}
	}()
	Get(BG1, 999)
}

func TestHighRateRowsOnlyTouchSystematicNodes(t *testing.T) {
	for _, bg := range []BaseGraph{BG1, BG2} {
		g := Get(bg, LiftingSizes[0][0])
		k := bg.K()
		for row := 0; row < 4; row++ {
			for _, n := range g.Adjacency(row) {
				if int(n) >= k {
					t.Fatalf("bg=%v row=%d: high-rate row touches parity node %d (K=%d)", bg, row, n, k)
				}
			}
		}
	}
}

func TestExtensionRowsHaveIdentityEdge(t *testing.T) {
	for _, bg := range []BaseGraph{BG1, BG2} {
		g := Get(bg, LiftingSizes[0][0])
		k := bg.K()
		m := bg.M()
		for row := 4; row < m; row++ {
			shift, ok := g.Shift(row, k+row)
			if !ok {
				t.Fatalf("bg=%v row=%d: missing identity edge at column %d", bg, row, k+row)
			}
			if shift != 0 {
				t.Fatalf("bg=%v row=%d: identity edge shift = %d, want 0", bg, row, shift)
			}
		}
	}
}

func TestScaledGraphPreservesConnectivity(t *testing.T) {
	proto := Get(BG1, 2) // prototype lifting size
	scaled := Get(BG1, 256)
	for row := 0; row < BG1M; row++ {
		if len(proto.Adjacency(row)) != len(scaled.Adjacency(row)) {
			t.Fatalf("row %d: adjacency length changed after scaling", row)
		}
	}
}

func TestAdjacencyIsSorted(t *testing.T) {
	g := Get(BG2, LiftingSizes[0][0])
	for row := 0; row < BG2M; row++ {
		adj := g.Adjacency(row)
		for i := 1; i < len(adj); i++ {
			if adj[i-1] >= adj[i] {
				t.Fatalf("row %d: adjacency not strictly ascending at index %d", row, i)
			}
		}
	}
}
