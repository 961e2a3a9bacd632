// vector.go adds lane-width-aware batch operations over slices of LLR,
// gated by golang.org/x/sys/cpu feature detection the same way the teacher
// gates its AVX2 fast paths (internal/celt/imdct_amd64.go's
// cpu.X86.HasAVX2 check). There are no assembly kernels here -- the "wide"
// path is a fixed-width unrolled Go loop sized to the host's native vector
// width, and it is bit-identical to the scalar fallback by construction,
// per spec.md §9's "any implementation must remain bit-identical to the
// scalar reference."
package llr

import "golang.org/x/sys/cpu"

// LaneWidth is the chunk size (in LLR lanes) the wide path processes per
// iteration when the host reports SIMD support, matching spec.md §9's
// "chunks of 16, 32, or 64 bytes" guidance for the Z dimension.
const LaneWidth = 32

// wideLanes is decided once at init, mirroring the teacher's package-level
// feature-detection variables.
var wideLanes = cpu.X86.HasAVX2 || cpu.ARM64.HasASIMD

// AddVector computes dst[i] = a[i].Add(b[i]) for every lane.
func AddVector(dst, a, b []LLR) {
	if wideLanes {
		addWide(dst, a, b)
		return
	}
	addScalar(dst, a, b)
}

func addWide(dst, a, b []LLR) {
	n := len(dst)
	i := 0
	for ; i+LaneWidth <= n; i += LaneWidth {
		chunk, ac, bc := dst[i:i+LaneWidth], a[i:i+LaneWidth], b[i:i+LaneWidth]
		for j := 0; j < LaneWidth; j++ {
			chunk[j] = ac[j].Add(bc[j])
		}
	}
	addScalar(dst[i:n], a[i:n], b[i:n])
}

func addScalar(dst, a, b []LLR) {
	for i := range dst {
		dst[i] = a[i].Add(b[i])
	}
}

// SubVector computes dst[i] = a[i].Sub(b[i]) for every lane.
func SubVector(dst, a, b []LLR) {
	if wideLanes {
		subWide(dst, a, b)
		return
	}
	subScalar(dst, a, b)
}

func subWide(dst, a, b []LLR) {
	n := len(dst)
	i := 0
	for ; i+LaneWidth <= n; i += LaneWidth {
		chunk, ac, bc := dst[i:i+LaneWidth], a[i:i+LaneWidth], b[i:i+LaneWidth]
		for j := 0; j < LaneWidth; j++ {
			chunk[j] = ac[j].Sub(bc[j])
		}
	}
	subScalar(dst[i:n], a[i:n], b[i:n])
}

func subScalar(dst, a, b []LLR) {
	for i := range dst {
		dst[i] = a[i].Sub(b[i])
	}
}

// ShiftInto copies a circularly-backward-shifted view of src (the
// TS38.212 "circ_shift_backward" convention: dst[i] = src[(i+shift)%z])
// into dst, using the split-copy two-range pattern spec.md §9 asks for
// instead of per-element modulo indexing.
func ShiftInto(dst, src []LLR, shift int) {
	z := len(src)
	if shift == 0 {
		copy(dst, src)
		return
	}
	copy(dst[:z-shift], src[shift:])
	copy(dst[z-shift:], src[:shift])
}

// ScatterShifted is the inverse of ShiftInto: it writes src (indexed in the
// check row's local lane frame) back into dst at dst[(lane+shift)%z].
func ScatterShifted(dst, src []LLR, shift int) {
	z := len(src)
	if shift == 0 {
		copy(dst, src)
		return
	}
	copy(dst[shift:], src[:z-shift])
	copy(dst[:shift], src[z-shift:])
}
