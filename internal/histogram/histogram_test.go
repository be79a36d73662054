package histogram

import (
	"math"
	"math/rand/v2"
	"testing"
)

// =============================================================================
// Build Tests
// =============================================================================

func TestBuild(t *testing.T) {
	field := []float32{0.5, 1.25, 1.75, 3.0, 10, 10, 9.99, 2.0}
	h := Build(field, 10)

	want := []uint64{1, 2, 1, 1, 0, 0, 0, 0, 0, 1}
	bins := h.Bins()
	if len(bins) != len(want) {
		t.Fatalf("len(Bins()) = %d, want %d", len(bins), len(want))
	}
	for i := range want {
		if bins[i] != want[i] {
			t.Errorf("Bins()[%d] = %d, want %d", i, bins[i], want[i])
		}
	}
	if h.Total() != 6 {
		t.Errorf("Total() = %d, want 6", h.Total())
	}

	cdf := h.CDF()
	wantCDF := []uint64{0, 1, 3, 4, 5, 5, 5, 5, 5, 5, 6}
	for i := range wantCDF {
		if cdf[i] != wantCDF[i] {
			t.Errorf("CDF()[%d] = %d, want %d", i, cdf[i], wantCDF[i])
		}
	}
}

func TestBuild_SkipsInvalid(t *testing.T) {
	nan := float32(math.NaN())
	h := Build([]float32{-1, nan, 100, 1e9, 50}, 100)
	if h.Total() != 1 {
		t.Errorf("Total() = %d, want 1", h.Total())
	}
}

func TestBuild_Empty(t *testing.T) {
	h := Build(nil, 100)
	if h.Total() != 0 {
		t.Errorf("Total() = %d, want 0", h.Total())
	}
	if got := h.Remap(3.5); got != 0 {
		t.Errorf("Remap on empty histogram = %v, want 0", got)
	}
}

func TestBuild_MinimumBudget(t *testing.T) {
	h := Build([]float32{0.5}, 0)
	if h.MaxIterations() != 1 {
		t.Errorf("MaxIterations() = %d, want 1", h.MaxIterations())
	}
	if h.Total() != 1 {
		t.Errorf("Total() = %d, want 1", h.Total())
	}
}

// =============================================================================
// Invariant Tests
// =============================================================================

// randomField returns a field with a mix of escaped and in-set values.
func randomField(n int, maxIter int32, seed uint64) []float32 {
	r := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	field := make([]float32, n)
	for i := range field {
		if r.IntN(5) == 0 {
			field[i] = float32(maxIter)
			continue
		}
		// Skew towards low values like a real escape field.
		v := math.Pow(r.Float64(), 3) * float64(maxIter)
		field[i] = float32(min(v, float64(maxIter)-0.001))
	}
	return field
}

func TestHistogram_Invariants(t *testing.T) {
	for _, maxIter := range []int32{1, 10, 100, 1000} {
		field := randomField(5000, maxIter, uint64(maxIter))
		h := Build(field, maxIter)

		var escaped uint64
		for _, v := range field {
			if v < float32(maxIter) {
				escaped++
			}
		}

		var sum uint64
		for _, n := range h.Bins() {
			sum += n
		}
		if sum != escaped {
			t.Errorf("maxIter=%d: bin sum = %d, escaped = %d", maxIter, sum, escaped)
		}
		if h.Total() != escaped {
			t.Errorf("maxIter=%d: Total() = %d, escaped = %d", maxIter, h.Total(), escaped)
		}

		cdf := h.CDF()
		for i := 1; i < len(cdf); i++ {
			if cdf[i] < cdf[i-1] {
				t.Fatalf("maxIter=%d: CDF decreases at %d: %d < %d", maxIter, i, cdf[i], cdf[i-1])
			}
		}

		for _, v := range field {
			r := h.Remap(v)
			if r < 0 || r > 1 || math.IsNaN(r) {
				t.Fatalf("maxIter=%d: Remap(%v) = %v outside [0, 1]", maxIter, v, r)
			}
		}
	}
}

func TestRemap_Monotonic(t *testing.T) {
	field := randomField(2000, 50, 7)
	h := Build(field, 50)

	prev := -1.0
	for v := float32(0); v < 50; v += 0.125 {
		r := h.Remap(v)
		if r < prev {
			t.Fatalf("Remap(%v) = %v < previous %v", v, r, prev)
		}
		prev = r
	}
}

func TestRemap(t *testing.T) {
	// 4 values: bins {0: 2, 1: 1, 2: 1}
	h := Build([]float32{0.1, 0.9, 1.5, 2.0}, 4)

	tests := []struct {
		v    float32
		want float64
	}{
		{0, 0},
		{0.5, 0.25},  // (0 + 0.5*2) / 4
		{1.5, 0.625}, // (2 + 0.5*1) / 4
		{2.0, 0.75},  // (3 + 0) / 4
		{3.99, 1},    // bin 3 is empty: 4 / 4
		{4, 0},       // in set
	}
	for _, tt := range tests {
		if got := h.Remap(tt.v); math.Abs(got-tt.want) > 1e-6 {
			t.Errorf("Remap(%v) = %v, want %v", tt.v, got, tt.want)
		}
	}
}

func TestIndex(t *testing.T) {
	tests := []struct {
		r    float64
		n    int
		want int
	}{
		{0, 256, 0},
		{1, 256, 255},
		{0.5, 256, 127},
		{-0.1, 256, 0},
		{1.5, 256, 255},
		{math.NaN(), 256, 0},
		{0.9, 1, 0},
	}
	for _, tt := range tests {
		if got := Index(tt.r, tt.n); got != tt.want {
			t.Errorf("Index(%v, %d) = %d, want %d", tt.r, tt.n, got, tt.want)
		}
	}
}

func BenchmarkBuild(b *testing.B) {
	field := randomField(1920*1080, 100, 1)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = Build(field, 100)
	}
}

func BenchmarkRemap(b *testing.B) {
	field := randomField(1<<16, 100, 2)
	h := Build(field, 100)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		for _, v := range field {
			_ = h.Remap(v)
		}
	}
}
