package wide

import "testing"

// Benchmark lane operations to verify SIMD auto-vectorization

func BenchmarkF32x4_Mul(b *testing.B) {
	a := SplatF32x4(1.5)
	c := SplatF32x4(2.5)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = a.Mul(c)
	}
}

func BenchmarkF32x8_Mul(b *testing.B) {
	a := SplatF32x8(1.5)
	c := SplatF32x8(2.5)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = a.Mul(c)
	}
}

func BenchmarkSelectF32x4(b *testing.B) {
	a := SplatF32x4(1)
	c := SplatF32x4(2)
	m := Mask4{true, false, true, false}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = SelectF32x4(m, a, c)
	}
}

func BenchmarkSelectF32x8(b *testing.B) {
	a := SplatF32x8(1)
	c := SplatF32x8(2)
	m := Mask8{true, false, true, false, true, false, true, false}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = SelectF32x8(m, a, c)
	}
}

// BenchmarkEscapeStep4 measures one masked z = z² + c step on 4 lanes.
func BenchmarkEscapeStep4(b *testing.B) {
	zr := F32x4{0.1, 0.2, 0.3, 0.4}
	zi := F32x4{0.4, 0.3, 0.2, 0.1}
	cr := SplatF32x4(-0.5)
	ci := SplatF32x4(0.25)
	bail := SplatF32x4(4)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		zr2 := zr.Mul(zr)
		zi2 := zi.Mul(zi)
		active := zr2.Add(zi2).Less(bail)
		t := zr.Mul(zi)
		zi = SelectF32x4(active, t.Add(t).Add(ci), zi)
		zr = SelectF32x4(active, zr2.Sub(zi2).Add(cr), zr)
	}
}

// BenchmarkEscapeStep8 measures one masked z = z² + c step on 8 lanes.
func BenchmarkEscapeStep8(b *testing.B) {
	zr := F32x8{0.1, 0.2, 0.3, 0.4, 0.5, 0.6, 0.7, 0.8}
	zi := F32x8{0.8, 0.7, 0.6, 0.5, 0.4, 0.3, 0.2, 0.1}
	cr := SplatF32x8(-0.5)
	ci := SplatF32x8(0.25)
	bail := SplatF32x8(4)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		zr2 := zr.Mul(zr)
		zi2 := zi.Mul(zi)
		active := zr2.Add(zi2).Less(bail)
		t := zr.Mul(zi)
		zi = SelectF32x8(active, t.Add(t).Add(ci), zi)
		zr = SelectF32x8(active, zr2.Sub(zi2).Add(cr), zr)
	}
}
