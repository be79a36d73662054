package escape

import "github.com/gogpu/mandel/internal/wide"

// Lanes4 evaluates 4 pixels per step using masked lane updates.
//
// Each step computes |z|² per lane and the active mask
// (|z|² < bailout²) AND (iterations < budget). Only active lanes advance;
// inactive lanes keep their last z and count through an explicit select.
// The loop ends as soon as no lane is active. Pixels beyond the last full
// group of 4 are evaluated by the scalar loop.
type Lanes4 struct {
	params Params
}

// Name returns KindLanes4.
func (k *Lanes4) Name() Kind { return KindLanes4 }

// Lanes returns 4.
func (k *Lanes4) Lanes() int { return 4 }

// Evaluate iterates the segment in groups of 4 with a scalar tail.
func (k *Lanes4) Evaluate(cr []float32, ci float32, out []Sample) {
	out = out[:len(cr)]
	full := len(cr) &^ 3
	for x := 0; x < full; x += 4 {
		var c wide.F32x4
		copy(c[:], cr[x:x+4])
		k.step(c, ci, out[x:x+4])
	}
	bail2 := k.params.BailoutSquared()
	for x := full; x < len(cr); x++ {
		out[x] = iterate(cr[x], ci, k.params.MaxIterations, bail2)
	}
}

// step runs the masked iteration for one group of 4 lanes.
func (k *Lanes4) step(cr wide.F32x4, ci float32, out []Sample) {
	var (
		vci    = wide.SplatF32x4(ci)
		bail2  = wide.SplatF32x4(k.params.BailoutSquared())
		budget = wide.SplatI32x4(k.params.MaxIterations)
		one    = wide.SplatI32x4(1)
		zr, zi wide.F32x4
		iter   wide.I32x4
	)

	for {
		zr2 := zr.Mul(zr)
		zi2 := zi.Mul(zi)
		active := zr2.Add(zi2).Less(bail2).And(iter.Less(budget))
		if !active.Any() {
			break
		}

		// z² + c for every lane; the selects keep inactive lanes frozen.
		t := zr.Mul(zi)
		iter = wide.SelectI32x4(active, iter.Add(one), iter)
		zi = wide.SelectF32x4(active, t.Add(t).Add(vci), zi)
		zr = wide.SelectF32x4(active, zr2.Sub(zi2).Add(cr), zr)
	}

	for i := range 4 {
		out[i] = Sample{Iterations: iter[i], Re: zr[i], Im: zi[i]}
	}
}

// Lanes8 is the 8-lane counterpart of Lanes4, sized for 256-bit vectors.
type Lanes8 struct {
	params Params
}

// Name returns KindLanes8.
func (k *Lanes8) Name() Kind { return KindLanes8 }

// Lanes returns 8.
func (k *Lanes8) Lanes() int { return 8 }

// Evaluate iterates the segment in groups of 8 with a scalar tail.
func (k *Lanes8) Evaluate(cr []float32, ci float32, out []Sample) {
	out = out[:len(cr)]
	full := len(cr) &^ 7
	for x := 0; x < full; x += 8 {
		var c wide.F32x8
		copy(c[:], cr[x:x+8])
		k.step(c, ci, out[x:x+8])
	}
	bail2 := k.params.BailoutSquared()
	for x := full; x < len(cr); x++ {
		out[x] = iterate(cr[x], ci, k.params.MaxIterations, bail2)
	}
}

// step runs the masked iteration for one group of 8 lanes.
func (k *Lanes8) step(cr wide.F32x8, ci float32, out []Sample) {
	var (
		vci    = wide.SplatF32x8(ci)
		bail2  = wide.SplatF32x8(k.params.BailoutSquared())
		budget = wide.SplatI32x8(k.params.MaxIterations)
		one    = wide.SplatI32x8(1)
		zr, zi wide.F32x8
		iter   wide.I32x8
	)

	for {
		zr2 := zr.Mul(zr)
		zi2 := zi.Mul(zi)
		active := zr2.Add(zi2).Less(bail2).And(iter.Less(budget))
		if !active.Any() {
			break
		}

		t := zr.Mul(zi)
		iter = wide.SelectI32x8(active, iter.Add(one), iter)
		zi = wide.SelectF32x8(active, t.Add(t).Add(vci), zi)
		zr = wide.SelectF32x8(active, zr2.Sub(zi2).Add(cr), zr)
	}

	for i := range 8 {
		out[i] = Sample{Iterations: iter[i], Re: zr[i], Im: zi[i]}
	}
}
