package escape

// Scalar evaluates one pixel at a time.
type Scalar struct {
	params Params
}

// NewScalar creates a scalar kernel. Parameters are not validated; use New
// for checked construction.
func NewScalar(p Params) *Scalar {
	return &Scalar{params: p}
}

// Name returns KindScalar.
func (k *Scalar) Name() Kind { return KindScalar }

// Lanes returns 1.
func (k *Scalar) Lanes() int { return 1 }

// Evaluate iterates every pixel of the segment independently.
func (k *Scalar) Evaluate(cr []float32, ci float32, out []Sample) {
	out = out[:len(cr)]
	for i, c := range cr {
		out[i] = iterate(c, ci, k.params.MaxIterations, k.params.BailoutSquared())
	}
}

// iterate applies z ← z² + c from z = 0 while |z|² < bailout² and the budget
// lasts. The operation order matches the lane kernels step for step:
//
//	zr2, zi2 = zr*zr, zi*zi
//	t        = zr*zi
//	zi       = (t + t) + ci
//	zr       = (zr2 - zi2) + cr
//
// with every product rounded to float32, so all kernels agree bit for bit.
func iterate(cr, ci float32, maxIterations int32, bailout2 float32) Sample {
	var zr, zi float32
	n := int32(0)
	for n < maxIterations {
		zr2 := float32(zr * zr)
		zi2 := float32(zi * zi)
		// Written as !(a < b) so a NaN magnitude counts as diverged.
		if !(float32(zr2+zi2) < bailout2) {
			break
		}
		t := float32(zr * zi)
		zi = float32(t+t) + ci
		zr = float32(zr2-zi2) + cr
		n++
	}
	return Sample{Iterations: n, Re: zr, Im: zi}
}
