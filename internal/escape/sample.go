package escape

import "math"

// Sample is the result of iterating one pixel.
type Sample struct {
	// Iterations is the number of z ← z² + c steps applied.
	Iterations int32

	// Re and Im are the final value of z.
	Re float32
	Im float32
}

// Escaped reports whether the sample diverged within the budget.
func (s Sample) Escaped(p Params) bool {
	return s.Iterations < p.MaxIterations
}

// Smooth returns the continuous escape value of a sample:
//
//	nu    = log(log|z|) / log 2
//	value = iterations + 1 - nu
//
// escaped is false for points inside the set, in which case value is
// MaxIterations. log(log|z|) is undefined for |z| <= 1; such samples (and any
// non-finite correction) use nu = 0 so the result is never NaN.
func Smooth(s Sample, p Params) (value float64, escaped bool) {
	if !s.Escaped(p) {
		return float64(p.MaxIterations), false
	}
	nu := 0.0
	if mag := math.Hypot(float64(s.Re), float64(s.Im)); mag > 1 {
		nu = math.Log(math.Log(mag)) / math.Ln2
		if math.IsNaN(nu) || math.IsInf(nu, 0) {
			nu = 0
		}
	}
	return float64(s.Iterations) + 1 - nu, true
}

// LinearIndex maps a smoothed value onto a palette of n entries:
// clamp(int(value / maxIterations * (n-1)), 0, n-1).
func LinearIndex(value float64, maxIterations int32, n int) int {
	if n <= 1 || math.IsNaN(value) {
		return 0
	}
	scaled := value / float64(maxIterations) * float64(n-1)
	if scaled <= 0 {
		return 0
	}
	if scaled >= float64(n-1) {
		return n - 1
	}
	return int(scaled)
}

// FieldValue returns the value stored in an escape field for a sample.
//
// Escaped samples store their smoothed value clamped to [0, MaxIterations);
// samples inside the set store exactly MaxIterations, so InSet can tell them
// apart without a second array.
func FieldValue(s Sample, p Params) float32 {
	v, escaped := Smooth(s, p)
	limit := float32(p.MaxIterations)
	if !escaped {
		return limit
	}
	f := float32(v)
	if f < 0 {
		return 0
	}
	if f >= limit {
		return math.Nextafter32(limit, 0)
	}
	return f
}

// InSet reports whether a field value marks a point inside the set.
func InSet(v float32, maxIterations int32) bool {
	return v >= float32(maxIterations)
}
