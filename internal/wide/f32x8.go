package wide

// F32x8 represents 8 float32 lanes for SIMD-style operations.
// Designed for Go compiler auto-vectorization with fixed-size arrays.
type F32x8 [8]float32

// SplatF32x8 creates F32x8 with all lanes set to n.
func SplatF32x8(n float32) F32x8 {
	var result F32x8
	for i := range result {
		result[i] = n
	}
	return result
}

// Add performs lane-wise addition.
func (v F32x8) Add(other F32x8) F32x8 {
	var result F32x8
	for i := range v {
		result[i] = float32(v[i] + other[i])
	}
	return result
}

// Sub performs lane-wise subtraction.
func (v F32x8) Sub(other F32x8) F32x8 {
	var result F32x8
	for i := range v {
		result[i] = float32(v[i] - other[i])
	}
	return result
}

// Mul performs lane-wise multiplication.
// Each product is rounded to float32 before it can take part in a later addition.
func (v F32x8) Mul(other F32x8) F32x8 {
	var result F32x8
	for i := range v {
		result[i] = float32(v[i] * other[i])
	}
	return result
}

// Less returns a mask with lane i set when v[i] < other[i].
// NaN lanes compare false.
func (v F32x8) Less(other F32x8) Mask8 {
	var m Mask8
	for i := range v {
		m[i] = v[i] < other[i]
	}
	return m
}

// SelectF32x8 returns a lane-wise blend: mask[i] ? a[i] : b[i].
func SelectF32x8(mask Mask8, a, b F32x8) F32x8 {
	var result F32x8
	for i := range mask {
		if mask[i] {
			result[i] = a[i]
		} else {
			result[i] = b[i]
		}
	}
	return result
}
