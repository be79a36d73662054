package wide

// F32x4 represents 4 float32 lanes, the width of one 128-bit vector register.
type F32x4 [4]float32

// SplatF32x4 creates F32x4 with all lanes set to n.
func SplatF32x4(n float32) F32x4 {
	return F32x4{n, n, n, n}
}

// Add performs lane-wise addition.
func (v F32x4) Add(other F32x4) F32x4 {
	var result F32x4
	for i := range v {
		result[i] = float32(v[i] + other[i])
	}
	return result
}

// Sub performs lane-wise subtraction.
func (v F32x4) Sub(other F32x4) F32x4 {
	var result F32x4
	for i := range v {
		result[i] = float32(v[i] - other[i])
	}
	return result
}

// Mul performs lane-wise multiplication, rounding each product to float32.
func (v F32x4) Mul(other F32x4) F32x4 {
	var result F32x4
	for i := range v {
		result[i] = float32(v[i] * other[i])
	}
	return result
}

// Less returns a mask with lane i set when v[i] < other[i].
func (v F32x4) Less(other F32x4) Mask4 {
	var m Mask4
	for i := range v {
		m[i] = v[i] < other[i]
	}
	return m
}

// SelectF32x4 returns a lane-wise blend: mask[i] ? a[i] : b[i].
func SelectF32x4(mask Mask4, a, b F32x4) F32x4 {
	var result F32x4
	for i := range mask {
		if mask[i] {
			result[i] = a[i]
		} else {
			result[i] = b[i]
		}
	}
	return result
}
