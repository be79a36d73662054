package wide

// I32x4 represents 4 int32 lanes.
type I32x4 [4]int32

// SplatI32x4 creates I32x4 with all lanes set to n.
func SplatI32x4(n int32) I32x4 {
	return I32x4{n, n, n, n}
}

// Add performs lane-wise addition.
func (v I32x4) Add(other I32x4) I32x4 {
	var result I32x4
	for i := range v {
		result[i] = v[i] + other[i]
	}
	return result
}

// Less returns a mask with lane i set when v[i] < other[i].
func (v I32x4) Less(other I32x4) Mask4 {
	var m Mask4
	for i := range v {
		m[i] = v[i] < other[i]
	}
	return m
}

// SelectI32x4 returns a lane-wise blend: mask[i] ? a[i] : b[i].
func SelectI32x4(mask Mask4, a, b I32x4) I32x4 {
	var result I32x4
	for i := range mask {
		if mask[i] {
			result[i] = a[i]
		} else {
			result[i] = b[i]
		}
	}
	return result
}

// I32x8 represents 8 int32 lanes.
type I32x8 [8]int32

// SplatI32x8 creates I32x8 with all lanes set to n.
func SplatI32x8(n int32) I32x8 {
	var result I32x8
	for i := range result {
		result[i] = n
	}
	return result
}

// Add performs lane-wise addition.
func (v I32x8) Add(other I32x8) I32x8 {
	var result I32x8
	for i := range v {
		result[i] = v[i] + other[i]
	}
	return result
}

// Less returns a mask with lane i set when v[i] < other[i].
func (v I32x8) Less(other I32x8) Mask8 {
	var m Mask8
	for i := range v {
		m[i] = v[i] < other[i]
	}
	return m
}

// SelectI32x8 returns a lane-wise blend: mask[i] ? a[i] : b[i].
func SelectI32x8(mask Mask8, a, b I32x8) I32x8 {
	var result I32x8
	for i := range mask {
		if mask[i] {
			result[i] = a[i]
		} else {
			result[i] = b[i]
		}
	}
	return result
}
