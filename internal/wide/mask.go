package wide

// Mask4 holds one predicate per lane of a 4-lane vector.
type Mask4 [4]bool

// And returns the lane-wise conjunction of two masks.
func (m Mask4) And(other Mask4) Mask4 {
	var result Mask4
	for i := range m {
		result[i] = m[i] && other[i]
	}
	return result
}

// Any reports whether at least one lane is set.
func (m Mask4) Any() bool {
	return m[0] || m[1] || m[2] || m[3]
}

// Count returns the number of set lanes.
func (m Mask4) Count() int {
	n := 0
	for _, b := range m {
		if b {
			n++
		}
	}
	return n
}

// Bits packs the mask into the low 4 bits, lane 0 in bit 0.
func (m Mask4) Bits() uint8 {
	var b uint8
	for i, set := range m {
		if set {
			b |= 1 << i
		}
	}
	return b
}

// Mask8 holds one predicate per lane of an 8-lane vector.
type Mask8 [8]bool

// And returns the lane-wise conjunction of two masks.
func (m Mask8) And(other Mask8) Mask8 {
	var result Mask8
	for i := range m {
		result[i] = m[i] && other[i]
	}
	return result
}

// Any reports whether at least one lane is set.
func (m Mask8) Any() bool {
	for _, b := range m {
		if b {
			return true
		}
	}
	return false
}

// Count returns the number of set lanes.
func (m Mask8) Count() int {
	n := 0
	for _, b := range m {
		if b {
			n++
		}
	}
	return n
}

// Bits packs the mask into a byte, lane 0 in bit 0.
func (m Mask8) Bits() uint8 {
	var b uint8
	for i, set := range m {
		if set {
			b |= 1 << i
		}
	}
	return b
}
