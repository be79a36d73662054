// Package histogram implements histogram equalization of escape values.
//
// A Histogram counts escaped pixels by the integer part of their smoothed
// escape value. Its exclusive prefix sum (the CDF) maps every escaped value
// onto [0, 1] in proportion to how many pixels escaped earlier, which spreads
// colors evenly over the image instead of crowding them near low iteration
// counts.
//
// Build is sequential and must finish before any Remap call; after that the
// Histogram is read-only and safe for concurrent use.
package histogram

import "math"

// Histogram holds bin counts and their exclusive cumulative sum.
type Histogram struct {
	bins          []uint64
	cdf           []uint64
	maxIterations int32
}

// Build counts the escaped values of field. Values >= maxIterations mark
// points inside the set and are skipped, as are NaN and negative values.
// maxIterations below 1 is treated as 1.
func Build(field []float32, maxIterations int32) *Histogram {
	if maxIterations < 1 {
		maxIterations = 1
	}
	h := &Histogram{
		bins:          make([]uint64, maxIterations),
		cdf:           make([]uint64, maxIterations+1),
		maxIterations: maxIterations,
	}

	limit := float32(maxIterations)
	for _, v := range field {
		if !(v >= 0) || v >= limit {
			continue
		}
		h.bins[int(v)]++
	}

	var sum uint64
	for b, n := range h.bins {
		h.cdf[b] = sum
		sum += n
	}
	h.cdf[maxIterations] = sum
	return h
}

// Bins returns the per-bin counts. Bin b counts values in [b, b+1).
// The slice is shared; callers must not modify it.
func (h *Histogram) Bins() []uint64 {
	return h.bins
}

// CDF returns the exclusive cumulative counts: CDF()[b] is the number of
// escaped values below b. It has MaxIterations+1 entries and the last equals
// Total. The slice is shared; callers must not modify it.
func (h *Histogram) CDF() []uint64 {
	return h.cdf
}

// Total returns the number of escaped values counted.
func (h *Histogram) Total() uint64 {
	return h.cdf[h.maxIterations]
}

// MaxIterations returns the iteration budget the histogram was built for.
func (h *Histogram) MaxIterations() int32 {
	return h.maxIterations
}

// Remap returns the equalized value of v in [0, 1]:
//
//	(cdf[bin] + frac(v) * bins[bin]) / total
//
// Points inside the set, values outside the binned range and histograms
// with no escaped values remap to 0.
func (h *Histogram) Remap(v float32) float64 {
	total := h.Total()
	if total == 0 || !(v >= 0) || v >= float32(h.maxIterations) {
		return 0
	}
	bin := int(v)
	frac := float64(v) - math.Floor(float64(v))
	r := (float64(h.cdf[bin]) + frac*float64(h.bins[bin])) / float64(total)
	return min(max(r, 0), 1)
}

// Index maps a remapped value in [0, 1] onto a palette of n entries.
func Index(r float64, n int) int {
	if n <= 1 || !(r > 0) {
		return 0
	}
	i := int(r * float64(n-1))
	return min(i, n-1)
}
