// Package escape implements the escape-time evaluation of z ← z² + c.
//
// A Kernel evaluates a run of pixels that share one imaginary coordinate and
// returns, per pixel, the iteration count at which |z| reached the bailout
// radius (or the iteration budget) together with the final z. Three kernels
// are provided: Scalar, Lanes4 (128-bit vectors) and Lanes8 (256-bit vectors).
// They produce identical Samples for identical input.
//
// Coloring helpers (Smooth, LinearIndex, FieldValue) turn Samples into the
// continuous escape value used for palette lookup and histogram remapping.
package escape

import (
	"errors"
	"fmt"
)

// ErrInvalidParams is returned when iteration parameters cannot be evaluated.
var ErrInvalidParams = errors.New("escape: invalid parameters")

// Params holds the per-pixel iteration budget and divergence threshold.
type Params struct {
	// MaxIterations is the iteration budget. Points that do not escape
	// within it are classified as inside the set.
	MaxIterations int32

	// Bailout is the escape radius. A point has diverged once |z| >= Bailout.
	Bailout float32
}

// Validate checks that the parameters describe a usable iteration.
func (p Params) Validate() error {
	if p.MaxIterations < 1 {
		return fmt.Errorf("%w: max iterations %d < 1", ErrInvalidParams, p.MaxIterations)
	}
	if !(p.Bailout > 0) {
		return fmt.Errorf("%w: bailout radius %v must be positive", ErrInvalidParams, p.Bailout)
	}
	return nil
}

// BailoutSquared returns Bailout², the threshold compared against |z|².
func (p Params) BailoutSquared() float32 {
	return float32(p.Bailout * p.Bailout)
}

// Plane is a rectangle of the complex plane mapped onto the pixel grid.
// Column 0 maps to RealStart and column width-1 to RealStop; rows map to
// the imaginary axis the same way.
type Plane struct {
	RealStart float32
	RealStop  float32
	ImagStart float32
	ImagStop  float32
}

// Real returns the real coordinate of column x in an image of the given width.
func (p Plane) Real(x, width int) float32 {
	return coord(p.RealStart, p.RealStop, x, width)
}

// Imag returns the imaginary coordinate of row y in an image of the given height.
func (p Plane) Imag(y, height int) float32 {
	return coord(p.ImagStart, p.ImagStop, y, height)
}

// Reals fills dst with the real coordinates of columns x0, x0+1, ...
func (p Plane) Reals(x0, width int, dst []float32) {
	for i := range dst {
		dst[i] = coord(p.RealStart, p.RealStop, x0+i, width)
	}
}

// coord maps index i of n linearly onto [start, stop].
// A single-pixel axis maps to start.
func coord(start, stop float32, i, n int) float32 {
	if n <= 1 {
		return start
	}
	ratio := float32(i) / float32(n-1)
	return start + float32(ratio*(stop-start))
}
