// Package mandel renders escape-time images of the Mandelbrot set.
//
// # Overview
//
// For every pixel of an H×W image, mandel maps the pixel onto a rectangle
// of the complex plane, iterates z ← z² + c from z = 0 until |z| reaches the
// bailout radius or the iteration budget runs out, and converts the result
// to a color through a named palette. Rows are split across a fixed pool of
// workers, and each worker evaluates its pixels several at a time with a
// lane-masked kernel when the CPU offers vector instructions.
//
// # Quick Start
//
//	import "github.com/gogpu/mandel"
//
//	// 3840×2160 RGB image with the magma palette
//	img, err := mandel.Render(2160, 3840, "magma")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	_ = sink.Save("mandelbrot.png", img)
//
// For repeated renders, create a Renderer once and reuse its worker pool:
//
//	r, err := mandel.NewRenderer(mandel.WithHistogramRemap(true))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer r.Close()
//	img, err := r.Render(1080, 1920, "twilight")
//
// # Coloring
//
// Escaped pixels are colored by their smoothed (continuous) escape value,
// either scaled linearly onto the palette or, with WithHistogramRemap,
// equalized through the cumulative distribution of all escape values in
// the image. Pixels inside the set are black.
//
// # Kernels
//
// The kernel is chosen once per Renderer. KernelAuto picks the widest
// kernel the host supports (lanes8 for 256-bit vectors, lanes4 for 128-bit,
// otherwise scalar). All kernels produce identical iteration counts.
//
// # Output
//
// Render returns an H×W×3 grid.Dense[uint8] in row-major RGB order. The sink
// package encodes it as PNG, BMP or TIFF.
package mandel

// Version information
const (
	// Version is the current version of the library
	Version = "0.1.0"

	// VersionMajor is the major version
	VersionMajor = 0

	// VersionMinor is the minor version
	VersionMinor = 1

	// VersionPatch is the patch version
	VersionPatch = 0
)
