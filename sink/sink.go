// Package sink writes rendered images and escape fields to files.
//
// Images are H×W×3 uint8 grids (RGB, row-major) and can be encoded as PNG,
// BMP or TIFF. Escape fields are H×W float32 grids stored as a
// zstd-compressed stream (see WriteField).
package sink

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"

	"github.com/gogpu/mandel/grid"
)

// Sink errors.
var (
	// ErrUnsupportedFormat is returned for an unknown output format or file
	// extension.
	ErrUnsupportedFormat = errors.New("sink: unsupported format")

	// ErrInvalidShape is returned when a grid does not have the layout a
	// sink expects. It is grid.ErrInvalidShape.
	ErrInvalidShape = grid.ErrInvalidShape

	// ErrEmptyImage is returned when asked to encode an image with no pixels.
	ErrEmptyImage = errors.New("sink: empty image")
)

// Format is an image file format.
type Format int

// Supported formats.
const (
	PNG Format = iota
	BMP
	TIFF
)

// String returns the format name.
func (f Format) String() string {
	switch f {
	case PNG:
		return "png"
	case BMP:
		return "bmp"
	case TIFF:
		return "tiff"
	default:
		return fmt.Sprintf("Format(%d)", int(f))
	}
}

// FormatFromPath selects a format by file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		return PNG, nil
	case ".bmp":
		return BMP, nil
	case ".tif", ".tiff":
		return TIFF, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
	}
}

// ToImage converts an H×W×3 grid to an opaque *image.NRGBA.
func ToImage(img *grid.Dense[uint8]) (*image.NRGBA, error) {
	if img == nil || img.Rank() != 3 {
		return nil, fmt.Errorf("%w: want rank 3 (height, width, channel)", ErrInvalidShape)
	}
	if c := img.Dim(2); c != 3 {
		return nil, fmt.Errorf("%w: unsupported channel count %d", ErrInvalidShape, c)
	}
	h, w := img.Dim(0), img.Dim(1)
	if h == 0 || w == 0 {
		return nil, ErrEmptyImage
	}

	nrgba := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := range h {
		row := img.Row(y)
		dst := nrgba.Pix[y*nrgba.Stride:]
		for x := range w {
			srcOff := x * 3
			dstOff := x * 4
			dst[dstOff] = row[srcOff]
			dst[dstOff+1] = row[srcOff+1]
			dst[dstOff+2] = row[srcOff+2]
			dst[dstOff+3] = 255 // Opaque
		}
	}
	return nrgba, nil
}

// Encode writes an H×W×3 grid to w in the given format.
func Encode(w io.Writer, img *grid.Dense[uint8], format Format) error {
	std, err := ToImage(img)
	if err != nil {
		return err
	}

	switch format {
	case PNG:
		err = png.Encode(w, std)
	case BMP:
		err = bmp.Encode(w, std)
	case TIFF:
		err = tiff.Encode(w, std, &tiff.Options{Compression: tiff.Deflate, Predictor: true})
	default:
		return fmt.Errorf("%w: %v", ErrUnsupportedFormat, format)
	}
	if err != nil {
		return fmt.Errorf("sink: encode %v: %w", format, err)
	}
	return nil
}

// Save encodes img in the format implied by the extension of path and
// writes it. Encoding completes in memory before the file is created, so
// a failed encode never leaves a partial file behind.
func Save(path string, img *grid.Dense[uint8]) error {
	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := Encode(&buf, img, format); err != nil {
		return err
	}
	return writeFile(path, buf.Bytes())
}

func writeFile(path string, data []byte) error {
	if err := os.WriteFile(filepath.Clean(path), data, 0o644); err != nil { //nolint:gosec // G306: output image is meant to be readable
		return fmt.Errorf("sink: write file: %w", err)
	}
	return nil
}
