package sink

import (
	"fmt"
	"image"

	"golang.org/x/image/draw"

	"github.com/gogpu/mandel/grid"
)

// FromImage converts an image to an H×W×3 RGB grid, dropping alpha.
func FromImage(m image.Image) (*grid.Dense[uint8], error) {
	b := m.Bounds()
	out, err := grid.New[uint8](b.Dy(), b.Dx(), 3)
	if err != nil {
		return nil, err
	}

	// Fast path for NRGBA images
	if nrgba, ok := m.(*image.NRGBA); ok {
		for y := range b.Dy() {
			src := nrgba.Pix[y*nrgba.Stride:]
			row := out.Row(y)
			for x := range b.Dx() {
				copy(row[x*3:x*3+3], src[x*4:x*4+3])
			}
		}
		return out, nil
	}

	for y := range b.Dy() {
		row := out.Row(y)
		for x := range b.Dx() {
			r, g, bl, _ := m.At(b.Min.X+x, b.Min.Y+y).RGBA()
			row[x*3] = uint8(r >> 8)
			row[x*3+1] = uint8(g >> 8)
			row[x*3+2] = uint8(bl >> 8)
		}
	}
	return out, nil
}

// Downsample resizes an H×W×3 image to height×width with a Catmull-Rom
// filter. Rendering at a multiple of the target size and downsampling
// anti-aliases the boundary of the set.
func Downsample(img *grid.Dense[uint8], height, width int) (*grid.Dense[uint8], error) {
	if height <= 0 || width <= 0 {
		return nil, fmt.Errorf("%w: target size %dx%d", ErrInvalidShape, height, width)
	}
	src, err := ToImage(img)
	if err != nil {
		return nil, err
	}
	dst := image.NewNRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)
	return FromImage(dst)
}
