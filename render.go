package mandel

import (
	"fmt"
	"sync"
	"time"

	"github.com/gogpu/mandel/grid"
	"github.com/gogpu/mandel/internal/escape"
	"github.com/gogpu/mandel/internal/histogram"
	"github.com/gogpu/mandel/internal/parallel"
	"github.com/gogpu/mandel/palette"
)

// Channels is the number of color channels in a rendered image (RGB).
const Channels = 3

// Renderer renders images with a fixed configuration and worker pool.
//
// The kernel is selected once, when the Renderer is created. Render calls
// on one Renderer are serialized; use separate Renderers to render
// concurrently.
type Renderer struct {
	mu     sync.Mutex
	closed bool

	config     Config
	params     escape.Params
	plane      escape.Plane
	kernel     escape.Kernel
	dispatcher *parallel.Dispatcher
	fields     *parallel.FieldPool
}

// NewRenderer creates a Renderer from the given options.
//
// It fails with ErrInvalidConfig for an invalid configuration and with
// ErrUnsupportedCapability when an explicitly requested vector kernel is
// not available.
func NewRenderer(opts ...Option) (*Renderer, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if err := o.config.Validate(); err != nil {
		return nil, err
	}

	kind, err := SelectKernel(o.config.Kernel, o.caps)
	if err != nil {
		return nil, err
	}
	params := o.config.params()
	kernel, err := escape.New(kind, params)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	r := &Renderer{
		config:     o.config,
		params:     params,
		plane:      o.config.Plane.escape(),
		kernel:     kernel,
		dispatcher: parallel.NewDispatcher(o.config.Workers),
		fields:     parallel.NewFieldPool(),
	}
	Logger().Info("mandel: renderer ready",
		"kernel", kind,
		"workers", r.dispatcher.Capacity(),
		"max_iterations", o.config.MaxIterations,
		"histogram", o.config.HistogramRemap)
	return r, nil
}

// Kernel returns the name of the selected kernel ("scalar", "lanes4" or
// "lanes8").
func (r *Renderer) Kernel() string {
	return string(r.kernel.Name())
}

// Workers returns the worker pool size.
func (r *Renderer) Workers() int {
	return r.dispatcher.Capacity()
}

// Config returns the renderer configuration.
func (r *Renderer) Config() Config {
	return r.config
}

// Close releases the worker pool. Render fails with ErrClosed afterwards.
// Close is idempotent.
func (r *Renderer) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return
	}
	r.closed = true
	r.dispatcher.Close()
}

// Render renders a height×width image colored with the named palette and
// returns it as a height×width×3 RGB grid. An empty colormap selects the
// configured Colormap, and the default palette when that is empty too.
//
// A zero dimension yields an empty grid; a negative one fails with
// ErrInvalidShape. On error no image is returned.
func (r *Renderer) Render(height, width int, colormap string) (*grid.Dense[uint8], error) {
	img, _, err := r.render(height, width, colormap, false)
	return img, err
}

// RenderWithField renders like Render and also returns the escape field
// that RenderField would produce, from the same kernel pass.
func (r *Renderer) RenderWithField(height, width int, colormap string) (*grid.Dense[uint8], *grid.Dense[float32], error) {
	return r.render(height, width, colormap, true)
}

func (r *Renderer) render(height, width int, colormap string, withField bool) (*grid.Dense[uint8], *grid.Dense[float32], error) {
	if colormap == "" {
		colormap = r.config.Colormap
	}
	pal, err := palette.Lookup(colormap)
	if err != nil {
		return nil, nil, err
	}
	img, err := grid.New[uint8](height, width, Channels)
	if err != nil {
		return nil, nil, fmt.Errorf("mandel: image %dx%d: %w", height, width, err)
	}
	var field *grid.Dense[float32]
	if withField {
		if field, err = grid.New[float32](height, width); err != nil {
			return nil, nil, fmt.Errorf("mandel: field %dx%d: %w", height, width, err)
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return nil, nil, ErrClosed
	}
	if height == 0 || width == 0 {
		return img, field, nil
	}

	var dst []float32
	if field != nil {
		dst = field.Data()
	}
	start := time.Now()
	if r.config.HistogramRemap {
		err = r.renderEqualized(img, pal, dst)
	} else {
		err = r.renderLinear(img, pal, dst)
	}
	if err != nil {
		return nil, nil, err
	}
	Logger().Debug("mandel: render complete",
		"height", height,
		"width", width,
		"kernel", r.kernel.Name(),
		"histogram", r.config.HistogramRemap,
		"field", withField,
		"elapsed", time.Since(start))
	return img, field, nil
}

// RenderField returns the smoothed escape value of every pixel as a
// height×width grid. Points inside the set hold exactly MaxIterations;
// escaped points hold a value in [0, MaxIterations).
func (r *Renderer) RenderField(height, width int) (*grid.Dense[float32], error) {
	field, err := grid.New[float32](height, width)
	if err != nil {
		return nil, fmt.Errorf("mandel: field %dx%d: %w", height, width, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return nil, ErrClosed
	}
	if height == 0 || width == 0 {
		return field, nil
	}
	if err := r.fillField(height, width, field.Data()); err != nil {
		return nil, err
	}
	return field, nil
}

// renderLinear shades every pixel in a single pass, scaling the smoothed
// escape value linearly onto the palette. A non-nil field receives the
// field value of every pixel.
func (r *Renderer) renderLinear(img *grid.Dense[uint8], pal palette.Palette, field []float32) error {
	height, width := img.Dim(0), img.Dim(1)
	return r.dispatcher.Blocks(height, width, parallel.BlockWidth, func(y, x, n int) error {
		var (
			cr  [parallel.BlockWidth]float32
			out [parallel.BlockWidth]escape.Sample
		)
		r.plane.Reals(x, width, cr[:n])
		r.kernel.Evaluate(cr[:n], r.plane.Imag(y, height), out[:n])

		if field != nil {
			dst := field[y*width+x : y*width+x+n]
			for i, s := range out[:n] {
				dst[i] = escape.FieldValue(s, r.params)
			}
		}

		row := img.Row(y)
		for i, s := range out[:n] {
			v, escaped := escape.Smooth(s, r.params)
			if !escaped {
				continue // in set: black
			}
			c := pal[escape.LinearIndex(v, r.params.MaxIterations, len(pal))]
			copy(row[(x+i)*Channels:], c[:])
		}
		return nil
	})
}

// renderEqualized shades in two passes: the first fills a scratch field of
// escape values, which is then histogrammed sequentially; the second
// remaps every pixel through the histogram's CDF. A non-nil field is used
// as the scratch field and keeps its values.
func (r *Renderer) renderEqualized(img *grid.Dense[uint8], pal palette.Palette, field []float32) error {
	height, width := img.Dim(0), img.Dim(1)
	if field == nil {
		field = r.fields.Get(height * width)
		defer r.fields.Put(field)
	}

	start := time.Now()
	if err := r.fillField(height, width, field); err != nil {
		return err
	}
	pass1 := time.Since(start)

	hist := histogram.Build(field, r.params.MaxIterations)
	Logger().Debug("mandel: histogram built",
		"escaped", hist.Total(),
		"pixels", len(field),
		"pass1", pass1)

	return r.dispatcher.Rows(height, func(y int) error {
		src := field[y*width : (y+1)*width]
		row := img.Row(y)
		for x, v := range src {
			if escape.InSet(v, r.params.MaxIterations) {
				continue // in set: black
			}
			c := pal[histogram.Index(hist.Remap(v), len(pal))]
			copy(row[x*Channels:], c[:])
		}
		return nil
	})
}

// fillField stores the field value of every pixel into dst (row-major,
// height*width entries).
func (r *Renderer) fillField(height, width int, dst []float32) error {
	return r.dispatcher.Blocks(height, width, parallel.BlockWidth, func(y, x, n int) error {
		var (
			cr  [parallel.BlockWidth]float32
			out [parallel.BlockWidth]escape.Sample
		)
		r.plane.Reals(x, width, cr[:n])
		r.kernel.Evaluate(cr[:n], r.plane.Imag(y, height), out[:n])

		row := dst[y*width+x : y*width+x+n]
		for i, s := range out[:n] {
			row[i] = escape.FieldValue(s, r.params)
		}
		return nil
	})
}

// Render renders a single image with a temporary Renderer.
//
// Example:
//
//	img, err := mandel.Render(1080, 1920, "magma", mandel.WithHistogramRemap(true))
func Render(height, width int, colormap string, opts ...Option) (*grid.Dense[uint8], error) {
	r, err := NewRenderer(opts...)
	if err != nil {
		return nil, err
	}
	defer r.Close()
	return r.Render(height, width, colormap)
}
