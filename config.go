package mandel

import (
	"errors"
	"fmt"
	"io"
	"math"

	"gopkg.in/yaml.v3"

	"github.com/gogpu/mandel/internal/escape"
	"github.com/gogpu/mandel/palette"
)

// Default rendering parameters.
const (
	DefaultMaxIterations = 100
	DefaultBailoutRadius = 256.0
)

// Plane is the rectangle of the complex plane covered by the image.
// Column 0 maps to RealMin and the last column to RealMax; row 0 maps to
// ImagMin and the last row to ImagMax.
type Plane struct {
	RealMin float64 `yaml:"real_min"`
	RealMax float64 `yaml:"real_max"`
	ImagMin float64 `yaml:"imag_min"`
	ImagMax float64 `yaml:"imag_max"`
}

// DefaultPlane returns the view of the whole set: [-2.5, 1] × [-1, 1].
func DefaultPlane() Plane {
	return Plane{RealMin: -2.5, RealMax: 1.0, ImagMin: -1.0, ImagMax: 1.0}
}

func (p Plane) escape() escape.Plane {
	return escape.Plane{
		RealStart: float32(p.RealMin),
		RealStop:  float32(p.RealMax),
		ImagStart: float32(p.ImagMin),
		ImagStop:  float32(p.ImagMax),
	}
}

// Config holds every parameter of a render.
//
// The zero Config is not valid; start from DefaultConfig.
type Config struct {
	// Plane is the region of the complex plane to render.
	Plane Plane `yaml:"plane"`

	// MaxIterations is the per-pixel iteration budget.
	MaxIterations int `yaml:"max_iterations"`

	// BailoutRadius is the escape radius. Larger radii give smoother
	// continuous coloring.
	BailoutRadius float64 `yaml:"bailout_radius"`

	// Kernel selects the escape-time kernel.
	Kernel KernelMode `yaml:"kernel"`

	// Workers is the worker pool size; 0 uses GOMAXPROCS.
	Workers int `yaml:"workers"`

	// HistogramRemap enables histogram-equalized coloring.
	HistogramRemap bool `yaml:"histogram_remap"`

	// Colormap is the default palette name for callers that do not pass one.
	Colormap string `yaml:"colormap"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		Plane:         DefaultPlane(),
		MaxIterations: DefaultMaxIterations,
		BailoutRadius: DefaultBailoutRadius,
		Kernel:        KernelAuto,
		Colormap:      palette.Default,
	}
}

// Validate reports whether the configuration can be rendered.
func (c Config) Validate() error {
	if c.MaxIterations < 1 || c.MaxIterations > math.MaxInt32 {
		return fmt.Errorf("%w: max_iterations %d out of range [1, %d]", ErrInvalidConfig, c.MaxIterations, math.MaxInt32)
	}
	if !(c.BailoutRadius > 0) || c.BailoutRadius > math.MaxFloat32 {
		return fmt.Errorf("%w: bailout_radius %v must be positive and finite", ErrInvalidConfig, c.BailoutRadius)
	}
	for _, v := range []float64{c.Plane.RealMin, c.Plane.RealMax, c.Plane.ImagMin, c.Plane.ImagMax} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: plane bounds must be finite", ErrInvalidConfig)
		}
	}
	if c.Workers < 0 {
		return fmt.Errorf("%w: workers %d < 0", ErrInvalidConfig, c.Workers)
	}
	if c.Kernel < KernelAuto || c.Kernel > KernelLanes8 {
		return fmt.Errorf("%w: kernel mode %d", ErrInvalidConfig, int(c.Kernel))
	}
	return nil
}

// params returns the kernel parameters. The config must be valid.
func (c Config) params() escape.Params {
	return escape.Params{
		MaxIterations: int32(c.MaxIterations), //nolint:gosec // G115: range checked by Validate
		Bailout:       float32(c.BailoutRadius),
	}
}

// LoadConfig reads a YAML configuration. Keys that are absent keep their
// DefaultConfig values; unknown keys are rejected. An empty document yields
// DefaultConfig.
func LoadConfig(r io.Reader) (Config, error) {
	cfg := DefaultConfig()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// YAML returns the configuration as a YAML document accepted by LoadConfig.
func (c Config) YAML() ([]byte, error) {
	out, err := yaml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("mandel: marshal config: %w", err)
	}
	return out, nil
}
