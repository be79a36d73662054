package mandel

// Option configures a Renderer during creation.
// Use functional options to customize rendering.
//
// Example:
//
//	// Default settings: full view, 100 iterations, auto kernel
//	r, _ := mandel.NewRenderer()
//
//	// Equalized coloring on a zoomed region
//	r, _ := mandel.NewRenderer(
//	    mandel.WithHistogramRemap(true),
//	    mandel.WithPlane(mandel.Plane{RealMin: -0.8, RealMax: -0.7, ImagMin: 0.05, ImagMax: 0.15}),
//	    mandel.WithIterations(2000, 256),
//	)
type Option func(*options)

// options holds optional configuration for Renderer creation.
type options struct {
	config Config
	caps   Capabilities
}

// defaultOptions returns the default renderer options.
func defaultOptions() options {
	return options{
		config: DefaultConfig(),
		caps:   nil, // Will be set to HostCapabilities if nil
	}
}

// WithConfig replaces the whole configuration. Options applied after it
// override individual fields.
func WithConfig(cfg Config) Option {
	return func(o *options) {
		o.config = cfg
	}
}

// WithHistogramRemap enables or disables histogram-equalized coloring.
func WithHistogramRemap(enabled bool) Option {
	return func(o *options) {
		o.config.HistogramRemap = enabled
	}
}

// WithKernel selects the escape-time kernel.
func WithKernel(mode KernelMode) Option {
	return func(o *options) {
		o.config.Kernel = mode
	}
}

// WithWorkers sets the worker pool size. 0 uses GOMAXPROCS.
func WithWorkers(n int) Option {
	return func(o *options) {
		o.config.Workers = n
	}
}

// WithCapabilities overrides CPU capability detection.
// Use this for dependency injection in tests or to restrict kernels.
//
// Example:
//
//	type scalarOnly struct{}
//	func (scalarOnly) HasVector128() bool { return false }
//	func (scalarOnly) HasVector256() bool { return false }
//
//	r, _ := mandel.NewRenderer(mandel.WithCapabilities(scalarOnly{}))
func WithCapabilities(c Capabilities) Option {
	return func(o *options) {
		o.caps = c
	}
}

// WithPlane sets the region of the complex plane to render.
func WithPlane(p Plane) Option {
	return func(o *options) {
		o.config.Plane = p
	}
}

// WithIterations sets the iteration budget and bailout radius.
func WithIterations(maxIterations int, bailoutRadius float64) Option {
	return func(o *options) {
		o.config.MaxIterations = maxIterations
		o.config.BailoutRadius = bailoutRadius
	}
}
