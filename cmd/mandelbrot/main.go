// Command mandelbrot renders the Mandelbrot set to an image file.
//
// Usage:
//
//	mandelbrot OUTPUT [flags]
//
// The output format is chosen by extension (.png, .bmp, .tif). Settings are
// read from an optional YAML file (--config) and overridden by any flag
// given explicitly.
package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/gogpu/mandel"
	"github.com/gogpu/mandel/grid"
	"github.com/gogpu/mandel/internal/cpufeat"
	"github.com/gogpu/mandel/palette"
	"github.com/gogpu/mandel/sink"
)

// cliOptions holds the parsed command-line flags.
type cliOptions struct {
	width       int
	height      int
	supersample int
	colormap    string
	histogram   bool
	kernel      string
	workers     int
	iterations  int
	bailout     float64
	configPath  string
	fieldPath   string
	verbose     bool
	printConfig bool
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	o := &cliOptions{}
	cmd := &cobra.Command{
		Use:   "mandelbrot OUTPUT",
		Short: "Render the Mandelbrot set to an image file",
		Long: `Render the Mandelbrot set to a PNG, BMP or TIFF image.

Pixels are colored by their smoothed escape value through a named palette
(` + fmt.Sprint(palette.Names()) + `); --histogram equalizes the
colors over the image. Points inside the set are black.`,
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			output := ""
			if len(args) == 1 {
				output = args[0]
			}
			return run(cmd, output, o)
		},
	}

	f := cmd.Flags()
	f.IntVar(&o.width, "width", 3840, "image width in pixels")
	f.IntVar(&o.height, "height", 2160, "image height in pixels")
	f.IntVar(&o.supersample, "supersample", 1, "render at N times the size and downsample (anti-aliasing)")
	f.StringVar(&o.colormap, "colormap", "", "palette name (default from config, else magma)")
	f.BoolVar(&o.histogram, "histogram", false, "equalize colors with a histogram remap")
	f.StringVar(&o.kernel, "kernel", "auto", "kernel: auto, scalar, lanes4, lanes8")
	f.IntVar(&o.workers, "workers", 0, "worker count (0 = GOMAXPROCS)")
	f.IntVar(&o.iterations, "iterations", mandel.DefaultMaxIterations, "maximum iterations per pixel")
	f.Float64Var(&o.bailout, "bailout", mandel.DefaultBailoutRadius, "bailout radius")
	f.StringVar(&o.configPath, "config", "", "YAML configuration file")
	f.StringVar(&o.fieldPath, "field", "", "also write the raw escape field (zstd) to this file")
	f.BoolVarP(&o.verbose, "verbose", "v", false, "debug logging")
	f.BoolVar(&o.printConfig, "print-config", false, "print the effective configuration as YAML and exit")
	return cmd
}

// loadConfig merges the config file (if any) with explicitly set flags.
func loadConfig(cmd *cobra.Command, o *cliOptions) (mandel.Config, error) {
	cfg := mandel.DefaultConfig()
	if o.configPath != "" {
		file, err := os.Open(o.configPath)
		if err != nil {
			return cfg, fmt.Errorf("open config: %w", err)
		}
		defer func() { _ = file.Close() }()
		if cfg, err = mandel.LoadConfig(file); err != nil {
			return cfg, fmt.Errorf("%s: %w", o.configPath, err)
		}
	}

	f := cmd.Flags()
	if f.Changed("histogram") {
		cfg.HistogramRemap = o.histogram
	}
	if f.Changed("kernel") {
		mode, err := mandel.ParseKernelMode(o.kernel)
		if err != nil {
			return cfg, err
		}
		cfg.Kernel = mode
	}
	if f.Changed("workers") {
		cfg.Workers = o.workers
	}
	if f.Changed("iterations") {
		cfg.MaxIterations = o.iterations
	}
	if f.Changed("bailout") {
		cfg.BailoutRadius = o.bailout
	}
	if f.Changed("colormap") {
		cfg.Colormap = o.colormap
	}
	return cfg, cfg.Validate()
}

func run(cmd *cobra.Command, output string, o *cliOptions) error {
	level := slog.LevelInfo
	if o.verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
	mandel.SetLogger(logger)

	cfg, err := loadConfig(cmd, o)
	if err != nil {
		return err
	}
	if o.printConfig {
		out, err := cfg.YAML()
		if err != nil {
			return err
		}
		_, err = cmd.OutOrStdout().Write(out)
		return err
	}

	if output == "" {
		return errors.New("missing OUTPUT file")
	}
	if _, err := sink.FormatFromPath(output); err != nil {
		return err
	}
	if o.width <= 0 || o.height <= 0 {
		return fmt.Errorf("invalid size %dx%d: width and height must be positive", o.width, o.height)
	}
	if o.supersample < 1 || o.supersample > 8 {
		return fmt.Errorf("invalid supersample factor %d: must be between 1 and 8", o.supersample)
	}

	colormap := cfg.Colormap
	if _, err := palette.Lookup(colormap); err != nil {
		logger.Warn("unknown colormap, using default", "colormap", colormap, "default", palette.Default)
		colormap = palette.Default
	}

	logger.Debug("cpu features", "detected", cpufeat.Describe())
	r, err := mandel.NewRenderer(mandel.WithConfig(cfg))
	if err != nil {
		return err
	}
	defer r.Close()

	img, field, elapsed, err := render(r, o, colormap)
	if err != nil {
		return err
	}

	var g errgroup.Group
	g.Go(func() error { return sink.Save(output, img) })
	if field != nil {
		g.Go(func() error { return sink.SaveField(o.fieldPath, field) })
	}
	if err := g.Wait(); err != nil {
		return err
	}

	printSummary(cmd.OutOrStdout(), r, o, output, elapsed)
	return nil
}

// render produces the image and, when --field is set, the escape field at
// the output resolution. Without supersampling both come from one kernel
// pass; a supersampled image needs a separate field pass.
func render(r *mandel.Renderer, o *cliOptions, colormap string) (*grid.Dense[uint8], *grid.Dense[float32], time.Duration, error) {
	start := time.Now()
	if o.supersample == 1 {
		var (
			img   *grid.Dense[uint8]
			field *grid.Dense[float32]
			err   error
		)
		if o.fieldPath != "" {
			img, field, err = r.RenderWithField(o.height, o.width, colormap)
		} else {
			img, err = r.Render(o.height, o.width, colormap)
		}
		return img, field, time.Since(start), err
	}

	img, err := r.Render(o.height*o.supersample, o.width*o.supersample, colormap)
	if err != nil {
		return nil, nil, 0, err
	}
	if img, err = sink.Downsample(img, o.height, o.width); err != nil {
		return nil, nil, 0, err
	}
	elapsed := time.Since(start)

	var field *grid.Dense[float32]
	if o.fieldPath != "" {
		if field, err = r.RenderField(o.height, o.width); err != nil {
			return nil, nil, 0, err
		}
	}
	return img, field, elapsed, nil
}

func printSummary(w io.Writer, r *mandel.Renderer, o *cliOptions, output string, elapsed time.Duration) {
	p := message.NewPrinter(language.English)
	p.Fprintf(w, "rendered %d pixels (%d x %d) with the %s kernel on %d workers in %v\n",
		o.width*o.height, o.width, o.height, r.Kernel(), r.Workers(), elapsed.Round(time.Millisecond))
	if o.supersample > 1 {
		p.Fprintf(w, "supersampled %dx\n", o.supersample)
	}
	p.Fprintf(w, "wrote %s\n", output)
	if o.fieldPath != "" {
		p.Fprintf(w, "wrote %s\n", o.fieldPath)
	}
}
