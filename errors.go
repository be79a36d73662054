package mandel

import (
	"errors"

	"github.com/gogpu/mandel/grid"
	"github.com/gogpu/mandel/internal/parallel"
	"github.com/gogpu/mandel/palette"
)

// Errors returned by Render and Renderer. Check them with errors.Is.
var (
	// ErrInvalidShape is returned for negative or overflowing image
	// dimensions and for grids a sink cannot encode.
	ErrInvalidShape = grid.ErrInvalidShape

	// ErrUnsupportedCapability is returned when a vector kernel is requested
	// explicitly on a CPU that lacks the required instructions.
	ErrUnsupportedCapability = errors.New("mandel: unsupported vector capability")

	// ErrWorkerFailure is wrapped by errors raised inside a render worker.
	ErrWorkerFailure = parallel.ErrWorkerFailure

	// ErrInvalidConfig is returned for a configuration that cannot be rendered.
	ErrInvalidConfig = errors.New("mandel: invalid config")

	// ErrUnknownPalette is returned for an unregistered colormap name.
	ErrUnknownPalette = palette.ErrUnknownPalette

	// ErrClosed is returned when rendering with a closed Renderer.
	ErrClosed = errors.New("mandel: renderer is closed")
)
