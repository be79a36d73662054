package escape

import (
	"errors"
	"fmt"
)

// ErrUnknownKind is returned by New for an unrecognized kernel kind.
var ErrUnknownKind = errors.New("escape: unknown kernel kind")

// Kind names a kernel implementation.
type Kind string

// Kernel kinds.
const (
	// KindScalar evaluates one pixel at a time.
	KindScalar Kind = "scalar"

	// KindLanes4 evaluates 4 pixels per step (128-bit vectors: SSE2, NEON).
	KindLanes4 Kind = "lanes4"

	// KindLanes8 evaluates 8 pixels per step (256-bit vectors: AVX2).
	KindLanes8 Kind = "lanes8"
)

// Kernel evaluates the escape-time iteration for a run of pixels.
//
// Evaluate iterates every c = cr[i] + ci·i and stores the result in out[i].
// out must be at least len(cr) long. Implementations hold no mutable state
// and are safe for concurrent use.
type Kernel interface {
	// Name returns the kernel kind.
	Name() Kind

	// Lanes returns the number of pixels evaluated per vector step.
	Lanes() int

	// Evaluate iterates the pixels of one row segment.
	Evaluate(cr []float32, ci float32, out []Sample)
}

// New creates a kernel of the given kind.
func New(kind Kind, p Params) (Kernel, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	switch kind {
	case KindScalar:
		return &Scalar{params: p}, nil
	case KindLanes4:
		return &Lanes4{params: p}, nil
	case KindLanes8:
		return &Lanes8{params: p}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}
}

// Kinds returns all kernel kinds, narrowest first.
func Kinds() []Kind {
	return []Kind{KindScalar, KindLanes4, KindLanes8}
}
