package mandel

import (
	"fmt"
	"strings"

	"github.com/gogpu/mandel/internal/cpufeat"
	"github.com/gogpu/mandel/internal/escape"
)

// Capabilities reports the vector instruction sets available to the
// renderer.
type Capabilities interface {
	// HasVector128 reports 128-bit float vectors (SSE2, NEON).
	HasVector128() bool

	// HasVector256 reports 256-bit float vectors (AVX2).
	HasVector256() bool
}

// HostCapabilities returns the capabilities of the running CPU.
func HostCapabilities() Capabilities {
	return cpufeat.Host{}
}

// KernelMode selects the escape-time kernel.
type KernelMode int

const (
	// KernelAuto picks the widest kernel the CPU supports.
	KernelAuto KernelMode = iota

	// KernelScalar evaluates one pixel at a time. Always available.
	KernelScalar

	// KernelLanes4 evaluates 4 pixels per step. Requires 128-bit vectors.
	KernelLanes4

	// KernelLanes8 evaluates 8 pixels per step. Requires 256-bit vectors.
	KernelLanes8
)

// String returns the kernel mode name.
func (m KernelMode) String() string {
	switch m {
	case KernelAuto:
		return "auto"
	case KernelScalar:
		return "scalar"
	case KernelLanes4:
		return "lanes4"
	case KernelLanes8:
		return "lanes8"
	default:
		return "unknown"
	}
}

// ParseKernelMode parses a kernel mode name (case-insensitive).
func ParseKernelMode(s string) (KernelMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "auto":
		return KernelAuto, nil
	case "scalar":
		return KernelScalar, nil
	case "lanes4":
		return KernelLanes4, nil
	case "lanes8":
		return KernelLanes8, nil
	default:
		return 0, fmt.Errorf("%w: unknown kernel %q (want auto, scalar, lanes4 or lanes8)", ErrInvalidConfig, s)
	}
}

// MarshalText implements encoding.TextMarshaler.
func (m KernelMode) MarshalText() ([]byte, error) {
	if m < KernelAuto || m > KernelLanes8 {
		return nil, fmt.Errorf("%w: kernel mode %d", ErrInvalidConfig, int(m))
	}
	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *KernelMode) UnmarshalText(text []byte) error {
	mode, err := ParseKernelMode(string(text))
	if err != nil {
		return err
	}
	*m = mode
	return nil
}

// SelectKernel resolves a kernel mode against the available capabilities.
//
// KernelAuto never fails: it prefers lanes8, then lanes4, and falls back to
// scalar (logging a warning) when no vector support is present. An explicit
// vector mode without the matching capability fails with
// ErrUnsupportedCapability.
func SelectKernel(mode KernelMode, caps Capabilities) (escape.Kind, error) {
	if caps == nil {
		caps = HostCapabilities()
	}
	switch mode {
	case KernelAuto:
		switch {
		case caps.HasVector256():
			return escape.KindLanes8, nil
		case caps.HasVector128():
			return escape.KindLanes4, nil
		default:
			Logger().Warn("mandel: no vector support detected, using scalar kernel")
			return escape.KindScalar, nil
		}
	case KernelScalar:
		return escape.KindScalar, nil
	case KernelLanes4:
		if !caps.HasVector128() {
			return "", fmt.Errorf("%w: lanes4 requires 128-bit vectors", ErrUnsupportedCapability)
		}
		return escape.KindLanes4, nil
	case KernelLanes8:
		if !caps.HasVector256() {
			return "", fmt.Errorf("%w: lanes8 requires 256-bit vectors", ErrUnsupportedCapability)
		}
		return escape.KindLanes8, nil
	default:
		return "", fmt.Errorf("%w: kernel mode %d", ErrInvalidConfig, int(mode))
	}
}
