// Package palette provides named color tables for mapping escape values to
// RGB.
//
// The built-in palettes (magma, inferno, plasma, viridis, twilight and
// grayscale) are generated at init from a handful of color stops,
// interpolated in CIE L*a*b* space so that perceived lightness changes
// evenly along the table. Custom palettes can be added with Register.
//
// Names are matched case-insensitively. Lookup("") returns the default
// palette.
package palette

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/text/cases"
)

// Size is the number of entries in every built-in palette.
const Size = 256

// Default is the name of the palette used when none is given.
const Default = "magma"

// Palette errors.
var (
	// ErrUnknownPalette is returned by Lookup for an unregistered name.
	ErrUnknownPalette = errors.New("palette: unknown palette")

	// ErrEmptyPalette is returned when a palette has no entries.
	ErrEmptyPalette = errors.New("palette: empty palette")

	// ErrInvalidStop is returned by Generate for a malformed color stop.
	ErrInvalidStop = errors.New("palette: invalid color stop")
)

// RGB is an 8-bit sRGB color.
type RGB [3]uint8

// Palette is an ordered color table. Index 0 is the color of the lowest
// escape value.
type Palette []RGB

// Len returns the number of entries.
func (p Palette) Len() int {
	return len(p)
}

// At returns entry i, clamping i into range. An empty palette yields black.
func (p Palette) At(i int) RGB {
	if len(p) == 0 {
		return RGB{}
	}
	return p[min(max(i, 0), len(p)-1)]
}

// Generate builds an n-entry palette by interpolating hex color stops
// ("#rrggbb") evenly spaced along the table.
func Generate(n int, stops ...string) (Palette, error) {
	if n < 1 || len(stops) == 0 {
		return nil, ErrEmptyPalette
	}
	colors := make([]colorful.Color, len(stops))
	for i, s := range stops {
		c, err := colorful.Hex(s)
		if err != nil {
			return nil, fmt.Errorf("%w: %q: %w", ErrInvalidStop, s, err)
		}
		colors[i] = c
	}

	p := make(Palette, n)
	if len(colors) == 1 || n == 1 {
		r, g, b := colors[0].Clamped().RGB255()
		for i := range p {
			p[i] = RGB{r, g, b}
		}
		return p, nil
	}

	segments := len(colors) - 1
	for i := range n {
		// Position along the stops in [0, segments].
		pos := float64(i) / float64(n-1) * float64(segments)
		seg := min(int(pos), segments-1)
		c := colors[seg].BlendLab(colors[seg+1], pos-float64(seg)).Clamped()
		r, g, b := c.RGB255()
		p[i] = RGB{r, g, b}
	}
	return p, nil
}

var (
	registryMu sync.RWMutex
	registry   = map[string]Palette{}
)

// normalize folds a palette name for case-insensitive matching.
func normalize(name string) string {
	return cases.Fold().String(strings.TrimSpace(name))
}

// Register adds or replaces a named palette.
func Register(name string, p Palette) error {
	key := normalize(name)
	if key == "" {
		return fmt.Errorf("palette: register: empty name")
	}
	if len(p) == 0 {
		return fmt.Errorf("palette: register %q: %w", name, ErrEmptyPalette)
	}
	registryMu.Lock()
	registry[key] = slices.Clone(p)
	registryMu.Unlock()
	return nil
}

// Lookup returns the palette registered under name. The empty name selects
// Default. The returned palette is shared; callers must not modify it.
func Lookup(name string) (Palette, error) {
	key := normalize(name)
	if key == "" {
		key = Default
	}
	registryMu.RLock()
	p, ok := registry[key]
	registryMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownPalette, name)
	}
	return p, nil
}

// Names returns the registered palette names in sorted order.
func Names() []string {
	registryMu.RLock()
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	registryMu.RUnlock()
	slices.Sort(names)
	return names
}
