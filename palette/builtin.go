package palette

// Color stops of the built-in palettes, sampled at even intervals from the
// matplotlib colormaps of the same names.
var builtinStops = map[string][]string{
	"magma": {
		"#000004", "#1c1044", "#4f127b", "#812581", "#b5367a",
		"#e55064", "#fb8761", "#fec287", "#fcfdbf",
	},
	"inferno": {
		"#000004", "#1f0c48", "#550f6d", "#88226a", "#ba3655",
		"#e35933", "#f98e09", "#f8c931", "#fcffa4",
	},
	"plasma": {
		"#0d0887", "#4c02a1", "#7e03a8", "#a92395", "#cc4778",
		"#e56b5d", "#f89540", "#fdc527", "#f0f921",
	},
	"viridis": {
		"#440154", "#472d7b", "#3b528b", "#2c728e", "#21918c",
		"#28ae80", "#5ec962", "#addc30", "#fde725",
	},
	// Cyclic: starts and ends on the same light tone.
	"twilight": {
		"#e2d9e2", "#a6bcce", "#6f8fc4", "#5e5ea9", "#5a2f83",
		"#2f1436", "#72304f", "#a5514f", "#c98b6f", "#dcbdaa", "#e2d9e2",
	},
}

func init() {
	for name, stops := range builtinStops {
		p, err := Generate(Size, stops...)
		if err != nil {
			panic("palette: builtin " + name + ": " + err.Error())
		}
		registry[name] = p
	}
	registry["grayscale"] = Grayscale(Size)
}

// Grayscale returns an n-entry linear ramp from black to white.
func Grayscale(n int) Palette {
	p := make(Palette, n)
	if n == 1 {
		return p
	}
	for i := range p {
		//nolint:gosec // G115: value is in [0, 255]
		v := uint8((i*255 + (n-1)/2) / (n - 1))
		p[i] = RGB{v, v, v}
	}
	return p
}
