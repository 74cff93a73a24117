package engine

import (
	"math"
	"math/rand/v2"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"
	"github.com/trompeet/gridglow/surface"
)

// Palette holds the fixed scene colors plus the hue family electrons
// draw from. Electron colors are generated in HSV so jitter moves
// along the hue wheel instead of washing toward gray.
type Palette struct {
	Name string

	Background surface.RGB // scene backdrop behind the grid
	GridLine   surface.RGB // the lines separating cells
	CellFill   surface.RGB // resting cell interior
	CellGlow   surface.RGB // additive fill of an activated cell
	Highlight  surface.RGB // full-paint flash color

	electronHue    float64 // base hue in degrees
	electronJitter float64 // spread around the base hue
	electronSat    float64
	electronVal    float64
}

// Built-in palettes
var (
	// Circuit is the default look, a cool blue board with cyan electrons
	Circuit = &Palette{
		Name:           "circuit",
		Background:     surface.RGB{4, 6, 12},
		GridLine:       surface.RGB{14, 22, 38},
		CellFill:       surface.RGB{8, 12, 22},
		CellGlow:       surface.RGB{10, 26, 44},
		Highlight:      surface.RGB{235, 244, 255},
		electronHue:    195,
		electronJitter: 40,
		electronSat:    0.85,
		electronVal:    1.0,
	}

	// Ember trades the cool board for warm coals and orange sparks
	Ember = &Palette{
		Name:           "ember",
		Background:     surface.RGB{10, 5, 3},
		GridLine:       surface.RGB{36, 18, 10},
		CellFill:       surface.RGB{18, 9, 5},
		CellGlow:       surface.RGB{48, 20, 8},
		Highlight:      surface.RGB{255, 242, 230},
		electronHue:    25,
		electronJitter: 18,
		electronSat:    0.95,
		electronVal:    1.0,
	}

	// Mono is a grayscale palette with pure white electrons
	Mono = &Palette{
		Name:           "mono",
		Background:     surface.RGB{6, 6, 6},
		GridLine:       surface.RGB{26, 26, 26},
		CellFill:       surface.RGB{12, 12, 12},
		CellGlow:       surface.RGB{34, 34, 34},
		Highlight:      surface.RGB{250, 250, 250},
		electronHue:    0,
		electronJitter: 0,
		electronSat:    0,
		electronVal:    1.0,
	}
)

// DefaultPalette is the palette used when none is requested
var DefaultPalette = Circuit

// PaletteNames lists the built-in palette names in presentation order
func PaletteNames() []string {
	return []string{Circuit.Name, Ember.Name, Mono.Name}
}

// PaletteByName returns the named built-in palette, falling back to
// the default for unknown names
func PaletteByName(name string) *Palette {
	switch strings.ToLower(name) {
	case Circuit.Name:
		return Circuit
	case Ember.Name:
		return Ember
	case Mono.Name:
		return Mono
	default:
		return DefaultPalette
	}
}

// ElectronColor returns a fresh electron color with the palette's hue
// jittered, so particles stay in one family without being identical
func (p *Palette) ElectronColor(rng *rand.Rand) surface.RGB {
	h := p.electronHue
	if p.electronJitter > 0 {
		h += p.electronJitter * (rng.Float64()*2 - 1)
	}
	return rgbFromHsv(h, p.electronSat, p.electronVal)
}

// rgbFromHsv converts an HSV triple to a surface color, wrapping the
// hue onto [0, 360)
func rgbFromHsv(h, s, v float64) surface.RGB {
	h = math.Mod(h, 360)
	if h < 0 {
		h += 360
	}
	r, g, b := colorful.Hsv(h, s, v).RGB255()
	return surface.RGB{R: r, G: g, B: b}
}
