package main

import (
	"flag"
	"fmt"
	"io"
	"math"
	"math/rand/v2"
	"os"
	"strings"
	"time"

	"github.com/ajstarks/svgo"
	"github.com/trompeet/gridglow/constants"
	"github.com/trompeet/gridglow/engine"
	"github.com/trompeet/gridglow/surface"
)

// Opacity of the glow halo relative to the electron core
const haloOpacity = 0.25

func main() {
	var (
		out     string
		width   int
		height  int
		warmup  int
		seed    int64
		palette string
	)
	flag.StringVar(&out, "o", "", "Output SVG path, empty writes to stdout")
	flag.IntVar(&width, "w", 1280, "Poster width in pixels")
	flag.IntVar(&height, "h", 720, "Poster height in pixels")
	flag.IntVar(&warmup, "warmup", 180, "Frames to simulate before the snapshot")
	flag.Int64Var(&seed, "seed", 1, "Random seed")
	flag.StringVar(&palette, "palette", engine.DefaultPalette.Name,
		fmt.Sprintf("Color palette: %s", strings.Join(engine.PaletteNames(), ", ")))
	flag.Parse()

	if width < 1 || height < 1 || warmup < 0 {
		fmt.Fprintln(os.Stderr, "Width and height must be positive, warmup non-negative")
		os.Exit(1)
	}

	clock := engine.NewManualClock(time.Unix(0, 0))
	rng := rand.New(rand.NewPCG(uint64(seed), uint64(seed)))
	world := engine.NewWorld(clock, rng, engine.PaletteByName(palette))

	animator := engine.NewAnimator(world, surface.New(width, height), surface.New(width, height))
	animator.FullPaint()
	for i := 0; i < warmup; i++ {
		animator.Frame()
		clock.Advance(constants.FrameInterval)
	}

	var w io.Writer = os.Stdout
	if out != "" {
		f, err := os.Create(out)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating %s: %v\n", out, err)
			os.Exit(1)
		}
		defer f.Close()
		w = f
	}

	render(svg.New(w), world, width, height, clock.Now())
}

// render draws the world's current state as a poster: the resting grid
// first, then the pinned cells, then every live electron as a glowing
// pair of circles.
func render(canvas *svg.SVG, world *engine.World, width, height int, now time.Time) {
	pal := world.Palette()

	canvas.Start(width, height)
	canvas.Title("gridglow")

	canvas.Rect(0, 0, width, height, rgbStyle(pal.Background))

	canvas.Gstyle(rgbStyle(pal.GridLine) + ";stroke:none")
	for x := 0; x < width; x += constants.Pitch {
		canvas.Rect(x, 0, constants.BorderWidth, height)
	}
	for y := 0; y < height; y += constants.Pitch {
		canvas.Rect(0, y, width, constants.BorderWidth)
	}
	canvas.Gend()

	canvas.Gstyle(rgbStyle(pal.CellFill) + ";stroke:none")
	for y := 0; y < height; y += constants.Pitch {
		for x := 0; x < width; x += constants.Pitch {
			canvas.Rect(x+constants.BorderWidth, y+constants.BorderWidth,
				constants.CellSize, constants.CellSize)
		}
	}
	canvas.Gend()

	canvas.Gstyle("stroke:none")
	for _, cell := range world.Pinned() {
		x, y := cell.Origin()
		canvas.Rect(round(x)+constants.BorderWidth, round(y)+constants.BorderWidth,
			constants.CellSize, constants.CellSize, rgbStyle(cell.Background()))
	}

	coreRadius := round(constants.ElectronRadius)
	haloRadius := round(constants.ElectronRadius + constants.ElectronGlow)
	for _, e := range world.Electrons() {
		opacity := e.Opacity(now)
		if opacity <= 0 {
			continue
		}
		x, y := e.Position()
		c := e.Color()
		canvas.Circle(round(x), round(y), haloRadius,
			rgbStyle(c)+fmt.Sprintf(";fill-opacity:%.2f", opacity*haloOpacity))
		canvas.Circle(round(x), round(y), coreRadius,
			rgbStyle(c)+fmt.Sprintf(";fill-opacity:%.2f", opacity))
	}
	canvas.Gend()

	canvas.End()
}

func rgbStyle(c surface.RGB) string {
	return fmt.Sprintf("fill:rgb(%d,%d,%d)", c.R, c.G, c.B)
}

func round(v float64) int {
	return int(math.Round(v))
}
