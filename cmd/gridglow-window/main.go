package main

import (
	"flag"
	"fmt"
	"log"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/trompeet/gridglow/engine"
	"github.com/trompeet/gridglow/surface"
)

const (
	windowWidth  = 800
	windowHeight = 600
)

type game struct {
	animator *engine.Animator
	texture  *ebiten.Image
	showFPS  bool

	// Last window size seen by Layout, in device-independent pixels
	lastW, lastH int
}

func (g *game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		return ebiten.Termination
	}
	g.animator.Frame()
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	snap := g.animator.Main().Snapshot()
	pw := snap.Bounds().Dx()
	ph := snap.Bounds().Dy()
	if pw == 0 || ph == 0 {
		return
	}

	if g.texture == nil || !g.texture.Bounds().Eq(snap.Bounds()) {
		g.texture = ebiten.NewImage(pw, ph)
	}
	g.texture.WritePixels(snap.Pix)
	screen.DrawImage(g.texture, nil)

	if g.showFPS {
		ebitenutil.DebugPrint(screen, fmt.Sprintf("FPS: %0.2f", ebiten.ActualFPS()))
	}
}

// Layout renders at the monitor's native resolution: the layers keep
// the window's device-independent size as their logical size and the
// device scale factor as their pixel density.
func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != g.lastW || outsideHeight != g.lastH {
		g.lastW, g.lastH = outsideWidth, outsideHeight
		g.animator.NotifyResize(outsideWidth, outsideHeight)
	}

	scale := ebiten.Monitor().DeviceScaleFactor()
	pw := int(float64(outsideWidth) * scale)
	ph := int(float64(outsideHeight) * scale)
	if pw < 1 {
		pw = 1
	}
	if ph < 1 {
		ph = 1
	}
	return pw, ph
}

func main() {
	var (
		seed    int64
		palette string
		showFPS bool
	)
	flag.Int64Var(&seed, "seed", 0, "Random seed, 0 seeds from the current time")
	flag.StringVar(&palette, "palette", engine.DefaultPalette.Name,
		fmt.Sprintf("Color palette: %s", strings.Join(engine.PaletteNames(), ", ")))
	flag.BoolVar(&showFPS, "fps", false, "Show a frame rate overlay")
	flag.Parse()

	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	rng := rand.New(rand.NewPCG(uint64(seed), uint64(seed)))
	world := engine.NewWorld(engine.NewSystemClock(), rng, engine.PaletteByName(palette))

	scale := ebiten.Monitor().DeviceScaleFactor()
	animator := engine.NewAnimator(world,
		surface.NewScaled(windowWidth, windowHeight, scale),
		surface.NewScaled(windowWidth, windowHeight, scale))
	animator.FullPaint()

	g := &game{
		animator: animator,
		showFPS:  showFPS,
		lastW:    windowWidth,
		lastH:    windowHeight,
	}

	ebiten.SetWindowSize(windowWidth, windowHeight)
	ebiten.SetWindowTitle("gridglow")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(60)

	if err := ebiten.RunGame(g); err != nil {
		log.Fatal(err)
	}
}
