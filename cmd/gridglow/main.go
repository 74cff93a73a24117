package main

import (
	"flag"
	"fmt"
	"log"
	"math/rand/v2"
	"os"
	"strings"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/trompeet/gridglow/audio"
	"github.com/trompeet/gridglow/constants"
	"github.com/trompeet/gridglow/engine"
	"github.com/trompeet/gridglow/surface"
	"github.com/trompeet/gridglow/terminal"
)

type app struct {
	view     *terminal.View
	animator *engine.Animator
	player   *audio.Player
}

func newApp(seed uint64, paletteName string, sound bool) (*app, error) {
	view, err := terminal.NewView()
	if err != nil {
		return nil, err
	}

	rng := rand.New(rand.NewPCG(seed, seed))
	world := engine.NewWorld(engine.NewSystemClock(), rng, engine.PaletteByName(paletteName))

	width, height := view.PixelSize()
	animator := engine.NewAnimator(world, surface.New(width, height), surface.New(width, height))
	animator.FullPaint()

	player, err := audio.NewPlayer(sound)
	if err != nil {
		// Non-fatal, the animation can run without sound
		log.Printf("Audio initialization failed: %v", err)
	}

	return &app{
		view:     view,
		animator: animator,
		player:   player,
	}, nil
}

func (a *app) run() {
	ticker := time.NewTicker(constants.FrameInterval)
	defer ticker.Stop()

	for {
		select {
		case ev, ok := <-a.view.Events():
			if !ok {
				return
			}
			if !a.handleEvent(ev) {
				return
			}

		case <-ticker.C:
			if cell := a.animator.Frame(); cell != nil {
				a.player.Blip()
			}
			a.view.Present(a.animator.Main())
		}
	}
}

func (a *app) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC {
			return false
		}
		if ev.Key() == tcell.KeyRune && (ev.Rune() == 'q' || ev.Rune() == 'Q') {
			return false
		}

	case *tcell.EventResize:
		a.animator.NotifyResize(a.view.PixelSize())
	}

	return true
}

func (a *app) cleanup() {
	a.player.Close()
	a.view.Fini()
}

func main() {
	var (
		seed    int64
		palette string
		sound   bool
	)
	flag.Int64Var(&seed, "seed", 0, "Random seed, 0 seeds from the current time")
	flag.StringVar(&palette, "palette", engine.DefaultPalette.Name,
		fmt.Sprintf("Color palette: %s", strings.Join(engine.PaletteNames(), ", ")))
	flag.BoolVar(&sound, "sound", false, "Play a short blip on cell activation")
	flag.Parse()

	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	app, err := newApp(uint64(seed), palette, sound)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		os.Exit(1)
	}
	defer app.cleanup()

	app.run()
}
