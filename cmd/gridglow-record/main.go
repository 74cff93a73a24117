package main

import (
	"bytes"
	"flag"
	"fmt"
	"image/jpeg"
	"math/rand/v2"
	"os"
	"strings"
	"time"

	"github.com/icza/mjpeg"
	"github.com/trompeet/gridglow/engine"
	"github.com/trompeet/gridglow/surface"
)

const jpegQuality = 90

func main() {
	var (
		out     string
		width   int
		height  int
		frames  int
		fps     int
		seed    int64
		palette string
	)
	flag.StringVar(&out, "o", "gridglow.avi", "Output AVI path")
	flag.IntVar(&width, "w", 640, "Frame width in pixels")
	flag.IntVar(&height, "h", 360, "Frame height in pixels")
	flag.IntVar(&frames, "frames", 600, "Number of frames to record")
	flag.IntVar(&fps, "fps", 60, "Playback frame rate")
	flag.Int64Var(&seed, "seed", 1, "Random seed")
	flag.StringVar(&palette, "palette", engine.DefaultPalette.Name,
		fmt.Sprintf("Color palette: %s", strings.Join(engine.PaletteNames(), ", ")))
	flag.Parse()

	if width < 1 || height < 1 || frames < 1 || fps < 1 {
		fmt.Fprintln(os.Stderr, "Width, height, frame count and fps must be positive")
		os.Exit(1)
	}

	// A manual clock stepped by exactly one frame period makes the
	// recording deterministic for a given seed, untied to wall time.
	clock := engine.NewManualClock(time.Unix(0, 0))
	rng := rand.New(rand.NewPCG(uint64(seed), uint64(seed)))
	world := engine.NewWorld(clock, rng, engine.PaletteByName(palette))

	animator := engine.NewAnimator(world, surface.New(width, height), surface.New(width, height))
	animator.FullPaint()

	writer, err := mjpeg.New(out, int32(width), int32(height), int32(fps))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating %s: %v\n", out, err)
		os.Exit(1)
	}

	step := time.Second / time.Duration(fps)
	var buf bytes.Buffer
	for i := 0; i < frames; i++ {
		animator.Frame()

		buf.Reset()
		if err := jpeg.Encode(&buf, animator.Main().Snapshot(), &jpeg.Options{Quality: jpegQuality}); err != nil {
			fmt.Fprintf(os.Stderr, "Error encoding frame %d: %v\n", i, err)
			os.Exit(1)
		}
		if err := writer.AddFrame(buf.Bytes()); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing frame %d: %v\n", i, err)
			os.Exit(1)
		}

		clock.Advance(step)
	}

	if err := writer.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "Error finishing %s: %v\n", out, err)
		os.Exit(1)
	}

	fmt.Printf("Wrote %d frames (%dx%d @ %d fps) to %s\n", frames, width, height, fps, out)
}
