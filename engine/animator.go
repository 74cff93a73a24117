package engine

import (
	"time"

	"github.com/trompeet/gridglow/constants"
	"github.com/trompeet/gridglow/surface"
)

// Animator orchestrates one frame of the animation over two layers: a
// static grid surface repainted only on resize, and a main surface the
// live items draw onto. Each frame the grid is blended into the main
// layer at low opacity, which fades the previous frame's glows toward
// the resting grid and produces the trails.
type Animator struct {
	world *World
	main  *surface.Surface
	grid  *surface.Surface

	// Debounced resize: the deadline restarts on every notification
	// and the pending size is applied at the first frame past it
	resizeAt time.Time
	pendingW int
	pendingH int
}

// NewAnimator wires a world to its two layers. The main layer's
// resize event triggers a full paint, matching the startup wiring.
func NewAnimator(world *World, main, grid *surface.Surface) *Animator {
	a := &Animator{
		world: world,
		main:  main,
		grid:  grid,
	}
	w, h := main.Size()
	world.SetBounds(w, h)
	main.OnResize(func(ctx *surface.PaintContext, s *surface.Surface) {
		a.FullPaint()
	})
	return a
}

// World returns the animated world
func (a *Animator) World() *World {
	return a.world
}

// Main returns the composited presentation layer
func (a *Animator) Main() *surface.Surface {
	return a.main
}

// Grid returns the static background layer
func (a *Animator) Grid() *surface.Surface {
	return a.grid
}

// Frame runs one animation step: apply a settled resize, fade the
// main layer toward the grid, let pinned cells repaint, advance and
// paint all electrons, then maybe activate a fresh cell. The activated
// cell, if any, is returned so callers can react to it.
func (a *Animator) Frame() *Cell {
	now := a.world.Clock().Now()
	if !a.resizeAt.IsZero() && !now.Before(a.resizeAt) {
		a.applyResize()
	}

	a.main.BlendLayer(a.grid, constants.BackgroundBlendOpacity)
	a.world.UpdatePinned(a.main)
	a.world.UpdateElectrons(a.main)
	return a.world.MaybeActivate(a.main)
}

// NotifyResize records a new target size and restarts the debounce
// window. Repeated notifications coalesce; the size is applied by the
// first Frame call after the window settles.
func (a *Animator) NotifyResize(w, h int) {
	a.pendingW, a.pendingH = w, h
	a.resizeAt = a.world.Clock().Now().Add(constants.ResizeDebounce)
}

// applyResize pushes the pending size into the world and both layers.
// The grid resizes first so the full paint fired by the main layer's
// resize subscriber samples a grid of the new size.
func (a *Animator) applyResize() {
	a.resizeAt = time.Time{}
	a.world.SetBounds(a.pendingW, a.pendingH)
	a.grid.Resize(a.pendingW, a.pendingH)
	a.main.Resize(a.pendingW, a.pendingH)
}

// FullPaint redraws the static grid, flashes the main layer with the
// palette highlight, settles it with a strong grid blend, then seeds a
// few staggered cells so the scene opens with activity
func (a *Animator) FullPaint() {
	pal := a.world.Palette()

	a.grid.Repaint(func(ctx *surface.PaintContext) {
		paintGrid(ctx, pal)
	})

	a.main.Repaint(func(ctx *surface.PaintContext) {
		w, h := ctx.Size()
		ctx.SetFill(pal.Highlight)
		ctx.FillRect(0, 0, float64(w), float64(h))
	})
	a.main.BlendLayer(a.grid, constants.ResizeFlashBlendOpacity)

	a.seedCells()
}

// seedCells pins a handful of randomly placed cells with staggered
// first repaints
func (a *Animator) seedCells() {
	w := a.world
	cols, rows := w.GridSize()
	if cols <= 0 || rows <= 0 {
		return
	}
	for i := 0; i < constants.InitialPinnedCells; i++ {
		delay := w.randDuration(constants.InitialDelayMin, constants.InitialDelayMax)
		w.NewCell(w.rng.IntN(rows), w.rng.IntN(cols), CellOptions{}).Delay(delay)
	}
}

// paintGrid draws the resting scene: backdrop, grid lines at every
// pitch, and the dim cell interiors between them
func paintGrid(ctx *surface.PaintContext, pal *Palette) {
	w, h := ctx.Size()
	fw, fh := float64(w), float64(h)

	ctx.SetFill(pal.Background)
	ctx.FillRect(0, 0, fw, fh)

	ctx.SetFill(pal.GridLine)
	for x := 0.0; x < fw; x += constants.Pitch {
		ctx.FillRect(x, 0, constants.BorderWidth, fh)
	}
	for y := 0.0; y < fh; y += constants.Pitch {
		ctx.FillRect(0, y, fw, constants.BorderWidth)
	}

	ctx.SetFill(pal.CellFill)
	for y := 0.0; y < fh; y += constants.Pitch {
		for x := 0.0; x < fw; x += constants.Pitch {
			ctx.FillRect(x+constants.BorderWidth, y+constants.BorderWidth,
				constants.CellSize, constants.CellSize)
		}
	}
}
