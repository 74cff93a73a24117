package engine

import (
	"math/rand/v2"
	"time"

	"github.com/trompeet/gridglow/constants"
	"github.com/trompeet/gridglow/surface"
)

// World owns the live object pools and the activation scheduler: the
// electrons currently wandering, the cells pinned for repeated
// repaints, and the single next-activation timestamp. All mutation
// happens on the frame path, single-writer by construction.
type World struct {
	clock   Clock
	rng     *rand.Rand
	palette *Palette

	width, height int // logical pixel bounds
	cols, rows    int // derived cell grid dimensions

	electrons []*Electron
	pinned    []*Cell

	// nextActivation gates random cell spawns; the zero value is
	// always due, so the first frame may activate immediately
	nextActivation time.Time
}

// NewWorld creates a world over the given time source, random source
// and palette. Nil arguments fall back to the system clock, a
// time-seeded PCG and the default palette.
func NewWorld(clock Clock, rng *rand.Rand, palette *Palette) *World {
	if clock == nil {
		clock = NewSystemClock()
	}
	if rng == nil {
		seed := uint64(time.Now().UnixNano())
		rng = rand.New(rand.NewPCG(seed, seed))
	}
	if palette == nil {
		palette = DefaultPalette
	}
	return &World{
		clock:   clock,
		rng:     rng,
		palette: palette,
	}
}

// Clock returns the world's time source
func (w *World) Clock() Clock {
	return w.clock
}

// Palette returns the world's color palette
func (w *World) Palette() *Palette {
	return w.palette
}

// SetBounds updates the logical pixel bounds and the derived cell grid
// dimensions. Live electrons and cells keep their absolute positions;
// items outside the new bounds simply paint off-surface.
func (w *World) SetBounds(width, height int) {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	w.width, w.height = width, height
	w.cols = width / constants.Pitch
	w.rows = height / constants.Pitch
}

// Bounds returns the logical pixel bounds
func (w *World) Bounds() (int, int) {
	return w.width, w.height
}

// GridSize returns the cell grid dimensions derived from the bounds
func (w *World) GridSize() (cols, rows int) {
	return w.cols, w.rows
}

// Electrons returns the live electron pool. The slice is owned by the
// world; callers only read it.
func (w *World) Electrons() []*Electron {
	return w.electrons
}

// Pinned returns the pinned cell pool. The slice is owned by the
// world; callers only read it.
func (w *World) Pinned() []*Cell {
	return w.pinned
}

// ElectronCount returns the number of live electrons
func (w *World) ElectronCount() int {
	return len(w.electrons)
}

// PinnedCount returns the number of pinned cells
func (w *World) PinnedCount() int {
	return len(w.pinned)
}

// ElectronHeadroom returns how many electrons may spawn before the
// soft cap is reached. Forced spawns ignore it, so the live count can
// temporarily exceed the cap and the headroom floor is zero.
func (w *World) ElectronHeadroom() int {
	n := constants.MaxElectrons - len(w.electrons)
	if n < 0 {
		return 0
	}
	return n
}

func (w *World) addElectron(e *Electron) {
	w.electrons = append(w.electrons, e)
}

// addPinned registers a cell for repeated repainting. Re-pinning is
// idempotent; the cell appears in the pool once.
func (w *World) addPinned(c *Cell) {
	for _, p := range w.pinned {
		if p == c {
			return
		}
	}
	w.pinned = append(w.pinned, c)
}

// UpdateElectrons prunes expired electrons and advances-and-paints the
// rest onto s. Expired items are removed before painting this frame;
// the index is re-evaluated after each mid-list removal so iteration
// stays sound.
func (w *World) UpdateElectrons(s *surface.Surface) {
	now := w.clock.Now()
	for i := 0; i < len(w.electrons); i++ {
		e := w.electrons[i]
		if e.Expired(now) {
			w.electrons = append(w.electrons[:i], w.electrons[i+1:]...)
			i--
			continue
		}
		e.PaintNextTo(s, now)
	}
}

// UpdatePinned prunes expired pinned cells and lets the rest repaint
// onto s when their schedule is due
func (w *World) UpdatePinned(s *surface.Surface) {
	now := w.clock.Now()
	for i := 0; i < len(w.pinned); i++ {
		c := w.pinned[i]
		if c.Expired(now) {
			w.pinned = append(w.pinned[:i], w.pinned[i+1:]...)
			i--
			continue
		}
		c.PaintNextTo(s)
	}
}

// MaybeActivate spawns one cell at a uniformly random grid position
// when the activation timestamp has come due, painting it once onto s.
// The timestamp always advances by a fresh random interval when due;
// the spawn itself is skipped entirely while the electron pool is at
// capacity or the grid has no room. Returns the activated cell, nil
// otherwise.
func (w *World) MaybeActivate(s *surface.Surface) *Cell {
	now := w.clock.Now()
	if now.Before(w.nextActivation) {
		return nil
	}
	w.nextActivation = now.Add(w.randDuration(constants.SpawnIntervalMin, constants.SpawnIntervalMax))

	if w.ElectronHeadroom() == 0 {
		return nil
	}
	if w.cols <= 0 || w.rows <= 0 {
		return nil
	}

	c := w.NewCell(w.rng.IntN(w.rows), w.rng.IntN(w.cols), CellOptions{})
	c.PaintNextTo(s)
	return c
}

// randDuration returns a random duration in [lo, hi), or lo when the
// range is empty
func (w *World) randDuration(lo, hi time.Duration) time.Duration {
	if hi <= lo {
		return lo
	}
	return lo + time.Duration(w.rng.Int64N(int64(hi-lo)))
}
