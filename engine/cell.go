package engine

import (
	"time"

	"github.com/trompeet/gridglow/constants"
	"github.com/trompeet/gridglow/surface"
)

// PinForever pins a cell with no expiry
const PinForever time.Duration = 0

// CellOptions configures a new cell. The zero value asks for a random
// 1-4 electron spawn count, the palette's glow colors, and a spawn
// bounded by the global electron cap.
type CellOptions struct {
	// ElectronCount is how many electrons an activation spawns. Zero
	// picks 1-4 at random; a negative count disables spawning; counts
	// above 4 are capped at one electron per corner.
	ElectronCount int

	// Background is the additive fill of the cell interior. Zero uses
	// the palette's cell glow color.
	Background surface.RGB

	// ForceElectrons spawns the full requested count even when the
	// global electron pool is at capacity
	ForceElectrons bool

	// ElectronOptions is passed to every electron this cell spawns. A
	// zero color is replaced once with a palette hue, so one cell's
	// batch shares a color family.
	ElectronOptions ElectronOptions
}

// cornerOffset is a spawn point relative to the cell's grid intersection
type cornerOffset struct {
	dx, dy float64
}

// Cell is one square of the grid. When its schedule comes due it
// repaints its interior and spawns electrons from unused corners.
// An unpinned cell paints once and is garbage afterwards; a pinned
// cell stays in the world's pool and repaints until it expires.
type Cell struct {
	world *World

	x, y       float64 // pixel origin of the cell's grid intersection
	background surface.RGB
	count      int
	force      bool
	eopts      ElectronOptions

	// corners not yet used for a spawn; consumed over the cell's whole
	// life, never reset
	corners []cornerOffset

	nextUpdate time.Time // zero paints immediately
	expireAt   time.Time // zero never expires
}

// NewCell creates a cell at the given grid row and column
func (w *World) NewCell(row, col int, opts CellOptions) *Cell {
	count := opts.ElectronCount
	switch {
	case count == 0:
		count = 1 + w.rng.IntN(constants.MaxElectronsPerCell)
	case count < 0:
		count = 0
	case count > constants.MaxElectronsPerCell:
		count = constants.MaxElectronsPerCell
	}

	background := opts.Background
	if background == (surface.RGB{}) {
		background = w.palette.CellGlow
	}

	eopts := opts.ElectronOptions
	if eopts.Color == (surface.RGB{}) {
		eopts.Color = w.palette.ElectronColor(w.rng)
	}

	return &Cell{
		world:      w,
		x:          float64(col) * constants.Pitch,
		y:          float64(row) * constants.Pitch,
		background: background,
		count:      count,
		force:      opts.ForceElectrons,
		eopts:      eopts,
		corners: []cornerOffset{
			{0, 0},
			{constants.Pitch, 0},
			{0, constants.Pitch},
			{constants.Pitch, constants.Pitch},
		},
	}
}

// Origin returns the pixel position of the cell's grid intersection
func (c *Cell) Origin() (float64, float64) {
	return c.x, c.y
}

// Background returns the cell's additive fill color
func (c *Cell) Background() surface.RGB {
	return c.background
}

// Pin keeps the cell alive and repainting until now+lifeTime, or
// forever when lifeTime is not positive. Re-pinning an already pinned
// cell only moves its expiry.
func (c *Cell) Pin(lifeTime time.Duration) *Cell {
	if lifeTime > 0 {
		c.expireAt = c.world.clock.Now().Add(lifeTime)
	} else {
		c.expireAt = time.Time{}
	}
	c.world.addPinned(c)
	return c
}

// Delay pins the cell for one and a half times d and schedules its
// first repaint at now+d, staggering fresh cells after a full paint
func (c *Cell) Delay(d time.Duration) *Cell {
	c.Pin(d + d/2)
	c.nextUpdate = c.world.clock.Now().Add(d)
	return c
}

// ScheduleUpdate sets the next repaint to a random instant between
// now+lo and now+hi
func (c *Cell) ScheduleUpdate(lo, hi time.Duration) {
	c.nextUpdate = c.world.clock.Now().Add(c.world.randDuration(lo, hi))
}

// Expired reports whether the cell's pin has run out. A cell with no
// expiry never expires.
func (c *Cell) Expired(now time.Time) bool {
	return !c.expireAt.IsZero() && !now.Before(c.expireAt)
}

// PaintNextTo repaints the cell if its schedule is due: reschedules,
// spawns electrons from unused corners, then fills the interior
// additively so repeated paints keep the cell lit against the frame
// blend fading it out
func (c *Cell) PaintNextTo(s *surface.Surface) {
	now := c.world.clock.Now()
	if !c.nextUpdate.IsZero() && now.Before(c.nextUpdate) {
		return
	}
	c.ScheduleUpdate(constants.CellUpdateMin, constants.CellUpdateMax)
	c.CreateElectrons()
	s.Paint(func(ctx *surface.PaintContext) {
		ctx.SetFill(c.background)
		ctx.SetBlend(surface.BlendAdd)
		ctx.FillRect(
			c.x+constants.BorderWidth,
			c.y+constants.BorderWidth,
			constants.CellSize,
			constants.CellSize,
		)
	})
}

// CreateElectrons spawns up to the cell's configured count, each at a
// random unused corner. Unforced spawns are clamped to the headroom
// left under the global electron cap; every spawn is clamped to the
// corners still unused, so a cell never emits more than four electrons
// over its whole life. Returns how many were spawned.
func (c *Cell) CreateElectrons() int {
	if c.count <= 0 || len(c.corners) == 0 {
		return 0
	}
	n := c.count
	if !c.force {
		if headroom := c.world.ElectronHeadroom(); n > headroom {
			n = headroom
		}
	}
	if n > len(c.corners) {
		n = len(c.corners)
	}

	now := c.world.clock.Now()
	for i := 0; i < n; i++ {
		k := c.world.rng.IntN(len(c.corners))
		off := c.corners[k]
		c.corners[k] = c.corners[len(c.corners)-1]
		c.corners = c.corners[:len(c.corners)-1]
		c.world.addElectron(NewElectron(c.x+off.dx, c.y+off.dy, c.eopts, now, c.world.rng))
	}
	return n
}
