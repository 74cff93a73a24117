package engine

import (
	"math"
	"math/rand/v2"
	"time"

	"github.com/trompeet/gridglow/constants"
	"github.com/trompeet/gridglow/surface"
)

// ElectronOptions configures a spawned electron. Zero values fall back
// to the package defaults.
type ElectronOptions struct {
	LifeTime time.Duration
	Speed    float64
	Color    surface.RGB
}

// gridPoint identifies a grid intersection by integer indices, used to
// key the visited set without comparing raw float coordinates
type gridPoint struct {
	col, row int
}

func pointKey(x, y float64) gridPoint {
	return gridPoint{
		col: int(math.Round(x / constants.Pitch)),
		row: int(math.Round(y / constants.Pitch)),
	}
}

// Electron is a short-lived glowing dot that wanders between adjacent
// grid intersections, preferring intersections it has not visited yet.
// It fades linearly over its life span and is pruned by the world once
// expired.
type Electron struct {
	x, y         float64
	destX, destY float64

	speed    float64
	radius   float64
	color    surface.RGB
	lifeTime time.Duration
	expireAt time.Time

	visited map[gridPoint]struct{}
	rng     *rand.Rand
}

// NewElectron creates an electron at the given pixel position and
// immediately picks its first destination among the four cardinal
// neighbor intersections
func NewElectron(x, y float64, opts ElectronOptions, now time.Time, rng *rand.Rand) *Electron {
	if opts.LifeTime <= 0 {
		opts.LifeTime = constants.ElectronLifeTime
	}
	if opts.Speed <= 0 {
		opts.Speed = constants.StepLength
	}
	if opts.Color == (surface.RGB{}) {
		opts.Color = surface.RGBWhite
	}

	e := &Electron{
		x:        x,
		y:        y,
		speed:    opts.Speed,
		radius:   constants.ElectronRadius,
		color:    opts.Color,
		lifeTime: opts.LifeTime,
		expireAt: now.Add(opts.LifeTime),
		visited:  make(map[gridPoint]struct{}, constants.DestinationTries),
		rng:      rng,
	}
	e.chooseDestination()
	return e
}

// chooseDestination picks a random cardinal neighbor one pitch away,
// retrying against the visited set. The search is bounded: after the
// last try the candidate is accepted even if already visited, which
// keeps the walk from stalling in a fully-explored pocket.
func (e *Electron) chooseDestination() {
	var cx, cy float64
	for try := 0; try < constants.DestinationTries; try++ {
		cx, cy = e.x, e.y
		switch e.rng.IntN(4) {
		case 0:
			cx += constants.Pitch
		case 1:
			cx -= constants.Pitch
		case 2:
			cy += constants.Pitch
		case 3:
			cy -= constants.Pitch
		}
		if _, seen := e.visited[pointKey(cx, cy)]; !seen {
			break
		}
	}
	e.destX, e.destY = cx, cy
	e.visited[pointKey(cx, cy)] = struct{}{}
}

// arrived reports whether the position is within half a step of the
// destination on both axes
func (e *Electron) arrived() bool {
	return math.Abs(e.destX-e.x) < e.speed/2 && math.Abs(e.destY-e.y) < e.speed/2
}

// Next advances the electron by one step: picks a new destination on
// arrival, then moves by exactly the step speed along each axis with a
// remaining delta. Returns the new position.
func (e *Electron) Next() (float64, float64) {
	if e.arrived() {
		e.chooseDestination()
	}
	if dx := e.destX - e.x; dx != 0 {
		e.x += math.Copysign(e.speed, dx)
	}
	if dy := e.destY - e.y; dy != 0 {
		e.y += math.Copysign(e.speed, dy)
	}
	return e.x, e.y
}

// Position returns the current pixel position without advancing
func (e *Electron) Position() (float64, float64) {
	return e.x, e.y
}

// Color returns the electron's draw color
func (e *Electron) Color() surface.RGB {
	return e.color
}

// Opacity returns the remaining life fraction in [0, 1]. It reaches
// exactly 0 at the expiry instant.
func (e *Electron) Opacity(now time.Time) float64 {
	remaining := e.expireAt.Sub(now)
	if remaining <= 0 {
		return 0
	}
	frac := float64(remaining) / float64(e.lifeTime)
	if frac > 1 {
		return 1
	}
	return frac
}

// Expired reports whether the electron's life span has run out
func (e *Electron) Expired(now time.Time) bool {
	return !now.Before(e.expireAt)
}

// PaintNextTo advances the electron and paints it as an additive glow
// dot at its new position, faded by remaining life
func (e *Electron) PaintNextTo(s *surface.Surface, now time.Time) {
	x, y := e.Next()
	alpha := e.Opacity(now)
	if alpha <= 0 {
		return
	}
	s.Paint(func(ctx *surface.PaintContext) {
		ctx.SetFill(e.color)
		ctx.SetBlend(surface.BlendAdd)
		ctx.SetAlpha(alpha)
		ctx.GlowDot(x, y, e.radius, constants.ElectronGlow)
	})
}
