package surface

import "math"

// BlendMode selects how painted pixels combine with the buffer
type BlendMode uint8

const (
	// BlendReplace overwrites the destination pixel
	BlendReplace BlendMode = iota
	// BlendAlpha mixes toward the fill color by the context alpha
	BlendAlpha
	// BlendAdd brightens the destination by the fill color ("lighter"),
	// weighted by the context alpha; overlapping draws accumulate
	BlendAdd
)

// paintState is the scoped portion of the context, snapshotted and
// restored around every Paint call
type paintState struct {
	fill  RGB
	blend BlendMode
	alpha float64
}

// PaintContext carries the drawing state for one surface. All
// coordinates are logical; rasterization applies the surface scale.
type PaintContext struct {
	s     *Surface
	state paintState
}

func newPaintContext(s *Surface) *PaintContext {
	return &PaintContext{
		s:     s,
		state: paintState{fill: RGBBlack, blend: BlendReplace, alpha: 1},
	}
}

// Size returns the logical dimensions of the underlying surface
func (ctx *PaintContext) Size() (int, int) {
	return ctx.s.logicalW, ctx.s.logicalH
}

// SetFill sets the fill color for subsequent draws
func (ctx *PaintContext) SetFill(c RGB) {
	ctx.state.fill = c
}

// SetBlend sets the blend mode for subsequent draws
func (ctx *PaintContext) SetBlend(m BlendMode) {
	ctx.state.blend = m
}

// SetAlpha sets the draw opacity, clamped to [0, 1]
func (ctx *PaintContext) SetAlpha(a float64) {
	if a < 0 {
		a = 0
	}
	if a > 1 {
		a = 1
	}
	ctx.state.alpha = a
}

// FillRect paints an axis-aligned rectangle, clipped to the surface
func (ctx *PaintContext) FillRect(x, y, w, h float64) {
	if w <= 0 || h <= 0 {
		return
	}
	s := ctx.s
	x0 := int(math.Round(x * s.scale))
	y0 := int(math.Round(y * s.scale))
	x1 := int(math.Round((x + w) * s.scale))
	y1 := int(math.Round((y + h) * s.scale))
	if x0 < 0 {
		x0 = 0
	}
	if y0 < 0 {
		y0 = 0
	}
	if x1 > s.physW {
		x1 = s.physW
	}
	if y1 > s.physH {
		y1 = s.physH
	}
	for py := y0; py < y1; py++ {
		for px := x0; px < x1; px++ {
			s.compose(px, py, ctx.state.fill, ctx.state.blend, ctx.state.alpha)
		}
	}
}

// FillSquare paints a square with the given side length
func (ctx *PaintContext) FillSquare(x, y, side float64) {
	ctx.FillRect(x, y, side, side)
}

// GlowDot paints a filled circle of radius r plus a halo falling off
// to zero at r+glow, the software equivalent of a shadow-blurred dot.
// The halo intensity decays quadratically so the edge reads as glow
// rather than a hard ring.
func (ctx *PaintContext) GlowDot(x, y, r, glow float64) {
	reach := r + glow
	if reach <= 0 {
		return
	}
	s := ctx.s
	x0 := int(math.Floor((x - reach) * s.scale))
	y0 := int(math.Floor((y - reach) * s.scale))
	x1 := int(math.Ceil((x + reach) * s.scale))
	y1 := int(math.Ceil((y + reach) * s.scale))
	for py := y0; py <= y1; py++ {
		for px := x0; px <= x1; px++ {
			// Pixel center in logical space
			cx := (float64(px) + 0.5) / s.scale
			cy := (float64(py) + 0.5) / s.scale
			d := math.Hypot(cx-x, cy-y)
			if d > reach {
				continue
			}
			intensity := 1.0
			if d > r {
				falloff := 1.0 - (d-r)/glow
				intensity = falloff * falloff
			}
			s.compose(px, py, ctx.state.fill, ctx.state.blend, ctx.state.alpha*intensity)
		}
	}
}
