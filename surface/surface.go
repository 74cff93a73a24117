package surface

import (
	"image"
	"math"
)

// DrawFunc receives the scoped paint context during Paint
type DrawFunc func(*PaintContext)

// ResizeFunc is invoked with the paint context and the surface after
// every applied resize
type ResizeFunc func(*PaintContext, *Surface)

// Surface is a software compositor over an RGB pixel buffer. Drawing
// commands are issued in logical coordinates and rasterized into a
// physical buffer scaled by the device pixel ratio, so logical-pixel
// drawing stays valid across scales.
type Surface struct {
	buf []RGB // Optimization: persistent buffer, reallocated only on growth

	logicalW, logicalH int
	physW, physH       int
	scale              float64

	ctx         *PaintContext
	subscribers []ResizeFunc
}

// New creates an unscaled surface with the given logical dimensions
func New(w, h int) *Surface {
	return NewScaled(w, h, 1)
}

// NewScaled creates a surface whose physical buffer is the logical size
// multiplied by scale (the device pixel ratio)
func NewScaled(w, h int, scale float64) *Surface {
	if scale <= 0 {
		scale = 1
	}
	s := &Surface{scale: scale}
	s.ctx = newPaintContext(s)
	s.Resize(w, h)
	return s
}

// Size returns the logical dimensions
func (s *Surface) Size() (int, int) {
	return s.logicalW, s.logicalH
}

// PhysicalSize returns the allocated pixel buffer dimensions
func (s *Surface) PhysicalSize() (int, int) {
	return s.physW, s.physH
}

// Scale returns the device pixel ratio applied to drawing commands
func (s *Surface) Scale() float64 {
	return s.scale
}

// Resize recomputes logical and physical dimensions, reallocates the
// buffer only if capacity is insufficient, clears, then notifies
// resize subscribers. Notification is skipped entirely when none are
// registered.
func (s *Surface) Resize(w, h int) {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	s.logicalW, s.logicalH = w, h
	s.physW = int(math.Round(float64(w) * s.scale))
	s.physH = int(math.Round(float64(h) * s.scale))

	size := s.physW * s.physH
	if cap(s.buf) < size {
		s.buf = make([]RGB, size)
	} else {
		s.buf = s.buf[:size]
	}
	s.Clear()

	if len(s.subscribers) == 0 {
		return
	}
	for _, fn := range s.subscribers {
		fn(s.ctx, s)
	}
}

// Clear resets every pixel to black using exponential copy
func (s *Surface) Clear() {
	if len(s.buf) == 0 {
		return
	}
	s.buf[0] = RGBBlack
	for filled := 1; filled < len(s.buf); filled *= 2 {
		copy(s.buf[filled:], s.buf[:filled])
	}
}

// Paint runs fn against the paint context with scoped state: the
// context's fill, blend mode and alpha are restored afterwards even if
// fn panics, so no paint state leaks across calls. A nil fn is a
// silent no-op. Returns the surface for chaining.
func (s *Surface) Paint(fn DrawFunc) *Surface {
	if fn == nil {
		return s
	}
	saved := s.ctx.state
	defer func() { s.ctx.state = saved }()
	fn(s.ctx)
	return s
}

// Repaint clears the surface and then paints
func (s *Surface) Repaint(fn DrawFunc) *Surface {
	s.Clear()
	return s.Paint(fn)
}

// BlendLayer composites other's current pixels onto this surface at
// the given opacity, sampled nearest-neighbor to this surface's size.
// Each pixel moves toward the sampled color by opacity, so repeating
// a low-opacity blend every frame fades old content into the layer
// underneath (the trail effect).
func (s *Surface) BlendLayer(other *Surface, opacity float64) {
	if other == nil || opacity <= 0 {
		return
	}
	if s.physW == 0 || s.physH == 0 || other.physW == 0 || other.physH == 0 {
		return
	}
	for py := 0; py < s.physH; py++ {
		sy := py * other.physH / s.physH
		srcRow := sy * other.physW
		dstRow := py * s.physW
		for px := 0; px < s.physW; px++ {
			sx := px * other.physW / s.physW
			idx := dstRow + px
			s.buf[idx] = Blend(s.buf[idx], other.buf[srcRow+sx], opacity)
		}
	}
}

// OnResize registers a callback fired after every applied resize
func (s *Surface) OnResize(fn ResizeFunc) {
	if fn == nil {
		return
	}
	s.subscribers = append(s.subscribers, fn)
}

// At returns the pixel at logical coordinates, black when out of bounds
func (s *Surface) At(x, y int) RGB {
	px := int(float64(x) * s.scale)
	py := int(float64(y) * s.scale)
	if px < 0 || px >= s.physW || py < 0 || py >= s.physH {
		return RGBBlack
	}
	return s.buf[py*s.physW+px]
}

// Snapshot copies the physical buffer into an opaque image.RGBA for
// export sinks (texture upload, JPEG encoding)
func (s *Surface) Snapshot() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, s.physW, s.physH))
	for i, c := range s.buf {
		o := i * 4
		img.Pix[o] = c.R
		img.Pix[o+1] = c.G
		img.Pix[o+2] = c.B
		img.Pix[o+3] = 0xFF
	}
	return img
}

// inBounds returns true if the physical coordinate is inside the buffer
func (s *Surface) inBounds(px, py int) bool {
	return px >= 0 && px < s.physW && py >= 0 && py < s.physH
}

// compose writes one physical pixel through the given blend operation
func (s *Surface) compose(px, py int, src RGB, mode BlendMode, alpha float64) {
	if !s.inBounds(px, py) {
		return
	}
	idx := py*s.physW + px
	switch mode {
	case BlendReplace:
		s.buf[idx] = src
	case BlendAlpha:
		s.buf[idx] = Blend(s.buf[idx], src, alpha)
	case BlendAdd:
		s.buf[idx] = Add(s.buf[idx], src, alpha)
	}
}
