package surface

import "testing"

func TestNewSurface(t *testing.T) {
	s := New(800, 600)

	w, h := s.Size()
	if w != 800 || h != 600 {
		t.Errorf("Expected size 800x600, got %dx%d", w, h)
	}
	pw, ph := s.PhysicalSize()
	if pw != 800 || ph != 600 {
		t.Errorf("Expected physical size 800x600 at scale 1, got %dx%d", pw, ph)
	}
	if s.Scale() != 1.0 {
		t.Errorf("Expected scale 1.0, got %f", s.Scale())
	}

	// Fresh surface is black everywhere
	for _, p := range [][2]int{{0, 0}, {799, 599}, {400, 300}} {
		if c := s.At(p[0], p[1]); c != RGBBlack {
			t.Errorf("Expected black at (%d, %d), got %v", p[0], p[1], c)
		}
	}
}

func TestNewScaled(t *testing.T) {
	s := NewScaled(400, 300, 2.0)

	w, h := s.Size()
	if w != 400 || h != 300 {
		t.Errorf("Expected logical size 400x300, got %dx%d", w, h)
	}
	pw, ph := s.PhysicalSize()
	if pw != 800 || ph != 600 {
		t.Errorf("Expected physical size 800x600 at scale 2, got %dx%d", pw, ph)
	}

	// Non-positive scale falls back to 1
	s = NewScaled(100, 100, 0)
	if s.Scale() != 1.0 {
		t.Errorf("Expected scale fallback to 1.0, got %f", s.Scale())
	}
	s = NewScaled(100, 100, -2)
	if s.Scale() != 1.0 {
		t.Errorf("Expected scale fallback to 1.0 for negative, got %f", s.Scale())
	}
}

func TestAtOutOfBounds(t *testing.T) {
	s := New(10, 10)
	s.Paint(func(ctx *PaintContext) {
		ctx.SetFill(RGBWhite)
		ctx.FillRect(0, 0, 10, 10)
	})

	for _, p := range [][2]int{{-1, 5}, {5, -1}, {10, 5}, {5, 10}, {100, 100}} {
		if c := s.At(p[0], p[1]); c != RGBBlack {
			t.Errorf("Expected black out of bounds at (%d, %d), got %v", p[0], p[1], c)
		}
	}
}

func TestResize(t *testing.T) {
	s := New(800, 600)

	s.Resize(400, 300)
	w, h := s.Size()
	if w != 400 || h != 300 {
		t.Errorf("Expected size 400x300 after resize, got %dx%d", w, h)
	}
	if len(s.buf) != 400*300 {
		t.Errorf("Expected buffer length %d, got %d", 400*300, len(s.buf))
	}
}

func TestResizeReusesCapacity(t *testing.T) {
	s := New(100, 100)
	grown := cap(s.buf)

	// Shrinking must not reallocate
	s.Resize(50, 50)
	if cap(s.buf) != grown {
		t.Errorf("Expected capacity %d retained after shrink, got %d", grown, cap(s.buf))
	}

	// Growing back within capacity must not reallocate either
	s.Resize(100, 100)
	if cap(s.buf) != grown {
		t.Errorf("Expected capacity %d retained after regrow, got %d", grown, cap(s.buf))
	}

	// Growing beyond capacity must
	s.Resize(200, 200)
	if cap(s.buf) < 200*200 {
		t.Errorf("Expected capacity at least %d after growth, got %d", 200*200, cap(s.buf))
	}
}

func TestResizeClearsContent(t *testing.T) {
	s := New(20, 20)
	s.Paint(func(ctx *PaintContext) {
		ctx.SetFill(RGBWhite)
		ctx.FillRect(0, 0, 20, 20)
	})
	if s.At(5, 5) != RGBWhite {
		t.Fatal("Expected painted white before resize")
	}

	s.Resize(20, 20)
	if c := s.At(5, 5); c != RGBBlack {
		t.Errorf("Expected black after resize cleared content, got %v", c)
	}
}

func TestResizeClampsNegative(t *testing.T) {
	s := New(10, 10)
	s.Resize(-5, 8)

	w, h := s.Size()
	if w != 0 || h != 8 {
		t.Errorf("Expected size 0x8 after negative width, got %dx%d", w, h)
	}
	// Zero-area surface must stay safe to use
	if c := s.At(0, 0); c != RGBBlack {
		t.Errorf("Expected black from empty surface, got %v", c)
	}
	s.Clear()
	s.Paint(func(ctx *PaintContext) {
		ctx.FillRect(0, 0, 5, 5)
	})
}

func TestOnResize(t *testing.T) {
	s := New(100, 100)

	var gotW, gotH int
	calls := 0
	s.OnResize(func(ctx *PaintContext, sf *Surface) {
		gotW, gotH = sf.Size()
		calls++
	})
	s.OnResize(nil) // ignored

	s.Resize(50, 40)
	if calls != 1 {
		t.Errorf("Expected 1 resize callback, got %d", calls)
	}
	if gotW != 50 || gotH != 40 {
		t.Errorf("Expected callback to see 50x40, got %dx%d", gotW, gotH)
	}
}

func TestOnResizeOrder(t *testing.T) {
	s := New(10, 10)

	var order []int
	s.OnResize(func(ctx *PaintContext, sf *Surface) { order = append(order, 1) })
	s.OnResize(func(ctx *PaintContext, sf *Surface) { order = append(order, 2) })

	s.Resize(20, 20)
	if len(order) != 2 || order[0] != 1 || order[1] != 2 {
		t.Errorf("Expected callbacks in registration order [1 2], got %v", order)
	}
}

func TestPaintScopedState(t *testing.T) {
	s := New(10, 10)

	s.Paint(func(ctx *PaintContext) {
		ctx.SetFill(RGBWhite)
		ctx.SetBlend(BlendAdd)
		ctx.SetAlpha(0.25)
	})

	// State changes must not leak out of the Paint call
	if s.ctx.state.fill != RGBBlack {
		t.Errorf("Expected fill restored to black, got %v", s.ctx.state.fill)
	}
	if s.ctx.state.blend != BlendReplace {
		t.Errorf("Expected blend restored to replace, got %v", s.ctx.state.blend)
	}
	if s.ctx.state.alpha != 1.0 {
		t.Errorf("Expected alpha restored to 1.0, got %f", s.ctx.state.alpha)
	}
}

func TestPaintStateRestoredOnPanic(t *testing.T) {
	s := New(10, 10)

	func() {
		defer func() { recover() }()
		s.Paint(func(ctx *PaintContext) {
			ctx.SetFill(RGBWhite)
			ctx.SetAlpha(0.5)
			panic("draw failed")
		})
	}()

	if s.ctx.state.fill != RGBBlack || s.ctx.state.alpha != 1.0 {
		t.Errorf("Expected state restored after panic, got fill %v alpha %f",
			s.ctx.state.fill, s.ctx.state.alpha)
	}
}

func TestPaintNilAndChaining(t *testing.T) {
	s := New(10, 10)

	if got := s.Paint(nil); got != s {
		t.Error("Expected Paint(nil) to return the surface unchanged")
	}
	if got := s.Paint(func(ctx *PaintContext) {}).Paint(nil); got != s {
		t.Error("Expected chained Paint to return the same surface")
	}
}

func TestRepaint(t *testing.T) {
	s := New(10, 10)
	s.Paint(func(ctx *PaintContext) {
		ctx.SetFill(RGBWhite)
		ctx.FillRect(0, 0, 10, 10)
	})

	s.Repaint(func(ctx *PaintContext) {
		ctx.SetFill(RGB{0, 0, 255})
		ctx.FillRect(0, 0, 2, 2)
	})

	if c := s.At(1, 1); c != (RGB{0, 0, 255}) {
		t.Errorf("Expected repainted blue at (1,1), got %v", c)
	}
	// Area outside the new paint must be cleared, not stale white
	if c := s.At(5, 5); c != RGBBlack {
		t.Errorf("Expected cleared black at (5,5), got %v", c)
	}
}

func TestBlendLayerFades(t *testing.T) {
	main := New(4, 4)
	layer := New(4, 4)

	// Main starts white, layer is black: repeated low-opacity blends
	// must walk main's pixels down toward the layer
	main.Paint(func(ctx *PaintContext) {
		ctx.SetFill(RGBWhite)
		ctx.FillRect(0, 0, 4, 4)
	})

	main.BlendLayer(layer, 0.5)
	if c := main.At(2, 2); c != (RGB{127, 127, 127}) {
		t.Errorf("Expected {127 127 127} after first blend, got %v", c)
	}

	main.BlendLayer(layer, 0.5)
	if c := main.At(2, 2); c.R > 64 {
		t.Errorf("Expected further fade below 64, got %v", c)
	}

	// Many repetitions converge onto the layer
	for i := 0; i < 200; i++ {
		main.BlendLayer(layer, 0.5)
	}
	if c := main.At(2, 2); c != RGBBlack {
		t.Errorf("Expected convergence to black, got %v", c)
	}
}

func TestBlendLayerSamplesNearest(t *testing.T) {
	main := New(4, 4)
	layer := New(2, 2)

	// Quadrant colors in the small layer
	red := RGB{255, 0, 0}
	green := RGB{0, 255, 0}
	blue := RGB{0, 0, 255}
	white := RGBWhite
	layer.Paint(func(ctx *PaintContext) {
		ctx.SetFill(red)
		ctx.FillRect(0, 0, 1, 1)
		ctx.SetFill(green)
		ctx.FillRect(1, 0, 1, 1)
		ctx.SetFill(blue)
		ctx.FillRect(0, 1, 1, 1)
		ctx.SetFill(white)
		ctx.FillRect(1, 1, 1, 1)
	})

	main.BlendLayer(layer, 1.0)

	tests := []struct {
		x, y int
		want RGB
	}{
		{0, 0, red}, {1, 1, red},
		{2, 0, green}, {3, 1, green},
		{0, 2, blue}, {1, 3, blue},
		{2, 2, white}, {3, 3, white},
	}
	for _, tt := range tests {
		if c := main.At(tt.x, tt.y); c != tt.want {
			t.Errorf("Expected %v at (%d, %d), got %v", tt.want, tt.x, tt.y, c)
		}
	}
}

func TestBlendLayerGuards(t *testing.T) {
	main := New(4, 4)
	main.Paint(func(ctx *PaintContext) {
		ctx.SetFill(RGBWhite)
		ctx.FillRect(0, 0, 4, 4)
	})

	// Nil layer, zero opacity and empty layers are all no-ops
	main.BlendLayer(nil, 0.5)
	main.BlendLayer(New(4, 4), 0)
	main.BlendLayer(New(0, 0), 0.5)
	if c := main.At(2, 2); c != RGBWhite {
		t.Errorf("Expected untouched white, got %v", c)
	}

	empty := New(0, 0)
	empty.BlendLayer(main, 0.5) // empty destination must not panic
}

func TestSnapshot(t *testing.T) {
	s := New(3, 2)
	s.Paint(func(ctx *PaintContext) {
		ctx.SetFill(RGB{10, 20, 30})
		ctx.FillRect(1, 0, 1, 1)
	})

	img := s.Snapshot()
	if img.Bounds().Dx() != 3 || img.Bounds().Dy() != 2 {
		t.Errorf("Expected 3x2 snapshot, got %dx%d", img.Bounds().Dx(), img.Bounds().Dy())
	}

	r, g, b, a := img.At(1, 0).RGBA()
	if r>>8 != 10 || g>>8 != 20 || b>>8 != 30 {
		t.Errorf("Expected pixel {10 20 30}, got (%d, %d, %d)", r>>8, g>>8, b>>8)
	}
	if a>>8 != 0xFF {
		t.Errorf("Expected opaque alpha, got %d", a>>8)
	}

	r, g, b, a = img.At(0, 0).RGBA()
	if r != 0 || g != 0 || b != 0 || a>>8 != 0xFF {
		t.Errorf("Expected opaque black background, got (%d, %d, %d, %d)", r>>8, g>>8, b>>8, a>>8)
	}
}

func TestClear(t *testing.T) {
	s := New(64, 64)
	s.Paint(func(ctx *PaintContext) {
		ctx.SetFill(RGBWhite)
		ctx.FillRect(0, 0, 64, 64)
	})

	s.Clear()
	for _, p := range [][2]int{{0, 0}, {63, 63}, {31, 17}} {
		if c := s.At(p[0], p[1]); c != RGBBlack {
			t.Errorf("Expected black at (%d, %d) after clear, got %v", p[0], p[1], c)
		}
	}
}
