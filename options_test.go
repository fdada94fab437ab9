package mandel

import (
	"testing"
)

// TestDefaultOptions tests that the zero-option renderer uses the defaults.
func TestDefaultOptions(t *testing.T) {
	r := NewRenderer()
	if r.opts.pool != nil {
		t.Error("pool should be nil by default")
	}
	if r.opts.gap != GapTruncate {
		t.Errorf("gap = %v, want %v", r.opts.gap, GapTruncate)
	}
	if r.opts.palette != DefaultPalette {
		t.Error("palette should default to DefaultPalette")
	}
	if r.opts.stateHook != nil {
		t.Error("stateHook should be nil by default")
	}
}

// TestWithPool tests that WithPool stores the shared pool.
func TestWithPool(t *testing.T) {
	pool := NewPool(2)
	defer pool.Close()

	r := NewRenderer(WithPool(pool))
	if r.opts.pool != pool {
		t.Error("WithPool did not set the pool")
	}
}

// TestWithGapPolicy tests the gap policy option.
func TestWithGapPolicy(t *testing.T) {
	r := NewRenderer(WithGapPolicy(GapFillLast))
	if r.opts.gap != GapFillLast {
		t.Errorf("gap = %v, want %v", r.opts.gap, GapFillLast)
	}
}

// TestWithPalette tests that the palette is copied, not aliased.
func TestWithPalette(t *testing.T) {
	pal := DefaultPalette
	pal[0] = RGB{1, 1, 1}

	r := NewRenderer(WithPalette(pal))
	pal[0] = RGB{0, 1, 0}

	if r.opts.palette[0] != (RGB{1, 1, 1}) {
		t.Errorf("palette[0] = %+v, want white", r.opts.palette[0])
	}
	if DefaultPalette[0] != (RGB{0, 0, 0.5}) {
		t.Error("WithPalette modified DefaultPalette")
	}
}

// TestOptionsLastWins tests that later options override earlier ones.
func TestOptionsLastWins(t *testing.T) {
	r := NewRenderer(WithGapPolicy(GapFillLast), WithGapPolicy(GapTruncate))
	if r.opts.gap != GapTruncate {
		t.Errorf("gap = %v, want %v", r.opts.gap, GapTruncate)
	}
}
