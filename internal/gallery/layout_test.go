package gallery

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Faultbox/gear-carousel/internal/carousel"
)

func TestRect(t *testing.T) {
	r := Rect{X: 10, Y: 20, W: 100, H: 50}
	assert.True(t, r.Contains(10, 20))
	assert.False(t, r.Contains(110, 20), "right edge is exclusive")
	x, y := r.Center()
	assert.Equal(t, float32(60), x)
	assert.Equal(t, float32(45), y)
	assert.Equal(t, Rect{X: 15, Y: 25, W: 90, H: 40}, r.Inset(5))
	assert.Equal(t, float32(0), r.Inset(60).H)
}

func TestCardShrinksToNarrowViewport(t *testing.T) {
	l := ComputeLayout(DefaultLayout(), 300, 600, carousel.BreakpointCompact, 3, 0)
	assert.InDelta(t, 268, l.Card.W, 1e-3)
	assert.InDelta(t, 200*268.0/320.0, l.Card.H, 1e-3)
	assert.Equal(t, float32(10), l.Card.Radius)
}

func TestWideLayout(t *testing.T) {
	l := ComputeLayout(DefaultLayout(), 1280, 720, carousel.BreakpointWide, 18, 0)
	assert.Equal(t, Card{W: 780, H: 480, Radius: 28}, l.Card)
	assert.Equal(t, float32(1100), l.Stage.W)
	assert.Equal(t, float32(90), l.Stage.X)
	assert.Len(t, l.Dots, 18)
	assert.Less(t, l.Prev.Rect.X, l.Dots[0].Rect.X)
	assert.Greater(t, l.Next.Rect.X, l.Dots[17].Rect.X)
	assert.Equal(t, "Go to slide 18", l.Dots[17].Label)
}

func TestControlsToggle(t *testing.T) {
	cfg := DefaultLayout()
	cfg.ShowArrows = false
	cfg.ShowDots = false
	l := ComputeLayout(cfg, 1280, 720, carousel.BreakpointWide, 5, 0)
	assert.Empty(t, l.Dots)
	assert.Equal(t, TargetNone, l.Prev.Kind)
	assert.Zero(t, l.Controls.H)
}

func TestHitLightbox(t *testing.T) {
	l := ComputeLayout(DefaultLayout(), 1280, 720, carousel.BreakpointWide, 5, 0)
	x, y := l.Lightbox.Close.Rect.Center()
	assert.Equal(t, TargetClose, l.HitLightbox(x, y).Kind)
	x, y = l.Lightbox.Panel.Center()
	assert.Equal(t, TargetLightboxContent, l.HitLightbox(x, y).Kind)
	assert.Equal(t, TargetBackdrop, l.HitLightbox(1, 1).Kind)
}

func TestHitCarouselPrefersTopmostSlide(t *testing.T) {
	e := carousel.NewEngine(testSlides(5), carousel.DefaultOptions())
	e.SetViewport(1280, 720)
	l := ComputeLayout(DefaultLayout(), 1280, 720, e.Breakpoint(), 5, 0)

	// The near card overlaps the active card; the active card is on top.
	center, _ := e.Frame().ItemAt(0)
	r := l.SlideRect(center)
	tg, ok := l.HitCarousel(e.Frame(), r.X+r.W-10, r.Y+r.H/2)
	assert.True(t, ok)
	assert.Equal(t, 0, tg.Index)

	_, ok = l.HitCarousel(e.Frame(), 1, 1)
	assert.False(t, ok)
}
