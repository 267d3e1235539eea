package carousel

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/gear-carousel/internal/engine/input"
)

func testSlides(n int) []Slide {
	slides := make([]Slide, n)
	for i := range slides {
		slides[i] = Slide{Primary: fmt.Sprintf("gear/%02d.png", i), Label: fmt.Sprintf("Gear %d", i)}
	}
	return slides
}

func slotsByIndex(f Frame) map[int]int {
	m := make(map[int]int, len(f.Items))
	for _, it := range f.Items {
		m[it.Index] = it.Slot
	}
	return m
}

func TestFrameSlotsAroundActive(t *testing.T) {
	opts := DefaultOptions()
	opts.InitialIndex = 2
	e := NewEngine(testSlides(5), opts)

	f := e.Frame()
	assert.Equal(t, 2, f.Active)
	assert.Equal(t, map[int]int{0: -2, 1: -1, 2: 0, 3: 1, 4: 2}, slotsByIndex(f))

	var order []int
	for _, it := range f.Items {
		order = append(order, it.Slot)
	}
	assert.Equal(t, []int{-2, 2, -1, 1, 0}, order, "paint order is ascending z")
}

func TestFrameWrapsAround(t *testing.T) {
	e := NewEngine(testSlides(18), DefaultOptions())
	assert.Equal(t, map[int]int{16: -2, 17: -1, 0: 0, 1: 1, 2: 2}, slotsByIndex(e.Frame()))

	e.Prev()
	assert.Equal(t, 17, e.Active())
	assert.Equal(t, map[int]int{15: -2, 16: -1, 17: 0, 0: 1, 1: 2}, slotsByIndex(e.Frame()))
}

func TestFrameShowsEachSlideOnce(t *testing.T) {
	for n := 1; n <= 4; n++ {
		e := NewEngine(testSlides(n), DefaultOptions())
		f := e.Frame()
		assert.Len(t, f.Items, n, "n=%d", n)
		seen := map[int]bool{}
		for _, it := range f.Items {
			assert.False(t, seen[it.Index], "slide %d drawn twice", it.Index)
			seen[it.Index] = true
		}
	}
}

func TestEmptyEngine(t *testing.T) {
	e := NewEngine(nil, DefaultOptions())
	e.Next()
	e.Prev()
	e.Goto(4)
	assert.Equal(t, 0, e.Active())
	assert.True(t, e.Frame().Empty())
	assert.Equal(t, ActionNone, e.HandleKey(input.KeyRight))
	assert.False(t, e.Update(time.Minute))
}

func TestGotoNormalizes(t *testing.T) {
	e := NewEngine(testSlides(5), DefaultOptions())
	e.Goto(12)
	assert.Equal(t, 2, e.Active())
	e.Goto(-1)
	assert.Equal(t, 4, e.Active())
}

func TestListenersReceiveCompleteFrames(t *testing.T) {
	e := NewEngine(testSlides(5), DefaultOptions())

	var frames []Frame
	e.OnChange(func(f Frame) { frames = append(frames, f) })

	e.Next()
	require.Len(t, frames, 1)
	f := frames[0]
	assert.Equal(t, 1, f.Active)
	center, ok := f.ItemAt(1)
	require.True(t, ok)
	assert.Equal(t, 0, center.Slot)
	assert.Equal(t, e.Frame().Active, f.Active)

	e.Goto(1)
	assert.Len(t, frames, 1, "no publish when the index is unchanged")
}

func TestKeyboard(t *testing.T) {
	e := NewEngine(testSlides(5), DefaultOptions())

	assert.Equal(t, ActionNavigated, e.HandleKey(input.KeyRight))
	assert.Equal(t, 1, e.Active())
	assert.Equal(t, ActionNavigated, e.HandleKey(input.KeyLeft))
	assert.Equal(t, ActionNavigated, e.HandleKey(input.KeyLeft))
	assert.Equal(t, 4, e.Active())
	assert.Equal(t, ActionActivate, e.HandleKey(input.KeyEnter))
	assert.Equal(t, ActionNone, e.HandleKey(input.KeySpace))

	e.SetModal(true)
	assert.Equal(t, ActionNone, e.HandleKey(input.KeyRight))
	assert.Equal(t, 4, e.Active(), "keys are ignored while a modal is open")
}

func TestViewportSwitchesBreakpoint(t *testing.T) {
	e := NewEngine(testSlides(5), DefaultOptions())
	near, _ := e.Frame().ItemAt(1)
	assert.InDelta(t, 220, near.Transform.OffsetX, 1e-4)

	e.SetViewport(1280, 720)
	assert.Equal(t, BreakpointWide, e.Breakpoint())
	near, _ = e.Frame().ItemAt(1)
	assert.InDelta(t, 320, near.Transform.OffsetX, 1e-4)
}

func TestSetSlidesClampsActive(t *testing.T) {
	opts := DefaultOptions()
	opts.InitialIndex = 4
	e := NewEngine(testSlides(5), opts)

	e.SetSlides(testSlides(3))
	assert.Equal(t, 2, e.Active())
	assert.Len(t, e.Frame().Items, 3)

	e.SetSlides(nil)
	assert.Equal(t, 0, e.Active())
	assert.True(t, e.Frame().Empty())
}

func TestDragFollowsElastically(t *testing.T) {
	e := NewEngine(testSlides(5), DefaultOptions())
	e.BeginDrag(500, 0)
	e.DragTo(400, 300*time.Millisecond)

	f := e.Frame()
	assert.True(t, f.Dragging)
	center, _ := f.ItemAt(0)
	assert.InDelta(t, -18, center.Transform.OffsetX, 1e-3)
	near, _ := f.ItemAt(1)
	assert.InDelta(t, 220-18, near.Transform.OffsetX, 1e-3)
	far, _ := f.ItemAt(2)
	assert.InDelta(t, 418, far.Transform.OffsetX, 1e-2, "far slots stay put")

	assert.Equal(t, CommitNext, e.EndDrag(360, 900*time.Millisecond))
	assert.Equal(t, 1, e.Active())
	assert.False(t, e.Frame().Dragging)
	center, _ = e.Frame().ItemAt(1)
	assert.Zero(t, center.Transform.OffsetX)
}

func TestDragSnapBackPublishesRestingFrame(t *testing.T) {
	e := NewEngine(testSlides(5), DefaultOptions())
	var last Frame
	e.OnChange(func(f Frame) { last = f })

	e.BeginDrag(500, 0)
	e.DragTo(460, 500*time.Millisecond)
	assert.Equal(t, SnapBack, e.EndDrag(460, time.Second))
	assert.Equal(t, 0, last.Active)
	assert.False(t, last.Dragging)
	center, _ := last.ItemAt(0)
	assert.Zero(t, center.Transform.OffsetX)
}

func TestModalCancelsDrag(t *testing.T) {
	e := NewEngine(testSlides(5), DefaultOptions())
	e.BeginDrag(500, 0)
	e.SetModal(true)
	assert.False(t, e.Dragging())
	e.BeginDrag(500, 0)
	assert.False(t, e.Dragging(), "drags do not start under a modal")
}

func autoplayEngine(n int) *Engine {
	opts := DefaultOptions()
	opts.Autoplay = AutoplayConfig{Enabled: true, Interval: time.Second, PauseOnHover: true}
	return NewEngine(testSlides(n), opts)
}

func TestAutoplayAdvances(t *testing.T) {
	e := autoplayEngine(3)
	assert.False(t, e.Update(600*time.Millisecond))
	assert.True(t, e.Update(400*time.Millisecond))
	assert.Equal(t, 1, e.Active())
	assert.False(t, e.Update(999*time.Millisecond))
	assert.True(t, e.Update(time.Millisecond))
	assert.Equal(t, 2, e.Active())
}

func TestAutoplaySuspension(t *testing.T) {
	tests := []struct {
		name    string
		n       int
		suspend func(e *Engine)
	}{
		{"hovered", 3, func(e *Engine) { e.SetHovered(true) }},
		{"modal", 3, func(e *Engine) { e.SetModal(true) }},
		{"dragging", 3, func(e *Engine) { e.BeginDrag(0, 0) }},
		{"single slide", 1, func(e *Engine) {}},
		{"disabled", 3, func(e *Engine) { e.SetAutoplay(false) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := autoplayEngine(tt.n)
			tt.suspend(e)
			assert.False(t, e.Update(5*time.Second))
			assert.Equal(t, 0, e.Active())
		})
	}
}

func TestAutoplayRestartsAfterSuspension(t *testing.T) {
	e := autoplayEngine(3)
	e.Update(900 * time.Millisecond)
	e.SetHovered(true)
	e.Update(time.Second)
	e.SetHovered(false)
	assert.False(t, e.Update(500*time.Millisecond), "interval restarts after hover ends")
	assert.True(t, e.Update(500*time.Millisecond))
}

func TestManualNavigationRestartsAutoplay(t *testing.T) {
	e := autoplayEngine(3)
	e.Update(900 * time.Millisecond)
	e.Next()
	assert.False(t, e.Update(200*time.Millisecond))
	assert.Equal(t, 1, e.Active())
}

func TestHoverWithoutPauseKeepsPlaying(t *testing.T) {
	opts := DefaultOptions()
	opts.Autoplay = AutoplayConfig{Enabled: true, Interval: time.Second}
	e := NewEngine(testSlides(3), opts)
	e.SetHovered(true)
	assert.True(t, e.Update(time.Second))
}

func TestZeroOptionsUseDefaults(t *testing.T) {
	e := NewEngine(testSlides(5), Options{InitialIndex: 2})

	f := e.Frame()
	require.Len(t, f.Items, 5, "default window shows two slots on each side")
	center, _ := f.ItemAt(2)
	assert.InDelta(t, 1, center.Transform.Scale, 1e-6)
	near, _ := f.ItemAt(3)
	assert.InDelta(t, 220, near.Transform.OffsetX, 1e-4)
	assert.InDelta(t, 0.86, near.Transform.Scale, 1e-6)

	e.BeginDrag(400, 0)
	assert.Equal(t, SnapBack, e.EndDrag(399, 500*time.Millisecond), "a slow 1 px drag stays put")
	assert.Equal(t, 2, e.Active())
}

func TestPartialGeometryKeepsExplicitWindow(t *testing.T) {
	e := NewEngine(testSlides(5), Options{Geometry: Geometry{Window: 1, NearScale: 0.9}})

	f := e.Frame()
	assert.Len(t, f.Items, 3)
	center, _ := f.ItemAt(0)
	assert.InDelta(t, 1, center.Transform.Scale, 1e-6)
	near, _ := f.ItemAt(1)
	assert.InDelta(t, 0.9, near.Transform.Scale, 1e-6)
	assert.InDelta(t, 220, near.Transform.OffsetX, 1e-4)
}
