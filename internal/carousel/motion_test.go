package carousel

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMotionEntersFromTransparent(t *testing.T) {
	e := NewEngine(testSlides(5), DefaultOptions())
	m := NewMotion(DefaultSpring())
	m.Sync(e.Frame())

	items := m.Items()
	require.Len(t, items, 5)
	for _, it := range items {
		assert.Zero(t, it.Transform.Opacity)
	}

	settle(m)
	assert.True(t, m.Settled())
	for _, it := range m.Items() {
		target, ok := e.Frame().ItemAt(it.Index)
		require.True(t, ok)
		assert.InDelta(t, target.Transform.Opacity, it.Transform.Opacity, 0.01)
		assert.InDelta(t, target.Transform.OffsetX, it.Transform.OffsetX, 0.5)
	}
}

func TestMotionLeavingSlidesFadeOut(t *testing.T) {
	e := NewEngine(testSlides(8), DefaultOptions())
	m := NewMotion(DefaultSpring())
	m.Sync(e.Frame())
	settle(m)

	e.Next() // slide 6 leaves, slide 3 enters
	m.Sync(e.Frame())

	var leaving bool
	for _, it := range m.Items() {
		if it.Index == 6 {
			leaving = it.Leaving
		}
	}
	assert.True(t, leaving)
	assert.False(t, m.Settled())

	settle(m)
	for _, it := range m.Items() {
		assert.NotEqual(t, 6, it.Index, "faded slides are dropped")
	}
	assert.True(t, m.Settled())
}

func TestMotionFollowsDragImmediately(t *testing.T) {
	e := NewEngine(testSlides(5), DefaultOptions())
	m := NewMotion(DefaultSpring())
	m.Sync(e.Frame())
	settle(m)

	e.BeginDrag(500, 0)
	e.DragTo(300, 100*time.Millisecond)
	m.Sync(e.Frame())
	for _, it := range m.Items() {
		if it.Index == 0 {
			assert.InDelta(t, -36, it.Transform.OffsetX, 1e-3)
		}
	}
}

func TestMotionHoverScalesActiveCard(t *testing.T) {
	e := NewEngine(testSlides(3), DefaultOptions())
	m := NewMotion(DefaultSpring())
	m.SetHovered(0)
	m.Sync(e.Frame())
	settle(m)
	for _, it := range m.Items() {
		if it.Index == 0 {
			assert.InDelta(t, 1.02, it.Transform.Scale, 0.005)
		}
	}
}

// settle runs two seconds of frames; Update bounds catch-up per call.
func settle(m *Motion) {
	for i := 0; i < 120; i++ {
		m.Update(time.Second / 60)
	}
}
