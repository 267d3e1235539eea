package carousel

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveTable(t *testing.T) {
	r := NewResolver(DefaultGeometry())

	tests := []struct {
		name string
		slot int
		bp   Breakpoint
		want Transform
	}{
		{"center", 0, BreakpointCompact, Transform{OffsetX: 0, Scale: 1, Blur: 0, Opacity: 1, Z: 5, Visible: true}},
		{"right near compact", 1, BreakpointCompact, Transform{OffsetX: 220, Scale: 0.86, Blur: 1, Opacity: 0.8, Z: 4, Visible: true}},
		{"left near wide", -1, BreakpointWide, Transform{OffsetX: -320, Scale: 0.86, Blur: 2, Opacity: 0.8, Z: 4, Visible: true}},
		{"left far compact", -2, BreakpointCompact, Transform{OffsetX: -418, Scale: 0.76, Blur: 2, Opacity: 0.5, Z: 3, Visible: true}},
		{"right far wide", 2, BreakpointWide, Transform{OffsetX: 608, Scale: 0.76, Blur: 3, Opacity: 0.5, Z: 3, Visible: true}},
		{"outside", 3, BreakpointWide, Hidden},
		{"far outside", -7, BreakpointCompact, Hidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := r.Resolve(tt.slot, tt.bp)
			assert.InDelta(t, tt.want.OffsetX, got.OffsetX, 0.01)
			assert.InDelta(t, tt.want.Scale, got.Scale, 1e-6)
			assert.InDelta(t, tt.want.Blur, got.Blur, 1e-6)
			assert.InDelta(t, tt.want.Opacity, got.Opacity, 1e-6)
			assert.Equal(t, tt.want.Z, got.Z)
			assert.Equal(t, tt.want.Visible, got.Visible)
		})
	}
}

func TestHiddenDefaults(t *testing.T) {
	assert.False(t, Hidden.Visible)
	assert.Equal(t, float32(0), Hidden.Opacity)
	assert.Equal(t, float32(0.6), Hidden.Scale)
	assert.Equal(t, float32(3), Hidden.Blur)
	assert.Equal(t, 1, Hidden.Z)
}

func TestWindowClamp(t *testing.T) {
	assert.Equal(t, 0, ClampWindow(-1))
	assert.Equal(t, 1, ClampWindow(1))
	assert.Equal(t, 2, ClampWindow(9))

	geo := DefaultGeometry()
	geo.Window = 1
	r := NewResolver(geo)
	assert.True(t, r.Resolve(1, BreakpointCompact).Visible)
	assert.False(t, r.Resolve(2, BreakpointCompact).Visible, "slot beyond the window is culled")
}

func TestBreakpointFor(t *testing.T) {
	assert.Equal(t, BreakpointCompact, BreakpointFor(899, 900))
	assert.Equal(t, BreakpointWide, BreakpointFor(900, 900))
	assert.Equal(t, BreakpointWide, BreakpointFor(1280, 0), "zero threshold falls back to the default")
	assert.Equal(t, "wide", BreakpointWide.String())
	assert.Equal(t, "compact", BreakpointCompact.String())
}
