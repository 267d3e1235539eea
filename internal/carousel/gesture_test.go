package carousel

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDecide(t *testing.T) {
	th := DefaultThresholds()

	tests := []struct {
		name     string
		offset   float32
		velocity float32
		want     Decision
	}{
		{"long drag left", -150, 0, CommitNext},
		{"fast flick left", -50, -700, CommitNext},
		{"slow short drag", -50, -100, SnapBack},
		{"long drag right", 121, 0, CommitPrev},
		{"fast flick right", 10, 601, CommitPrev},
		{"exact distance holds", -120, 0, SnapBack},
		{"exact velocity holds", 0, 600, SnapBack},
		{"flick overrides distance", 130, -700, CommitNext},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Decide(tt.offset, tt.velocity, th))
		})
	}
}

func TestDragDistanceCommit(t *testing.T) {
	d := NewDragController(DefaultThresholds())
	d.Begin(400, 0)
	d.Move(350, 200*time.Millisecond)
	assert.True(t, d.Dragging())
	assert.InDelta(t, -50, d.Offset(), 1e-6)
	assert.InDelta(t, -9, d.VisualOffset(), 1e-4)

	got := d.End(250, 800*time.Millisecond)
	assert.Equal(t, CommitNext, got)
	assert.False(t, d.Dragging())
	assert.Zero(t, d.Offset(), "offset resets on release")
}

func TestDragVelocityCommit(t *testing.T) {
	d := NewDragController(DefaultThresholds())
	d.Begin(300, 0)
	d.Move(280, 40*time.Millisecond)
	got := d.End(250, 80*time.Millisecond) // 50 px in 80 ms is 625 px/s
	assert.Equal(t, CommitNext, got)
}

func TestDragVelocityUsesRecentSamples(t *testing.T) {
	d := NewDragController(DefaultThresholds())
	d.Begin(0, 0)
	d.Move(60, 20*time.Millisecond) // fast start
	d.Move(70, 500*time.Millisecond)
	d.Move(72, 560*time.Millisecond) // then nearly still
	assert.Less(t, d.Velocity(), float32(100))
	assert.Equal(t, SnapBack, d.End(72, 600*time.Millisecond))
}

func TestDragCancelSnapsBack(t *testing.T) {
	d := NewDragController(DefaultThresholds())
	d.Begin(0, 0)
	d.Move(-400, 10*time.Millisecond)
	assert.InDelta(t, 400, d.Travel(), 1e-6)
	assert.Equal(t, SnapBack, d.Cancel())
	assert.False(t, d.Dragging())
	assert.Zero(t, d.Offset())
	assert.Zero(t, d.Travel())
}

func TestDragIdleIgnoresInput(t *testing.T) {
	d := NewDragController(DefaultThresholds())
	d.Move(100, time.Second)
	assert.Zero(t, d.Offset())
	assert.Equal(t, SnapBack, d.End(-500, time.Second))
}
