package carousel

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAutoplayDefaults(t *testing.T) {
	cfg := DefaultAutoplay()
	assert.False(t, cfg.Enabled)
	assert.Equal(t, 5*time.Second, cfg.Interval)
	assert.True(t, cfg.PauseOnHover)

	a := NewAutoplay(AutoplayConfig{Enabled: true})
	assert.Equal(t, 5*time.Second, a.Config().Interval, "non-positive interval falls back")
}

func TestAutoplaySuspendedTimeNeverCounts(t *testing.T) {
	a := NewAutoplay(AutoplayConfig{Enabled: true, Interval: time.Second})
	assert.False(t, a.Tick(800*time.Millisecond, false))
	assert.False(t, a.Tick(10*time.Second, true))
	assert.Zero(t, a.Elapsed())
	assert.False(t, a.Tick(800*time.Millisecond, false))
	assert.True(t, a.Tick(200*time.Millisecond, false))
	assert.Zero(t, a.Elapsed())
}
