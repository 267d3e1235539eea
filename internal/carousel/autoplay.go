package carousel

import "time"

// AutoplayConfig controls automatic advancing.
type AutoplayConfig struct {
	Enabled      bool
	Interval     time.Duration
	PauseOnHover bool
}

// DefaultAutoplay returns autoplay disabled with a 5 s interval.
func DefaultAutoplay() AutoplayConfig {
	return AutoplayConfig{Interval: 5 * time.Second, PauseOnHover: true}
}

// Autoplay is a single repeating timer advanced by the caller's frame loop.
// It owns no goroutine.
type Autoplay struct {
	cfg     AutoplayConfig
	elapsed time.Duration
}

// NewAutoplay returns a timer for cfg. A non-positive interval falls back to
// the default.
func NewAutoplay(cfg AutoplayConfig) *Autoplay {
	if cfg.Interval <= 0 {
		cfg.Interval = DefaultAutoplay().Interval
	}
	return &Autoplay{cfg: cfg}
}

// Config returns the current configuration.
func (a *Autoplay) Config() AutoplayConfig {
	return a.cfg
}

// SetEnabled turns autoplay on or off and restarts the interval.
func (a *Autoplay) SetEnabled(on bool) {
	a.cfg.Enabled = on
	a.elapsed = 0
}

// Restart starts a fresh interval.
func (a *Autoplay) Restart() {
	a.elapsed = 0
}

// Elapsed returns the time accumulated toward the next fire.
func (a *Autoplay) Elapsed() time.Duration {
	return a.elapsed
}

// Tick advances the timer by dt and reports whether it fired. While
// suspended or disabled the interval is held at zero, so time spent
// suspended never counts toward the next fire.
func (a *Autoplay) Tick(dt time.Duration, suspended bool) bool {
	if !a.cfg.Enabled || suspended {
		a.elapsed = 0
		return false
	}
	a.elapsed += dt
	if a.elapsed >= a.cfg.Interval {
		a.elapsed = 0
		return true
	}
	return false
}
