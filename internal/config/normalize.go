package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/Faultbox/gear-carousel/internal/carousel"
)

// Normalize clamps out-of-range values to usable ones and returns a note per
// adjustment. Configuration mistakes are never fatal.
func (c *Config) Normalize() []string {
	def := Default()
	var notes []string
	note := func(format string, args ...any) {
		notes = append(notes, fmt.Sprintf(format, args...))
	}

	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		note("window size %dx%d invalid, using %dx%d", c.Window.Width, c.Window.Height, def.Window.Width, def.Window.Height)
		c.Window.Width, c.Window.Height = def.Window.Width, def.Window.Height
	}

	cc := &c.Carousel
	if w := carousel.ClampWindow(cc.VisibleWindow); w != cc.VisibleWindow {
		note("visible_window %d clamped to %d", cc.VisibleWindow, w)
		cc.VisibleWindow = w
	}
	positiveResponsive(&cc.NearOffset, def.Carousel.NearOffset, "near_offset", note)
	positive(&cc.FarOffsetMultiplier, def.Carousel.FarOffsetMultiplier, "far_offset_multiplier", note)
	positive(&cc.Scales.Center, def.Carousel.Scales.Center, "scales.center", note)
	positive(&cc.Scales.Near, def.Carousel.Scales.Near, "scales.near", note)
	positive(&cc.Scales.Far, def.Carousel.Scales.Far, "scales.far", note)
	if cc.Blur.Near.Compact < 0 || cc.Blur.Near.Wide < 0 || cc.Blur.FarExtra < 0 {
		note("negative blur reset to defaults")
		cc.Blur = def.Carousel.Blur
	}
	unit(&cc.Opacity.Near, def.Carousel.Opacity.Near, "opacity.near", note)
	unit(&cc.Opacity.Far, def.Carousel.Opacity.Far, "opacity.far", note)
	positive(&cc.Drag.Distance, def.Carousel.Drag.Distance, "drag.distance", note)
	positive(&cc.Drag.Velocity, def.Carousel.Drag.Velocity, "drag.velocity", note)
	unit(&cc.Drag.Elastic, def.Carousel.Drag.Elastic, "drag.elastic", note)
	if cc.Autoplay.Interval <= 0 {
		note("autoplay.interval %v invalid, using %v", cc.Autoplay.Interval, def.Carousel.Autoplay.Interval)
		cc.Autoplay.Interval = def.Carousel.Autoplay.Interval
	} else if cc.Autoplay.Interval < 500*time.Millisecond {
		note("autoplay.interval %v raised to 500ms", cc.Autoplay.Interval)
		cc.Autoplay.Interval = 500 * time.Millisecond
	}
	if cc.WideMinWidth <= 0 {
		note("wide_min_width %d invalid, using %d", cc.WideMinWidth, def.Carousel.WideMinWidth)
		cc.WideMinWidth = def.Carousel.WideMinWidth
	}

	kept := c.Slides[:0]
	for i, s := range c.Slides {
		if strings.TrimSpace(s.Primary) == "" {
			note("slide %d has no src, dropped", i)
			continue
		}
		if s.Model != nil && s.Model.Geometry == "" {
			note("slide %d model has no geometry, ignored", i)
			s.Model = nil
		}
		kept = append(kept, s)
	}
	c.Slides = kept
	if n := len(c.Slides); n > 0 {
		if idx := carousel.NewIndexer(n).Normalize(cc.InitialIndex); idx != cc.InitialIndex {
			note("initial_index %d normalized to %d", cc.InitialIndex, idx)
			cc.InitialIndex = idx
		}
	} else {
		note("no slides configured")
		cc.InitialIndex = 0
	}

	if c.Motion.Spring.Frequency <= 0 || c.Motion.Spring.Damping <= 0 {
		note("motion.spring invalid, using defaults")
		c.Motion.Spring = def.Motion.Spring
	}

	lb := &c.Lightbox
	unit(&lb.BackdropOpacity, def.Lightbox.BackdropOpacity, "lightbox.backdrop_opacity", note)
	if lb.MinDistance <= 0 || lb.MaxDistance <= lb.MinDistance {
		note("lightbox distance range [%g, %g] invalid, using defaults", lb.MinDistance, lb.MaxDistance)
		lb.MinDistance, lb.MaxDistance = def.Lightbox.MinDistance, def.Lightbox.MaxDistance
	}

	if c.Assets.CacheSize <= 0 {
		c.Assets.CacheSize = def.Assets.CacheSize
	}
	if c.Assets.HTTPTimeout <= 0 {
		c.Assets.HTTPTimeout = def.Assets.HTTPTimeout
	}

	switch strings.ToLower(c.Logging.Level) {
	case "debug", "info", "warn", "warning", "error":
	default:
		note("logging.level %q unknown, using info", c.Logging.Level)
		c.Logging.Level = "info"
	}
	return notes
}

func positive(v *float32, def float32, key string, note func(string, ...any)) {
	if *v <= 0 {
		note("%s %g invalid, using %g", key, *v, def)
		*v = def
	}
}

func unit(v *float32, def float32, key string, note func(string, ...any)) {
	if *v < 0 || *v > 1 {
		note("%s %g outside [0, 1], using %g", key, *v, def)
		*v = def
	}
}

func positiveResponsive(v *carousel.Responsive, def carousel.Responsive, key string, note func(string, ...any)) {
	positive(&v.Compact, def.Compact, key+".compact", note)
	positive(&v.Wide, def.Wide, key+".wide", note)
}
