package config

import (
	"go.uber.org/zap"

	"github.com/Faultbox/gear-carousel/internal/carousel"
	"github.com/Faultbox/gear-carousel/internal/gallery"
	"github.com/Faultbox/gear-carousel/internal/logger"
)

// CarouselOptions converts the carousel section into engine options.
func (c *Config) CarouselOptions(log *zap.Logger) carousel.Options {
	cc := c.Carousel
	return carousel.Options{
		Geometry: carousel.Geometry{
			Window:        cc.VisibleWindow,
			NearOffset:    cc.NearOffset,
			FarMultiplier: cc.FarOffsetMultiplier,
			CenterScale:   cc.Scales.Center,
			NearScale:     cc.Scales.Near,
			FarScale:      cc.Scales.Far,
			NearBlur:      cc.Blur.Near,
			FarBlurExtra:  cc.Blur.FarExtra,
			NearOpacity:   cc.Opacity.Near,
			FarOpacity:    cc.Opacity.Far,
		},
		Thresholds: carousel.Thresholds{
			Distance: cc.Drag.Distance,
			Velocity: cc.Drag.Velocity,
			Elastic:  cc.Drag.Elastic,
		},
		Autoplay: carousel.AutoplayConfig{
			Enabled:      cc.Autoplay.Enabled,
			Interval:     cc.Autoplay.Interval,
			PauseOnHover: cc.Autoplay.PauseOnHover,
		},
		WideMinWidth: cc.WideMinWidth,
		InitialIndex: cc.InitialIndex,
		Logger:       log,
	}
}

// SpringOptions converts the motion section.
func (c *Config) SpringOptions() carousel.SpringConfig {
	s := carousel.DefaultSpring()
	s.Frequency = c.Motion.Spring.Frequency
	s.Damping = c.Motion.Spring.Damping
	return s
}

// StageLayout converts the layout section into stage geometry.
func (c *Config) StageLayout() gallery.LayoutConfig {
	l := gallery.DefaultLayout()
	l.CardWidth = c.Layout.Card.Width
	l.CardHeight = c.Layout.Card.Height
	l.CardRadius = c.Layout.Card.Radius
	l.StageHeight = c.Layout.StageHeight
	l.ShowArrows = c.Layout.ShowArrows
	l.ShowDots = c.Layout.ShowDots
	l.DotActive = c.Layout.Dots.ActiveSize
	l.DotInactive = c.Layout.Dots.InactiveSize
	if c.Layout.Title == "" && c.Layout.Subtitle == "" {
		l.HeaderHeight = carousel.Responsive{}
	}
	return l
}

// LoggerOptions converts the logging section.
func (c *Config) LoggerOptions() logger.Options {
	opts := logger.Options{Level: c.Logging.Level, Console: true}
	if c.Logging.LogFile != "" {
		opts.File = logger.FileConfig{
			Path:       c.Logging.LogFile,
			MaxSizeMB:  c.Logging.MaxSizeMB,
			MaxBackups: c.Logging.MaxBackups,
			MaxAgeDays: c.Logging.MaxAgeDays,
			Compress:   c.Logging.Compress,
		}
	}
	return opts
}
