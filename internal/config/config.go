// Package config handles gallery configuration loading and management.
package config

import (
	"time"

	"github.com/Faultbox/gear-carousel/internal/carousel"
)

// Config holds all gallery settings.
type Config struct {
	Window   WindowConfig     `yaml:"window"`
	Carousel CarouselConfig   `yaml:"carousel"`
	Layout   LayoutConfig     `yaml:"layout"`
	Motion   MotionConfig     `yaml:"motion"`
	Lightbox LightboxConfig   `yaml:"lightbox"`
	Assets   AssetsConfig     `yaml:"assets"`
	Logging  LoggingConfig    `yaml:"logging"`
	Slides   []carousel.Slide `yaml:"slides"`
}

// WindowConfig holds display settings.
type WindowConfig struct {
	Title      string `yaml:"title"`
	Width      int    `yaml:"width"`
	Height     int    `yaml:"height"`
	Fullscreen bool   `yaml:"fullscreen"`
	VSync      bool   `yaml:"vsync"`
	FPSLimit   int    `yaml:"fps_limit"`
}

// CarouselConfig holds the slot table, gestures and autoplay.
type CarouselConfig struct {
	VisibleWindow       int                 `yaml:"visible_window"`
	NearOffset          carousel.Responsive `yaml:"near_offset"`
	FarOffsetMultiplier float32             `yaml:"far_offset_multiplier"`
	Scales              ScalesConfig        `yaml:"scales"`
	Blur                BlurConfig          `yaml:"blur"`
	Opacity             OpacityConfig       `yaml:"opacity"`
	Drag                DragConfig          `yaml:"drag"`
	Autoplay            AutoplayConfig      `yaml:"autoplay"`
	InitialIndex        int                 `yaml:"initial_index"`
	WideMinWidth        int                 `yaml:"wide_min_width"`
}

// ScalesConfig holds per-slot scales.
type ScalesConfig struct {
	Center float32 `yaml:"center"`
	Near   float32 `yaml:"near"`
	Far    float32 `yaml:"far"`
}

// BlurConfig holds blur radii in px.
type BlurConfig struct {
	Near     carousel.Responsive `yaml:"near"`
	FarExtra float32             `yaml:"far_extra"`
}

// OpacityConfig holds side slide opacities.
type OpacityConfig struct {
	Near float32 `yaml:"near"`
	Far  float32 `yaml:"far"`
}

// DragConfig holds gesture thresholds.
type DragConfig struct {
	Distance float32 `yaml:"distance"` // px
	Velocity float32 `yaml:"velocity"` // px/s
	Elastic  float32 `yaml:"elastic"`
}

// AutoplayConfig holds autoplay settings.
type AutoplayConfig struct {
	Enabled      bool          `yaml:"enabled"`
	Interval     time.Duration `yaml:"interval"`
	PauseOnHover bool          `yaml:"pause_on_hover"`
}

// LayoutConfig holds stage geometry and colors.
type LayoutConfig struct {
	Title       string              `yaml:"title"`
	Subtitle    string              `yaml:"subtitle"`
	Background  string              `yaml:"background"`
	Card        CardConfig          `yaml:"card"`
	StageHeight carousel.Responsive `yaml:"stage_height"`
	ShowArrows  bool                `yaml:"show_arrows"`
	ShowDots    bool                `yaml:"show_dots"`
	Dots        DotsConfig          `yaml:"dots"`
}

// CardConfig sizes the slide cards.
type CardConfig struct {
	Width             carousel.Responsive `yaml:"width"`
	Height            carousel.Responsive `yaml:"height"`
	Radius            carousel.Responsive `yaml:"radius"`
	Background        string              `yaml:"background"`
	ShadowCenterAlpha float32             `yaml:"shadow_center_alpha"`
	ShadowSideAlpha   float32             `yaml:"shadow_side_alpha"`
}

// DotsConfig styles the pagination dots.
type DotsConfig struct {
	ActiveColor   string  `yaml:"active_color"`
	InactiveAlpha float32 `yaml:"inactive_alpha"`
	ActiveSize    float32 `yaml:"active_size"`
	InactiveSize  float32 `yaml:"inactive_size"`
}

// MotionConfig holds slide animation settings.
type MotionConfig struct {
	Spring SpringConfig `yaml:"spring"`
}

// SpringConfig parameterizes the slide spring.
type SpringConfig struct {
	Frequency float64 `yaml:"frequency"`
	Damping   float64 `yaml:"damping"`
}

// LightboxConfig holds modal viewer settings.
type LightboxConfig struct {
	Models          bool    `yaml:"models"` // render 3D models when slides declare them
	BackdropOpacity float32 `yaml:"backdrop_opacity"`
	MinDistance     float32 `yaml:"min_distance"`
	MaxDistance     float32 `yaml:"max_distance"`
}

// AssetsConfig holds media resolution settings.
type AssetsConfig struct {
	Roots       []string      `yaml:"roots"` // directories searched for relative references
	HTTPTimeout time.Duration `yaml:"http_timeout"`
	CacheSize   int           `yaml:"cache_size"` // asset payloads kept in memory
	WarmUp      bool          `yaml:"warm_up"`    // preload lightbox images at start
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level      string `yaml:"level"`
	LogFile    string `yaml:"log_file"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days"`
	Compress   bool   `yaml:"compress"`
}

// Default returns a Config with the stock gallery values.
func Default() *Config {
	return &Config{
		Window: WindowConfig{
			Title:      "Gear Carousel",
			Width:      1280,
			Height:     720,
			Fullscreen: false,
			VSync:      true,
			FPSLimit:   0,
		},
		Carousel: CarouselConfig{
			VisibleWindow:       2,
			NearOffset:          carousel.Responsive{Compact: 220, Wide: 320},
			FarOffsetMultiplier: 1.9,
			Scales:              ScalesConfig{Center: 1.0, Near: 0.86, Far: 0.76},
			Blur:                BlurConfig{Near: carousel.Responsive{Compact: 1, Wide: 2}, FarExtra: 1},
			Opacity:             OpacityConfig{Near: 0.8, Far: 0.5},
			Drag:                DragConfig{Distance: 120, Velocity: 600, Elastic: 0.18},
			Autoplay:            AutoplayConfig{Enabled: false, Interval: 5 * time.Second, PauseOnHover: true},
			InitialIndex:        0,
			WideMinWidth:        carousel.DefaultWideMinWidth,
		},
		Layout: LayoutConfig{
			Title:      "READY YOUR GEAR",
			Subtitle:   "Build the load-out that takes the territory.",
			Background: "#000000",
			Card: CardConfig{
				Width:             carousel.Responsive{Compact: 320, Wide: 780},
				Height:            carousel.Responsive{Compact: 200, Wide: 480},
				Radius:            carousel.Responsive{Compact: 10, Wide: 28},
				Background:        "#0e0f11",
				ShadowCenterAlpha: 0.55,
				ShadowSideAlpha:   0.35,
			},
			StageHeight: carousel.Responsive{Compact: 240, Wide: 500},
			ShowArrows:  true,
			ShowDots:    true,
			Dots: DotsConfig{
				ActiveColor:   "#d8b14a",
				InactiveAlpha: 0.35,
				ActiveSize:    12,
				InactiveSize:  8,
			},
		},
		Motion: MotionConfig{
			Spring: SpringConfig{Frequency: 13.3, Damping: 1.08},
		},
		Lightbox: LightboxConfig{
			Models:          true,
			BackdropOpacity: 0.65,
			MinDistance:     1.5,
			MaxDistance:     40,
		},
		Assets: AssetsConfig{
			Roots:       []string{"assets", "public"},
			HTTPTimeout: 20 * time.Second,
			CacheSize:   64,
			WarmUp:      true,
		},
		Logging: LoggingConfig{
			Level:      "info",
			LogFile:    "",
			MaxSizeMB:  20,
			MaxBackups: 3,
			MaxAgeDays: 14,
			Compress:   true,
		},
		Slides: DefaultSlides(),
	}
}
