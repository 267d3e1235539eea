package config

import (
	"flag"
	"strings"
)

var (
	flagConfig     = flag.String("config", "", "Path to config file")
	flagDeck       = flag.String("deck", "", "Path to a slide deck YAML file")
	flagPick       = flag.Bool("pick", false, "Choose the deck file with a native file dialog")
	flagDebug      = flag.Bool("debug", false, "Enable debug logging")
	flagWindowed   = flag.Bool("windowed", false, "Run in windowed mode")
	flagFullscreen = flag.Bool("fullscreen", false, "Run in fullscreen mode")
	flagWidth      = flag.Int("width", 0, "Window width")
	flagHeight     = flag.Int("height", 0, "Window height")
	flagAutoplay   = flag.String("autoplay", "", "Override autoplay (on|off)")
	flagSlide      = flag.Int("slide", -1, "Initial slide index")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via -config.
func ConfigPath() string {
	return *flagConfig
}

// DeckPath returns the deck path provided via -deck.
func DeckPath() string {
	return *flagDeck
}

// PickDeck reports whether -pick was given.
func PickDeck() bool {
	return *flagPick
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagWindowed {
		cfg.Window.Fullscreen = false
	}
	if *flagFullscreen {
		cfg.Window.Fullscreen = true
	}
	if *flagWidth > 0 {
		cfg.Window.Width = *flagWidth
	}
	if *flagHeight > 0 {
		cfg.Window.Height = *flagHeight
	}
	switch strings.ToLower(*flagAutoplay) {
	case "on", "true", "1":
		cfg.Carousel.Autoplay.Enabled = true
	case "off", "false", "0":
		cfg.Carousel.Autoplay.Enabled = false
	}
	if *flagSlide >= 0 {
		cfg.Carousel.InitialIndex = *flagSlide
	}
}
