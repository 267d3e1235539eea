// Package main is the entry point for the Gear Carousel gallery.
package main

import (
	"fmt"
	"os"

	"github.com/sqweek/dialog"
	"go.uber.org/zap"

	"github.com/Faultbox/gear-carousel/internal/app"
	"github.com/Faultbox/gear-carousel/internal/config"
	"github.com/Faultbox/gear-carousel/internal/logger"
)

func main() {
	config.ParseFlags()
	os.Exit(run())
}

// run returns the process exit code. Deferred cleanup happens before main
// exits.
func run() int {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		return 1
	}

	if config.PickDeck() {
		if path := pickDeckFile(); path != "" {
			if err := cfg.UseDeck(path); err != nil {
				fmt.Fprintf(os.Stderr, "Deck error: %v\n", err)
				return 1
			}
		}
	}

	notes := cfg.Normalize()

	if err := logger.InitWithOptions(cfg.LoggerOptions()); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		return 1
	}
	defer logger.Sync()

	logger.Info("=== Gear Carousel ===", zap.Int("slides", len(cfg.Slides)))
	for _, n := range notes {
		logger.Warn("config adjusted", zap.String("note", n))
	}
	logger.Sugar.Debugf("Config: %+v", cfg)

	a, err := app.New(cfg)
	if err != nil {
		logger.Error("failed to create app", zap.Error(err))
		return 1
	}
	return runApp(a)
}

// gallery is the part of *app.App that runApp drives.
type gallery interface {
	Run() error
	Close()
}

// runApp runs g and always closes it.
func runApp(g gallery) int {
	defer g.Close()

	if err := g.Run(); err != nil {
		logger.Error("app error", zap.Error(err))
		return 1
	}

	logger.Info("app closed normally")
	return 0
}

// pickDeckFile shows the native open dialog. Cancel keeps the configured deck.
func pickDeckFile() string {
	path, err := dialog.File().
		Filter("Slide decks", "yaml", "yml").
		Filter("All Files", "*").
		Title("Open Slide Deck").
		Load()
	if err != nil {
		if err != dialog.ErrCancelled {
			fmt.Fprintf(os.Stderr, "File dialog error: %v\n", err)
		}
		return ""
	}
	return path
}
