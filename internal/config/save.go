package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Save writes the config to the user's config directory.
func (c *Config) Save() error {
	return c.SaveTo(filepath.Join(ConfigDir(), "config.yaml"))
}

// SaveTo writes the config to a specific path, creating parent directories.
func (c *Config) SaveTo(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}

// SaveDeck writes the current slides as a deck file.
func (c *Config) SaveDeck(path string) error {
	d := Deck{Title: c.Layout.Title, Subtitle: c.Layout.Subtitle, Slides: c.Slides}
	data, err := yaml.Marshal(&d)
	if err != nil {
		return fmt.Errorf("encoding deck: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}
