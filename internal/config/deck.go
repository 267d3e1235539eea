package config

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/Faultbox/gear-carousel/internal/carousel"
)

// Deck is a standalone slide list, loaded with -deck.
type Deck struct {
	Title    string           `yaml:"title"`
	Subtitle string           `yaml:"subtitle"`
	Slides   []carousel.Slide `yaml:"slides"`
}

// LoadDeck reads a deck file.
func LoadDeck(path string) (*Deck, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var d Deck
	if err := yaml.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("parsing deck %s: %w", path, err)
	}
	return &d, nil
}

// ApplyDeck replaces the slides, and the header text when the deck sets it.
func (c *Config) ApplyDeck(d *Deck) {
	c.Slides = d.Slides
	if d.Title != "" {
		c.Layout.Title = d.Title
	}
	if d.Subtitle != "" {
		c.Layout.Subtitle = d.Subtitle
	}
}

// UseDeck loads the deck at path, applies it, and searches the deck's
// directory first for relative media references.
func (c *Config) UseDeck(path string) error {
	d, err := LoadDeck(path)
	if err != nil {
		return err
	}
	c.ApplyDeck(d)
	if dir := filepath.Dir(path); !slices.Contains(c.Assets.Roots, dir) {
		c.Assets.Roots = append([]string{dir}, c.Assets.Roots...)
	}
	return nil
}

var stockWeapons = []struct{ n, name, stats string }{
	{"1", "Havoc SI", "Havoc SI"},
	{"2", "Havoc FA", "Havoc FA"},
	{"3", "Havoc SMG", "Havoc SMG"},
	{"4", "Hornet", "Hornet 9mm"},
	{"5", "ACR", "ACR"},
	{"6", "Bullpup SG", "Bulpup SG"},
	{"7", "BMG-50", "BMG-50"},
	{"8", "Havoc Sniper", "Havoc Sniper"},
	{"9", "Matrix SMG", "Matrix SMG"},
	{"10", "Pink-90", "Pink-90"},
	{"11", "FN SCAR", "FN SCAR"},
	{"12", "Tactical SG", "Tactical SG"},
	{"13", "Warthog M4", "Warthog M4"},
	{"14", "TAR-21", "TAR-21 Sniper"},
	{"15", "Incinerator", "Incinerator Mark-1"},
	{"16", "Tommy Gun", "Tommy Gun"},
	{"17", "Rocket Launcher", "Rocket Launcher"},
	{"18", "Zombie SAW", "M249 Zombie Saw"},
}

// DefaultSlides returns the stock weapon deck. References are relative to
// the asset roots.
func DefaultSlides() []carousel.Slide {
	slides := make([]carousel.Slide, 0, len(stockWeapons))
	for _, w := range stockWeapons {
		slides = append(slides, carousel.Slide{
			Primary:  fmt.Sprintf("weapon-carousel/%s Carousel %s.png", w.n, w.name),
			Enlarged: fmt.Sprintf("weapon-stats/updated-stats/%s Update Weapons Screen %s.png", w.n, w.stats),
			Label:    w.name,
		})
	}
	return slides
}
