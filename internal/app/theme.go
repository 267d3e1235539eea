package app

import (
	"github.com/Faultbox/gear-carousel/internal/config"
	"github.com/Faultbox/gear-carousel/internal/engine/ui2d"
)

// theme holds the resolved colors of the layout section.
type theme struct {
	page         ui2d.Color
	card         ui2d.Color
	shadowCenter float32
	shadowSide   float32
	dotActive    ui2d.Color
	dotInactive  ui2d.Color
	backdrop     ui2d.Color
	panel        ui2d.Color
}

func newTheme(cfg *config.Config) theme {
	l := cfg.Layout
	card := ui2d.HexOr(l.Card.Background, ui2d.RGB(0x0e, 0x0f, 0x11))
	return theme{
		page:         ui2d.HexOr(l.Background, ui2d.ColorBlack),
		card:         card,
		shadowCenter: l.Card.ShadowCenterAlpha,
		shadowSide:   l.Card.ShadowSideAlpha,
		dotActive:    ui2d.HexOr(l.Dots.ActiveColor, ui2d.ColorGold),
		dotInactive:  ui2d.ColorWhite.WithAlpha(l.Dots.InactiveAlpha),
		backdrop:     ui2d.ColorBlack.WithAlpha(cfg.Lightbox.BackdropOpacity),
		panel:        card.Lighten(0.04),
	}
}
