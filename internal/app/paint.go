package app

import (
	"fmt"

	"github.com/Faultbox/gear-carousel/internal/carousel"
	"github.com/Faultbox/gear-carousel/internal/engine/ui2d"
	"github.com/Faultbox/gear-carousel/internal/gallery"
	"github.com/Faultbox/gear-carousel/internal/lightbox"
	"github.com/Faultbox/gear-carousel/internal/media"
)

// paint draws one frame: header, cards, controls, then the lightbox.
func (a *App) paint() {
	r := a.renderer
	l := a.stage.Layout()
	r.Begin(a.theme.page)

	a.paintHeader(l)
	a.paintCards(l)
	a.paintControls(l)
	if a.stage.Viewer().IsOpen() {
		a.paintLightbox(l)
	}
}

func rect(g gallery.Rect) ui2d.Rect {
	return ui2d.Rect{X: g.X, Y: g.Y, W: g.W, H: g.H}
}

func (a *App) paintHeader(l gallery.Layout) {
	if l.Header.H <= 0 {
		return
	}
	title, subtitle := a.cfg.Layout.Title, a.cfg.Layout.Subtitle
	scale := float32(2)
	if l.Breakpoint == carousel.BreakpointWide {
		scale = 4
	}
	cx := l.Header.X + l.Header.W/2
	r := a.renderer
	_, th := r.MeasureText(title, scale)
	_, sh := r.MeasureText(subtitle, scale/2)
	y := l.Header.Y + (l.Header.H-th-sh-8)/2
	if title != "" {
		r.DrawTextCentered(cx, y+th/2, title, scale, ui2d.ColorText)
	}
	if subtitle != "" {
		r.DrawTextCentered(cx, y+th+8+sh/2, subtitle, scale/2, ui2d.ColorTextDim)
	}
}

func (a *App) paintCards(l gallery.Layout) {
	r := a.renderer
	radius := l.Card.Radius
	for _, it := range a.stage.Motion().Items() {
		tr := it.Transform
		if tr.Opacity <= 0.01 {
			continue
		}
		card := rect(l.SlideRect(it.Item))
		rad := radius * tr.Scale

		shadow := a.theme.shadowSide
		if it.Slot == 0 && !it.Leaving {
			shadow = a.theme.shadowCenter
		}
		r.DrawShadow(card.Offset(0, 12*tr.Scale), rad, 24*tr.Scale, ui2d.ColorBlack.WithAlpha(shadow*tr.Opacity))

		bg := ui2d.HexOr(it.Slide.Background, a.theme.card)
		r.DrawRoundRect(card, rad, bg.Fade(tr.Opacity))

		tex, state := a.media.Get(it.Slide.Primary)
		switch state {
		case media.StateReady:
			img := ui2d.Image{Tex: tex.ID, Width: tex.Width, Height: tex.Height}
			r.DrawImage(img, card, rad, tr.Opacity, tr.Blur*tr.Scale)
		case media.StateFailed:
			cx, cy := card.X+card.W/2, card.Y+card.H/2
			r.DrawTextCentered(cx, cy, it.Slide.AltText(), 1, ui2d.ColorTextDim.Fade(tr.Opacity))
		}
	}
}

func (a *App) paintControls(l gallery.Layout) {
	r := a.renderer
	if l.Prev.Kind != gallery.TargetNone {
		a.paintArrow(l.Prev, "<")
		a.paintArrow(l.Next, ">")
	}
	active := a.stage.Engine().Active()
	for _, d := range l.Dots {
		c := a.theme.dotInactive
		if d.Index == active {
			c = a.theme.dotActive
		}
		cx, cy := d.Rect.Center()
		r.DrawCircle(cx, cy, d.Rect.W/2, c)
	}
}

func (a *App) paintArrow(t gallery.Target, glyph string) {
	r := a.renderer
	cx, cy := t.Rect.Center()
	r.DrawCircle(cx, cy, t.Rect.W/2, ui2d.ColorButton)
	r.DrawTextCentered(cx, cy, glyph, 2, ui2d.ColorText)
}

func (a *App) paintLightbox(l gallery.Layout) {
	r := a.renderer
	lb := l.Lightbox
	r.DrawRect(ui2d.Rect{W: l.Width, H: l.Height}, a.theme.backdrop)
	panel := rect(lb.Panel)
	r.DrawShadow(panel.Offset(0, 16), 16, 40, ui2d.ColorBlack.WithAlpha(0.5))
	r.DrawRoundRect(panel, 16, a.theme.panel)

	content := rect(lb.Content)
	c := a.stage.Viewer().Content()
	switch c.Kind {
	case lightbox.ContentImage:
		a.paintLightboxImage(content, c)
	case lightbox.ContentLoading:
		a.paintProgress(content, c.Percent)
	case lightbox.ContentModel:
		w, h := r.BeginViewport(content)
		a.stage.Viewer().DrawModel(lightbox.Viewport{X: int(content.X), Y: int(content.Y), W: w, H: h})
		r.EndViewport()
	}

	caption := c.Slide.AltText()
	if c.Fallback {
		caption += " (3D view unavailable)"
	}
	r.DrawTextCentered(content.X+content.W/2, content.Y+content.H-12, caption, 1, ui2d.ColorTextDim)

	a.paintClose(lb.Close)
	if lb.ShowArrows {
		a.paintArrow(lb.Prev, "<")
		a.paintArrow(lb.Next, ">")
	}
}

func (a *App) paintLightboxImage(content ui2d.Rect, c lightbox.Content) {
	r := a.renderer
	tex, state := a.media.Get(c.Media)
	switch state {
	case media.StateReady:
		img := ui2d.Image{Tex: tex.ID, Width: tex.Width, Height: tex.Height}
		r.DrawImage(img, ui2d.Contain(tex.Width, tex.Height, content.Expand(-24)), 8, 1, 0)
	case media.StateFailed:
		r.DrawTextCentered(content.X+content.W/2, content.Y+content.H/2, "Image unavailable", 1.5, ui2d.ColorTextDim)
	default:
		r.DrawTextCentered(content.X+content.W/2, content.Y+content.H/2, "Loading", 1.5, ui2d.ColorTextDim)
	}
}

func (a *App) paintProgress(content ui2d.Rect, percent float32) {
	r := a.renderer
	w := min(content.W*0.6, 420)
	bar := ui2d.Rect{X: content.X + (content.W-w)/2, Y: content.Y + content.H/2, W: w, H: 6}
	r.DrawRoundRect(bar, 3, ui2d.ColorWhite.WithAlpha(0.15))
	fill := bar
	fill.W = w * percent / 100
	r.DrawRoundRect(fill, 3, a.theme.dotActive)
	r.DrawTextCentered(bar.X+w/2, bar.Y-18, fmt.Sprintf("Loading model %d%%", int(percent)), 1.5, ui2d.ColorText)
}

func (a *App) paintClose(t gallery.Target) {
	r := a.renderer
	cx, cy := t.Rect.Center()
	r.DrawCircle(cx, cy, t.Rect.W/2, ui2d.ColorButtonHot)
	r.DrawTextCentered(cx, cy, "X", 2, ui2d.ColorText)
}
