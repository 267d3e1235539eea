package gallery

import (
	"fmt"

	"github.com/Faultbox/gear-carousel/internal/carousel"
)

// Rect is an axis-aligned rectangle in window pixels.
type Rect struct {
	X, Y, W, H float32
}

// Contains reports whether (x, y) lies inside r.
func (r Rect) Contains(x, y float32) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// Center returns the midpoint of r.
func (r Rect) Center() (float32, float32) {
	return r.X + r.W/2, r.Y + r.H/2
}

// Inset shrinks r by d on every side.
func (r Rect) Inset(d float32) Rect {
	return Rect{X: r.X + d, Y: r.Y + d, W: max(r.W-2*d, 0), H: max(r.H-2*d, 0)}
}

// TargetKind identifies what a hit target does.
type TargetKind int

const (
	TargetNone TargetKind = iota
	TargetSlide
	TargetDot
	TargetPrev
	TargetNext
	TargetClose
	TargetLightboxPrev
	TargetLightboxNext
	TargetLightboxContent
	TargetBackdrop
)

// Target is an interactive region with its accessible label.
type Target struct {
	Kind  TargetKind
	Index int // slide index for TargetSlide and TargetDot
	Rect  Rect
	Label string
}

// LayoutConfig sizes the stage. Responsive values use the carousel
// breakpoints.
type LayoutConfig struct {
	CardWidth     carousel.Responsive
	CardHeight    carousel.Responsive
	CardRadius    carousel.Responsive
	StageHeight   carousel.Responsive
	HeaderHeight  carousel.Responsive
	StageMaxWidth float32
	Margin        float32

	ShowArrows     bool
	ShowDots       bool
	ArrowSize      float32
	ControlsHeight float32
	DotActive      float32
	DotInactive    float32
	DotGap         float32

	LightboxMaxWidth  float32
	LightboxPadding   float32
	LightboxArrowsMin float32 // narrowest viewport that shows lightbox arrows
	CloseSize         float32
}

// DefaultLayout returns the stock card and control sizes.
func DefaultLayout() LayoutConfig {
	return LayoutConfig{
		CardWidth:     carousel.Responsive{Compact: 320, Wide: 780},
		CardHeight:    carousel.Responsive{Compact: 200, Wide: 480},
		CardRadius:    carousel.Responsive{Compact: 10, Wide: 28},
		StageHeight:   carousel.Responsive{Compact: 240, Wide: 500},
		HeaderHeight:  carousel.Responsive{Compact: 88, Wide: 136},
		StageMaxWidth: 1100,
		Margin:        16,

		ShowArrows:     true,
		ShowDots:       true,
		ArrowSize:      40,
		ControlsHeight: 56,
		DotActive:      12,
		DotInactive:    8,
		DotGap:         10,

		LightboxMaxWidth:  1200,
		LightboxPadding:   16,
		LightboxArrowsMin: 600,
		CloseSize:         40,
	}
}

// Card is the unscaled card size at the current breakpoint.
type Card struct {
	W, H, Radius float32
}

// Layout is the resolved geometry for one viewport.
type Layout struct {
	Width, Height float32
	Breakpoint    carousel.Breakpoint
	Header        Rect
	Stage         Rect
	Controls      Rect
	Card          Card
	Prev, Next    Target
	Dots          []Target
	Lightbox      LightboxLayout
}

// LightboxLayout places the modal panel and its controls.
type LightboxLayout struct {
	Panel      Rect
	Content    Rect
	Close      Target
	Prev, Next Target
	ShowArrows bool
}

// ComputeLayout resolves cfg for a viewport of w x h with n slides, the
// carousel at active.
func ComputeLayout(cfg LayoutConfig, w, h int, bp carousel.Breakpoint, n, active int) Layout {
	vw, vh := float32(w), float32(h)
	l := Layout{Width: vw, Height: vh, Breakpoint: bp}

	cardW := cfg.CardWidth.At(bp)
	cardH := cfg.CardHeight.At(bp)
	if avail := vw - 2*cfg.Margin; cardW > avail && avail > 0 {
		cardH *= avail / cardW
		cardW = avail
	}
	l.Card = Card{W: cardW, H: cardH, Radius: cfg.CardRadius.At(bp)}

	headerH := cfg.HeaderHeight.At(bp)
	stageH := max(cfg.StageHeight.At(bp), cardH)
	controlsH := float32(0)
	if cfg.ShowArrows || cfg.ShowDots {
		controlsH = cfg.ControlsHeight
	}
	top := max((vh-headerH-stageH-controlsH)/2, cfg.Margin)

	stageW := min(vw, cfg.StageMaxWidth)
	l.Header = Rect{X: 0, Y: top, W: vw, H: headerH}
	l.Stage = Rect{X: (vw - stageW) / 2, Y: top + headerH, W: stageW, H: stageH}
	l.Controls = Rect{X: 0, Y: l.Stage.Y + stageH, W: vw, H: controlsH}

	l.layoutControls(cfg, n, active)
	l.Lightbox = lightboxLayout(cfg, vw, vh)
	return l
}

func (l *Layout) layoutControls(cfg LayoutConfig, n, active int) {
	cy := l.Controls.Y + l.Controls.H/2

	var dotsW float32
	if cfg.ShowDots && n > 0 {
		for i := 0; i < n; i++ {
			dotsW += dotSize(cfg, i, active)
		}
		dotsW += float32(n-1) * cfg.DotGap
	}
	rowW := dotsW
	if cfg.ShowArrows {
		rowW += 2 * (cfg.ArrowSize + cfg.DotGap*2)
	}
	x := (l.Width - rowW) / 2

	if cfg.ShowArrows {
		l.Prev = Target{
			Kind:  TargetPrev,
			Index: -1,
			Rect:  Rect{X: x, Y: cy - cfg.ArrowSize/2, W: cfg.ArrowSize, H: cfg.ArrowSize},
			Label: "Previous",
		}
		x += cfg.ArrowSize + cfg.DotGap*2
	}
	if cfg.ShowDots {
		l.Dots = make([]Target, 0, n)
		for i := 0; i < n; i++ {
			d := dotSize(cfg, i, active)
			l.Dots = append(l.Dots, Target{
				Kind:  TargetDot,
				Index: i,
				Rect:  Rect{X: x, Y: cy - d/2, W: d, H: d},
				Label: fmt.Sprintf("Go to slide %d", i+1),
			})
			x += d + cfg.DotGap
		}
		if n > 0 {
			x -= cfg.DotGap
		}
	}
	if cfg.ShowArrows {
		if cfg.ShowDots && n > 0 {
			x += cfg.DotGap * 2
		}
		l.Next = Target{
			Kind:  TargetNext,
			Index: -1,
			Rect:  Rect{X: x, Y: cy - cfg.ArrowSize/2, W: cfg.ArrowSize, H: cfg.ArrowSize},
			Label: "Next",
		}
	}
}

func dotSize(cfg LayoutConfig, i, active int) float32 {
	if i == active {
		return cfg.DotActive
	}
	return cfg.DotInactive
}

func lightboxLayout(cfg LayoutConfig, vw, vh float32) LightboxLayout {
	pw := min(vw-2*cfg.Margin, cfg.LightboxMaxWidth)
	ph := min(vh-4*cfg.Margin, pw*0.62)
	panel := Rect{X: (vw - pw) / 2, Y: (vh - ph) / 2, W: pw, H: ph}
	lb := LightboxLayout{
		Panel:      panel,
		Content:    panel.Inset(cfg.LightboxPadding),
		ShowArrows: vw >= cfg.LightboxArrowsMin,
	}
	s := cfg.CloseSize
	lb.Close = Target{
		Kind:  TargetClose,
		Index: -1,
		Rect:  Rect{X: panel.X + panel.W - s - 8, Y: panel.Y + 8, W: s, H: s},
		Label: "Close",
	}
	if lb.ShowArrows {
		cy := panel.Y + panel.H/2
		lb.Prev = Target{
			Kind:  TargetLightboxPrev,
			Index: -1,
			Rect:  Rect{X: panel.X + 16, Y: cy - s/2, W: s, H: s},
			Label: "Previous item",
		}
		lb.Next = Target{
			Kind:  TargetLightboxNext,
			Index: -1,
			Rect:  Rect{X: panel.X + panel.W - s - 16, Y: cy - s/2, W: s, H: s},
			Label: "Next item",
		}
	}
	return lb
}

// SlideRect returns the on-screen card of item.
func (l Layout) SlideRect(it carousel.Item) Rect {
	cx, cy := l.Stage.Center()
	cx += it.Transform.OffsetX
	w := l.Card.W * it.Transform.Scale
	h := l.Card.H * it.Transform.Scale
	return Rect{X: cx - w/2, Y: cy - h/2, W: w, H: h}
}

// SlideTarget describes item as a hit target.
func (l Layout) SlideTarget(it carousel.Item) Target {
	return Target{
		Kind:  TargetSlide,
		Index: it.Index,
		Rect:  l.SlideRect(it),
		Label: fmt.Sprintf("View %s larger", it.Slide.AltText()),
	}
}

// HitCarousel returns the topmost carousel target at (x, y): arrows and
// dots first, then slides from the top of the paint order down.
func (l Layout) HitCarousel(f carousel.Frame, x, y float32) (Target, bool) {
	if l.Prev.Kind != TargetNone && l.Prev.Rect.Contains(x, y) {
		return l.Prev, true
	}
	if l.Next.Kind != TargetNone && l.Next.Rect.Contains(x, y) {
		return l.Next, true
	}
	for _, d := range l.Dots {
		// Small dots get a padded hit area.
		if d.Rect.Inset(-4).Contains(x, y) {
			return d, true
		}
	}
	for i := len(f.Items) - 1; i >= 0; i-- {
		t := l.SlideTarget(f.Items[i])
		if t.Rect.Contains(x, y) {
			return t, true
		}
	}
	return Target{}, false
}

// HitLightbox returns the lightbox target at (x, y). Anything outside the
// panel is the backdrop.
func (l Layout) HitLightbox(x, y float32) Target {
	lb := l.Lightbox
	if lb.Close.Rect.Contains(x, y) {
		return lb.Close
	}
	if lb.ShowArrows {
		if lb.Prev.Rect.Contains(x, y) {
			return lb.Prev
		}
		if lb.Next.Rect.Contains(x, y) {
			return lb.Next
		}
	}
	if lb.Panel.Contains(x, y) {
		return Target{Kind: TargetLightboxContent, Index: -1, Rect: lb.Content, Label: "Viewer"}
	}
	return Target{Kind: TargetBackdrop, Index: -1, Rect: Rect{W: l.Width, H: l.Height}, Label: "Close"}
}
