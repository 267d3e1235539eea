// Package gallery binds the carousel engine and the lightbox viewer to a
// window: it lays out the stage, routes input between the two with the
// lightbox taking precedence while open, and hit-tests every control.
package gallery

import (
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/gear-carousel/internal/carousel"
	"github.com/Faultbox/gear-carousel/internal/engine/input"
	"github.com/Faultbox/gear-carousel/internal/lightbox"
	"github.com/Faultbox/gear-carousel/internal/logger"
)

// TapSlop is how far a press may travel and still count as a click.
const TapSlop = 6

// orbitScale converts pointer pixels into orbit input.
const orbitScale = 0.5

type press struct {
	active bool
	target Target
	orbit  bool
	startX float32
	startY float32
	lastX  float32
	lastY  float32
}

// Stage routes window input to the carousel and lightbox and keeps the
// layout in sync with the viewport.
type Stage struct {
	engine *carousel.Engine
	viewer *lightbox.Viewer
	motion *carousel.Motion
	cfg    LayoutConfig

	width, height int
	layout        Layout
	press         press
	hovered       bool
	quit          bool
	log           *zap.Logger
}

// NewStage wires engine and viewer together. motion may be nil.
func NewStage(engine *carousel.Engine, viewer *lightbox.Viewer, motion *carousel.Motion, cfg LayoutConfig, width, height int) *Stage {
	s := &Stage{
		engine: engine,
		viewer: viewer,
		motion: motion,
		cfg:    cfg,
		log:    logger.Named("stage"),
	}
	engine.OnChange(func(f carousel.Frame) {
		s.relayout()
		if s.motion != nil {
			s.motion.Sync(f)
		}
	})
	if motion != nil {
		motion.Sync(engine.Frame())
	}
	s.Resize(width, height)
	return s
}

// Engine returns the carousel engine.
func (s *Stage) Engine() *carousel.Engine { return s.engine }

// Viewer returns the lightbox viewer.
func (s *Stage) Viewer() *lightbox.Viewer { return s.viewer }

// Motion returns the slide animation state, or nil.
func (s *Stage) Motion() *carousel.Motion { return s.motion }

// Layout returns the current layout.
func (s *Stage) Layout() Layout { return s.layout }

// Quit reports whether a quit was requested.
func (s *Stage) Quit() bool { return s.quit }

// Hovered reports whether the pointer is over the stage.
func (s *Stage) Hovered() bool { return s.hovered }

// Resize updates the viewport.
func (s *Stage) Resize(width, height int) {
	s.width, s.height = width, height
	s.engine.SetViewport(width, height)
	s.relayout()
}

func (s *Stage) relayout() {
	s.layout = ComputeLayout(s.cfg, s.width, s.height, s.engine.Breakpoint(), s.engine.Len(), s.engine.Active())
}

// Update advances autoplay, applies finished loads and steps the motion.
func (s *Stage) Update(dt time.Duration) {
	s.viewer.Update()
	s.syncModal()
	s.engine.Update(dt)
	if s.motion != nil {
		s.motion.Update(dt)
	}
}

// Targets lists every interactive region currently on screen with its
// accessible label, topmost first.
func (s *Stage) Targets() []Target {
	var out []Target
	if s.viewer.IsOpen() {
		lb := s.layout.Lightbox
		out = append(out, lb.Close)
		if lb.ShowArrows {
			out = append(out, lb.Prev, lb.Next)
		}
		return out
	}
	if s.layout.Prev.Kind != TargetNone {
		out = append(out, s.layout.Prev, s.layout.Next)
	}
	out = append(out, s.layout.Dots...)
	items := s.engine.Frame().Items
	for i := len(items) - 1; i >= 0; i-- {
		out = append(out, s.layout.SlideTarget(items[i]))
	}
	return out
}

// Handle processes one input event.
func (s *Stage) Handle(ev input.Event) {
	switch ev.Type {
	case input.EventQuit:
		s.quit = true
	case input.EventWindowResize:
		s.Resize(ev.Width, ev.Height)
	case input.EventKeyDown:
		s.handleKey(ev.Key)
	case input.EventPointerDown:
		if ev.Button == input.ButtonLeft {
			s.pointerDown(ev)
		}
	case input.EventPointerMove:
		s.pointerMove(ev)
	case input.EventPointerUp:
		if ev.Button == input.ButtonLeft {
			s.pointerUp(ev)
		}
	case input.EventPointerLeave:
		s.cancelPointer()
		s.setHover(false, -1)
	case input.EventFocusLost:
		s.cancelPointer()
	case input.EventWheel:
		if s.viewer.IsOpen() {
			s.viewer.Zoom(ev.Wheel)
		}
	}
}

func (s *Stage) handleKey(k input.Key) {
	if s.viewer.HandleKey(k) {
		s.syncModal()
		return
	}
	if s.engine.HandleKey(k) == carousel.ActionActivate {
		s.openLightbox(s.engine.Active())
	}
}

func (s *Stage) pointerDown(ev input.Event) {
	s.press = press{active: true, startX: ev.X, startY: ev.Y, lastX: ev.X, lastY: ev.Y}

	if s.viewer.IsOpen() {
		t := s.layout.HitLightbox(ev.X, ev.Y)
		s.press.target = t
		s.press.orbit = t.Kind == TargetLightboxContent
		return
	}

	t, ok := s.layout.HitCarousel(s.engine.Frame(), ev.X, ev.Y)
	if ok {
		s.press.target = t
	}
	if t.Kind == TargetSlide || (!ok && s.layout.Stage.Contains(ev.X, ev.Y)) {
		s.engine.BeginDrag(ev.X, ev.Time)
	}
}

func (s *Stage) pointerMove(ev input.Event) {
	if !s.viewer.IsOpen() {
		over := s.layout.Stage.Contains(ev.X, ev.Y)
		hit := -1
		if t, ok := s.layout.HitCarousel(s.engine.Frame(), ev.X, ev.Y); ok && t.Kind == TargetSlide {
			hit = t.Index
		}
		s.setHover(over, hit)
	}

	if !s.press.active {
		return
	}
	if s.press.orbit {
		s.viewer.Orbit((ev.X-s.press.lastX)*orbitScale, (ev.Y-s.press.lastY)*orbitScale)
	}
	s.press.lastX, s.press.lastY = ev.X, ev.Y
	if s.engine.Dragging() {
		s.engine.DragTo(ev.X, ev.Time)
	}
}

func (s *Stage) pointerUp(ev input.Event) {
	if !s.press.active {
		return
	}
	p := s.press
	s.press = press{}
	tap := abs(ev.X-p.startX) <= TapSlop && abs(ev.Y-p.startY) <= TapSlop

	if s.engine.Dragging() {
		if tap && s.engine.DragTravel() <= TapSlop {
			s.engine.CancelDrag()
		} else {
			d := s.engine.EndDrag(ev.X, ev.Time)
			s.log.Debug("drag", zap.Stringer("decision", d), zap.Int("active", s.engine.Active()))
			return
		}
	}
	if !tap {
		return
	}

	// A click lands when press and release hit the same target.
	var release Target
	if s.viewer.IsOpen() {
		release = s.layout.HitLightbox(ev.X, ev.Y)
	} else {
		release, _ = s.layout.HitCarousel(s.engine.Frame(), ev.X, ev.Y)
	}
	if release.Kind != p.target.Kind || release.Index != p.target.Index {
		return
	}
	s.activate(p.target)
}

func (s *Stage) activate(t Target) {
	switch t.Kind {
	case TargetSlide:
		s.openLightbox(t.Index)
	case TargetDot:
		s.engine.Goto(t.Index)
	case TargetPrev:
		s.engine.Prev()
	case TargetNext:
		s.engine.Next()
	case TargetClose, TargetBackdrop:
		s.viewer.Close()
	case TargetLightboxPrev:
		s.viewer.Prev()
	case TargetLightboxNext:
		s.viewer.Next()
	}
	s.syncModal()
}

func (s *Stage) openLightbox(index int) {
	s.engine.CancelDrag()
	s.viewer.Open(index)
	s.syncModal()
}

func (s *Stage) cancelPointer() {
	s.press = press{}
	s.engine.CancelDrag()
}

func (s *Stage) setHover(over bool, index int) {
	s.hovered = over
	s.engine.SetHovered(over)
	if s.motion != nil {
		s.motion.SetHovered(index)
	}
}

func (s *Stage) syncModal() {
	open := s.viewer.IsOpen()
	if open != s.engine.Modal() {
		s.engine.SetModal(open)
		if open {
			s.setHover(false, -1)
		}
	}
}

func abs(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
