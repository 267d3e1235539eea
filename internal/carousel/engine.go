package carousel

import (
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/gear-carousel/internal/engine/input"
)

// Item is one rendered slide of a frame.
type Item struct {
	Index     int
	Slide     Slide
	Slot      int
	Transform Transform
}

// Frame is the published read model: the active index and every visible
// slide with its resolved transform, in paint order (ascending Z).
type Frame struct {
	Active     int
	Breakpoint Breakpoint
	Dragging   bool
	DragOffset float32
	Items      []Item
}

// Empty reports whether the frame has nothing to draw.
func (f Frame) Empty() bool {
	return len(f.Items) == 0
}

// ItemAt returns the item showing slide index, if visible.
func (f Frame) ItemAt(index int) (Item, bool) {
	for _, it := range f.Items {
		if it.Index == index {
			return it, true
		}
	}
	return Item{}, false
}

// Action reports what a key press did.
type Action int

const (
	ActionNone Action = iota
	ActionNavigated
	// ActionActivate asks the caller to open the active slide.
	ActionActivate
)

// Options configure an Engine.
type Options struct {
	Geometry     Geometry
	Thresholds   Thresholds
	Autoplay     AutoplayConfig
	WideMinWidth int
	InitialIndex int
	Logger       *zap.Logger
}

// DefaultOptions returns the stock carousel configuration.
func DefaultOptions() Options {
	return Options{
		Geometry:     DefaultGeometry(),
		Thresholds:   DefaultThresholds(),
		Autoplay:     DefaultAutoplay(),
		WideMinWidth: DefaultWideMinWidth,
	}
}

// Engine owns the carousel state: slides, active index, drag, autoplay and
// the current frame. It is not safe for concurrent use; drive it from the UI
// goroutine.
type Engine struct {
	slides   []Slide
	idx      Indexer
	active   int
	resolver Resolver
	drag     *DragController
	autoplay *Autoplay
	wideMin  int
	bp       Breakpoint
	modal    bool
	hovered  bool

	frame     Frame
	listeners []func(Frame)
	log       *zap.Logger
}

// NewEngine creates an engine over slides. Unset geometry and threshold
// fields take their DefaultOptions values.
func NewEngine(slides []Slide, opts Options) *Engine {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	wideMin := opts.WideMinWidth
	if wideMin <= 0 {
		wideMin = DefaultWideMinWidth
	}
	geo := opts.Geometry.withDefaults()
	e := &Engine{
		slides:   append([]Slide(nil), slides...),
		idx:      NewIndexer(len(slides)),
		resolver: NewResolver(geo),
		drag:     NewDragController(opts.Thresholds.withDefaults()),
		autoplay: NewAutoplay(opts.Autoplay),
		wideMin:  wideMin,
		log:      log,
	}
	if geo.Window != e.resolver.Window() {
		log.Warn("visible window clamped",
			zap.Int("requested", geo.Window),
			zap.Int("effective", e.resolver.Window()))
	}
	e.active = e.idx.Normalize(opts.InitialIndex)
	e.recompute()
	return e
}

// Len returns the number of slides.
func (e *Engine) Len() int {
	return len(e.slides)
}

// Slides returns the slide list. Callers must not modify it.
func (e *Engine) Slides() []Slide {
	return e.slides
}

// Active returns the active index.
func (e *Engine) Active() int {
	return e.active
}

// Frame returns the last published frame.
func (e *Engine) Frame() Frame {
	return e.frame
}

// Breakpoint returns the current breakpoint.
func (e *Engine) Breakpoint() Breakpoint {
	return e.bp
}

// Resolver exposes the slot table.
func (e *Engine) Resolver() Resolver {
	return e.resolver
}

// OnChange registers fn to receive every newly published frame.
func (e *Engine) OnChange(fn func(Frame)) {
	e.listeners = append(e.listeners, fn)
}

// Next advances to the following slide.
func (e *Engine) Next() {
	e.navigate(e.idx.Next(e.active), "next")
}

// Prev moves to the preceding slide.
func (e *Engine) Prev() {
	e.navigate(e.idx.Prev(e.active), "prev")
}

// Goto jumps to slide i, normalized into range.
func (e *Engine) Goto(i int) {
	e.navigate(e.idx.Goto(i), "goto")
}

func (e *Engine) navigate(target int, how string) {
	if len(e.slides) == 0 {
		return
	}
	e.autoplay.Restart()
	if target == e.active {
		return
	}
	e.log.Debug("navigate", zap.String("via", how), zap.Int("from", e.active), zap.Int("to", target))
	e.active = target
	e.recompute()
}

// SetSlides replaces the slide list. The active index is kept when still in
// range and clamped to the last slide otherwise.
func (e *Engine) SetSlides(slides []Slide) {
	e.slides = append([]Slide(nil), slides...)
	e.idx = NewIndexer(len(slides))
	if e.active >= len(slides) {
		e.active = len(slides) - 1
	}
	if e.active < 0 {
		e.active = 0
	}
	e.drag.Cancel()
	e.recompute()
}

// SetViewport updates the breakpoint from the viewport width.
func (e *Engine) SetViewport(width, height int) {
	bp := BreakpointFor(width, e.wideMin)
	if bp == e.bp {
		return
	}
	e.log.Debug("breakpoint changed", zap.Stringer("breakpoint", bp), zap.Int("width", width), zap.Int("height", height))
	e.bp = bp
	e.recompute()
}

// SetModal marks a modal viewer as open. While modal, keys are ignored,
// autoplay is suspended and any drag is cancelled.
func (e *Engine) SetModal(open bool) {
	e.modal = open
	if open && e.drag.Dragging() {
		e.CancelDrag()
	}
	e.autoplay.Restart()
}

// Modal reports whether a modal viewer is open.
func (e *Engine) Modal() bool {
	return e.modal
}

// SetHovered records whether the pointer is over the stage.
func (e *Engine) SetHovered(on bool) {
	if e.hovered != on {
		e.hovered = on
		e.autoplay.Restart()
	}
}

// SetAutoplay enables or disables autoplay.
func (e *Engine) SetAutoplay(on bool) {
	e.autoplay.SetEnabled(on)
}

// AutoplayEnabled reports whether autoplay is configured on.
func (e *Engine) AutoplayEnabled() bool {
	return e.autoplay.Config().Enabled
}

// HandleKey maps Left/Right to navigation and Enter to activation.
func (e *Engine) HandleKey(k input.Key) Action {
	if e.modal || len(e.slides) == 0 {
		return ActionNone
	}
	switch k {
	case input.KeyLeft:
		e.Prev()
		return ActionNavigated
	case input.KeyRight:
		e.Next()
		return ActionNavigated
	case input.KeyEnter:
		return ActionActivate
	}
	return ActionNone
}

// BeginDrag starts a drag at pointer x.
func (e *Engine) BeginDrag(x float32, t time.Duration) {
	if e.modal || len(e.slides) == 0 {
		return
	}
	e.drag.Begin(x, t)
	e.recompute()
}

// DragTo moves the drag to pointer x.
func (e *Engine) DragTo(x float32, t time.Duration) {
	if !e.drag.Dragging() {
		return
	}
	e.drag.Move(x, t)
	e.recompute()
}

// EndDrag releases the drag at x, applies the decision and returns it.
func (e *Engine) EndDrag(x float32, t time.Duration) Decision {
	if !e.drag.Dragging() {
		return SnapBack
	}
	d := e.drag.End(x, t)
	e.log.Debug("drag released", zap.Stringer("decision", d))
	e.apply(d)
	return d
}

// CancelDrag abandons a drag without navigating.
func (e *Engine) CancelDrag() {
	if !e.drag.Dragging() {
		return
	}
	e.drag.Cancel()
	e.recompute()
}

// Dragging reports whether a drag is in progress.
func (e *Engine) Dragging() bool {
	return e.drag.Dragging()
}

// DragTravel returns the largest pointer offset of the current drag.
func (e *Engine) DragTravel() float32 {
	return e.drag.Travel()
}

func (e *Engine) apply(d Decision) {
	target := e.active
	switch d {
	case CommitNext:
		target = e.idx.Next(e.active)
	case CommitPrev:
		target = e.idx.Prev(e.active)
	}
	e.active = target
	e.autoplay.Restart()
	// Publish even when the index held: the drag offset is back at zero.
	e.recompute()
}

// Update advances autoplay by dt and reports whether it advanced a slide.
func (e *Engine) Update(dt time.Duration) bool {
	if !e.autoplay.Tick(dt, e.autoplaySuspended()) {
		return false
	}
	e.log.Debug("autoplay advance")
	e.Next()
	return true
}

func (e *Engine) autoplaySuspended() bool {
	return len(e.slides) < 2 ||
		e.drag.Dragging() ||
		e.modal ||
		(e.hovered && e.autoplay.Config().PauseOnHover)
}

// recompute builds the whole next frame before publishing it.
func (e *Engine) recompute() {
	next := Frame{
		Active:     e.active,
		Breakpoint: e.bp,
		Dragging:   e.drag.Dragging(),
	}
	if next.Dragging {
		next.DragOffset = e.drag.VisualOffset()
	}

	window := e.resolver.Window()
	for i, s := range e.slides {
		slot := e.idx.SignedDistance(i, e.active)
		if slot < -window || slot > window {
			continue
		}
		tr := e.resolver.Resolve(slot, e.bp)
		if next.Dragging && slot >= -1 && slot <= 1 {
			tr.OffsetX += next.DragOffset
		}
		next.Items = append(next.Items, Item{Index: i, Slide: s, Slot: slot, Transform: tr})
	}
	sort.SliceStable(next.Items, func(a, b int) bool {
		ia, ib := next.Items[a], next.Items[b]
		if ia.Transform.Z != ib.Transform.Z {
			return ia.Transform.Z < ib.Transform.Z
		}
		return ia.Slot < ib.Slot
	})

	e.frame = next
	for _, fn := range e.listeners {
		fn(next)
	}
}
