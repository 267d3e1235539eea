// Package lightbox implements the modal viewer opened from the carousel.
//
// The viewer keeps its own index, copied from the carousel when opened, so
// browsing inside the lightbox never moves the carousel. A slide with a
// model reference is shown as an interactive 3D scene once its asynchronous
// load completes; any other slide, or a failed model, shows the enlarged
// image.
package lightbox

import (
	"context"
	"errors"

	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"

	"github.com/Faultbox/gear-carousel/internal/carousel"
	"github.com/Faultbox/gear-carousel/internal/engine/input"
	"github.com/Faultbox/gear-carousel/internal/logger"
)

// ErrNoScene is reported when a loader finishes without a scene or error.
var ErrNoScene = errors.New("lightbox: loader returned no scene")

// State is the open/closed state of the viewer.
type State int

const (
	Closed State = iota
	Open
)

// ContentKind tells the renderer which branch to draw.
type ContentKind int

const (
	ContentNone ContentKind = iota
	ContentImage
	ContentLoading
	ContentModel
)

func (k ContentKind) String() string {
	switch k {
	case ContentImage:
		return "image"
	case ContentLoading:
		return "loading"
	case ContentModel:
		return "model"
	default:
		return "none"
	}
}

// Content is what the open viewer currently shows.
type Content struct {
	Kind    ContentKind
	Index   int
	Slide   carousel.Slide
	Media   string  // image reference for ContentImage
	Percent float32 // load progress for ContentLoading
	Scene   Scene   // for ContentModel
	// Fallback is set when the image replaces a model that failed to load.
	Fallback bool
}

type loadEvent struct {
	token    ulid.ULID
	progress LoadProgress
}

// eventBuffer sizes the completion channel between loaders and Update.
const eventBuffer = 32

// Viewer is the lightbox state machine. Its methods must be called from
// the UI goroutine.
type Viewer struct {
	slides []carousel.Slide
	idx    carousel.Indexer
	state  State
	active int

	loader ModelLoader
	events chan loadEvent
	quit   chan struct{}
	token  ulid.ULID
	cancel context.CancelFunc

	content Content
	log     *zap.Logger
}

// New returns a closed viewer over slides. loader may be nil, in which case
// every slide shows its image.
func New(slides []carousel.Slide, loader ModelLoader, log *zap.Logger) *Viewer {
	if log == nil {
		log = logger.Named("lightbox")
	}
	return &Viewer{
		slides: append([]carousel.Slide(nil), slides...),
		idx:    carousel.NewIndexer(len(slides)),
		loader: loader,
		events: make(chan loadEvent, eventBuffer),
		quit:   make(chan struct{}),
		log:    log,
	}
}

// State returns Open or Closed.
func (v *Viewer) State() State {
	return v.state
}

// IsOpen reports whether the viewer is open.
func (v *Viewer) IsOpen() bool {
	return v.state == Open
}

// Index returns the viewer's own active index.
func (v *Viewer) Index() int {
	return v.active
}

// Content returns what the viewer shows. It is ContentNone while closed.
func (v *Viewer) Content() Content {
	return v.content
}

// Open shows slide i. The index is copied; later carousel navigation does
// not affect the viewer. Opening an empty viewer is a no-op.
func (v *Viewer) Open(i int) {
	if len(v.slides) == 0 {
		return
	}
	v.state = Open
	v.active = v.idx.Normalize(i)
	v.log.Info("opened", zap.Int("index", v.active))
	v.show()
}

// Close hides the viewer, cancelling any load in flight.
func (v *Viewer) Close() {
	if v.state == Closed {
		return
	}
	v.release()
	v.state = Closed
	v.content = Content{}
	v.log.Info("closed", zap.Int("index", v.active))
}

// Next shows the following slide.
func (v *Viewer) Next() {
	v.navigate(v.idx.Next(v.active))
}

// Prev shows the preceding slide.
func (v *Viewer) Prev() {
	v.navigate(v.idx.Prev(v.active))
}

// Goto shows slide i.
func (v *Viewer) Goto(i int) {
	v.navigate(v.idx.Goto(i))
}

func (v *Viewer) navigate(target int) {
	if v.state != Open || target == v.active {
		return
	}
	v.active = target
	v.show()
}

// SetSlides replaces the slide list and closes the viewer.
func (v *Viewer) SetSlides(slides []carousel.Slide) {
	v.Close()
	v.slides = append([]carousel.Slide(nil), slides...)
	v.idx = carousel.NewIndexer(len(slides))
	v.active = 0
}

// HandleKey applies Left, Right and Escape while open. Every key is
// consumed while open so nothing behind the modal reacts to it.
func (v *Viewer) HandleKey(k input.Key) bool {
	if v.state != Open {
		return false
	}
	switch k {
	case input.KeyLeft:
		v.Prev()
	case input.KeyRight:
		v.Next()
	case input.KeyEscape:
		v.Close()
	}
	return true
}

// Orbit rotates a ready model.
func (v *Viewer) Orbit(dx, dy float32) {
	if v.content.Kind == ContentModel {
		v.content.Scene.Orbit(dx, dy)
	}
}

// Zoom moves the camera of a ready model.
func (v *Viewer) Zoom(delta float32) {
	if v.content.Kind == ContentModel {
		v.content.Scene.Zoom(delta)
	}
}

// DrawModel draws a ready scene into vp. A scene that fails to draw is
// disposed and the slide's image is shown in its place.
func (v *Viewer) DrawModel(vp Viewport) {
	if v.content.Kind != ContentModel || v.content.Scene == nil {
		return
	}
	if err := v.content.Scene.Draw(vp); err != nil {
		v.content.Scene.Dispose()
		v.fallBack(err)
	}
}

// Update applies load reports that arrived since the last call. Reports
// from superseded loads are dropped and their scenes disposed.
func (v *Viewer) Update() {
	for {
		select {
		case ev := <-v.events:
			v.apply(ev)
		default:
			return
		}
	}
}

// Shutdown closes the viewer and releases loaders blocked on delivery.
func (v *Viewer) Shutdown() {
	v.Close()
	select {
	case <-v.quit:
	default:
		close(v.quit)
	}
	v.Update()
}

func (v *Viewer) show() {
	v.release()
	s := v.slides[v.active]
	v.content = Content{Kind: ContentImage, Index: v.active, Slide: s, Media: s.EnlargedMedia()}
	if !s.HasModel() || v.loader == nil {
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	token := ulid.Make()
	v.token, v.cancel = token, cancel
	v.content.Kind = ContentLoading
	v.content.Media = ""
	v.log.Debug("model load started",
		zap.Int("index", v.active),
		zap.String("geometry", s.Model.Geometry),
		zap.Stringer("token", token))

	events, quit := v.events, v.quit
	report := func(p LoadProgress) {
		ev := loadEvent{token: token, progress: p}
		if !p.Done {
			if ctx.Err() != nil {
				return
			}
			select {
			case events <- ev:
			case <-ctx.Done():
			}
			return
		}
		// Final reports always reach the UI goroutine so their scenes are
		// disposed there.
		select {
		case events <- ev:
		case <-quit:
		}
	}
	go v.loader.Load(ctx, *s.Model, report)
}

// release cancels the current load and disposes a shown scene.
func (v *Viewer) release() {
	if v.cancel != nil {
		v.cancel()
		v.cancel = nil
	}
	v.token = ulid.ULID{}
	if v.content.Kind == ContentModel && v.content.Scene != nil {
		v.content.Scene.Dispose()
	}
	v.content.Scene = nil
}

func (v *Viewer) apply(ev loadEvent) {
	p := ev.progress
	if v.state != Open || ev.token != v.token {
		if p.Scene != nil {
			p.Scene.Dispose()
		}
		v.log.Debug("stale load result dropped", zap.Stringer("token", ev.token), zap.Bool("done", p.Done))
		return
	}

	if !p.Done {
		if p.Percent > v.content.Percent {
			v.content.Percent = min(p.Percent, 100)
		}
		return
	}

	v.cancel()
	v.cancel = nil
	v.token = ulid.ULID{}

	err := p.Err
	if err == nil && p.Scene == nil {
		err = ErrNoScene
	}
	if err != nil {
		if p.Scene != nil {
			p.Scene.Dispose()
		}
		v.fallBack(err)
		return
	}

	v.content.Kind = ContentModel
	v.content.Percent = 100
	v.content.Scene = p.Scene
	v.log.Debug("model ready", zap.Int("index", v.active))
}

// fallBack replaces the model branch with the slide's static image.
func (v *Viewer) fallBack(err error) {
	s := v.content.Slide
	v.log.Warn("model unavailable, showing image",
		zap.Int("index", v.active),
		zap.String("geometry", s.Model.Geometry),
		zap.Error(err))
	v.content = Content{Kind: ContentImage, Index: v.active, Slide: s, Media: s.EnlargedMedia(), Fallback: true}
}
