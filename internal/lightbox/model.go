package lightbox

import (
	"context"

	"github.com/Faultbox/gear-carousel/internal/carousel"
)

// Viewport is the pixel rectangle a scene draws into.
type Viewport struct {
	X, Y, W, H int
}

// Scene is a loaded, interactive 3D model.
//
// Every method is called on the UI goroutine, including Dispose of scenes
// whose load turned out to be stale. Draw returns an error when the scene
// cannot be shown at all, for example when its GPU upload fails.
type Scene interface {
	Draw(vp Viewport) error
	Orbit(dx, dy float32)
	Zoom(delta float32)
	Dispose()
}

// LoadProgress is one report from a model load. Percent runs 0..100; the
// final report has Done set and carries either Scene or Err.
type LoadProgress struct {
	Percent float32
	Done    bool
	Scene   Scene
	Err     error
}

// ModelLoader loads a model reference into a Scene. Load is run on its own
// goroutine and must return promptly once ctx is cancelled. It reports
// through report, which is safe to call from any goroutine.
type ModelLoader interface {
	Load(ctx context.Context, ref carousel.ModelRef, report func(LoadProgress))
}

// LoaderFunc adapts a function to ModelLoader.
type LoaderFunc func(ctx context.Context, ref carousel.ModelRef, report func(LoadProgress))

// Load calls f.
func (f LoaderFunc) Load(ctx context.Context, ref carousel.ModelRef, report func(LoadProgress)) {
	f(ctx, ref, report)
}
