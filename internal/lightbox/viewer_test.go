package lightbox

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/gear-carousel/internal/carousel"
	"github.com/Faultbox/gear-carousel/internal/engine/input"
)

type loadCall struct {
	ctx    context.Context
	ref    carousel.ModelRef
	report func(LoadProgress)
}

// fakeLoader hands every Load call to the test and blocks until the load
// context ends, like a real fetch would.
type fakeLoader struct {
	calls chan loadCall
}

func newFakeLoader() *fakeLoader {
	return &fakeLoader{calls: make(chan loadCall, 8)}
}

func (f *fakeLoader) Load(ctx context.Context, ref carousel.ModelRef, report func(LoadProgress)) {
	f.calls <- loadCall{ctx: ctx, ref: ref, report: report}
	<-ctx.Done()
}

func (f *fakeLoader) next(t *testing.T) loadCall {
	t.Helper()
	select {
	case c := <-f.calls:
		return c
	case <-time.After(2 * time.Second):
		t.Fatal("loader was not called")
		return loadCall{}
	}
}

type fakeScene struct {
	orbits   int
	zooms    int
	draws    int
	drawErr  error
	disposed atomic.Int32
}

func (s *fakeScene) Draw(Viewport) error {
	s.draws++
	return s.drawErr
}
func (s *fakeScene) Orbit(dx, dy float32) { s.orbits++ }
func (s *fakeScene) Zoom(delta float32) { s.zooms++ }
func (s *fakeScene) Dispose() { s.disposed.Add(1) }

func slides(n int, modelAt ...int) []carousel.Slide {
	out := make([]carousel.Slide, n)
	for i := range out {
		out[i] = carousel.Slide{
			Primary:  fmt.Sprintf("gear/%d.png", i),
			Enlarged: fmt.Sprintf("gear/%d_large.png", i),
			Label:    fmt.Sprintf("Gear %d", i),
		}
	}
	for _, i := range modelAt {
		out[i].Model = &carousel.ModelRef{Geometry: fmt.Sprintf("models/%d.obj", i)}
	}
	return out
}

func TestOpenCopiesIndexAndNavigatesIndependently(t *testing.T) {
	s := slides(6)
	engine := carousel.NewEngine(s, carousel.DefaultOptions())
	engine.Goto(3)

	v := New(s, nil, nil)
	v.Open(engine.Active())
	v.Next()
	v.Next()

	assert.Equal(t, 5, v.Index())
	assert.Equal(t, 3, engine.Active(), "carousel is unaffected by lightbox navigation")

	v.Next()
	assert.Equal(t, 0, v.Index(), "lightbox wraps around")
	v.Close()
	assert.Equal(t, 3, engine.Active(), "closing does not touch the carousel")
	assert.Equal(t, ContentNone, v.Content().Kind)
}

func TestImageContent(t *testing.T) {
	s := slides(3)
	s[1].Enlarged = ""
	v := New(s, newFakeLoader(), nil)

	v.Open(0)
	assert.True(t, v.IsOpen())
	assert.Equal(t, ContentImage, v.Content().Kind)
	assert.Equal(t, "gear/0_large.png", v.Content().Media)

	v.Next()
	assert.Equal(t, "gear/1.png", v.Content().Media, "falls back to the primary image")
}

func TestKeysWhileOpen(t *testing.T) {
	v := New(slides(4), nil, nil)
	assert.False(t, v.HandleKey(input.KeyRight), "closed viewer ignores keys")

	v.Open(1)
	assert.True(t, v.HandleKey(input.KeyRight))
	assert.Equal(t, 2, v.Index())
	assert.True(t, v.HandleKey(input.KeyLeft))
	assert.True(t, v.HandleKey(input.KeyLeft))
	assert.Equal(t, 0, v.Index())
	assert.True(t, v.HandleKey(input.KeyEnter), "modal swallows every key")
	assert.True(t, v.HandleKey(input.KeyEscape))
	assert.Equal(t, Closed, v.State())
}

func TestModelLoadsWithProgress(t *testing.T) {
	loader := newFakeLoader()
	v := New(slides(3, 1), loader, nil)
	defer v.Shutdown()

	v.Open(1)
	require.Equal(t, ContentLoading, v.Content().Kind)
	call := loader.next(t)
	assert.Equal(t, "models/1.obj", call.ref.Geometry)

	call.report(LoadProgress{Percent: 40})
	call.report(LoadProgress{Percent: 25})
	v.Update()
	assert.InDelta(t, 40, v.Content().Percent, 1e-6, "progress never goes backwards")

	scene := &fakeScene{}
	call.report(LoadProgress{Done: true, Scene: scene})
	v.Update()
	require.Equal(t, ContentModel, v.Content().Kind)
	assert.Same(t, scene, v.Content().Scene)
	assert.Error(t, call.ctx.Err(), "finished loads release their context")

	v.Orbit(1, 2)
	v.Zoom(-1)
	assert.Equal(t, 1, scene.orbits)
	assert.Equal(t, 1, scene.zooms)

	v.Close()
	assert.Equal(t, int32(1), scene.disposed.Load(), "closing disposes the scene")
}

func TestModelFailureFallsBackToImage(t *testing.T) {
	loader := newFakeLoader()
	v := New(slides(3, 2), loader, nil)
	defer v.Shutdown()

	v.Open(2)
	call := loader.next(t)
	call.report(LoadProgress{Done: true, Err: errors.New("404 not found")})
	v.Update()

	c := v.Content()
	assert.Equal(t, ContentImage, c.Kind)
	assert.True(t, c.Fallback)
	assert.Equal(t, "gear/2_large.png", c.Media)
	assert.True(t, v.IsOpen(), "a failed model keeps the viewer open")
}

func TestSceneThatCannotDrawFallsBackToImage(t *testing.T) {
	loader := newFakeLoader()
	v := New(slides(3, 1), loader, nil)
	defer v.Shutdown()

	v.Open(1)
	scene := &fakeScene{}
	loader.next(t).report(LoadProgress{Done: true, Scene: scene})
	v.Update()
	require.Equal(t, ContentModel, v.Content().Kind)

	v.DrawModel(Viewport{W: 640, H: 480})
	assert.Equal(t, ContentModel, v.Content().Kind, "a scene that draws stays up")

	scene.drawErr = errors.New("shader link failed")
	v.DrawModel(Viewport{W: 640, H: 480})
	c := v.Content()
	assert.Equal(t, ContentImage, c.Kind)
	assert.True(t, c.Fallback)
	assert.Equal(t, "gear/1_large.png", c.Media)
	assert.Nil(t, c.Scene)
	assert.Equal(t, int32(1), scene.disposed.Load())

	v.DrawModel(Viewport{W: 640, H: 480})
	assert.Equal(t, 2, scene.draws, "the failed scene is not drawn again")

	v.Close()
	assert.Equal(t, int32(1), scene.disposed.Load(), "closing does not dispose twice")
}

func TestLoaderWithoutSceneIsAFailure(t *testing.T) {
	loader := newFakeLoader()
	v := New(slides(1, 0), loader, nil)
	defer v.Shutdown()

	v.Open(0)
	loader.next(t).report(LoadProgress{Done: true})
	v.Update()
	assert.Equal(t, ContentImage, v.Content().Kind)
	assert.True(t, v.Content().Fallback)
}

func TestCloseDuringLoad(t *testing.T) {
	loader := newFakeLoader()
	v := New(slides(3, 0), loader, nil)
	defer v.Shutdown()

	v.Open(0)
	call := loader.next(t)
	v.Close()
	assert.Error(t, call.ctx.Err(), "closing cancels the load")

	call.report(LoadProgress{Percent: 90})
	scene := &fakeScene{}
	call.report(LoadProgress{Done: true, Scene: scene})

	assert.NotPanics(t, v.Update)
	assert.Equal(t, Closed, v.State())
	assert.Equal(t, ContentNone, v.Content().Kind)
	assert.Equal(t, int32(1), scene.disposed.Load(), "late scenes are disposed")
}

func TestNavigatingDiscardsStaleLoad(t *testing.T) {
	loader := newFakeLoader()
	v := New(slides(3, 0, 1), loader, nil)
	defer v.Shutdown()

	v.Open(0)
	first := loader.next(t)
	v.Next()
	second := loader.next(t)
	assert.Error(t, first.ctx.Err())
	assert.NoError(t, second.ctx.Err())

	stale := &fakeScene{}
	first.report(LoadProgress{Done: true, Scene: stale})
	v.Update()
	assert.Equal(t, ContentLoading, v.Content().Kind, "the stale result is ignored")
	assert.Equal(t, int32(1), stale.disposed.Load())

	fresh := &fakeScene{}
	second.report(LoadProgress{Done: true, Scene: fresh})
	v.Update()
	assert.Same(t, fresh, v.Content().Scene)
	assert.Equal(t, 1, v.Content().Index)
}

func TestNavigatingAwayFromReadyModelDisposesIt(t *testing.T) {
	loader := newFakeLoader()
	v := New(slides(2, 0), loader, nil)
	defer v.Shutdown()

	v.Open(0)
	scene := &fakeScene{}
	loader.next(t).report(LoadProgress{Done: true, Scene: scene})
	v.Update()

	v.Next()
	assert.Equal(t, ContentImage, v.Content().Kind)
	assert.Equal(t, int32(1), scene.disposed.Load())
}

func TestEmptyViewer(t *testing.T) {
	v := New(nil, nil, nil)
	v.Open(2)
	assert.False(t, v.IsOpen())
	v.Next()
	v.Close()
	v.Update()
}

func TestLoaderFunc(t *testing.T) {
	var got string
	var l ModelLoader = LoaderFunc(func(_ context.Context, ref carousel.ModelRef, _ func(LoadProgress)) {
		got = ref.Geometry
	})
	l.Load(context.Background(), carousel.ModelRef{Geometry: "a.obj"}, nil)
	assert.Equal(t, "a.obj", got)
}
