// Package app runs the gallery window: it owns the GL context, feeds SDL
// input to the stage and paints every frame.
package app

import (
	"context"
	"fmt"
	"image"
	"time"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/gear-carousel/internal/assets"
	"github.com/Faultbox/gear-carousel/internal/carousel"
	"github.com/Faultbox/gear-carousel/internal/config"
	"github.com/Faultbox/gear-carousel/internal/engine/input"
	"github.com/Faultbox/gear-carousel/internal/engine/input/sdlinput"
	"github.com/Faultbox/gear-carousel/internal/engine/texture/gltex"
	"github.com/Faultbox/gear-carousel/internal/engine/ui2d"
	"github.com/Faultbox/gear-carousel/internal/engine/window"
	"github.com/Faultbox/gear-carousel/internal/gallery"
	"github.com/Faultbox/gear-carousel/internal/lightbox"
	"github.com/Faultbox/gear-carousel/internal/logger"
	"github.com/Faultbox/gear-carousel/internal/media"
	"github.com/Faultbox/gear-carousel/internal/viewer3d"
	"github.com/Faultbox/gear-carousel/internal/viewer3d/glscene"
)

// loaderParallelism bounds concurrent fetches per loader.
const loaderParallelism = 4

// App is the gallery application.
type App struct {
	cfg      *config.Config
	window   *window.Window
	renderer *ui2d.Renderer
	input    *sdlinput.Input
	assets   *assets.Manager
	media    *media.Cache
	stage    *gallery.Stage
	theme    theme
	log      *zap.Logger

	ctx    context.Context
	cancel context.CancelFunc
}

// glUploader adapts gltex to media.Uploader.
type glUploader struct{}

func (glUploader) Upload(img *image.RGBA) uint32 { return gltex.Upload(img) }
func (glUploader) Delete(id uint32) { gltex.Delete(id) }

// New opens the window and wires the gallery together.
func New(cfg *config.Config) (*App, error) {
	a := &App{cfg: cfg, log: logger.Named("app")}
	a.log.Info("initializing gallery",
		zap.String("title", cfg.Window.Title),
		zap.Int("width", cfg.Window.Width),
		zap.Int("height", cfg.Window.Height),
		zap.Int("slides", len(cfg.Slides)))

	var err error
	a.window, err = window.New(window.Config{
		Title:      cfg.Window.Title,
		Width:      cfg.Window.Width,
		Height:     cfg.Window.Height,
		Fullscreen: cfg.Window.Fullscreen,
		VSync:      cfg.Window.VSync,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	// GL functions resolve against the context the window just made current.
	if err := gl.Init(); err != nil {
		a.window.Close()
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}
	a.log.Info("OpenGL ready", zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))))

	w, h := a.window.GetSize()
	a.renderer, err = ui2d.New(w, h)
	if err != nil {
		a.window.Close()
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}
	dw, dh := a.window.DrawableSize()
	a.renderer.Resize(w, h, dw, dh)

	a.theme = newTheme(cfg)
	a.ctx, a.cancel = context.WithCancel(context.Background())

	a.assets = assets.NewManager(assets.Options{
		Roots:        cfg.Assets.Roots,
		HTTPTimeout:  cfg.Assets.HTTPTimeout,
		CacheEntries: cfg.Assets.CacheSize,
	})
	a.media = media.New(a.assets, glUploader{}, loaderParallelism)

	var loader lightbox.ModelLoader
	if cfg.Lightbox.Models {
		loader = viewer3d.NewLoader(a.assets, glscene.Factory(glscene.Options{
			MinDistance: cfg.Lightbox.MinDistance,
			MaxDistance: cfg.Lightbox.MaxDistance,
		}), loaderParallelism)
	}

	engine := carousel.NewEngine(cfg.Slides, cfg.CarouselOptions(logger.Named("carousel")))
	motion := carousel.NewMotion(cfg.SpringOptions())
	viewer := lightbox.New(cfg.Slides, loader, nil)
	a.stage = gallery.NewStage(engine, viewer, motion, cfg.StageLayout(), w, h)
	a.input = sdlinput.New()

	a.prefetch()

	a.log.Info("gallery initialized")
	return a, nil
}

// prefetch starts decoding card images and, when enabled, warms the asset
// cache with everything the lightbox may open.
func (a *App) prefetch() {
	var primaries, lightboxRefs []string
	for _, s := range a.cfg.Slides {
		primaries = append(primaries, s.Primary)
		if s.Enlarged != "" {
			lightboxRefs = append(lightboxRefs, s.Enlarged)
		}
		if s.HasModel() && a.cfg.Lightbox.Models {
			lightboxRefs = append(lightboxRefs, s.Model.Geometry)
		}
	}
	a.media.Prefetch(primaries)

	if !a.cfg.Assets.WarmUp || len(lightboxRefs) == 0 {
		return
	}
	go func() {
		start := time.Now()
		n := a.assets.WarmUp(a.ctx, lightboxRefs, loaderParallelism)
		a.log.Debug("asset warm-up finished",
			zap.Int("loaded", n),
			zap.Int("requested", len(lightboxRefs)),
			zap.Duration("took", time.Since(start)))
	}()
}

// Run runs the frame loop until the window closes or Escape is pressed
// with nothing open.
func (a *App) Run() error {
	lastTime := time.Now()
	frameCount := 0
	fpsTimer := time.Now()

	var frameBudget time.Duration
	if !a.cfg.Window.VSync && a.cfg.Window.FPSLimit > 0 {
		frameBudget = time.Second / time.Duration(a.cfg.Window.FPSLimit)
	}

	a.log.Info("starting frame loop")

	for {
		frameStart := time.Now()
		dt := frameStart.Sub(lastTime)
		lastTime = frameStart

		quit := a.input.Update()
		for _, ev := range a.input.Events() {
			a.handle(ev)
		}
		if quit || a.stage.Quit() {
			break
		}

		a.media.Poll()
		a.stage.Update(dt)
		a.paint()
		a.window.SwapBuffers()

		frameCount++
		if time.Since(fpsTimer) >= time.Second {
			a.log.Debug("fps", zap.Int("count", frameCount), zap.Duration("dt", dt))
			frameCount = 0
			fpsTimer = time.Now()
		}

		if frameBudget > 0 {
			if rest := frameBudget - time.Since(frameStart); rest > 0 {
				time.Sleep(rest)
			}
		}
	}

	return nil
}

func (a *App) handle(ev input.Event) {
	switch ev.Type {
	case input.EventWindowResize:
		w, h := a.window.GetSize()
		dw, dh := a.window.DrawableSize()
		a.renderer.Resize(w, h, dw, dh)
		ev.Width, ev.Height = w, h
	case input.EventKeyDown:
		// Escape with nothing open leaves the gallery; the lightbox
		// consumes it otherwise.
		if ev.Key == input.KeyEscape && !a.stage.Viewer().IsOpen() {
			a.stage.Handle(input.Event{Type: input.EventQuit})
			return
		}
		if ev.Key == input.KeyFullscreen {
			a.window.ToggleFullscreen()
			return
		}
	}
	a.stage.Handle(ev)
}

// Close releases every resource.
func (a *App) Close() {
	a.log.Info("closing gallery")

	if a.cancel != nil {
		a.cancel()
	}
	if a.stage != nil {
		a.stage.Viewer().Shutdown()
	}
	if a.media != nil {
		a.media.Close()
	}
	if a.assets != nil {
		st := a.assets.CacheStats()
		a.log.Debug("asset cache",
			zap.Int("entries", a.assets.CacheLen()),
			zap.Int64("hits", st.Hits),
			zap.Int64("misses", st.Misses),
			zap.Int64("evictions", st.Evictions))
	}
	if a.renderer != nil {
		a.renderer.Close()
	}
	if a.window != nil {
		a.window.Close()
	}
}
