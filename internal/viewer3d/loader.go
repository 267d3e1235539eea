// Package viewer3d loads slide models for the lightbox: geometry, material
// libraries and textures are fetched and decoded off the UI goroutine, then
// handed to a scene factory that owns the GPU side.
package viewer3d

import (
	"context"
	"errors"
	"fmt"
	"image"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/Faultbox/gear-carousel/internal/assets"
	"github.com/Faultbox/gear-carousel/internal/carousel"
	"github.com/Faultbox/gear-carousel/internal/engine/model"
	"github.com/Faultbox/gear-carousel/internal/engine/texture"
	"github.com/Faultbox/gear-carousel/internal/lightbox"
	"github.com/Faultbox/gear-carousel/internal/logger"
	"github.com/Faultbox/gear-carousel/pkg/formats"
	"github.com/Faultbox/gear-carousel/pkg/math"
)

// ErrEmptyModel is returned when geometry parses but yields no triangles.
var ErrEmptyModel = errors.New("model has no drawable triangles")

// Progress milestones, in percent.
const (
	pctFetched   = 30
	pctParsed    = 70
	pctMaterials = 75
	pctTextures  = 95
)

// Fetcher loads asset bytes by reference. *assets.Manager implements it.
type Fetcher interface {
	Load(ctx context.Context, ref string) ([]byte, error)
}

// Model is a fully decoded model ready for GPU upload.
type Model struct {
	Ref      carousel.ModelRef
	Mesh     *model.Mesh
	Textures map[string]*image.RGBA // keyed by Material.DiffuseMap
}

// SceneFactory turns a decoded model into a scene. It runs on the loader
// goroutine and must not touch the GPU.
type SceneFactory func(*Model) lightbox.Scene

// Loader implements lightbox.ModelLoader.
type Loader struct {
	fetch    Fetcher
	build    SceneFactory
	parallel int
	log      *zap.Logger
}

// NewLoader creates a loader. parallel bounds concurrent texture fetches;
// values below 1 mean 4.
func NewLoader(fetch Fetcher, build SceneFactory, parallel int) *Loader {
	if parallel < 1 {
		parallel = 4
	}
	return &Loader{
		fetch:    fetch,
		build:    build,
		parallel: parallel,
		log:      logger.Named("viewer3d"),
	}
}

// Load fetches and decodes ref, reporting progress, and finishes with a
// single Done report.
func (l *Loader) Load(ctx context.Context, ref carousel.ModelRef, report func(lightbox.LoadProgress)) {
	m, err := l.load(ctx, ref, func(pct float32) {
		report(lightbox.LoadProgress{Percent: pct})
	})
	if err != nil {
		report(lightbox.LoadProgress{Done: true, Err: err})
		return
	}
	report(lightbox.LoadProgress{Percent: 100, Done: true, Scene: l.build(m)})
}

func (l *Loader) load(ctx context.Context, ref carousel.ModelRef, progress func(float32)) (*Model, error) {
	progress(0)

	data, err := l.fetch.Load(ctx, ref.Geometry)
	if err != nil {
		return nil, fmt.Errorf("fetch geometry: %w", err)
	}
	progress(pctFetched)

	obj, err := formats.ParseOBJ(data, func(f float32) {
		progress(pctFetched + (pctParsed-pctFetched)*f)
	})
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", ref.Geometry, err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	materials, mapBase := l.loadMaterials(ctx, ref, obj)
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	progress(pctMaterials)

	textures, err := l.loadTextures(ctx, materials, mapBase, progress)
	if err != nil {
		return nil, err
	}

	h := ref.Hints
	s := h.EffectiveScale()
	mesh := model.BuildMesh(obj, model.BuildOptions{
		Transform: math.Compose(
			math.Vec3{X: h.Position.X, Y: h.Position.Y, Z: h.Position.Z},
			math.Vec3{X: h.Rotation.X, Y: h.Rotation.Y, Z: h.Rotation.Z},
			math.Vec3{X: s.X, Y: s.Y, Z: s.Z},
		),
		Materials: materials,
	})
	if mesh == nil {
		return nil, ErrEmptyModel
	}

	l.log.Debug("model decoded",
		zap.String("geometry", ref.Geometry),
		zap.Int("triangles", mesh.TriangleCount()),
		zap.Int("materials", len(mesh.Groups)),
		zap.Int("textures", len(textures)))

	return &Model{Ref: ref, Mesh: mesh, Textures: textures}, nil
}

// loadMaterials reads the explicit material library, or the libraries the
// OBJ names. Missing or broken libraries are logged and leave default
// materials. It returns the reference texture maps resolve against, keyed
// by material name.
func (l *Loader) loadMaterials(ctx context.Context, ref carousel.ModelRef, obj *formats.OBJ) (map[string]formats.Material, map[string]string) {
	var libs []string
	if ref.Material != "" {
		libs = []string{ref.Material}
	} else {
		for _, lib := range obj.MaterialLibs {
			libs = append(libs, assets.ResolveRelative(ref.Geometry, lib))
		}
	}

	materials := make(map[string]formats.Material)
	mapBase := make(map[string]string)
	for _, lib := range libs {
		data, err := l.fetch.Load(ctx, lib)
		if err != nil {
			l.log.Warn("material library unavailable", zap.String("ref", lib), zap.Error(err))
			continue
		}
		parsed, err := formats.ParseMTL(data)
		if err != nil {
			l.log.Warn("material library unreadable", zap.String("ref", lib), zap.Error(err))
			continue
		}
		for name, mat := range parsed {
			materials[name] = mat
			mapBase[name] = lib
		}
	}
	return materials, mapBase
}

// loadTextures decodes every distinct diffuse map. A texture that fails to
// load is logged and left out; its material renders untextured.
func (l *Loader) loadTextures(ctx context.Context, materials map[string]formats.Material, mapBase map[string]string, progress func(float32)) (map[string]*image.RGBA, error) {
	refs := make(map[string]string) // DiffuseMap -> resolved ref
	for name, mat := range materials {
		if mat.DiffuseMap == "" {
			continue
		}
		if _, ok := refs[mat.DiffuseMap]; !ok {
			refs[mat.DiffuseMap] = assets.ResolveRelative(mapBase[name], mat.DiffuseMap)
		}
	}

	textures := make(map[string]*image.RGBA, len(refs))
	if len(refs) == 0 {
		return textures, nil
	}

	var mu sync.Mutex
	done := 0
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(l.parallel)
	for key, ref := range refs {
		g.Go(func() error {
			img, err := l.loadTexture(gctx, ref)

			mu.Lock()
			defer mu.Unlock()
			done++
			progress(pctMaterials + (pctTextures-pctMaterials)*float32(done)/float32(len(refs)))

			if err != nil {
				if ctxErr := gctx.Err(); ctxErr != nil {
					return ctxErr
				}
				l.log.Warn("texture unavailable", zap.String("ref", ref), zap.Error(err))
				return nil
			}
			textures[key] = img
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return textures, nil
}

func (l *Loader) loadTexture(ctx context.Context, ref string) (*image.RGBA, error) {
	data, err := l.fetch.Load(ctx, ref)
	if err != nil {
		return nil, err
	}
	return texture.Decode(ref, data)
}
