// Package media turns slide image references into GPU textures. Fetching
// and decoding run on worker goroutines; uploads happen in Poll, on the
// goroutine that owns the GL context.
package media

import (
	"context"
	"image"

	"go.uber.org/zap"
	"golang.org/x/sync/semaphore"

	"github.com/Faultbox/gear-carousel/internal/engine/texture"
	"github.com/Faultbox/gear-carousel/internal/logger"
)

// State of a cached reference.
type State int

const (
	StateMissing State = iota
	StatePending
	StateReady
	StateFailed
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StatePending:
		return "pending"
	case StateReady:
		return "ready"
	case StateFailed:
		return "failed"
	default:
		return "missing"
	}
}

// Texture is an uploaded image.
type Texture struct {
	ID     uint32
	Width  int
	Height int
}

// Fetcher loads asset bytes by reference.
type Fetcher interface {
	Load(ctx context.Context, ref string) ([]byte, error)
}

// Uploader moves decoded images to and from the GPU.
type Uploader interface {
	Upload(img *image.RGBA) uint32
	Delete(id uint32)
}

type entry struct {
	state State
	tex   Texture
}

type result struct {
	ref string
	img *image.RGBA
	err error
}

// Cache holds one texture per reference. Its methods must be called from
// the owning goroutine.
type Cache struct {
	fetch   Fetcher
	up      Uploader
	sem     *semaphore.Weighted
	ctx     context.Context
	cancel  context.CancelFunc
	results chan result
	entries map[string]*entry
	log     *zap.Logger
}

// New creates a cache decoding at most parallel images at a time.
func New(fetch Fetcher, up Uploader, parallel int) *Cache {
	if parallel < 1 {
		parallel = 4
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Cache{
		fetch:   fetch,
		up:      up,
		sem:     semaphore.NewWeighted(int64(parallel)),
		ctx:     ctx,
		cancel:  cancel,
		results: make(chan result, 16),
		entries: make(map[string]*entry),
		log:     logger.Named("media"),
	}
}

// Request starts loading ref unless it is already known. Empty references
// are ignored.
func (c *Cache) Request(ref string) {
	if ref == "" || c.entries[ref] != nil || c.ctx.Err() != nil {
		return
	}
	c.entries[ref] = &entry{state: StatePending}
	go c.load(ref)
}

// Prefetch requests every reference.
func (c *Cache) Prefetch(refs []string) {
	for _, ref := range refs {
		c.Request(ref)
	}
}

// Get returns the texture for ref, requesting it on first use.
func (c *Cache) Get(ref string) (Texture, State) {
	e := c.entries[ref]
	if e == nil {
		c.Request(ref)
		if e = c.entries[ref]; e == nil {
			return Texture{}, StateMissing
		}
	}
	return e.tex, e.state
}

// Poll uploads finished decodes and returns how many entries settled.
func (c *Cache) Poll() int {
	n := 0
	for {
		select {
		case r := <-c.results:
			c.settle(r)
			n++
		default:
			return n
		}
	}
}

func (c *Cache) settle(r result) {
	e := c.entries[r.ref]
	if e == nil {
		return
	}
	if r.err != nil {
		e.state = StateFailed
		c.log.Warn("image unavailable", zap.String("ref", r.ref), zap.Error(r.err))
		return
	}
	b := r.img.Bounds()
	e.tex = Texture{ID: c.up.Upload(r.img), Width: b.Dx(), Height: b.Dy()}
	e.state = StateReady
	c.log.Debug("image ready", zap.String("ref", r.ref), zap.Int("w", b.Dx()), zap.Int("h", b.Dy()))
}

func (c *Cache) load(ref string) {
	if err := c.sem.Acquire(c.ctx, 1); err != nil {
		return
	}
	img, err := c.decode(ref)
	c.sem.Release(1)

	select {
	case c.results <- result{ref: ref, img: img, err: err}:
	case <-c.ctx.Done():
	}
}

func (c *Cache) decode(ref string) (*image.RGBA, error) {
	data, err := c.fetch.Load(c.ctx, ref)
	if err != nil {
		return nil, err
	}
	return texture.Decode(ref, data)
}

// Close stops pending loads and deletes every texture.
func (c *Cache) Close() {
	c.cancel()
	for ref, e := range c.entries {
		if e.state == StateReady {
			c.up.Delete(e.tex.ID)
		}
		delete(c.entries, ref)
	}
}
