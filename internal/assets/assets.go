// Package assets resolves media references for the gallery: relative
// paths against configured root directories, absolute paths directly, and
// http(s) URLs over the network. Loaded bytes are kept in a bounded cache.
package assets

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/Faultbox/gear-carousel/internal/logger"
)

// ErrNotFound is returned when no root holds a reference.
var ErrNotFound = errors.New("asset not found")

// maxRemoteSize bounds a single HTTP download.
const maxRemoteSize = 64 << 20

// Options configure a Manager.
type Options struct {
	Roots        []string
	HTTPTimeout  time.Duration
	CacheEntries int
	Client       *http.Client // optional; built from HTTPTimeout when nil
}

// Manager loads asset bytes. It is safe for concurrent use.
type Manager struct {
	roots  []string
	client *http.Client
	cache  *lru.Cache[string, []byte]
	group  singleflight.Group
	mu     sync.RWMutex
	log    *zap.Logger

	hits      atomic.Int64
	misses    atomic.Int64
	evictions atomic.Int64
}

// NewManager creates a manager. Roots that do not exist are skipped with a
// warning.
func NewManager(opts Options) *Manager {
	client := opts.Client
	if client == nil {
		client = &http.Client{Timeout: opts.HTTPTimeout}
	}
	m := &Manager{
		client: client,
		log:    logger.Named("assets"),
	}
	m.newCache(opts.CacheEntries)
	for _, root := range opts.Roots {
		if err := m.AddRoot(root); err != nil {
			m.log.Warn("asset root skipped", zap.String("root", root), zap.Error(err))
		}
	}
	return m
}

// AddRoot appends a directory searched for relative references. Roots are
// searched in the order added.
func (m *Manager) AddRoot(dir string) error {
	info, err := os.Stat(dir)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", dir)
	}
	m.mu.Lock()
	m.roots = append(m.roots, dir)
	m.mu.Unlock()
	return nil
}

// Roots returns the configured root directories.
func (m *Manager) Roots() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]string(nil), m.roots...)
}

// Load returns the bytes for ref. Concurrent loads of the same reference
// share one fetch.
func (m *Manager) Load(ctx context.Context, ref string) ([]byte, error) {
	if ref == "" {
		return nil, fmt.Errorf("empty reference: %w", ErrNotFound)
	}
	if data, ok := m.cached(ref); ok {
		return data, nil
	}

	ch := m.group.DoChan(ref, func() (any, error) {
		data, err := m.fetch(ctx, ref)
		if err != nil {
			return nil, err
		}
		m.cache.Add(ref, data)
		return data, nil
	})
	select {
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.([]byte), nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (m *Manager) fetch(ctx context.Context, ref string) ([]byte, error) {
	start := time.Now()
	var (
		data []byte
		err  error
	)
	if IsRemote(ref) {
		data, err = m.fetchRemote(ctx, ref)
	} else {
		data, err = m.fetchLocal(ref)
	}
	if err != nil {
		m.log.Debug("asset load failed", zap.String("ref", ref), zap.Error(err))
		return nil, err
	}
	m.log.Debug("asset loaded",
		zap.String("ref", ref),
		zap.Int("bytes", len(data)),
		zap.Duration("took", time.Since(start)))
	return data, nil
}

func (m *Manager) fetchLocal(ref string) ([]byte, error) {
	name := filepath.FromSlash(strings.TrimPrefix(ref, "file://"))
	if filepath.IsAbs(name) {
		data, err := os.ReadFile(name)
		if !errors.Is(err, os.ErrNotExist) {
			return data, err
		}
		// Web-style "/dir/file" references are relative to the roots.
	}

	rel := strings.TrimLeft(name, `/\`)
	for _, root := range m.Roots() {
		data, err := os.ReadFile(filepath.Join(root, rel))
		if err == nil {
			return data, nil
		}
		if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("reading %s: %w", ref, err)
		}
	}
	return nil, fmt.Errorf("%s: %w", ref, ErrNotFound)
}

func (m *Manager) fetchRemote(ctx context.Context, ref string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, ref, nil)
	if err != nil {
		return nil, fmt.Errorf("building request for %s: %w", ref, err)
	}
	resp, err := m.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", ref, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, fmt.Errorf("%s: %w", ref, ErrNotFound)
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("fetching %s: status %s", ref, resp.Status)
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, maxRemoteSize+1))
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", ref, err)
	}
	if len(data) > maxRemoteSize {
		return nil, fmt.Errorf("%s exceeds %d bytes", ref, maxRemoteSize)
	}
	return data, nil
}

// IsRemote reports whether ref is an http(s) URL.
func IsRemote(ref string) bool {
	return strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://")
}

// ResolveRelative resolves ref against the reference base, the way a
// material library names textures next to itself. Absolute references and
// URLs are returned unchanged.
func ResolveRelative(base, ref string) string {
	if ref == "" || IsRemote(ref) || filepath.IsAbs(filepath.FromSlash(ref)) || strings.HasPrefix(ref, "/") {
		return ref
	}
	ref = strings.ReplaceAll(ref, "\\", "/")
	if IsRemote(base) {
		u, err := url.Parse(base)
		if err != nil {
			return ref
		}
		rel, err := url.Parse(ref)
		if err != nil {
			return ref
		}
		return u.ResolveReference(rel).String()
	}
	dir := path.Dir(strings.ReplaceAll(base, "\\", "/"))
	if dir == "." {
		return ref
	}
	return path.Join(dir, ref)
}
