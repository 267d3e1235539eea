package assets

import (
	"context"
	"sync/atomic"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// WarmUp loads refs into the cache with at most parallel fetches in flight
// and returns how many succeeded. Failures are logged, not returned; a
// missing image is drawn as a placeholder later anyway.
func (m *Manager) WarmUp(ctx context.Context, refs []string, parallel int) int {
	if parallel <= 0 {
		parallel = 4
	}
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(parallel)

	var loaded atomic.Int32
	seen := make(map[string]bool, len(refs))
	for _, ref := range refs {
		if ref == "" || seen[ref] {
			continue
		}
		seen[ref] = true
		g.Go(func() error {
			if _, err := m.Load(ctx, ref); err != nil {
				m.log.Debug("warm-up skipped", zap.String("ref", ref), zap.Error(err))
				return nil
			}
			loaded.Add(1)
			return nil
		})
	}
	_ = g.Wait()
	m.log.Info("warm-up finished", zap.Int("requested", len(seen)), zap.Int32("loaded", loaded.Load()))
	return int(loaded.Load())
}
