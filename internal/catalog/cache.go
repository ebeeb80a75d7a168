package catalog

import (
	"context"
	"log/slog"
	"time"

	"github.com/TonybotNi/doctah-mcp/internal/recruit"
	"github.com/TonybotNi/doctah-mcp/internal/store"
)

// CachedSource serves snapshots from a store while they are fresh and falls
// back to the wrapped source otherwise. A failed save is logged, not fatal:
// the fetched snapshot is still returned.
type CachedSource struct {
	src    Source
	store  store.Store
	ttl    time.Duration
	logger *slog.Logger
	now    func() time.Time
}

func NewCachedSource(src Source, st store.Store, ttl time.Duration, logger *slog.Logger) *CachedSource {
	if logger == nil {
		logger = slog.Default()
	}
	return &CachedSource{src: src, store: st, ttl: ttl, logger: logger, now: time.Now}
}

func (c *CachedSource) Recruitable(ctx context.Context) ([]recruit.Entity, error) {
	snap, err := c.store.LoadLatest(ctx)
	if err != nil {
		c.logger.Warn("snapshot cache read failed", "error", err)
	} else if snap != nil && c.now().Sub(snap.FetchedAt) < c.ttl {
		c.logger.Debug("serving recruit catalog from cache", "fetched_at", snap.FetchedAt, "entities", len(snap.Entities))
		return snap.Entities, nil
	}

	entities, err := c.src.Recruitable(ctx)
	if err != nil {
		return nil, err
	}

	if err := c.store.SaveSnapshot(ctx, store.Snapshot{Entities: entities, FetchedAt: c.now()}); err != nil {
		c.logger.Warn("snapshot cache write failed", "error", err)
	}
	return entities, nil
}
