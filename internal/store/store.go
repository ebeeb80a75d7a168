package store

import (
	"context"
	"time"

	"github.com/TonybotNi/doctah-mcp/internal/recruit"
)

// Snapshot is one immutable catalog pull: every entity in it was encoded
// against the same vocabulary at the same time.
type Snapshot struct {
	Entities  []recruit.Entity `json:"entities"`
	FetchedAt time.Time        `json:"fetched_at"`
}

// Store persists catalog snapshots so repeated queries within the freshness
// window skip the wiki round trip. Implementations: sqlite, postgres.
type Store interface {
	Close(ctx context.Context) error
	EnsureSchema(ctx context.Context) error
	SaveSnapshot(ctx context.Context, snap Snapshot) error
	// LoadLatest returns the most recent snapshot, or nil when none exists.
	LoadLatest(ctx context.Context) (*Snapshot, error)
}
