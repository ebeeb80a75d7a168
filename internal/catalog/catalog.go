// Package catalog supplies recruit entity snapshots to the matching engine.
// The engine never fetches or persists anything itself; it consumes whatever
// immutable snapshot a Source hands it.
package catalog

import (
	"context"
	"errors"

	"github.com/TonybotNi/doctah-mcp/internal/recruit"
)

// ErrUnavailable is returned when the catalog cannot be fetched. It is fatal
// for the current query: no partial results, no internal retries.
var ErrUnavailable = errors.New("recruit catalog unavailable")

// Source returns the recruitable operator catalog. Every entity in one call
// belongs to the same snapshot.
type Source interface {
	Recruitable(ctx context.Context) ([]recruit.Entity, error)
}

// SourceFunc adapts a function to the Source interface.
type SourceFunc func(ctx context.Context) ([]recruit.Entity, error)

func (f SourceFunc) Recruitable(ctx context.Context) ([]recruit.Entity, error) {
	return f(ctx)
}
