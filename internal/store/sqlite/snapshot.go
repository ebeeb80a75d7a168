package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/TonybotNi/doctah-mcp/internal/recruit"
	"github.com/TonybotNi/doctah-mcp/internal/store"
)

func (c *Client) EnsureSchema(ctx context.Context) error {
	ddl := `
	CREATE TABLE IF NOT EXISTS recruit_snapshots (
		id         INTEGER PRIMARY KEY AUTOINCREMENT,
		fetched_at TEXT NOT NULL,
		payload    TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_snapshots_fetched ON recruit_snapshots (fetched_at);
	`
	if _, err := c.db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("creating sqlite schema: %w", err)
	}
	return nil
}

func (c *Client) SaveSnapshot(ctx context.Context, snap store.Snapshot) error {
	payload, err := json.Marshal(snap.Entities)
	if err != nil {
		return fmt.Errorf("encoding snapshot: %w", err)
	}
	_, err = c.db.ExecContext(ctx,
		`INSERT INTO recruit_snapshots (fetched_at, payload) VALUES (?, ?)`,
		snap.FetchedAt.UTC().Format(time.RFC3339Nano), string(payload))
	if err != nil {
		return fmt.Errorf("saving snapshot: %w", err)
	}
	// Only the latest snapshot is ever read back.
	_, err = c.db.ExecContext(ctx,
		`DELETE FROM recruit_snapshots WHERE id NOT IN (SELECT id FROM recruit_snapshots ORDER BY id DESC LIMIT 1)`)
	if err != nil {
		return fmt.Errorf("pruning snapshots: %w", err)
	}
	return nil
}

func (c *Client) LoadLatest(ctx context.Context) (*store.Snapshot, error) {
	row := c.db.QueryRowContext(ctx,
		`SELECT fetched_at, payload FROM recruit_snapshots ORDER BY id DESC LIMIT 1`)

	var fetchedAt, payload string
	if err := row.Scan(&fetchedAt, &payload); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("loading snapshot: %w", err)
	}

	ts, err := time.Parse(time.RFC3339Nano, fetchedAt)
	if err != nil {
		return nil, fmt.Errorf("parsing snapshot timestamp: %w", err)
	}
	var entities []recruit.Entity
	if err := json.Unmarshal([]byte(payload), &entities); err != nil {
		return nil, fmt.Errorf("decoding snapshot: %w", err)
	}
	return &store.Snapshot{Entities: entities, FetchedAt: ts}, nil
}
