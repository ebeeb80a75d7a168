package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/TonybotNi/doctah-mcp/internal/recruit"
	"github.com/TonybotNi/doctah-mcp/internal/store"
)

func (c *Client) EnsureSchema(ctx context.Context) error {
	ddl := `
	CREATE TABLE IF NOT EXISTS recruit_snapshots (
		id         BIGSERIAL PRIMARY KEY,
		fetched_at TIMESTAMPTZ NOT NULL,
		payload    JSONB NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_snapshots_fetched ON recruit_snapshots (fetched_at);
	`
	if _, err := c.pool.Exec(ctx, ddl); err != nil {
		return fmt.Errorf("creating postgres schema: %w", err)
	}
	return nil
}

func (c *Client) SaveSnapshot(ctx context.Context, snap store.Snapshot) error {
	payload, err := json.Marshal(snap.Entities)
	if err != nil {
		return fmt.Errorf("encoding snapshot: %w", err)
	}
	_, err = c.pool.Exec(ctx,
		`INSERT INTO recruit_snapshots (fetched_at, payload) VALUES ($1, $2)`,
		snap.FetchedAt, payload)
	if err != nil {
		return fmt.Errorf("saving snapshot: %w", err)
	}
	_, err = c.pool.Exec(ctx,
		`DELETE FROM recruit_snapshots WHERE id NOT IN (SELECT id FROM recruit_snapshots ORDER BY id DESC LIMIT 1)`)
	if err != nil {
		return fmt.Errorf("pruning snapshots: %w", err)
	}
	return nil
}

func (c *Client) LoadLatest(ctx context.Context) (*store.Snapshot, error) {
	row := c.pool.QueryRow(ctx,
		`SELECT fetched_at, payload FROM recruit_snapshots ORDER BY id DESC LIMIT 1`)

	var snap store.Snapshot
	var payload []byte
	if err := row.Scan(&snap.FetchedAt, &payload); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("loading snapshot: %w", err)
	}

	var entities []recruit.Entity
	if err := json.Unmarshal(payload, &entities); err != nil {
		return nil, fmt.Errorf("decoding snapshot: %w", err)
	}
	snap.Entities = entities
	return &snap, nil
}
