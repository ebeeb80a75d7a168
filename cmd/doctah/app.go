package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/TonybotNi/doctah-mcp/internal/catalog"
	"github.com/TonybotNi/doctah-mcp/internal/config"
	"github.com/TonybotNi/doctah-mcp/internal/recruit"
	"github.com/TonybotNi/doctah-mcp/internal/store"
	"github.com/TonybotNi/doctah-mcp/internal/store/postgres"
	"github.com/TonybotNi/doctah-mcp/internal/store/sqlite"
	"github.com/TonybotNi/doctah-mcp/internal/wiki"
)

// app holds the collaborators every subcommand shares.
type app struct {
	cfg    *config.Config
	engine *recruit.Engine
	wiki   *wiki.Client
	source catalog.Source
	db     store.Store
}

func newApp(ctx context.Context) (*app, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	voc, err := config.LoadVocabulary(cfg.Recruit.VocabularyFile)
	if err != nil {
		return nil, err
	}
	engine, err := recruit.NewEngine(voc)
	if err != nil {
		return nil, fmt.Errorf("building recruit engine: %w", err)
	}

	client := wiki.New(cfg.Wiki.BaseURL, wiki.Options{
		UserAgent:         cfg.Wiki.UserAgent,
		Timeout:           cfg.Wiki.Timeout(),
		RequestsPerSecond: cfg.Wiki.RequestsPerSecond,
	})

	a := &app{
		cfg:    cfg,
		engine: engine,
		wiki:   client,
		source: catalog.SourceFunc(client.RecruitableOperators),
	}

	db, err := openStore(ctx, cfg)
	if err != nil {
		return nil, err
	}
	if db != nil {
		if err := db.EnsureSchema(ctx); err != nil {
			db.Close(ctx)
			return nil, fmt.Errorf("preparing cache schema: %w", err)
		}
		a.db = db
		a.source = catalog.NewCachedSource(a.source, db, cfg.Cache.TTL(), nil)
	}
	return a, nil
}

// openStore selects the snapshot cache backend from the DSN scheme. An empty
// DSN disables caching.
func openStore(ctx context.Context, cfg *config.Config) (store.Store, error) {
	dsn := strings.TrimSpace(cfg.Cache.DSN)
	switch {
	case dsn == "":
		return nil, nil
	case strings.HasPrefix(dsn, "sqlite://"):
		return sqlite.New(ctx, dsn)
	default:
		return postgres.New(ctx, dsn)
	}
}

func (a *app) close(ctx context.Context) {
	if a.db != nil {
		a.db.Close(ctx)
	}
}
