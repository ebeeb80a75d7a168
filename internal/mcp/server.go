package mcp

import (
	"context"

	sdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/TonybotNi/doctah-mcp/internal/catalog"
	"github.com/TonybotNi/doctah-mcp/internal/recruit"
	"github.com/TonybotNi/doctah-mcp/internal/wiki"
)

// WikiClient is the wiki surface the tools need; *wiki.Client satisfies it.
type WikiClient interface {
	BaseURL() string
	PageURL(title string) string
	SearchPages(ctx context.Context, query string, limit int) ([]wiki.SearchResult, error)
	ParsePage(ctx context.Context, title string, wantSections []string) (*wiki.PageReport, error)
	VerifyPages(ctx context.Context, results []wiki.SearchResult) []wiki.Verification
}

type Server struct {
	engine       *recruit.Engine
	source       catalog.Source
	wiki         WikiClient
	suggestLimit int
	mcp          *sdk.Server
}

func NewServer(engine *recruit.Engine, source catalog.Source, wikiClient WikiClient, suggestLimit int, version string) *Server {
	if suggestLimit <= 0 {
		suggestLimit = recruit.DefaultSuggestLimit
	}
	s := &Server{
		engine:       engine,
		source:       source,
		wiki:         wikiClient,
		suggestLimit: suggestLimit,
		mcp: sdk.NewServer(&sdk.Implementation{
			Name:    "doctah",
			Version: version,
		}, nil),
	}
	s.registerTools()
	return s
}

func (s *Server) Run(ctx context.Context, transport sdk.Transport) error {
	return s.mcp.Run(ctx, transport)
}
