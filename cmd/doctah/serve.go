package main

import (
	"context"

	"github.com/spf13/cobra"

	sdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/TonybotNi/doctah-mcp/internal/mcp"
)

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the MCP server over stdio",
		Args:  cobra.NoArgs,
		RunE:  runServe,
	}
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.close(ctx)

	server := mcp.NewServer(a.engine, a.source, a.wiki, a.cfg.Recruit.SuggestLimit, version)
	return server.Run(ctx, &sdk.StdioTransport{})
}
