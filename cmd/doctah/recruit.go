package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/TonybotNi/doctah-mcp/internal/recruit"
	"github.com/TonybotNi/doctah-mcp/internal/render"
)

func recruitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "recruit",
		Short: "Run the public recruitment calculator",
	}
	cmd.AddCommand(recruitAnyCmd())
	cmd.AddCommand(recruitAllCmd())
	cmd.AddCommand(recruitGroupedCmd())
	cmd.AddCommand(recruitSuggestCmd())
	return cmd
}

func recruitAnyCmd() *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "any <terms...>",
		Short: "Match operators by terms, OR within categories",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSelection(args, func(a *app, ctx context.Context, sel recruit.Selection, snapshot []recruit.Entity) string {
				return render.RecruitAny(sel, a.engine.MatchAny(snapshot, sel, limit))
			})
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 0, "Maximum number of operators to print")
	return cmd
}

func recruitAllCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "all <terms...>",
		Short: "Match operators carrying every given term",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSelection(args, func(a *app, ctx context.Context, sel recruit.Selection, snapshot []recruit.Entity) string {
				return render.RecruitAll(sel, a.engine.MatchAll(snapshot, sel))
			})
		},
	}
}

func recruitGroupedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "grouped <terms...>",
		Short: "Group matches by term sub-combination, like the in-game calculator",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSelection(args, func(a *app, ctx context.Context, sel recruit.Selection, snapshot []recruit.Entity) string {
				return render.RecruitGrouped(sel, a.engine.MatchGrouped(snapshot, sel))
			})
		},
	}
}

func recruitSuggestCmd() *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "suggest <terms...>",
		Short: "Print the term combinations most worth locking in",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSelection(args, func(a *app, ctx context.Context, sel recruit.Selection, snapshot []recruit.Entity) string {
				k := limit
				if k <= 0 {
					k = a.cfg.Recruit.SuggestLimit
				}
				return render.RecruitSuggest(sel, a.engine.MatchSuggest(snapshot, sel, k))
			})
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 0, "Maximum number of combinations to print")
	return cmd
}

// withSelection runs the shared query-parse-fetch sequence and prints the
// report the callback builds.
func withSelection(args []string, report func(a *app, ctx context.Context, sel recruit.Selection, snapshot []recruit.Entity) string) error {
	ctx := context.Background()

	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.close(ctx)

	sel, err := a.engine.Select(strings.Join(args, " "))
	if err != nil {
		return err
	}
	snapshot, err := a.source.Recruitable(ctx)
	if err != nil {
		return err
	}

	fmt.Fprintln(os.Stdout, report(a, ctx, sel, snapshot))
	return nil
}
