package main

import (
	"context"
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/TonybotNi/doctah-mcp/internal/render"
	"github.com/TonybotNi/doctah-mcp/internal/wiki"
)

func queryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "query",
		Short: "Look up wiki pages from the CLI",
	}
	cmd.AddCommand(queryPageCmd("operator", "Print an operator page", wiki.KindOperator))
	cmd.AddCommand(queryPageCmd("enemy", "Print an enemy page", wiki.KindEnemy))
	cmd.AddCommand(queryListCmd("operators", "List operators matching a keyword", wiki.KindOperator))
	cmd.AddCommand(queryListCmd("enemies", "List enemies matching a keyword", wiki.KindEnemy))
	return cmd
}

func queryPageCmd(use, short string, kind wiki.PageKind) *cobra.Command {
	var sections []string
	cmd := &cobra.Command{
		Use:   use + " <name>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runQueryPage(args[0], sections, kind)
		},
	}
	cmd.Flags().StringSliceVar(&sections, "section", nil, "Only print sections whose title contains this (repeatable)")
	return cmd
}

func runQueryPage(name string, sections []string, kind wiki.PageKind) error {
	ctx := context.Background()

	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.close(ctx)

	results, err := a.wiki.SearchPages(ctx, name, 10)
	if err != nil {
		return err
	}
	title := wiki.ResolveTitle(results, name)
	if title == "" {
		fmt.Fprintln(os.Stdout, render.PageNotFound(kind, name, indexURL(a, kind)))
		return nil
	}

	report, err := a.wiki.ParsePage(ctx, title, sections)
	if err != nil {
		return err
	}
	switch {
	case report.Kind != kind:
		fmt.Fprintln(os.Stdout, render.WrongKind(report.Kind, name, report.URL))
	case report.Empty():
		fmt.Fprintln(os.Stdout, render.PageNotFound(kind, name, indexURL(a, kind)))
	default:
		fmt.Fprintln(os.Stdout, render.Page(report, len(sections) > 0))
	}
	return nil
}

func queryListCmd(use, short string, kind wiki.PageKind) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <keyword>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runQueryList(args[0], kind)
		},
	}
}

func runQueryList(keyword string, kind wiki.PageKind) error {
	ctx := context.Background()

	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.close(ctx)

	results, err := a.wiki.SearchPages(ctx, keyword, 30)
	if err != nil {
		return err
	}

	candidates := make([]wiki.SearchResult, 0, len(results))
	for _, res := range results {
		if wiki.IsSubPage(res.Title) || wiki.IsIndexPage(res.Title) {
			continue
		}
		candidates = append(candidates, res)
	}

	verified := a.wiki.VerifyPages(ctx, candidates)
	names := make([]string, 0, len(verified))
	for _, res := range wiki.FilterByKind(verified, kind) {
		names = append(names, res.Title)
	}
	sort.Strings(names)

	fmt.Fprintln(os.Stdout, render.SearchList(kind, keyword, names, len(results), a.wiki.BaseURL()))
	return nil
}

func indexURL(a *app, kind wiki.PageKind) string {
	if kind == wiki.KindEnemy {
		return a.wiki.BaseURL() + "/w/敌人一览"
	}
	return a.wiki.BaseURL() + "/w/干员一览"
}
