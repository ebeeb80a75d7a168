package mcp

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	sdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/TonybotNi/doctah-mcp/internal/recruit"
	"github.com/TonybotNi/doctah-mcp/internal/render"
	"github.com/TonybotNi/doctah-mcp/internal/wiki"
)

const searchResultLimit = 30

type RecruitInput struct {
	Tags  string `json:"tags" jsonschema:"recruit terms, separated by comma or space"`
	Limit int    `json:"limit,omitempty" jsonschema:"maximum number of results"`
}

type PageInput struct {
	Name     string   `json:"name" jsonschema:"page name to look up"`
	Sections []string `json:"sections,omitempty" jsonschema:"restrict output to sections whose title contains one of these"`
}

type ListInput struct {
	Name string `json:"name" jsonschema:"search keyword"`
}

type OperatorOutput struct {
	Name       string   `json:"name"`
	Profession string   `json:"profession,omitempty"`
	Position   string   `json:"position,omitempty"`
	Stars      int      `json:"stars"`
	RarityTag  string   `json:"rarity_tag,omitempty"`
	Tags       []string `json:"tags,omitempty"`
	URL        string   `json:"url"`
}

type MatchOutput struct {
	OperatorOutput
	MatchedTags []string `json:"matched_tags,omitempty"`
}

type RecruitAnyOutput struct {
	Terms   []string      `json:"terms"`
	Matches []MatchOutput `json:"matches"`
}

type RecruitAllOutput struct {
	Terms     []string         `json:"terms"`
	Operators []OperatorOutput `json:"operators"`
}

type GroupOutput struct {
	Label    string           `json:"label"`
	AvgStars float64          `json:"avg_stars"`
	Members  []OperatorOutput `json:"members"`
}

type RecruitGroupedOutput struct {
	Terms  []string      `json:"terms"`
	Groups []GroupOutput `json:"groups"`
}

type PageOutput struct {
	Title    string   `json:"title"`
	URL      string   `json:"url"`
	Kind     string   `json:"kind"`
	Sections []string `json:"sections,omitempty"`
}

type ListOutput struct {
	Keyword   string   `json:"keyword"`
	Names     []string `json:"names"`
	TotalHits int      `json:"total_hits"`
}

func (s *Server) registerTools() {
	sdk.AddTool(s.mcp, &sdk.Tool{
		Name:        "recruit_by_tags",
		Description: "公开招募计算：按词条筛选干员（类别内取并集，词缀取交集）",
	}, s.handleRecruitAny)

	sdk.AddTool(s.mcp, &sdk.Tool{
		Name:        "recruit_by_tags_all",
		Description: "公开招募计算：严格同时满足全部词条",
	}, s.handleRecruitAll)

	sdk.AddTool(s.mcp, &sdk.Tool{
		Name:        "recruit_by_tags_grouped",
		Description: "公开招募计算：按词条子组合分组，与游戏内公招计算一致",
	}, s.handleRecruitGrouped)

	sdk.AddTool(s.mcp, &sdk.Tool{
		Name:        "recruit_by_tags_suggest",
		Description: "公开招募计算：返回最值得锁定的词条组合",
	}, s.handleRecruitSuggest)

	sdk.AddTool(s.mcp, &sdk.Tool{
		Name:        "search_operator",
		Description: "查询干员页面详情（基本信息、目录、章节内容）",
	}, s.handleSearchOperator)

	sdk.AddTool(s.mcp, &sdk.Tool{
		Name:        "list_operators",
		Description: "按关键词搜索并校验干员页面，返回干员名称列表",
	}, s.handleListOperators)

	sdk.AddTool(s.mcp, &sdk.Tool{
		Name:        "search_enemy",
		Description: "查询敌人页面详情",
	}, s.handleSearchEnemy)

	sdk.AddTool(s.mcp, &sdk.Tool{
		Name:        "list_enemies",
		Description: "按关键词搜索并校验敌人页面，返回敌人名称列表",
	}, s.handleListEnemies)
}

// selectAndFetch resolves the query terms and the catalog snapshot shared by
// every recruit tool.
func (s *Server) selectAndFetch(ctx context.Context, tags string) (recruit.Selection, []recruit.Entity, error) {
	sel, err := s.engine.Select(tags)
	if err != nil {
		return recruit.Selection{}, nil, err
	}
	snapshot, err := s.source.Recruitable(ctx)
	if err != nil {
		return recruit.Selection{}, nil, err
	}
	return sel, snapshot, nil
}

func (s *Server) handleRecruitAny(ctx context.Context, req *sdk.CallToolRequest, input RecruitInput) (*sdk.CallToolResult, RecruitAnyOutput, error) {
	sel, snapshot, err := s.selectAndFetch(ctx, input.Tags)
	if err != nil {
		return nil, RecruitAnyOutput{}, err
	}

	matches := s.engine.MatchAny(snapshot, sel, input.Limit)
	output := RecruitAnyOutput{Terms: sel.Terms, Matches: make([]MatchOutput, 0, len(matches))}
	for _, m := range matches {
		output.Matches = append(output.Matches, MatchOutput{
			OperatorOutput: operatorOutput(m.Entity, m.Tier),
			MatchedTags:    m.MatchedTags,
		})
	}
	return textResult(render.RecruitAny(sel, matches)), output, nil
}

func (s *Server) handleRecruitAll(ctx context.Context, req *sdk.CallToolRequest, input RecruitInput) (*sdk.CallToolResult, RecruitAllOutput, error) {
	sel, snapshot, err := s.selectAndFetch(ctx, input.Tags)
	if err != nil {
		return nil, RecruitAllOutput{}, err
	}

	hits := s.engine.MatchAll(snapshot, sel)
	tiers := s.engine.Tiers()
	output := RecruitAllOutput{Terms: sel.Terms, Operators: make([]OperatorOutput, 0, len(hits))}
	for _, e := range hits {
		output.Operators = append(output.Operators, operatorOutput(e, recruit.TierFor(e.Stars, tiers)))
	}
	return textResult(render.RecruitAll(sel, hits)), output, nil
}

func (s *Server) handleRecruitGrouped(ctx context.Context, req *sdk.CallToolRequest, input RecruitInput) (*sdk.CallToolResult, RecruitGroupedOutput, error) {
	sel, snapshot, err := s.selectAndFetch(ctx, input.Tags)
	if err != nil {
		return nil, RecruitGroupedOutput{}, err
	}

	groups := s.engine.MatchGrouped(snapshot, sel)
	return textResult(render.RecruitGrouped(sel, groups)), groupedOutput(sel, groups, s.engine.Tiers()), nil
}

func (s *Server) handleRecruitSuggest(ctx context.Context, req *sdk.CallToolRequest, input RecruitInput) (*sdk.CallToolResult, RecruitGroupedOutput, error) {
	sel, snapshot, err := s.selectAndFetch(ctx, input.Tags)
	if err != nil {
		return nil, RecruitGroupedOutput{}, err
	}

	limit := input.Limit
	if limit <= 0 {
		limit = s.suggestLimit
	}
	groups := s.engine.MatchSuggest(snapshot, sel, limit)
	return textResult(render.RecruitSuggest(sel, groups)), groupedOutput(sel, groups, s.engine.Tiers()), nil
}

func (s *Server) handleSearchOperator(ctx context.Context, req *sdk.CallToolRequest, input PageInput) (*sdk.CallToolResult, PageOutput, error) {
	return s.handleSearchPage(ctx, input, wiki.KindOperator)
}

func (s *Server) handleSearchEnemy(ctx context.Context, req *sdk.CallToolRequest, input PageInput) (*sdk.CallToolResult, PageOutput, error) {
	return s.handleSearchPage(ctx, input, wiki.KindEnemy)
}

func (s *Server) handleSearchPage(ctx context.Context, input PageInput, want wiki.PageKind) (*sdk.CallToolResult, PageOutput, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, PageOutput{}, errors.New("name is required")
	}

	title, err := s.resolveTitle(ctx, input.Name)
	if err != nil {
		return nil, PageOutput{}, err
	}
	if title == "" {
		return textResult(render.PageNotFound(want, input.Name, s.indexURL(want))), PageOutput{}, nil
	}

	report, err := s.wiki.ParsePage(ctx, title, input.Sections)
	if err != nil {
		return nil, PageOutput{}, fmt.Errorf("parsing page %s: %w", title, err)
	}
	if report.Kind != want {
		return textResult(render.WrongKind(report.Kind, input.Name, report.URL)), PageOutput{}, nil
	}
	if report.Empty() {
		return textResult(render.PageNotFound(want, input.Name, s.indexURL(want))), PageOutput{}, nil
	}

	output := PageOutput{Title: report.Title, URL: report.URL, Kind: string(report.Kind)}
	for _, section := range report.Sections {
		output.Sections = append(output.Sections, section.Title)
	}
	return textResult(render.Page(report, len(input.Sections) > 0)), output, nil
}

func (s *Server) handleListOperators(ctx context.Context, req *sdk.CallToolRequest, input ListInput) (*sdk.CallToolResult, ListOutput, error) {
	return s.handleListPages(ctx, input, wiki.KindOperator)
}

func (s *Server) handleListEnemies(ctx context.Context, req *sdk.CallToolRequest, input ListInput) (*sdk.CallToolResult, ListOutput, error) {
	return s.handleListPages(ctx, input, wiki.KindEnemy)
}

func (s *Server) handleListPages(ctx context.Context, input ListInput, want wiki.PageKind) (*sdk.CallToolResult, ListOutput, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, ListOutput{}, errors.New("name is required")
	}

	results, err := s.wiki.SearchPages(ctx, input.Name, searchResultLimit)
	if err != nil {
		return nil, ListOutput{}, fmt.Errorf("searching %q: %w", input.Name, err)
	}

	candidates := make([]wiki.SearchResult, 0, len(results))
	for _, res := range results {
		if wiki.IsSubPage(res.Title) || wiki.IsIndexPage(res.Title) {
			continue
		}
		candidates = append(candidates, res)
	}

	verified := s.wiki.VerifyPages(ctx, candidates)
	names := make([]string, 0, len(verified))
	for _, res := range wiki.FilterByKind(verified, want) {
		names = append(names, res.Title)
	}
	sort.Strings(names)

	output := ListOutput{Keyword: input.Name, Names: names, TotalHits: len(results)}
	return textResult(render.SearchList(want, input.Name, names, len(results), s.wiki.BaseURL())), output, nil
}

// resolveTitle searches and picks the page most likely meant by the query.
// Empty when nothing was found.
func (s *Server) resolveTitle(ctx context.Context, name string) (string, error) {
	results, err := s.wiki.SearchPages(ctx, name, 10)
	if err != nil {
		return "", fmt.Errorf("searching %q: %w", name, err)
	}
	return wiki.ResolveTitle(results, name), nil
}

func (s *Server) indexURL(kind wiki.PageKind) string {
	if kind == wiki.KindEnemy {
		return s.wiki.BaseURL() + "/w/敌人一览"
	}
	return s.wiki.BaseURL() + "/w/干员一览"
}

func operatorOutput(e recruit.Entity, tier string) OperatorOutput {
	return OperatorOutput{
		Name:       e.Name,
		Profession: e.Profession,
		Position:   e.Position,
		Stars:      e.Stars,
		RarityTag:  tier,
		Tags:       append([]string{}, e.Tags...),
		URL:        e.URL,
	}
}

func groupedOutput(sel recruit.Selection, groups []recruit.Group, tiers []recruit.TierRule) RecruitGroupedOutput {
	output := RecruitGroupedOutput{Terms: sel.Terms, Groups: make([]GroupOutput, 0, len(groups))}
	for _, g := range groups {
		members := make([]OperatorOutput, 0, len(g.Members))
		for _, e := range g.Members {
			members = append(members, operatorOutput(e, recruit.TierFor(e.Stars, tiers)))
		}
		output.Groups = append(output.Groups, GroupOutput{Label: g.Label, AvgStars: g.AvgStars, Members: members})
	}
	return output
}

func textResult(markdown string) *sdk.CallToolResult {
	return &sdk.CallToolResult{
		Content: []sdk.Content{&sdk.TextContent{Text: markdown}},
	}
}
