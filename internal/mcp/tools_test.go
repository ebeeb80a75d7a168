package mcp

import (
	"context"
	"errors"
	"strings"
	"testing"

	sdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/TonybotNi/doctah-mcp/internal/catalog"
	"github.com/TonybotNi/doctah-mcp/internal/recruit"
	"github.com/TonybotNi/doctah-mcp/internal/wiki"
)

func testVocabulary() recruit.Vocabulary {
	return recruit.Vocabulary{
		Professions:      []string{"狙击", "术师"},
		Positions:        []string{"近战位", "远程位"},
		Rarities:         []string{"高级资深干员", "资深干员"},
		Tags:             []string{"输出", "群攻", "治疗"},
		Aliases:          map[string]string{"高资": "高级资深干员"},
		ProfessionSuffix: "干员",
		Tiers: []recruit.TierRule{
			{Stars: 6, Term: "高级资深干员"},
			{Stars: 5, Term: "资深干员"},
		},
	}
}

func testSnapshot() []recruit.Entity {
	return []recruit.Entity{
		{Name: "能天使", Profession: "狙击", Position: "远程位", Stars: 6, Tags: []string{"输出"}, URL: "u1"},
		{Name: "蓝毒", Profession: "狙击", Position: "远程位", Stars: 5, Tags: []string{"输出"}, URL: "u2"},
		{Name: "安德切尔", Profession: "狙击", Position: "远程位", Stars: 3, Tags: []string{"输出"}, URL: "u3"},
	}
}

type mockWiki struct {
	searchResults []wiki.SearchResult
	searchErr     error
	report        *wiki.PageReport
	parseErr      error
	kinds         map[string]wiki.PageKind

	lastSearch string
	lastParsed string
}

func (m *mockWiki) BaseURL() string             { return "https://prts.example" }
func (m *mockWiki) PageURL(title string) string { return "https://prts.example/w/" + title }

func (m *mockWiki) SearchPages(ctx context.Context, query string, limit int) ([]wiki.SearchResult, error) {
	m.lastSearch = query
	return m.searchResults, m.searchErr
}

func (m *mockWiki) ParsePage(ctx context.Context, title string, wantSections []string) (*wiki.PageReport, error) {
	m.lastParsed = title
	return m.report, m.parseErr
}

func (m *mockWiki) VerifyPages(ctx context.Context, results []wiki.SearchResult) []wiki.Verification {
	verified := make([]wiki.Verification, 0, len(results))
	for _, res := range results {
		kind, ok := m.kinds[res.Title]
		if !ok {
			verified = append(verified, wiki.Verification{Result: res, Err: errors.New("no page")})
			continue
		}
		verified = append(verified, wiki.Verification{Result: res, Kind: kind})
	}
	return verified
}

func newTestServer(t *testing.T, source catalog.Source, w WikiClient) *Server {
	t.Helper()
	engine, err := recruit.NewEngine(testVocabulary())
	if err != nil {
		t.Fatalf("building engine: %v", err)
	}
	return NewServer(engine, source, w, 0, "test")
}

func staticSource(entities []recruit.Entity) catalog.Source {
	return catalog.SourceFunc(func(ctx context.Context) ([]recruit.Entity, error) {
		return entities, nil
	})
}

func TestRecruitAny(t *testing.T) {
	server := newTestServer(t, staticSource(testSnapshot()), &mockWiki{})

	result, output, err := server.handleRecruitAny(context.Background(), nil, RecruitInput{Tags: "狙击 输出"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(output.Matches) != 3 {
		t.Fatalf("unexpected matches: %+v", output.Matches)
	}
	if output.Matches[0].Name != "能天使" || output.Matches[0].RarityTag != "高级资深干员" {
		t.Fatalf("unexpected first match: %+v", output.Matches[0])
	}
	if len(output.Matches[0].MatchedTags) != 1 || output.Matches[0].MatchedTags[0] != "输出" {
		t.Fatalf("unexpected matched tags: %+v", output.Matches[0].MatchedTags)
	}
	text := resultText(t, result)
	if !strings.Contains(text, "公招计算结果") {
		t.Fatalf("unexpected markdown: %s", text)
	}
}

func TestRecruitAnyLimit(t *testing.T) {
	server := newTestServer(t, staticSource(testSnapshot()), &mockWiki{})

	_, output, err := server.handleRecruitAny(context.Background(), nil, RecruitInput{Tags: "狙击", Limit: 1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(output.Matches) != 1 || output.Matches[0].Name != "能天使" {
		t.Fatalf("unexpected matches: %+v", output.Matches)
	}
}

func TestRecruitAnyEmptyQuery(t *testing.T) {
	server := newTestServer(t, staticSource(testSnapshot()), &mockWiki{})

	_, _, err := server.handleRecruitAny(context.Background(), nil, RecruitInput{Tags: "  "})
	if !errors.Is(err, recruit.ErrEmptyQuery) {
		t.Fatalf("expected ErrEmptyQuery, got %v", err)
	}
}

func TestRecruitAnySourceFailure(t *testing.T) {
	failing := catalog.SourceFunc(func(ctx context.Context) ([]recruit.Entity, error) {
		return nil, catalog.ErrUnavailable
	})
	server := newTestServer(t, failing, &mockWiki{})

	_, _, err := server.handleRecruitAny(context.Background(), nil, RecruitInput{Tags: "狙击"})
	if !errors.Is(err, catalog.ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable, got %v", err)
	}
}

func TestRecruitAll(t *testing.T) {
	server := newTestServer(t, staticSource(testSnapshot()), &mockWiki{})

	_, output, err := server.handleRecruitAll(context.Background(), nil, RecruitInput{Tags: "狙击, 高资"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(output.Operators) != 1 || output.Operators[0].Name != "能天使" {
		t.Fatalf("unexpected operators: %+v", output.Operators)
	}
}

func TestRecruitGrouped(t *testing.T) {
	server := newTestServer(t, staticSource(testSnapshot()), &mockWiki{})

	_, output, err := server.handleRecruitGrouped(context.Background(), nil, RecruitInput{Tags: "狙击 输出 高资"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(output.Groups) == 0 {
		t.Fatalf("expected groups")
	}
	// every group is ordered best first
	for i := 1; i < len(output.Groups); i++ {
		if output.Groups[i].AvgStars > output.Groups[i-1].AvgStars {
			t.Fatalf("groups out of order: %+v", output.Groups)
		}
	}
}

func TestRecruitSuggestLimit(t *testing.T) {
	server := newTestServer(t, staticSource(testSnapshot()), &mockWiki{})

	_, output, err := server.handleRecruitSuggest(context.Background(), nil, RecruitInput{Tags: "狙击 输出 高资", Limit: 2})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(output.Groups) > 2 {
		t.Fatalf("limit not applied: %d groups", len(output.Groups))
	}
}

func TestSearchOperator(t *testing.T) {
	w := &mockWiki{
		searchResults: []wiki.SearchResult{{Title: "能天使/语音记录"}, {Title: "能天使"}},
		report: &wiki.PageReport{
			Title:    "能天使",
			URL:      "https://prts.example/w/能天使",
			Kind:     wiki.KindOperator,
			Sections: []wiki.Section{{Title: "天赋", Content: "攻击速度提升"}},
		},
	}
	server := newTestServer(t, staticSource(nil), w)

	result, output, err := server.handleSearchOperator(context.Background(), nil, PageInput{Name: "能天使"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if w.lastParsed != "能天使" {
		t.Fatalf("resolved wrong title: %s", w.lastParsed)
	}
	if output.Title != "能天使" || output.Kind != "operator" {
		t.Fatalf("unexpected output: %+v", output)
	}
	if !strings.Contains(resultText(t, result), "# 能天使") {
		t.Fatalf("unexpected markdown")
	}
}

func TestSearchOperatorFindsEnemyPage(t *testing.T) {
	w := &mockWiki{
		searchResults: []wiki.SearchResult{{Title: "源石虫"}},
		report:        &wiki.PageReport{Title: "源石虫", URL: "u", Kind: wiki.KindEnemy},
	}
	server := newTestServer(t, staticSource(nil), w)

	result, output, err := server.handleSearchOperator(context.Background(), nil, PageInput{Name: "源石虫"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if output.Title != "" {
		t.Fatalf("expected empty structured output, got %+v", output)
	}
	if !strings.Contains(resultText(t, result), "发现敌人页面") {
		t.Fatalf("expected wrong-kind warning")
	}
}

func TestSearchOperatorNotFound(t *testing.T) {
	server := newTestServer(t, staticSource(nil), &mockWiki{})

	result, _, err := server.handleSearchOperator(context.Background(), nil, PageInput{Name: "不存在"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(resultText(t, result), "查询失败") {
		t.Fatalf("expected not-found report")
	}
}

func TestSearchOperatorEmptyName(t *testing.T) {
	server := newTestServer(t, staticSource(nil), &mockWiki{})

	_, _, err := server.handleSearchOperator(context.Background(), nil, PageInput{Name: " "})
	if err == nil {
		t.Fatalf("expected error")
	}
}

func TestListOperators(t *testing.T) {
	w := &mockWiki{
		searchResults: []wiki.SearchResult{
			{Title: "白面鸮"},
			{Title: "闪灵"},
			{Title: "源石虫"},
			{Title: "干员一览"},
			{Title: "白面鸮/语音记录"},
		},
		kinds: map[string]wiki.PageKind{
			"白面鸮": wiki.KindOperator,
			"闪灵":  wiki.KindOperator,
			"源石虫": wiki.KindEnemy,
		},
	}
	server := newTestServer(t, staticSource(nil), w)

	result, output, err := server.handleListOperators(context.Background(), nil, ListInput{Name: "医疗"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(output.Names) != 2 {
		t.Fatalf("unexpected names: %+v", output.Names)
	}
	if output.TotalHits != 5 {
		t.Fatalf("unexpected total: %d", output.TotalHits)
	}
	if !strings.Contains(resultText(t, result), "干员搜索结果") {
		t.Fatalf("unexpected markdown")
	}
}

func TestListEnemies(t *testing.T) {
	w := &mockWiki{
		searchResults: []wiki.SearchResult{{Title: "源石虫"}, {Title: "白面鸮"}},
		kinds: map[string]wiki.PageKind{
			"源石虫": wiki.KindEnemy,
			"白面鸮": wiki.KindOperator,
		},
	}
	server := newTestServer(t, staticSource(nil), w)

	_, output, err := server.handleListEnemies(context.Background(), nil, ListInput{Name: "源石"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(output.Names) != 1 || output.Names[0] != "源石虫" {
		t.Fatalf("unexpected names: %+v", output.Names)
	}
}

func resultText(t *testing.T, result *sdk.CallToolResult) string {
	t.Helper()
	if result == nil || len(result.Content) == 0 {
		t.Fatalf("empty result")
	}
	text, ok := result.Content[0].(*sdk.TextContent)
	if !ok {
		t.Fatalf("unexpected content type %T", result.Content[0])
	}
	return text.Text
}
