package wiki

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"golang.org/x/net/html"
)

type PageKind string

const (
	KindOperator PageKind = "operator"
	KindEnemy    PageKind = "enemy"
)

type TOCEntry struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Level int    `json:"level"`
}

type Section struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

type Field struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// PageReport is the structured extraction of one wiki page.
type PageReport struct {
	Title     string     `json:"title"`
	URL       string     `json:"url"`
	Kind      PageKind   `json:"kind"`
	TOC       []TOCEntry `json:"table_of_contents,omitempty"`
	BasicInfo []Field    `json:"basic_info,omitempty"`
	Sections  []Section  `json:"sections,omitempty"`
}

// Empty reports whether extraction found nothing usable on the page.
func (r *PageReport) Empty() bool {
	return len(r.TOC) == 0 && len(r.BasicInfo) == 0 && len(r.Sections) == 0
}

var operatorBasicKeys = []string{"再部署", "部署时间", "阻挡", "所属势力", "攻击间隔", "部署费用"}

var enemyBasicKeys = []string{"分类", "种族", "重量", "阻挡数"}

var enemySectionMarkers = []string{"级别0", "级别1", "级别2", "敌人模型"}

// fetchDocument retrieves and parses a wiki page. A missing page surfaces as
// an HTTP error from get.
func (c *Client) fetchDocument(ctx context.Context, title string) (*html.Node, error) {
	body, err := c.get(ctx, "/w/"+url.PathEscape(title), nil)
	if err != nil {
		return nil, err
	}
	doc, err := html.Parse(strings.NewReader(string(body)))
	if err != nil {
		return nil, fmt.Errorf("parsing page %s: %w", title, err)
	}
	return doc, nil
}

// ParsePage fetches a page and extracts its structure. wantSections, when
// non-empty, restricts extraction to sections whose title contains one of
// the given names.
func (c *Client) ParsePage(ctx context.Context, title string, wantSections []string) (*PageReport, error) {
	doc, err := c.fetchDocument(ctx, title)
	if err != nil {
		return nil, err
	}
	report := &PageReport{Title: title, URL: c.PageURL(title)}

	if isEnemyDocument(doc) {
		report.Kind = KindEnemy
		report.BasicInfo = extractFields(doc, enemyBasicKeys)
	} else {
		report.Kind = KindOperator
		report.BasicInfo = extractFields(doc, operatorBasicKeys)
	}

	report.TOC = extractTOC(doc)
	for _, entry := range report.TOC {
		if len(wantSections) > 0 && !titleMatchesAny(entry.Title, wantSections) {
			continue
		}
		content := sectionContent(doc, entry.ID)
		if content != "" {
			report.Sections = append(report.Sections, Section{Title: entry.Title, Content: content})
		}
	}
	return report, nil
}

func titleMatchesAny(title string, wanted []string) bool {
	for _, w := range wanted {
		if strings.Contains(title, w) {
			return true
		}
	}
	return false
}

// extractTOC prefers the page's toc container and falls back to headings
// that carry an id.
func extractTOC(doc *html.Node) []TOCEntry {
	var toc []TOCEntry
	if container := findByID(doc, "toc"); container != nil {
		for _, link := range findAll(container, "a") {
			href := attrVal(link, "href")
			if !strings.HasPrefix(href, "#") || len(href) < 2 {
				continue
			}
			toc = append(toc, TOCEntry{ID: href[1:], Title: nodeText(link), Level: tocLinkLevel(link)})
		}
		return toc
	}
	for _, heading := range findAll(doc, "h1", "h2", "h3", "h4", "h5", "h6") {
		id := attrVal(heading, "id")
		if id == "" {
			// MediaWiki usually puts the id on the headline span.
			for _, span := range findAll(heading, "span") {
				if v := attrVal(span, "id"); v != "" {
					id = v
					break
				}
			}
		}
		if id == "" {
			continue
		}
		toc = append(toc, TOCEntry{ID: id, Title: nodeText(heading), Level: headingLevel(heading)})
	}
	return toc
}

func tocLinkLevel(link *html.Node) int {
	level := 0
	for n := link.Parent; n != nil; n = n.Parent {
		if isElement(n, "li") {
			level++
		}
	}
	if level == 0 {
		level = 1
	}
	return level
}

// sectionContent collects text and tables between a section's heading and
// the next heading of the same or higher level.
func sectionContent(doc *html.Node, id string) string {
	anchor := findByID(doc, id)
	if anchor == nil {
		return ""
	}
	heading := anchor
	for heading != nil && headingLevel(heading) == 0 {
		heading = heading.Parent
	}
	if heading == nil {
		return ""
	}
	level := headingLevel(heading)

	var parts []string
	for n := heading.NextSibling; n != nil; n = n.NextSibling {
		if hl := headingLevel(n); hl != 0 && hl <= level {
			break
		}
		if n.Type != html.ElementNode {
			continue
		}
		switch n.Data {
		case "table":
			if md := tableMarkdown(n); md != "" {
				parts = append(parts, md)
			}
		case "p", "div", "ul", "ol", "dl":
			if text := nodeText(n); text != "" {
				parts = append(parts, text)
			}
		}
	}
	return strings.Join(parts, "\n\n")
}

// extractFields scans two-column table rows for keys containing one of the
// wanted markers, keeping the first value seen per key.
func extractFields(doc *html.Node, wantedKeys []string) []Field {
	var fields []Field
	seen := make(map[string]struct{})
	for _, table := range findAll(doc, "table") {
		for _, row := range findAll(table, "tr") {
			cells := findAll(row, "th", "td")
			if len(cells) < 2 {
				continue
			}
			key := nodeText(cells[0])
			value := nodeText(cells[1])
			if key == "" || value == "" {
				continue
			}
			if !titleMatchesAny(key, wantedKeys) {
				continue
			}
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
			fields = append(fields, Field{Key: key, Value: value})
		}
	}
	return fields
}

// isEnemyDocument checks the markers that distinguish enemy pages: a link to
// the enemy index or the per-level stat sections.
func isEnemyDocument(doc *html.Node) bool {
	for _, link := range findAll(doc, "a") {
		if attrVal(link, "href") == "/w/敌人一览" {
			return true
		}
	}
	for _, heading := range findAll(doc, "h1", "h2", "h3", "h4", "h5", "h6") {
		if titleMatchesAny(nodeText(heading), enemySectionMarkers) {
			return true
		}
	}
	return false
}
