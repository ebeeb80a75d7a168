package render

import (
	"fmt"
	"strings"

	"github.com/TonybotNi/doctah-mcp/internal/wiki"
)

// skipTOCSections are page chapters with no query value.
var skipTOCSections = []string{"注释与链接", "干员模型", "敌人模型"}

// Page renders a parsed wiki page. When the report was built with a section
// filter, the basic info and table of contents are omitted and only the
// requested sections appear.
func Page(report *wiki.PageReport, filtered bool) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", report.Title)

	if !filtered {
		if len(report.BasicInfo) > 0 {
			b.WriteString("## 📋 基本信息\n")
			for _, f := range report.BasicInfo {
				fmt.Fprintf(&b, "- **%s**: %s\n", f.Key, f.Value)
			}
			b.WriteString("\n")
		}
		if len(report.TOC) > 0 {
			b.WriteString("## 📚 页面目录\n")
			for _, entry := range report.TOC {
				if containsAny(entry.Title, skipTOCSections) {
					continue
				}
				indent := strings.Repeat("  ", max(entry.Level-1, 0))
				fmt.Fprintf(&b, "%s- %s\n", indent, entry.Title)
			}
			b.WriteString("\n")
		}
	}

	for _, section := range report.Sections {
		if section.Content == "" {
			continue
		}
		fmt.Fprintf(&b, "## 📋 %s\n%s\n\n", section.Title, section.Content)
	}

	fmt.Fprintf(&b, "---\n📍 **页面链接**: %s\n", report.URL)
	return b.String()
}

// PageNotFound explains a failed page lookup with follow-up suggestions.
func PageNotFound(kind wiki.PageKind, name, indexURL string) string {
	label, index := "干员", "干员一览"
	if kind == wiki.KindEnemy {
		label, index = "敌人", "敌人一览"
	}
	var b strings.Builder
	fmt.Fprintf(&b, "# ❌ %s查询失败\n\n", label)
	fmt.Fprintf(&b, "- **查询名称**: %s\n", name)
	fmt.Fprintf(&b, "- **状态**: 未找到对应页面\n\n")
	fmt.Fprintf(&b, "## 🎯 建议操作\n")
	fmt.Fprintf(&b, "1. 尝试更精确的%s名称\n", label)
	fmt.Fprintf(&b, "2. 查看 [PRTS.wiki %s](%s) 确认%s名称\n", index, indexURL, label)
	return b.String()
}

// WrongKind warns that a lookup resolved to a page of the other kind.
func WrongKind(got wiki.PageKind, name, pageURL string) string {
	if got == wiki.KindEnemy {
		return fmt.Sprintf("# ⚠️ 发现敌人页面\n\n- **查询名称**: %s\n- 该页面是敌人页面，请改用敌人查询。\n- 链接: %s\n", name, pageURL)
	}
	return fmt.Sprintf("# ⚠️ 发现干员页面\n\n- **查询名称**: %s\n- 该页面是干员页面，请改用干员查询。\n- 链接: %s\n", name, pageURL)
}

// SearchList renders a verified name list from a keyword search.
func SearchList(kind wiki.PageKind, keyword string, names []string, totalHits int, baseURL string) string {
	label, index := "干员", "干员一览"
	if kind == wiki.KindEnemy {
		label, index = "敌人", "敌人一览"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# 🔍 %s搜索结果\n\n", label)
	b.WriteString("## 📊 查询信息\n")
	fmt.Fprintf(&b, "- **搜索关键词**: %s\n", keyword)
	fmt.Fprintf(&b, "- **找到%s数量**: %d\n", label, len(names))
	fmt.Fprintf(&b, "- **搜索结果总数**: %d\n\n", totalHits)
	fmt.Fprintf(&b, "## 📋 %s列表\n", label)
	for i, name := range names {
		fmt.Fprintf(&b, "%2d. **%s**\n", i+1, name)
	}
	fmt.Fprintf(&b, "\n## 🔗 相关链接\n- [PRTS.wiki %s](%s/w/%s)\n- [PRTS.wiki 首页](%s)\n", index, baseURL, index, baseURL)
	return b.String()
}

// Error renders a tool failure.
func Error(title string, err error) string {
	return fmt.Sprintf("# ❌ %s\n\n- **错误信息**: %v\n", title, err)
}

func containsAny(s string, markers []string) bool {
	for _, m := range markers {
		if strings.Contains(s, m) {
			return true
		}
	}
	return false
}
