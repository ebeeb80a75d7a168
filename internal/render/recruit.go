// Package render assembles the markdown reports returned to MCP clients and
// printed by the CLI. It is presentation only; all ordering comes from the
// engine.
package render

import (
	"fmt"
	"strings"

	"github.com/TonybotNi/doctah-mcp/internal/recruit"
)

// RecruitAny renders ANY-mode results grouped by star rank, with per-operator
// match reasons. An empty result renders the constraint diagnostics instead.
func RecruitAny(sel recruit.Selection, matches []recruit.Match) string {
	if len(matches) == 0 {
		return emptyRecruitReport("公招计算", sel)
	}

	var b strings.Builder
	b.WriteString("# 🎯 公招计算结果\n\n")
	fmt.Fprintf(&b, "- **词条**: %s\n", strings.Join(sel.Terms, ", "))
	fmt.Fprintf(&b, "- **匹配干员**: %d\n\n", len(matches))

	for i := 0; i < len(matches); {
		stars := matches[i].Entity.Stars
		fmt.Fprintf(&b, "## %d★\n", stars)
		for ; i < len(matches) && matches[i].Entity.Stars == stars; i++ {
			m := matches[i]
			meta := joinNonEmpty(" / ", m.Entity.Profession, m.Entity.Position, strings.Join(m.Entity.Tags, " "))
			fmt.Fprintf(&b, "- **%s**（%s）\n", m.Entity.Name, meta)
			if reason := matchReason(m); reason != "" {
				fmt.Fprintf(&b, "  匹配依据: %s\n", reason)
			}
			fmt.Fprintf(&b, "  链接: %s\n", m.Entity.URL)
		}
		b.WriteString("\n")
	}

	b.WriteString("---\n数据来源: 公招计算 / cargoquery\n")
	return b.String()
}

// RecruitAll renders the strict all-terms result as a flat list.
func RecruitAll(sel recruit.Selection, hits []recruit.Entity) string {
	if len(hits) == 0 {
		return emptyRecruitReport("公招计算（严格）", sel)
	}

	var b strings.Builder
	b.WriteString("# 🎯 公招计算结果（严格使用全部词条）\n\n")
	fmt.Fprintf(&b, "- **词条**: %s\n", strings.Join(sel.Terms, ", "))
	fmt.Fprintf(&b, "- **匹配干员**: %d\n\n", len(hits))
	for _, e := range hits {
		meta := joinNonEmpty(" / ", fmt.Sprintf("%d★", e.Stars), e.Profession, e.Position)
		fmt.Fprintf(&b, "- **%s**（%s）\n  链接: %s\n", e.Name, meta, e.URL)
	}
	b.WriteString("\n---\n数据来源: 公招计算 / cargoquery\n")
	return b.String()
}

// RecruitGrouped renders one section per tag sub-combination.
func RecruitGrouped(sel recruit.Selection, groups []recruit.Group) string {
	return groupReport("# 🎯 公招计算结果（分组）", "公招计算（分组）", sel, groups)
}

// RecruitSuggest renders the truncated best-groups report.
func RecruitSuggest(sel recruit.Selection, groups []recruit.Group) string {
	return groupReport("# 🎯 公招计算建议组合", "公招计算（建议组合）", sel, groups)
}

func groupReport(header, emptyTitle string, sel recruit.Selection, groups []recruit.Group) string {
	if len(groups) == 0 {
		return emptyRecruitReport(emptyTitle, sel)
	}

	var b strings.Builder
	b.WriteString(header)
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "- **词条**: %s\n", strings.Join(sel.Terms, ", "))
	fmt.Fprintf(&b, "- **组合数**: %d\n\n", len(groups))
	for _, g := range groups {
		fmt.Fprintf(&b, "## %s  — 平均星级≈%.2f，人数=%d\n", g.Label, g.AvgStars, len(g.Members))
		for _, e := range g.Members {
			meta := joinNonEmpty(" / ", fmt.Sprintf("%d★", e.Stars), e.Profession, e.Position)
			fmt.Fprintf(&b, "- **%s**（%s）\n  链接: %s\n", e.Name, meta, e.URL)
		}
		b.WriteString("\n")
	}
	b.WriteString("---\n数据来源: 公招计算 / cargoquery\n")
	return b.String()
}

// emptyRecruitReport explains a zero-hit result with the active constraints.
func emptyRecruitReport(title string, sel recruit.Selection) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# 🔍 %s\n\n", title)
	b.WriteString("- **匹配数量**: 0\n")
	fmt.Fprintf(&b, "- **词条**: %s\n", strings.Join(sel.Terms, ", "))
	fmt.Fprintf(&b, "- **筛选条件**: %s\n", constraintSummary(sel.Constraints()))
	b.WriteString("- 可能原因：选择了互斥职业，词缀组合过于苛刻，或词条拼写与别名不一致。\n")
	return b.String()
}

func constraintSummary(c recruit.Constraints) string {
	var parts []string
	if len(c.Professions) > 0 {
		parts = append(parts, "职业∈"+strings.Join(c.Professions, ","))
	}
	if len(c.Positions) > 0 {
		parts = append(parts, "位置∈"+strings.Join(c.Positions, ","))
	}
	if len(c.Rarities) > 0 {
		parts = append(parts, "资历∈"+strings.Join(c.Rarities, ","))
	}
	if len(c.Tags) > 0 {
		parts = append(parts, "词缀⊇"+strings.Join(c.Tags, ","))
	}
	if len(c.Unrecognized) > 0 {
		parts = append(parts, "未识别="+strings.Join(c.Unrecognized, ","))
	}
	if len(parts) == 0 {
		return "无"
	}
	return strings.Join(parts, "；")
}

func matchReason(m recruit.Match) string {
	var parts []string
	if m.Entity.Profession != "" {
		parts = append(parts, "职业="+m.Entity.Profession)
	}
	if m.Entity.Position != "" {
		parts = append(parts, "位置="+m.Entity.Position)
	}
	if m.Tier != "" {
		parts = append(parts, "资历="+m.Tier)
	}
	if len(m.MatchedTags) > 0 {
		parts = append(parts, "词缀命中="+strings.Join(m.MatchedTags, ","))
	}
	return strings.Join(parts, "；")
}

func joinNonEmpty(sep string, parts ...string) string {
	kept := parts[:0]
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, sep)
}
