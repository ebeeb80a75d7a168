package wiki

import "strings"

// subPageSuffixes are the per-operator subpages the wiki splits off the main
// article.
var subPageSuffixes = []string{"/干员密录", "/语音记录", "/干员模型", "/悖论模拟", "/spine"}

var indexMarkers = []string{"分类:", "Category:", "模板:", "Template:", "一览", "列表"}

// IsSubPage reports whether a title names an article subpage.
func IsSubPage(title string) bool {
	for _, suffix := range subPageSuffixes {
		if strings.Contains(title, suffix) {
			return true
		}
	}
	return false
}

// IsIndexPage reports whether a title names a category or listing page.
func IsIndexPage(title string) bool {
	for _, marker := range indexMarkers {
		if strings.Contains(title, marker) {
			return true
		}
	}
	return false
}

// ResolveTitle picks the search hit most likely meant by the query: an exact
// title wins, then a title carrying a disambiguator suffix such as
// 阿米娅（医疗）, then the first non-subpage result. Empty when results is.
func ResolveTitle(results []SearchResult, name string) string {
	if len(results) == 0 {
		return ""
	}
	for _, res := range results {
		if res.Title == name {
			return res.Title
		}
	}
	for _, res := range results {
		if IsSubPage(res.Title) {
			continue
		}
		if strings.HasPrefix(res.Title, name+"（") {
			return res.Title
		}
	}
	for _, res := range results {
		if !IsSubPage(res.Title) && !IsIndexPage(res.Title) {
			return res.Title
		}
	}
	return results[0].Title
}
