package wiki

import (
	"strings"

	"golang.org/x/net/html"
)

// DOM helpers over golang.org/x/net/html. MediaWiki markup is noisy; text
// extraction skips scripts, styles, and hidden spans.

func attrVal(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func isElement(n *html.Node, names ...string) bool {
	if n.Type != html.ElementNode {
		return false
	}
	for _, name := range names {
		if n.Data == name {
			return true
		}
	}
	return false
}

// walk visits n and its descendants until fn returns false.
func walk(n *html.Node, fn func(*html.Node) bool) bool {
	if !fn(n) {
		return false
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if !walk(c, fn) {
			return false
		}
	}
	return true
}

func findByID(root *html.Node, id string) *html.Node {
	var found *html.Node
	walk(root, func(n *html.Node) bool {
		if n.Type == html.ElementNode && attrVal(n, "id") == id {
			found = n
			return false
		}
		return true
	})
	return found
}

func findAll(root *html.Node, names ...string) []*html.Node {
	var out []*html.Node
	walk(root, func(n *html.Node) bool {
		if isElement(n, names...) {
			out = append(out, n)
		}
		return true
	})
	return out
}

func headingLevel(n *html.Node) int {
	if n.Type != html.ElementNode || len(n.Data) != 2 || n.Data[0] != 'h' {
		return 0
	}
	if n.Data[1] < '1' || n.Data[1] > '6' {
		return 0
	}
	return int(n.Data[1] - '0')
}

// nodeText flattens a subtree to space-separated text, dropping comments,
// scripts, styles, and display:none spans.
func nodeText(n *html.Node) string {
	var b strings.Builder
	var visit func(*html.Node)
	visit = func(c *html.Node) {
		switch c.Type {
		case html.CommentNode:
			return
		case html.TextNode:
			b.WriteString(c.Data)
			b.WriteByte(' ')
		case html.ElementNode:
			if c.Data == "script" || c.Data == "style" {
				return
			}
			if c.Data == "span" && strings.Contains(attrVal(c, "style"), "display:none") {
				return
			}
		}
		for child := c.FirstChild; child != nil; child = child.NextSibling {
			visit(child)
		}
	}
	visit(n)
	return strings.Join(strings.Fields(b.String()), " ")
}

// tableMarkdown renders a table as pipe-separated rows, skipping empty ones.
func tableMarkdown(table *html.Node) string {
	var lines []string
	for _, row := range findAll(table, "tr") {
		var cells []string
		hasContent := false
		for _, cell := range findAll(row, "th", "td") {
			text := nodeText(cell)
			if text != "" {
				hasContent = true
			}
			cells = append(cells, text)
		}
		if hasContent {
			lines = append(lines, strings.Join(cells, " | "))
		}
	}
	return strings.Join(lines, "\n")
}
