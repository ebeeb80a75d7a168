package wiki

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
)

// SearchResult is one page hit from the MediaWiki search API.
type SearchResult struct {
	Title   string `json:"title"`
	Snippet string `json:"snippet,omitempty"`
	URL     string `json:"url"`
}

// SearchPages runs a full-text search against the wiki.
func (c *Client) SearchPages(ctx context.Context, query string, limit int) ([]SearchResult, error) {
	if limit <= 0 {
		limit = 10
	}
	params := url.Values{
		"action":   {"query"},
		"format":   {"json"},
		"list":     {"search"},
		"srsearch": {query},
		"srlimit":  {strconv.Itoa(limit)},
		"srprop":   {"title|snippet"},
	}
	body, err := c.get(ctx, "/api.php", params)
	if err != nil {
		return nil, err
	}

	var payload struct {
		Query struct {
			Search []struct {
				Title   string `json:"title"`
				Snippet string `json:"snippet"`
			} `json:"search"`
		} `json:"query"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("decoding search response: %w", err)
	}

	results := make([]SearchResult, 0, len(payload.Query.Search))
	for _, item := range payload.Query.Search {
		results = append(results, SearchResult{
			Title:   item.Title,
			Snippet: item.Snippet,
			URL:     c.PageURL(item.Title),
		})
	}
	return results, nil
}
