package wiki

import (
	"context"

	"golang.org/x/sync/errgroup"
)

const maxVerifyConcurrency = 15

// Verification records whether a search hit resolves to a page of the
// expected kind.
type Verification struct {
	Result SearchResult
	Kind   PageKind
	Err    error
}

// VerifyPages fetches each result's page concurrently and classifies it.
// Individual fetch failures are recorded per result rather than aborting the
// batch; only context cancellation stops early.
func (c *Client) VerifyPages(ctx context.Context, results []SearchResult) []Verification {
	verified := make([]Verification, len(results))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(maxVerifyConcurrency)
	for i, res := range results {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				verified[i] = Verification{Result: res, Err: err}
				return err
			}
			doc, err := c.fetchDocument(ctx, res.Title)
			if err != nil {
				verified[i] = Verification{Result: res, Err: err}
				return nil
			}
			kind := KindOperator
			if isEnemyDocument(doc) {
				kind = KindEnemy
			}
			verified[i] = Verification{Result: res, Kind: kind}
			return nil
		})
	}
	_ = g.Wait()
	return verified
}

// FilterByKind keeps the results whose pages verified as the wanted kind.
func FilterByKind(verified []Verification, want PageKind) []SearchResult {
	var out []SearchResult
	for _, v := range verified {
		if v.Err == nil && v.Kind == want {
			out = append(out, v.Result)
		}
	}
	return out
}
