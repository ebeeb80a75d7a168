package recruit

import (
	"errors"
	"fmt"
	"slices"
)

// ErrEmptyQuery is returned when a query contains no recognized recruit
// terms. It is reported before any catalog access.
var ErrEmptyQuery = errors.New("no recognized recruit terms in query")

// DefaultSuggestLimit is the group count returned by MatchSuggest when the
// caller does not supply one.
const DefaultSuggestLimit = 10

// Engine evaluates recruit queries against an immutable entity snapshot. It
// holds only the universe, the normalizer, and the tier policy; the snapshot
// is threaded through every call, so the engine is safe to share.
type Engine struct {
	universe *Universe
	norm     *Normalizer
	tiers    []TierRule
}

// NewEngine validates the vocabulary and builds the engine. Tier rules must
// be ordered highest star first, and every tier term must be a universe term.
func NewEngine(voc Vocabulary) (*Engine, error) {
	u, err := NewUniverse(voc.Professions, voc.Positions, voc.Rarities, voc.Tags)
	if err != nil {
		return nil, fmt.Errorf("building universe: %w", err)
	}
	if len(voc.Tiers) == 0 {
		return nil, fmt.Errorf("at least one tier rule is required")
	}
	for i, rule := range voc.Tiers {
		if _, ok := u.Bit(rule.Term); !ok {
			return nil, fmt.Errorf("tier term not in universe: %s", rule.Term)
		}
		if i > 0 && rule.Stars >= voc.Tiers[i-1].Stars {
			return nil, fmt.Errorf("tier rules must be ordered by descending stars")
		}
	}
	return &Engine{universe: u, norm: NewNormalizer(voc), tiers: voc.Tiers}, nil
}

// Universe exposes the engine's term universe.
func (e *Engine) Universe() *Universe {
	return e.universe
}

// Tiers returns the tier policy, highest star first.
func (e *Engine) Tiers() []TierRule {
	return append([]TierRule{}, e.tiers...)
}

// Select normalizes and classifies a query string. A query with no tokens, or
// whose tokens match nothing in the universe, yields ErrEmptyQuery.
func (e *Engine) Select(query string) (Selection, error) {
	terms := e.norm.Normalize(query)
	if len(terms) == 0 {
		return Selection{}, ErrEmptyQuery
	}
	sel := NewSelection(e.universe, terms)
	if sel.Empty() {
		return Selection{}, fmt.Errorf("%w: %v", ErrEmptyQuery, terms)
	}
	return sel, nil
}

// Match is one ANY-mode hit: the entity plus the requested tags it carries.
type Match struct {
	Entity      Entity   `json:"entity"`
	Tier        string   `json:"rarity_tag,omitempty"`
	MatchedTags []string `json:"matched_tags"`
}

// MatchAny applies OR semantics within the profession, position, and rarity
// categories and AND semantics across requested tags. Categories with no
// requested terms impose no constraint. Results are sorted by stars
// descending, profession, then name, and truncated to limit when limit > 0.
func (e *Engine) MatchAny(snapshot []Entity, sel Selection, limit int) []Match {
	matches := make([]Match, 0, len(snapshot))
	for _, entity := range snapshot {
		tier := TierFor(entity.Stars, e.tiers)
		if len(sel.Professions) > 0 && !slices.Contains(sel.Professions, entity.Profession) {
			continue
		}
		if len(sel.Positions) > 0 && !slices.Contains(sel.Positions, entity.Position) {
			continue
		}
		if len(sel.Rarities) > 0 && !slices.Contains(sel.Rarities, tier) {
			continue
		}
		hit := make([]string, 0, len(sel.Tags))
		for _, tag := range sel.Tags {
			if slices.Contains(entity.Tags, tag) {
				hit = append(hit, tag)
			}
		}
		if len(hit) < len(sel.Tags) {
			continue
		}
		matches = append(matches, Match{Entity: entity, Tier: tier, MatchedTags: hit})
	}
	sortMatches(matches)
	if limit > 0 && len(matches) > limit {
		matches = matches[:limit]
	}
	return matches
}

// MatchAll keeps only entities whose attribute bitmask is a superset of every
// requested term, with no per-category relaxation. Two requested terms from
// one single-valued category make the result necessarily empty; that is a
// valid outcome, not an error.
func (e *Engine) MatchAll(snapshot []Entity, sel Selection) []Entity {
	need := sel.Mask
	hits := make([]Entity, 0, len(snapshot))
	for _, entity := range snapshot {
		attrs := Encode(e.universe, entity, e.tiers)
		if attrs.Mask&need == need {
			hits = append(hits, entity)
		}
	}
	sortEntities(hits)
	return hits
}

// Group is one sub-combination of the requested terms and the entities it
// yields. An entity appears in every group whose key is a subset of its own
// attribute bitmask.
type Group struct {
	Key      uint64   `json:"-"`
	Label    string   `json:"label"`
	AvgStars float64  `json:"avg_stars"`
	Members  []Entity `json:"members"`
}

// MatchGrouped enumerates, for every entity, each non-empty subset of its
// attribute bitmask and assigns the entity to the subsets contained in the
// selection. Entities at the top tier only join groups whose key includes the
// top tier bit, so a top-rarity operator never hides under a combination that
// says nothing about rarity. Groups are sorted by average stars descending,
// member count descending, then key.
func (e *Engine) MatchGrouped(snapshot []Entity, sel Selection) []Group {
	topBit, topTracked := e.universe.Bit(e.tiers[0].Term)
	byKey := make(map[uint64]*Group)
	for _, entity := range snapshot {
		attrs := Encode(e.universe, entity, e.tiers)
		topTier := entity.Stars == e.tiers[0].Stars
		for sub := attrs.Mask; sub != 0; sub = (sub - 1) & attrs.Mask {
			if sub|sel.Mask != sel.Mask {
				continue
			}
			if topTier && topTracked && sub&(1<<topBit) == 0 {
				continue
			}
			g, ok := byKey[sub]
			if !ok {
				g = &Group{Key: sub, Label: e.universe.Label(sub)}
				byKey[sub] = g
			}
			g.Members = append(g.Members, entity)
		}
	}

	groups := make([]Group, 0, len(byKey))
	for _, g := range byKey {
		var total int
		for _, m := range g.Members {
			total += m.Stars
		}
		g.AvgStars = float64(total) / float64(len(g.Members))
		sortEntities(g.Members)
		groups = append(groups, *g)
	}
	sortGroups(groups)
	return groups
}

// MatchSuggest builds the same groups as MatchGrouped and keeps only the best
// limit of them, surfacing the sub-combinations most worth locking in.
func (e *Engine) MatchSuggest(snapshot []Entity, sel Selection, limit int) []Group {
	if limit <= 0 {
		limit = DefaultSuggestLimit
	}
	groups := e.MatchGrouped(snapshot, sel)
	if len(groups) > limit {
		groups = groups[:limit]
	}
	return groups
}
