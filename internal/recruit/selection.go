package recruit

import "slices"

// Selection is the normalized, classified form of a user's requested terms.
// Professions, positions, and rarities carry OR semantics within their
// category; tags carry AND semantics. Unrecognized tokens are dropped from
// matching but kept for diagnostics.
type Selection struct {
	Terms        []string
	Mask         uint64
	Professions  []string
	Positions    []string
	Rarities     []string
	Tags         []string
	Unrecognized []string
}

// NewSelection classifies normalized terms against the universe. Order within
// each category follows input order; duplicates are collapsed.
func NewSelection(u *Universe, terms []string) Selection {
	sel := Selection{Terms: terms}
	for _, term := range terms {
		cat, ok := u.Category(term)
		if !ok {
			if !slices.Contains(sel.Unrecognized, term) {
				sel.Unrecognized = append(sel.Unrecognized, term)
			}
			continue
		}
		switch cat {
		case CategoryProfession:
			sel.Professions = appendUnique(sel.Professions, term)
		case CategoryPosition:
			sel.Positions = appendUnique(sel.Positions, term)
		case CategoryRarity:
			sel.Rarities = appendUnique(sel.Rarities, term)
		case CategoryTag:
			sel.Tags = appendUnique(sel.Tags, term)
		}
	}
	sel.Mask = u.Bitmask(terms)
	return sel
}

// Empty reports whether the selection recognized no terms at all.
func (s Selection) Empty() bool {
	return s.Mask == 0
}

// Constraints summarizes the active filters, for explaining why a well-formed
// query produced no results.
type Constraints struct {
	Professions  []string `json:"professions,omitempty"`
	Positions    []string `json:"positions,omitempty"`
	Rarities     []string `json:"rarities,omitempty"`
	Tags         []string `json:"tags,omitempty"`
	Unrecognized []string `json:"unrecognized,omitempty"`
}

// Constraints returns the selection's active per-category constraints.
func (s Selection) Constraints() Constraints {
	return Constraints{
		Professions:  append([]string{}, s.Professions...),
		Positions:    append([]string{}, s.Positions...),
		Rarities:     append([]string{}, s.Rarities...),
		Tags:         append([]string{}, s.Tags...),
		Unrecognized: append([]string{}, s.Unrecognized...),
	}
}

func appendUnique(list []string, term string) []string {
	if slices.Contains(list, term) {
		return list
	}
	return append(list, term)
}
