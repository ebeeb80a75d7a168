package recruit

import (
	"fmt"
	"math/bits"
	"strings"
)

// Category partitions universe terms. Profession, position, and rarity are
// single-valued per operator; tags are free.
type Category int

const (
	CategoryProfession Category = iota
	CategoryPosition
	CategoryRarity
	CategoryTag
)

func (c Category) String() string {
	switch c {
	case CategoryProfession:
		return "profession"
	case CategoryPosition:
		return "position"
	case CategoryRarity:
		return "rarity"
	case CategoryTag:
		return "tag"
	default:
		return "unknown"
	}
}

// Universe is the ordered vocabulary of recruit terms. Each term owns one bit
// position, assigned by its index in the sequence: professions first, then
// positions, rarity terms, and tags. The sequence is immutable after
// construction, so bitmasks built at different times stay comparable.
type Universe struct {
	terms []string
	bits  map[string]int
	cats  []Category
}

// NewUniverse builds a universe from the four category slices, preserving
// their order. Terms must be unique across all categories and fit in 64 bits.
func NewUniverse(professions, positions, rarities, tags []string) (*Universe, error) {
	u := &Universe{bits: make(map[string]int)}
	for _, group := range []struct {
		cat   Category
		terms []string
	}{
		{CategoryProfession, professions},
		{CategoryPosition, positions},
		{CategoryRarity, rarities},
		{CategoryTag, tags},
	} {
		for _, term := range group.terms {
			if strings.TrimSpace(term) == "" {
				return nil, fmt.Errorf("empty %s term", group.cat)
			}
			if _, exists := u.bits[term]; exists {
				return nil, fmt.Errorf("duplicate term: %s", term)
			}
			u.bits[term] = len(u.terms)
			u.terms = append(u.terms, term)
			u.cats = append(u.cats, group.cat)
		}
	}
	if len(u.terms) == 0 {
		return nil, fmt.Errorf("universe has no terms")
	}
	if len(u.terms) > 64 {
		return nil, fmt.Errorf("universe has %d terms, at most 64 supported", len(u.terms))
	}
	return u, nil
}

// Terms returns the full term sequence in bit order.
func (u *Universe) Terms() []string {
	return append([]string{}, u.terms...)
}

// Size returns the number of terms in the universe.
func (u *Universe) Size() int {
	return len(u.terms)
}

// Bit returns the bit index of a term, if recognized.
func (u *Universe) Bit(term string) (int, bool) {
	i, ok := u.bits[term]
	return i, ok
}

// Category returns the category of a recognized term.
func (u *Universe) Category(term string) (Category, bool) {
	i, ok := u.bits[term]
	if !ok {
		return 0, false
	}
	return u.cats[i], true
}

// Bitmask ORs the bits of all recognized terms. Unrecognized terms are
// silently ignored.
func (u *Universe) Bitmask(terms []string) uint64 {
	var mask uint64
	for _, term := range terms {
		if i, ok := u.bits[term]; ok {
			mask |= 1 << i
		}
	}
	return mask
}

// TermsOf expands a bitmask into its terms, in universe order.
func (u *Universe) TermsOf(mask uint64) []string {
	out := make([]string, 0, bits.OnesCount64(mask))
	for mask != 0 {
		i := bits.TrailingZeros64(mask)
		if i < len(u.terms) {
			out = append(out, u.terms[i])
		}
		mask &^= 1 << i
	}
	return out
}

// Label renders a bitmask as its terms joined with "+", in universe order.
// The label is deterministic given the same universe.
func (u *Universe) Label(mask uint64) string {
	return strings.Join(u.TermsOf(mask), "+")
}
