package recruit

import (
	"strings"
	"unicode"

	"golang.org/x/text/width"
)

// Normalizer canonicalizes free-form recruit term input. It never rejects a
// token: anything it cannot map passes through unchanged and is inert in
// later stages.
type Normalizer struct {
	aliases     map[string]string
	suffix      string
	professions map[string]struct{}
}

// NewNormalizer builds a normalizer from the vocabulary's alias table,
// profession suffix, and profession list.
func NewNormalizer(voc Vocabulary) *Normalizer {
	n := &Normalizer{
		aliases:     make(map[string]string, len(voc.Aliases)),
		suffix:      voc.ProfessionSuffix,
		professions: make(map[string]struct{}, len(voc.Professions)),
	}
	for alias, canonical := range voc.Aliases {
		n.aliases[alias] = canonical
	}
	for _, p := range voc.Professions {
		n.professions[p] = struct{}{}
	}
	return n
}

func isTermDelimiter(r rune) bool {
	switch r {
	case ',', '，', '、', '|':
		return true
	}
	return unicode.IsSpace(r)
}

// Normalize splits input on comma variants, pipes, and whitespace, drops
// empty tokens, and canonicalizes each token: full-width folding, alias
// substitution, then a fallback that strips the profession suffix when the
// prefix is a recognized profession. Token order is preserved.
func (n *Normalizer) Normalize(input string) []string {
	folded := width.Fold.String(input)
	tokens := strings.FieldsFunc(folded, isTermDelimiter)
	out := make([]string, 0, len(tokens))
	for _, token := range tokens {
		term := strings.TrimSpace(token)
		if term == "" {
			continue
		}
		if canonical, ok := n.aliases[term]; ok {
			term = canonical
		} else if n.suffix != "" && strings.HasSuffix(term, n.suffix) {
			prefix := strings.TrimSuffix(term, n.suffix)
			if _, isProfession := n.professions[prefix]; isProfession {
				term = prefix
			}
		}
		out = append(out, term)
	}
	return out
}
