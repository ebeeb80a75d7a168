package recruit

import (
	"encoding/json"
	"math/bits"
	"testing"

	"github.com/stretchr/testify/require"
)

func testEngine(t *testing.T) *Engine {
	t.Helper()
	eng, err := NewEngine(Vocabulary{
		Professions: []string{"Sniper", "Caster"},
		Positions:   []string{"Melee", "Ranged"},
		Rarities:    []string{"HighRank", "Veteran"},
		Tags:        []string{"Burst", "Heal"},
		Tiers:       testTiers,
	})
	require.NoError(t, err)
	return eng
}

func testSnapshot() []Entity {
	return []Entity{
		{Name: "A", Profession: "Sniper", Position: "Ranged", Stars: 6, Tags: []string{"Burst"}},
		{Name: "B", Profession: "Caster", Position: "Ranged", Stars: 5, Tags: []string{"Heal"}},
	}
}

func mustSelect(t *testing.T, eng *Engine, query string) Selection {
	t.Helper()
	sel, err := eng.Select(query)
	require.NoError(t, err)
	return sel
}

func TestNewEngine(t *testing.T) {
	t.Run("tier term must be in universe", func(t *testing.T) {
		voc := DefaultVocabulary()
		voc.Tiers = []TierRule{{Stars: 6, Term: "missing"}}
		_, err := NewEngine(voc)
		require.Error(t, err)
	})

	t.Run("tier rules must descend", func(t *testing.T) {
		voc := DefaultVocabulary()
		voc.Tiers = []TierRule{{Stars: 5, Term: "资深干员"}, {Stars: 6, Term: "高级资深干员"}}
		_, err := NewEngine(voc)
		require.Error(t, err)
	})

	t.Run("tier rules required", func(t *testing.T) {
		voc := DefaultVocabulary()
		voc.Tiers = nil
		_, err := NewEngine(voc)
		require.Error(t, err)
	})
}

func TestSelect(t *testing.T) {
	eng := testEngine(t)

	t.Run("empty query", func(t *testing.T) {
		_, err := eng.Select("")
		require.ErrorIs(t, err, ErrEmptyQuery)
	})

	t.Run("nothing recognized", func(t *testing.T) {
		_, err := eng.Select("Nonsense, MoreNonsense")
		require.ErrorIs(t, err, ErrEmptyQuery)
	})

	t.Run("classification by category", func(t *testing.T) {
		sel := mustSelect(t, eng, "Sniper, Ranged, HighRank, Burst, Mystery")
		require.Equal(t, []string{"Sniper"}, sel.Professions)
		require.Equal(t, []string{"Ranged"}, sel.Positions)
		require.Equal(t, []string{"HighRank"}, sel.Rarities)
		require.Equal(t, []string{"Burst"}, sel.Tags)
		require.Equal(t, []string{"Mystery"}, sel.Unrecognized)
		require.Equal(t, eng.Universe().Bitmask([]string{"Sniper", "Ranged", "HighRank", "Burst"}), sel.Mask)
	})

	t.Run("alias and canonical form select identical bitmasks", func(t *testing.T) {
		def, err := NewEngine(DefaultVocabulary())
		require.NoError(t, err)
		a := mustSelect(t, def, "高资, 近战, 费用回收")
		b := mustSelect(t, def, "高级资深干员、近战位、费用回复")
		require.Equal(t, a.Mask, b.Mask)
	})
}

func TestMatchAny(t *testing.T) {
	eng := testEngine(t)
	snapshot := testSnapshot()

	t.Run("category OR excludes mismatched professions", func(t *testing.T) {
		matches := eng.MatchAny(snapshot, mustSelect(t, eng, "Sniper, Ranged"), 0)
		require.Len(t, matches, 1)
		require.Equal(t, "A", matches[0].Entity.Name)
		require.Empty(t, matches[0].MatchedTags)
		require.Equal(t, "HighRank", matches[0].Tier)
	})

	t.Run("inactive categories pass everything", func(t *testing.T) {
		matches := eng.MatchAny(snapshot, mustSelect(t, eng, "Ranged"), 0)
		require.Len(t, matches, 2)
		require.Equal(t, "A", matches[0].Entity.Name)
		require.Equal(t, "B", matches[1].Entity.Name)
	})

	t.Run("tags are AND across requests", func(t *testing.T) {
		snapshot := append(testSnapshot(), Entity{
			Name: "C", Profession: "Sniper", Position: "Ranged", Stars: 4, Tags: []string{"Burst", "Heal"},
		})
		matches := eng.MatchAny(snapshot, mustSelect(t, eng, "Burst, Heal"), 0)
		require.Len(t, matches, 1)
		require.Equal(t, "C", matches[0].Entity.Name)
		require.Equal(t, []string{"Burst", "Heal"}, matches[0].MatchedTags)
	})

	t.Run("rarity constraint matches derived tier", func(t *testing.T) {
		matches := eng.MatchAny(snapshot, mustSelect(t, eng, "Veteran"), 0)
		require.Len(t, matches, 1)
		require.Equal(t, "B", matches[0].Entity.Name)
	})

	t.Run("limit truncates after sorting", func(t *testing.T) {
		matches := eng.MatchAny(snapshot, mustSelect(t, eng, "Ranged"), 1)
		require.Len(t, matches, 1)
		require.Equal(t, "A", matches[0].Entity.Name)
	})
}

func TestMatchAll(t *testing.T) {
	eng := testEngine(t)
	snapshot := testSnapshot()

	t.Run("single shared term matches both", func(t *testing.T) {
		hits := eng.MatchAll(snapshot, mustSelect(t, eng, "Ranged"))
		require.Len(t, hits, 2)
		require.Equal(t, "A", hits[0].Name)
		require.Equal(t, "B", hits[1].Name)
	})

	t.Run("strict containment", func(t *testing.T) {
		hits := eng.MatchAll(snapshot, mustSelect(t, eng, "Sniper, HighRank"))
		require.Len(t, hits, 1)
		require.Equal(t, "A", hits[0].Name)
	})

	t.Run("containment holds for every hit and fails for every miss", func(t *testing.T) {
		sel := mustSelect(t, eng, "Ranged, Heal")
		hits := eng.MatchAll(snapshot, sel)
		inResult := make(map[string]bool)
		for _, h := range hits {
			attrs := Encode(eng.Universe(), h, eng.Tiers())
			require.Equal(t, sel.Mask, attrs.Mask&sel.Mask)
			inResult[h.Name] = true
		}
		for _, e := range snapshot {
			if inResult[e.Name] {
				continue
			}
			attrs := Encode(eng.Universe(), e, eng.Tiers())
			require.NotEqual(t, sel.Mask, attrs.Mask&sel.Mask)
		}
	})

	t.Run("mutually exclusive category terms yield empty result", func(t *testing.T) {
		hits := eng.MatchAll(snapshot, mustSelect(t, eng, "Sniper, Caster"))
		require.Empty(t, hits)
	})
}

func TestMatchGrouped(t *testing.T) {
	eng := testEngine(t)
	snapshot := testSnapshot()

	t.Run("group keys are subsets of the selection", func(t *testing.T) {
		sel := mustSelect(t, eng, "Sniper, Ranged, HighRank, Burst, Heal")
		for _, g := range eng.MatchGrouped(snapshot, sel) {
			require.Equal(t, sel.Mask, g.Key|sel.Mask)
			require.NotZero(t, g.Key)
		}
	})

	t.Run("top tier entity requires the top tier bit", func(t *testing.T) {
		highBit, ok := eng.Universe().Bit("HighRank")
		require.True(t, ok)

		sel := mustSelect(t, eng, "Sniper, Ranged, HighRank, Burst")
		sawA := false
		for _, g := range eng.MatchGrouped(snapshot, sel) {
			for _, m := range g.Members {
				if m.Name == "A" {
					sawA = true
					require.NotZero(t, g.Key&(1<<highBit), "group %q holds a 6-star without the top tier term", g.Label)
				}
			}
		}
		require.True(t, sawA)
	})

	t.Run("top tier entity absent when its tier is not selected", func(t *testing.T) {
		sel := mustSelect(t, eng, "Sniper, Ranged, Burst")
		for _, g := range eng.MatchGrouped(snapshot, sel) {
			for _, m := range g.Members {
				require.NotEqual(t, "A", m.Name)
			}
		}
	})

	t.Run("subset count is 2^p-1 for a non-top entity", func(t *testing.T) {
		one := []Entity{{Name: "B", Profession: "Caster", Position: "Ranged", Stars: 5, Tags: []string{"Heal"}}}
		sel := mustSelect(t, eng, "Caster, Ranged, Veteran, Heal")
		attrs := Encode(eng.Universe(), one[0], eng.Tiers())
		groups := eng.MatchGrouped(one, sel)
		require.Len(t, groups, 1<<bits.OnesCount64(attrs.Mask)-1)
	})

	t.Run("top entity joins only subsets holding the top bit", func(t *testing.T) {
		one := []Entity{{Name: "A", Profession: "Sniper", Position: "Ranged", Stars: 6, Tags: []string{"Burst"}}}
		sel := mustSelect(t, eng, "Sniper, Ranged, HighRank, Burst")
		attrs := Encode(eng.Universe(), one[0], eng.Tiers())
		groups := eng.MatchGrouped(one, sel)
		require.Len(t, groups, 1<<(bits.OnesCount64(attrs.Mask)-1))
	})

	t.Run("groups sort by average stars then size", func(t *testing.T) {
		sel := mustSelect(t, eng, "Sniper, Caster, Ranged, HighRank, Veteran, Burst, Heal")
		groups := eng.MatchGrouped(snapshot, sel)
		require.NotEmpty(t, groups)
		for i := 1; i < len(groups); i++ {
			prev, cur := groups[i-1], groups[i]
			require.GreaterOrEqual(t, prev.AvgStars, cur.AvgStars)
			if prev.AvgStars == cur.AvgStars {
				require.GreaterOrEqual(t, len(prev.Members), len(cur.Members))
			}
		}
	})

	t.Run("identical queries produce identical output", func(t *testing.T) {
		sel := mustSelect(t, eng, "Sniper, Caster, Ranged, HighRank, Veteran, Burst, Heal")
		first, err := json.Marshal(eng.MatchGrouped(snapshot, sel))
		require.NoError(t, err)
		second, err := json.Marshal(eng.MatchGrouped(snapshot, sel))
		require.NoError(t, err)
		require.Equal(t, first, second)
	})
}

func TestMatchSuggest(t *testing.T) {
	eng := testEngine(t)
	snapshot := testSnapshot()
	sel := mustSelect(t, eng, "Sniper, Caster, Ranged, HighRank, Veteran, Burst, Heal")

	t.Run("keeps the best groups", func(t *testing.T) {
		all := eng.MatchGrouped(snapshot, sel)
		top := eng.MatchSuggest(snapshot, sel, 3)
		require.Len(t, top, 3)
		require.Equal(t, all[:3], top)
	})

	t.Run("default limit applies", func(t *testing.T) {
		top := eng.MatchSuggest(snapshot, sel, 0)
		require.LessOrEqual(t, len(top), DefaultSuggestLimit)
	})
}
