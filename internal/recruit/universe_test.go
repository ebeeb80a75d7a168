package recruit

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func testUniverse(t *testing.T) *Universe {
	t.Helper()
	u, err := NewUniverse(
		[]string{"Sniper", "Caster"},
		[]string{"Melee", "Ranged"},
		[]string{"HighRank", "Veteran"},
		[]string{"Burst", "Heal"},
	)
	require.NoError(t, err)
	return u
}

func TestNewUniverse(t *testing.T) {
	t.Run("bit assignment follows sequence order", func(t *testing.T) {
		u := testUniverse(t)
		require.Equal(t, []string{"Sniper", "Caster", "Melee", "Ranged", "HighRank", "Veteran", "Burst", "Heal"}, u.Terms())
		for i, term := range u.Terms() {
			bit, ok := u.Bit(term)
			require.True(t, ok)
			require.Equal(t, i, bit)
		}
	})

	t.Run("duplicate term across categories", func(t *testing.T) {
		_, err := NewUniverse([]string{"Sniper"}, []string{"Sniper"}, nil, nil)
		require.Error(t, err)
	})

	t.Run("empty term", func(t *testing.T) {
		_, err := NewUniverse([]string{" "}, nil, nil, nil)
		require.Error(t, err)
	})

	t.Run("no terms", func(t *testing.T) {
		_, err := NewUniverse(nil, nil, nil, nil)
		require.Error(t, err)
	})

	t.Run("more than 64 terms", func(t *testing.T) {
		tags := make([]string, 65)
		for i := range tags {
			tags[i] = fmt.Sprintf("tag%d", i)
		}
		_, err := NewUniverse(nil, nil, nil, tags)
		require.Error(t, err)
	})
}

func TestUniverseBitmask(t *testing.T) {
	u := testUniverse(t)

	t.Run("unrecognized terms are ignored", func(t *testing.T) {
		require.Equal(t, u.Bitmask([]string{"Sniper"}), u.Bitmask([]string{"Sniper", "Nonsense"}))
	})

	t.Run("round trip through TermsOf", func(t *testing.T) {
		mask := u.Bitmask([]string{"Heal", "Sniper", "Ranged"})
		require.Equal(t, []string{"Sniper", "Ranged", "Heal"}, u.TermsOf(mask))
	})

	t.Run("label joins in universe order", func(t *testing.T) {
		mask := u.Bitmask([]string{"Burst", "Sniper", "HighRank"})
		require.Equal(t, "Sniper+HighRank+Burst", u.Label(mask))
	})
}

func TestUniverseCategory(t *testing.T) {
	u := testUniverse(t)
	for term, want := range map[string]Category{
		"Sniper":  CategoryProfession,
		"Ranged":  CategoryPosition,
		"Veteran": CategoryRarity,
		"Heal":    CategoryTag,
	} {
		cat, ok := u.Category(term)
		require.True(t, ok)
		require.Equal(t, want, cat)
	}
	_, ok := u.Category("Nonsense")
	require.False(t, ok)
}
