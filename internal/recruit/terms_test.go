package recruit

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	n := NewNormalizer(DefaultVocabulary())

	t.Run("delimiter variants are equivalent", func(t *testing.T) {
		want := []string{"近卫", "输出", "治疗"}
		for _, input := range []string{
			"近卫,输出,治疗",
			"近卫，输出，治疗",
			"近卫、输出、治疗",
			"近卫|输出|治疗",
			"近卫 输出 治疗",
			" 近卫 ,, 输出 、 治疗 ",
		} {
			require.Equal(t, want, n.Normalize(input), "input %q", input)
		}
	})

	t.Run("empty input yields empty list", func(t *testing.T) {
		require.Empty(t, n.Normalize(""))
		require.Empty(t, n.Normalize(" ，、| "))
	})

	t.Run("aliases map to canonical terms", func(t *testing.T) {
		require.Equal(t, []string{"高级资深干员", "近战位", "费用回复"}, n.Normalize("高资, 近战, 费用回收"))
	})

	t.Run("rarity terms survive aliasing", func(t *testing.T) {
		require.Equal(t, []string{"资深干员", "高级资深干员"}, n.Normalize("资深干员, 高级资深干员"))
	})

	t.Run("profession suffix fallback", func(t *testing.T) {
		require.Equal(t, []string{"狙击"}, n.Normalize("狙击干员"))
	})

	t.Run("suffix kept when prefix is not a profession", func(t *testing.T) {
		require.Equal(t, []string{"传说干员"}, n.Normalize("传说干员"))
	})

	t.Run("unrecognized tokens pass through", func(t *testing.T) {
		require.Equal(t, []string{"不存在的词条", "输出"}, n.Normalize("不存在的词条, 输出"))
	})

	t.Run("full-width input is folded", func(t *testing.T) {
		require.Equal(t, []string{"近卫", "输出"}, n.Normalize("近卫｜输出"))
	})
}
