package recruit

// TierRule maps a star rank to the rarity term it derives. Rules are ordered
// highest star first; operators whose rank matches no rule carry no rarity
// term.
type TierRule struct {
	Stars int    `yaml:"stars" json:"stars"`
	Term  string `yaml:"term" json:"term"`
}

// Vocabulary holds the recruit term universe, alias tables, and the tier
// policy. It is runtime data: the default below mirrors the in-game recruit
// calculator, and a vocabulary file may replace it without recompilation.
type Vocabulary struct {
	Professions []string          `yaml:"professions"`
	Positions   []string          `yaml:"positions"`
	Rarities    []string          `yaml:"rarities"`
	Tags        []string          `yaml:"tags"`
	Aliases     map[string]string `yaml:"aliases"`

	// ProfessionSuffix is the qualifier stripped from tokens like 狙击干员
	// when the remaining prefix is itself a profession term.
	ProfessionSuffix string `yaml:"profession_suffix"`

	Tiers []TierRule `yaml:"tiers"`
}

// DefaultVocabulary returns the PRTS recruit calculator vocabulary.
func DefaultVocabulary() Vocabulary {
	return Vocabulary{
		Professions: []string{"近卫", "狙击", "重装", "医疗", "辅助", "术师", "特种", "先锋"},
		Positions:   []string{"近战位", "远程位"},
		Rarities:    []string{"高级资深干员", "资深干员", "新手"},
		Tags: []string{
			"支援机械", "控场", "爆发", "治疗", "支援", "费用回复", "输出", "生存",
			"群攻", "防护", "减速", "削弱", "快速复活", "位移", "召唤", "元素",
		},
		Aliases: map[string]string{
			"近卫干员": "近卫",
			"狙击干员": "狙击",
			"重装干员": "重装",
			"医疗干员": "医疗",
			"辅助干员": "辅助",
			"术师干员": "术师",
			"特种干员": "特种",
			"先锋干员": "先锋",
			"近战":   "近战位",
			"远程":   "远程位",
			"高资":   "高级资深干员",
			"高资深":  "高级资深干员",
			"资深":   "资深干员",
			"新手干员": "新手",
			"费用回收": "费用回复",
		},
		ProfessionSuffix: "干员",
		Tiers: []TierRule{
			{Stars: 6, Term: "高级资深干员"},
			{Stars: 5, Term: "资深干员"},
		},
	}
}
