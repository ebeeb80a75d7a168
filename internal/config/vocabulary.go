package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/TonybotNi/doctah-mcp/internal/recruit"
)

// LoadVocabulary reads a recruit vocabulary file. An empty path returns the
// built-in default. Structural validation (duplicates, bit budget, tier
// ordering) happens when the engine is built from the result.
func LoadVocabulary(path string) (recruit.Vocabulary, error) {
	if path == "" {
		return recruit.DefaultVocabulary(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return recruit.Vocabulary{}, fmt.Errorf("loading vocabulary: %w", err)
	}

	var voc recruit.Vocabulary
	if err := yaml.Unmarshal(data, &voc); err != nil {
		return recruit.Vocabulary{}, fmt.Errorf("loading vocabulary: %w", err)
	}

	if voc.ProfessionSuffix == "" {
		voc.ProfessionSuffix = recruit.DefaultVocabulary().ProfessionSuffix
	}
	return voc, nil
}
