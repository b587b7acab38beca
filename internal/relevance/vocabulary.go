package relevance

import (
	"fmt"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"
)

// Vocabulary lists the terms each scoring category looks for.
type Vocabulary struct {
	PrimaryLocalities   []string `yaml:"primary_localities"`
	SecondaryLocalities []string `yaml:"secondary_localities"`
	RegionCodes         []string `yaml:"region_codes"`
	Keywords            []string `yaml:"keywords"`
}

// DefaultVocabulary returns the built-in Canadian vocabulary.
func DefaultVocabulary() Vocabulary {
	return Vocabulary{
		PrimaryLocalities: []string{
			"toronto", "vancouver", "montreal", "calgary", "ottawa",
			"edmonton", "winnipeg", "quebec city", "hamilton", "kitchener",
			"london", "victoria", "halifax", "oshawa", "windsor",
			"saskatoon", "regina", "kelowna", "barrie", "sherbrooke",
			"guelph", "kanata", "abbotsford", "kingston", "trois-rivières",
		},
		SecondaryLocalities: []string{
			"ontario", "quebec", "british columbia", "alberta", "manitoba",
			"saskatchewan", "nova scotia", "new brunswick",
			"newfoundland and labrador", "newfoundland", "labrador",
			"prince edward island", "pei", "northwest territories",
			"nunavut", "yukon",
		},
		RegionCodes: []string{
			"on", "qc", "bc", "ab", "mb", "sk", "ns", "nb", "nl", "pe",
			"nt", "nu", "yt",
		},
		Keywords: []string{
			"canada", "canadian", "canuck", "canadians", "cra", "rcmp",
			"cbsa", "health canada", "tim hortons", "timmies", "loblaws",
			"canadian tire", "shoppers drug mart", "sobeys",
		},
	}
}

// MergeVocabulary overlays override onto base. A non-empty list in
// override replaces the corresponding base list wholesale.
func MergeVocabulary(base, override Vocabulary) Vocabulary {
	out := base
	if len(override.PrimaryLocalities) > 0 {
		out.PrimaryLocalities = override.PrimaryLocalities
	}
	if len(override.SecondaryLocalities) > 0 {
		out.SecondaryLocalities = override.SecondaryLocalities
	}
	if len(override.RegionCodes) > 0 {
		out.RegionCodes = override.RegionCodes
	}
	if len(override.Keywords) > 0 {
		out.Keywords = override.Keywords
	}
	return out
}

// LoadVocabulary reads a YAML vocabulary file and merges it over the
// defaults. An empty path returns the defaults unchanged.
func LoadVocabulary(path string) (Vocabulary, error) {
	def := DefaultVocabulary()
	if path == "" {
		return def, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return def, fmt.Errorf("read vocabulary %s: %w", path, err)
	}
	var v Vocabulary
	if err := yaml.Unmarshal(b, &v); err != nil {
		return def, fmt.Errorf("parse vocabulary %s: %w", path, err)
	}
	slog.Info("relevance: vocabulary loaded",
		"path", path,
		"primary", len(v.PrimaryLocalities),
		"secondary", len(v.SecondaryLocalities),
		"codes", len(v.RegionCodes),
		"keywords", len(v.Keywords),
	)
	return MergeVocabulary(def, v), nil
}
