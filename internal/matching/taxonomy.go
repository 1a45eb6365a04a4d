package matching

import (
	"encoding/json"
	"os"
	"strings"
)

// Taxonomy maps a vertical (campaign category) to keywords that signal the
// vertical in a KOL's bio, display name or topics. It is loaded from config
// at startup so new verticals do not require code changes.
type Taxonomy map[string][]string

// DefaultTaxonomy covers the verticals the matcher originally shipped with.
func DefaultTaxonomy() Taxonomy {
	return Taxonomy{
		"fitness": {"fitness", "workout", "gym", "health", "training", "nutrition"},
		"tech":    {"tech", "technology", "gadget", "software", "programming", "ai"},
		"beauty":  {"beauty", "makeup", "skincare", "cosmetics", "fashion"},
		"gaming":  {"gaming", "gamer", "esports", "stream", "twitch"},
	}
}

// LoadTaxonomy reads a vertical -> keywords table from a JSON file. An empty
// path returns the default table; a malformed file is an error so a bad
// deploy fails loudly instead of silently matching nothing.
func LoadTaxonomy(path string) (Taxonomy, error) {
	if path == "" {
		return DefaultTaxonomy(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var t Taxonomy
	if err := json.Unmarshal(data, &t); err != nil {
		return nil, err
	}
	return t, nil
}

// KeywordsFor returns the keyword list for a vertical, matching the vertical
// name case-insensitively with substring containment either way.
func (t Taxonomy) KeywordsFor(vertical string) []string {
	v := strings.ToLower(strings.TrimSpace(vertical))
	if v == "" {
		return nil
	}
	if kws, ok := t[v]; ok {
		return kws
	}
	for name, kws := range t {
		n := strings.ToLower(name)
		if strings.Contains(v, n) || strings.Contains(n, v) {
			return kws
		}
	}
	return nil
}
