package models

// ScenarioCategory is a named compliance concern with the keywords that signal
// it and the controls/playbooks it maps to. Categories are registered once at
// startup and treated as read-only afterwards.
type ScenarioCategory struct {
	Name      string   `json:"name"`
	Keywords  []string `json:"keywords"`
	Controls  []string `json:"controls"`
	Playbooks []string `json:"playbooks"`
}

// MatchedKeyword records a single keyword hit during scenario classification.
// The same keyword may appear under multiple categories; duplicates are kept
// so downstream consumers see every category that fired.
type MatchedKeyword struct {
	Category  string   `json:"category"`
	Keyword   string   `json:"keyword"`
	Controls  []string `json:"controls"`
	Playbooks []string `json:"playbooks"`
}

// Classification is the output of scenario analysis: which profile was
// selected and which keywords matched.
type Classification struct {
	Profile string           `json:"profile"`
	Matches []MatchedKeyword `json:"matches"`
}

// Categories returns the distinct category names present in the matches,
// in first-seen order.
func (c Classification) Categories() []string {
	seen := make(map[string]bool)
	var out []string
	for _, m := range c.Matches {
		if !seen[m.Category] {
			seen[m.Category] = true
			out = append(out, m.Category)
		}
	}
	return out
}
