package steril

import "strings"

// keywordSuggestion maps a lowercase keyword to a preset id. Order matters:
// the first keyword found in the item's name or category wins.
type keywordSuggestion struct {
	keyword  string
	presetID string
}

var suggestions = []keywordSuggestion{
	{"syringe", PresetTools},
	{"scalpel", PresetTools},
	{"needle", PresetTools},
	{"straw", PresetStrawPasteur},
	{"agar", PresetAgar},
	{"plate", PresetAgar},
	{"liquid culture", PresetLiquidQuart},
	{"broth", PresetLiquidQuart},
	{"substrate", PresetSubstrate},
	{"bulk", PresetSubstrate},
	{"coir", PresetSubstrate},
	{"manure", PresetSubstrate},
	{"grain", PresetGrainQuart},
	{"rye", PresetGrainQuart},
	{"millet", PresetGrainQuart},
	{"oat", PresetGrainQuart},
	{"jar", PresetGrainQuart},
}

// SuggestPreset scans the item name and category for known keywords and
// returns the first matching preset id. The match is advisory: it may
// pre-select a preset in the calculator but never overrides an explicit
// user choice already made for the same item.
func SuggestPreset(name, category string) (string, bool) {
	haystack := strings.ToLower(name + " " + category)
	for _, s := range suggestions {
		if strings.Contains(haystack, s.keyword) {
			return s.presetID, true
		}
	}
	return "", false
}
