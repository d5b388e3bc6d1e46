package steril

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSuggestPreset(t *testing.T) {
	tests := []struct {
		name     string
		category string
		want     string
		ok       bool
	}{
		{"Rye Grain Quart", "", PresetGrainQuart, true},
		{"Quart Jar", "grain", PresetGrainQuart, true},
		{"LC Syringe", "tools", PresetTools, true},
		{"Wheat Straw", "substrate", PresetStrawPasteur, true},
		{"Malt Broth", "", PresetLiquidQuart, true},
		{"Agar Flask", "", PresetAgar, true},
		{"CVG Mix", "bulk substrate", PresetSubstrate, true},
		{"Mystery Box", "", "", false},
	}

	for _, tt := range tests {
		got, ok := SuggestPreset(tt.name, tt.category)
		assert.Equal(t, tt.ok, ok, "%s / %s", tt.name, tt.category)
		assert.Equal(t, tt.want, got, "%s / %s", tt.name, tt.category)
	}
}

func TestSuggestPresetCaseInsensitive(t *testing.T) {
	got, ok := SuggestPreset("MILLET JARS", "")
	assert.True(t, ok)
	assert.Equal(t, PresetGrainQuart, got)
}

func TestSuggestionsReferenceRealPresets(t *testing.T) {
	for _, s := range suggestions {
		_, ok := PresetByID(s.presetID)
		assert.True(t, ok, "keyword %q points at unknown preset %q", s.keyword, s.presetID)
	}
}
