package steril

// Built-in preset ids referenced by the suggestion keyword map and tests.
const (
	PresetGrainQuart    = "grain-quart"
	PresetGrainHalfPint = "grain-half-pint"
	PresetSubstrate     = "substrate-block"
	PresetAgar          = "agar-plates"
	PresetLiquidQuart   = "liquid-quart"
	PresetTools         = "tools-syringes"
	PresetStrawPasteur  = "straw-pasteurization"
)

var presets = []Preset{
	{
		ID:                PresetGrainQuart,
		Name:              "Grain Jars (Quart)",
		Category:          CategoryGrain,
		BasePSI:           15,
		BaseMinutes:       90,
		PerUnitAdditional: 0,
		MaxMinutes:        120,
		Notes:             "Quart jars of hydrated grain. Leave headspace and cover lids with foil.",
	},
	{
		ID:                PresetGrainHalfPint,
		Name:              "Grain Jars (Half Pint)",
		Category:          CategoryGrain,
		BasePSI:           15,
		BaseMinutes:       75,
		PerUnitAdditional: 0,
		MaxMinutes:        90,
		Notes:             "Smaller jars heat through faster than quarts.",
	},
	{
		ID:                PresetSubstrate,
		Name:              "Bulk Substrate Bags",
		Category:          CategorySubstrate,
		BasePSI:           15,
		BaseMinutes:       150,
		PerUnitAdditional: 15,
		MaxMinutes:        180,
		Notes:             "Filter-patch bags of supplemented substrate. Dense loads need the full cycle.",
	},
	{
		ID:                PresetAgar,
		Name:              "Agar Media (Flask)",
		Category:          CategoryAgar,
		BasePSI:           15,
		BaseMinutes:       30,
		PerUnitAdditional: 0,
		MaxMinutes:        45,
		Notes:             "Pour plates after cooling to roughly 50 C. Over-cooking darkens the media.",
	},
	{
		ID:                PresetLiquidQuart,
		Name:              "Liquid Culture (Quart)",
		Category:          CategoryLiquid,
		BasePSI:           15,
		BaseMinutes:       30,
		PerUnitAdditional: 5,
		MaxMinutes:        45,
		Notes:             "Light malt extract or honey solution with a magnetic stir bar.",
	},
	{
		ID:                PresetTools,
		Name:              "Tools & Syringes",
		Category:          CategoryTools,
		BasePSI:           15,
		BaseMinutes:       30,
		PerUnitAdditional: 0,
		MaxMinutes:        60,
		Notes:             "Scalpels, syringe bodies, needles. Wrap in foil pouches.",
	},
	{
		ID:                PresetStrawPasteur,
		Name:              "Straw (Pasteurization)",
		Category:          CategorySubstrate,
		BasePSI:           0,
		BaseMinutes:       90,
		PerUnitAdditional: 0,
		MaxMinutes:        120,
		Notes:             "Hot water bath, not a pressure cycle. Keep 65-80 C to preserve beneficial microbes.",
	},
}

// Altitude brackets partition [0, 10000] feet. The first matching bracket
// wins; anything above the table falls back to the first bracket. That
// fallback is questionable for extreme altitudes but is the shipped behavior.
var brackets = []AltitudeBracket{
	{MinFeet: 0, MaxFeet: 1000, PSIIncrease: 0},
	{MinFeet: 1001, MaxFeet: 3000, PSIIncrease: 1},
	{MinFeet: 3001, MaxFeet: 6000, PSIIncrease: 2},
	{MinFeet: 6001, MaxFeet: 8000, PSIIncrease: 3},
	{MinFeet: 8001, MaxFeet: 10000, PSIIncrease: 4},
}

// Presets returns the built-in preset table. The slice is a copy; callers may
// not mutate the underlying table.
func Presets() []Preset {
	out := make([]Preset, len(presets))
	copy(out, presets)
	return out
}

// PresetByID looks up a preset by id.
func PresetByID(id string) (Preset, bool) {
	for _, p := range presets {
		if p.ID == id {
			return p, true
		}
	}
	return Preset{}, false
}

// BracketFor returns the altitude bracket containing feet, or the first
// bracket when nothing matches.
func BracketFor(feet int) AltitudeBracket {
	for _, b := range brackets {
		if feet >= b.MinFeet && feet <= b.MaxFeet {
			return b
		}
	}
	return brackets[0]
}

// Brackets returns a copy of the altitude adjustment table.
func Brackets() []AltitudeBracket {
	out := make([]AltitudeBracket, len(brackets))
	copy(out, brackets)
	return out
}
