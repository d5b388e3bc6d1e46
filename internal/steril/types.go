// Package steril contains pure sterilization parameter logic.
// This package has NO external dependencies (no GPIO, MQTT, storage, or
// time.Sleep). All inputs are passed as parameters.
package steril

// Category classifies what a preset is meant to sterilize.
type Category string

const (
	CategoryGrain     Category = "grain"
	CategorySubstrate Category = "substrate"
	CategoryAgar      Category = "agar"
	CategoryLiquid    Category = "liquid"
	CategoryTools     Category = "tools"
)

// Preset is a fixed combination of pressure, time and notes for a
// sterilization scenario. Presets are defined at build time and never mutated.
type Preset struct {
	ID       string
	Name     string
	Category Category
	// BasePSI is the pressure at sea level. A preset with BasePSI == 0 is a
	// pasteurization preset and must never be rendered with pressure-cooker
	// advice.
	BasePSI     int
	BaseMinutes int
	// PerUnitAdditional is added once per unit beyond the first.
	PerUnitAdditional int
	// MaxMinutes is a hard ceiling on the calculated time regardless of
	// quantity. It does not apply to explicit user overrides.
	MaxMinutes int
	Notes      string
}

// AltitudeBracket maps a feet range to a PSI increase. Boiling point drops
// with altitude, so higher labs need more pressure for the same temperature.
type AltitudeBracket struct {
	MinFeet     int
	MaxFeet     int
	PSIIncrease int
}

// Result is the computed parameter set for one run.
type Result struct {
	PSI     int
	Minutes int
	// AltitudeAdjustment is the PSI added on top of the preset's base.
	AltitudeAdjustment int
	// IsPasteurization is set for zero-PSI presets; callers must render
	// hot-water-bath guidance instead of a pressure/time pair.
	IsPasteurization bool
}
