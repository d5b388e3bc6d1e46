package steril

import (
	"fmt"
	"strconv"
	"strings"
)

// Compute maps a preset plus user settings to the parameters for one run.
// It is pure: identical inputs always yield identical output.
//
// The altitude bracket adds PSI on top of the preset's base. Quantity adds
// PerUnitAdditional minutes per unit beyond the first, capped at MaxMinutes.
// A custom override, when opted into, replaces the minutes entirely and is
// deliberately not validated against the cap.
func Compute(p Preset, altitudeFeet, quantity, customMinutes int, useCustom bool) Result {
	bracket := BracketFor(altitudeFeet)

	minutes := p.BaseMinutes
	if quantity > 1 && p.PerUnitAdditional > 0 {
		minutes += (quantity - 1) * p.PerUnitAdditional
	}
	if minutes > p.MaxMinutes {
		minutes = p.MaxMinutes
	}
	if useCustom {
		minutes = customMinutes
	}

	return Result{
		PSI:                p.BasePSI + bracket.PSIIncrease,
		Minutes:            minutes,
		AltitudeAdjustment: bracket.PSIIncrease,
		IsPasteurization:   p.BasePSI == 0,
	}
}

// MethodLabel is the short method string recorded on domain entities,
// e.g. "PC 17psi 90min".
func (r Result) MethodLabel() string {
	if r.IsPasteurization {
		return fmt.Sprintf("Pasteurized %dmin", r.Minutes)
	}
	return fmt.Sprintf("PC %dpsi %dmin", r.PSI, r.Minutes)
}

// Advice renders the recommended-settings line. Pasteurization presets get
// hot-water-bath guidance, never a pressure/time pair.
func (r Result) Advice() string {
	if r.IsPasteurization {
		return fmt.Sprintf("Hot water bath at 65-80 C (150-176 F) for %d min. Do not pressurize.", r.Minutes)
	}
	return fmt.Sprintf("%d PSI for %d minutes", r.PSI, r.Minutes)
}

// ParseAltitude parses a user-entered altitude in feet. Invalid or negative
// input falls back to 0 (sea level); it never errors.
func ParseAltitude(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 0 {
		return 0
	}
	return n
}

// ParseQuantity parses a user-entered quantity, falling back to 1.
func ParseQuantity(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 1 {
		return 1
	}
	return n
}

// ParseCustomMinutes parses a custom duration override. The second return
// is false when the input is empty or invalid, meaning "use calculated time".
func ParseCustomMinutes(s string) (int, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}
