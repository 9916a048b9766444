package rules

import "regexp"

// MetricPattern maps signal id/name shapes onto a standard metric. An
// entry matches when the id matches IDPattern or the name matches
// NamePattern, and the name does not match ExcludeNamePattern. Any of
// the three patterns may be nil.
type MetricPattern struct {
	IDPattern          *regexp.Regexp
	NamePattern        *regexp.Regexp
	ExcludeNamePattern *regexp.Regexp

	// Metric is the suggestedMetric value to propose.
	Metric string

	// Rationale explains the mapping in finding messages.
	Rationale string
}

// metricPatterns is the canonical pattern table, checked in order:
// the first matching entry wins and table order is the only tie-break.
// The table is immutable after init; consumers get copies via
// MetricPatterns.
var metricPatterns = []MetricPattern{
	{
		IDPattern:   regexp.MustCompile(`(?:^|_)RPM$`),
		NamePattern: regexp.MustCompile(`(?i)\bengine (?:speed|rpm)\b`),
		Metric:      "rpm",
		Rationale:   "engine speed is reported in revolutions per minute",
	},
	{
		IDPattern:          regexp.MustCompile(`(?:^|_)(?:VEHICLE_)?SPEED$`),
		NamePattern:        regexp.MustCompile(`(?i)\bvehicle speed\b`),
		ExcludeNamePattern: regexp.MustCompile(`(?i)\b(?:wheel|fan|pump|target)\b`),
		Metric:             "speed",
		Rationale:          "vehicle speed maps to the standard speed metric",
	},
	{
		IDPattern:          regexp.MustCompile(`(?:^|_)(?:ODOMETER|ODO)$`),
		NamePattern:        regexp.MustCompile(`(?i)\bodometer\b`),
		ExcludeNamePattern: regexp.MustCompile(`(?i)\btrip\b`),
		Metric:             "odometer",
		Rationale:          "total distance driven maps to the odometer metric",
	},
	{
		IDPattern:          regexp.MustCompile(`(?:^|_)FUEL_(?:TANK_)?LEVEL$`),
		NamePattern:        regexp.MustCompile(`(?i)\bfuel (?:tank )?level\b`),
		ExcludeNamePattern: regexp.MustCompile(`(?i)\b(?:rail|pressure)\b`),
		Metric:             "fuelTankLevel",
		Rationale:          "fuel tank fill level maps to the fuelTankLevel metric",
	},
	{
		IDPattern:          regexp.MustCompile(`(?:^|_)(?:SOC|STATE_OF_CHARGE)$`),
		NamePattern:        regexp.MustCompile(`(?i)\bstate of charge\b`),
		ExcludeNamePattern: regexp.MustCompile(`(?i)\bdisplay(?:ed)?\b`),
		Metric:             "stateOfCharge",
		Rationale:          "traction battery charge maps to the stateOfCharge metric",
	},
	{
		IDPattern:   regexp.MustCompile(`(?:^|_)(?:SOH|STATE_OF_HEALTH)$`),
		NamePattern: regexp.MustCompile(`(?i)\bstate of health\b`),
		Metric:      "stateOfHealth",
		Rationale:   "traction battery health maps to the stateOfHealth metric",
	},
}

// MetricPatterns returns a copy of the pattern table in priority
// order, so callers can render or test it without being able to
// perturb the shared table.
func MetricPatterns() []MetricPattern {
	out := make([]MetricPattern, len(metricPatterns))
	copy(out, metricPatterns)
	return out
}

// MatchMetric walks the pattern table in order and returns the first
// entry where the id or name matches and the name is not excluded.
// An exclusion only vetoes its own entry; later entries are still
// consulted.
func MatchMetric(patterns []MetricPattern, id, name string) (MetricPattern, bool) {
	for _, pat := range patterns {
		matched := (pat.IDPattern != nil && pat.IDPattern.MatchString(id)) ||
			(pat.NamePattern != nil && pat.NamePattern.MatchString(name))
		if !matched {
			continue
		}
		if pat.ExcludeNamePattern != nil && pat.ExcludeNamePattern.MatchString(name) {
			continue
		}
		return pat, true
	}
	return MetricPattern{}, false
}
