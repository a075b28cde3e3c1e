package gap

import (
	"math"

	"skill-align/internal/domain/skill"
)

// EffortBand maps a gap delta ceiling to an hour estimate. Bands must be
// sorted ascending by UpTo with non-decreasing Hours so the lookup stays
// monotonic.
type EffortBand struct {
	UpTo  float64
	Hours int
}

// EffortTable estimates learning hours from (required - actual) and skill
// type. Technical skills carry a higher per-unit-gap cost than soft skills.
// The bands are tunable configuration, not a fixed formula.
type EffortTable struct {
	Technical []EffortBand
	Soft      []EffortBand
}

// NewEffortTable derives quartile bands from per-unit hour rates, the default
// calibration: a full unit of technical gap costs techHoursPerUnit, soft
// softHoursPerUnit, stepped in quarter-unit increments.
func NewEffortTable(techHoursPerUnit, softHoursPerUnit int) EffortTable {
	return EffortTable{
		Technical: quartileBands(techHoursPerUnit),
		Soft:      quartileBands(softHoursPerUnit),
	}
}

func quartileBands(hoursPerUnit int) []EffortBand {
	bands := make([]EffortBand, 0, 4)
	for q := 1; q <= 4; q++ {
		upTo := float64(q) / 4
		hours := int(math.Ceil(float64(hoursPerUnit) * upTo))
		bands = append(bands, EffortBand{UpTo: upTo, Hours: hours})
	}
	return bands
}

// Hours looks up the estimate for a gap delta. Deltas above the last band
// ceiling use the last band; unknown skill types cost as technical, the more
// conservative estimate.
func (t EffortTable) Hours(st skill.Type, delta float64) int {
	bands := t.Technical
	if st == skill.TypeSoft {
		bands = t.Soft
	}
	if len(bands) == 0 {
		return 0
	}
	if delta < 0 {
		delta = 0
	}
	for _, b := range bands {
		if delta <= b.UpTo {
			return b.Hours
		}
	}
	return bands[len(bands)-1].Hours
}
