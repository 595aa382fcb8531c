package stats

import (
	"github.com/limbo/trkr/pkg/entity"
)

// Day reduces one calendar day's records into a single snapshot. Food sums
// are (field or 0) * (quantity or 1); nil macros count as zero without being
// rewritten in storage. Empty collections give all-zero fields and nil weight.
func Day(src RecordSource, date string) entity.DayStats {
	out := entity.DayStats{Date: date}
	for _, f := range src.FoodByDate(date) {
		q := f.Quantity
		if q == 0 {
			q = 1
		}
		out.Calories += f.Calories * q
		out.Protein += orZero(f.Protein) * q
		out.Carbs += orZero(f.Carbs) * q
		out.Fat += orZero(f.Fat) * q
	}
	for _, w := range src.WorkoutsByDate(date) {
		out.WorkoutCount++
		out.WorkoutMinutes += w.DurationMinutes
	}
	if we := src.WeightByDate(date); we != nil {
		kg := we.WeightKG
		out.Weight = &kg
	}
	if wa := src.WaterByDate(date); wa != nil {
		out.Water = wa.Amount
	}
	return out
}

func orZero(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}
