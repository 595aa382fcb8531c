package stats

import (
	"fmt"
	"math"
	"time"

	"github.com/limbo/trkr/pkg/entity"
)

// StartOfWeek returns Monday 00:00 UTC of the ISO week containing t.
// AddDate handles month/year boundaries; direct day subtraction can
// produce day=0 which time.Date silently normalizes.
func StartOfWeek(t time.Time) time.Time {
	t = t.UTC()
	weekday := int(t.Weekday()) // 0=Sun
	if weekday == 0 {
		weekday = 7
	}
	t = t.AddDate(0, 0, -(weekday - 1))
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Week produces exactly 7 per-day entries, Monday through Sunday of the week
// containing refDate, plus summary totals. An unparsable refDate falls back
// to the current day.
func Week(src RecordSource, refDate string) entity.WeekSummary {
	ref, err := time.Parse(entity.DateLayout, refDate)
	if err != nil {
		ref = time.Now().UTC()
	}
	start := StartOfWeek(ref)

	sum := entity.WeekSummary{Days: make([]entity.WeekDay, 0, 7)}
	for i := 0; i < 7; i++ {
		d := start.AddDate(0, 0, i)
		dateStr := d.Format(entity.DateLayout)
		day := Day(src, dateStr)
		sum.Days = append(sum.Days, entity.WeekDay{
			Date:           dateStr,
			DayName:        d.Format("Mon"),
			Calories:       day.Calories,
			WorkoutMinutes: day.WorkoutMinutes,
			Weight:         day.Weight,
		})
		sum.TotalCalories += day.Calories
		sum.TotalWorkoutMinutes += day.WorkoutMinutes
		if day.WorkoutMinutes > 0 {
			sum.WorkoutDays++
		}
	}
	sum.AvgCalories = int(math.Round(sum.TotalCalories / 7))
	return sum
}

// WeightTrend returns the most recent lastN weight entries ordered by
// ascending date, for charting. Non-positive lastN means the default 30.
func WeightTrend(src RecordSource, lastN int) []entity.WeightEntry {
	if lastN <= 0 {
		lastN = 30
	}
	return src.WeightsAscending(lastN)
}

// WeeklyAverages groups the given date-sorted entries into consecutive
// 7-entry chunks by position, not calendar weeks, and averages each chunk.
// A trailing partial chunk still produces an average.
func WeeklyAverages(entries []entity.WeightEntry) []entity.WeekAverage {
	averages := make([]entity.WeekAverage, 0, (len(entries)+6)/7)
	for i := 0; i < len(entries); i += 7 {
		end := i + 7
		if end > len(entries) {
			end = len(entries)
		}
		chunk := entries[i:end]
		var total float64
		for _, e := range chunk {
			total += e.WeightKG
		}
		averages = append(averages, entity.WeekAverage{
			Week:     fmt.Sprintf("W%d", i/7+1),
			WeightKG: total / float64(len(chunk)),
		})
	}
	return averages
}
