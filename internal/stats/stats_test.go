package stats_test

import (
	"sort"
	"time"

	"github.com/limbo/trkr/pkg/entity"
)

// fakeSource serves canned records the way the store's query layer would.
type fakeSource struct {
	food     []entity.FoodEntry
	workouts []entity.Workout
	weights  []entity.WeightEntry
	water    []entity.WaterEntry
}

func (f *fakeSource) FoodByDate(date string) []entity.FoodEntry {
	out := []entity.FoodEntry{}
	for _, e := range f.food {
		if e.Date == date {
			out = append(out, e)
		}
	}
	return out
}

func (f *fakeSource) WorkoutsByDate(date string) []entity.Workout {
	out := []entity.Workout{}
	for _, w := range f.workouts {
		if w.Date == date {
			out = append(out, w)
		}
	}
	return out
}

func (f *fakeSource) WeightByDate(date string) *entity.WeightEntry {
	var found *entity.WeightEntry
	for i, e := range f.weights {
		if e.Date != date {
			continue
		}
		if found == nil || e.CreatedAt.After(found.CreatedAt) {
			found = &f.weights[i]
		}
	}
	return found
}

func (f *fakeSource) WaterByDate(date string) *entity.WaterEntry {
	for i, e := range f.water {
		if e.Date == date {
			return &f.water[i]
		}
	}
	return nil
}

func (f *fakeSource) LatestWeight() *entity.WeightEntry {
	var latest *entity.WeightEntry
	for i, e := range f.weights {
		if latest == nil || e.Date > latest.Date {
			latest = &f.weights[i]
		}
	}
	return latest
}

func (f *fakeSource) WeightsAscending(lastN int) []entity.WeightEntry {
	sorted := append([]entity.WeightEntry{}, f.weights...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date < sorted[j].Date
	})
	if len(sorted) > lastN {
		sorted = sorted[len(sorted)-lastN:]
	}
	return sorted
}

func (f *fakeSource) CountWorkoutsOnOrAfter(date string) int {
	count := 0
	for _, w := range f.workouts {
		if w.Date >= date {
			count++
		}
	}
	return count
}

func ptrF(v float64) *float64 { return &v }
func ptrI(v int) *int         { return &v }

func mustDate(s string) time.Time {
	t, err := time.Parse(entity.DateLayout, s)
	if err != nil {
		panic(err)
	}
	return t
}
