package stats

import (
	"github.com/limbo/trkr/pkg/entity"
)

// RecordSource is the read-only view of the record store the aggregators
// work against. Implementations must resolve multiple weight rows on the
// same date to exactly one record (the store picks the last inserted).
type RecordSource interface {
	// Lists food entries whose date equals the given YYYY-MM-DD day
	FoodByDate(date string) []entity.FoodEntry
	// Lists workouts whose date equals the given day
	WorkoutsByDate(date string) []entity.Workout
	// Picks the day's single weight record, nil when none logged
	WeightByDate(date string) *entity.WeightEntry
	// Returns the day's accumulated water record, nil when none logged
	WaterByDate(date string) *entity.WaterEntry
	// Returns the weight entry with the greatest date, nil on empty collection
	LatestWeight() *entity.WeightEntry
	// Returns up to lastN weight entries ordered by ascending date
	WeightsAscending(lastN int) []entity.WeightEntry
	// Counts workouts dated on or after the given day
	CountWorkoutsOnOrAfter(date string) int
}
