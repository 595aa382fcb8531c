package service_test

import (
	"path/filepath"
	"testing"

	"github.com/limbo/trkr/internal/service"
	"github.com/limbo/trkr/internal/store"
	"github.com/limbo/trkr/pkg/entity"
	"github.com/stretchr/testify/assert"
)

func newStatsFixture(t *testing.T) (*service.StatsService, *service.TrackerService) {
	s, err := store.New(filepath.Join(t.TempDir(), "trkr.json"))
	if err != nil {
		t.Fatal(err)
	}
	return service.NewStatsService(s), service.NewTrackerService(s)
}

func TestDayStats(t *testing.T) {
	ss, ts := newStatsFixture(t)
	_, err := ts.LogFood(&service.LogFoodRequest{
		Date: "2025-03-10", Meal: entity.MealLunch, FoodName: "Oats",
		Calories: 350, Protein: ptrF(12), Quantity: 2,
	})
	assert.NoError(t, err)
	_, err = ts.LogWorkout(&service.LogWorkoutRequest{Date: "2025-03-10", Sport: entity.SportRun, DurationMinutes: 40})
	assert.NoError(t, err)

	t.Run("aggregates the requested day", func(t *testing.T) {
		day := ss.Day("2025-03-10")
		assert.Equal(t, 700.0, day.Calories)
		assert.Equal(t, 24.0, day.Protein)
		assert.Equal(t, 1, day.WorkoutCount)
		assert.Equal(t, 40, day.WorkoutMinutes)
	})
	t.Run("empty date means today", func(t *testing.T) {
		day := ss.Day("")
		assert.Equal(t, today(), day.Date)
	})
}

func TestWeekStats(t *testing.T) {
	ss, ts := newStatsFixture(t)
	_, err := ts.LogFood(&service.LogFoodRequest{
		Date: "2025-03-10", Meal: entity.MealDinner, FoodName: "Pasta", Calories: 700, Quantity: 1,
	})
	assert.NoError(t, err)
	week := ss.Week("2025-03-12")
	assert.Equal(t, 7, len(week.Days))
	assert.Equal(t, 700.0, week.TotalCalories)
	assert.Equal(t, 100, week.AvgCalories)
}

func TestWeightTrendAndAverages(t *testing.T) {
	ss, ts := newStatsFixture(t)
	dates := []string{"2025-03-01", "2025-03-02", "2025-03-03"}
	for i, d := range dates {
		_, err := ts.LogWeight(&service.LogWeightRequest{Date: d, WeightKG: 80 - float64(i)})
		assert.NoError(t, err)
	}
	t.Run("trend ascending", func(t *testing.T) {
		trend := ss.WeightTrend(0)
		assert.Equal(t, 3, len(trend))
		assert.Equal(t, "2025-03-01", trend[0].Date)
		assert.Equal(t, "2025-03-03", trend[2].Date)
	})
	t.Run("averages over the trend", func(t *testing.T) {
		averages := ss.WeeklyWeightAverages(0)
		assert.Equal(t, 1, len(averages))
		assert.Equal(t, "W1", averages[0].Week)
		assert.Equal(t, 79.0, averages[0].WeightKG)
	})
}

func TestProgressFacade(t *testing.T) {
	ss, ts := newStatsFixture(t)
	male := entity.GenderMale
	_, err := ts.UpdateProfile(&service.ProfileUpdateRequest{
		CurrentWeight: ptrF(90), TargetWeight: ptrF(80), Gender: &male,
	})
	assert.NoError(t, err)
	_, err = ts.LogWeight(&service.LogWeightRequest{Date: today(), WeightKG: 85})
	assert.NoError(t, err)
	progress := ss.Progress()
	if assert.NotNil(t, progress.WeightProgress) {
		assert.Equal(t, 50, *progress.WeightProgress)
	}
	if assert.NotNil(t, progress.CurrentWeight) {
		assert.Equal(t, 85.0, *progress.CurrentWeight)
	}
}

func TestFoodByMeal(t *testing.T) {
	ss, ts := newStatsFixture(t)
	_, err := ts.LogFood(&service.LogFoodRequest{
		Date: "2025-03-10", Meal: entity.MealBreakfast, FoodName: "Oats", Calories: 350, Quantity: 1,
	})
	assert.NoError(t, err)
	_, err = ts.LogFood(&service.LogFoodRequest{
		Date: "2025-03-10", Meal: entity.MealBreakfast, FoodName: "Eggs", Calories: 150, Quantity: 2,
	})
	assert.NoError(t, err)

	buckets := ss.FoodByMeal("2025-03-10")
	assert.Equal(t, 2, len(buckets[entity.MealBreakfast]))
	// Every slot is present even when empty
	assert.NotNil(t, buckets[entity.MealLunch])
	assert.Equal(t, 0, len(buckets[entity.MealDinner]))
	assert.Equal(t, 4, len(buckets))
}
