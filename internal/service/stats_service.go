package service

import (
	"log"
	"time"

	"github.com/limbo/trkr/internal/stats"
	"github.com/limbo/trkr/pkg/entity"
)

// StatsService is the read-only facade over the derived-metrics functions.
// Everything here is synchronous and side-effect-free: same store state,
// same answers.
type StatsService struct {
	store RecordStoreI
}

func NewStatsService(recordStore RecordStoreI) *StatsService {
	if recordStore == nil {
		log.Fatal("provided nil record store")
	}
	return &StatsService{
		store: recordStore,
	}
}

func (ss *StatsService) Day(date string) entity.DayStats {
	if date == "" {
		date = time.Now().UTC().Format(entity.DateLayout)
	}
	return stats.Day(ss.store, date)
}

func (ss *StatsService) Week(refDate string) entity.WeekSummary {
	if refDate == "" {
		refDate = time.Now().UTC().Format(entity.DateLayout)
	}
	return stats.Week(ss.store, refDate)
}

func (ss *StatsService) WeightTrend(lastN int) []entity.WeightEntry {
	return stats.WeightTrend(ss.store, lastN)
}

func (ss *StatsService) WeeklyWeightAverages(lastN int) []entity.WeekAverage {
	return stats.WeeklyAverages(stats.WeightTrend(ss.store, lastN))
}

func (ss *StatsService) Progress() entity.GoalProgress {
	return stats.Progress(ss.store, ss.store.Profile(), time.Now().UTC())
}

func (ss *StatsService) FoodByMeal(date string) map[entity.Meal][]entity.FoodEntry {
	if date == "" {
		date = time.Now().UTC().Format(entity.DateLayout)
	}
	buckets := map[entity.Meal][]entity.FoodEntry{
		entity.MealBreakfast: {},
		entity.MealLunch:     {},
		entity.MealDinner:    {},
		entity.MealSnack:     {},
	}
	for _, e := range ss.store.FoodByDate(date) {
		buckets[e.Meal] = append(buckets[e.Meal], e)
	}
	return buckets
}
