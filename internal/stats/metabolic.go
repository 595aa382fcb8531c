package stats

import (
	"math"

	"github.com/limbo/trkr/pkg/entity"
)

// DefaultCalorieTarget is returned when the profile is too incomplete to
// compute a real target. A fallback, not a failure.
const DefaultCalorieTarget = 2000

// BMR computes basal metabolic rate via the Mifflin-St Jeor equation.
// Everything except male takes the female constant.
func BMR(weightKG, heightCM float64, ageYears int, gender entity.Gender) float64 {
	base := 10*weightKG + 6.25*heightCM - 5*float64(ageYears)
	if gender == entity.GenderMale {
		return base + 5
	}
	return base - 161
}

func activityMultiplier(level entity.ActivityLevel) float64 {
	switch level {
	case entity.ActivitySedentary:
		return 1.2
	case entity.ActivityLight:
		return 1.375
	case entity.ActivityModerate:
		return 1.55
	case entity.ActivityActive:
		return 1.725
	case entity.ActivityAthlete:
		return 1.9
	default:
		return 1.55
	}
}

// paceAdjustment maps goal pace to the daily calorie deficit/surplus:
// 0.25 kg/week = 275 cal, 0.5 kg/week = 550 cal, 0.75 kg/week = 825 cal.
func paceAdjustment(pace entity.GoalPace) float64 {
	switch pace {
	case entity.PaceSlow:
		return 275
	case entity.PaceModerate:
		return 550
	case entity.PaceAggressive:
		return 825
	default:
		return 550
	}
}

// TDEE scales BMR by the profile's activity multiplier. Callers must have
// checked that weight, height, age and gender are present.
func TDEE(p entity.Profile) float64 {
	bmr := BMR(*p.CurrentWeight, *p.Height, *p.Age, *p.Gender)
	return bmr * activityMultiplier(p.ActivityLevel)
}

// DailyCalorieTarget computes the recommended daily calories for a profile.
// Incomplete profiles fall back to DefaultCalorieTarget; a missing or
// already-reached target weight means maintenance; otherwise the pace
// adjustment is subtracted for loss or added for gain. Never errors.
func DailyCalorieTarget(p entity.Profile) int {
	if p.CurrentWeight == nil || p.Height == nil || p.Age == nil || p.Gender == nil {
		return DefaultCalorieTarget
	}
	tdee := TDEE(p)
	if p.TargetWeight == nil || *p.TargetWeight == *p.CurrentWeight {
		return int(math.Round(tdee))
	}
	adj := paceAdjustment(p.GoalPace)
	if *p.TargetWeight < *p.CurrentWeight {
		return int(math.Round(tdee - adj))
	}
	return int(math.Round(tdee + adj))
}
