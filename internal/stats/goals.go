package stats

import (
	"math"
	"time"

	"github.com/limbo/trkr/pkg/entity"
)

// Progress compares current state against the profile's weight and weekly
// workout targets. Percentages stay nil when the corresponding goal or a
// required sample is absent; a zero weight delta means the goal is already
// reached and reads as 100. Nothing here is clamped for display.
func Progress(src RecordSource, profile entity.Profile, now time.Time) entity.GoalProgress {
	latest := src.LatestWeight()
	monday := StartOfWeek(now)
	weekWorkouts := src.CountWorkoutsOnOrAfter(monday.Format(entity.DateLayout))

	out := entity.GoalProgress{
		WeekWorkouts:        weekWorkouts,
		WeeklyWorkoutTarget: profile.WeeklyWorkoutTarget,
		CurrentWeight:       profile.CurrentWeight,
		TargetWeight:        profile.TargetWeight,
	}
	if latest != nil {
		kg := latest.WeightKG
		out.CurrentWeight = &kg
	}

	if profile.TargetWeight != nil && profile.CurrentWeight != nil && latest != nil {
		totalToLose := *profile.CurrentWeight - *profile.TargetWeight
		actualLost := *profile.CurrentWeight - latest.WeightKG
		pct := 100
		if totalToLose != 0 {
			pct = int(math.Round(actualLost / totalToLose * 100))
		}
		out.WeightProgress = &pct
	}

	if profile.WeeklyWorkoutTarget > 0 {
		pct := int(math.Round(float64(weekWorkouts) / float64(profile.WeeklyWorkoutTarget) * 100))
		out.WorkoutProgress = &pct
	}
	return out
}
