package entity

import (
	"time"

	"github.com/google/uuid"
)

// DateLayout is the canonical calendar-day representation used everywhere.
// Records store dates as plain YYYY-MM-DD strings, matched by equality.
const DateLayout = "2006-01-02"

type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
)

type ActivityLevel string

const (
	ActivitySedentary ActivityLevel = "sedentary"
	ActivityLight     ActivityLevel = "light"
	ActivityModerate  ActivityLevel = "moderate"
	ActivityActive    ActivityLevel = "active"
	ActivityAthlete   ActivityLevel = "athlete"
)

type GoalPace string

const (
	PaceSlow       GoalPace = "slow"
	PaceModerate   GoalPace = "moderate"
	PaceAggressive GoalPace = "aggressive"
)

type Sport string

const (
	SportSwim     Sport = "swim"
	SportBike     Sport = "bike"
	SportRun      Sport = "run"
	SportStrength Sport = "strength"
	SportOther    Sport = "other"
)

type Meal string

const (
	MealBreakfast Meal = "breakfast"
	MealLunch     Meal = "lunch"
	MealDinner    Meal = "dinner"
	MealSnack     Meal = "snack"
)

type User struct {
	ID           uuid.UUID
	Name         string
	PasswordHash string
}

// Profile holds user targets and the attributes feeding the calorie
// calculator. Pointer fields are optional: a nil value means the user never
// filled them in, which the calculator resolves with documented defaults.
type Profile struct {
	Name                  string        `json:"name"`
	DailyCalorieTarget    int           `json:"daily_calorie_target"`
	ProteinTarget         int           `json:"protein_target"`
	CarbsTarget           int           `json:"carbs_target"`
	FatTarget             int           `json:"fat_target"`
	WaterTarget           int           `json:"water_target"`
	CurrentWeight         *float64      `json:"current_weight,omitempty"`
	TargetWeight          *float64      `json:"target_weight,omitempty"`
	Height                *float64      `json:"height,omitempty"`
	Age                   *int          `json:"age,omitempty"`
	Gender                *Gender       `json:"gender,omitempty"`
	ActivityLevel         ActivityLevel `json:"activity_level"`
	GoalPace              GoalPace      `json:"goal_pace"`
	WeeklyWorkoutTarget   int           `json:"weekly_workout_target"`
	UseCalculatedCalories bool          `json:"use_calculated_calories"`
}

// Workout distance is in meters for swims and kilometers for everything else.
type Workout struct {
	ID              uuid.UUID `json:"id"`
	Date            string    `json:"date"`
	Sport           Sport     `json:"sport"`
	Name            string    `json:"name"`
	DurationMinutes int       `json:"duration_minutes"`
	Distance        *float64  `json:"distance,omitempty"`
	Environment     string    `json:"environment,omitempty"`
	Notes           string    `json:"notes,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}

// FoodEntry nutrient fields are per one unit; aggregation multiplies by
// Quantity. Nil macros mark a quick-add entry and must stay nil in storage.
type FoodEntry struct {
	ID        uuid.UUID `json:"id"`
	Date      string    `json:"date"`
	Meal      Meal      `json:"meal"`
	FoodName  string    `json:"food_name"`
	Calories  float64   `json:"calories"`
	Protein   *float64  `json:"protein,omitempty"`
	Carbs     *float64  `json:"carbs,omitempty"`
	Fat       *float64  `json:"fat,omitempty"`
	Quantity  float64   `json:"quantity"`
	Unit      string    `json:"unit"`
	CreatedAt time.Time `json:"created_at"`
}

type WeightEntry struct {
	ID        uuid.UUID `json:"id"`
	Date      string    `json:"date"`
	WeightKG  float64   `json:"weight_kg"`
	Notes     string    `json:"notes,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// WaterEntry is the single accumulated amount for one calendar day, in ml.
type WaterEntry struct {
	ID     uuid.UUID `json:"id"`
	Date   string    `json:"date"`
	Amount int       `json:"amount"`
}

// RecentFood is a logging shortcut, not part of the analytical model.
type RecentFood struct {
	FoodName string   `json:"food_name"`
	Calories float64  `json:"calories"`
	Protein  *float64 `json:"protein,omitempty"`
	Carbs    *float64 `json:"carbs,omitempty"`
	Fat      *float64 `json:"fat,omitempty"`
	Unit     string   `json:"unit"`
}

type WorkoutTemplate struct {
	ID              uuid.UUID `json:"id"`
	Sport           Sport     `json:"sport"`
	Name            string    `json:"name"`
	DurationMinutes int       `json:"duration_minutes"`
	Distance        *float64  `json:"distance,omitempty"`
	Environment     string    `json:"environment,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}

// DayStats is one day's aggregated snapshot. Weight is nil when no entry
// matches the day.
type DayStats struct {
	Date           string   `json:"date"`
	Calories       float64  `json:"calories"`
	Protein        float64  `json:"protein"`
	Carbs          float64  `json:"carbs"`
	Fat            float64  `json:"fat"`
	WorkoutCount   int      `json:"workout_count"`
	WorkoutMinutes int      `json:"workout_minutes"`
	Weight         *float64 `json:"weight"`
	Water          int      `json:"water"`
}

type WeekDay struct {
	Date           string   `json:"date"`
	DayName        string   `json:"day_name"`
	Calories       float64  `json:"calories"`
	WorkoutMinutes int      `json:"workout_minutes"`
	Weight         *float64 `json:"weight"`
}

// WeekSummary always carries exactly 7 days, Monday through Sunday.
type WeekSummary struct {
	Days                []WeekDay `json:"days"`
	TotalCalories       float64   `json:"total_calories"`
	AvgCalories         int       `json:"avg_calories"`
	TotalWorkoutMinutes int       `json:"total_workout_minutes"`
	WorkoutDays         int       `json:"workout_days"`
}

type WeekAverage struct {
	Week     string  `json:"week"`
	WeightKG float64 `json:"weight_kg"`
}

// GoalProgress percentages are nil when the corresponding goal isn't set,
// which callers must distinguish from 0%. Values are not clamped to 100.
type GoalProgress struct {
	WeightProgress      *int     `json:"weight_progress"`
	WorkoutProgress     *int     `json:"workout_progress"`
	WeekWorkouts        int      `json:"week_workouts"`
	WeeklyWorkoutTarget int      `json:"weekly_workout_target"`
	CurrentWeight       *float64 `json:"current_weight"`
	TargetWeight        *float64 `json:"target_weight"`
}

type SyncAction string

const (
	SyncUpsert SyncAction = "upsert"
	SyncDelete SyncAction = "delete"
)

type SyncCollection string

const (
	CollectionWorkouts      SyncCollection = "workouts"
	CollectionFoodEntries   SyncCollection = "food_entries"
	CollectionWeightEntries SyncCollection = "weight_entries"
)

// SyncOp is one queued remote write. Ops are drained in Seq order and are
// idempotent: an upsert always carries the record's latest local state.
type SyncOp struct {
	Seq        uint64         `json:"seq"`
	Action     SyncAction     `json:"action"`
	Collection SyncCollection `json:"collection"`
	RecordID   uuid.UUID      `json:"record_id"`
}
