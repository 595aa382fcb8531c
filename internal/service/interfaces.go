package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/limbo/trkr/internal/stats"
	"github.com/limbo/trkr/pkg/entity"
)

type RegisterRequest struct {
	Name     string `validate:"required,alphanum_underscore,min=3,max=100"`
	Password string `validate:"required,min=8,max=72"`
}

type UserServiceI interface {
	// Validates user's credentials, creates new row in database. Returns user's data with ID
	Register(ctx context.Context, req *RegisterRequest) (*entity.User, error)
	// Compares given credentials. If ok, give back user's data with ID.
	Login(ctx context.Context, name, password string) (*entity.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*entity.User, error)
	DeleteAccount(ctx context.Context, id uuid.UUID, password string) error
}

// RecordStoreI is everything the tracker and stats services need from the
// local record store. The store is injected, never reached as a global.
type RecordStoreI interface {
	stats.RecordSource

	Profile() entity.Profile
	SetProfile(p entity.Profile) (entity.Profile, error)

	AddWorkout(w entity.Workout) (entity.Workout, error)
	UpdateWorkout(id uuid.UUID, w entity.Workout) (entity.Workout, error)
	DeleteWorkout(id uuid.UUID) error

	AddFoodEntry(e entity.FoodEntry) (entity.FoodEntry, error)
	UpdateFoodEntry(id uuid.UUID, e entity.FoodEntry) (entity.FoodEntry, error)
	DeleteFoodEntry(id uuid.UUID) error

	AddWeightEntry(e entity.WeightEntry) (entity.WeightEntry, error)
	DeleteWeightEntry(id uuid.UUID) error

	AddWater(date string, amount int) (entity.WaterEntry, error)
	ResetWater(date string) error

	AddWorkoutTemplate(t entity.WorkoutTemplate) (entity.WorkoutTemplate, error)
	DeleteWorkoutTemplate(id uuid.UUID) error
	WorkoutTemplates() []entity.WorkoutTemplate
	WorkoutTemplateByID(id uuid.UUID) (entity.WorkoutTemplate, bool)

	RecentFoods() []entity.RecentFood
	FindRecentFood(name string) (entity.RecentFood, bool)

	Export() ([]byte, error)
	Import(data []byte) error
}

type ProfileUpdateRequest struct {
	Name                  *string               `json:"name" validate:"omitempty,max=100"`
	DailyCalorieTarget    *int                  `json:"daily_calorie_target" validate:"omitempty,gte=0"`
	ProteinTarget         *int                  `json:"protein_target" validate:"omitempty,gte=0"`
	CarbsTarget           *int                  `json:"carbs_target" validate:"omitempty,gte=0"`
	FatTarget             *int                  `json:"fat_target" validate:"omitempty,gte=0"`
	WaterTarget           *int                  `json:"water_target" validate:"omitempty,gte=0"`
	CurrentWeight         *float64              `json:"current_weight" validate:"omitempty,gt=0"`
	TargetWeight          *float64              `json:"target_weight" validate:"omitempty,gt=0"`
	Height                *float64              `json:"height" validate:"omitempty,gt=0"`
	Age                   *int                  `json:"age" validate:"omitempty,gte=1,lte=130"`
	Gender                *entity.Gender        `json:"gender" validate:"omitempty,oneof=male female"`
	ActivityLevel         *entity.ActivityLevel `json:"activity_level" validate:"omitempty,oneof=sedentary light moderate active athlete"`
	GoalPace              *entity.GoalPace      `json:"goal_pace" validate:"omitempty,oneof=slow moderate aggressive"`
	WeeklyWorkoutTarget   *int                  `json:"weekly_workout_target" validate:"omitempty,gte=0"`
	UseCalculatedCalories *bool                 `json:"use_calculated_calories"`
}

type LogWorkoutRequest struct {
	Date            string       `json:"date" validate:"required,dateonly"`
	Sport           entity.Sport `json:"sport" validate:"required,oneof=swim bike run strength other"`
	Name            string       `json:"name" validate:"max=200"`
	DurationMinutes int          `json:"duration_minutes" validate:"gte=0"`
	Distance        *float64     `json:"distance" validate:"omitempty,gte=0"`
	Environment     string       `json:"environment" validate:"max=50"`
	Notes           string       `json:"notes" validate:"max=2000"`
}

type LogFoodRequest struct {
	Date     string      `json:"date" validate:"required,dateonly"`
	Meal     entity.Meal `json:"meal" validate:"required,oneof=breakfast lunch dinner snack"`
	FoodName string      `json:"food_name" validate:"required,max=200"`
	Calories float64     `json:"calories" validate:"gte=0"`
	Protein  *float64    `json:"protein" validate:"omitempty,gte=0"`
	Carbs    *float64    `json:"carbs" validate:"omitempty,gte=0"`
	Fat      *float64    `json:"fat" validate:"omitempty,gte=0"`
	Quantity float64     `json:"quantity" validate:"gte=0"`
	Unit     string      `json:"unit" validate:"max=30"`
}

type LogWeightRequest struct {
	Date     string  `json:"date" validate:"required,dateonly"`
	WeightKG float64 `json:"weight_kg" validate:"required,gt=0,lt=500"`
	Notes    string  `json:"notes" validate:"max=2000"`
}

type AddWaterRequest struct {
	Date   string `json:"date" validate:"omitempty,dateonly"`
	Amount int    `json:"amount" validate:"required,gt=0"`
}

type SaveTemplateRequest struct {
	Sport           entity.Sport `json:"sport" validate:"required,oneof=swim bike run strength other"`
	Name            string       `json:"name" validate:"max=200"`
	DurationMinutes int          `json:"duration_minutes" validate:"gte=0"`
	Distance        *float64     `json:"distance" validate:"omitempty,gte=0"`
	Environment     string       `json:"environment" validate:"max=50"`
}

type QuickLogFoodRequest struct {
	FoodName string      `json:"food_name" validate:"required,max=200"`
	Meal     entity.Meal `json:"meal" validate:"omitempty,oneof=breakfast lunch dinner snack"`
	Date     string      `json:"date" validate:"omitempty,dateonly"`
}

// TrackerServiceI owns every local mutation. The store applies writes
// synchronously, so no operation here blocks on anything remote.
type TrackerServiceI interface {
	Profile() entity.Profile
	UpdateProfile(req *ProfileUpdateRequest) (entity.Profile, error)

	LogWorkout(req *LogWorkoutRequest) (entity.Workout, error)
	UpdateWorkout(id uuid.UUID, req *LogWorkoutRequest) (entity.Workout, error)
	DeleteWorkout(id uuid.UUID) error

	LogFood(req *LogFoodRequest) (entity.FoodEntry, error)
	UpdateFood(id uuid.UUID, req *LogFoodRequest) (entity.FoodEntry, error)
	DeleteFood(id uuid.UUID) error
	QuickLogFood(req *QuickLogFoodRequest) (entity.FoodEntry, error)
	RecentFoods() []entity.RecentFood

	LogWeight(req *LogWeightRequest) (entity.WeightEntry, error)
	DeleteWeight(id uuid.UUID) error

	AddWater(req *AddWaterRequest) (entity.WaterEntry, error)
	ResetWater(date string) error

	SaveTemplate(req *SaveTemplateRequest) (entity.WorkoutTemplate, error)
	DeleteTemplate(id uuid.UUID) error
	Templates() []entity.WorkoutTemplate
	LogFromTemplate(id uuid.UUID, date string) (entity.Workout, error)

	Export() ([]byte, error)
	Import(data []byte) error
}

// StatsServiceI is the read-only facade over the derived-metrics core.
type StatsServiceI interface {
	Day(date string) entity.DayStats
	Week(refDate string) entity.WeekSummary
	WeightTrend(lastN int) []entity.WeightEntry
	WeeklyWeightAverages(lastN int) []entity.WeekAverage
	Progress() entity.GoalProgress
	FoodByMeal(date string) map[entity.Meal][]entity.FoodEntry
}
