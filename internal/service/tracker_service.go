package service

import (
	"errors"
	"log"
	"time"

	"github.com/google/uuid"
	errorvalues "github.com/limbo/trkr/internal/error_values"
	"github.com/limbo/trkr/pkg/entity"
)

// TrackerService applies validated mutations to the local record store.
// Writes land locally first and are immediately visible to reads; remote
// replication is the syncer's business, driven by the store's outbox.
type TrackerService struct {
	store RecordStoreI
}

func NewTrackerService(recordStore RecordStoreI) *TrackerService {
	if recordStore == nil {
		log.Fatal("provided nil record store")
	}
	return &TrackerService{
		store: recordStore,
	}
}

func (ts *TrackerService) Profile() entity.Profile {
	return ts.store.Profile()
}

// UpdateProfile merges the non-nil request fields over the stored profile.
// The store refreshes the calorie target itself when auto-calculation is on.
func (ts *TrackerService) UpdateProfile(req *ProfileUpdateRequest) (entity.Profile, error) {
	if err := validateStruct(req); err != nil {
		return entity.Profile{}, err
	}
	p := ts.store.Profile()
	if req.Name != nil {
		p.Name = *req.Name
	}
	if req.DailyCalorieTarget != nil {
		p.DailyCalorieTarget = *req.DailyCalorieTarget
	}
	if req.ProteinTarget != nil {
		p.ProteinTarget = *req.ProteinTarget
	}
	if req.CarbsTarget != nil {
		p.CarbsTarget = *req.CarbsTarget
	}
	if req.FatTarget != nil {
		p.FatTarget = *req.FatTarget
	}
	if req.WaterTarget != nil {
		p.WaterTarget = *req.WaterTarget
	}
	if req.CurrentWeight != nil {
		p.CurrentWeight = req.CurrentWeight
	}
	if req.TargetWeight != nil {
		p.TargetWeight = req.TargetWeight
	}
	if req.Height != nil {
		p.Height = req.Height
	}
	if req.Age != nil {
		p.Age = req.Age
	}
	if req.Gender != nil {
		p.Gender = req.Gender
	}
	if req.ActivityLevel != nil {
		p.ActivityLevel = *req.ActivityLevel
	}
	if req.GoalPace != nil {
		p.GoalPace = *req.GoalPace
	}
	if req.WeeklyWorkoutTarget != nil {
		p.WeeklyWorkoutTarget = *req.WeeklyWorkoutTarget
	}
	if req.UseCalculatedCalories != nil {
		p.UseCalculatedCalories = *req.UseCalculatedCalories
	}
	updated, err := ts.store.SetProfile(p)
	if err != nil {
		return entity.Profile{}, errors.New("record store error: " + err.Error())
	}
	return updated, nil
}

func (ts *TrackerService) LogWorkout(req *LogWorkoutRequest) (entity.Workout, error) {
	if err := validateStruct(req); err != nil {
		return entity.Workout{}, err
	}
	w, err := ts.store.AddWorkout(entity.Workout{
		Date:            req.Date,
		Sport:           req.Sport,
		Name:            req.Name,
		DurationMinutes: req.DurationMinutes,
		Distance:        req.Distance,
		Environment:     req.Environment,
		Notes:           req.Notes,
	})
	if err != nil {
		return entity.Workout{}, errors.New("record store error: " + err.Error())
	}
	return w, nil
}

func (ts *TrackerService) UpdateWorkout(id uuid.UUID, req *LogWorkoutRequest) (entity.Workout, error) {
	if err := validateStruct(req); err != nil {
		return entity.Workout{}, err
	}
	w, err := ts.store.UpdateWorkout(id, entity.Workout{
		Date:            req.Date,
		Sport:           req.Sport,
		Name:            req.Name,
		DurationMinutes: req.DurationMinutes,
		Distance:        req.Distance,
		Environment:     req.Environment,
		Notes:           req.Notes,
	})
	if err != nil {
		if errors.Is(err, errorvalues.ErrRecordNotFound) {
			return entity.Workout{}, err
		}
		return entity.Workout{}, errors.New("record store error: " + err.Error())
	}
	return w, nil
}

func (ts *TrackerService) DeleteWorkout(id uuid.UUID) error {
	err := ts.store.DeleteWorkout(id)
	if err != nil {
		if errors.Is(err, errorvalues.ErrRecordNotFound) {
			return err
		}
		return errors.New("record store error: " + err.Error())
	}
	return nil
}

func (ts *TrackerService) LogFood(req *LogFoodRequest) (entity.FoodEntry, error) {
	if err := validateStruct(req); err != nil {
		return entity.FoodEntry{}, err
	}
	e, err := ts.store.AddFoodEntry(entity.FoodEntry{
		Date:     req.Date,
		Meal:     req.Meal,
		FoodName: req.FoodName,
		Calories: req.Calories,
		Protein:  req.Protein,
		Carbs:    req.Carbs,
		Fat:      req.Fat,
		Quantity: req.Quantity,
		Unit:     req.Unit,
	})
	if err != nil {
		return entity.FoodEntry{}, errors.New("record store error: " + err.Error())
	}
	return e, nil
}

func (ts *TrackerService) UpdateFood(id uuid.UUID, req *LogFoodRequest) (entity.FoodEntry, error) {
	if err := validateStruct(req); err != nil {
		return entity.FoodEntry{}, err
	}
	e, err := ts.store.UpdateFoodEntry(id, entity.FoodEntry{
		Date:     req.Date,
		Meal:     req.Meal,
		FoodName: req.FoodName,
		Calories: req.Calories,
		Protein:  req.Protein,
		Carbs:    req.Carbs,
		Fat:      req.Fat,
		Quantity: req.Quantity,
		Unit:     req.Unit,
	})
	if err != nil {
		if errors.Is(err, errorvalues.ErrRecordNotFound) {
			return entity.FoodEntry{}, err
		}
		return entity.FoodEntry{}, errors.New("record store error: " + err.Error())
	}
	return e, nil
}

func (ts *TrackerService) DeleteFood(id uuid.UUID) error {
	err := ts.store.DeleteFoodEntry(id)
	if err != nil {
		if errors.Is(err, errorvalues.ErrRecordNotFound) {
			return err
		}
		return errors.New("record store error: " + err.Error())
	}
	return nil
}

// QuickLogFood re-logs a food from the recents cache as a quantity-1 entry,
// defaulting to today's snack slot.
func (ts *TrackerService) QuickLogFood(req *QuickLogFoodRequest) (entity.FoodEntry, error) {
	if err := validateStruct(req); err != nil {
		return entity.FoodEntry{}, err
	}
	recent, found := ts.store.FindRecentFood(req.FoodName)
	if !found {
		return entity.FoodEntry{}, errorvalues.ErrFoodNotInRecents
	}
	meal := req.Meal
	if meal == "" {
		meal = entity.MealSnack
	}
	date := req.Date
	if date == "" {
		date = time.Now().UTC().Format(entity.DateLayout)
	}
	e, err := ts.store.AddFoodEntry(entity.FoodEntry{
		Date:     date,
		Meal:     meal,
		FoodName: recent.FoodName,
		Calories: recent.Calories,
		Protein:  recent.Protein,
		Carbs:    recent.Carbs,
		Fat:      recent.Fat,
		Quantity: 1,
		Unit:     recent.Unit,
	})
	if err != nil {
		return entity.FoodEntry{}, errors.New("record store error: " + err.Error())
	}
	return e, nil
}

func (ts *TrackerService) RecentFoods() []entity.RecentFood {
	return ts.store.RecentFoods()
}

func (ts *TrackerService) LogWeight(req *LogWeightRequest) (entity.WeightEntry, error) {
	if err := validateStruct(req); err != nil {
		return entity.WeightEntry{}, err
	}
	e, err := ts.store.AddWeightEntry(entity.WeightEntry{
		Date:     req.Date,
		WeightKG: req.WeightKG,
		Notes:    req.Notes,
	})
	if err != nil {
		return entity.WeightEntry{}, errors.New("record store error: " + err.Error())
	}
	return e, nil
}

func (ts *TrackerService) DeleteWeight(id uuid.UUID) error {
	err := ts.store.DeleteWeightEntry(id)
	if err != nil {
		if errors.Is(err, errorvalues.ErrRecordNotFound) {
			return err
		}
		return errors.New("record store error: " + err.Error())
	}
	return nil
}

func (ts *TrackerService) AddWater(req *AddWaterRequest) (entity.WaterEntry, error) {
	if err := validateStruct(req); err != nil {
		return entity.WaterEntry{}, err
	}
	date := req.Date
	if date == "" {
		date = time.Now().UTC().Format(entity.DateLayout)
	}
	e, err := ts.store.AddWater(date, req.Amount)
	if err != nil {
		return entity.WaterEntry{}, errors.New("record store error: " + err.Error())
	}
	return e, nil
}

func (ts *TrackerService) ResetWater(date string) error {
	if date == "" {
		date = time.Now().UTC().Format(entity.DateLayout)
	}
	if err := ts.store.ResetWater(date); err != nil {
		return errors.New("record store error: " + err.Error())
	}
	return nil
}

func (ts *TrackerService) SaveTemplate(req *SaveTemplateRequest) (entity.WorkoutTemplate, error) {
	if err := validateStruct(req); err != nil {
		return entity.WorkoutTemplate{}, err
	}
	t, err := ts.store.AddWorkoutTemplate(entity.WorkoutTemplate{
		Sport:           req.Sport,
		Name:            req.Name,
		DurationMinutes: req.DurationMinutes,
		Distance:        req.Distance,
		Environment:     req.Environment,
	})
	if err != nil {
		return entity.WorkoutTemplate{}, errors.New("record store error: " + err.Error())
	}
	return t, nil
}

func (ts *TrackerService) DeleteTemplate(id uuid.UUID) error {
	err := ts.store.DeleteWorkoutTemplate(id)
	if err != nil {
		if errors.Is(err, errorvalues.ErrTemplateNotFound) {
			return err
		}
		return errors.New("record store error: " + err.Error())
	}
	return nil
}

func (ts *TrackerService) Templates() []entity.WorkoutTemplate {
	return ts.store.WorkoutTemplates()
}

// LogFromTemplate creates a workout from a saved template, dated today when
// no date is given.
func (ts *TrackerService) LogFromTemplate(id uuid.UUID, date string) (entity.Workout, error) {
	t, found := ts.store.WorkoutTemplateByID(id)
	if !found {
		return entity.Workout{}, errorvalues.ErrTemplateNotFound
	}
	if date == "" {
		date = time.Now().UTC().Format(entity.DateLayout)
	} else if _, err := time.Parse(entity.DateLayout, date); err != nil {
		return entity.Workout{}, errors.New("invalid date: " + err.Error())
	}
	w, err := ts.store.AddWorkout(entity.Workout{
		Date:            date,
		Sport:           t.Sport,
		Name:            t.Name,
		DurationMinutes: t.DurationMinutes,
		Distance:        t.Distance,
		Environment:     t.Environment,
	})
	if err != nil {
		return entity.Workout{}, errors.New("record store error: " + err.Error())
	}
	return w, nil
}

func (ts *TrackerService) Export() ([]byte, error) {
	data, err := ts.store.Export()
	if err != nil {
		return nil, errors.New("record store error: " + err.Error())
	}
	return data, nil
}

func (ts *TrackerService) Import(data []byte) error {
	if err := ts.store.Import(data); err != nil {
		return errors.New("record store error: " + err.Error())
	}
	return nil
}
