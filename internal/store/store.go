package store

import (
	"errors"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"
	errorvalues "github.com/limbo/trkr/internal/error_values"
	"github.com/limbo/trkr/internal/stats"
	"github.com/limbo/trkr/pkg/entity"
)

// recentFoodsCap bounds the quick-relog cache.
const recentFoodsCap = 20

// document is the full persisted state: one JSON file holds the profile,
// every record collection and the sync outbox. Loaded at startup, rewritten
// on every mutation.
type document struct {
	Profile          entity.Profile           `json:"profile"`
	Workouts         []entity.Workout         `json:"workouts"`
	FoodEntries      []entity.FoodEntry       `json:"food_entries"`
	WeightEntries    []entity.WeightEntry     `json:"weight_entries"`
	WaterIntake      []entity.WaterEntry      `json:"water_intake"`
	RecentFoods      []entity.RecentFood      `json:"recent_foods"`
	WorkoutTemplates []entity.WorkoutTemplate `json:"workout_templates"`
	Outbox           []entity.SyncOp          `json:"outbox"`
	NextSeq          uint64                   `json:"next_seq"`
}

// Store owns the record collections. It is an explicit injected dependency,
// never a package-level singleton, so tests can run parallel instances.
// Mutations apply read-modify-write under one mutex: sequential application
// order equals call order, no lost updates.
type Store struct {
	mu   sync.Mutex
	path string
	doc  document
}

func defaultProfile() entity.Profile {
	return entity.Profile{
		DailyCalorieTarget:  2000,
		ProteinTarget:       150,
		CarbsTarget:         250,
		FatTarget:           65,
		WaterTarget:         2000,
		ActivityLevel:       entity.ActivityModerate,
		GoalPace:            entity.PaceModerate,
		WeeklyWorkoutTarget: 5,
	}
}

// New loads the persisted document from path, starting fresh with a default
// profile when no file exists yet.
func New(path string) (*Store, error) {
	s := &Store{path: path}
	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, errors.New("reading store document error: " + err.Error())
		}
		s.doc = document{Profile: defaultProfile(), NextSeq: 1}
		return s, nil
	}
	if err := sonic.Unmarshal(data, &s.doc); err != nil {
		return nil, errors.New("unmarshalling store document error: " + err.Error())
	}
	if s.doc.NextSeq == 0 {
		s.doc.NextSeq = 1
	}
	return s, nil
}

func (s *Store) persistLocked() error {
	data, err := sonic.Marshal(s.doc)
	if err != nil {
		return errors.New("marshalling store document error: " + err.Error())
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return errors.New("writing store document error: " + err.Error())
	}
	return nil
}

func (s *Store) enqueueLocked(action entity.SyncAction, collection entity.SyncCollection, id uuid.UUID) {
	s.doc.Outbox = append(s.doc.Outbox, entity.SyncOp{
		Seq:        s.doc.NextSeq,
		Action:     action,
		Collection: collection,
		RecordID:   id,
	})
	s.doc.NextSeq++
}

// SetProfile replaces the profile. While auto-calculation is enabled the
// stored calorie target is overwritten with a fresh calculator result on
// every profile mutation.
func (s *Store) SetProfile(p entity.Profile) (entity.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p.UseCalculatedCalories {
		p.DailyCalorieTarget = stats.DailyCalorieTarget(p)
	}
	s.doc.Profile = p
	return p, s.persistLocked()
}

func (s *Store) AddWorkout(w entity.Workout) (entity.Workout, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	w.ID = uuid.New()
	w.CreatedAt = time.Now().UTC()
	if w.Name == "" {
		w.Name = string(w.Sport)
	}
	s.doc.Workouts = append(s.doc.Workouts, w)
	s.enqueueLocked(entity.SyncUpsert, entity.CollectionWorkouts, w.ID)
	return w, s.persistLocked()
}

func (s *Store) UpdateWorkout(id uuid.UUID, w entity.Workout) (entity.Workout, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.doc.Workouts {
		if s.doc.Workouts[i].ID == id {
			w.ID = id
			w.CreatedAt = s.doc.Workouts[i].CreatedAt
			if w.Name == "" {
				w.Name = string(w.Sport)
			}
			s.doc.Workouts[i] = w
			s.enqueueLocked(entity.SyncUpsert, entity.CollectionWorkouts, id)
			return w, s.persistLocked()
		}
	}
	return entity.Workout{}, errorvalues.ErrRecordNotFound
}

func (s *Store) DeleteWorkout(id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.doc.Workouts {
		if s.doc.Workouts[i].ID == id {
			s.doc.Workouts = append(s.doc.Workouts[:i], s.doc.Workouts[i+1:]...)
			s.enqueueLocked(entity.SyncDelete, entity.CollectionWorkouts, id)
			return s.persistLocked()
		}
	}
	return errorvalues.ErrRecordNotFound
}

func (s *Store) AddFoodEntry(e entity.FoodEntry) (entity.FoodEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e.ID = uuid.New()
	e.CreatedAt = time.Now().UTC()
	if e.Quantity == 0 {
		e.Quantity = 1
	}
	if e.Unit == "" {
		e.Unit = "serving"
	}
	s.doc.FoodEntries = append(s.doc.FoodEntries, e)
	s.touchRecentLocked(e)
	s.enqueueLocked(entity.SyncUpsert, entity.CollectionFoodEntries, e.ID)
	return e, s.persistLocked()
}

// touchRecentLocked keeps the quick-relog cache deduplicated by
// case-insensitive name, most recently used first.
func (s *Store) touchRecentLocked(e entity.FoodEntry) {
	recents := s.doc.RecentFoods
	for i := range recents {
		if strings.EqualFold(recents[i].FoodName, e.FoodName) {
			item := recents[i]
			copy(recents[1:i+1], recents[:i])
			recents[0] = item
			return
		}
	}
	recents = append([]entity.RecentFood{{
		FoodName: e.FoodName,
		Calories: e.Calories,
		Protein:  e.Protein,
		Carbs:    e.Carbs,
		Fat:      e.Fat,
		Unit:     e.Unit,
	}}, recents...)
	if len(recents) > recentFoodsCap {
		recents = recents[:recentFoodsCap]
	}
	s.doc.RecentFoods = recents
}

func (s *Store) UpdateFoodEntry(id uuid.UUID, e entity.FoodEntry) (entity.FoodEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.doc.FoodEntries {
		if s.doc.FoodEntries[i].ID == id {
			e.ID = id
			e.CreatedAt = s.doc.FoodEntries[i].CreatedAt
			if e.Quantity == 0 {
				e.Quantity = 1
			}
			s.doc.FoodEntries[i] = e
			s.enqueueLocked(entity.SyncUpsert, entity.CollectionFoodEntries, id)
			return e, s.persistLocked()
		}
	}
	return entity.FoodEntry{}, errorvalues.ErrRecordNotFound
}

func (s *Store) DeleteFoodEntry(id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.doc.FoodEntries {
		if s.doc.FoodEntries[i].ID == id {
			s.doc.FoodEntries = append(s.doc.FoodEntries[:i], s.doc.FoodEntries[i+1:]...)
			s.enqueueLocked(entity.SyncDelete, entity.CollectionFoodEntries, id)
			return s.persistLocked()
		}
	}
	return errorvalues.ErrRecordNotFound
}

// AddWeightEntry appends the sample and, while auto-calculation is enabled,
// promotes it to the profile's current weight and refreshes the calorie target.
func (s *Store) AddWeightEntry(e entity.WeightEntry) (entity.WeightEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e.ID = uuid.New()
	e.CreatedAt = time.Now().UTC()
	s.doc.WeightEntries = append(s.doc.WeightEntries, e)
	if s.doc.Profile.UseCalculatedCalories {
		kg := e.WeightKG
		s.doc.Profile.CurrentWeight = &kg
		s.doc.Profile.DailyCalorieTarget = stats.DailyCalorieTarget(s.doc.Profile)
	}
	s.enqueueLocked(entity.SyncUpsert, entity.CollectionWeightEntries, e.ID)
	return e, s.persistLocked()
}

func (s *Store) DeleteWeightEntry(id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.doc.WeightEntries {
		if s.doc.WeightEntries[i].ID == id {
			s.doc.WeightEntries = append(s.doc.WeightEntries[:i], s.doc.WeightEntries[i+1:]...)
			s.enqueueLocked(entity.SyncDelete, entity.CollectionWeightEntries, id)
			return s.persistLocked()
		}
	}
	return errorvalues.ErrRecordNotFound
}

// AddWater accumulates milliliters into the date's single entry, creating it
// on first use. Water stays local-only, no outbox op.
func (s *Store) AddWater(date string, amount int) (entity.WaterEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.doc.WaterIntake {
		if s.doc.WaterIntake[i].Date == date {
			s.doc.WaterIntake[i].Amount += amount
			return s.doc.WaterIntake[i], s.persistLocked()
		}
	}
	e := entity.WaterEntry{ID: uuid.New(), Date: date, Amount: amount}
	s.doc.WaterIntake = append(s.doc.WaterIntake, e)
	return e, s.persistLocked()
}

func (s *Store) ResetWater(date string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.doc.WaterIntake {
		if s.doc.WaterIntake[i].Date == date {
			s.doc.WaterIntake = append(s.doc.WaterIntake[:i], s.doc.WaterIntake[i+1:]...)
			return s.persistLocked()
		}
	}
	return nil
}

func (s *Store) AddWorkoutTemplate(t entity.WorkoutTemplate) (entity.WorkoutTemplate, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t.ID = uuid.New()
	t.CreatedAt = time.Now().UTC()
	if t.Name == "" {
		t.Name = string(t.Sport)
	}
	s.doc.WorkoutTemplates = append(s.doc.WorkoutTemplates, t)
	return t, s.persistLocked()
}

func (s *Store) DeleteWorkoutTemplate(id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.doc.WorkoutTemplates {
		if s.doc.WorkoutTemplates[i].ID == id {
			s.doc.WorkoutTemplates = append(s.doc.WorkoutTemplates[:i], s.doc.WorkoutTemplates[i+1:]...)
			return s.persistLocked()
		}
	}
	return errorvalues.ErrTemplateNotFound
}

// ReplaceCollections swaps in the remote state wholesale after a bulk pull.
// Queued ops are dropped: the pull supersedes anything still pending.
func (s *Store) ReplaceCollections(workouts []entity.Workout, food []entity.FoodEntry, weights []entity.WeightEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.doc.Workouts = workouts
	s.doc.FoodEntries = food
	s.doc.WeightEntries = weights
	s.doc.Outbox = nil
	return s.persistLocked()
}

// PendingOps returns a copy of the outbox in enqueue order.
func (s *Store) PendingOps() []entity.SyncOp {
	s.mu.Lock()
	defer s.mu.Unlock()
	ops := make([]entity.SyncOp, len(s.doc.Outbox))
	copy(ops, s.doc.Outbox)
	return ops
}

// AckThrough drops every queued op with Seq <= seq once it reached the remote.
func (s *Store) AckThrough(seq uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.doc.Outbox[:0]
	for _, op := range s.doc.Outbox {
		if op.Seq > seq {
			kept = append(kept, op)
		}
	}
	s.doc.Outbox = kept
	return s.persistLocked()
}

// Export dumps the entire persisted document verbatim.
func (s *Store) Export() ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, err := sonic.Marshal(s.doc)
	if err != nil {
		return nil, errors.New("marshalling store document error: " + err.Error())
	}
	return data, nil
}

// Import replaces the full store state with a previously exported document.
func (s *Store) Import(data []byte) error {
	var doc document
	if err := sonic.Unmarshal(data, &doc); err != nil {
		return errors.New("unmarshalling imported document error: " + err.Error())
	}
	if doc.NextSeq == 0 {
		doc.NextSeq = 1
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.doc = doc
	return s.persistLocked()
}
