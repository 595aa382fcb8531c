package store

import (
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/limbo/trkr/pkg/entity"
)

// Read side of the store. Everything returns copies so callers can't reach
// into the guarded collections.

func (s *Store) Profile() entity.Profile {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.doc.Profile
}

func (s *Store) FoodByDate(date string) []entity.FoodEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []entity.FoodEntry
	for _, e := range s.doc.FoodEntries {
		if e.Date == date {
			out = append(out, e)
		}
	}
	return out
}

func (s *Store) WorkoutsByDate(date string) []entity.Workout {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []entity.Workout
	for _, w := range s.doc.Workouts {
		if w.Date == date {
			out = append(out, w)
		}
	}
	return out
}

// WeightByDate resolves duplicate rows on one date deterministically:
// the last inserted record wins.
func (s *Store) WeightByDate(date string) *entity.WeightEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	var found *entity.WeightEntry
	for i := range s.doc.WeightEntries {
		e := s.doc.WeightEntries[i]
		if e.Date != date {
			continue
		}
		if found == nil || e.CreatedAt.After(found.CreatedAt) {
			found = &e
		}
	}
	if found == nil {
		return nil
	}
	cp := *found
	return &cp
}

func (s *Store) WaterByDate(date string) *entity.WaterEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, e := range s.doc.WaterIntake {
		if e.Date == date {
			cp := e
			return &cp
		}
	}
	return nil
}

// LatestWeight picks by descending date, breaking same-date ties by
// insertion time.
func (s *Store) LatestWeight() *entity.WeightEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	var latest *entity.WeightEntry
	for i := range s.doc.WeightEntries {
		e := s.doc.WeightEntries[i]
		if latest == nil || e.Date > latest.Date ||
			(e.Date == latest.Date && e.CreatedAt.After(latest.CreatedAt)) {
			latest = &e
		}
	}
	if latest == nil {
		return nil
	}
	cp := *latest
	return &cp
}

func (s *Store) WeightsAscending(lastN int) []entity.WeightEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]entity.WeightEntry, len(s.doc.WeightEntries))
	copy(out, s.doc.WeightEntries)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date < out[j].Date
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	if lastN > 0 && len(out) > lastN {
		out = out[len(out)-lastN:]
	}
	return out
}

// CountWorkoutsOnOrAfter relies on the canonical YYYY-MM-DD layout ordering
// lexically.
func (s *Store) CountWorkoutsOnOrAfter(date string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	count := 0
	for _, w := range s.doc.Workouts {
		if w.Date >= date {
			count++
		}
	}
	return count
}

func (s *Store) RecentFoods() []entity.RecentFood {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]entity.RecentFood, len(s.doc.RecentFoods))
	copy(out, s.doc.RecentFoods)
	return out
}

func (s *Store) FindRecentFood(name string) (entity.RecentFood, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, f := range s.doc.RecentFoods {
		if strings.EqualFold(f.FoodName, name) {
			return f, true
		}
	}
	return entity.RecentFood{}, false
}

func (s *Store) WorkoutTemplates() []entity.WorkoutTemplate {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]entity.WorkoutTemplate, len(s.doc.WorkoutTemplates))
	copy(out, s.doc.WorkoutTemplates)
	return out
}

func (s *Store) WorkoutTemplateByID(id uuid.UUID) (entity.WorkoutTemplate, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, t := range s.doc.WorkoutTemplates {
		if t.ID == id {
			return t, true
		}
	}
	return entity.WorkoutTemplate{}, false
}

func (s *Store) WorkoutByID(id uuid.UUID) (entity.Workout, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, w := range s.doc.Workouts {
		if w.ID == id {
			return w, true
		}
	}
	return entity.Workout{}, false
}

func (s *Store) FoodEntryByID(id uuid.UUID) (entity.FoodEntry, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, e := range s.doc.FoodEntries {
		if e.ID == id {
			return e, true
		}
	}
	return entity.FoodEntry{}, false
}

func (s *Store) WeightEntryByID(id uuid.UUID) (entity.WeightEntry, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, e := range s.doc.WeightEntries {
		if e.ID == id {
			return e, true
		}
	}
	return entity.WeightEntry{}, false
}
