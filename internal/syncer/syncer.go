package syncer

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/limbo/trkr/internal/repository"
	"github.com/limbo/trkr/pkg/entity"
)

// LocalStore is what the syncer needs from the record store: the durable
// outbox plus record lookups for building upsert payloads.
type LocalStore interface {
	PendingOps() []entity.SyncOp
	AckThrough(seq uint64) error
	WorkoutByID(id uuid.UUID) (entity.Workout, bool)
	FoodEntryByID(id uuid.UUID) (entity.FoodEntry, bool)
	WeightEntryByID(id uuid.UUID) (entity.WeightEntry, bool)
	ReplaceCollections(workouts []entity.Workout, food []entity.FoodEntry, weights []entity.WeightEntry) error
}

// Syncer drains the store's outbox against the remote collections in order.
// Ops are idempotent (upserts keyed by record id), so a drain interrupted
// mid-way just replays from the first unacked op. Without a signed-in user
// everything stays queued, which is the offline/anonymous mode.
type Syncer struct {
	store    LocalStore
	workouts repository.WorkoutsRepositoryI
	food     repository.FoodEntriesRepositoryI
	weights  repository.WeightEntriesRepositoryI
	interval time.Duration

	mu      sync.Mutex
	userID  uuid.UUID
	hasUser bool
}

func New(store LocalStore, workouts repository.WorkoutsRepositoryI, food repository.FoodEntriesRepositoryI, weights repository.WeightEntriesRepositoryI, interval time.Duration) *Syncer {
	if store == nil || workouts == nil || food == nil || weights == nil {
		log.Fatal("provided nil dependency to syncer")
	}
	if interval <= 0 {
		interval = 30 * time.Second
	}
	return &Syncer{
		store:    store,
		workouts: workouts,
		food:     food,
		weights:  weights,
		interval: interval,
	}
}

func (s *Syncer) SetUser(uid uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.userID = uid
	s.hasUser = true
}

func (s *Syncer) ClearUser() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.userID = uuid.UUID{}
	s.hasUser = false
}

func (s *Syncer) user() (uuid.UUID, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.userID, s.hasUser
}

// Pending reports how many queued ops haven't reached the remote yet.
func (s *Syncer) Pending() int {
	return len(s.store.PendingOps())
}

// Run drains on a fixed tick until ctx is cancelled. A failed drain leaves
// the remaining ops queued and retries them on the next tick.
func (s *Syncer) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, ok := s.user(); !ok {
				continue
			}
			if err := s.Drain(ctx); err != nil {
				slog.Error("sync drain failed", slog.String("error", err.Error()))
			}
		}
	}
}

// Drain pushes queued ops in sequence order, acking each as it lands so a
// later failure never re-queues already-synced work.
func (s *Syncer) Drain(ctx context.Context) error {
	uid, ok := s.user()
	if !ok {
		return errors.New("no signed in user for sync")
	}
	for _, op := range s.store.PendingOps() {
		if err := s.apply(ctx, uid, op); err != nil {
			return errors.New("applying sync op error: " + err.Error())
		}
		if err := s.store.AckThrough(op.Seq); err != nil {
			return errors.New("acking sync op error: " + err.Error())
		}
	}
	return nil
}

func (s *Syncer) apply(ctx context.Context, uid uuid.UUID, op entity.SyncOp) error {
	switch op.Collection {
	case entity.CollectionWorkouts:
		if op.Action == entity.SyncDelete {
			return s.workouts.Delete(ctx, uid, op.RecordID)
		}
		w, found := s.store.WorkoutByID(op.RecordID)
		if !found {
			// Record vanished locally, the queued delete that follows covers it.
			return nil
		}
		return s.workouts.Upsert(ctx, uid, &w)
	case entity.CollectionFoodEntries:
		if op.Action == entity.SyncDelete {
			return s.food.Delete(ctx, uid, op.RecordID)
		}
		e, found := s.store.FoodEntryByID(op.RecordID)
		if !found {
			return nil
		}
		return s.food.Upsert(ctx, uid, &e)
	case entity.CollectionWeightEntries:
		if op.Action == entity.SyncDelete {
			return s.weights.Delete(ctx, uid, op.RecordID)
		}
		e, found := s.store.WeightEntryByID(op.RecordID)
		if !found {
			return nil
		}
		return s.weights.Upsert(ctx, uid, &e)
	default:
		return errors.New("unknown sync collection: " + string(op.Collection))
	}
}

// PullAll fetches the user's full remote state and replaces the local
// collections wholesale. No merging: the pull wins.
func (s *Syncer) PullAll(ctx context.Context) error {
	uid, ok := s.user()
	if !ok {
		return errors.New("no signed in user for sync")
	}
	workouts, err := s.workouts.ListByUser(ctx, uid)
	if err != nil {
		return errors.New("pulling workouts error: " + err.Error())
	}
	food, err := s.food.ListByUser(ctx, uid)
	if err != nil {
		return errors.New("pulling food entries error: " + err.Error())
	}
	weights, err := s.weights.ListByUser(ctx, uid)
	if err != nil {
		return errors.New("pulling weight entries error: " + err.Error())
	}
	return s.store.ReplaceCollections(workouts, food, weights)
}
