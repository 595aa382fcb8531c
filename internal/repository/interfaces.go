package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/limbo/trkr/pkg/entity"
)

type UsersRepositoryI interface {
	// Creates new user in database
	Create(ctx context.Context, user *entity.User) error
	// Looks up user by name. Can be used for login
	FindByName(ctx context.Context, name string) (*entity.User, error)
	// Looks up user by uid. Can be used for authorization middleware
	FindByID(ctx context.Context, uid uuid.UUID) (*entity.User, error)
	// Deletes user and everything synced under them
	Delete(ctx context.Context, uid uuid.UUID) error
}

// WorkoutsRepositoryI is the remote side of the workouts collection. Upsert
// is keyed by record id so replaying a queued op is harmless.
type WorkoutsRepositoryI interface {
	Upsert(ctx context.Context, userID uuid.UUID, w *entity.Workout) error
	Delete(ctx context.Context, userID, id uuid.UUID) error
	// Bulk pull: full set for the user, used to replace local state wholesale
	ListByUser(ctx context.Context, userID uuid.UUID) ([]entity.Workout, error)
}

type FoodEntriesRepositoryI interface {
	Upsert(ctx context.Context, userID uuid.UUID, e *entity.FoodEntry) error
	Delete(ctx context.Context, userID, id uuid.UUID) error
	ListByUser(ctx context.Context, userID uuid.UUID) ([]entity.FoodEntry, error)
}

type WeightEntriesRepositoryI interface {
	Upsert(ctx context.Context, userID uuid.UUID, e *entity.WeightEntry) error
	Delete(ctx context.Context, userID, id uuid.UUID) error
	ListByUser(ctx context.Context, userID uuid.UUID) ([]entity.WeightEntry, error)
}

type DBConfig interface {
	ConnString() string
}

type PgConnection interface {
	Ping(ctx context.Context) error
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Begin(ctx context.Context) (pgx.Tx, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type PGCfg struct {
	Address  string
	Username string
	Password string
	DB       string
}

func (pgcfg *PGCfg) ConnString() string {
	return fmt.Sprintf("postgresql://%s:%s@%s/%s", pgcfg.Username, pgcfg.Password, pgcfg.Address, pgcfg.DB)
}
