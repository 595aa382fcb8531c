package repository

import (
	"context"
	"errors"
	"log"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	errorvalues "github.com/limbo/trkr/internal/error_values"
	"github.com/limbo/trkr/pkg/entity"
)

type WorkoutsRepository struct {
	conn PgConnection
}

func NewWorkoutsRepo(cfg DBConfig) *WorkoutsRepository {
	return &WorkoutsRepository{
		conn: newPool(cfg, "workoutsRepo"),
	}
}

func NewWorkoutsRepoWithConn(conn PgConnection) *WorkoutsRepository {
	err := conn.Ping(context.Background())
	if err != nil {
		log.Fatal("error while pinging connection for workoutsRepo: " + err.Error())
	}
	return &WorkoutsRepository{
		conn: conn,
	}
}

func (wr *WorkoutsRepository) Upsert(ctx context.Context, userID uuid.UUID, w *entity.Workout) error {
	if w == nil {
		return errors.New("workout is nil")
	}
	_, err := wr.conn.Exec(ctx, `INSERT INTO workouts
		(id, user_id, date, sport, name, duration_minutes, distance, environment, notes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (id) DO UPDATE SET
		date = EXCLUDED.date, sport = EXCLUDED.sport, name = EXCLUDED.name,
		duration_minutes = EXCLUDED.duration_minutes, distance = EXCLUDED.distance,
		environment = EXCLUDED.environment, notes = EXCLUDED.notes;`,
		w.ID, userID, w.Date, w.Sport, w.Name, w.DurationMinutes, w.Distance, w.Environment, w.Notes, w.CreatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			// FK violation
			case "23503":
				return errorvalues.ErrOwnerNotFound
			}
		}
		return errors.New("upserting workout db error: " + err.Error())
	}
	return nil
}

func (wr *WorkoutsRepository) Delete(ctx context.Context, userID, id uuid.UUID) error {
	// Missing rows are fine: a replayed delete must stay idempotent.
	_, err := wr.conn.Exec(ctx, `DELETE FROM workouts WHERE id = $1 AND user_id = $2;`, id, userID)
	if err != nil {
		return errors.New("deleting workout db error: " + err.Error())
	}
	return nil
}

func (wr *WorkoutsRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]entity.Workout, error) {
	workouts := make([]entity.Workout, 0)
	rows, err := wr.conn.Query(ctx, `SELECT id, date, sport, name, duration_minutes, distance, environment, notes, created_at
		FROM workouts WHERE user_id = $1 ORDER BY created_at;`, userID)
	if err != nil {
		return nil, errors.New("listing workouts by user error: " + err.Error())
	}
	defer rows.Close()
	for rows.Next() {
		var w entity.Workout
		err = rows.Scan(&w.ID, &w.Date, &w.Sport, &w.Name, &w.DurationMinutes, &w.Distance, &w.Environment, &w.Notes, &w.CreatedAt)
		if err != nil {
			return nil, errors.New("scanning workout error: " + err.Error())
		}
		workouts = append(workouts, w)
	}
	if rows.Err() != nil {
		return nil, errors.New("unexpected error after scanning: " + rows.Err().Error())
	}
	return workouts, nil
}
