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

type WeightEntriesRepository struct {
	conn PgConnection
}

func NewWeightEntriesRepo(cfg DBConfig) *WeightEntriesRepository {
	return &WeightEntriesRepository{
		conn: newPool(cfg, "weightEntriesRepo"),
	}
}

func NewWeightEntriesRepoWithConn(conn PgConnection) *WeightEntriesRepository {
	err := conn.Ping(context.Background())
	if err != nil {
		log.Fatal("error while pinging connection for weightEntriesRepo: " + err.Error())
	}
	return &WeightEntriesRepository{
		conn: conn,
	}
}

func (wr *WeightEntriesRepository) Upsert(ctx context.Context, userID uuid.UUID, e *entity.WeightEntry) error {
	if e == nil {
		return errors.New("weight entry is nil")
	}
	_, err := wr.conn.Exec(ctx, `INSERT INTO weight_entries
		(id, user_id, date, weight_kg, notes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO UPDATE SET
		date = EXCLUDED.date, weight_kg = EXCLUDED.weight_kg, notes = EXCLUDED.notes;`,
		e.ID, userID, e.Date, e.WeightKG, e.Notes, e.CreatedAt,
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
		return errors.New("upserting weight entry db error: " + err.Error())
	}
	return nil
}

func (wr *WeightEntriesRepository) Delete(ctx context.Context, userID, id uuid.UUID) error {
	_, err := wr.conn.Exec(ctx, `DELETE FROM weight_entries WHERE id = $1 AND user_id = $2;`, id, userID)
	if err != nil {
		return errors.New("deleting weight entry db error: " + err.Error())
	}
	return nil
}

func (wr *WeightEntriesRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]entity.WeightEntry, error) {
	entries := make([]entity.WeightEntry, 0)
	rows, err := wr.conn.Query(ctx, `SELECT id, date, weight_kg, notes, created_at
		FROM weight_entries WHERE user_id = $1 ORDER BY created_at;`, userID)
	if err != nil {
		return nil, errors.New("listing weight entries by user error: " + err.Error())
	}
	defer rows.Close()
	for rows.Next() {
		var e entity.WeightEntry
		err = rows.Scan(&e.ID, &e.Date, &e.WeightKG, &e.Notes, &e.CreatedAt)
		if err != nil {
			return nil, errors.New("scanning weight entry error: " + err.Error())
		}
		entries = append(entries, e)
	}
	if rows.Err() != nil {
		return nil, errors.New("unexpected error after scanning: " + rows.Err().Error())
	}
	return entries, nil
}
