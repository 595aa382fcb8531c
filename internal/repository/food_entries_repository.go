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

type FoodEntriesRepository struct {
	conn PgConnection
}

func NewFoodEntriesRepo(cfg DBConfig) *FoodEntriesRepository {
	return &FoodEntriesRepository{
		conn: newPool(cfg, "foodEntriesRepo"),
	}
}

func NewFoodEntriesRepoWithConn(conn PgConnection) *FoodEntriesRepository {
	err := conn.Ping(context.Background())
	if err != nil {
		log.Fatal("error while pinging connection for foodEntriesRepo: " + err.Error())
	}
	return &FoodEntriesRepository{
		conn: conn,
	}
}

// Upsert keeps nil macros nil on the remote side too: quick-add entries never
// fabricate macro data.
func (fr *FoodEntriesRepository) Upsert(ctx context.Context, userID uuid.UUID, e *entity.FoodEntry) error {
	if e == nil {
		return errors.New("food entry is nil")
	}
	_, err := fr.conn.Exec(ctx, `INSERT INTO food_entries
		(id, user_id, date, meal, food_name, calories, protein, carbs, fat, quantity, unit, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		ON CONFLICT (id) DO UPDATE SET
		date = EXCLUDED.date, meal = EXCLUDED.meal, food_name = EXCLUDED.food_name,
		calories = EXCLUDED.calories, protein = EXCLUDED.protein, carbs = EXCLUDED.carbs,
		fat = EXCLUDED.fat, quantity = EXCLUDED.quantity, unit = EXCLUDED.unit;`,
		e.ID, userID, e.Date, e.Meal, e.FoodName, e.Calories, e.Protein, e.Carbs, e.Fat, e.Quantity, e.Unit, e.CreatedAt,
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
		return errors.New("upserting food entry db error: " + err.Error())
	}
	return nil
}

func (fr *FoodEntriesRepository) Delete(ctx context.Context, userID, id uuid.UUID) error {
	_, err := fr.conn.Exec(ctx, `DELETE FROM food_entries WHERE id = $1 AND user_id = $2;`, id, userID)
	if err != nil {
		return errors.New("deleting food entry db error: " + err.Error())
	}
	return nil
}

func (fr *FoodEntriesRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]entity.FoodEntry, error) {
	entries := make([]entity.FoodEntry, 0)
	rows, err := fr.conn.Query(ctx, `SELECT id, date, meal, food_name, calories, protein, carbs, fat, quantity, unit, created_at
		FROM food_entries WHERE user_id = $1 ORDER BY created_at;`, userID)
	if err != nil {
		return nil, errors.New("listing food entries by user error: " + err.Error())
	}
	defer rows.Close()
	for rows.Next() {
		var e entity.FoodEntry
		err = rows.Scan(&e.ID, &e.Date, &e.Meal, &e.FoodName, &e.Calories, &e.Protein, &e.Carbs, &e.Fat, &e.Quantity, &e.Unit, &e.CreatedAt)
		if err != nil {
			return nil, errors.New("scanning food entry error: " + err.Error())
		}
		entries = append(entries, e)
	}
	if rows.Err() != nil {
		return nil, errors.New("unexpected error after scanning: " + rows.Err().Error())
	}
	return entries, nil
}
