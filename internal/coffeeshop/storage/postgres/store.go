// Package postgres implements the drink store backed by PostgreSQL.
// Recipes are stored as JSONB.
package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/fullstacklab/appsuite/internal/coffeeshop/domain/drink"
	"github.com/fullstacklab/appsuite/internal/coffeeshop/storage"
)

// Store implements storage.DrinkStore backed by PostgreSQL.
type Store struct {
	db *sqlx.DB
}

var _ storage.DrinkStore = (*Store)(nil)

// New creates a Store using the provided database handle.
func New(db *sqlx.DB) *Store {
	return &Store{db: db}
}

func (s *Store) CreateDrink(ctx context.Context, d drink.Drink) (drink.Drink, error) {
	recipe, err := json.Marshal(d.Recipe)
	if err != nil {
		return drink.Drink{}, fmt.Errorf("marshal recipe: %w", err)
	}
	err = s.db.QueryRowContext(ctx, `
		INSERT INTO drinks (title, recipe) VALUES ($1, $2) RETURNING id
	`, d.Title, recipe).Scan(&d.ID)
	if err != nil {
		return drink.Drink{}, err
	}
	return d, nil
}

func (s *Store) GetDrink(ctx context.Context, id int64) (drink.Drink, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, title, recipe FROM drinks WHERE id = $1
	`, id)
	return scanDrink(row)
}

func (s *Store) UpdateDrink(ctx context.Context, d drink.Drink) (drink.Drink, error) {
	recipe, err := json.Marshal(d.Recipe)
	if err != nil {
		return drink.Drink{}, fmt.Errorf("marshal recipe: %w", err)
	}
	result, err := s.db.ExecContext(ctx, `
		UPDATE drinks SET title = $2, recipe = $3 WHERE id = $1
	`, d.ID, d.Title, recipe)
	if err != nil {
		return drink.Drink{}, err
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return drink.Drink{}, storage.ErrNotFound
	}
	return d, nil
}

func (s *Store) DeleteDrink(ctx context.Context, id int64) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM drinks WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return storage.ErrNotFound
	}
	return nil
}

func (s *Store) ListDrinks(ctx context.Context) ([]drink.Drink, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, title, recipe FROM drinks ORDER BY title
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []drink.Drink
	for rows.Next() {
		d, err := scanDrink(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanDrink(row rowScanner) (drink.Drink, error) {
	var d drink.Drink
	var recipe []byte
	err := row.Scan(&d.ID, &d.Title, &recipe)
	if errors.Is(err, sql.ErrNoRows) {
		return drink.Drink{}, storage.ErrNotFound
	}
	if err != nil {
		return drink.Drink{}, err
	}
	if err := json.Unmarshal(recipe, &d.Recipe); err != nil {
		return drink.Drink{}, fmt.Errorf("unmarshal recipe: %w", err)
	}
	return d, nil
}
