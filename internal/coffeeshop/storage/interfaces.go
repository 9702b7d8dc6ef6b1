// Package storage defines the persistence interfaces for the coffee shop API.
package storage

import (
	"context"
	"errors"

	"github.com/fullstacklab/appsuite/internal/coffeeshop/domain/drink"
)

// ErrNotFound is returned when a record does not exist.
var ErrNotFound = errors.New("not found")

// DrinkStore persists drinks.
type DrinkStore interface {
	CreateDrink(ctx context.Context, d drink.Drink) (drink.Drink, error)
	GetDrink(ctx context.Context, id int64) (drink.Drink, error)
	UpdateDrink(ctx context.Context, d drink.Drink) (drink.Drink, error)
	DeleteDrink(ctx context.Context, id int64) error
	// ListDrinks returns every drink ordered by title.
	ListDrinks(ctx context.Context) ([]drink.Drink, error)
}
