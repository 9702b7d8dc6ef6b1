// Package memory provides an in-memory drink store for tests and local runs.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/fullstacklab/appsuite/internal/coffeeshop/domain/drink"
	"github.com/fullstacklab/appsuite/internal/coffeeshop/storage"
)

// Store keeps drinks in process memory.
type Store struct {
	mu     sync.RWMutex
	drinks map[int64]drink.Drink
	nextID int64
}

var _ storage.DrinkStore = (*Store)(nil)

// New creates an empty store.
func New() *Store {
	return &Store{drinks: make(map[int64]drink.Drink)}
}

func clone(d drink.Drink) drink.Drink {
	d.Recipe = append([]drink.Ingredient(nil), d.Recipe...)
	return d
}

func (s *Store) CreateDrink(_ context.Context, d drink.Drink) (drink.Drink, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	d.ID = s.nextID
	s.drinks[d.ID] = clone(d)
	return d, nil
}

func (s *Store) GetDrink(_ context.Context, id int64) (drink.Drink, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	d, ok := s.drinks[id]
	if !ok {
		return drink.Drink{}, storage.ErrNotFound
	}
	return clone(d), nil
}

func (s *Store) UpdateDrink(_ context.Context, d drink.Drink) (drink.Drink, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.drinks[d.ID]; !ok {
		return drink.Drink{}, storage.ErrNotFound
	}
	s.drinks[d.ID] = clone(d)
	return d, nil
}

func (s *Store) DeleteDrink(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.drinks[id]; !ok {
		return storage.ErrNotFound
	}
	delete(s.drinks, id)
	return nil
}

func (s *Store) ListDrinks(_ context.Context) ([]drink.Drink, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]drink.Drink, 0, len(s.drinks))
	for _, d := range s.drinks {
		out = append(out, clone(d))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Title < out[j].Title })
	return out, nil
}
