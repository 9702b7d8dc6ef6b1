// Package drinks implements the coffee shop's menu rules, including
// recipe validation.
package drinks

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/fullstacklab/appsuite/internal/coffeeshop/domain/drink"
	"github.com/fullstacklab/appsuite/internal/coffeeshop/storage"
)

// ErrInvalidRecipe marks a recipe payload that does not describe a drink.
var ErrInvalidRecipe = errors.New("invalid recipe")

// ErrInvalidTitle marks a missing or blank drink title.
var ErrInvalidTitle = errors.New("invalid title")

// Service implements drink operations over the store.
type Service struct {
	store storage.DrinkStore
}

// New creates the drink service.
func New(store storage.DrinkStore) *Service {
	return &Service{store: store}
}

// ParseRecipe validates a raw recipe payload and returns the normalized
// ingredient list. A single ingredient object is accepted and wrapped
// into a one-element recipe.
func ParseRecipe(raw json.RawMessage) ([]drink.Ingredient, error) {
	if !gjson.ValidBytes(raw) {
		return nil, fmt.Errorf("%w: not valid JSON", ErrInvalidRecipe)
	}
	parsed := gjson.ParseBytes(raw)

	var items []gjson.Result
	switch {
	case parsed.IsArray():
		items = parsed.Array()
	case parsed.IsObject():
		items = []gjson.Result{parsed}
	default:
		return nil, fmt.Errorf("%w: expected an array of ingredients", ErrInvalidRecipe)
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("%w: recipe is empty", ErrInvalidRecipe)
	}

	recipe := make([]drink.Ingredient, 0, len(items))
	for i, item := range items {
		if !item.IsObject() {
			return nil, fmt.Errorf("%w: ingredient %d is not an object", ErrInvalidRecipe, i)
		}
		name := item.Get("name")
		color := item.Get("color")
		parts := item.Get("parts")
		if name.Type != gjson.String || strings.TrimSpace(name.String()) == "" {
			return nil, fmt.Errorf("%w: ingredient %d needs a name", ErrInvalidRecipe, i)
		}
		if color.Type != gjson.String || strings.TrimSpace(color.String()) == "" {
			return nil, fmt.Errorf("%w: ingredient %d needs a color", ErrInvalidRecipe, i)
		}
		if parts.Type != gjson.Number || parts.Int() < 1 {
			return nil, fmt.Errorf("%w: ingredient %d needs a positive parts count", ErrInvalidRecipe, i)
		}
		recipe = append(recipe, drink.Ingredient{
			Name:  name.String(),
			Color: color.String(),
			Parts: int(parts.Int()),
		})
	}
	return recipe, nil
}

// List returns every drink ordered by title.
func (s *Service) List(ctx context.Context) ([]drink.Drink, error) {
	return s.store.ListDrinks(ctx)
}

// Create validates and stores a new drink.
func (s *Service) Create(ctx context.Context, title string, recipeRaw json.RawMessage) (drink.Drink, error) {
	if strings.TrimSpace(title) == "" {
		return drink.Drink{}, ErrInvalidTitle
	}
	recipe, err := ParseRecipe(recipeRaw)
	if err != nil {
		return drink.Drink{}, err
	}
	return s.store.CreateDrink(ctx, drink.Drink{Title: title, Recipe: recipe})
}

// Update applies the provided fields to an existing drink. A nil field
// leaves the stored value unchanged.
func (s *Service) Update(ctx context.Context, id int64, title *string, recipeRaw json.RawMessage) (drink.Drink, error) {
	d, err := s.store.GetDrink(ctx, id)
	if err != nil {
		return drink.Drink{}, err
	}
	if title != nil {
		if strings.TrimSpace(*title) == "" {
			return drink.Drink{}, ErrInvalidTitle
		}
		d.Title = *title
	}
	if recipeRaw != nil {
		recipe, err := ParseRecipe(recipeRaw)
		if err != nil {
			return drink.Drink{}, err
		}
		d.Recipe = recipe
	}
	return s.store.UpdateDrink(ctx, d)
}

// Delete removes a drink by id.
func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.store.DeleteDrink(ctx, id)
}
