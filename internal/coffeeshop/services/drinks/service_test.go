package drinks

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/fullstacklab/appsuite/internal/coffeeshop/storage"
	"github.com/fullstacklab/appsuite/internal/coffeeshop/storage/memory"
)

const waterRecipe = `[{"name":"Water","color":"blue","parts":1}]`

func TestParseRecipe(t *testing.T) {
	recipe, err := ParseRecipe(json.RawMessage(waterRecipe))
	if err != nil {
		t.Fatalf("parse recipe: %v", err)
	}
	if len(recipe) != 1 || recipe[0].Name != "Water" || recipe[0].Parts != 1 {
		t.Fatalf("unexpected recipe: %+v", recipe)
	}
}

func TestParseRecipeWrapsSingleObject(t *testing.T) {
	recipe, err := ParseRecipe(json.RawMessage(`{"name":"Milk","color":"white","parts":3}`))
	if err != nil {
		t.Fatalf("parse recipe: %v", err)
	}
	if len(recipe) != 1 || recipe[0].Color != "white" {
		t.Fatalf("unexpected recipe: %+v", recipe)
	}
}

func TestParseRecipeRejectsBadShapes(t *testing.T) {
	bad := []string{
		`"just a string"`,
		`[]`,
		`[{"color":"blue","parts":1}]`,
		`[{"name":"Water","parts":1}]`,
		`[{"name":"Water","color":"blue"}]`,
		`[{"name":"Water","color":"blue","parts":0}]`,
		`[{"name":"Water","color":"blue","parts":"one"}]`,
		`[42]`,
		`{{not json`,
	}
	for _, raw := range bad {
		if _, err := ParseRecipe(json.RawMessage(raw)); !errors.Is(err, ErrInvalidRecipe) {
			t.Fatalf("expected invalid recipe for %s, got %v", raw, err)
		}
	}
}

func TestCreateRequiresTitle(t *testing.T) {
	svc := New(memory.New())
	_, err := svc.Create(context.Background(), " ", json.RawMessage(waterRecipe))
	if !errors.Is(err, ErrInvalidTitle) {
		t.Fatalf("expected invalid title, got %v", err)
	}
}

func TestUpdateAppliesOnlyProvidedFields(t *testing.T) {
	svc := New(memory.New())
	ctx := context.Background()

	created, err := svc.Create(ctx, "Water", json.RawMessage(waterRecipe))
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	title := "Water5"
	updated, err := svc.Update(ctx, created.ID, &title, nil)
	if err != nil {
		t.Fatalf("update title: %v", err)
	}
	if updated.Title != "Water5" {
		t.Fatalf("title not applied: %+v", updated)
	}
	if len(updated.Recipe) != 1 || updated.Recipe[0].Name != "Water" {
		t.Fatalf("recipe should be untouched: %+v", updated.Recipe)
	}

	updated, err = svc.Update(ctx, created.ID, nil, json.RawMessage(`[{"name":"Milk","color":"white","parts":2}]`))
	if err != nil {
		t.Fatalf("update recipe: %v", err)
	}
	if updated.Title != "Water5" || updated.Recipe[0].Name != "Milk" {
		t.Fatalf("unexpected drink after recipe update: %+v", updated)
	}
}

func TestUpdateMissingDrink(t *testing.T) {
	svc := New(memory.New())
	title := "Ghost"
	if _, err := svc.Update(context.Background(), 42, &title, nil); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}
