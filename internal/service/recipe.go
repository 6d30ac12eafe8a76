package service

import (
	"context"
	"errors"
	"log"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/david485-rev/RecipeExplorer/internal/models"
	"github.com/david485-rev/RecipeExplorer/internal/store"
)

// Query keys accepted by List. Anything else is rejected before touching the
// store.
var recipeQueryKeys = map[string]bool{
	"category":    true,
	"cuisine":     true,
	"ingredients": true,
}

// RecipeService handles recipe lifecycle with owner-only edit and delete.
type RecipeService struct {
	store store.Gateway
}

func NewRecipeService(gw store.Gateway) *RecipeService {
	return &RecipeService{store: gw}
}

// RecipeInput carries a create or edit payload. UUID is only meaningful on
// edit.
type RecipeInput struct {
	UUID         string
	RecipeThumb  string
	RecipeName   string
	Category     string
	Cuisine      string
	Description  string
	Ingredients  []string
	Instructions string
}

func (in *RecipeInput) complete() bool {
	return in.RecipeThumb != "" &&
		in.RecipeName != "" &&
		in.Category != "" &&
		in.Cuisine != "" &&
		in.Description != "" &&
		len(in.Ingredients) > 0 &&
		in.Instructions != ""
}

// List returns all recipes, optionally narrowed by one case-insensitive
// equality filter on category or cuisine, or a containment filter on
// ingredients. An empty filterKey means no filter.
func (s *RecipeService) List(ctx context.Context, filterKey, filterValue string) ([]models.Item, error) {
	var filter *store.Filter
	if filterKey != "" {
		if !recipeQueryKeys[filterKey] {
			return nil, errInvalid("Invalid query parameter: '" + filterKey + "'. Can only query by category, cuisine, or ingredients")
		}
		filter = &store.Filter{
			Field:    filterKey,
			Value:    strings.ToLower(filterValue),
			Contains: filterKey == "ingredients",
		}
	}

	items, err := s.store.QueryByIndex(ctx, store.IndexType, store.Pair{Field: "type", Value: models.TypeRecipe}, nil, filter)
	if err != nil {
		return nil, storeFailure(err)
	}
	return items, nil
}

// Create persists a new recipe owned by authorUUID. Category and cuisine are
// normalized to lowercase before storage.
func (s *RecipeService) Create(ctx context.Context, in RecipeInput, authorUUID string) (models.Item, error) {
	if authorUUID == "" {
		return nil, errMissing("missing author uuid")
	}
	if !in.complete() {
		return nil, errInvalid("Missing attribute(s)")
	}

	recipe := models.NewRecipe(
		authorUUID,
		in.RecipeThumb,
		in.RecipeName,
		strings.ToLower(in.Category),
		strings.ToLower(in.Cuisine),
		in.Description,
		in.Instructions,
		in.Ingredients,
	)
	if err := s.store.PutItem(ctx, recipe); err != nil {
		return nil, storeFailure(err)
	}
	return recipe, nil
}

// Edit replaces the mutable fields of an existing recipe. Only the stored
// author may edit.
func (s *RecipeService) Edit(ctx context.Context, in RecipeInput, authorUUID string) (models.Item, error) {
	if in.UUID == "" {
		return nil, errMissing("Missing uuid")
	}
	if authorUUID == "" {
		return nil, errMissing("missing author uuid")
	}

	existing, err := s.store.GetItem(ctx, in.UUID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, errNotFound("The recipe does not exist")
		}
		return nil, storeFailure(err)
	}
	recipe, ok := models.AsRecipe(existing)
	if !ok {
		return nil, errNotFound("The recipe does not exist")
	}
	if recipe.AuthorUUID != authorUUID {
		return nil, errForbidden("Only the recipe author is allowed to edit this recipe")
	}
	if !in.complete() {
		return nil, errInvalid("Missing attribute(s)")
	}

	updated, err := s.store.UpdateItem(ctx, in.UUID, map[string]any{
		"recipeThumb":  in.RecipeThumb,
		"recipeName":   in.RecipeName,
		"category":     strings.ToLower(in.Category),
		"cuisine":      strings.ToLower(in.Cuisine),
		"description":  in.Description,
		"ingredients":  in.Ingredients,
		"instructions": in.Instructions,
	})
	if err != nil {
		if errors.Is(err, store.ErrConditionFailed) {
			return nil, errNotFound("The recipe does not exist")
		}
		return nil, storeFailure(err)
	}
	return updated, nil
}

// Remove deletes a recipe conditioned on authorUUID owning it, then removes
// the recipe's comments as a concurrent batch. The cascade is best effort:
// every delete is attempted and the first observed failure is reported
// rather than swallowed.
func (s *RecipeService) Remove(ctx context.Context, recipeUUID, authorUUID string) error {
	if recipeUUID == "" {
		return errMissing("Missing uuid")
	}
	if authorUUID == "" {
		return errMissing("missing author uuid")
	}

	err := s.store.DeleteItem(ctx, recipeUUID, &store.Pair{Field: "authorUuid", Value: authorUUID})
	if err != nil {
		if errors.Is(err, store.ErrConditionFailed) {
			return errForbidden("Author uuid is not valid or does not exist")
		}
		return storeFailure(err)
	}

	comments, err := s.store.ScanAll(ctx, "recipeUuid", recipeUUID)
	if err != nil {
		return storeFailure(err)
	}

	// No group context here: a failed delete must not cancel the siblings,
	// every comment gets its delete attempted.
	var g errgroup.Group
	for _, comment := range comments {
		uuid := comment.UUID()
		g.Go(func() error {
			if err := s.store.DeleteItem(ctx, uuid, nil); err != nil {
				log.Printf("service: cascade delete comment %s: %v", uuid, err)
				return err
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return storeFailure(err)
	}
	return nil
}
