package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/david485-rev/RecipeExplorer/internal/models"
	"github.com/david485-rev/RecipeExplorer/internal/store"
)

// CommentService enforces the one-review-per-author-per-recipe invariant and
// the two-tier delete authorization (comment author, else recipe author).
type CommentService struct {
	store store.Gateway
}

func NewCommentService(gw store.Gateway) *CommentService {
	return &CommentService{store: gw}
}

// CommentInput carries a post or edit payload. Rating is a pointer so an
// absent rating is distinguishable from zero; both count as missing.
type CommentInput struct {
	RecipeUUID  string
	Description string
	Rating      *float64
}

// Post validates and persists a new comment. A fractional rating is
// truncated toward zero. The target must be a recipe item, and the author
// must not have reviewed it before.
func (s *CommentService) Post(ctx context.Context, authorUUID string, in CommentInput) (models.Item, error) {
	if in.RecipeUUID == "" {
		return nil, errMissing("missing recipe uuid")
	}
	if authorUUID == "" {
		return nil, errMissing("missing author uuid")
	}
	if in.Description == "" {
		return nil, errMissing("missing description")
	}
	if in.Rating == nil || *in.Rating == 0 {
		return nil, errMissing("missing rating")
	}
	if *in.Rating < 1 || *in.Rating > 10 {
		return nil, errInvalid("rating is not of type number")
	}

	target, err := s.store.GetItem(ctx, in.RecipeUUID)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		return nil, storeFailure(err)
	}
	if err != nil || target.Type() != models.TypeRecipe {
		return nil, errNotFound("comment being attached to non-recipe entity")
	}

	existing, err := s.store.QueryByIndex(ctx, store.IndexAuthorRecipe,
		store.Pair{Field: "authorUuid", Value: authorUUID},
		&store.Pair{Field: "recipeUuid", Value: in.RecipeUUID},
		nil)
	if err != nil {
		return nil, storeFailure(err)
	}
	if len(existing) > 0 {
		return nil, errDuplicate(fmt.Sprintf("user has already reviewed recipe %s", in.RecipeUUID))
	}

	comment := models.NewComment(authorUUID, in.RecipeUUID, in.Description, int64(*in.Rating))
	if err := s.store.PutItem(ctx, comment); err != nil {
		return nil, storeFailure(err)
	}
	return comment, nil
}

// ForRecipe returns every comment attached to recipeUUID. No index covers
// this access pattern; the table is scanned, which is acceptable at the
// expected comment volume per recipe.
func (s *CommentService) ForRecipe(ctx context.Context, recipeUUID string) ([]models.Item, error) {
	if recipeUUID == "" {
		return nil, errMissing("missing recipe uuid")
	}
	items, err := s.store.ScanAll(ctx, "recipeUuid", recipeUUID)
	if err != nil {
		return nil, storeFailure(err)
	}
	return items, nil
}

// Edit updates a comment's description and rating. Only the comment's author
// may edit; the immutable fields are left untouched.
func (s *CommentService) Edit(ctx context.Context, uuid, authorUUID string, in CommentInput) (models.Item, error) {
	if uuid == "" {
		return nil, errMissing("missing uuid")
	}
	if authorUUID == "" {
		return nil, errMissing("missing authorUuid")
	}
	if in.Rating == nil || *in.Rating == 0 || in.Description == "" {
		return nil, errMissing("missing rating or description")
	}
	if *in.Rating < 1 || *in.Rating > 10 {
		return nil, errInvalid("rating is not of type number")
	}

	item, err := s.store.GetItem(ctx, uuid)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, errNotFound("uuid does not point to comment")
		}
		return nil, storeFailure(err)
	}
	comment, ok := models.AsComment(item)
	if !ok {
		return nil, errNotFound("uuid does not point to comment")
	}
	if comment.AuthorUUID != authorUUID {
		return nil, errForbidden("Forbidden Access")
	}

	updated, err := s.store.UpdateItem(ctx, uuid, map[string]any{
		"description": in.Description,
		"rating":      int64(*in.Rating),
	})
	if err != nil {
		if errors.Is(err, store.ErrConditionFailed) {
			return nil, errNotFound("uuid does not point to comment")
		}
		return nil, storeFailure(err)
	}
	return updated, nil
}

// Remove deletes a comment. The caller is authorized as the comment's own
// author, or failing that as the author of the recipe the comment belongs
// to. Anyone else is rejected, as is a uuid that does not point at a
// comment.
func (s *CommentService) Remove(ctx context.Context, uuid, authorUUID string) error {
	if uuid == "" {
		return errMissing("missing uuid")
	}
	if authorUUID == "" {
		return errMissing("missing authorUuid")
	}

	item, err := s.store.GetItem(ctx, uuid)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		return storeFailure(err)
	}

	authorized := false
	if err == nil {
		if comment, ok := models.AsComment(item); ok {
			if comment.AuthorUUID == authorUUID {
				authorized = true
			} else {
				parent, err := s.store.GetItem(ctx, comment.RecipeUUID)
				if err != nil && !errors.Is(err, store.ErrNotFound) {
					return storeFailure(err)
				}
				if err == nil {
					if recipe, ok := models.AsRecipe(parent); ok && recipe.AuthorUUID == authorUUID {
						authorized = true
					}
				}
			}
		}
	}
	if !authorized {
		return errForbidden("Forbidden Access")
	}

	if err := s.store.DeleteItem(ctx, uuid, nil); err != nil {
		return storeFailure(err)
	}
	return nil
}
