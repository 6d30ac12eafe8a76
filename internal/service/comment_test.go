package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/david485-rev/RecipeExplorer/internal/models"
	"github.com/david485-rev/RecipeExplorer/internal/service"
	"github.com/david485-rev/RecipeExplorer/internal/testhelpers"
)

func ratingPtr(r float64) *float64 {
	return &r
}

func seedRecipe(mem *testhelpers.MemStore, uuid, authorUUID string) {
	mem.Seed(models.Item{
		"uuid":       uuid,
		"type":       models.TypeRecipe,
		"authorUuid": authorUUID,
		"recipeName": "Test Recipe",
	})
}

func TestPostCommentValidationOrder(t *testing.T) {
	comments := service.NewCommentService(testhelpers.NewMemStore())
	ctx := context.Background()

	cases := []struct {
		name    string
		author  string
		input   service.CommentInput
		message string
	}{
		{"no recipe uuid", "2", service.CommentInput{Description: "d", Rating: ratingPtr(4)}, "missing recipe uuid"},
		{"no author uuid", "", service.CommentInput{RecipeUUID: "3", Description: "d", Rating: ratingPtr(4)}, "missing author uuid"},
		{"no description", "2", service.CommentInput{RecipeUUID: "3", Rating: ratingPtr(4)}, "missing description"},
		{"no rating", "2", service.CommentInput{RecipeUUID: "3", Description: "d"}, "missing rating"},
		{"zero rating", "2", service.CommentInput{RecipeUUID: "3", Description: "d", Rating: ratingPtr(0)}, "missing rating"},
		{"rating too low", "2", service.CommentInput{RecipeUUID: "3", Description: "d", Rating: ratingPtr(0.5)}, "rating is not of type number"},
		{"rating too high", "2", service.CommentInput{RecipeUUID: "3", Description: "d", Rating: ratingPtr(11)}, "rating is not of type number"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := comments.Post(ctx, tc.author, tc.input)
			require.EqualError(t, err, tc.message)
		})
	}
}

func TestPostCommentRejectsNonRecipeTarget(t *testing.T) {
	mem := testhelpers.NewMemStore()
	mem.Seed(models.Item{"uuid": "u1", "type": models.TypeUser, "username": "dave"})
	comments := service.NewCommentService(mem)
	ctx := context.Background()

	_, err := comments.Post(ctx, "2", service.CommentInput{RecipeUUID: "u1", Description: "d", Rating: ratingPtr(4)})
	require.EqualError(t, err, "comment being attached to non-recipe entity")

	// A dangling reference is treated the same way.
	_, err = comments.Post(ctx, "2", service.CommentInput{RecipeUUID: "ghost", Description: "d", Rating: ratingPtr(4)})
	require.EqualError(t, err, "comment being attached to non-recipe entity")
}

func TestPostCommentDuplicateReview(t *testing.T) {
	mem := testhelpers.NewMemStore()
	seedRecipe(mem, "3", "9")
	comments := service.NewCommentService(mem)
	ctx := context.Background()

	input := service.CommentInput{RecipeUUID: "3", Description: "fake desc", Rating: ratingPtr(4)}

	created, err := comments.Post(ctx, "2", input)
	require.NoError(t, err)
	assert.Equal(t, models.TypeComment, created.Type())
	assert.Equal(t, "2", created.Str("authorUuid"))
	assert.Equal(t, "3", created.Str("recipeUuid"))

	_, err = comments.Post(ctx, "2", input)
	require.EqualError(t, err, "user has already reviewed recipe 3")
	assert.Equal(t, service.KindDuplicateReview, service.KindOf(err))

	// A different author reviewing the same recipe is fine.
	_, err = comments.Post(ctx, "4", input)
	require.NoError(t, err)

	// As is the same author reviewing a different recipe.
	seedRecipe(mem, "7", "9")
	_, err = comments.Post(ctx, "2", service.CommentInput{RecipeUUID: "7", Description: "fake desc", Rating: ratingPtr(4)})
	require.NoError(t, err)
}

func TestPostCommentTruncatesRating(t *testing.T) {
	mem := testhelpers.NewMemStore()
	seedRecipe(mem, "3", "9")
	comments := service.NewCommentService(mem)

	created, err := comments.Post(context.Background(), "2", service.CommentInput{
		RecipeUUID:  "3",
		Description: "fake desc",
		Rating:      ratingPtr(4.7),
	})
	require.NoError(t, err)
	assert.Equal(t, int64(4), created.Int("rating"))
}

func TestPostCommentStoreError(t *testing.T) {
	mem := testhelpers.NewMemStore()
	seedRecipe(mem, "3", "9")
	mem.PutErr = errors.New("dynamo is down")
	comments := service.NewCommentService(mem)

	_, err := comments.Post(context.Background(), "2", service.CommentInput{
		RecipeUUID:  "3",
		Description: "fake desc",
		Rating:      ratingPtr(4),
	})
	require.EqualError(t, err, "database error")
	assert.Equal(t, service.KindStore, service.KindOf(err))
}

func TestGetRecipeComments(t *testing.T) {
	mem := testhelpers.NewMemStore()
	mem.Seed(
		models.Item{"uuid": "c1", "type": models.TypeComment, "authorUuid": "a1", "recipeUuid": "r1", "description": "good", "rating": int64(8)},
		models.Item{"uuid": "c2", "type": models.TypeComment, "authorUuid": "a2", "recipeUuid": "r2", "description": "fine", "rating": int64(6)},
	)
	comments := service.NewCommentService(mem)
	ctx := context.Background()

	_, err := comments.ForRecipe(ctx, "")
	require.EqualError(t, err, "missing recipe uuid")

	found, err := comments.ForRecipe(ctx, "r1")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "c1", found[0].UUID())
}

func TestEditCommentAuthorization(t *testing.T) {
	mem := testhelpers.NewMemStore()
	mem.Seed(models.Item{"uuid": "5", "type": models.TypeComment, "authorUuid": "2", "recipeUuid": "3", "description": "hello", "rating": int64(5)})
	comments := service.NewCommentService(mem)
	ctx := context.Background()

	_, err := comments.Edit(ctx, "", "2", service.CommentInput{Description: "hello2", Rating: ratingPtr(2)})
	require.EqualError(t, err, "missing uuid")

	_, err = comments.Edit(ctx, "5", "", service.CommentInput{Description: "hello2", Rating: ratingPtr(2)})
	require.EqualError(t, err, "missing authorUuid")

	_, err = comments.Edit(ctx, "5", "2", service.CommentInput{Rating: ratingPtr(2)})
	require.EqualError(t, err, "missing rating or description")

	// A caller other than the comment's author is rejected.
	_, err = comments.Edit(ctx, "5", "6", service.CommentInput{Description: "hello2", Rating: ratingPtr(2)})
	require.EqualError(t, err, "Forbidden Access")
	assert.Equal(t, service.KindForbidden, service.KindOf(err))

	updated, err := comments.Edit(ctx, "5", "2", service.CommentInput{Description: "hello2", Rating: ratingPtr(2)})
	require.NoError(t, err)
	assert.Equal(t, "hello2", updated.Str("description"))
	assert.Equal(t, int64(2), updated.Int("rating"))
	assert.Equal(t, "2", updated.Str("authorUuid"))
	assert.Equal(t, "3", updated.Str("recipeUuid"))
}

func TestEditCommentWrongType(t *testing.T) {
	mem := testhelpers.NewMemStore()
	seedRecipe(mem, "r1", "9")
	comments := service.NewCommentService(mem)

	_, err := comments.Edit(context.Background(), "r1", "9", service.CommentInput{Description: "d", Rating: ratingPtr(2)})
	require.EqualError(t, err, "uuid does not point to comment")
	assert.Equal(t, service.KindNotFound, service.KindOf(err))
}

func TestRemoveCommentTwoTierAuthorization(t *testing.T) {
	ctx := context.Background()
	seedAll := func(mem *testhelpers.MemStore) {
		seedRecipe(mem, "r1", "recipe-owner")
		mem.Seed(models.Item{"uuid": "c1", "type": models.TypeComment, "authorUuid": "commenter", "recipeUuid": "r1", "description": "d", "rating": int64(5)})
	}

	// The comment's author may delete it.
	mem := testhelpers.NewMemStore()
	seedAll(mem)
	comments := service.NewCommentService(mem)
	require.NoError(t, comments.Remove(ctx, "c1", "commenter"))
	_, err := mem.GetItem(ctx, "c1")
	require.Error(t, err)

	// So may the author of the recipe the comment belongs to.
	mem = testhelpers.NewMemStore()
	seedAll(mem)
	comments = service.NewCommentService(mem)
	require.NoError(t, comments.Remove(ctx, "c1", "recipe-owner"))

	// Anyone else is rejected.
	mem = testhelpers.NewMemStore()
	seedAll(mem)
	comments = service.NewCommentService(mem)
	err = comments.Remove(ctx, "c1", "third-party")
	require.EqualError(t, err, "Forbidden Access")
	assert.Equal(t, service.KindForbidden, service.KindOf(err))
	_, err = mem.GetItem(ctx, "c1")
	require.NoError(t, err)
}

func TestRemoveCommentMissingOrWrongTarget(t *testing.T) {
	mem := testhelpers.NewMemStore()
	seedRecipe(mem, "r1", "owner")
	comments := service.NewCommentService(mem)
	ctx := context.Background()

	require.EqualError(t, comments.Remove(ctx, "", "a"), "missing uuid")
	require.EqualError(t, comments.Remove(ctx, "c1", ""), "missing authorUuid")

	// Deleting something that is not a comment is forbidden, not a cascade
	// into arbitrary items.
	require.EqualError(t, comments.Remove(ctx, "r1", "owner"), "Forbidden Access")

	// As is deleting a comment that does not exist.
	require.EqualError(t, comments.Remove(ctx, "ghost", "owner"), "Forbidden Access")
}
