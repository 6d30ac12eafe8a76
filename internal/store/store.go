package store

import (
	"context"
	"errors"

	"github.com/david485-rev/RecipeExplorer/internal/models"
)

// Gateway abstracts the RecipeExplorer table. The service layer depends on
// this interface only; the DynamoDB implementation lives in dynamo.go and
// tests run against an in-memory fake.
type Gateway interface {
	// GetItem is a point lookup by primary key. Returns ErrNotFound when no
	// item exists under uuid.
	GetItem(ctx context.Context, uuid string) (models.Item, error)

	// PutItem writes a full item.
	PutItem(ctx context.Context, item models.Item) error

	// QueryByIndex runs an equality query against a named secondary index.
	// sort, when non-nil, is an additional equality condition on the index
	// sort key. filter, when non-nil, is applied server-side to non-key
	// attributes.
	QueryByIndex(ctx context.Context, index string, key Pair, sort *Pair, filter *Filter) ([]models.Item, error)

	// ScanAll walks the whole table keeping items whose field equals value.
	// Used only where no index covers the access pattern.
	ScanAll(ctx context.Context, field, value string) ([]models.Item, error)

	// UpdateItem applies patch to the item under uuid, conditioned on the
	// item existing. A nil patch value removes the attribute. Returns the
	// full updated item, or ErrConditionFailed when nothing exists under
	// uuid.
	UpdateItem(ctx context.Context, uuid string, patch map[string]any) (models.Item, error)

	// DeleteItem removes the item under uuid. cond, when non-nil, is an
	// equality precondition checked server-side; a failed precondition
	// (including a missing item) surfaces as ErrConditionFailed.
	DeleteItem(ctx context.Context, uuid string, cond *Pair) error
}

// Pair is a field/value equality pair used for index keys and delete
// preconditions.
type Pair struct {
	Field string
	Value string
}

// Filter is a server-side filter on non-key attributes. With Contains set
// the match is containment (list membership) instead of equality.
type Filter struct {
	Field    string
	Value    string
	Contains bool
}

// Secondary indexes on the RecipeExplorer table.
const (
	IndexType         = "type-index"
	IndexUsername     = "username-creation_date-index"
	IndexEmail        = "email-index"
	IndexAuthorRecipe = "authorUuid-recipeUuid-index"
)

var (
	// ErrNotFound is returned by GetItem when no item exists under the key.
	ErrNotFound = errors.New("item not found")

	// ErrConditionFailed is returned when a conditional write or delete
	// fails its precondition. Not retryable.
	ErrConditionFailed = errors.New("condition failed")

	// ErrUnavailable wraps transient store failures. The SDK has already
	// exhausted its retry policy by the time this surfaces.
	ErrUnavailable = errors.New("store unavailable")
)
