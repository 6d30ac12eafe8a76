// Package testhelpers provides an in-memory Gateway implementation used by
// service and handler tests in place of DynamoDB.
package testhelpers

import (
	"context"
	"slices"
	"sync"

	"github.com/david485-rev/RecipeExplorer/internal/models"
	"github.com/david485-rev/RecipeExplorer/internal/store"
)

// MemStore is an in-memory stand-in for the RecipeExplorer table. Secondary
// index queries degrade to linear matching, which is fine at test scale.
// PutErr and DeleteErr, when set, are returned by the corresponding
// operations to simulate store failures. DeleteErrUUID narrows DeleteErr to
// a single key so other deletes still go through.
type MemStore struct {
	mu    sync.Mutex
	items map[string]models.Item

	PutErr        error
	DeleteErr     error
	DeleteErrUUID string
}

var _ store.Gateway = (*MemStore)(nil)

func NewMemStore() *MemStore {
	return &MemStore{items: make(map[string]models.Item)}
}

// Seed inserts items directly, bypassing error injection.
func (m *MemStore) Seed(items ...models.Item) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, it := range items {
		m.items[it.UUID()] = clone(it)
	}
}

// Len reports the number of stored items.
func (m *MemStore) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.items)
}

func (m *MemStore) GetItem(ctx context.Context, uuid string) (models.Item, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	it, ok := m.items[uuid]
	if !ok {
		return nil, store.ErrNotFound
	}
	return clone(it), nil
}

func (m *MemStore) PutItem(ctx context.Context, item models.Item) error {
	if m.PutErr != nil {
		return m.PutErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items[item.UUID()] = clone(item)
	return nil
}

func (m *MemStore) QueryByIndex(ctx context.Context, index string, key store.Pair, sort *store.Pair, filter *store.Filter) ([]models.Item, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Item
	for _, it := range m.items {
		if it.Str(key.Field) != key.Value {
			continue
		}
		if sort != nil && it.Str(sort.Field) != sort.Value {
			continue
		}
		if filter != nil && !matches(it, filter) {
			continue
		}
		out = append(out, clone(it))
	}
	return out, nil
}

func (m *MemStore) ScanAll(ctx context.Context, field, value string) ([]models.Item, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Item
	for _, it := range m.items {
		if it.Str(field) == value {
			out = append(out, clone(it))
		}
	}
	return out, nil
}

func (m *MemStore) UpdateItem(ctx context.Context, uuid string, patch map[string]any) (models.Item, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	it, ok := m.items[uuid]
	if !ok {
		return nil, store.ErrConditionFailed
	}
	for field, value := range patch {
		if value == nil {
			delete(it, field)
		} else {
			it[field] = value
		}
	}
	return clone(it), nil
}

func (m *MemStore) DeleteItem(ctx context.Context, uuid string, cond *store.Pair) error {
	if m.DeleteErr != nil && (m.DeleteErrUUID == "" || m.DeleteErrUUID == uuid) {
		return m.DeleteErr
	}
	// A real store aborts calls made under a cancelled context.
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	it, ok := m.items[uuid]
	if cond != nil {
		if !ok || it.Str(cond.Field) != cond.Value {
			return store.ErrConditionFailed
		}
	}
	delete(m.items, uuid)
	return nil
}

func matches(it models.Item, f *store.Filter) bool {
	if f.Contains {
		return slices.Contains(it.Strings(f.Field), f.Value)
	}
	return it.Str(f.Field) == f.Value
}

func clone(it models.Item) models.Item {
	out := make(models.Item, len(it))
	for k, v := range it {
		out[k] = v
	}
	return out
}
