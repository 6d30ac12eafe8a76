package service

import (
	"context"
	"errors"

	"github.com/david485-rev/RecipeExplorer/internal/models"
	"github.com/david485-rev/RecipeExplorer/internal/store"
)

// GeneralService fetches any entity by id regardless of type. It is the only
// sanctioned path for returning an item to an external caller: the password
// attribute is stripped before the item crosses the boundary.
type GeneralService struct {
	store store.Gateway
}

func NewGeneralService(gw store.Gateway) *GeneralService {
	return &GeneralService{store: gw}
}

// GetDatabaseItem looks up an item by uuid and returns it with the password
// redacted. Every other attribute passes through verbatim.
func (s *GeneralService) GetDatabaseItem(ctx context.Context, uuid string) (models.Item, error) {
	if uuid == "" {
		return nil, errMissing("missing uuid")
	}
	item, err := s.store.GetItem(ctx, uuid)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, errNotFound("invalid uuid")
		}
		return nil, storeFailure(err)
	}
	return item.Redacted(), nil
}
