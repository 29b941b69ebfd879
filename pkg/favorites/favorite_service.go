package favorites

import (
	"EatBefore/domain"
	"EatBefore/pkg/grocery"
	"context"
	"strings"
)

type (
	FavoriteService interface {
		GetFavorites(ctx context.Context) ([]domain.GroceryItemResponse, error)
		AddFavorite(ctx context.Context, req domain.AddFavoriteRequest) error
		RemoveFavorite(ctx context.Context, id string) error
	}

	favoriteService struct {
		selection      *Selection
		groceryService grocery.GroceryService
	}
)

func NewFavoriteService(selection *Selection, groceryService grocery.GroceryService) FavoriteService {
	return &favoriteService{
		selection:      selection,
		groceryService: groceryService,
	}
}

// GetFavorites lists favorites in the order they were added. Ids that no
// longer match a stored item are skipped.
func (s *favoriteService) GetFavorites(ctx context.Context) ([]domain.GroceryItemResponse, error) {
	items, err := s.groceryService.GetGroceryItems(ctx, domain.GroceryFilter{})
	if err != nil {
		return nil, err
	}

	byID := make(map[string]domain.GroceryItemResponse, len(items))
	for _, item := range items {
		byID[item.ID] = item
	}

	response := make([]domain.GroceryItemResponse, 0)
	for _, id := range s.selection.List() {
		if item, ok := byID[id]; ok {
			response = append(response, item)
		}
	}
	return response, nil
}

func (s *favoriteService) AddFavorite(ctx context.Context, req domain.AddFavoriteRequest) error {
	id := strings.TrimSpace(req.ItemID)
	if _, err := s.groceryService.GetGroceryItemByID(ctx, id); err != nil {
		return err
	}

	s.selection.Add(id)
	return nil
}

func (s *favoriteService) RemoveFavorite(ctx context.Context, id string) error {
	if !s.selection.Remove(id) {
		return domain.ErrFavoriteNotFound
	}
	return nil
}
