package domain

import (
	"errors"
)

var (
	MessageSuccessGetFavorites   = "favorites retrieved successfully"
	MessageSuccessAddFavorite    = "item added to favorites"
	MessageSuccessRemoveFavorite = "item removed from favorites"

	MessageFailedGetFavorites   = "failed to retrieve favorites"
	MessageFailedAddFavorite    = "failed to add item to favorites"
	MessageFailedRemoveFavorite = "failed to remove item from favorites"

	ErrFavoriteNotFound = errors.New("item is not in favorites")
)

type (
	AddFavoriteRequest struct {
		ItemID string `json:"item_id" validate:"required,max=64"`
	}
)
