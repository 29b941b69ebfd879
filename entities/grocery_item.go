package entities

import (
	"EatBefore/domain"
)

// GroceryItem is the canonical persisted record. DaysUntilExpiry is written for
// readers of the raw data but recomputed on every load.
type GroceryItem struct {
	ID              string          `json:"id"`
	Name            string          `json:"name"`
	Category        domain.Category `json:"category"`
	ExpiryDate      domain.Date     `json:"expiryDate"`
	DaysUntilExpiry int             `json:"daysUntilExpiry"`
	ImageRef        string          `json:"imageRef,omitempty"`
}
