package domain

import (
	"errors"
	"strings"
)

var (
	MessageSuccessAddGroceryItem    = "grocery item added successfully"
	MessageSuccessGetGroceryItems   = "grocery items retrieved successfully"
	MessageSuccessGetDashboardStats = "dashboard statistics retrieved successfully"
	MessageSuccessGetTiers          = "expiry tiers retrieved successfully"
	MessageSuccessCreateDraft       = "draft created successfully"
	MessageSuccessGetDraft          = "draft retrieved successfully"
	MessageSuccessUpdateDraft       = "draft updated successfully"
	MessageSuccessRecognizeProduct  = "product recognized successfully"
	MessageSuccessDiscardDraft      = "draft discarded successfully"

	MessageFailedAddGroceryItem    = "failed to save grocery item"
	MessageFailedGetGroceryItems   = "failed to retrieve grocery items"
	MessageFailedCreateDraft       = "failed to create draft"
	MessageFailedGetDraft          = "failed to retrieve draft"
	MessageFailedUpdateDraft       = "failed to update draft"
	MessageFailedRecognizeProduct  = "failed to analyze product image, please try again or enter details manually"
	MessageFailedDiscardDraft      = "failed to discard draft"
	MessageFailedUploadImage       = "failed to read product image"

	ErrGroceryItemNotFound = errors.New("grocery item not found")
	ErrDraftNotFound       = errors.New("draft not found")
	ErrDraftBusy           = errors.New("draft has an operation in progress")
)

type Category string

const (
	CategoryFruits     Category = "Fruits"
	CategoryVegetables Category = "Vegetables"
	CategoryMeat       Category = "Meat"
	CategoryDairy      Category = "Dairy"
	CategoryFrozen     Category = "Frozen"
	CategoryOther      Category = "Other"

	// CategoryFilterAll selects every category in list queries. It is never stored.
	CategoryFilterAll = "All"
)

var AllCategories = []Category{
	CategoryFruits,
	CategoryVegetables,
	CategoryMeat,
	CategoryDairy,
	CategoryFrozen,
	CategoryOther,
}

// NormalizeCategory maps any case variant of a known category to its canonical
// spelling and everything else to Other.
func NormalizeCategory(s string) Category {
	s = strings.TrimSpace(s)
	for _, c := range AllCategories {
		if strings.EqualFold(string(c), s) {
			return c
		}
	}
	return CategoryOther
}

func (c Category) Valid() bool {
	for _, known := range AllCategories {
		if c == known {
			return true
		}
	}
	return false
}

type (
	// GroceryForm is the raw user input of the add-item screen.
	GroceryForm struct {
		Name       string `json:"name"`
		Category   string `json:"category"`
		ExpiryDate string `json:"expiry_date"`
		ImageRef   string `json:"image_ref"`
	}

	AddGroceryItemRequest struct {
		Name       string `json:"name" validate:"max=200"`
		Category   string `json:"category" validate:"max=40"`
		ExpiryDate string `json:"expiry_date" validate:"max=40"`
		ImageRef   string `json:"image_ref" validate:"omitempty,max=2048"`
	}

	GroceryItemResponse struct {
		ID              string   `json:"id"`
		Name            string   `json:"name"`
		Category        Category `json:"category"`
		ExpiryDate      Date     `json:"expiry_date"`
		ExpiryDisplay   string   `json:"expiry_display"`
		DaysUntilExpiry int      `json:"days_until_expiry"`
		Tier            string   `json:"tier"`
		Color           string   `json:"color"`
		Width           string   `json:"width"`
		ImageRef        string   `json:"image_ref,omitempty"`
	}

	GroceryFilter struct {
		Category string `query:"category"`
		Search   string `query:"search"`
	}

	DashboardStatsResponse struct {
		TotalItems   int `json:"total_items"`
		UrgentItems  int `json:"urgent_items"`
		SoonItems    int `json:"soon_items"`
		FreshItems   int `json:"fresh_items"`
		ExpiredItems int `json:"expired_items"`
	}

	TierResponse struct {
		Tier    string `json:"tier"`
		MinDays int    `json:"min_days"`
		MaxDays *int   `json:"max_days,omitempty"`
		Color   string `json:"color"`
		Width   string `json:"width"`
	}

	UpdateDraftRequest struct {
		Name       *string `json:"name" validate:"omitempty,max=200"`
		Category   *string `json:"category" validate:"omitempty,max=40"`
		ExpiryDate *string `json:"expiry_date" validate:"omitempty,max=40"`
		ImageRef   *string `json:"image_ref" validate:"omitempty,max=2048"`
	}

	RecognizeDraftRequest struct {
		Image    []byte
		ImageRef string
	}

	DraftResponse struct {
		ID              string   `json:"id"`
		Name            string   `json:"name"`
		Category        string   `json:"category"`
		ExpiryDate      string   `json:"expiry_date"`
		ImageRef        string   `json:"image_ref,omitempty"`
		RecognitionNote string   `json:"recognition_note,omitempty"`
		Pending         bool     `json:"pending"`
		Categories      []string `json:"categories"`
	}
)
