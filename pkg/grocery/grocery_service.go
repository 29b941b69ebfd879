package grocery

import (
	"EatBefore/domain"
	"EatBefore/entities"
	"EatBefore/pkg/expiry"
	"EatBefore/pkg/recognition"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

type (
	GroceryService interface {
		AddGroceryItem(ctx context.Context, req domain.AddGroceryItemRequest) (domain.GroceryItemResponse, error)
		GetGroceryItems(ctx context.Context, filter domain.GroceryFilter) ([]domain.GroceryItemResponse, error)
		GetGroceryItemByID(ctx context.Context, id string) (domain.GroceryItemResponse, error)
		GetDashboardStats(ctx context.Context) (domain.DashboardStatsResponse, error)
		GetTiers() []domain.TierResponse

		CreateDraft(ctx context.Context) (domain.DraftResponse, error)
		GetDraft(ctx context.Context, id string) (domain.DraftResponse, error)
		UpdateDraft(ctx context.Context, id string, req domain.UpdateDraftRequest) (domain.DraftResponse, error)
		RecognizeDraft(ctx context.Context, id string, req domain.RecognizeDraftRequest) (domain.DraftResponse, error)
		SaveDraft(ctx context.Context, id string) (domain.GroceryItemResponse, error)
		DiscardDraft(ctx context.Context, id string) error
	}

	ServiceConfig struct {
		Thresholds   expiry.Thresholds
		RequireImage bool
		DraftTTL     time.Duration
	}

	groceryService struct {
		groceryRepository GroceryRepository
		recognizer        recognition.Recognizer
		config            ServiceConfig
		drafts            *draftStore
		ids               *idGenerator
		now               func() time.Time
		logger            zerolog.Logger
	}
)

// NewGroceryService wires the add-item flow. A nil recognizer disables image
// recognition; manual entry keeps working.
func NewGroceryService(groceryRepository GroceryRepository, recognizer recognition.Recognizer, config ServiceConfig, logger zerolog.Logger) GroceryService {
	return newGroceryService(groceryRepository, recognizer, config, time.Now, logger)
}

func newGroceryService(groceryRepository GroceryRepository, recognizer recognition.Recognizer, config ServiceConfig, now func() time.Time, logger zerolog.Logger) *groceryService {
	return &groceryService{
		groceryRepository: groceryRepository,
		recognizer:        recognizer,
		config:            config,
		drafts:            newDraftStore(config.DraftTTL, now),
		ids:               newIDGenerator(now),
		now:               now,
		logger:            logger.With().Str("component", "grocery-service").Logger(),
	}
}

// ValidateForm checks the form in screen order and returns the first problem
// found. On success it returns the parsed expiry date.
func ValidateForm(form domain.GroceryForm, today domain.Date, requireImage bool) (domain.Date, error) {
	if requireImage && strings.TrimSpace(form.ImageRef) == "" {
		return domain.Date{}, domain.ErrMissingImage
	}
	if strings.TrimSpace(form.Name) == "" {
		return domain.Date{}, domain.ErrMissingName
	}
	if strings.TrimSpace(form.Category) == "" {
		return domain.Date{}, domain.ErrMissingCategory
	}
	if strings.TrimSpace(form.ExpiryDate) == "" {
		return domain.Date{}, domain.ErrMissingDate
	}

	date, err := domain.ParseDate(form.ExpiryDate)
	if err != nil || date.Before(today) {
		return domain.Date{}, domain.ErrInvalidDate
	}
	return date, nil
}

func (s *groceryService) AddGroceryItem(ctx context.Context, req domain.AddGroceryItemRequest) (domain.GroceryItemResponse, error) {
	form := domain.GroceryForm{
		Name:       req.Name,
		Category:   req.Category,
		ExpiryDate: req.ExpiryDate,
		ImageRef:   req.ImageRef,
	}
	return s.save(ctx, form)
}

func (s *groceryService) save(ctx context.Context, form domain.GroceryForm) (domain.GroceryItemResponse, error) {
	now := s.now()

	date, err := ValidateForm(form, domain.NewDate(now), s.config.RequireImage)
	if err != nil {
		return domain.GroceryItemResponse{}, err
	}

	item := entities.GroceryItem{
		ID:              s.ids.Next(),
		Name:            strings.TrimSpace(form.Name),
		Category:        domain.NormalizeCategory(form.Category),
		ExpiryDate:      date,
		DaysUntilExpiry: expiry.DaysUntilExpiry(date.Time, now),
		ImageRef:        strings.TrimSpace(form.ImageRef),
	}

	if err := s.groceryRepository.Append(ctx, item); err != nil {
		return domain.GroceryItemResponse{}, err
	}

	s.logger.Info().
		Str("id", item.ID).
		Str("category", string(item.Category)).
		Int("days_until_expiry", item.DaysUntilExpiry).
		Msg("grocery item saved")

	return s.toResponse(item), nil
}

func (s *groceryService) GetGroceryItems(ctx context.Context, filter domain.GroceryFilter) ([]domain.GroceryItemResponse, error) {
	var category domain.Category
	if c := strings.TrimSpace(filter.Category); c != "" && !strings.EqualFold(c, domain.CategoryFilterAll) {
		category = domain.NormalizeCategory(c)
	}
	search := strings.ToLower(strings.TrimSpace(filter.Search))

	response := make([]domain.GroceryItemResponse, 0)
	for _, item := range s.groceryRepository.LoadAll(ctx) {
		if category != "" && item.Category != category {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(item.Name), search) {
			continue
		}
		response = append(response, s.toResponse(item))
	}

	return response, nil
}

func (s *groceryService) GetGroceryItemByID(ctx context.Context, id string) (domain.GroceryItemResponse, error) {
	for _, item := range s.groceryRepository.LoadAll(ctx) {
		if item.ID == id {
			return s.toResponse(item), nil
		}
	}
	return domain.GroceryItemResponse{}, domain.ErrGroceryItemNotFound
}

func (s *groceryService) GetDashboardStats(ctx context.Context) (domain.DashboardStatsResponse, error) {
	var stats domain.DashboardStatsResponse
	for _, item := range s.groceryRepository.LoadAll(ctx) {
		stats.TotalItems++
		switch s.config.Thresholds.Tier(item.DaysUntilExpiry) {
		case expiry.TierUrgent:
			stats.UrgentItems++
		case expiry.TierSoon:
			stats.SoonItems++
		default:
			stats.FreshItems++
		}
		if item.DaysUntilExpiry == 0 {
			stats.ExpiredItems++
		}
	}
	return stats, nil
}

func (s *groceryService) GetTiers() []domain.TierResponse {
	tiers := make([]domain.TierResponse, 0, len(expiry.Tiers))
	for _, tier := range expiry.Tiers {
		min, max := s.config.Thresholds.Bounds(tier)
		style := expiry.StyleOf(tier)
		tiers = append(tiers, domain.TierResponse{
			Tier:    string(tier),
			MinDays: min,
			MaxDays: max,
			Color:   style.Color,
			Width:   style.Width,
		})
	}
	return tiers
}

func (s *groceryService) CreateDraft(ctx context.Context) (domain.DraftResponse, error) {
	d := s.drafts.create(domain.GroceryForm{Category: string(domain.CategoryFruits)})
	return toDraftResponse(d), nil
}

func (s *groceryService) GetDraft(ctx context.Context, id string) (domain.DraftResponse, error) {
	d, err := s.drafts.get(id)
	if err != nil {
		return domain.DraftResponse{}, err
	}
	return toDraftResponse(d), nil
}

func (s *groceryService) UpdateDraft(ctx context.Context, id string, req domain.UpdateDraftRequest) (domain.DraftResponse, error) {
	d, err := s.drafts.update(id, func(d *draft) {
		if req.Name != nil {
			d.form.Name = *req.Name
		}
		if req.Category != nil {
			if strings.TrimSpace(*req.Category) == "" {
				d.form.Category = ""
			} else {
				d.form.Category = string(domain.NormalizeCategory(*req.Category))
			}
		}
		if req.ExpiryDate != nil {
			d.form.ExpiryDate = strings.TrimSpace(*req.ExpiryDate)
		}
		if req.ImageRef != nil {
			d.form.ImageRef = strings.TrimSpace(*req.ImageRef)
		}
	})
	if err != nil {
		return domain.DraftResponse{}, err
	}
	return toDraftResponse(d), nil
}

// RecognizeDraft attaches the picked image to the draft and, when recognition
// is available, pre-fills name and category from it. A failed recognition
// leaves both fields as they were.
func (s *groceryService) RecognizeDraft(ctx context.Context, id string, req domain.RecognizeDraftRequest) (domain.DraftResponse, error) {
	d, err := s.drafts.acquire(id)
	if err != nil {
		return domain.DraftResponse{}, err
	}

	attachImage := func(d *draft) {
		if ref := strings.TrimSpace(req.ImageRef); ref != "" {
			d.form.ImageRef = ref
		}
	}

	if s.recognizer == nil {
		if _, ok := s.drafts.release(id, attachImage); !ok {
			return domain.DraftResponse{}, domain.ErrDraftNotFound
		}
		return domain.DraftResponse{}, domain.ErrEnrichmentUnavailable
	}

	opCtx, cancel := context.WithCancel(ctx)
	stop := context.AfterFunc(d.ctx, cancel)
	result, recognizeErr := s.recognizer.Recognize(opCtx, req.Image)
	stop()
	cancel()

	updated, ok := s.drafts.release(id, func(d *draft) {
		attachImage(d)
		if recognizeErr != nil {
			d.note = "Failed to recognize product"
			return
		}
		d.form.Name = result.Name
		d.form.Category = string(result.Category)
		d.note = fmt.Sprintf("Recognized as: %s (%s)", result.Name, result.Category)
	})
	if !ok {
		s.logger.Debug().Str("draft_id", id).Msg("draft discarded during recognition, result dropped")
		return domain.DraftResponse{}, domain.ErrDraftNotFound
	}

	if recognizeErr != nil {
		s.logger.Warn().Err(recognizeErr).Str("draft_id", id).Msg("product recognition failed")
		var enrichmentErr *domain.EnrichmentError
		if !errors.As(recognizeErr, &enrichmentErr) {
			recognizeErr = &domain.EnrichmentError{Err: recognizeErr}
		}
		return toDraftResponse(updated), recognizeErr
	}

	return toDraftResponse(updated), nil
}

// SaveDraft validates and persists the draft. The draft is closed on success
// and kept as it was on any failure so the user can retry.
func (s *groceryService) SaveDraft(ctx context.Context, id string) (domain.GroceryItemResponse, error) {
	d, err := s.drafts.acquire(id)
	if err != nil {
		return domain.GroceryItemResponse{}, err
	}

	item, err := s.save(ctx, d.form)
	if err != nil {
		s.drafts.release(id, nil)
		return domain.GroceryItemResponse{}, err
	}

	s.drafts.remove(id)
	return item, nil
}

func (s *groceryService) DiscardDraft(ctx context.Context, id string) error {
	if !s.drafts.remove(id) {
		return domain.ErrDraftNotFound
	}
	return nil
}

func (s *groceryService) toResponse(item entities.GroceryItem) domain.GroceryItemResponse {
	status := s.config.Thresholds.Describe(item.ExpiryDate.Time, s.now())

	return domain.GroceryItemResponse{
		ID:              item.ID,
		Name:            item.Name,
		Category:        item.Category,
		ExpiryDate:      item.ExpiryDate,
		ExpiryDisplay:   item.ExpiryDate.Display(),
		DaysUntilExpiry: status.Days,
		Tier:            string(status.Tier),
		Color:           status.Style.Color,
		Width:           status.Style.Width,
		ImageRef:        item.ImageRef,
	}
}

func toDraftResponse(d draft) domain.DraftResponse {
	categories := make([]string, 0, len(domain.AllCategories))
	for _, c := range domain.AllCategories {
		categories = append(categories, string(c))
	}

	return domain.DraftResponse{
		ID:              d.id,
		Name:            d.form.Name,
		Category:        d.form.Category,
		ExpiryDate:      d.form.ExpiryDate,
		ImageRef:        d.form.ImageRef,
		RecognitionNote: d.note,
		Pending:         d.busy,
		Categories:      categories,
	}
}
