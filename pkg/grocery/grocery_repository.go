package grocery

import (
	"EatBefore/domain"
	"EatBefore/entities"
	"EatBefore/pkg/expiry"
	"EatBefore/pkg/kv"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

const (
	ItemsKey = "groceryItems"

	itemsSchemaVersion = 1
)

type (
	GroceryRepository interface {
		LoadAll(ctx context.Context) []entities.GroceryItem
		Append(ctx context.Context, item entities.GroceryItem) error
		Close() error
	}

	groceryRepository struct {
		store  kv.Store
		seed   bool
		now    func() time.Time
		logger zerolog.Logger

		requests  chan writeRequest
		quit      chan struct{}
		done      chan struct{}
		closeOnce sync.Once
	}

	writeRequest struct {
		ctx    context.Context
		op     string
		item   entities.GroceryItem
		result chan error
	}

	itemsEnvelope struct {
		Version int                    `json:"version"`
		Items   []entities.GroceryItem `json:"items"`
	}

	// legacyGroceryItem is a record of the bare array the mobile app wrote
	// before the envelope existed.
	legacyGroceryItem struct {
		ID         json.RawMessage `json:"id"`
		Name       string          `json:"name"`
		Category   string          `json:"category"`
		ExpiryDate string          `json:"expiryDate"`
		ImageURI   string          `json:"imageUri"`
		Image      any             `json:"image"`
	}
)

const (
	opAppend = "append"
	opSeed   = "seed"
)

// NewGroceryRepository starts the writer goroutine. Close must be called to
// stop it.
func NewGroceryRepository(store kv.Store, seed bool, logger zerolog.Logger) GroceryRepository {
	return newGroceryRepository(store, seed, time.Now, logger)
}

func newGroceryRepository(store kv.Store, seed bool, now func() time.Time, logger zerolog.Logger) *groceryRepository {
	r := &groceryRepository{
		store:    store,
		seed:     seed,
		now:      now,
		logger:   logger.With().Str("component", "grocery-repository").Logger(),
		requests: make(chan writeRequest),
		quit:     make(chan struct{}),
		done:     make(chan struct{}),
	}
	go r.run()
	return r
}

// LoadAll never fails. Unreadable data is logged and reported as no items.
func (r *groceryRepository) LoadAll(ctx context.Context) []entities.GroceryItem {
	items, found, err := r.read(ctx)
	if err != nil {
		r.logger.Warn().Err(err).Msg("failed to load grocery items, showing none")
		return []entities.GroceryItem{}
	}

	if !found {
		if !r.seed {
			return []entities.GroceryItem{}
		}
		items = SampleItems(r.today())
		if err := r.submit(ctx, writeRequest{op: opSeed}); err != nil {
			r.logger.Warn().Err(err).Msg("failed to persist sample grocery items")
		}
	}

	return r.refresh(items)
}

func (r *groceryRepository) Append(ctx context.Context, item entities.GroceryItem) error {
	return r.submit(ctx, writeRequest{op: opAppend, item: item})
}

func (r *groceryRepository) Close() error {
	r.closeOnce.Do(func() {
		close(r.quit)
	})
	<-r.done
	return nil
}

// submit hands a request to the writer. A request still waiting in line when
// ctx ends is abandoned; one the writer has taken always runs to completion.
func (r *groceryRepository) submit(ctx context.Context, req writeRequest) error {
	req.ctx = context.WithoutCancel(ctx)
	req.result = make(chan error, 1)

	select {
	case <-r.quit:
		return &domain.StoreError{Op: req.op, Kind: domain.ErrStoreClosed}
	default:
	}

	select {
	case r.requests <- req:
	case <-ctx.Done():
		return ctx.Err()
	case <-r.quit:
		return &domain.StoreError{Op: req.op, Kind: domain.ErrStoreClosed}
	}

	return <-req.result
}

func (r *groceryRepository) run() {
	defer close(r.done)

	for {
		select {
		case req := <-r.requests:
			req.result <- r.apply(req)
		case <-r.quit:
			return
		}
	}
}

// apply performs one read-modify-write. Only the writer goroutine calls it.
func (r *groceryRepository) apply(req writeRequest) error {
	items, found, err := r.read(req.ctx)
	if err != nil {
		r.logger.Error().Err(err).Str("op", req.op).Msg("refusing to overwrite unreadable grocery items")
		return &domain.StoreError{Op: req.op, Kind: domain.ErrReadFailed, Err: err}
	}

	switch req.op {
	case opSeed:
		if found {
			return nil
		}
		items = SampleItems(r.today())
	case opAppend:
		if !found && r.seed {
			items = SampleItems(r.today())
		}
		items = append(items, req.item)
	default:
		return fmt.Errorf("unknown grocery write operation %q", req.op)
	}

	raw, err := r.encode(items)
	if err != nil {
		return &domain.StoreError{Op: req.op, Kind: domain.ErrWriteFailed, Err: err}
	}

	if err := r.store.Set(req.ctx, ItemsKey, raw); err != nil {
		r.logger.Error().Err(err).Str("op", req.op).Msg("failed to write grocery items")
		return &domain.StoreError{Op: req.op, Kind: domain.ErrWriteFailed, Err: err}
	}

	r.logger.Debug().Str("op", req.op).Int("count", len(items)).Msg("grocery items written")
	return nil
}

// read reports found=false when the key has never been written.
func (r *groceryRepository) read(ctx context.Context) ([]entities.GroceryItem, bool, error) {
	raw, err := r.store.Get(ctx, ItemsKey)
	if err != nil {
		if errors.Is(err, kv.ErrNotFound) {
			return nil, false, nil
		}
		return nil, false, err
	}

	items, err := r.decode(raw)
	if err != nil {
		return nil, true, err
	}
	return items, true, nil
}

func (r *groceryRepository) decode(raw []byte) ([]entities.GroceryItem, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return nil, errors.New("stored grocery items are empty")
	}

	if raw[0] == '[' {
		return r.decodeLegacy(raw)
	}

	var envelope itemsEnvelope
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return nil, fmt.Errorf("failed to decode grocery items: %w", err)
	}
	if envelope.Version != itemsSchemaVersion {
		return nil, fmt.Errorf("unsupported grocery items version %d", envelope.Version)
	}

	items := make([]entities.GroceryItem, 0, len(envelope.Items))
	for _, item := range envelope.Items {
		if !item.Category.Valid() {
			normalized := domain.NormalizeCategory(string(item.Category))
			r.logger.Debug().
				Str("id", item.ID).
				Str("stored", string(item.Category)).
				Str("category", string(normalized)).
				Msg("normalizing stored grocery category")
			item.Category = normalized
		}
		items = append(items, item)
	}
	return items, nil
}

func (r *groceryRepository) decodeLegacy(raw []byte) ([]entities.GroceryItem, error) {
	var records []legacyGroceryItem
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, fmt.Errorf("failed to decode legacy grocery items: %w", err)
	}

	items := make([]entities.GroceryItem, 0, len(records))
	for _, record := range records {
		id := strings.Trim(string(record.ID), `"`)

		date, err := domain.ParseDate(record.ExpiryDate)
		if err != nil {
			r.logger.Warn().Err(err).Str("id", id).Msg("skipping legacy grocery item with unreadable expiry date")
			continue
		}

		imageRef := record.ImageURI
		if s, ok := record.Image.(string); ok && imageRef == "" {
			imageRef = s
		}

		items = append(items, entities.GroceryItem{
			ID:         id,
			Name:       strings.TrimSpace(record.Name),
			Category:   domain.NormalizeCategory(record.Category),
			ExpiryDate: date,
			ImageRef:   imageRef,
		})
	}
	return items, nil
}

func (r *groceryRepository) encode(items []entities.GroceryItem) ([]byte, error) {
	return json.Marshal(itemsEnvelope{
		Version: itemsSchemaVersion,
		Items:   r.refresh(items),
	})
}

// refresh recomputes the derived day count; the stored value is never trusted.
func (r *groceryRepository) refresh(items []entities.GroceryItem) []entities.GroceryItem {
	now := r.now()
	for i := range items {
		items[i].DaysUntilExpiry = expiry.DaysUntilExpiry(items[i].ExpiryDate.Time, now)
	}
	return items
}

func (r *groceryRepository) today() domain.Date {
	return domain.NewDate(r.now())
}

// SampleItems is the demo data shown on first launch.
func SampleItems(today domain.Date) []entities.GroceryItem {
	return []entities.GroceryItem{
		{
			ID:         "1",
			Name:       "Banana",
			Category:   domain.CategoryFruits,
			ExpiryDate: today.AddDays(2),
			ImageRef:   "banana.png",
		},
		{
			ID:         "2",
			Name:       "M&M's Peanut Chocolate More To Share",
			Category:   domain.CategoryFrozen,
			ExpiryDate: today.AddDays(10),
			ImageRef:   "chocolate.png",
		},
		{
			ID:         "3",
			Name:       "Succulent Large Chicken",
			Category:   domain.CategoryMeat,
			ExpiryDate: today.AddDays(5),
			ImageRef:   "chicken.png",
		},
	}
}
