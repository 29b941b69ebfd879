package grocery

import (
	"EatBefore/domain"
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// draft is one open add-item form. At most one recognition or save runs
// against it at a time; discarding it cancels ctx.
type draft struct {
	id      string
	form    domain.GroceryForm
	note    string
	busy    bool
	touched time.Time

	ctx    context.Context
	cancel context.CancelFunc
}

type draftStore struct {
	mu     sync.Mutex
	drafts map[string]*draft
	ttl    time.Duration
	now    func() time.Time
}

func newDraftStore(ttl time.Duration, now func() time.Time) *draftStore {
	return &draftStore{
		drafts: make(map[string]*draft),
		ttl:    ttl,
		now:    now,
	}
}

func (s *draftStore) create(form domain.GroceryForm) draft {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.purgeLocked()

	ctx, cancel := context.WithCancel(context.Background())
	d := &draft{
		id:      uuid.New().String(),
		form:    form,
		touched: s.now(),
		ctx:     ctx,
		cancel:  cancel,
	}
	s.drafts[d.id] = d
	return *d
}

func (s *draftStore) get(id string) (draft, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.purgeLocked()

	d, ok := s.drafts[id]
	if !ok {
		return draft{}, domain.ErrDraftNotFound
	}
	d.touched = s.now()
	return *d, nil
}

// update edits an idle draft in place.
func (s *draftStore) update(id string, fn func(d *draft)) (draft, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.purgeLocked()

	d, ok := s.drafts[id]
	if !ok {
		return draft{}, domain.ErrDraftNotFound
	}
	if d.busy {
		return draft{}, domain.ErrDraftBusy
	}
	fn(d)
	d.touched = s.now()
	return *d, nil
}

// acquire marks the draft busy and returns a snapshot of it. Every successful
// acquire must be paired with release or remove.
func (s *draftStore) acquire(id string) (draft, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.purgeLocked()

	d, ok := s.drafts[id]
	if !ok {
		return draft{}, domain.ErrDraftNotFound
	}
	if d.busy {
		return draft{}, domain.ErrDraftBusy
	}
	d.busy = true
	d.touched = s.now()
	return *d, nil
}

// release clears the busy flag and applies fn. It reports false when the
// draft was discarded while busy, in which case fn is not applied.
func (s *draftStore) release(id string, fn func(d *draft)) (draft, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	d, ok := s.drafts[id]
	if !ok || d.ctx.Err() != nil {
		return draft{}, false
	}
	if fn != nil {
		fn(d)
	}
	d.busy = false
	d.touched = s.now()
	return *d, true
}

func (s *draftStore) remove(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	d, ok := s.drafts[id]
	if !ok {
		return false
	}
	d.cancel()
	delete(s.drafts, id)
	return true
}

func (s *draftStore) purgeLocked() {
	if s.ttl <= 0 {
		return
	}
	cutoff := s.now().Add(-s.ttl)
	for id, d := range s.drafts {
		if !d.busy && d.touched.Before(cutoff) {
			d.cancel()
			delete(s.drafts, id)
		}
	}
}
