package favorites

import (
	"sync"
)

// Selection is the ordered set of favorite item ids. It lives only in memory;
// the item store is never touched by it.
type Selection struct {
	mu  sync.RWMutex
	ids []string
}

func NewSelection(ids ...string) *Selection {
	s := &Selection{}
	for _, id := range ids {
		s.Add(id)
	}
	return s
}

// Add reports false when id was already a favorite.
func (s *Selection) Add(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.ids {
		if existing == id {
			return false
		}
	}
	s.ids = append(s.ids, id)
	return true
}

// Remove reports false when id was not a favorite.
func (s *Selection) Remove(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, existing := range s.ids {
		if existing == id {
			s.ids = append(s.ids[:i], s.ids[i+1:]...)
			return true
		}
	}
	return false
}

func (s *Selection) Contains(id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, existing := range s.ids {
		if existing == id {
			return true
		}
	}
	return false
}

func (s *Selection) List() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return append([]string(nil), s.ids...)
}
