package memory

import (
	"fmt"
	"iter"
	"slices"
	"sync"

	"review_analyzer/internal/domain"
)

// Store is an append-only, insertion-ordered review collection.
// Appends are serialized; readers iterate a snapshot and never see a
// partially written record.
type Store struct {
	mu      sync.RWMutex
	reviews []domain.Review
	ids     map[string]struct{}
}

func New() *Store {
	return &Store{ids: make(map[string]struct{})}
}

func (s *Store) Append(r domain.Review) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, dup := s.ids[r.ID]; dup {
		return fmt.Errorf("%w: %s", domain.ErrDuplicateID, r.ID)
	}
	s.ids[r.ID] = struct{}{}
	s.reviews = append(s.reviews, r)
	return nil
}

// All returns a restartable view of the reviews stored at call time.
// Records appended later are not part of the view.
func (s *Store) All() iter.Seq[domain.Review] {
	s.mu.RLock()
	// Capped so a concurrent append can never write into the snapshot.
	snap := s.reviews[:len(s.reviews):len(s.reviews)]
	s.mu.RUnlock()
	return slices.Values(snap)
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.reviews)
}
