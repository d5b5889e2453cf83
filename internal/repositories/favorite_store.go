package repositories

import "sync"

// FavoriteStore is the capability a favorites backend must provide. There are
// two implementations: an in-memory one for guest sessions and a GORM one for
// signed-in users. The favorite service picks one per request based on
// session state.
type FavoriteStore interface {
	GetAll(ownerID string) ([]string, error)
	Add(ownerID, itemID string) error
	Remove(ownerID, itemID string) error
}

// MemoryFavoriteStore keeps guest favorites in process memory, keyed by the
// guest session id. Losing them on restart is acceptable: guest favorites are
// best-effort until reconciled into the durable store at sign-in.
type MemoryFavoriteStore struct {
	byOwner map[string][]string
	mu      sync.RWMutex
}

// NewMemoryFavoriteStore creates a new instance of MemoryFavoriteStore.
func NewMemoryFavoriteStore() *MemoryFavoriteStore {
	return &MemoryFavoriteStore{
		byOwner: make(map[string][]string),
	}
}

// GetAll returns the favorited item ids for an owner, in insertion order.
func (s *MemoryFavoriteStore) GetAll(ownerID string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := s.byOwner[ownerID]
	out := make([]string, len(items))
	copy(out, items)
	return out, nil
}

// Add records a favorite. Adding an already-favorited item is a no-op.
func (s *MemoryFavoriteStore) Add(ownerID, itemID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.byOwner[ownerID] {
		if existing == itemID {
			return nil
		}
	}
	s.byOwner[ownerID] = append(s.byOwner[ownerID], itemID)
	return nil
}

// Remove deletes a favorite. Removing an absent item is a no-op.
func (s *MemoryFavoriteStore) Remove(ownerID, itemID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := s.byOwner[ownerID]
	for i, existing := range items {
		if existing == itemID {
			s.byOwner[ownerID] = append(items[:i], items[i+1:]...)
			return nil
		}
	}
	return nil
}
