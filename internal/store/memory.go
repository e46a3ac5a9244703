package store

import (
	"context"
	"fmt"
	"sync"

	"github.com/i474232898/weather-premium/internal/account"
)

// MemoryStore is a concurrency-safe in-memory implementation of account.Store.
type MemoryStore struct {
	mu sync.RWMutex

	accounts map[string]account.Account

	// favorites in insertion order; ids are never reused
	favorites []account.FavoritePlace
	nextID    int64
}

var _ account.Store = (*MemoryStore)(nil)

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		accounts: make(map[string]account.Account),
		nextID:   1,
	}
}

// Account returns the account with the given id.
func (s *MemoryStore) Account(_ context.Context, id string) (account.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	acc, ok := s.accounts[id]
	if !ok {
		return account.Account{}, fmt.Errorf("account %s: %w", id, account.ErrNotFound)
	}
	return acc, nil
}

// CreateAccount stores acc, replacing nothing if the id is already taken.
func (s *MemoryStore) CreateAccount(_ context.Context, acc account.Account) (account.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if existing, ok := s.accounts[acc.ID]; ok {
		return existing, nil
	}
	s.accounts[acc.ID] = acc
	return acc, nil
}

// SetPremium updates the premium flag of an existing account.
func (s *MemoryStore) SetPremium(_ context.Context, id string, premium bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	acc, ok := s.accounts[id]
	if !ok {
		return fmt.Errorf("account %s: %w", id, account.ErrNotFound)
	}
	acc.Premium = premium
	s.accounts[id] = acc
	return nil
}

// DeleteAccount removes the account and every favorite place it owns.
func (s *MemoryStore) DeleteAccount(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.accounts[id]; !ok {
		return fmt.Errorf("account %s: %w", id, account.ErrNotFound)
	}
	delete(s.accounts, id)

	kept := s.favorites[:0]
	for _, fp := range s.favorites {
		if fp.OwnerID != id {
			kept = append(kept, fp)
		}
	}
	s.favorites = kept
	return nil
}

// Favorites returns an owner's places in insertion order.
func (s *MemoryStore) Favorites(_ context.Context, ownerID string) ([]account.FavoritePlace, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []account.FavoritePlace
	for _, fp := range s.favorites {
		if fp.OwnerID == ownerID {
			result = append(result, fp)
		}
	}
	return result, nil
}

// Favorite returns the place with the given id.
func (s *MemoryStore) Favorite(_ context.Context, id int64) (account.FavoritePlace, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, fp := range s.favorites {
		if fp.ID == id {
			return fp, nil
		}
	}
	return account.FavoritePlace{}, fmt.Errorf("favorite place %d: %w", id, account.ErrNotFound)
}

// FavoriteByCity returns the owner's place for city.
func (s *MemoryStore) FavoriteByCity(_ context.Context, ownerID, city string) (account.FavoritePlace, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, fp := range s.favorites {
		if fp.OwnerID == ownerID && fp.City == city {
			return fp, nil
		}
	}
	return account.FavoritePlace{}, fmt.Errorf("favorite place %q: %w", city, account.ErrNotFound)
}

// InsertFavorite appends a new place. Uniqueness is the caller's concern.
func (s *MemoryStore) InsertFavorite(_ context.Context, ownerID, city string) (account.FavoritePlace, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.accounts[ownerID]; !ok {
		return account.FavoritePlace{}, fmt.Errorf("account %s: %w", ownerID, account.ErrNotFound)
	}

	fp := account.FavoritePlace{
		ID:      s.nextID,
		OwnerID: ownerID,
		City:    city,
	}
	s.nextID++
	s.favorites = append(s.favorites, fp)
	return fp, nil
}

// DeleteFavorite removes the place with the given id.
func (s *MemoryStore) DeleteFavorite(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, fp := range s.favorites {
		if fp.ID == id {
			s.favorites = append(s.favorites[:i], s.favorites[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("favorite place %d: %w", id, account.ErrNotFound)
}
