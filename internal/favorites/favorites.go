// Package favorites maintains the user's saved locations as a small
// persistent set keyed by name.
package favorites

import (
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/ahmedebrahem0/weatherdash/internal/errors"
	"github.com/ahmedebrahem0/weatherdash/internal/kvstore"
	"github.com/ahmedebrahem0/weatherdash/internal/logging"
)

// storageKey is the fixed key the favorites collection is persisted under.
const storageKey = "weather-favorites"

// FavoriteLocation is one saved location. Names are unique within the
// store.
type FavoriteLocation struct {
	Name    string    `json:"name"`
	Country string    `json:"country"`
	AddedAt time.Time `json:"addedAt"`
}

// Store owns the favorites collection and is the sole writer to its
// backing key. Every mutation is written through immediately.
type Store struct {
	mu      sync.RWMutex
	kv      kvstore.Interface
	entries []FavoriteLocation
	logger  *slog.Logger
}

// NewStore loads the favorites collection from the key-value store. A
// missing or corrupt stored value yields an empty collection, never an
// error.
func NewStore(kv kvstore.Interface) *Store {
	store := &Store{
		kv:     kv,
		logger: logging.ForService("favorites"),
	}
	if store.logger == nil {
		store.logger = slog.Default().With("service", "favorites")
	}

	value, ok, err := kv.Get(storageKey)
	if err != nil {
		store.logger.Warn("Failed to read favorites from storage, starting empty", "error", err)
		return store
	}
	if !ok {
		return store
	}

	var entries []FavoriteLocation
	if err := json.Unmarshal([]byte(value), &entries); err != nil {
		store.logger.Warn("Stored favorites are corrupt, starting empty", "error", err)
		return store
	}
	store.entries = entries
	return store
}

// Add saves a location. Adding a name that is already saved is a no-op.
func (s *Store) Add(loc FavoriteLocation) error {
	if loc.Name == "" {
		return errors.Newf("favorite location name must not be empty").
			Component("favorites").
			Category(errors.CategoryValidation).
			Build()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.entries {
		if s.entries[i].Name == loc.Name {
			return nil
		}
	}

	if loc.AddedAt.IsZero() {
		loc.AddedAt = time.Now()
	}
	s.entries = append(s.entries, loc)
	return s.persistLocked()
}

// Remove deletes a location by name. Removing an absent name is a no-op.
func (s *Store) Remove(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.entries {
		if s.entries[i].Name == name {
			s.entries = append(s.entries[:i], s.entries[i+1:]...)
			return s.persistLocked()
		}
	}
	return nil
}

// List returns the saved locations in insertion order.
func (s *Store) List() []FavoriteLocation {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]FavoriteLocation, len(s.entries))
	copy(out, s.entries)
	return out
}

// IsFavorite reports whether a location name is saved.
func (s *Store) IsFavorite(name string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for i := range s.entries {
		if s.entries[i].Name == name {
			return true
		}
	}
	return false
}

// Clear removes all saved locations.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries = nil
	return s.persistLocked()
}

// persistLocked re-serializes the whole collection to the backing key.
// Callers must hold the write lock.
func (s *Store) persistLocked() error {
	data, err := json.Marshal(s.entries)
	if err != nil {
		return errors.New(err).
			Component("favorites").
			Category(errors.CategoryDatabase).
			Context("operation", "marshal").
			Build()
	}
	if err := s.kv.Set(storageKey, string(data)); err != nil {
		s.logger.Error("Failed to persist favorites", "error", err, "count", len(s.entries))
		return err
	}
	s.logger.Debug("Persisted favorites", "count", len(s.entries))
	return nil
}
