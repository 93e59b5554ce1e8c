package store

import (
	"slices"
	"strings"
	"sync"

	"github.com/i474232898/weather-dashboard/internal/weather"
)

// MemoryStore is a concurrency-safe in-memory Store. Its contents live as
// long as the process.
type MemoryStore struct {
	mu sync.RWMutex

	favorites []Favorite
	unit      weather.Unit
}

var _ Store = (*MemoryStore)(nil)

// NewMemoryStore creates a MemoryStore seeded with DefaultFavorites.
// An invalid unit falls back to metric.
func NewMemoryStore(unit weather.Unit) *MemoryStore {
	if !unit.Valid() {
		unit = weather.Metric
	}
	return &MemoryStore{
		favorites: slices.Clone(DefaultFavorites),
		unit:      unit,
	}
}

func (s *MemoryStore) Favorites() ([]Favorite, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return slices.Clone(s.favorites), nil
}

func (s *MemoryStore) AddFavorite(f Favorite) (bool, error) {
	f, err := normalize(f)
	if err != nil {
		return false, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.indexOf(f.Name) >= 0 {
		return false, nil
	}
	s.favorites = append(s.favorites, f)
	return true, nil
}

func (s *MemoryStore) RemoveFavorite(name string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(strings.TrimSpace(name))
	if i < 0 {
		return false, nil
	}
	s.favorites = slices.Delete(s.favorites, i, i+1)
	return true, nil
}

func (s *MemoryStore) ToggleFavorite(f Favorite) (bool, error) {
	f, err := normalize(f)
	if err != nil {
		return false, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if i := s.indexOf(f.Name); i >= 0 {
		s.favorites = slices.Delete(s.favorites, i, i+1)
		return false, nil
	}
	s.favorites = append(s.favorites, f)
	return true, nil
}

func (s *MemoryStore) Unit() (weather.Unit, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.unit, nil
}

func (s *MemoryStore) SetUnit(u weather.Unit) error {
	if err := validUnit(u); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.unit = u
	return nil
}

func (s *MemoryStore) ToggleUnit() (weather.Unit, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.unit = s.unit.Toggle()
	return s.unit, nil
}

func (s *MemoryStore) Close() error {
	return nil
}

// indexOf must be called with s.mu held.
func (s *MemoryStore) indexOf(name string) int {
	return slices.IndexFunc(s.favorites, func(f Favorite) bool {
		return f.Name == name
	})
}
