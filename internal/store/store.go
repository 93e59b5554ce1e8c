package store

import (
	"errors"
	"strings"

	"github.com/i474232898/weather-dashboard/internal/weather"
)

var (
	// ErrInvalidFavorite is returned when a favorite has no city name.
	ErrInvalidFavorite = errors.New("favorite city name is required")
)

// Favorite is a pinned city on the dashboard.
type Favorite struct {
	Name    string `json:"name"`
	Country string `json:"country"`
}

// DefaultFavorites seed an empty store on first use.
var DefaultFavorites = []Favorite{
	{Name: "Bangalore", Country: "IN"},
	{Name: "Jaipur", Country: "IN"},
}

// Store persists the dashboard's favorite cities and unit preference.
// Favorites are unique by name and keep insertion order.
type Store interface {
	Favorites() ([]Favorite, error)
	// AddFavorite reports whether f was added; an existing name is a no-op.
	AddFavorite(f Favorite) (bool, error)
	// RemoveFavorite reports whether a favorite with that name existed.
	RemoveFavorite(name string) (bool, error)
	// ToggleFavorite adds or removes f and reports whether it is now a favorite.
	ToggleFavorite(f Favorite) (bool, error)

	Unit() (weather.Unit, error)
	SetUnit(u weather.Unit) error
	// ToggleUnit flips metric/imperial and returns the new unit.
	ToggleUnit() (weather.Unit, error)

	Close() error
}

func normalize(f Favorite) (Favorite, error) {
	f.Name = strings.TrimSpace(f.Name)
	f.Country = strings.TrimSpace(f.Country)
	if f.Name == "" {
		return f, ErrInvalidFavorite
	}
	return f, nil
}

func validUnit(u weather.Unit) error {
	if !u.Valid() {
		return weather.ErrInvalidUnit
	}
	return nil
}
