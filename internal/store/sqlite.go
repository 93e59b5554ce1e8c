package store

import (
	"database/sql"
	"errors"
	"fmt"
	"log"
	"strings"

	_ "modernc.org/sqlite"

	"github.com/i474232898/weather-dashboard/internal/weather"
)

const schema = `
CREATE TABLE IF NOT EXISTS favorites (
    position INTEGER PRIMARY KEY AUTOINCREMENT,
    name     TEXT NOT NULL UNIQUE,
    country  TEXT NOT NULL DEFAULT ''
);
CREATE TABLE IF NOT EXISTS settings (
    key   TEXT PRIMARY KEY,
    value TEXT NOT NULL
);`

const (
	settingUnit   = "unit"
	settingSeeded = "seeded"
)

// SQLiteStore implements Store on top of sqlite (pure Go driver modernc.org/sqlite).
type SQLiteStore struct {
	db *sql.DB
}

var _ Store = (*SQLiteStore)(nil)

// NewSQLite opens (or creates) the database at path, applies the schema and
// seeds DefaultFavorites and unit the first time the file is used.
func NewSQLite(path string, unit weather.Unit) (*SQLiteStore, error) {
	if !unit.Valid() {
		unit = weather.Metric
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// A single connection serializes writers and avoids SQLITE_BUSY.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA journal_mode=WAL;"); err != nil {
		log.Println("WARN: could not set WAL mode:", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, err
	}

	s := &SQLiteStore{db: db}
	if err := s.seed(unit); err != nil {
		db.Close()
		return nil, fmt.Errorf("seed preferences: %w", err)
	}
	return s, nil
}

func (s *SQLiteStore) seed(unit weather.Unit) (err error) {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	var seeded string
	err = tx.QueryRow(`SELECT value FROM settings WHERE key = ?`, settingSeeded).Scan(&seeded)
	if err == nil {
		return tx.Commit()
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return err
	}

	for _, f := range DefaultFavorites {
		if _, err = tx.Exec(`INSERT OR IGNORE INTO favorites(name, country) VALUES(?, ?)`, f.Name, f.Country); err != nil {
			return err
		}
	}
	if _, err = tx.Exec(`INSERT OR REPLACE INTO settings(key, value) VALUES(?, ?)`, settingUnit, string(unit)); err != nil {
		return err
	}
	if _, err = tx.Exec(`INSERT INTO settings(key, value) VALUES(?, '1')`, settingSeeded); err != nil {
		return err
	}
	return tx.Commit()
}

func (s *SQLiteStore) Favorites() ([]Favorite, error) {
	rows, err := s.db.Query(`SELECT name, country FROM favorites ORDER BY position`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Favorite, 0)
	for rows.Next() {
		var f Favorite
		if err := rows.Scan(&f.Name, &f.Country); err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, rows.Err()
}

func (s *SQLiteStore) AddFavorite(f Favorite) (bool, error) {
	f, err := normalize(f)
	if err != nil {
		return false, err
	}

	res, err := s.db.Exec(`INSERT OR IGNORE INTO favorites(name, country) VALUES(?, ?)`, f.Name, f.Country)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (s *SQLiteStore) RemoveFavorite(name string) (bool, error) {
	res, err := s.db.Exec(`DELETE FROM favorites WHERE name = ?`, strings.TrimSpace(name))
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (s *SQLiteStore) ToggleFavorite(f Favorite) (added bool, err error) {
	f, err = normalize(f)
	if err != nil {
		return false, err
	}

	tx, err := s.db.Begin()
	if err != nil {
		return false, err
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	res, err := tx.Exec(`DELETE FROM favorites WHERE name = ?`, f.Name)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	if n == 0 {
		if _, err = tx.Exec(`INSERT INTO favorites(name, country) VALUES(?, ?)`, f.Name, f.Country); err != nil {
			return false, err
		}
		added = true
	}
	return added, tx.Commit()
}

func (s *SQLiteStore) Unit() (weather.Unit, error) {
	var v string
	err := s.db.QueryRow(`SELECT value FROM settings WHERE key = ?`, settingUnit).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return weather.Metric, nil
	}
	if err != nil {
		return "", err
	}

	u, err := weather.ParseUnit(v)
	if err != nil {
		log.Printf("WARN: stored unit %q is invalid; using metric", v)
		return weather.Metric, nil
	}
	return u, nil
}

func (s *SQLiteStore) SetUnit(u weather.Unit) error {
	if err := validUnit(u); err != nil {
		return err
	}
	_, err := s.db.Exec(`INSERT OR REPLACE INTO settings(key, value) VALUES(?, ?)`, settingUnit, string(u))
	return err
}

func (s *SQLiteStore) ToggleUnit() (next weather.Unit, err error) {
	tx, err := s.db.Begin()
	if err != nil {
		return "", err
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	var v string
	err = tx.QueryRow(`SELECT value FROM settings WHERE key = ?`, settingUnit).Scan(&v)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return "", err
	}
	u, perr := weather.ParseUnit(v)
	if perr != nil {
		u = weather.Metric
	}

	next = u.Toggle()
	if _, err = tx.Exec(`INSERT OR REPLACE INTO settings(key, value) VALUES(?, ?)`, settingUnit, string(next)); err != nil {
		return "", err
	}
	return next, tx.Commit()
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
