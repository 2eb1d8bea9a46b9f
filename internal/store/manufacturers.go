package store

import (
	"database/sql"
	"fmt"
)

// Manufacturer is a canonical motor manufacturer
type Manufacturer struct {
	ID     int64
	Name   string
	Abbrev string
}

// UpsertManufacturer inserts a manufacturer if its name is unseen and
// returns its id. An existing row keeps its id; the abbreviation is filled
// in if it was previously empty.
func (s *Store) UpsertManufacturer(q Execer, name, abbrev string) (int64, error) {
	if name == "" {
		return 0, fmt.Errorf("manufacturer name must not be empty")
	}

	_, err := q.Exec(`
		INSERT INTO manufacturers (name, abbrev) VALUES (?, ?)
		ON CONFLICT(name) DO UPDATE SET abbrev = COALESCE(manufacturers.abbrev, excluded.abbrev)
	`, name, nullable(abbrev))
	if err != nil {
		return 0, fmt.Errorf("failed to upsert manufacturer %q: %w", name, err)
	}

	var id int64
	err = q.QueryRow(`SELECT id FROM manufacturers WHERE name = ?`, name).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to look up manufacturer %q: %w", name, err)
	}
	return id, nil
}

// GetManufacturerByName returns a manufacturer by exact name, or nil
func (s *Store) GetManufacturerByName(q Execer, name string) (*Manufacturer, error) {
	var m Manufacturer
	err := q.QueryRow(`
		SELECT id, name, COALESCE(abbrev, '') FROM manufacturers WHERE name = ?
	`, name).Scan(&m.ID, &m.Name, &m.Abbrev)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// ListManufacturers returns all manufacturers ordered by name
func (s *Store) ListManufacturers(q Execer) ([]*Manufacturer, error) {
	rows, err := q.Query(`
		SELECT id, name, COALESCE(abbrev, '') FROM manufacturers ORDER BY name
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*Manufacturer
	for rows.Next() {
		var m Manufacturer
		if err := rows.Scan(&m.ID, &m.Name, &m.Abbrev); err != nil {
			return nil, err
		}
		out = append(out, &m)
	}
	return out, rows.Err()
}

// CountManufacturers returns the number of manufacturers
func (s *Store) CountManufacturers(q Execer) (int, error) {
	var count int
	err := q.QueryRow(`SELECT COUNT(*) FROM manufacturers`).Scan(&count)
	return count, err
}
