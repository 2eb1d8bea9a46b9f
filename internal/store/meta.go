package store

import (
	"database/sql"
	"fmt"
)

// SetMeta stores a build metadata key/value pair
func (s *Store) SetMeta(q Execer, key, value string) error {
	_, err := q.Exec(`
		INSERT INTO meta (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, key, value)
	if err != nil {
		return fmt.Errorf("failed to set meta %q: %w", key, err)
	}
	return nil
}

// GetMeta returns a metadata value, or "" when the key is absent
func (s *Store) GetMeta(q Execer, key string) (string, error) {
	var value string
	err := q.QueryRow(`SELECT value FROM meta WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return value, nil
}
