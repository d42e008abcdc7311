// ABOUTME: Key/value settings storage for runtime-tunable bot behavior
// ABOUTME: Backs welcome message, fallback message and tone instructions
package store

import (
	"database/sql"
	"errors"
	"fmt"
)

// GetSetting returns the value for a settings key, or the empty string when
// the key does not exist.
func (s *Store) GetSetting(key string) (string, error) {
	var value string
	err := s.db.QueryRow("SELECT value FROM settings WHERE key = ?", key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to read setting %q: %w", key, err)
	}
	return value, nil
}

// SetSetting creates or replaces a settings key.
func (s *Store) SetSetting(key, value string) error {
	if key == "" {
		return errors.New("setting key cannot be empty")
	}
	_, err := s.db.Exec(
		"INSERT INTO settings (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value",
		key, value,
	)
	if err != nil {
		return fmt.Errorf("failed to write setting %q: %w", key, err)
	}
	return nil
}
