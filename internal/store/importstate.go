package store

import (
	"database/sql"
	"errors"
)

// GetImportState retrieves a value from the import state store.
// Returns empty string if the key doesn't exist.
func (db *DB) GetImportState(key string) (string, error) {
	var value string
	err := db.QueryRow(`SELECT value FROM import_state WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return value, nil
}

// SetImportState stores a value in the import state store
func (db *DB) SetImportState(key, value string) error {
	_, err := db.Exec(`
		INSERT INTO import_state (key, value, updated_at)
		VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET
			value = excluded.value,
			updated_at = CURRENT_TIMESTAMP
	`, key, value)
	return err
}
