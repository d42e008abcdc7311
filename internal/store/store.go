// ABOUTME: Store is the persistence facade over the SQLite database
// ABOUTME: Entity operations live in conversations.go, messages.go, usage.go, settings.go, kb.go
package store

// Store bundles all persistence operations for the chat backend.
type Store struct {
	db *DB
}

// New creates a Store over an opened database.
func New(db *DB) *Store {
	return &Store{db: db}
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}
