package upload

import (
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"github.com/claude/workoutsync/internal/models"
)

// StateDB remembers what was last imported for each workout name so that
// unchanged workouts are not sent again.
type StateDB struct {
	db *sql.DB
}

// OpenStateDB opens (or creates) the SQLite state database at dir/state.db.
func OpenStateDB(dir string) (*StateDB, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating state dir %s: %w", dir, err)
	}

	dbPath := filepath.Join(dir, "state.db")
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening state db: %w", err)
	}

	_, err = db.Exec(`CREATE TABLE IF NOT EXISTS imported_workouts (
		name        TEXT PRIMARY KEY,
		fingerprint TEXT NOT NULL,
		remote_id   INTEGER NOT NULL,
		imported_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	)`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("creating state table: %w", err)
	}

	_, err = db.Exec(`CREATE TABLE IF NOT EXISTS sync_state (
		key   TEXT PRIMARY KEY,
		value TEXT NOT NULL
	)`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("creating sync_state table: %w", err)
	}

	return &StateDB{db: db}, nil
}

// IsImported reports whether the named workout was last imported with the
// same fingerprint as remote workout remoteID.
func (s *StateDB) IsImported(name, fingerprint string, remoteID int64) (bool, error) {
	var count int
	err := s.db.QueryRow(
		`SELECT COUNT(*) FROM imported_workouts WHERE name = ? AND fingerprint = ? AND remote_id = ?`,
		name, fingerprint, remoteID,
	).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// MarkImported records a successful import.
func (s *StateDB) MarkImported(name, fingerprint string, remoteID int64) error {
	_, err := s.db.Exec(
		`INSERT OR REPLACE INTO imported_workouts (name, fingerprint, remote_id) VALUES (?, ?, ?)`,
		name, fingerprint, remoteID,
	)
	return err
}

// GetSyncState returns the value for key, or "" if not set.
func (s *StateDB) GetSyncState(key string) (string, error) {
	var value string
	err := s.db.QueryRow(`SELECT value FROM sync_state WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return value, nil
}

// SetSyncState stores value under key.
func (s *StateDB) SetSyncState(key, value string) error {
	_, err := s.db.Exec(`INSERT OR REPLACE INTO sync_state (key, value) VALUES (?, ?)`, key, value)
	return err
}

// Close closes the state database.
func (s *StateDB) Close() error {
	return s.db.Close()
}

// Fingerprint hashes a payload's content. The remote identity fields are
// left out so that a create and a later update of the same workout match.
func Fingerprint(p models.Workout) (string, error) {
	p.WorkoutID = nil
	p.OwnerID = nil
	data, err := json.Marshal(p)
	if err != nil {
		return "", err
	}
	h := sha256.Sum256(data)
	return hex.EncodeToString(h[:]), nil
}
