package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/hagraph/hagraph/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/hagraph/hagraph/internal/core/domain"
	"github.com/hagraph/hagraph/internal/core/ports/driven"
)

// Store is a SQLite-based storage exposing the token store.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore creates a new SQLite store at the specified data directory.
// If dataDir is empty, defaults to ~/.hagraph/data/tokens.db.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".hagraph", "data")
	}

	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "tokens.db")

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{
		db:   db,
		path: dbPath,
	}

	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// TokenStore returns a TokenStore interface backed by this store.
func (s *Store) TokenStore() driven.TokenStore {
	return &tokenStore{store: s}
}

// migrate runs all pending migrations.
func (s *Store) migrate(fsys fs.FS) error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasSuffix(name, ".up.sql") {
			upFiles = append(upFiles, name)
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		// "001_tokens.up.sql" -> 1
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue
		}

		if version <= currentVersion {
			continue
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}

		if _, err := s.db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}

		if _, err := s.db.Exec("INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
			return fmt.Errorf("recording migration %s: %w", name, err)
		}
	}

	return nil
}

// ==================== Token Store ====================

// tokenStore implements driven.TokenStore.
type tokenStore struct {
	store *Store
}

var _ driven.TokenStore = (*tokenStore)(nil)

// Save stores or replaces the token for a client id.
func (s *tokenStore) Save(ctx context.Context, clientID string, tok domain.OAuthToken) error {
	if clientID == "" {
		return domain.ErrInvalidInput
	}

	tokenJSON, err := json.Marshal(tok)
	if err != nil {
		return fmt.Errorf("marshalling token: %w", err)
	}

	now := time.Now().UTC()
	_, err = s.store.db.ExecContext(ctx, `
		INSERT INTO tokens (client_id, token, created_at, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(client_id) DO UPDATE SET
			token = excluded.token,
			updated_at = excluded.updated_at
	`, clientID, string(tokenJSON), now, now)

	if err != nil {
		return fmt.Errorf("saving token: %w", err)
	}
	return nil
}

// Load retrieves the token for a client id.
func (s *tokenStore) Load(ctx context.Context, clientID string) (*domain.OAuthToken, error) {
	row := s.store.db.QueryRowContext(ctx, `SELECT token FROM tokens WHERE client_id = ?`, clientID)

	var tokenJSON string
	if err := row.Scan(&tokenJSON); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("loading token: %w", err)
	}

	var tok domain.OAuthToken
	if err := json.Unmarshal([]byte(tokenJSON), &tok); err != nil {
		return nil, fmt.Errorf("unmarshalling token: %w", err)
	}
	return &tok, nil
}

// Delete removes the token for a client id.
func (s *tokenStore) Delete(ctx context.Context, clientID string) error {
	if _, err := s.store.db.ExecContext(ctx, `DELETE FROM tokens WHERE client_id = ?`, clientID); err != nil {
		return fmt.Errorf("deleting token: %w", err)
	}
	return nil
}
