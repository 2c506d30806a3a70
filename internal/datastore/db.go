package datastore

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"github.com/alansmodic/edit-ledger/internal/config"
	"github.com/rs/zerolog"
	_ "modernc.org/sqlite"
)

// RevisionStore keeps the revision ledger in SQLite.
type RevisionStore struct {
	db     *sql.DB
	cfg    config.StorageConfig
	logger zerolog.Logger
}

// NewRevisionStore opens the ledger database and ensures the schema exists.
func NewRevisionStore(cfg config.StorageConfig, logger zerolog.Logger) (*RevisionStore, error) {
	logger = logger.With().Str("component", "RevisionStore").Logger()
	dataSourceName := cfg.SQLiteDBPath
	logger.Info().Str("db_path", dataSourceName).Msg("Initializing revision database connection")

	dbDir := filepath.Dir(dataSourceName)
	if err := os.MkdirAll(dbDir, 0755); err != nil {
		logger.Error().Err(err).Str("directory", dbDir).Msg("Failed to create revision database directory")
		return nil, fmt.Errorf("failed to create revision database directory %s: %w", dbDir, err)
	}

	dbInstance, err := sql.Open("sqlite", dataSourceName)
	if err != nil {
		logger.Error().Err(err).Str("db_path", dataSourceName).Msg("Failed to open revision database")
		return nil, fmt.Errorf("sql.Open failed for %s: %w", dataSourceName, err)
	}
	// a single connection serializes writers and keeps SQLite free of SQLITE_BUSY
	dbInstance.SetMaxOpenConns(1)

	store := &RevisionStore{db: dbInstance, cfg: cfg, logger: logger}
	if err := store.InitSchema(); err != nil {
		store.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	logger.Info().Str("path", dataSourceName).Msg("Revision database initialized and schema verified")
	return store, nil
}

// Close closes the database connection.
func (s *RevisionStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// InitSchema creates the revisions table and its indexes if they don't exist.
func (s *RevisionStore) InitSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS revisions (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			post_id INTEGER NOT NULL,
			title TEXT NOT NULL DEFAULT '',
			content TEXT NOT NULL DEFAULT '',
			excerpt TEXT NOT NULL DEFAULT '',
			author TEXT NOT NULL DEFAULT '',
			type TEXT NOT NULL DEFAULT 'manual',
			content_hash TEXT NOT NULL,
			created_at INTEGER NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_revisions_post ON revisions (post_id, id)`,
		`CREATE INDEX IF NOT EXISTS idx_revisions_created ON revisions (created_at)`,
	}
	for _, query := range statements {
		if _, err := s.db.Exec(query); err != nil {
			s.logger.Error().Err(err).Msg("DB: Failed to initialize schema")
			return err
		}
	}
	s.logger.Debug().Msg("DB: Schema initialized (revisions table ensured)")
	return nil
}
