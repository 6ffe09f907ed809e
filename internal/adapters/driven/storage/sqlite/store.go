package sqlite

import (
	"context"
	"database/sql"
	"embed"
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

	"github.com/custodia-labs/ansa-cli/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/custodia-labs/ansa-cli/internal/core/domain"
	"github.com/custodia-labs/ansa-cli/internal/core/ports/driven"
)

// Ensure Store implements the interface.
var _ driven.SessionStore = (*Store)(nil)

// Store is a SQLite-backed session store holding conversations,
// feedback, and index build history.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore creates a new SQLite store at the specified data directory.
// If dataDir is empty, defaults to ~/.ansa/data/sessions.db.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".ansa", "data")
	}

	// Ensure directory exists
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "sessions.db")

	// Open database with WAL mode for better concurrency
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// Enable foreign keys
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling foreign keys: %w", err)
	}

	s := &Store{
		db:   db,
		path: dbPath,
	}

	// Run migrations
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

// migrate runs all pending migrations.
func (s *Store) migrate(fsys embed.FS) error {
	// Ensure schema_migrations table exists
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	// Get current version
	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	// Find all up migrations
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	// Sort and run migrations
	var upFiles []string
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasSuffix(name, ".up.sql") {
			upFiles = append(upFiles, name)
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		// Extract version number (e.g., "001_initial.up.sql" -> 1)
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue // Skip files that don't match pattern
		}

		if version <= currentVersion {
			continue // Already applied
		}

		// Read and execute migration
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

// CreateSession stores a new session.
func (s *Store) CreateSession(ctx context.Context, session *domain.Session) error {
	if session.CreatedAt.IsZero() {
		session.CreatedAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO sessions (id, created_at) VALUES (?, ?)
	`, session.ID, session.CreatedAt)
	if err != nil {
		return fmt.Errorf("creating session: %w", err)
	}
	return nil
}

// GetSession retrieves a session by ID.
func (s *Store) GetSession(ctx context.Context, id string) (*domain.Session, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, created_at FROM sessions WHERE id = ?
	`, id)

	var session domain.Session
	if err := row.Scan(&session.ID, &session.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("session %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("getting session: %w", err)
	}
	return &session, nil
}

// ListSessions returns all sessions, newest first.
func (s *Store) ListSessions(ctx context.Context) ([]domain.Session, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, created_at FROM sessions ORDER BY created_at DESC, id DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("listing sessions: %w", err)
	}
	defer rows.Close()

	var sessions []domain.Session
	for rows.Next() {
		var session domain.Session
		if err := rows.Scan(&session.ID, &session.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning session: %w", err)
		}
		sessions = append(sessions, session)
	}
	return sessions, rows.Err()
}

// AppendMessage stores a message at the end of its session.
func (s *Store) AppendMessage(ctx context.Context, message *domain.Message) error {
	if message.CreatedAt.IsZero() {
		message.CreatedAt = time.Now().UTC()
	}

	sourcesJSON, err := json.Marshal(message.Sources)
	if err != nil {
		return fmt.Errorf("marshalling sources: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO messages (id, session_id, role, content, sources, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, message.ID, message.SessionID, message.Role.String(), message.Content,
		string(sourcesJSON), message.CreatedAt)
	if err != nil {
		return fmt.Errorf("appending message: %w", err)
	}
	return nil
}

// ListMessages returns a session's messages in insertion order.
func (s *Store) ListMessages(ctx context.Context, sessionID string) ([]domain.Message, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, session_id, role, content, sources, created_at
		FROM messages WHERE session_id = ? ORDER BY rowid
	`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("listing messages: %w", err)
	}
	defer rows.Close()

	var messages []domain.Message
	for rows.Next() {
		var (
			message     domain.Message
			role        string
			sourcesJSON string
		)
		if err := rows.Scan(&message.ID, &message.SessionID, &role,
			&message.Content, &sourcesJSON, &message.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning message: %w", err)
		}
		message.Role = domain.MessageRole(role)
		if err := json.Unmarshal([]byte(sourcesJSON), &message.Sources); err != nil {
			return nil, fmt.Errorf("unmarshalling sources: %w", err)
		}
		messages = append(messages, message)
	}
	return messages, rows.Err()
}

// ClearMessages removes all messages and feedback of a session.
func (s *Store) ClearMessages(ctx context.Context, sessionID string) error {
	// Feedback rows cascade via the messages foreign key.
	_, err := s.db.ExecContext(ctx, `
		DELETE FROM messages WHERE session_id = ?
	`, sessionID)
	if err != nil {
		return fmt.Errorf("clearing messages: %w", err)
	}
	return nil
}

// SetFeedback stores a rating for a message, replacing any earlier rating.
func (s *Store) SetFeedback(ctx context.Context, feedback *domain.Feedback) error {
	if feedback.CreatedAt.IsZero() {
		feedback.CreatedAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO feedback (message_id, rating, created_at)
		VALUES (?, ?, ?)
		ON CONFLICT(message_id) DO UPDATE SET
			rating = excluded.rating,
			created_at = excluded.created_at
	`, feedback.MessageID, feedback.Rating.String(), feedback.CreatedAt)
	if err != nil {
		return fmt.Errorf("setting feedback: %w", err)
	}
	return nil
}

// GetFeedback retrieves the rating for a message.
func (s *Store) GetFeedback(ctx context.Context, messageID string) (*domain.Feedback, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT message_id, rating, created_at FROM feedback WHERE message_id = ?
	`, messageID)

	var (
		feedback domain.Feedback
		rating   string
	)
	if err := row.Scan(&feedback.MessageID, &rating, &feedback.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("feedback for message %s: %w", messageID, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("getting feedback: %w", err)
	}
	feedback.Rating = domain.FeedbackRating(rating)
	return &feedback, nil
}

// RecordBuild appends one index build record.
func (s *Store) RecordBuild(ctx context.Context, build *domain.BuildRecord) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO builds (id, started_at, finished_at, unit_count, source_count, success, error)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, build.ID, build.StartedAt, build.FinishedAt, build.UnitCount,
		build.SourceCount, build.Success, build.Error)
	if err != nil {
		return fmt.Errorf("recording build: %w", err)
	}
	return nil
}

// ListBuilds returns the most recent build records, newest first.
func (s *Store) ListBuilds(ctx context.Context, limit int) ([]domain.BuildRecord, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, started_at, finished_at, unit_count, source_count, success, error
		FROM builds ORDER BY started_at DESC, rowid DESC LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("listing builds: %w", err)
	}
	defer rows.Close()

	var builds []domain.BuildRecord
	for rows.Next() {
		var build domain.BuildRecord
		if err := rows.Scan(&build.ID, &build.StartedAt, &build.FinishedAt,
			&build.UnitCount, &build.SourceCount, &build.Success, &build.Error); err != nil {
			return nil, fmt.Errorf("scanning build: %w", err)
		}
		builds = append(builds, build)
	}
	return builds, rows.Err()
}
