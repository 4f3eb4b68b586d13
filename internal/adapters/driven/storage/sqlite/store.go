package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // SQLite driver

	"github.com/custodia-labs/sercha-tagger/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/custodia-labs/sercha-tagger/internal/core/domain"
	"github.com/custodia-labs/sercha-tagger/internal/core/ports/driven"
)

// Ensure Store implements the interface.
var _ driven.RunArchive = (*Store)(nil)

// Store archives tagging runs in a SQLite database.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore opens or creates the database at path, creating parent
// directories as needed, and applies pending migrations.
func NewStore(path string) (*Store, error) {
	if path == "" {
		return nil, fmt.Errorf("%w: database path is required", domain.ErrInvalidInput)
	}

	// Ensure directory exists
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	// Open database with WAL mode for better concurrency
	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
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
		path: path,
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

// Name identifies the store in error messages.
func (s *Store) Name() string {
	return "sqlite"
}

// Write archives run in a single transaction. A run without an ID is
// assigned a fresh UUID, which is written back to run.ID.
func (s *Store) Write(ctx context.Context, run *domain.RunResult) error {
	if run == nil {
		return fmt.Errorf("%w: run is nil", domain.ErrInvalidInput)
	}
	if run.ID == "" {
		run.ID = uuid.NewString()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	_, err = tx.ExecContext(ctx, `
		INSERT INTO runs (id, root, started_at, finished_at, partial, document_count, error_count)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, run.ID, run.Root, run.StartedAt.UTC(), run.FinishedAt.UTC(), run.Partial,
		len(run.Documents), len(run.Errors))
	if err != nil {
		return fmt.Errorf("saving run: %w", err)
	}

	for _, id := range run.Documents.SortedIDs() {
		doc := run.Documents[id]
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO documents (run_id, id, filename) VALUES (?, ?, ?)",
			run.ID, string(id), doc.Filename); err != nil {
			return fmt.Errorf("saving document %s: %w", id, err)
		}
		for pos, kw := range doc.Keywords {
			if _, err := tx.ExecContext(ctx,
				"INSERT INTO keywords (run_id, document_id, position, keyword) VALUES (?, ?, ?, ?)",
				run.ID, string(id), pos, kw); err != nil {
				return fmt.Errorf("saving keywords for %s: %w", id, err)
			}
		}
	}

	for pos, runErr := range run.Errors {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO run_errors (run_id, position, message) VALUES (?, ?, ?)",
			run.ID, pos, runErr.Error()); err != nil {
			return fmt.Errorf("saving run error: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing run: %w", err)
	}
	return nil
}

// ListRuns returns archived runs, newest first.
func (s *Store) ListRuns(ctx context.Context, limit int) ([]domain.RunSummary, error) {
	query := `
		SELECT id, root, started_at, finished_at, partial, document_count, error_count
		FROM runs ORDER BY started_at DESC, id`
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying runs: %w", err)
	}
	defer rows.Close()

	var runs []domain.RunSummary //nolint:prealloc // size unknown from query
	for rows.Next() {
		summary, err := scanSummary(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, summary)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating runs: %w", err)
	}
	return runs, nil
}

// GetRun loads a complete run.
func (s *Store) GetRun(ctx context.Context, id string) (*domain.RunResult, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, root, started_at, finished_at, partial, document_count, error_count
		FROM runs WHERE id = ?
	`, id)
	summary, err := scanSummary(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	docs, err := s.loadDocuments(ctx, id, "")
	if err != nil {
		return nil, err
	}

	errs, err := s.loadErrors(ctx, id)
	if err != nil {
		return nil, err
	}

	return &domain.RunResult{
		ID:         summary.ID,
		Root:       summary.Root,
		StartedAt:  summary.StartedAt,
		FinishedAt: summary.FinishedAt,
		Documents:  docs,
		Errors:     errs,
		Partial:    summary.Partial,
	}, nil
}

// FindByKeyword returns the documents of runID carrying keyword.
// Matching ignores ASCII case.
func (s *Store) FindByKeyword(ctx context.Context, runID, keyword string) (domain.ResultSet, error) {
	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		return nil, fmt.Errorf("%w: keyword is required", domain.ErrInvalidInput)
	}
	return s.loadDocuments(ctx, runID, keyword)
}

// loadDocuments reads the documents of a run with their keywords in order.
// A non-empty keyword restricts the result to documents tagged with it.
func (s *Store) loadDocuments(ctx context.Context, runID, keyword string) (domain.ResultSet, error) {
	query := `
		SELECT d.id, d.filename, k.position, k.keyword
		FROM documents d
		LEFT JOIN keywords k ON k.run_id = d.run_id AND k.document_id = d.id
		WHERE d.run_id = ?`
	args := []any{runID}
	if keyword != "" {
		query += `
		AND d.id IN (
			SELECT document_id FROM keywords
			WHERE run_id = ? AND keyword = ? COLLATE NOCASE
		)`
		args = append(args, runID, keyword)
	}
	query += " ORDER BY d.id, k.position"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying documents: %w", err)
	}
	defer rows.Close()

	docs := make(domain.ResultSet)
	for rows.Next() {
		var id, filename string
		var position sql.NullInt64
		var kw sql.NullString
		if err := rows.Scan(&id, &filename, &position, &kw); err != nil {
			return nil, fmt.Errorf("scanning document: %w", err)
		}

		doc, ok := docs[domain.DocumentID(id)]
		if !ok {
			doc = domain.Document{Filename: filename, Keywords: []string{}}
		}
		if kw.Valid {
			doc.Keywords = append(doc.Keywords, kw.String)
		}
		docs[domain.DocumentID(id)] = doc
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating documents: %w", err)
	}
	return docs, nil
}

func (s *Store) loadErrors(ctx context.Context, runID string) (domain.ErrorLog, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT message FROM run_errors WHERE run_id = ? ORDER BY position", runID)
	if err != nil {
		return nil, fmt.Errorf("querying run errors: %w", err)
	}
	defer rows.Close()

	var errs domain.ErrorLog //nolint:prealloc // size unknown from query
	for rows.Next() {
		var msg string
		if err := rows.Scan(&msg); err != nil {
			return nil, fmt.Errorf("scanning run error: %w", err)
		}
		errs = append(errs, errors.New(msg))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating run errors: %w", err)
	}
	return errs, nil
}

// scanner is satisfied by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanSummary(row scanner) (domain.RunSummary, error) {
	var summary domain.RunSummary
	var startedAt, finishedAt sql.NullTime
	if err := row.Scan(&summary.ID, &summary.Root, &startedAt, &finishedAt,
		&summary.Partial, &summary.DocumentCount, &summary.ErrorCount); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return summary, err
		}
		return summary, fmt.Errorf("scanning run: %w", err)
	}
	if startedAt.Valid {
		summary.StartedAt = startedAt.Time
	}
	if finishedAt.Valid {
		summary.FinishedAt = finishedAt.Time
	}
	return summary, nil
}

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

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		if name := entry.Name(); strings.HasSuffix(name, ".up.sql") {
			upFiles = append(upFiles, name)
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		// "001_initial.up.sql" -> 1
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
	}

	return nil
}
