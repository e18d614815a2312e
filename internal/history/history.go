// Package history provides SQLite-based persistence for completed runs.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package history

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// Store manages the SQLite database connection for run history.
type Store struct {
	db *sql.DB
}

// Run is a single completed attempt at a level.
type Run struct {
	ID        int64
	Level     int
	Moves     int
	Pushes    int
	CreatedAt time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("history: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("history: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("history: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("history: cannot connect to database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("history: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			level INTEGER NOT NULL,
			moves INTEGER NOT NULL,
			pushes INTEGER NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_runs_level ON runs(level);
		CREATE INDEX IF NOT EXISTS idx_runs_level_moves ON runs(level, moves ASC);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveRun records a completed run for the given level.
// Returns the ID of the inserted record.
func (s *Store) SaveRun(level, moves, pushes int) (int64, error) {
	result, err := s.db.Exec(
		"INSERT INTO runs (level, moves, pushes) VALUES (?, ?, ?)",
		level, moves, pushes,
	)
	if err != nil {
		return 0, fmt.Errorf("history: cannot save run: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("history: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// BestRuns retrieves the top N runs for a level, ordered by fewest moves
// with pushes as the tie-breaker.
func (s *Store) BestRuns(level, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT id, level, moves, pushes, created_at
		 FROM runs
		 WHERE level = ?
		 ORDER BY moves ASC, pushes ASC
		 LIMIT ?`,
		level, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("history: cannot query runs: %w", err)
	}
	defer rows.Close()

	return scanRuns(rows)
}

// RecentRuns retrieves the most recently completed runs across all levels.
func (s *Store) RecentRuns(limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT id, level, moves, pushes, created_at
		 FROM runs
		 ORDER BY created_at DESC, id DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("history: cannot query runs: %w", err)
	}
	defer rows.Close()

	return scanRuns(rows)
}

// RunCount returns the number of completed runs recorded for a level.
func (s *Store) RunCount(level int) (int, error) {
	var count int
	err := s.db.QueryRow(
		"SELECT COUNT(*) FROM runs WHERE level = ?",
		level,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("history: cannot count runs: %w", err)
	}
	return count, nil
}

// ClearLevel deletes all recorded runs for a level.
func (s *Store) ClearLevel(level int) error {
	_, err := s.db.Exec("DELETE FROM runs WHERE level = ?", level)
	if err != nil {
		return fmt.Errorf("history: cannot clear runs: %w", err)
	}
	return nil
}

func scanRuns(rows *sql.Rows) ([]Run, error) {
	var runs []Run
	for rows.Next() {
		var r Run
		var createdAt any
		if err := rows.Scan(&r.ID, &r.Level, &r.Moves, &r.Pushes, &createdAt); err != nil {
			return nil, fmt.Errorf("history: cannot scan row: %w", err)
		}

		// Parse the datetime - handle both time.Time and string
		switch v := createdAt.(type) {
		case time.Time:
			r.CreatedAt = v
		case string:
			if parsed, err := time.Parse("2006-01-02 15:04:05", v); err == nil {
				r.CreatedAt = parsed
			}
		}
		runs = append(runs, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("history: row iteration error: %w", err)
	}

	return runs, nil
}
