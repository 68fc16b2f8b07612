package history

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
)

const (
	tableName  = "runs"
	timeLayout = "2006-01-02 15:04:05.000000000"
)

// Mode tells whether a run explored the maze or checked a supplied path.
type Mode string

const (
	ModeExplore  Mode = "explore"
	ModeValidate Mode = "validate"
)

// Run is one recorded solve or validation.
type Run struct {
	ID         string
	MazePath   string
	Mode       Mode
	Strategy   string
	MoveCount  int
	Factorized string
	Solved     bool
	Outcome    string
	CreatedAt  time.Time
}

// Store keeps run outcomes in sqlite.
type Store struct {
	db *sql.DB
}

func Open(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("error opening database %s: %w", dbPath, err)
	}

	// SSH sessions record concurrently; sqlite allows a single writer.
	db.SetMaxOpenConns(1)

	store := &Store{db: db}
	if err := store.createTable(); err != nil {
		db.Close()
		return nil, err
	}

	return store, nil
}

// createTable creates the runs table if it does not exist.
func (s *Store) createTable() error {
	const createTableSQL = `
	CREATE TABLE IF NOT EXISTS ` + tableName + ` (
		id TEXT PRIMARY KEY,
		maze_path TEXT NOT NULL,
		mode TEXT NOT NULL,
		strategy TEXT NOT NULL,
		move_count INTEGER NOT NULL,
		factorized TEXT NOT NULL,
		solved INTEGER NOT NULL,
		outcome TEXT NOT NULL,
		created_at TEXT NOT NULL
	);`

	if _, err := s.db.Exec(createTableSQL); err != nil {
		return fmt.Errorf("failed to execute CREATE TABLE: %w", err)
	}
	log.Debug("Run history table ensured.")
	return nil
}

// Record stores run, filling in its ID and timestamp when they are empty.
func (s *Store) Record(run Run) (Run, error) {
	if run.ID == "" {
		run.ID = uuid.NewString()
	}
	if run.CreatedAt.IsZero() {
		run.CreatedAt = time.Now().UTC()
	}

	const insertSQL = `
	INSERT INTO ` + tableName + ` (id, maze_path, mode, strategy, move_count, factorized, solved, outcome, created_at)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?);`

	_, err := s.db.Exec(insertSQL, run.ID, run.MazePath, string(run.Mode), run.Strategy, run.MoveCount,
		run.Factorized, run.Solved, run.Outcome, run.CreatedAt.UTC().Format(timeLayout))
	if err != nil {
		return run, fmt.Errorf("failed to insert run for %s: %w", run.MazePath, err)
	}

	return run, nil
}

// Recent returns a page of runs, newest first.
func (s *Store) Recent(limit, offset int) ([]Run, error) {
	const selectSQL = `
	SELECT id, maze_path, mode, strategy, move_count, factorized, solved, outcome, created_at
	FROM ` + tableName + `
	ORDER BY created_at DESC, rowid DESC
	LIMIT ? OFFSET ?;`

	rows, err := s.db.Query(selectSQL, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer rows.Close()

	runs := []Run{}
	for rows.Next() {
		var run Run
		var mode, createdAt string
		err := rows.Scan(&run.ID, &run.MazePath, &mode, &run.Strategy, &run.MoveCount,
			&run.Factorized, &run.Solved, &run.Outcome, &createdAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		run.Mode = Mode(mode)

		parsed, err := time.Parse(timeLayout, createdAt)
		if err == nil {
			run.CreatedAt = parsed
		} else {
			log.Warn("Time parsing error for run", "id", run.ID, "raw", createdAt, "error", err)
		}
		runs = append(runs, run)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error after iterating rows: %w", err)
	}

	return runs, nil
}

func (s *Store) Count() (int, error) {
	const countSQL = `SELECT COUNT(*) FROM ` + tableName + `;`
	var count int
	if err := s.db.QueryRow(countSQL).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to get run count: %w", err)
	}
	return count, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}
