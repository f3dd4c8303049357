package session

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

var ErrNoPath = errors.New("session: database path is empty")

// timeLayout is fixed width so stored timestamps sort as text.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

type Repository struct {
	db *sql.DB
}

func NewRepository(path string) (*Repository, error) {
	if path == "" {
		return nil, ErrNoPath
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, err
	}

	repo := &Repository{db: db}
	if err := repo.init(); err != nil {
		db.Close()
		return nil, err
	}

	return repo, nil
}

func (r *Repository) init() error {
	query := `
	CREATE TABLE IF NOT EXISTS sessions (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		kind TEXT NOT NULL,
		started_at TEXT NOT NULL,
		stopped_at TEXT NOT NULL,
		duration INTEGER NOT NULL
	)
	`
	_, err := r.db.Exec(query)
	return err
}

// Create stores s and sets its ID.
func (r *Repository) Create(s *Session) error {
	result, err := r.db.Exec(
		"INSERT INTO sessions (kind, started_at, stopped_at, duration) VALUES (?, ?, ?, ?)",
		string(s.Kind),
		s.StartedAt.UTC().Format(timeLayout),
		s.StoppedAt.UTC().Format(timeLayout),
		s.Duration.Milliseconds(),
	)
	if err != nil {
		return fmt.Errorf("failed to record session: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	s.ID = id
	return nil
}

// Recent returns up to limit sessions, newest first.
func (r *Repository) Recent(limit int) ([]Session, error) {
	if limit <= 0 {
		return nil, nil
	}

	rows, err := r.db.Query(
		"SELECT id, kind, started_at, stopped_at, duration FROM sessions ORDER BY stopped_at DESC, id DESC LIMIT ?",
		limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sessions []Session
	for rows.Next() {
		var s Session
		var kind, startedAt, stoppedAt string
		var duration int64
		if err := rows.Scan(&s.ID, &kind, &startedAt, &stoppedAt, &duration); err != nil {
			return nil, err
		}
		s.Kind = Kind(kind)
		if s.StartedAt, err = time.Parse(timeLayout, startedAt); err != nil {
			return nil, fmt.Errorf("session %d: bad started_at: %w", s.ID, err)
		}
		if s.StoppedAt, err = time.Parse(timeLayout, stoppedAt); err != nil {
			return nil, fmt.Errorf("session %d: bad stopped_at: %w", s.ID, err)
		}
		s.Duration = time.Duration(duration) * time.Millisecond
		sessions = append(sessions, s)
	}
	return sessions, rows.Err()
}

// Clear deletes every recorded session.
func (r *Repository) Clear() error {
	_, err := r.db.Exec("DELETE FROM sessions")
	return err
}

func (r *Repository) Close() error {
	return r.db.Close()
}
