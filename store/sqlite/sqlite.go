// Package sqlite is a relational session store whose columns are the wire
// field names of a session record.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/ayoisaiah/tally/internal/models"
	"github.com/ayoisaiah/tally/internal/osutil"
)

const currentVersion = 1

// timeLayout is fixed width so that stored timestamps sort lexically.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

const sessionColumns = `id, user_id, start_time, end_time, duration, hourly_rate, revenue, notes, task_id`

type Store struct {
	db *sql.DB
}

// New opens (or creates) the SQLite database at dbPath and runs migrations.
func New(dbPath string) (*Store, error) {
	if dbPath != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(dbPath), osutil.DirPermission); err != nil {
			return nil, fmt.Errorf("create db directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	db.SetMaxOpenConns(1)

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			db.Close()
			return nil, fmt.Errorf("exec pragma %q: %w", p, err)
		}
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return s, nil
}

// NewMemory creates an in-memory store for testing.
func NewMemory() (*Store, error) {
	return New(":memory:")
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	var version int

	err := s.db.QueryRow("PRAGMA user_version").Scan(&version)
	if err != nil {
		return fmt.Errorf("read user_version: %w", err)
	}

	if version >= currentVersion {
		return nil
	}

	if version < 1 {
		if err := s.migrateV1(); err != nil {
			return err
		}
	}

	_, err = s.db.Exec(fmt.Sprintf("PRAGMA user_version = %d", currentVersion))

	return err
}

func (s *Store) migrateV1() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS sessions (
			id          TEXT PRIMARY KEY,
			user_id     TEXT NOT NULL,
			start_time  TEXT NOT NULL,
			end_time    TEXT,
			duration    INTEGER NOT NULL DEFAULT 0,
			hourly_rate REAL NOT NULL DEFAULT 0,
			revenue     REAL NOT NULL DEFAULT 0,
			notes       TEXT NOT NULL DEFAULT '',
			task_id     TEXT
		);
		CREATE INDEX IF NOT EXISTS idx_sessions_user_start ON sessions(user_id, start_time);
	`)
	if err != nil {
		return fmt.Errorf("migrate v1: %w", err)
	}

	return nil
}

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func (s *Store) Create(ctx context.Context, sess *models.Session) (string, error) {
	if sess.ID == "" {
		sess.ID = uuid.NewString()
	}

	var end sql.NullString
	if sess.EndTime != nil {
		end = sql.NullString{String: formatTime(*sess.EndTime), Valid: true}
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO sessions (`+sessionColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		sess.ID, sess.UserID, formatTime(sess.StartTime), end,
		sess.Duration, sess.HourlyRate, sess.Revenue, sess.Notes, sess.TaskID,
	)
	if err != nil {
		return "", fmt.Errorf("create session: %w", err)
	}

	return sess.ID, nil
}

func (s *Store) Update(ctx context.Context, id string, f models.Fields) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE sessions
		 SET start_time = ?, end_time = ?, duration = ?, hourly_rate = ?, revenue = ?, notes = ?, task_id = ?
		 WHERE id = ?`,
		formatTime(f.StartTime), formatTime(f.EndTime), f.Duration,
		f.HourlyRate, f.Revenue, f.Notes, f.TaskID, id,
	)
	if err != nil {
		return fmt.Errorf("update session %s: %w", id, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update session %s: %w", id, err)
	}

	if n == 0 {
		return models.ErrSessionNotFound.Wrap(errors.New(id))
	}

	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanSession(row scanner) (*models.Session, error) {
	sess := &models.Session{}

	var (
		start  string
		end    sql.NullString
		taskID sql.NullString
	)

	err := row.Scan(
		&sess.ID, &sess.UserID, &start, &end, &sess.Duration,
		&sess.HourlyRate, &sess.Revenue, &sess.Notes, &taskID,
	)
	if err != nil {
		return nil, err
	}

	sess.StartTime, err = time.Parse(time.RFC3339Nano, start)
	if err != nil {
		return nil, fmt.Errorf("parse start_time: %w", err)
	}

	if end.Valid {
		t, err := time.Parse(time.RFC3339Nano, end.String)
		if err != nil {
			return nil, fmt.Errorf("parse end_time: %w", err)
		}

		sess.EndTime = &t
	}

	if taskID.Valid {
		sess.TaskID = &taskID.String
	}

	return sess, nil
}

func (s *Store) Get(ctx context.Context, id string) (*models.Session, error) {
	sess, err := scanSession(s.db.QueryRowContext(ctx,
		`SELECT `+sessionColumns+` FROM sessions WHERE id = ?`, id,
	))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.ErrSessionNotFound.Wrap(errors.New(id))
	}

	if err != nil {
		return nil, fmt.Errorf("get session %s: %w", id, err)
	}

	return sess, nil
}

func (s *Store) Delete(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM sessions WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete session %s: %w", id, err)
	}

	return nil
}

func (s *Store) query(ctx context.Context, q string, args ...any) ([]*models.Session, error) {
	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sessions []*models.Session

	for rows.Next() {
		sess, err := scanSession(rows)
		if err != nil {
			return nil, err
		}

		sessions = append(sessions, sess)
	}

	return sessions, rows.Err()
}

func (s *Store) Intervals(ctx context.Context, userID string) ([]models.Interval, error) {
	sessions, err := s.query(ctx,
		`SELECT `+sessionColumns+` FROM sessions WHERE user_id = ? AND end_time IS NOT NULL`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("list intervals: %w", err)
	}

	intervals := make([]models.Interval, len(sessions))
	for i := range sessions {
		intervals[i] = sessions[i].Interval()
	}

	return intervals, nil
}

func (s *Store) List(
	ctx context.Context,
	userID string,
	start, end time.Time,
) ([]*models.Session, error) {
	sessions, err := s.query(ctx,
		`SELECT `+sessionColumns+` FROM sessions
		 WHERE user_id = ? AND start_time >= ? AND start_time <= ?
		 ORDER BY start_time`,
		userID, formatTime(start), formatTime(end),
	)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}

	return sessions, nil
}
