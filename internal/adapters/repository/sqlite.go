package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/okian/hackstack/internal/domain/model"

	_ "modernc.org/sqlite" // registers the "sqlite" driver
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS hackathons (
	id               TEXT PRIMARY KEY,
	seq              INTEGER NOT NULL,
	title            TEXT NOT NULL,
	description      TEXT NOT NULL,
	full_description TEXT NOT NULL DEFAULT '',
	organizer        TEXT NOT NULL,
	prize            TEXT NOT NULL DEFAULT '',
	eligibility      TEXT NOT NULL DEFAULT '',
	start_date       TEXT NOT NULL DEFAULT '',
	end_date         TEXT NOT NULL DEFAULT '',
	domain           TEXT NOT NULL,
	level            TEXT NOT NULL,
	mode             TEXT NOT NULL,
	status           TEXT NOT NULL,
	days_left        INTEGER NOT NULL,
	participants     INTEGER NOT NULL,
	team_min         INTEGER NOT NULL,
	team_max         INTEGER NOT NULL,
	tech_stack       TEXT NOT NULL DEFAULT '[]'
);
CREATE INDEX IF NOT EXISTS hackathons_seq_idx ON hackathons (seq DESC);
`

const hackathonColumns = `id, title, description, full_description, organizer, prize, eligibility,
	start_date, end_date, domain, level, mode, status, days_left, participants,
	team_min, team_max, tech_stack`

// OpenSQLite opens a SQLite database at path with WAL journaling and a busy
// timeout. ":memory:" gives a private in-memory database.
func OpenSQLite(ctx context.Context, path string) (*sql.DB, error) {
	dsn := path
	if path != ":memory:" {
		dsn = path + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=synchronous(NORMAL)"
	}
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}
	// one connection: SQLite has a single writer and each :memory: connection is its own database
	db.SetMaxOpenConns(1)
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite %s: %w", path, err)
	}
	return db, nil
}

// SQLiteStore is a Catalog backed by a SQLite table. Insertion order is kept
// in the seq column: creates take max+1, seeds take min-1.
type SQLiteStore struct {
	db   *sql.DB
	opts options
}

// NewSQLiteStore creates the schema if needed and returns the store. The
// store owns db and closes it on Close.
func NewSQLiteStore(ctx context.Context, db *sql.DB, opts ...Option) (*SQLiteStore, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if _, err := db.ExecContext(ctx, sqliteSchema); err != nil {
		return nil, fmt.Errorf("migrate hackathons: %w", err)
	}
	return &SQLiteStore{db: db, opts: o}, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanHackathon(row rowScanner) (model.Hackathon, error) {
	var (
		h    model.Hackathon
		tech string
	)
	err := row.Scan(
		&h.ID, &h.Title, &h.Description, &h.FullDescription, &h.Organizer, &h.Prize, &h.Eligibility,
		&h.StartDate, &h.EndDate, &h.Domain, &h.Level, &h.Mode, &h.Status, &h.DaysLeft, &h.Participants,
		&h.TeamSize.Min, &h.TeamSize.Max, &tech,
	)
	if err != nil {
		return model.Hackathon{}, err
	}
	if err := json.Unmarshal([]byte(tech), &h.TechStack); err != nil {
		return model.Hackathon{}, fmt.Errorf("decode tech_stack for %s: %w", h.ID, err)
	}
	return h, nil
}

func hackathonArgs(h model.Hackathon) ([]any, error) {
	tags := h.TechStack
	if tags == nil {
		tags = []string{}
	}
	tech, err := json.Marshal(tags)
	if err != nil {
		return nil, fmt.Errorf("encode tech_stack for %s: %w", h.ID, err)
	}
	return []any{
		h.ID, h.Title, h.Description, h.FullDescription, h.Organizer, h.Prize, h.Eligibility,
		h.StartDate, h.EndDate, h.Domain, string(h.Level), string(h.Mode), string(h.Status), h.DaysLeft, h.Participants,
		h.TeamSize.Min, h.TeamSize.Max, string(tech),
	}, nil
}

func insertHackathon(ctx context.Context, tx *sql.Tx, h model.Hackathon, seq int64) error {
	args, err := hackathonArgs(h)
	if err != nil {
		return err
	}
	args = append(args, seq)
	_, err = tx.ExecContext(ctx,
		`INSERT INTO hackathons (`+hackathonColumns+`, seq)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`, args...)
	if err != nil {
		return fmt.Errorf("insert hackathon %s: %w", h.ID, err)
	}
	return nil
}

func exists(ctx context.Context, tx *sql.Tx, id string) (bool, error) {
	var n int
	if err := tx.QueryRowContext(ctx, `SELECT COUNT(1) FROM hackathons WHERE id = ?`, id).Scan(&n); err != nil {
		return false, fmt.Errorf("lookup hackathon %s: %w", id, err)
	}
	return n > 0, nil
}

// Create implements Catalog.
func (s *SQLiteStore) Create(ctx context.Context, h model.Hackathon) (model.Hackathon, error) {
	defer observeUpdate(time.Now())

	rec, err := prepareCreate(h, s.opts)
	if err != nil {
		return model.Hackathon{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return model.Hackathon{}, err
	}
	defer func() { _ = tx.Rollback() }()

	if dup, err := exists(ctx, tx, rec.ID); err != nil {
		return model.Hackathon{}, err
	} else if dup {
		return model.Hackathon{}, fmt.Errorf("%w: %s", ErrConflict, rec.ID)
	}
	var seq int64
	if err := tx.QueryRowContext(ctx, `SELECT COALESCE(MAX(seq), 0) + 1 FROM hackathons`).Scan(&seq); err != nil {
		return model.Hackathon{}, fmt.Errorf("next seq: %w", err)
	}
	if err := insertHackathon(ctx, tx, rec, seq); err != nil {
		return model.Hackathon{}, err
	}
	if err := tx.Commit(); err != nil {
		return model.Hackathon{}, err
	}
	return rec, nil
}

// Get implements Catalog.
func (s *SQLiteStore) Get(ctx context.Context, id string) (model.Hackathon, error) {
	defer observeQuery(time.Now())

	row := s.db.QueryRowContext(ctx, `SELECT `+hackathonColumns+` FROM hackathons WHERE id = ?`, id)
	h, err := scanHackathon(row)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Hackathon{}, notFound(id)
	}
	if err != nil {
		return model.Hackathon{}, fmt.Errorf("get hackathon %s: %w", id, err)
	}
	return h, nil
}

// Update implements Catalog.
func (s *SQLiteStore) Update(ctx context.Context, id string, p model.HackathonPatch) (model.Hackathon, error) {
	defer observeUpdate(time.Now())

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return model.Hackathon{}, err
	}
	defer func() { _ = tx.Rollback() }()

	row := tx.QueryRowContext(ctx, `SELECT `+hackathonColumns+` FROM hackathons WHERE id = ?`, id)
	current, err := scanHackathon(row)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Hackathon{}, notFound(id)
	}
	if err != nil {
		return model.Hackathon{}, fmt.Errorf("get hackathon %s: %w", id, err)
	}

	rec, err := prepareUpdate(current, p)
	if err != nil {
		return model.Hackathon{}, err
	}
	args, err := hackathonArgs(rec)
	if err != nil {
		return model.Hackathon{}, err
	}
	// id moves from the first argument to the WHERE clause
	args = append(args[1:], id)
	_, err = tx.ExecContext(ctx, `UPDATE hackathons SET
		title = ?, description = ?, full_description = ?, organizer = ?, prize = ?, eligibility = ?,
		start_date = ?, end_date = ?, domain = ?, level = ?, mode = ?, status = ?, days_left = ?,
		participants = ?, team_min = ?, team_max = ?, tech_stack = ?
		WHERE id = ?`, args...)
	if err != nil {
		return model.Hackathon{}, fmt.Errorf("update hackathon %s: %w", id, err)
	}
	if err := tx.Commit(); err != nil {
		return model.Hackathon{}, err
	}
	return rec, nil
}

// Delete implements Catalog.
func (s *SQLiteStore) Delete(ctx context.Context, id string) error {
	defer observeUpdate(time.Now())

	res, err := s.db.ExecContext(ctx, `DELETE FROM hackathons WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete hackathon %s: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return notFound(id)
	}
	return nil
}

// List implements Catalog.
func (s *SQLiteStore) List(ctx context.Context) ([]model.Hackathon, error) {
	defer observeQuery(time.Now())

	rows, err := s.db.QueryContext(ctx, `SELECT `+hackathonColumns+` FROM hackathons ORDER BY seq DESC`)
	if err != nil {
		return nil, fmt.Errorf("list hackathons: %w", err)
	}
	defer rows.Close()

	out := []model.Hackathon{}
	for rows.Next() {
		h, err := scanHackathon(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, h)
	}
	return out, rows.Err()
}

// Count implements Catalog.
func (s *SQLiteStore) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(1) FROM hackathons`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count hackathons: %w", err)
	}
	return n, nil
}

// Seed implements Catalog. The batch is one transaction.
func (s *SQLiteStore) Seed(ctx context.Context, hs []model.Hackathon) error {
	defer observeUpdate(time.Now())

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	var seq int64
	if err := tx.QueryRowContext(ctx, `SELECT COALESCE(MIN(seq), 1) FROM hackathons`).Scan(&seq); err != nil {
		return fmt.Errorf("lowest seq: %w", err)
	}
	for _, h := range hs {
		rec, err := prepareSeed(h, s.opts)
		if err != nil {
			return err
		}
		if dup, err := exists(ctx, tx, rec.ID); err != nil {
			return err
		} else if dup {
			return fmt.Errorf("%w: %s", ErrConflict, rec.ID)
		}
		seq--
		if err := insertHackathon(ctx, tx, rec, seq); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// Close implements Catalog.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
