package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"

	"github.com/sells-group/asselect/internal/model"
	"github.com/sells-group/asselect/internal/settings"
)

// SQLiteStore implements Store using modernc.org/sqlite.
type SQLiteStore struct {
	db *sql.DB
}

var _ Store = (*SQLiteStore)(nil)

// NewSQLite opens a SQLite database at the given path and configures WAL mode.
func NewSQLite(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: open")
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	} {
		if _, err := db.Exec(pragma); err != nil {
			_ = db.Close()
			return nil, eris.Wrapf(err, "sqlite: exec %s", pragma)
		}
	}
	return &SQLiteStore{db: db}, nil
}

const sqliteMigration = `
CREATE TABLE IF NOT EXISTS profiles (
	id         TEXT PRIMARY KEY,
	name       TEXT NOT NULL UNIQUE,
	settings   TEXT NOT NULL,
	created_at DATETIME NOT NULL DEFAULT (datetime('now')),
	updated_at DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE TABLE IF NOT EXISTS runs (
	id          TEXT PRIMARY KEY,
	profile     TEXT NOT NULL DEFAULT '',
	source      TEXT NOT NULL,
	airac       TEXT NOT NULL DEFAULT '',
	format      TEXT NOT NULL,
	status      TEXT NOT NULL,
	volumes     INTEGER NOT NULL DEFAULT 0,
	excluded    INTEGER NOT NULL DEFAULT 0,
	obstacles   INTEGER NOT NULL DEFAULT 0,
	bytes       INTEGER NOT NULL DEFAULT 0,
	duration_ms INTEGER NOT NULL DEFAULT 0,
	error       TEXT NOT NULL DEFAULT '',
	created_at  DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE INDEX IF NOT EXISTS idx_runs_created_at ON runs(created_at);
CREATE INDEX IF NOT EXISTS idx_runs_profile ON runs(profile);
`

func (s *SQLiteStore) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, sqliteMigration)
	return eris.Wrap(err, "sqlite: migrate")
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// SaveProfile inserts the profile or replaces the settings of an existing
// profile with the same name.
func (s *SQLiteStore) SaveProfile(ctx context.Context, name string, st settings.Settings) (*model.Profile, error) {
	if err := validProfileName(name); err != nil {
		return nil, err
	}
	settingsJSON, err := json.Marshal(st)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: marshal settings")
	}

	now := time.Now().UTC()
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO profiles (id, name, settings, created_at, updated_at) VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(name) DO UPDATE SET settings = excluded.settings, updated_at = excluded.updated_at`,
		uuid.New().String(), name, string(settingsJSON), now, now,
	)
	if err != nil {
		return nil, eris.Wrapf(err, "sqlite: save profile %s", name)
	}
	return s.GetProfile(ctx, name)
}

func (s *SQLiteStore) GetProfile(ctx context.Context, name string) (*model.Profile, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, name, settings, created_at, updated_at FROM profiles WHERE name = ?`,
		name,
	)
	p, err := scanProfile(row)
	if err == sql.ErrNoRows {
		return nil, eris.Wrapf(ErrNotFound, "sqlite: profile %s", name)
	}
	if err != nil {
		return nil, eris.Wrapf(err, "sqlite: get profile %s", name)
	}
	return p, nil
}

func (s *SQLiteStore) ListProfiles(ctx context.Context) ([]model.Profile, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, settings, created_at, updated_at FROM profiles ORDER BY name`,
	)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: list profiles")
	}
	defer rows.Close() //nolint:errcheck

	var profiles []model.Profile
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, eris.Wrap(err, "sqlite: scan profile")
		}
		profiles = append(profiles, *p)
	}
	return profiles, eris.Wrap(rows.Err(), "sqlite: list profiles iterate")
}

func (s *SQLiteStore) DeleteProfile(ctx context.Context, name string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM profiles WHERE name = ?`, name)
	if err != nil {
		return eris.Wrapf(err, "sqlite: delete profile %s", name)
	}
	return checkRowsAffected(res, "profile", name)
}

// CreateRun inserts run, assigning its id and creation time.
func (s *SQLiteStore) CreateRun(ctx context.Context, run *model.Run) error {
	run.ID = uuid.New().String()
	run.CreatedAt = time.Now().UTC()

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO runs (id, profile, source, airac, format, status, volumes, excluded, obstacles, bytes, duration_ms, error, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID, run.Profile, run.Source, run.AIRAC, run.Format, string(run.Status),
		run.Volumes, run.Excluded, run.Obstacles, run.Bytes, run.DurationMS, run.Error, run.CreatedAt,
	)
	return eris.Wrap(err, "sqlite: insert run")
}

func (s *SQLiteStore) ListRuns(ctx context.Context, filter RunFilter) ([]model.Run, error) {
	query := `SELECT id, profile, source, airac, format, status, volumes, excluded, obstacles, bytes, duration_ms, error, created_at
		FROM runs WHERE 1=1`
	var args []any

	if filter.Status != "" {
		query += ` AND status = ?`
		args = append(args, string(filter.Status))
	}
	if filter.Profile != "" {
		query += ` AND profile = ?`
		args = append(args, filter.Profile)
	}
	query += ` ORDER BY created_at DESC LIMIT ?`
	args = append(args, listLimit(filter))

	if filter.Offset > 0 {
		query += ` OFFSET ?`
		args = append(args, filter.Offset)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: list runs")
	}
	defer rows.Close() //nolint:errcheck

	var runs []model.Run
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, eris.Wrap(err, "sqlite: scan run")
		}
		runs = append(runs, *r)
	}
	return runs, eris.Wrap(rows.Err(), "sqlite: list runs iterate")
}

// helpers

func checkRowsAffected(res sql.Result, entity, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return eris.Wrap(err, "store: rows affected")
	}
	if n == 0 {
		return eris.Wrapf(ErrNotFound, "store: %s %s", entity, id)
	}
	return nil
}

type scannable interface {
	Scan(dest ...any) error
}

// scanProfile returns sql.ErrNoRows unwrapped so callers can map it.
func scanProfile(row scannable) (*model.Profile, error) {
	var (
		p            model.Profile
		settingsJSON string
	)
	if err := row.Scan(&p.ID, &p.Name, &settingsJSON, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	if err := decodeSettings([]byte(settingsJSON), &p.Settings); err != nil {
		return nil, err
	}
	return &p, nil
}

func scanRun(row scannable) (*model.Run, error) {
	var r model.Run
	err := row.Scan(&r.ID, &r.Profile, &r.Source, &r.AIRAC, &r.Format, &r.Status,
		&r.Volumes, &r.Excluded, &r.Obstacles, &r.Bytes, &r.DurationMS, &r.Error, &r.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &r, nil
}

// decodeSettings starts from the defaults so that profiles saved before a
// setting existed pick up its default value.
func decodeSettings(data []byte, out *settings.Settings) error {
	*out = settings.Default()
	if err := json.Unmarshal(data, out); err != nil {
		return eris.Wrap(err, "store: unmarshal settings")
	}
	return nil
}
