// Package sqlite keeps the entities in a single SQLite file for
// single-node installs that do not want a postgres server.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/mattn/go-sqlite3"
	"golang.org/x/exp/slog"
)

// Every connection enforces foreign keys, and transactions take the
// write lock up front so Update cannot lose a concurrent write.
const dsnOptions = "?_foreign_keys=on&_journal_mode=WAL&_busy_timeout=5000&_txlock=immediate"

const schema = `
	CREATE TABLE IF NOT EXISTS users (
		id            TEXT PRIMARY KEY,
		user_name     TEXT      NOT NULL,
		email         TEXT      NOT NULL UNIQUE,
		password_hash TEXT      NOT NULL,
		salt          TEXT      NOT NULL,
		created_at    TIMESTAMP NOT NULL
	);

	CREATE TABLE IF NOT EXISTS categories (
		id      TEXT PRIMARY KEY,
		name    TEXT NOT NULL,
		color   TEXT NOT NULL,
		user_id TEXT NOT NULL REFERENCES users (id) ON DELETE CASCADE
	);

	CREATE INDEX IF NOT EXISTS categories_user_id_idx ON categories (user_id);

	CREATE TABLE IF NOT EXISTS times (
		id          TEXT PRIMARY KEY,
		name        TEXT      NOT NULL,
		start_time  TIMESTAMP NOT NULL,
		end_time    TIMESTAMP,
		user_id     TEXT      NOT NULL REFERENCES users (id) ON DELETE CASCADE,
		category_id TEXT      REFERENCES categories (id) ON DELETE SET NULL
	);

	CREATE INDEX IF NOT EXISTS times_user_id_idx ON times (user_id);
	CREATE INDEX IF NOT EXISTS times_category_id_idx ON times (category_id);
`

type Storage struct {
	db  *sql.DB
	log *slog.Logger
}

// New opens or creates the database file at path and makes sure the
// tables exist.
func New(ctx context.Context, path string, log *slog.Logger) (*Storage, error) {
	db, err := sql.Open("sqlite3", path+dsnOptions)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	s := &Storage{
		db:  db,
		log: log.With(slog.String("component", "sqlite")),
	}
	if err := s.initTables(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("init tables: %w", err)
	}

	return s, nil
}

func (s *Storage) initTables(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, schema)
	return err
}

func (s *Storage) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *Storage) Close() error {
	return s.db.Close()
}

func (s *Storage) Users() *UserRepository {
	return &UserRepository{db: s.db, log: s.log.With(slog.String("repository", "user"))}
}

func (s *Storage) Categories() *CategoryRepository {
	return &CategoryRepository{db: s.db, log: s.log.With(slog.String("repository", "category"))}
}

func (s *Storage) Times() *TimeRepository {
	return &TimeRepository{db: s.db, log: s.log.With(slog.String("repository", "time"))}
}

// inTx commits when fn returns nil and rolls back otherwise.
func inTx(ctx context.Context, db *sql.DB, fn func(*sql.Tx) error) (err error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if err = fn(tx); err != nil {
		return err
	}
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var sqliteErr sqlite3.Error
	return errors.As(err, &sqliteErr) && sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique
}

func isForeignKeyViolation(err error) bool {
	var sqliteErr sqlite3.Error
	return errors.As(err, &sqliteErr) && sqliteErr.ExtendedCode == sqlite3.ErrConstraintForeignKey
}

// userExists tells a missing owner from a missing category after a foreign
// key violation, which sqlite reports without naming the column.
func userExists(ctx context.Context, q querier, id string) (bool, error) {
	var exists bool
	err := q.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM users WHERE id = ?)`, id).Scan(&exists)
	return exists, err
}

type querier interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// notFound maps sql.ErrNoRows to the domain's sentinel and wraps the rest.
func notFound(err, sentinel error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return sentinel
	}
	return fmt.Errorf("query: %w", err)
}

func affected(res sql.Result, err error, sentinel error) error {
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sentinel
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}
