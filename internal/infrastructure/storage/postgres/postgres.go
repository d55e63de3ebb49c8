package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/exp/slog"
)

const (
	uniqueViolation     = "23505"
	foreignKeyViolation = "23503"

	// Default names postgres gives the REFERENCES clauses in migrations/.
	timesUserFK = "times_user_id_fkey"
)

// Storage owns the connection pool for the lifetime of the process.
type Storage struct {
	pool *pgxpool.Pool
	log  *slog.Logger
}

func New(ctx context.Context, databaseURI string, log *slog.Logger) (*Storage, error) {
	pool, err := pgxpool.New(ctx, databaseURI)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return &Storage{
		pool: pool,
		log:  log.With(slog.String("component", "postgres")),
	}, nil
}

func (s *Storage) Close() error {
	s.pool.Close()
	return nil
}

func (s *Storage) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

func (s *Storage) Pool() *pgxpool.Pool {
	return s.pool
}

func (s *Storage) Users() *UserRepository {
	return NewUserRepository(s.pool, s.log)
}

func (s *Storage) Categories() *CategoryRepository {
	return NewCategoryRepository(s.pool, s.log)
}

func (s *Storage) Times() *TimeRepository {
	return NewTimeRepository(s.pool, s.log)
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

// foreignKeyConstraint reports the constraint an insert or update broke
// when err is a foreign key violation.
func foreignKeyConstraint(err error) (string, bool) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == foreignKeyViolation {
		return pgErr.ConstraintName, true
	}
	return "", false
}

// nullableID keeps a nil *uuid.UUID away from the driver's Valuer path.
func nullableID(id *uuid.UUID) any {
	if id == nil {
		return nil
	}
	return *id
}
