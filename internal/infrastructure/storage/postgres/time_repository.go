package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/exp/slog"

	"timetrack/internal/domain/category"
	"timetrack/internal/domain/timelog"
	"timetrack/internal/utils/logger"
)

const selectTime = `
	SELECT t.id, t.name, t.start_time, t.end_time, t.user_id, t.category_id,
	       c.name, c.color, c.user_id
	FROM times t
	LEFT JOIN categories c ON c.id = t.category_id`

type TimeRepository struct {
	pool *pgxpool.Pool
	log  *slog.Logger
}

func NewTimeRepository(pool *pgxpool.Pool, log *slog.Logger) *TimeRepository {
	return &TimeRepository{
		pool: pool,
		log:  log.With(slog.String("component", "time_repository")),
	}
}

func (r *TimeRepository) List(ctx context.Context) ([]timelog.Entry, error) {
	return r.query(ctx, selectTime+` ORDER BY t.start_time, t.id`)
}

func (r *TimeRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]timelog.Entry, error) {
	return r.query(ctx, selectTime+` WHERE t.user_id = $1 ORDER BY t.start_time, t.id`, userID)
}

func (r *TimeRepository) Get(ctx context.Context, id uuid.UUID) (timelog.Entry, error) {
	e, err := scanEntry(r.pool.QueryRow(ctx, selectTime+` WHERE t.id = $1`, id))
	if err != nil {
		return timelog.Entry{}, notFound(err, timelog.ErrNotFound)
	}
	return e, nil
}

func (r *TimeRepository) Create(ctx context.Context, e *timelog.Entry) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO times (id, name, start_time, end_time, user_id, category_id)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		e.ID, e.Name, e.StartTime, e.EndTime, e.UserID, nullableID(e.CategoryID),
	)
	if err != nil {
		if fkErr := referenceError(err); fkErr != nil {
			return fkErr
		}
		r.log.Error("failed to create time entry", slog.String("user_id", e.UserID.String()), logger.Err(err))
		return fmt.Errorf("insert time entry: %w", err)
	}
	return nil
}

func (r *TimeRepository) Update(ctx context.Context, id uuid.UUID, apply func(*timelog.Entry) error) (timelog.Entry, error) {
	var e timelog.Entry
	err := pgx.BeginTxFunc(ctx, r.pool, pgx.TxOptions{}, func(tx pgx.Tx) error {
		var err error
		e, err = scanEntry(tx.QueryRow(ctx, selectTime+` WHERE t.id = $1 FOR UPDATE OF t`, id))
		if err != nil {
			return notFound(err, timelog.ErrNotFound)
		}

		owner := e.UserID
		if err := apply(&e); err != nil {
			return err
		}
		e.UserID = owner

		_, err = tx.Exec(ctx,
			`UPDATE times SET name = $2, start_time = $3, end_time = $4, category_id = $5 WHERE id = $1`,
			id, e.Name, e.StartTime, e.EndTime, nullableID(e.CategoryID),
		)
		if fkErr := referenceError(err); fkErr != nil {
			return fkErr
		}
		return err
	})
	if err != nil {
		return timelog.Entry{}, err
	}
	return e, nil
}

func (r *TimeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM times WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete time entry: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return timelog.ErrNotFound
	}
	return nil
}

func (r *TimeRepository) query(ctx context.Context, sql string, args ...any) ([]timelog.Entry, error) {
	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("list time entries: %w", err)
	}
	defer rows.Close()

	entries := make([]timelog.Entry, 0)
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("scan time entry: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list time entries: %w", err)
	}
	return entries, nil
}

func scanEntry(row pgx.Row) (timelog.Entry, error) {
	var (
		e          timelog.Entry
		catName    *string
		catColor   *string
		catOwnerID *uuid.UUID
	)
	err := row.Scan(
		&e.ID, &e.Name, &e.StartTime, &e.EndTime, &e.UserID, &e.CategoryID,
		&catName, &catColor, &catOwnerID,
	)
	if err != nil {
		return timelog.Entry{}, err
	}

	e.StartTime = e.StartTime.UTC()
	if e.EndTime != nil {
		end := e.EndTime.UTC()
		e.EndTime = &end
	}
	if e.CategoryID != nil && catName != nil {
		e.Category = &category.Category{
			ID:     *e.CategoryID,
			Name:   *catName,
			Color:  derefString(catColor),
			UserID: derefID(catOwnerID),
		}
	}
	return e, nil
}

// referenceError maps a row that vanished between the service's checks and
// the write to the matching not found error. Nil when err is not a foreign
// key violation.
func referenceError(err error) error {
	constraint, ok := foreignKeyConstraint(err)
	switch {
	case !ok:
		return nil
	case constraint == timesUserFK:
		return timelog.ErrUserNotFound
	default:
		return timelog.ErrCategoryNotFound
	}
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func derefID(id *uuid.UUID) uuid.UUID {
	if id == nil {
		return uuid.Nil
	}
	return *id
}
