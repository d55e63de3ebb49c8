package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
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
	db  *sql.DB
	log *slog.Logger
}

func (r *TimeRepository) List(ctx context.Context) ([]timelog.Entry, error) {
	return r.query(ctx, selectTime+` ORDER BY t.start_time, t.id`)
}

func (r *TimeRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]timelog.Entry, error) {
	return r.query(ctx, selectTime+` WHERE t.user_id = ? ORDER BY t.start_time, t.id`, userID.String())
}

func (r *TimeRepository) Get(ctx context.Context, id uuid.UUID) (timelog.Entry, error) {
	e, err := scanEntry(r.db.QueryRowContext(ctx, selectTime+` WHERE t.id = ?`, id.String()))
	if err != nil {
		return timelog.Entry{}, notFound(err, timelog.ErrNotFound)
	}
	return e, nil
}

func (r *TimeRepository) Create(ctx context.Context, e *timelog.Entry) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO times (id, name, start_time, end_time, user_id, category_id) VALUES (?, ?, ?, ?, ?, ?)`,
		e.ID.String(), e.Name, e.StartTime.UTC(), toNullTime(e.EndTime), e.UserID.String(), toNullID(e.CategoryID),
	)
	if isForeignKeyViolation(err) {
		return referenceError(ctx, r.db, e.UserID, err)
	}
	if err != nil {
		r.log.Error("failed to create time entry", slog.String("user_id", e.UserID.String()), logger.Err(err))
		return fmt.Errorf("insert time entry: %w", err)
	}
	return nil
}

func (r *TimeRepository) Update(ctx context.Context, id uuid.UUID, apply func(*timelog.Entry) error) (timelog.Entry, error) {
	var e timelog.Entry
	err := inTx(ctx, r.db, func(tx *sql.Tx) error {
		var err error
		e, err = scanEntry(tx.QueryRowContext(ctx, selectTime+` WHERE t.id = ?`, id.String()))
		if err != nil {
			return notFound(err, timelog.ErrNotFound)
		}

		owner := e.UserID
		if err := apply(&e); err != nil {
			return err
		}
		e.ID, e.UserID = id, owner

		_, err = tx.ExecContext(ctx,
			`UPDATE times SET name = ?, start_time = ?, end_time = ?, category_id = ? WHERE id = ?`,
			e.Name, e.StartTime.UTC(), toNullTime(e.EndTime), toNullID(e.CategoryID), id.String(),
		)
		if isForeignKeyViolation(err) {
			return timelog.ErrCategoryNotFound
		}
		return err
	})
	if err != nil {
		return timelog.Entry{}, err
	}
	return e, nil
}

func (r *TimeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM times WHERE id = ?`, id.String())
	if err := affected(res, err, timelog.ErrNotFound); err != nil {
		if err == timelog.ErrNotFound {
			return err
		}
		return fmt.Errorf("delete time entry: %w", err)
	}
	return nil
}

func (r *TimeRepository) query(ctx context.Context, query string, args ...any) ([]timelog.Entry, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
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

func scanEntry(row scanner) (timelog.Entry, error) {
	var (
		e          timelog.Entry
		end        sql.NullTime
		catID      uuid.NullUUID
		catName    sql.NullString
		catColor   sql.NullString
		catOwnerID uuid.NullUUID
	)
	err := row.Scan(
		&e.ID, &e.Name, &e.StartTime, &end, &e.UserID, &catID,
		&catName, &catColor, &catOwnerID,
	)
	if err != nil {
		return timelog.Entry{}, err
	}

	e.StartTime = e.StartTime.UTC()
	e.EndTime = fromNullTime(end)
	if catID.Valid {
		id := catID.UUID
		e.CategoryID = &id
		if catName.Valid {
			e.Category = &category.Category{
				ID:     id,
				Name:   catName.String,
				Color:  catColor.String,
				UserID: catOwnerID.UUID,
			}
		}
	}
	return e, nil
}

// referenceError maps a foreign key violation on insert to the row that
// went missing between the service's checks and the write.
func referenceError(ctx context.Context, q querier, userID uuid.UUID, cause error) error {
	exists, err := userExists(ctx, q, userID.String())
	if err != nil {
		return fmt.Errorf("insert time entry: %w", errors.Join(cause, err))
	}
	if !exists {
		return timelog.ErrUserNotFound
	}
	return timelog.ErrCategoryNotFound
}

func toNullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: t.UTC(), Valid: true}
}

func fromNullTime(t sql.NullTime) *time.Time {
	if !t.Valid {
		return nil
	}
	utc := t.Time.UTC()
	return &utc
}

func toNullID(id *uuid.UUID) sql.NullString {
	if id == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: id.String(), Valid: true}
}
