package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/exp/slog"

	"timetrack/internal/domain/category"
	"timetrack/internal/utils/logger"
)

const (
	selectCategory     = `SELECT id, name, color, user_id FROM categories`
	selectCategoryTime = `SELECT id, name, start_time, end_time, category_id FROM times`
)

type CategoryRepository struct {
	db  *sql.DB
	log *slog.Logger
}

func (r *CategoryRepository) List(ctx context.Context) ([]category.Category, error) {
	return r.query(ctx, selectCategory+` ORDER BY name, id`)
}

func (r *CategoryRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]category.Category, error) {
	categories, err := r.query(ctx, selectCategory+` WHERE user_id = ? ORDER BY name, id`, userID.String())
	if err != nil || len(categories) == 0 {
		return categories, err
	}

	times, err := r.times(ctx,
		selectCategoryTime+` WHERE user_id = ? AND category_id IS NOT NULL ORDER BY start_time, id`,
		userID.String())
	if err != nil {
		return nil, err
	}
	for i := range categories {
		categories[i].Times = orEmpty(times[categories[i].ID])
	}
	return categories, nil
}

func (r *CategoryRepository) Get(ctx context.Context, id uuid.UUID) (category.Category, error) {
	c, err := scanCategory(r.db.QueryRowContext(ctx, selectCategory+` WHERE id = ?`, id.String()))
	if err != nil {
		return category.Category{}, notFound(err, category.ErrNotFound)
	}

	times, err := r.times(ctx, selectCategoryTime+` WHERE category_id = ? ORDER BY start_time, id`, id.String())
	if err != nil {
		return category.Category{}, err
	}
	c.Times = orEmpty(times[id])
	return c, nil
}

func (r *CategoryRepository) Create(ctx context.Context, c *category.Category) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO categories (id, name, color, user_id) VALUES (?, ?, ?, ?)`,
		c.ID.String(), c.Name, c.Color, c.UserID.String(),
	)
	if isForeignKeyViolation(err) {
		return category.ErrUserNotFound
	}
	if err != nil {
		r.log.Error("failed to create category", slog.String("user_id", c.UserID.String()), logger.Err(err))
		return fmt.Errorf("insert category: %w", err)
	}
	return nil
}

func (r *CategoryRepository) Update(ctx context.Context, id uuid.UUID, apply func(*category.Category) error) (category.Category, error) {
	var c category.Category
	err := inTx(ctx, r.db, func(tx *sql.Tx) error {
		var err error
		c, err = scanCategory(tx.QueryRowContext(ctx, selectCategory+` WHERE id = ?`, id.String()))
		if err != nil {
			return notFound(err, category.ErrNotFound)
		}

		owner := c.UserID
		if err := apply(&c); err != nil {
			return err
		}
		c.ID, c.UserID = id, owner

		_, err = tx.ExecContext(ctx, `UPDATE categories SET name = ?, color = ? WHERE id = ?`, c.Name, c.Color, id.String())
		return err
	})
	if err != nil {
		return category.Category{}, err
	}
	return c, nil
}

func (r *CategoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM categories WHERE id = ?`, id.String())
	if err := affected(res, err, category.ErrNotFound); err != nil {
		if err == category.ErrNotFound {
			return err
		}
		return fmt.Errorf("delete category: %w", err)
	}
	return nil
}

func (r *CategoryRepository) query(ctx context.Context, query string, args ...any) ([]category.Category, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	categories := make([]category.Category, 0)
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		categories = append(categories, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return categories, nil
}

func (r *CategoryRepository) times(ctx context.Context, query string, args ...any) (map[uuid.UUID][]category.Time, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("load category times: %w", err)
	}
	defer rows.Close()

	grouped := make(map[uuid.UUID][]category.Time)
	for rows.Next() {
		var (
			t     category.Time
			end   sql.NullTime
			catID uuid.UUID
		)
		if err := rows.Scan(&t.ID, &t.Name, &t.StartTime, &end, &catID); err != nil {
			return nil, fmt.Errorf("scan category time: %w", err)
		}
		t.StartTime = t.StartTime.UTC()
		t.EndTime = fromNullTime(end)
		grouped[catID] = append(grouped[catID], t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("load category times: %w", err)
	}
	return grouped, nil
}

func scanCategory(row scanner) (category.Category, error) {
	var c category.Category
	if err := row.Scan(&c.ID, &c.Name, &c.Color, &c.UserID); err != nil {
		return category.Category{}, err
	}
	return c, nil
}

func orEmpty(times []category.Time) []category.Time {
	if times == nil {
		return []category.Time{}
	}
	return times
}
