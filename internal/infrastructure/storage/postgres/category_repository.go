package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/exp/slog"

	"timetrack/internal/domain/category"
	"timetrack/internal/utils/logger"
)

const selectCategory = `SELECT id, name, color, user_id FROM categories`

type CategoryRepository struct {
	pool *pgxpool.Pool
	log  *slog.Logger
}

func NewCategoryRepository(pool *pgxpool.Pool, log *slog.Logger) *CategoryRepository {
	return &CategoryRepository{
		pool: pool,
		log:  log.With(slog.String("component", "category_repository")),
	}
}

func (r *CategoryRepository) List(ctx context.Context) ([]category.Category, error) {
	return r.query(ctx, selectCategory+` ORDER BY name, id`)
}

// ListByUser loads the user's categories and then their time entries in
// one more query.
func (r *CategoryRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]category.Category, error) {
	categories, err := r.query(ctx, selectCategory+` WHERE user_id = $1 ORDER BY name, id`, userID)
	if err != nil {
		return nil, err
	}
	if len(categories) == 0 {
		return categories, nil
	}

	times, err := r.times(ctx,
		`SELECT id, name, start_time, end_time, category_id FROM times
		 WHERE user_id = $1 AND category_id IS NOT NULL
		 ORDER BY start_time, id`, userID)
	if err != nil {
		return nil, err
	}

	for i := range categories {
		categories[i].Times = times[categories[i].ID]
		if categories[i].Times == nil {
			categories[i].Times = []category.Time{}
		}
	}
	return categories, nil
}

func (r *CategoryRepository) Get(ctx context.Context, id uuid.UUID) (category.Category, error) {
	c, err := scanCategory(r.pool.QueryRow(ctx, selectCategory+` WHERE id = $1`, id))
	if err != nil {
		return category.Category{}, notFound(err, category.ErrNotFound)
	}

	times, err := r.times(ctx,
		`SELECT id, name, start_time, end_time, category_id FROM times
		 WHERE category_id = $1
		 ORDER BY start_time, id`, id)
	if err != nil {
		return category.Category{}, err
	}
	c.Times = times[id]
	if c.Times == nil {
		c.Times = []category.Time{}
	}
	return c, nil
}

func (r *CategoryRepository) Create(ctx context.Context, c *category.Category) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO categories (id, name, color, user_id) VALUES ($1, $2, $3, $4)`,
		c.ID, c.Name, c.Color, c.UserID,
	)
	if _, ok := foreignKeyConstraint(err); ok {
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
	err := pgx.BeginTxFunc(ctx, r.pool, pgx.TxOptions{}, func(tx pgx.Tx) error {
		var err error
		c, err = scanCategory(tx.QueryRow(ctx, selectCategory+` WHERE id = $1 FOR UPDATE`, id))
		if err != nil {
			return notFound(err, category.ErrNotFound)
		}

		owner := c.UserID
		if err := apply(&c); err != nil {
			return err
		}
		c.UserID = owner

		_, err = tx.Exec(ctx, `UPDATE categories SET name = $2, color = $3 WHERE id = $1`, id, c.Name, c.Color)
		return err
	})
	if err != nil {
		return category.Category{}, err
	}
	return c, nil
}

func (r *CategoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return category.ErrNotFound
	}
	return nil
}

func (r *CategoryRepository) query(ctx context.Context, sql string, args ...any) ([]category.Category, error) {
	rows, err := r.pool.Query(ctx, sql, args...)
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

// times groups the rows of sql by category id.
func (r *CategoryRepository) times(ctx context.Context, sql string, args ...any) (map[uuid.UUID][]category.Time, error) {
	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("load category times: %w", err)
	}
	defer rows.Close()

	grouped := make(map[uuid.UUID][]category.Time)
	for rows.Next() {
		var (
			t     category.Time
			catID uuid.UUID
		)
		if err := rows.Scan(&t.ID, &t.Name, &t.StartTime, &t.EndTime, &catID); err != nil {
			return nil, fmt.Errorf("scan category time: %w", err)
		}
		t.StartTime = t.StartTime.UTC()
		if t.EndTime != nil {
			end := t.EndTime.UTC()
			t.EndTime = &end
		}
		grouped[catID] = append(grouped[catID], t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("load category times: %w", err)
	}
	return grouped, nil
}

func scanCategory(row pgx.Row) (category.Category, error) {
	var c category.Category
	if err := row.Scan(&c.ID, &c.Name, &c.Color, &c.UserID); err != nil {
		return category.Category{}, err
	}
	return c, nil
}
