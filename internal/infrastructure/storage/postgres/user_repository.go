package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/exp/slog"

	"timetrack/internal/domain/user"
	"timetrack/internal/utils/logger"
)

const selectUser = `SELECT id, user_name, email, password_hash, salt, created_at FROM users`

type UserRepository struct {
	pool *pgxpool.Pool
	log  *slog.Logger
}

func NewUserRepository(pool *pgxpool.Pool, log *slog.Logger) *UserRepository {
	return &UserRepository{
		pool: pool,
		log:  log.With(slog.String("component", "user_repository")),
	}
}

func (r *UserRepository) List(ctx context.Context) ([]user.User, error) {
	rows, err := r.pool.Query(ctx, selectUser+` ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	users := make([]user.User, 0)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

func (r *UserRepository) Get(ctx context.Context, id uuid.UUID) (user.User, error) {
	u, err := scanUser(r.pool.QueryRow(ctx, selectUser+` WHERE id = $1`, id))
	if err != nil {
		return user.User{}, notFound(err, user.ErrNotFound)
	}
	return u, nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (user.User, error) {
	u, err := scanUser(r.pool.QueryRow(ctx, selectUser+` WHERE email = $1`, email))
	if err != nil {
		return user.User{}, notFound(err, user.ErrNotFound)
	}
	return u, nil
}

func (r *UserRepository) Create(ctx context.Context, u *user.User) error {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO users (id, user_name, email, password_hash, salt, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING created_at`,
		u.ID, u.UserName, u.Email, u.Password, u.Salt, u.CreatedAt,
	).Scan(&u.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return user.ErrEmailTaken
		}
		r.log.Error("failed to create user", logger.Err(err))
		return fmt.Errorf("insert user: %w", err)
	}
	u.CreatedAt = u.CreatedAt.UTC()
	return nil
}

// Update locks the row, hands it to apply and writes back every mutable
// column. Hash and salt always travel in the same statement.
func (r *UserRepository) Update(ctx context.Context, id uuid.UUID, apply func(*user.User) error) (user.User, error) {
	var u user.User
	err := pgx.BeginTxFunc(ctx, r.pool, pgx.TxOptions{}, func(tx pgx.Tx) error {
		var err error
		u, err = scanUser(tx.QueryRow(ctx, selectUser+` WHERE id = $1 FOR UPDATE`, id))
		if err != nil {
			return notFound(err, user.ErrNotFound)
		}

		if err := apply(&u); err != nil {
			return err
		}

		_, err = tx.Exec(ctx,
			`UPDATE users SET user_name = $2, email = $3, password_hash = $4, salt = $5 WHERE id = $1`,
			id, u.UserName, u.Email, u.Password, u.Salt,
		)
		if isUniqueViolation(err) {
			return user.ErrEmailTaken
		}
		return err
	})
	if err != nil {
		return user.User{}, err
	}
	return u, nil
}

func (r *UserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return user.ErrNotFound
	}
	return nil
}

func scanUser(row pgx.Row) (user.User, error) {
	var u user.User
	if err := row.Scan(&u.ID, &u.UserName, &u.Email, &u.Password, &u.Salt, &u.CreatedAt); err != nil {
		return user.User{}, err
	}
	u.CreatedAt = u.CreatedAt.UTC()
	return u, nil
}

// notFound maps pgx.ErrNoRows to the domain's sentinel and wraps the rest.
func notFound(err, sentinel error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return sentinel
	}
	return fmt.Errorf("query: %w", err)
}
