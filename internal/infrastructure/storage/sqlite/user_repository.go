package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/exp/slog"

	"timetrack/internal/domain/user"
	"timetrack/internal/utils/logger"
)

const selectUser = `SELECT id, user_name, email, password_hash, salt, created_at FROM users`

type UserRepository struct {
	db  *sql.DB
	log *slog.Logger
}

func (r *UserRepository) List(ctx context.Context) ([]user.User, error) {
	rows, err := r.db.QueryContext(ctx, selectUser+` ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	users := make([]user.User, 0)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

func (r *UserRepository) Get(ctx context.Context, id uuid.UUID) (user.User, error) {
	u, err := scanUser(r.db.QueryRowContext(ctx, selectUser+` WHERE id = ?`, id.String()))
	if err != nil {
		return user.User{}, notFound(err, user.ErrNotFound)
	}
	return u, nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (user.User, error) {
	u, err := scanUser(r.db.QueryRowContext(ctx, selectUser+` WHERE email = ?`, email))
	if err != nil {
		return user.User{}, notFound(err, user.ErrNotFound)
	}
	return u, nil
}

func (r *UserRepository) Create(ctx context.Context, u *user.User) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO users (id, user_name, email, password_hash, salt, created_at) VALUES (?, ?, ?, ?, ?, ?)`,
		u.ID.String(), u.UserName, u.Email, u.Password, u.Salt, u.CreatedAt.UTC(),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return user.ErrEmailTaken
		}
		r.log.Error("failed to create user", logger.Err(err))
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (r *UserRepository) Update(ctx context.Context, id uuid.UUID, apply func(*user.User) error) (user.User, error) {
	var u user.User
	err := inTx(ctx, r.db, func(tx *sql.Tx) error {
		var err error
		u, err = scanUser(tx.QueryRowContext(ctx, selectUser+` WHERE id = ?`, id.String()))
		if err != nil {
			return notFound(err, user.ErrNotFound)
		}

		if err := apply(&u); err != nil {
			return err
		}
		u.ID = id

		_, err = tx.ExecContext(ctx,
			`UPDATE users SET user_name = ?, email = ?, password_hash = ?, salt = ? WHERE id = ?`,
			u.UserName, u.Email, u.Password, u.Salt, id.String(),
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
	res, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, id.String())
	if err := affected(res, err, user.ErrNotFound); err != nil {
		if err == user.ErrNotFound {
			return err
		}
		return fmt.Errorf("delete user: %w", err)
	}
	return nil
}

func scanUser(row scanner) (user.User, error) {
	var u user.User
	if err := row.Scan(&u.ID, &u.UserName, &u.Email, &u.Password, &u.Salt, &u.CreatedAt); err != nil {
		return user.User{}, err
	}
	u.CreatedAt = u.CreatedAt.UTC()
	return u, nil
}
