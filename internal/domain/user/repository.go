package user

import (
	"context"

	"github.com/google/uuid"
)

// Repository persists users. Update runs apply against the freshly
// locked row and stores the result in the same transaction.
type Repository interface {
	List(ctx context.Context) ([]User, error)
	Get(ctx context.Context, id uuid.UUID) (User, error)
	FindByEmail(ctx context.Context, email string) (User, error)
	Create(ctx context.Context, u *User) error
	Update(ctx context.Context, id uuid.UUID, apply func(*User) error) (User, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
