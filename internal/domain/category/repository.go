package category

import (
	"context"

	"github.com/google/uuid"

	"timetrack/internal/domain/user"
)

// Repository persists categories. Get and ListByUser fill Times; List
// does not.
type Repository interface {
	List(ctx context.Context) ([]Category, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]Category, error)
	Get(ctx context.Context, id uuid.UUID) (Category, error)
	Create(ctx context.Context, c *Category) error
	Update(ctx context.Context, id uuid.UUID, apply func(*Category) error) (Category, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// Owners resolves the user a new category is attached to.
type Owners interface {
	Get(ctx context.Context, id uuid.UUID) (user.User, error)
}
