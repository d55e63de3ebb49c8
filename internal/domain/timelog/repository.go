package timelog

import (
	"context"

	"github.com/google/uuid"

	"timetrack/internal/domain/category"
	"timetrack/internal/domain/user"
)

// Repository persists time entries. Reads fill Entry.Category when the
// entry has one.
type Repository interface {
	List(ctx context.Context) ([]Entry, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]Entry, error)
	Get(ctx context.Context, id uuid.UUID) (Entry, error)
	Create(ctx context.Context, e *Entry) error
	Update(ctx context.Context, id uuid.UUID, apply func(*Entry) error) (Entry, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type Owners interface {
	Get(ctx context.Context, id uuid.UUID) (user.User, error)
}

type Categories interface {
	Get(ctx context.Context, id uuid.UUID) (category.Category, error)
}
