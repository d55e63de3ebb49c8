package category

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/exp/slog"

	"timetrack/internal/domain/user"
)

type Servicer interface {
	List(ctx context.Context) ([]Category, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]Category, error)
	Find(ctx context.Context, id uuid.UUID) (Category, error)
	Create(ctx context.Context, userID uuid.UUID, req CreateRequest) (Category, error)
	Update(ctx context.Context, id uuid.UUID, patch Patch) (Category, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type Service struct {
	repo   Repository
	owners Owners
	log    *slog.Logger
}

func NewService(repo Repository, owners Owners, log *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		owners: owners,
		log:    log.With(slog.String("component", "category_service")),
	}
}

func (s *Service) List(ctx context.Context) ([]Category, error) {
	categories, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return categories, nil
}

// ListByUser returns an empty list for a user that does not exist.
func (s *Service) ListByUser(ctx context.Context, userID uuid.UUID) ([]Category, error) {
	categories, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list categories of user %s: %w", userID, err)
	}
	return categories, nil
}

func (s *Service) Find(ctx context.Context, id uuid.UUID) (Category, error) {
	c, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return Category{}, ErrNotFound
		}
		return Category{}, fmt.Errorf("find category: %w", err)
	}
	return c, nil
}

func (s *Service) Create(ctx context.Context, userID uuid.UUID, req CreateRequest) (Category, error) {
	if err := validate(req.Name, req.Color); err != nil {
		return Category{}, err
	}

	if _, err := s.owners.Get(ctx, userID); err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return Category{}, ErrUserNotFound
		}
		return Category{}, fmt.Errorf("resolve owner: %w", err)
	}

	c := Category{
		ID:     uuid.New(),
		Name:   req.Name,
		Color:  req.Color,
		UserID: userID,
		Times:  []Time{},
	}
	if err := s.repo.Create(ctx, &c); err != nil {
		return Category{}, fmt.Errorf("create category: %w", err)
	}

	s.log.Info("category created", slog.String("category_id", c.ID.String()), slog.String("user_id", userID.String()))
	return c, nil
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, patch Patch) (Category, error) {
	c, err := s.repo.Update(ctx, id, func(c *Category) error {
		if patch.Name != nil {
			c.Name = *patch.Name
		}
		if patch.Color != nil {
			c.Color = *patch.Color
		}
		return validate(c.Name, c.Color)
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			return Category{}, ErrNotFound
		case errors.Is(err, ErrInvalidInput):
			return Category{}, err
		}
		return Category{}, fmt.Errorf("update category: %w", err)
	}

	s.log.Info("category updated", slog.String("category_id", id.String()))
	return c, nil
}

// Delete removes the category. Its time entries stay and lose the link.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("delete category: %w", err)
	}

	s.log.Info("category deleted", slog.String("category_id", id.String()))
	return nil
}

func validate(name, color string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("%w: categoryName must not be blank", ErrInvalidInput)
	}
	if strings.TrimSpace(color) == "" {
		return fmt.Errorf("%w: categoryColor must not be blank", ErrInvalidInput)
	}
	return nil
}
