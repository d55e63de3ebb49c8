package timelog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/exp/slog"

	"timetrack/internal/domain/category"
	"timetrack/internal/domain/user"
)

type Servicer interface {
	List(ctx context.Context) ([]Entry, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]Entry, error)
	Find(ctx context.Context, id uuid.UUID) (Entry, error)
	Create(ctx context.Context, userID uuid.UUID, req CreateRequest) (Entry, error)
	Update(ctx context.Context, id uuid.UUID, patch Patch) (Entry, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type Service struct {
	repo       Repository
	owners     Owners
	categories Categories
	log        *slog.Logger
}

func NewService(repo Repository, owners Owners, categories Categories, log *slog.Logger) *Service {
	return &Service{
		repo:       repo,
		owners:     owners,
		categories: categories,
		log:        log.With(slog.String("component", "timelog_service")),
	}
}

func (s *Service) List(ctx context.Context) ([]Entry, error) {
	entries, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list time entries: %w", err)
	}
	return entries, nil
}

func (s *Service) ListByUser(ctx context.Context, userID uuid.UUID) ([]Entry, error) {
	entries, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list time entries of user %s: %w", userID, err)
	}
	return entries, nil
}

func (s *Service) Find(ctx context.Context, id uuid.UUID) (Entry, error) {
	e, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return Entry{}, ErrNotFound
		}
		return Entry{}, fmt.Errorf("find time entry: %w", err)
	}
	return e, nil
}

func (s *Service) Create(ctx context.Context, userID uuid.UUID, req CreateRequest) (Entry, error) {
	e := Entry{
		ID:        uuid.New(),
		Name:      req.Name,
		StartTime: req.StartTime.UTC(),
		UserID:    userID,
	}
	if req.EndTime != nil {
		end := req.EndTime.UTC()
		e.EndTime = &end
	}
	if err := validate(&e); err != nil {
		return Entry{}, err
	}

	if _, err := s.owners.Get(ctx, userID); err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return Entry{}, ErrUserNotFound
		}
		return Entry{}, fmt.Errorf("resolve owner: %w", err)
	}

	if req.CategoryID != nil {
		c, err := s.ownedCategory(ctx, *req.CategoryID, userID)
		if err != nil {
			return Entry{}, err
		}
		e.CategoryID = &c.ID
		e.Category = &c
	}

	if err := s.repo.Create(ctx, &e); err != nil {
		return Entry{}, fmt.Errorf("create time entry: %w", err)
	}

	s.log.Info("time entry created", slog.String("time_id", e.ID.String()), slog.String("user_id", userID.String()))
	return e, nil
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, patch Patch) (Entry, error) {
	// The category is resolved up front; apply runs inside the store's
	// transaction and must not call back into it.
	var target *category.Category
	if patch.CategoryID != nil {
		c, err := s.categories.Get(ctx, *patch.CategoryID)
		if err != nil {
			if errors.Is(err, category.ErrNotFound) {
				return Entry{}, ErrCategoryNotFound
			}
			return Entry{}, fmt.Errorf("resolve category: %w", err)
		}
		c.Times = nil
		target = &c
	}

	e, err := s.repo.Update(ctx, id, func(e *Entry) error {
		if patch.Name != nil {
			e.Name = *patch.Name
		}
		if patch.StartTime != nil {
			e.StartTime = patch.StartTime.UTC()
		}
		if patch.EndTime != nil {
			end := patch.EndTime.UTC()
			e.EndTime = &end
		}
		if target != nil {
			if target.UserID != e.UserID {
				return ErrCategoryNotFound
			}
			e.CategoryID = &target.ID
			e.Category = target
		}
		return validate(e)
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			return Entry{}, ErrNotFound
		case errors.Is(err, ErrCategoryNotFound), errors.Is(err, ErrInvalidInput):
			return Entry{}, err
		}
		return Entry{}, fmt.Errorf("update time entry: %w", err)
	}

	s.log.Info("time entry updated", slog.String("time_id", id.String()))
	return e, nil
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("delete time entry: %w", err)
	}

	s.log.Info("time entry deleted", slog.String("time_id", id.String()))
	return nil
}

// ownedCategory hides categories of other users behind ErrCategoryNotFound.
func (s *Service) ownedCategory(ctx context.Context, id, userID uuid.UUID) (category.Category, error) {
	c, err := s.categories.Get(ctx, id)
	if err != nil {
		if errors.Is(err, category.ErrNotFound) {
			return category.Category{}, ErrCategoryNotFound
		}
		return category.Category{}, fmt.Errorf("resolve category: %w", err)
	}
	if c.UserID != userID {
		return category.Category{}, ErrCategoryNotFound
	}
	c.Times = nil
	return c, nil
}

func validate(e *Entry) error {
	if strings.TrimSpace(e.Name) == "" {
		return fmt.Errorf("%w: name must not be blank", ErrInvalidInput)
	}
	if e.StartTime.IsZero() {
		return fmt.Errorf("%w: startTime is required", ErrInvalidInput)
	}
	if e.EndTime != nil && e.EndTime.Before(e.StartTime) {
		return fmt.Errorf("%w: endTime is before startTime", ErrInvalidInput)
	}
	return nil
}
