package memory

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"timetrack/internal/domain/category"
)

type CategoryRepository struct {
	s *Store
}

func (r *CategoryRepository) List(_ context.Context) ([]category.Category, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	return r.filter(func(category.Category) bool { return true }, false), nil
}

func (r *CategoryRepository) ListByUser(_ context.Context, userID uuid.UUID) ([]category.Category, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	return r.filter(func(c category.Category) bool { return c.UserID == userID }, true), nil
}

func (r *CategoryRepository) Get(_ context.Context, id uuid.UUID) (category.Category, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	c, ok := r.s.categories[id]
	if !ok {
		return category.Category{}, category.ErrNotFound
	}
	c.Times = r.s.categoryTimes(id)
	return c, nil
}

func (r *CategoryRepository) Create(_ context.Context, c *category.Category) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	stored := *c
	stored.Times = nil
	r.s.categories[c.ID] = stored
	return nil
}

func (r *CategoryRepository) Update(_ context.Context, id uuid.UUID, apply func(*category.Category) error) (category.Category, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	c, ok := r.s.categories[id]
	if !ok {
		return category.Category{}, category.ErrNotFound
	}
	owner := c.UserID
	if err := apply(&c); err != nil {
		return category.Category{}, err
	}
	c.ID, c.UserID, c.Times = id, owner, nil
	r.s.categories[id] = c
	return c, nil
}

// Delete unlinks the category's time entries instead of removing them.
func (r *CategoryRepository) Delete(_ context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.categories[id]; !ok {
		return category.ErrNotFound
	}
	delete(r.s.categories, id)
	for tid, e := range r.s.times {
		if e.CategoryID != nil && *e.CategoryID == id {
			e.CategoryID = nil
			r.s.times[tid] = e
		}
	}
	return nil
}

func (r *CategoryRepository) filter(keep func(category.Category) bool, withTimes bool) []category.Category {
	categories := make([]category.Category, 0)
	for _, c := range r.s.categories {
		if !keep(c) {
			continue
		}
		if withTimes {
			c.Times = r.s.categoryTimes(c.ID)
		}
		categories = append(categories, c)
	}
	sort.Slice(categories, func(i, j int) bool {
		if categories[i].Name != categories[j].Name {
			return categories[i].Name < categories[j].Name
		}
		return categories[i].ID.String() < categories[j].ID.String()
	})
	return categories
}
