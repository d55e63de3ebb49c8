package memory

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"timetrack/internal/domain/user"
)

type UserRepository struct {
	s *Store
}

func (r *UserRepository) List(_ context.Context) ([]user.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	users := make([]user.User, 0, len(r.s.users))
	for _, u := range r.s.users {
		users = append(users, u)
	}
	sort.Slice(users, func(i, j int) bool {
		if !users[i].CreatedAt.Equal(users[j].CreatedAt) {
			return users[i].CreatedAt.Before(users[j].CreatedAt)
		}
		return users[i].ID.String() < users[j].ID.String()
	})
	return users, nil
}

func (r *UserRepository) Get(_ context.Context, id uuid.UUID) (user.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	u, ok := r.s.users[id]
	if !ok {
		return user.User{}, user.ErrNotFound
	}
	return u, nil
}

func (r *UserRepository) FindByEmail(_ context.Context, email string) (user.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, u := range r.s.users {
		if u.Email == email {
			return u, nil
		}
	}
	return user.User{}, user.ErrNotFound
}

func (r *UserRepository) Create(_ context.Context, u *user.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if r.emailTaken(u.Email, u.ID) {
		return user.ErrEmailTaken
	}
	r.s.users[u.ID] = *u
	return nil
}

func (r *UserRepository) Update(_ context.Context, id uuid.UUID, apply func(*user.User) error) (user.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	u, ok := r.s.users[id]
	if !ok {
		return user.User{}, user.ErrNotFound
	}
	if err := apply(&u); err != nil {
		return user.User{}, err
	}
	u.ID = id
	if r.emailTaken(u.Email, id) {
		return user.User{}, user.ErrEmailTaken
	}
	r.s.users[id] = u
	return u, nil
}

// Delete cascades to the user's categories and time entries.
func (r *UserRepository) Delete(_ context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.users[id]; !ok {
		return user.ErrNotFound
	}
	delete(r.s.users, id)
	for cid, c := range r.s.categories {
		if c.UserID == id {
			delete(r.s.categories, cid)
		}
	}
	for tid, e := range r.s.times {
		if e.UserID == id {
			delete(r.s.times, tid)
		}
	}
	return nil
}

func (r *UserRepository) emailTaken(email string, except uuid.UUID) bool {
	for _, u := range r.s.users {
		if u.Email == email && u.ID != except {
			return true
		}
	}
	return false
}
