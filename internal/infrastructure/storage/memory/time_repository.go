package memory

import (
	"context"

	"github.com/google/uuid"

	"timetrack/internal/domain/timelog"
)

type TimeRepository struct {
	s *Store
}

func (r *TimeRepository) List(_ context.Context) ([]timelog.Entry, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	entries := make([]timelog.Entry, 0, len(r.s.times))
	for _, e := range r.s.sortedTimes() {
		entries = append(entries, r.s.withCategory(e))
	}
	return entries, nil
}

func (r *TimeRepository) ListByUser(_ context.Context, userID uuid.UUID) ([]timelog.Entry, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	entries := make([]timelog.Entry, 0)
	for _, e := range r.s.sortedTimes() {
		if e.UserID == userID {
			entries = append(entries, r.s.withCategory(e))
		}
	}
	return entries, nil
}

func (r *TimeRepository) Get(_ context.Context, id uuid.UUID) (timelog.Entry, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	e, ok := r.s.times[id]
	if !ok {
		return timelog.Entry{}, timelog.ErrNotFound
	}
	return r.s.withCategory(e), nil
}

func (r *TimeRepository) Create(_ context.Context, e *timelog.Entry) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	r.s.times[e.ID] = stripped(*e)
	return nil
}

func (r *TimeRepository) Update(_ context.Context, id uuid.UUID, apply func(*timelog.Entry) error) (timelog.Entry, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	stored, ok := r.s.times[id]
	if !ok {
		return timelog.Entry{}, timelog.ErrNotFound
	}
	e := r.s.withCategory(stored)
	owner := e.UserID
	if err := apply(&e); err != nil {
		return timelog.Entry{}, err
	}
	e.ID, e.UserID = id, owner
	r.s.times[id] = stripped(e)
	return r.s.withCategory(r.s.times[id]), nil
}

func (r *TimeRepository) Delete(_ context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.times[id]; !ok {
		return timelog.ErrNotFound
	}
	delete(r.s.times, id)
	return nil
}

// stripped detaches e from caller owned pointers before it is stored.
func stripped(e timelog.Entry) timelog.Entry {
	e.Category = nil
	e.EndTime = clone(e.EndTime)
	e.CategoryID = clone(e.CategoryID)
	return e
}
