// Package memory is a process-local store used when no database is
// configured and by the HTTP tests. One mutex guards all tables, so every
// repository call, Update included, is atomic.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"timetrack/internal/domain/category"
	"timetrack/internal/domain/timelog"
	"timetrack/internal/domain/user"
)

type Store struct {
	mu         sync.RWMutex
	users      map[uuid.UUID]user.User
	categories map[uuid.UUID]category.Category
	times      map[uuid.UUID]timelog.Entry
}

func New() *Store {
	return &Store{
		users:      make(map[uuid.UUID]user.User),
		categories: make(map[uuid.UUID]category.Category),
		times:      make(map[uuid.UUID]timelog.Entry),
	}
}

func (s *Store) Users() *UserRepository {
	return &UserRepository{s: s}
}

func (s *Store) Categories() *CategoryRepository {
	return &CategoryRepository{s: s}
}

func (s *Store) Times() *TimeRepository {
	return &TimeRepository{s: s}
}

// Ping always succeeds, the store lives in the process.
func (s *Store) Ping(context.Context) error {
	return nil
}

func (s *Store) Close() error {
	return nil
}

// categoryTimes must be called with s.mu held.
func (s *Store) categoryTimes(id uuid.UUID) []category.Time {
	times := make([]category.Time, 0)
	for _, e := range s.sortedTimes() {
		if e.CategoryID != nil && *e.CategoryID == id {
			times = append(times, category.Time{
				ID:        e.ID,
				Name:      e.Name,
				StartTime: e.StartTime,
				EndTime:   clone(e.EndTime),
			})
		}
	}
	return times
}

// withCategory must be called with s.mu held.
func (s *Store) withCategory(e timelog.Entry) timelog.Entry {
	e.EndTime = clone(e.EndTime)
	e.Category = nil
	if e.CategoryID == nil {
		return e
	}
	id := *e.CategoryID
	e.CategoryID = &id
	if c, ok := s.categories[id]; ok {
		c.Times = nil
		e.Category = &c
	}
	return e
}

func (s *Store) sortedTimes() []timelog.Entry {
	entries := make([]timelog.Entry, 0, len(s.times))
	for _, e := range s.times {
		entries = append(entries, e)
	}
	sort.Slice(entries, func(i, j int) bool {
		if !entries[i].StartTime.Equal(entries[j].StartTime) {
			return entries[i].StartTime.Before(entries[j].StartTime)
		}
		return entries[i].ID.String() < entries[j].ID.String()
	})
	return entries
}

func clone[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
