package timelog

import "errors"

var (
	ErrNotFound         = errors.New("time entry not found")
	ErrUserNotFound     = errors.New("user not found")
	ErrCategoryNotFound = errors.New("category not found")
	ErrInvalidInput     = errors.New("invalid time entry")
)
