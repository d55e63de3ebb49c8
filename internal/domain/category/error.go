package category

import "errors"

var (
	ErrNotFound     = errors.New("category not found")
	ErrUserNotFound = errors.New("user not found")
	ErrInvalidInput = errors.New("invalid category")
)
