package timelog

import (
	"time"

	"github.com/google/uuid"

	"timetrack/internal/domain/category"
)

// Entry is one logged stretch of time. A nil EndTime means the entry is
// still running or its end was never recorded.
type Entry struct {
	ID         uuid.UUID          `json:"timeID"`
	Name       string             `json:"name"`
	StartTime  time.Time          `json:"startTime"`
	EndTime    *time.Time         `json:"endTime"`
	UserID     uuid.UUID          `json:"userId"`
	CategoryID *uuid.UUID         `json:"categoryID"`
	Category   *category.Category `json:"category,omitempty"`
}

type CreateRequest struct {
	Name       string     `json:"name" minLength:"1" maxLength:"256"`
	StartTime  time.Time  `json:"startTime" doc:"RFC 3339 timestamp"`
	EndTime    *time.Time `json:"endTime,omitempty" doc:"RFC 3339 timestamp, omit for a running entry"`
	CategoryID *uuid.UUID `json:"categoryID,omitempty" doc:"Category of the same user"`
}

// Patch lists the mutable entry fields. A nil field is left as stored,
// so an end time cannot be cleared once set.
type Patch struct {
	Name       *string    `json:"name,omitempty" minLength:"1" maxLength:"256"`
	StartTime  *time.Time `json:"startTime,omitempty"`
	EndTime    *time.Time `json:"endTime,omitempty"`
	CategoryID *uuid.UUID `json:"categoryID,omitempty"`
}
