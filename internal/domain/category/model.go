package category

import (
	"time"

	"github.com/google/uuid"
)

type Category struct {
	ID     uuid.UUID `json:"categoryID"`
	Name   string    `json:"categoryName"`
	Color  string    `json:"categoryColor"`
	UserID uuid.UUID `json:"userId"`
	Times  []Time    `json:"times" doc:"Time entries filed under the category. Always a list on single and per-user reads, null where not loaded"`
}

// Time is the slice of a time entry shown inside its category.
type Time struct {
	ID        uuid.UUID  `json:"timeID"`
	Name      string     `json:"name"`
	StartTime time.Time  `json:"startTime"`
	EndTime   *time.Time `json:"endTime"`
}

type CreateRequest struct {
	Name  string `json:"categoryName" minLength:"1" maxLength:"128"`
	Color string `json:"categoryColor" minLength:"1" maxLength:"32"`
}

// Patch lists the mutable category fields. The owner is not one of them.
type Patch struct {
	Name  *string `json:"categoryName,omitempty" minLength:"1" maxLength:"128"`
	Color *string `json:"categoryColor,omitempty" minLength:"1" maxLength:"32"`
}
