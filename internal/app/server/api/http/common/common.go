// Package common holds the pieces every entity handler shares.
package common

import (
	"github.com/danielgtaylor/huma/v2"
	"github.com/google/uuid"
)

type DeleteOutput struct {
	Body DeleteResponse
}

type DeleteResponse struct {
	Affected int `json:"affected" example:"1" doc:"Number of rows removed"`
}

func Deleted() *DeleteOutput {
	return &DeleteOutput{Body: DeleteResponse{Affected: 1}}
}

// ParseID treats a malformed id like an unknown one.
func ParseID(raw, notFound string) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, huma.Error404NotFound(notFound)
	}
	return id, nil
}
