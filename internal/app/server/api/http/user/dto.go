package user

import (
	"github.com/google/uuid"

	"timetrack/internal/domain/user"
)

type listInput struct {
	API string `path:"api"`
}

type listOutput struct {
	Body []user.User
}

type idInput struct {
	API string `path:"api"`
	ID  string `path:"id" doc:"User id"`
}

type userOutput struct {
	Body user.User
}

type createInput struct {
	API  string `path:"api"`
	Body user.CreateRequest
}

type updateInput struct {
	API  string `path:"api"`
	ID   string `path:"id" doc:"User id"`
	Body user.Patch
}

type loginInput struct {
	API  string `path:"api"`
	Body user.LoginRequest
}

type loginOutput struct {
	Body LoginResponse
}

type LoginResponse struct {
	Status string    `json:"status" example:"Ok"`
	UserID uuid.UUID `json:"userId"`
}
