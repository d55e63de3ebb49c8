package user

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

func (h *Handler) listOp() huma.Operation {
	return huma.Operation{
		OperationID: "users-list",
		Method:      http.MethodGet,
		Path:        "/users/{api}",
		Summary:     "List users",
		Tags:        []string{"users"},
		Middlewares: h.middleware,
	}
}

func (h *Handler) findOp() huma.Operation {
	return huma.Operation{
		OperationID: "user-find",
		Method:      http.MethodGet,
		Path:        "/user/{api}/{id}",
		Summary:     "Get a user",
		Tags:        []string{"users"},
		Errors:      []int{http.StatusNotFound},
		Middlewares: h.middleware,
	}
}

func (h *Handler) createOp() huma.Operation {
	return huma.Operation{
		OperationID: "user-create",
		Method:      http.MethodPost,
		Path:        "/user/{api}",
		Summary:     "Register a user",
		Description: "The password is salted and hashed before it is stored.",
		Tags:        []string{"users"},
		Errors:      []int{http.StatusConflict, http.StatusUnprocessableEntity},
		Middlewares: h.middleware,
	}
}

func (h *Handler) updateOp() huma.Operation {
	return huma.Operation{
		OperationID: "user-update",
		Method:      http.MethodPut,
		Path:        "/user/{api}/{id}",
		Summary:     "Update a user",
		Description: "Only the supplied fields change. A new password gets a new salt.",
		Tags:        []string{"users"},
		Errors:      []int{http.StatusNotFound, http.StatusConflict, http.StatusUnprocessableEntity},
		Middlewares: h.middleware,
	}
}

func (h *Handler) deleteOp() huma.Operation {
	return huma.Operation{
		OperationID: "user-delete",
		Method:      http.MethodDelete,
		Path:        "/user/{api}/{id}",
		Summary:     "Delete a user with their categories and times",
		Tags:        []string{"users"},
		Errors:      []int{http.StatusNotFound},
		Middlewares: h.middleware,
	}
}

func (h *Handler) loginOp() huma.Operation {
	return huma.Operation{
		OperationID:   "user-login",
		Method:        http.MethodPost,
		Path:          "/login/{api}",
		Summary:       "Check a user's credentials",
		Tags:          []string{"users"},
		DefaultStatus: http.StatusCreated,
		Errors:        []int{http.StatusBadRequest, http.StatusNotFound},
		Middlewares:   h.middleware,
	}
}
