package timelog

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

func (h *Handler) listOp() huma.Operation {
	return huma.Operation{
		OperationID: "times-list",
		Method:      http.MethodGet,
		Path:        "/times/{api}",
		Summary:     "List all time entries",
		Tags:        []string{"times"},
		Middlewares: h.middleware,
	}
}

func (h *Handler) listByUserOp() huma.Operation {
	return huma.Operation{
		OperationID: "times-list-by-user",
		Method:      http.MethodGet,
		Path:        "/times/{api}/{id}",
		Summary:     "List a user's time entries with their category",
		Tags:        []string{"times"},
		Middlewares: h.middleware,
	}
}

func (h *Handler) findOp() huma.Operation {
	return huma.Operation{
		OperationID: "time-find",
		Method:      http.MethodGet,
		Path:        "/time/{api}/{id}",
		Summary:     "Get a time entry with its category",
		Tags:        []string{"times"},
		Errors:      []int{http.StatusNotFound},
		Middlewares: h.middleware,
	}
}

func (h *Handler) createOp() huma.Operation {
	return huma.Operation{
		OperationID: "time-create",
		Method:      http.MethodPost,
		Path:        "/time/{api}/{id}",
		Summary:     "Log time for a user",
		Tags:        []string{"times"},
		Errors:      []int{http.StatusNotFound, http.StatusUnprocessableEntity},
		Middlewares: h.middleware,
	}
}

func (h *Handler) updateOp() huma.Operation {
	return huma.Operation{
		OperationID: "time-update",
		Method:      http.MethodPut,
		Path:        "/time/{api}/{id}",
		Summary:     "Update a time entry",
		Tags:        []string{"times"},
		Errors:      []int{http.StatusNotFound, http.StatusUnprocessableEntity},
		Middlewares: h.middleware,
	}
}

func (h *Handler) deleteOp() huma.Operation {
	return huma.Operation{
		OperationID: "time-delete",
		Method:      http.MethodDelete,
		Path:        "/time/{api}/{id}",
		Summary:     "Delete a time entry",
		Tags:        []string{"times"},
		Errors:      []int{http.StatusNotFound},
		Middlewares: h.middleware,
	}
}
