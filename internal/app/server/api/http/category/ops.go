package category

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

func (h *Handler) listOp() huma.Operation {
	return huma.Operation{
		OperationID: "categories-list",
		Method:      http.MethodGet,
		Path:        "/categories/{api}",
		Summary:     "List all categories",
		Tags:        []string{"categories"},
		Middlewares: h.middleware,
	}
}

func (h *Handler) listByUserOp() huma.Operation {
	return huma.Operation{
		OperationID: "categories-list-by-user",
		Method:      http.MethodGet,
		Path:        "/categories/{api}/{id}",
		Summary:     "List a user's categories with their times",
		Tags:        []string{"categories"},
		Middlewares: h.middleware,
	}
}

func (h *Handler) findOp() huma.Operation {
	return huma.Operation{
		OperationID: "category-find",
		Method:      http.MethodGet,
		Path:        "/category/{api}/{id}",
		Summary:     "Get a category with its times",
		Tags:        []string{"categories"},
		Errors:      []int{http.StatusNotFound},
		Middlewares: h.middleware,
	}
}

func (h *Handler) createOp() huma.Operation {
	return huma.Operation{
		OperationID: "category-create",
		Method:      http.MethodPost,
		Path:        "/category/{api}/{id}",
		Summary:     "Create a category for a user",
		Tags:        []string{"categories"},
		Errors:      []int{http.StatusNotFound, http.StatusUnprocessableEntity},
		Middlewares: h.middleware,
	}
}

func (h *Handler) updateOp() huma.Operation {
	return huma.Operation{
		OperationID: "category-update",
		Method:      http.MethodPut,
		Path:        "/category/{api}/{id}",
		Summary:     "Update a category",
		Tags:        []string{"categories"},
		Errors:      []int{http.StatusNotFound, http.StatusUnprocessableEntity},
		Middlewares: h.middleware,
	}
}

func (h *Handler) deleteOp() huma.Operation {
	return huma.Operation{
		OperationID: "category-delete",
		Method:      http.MethodDelete,
		Path:        "/category/{api}/{id}",
		Summary:     "Delete a category",
		Description: "Times filed under the category are kept and lose their category.",
		Tags:        []string{"categories"},
		Errors:      []int{http.StatusNotFound},
		Middlewares: h.middleware,
	}
}
