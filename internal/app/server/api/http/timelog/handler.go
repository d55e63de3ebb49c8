package timelog

import (
	"context"
	"errors"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/exp/slog"

	"timetrack/internal/app/server/api/http/common"
	"timetrack/internal/domain/timelog"
	"timetrack/internal/utils/logger"
)

const (
	notFound         = "Time Log Not Found"
	userNotFound     = "User Not Found"
	categoryNotFound = "Category Not Found"
)

type Handler struct {
	service    timelog.Servicer
	log        *slog.Logger
	middleware huma.Middlewares
}

func NewHandler(service timelog.Servicer, log *slog.Logger, middleware huma.Middlewares) *Handler {
	return &Handler{
		service:    service,
		log:        log.With(slog.String("component", "timelog_handler")),
		middleware: middleware,
	}
}

func (h *Handler) SetupRoutes(api huma.API) {
	huma.Register(api, h.listOp(), h.list)
	huma.Register(api, h.listByUserOp(), h.listByUser)
	huma.Register(api, h.findOp(), h.find)
	huma.Register(api, h.createOp(), h.create)
	huma.Register(api, h.updateOp(), h.update)
	huma.Register(api, h.deleteOp(), h.delete)
}

func (h *Handler) list(ctx context.Context, _ *listInput) (*listOutput, error) {
	entries, err := h.service.List(ctx)
	if err != nil {
		return nil, h.fail(err)
	}
	return &listOutput{Body: entries}, nil
}

// listByUser answers an empty list for an unknown or malformed user id.
func (h *Handler) listByUser(ctx context.Context, input *listByUserInput) (*listOutput, error) {
	userID, err := common.ParseID(input.ID, userNotFound)
	if err != nil {
		return &listOutput{Body: []timelog.Entry{}}, nil
	}

	entries, err := h.service.ListByUser(ctx, userID)
	if err != nil {
		return nil, h.fail(err)
	}
	return &listOutput{Body: entries}, nil
}

func (h *Handler) find(ctx context.Context, input *idInput) (*entryOutput, error) {
	id, err := common.ParseID(input.ID, notFound)
	if err != nil {
		return nil, err
	}

	e, err := h.service.Find(ctx, id)
	if err != nil {
		return nil, h.fail(err)
	}
	return &entryOutput{Body: e}, nil
}

func (h *Handler) create(ctx context.Context, input *createInput) (*entryOutput, error) {
	userID, err := common.ParseID(input.ID, userNotFound)
	if err != nil {
		return nil, err
	}

	e, err := h.service.Create(ctx, userID, input.Body)
	if err != nil {
		return nil, h.fail(err)
	}
	return &entryOutput{Body: e}, nil
}

func (h *Handler) update(ctx context.Context, input *updateInput) (*entryOutput, error) {
	id, err := common.ParseID(input.ID, notFound)
	if err != nil {
		return nil, err
	}

	e, err := h.service.Update(ctx, id, input.Body)
	if err != nil {
		return nil, h.fail(err)
	}
	return &entryOutput{Body: e}, nil
}

func (h *Handler) delete(ctx context.Context, input *idInput) (*common.DeleteOutput, error) {
	id, err := common.ParseID(input.ID, notFound)
	if err != nil {
		return nil, err
	}

	if err := h.service.Delete(ctx, id); err != nil {
		return nil, h.fail(err)
	}
	return common.Deleted(), nil
}

func (h *Handler) fail(err error) error {
	switch {
	case errors.Is(err, timelog.ErrNotFound):
		return huma.Error404NotFound(notFound)
	case errors.Is(err, timelog.ErrUserNotFound):
		return huma.Error404NotFound(userNotFound)
	case errors.Is(err, timelog.ErrCategoryNotFound):
		return huma.Error404NotFound(categoryNotFound)
	case errors.Is(err, timelog.ErrInvalidInput):
		return huma.Error422UnprocessableEntity(err.Error())
	}

	h.log.Error("request failed", logger.Err(err))
	return huma.Error500InternalServerError("Internal Server Error")
}
