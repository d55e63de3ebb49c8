package user

import (
	"context"
	"errors"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/exp/slog"

	"timetrack/internal/app/server/api/http/common"
	"timetrack/internal/domain/user"
	"timetrack/internal/utils/logger"
)

const notFound = "User Not Found"

type Handler struct {
	service    user.Servicer
	log        *slog.Logger
	middleware huma.Middlewares
}

func NewHandler(service user.Servicer, log *slog.Logger, middleware huma.Middlewares) *Handler {
	return &Handler{
		service:    service,
		log:        log.With(slog.String("component", "user_handler")),
		middleware: middleware,
	}
}

func (h *Handler) SetupRoutes(api huma.API) {
	huma.Register(api, h.listOp(), h.list)
	huma.Register(api, h.findOp(), h.find)
	huma.Register(api, h.createOp(), h.create)
	huma.Register(api, h.updateOp(), h.update)
	huma.Register(api, h.deleteOp(), h.delete)
	huma.Register(api, h.loginOp(), h.login)
}

func (h *Handler) list(ctx context.Context, _ *listInput) (*listOutput, error) {
	users, err := h.service.List(ctx)
	if err != nil {
		return nil, h.fail(err)
	}
	return &listOutput{Body: users}, nil
}

func (h *Handler) find(ctx context.Context, input *idInput) (*userOutput, error) {
	id, err := common.ParseID(input.ID, notFound)
	if err != nil {
		return nil, err
	}

	u, err := h.service.Find(ctx, id)
	if err != nil {
		return nil, h.fail(err)
	}
	return &userOutput{Body: u}, nil
}

func (h *Handler) create(ctx context.Context, input *createInput) (*userOutput, error) {
	u, err := h.service.Create(ctx, input.Body)
	if err != nil {
		return nil, h.fail(err)
	}
	return &userOutput{Body: u}, nil
}

func (h *Handler) update(ctx context.Context, input *updateInput) (*userOutput, error) {
	id, err := common.ParseID(input.ID, notFound)
	if err != nil {
		return nil, err
	}

	u, err := h.service.Update(ctx, id, input.Body)
	if err != nil {
		return nil, h.fail(err)
	}
	return &userOutput{Body: u}, nil
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

func (h *Handler) login(ctx context.Context, input *loginInput) (*loginOutput, error) {
	u, err := h.service.Authenticate(ctx, input.Body.Email, input.Body.Password)
	if err != nil {
		return nil, h.fail(err)
	}
	return &loginOutput{Body: LoginResponse{Status: "Ok", UserID: u.ID}}, nil
}

func (h *Handler) fail(err error) error {
	switch {
	case errors.Is(err, user.ErrNotFound):
		return huma.Error404NotFound(notFound)
	case errors.Is(err, user.ErrInvalidCredentials):
		return huma.Error400BadRequest("Invalid credentials")
	case errors.Is(err, user.ErrInvalidInput):
		return huma.Error422UnprocessableEntity(err.Error())
	case errors.Is(err, user.ErrEmailTaken):
		return huma.Error409Conflict("Email already registered")
	}

	h.log.Error("request failed", logger.Err(err))
	return huma.Error500InternalServerError("Internal Server Error")
}
