package health

import (
	"context"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/exp/slog"

	"timetrack/internal/utils/logger"
)

const pingTimeout = 2 * time.Second

// Pinger is the storage the probe checks.
type Pinger interface {
	Ping(ctx context.Context) error
}

type Handler struct {
	store      Pinger
	log        *slog.Logger
	middleware huma.Middlewares
}

// NewHandler builds the probe. A nil store is reported as always up.
func NewHandler(store Pinger, log *slog.Logger, middleware huma.Middlewares) *Handler {
	return &Handler{
		store:      store,
		log:        log,
		middleware: middleware,
	}
}

func (h *Handler) SetupRoutes(api huma.API) {
	huma.Register(api, h.healthCheckOp(), h.healthCheck)
}

func (h *Handler) healthCheck(ctx context.Context, _ *Input) (*Output, error) {
	h.log.Debug("health check request received")

	if h.store != nil {
		ctx, cancel := context.WithTimeout(ctx, pingTimeout)
		defer cancel()
		if err := h.store.Ping(ctx); err != nil {
			h.log.Error("store ping failed", logger.Err(err))
			return nil, huma.Error503ServiceUnavailable("Store Unavailable")
		}
	}

	return &Output{
		Body: Response{
			Status: statusOK,
		},
	}, nil
}
