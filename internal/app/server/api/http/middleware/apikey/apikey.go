// Package apikey rejects requests whose {api} path segment does not pass
// the configured key gate.
package apikey

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/exp/slog"
)

// PathParam names the path segment carrying the key.
const PathParam = "api"

type Authorizer interface {
	Authorize(key string) bool
}

type APIKey struct {
	gate Authorizer
	log  *slog.Logger
}

func New(gate Authorizer, log *slog.Logger) *APIKey {
	return &APIKey{
		gate: gate,
		log:  log.With(slog.String("component", "apikey_middleware")),
	}
}

// Middleware answers 403 with an empty body and never calls next when
// the key is rejected.
func (a *APIKey) Middleware() func(huma.Context, func(huma.Context)) {
	return func(ctx huma.Context, next func(huma.Context)) {
		if !a.gate.Authorize(ctx.Param(PathParam)) {
			a.log.Warn("api key rejected",
				slog.String("method", ctx.Method()),
				slog.String("operation", ctx.Operation().OperationID),
				slog.String("remote_addr", ctx.RemoteAddr()),
			)
			ctx.SetStatus(http.StatusForbidden)
			return
		}

		next(ctx)
	}
}
