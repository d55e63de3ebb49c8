// Package types holds what the client subcommand packages share.
package types

import (
	"context"
	"errors"

	"timetrack/internal/app/client"
)

type contextKey string

const ClientAppKey contextKey = "client_app"

var ErrNoApp = errors.New("client is not initialized")

// App returns the client the root command stored in ctx.
func App(ctx context.Context) (*client.App, error) {
	app, ok := ctx.Value(ClientAppKey).(*client.App)
	if !ok || app == nil {
		return nil, ErrNoApp
	}
	return app, nil
}
