package handler

import (
	"context"
	"net/http"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/lambda-feedback/mirror/internal/gate"
	"github.com/lambda-feedback/mirror/internal/server"
)

type EchoRouteParams struct {
	fx.In

	Handler   *EchoHandler
	Config    Config
	Log       *zap.Logger
	Lifecycle fx.Lifecycle
}

// NewEchoRoute registers the echo handler for every path.
func NewEchoRoute(params EchoRouteParams) (server.HttpHandlerResult, error) {
	handler, closeFn, err := Wrap(params.Handler, params.Config, params.Log)
	if err != nil {
		return server.HttpHandlerResult{}, err
	}

	params.Lifecycle.Append(fx.Hook{
		OnStop: func(context.Context) error {
			closeFn()
			return nil
		},
	})

	return server.AsHttpHandler("/", handler), nil
}

// Wrap applies the middlewares enabled by config to h. The returned
// function releases resources held by the middlewares.
func Wrap(h http.Handler, config Config, log *zap.Logger) (http.Handler, func(), error) {
	var middlewares []Middleware

	if config.AccessLog {
		middlewares = append(middlewares, WithAccessLog(log.Named("access")))
	}

	middlewares = append(middlewares, WithRecovery(log))

	closeFn := func() {}

	if config.MaxConcurrency > 0 {
		g, err := gate.New(config.MaxConcurrency)
		if err != nil {
			return nil, nil, err
		}

		middlewares = append(middlewares, WithGate(g, log))
		closeFn = g.Close
	}

	return Chain(h, middlewares...), closeFn, nil
}
