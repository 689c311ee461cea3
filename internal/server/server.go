package server

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"sync"

	"go.uber.org/fx"
	"go.uber.org/zap"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"
)

type HttpServerParams struct {
	fx.In

	Config HttpConfig

	Handlers []*HttpHandler `group:"handlers"`
	Logger   *zap.Logger
}

// HttpServer is a http server with an explicit lifecycle. Start binds
// the listener and serves in the background, Stop shuts the server down
// gracefully. Both are safe to call more than once.
type HttpServer struct {
	server *http.Server
	log    *zap.Logger

	mu       sync.Mutex
	listener net.Listener
	done     chan struct{}

	startOnce sync.Once
	startErr  error

	stopOnce sync.Once
	stopErr  error
}

func NewHttpServer(params HttpServerParams) *HttpServer {
	handler := newRouter(params.Handlers)
	if params.Config.H2c {
		handler = h2c.NewHandler(handler, &http2.Server{})
	}

	server := &http.Server{
		Addr:     net.JoinHostPort(params.Config.Host, fmt.Sprint(params.Config.Port)),
		Handler:  handler,
		ErrorLog: zap.NewStdLog(params.Logger.Named("http")),
	}

	return &HttpServer{
		server: server,
		log:    params.Logger,
		done:   make(chan struct{}),
	}
}

func NewLifecycleServer(params HttpServerParams, lc fx.Lifecycle) *HttpServer {
	server := NewHttpServer(params)
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			return server.Start(ctx)
		},
		OnStop: func(ctx context.Context) error {
			return server.Stop(ctx)
		},
	})
	return server
}

// newRouter dispatches to the registered handlers. A single catch-all
// handler is used as is, so request paths reach it uncleaned.
func newRouter(handlers []*HttpHandler) http.Handler {
	if len(handlers) == 1 && handlers[0].Name == "/" {
		return handlers[0].Handler
	}

	mux := http.NewServeMux()

	for _, handler := range handlers {
		mux.Handle(handler.Name, handler.Handler)
	}

	return mux
}

// Start binds the listener and serves requests in the background. Bind
// errors are returned to the caller.
func (s *HttpServer) Start(ctx context.Context) error {
	s.startOnce.Do(func() {
		s.startErr = s.start(ctx)
	})

	return s.startErr
}

func (s *HttpServer) start(ctx context.Context) error {
	cfg := net.ListenConfig{}

	listener, err := cfg.Listen(ctx, "tcp", s.server.Addr)
	if err != nil {
		s.log.With(zap.Error(err)).Error("failed to listen")
		close(s.done)
		return err
	}

	s.mu.Lock()
	s.listener = listener
	s.mu.Unlock()

	s.log.With(zap.String("address", listener.Addr().String())).Info("listening")

	go s.serve(listener)

	return nil
}

func (s *HttpServer) serve(listener net.Listener) {
	defer close(s.done)

	if err := s.server.Serve(listener); err != nil && err != http.ErrServerClosed {
		s.log.With(zap.Error(err)).Error("failed to serve")
	}
}

// Stop stops accepting connections and waits for in-flight requests
// until ctx is done. Subsequent calls return the result of the first.
func (s *HttpServer) Stop(ctx context.Context) error {
	s.stopOnce.Do(func() {
		s.log.Info("shutting down")

		if err := s.server.Shutdown(ctx); err != nil {
			s.log.With(zap.Error(err)).Error("failed to shutdown")
			s.stopErr = err
		}
	})

	return s.stopErr
}

// Addr returns the bound address, or nil if the server has not been
// started.
func (s *HttpServer) Addr() net.Addr {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.listener == nil {
		return nil
	}

	return s.listener.Addr()
}
