package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/felixge/httpsnoop"
	"github.com/getsentry/sentry-go"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/lambda-feedback/mirror/internal/gate"
	"github.com/lambda-feedback/mirror/responder"
)

type Middleware func(http.Handler) http.Handler

// Chain wraps h with the given middlewares. The first middleware is the
// outermost one.
func Chain(h http.Handler, middlewares ...Middleware) http.Handler {
	for i := len(middlewares) - 1; i >= 0; i-- {
		h = middlewares[i](h)
	}

	return h
}

// WithAccessLog writes one log line per request.
func WithAccessLog(log *zap.Logger) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			m := httpsnoop.CaptureMetrics(next, w, r)

			log.Info("request",
				zap.String("request_id", uuid.NewString()),
				zap.String("method", r.Method),
				zap.String("path", requestPath(r)),
				zap.String("proto", r.Proto),
				zap.String("remote_addr", r.RemoteAddr),
				zap.Int("status", m.Code),
				zap.Int64("bytes", m.Written),
				zap.Duration("duration", m.Duration),
			)
		})
	}
}

// WithRecovery turns panics in next into 500 responses. Panics are
// reported to sentry if it is configured.
func WithRecovery(log *zap.Logger) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}

				// net/http uses this to abort a response silently
				if rec == http.ErrAbortHandler {
					panic(rec)
				}

				log.Error("panic while handling request",
					zap.Any("panic", rec),
					zap.String("path", requestPath(r)),
					zap.String("method", r.Method),
				)

				sentry.CurrentHub().Recover(rec)

				writeResponse(w, log, responder.NewErrorResponse(errors.New("panic")))
			}()

			next.ServeHTTP(w, r)
		})
	}
}

// WithGate admits a request only while g has a free slot. Requests whose
// context ends while waiting are answered with 503.
func WithGate(g *gate.Gate, log *zap.Logger) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			release, err := g.Acquire(r.Context())
			if err != nil {
				log.Debug("failed to acquire slot",
					zap.Error(err),
					zap.Duration("waited", time.Since(start)),
					zap.Int("in_use", g.InUse()),
				)
				writeResponse(w, log, responder.NewErrorResponse(responder.ErrServerBusy))
				return
			}
			defer release()

			next.ServeHTTP(w, r)
		})
	}
}
