package handler

import (
	"errors"
	"io"
	"net/http"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/lambda-feedback/mirror/models"
	"github.com/lambda-feedback/mirror/responder"
)

type EchoHandlerParams struct {
	fx.In

	Handler responder.Handler
	Config  Config
	Log     *zap.Logger
}

func NewEchoHandler(params EchoHandlerParams) *EchoHandler {
	return &EchoHandler{
		handler:      params.Handler,
		maxBodyBytes: params.Config.MaxBodyBytes,
		log:          params.Log,
	}
}

// EchoHandler adapts a responder.Handler to net/http.
type EchoHandler struct {
	handler      responder.Handler
	maxBodyBytes int64
	log          *zap.Logger
}

func (h *EchoHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	path := requestPath(r)

	log := h.log.With(
		zap.String("path", path),
		zap.String("method", r.Method),
	)

	// Read the body as declared by Content-Length
	body, err := readBody(r, h.maxBodyBytes)
	if err != nil {
		log.Debug("failed to read body", zap.Error(err))
		writeResponse(w, log, responder.NewErrorResponse(err))
		return
	}

	request := models.Request{
		Method: r.Method,
		Path:   path,
		Host:   r.Host,
		Header: r.Header,
		Body:   body,
	}

	// Handle the request
	response := h.handler.Handle(r.Context(), request)

	writeResponse(w, log, response)
}

// requestPath returns the request-line target as received.
func requestPath(r *http.Request) string {
	if r.RequestURI != "" {
		return r.RequestURI
	}

	return r.URL.RequestURI()
}

// readBody reads exactly ContentLength bytes. A missing or unknown
// Content-Length yields an empty body, undeclared data is never waited
// for.
func readBody(r *http.Request, limit int64) ([]byte, error) {
	if r.Body == nil || r.ContentLength <= 0 {
		return []byte{}, nil
	}

	if limit > 0 && r.ContentLength > limit {
		return nil, responder.ErrBodyTooLarge
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, r.ContentLength))
	if err != nil {
		return nil, errors.Join(responder.ErrBodyUnreadable, err)
	}

	if int64(len(body)) < r.ContentLength {
		return nil, errors.Join(responder.ErrBodyUnreadable, io.ErrUnexpectedEOF)
	}

	return body, nil
}

func writeResponse(w http.ResponseWriter, log *zap.Logger, response responder.Response) {
	// Map response headers
	for k, v := range response.Header {
		for _, vv := range v {
			w.Header().Add(k, vv)
		}
	}

	// Write response headers and status code
	w.WriteHeader(response.StatusCode)

	// Write response body
	if _, err := w.Write(response.Body); err != nil {
		log.Debug("failed to write response", zap.Error(err))
	}
}
