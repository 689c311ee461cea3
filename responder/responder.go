package responder

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/lambda-feedback/mirror/internal/environ"
	"github.com/lambda-feedback/mirror/models"
	"github.com/lambda-feedback/mirror/responder/schema"
)

// Handler is the interface for answering echo requests.
type Handler interface {
	Handle(ctx context.Context, request models.Request) Response
}

// Params defines the dependencies for the responder.
type Params struct {
	fx.In

	// Config is the responder config
	Config Config

	// Source provides the environment exposed in env modes
	Source environ.Source

	// Log is the logger to use for the responder
	Log *zap.Logger
}

// EchoResponder builds response documents for the configured mode.
type EchoResponder struct {
	mode     models.Mode
	prefix   string
	pretty   bool
	decoding models.Decoding
	validate bool

	source  environ.Source
	schemas *schema.Schema
	now     func() time.Time

	log *zap.Logger
}

var _ Handler = (*EchoResponder)(nil)

// New creates a new responder. It fails if the mode or the body decoding
// of the config are invalid.
func New(params Params) (*EchoResponder, error) {
	mode, ok := models.ParseMode(string(params.Config.Mode))
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrInvalidMode, params.Config.Mode)
	}

	decoding, ok := models.ParseDecoding(string(params.Config.BodyDecoding))
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrInvalidDecoding, params.Config.BodyDecoding)
	}

	schemas, err := schema.NewResponseSchema()
	if err != nil {
		return nil, err
	}

	source := params.Source
	if source == nil {
		source = environ.ProcessSource{}
	}

	return &EchoResponder{
		mode:     mode,
		prefix:   params.Config.EnvPrefix,
		pretty:   params.Config.Pretty,
		decoding: decoding,
		validate: params.Config.Validate,
		source:   source,
		schemas:  schemas,
		now:      time.Now,
		log:      params.Log.Named("responder"),
	}, nil
}

// NewHandler creates a new responder, exposed as Handler.
func NewHandler(params Params) (Handler, error) {
	return New(params)
}

// Handle answers a single request.
func (r *EchoResponder) Handle(ctx context.Context, req models.Request) Response {
	log := r.log.With(
		zap.String("path", req.Path),
		zap.String("method", req.Method),
	)

	if r.mode == models.ModeSimple {
		return r.simple(req)
	}

	doc, schemaType, err := r.document(req)
	if err != nil {
		log.Debug("failed to build document", zap.Error(err))
		return NewErrorResponse(err)
	}

	body, err := encodeDocument(doc, r.pretty)
	if err != nil {
		log.Error("failed to encode document", zap.Error(err))
		return NewErrorResponse(err)
	}

	if r.validate {
		r.validateDocument(log, schemaType, body)
	}

	return newResponse(http.StatusOK, body)
}

func (r *EchoResponder) document(req models.Request) (any, schema.SchemaType, error) {
	if r.mode == models.ModeEcho {
		return r.echoDocument(req)
	}

	if req.Method != http.MethodGet {
		return nil, 0, ErrUnsupportedMethod
	}

	snapshot, err := environ.Snapshot(r.source, r.prefix)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %w", ErrEnvironUnavailable, err)
	}

	switch r.mode {
	case models.ModeEnv:
		return EnvDocument{
			Message:  MessageEnvironment,
			TestVars: snapshot,
		}, schema.SchemaTypeEnv, nil
	case models.ModeEnvCount:
		return EnvCountDocument{
			Message:     MessageEnvironmentTest,
			TestEnvVars: snapshot,
			Path:        req.Path,
			Count:       len(snapshot),
		}, schema.SchemaTypeEnvCount, nil
	default:
		return EnvSimpleDocument{
			Message:     MessageEnvironment,
			TestEnvVars: snapshot,
			Count:       len(snapshot),
		}, schema.SchemaTypeEnvSimple, nil
	}
}

func (r *EchoResponder) echoDocument(req models.Request) (any, schema.SchemaType, error) {
	switch req.Method {
	case http.MethodGet:
		return EchoGetDocument{
			Message: MessageEchoGet,
			Path:    req.Path,
			Method:  http.MethodGet,
		}, schema.SchemaTypeEchoGet, nil
	case http.MethodPost:
		return EchoPostDocument{
			Message: MessageEchoPost,
			Path:    req.Path,
			Body:    decodeBody(req.Body, r.decoding),
			Headers: flattenHeaders(req.Header, req.Host),
		}, schema.SchemaTypeEchoPost, nil
	case http.MethodPut:
		return EchoPutDocument{
			Message: MessageEchoPut,
			Path:    req.Path,
			Body:    decodeBody(req.Body, r.decoding),
		}, schema.SchemaTypeEchoPut, nil
	}

	return nil, 0, ErrUnsupportedMethod
}
