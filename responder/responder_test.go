package responder_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest"
	"go.uber.org/zap/zaptest/observer"

	"github.com/lambda-feedback/mirror/internal/environ"
	"github.com/lambda-feedback/mirror/models"
	"github.com/lambda-feedback/mirror/responder"
	"github.com/lambda-feedback/mirror/responder/schema"
)

type failingSource struct{}

func (failingSource) Environ() (map[string]string, error) {
	return nil, errors.New("boom")
}

func setupResponder(t *testing.T, config responder.Config, source environ.Source) *responder.EchoResponder {
	r, err := responder.New(responder.Params{
		Config: config,
		Source: source,
		Log:    zaptest.NewLogger(t),
	})
	require.NoError(t, err)

	return r
}

func createRequest(method, path string, body []byte, header http.Header) models.Request {
	if header == nil {
		header = make(http.Header)
	}

	return models.Request{
		Method: method,
		Path:   path,
		Host:   "localhost:8888",
		Header: header,
		Body:   body,
	}
}

func parseResponseBody(t *testing.T, resp responder.Response) map[string]any {
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "application/json", resp.Header.Get("Content-Type"))

	var respBody map[string]any
	err := json.Unmarshal(resp.Body, &respBody)
	require.NoError(t, err)

	return respBody
}

func validateAgainst(t *testing.T, schemaType schema.SchemaType, body []byte) {
	s, err := schema.NewResponseSchema()
	require.NoError(t, err)

	result, err := s.Validate(schemaType, body)
	require.NoError(t, err)
	assert.True(t, result.Valid(), result.Errors())
}

func TestNew_InvalidMode(t *testing.T) {
	_, err := responder.New(responder.Params{
		Config: responder.Config{Mode: "mirror"},
		Log:    zap.NewNop(),
	})

	assert.ErrorIs(t, err, responder.ErrInvalidMode)
}

func TestNew_InvalidDecoding(t *testing.T) {
	_, err := responder.New(responder.Params{
		Config: responder.Config{Mode: models.ModeEcho, BodyDecoding: "strict"},
		Log:    zap.NewNop(),
	})

	assert.ErrorIs(t, err, responder.ErrInvalidDecoding)
}

func TestNew_NormalizesMode(t *testing.T) {
	source := environ.StaticSource{"TEST_FOO": "bar"}
	r := setupResponder(t, responder.Config{Mode: "ENV-COUNT", EnvPrefix: "TEST_"}, source)

	resp := r.Handle(context.Background(), createRequest(http.MethodGet, "/x", nil, nil))

	assert.Equal(t, "Environment test", parseResponseBody(t, resp)["message"])
}

func TestEchoResponder_Get(t *testing.T) {
	r := setupResponder(t, responder.Config{Mode: models.ModeEcho}, nil)

	resp := r.Handle(context.Background(), createRequest(http.MethodGet, "/foo/bar?x=1&y=%20", nil, nil))
	body := parseResponseBody(t, resp)

	assert.Equal(t, map[string]any{
		"message": "Hello from test server!",
		"path":    "/foo/bar?x=1&y=%20",
		"method":  "GET",
	}, body)

	validateAgainst(t, schema.SchemaTypeEchoGet, resp.Body)
}

func TestEchoResponder_Post(t *testing.T) {
	r := setupResponder(t, responder.Config{Mode: models.ModeEcho}, nil)

	header := http.Header{
		"Content-Type":   []string{"application/json"},
		"Content-Length": []string{"7"},
		"X-Multi":        []string{"a", "b"},
	}

	resp := r.Handle(context.Background(), createRequest(http.MethodPost, "/submit", []byte(`{"x":1}`), header))
	body := parseResponseBody(t, resp)

	assert.Equal(t, "POST received", body["message"])
	assert.Equal(t, "/submit", body["path"])
	assert.Equal(t, `{"x":1}`, body["body"])
	assert.Equal(t, map[string]any{
		"Content-Type":   "application/json",
		"Content-Length": "7",
		"X-Multi":        "a, b",
		"Host":           "localhost:8888",
	}, body["headers"])

	validateAgainst(t, schema.SchemaTypeEchoPost, resp.Body)
}

func TestEchoResponder_PostEmptyBody(t *testing.T) {
	r := setupResponder(t, responder.Config{Mode: models.ModeEcho}, nil)

	resp := r.Handle(context.Background(), createRequest(http.MethodPost, "/", nil, nil))
	body := parseResponseBody(t, resp)

	assert.Equal(t, "", body["body"])
	assert.Equal(t, map[string]any{"Host": "localhost:8888"}, body["headers"])
}

func TestEchoResponder_Put(t *testing.T) {
	r := setupResponder(t, responder.Config{Mode: models.ModeEcho}, nil)

	resp := r.Handle(context.Background(), createRequest(http.MethodPut, "/item/1", []byte("hello"), nil))
	body := parseResponseBody(t, resp)

	assert.Equal(t, map[string]any{
		"message": "PUT received",
		"path":    "/item/1",
		"body":    "hello",
	}, body)

	validateAgainst(t, schema.SchemaTypeEchoPut, resp.Body)
}

func TestEchoResponder_UnsupportedMethod(t *testing.T) {
	tests := []struct {
		mode   models.Mode
		method string
	}{
		{models.ModeEcho, http.MethodDelete},
		{models.ModeEcho, http.MethodHead},
		{models.ModeEnv, http.MethodPost},
		{models.ModeEnvCount, http.MethodPut},
		{models.ModeEnvSimple, http.MethodPatch},
	}

	for _, tt := range tests {
		t.Run(string(tt.mode)+" "+tt.method, func(t *testing.T) {
			r := setupResponder(t, responder.Config{Mode: tt.mode}, environ.StaticSource{})

			resp := r.Handle(context.Background(), createRequest(tt.method, "/", nil, nil))

			assert.Equal(t, http.StatusNotImplemented, resp.StatusCode)
			assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))
			assert.JSONEq(t, `{"error":{"message":"unsupported method"}}`, string(resp.Body))
		})
	}
}

func TestEchoResponder_Decoding(t *testing.T) {
	invalid := []byte("a\xffb")

	tests := []struct {
		decoding models.Decoding
		expected string
	}{
		{"", "ab"},
		{models.DecodingIgnore, "ab"},
		{models.DecodingReplace, "a�b"},
	}

	for _, tt := range tests {
		t.Run(string(tt.decoding), func(t *testing.T) {
			r := setupResponder(t, responder.Config{
				Mode:         models.ModeEcho,
				BodyDecoding: tt.decoding,
			}, nil)

			resp := r.Handle(context.Background(), createRequest(http.MethodPut, "/", invalid, nil))
			body := parseResponseBody(t, resp)

			assert.Equal(t, tt.expected, body["body"])
		})
	}
}

func TestEchoResponder_DoesNotEscapeHTML(t *testing.T) {
	r := setupResponder(t, responder.Config{Mode: models.ModeEcho}, nil)

	resp := r.Handle(context.Background(), createRequest(http.MethodPut, "/", []byte("<a&b>"), nil))

	assert.Equal(t, `{"message":"PUT received","path":"/","body":"<a&b>"}`, string(resp.Body))
}

func TestEchoResponder_Pretty(t *testing.T) {
	r := setupResponder(t, responder.Config{Mode: models.ModeEcho, Pretty: true}, nil)

	resp := r.Handle(context.Background(), createRequest(http.MethodGet, "/", nil, nil))

	expected := "{\n  \"message\": \"Hello from test server!\",\n  \"path\": \"/\",\n  \"method\": \"GET\"\n}"
	assert.Equal(t, expected, string(resp.Body))
}

func TestEnvResponder_EnvCount(t *testing.T) {
	source := environ.StaticSource{"TEST_FOO": "bar", "OTHER": "baz"}
	r := setupResponder(t, responder.Config{Mode: models.ModeEnvCount, EnvPrefix: "TEST_"}, source)

	resp := r.Handle(context.Background(), createRequest(http.MethodGet, "/status", nil, nil))

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t,
		`{"message":"Environment test","test_env_vars":{"TEST_FOO":"bar"},"path":"/status","count":1}`,
		string(resp.Body),
	)

	validateAgainst(t, schema.SchemaTypeEnvCount, resp.Body)
}

func TestEnvResponder_Env(t *testing.T) {
	source := environ.StaticSource{"TEST_A": "1", "TEST_B": "2", "PATH": "/bin"}
	r := setupResponder(t, responder.Config{Mode: models.ModeEnv, EnvPrefix: "TEST_"}, source)

	resp := r.Handle(context.Background(), createRequest(http.MethodGet, "/anything", nil, nil))
	body := parseResponseBody(t, resp)

	assert.Equal(t, map[string]any{
		"message":   "Environment variables received",
		"test_vars": map[string]any{"TEST_A": "1", "TEST_B": "2"},
	}, body)

	validateAgainst(t, schema.SchemaTypeEnv, resp.Body)
}

func TestEnvResponder_EnvSimple(t *testing.T) {
	source := environ.StaticSource{"TEST_A": "1", "TEST_B": "2", "HOME": "/root"}
	r := setupResponder(t, responder.Config{Mode: models.ModeEnvSimple, EnvPrefix: "TEST_"}, source)

	resp := r.Handle(context.Background(), createRequest(http.MethodGet, "/", nil, nil))
	body := parseResponseBody(t, resp)

	assert.Equal(t, map[string]any{
		"message":       "Environment variables received",
		"test_env_vars": map[string]any{"TEST_A": "1", "TEST_B": "2"},
		"count":         float64(2),
	}, body)

	validateAgainst(t, schema.SchemaTypeEnvSimple, resp.Body)
}

func TestEnvResponder_EmptySnapshot(t *testing.T) {
	r := setupResponder(t, responder.Config{Mode: models.ModeEnvCount, EnvPrefix: "TEST_"}, environ.StaticSource{})

	resp := r.Handle(context.Background(), createRequest(http.MethodGet, "/", nil, nil))

	assert.Equal(t,
		`{"message":"Environment test","test_env_vars":{},"path":"/","count":0}`,
		string(resp.Body),
	)
}

func TestEnvResponder_ReadsSourceOnEveryRequest(t *testing.T) {
	t.Setenv("TEST_MIRROR_RESPONDER", "first")

	r := setupResponder(t, responder.Config{Mode: models.ModeEnv, EnvPrefix: "TEST_MIRROR_"}, environ.ProcessSource{})

	body := parseResponseBody(t, r.Handle(context.Background(), createRequest(http.MethodGet, "/", nil, nil)))
	assert.Equal(t, map[string]any{"TEST_MIRROR_RESPONDER": "first"}, body["test_vars"])

	t.Setenv("TEST_MIRROR_RESPONDER", "second")

	body = parseResponseBody(t, r.Handle(context.Background(), createRequest(http.MethodGet, "/", nil, nil)))
	assert.Equal(t, map[string]any{"TEST_MIRROR_RESPONDER": "second"}, body["test_vars"])
}

func TestEnvResponder_SourceError(t *testing.T) {
	r := setupResponder(t, responder.Config{Mode: models.ModeEnv, EnvPrefix: "TEST_"}, failingSource{})

	resp := r.Handle(context.Background(), createRequest(http.MethodGet, "/", nil, nil))

	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.JSONEq(t, `{"error":{"message":"environment unavailable"}}`, string(resp.Body))
}

func TestEchoResponder_RepeatedRequestsAreIdentical(t *testing.T) {
	r := setupResponder(t, responder.Config{Mode: models.ModeEcho}, nil)

	req := createRequest(http.MethodPost, "/again", []byte("same"), nil)

	first := r.Handle(context.Background(), req)
	second := r.Handle(context.Background(), req)

	assert.Equal(t, first, second)
}

func TestEchoResponder_ValidateLogsNothingForValidDocuments(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)

	r, err := responder.New(responder.Params{
		Config: responder.Config{Mode: models.ModeEcho, Validate: true},
		Log:    zap.New(core),
	})
	require.NoError(t, err)

	for _, method := range []string{http.MethodGet, http.MethodPost, http.MethodPut} {
		resp := r.Handle(context.Background(), createRequest(method, "/", []byte("x"), nil))
		require.Equal(t, http.StatusOK, resp.StatusCode)
	}

	assert.Zero(t, logs.Len())
}

func TestNewErrorResponse(t *testing.T) {
	tests := []struct {
		err     error
		status  int
		message string
	}{
		{responder.ErrUnsupportedMethod, http.StatusNotImplemented, "unsupported method"},
		{responder.ErrBodyUnreadable, http.StatusBadRequest, "failed to read body"},
		{responder.ErrBodyTooLarge, http.StatusRequestEntityTooLarge, "body too large"},
		{errors.Join(responder.ErrBodyUnreadable, errors.New("eof")), http.StatusBadRequest, "failed to read body"},
		{errors.New("unknown"), http.StatusInternalServerError, "Internal Server Error"},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			resp := responder.NewErrorResponse(tt.err)

			assert.Equal(t, tt.status, resp.StatusCode)

			var body struct {
				Error struct {
					Message string `json:"message"`
				} `json:"error"`
			}
			require.NoError(t, json.Unmarshal(resp.Body, &body))
			assert.Equal(t, tt.message, body.Error.Message)
		})
	}
}

func TestSimpleResponder_Health(t *testing.T) {
	r := setupResponder(t, responder.Config{Mode: models.ModeSimple}, nil)

	for _, path := range []string{"/health", "/health?verbose=1"} {
		resp := r.Handle(context.Background(), createRequest(http.MethodGet, path, nil, nil))

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "text/plain; charset=utf-8", resp.Header.Get("Content-Type"))
		assert.Equal(t, "OK", string(resp.Body))
	}
}

func TestSimpleResponder_Greeting(t *testing.T) {
	r := setupResponder(t, responder.Config{Mode: models.ModeSimple}, nil)

	for _, method := range []string{http.MethodGet, http.MethodPost, http.MethodDelete} {
		t.Run(method, func(t *testing.T) {
			resp := r.Handle(context.Background(), createRequest(method, "/", nil, nil))

			require.Equal(t, http.StatusOK, resp.StatusCode)

			stamp, ok := strings.CutPrefix(string(resp.Body), "Hello from test server at ")
			require.True(t, ok, string(resp.Body))

			at, err := time.Parse(time.RFC3339, stamp)
			require.NoError(t, err)
			assert.WithinDuration(t, time.Now(), at, 5*time.Second)
		})
	}
}

func TestEchoResponder_MethodsAreCaseSensitive(t *testing.T) {
	r := setupResponder(t, responder.Config{Mode: models.ModeEcho}, nil)

	resp := r.Handle(context.Background(), createRequest("get", "/x", nil, nil))

	assert.Equal(t, http.StatusNotImplemented, resp.StatusCode)
}
