package responder

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
)

var (
	ErrUnsupportedMethod  = errors.New("unsupported method")
	ErrBodyUnreadable     = errors.New("failed to read body")
	ErrBodyTooLarge       = errors.New("body too large")
	ErrEnvironUnavailable = errors.New("environment unavailable")
	ErrEncodingFailed     = errors.New("failed to encode response")
	ErrServerBusy         = errors.New("server busy")
	ErrInvalidMode        = errors.New("invalid mode")
	ErrInvalidDecoding    = errors.New("invalid body decoding")
)

var wellKnownErrors = []struct {
	err    error
	status int
}{
	{ErrUnsupportedMethod, http.StatusNotImplemented},
	{ErrBodyUnreadable, http.StatusBadRequest},
	{ErrBodyTooLarge, http.StatusRequestEntityTooLarge},
	{ErrEnvironUnavailable, http.StatusInternalServerError},
	{ErrEncodingFailed, http.StatusInternalServerError},
	{ErrServerBusy, http.StatusServiceUnavailable},
}

// Response represents an outgoing response.
type Response struct {
	StatusCode int
	Body       []byte
	Header     http.Header
}

// getErrorStatusCode returns the status code for the given error.
func getErrorStatusCode(err error) int {
	for _, known := range wellKnownErrors {
		if errors.Is(err, known.err) {
			return known.status
		}
	}

	return http.StatusInternalServerError
}

// NewErrorResponse creates a JSON error response. The status code is
// derived from the well-known error err wraps.
func NewErrorResponse(err error) Response {
	statusCode := getErrorStatusCode(err)

	type responseError struct {
		Message string `json:"message"`
	}

	body, mErr := json.Marshal(struct {
		Error responseError `json:"error"`
	}{
		Error: responseError{Message: errorMessage(err)},
	})
	if mErr != nil {
		return Response{StatusCode: http.StatusInternalServerError}
	}

	return newResponse(statusCode, body)
}

// errorMessage returns the message of the outermost well-known error, so
// internal details of wrapped errors are not exposed to clients.
func errorMessage(err error) string {
	for _, known := range wellKnownErrors {
		if errors.Is(err, known.err) {
			return known.err.Error()
		}
	}

	return http.StatusText(http.StatusInternalServerError)
}

// newResponse creates a new JSON response.
func newResponse(status int, body []byte) Response {
	header := make(http.Header)
	header.Add("Content-Type", "application/json")

	return Response{
		StatusCode: status,
		Body:       body,
		Header:     header,
	}
}

// newTextResponse creates a new plain text response.
func newTextResponse(status int, body string) Response {
	header := make(http.Header)
	header.Add("Content-Type", "text/plain; charset=utf-8")

	return Response{
		StatusCode: status,
		Body:       []byte(body),
		Header:     header,
	}
}

// encodeDocument serializes doc without escaping HTML characters and
// without a trailing newline.
func encodeDocument(doc any, pretty bool) ([]byte, error) {
	var buf bytes.Buffer

	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if pretty {
		enc.SetIndent("", "  ")
	}

	if err := enc.Encode(doc); err != nil {
		return nil, errors.Join(ErrEncodingFailed, err)
	}

	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}
