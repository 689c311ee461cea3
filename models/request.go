package models

import "net/http"

// Request is the transient record of a single incoming request.
type Request struct {
	// Method is the upper-case request method.
	Method string

	// Path is the request-line target, including the query string.
	Path string

	// Host is the value of the Host header.
	Host string

	// Header contains the received headers.
	Header http.Header

	// Body is the request body, read according to Content-Length.
	Body []byte
}
