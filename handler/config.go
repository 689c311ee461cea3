package handler

type Config struct {
	// AccessLog enables one log line per request
	AccessLog bool `conf:"access_log"`

	// MaxBodyBytes limits the accepted Content-Length, 0 means unlimited
	MaxBodyBytes int64 `conf:"max_body_bytes"`

	// MaxConcurrency limits the number of requests handled at once,
	// 0 means unlimited
	MaxConcurrency int `conf:"max_concurrency"`
}
