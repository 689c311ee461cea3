package responder

const (
	MessageEchoGet         = "Hello from test server!"
	MessageEchoPost        = "POST received"
	MessageEchoPut         = "PUT received"
	MessageEnvironment     = "Environment variables received"
	MessageEnvironmentTest = "Environment test"
	MessageHealthy         = "OK"
	GreetingFormat         = "Hello from test server at %s"
)

// EchoGetDocument is returned for GET requests in echo mode.
type EchoGetDocument struct {
	Message string `json:"message"`
	Path    string `json:"path"`
	Method  string `json:"method"`
}

// EchoPostDocument is returned for POST requests in echo mode.
type EchoPostDocument struct {
	Message string            `json:"message"`
	Path    string            `json:"path"`
	Body    string            `json:"body"`
	Headers map[string]string `json:"headers"`
}

// EchoPutDocument is returned for PUT requests in echo mode.
type EchoPutDocument struct {
	Message string `json:"message"`
	Path    string `json:"path"`
	Body    string `json:"body"`
}

// EnvDocument is returned in env mode.
type EnvDocument struct {
	Message  string            `json:"message"`
	TestVars map[string]string `json:"test_vars"`
}

// EnvCountDocument is returned in env-count mode.
type EnvCountDocument struct {
	Message     string            `json:"message"`
	TestEnvVars map[string]string `json:"test_env_vars"`
	Path        string            `json:"path"`
	Count       int               `json:"count"`
}

// EnvSimpleDocument is returned in env-simple mode.
type EnvSimpleDocument struct {
	Message     string            `json:"message"`
	TestEnvVars map[string]string `json:"test_env_vars"`
	Count       int               `json:"count"`
}
