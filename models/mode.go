package models

import "strings"

// Mode selects which response variant the server emulates.
type Mode string

const (
	// ModeEcho reflects the request line, headers and body.
	ModeEcho Mode = "echo"

	// ModeEnv returns the environment snapshot as `test_vars`.
	ModeEnv Mode = "env"

	// ModeEnvCount returns the environment snapshot together with the
	// requested path and the number of matched variables.
	ModeEnvCount Mode = "env-count"

	// ModeEnvSimple returns the environment snapshot and its size.
	ModeEnvSimple Mode = "env-simple"

	// ModeSimple answers /health with a plain OK and every other path
	// with a timestamped greeting.
	ModeSimple Mode = "simple"
)

var defaultPorts = map[Mode]int{
	ModeEcho:      8888,
	ModeEnv:       8889,
	ModeEnvCount:  8890,
	ModeEnvSimple: 8890,
	ModeSimple:    18080,
}

func ParseMode(s string) (Mode, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "echo":
		return ModeEcho, true
	case "env":
		return ModeEnv, true
	case "env-count":
		return ModeEnvCount, true
	case "env-simple":
		return ModeEnvSimple, true
	case "simple":
		return ModeSimple, true
	}

	return "", false
}

// DefaultPort returns the port the mode listens on when none is configured.
func (m Mode) DefaultPort() int {
	return defaultPorts[m]
}

func (m Mode) String() string {
	return string(m)
}
