// Package environ provides read-only snapshots of environment variables.
//
// A Source is consulted on every request, so snapshots always reflect the
// current state of the underlying environment. Sources never mutate it.
package environ

import (
	"fmt"
	"maps"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/dotenv"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Source provides the environment variables visible to the server.
type Source interface {
	Environ() (map[string]string, error)
}

// ProcessSource reads the environment of the current process.
type ProcessSource struct{}

var _ Source = ProcessSource{}

func (ProcessSource) Environ() (map[string]string, error) {
	return Parse(os.Environ()), nil
}

// StaticSource is a fixed set of variables, injected at construction.
type StaticSource map[string]string

var _ Source = StaticSource(nil)

func (s StaticSource) Environ() (map[string]string, error) {
	return maps.Clone(s), nil
}

// FileSource reads variables from a dotenv file. The file is read on
// every call.
type FileSource struct {
	Path string
}

var _ Source = (*FileSource)(nil)

func (s *FileSource) Environ() (map[string]string, error) {
	k := koanf.New(".")

	if err := k.Load(file.Provider(s.Path), dotenv.Parser()); err != nil {
		return nil, fmt.Errorf("failed to read env file %s: %w", s.Path, err)
	}

	all := k.All()

	env := make(map[string]string, len(all))
	for key := range all {
		env[key] = k.String(key)
	}

	return env, nil
}

// OverlaySource merges several sources. Entries of later sources take
// precedence over earlier ones.
type OverlaySource []Source

var _ Source = OverlaySource(nil)

func (s OverlaySource) Environ() (map[string]string, error) {
	merged := make(map[string]string)

	for _, src := range s {
		env, err := src.Environ()
		if err != nil {
			return nil, err
		}

		maps.Copy(merged, env)
	}

	return merged, nil
}

// New returns the process environment, overlaid with the dotenv file at
// path if path is not empty.
func New(path string) Source {
	if path == "" {
		return ProcessSource{}
	}

	return OverlaySource{ProcessSource{}, &FileSource{Path: path}}
}

// Parse converts a list of "key=value" strings into a map. Entries
// without a separator are skipped.
func Parse(environ []string) map[string]string {
	env := make(map[string]string, len(environ))

	for _, kv := range environ {
		key, value, ok := strings.Cut(kv, "=")
		if !ok || key == "" {
			continue
		}

		env[key] = value
	}

	return env
}

// FilterByPrefix returns the entries of env whose key starts with prefix.
// The result is never nil.
func FilterByPrefix(env map[string]string, prefix string) map[string]string {
	filtered := make(map[string]string)

	for key, value := range env {
		if strings.HasPrefix(key, prefix) {
			filtered[key] = value
		}
	}

	return filtered
}

// Snapshot reads src and filters the result by prefix.
func Snapshot(src Source, prefix string) (map[string]string, error) {
	env, err := src.Environ()
	if err != nil {
		return nil, err
	}

	return FilterByPrefix(env, prefix), nil
}
