package conf

import (
	"bytes"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/v2"
	"gopkg.in/yaml.v3"
)

// YAML parses yaml config files.
type YAML struct{}

func (YAML) Unmarshal(b []byte) (map[string]any, error) {
	var out map[string]any
	if err := yaml.Unmarshal(b, &out); err != nil {
		return nil, err
	}

	return out, nil
}

func (YAML) Marshal(o map[string]any) ([]byte, error) {
	return yaml.Marshal(o)
}

// TOML parses toml config files.
type TOML struct{}

func (TOML) Unmarshal(b []byte) (map[string]any, error) {
	var out map[string]any
	if err := toml.Unmarshal(b, &out); err != nil {
		return nil, err
	}

	return out, nil
}

func (TOML) Marshal(o map[string]any) ([]byte, error) {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(o); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// parserForFile picks the parser by file extension, defaulting to json.
func parserForFile(name string) koanf.Parser {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml", ".yml":
		return YAML{}
	case ".toml":
		return TOML{}
	default:
		return json.Parser()
	}
}
