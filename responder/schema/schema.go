package schema

import (
	_ "embed"
	"encoding/json"
	"errors"

	"github.com/xeipuuv/gojsonschema"
)

type SchemaType int

const (
	SchemaTypeEchoGet SchemaType = iota
	SchemaTypeEchoPost
	SchemaTypeEchoPut
	SchemaTypeEnv
	SchemaTypeEnvCount
	SchemaTypeEnvSimple
)

var ErrSchemaNotFound = errors.New("schema not found")

func (t SchemaType) String() string {
	switch t {
	case SchemaTypeEchoGet:
		return "echo-get"
	case SchemaTypeEchoPost:
		return "echo-post"
	case SchemaTypeEchoPut:
		return "echo-put"
	case SchemaTypeEnv:
		return "env"
	case SchemaTypeEnvCount:
		return "env-count"
	case SchemaTypeEnvSimple:
		return "env-simple"
	default:
		return "unknown"
	}
}

type Schema struct {
	schemas map[SchemaType]*gojsonschema.Schema
}

func (s *Schema) Get(schemaType SchemaType) (*gojsonschema.Schema, error) {
	schema, ok := s.schemas[schemaType]
	if !ok {
		return nil, ErrSchemaNotFound
	}

	return schema, nil
}

// Validate validates the raw JSON document against the schema of the
// given type.
func (s *Schema) Validate(schemaType SchemaType, data []byte) (*gojsonschema.Result, error) {
	schema, err := s.Get(schemaType)
	if err != nil {
		return nil, err
	}

	return schema.Validate(gojsonschema.NewBytesLoader(data))
}

//go:embed echo-get.json
var echoGet json.RawMessage

//go:embed echo-post.json
var echoPost json.RawMessage

//go:embed echo-put.json
var echoPut json.RawMessage

//go:embed env.json
var env json.RawMessage

//go:embed env-count.json
var envCount json.RawMessage

//go:embed env-simple.json
var envSimple json.RawMessage

var sources = map[SchemaType]json.RawMessage{
	SchemaTypeEchoGet:   echoGet,
	SchemaTypeEchoPost:  echoPost,
	SchemaTypeEchoPut:   echoPut,
	SchemaTypeEnv:       env,
	SchemaTypeEnvCount:  envCount,
	SchemaTypeEnvSimple: envSimple,
}

// NewResponseSchema compiles the schemas of all response documents.
func NewResponseSchema() (*Schema, error) {
	schemas := make(map[SchemaType]*gojsonschema.Schema, len(sources))

	for schemaType, source := range sources {
		schema, err := gojsonschema.NewSchema(gojsonschema.NewBytesLoader(source))
		if err != nil {
			return nil, err
		}

		schemas[schemaType] = schema
	}

	return &Schema{schemas: schemas}, nil
}
