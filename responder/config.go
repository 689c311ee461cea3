package responder

import "github.com/lambda-feedback/mirror/models"

type Config struct {
	// Mode selects the response variant
	Mode models.Mode `conf:"mode"`

	// EnvPrefix selects the environment variables exposed in env modes
	EnvPrefix string `conf:"env_prefix"`

	// EnvFile is an optional dotenv file overlaid on the process environment
	EnvFile string `conf:"env_file"`

	// Pretty enables indented JSON documents
	Pretty bool `conf:"pretty"`

	// BodyDecoding controls how invalid UTF-8 in request bodies is handled
	BodyDecoding models.Decoding `conf:"body_decoding"`

	// Validate checks every outgoing document against its schema
	Validate bool `conf:"validate"`
}
