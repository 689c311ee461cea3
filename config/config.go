package config

import (
	"github.com/lambda-feedback/mirror/app/lambda"
	"github.com/lambda-feedback/mirror/handler"
	"github.com/lambda-feedback/mirror/internal/server"
	"github.com/lambda-feedback/mirror/models"
	"github.com/lambda-feedback/mirror/responder"
	"github.com/lambda-feedback/mirror/util/conf"
)

// EnvPrefix is the prefix of environment variables read as config.
const EnvPrefix = "MIRROR_"

type Config struct {
	// LogLevel is the log level for the application
	LogLevel string `conf:"log_level"`

	// LogFormat is the log format for the application
	LogFormat string `conf:"log_format"`

	// Http is the config of the standalone http server
	Http server.HttpConfig `conf:"http"`

	// Handler is the config of the http handler
	Handler handler.Config `conf:"handler"`

	// Responder is the config of the echo responder
	Responder responder.Config `conf:"responder"`

	// Lambda is the config of the AWS Lambda transport
	Lambda lambda.Config `conf:"lambda"`
}

var DefaultConfig = conf.Combine(
	conf.DefaultConfig{
		"log_level":  "info",
		"log_format": "production",
	},
	conf.MergeDefaults("http", conf.DefaultConfig{
		"host": "localhost",
		"port": 0,
		"h2c":  false,
	}),
	conf.MergeDefaults("handler", conf.DefaultConfig{
		"access_log":      true,
		"max_body_bytes":  0,
		"max_concurrency": 0,
	}),
	conf.MergeDefaults("responder", conf.DefaultConfig{
		"mode":          "echo",
		"env_prefix":    "TEST_",
		"env_file":      "",
		"pretty":        true,
		"body_decoding": "ignore",
		"validate":      false,
	}),
	conf.MergeDefaults("lambda", conf.DefaultConfig{
		"proxy_source": "API_GW_V2",
	}),
)

// Resolve fills in values derived from other settings. The mode is
// normalized and a zero port is replaced by the default port of the mode.
func (c Config) Resolve() Config {
	if mode, ok := models.ParseMode(string(c.Responder.Mode)); ok {
		c.Responder.Mode = mode
	}

	if c.Http.Port == 0 {
		c.Http.Port = c.Responder.Mode.DefaultPort()
	}

	return c
}
