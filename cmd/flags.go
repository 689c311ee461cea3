package cmd

import "github.com/urfave/cli/v2"

// cliMap maps flag names to config keys.
var cliMap = map[string]string{
	"log-level":           "log_level",
	"log-format":          "log_format",
	"config":              "config_file",
	"host":                "http.host",
	"port":                "http.port",
	"h2c":                 "http.h2c",
	"access-log":          "handler.access_log",
	"max-body-bytes":      "handler.max_body_bytes",
	"max-concurrency":     "handler.max_concurrency",
	"mode":                "responder.mode",
	"env-prefix":          "responder.env_prefix",
	"env-file":            "responder.env_file",
	"pretty":              "responder.pretty",
	"body-decoding":       "responder.body_decoding",
	"validate":            "responder.validate",
	"lambda-proxy-source": "lambda.proxy_source",
}

var httpFlags = []cli.Flag{
	&cli.StringFlag{
		Name:     "host",
		Aliases:  []string{"H"},
		Usage:    "The host to listen on. (default: localhost)",
		Category: "http",
	},
	&cli.IntFlag{
		Name:     "port",
		Aliases:  []string{"P"},
		Usage:    "The port to listen on. Defaults to the port of the mode: echo 8888, env 8889, env-count and env-simple 8890, simple 18080.",
		Category: "http",
	},
	&cli.BoolFlag{
		Name:     "h2c",
		Usage:    "Enable HTTP/2 cleartext upgrade.",
		Category: "http",
	},
}

var echoFlags = []cli.Flag{
	&cli.StringFlag{
		Name:     "mode",
		Aliases:  []string{"m"},
		Usage:    "The response variant. Options: echo, env, env-count, env-simple, simple. (default: echo)",
		Category: "echo",
	},
	&cli.StringFlag{
		Name:     "env-prefix",
		Usage:    "Expose environment variables starting with this prefix. (default: TEST_)",
		Category: "echo",
	},
	&cli.PathFlag{
		Name:     "env-file",
		Usage:    "A dotenv file overlaid on the process environment, read on every request.",
		Category: "echo",
	},
	&cli.BoolFlag{
		Name:     "pretty",
		Usage:    "Indent json responses. (default: true)",
		Category: "echo",
	},
	&cli.StringFlag{
		Name:     "body-decoding",
		Usage:    "Handling of invalid utf-8 in request bodies. Options: ignore, replace. (default: ignore)",
		Category: "echo",
	},
	&cli.BoolFlag{
		Name:     "validate",
		Usage:    "Validate every response against its json schema and log violations.",
		Category: "echo",
	},
	&cli.BoolFlag{
		Name:     "access-log",
		Usage:    "Log one line per request. (default: true)",
		Category: "echo",
	},
	&cli.Int64Flag{
		Name:     "max-body-bytes",
		Usage:    "Reject request bodies larger than this. 0 disables the limit.",
		Category: "echo",
	},
	&cli.IntFlag{
		Name:     "max-concurrency",
		Usage:    "Handle at most this many requests at once, 1 handles requests sequentially. 0 disables the limit.",
		Category: "echo",
	},
}

var lambdaFlags = []cli.Flag{
	&cli.StringFlag{
		Name:     "lambda-proxy-source",
		Usage:    "the source of the AWS Lambda event. Options: API_GW_V1, API_GW_V2, ALB. (default: API_GW_V2)",
		Category: "lambda",
	},
}

func concatFlags(groups ...[]cli.Flag) []cli.Flag {
	var flags []cli.Flag
	for _, group := range groups {
		flags = append(flags, group...)
	}
	return flags
}
