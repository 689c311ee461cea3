package cmd

import (
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"github.com/lambda-feedback/mirror/app"
	"github.com/lambda-feedback/mirror/app/standalone"
	"github.com/lambda-feedback/mirror/util/logging"
)

var (
	serveCmdDescription = `The serve command starts a http server answering every
request with a json document. The document depends on the
configured mode: echo describes the request, env, env-count
and env-simple list the environment variables starting with
the configured prefix.

The command will launch the http server and blocks until
it receives an interrupt or termination signal.`
	serveCmd = &cli.Command{
		Name:        "serve",
		Usage:       "Start the http server.",
		Description: serveCmdDescription,
		Action:      serveAction,
		Flags:       concatFlags(httpFlags, echoFlags),
	}
)

func serveAction(ctx *cli.Context) error {
	cfg, err := loadConfig(ctx)
	if err != nil {
		return err
	}

	log, err := logging.LoggerFromContext(ctx.Context)
	if err != nil {
		return err
	}

	app, err := app.New(ctx)
	if err != nil {
		return err
	}

	log.Info("starting http server",
		zap.Stringer("mode", cfg.Responder.Mode),
		zap.Int("port", cfg.Http.Port),
	)

	return app.Run(ctx.Context, standalone.Module(standalone.Config{
		HttpConfig: cfg.Http,
	}))
}

func init() {
	rootApp.Commands = append(rootApp.Commands, serveCmd)
}
