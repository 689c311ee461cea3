package cmd

import (
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"github.com/lambda-feedback/mirror/app"
	"github.com/lambda-feedback/mirror/app/lambda"
	"github.com/lambda-feedback/mirror/util/logging"
)

var (
	lambdaCmdDescription = `The lambda command starts mirror as an AWS Lambda runtime
interface client, which allows it to be directly invoked by
the AWS Lambda runtime. Events are translated into http
requests and answered exactly like the serve command would.

The command will start the AWS runtime interface client and
blocks indefinitely, processing incoming AWS Lambda events.`
	lambdaCmd = &cli.Command{
		Name:        "lambda",
		Usage:       "Run the AWS Lambda handler",
		Description: lambdaCmdDescription,
		Action:      lambdaAction,
		Flags:       concatFlags(echoFlags, lambdaFlags),
	}
)

func lambdaAction(ctx *cli.Context) error {
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

	log.Info("starting AWS Lambda handler",
		zap.Stringer("mode", cfg.Responder.Mode),
		zap.Stringer("proxy_source", cfg.Lambda.ProxySource),
	)

	return app.Run(ctx.Context, lambda.Module(cfg.Lambda))
}

func init() {
	rootApp.Commands = append(rootApp.Commands, lambdaCmd)
}
