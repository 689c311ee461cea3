package app

import (
	"github.com/urfave/cli/v2"
	"go.uber.org/fx"

	"github.com/lambda-feedback/mirror/config"
	"github.com/lambda-feedback/mirror/internal/shell"
	"github.com/lambda-feedback/mirror/responder"
	"github.com/lambda-feedback/mirror/util/conf"
	"github.com/lambda-feedback/mirror/util/logging"
)

func New(ctx *cli.Context) (*shell.Shell, error) {
	log, err := logging.LoggerFromContext(ctx.Context)
	if err != nil {
		return nil, err
	}

	config, err := conf.GetConfigFromContext[config.Config](ctx.Context)
	if err != nil {
		return nil, err
	}

	sharedModule := fx.Module(
		"shared",
		// provide global config
		fx.Supply(config),
		// provide handler config
		fx.Supply(config.Handler),
		// provide responder and environment source
		responder.Module(config.Responder),
	)

	return shell.New(log, sharedModule), nil
}
