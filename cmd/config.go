package cmd

import (
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"github.com/lambda-feedback/mirror/config"
	"github.com/lambda-feedback/mirror/util/conf"
	"github.com/lambda-feedback/mirror/util/logging"
)

// loadConfig parses the config from defaults, config file, environment
// and cli flags, and injects it into the cli context. The logger is
// rebuilt to honour log settings from the config.
func loadConfig(ctx *cli.Context) (config.Config, error) {
	log, err := logging.LoggerFromContext(ctx.Context)
	if err != nil {
		return config.Config{}, err
	}

	cfg, err := conf.Parse[config.Config](conf.ParseOptions{
		Cli:       ctx,
		CliMap:    cliMap,
		Defaults:  config.DefaultConfig,
		EnvPrefix: config.EnvPrefix,
		FileName:  ctx.Path("config"),
		Log:       log,
	})
	if err != nil {
		return config.Config{}, err
	}

	cfg = cfg.Resolve()

	log, err = createLogger(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return config.Config{}, err
	}

	log.Debug("loaded config",
		zap.Stringer("mode", cfg.Responder.Mode),
		zap.String("host", cfg.Http.Host),
		zap.Int("port", cfg.Http.Port),
	)

	ctx.Context = logging.ContextWithLogger(ctx.Context, log)
	ctx.Context = conf.ContextWithConfig(ctx.Context, cfg)

	return cfg, nil
}
