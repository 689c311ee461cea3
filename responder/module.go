package responder

import (
	"go.uber.org/fx"

	"github.com/lambda-feedback/mirror/internal/environ"
)

// Module provides the responder and its environment source.
func Module(config Config) fx.Option {
	return fx.Module(
		"responder",

		// provide responder config
		fx.Supply(config),

		// provide environment source
		fx.Provide(func(config Config) environ.Source {
			return environ.New(config.EnvFile)
		}),

		// provide responder
		fx.Provide(NewHandler),
	)
}
