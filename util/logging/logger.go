package logging

import "go.uber.org/zap"

const (
	FormatProduction  = "production"
	FormatDevelopment = "development"
)

type Options struct {
	// Level is the minimum enabled level, defaults to info
	Level string

	// Format is either production (json) or development (console),
	// defaults to production
	Format string

	// Fields are added to every entry
	Fields map[string]any
}

// New builds a logger writing to stderr.
func New(opt Options) (*zap.Logger, error) {
	var config zap.Config
	if opt.Format == FormatDevelopment {
		config = zap.NewDevelopmentConfig()
	} else {
		config = zap.NewProductionConfig()
	}

	config.InitialFields = opt.Fields
	config.Level = parseLevel(opt.Level)

	return config.Build()
}

func parseLevel(lvl string) zap.AtomicLevel {
	if atom, err := zap.ParseAtomicLevel(lvl); err == nil && lvl != "" {
		return atom
	}

	return zap.NewAtomicLevelAt(zap.InfoLevel)
}
