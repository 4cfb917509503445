// Package providers contains dependency injection providers for smartlib.
package providers

import (
	"github.com/samber/do/v2"

	"github.com/smartlib/smartlib/internal/config"
	"github.com/smartlib/smartlib/internal/logger"
)

// ProvideConfig provides the application configuration.
func ProvideConfig(i do.Injector) (*config.Config, error) {
	cl := do.MustInvoke[*CommandLine](i)
	return config.LoadConfig(cl.FlagSet, cl.Args)
}

// ProvideLogger provides the structured logger.
func ProvideLogger(i do.Injector) (*logger.Logger, error) {
	cfg := do.MustInvoke[*config.Config](i)

	log := logger.New(logger.Config{
		Level:       logger.ParseLevel(cfg.Logger.Level),
		AddSource:   cfg.App.Environment == "development" && cfg.Logger.Level == "debug",
		Environment: cfg.App.Environment,
	})

	log.Debug("Starting smartlib",
		"environment", cfg.App.Environment,
		"log_level", cfg.Logger.Level,
		"books_path", cfg.Storage.BooksPath,
		"records_path", cfg.Storage.RecordsPath,
		"strict_load", cfg.Storage.StrictLoad,
	)

	return log, nil
}
