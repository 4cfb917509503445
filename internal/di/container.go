// Package di provides dependency injection configuration for smartlib.
package di

import (
	"flag"

	"github.com/samber/do/v2"

	"github.com/smartlib/smartlib/internal/config"
	"github.com/smartlib/smartlib/internal/di/providers"
	"github.com/smartlib/smartlib/internal/logger"
	"github.com/smartlib/smartlib/internal/service"
	"github.com/smartlib/smartlib/internal/validation"
)

// NewContainer creates and configures the DI container with all providers.
// Global flags are parsed from args into fs when the config is first invoked.
func NewContainer(fs *flag.FlagSet, args []string) *do.RootScope {
	injector := do.New()

	do.ProvideValue(injector, &providers.CommandLine{FlagSet: fs, Args: args})

	// Core infrastructure
	do.Provide(injector, providers.ProvideConfig)
	do.Provide(injector, providers.ProvideLogger)

	// Storage layer
	do.Provide(injector, providers.ProvideBookStore)
	do.Provide(injector, providers.ProvideRecordStore)

	// Business services
	do.Provide(injector, providers.ProvideValidator)
	do.Provide(injector, providers.ProvideLibrarySystem)

	return injector
}

// App is the set of services a front end needs.
type App struct {
	Config    *config.Config
	Logger    *logger.Logger
	Library   *service.LibrarySystem
	Validator *validation.Validator
}

// Bootstrap initializes all services. Errors from config parsing or a
// strict store load are returned rather than panicking.
func Bootstrap(injector *do.RootScope) (*App, error) {
	cfg, err := do.Invoke[*config.Config](injector)
	if err != nil {
		return nil, err
	}
	log, err := do.Invoke[*logger.Logger](injector)
	if err != nil {
		return nil, err
	}
	lib, err := do.Invoke[*service.LibrarySystem](injector)
	if err != nil {
		return nil, err
	}
	v, err := do.Invoke[*validation.Validator](injector)
	if err != nil {
		return nil, err
	}

	return &App{
		Config:    cfg,
		Logger:    log,
		Library:   lib,
		Validator: v,
	}, nil
}
