package providers

import (
	"github.com/samber/do/v2"

	"github.com/smartlib/smartlib/internal/config"
	"github.com/smartlib/smartlib/internal/logger"
	"github.com/smartlib/smartlib/internal/service"
	"github.com/smartlib/smartlib/internal/store"
	"github.com/smartlib/smartlib/internal/validation"
)

// ProvideValidator provides the request validator.
func ProvideValidator(i do.Injector) (*validation.Validator, error) {
	return validation.New(), nil
}

// ProvideLibrarySystem provides the lending controller, loading both stores.
func ProvideLibrarySystem(i do.Injector) (*service.LibrarySystem, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)
	books := do.MustInvoke[*store.BookStore](i)
	records := do.MustInvoke[*store.RecordStore](i)

	return service.NewLibrarySystem(books, records, log.Logger, service.Options{
		StrictLoad: cfg.Storage.StrictLoad,
	})
}
