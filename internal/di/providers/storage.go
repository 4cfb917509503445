package providers

import (
	"github.com/samber/do/v2"

	"github.com/smartlib/smartlib/internal/config"
	"github.com/smartlib/smartlib/internal/logger"
	"github.com/smartlib/smartlib/internal/store"
)

// ProvideBookStore provides the book inventory file store.
func ProvideBookStore(i do.Injector) (*store.BookStore, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	return store.NewBookStore(cfg.Storage.BooksPath, log.Logger), nil
}

// ProvideRecordStore provides the borrow record file store.
func ProvideRecordStore(i do.Injector) (*store.RecordStore, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	return store.NewRecordStore(cfg.Storage.RecordsPath, log.Logger), nil
}
