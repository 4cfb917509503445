package store

import (
	"log/slog"

	"github.com/smartlib/smartlib/internal/domain"
)

// DefaultRecordsPath is the borrow record store file used when none is configured.
const DefaultRecordsPath = "borrow.json"

// RecordStore persists the append-only lending log.
type RecordStore struct {
	*Entity[*domain.BorrowRecord]
}

// NewRecordStore creates a record store backed by path.
func NewRecordStore(path string, logger *slog.Logger) *RecordStore {
	if path == "" {
		path = DefaultRecordsPath
	}
	return &RecordStore{Entity: NewEntity[*domain.BorrowRecord](path, "borrow records", logger)}
}
