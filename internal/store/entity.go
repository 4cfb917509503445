package store

import (
	stderrors "errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	jsoniter "github.com/json-iterator/go"

	"github.com/smartlib/smartlib/internal/errors"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const (
	// snapshotIndent matches the four-space indentation of existing store files.
	snapshotIndent = "    "

	// corruptSuffix names the copy kept of a store file that failed to load.
	corruptSuffix = ".corrupt"

	fileMode = 0o644
)

// Entity persists a whole collection of T as one JSON array in one file.
// Every Save rewrites the entire file; there are no deltas.
type Entity[T any] struct {
	path   string
	name   string
	logger *slog.Logger
}

// NewEntity creates an Entity backed by the file at path.
// name is used in log lines and error messages ("books", "borrow records").
func NewEntity[T any](path, name string, logger *slog.Logger) *Entity[T] {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Entity[T]{
		path:   path,
		name:   name,
		logger: logger,
	}
}

// Path returns the backing file path.
func (e *Entity[T]) Path() string {
	return e.path
}

// Load reads the whole collection.
// A missing file is an empty collection and not an error. Any other read
// or parse failure returns a STORE_LOAD error and no items.
func (e *Entity[T]) Load() ([]T, error) {
	data, err := os.ReadFile(e.path)
	if err != nil {
		if stderrors.Is(err, fs.ErrNotExist) {
			e.logger.Debug("store file missing, starting empty", "store", e.name, "path", e.path)
			return nil, nil
		}
		return nil, errors.Wrapf(err, errors.CodeStoreLoad, "read %s store %s", e.name, e.path)
	}

	var items []T
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, errors.Wrapf(err, errors.CodeStoreLoad, "parse %s store %s", e.name, e.path)
	}

	e.logger.Debug("store loaded", "store", e.name, "path", e.path, "count", len(items))
	return items, nil
}

// Save overwrites the file with the full collection.
// The snapshot is written to a temporary file in the same directory and
// renamed over the target, so a crash mid-write leaves the previous file intact.
func (e *Entity[T]) Save(items []T) error {
	if items == nil {
		items = []T{}
	}

	data, err := json.MarshalIndent(items, "", snapshotIndent)
	if err != nil {
		return errors.Wrapf(err, errors.CodeStoreSave, "encode %s store", e.name)
	}

	if err := writeFileAtomic(e.path, data); err != nil {
		return errors.Wrapf(err, errors.CodeStoreSave, "write %s store %s", e.name, e.path)
	}

	e.logger.Debug("store saved", "store", e.name, "path", e.path, "count", len(items))
	return nil
}

// Quarantine copies the current file to <path>.corrupt so that a later Save
// cannot destroy data that failed to load. It returns the copy's path.
func (e *Entity[T]) Quarantine() (string, error) {
	data, err := os.ReadFile(e.path)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", e.path, err)
	}

	target := e.path + corruptSuffix
	if err := writeFileAtomic(target, data); err != nil {
		return "", fmt.Errorf("write %s: %w", target, err)
	}
	return target, nil
}

func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()

	// Remove the temp file on any failure below; after a successful
	// rename this is a no-op.
	defer os.Remove(tmpPath) //nolint:errcheck // best-effort cleanup

	if _, err := tmp.Write(data); err != nil {
		tmp.Close() //nolint:errcheck // already failing
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close() //nolint:errcheck // already failing
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmpPath, fileMode); err != nil {
		return err
	}

	return os.Rename(tmpPath, path)
}
