package kvstore

import (
	"fmt"

	"cashflow/internal/log"
)

// BackendType selects the persistence backend.
type BackendType string

const (
	SQLiteBackend BackendType = "sqlite"
	FileBackend   BackendType = "file"
	MemoryBackend BackendType = "memory"
)

func (bt BackendType) String() string {
	return string(bt)
}

// IsValid returns true if the backend type is valid
func (bt BackendType) IsValid() bool {
	switch bt {
	case SQLiteBackend, FileBackend, MemoryBackend:
		return true
	default:
		return false
	}
}

// BackendTypes returns all valid backend types.
func BackendTypes() []BackendType {
	return []BackendType{SQLiteBackend, FileBackend, MemoryBackend}
}

// Options holds backend-specific settings for Open.
type Options struct {
	Type BackendType

	// SQLite specific
	DBPath string

	// File specific
	DataDirectory string
}

// Open creates the configured backend and wraps it in the JSON adapter.
func Open(opts Options, logger *log.Logger) (*Adapter, error) {
	if !opts.Type.IsValid() {
		return nil, fmt.Errorf("invalid backend type: %s", opts.Type)
	}
	if logger == nil {
		logger = log.New(log.DefaultConfig())
	}

	var (
		store Store
		err   error
	)
	switch opts.Type {
	case SQLiteBackend:
		store, err = NewSQLiteStore(opts.DBPath)
		if err != nil {
			return nil, fmt.Errorf("initialize sqlite backend: %w", err)
		}
		logger.Info("Initialized SQLite backend", log.FieldBackend, opts.Type, "db_path", opts.DBPath)
	case FileBackend:
		dir := opts.DataDirectory
		if dir == "" {
			dir = "data"
		}
		store, err = NewFileStore(dir)
		if err != nil {
			return nil, fmt.Errorf("initialize file backend: %w", err)
		}
		logger.Info("Initialized file backend", log.FieldBackend, opts.Type, "data_directory", dir)
	case MemoryBackend:
		store = NewMemoryStore()
		logger.Info("Initialized memory backend", log.FieldBackend, opts.Type)
	}

	return NewAdapter(store, logger), nil
}
