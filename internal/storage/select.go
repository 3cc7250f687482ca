package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/julianstephens/momentum/internal/keyring"
	"github.com/julianstephens/momentum/internal/logger"
	"github.com/julianstephens/momentum/internal/storage/postgres"
	"github.com/julianstephens/momentum/internal/storage/sqlite"
)

// KeyringLocation selects the PostgreSQL connection stored in the OS keyring
const KeyringLocation = "keyring"

// Options controls which adapter Select returns
type Options struct {
	// Location is a file path, a PostgreSQL URL/DSN or "keyring"
	Location string
	// Disabled turns persistence off entirely
	Disabled bool
	// Ephemeral keeps state in memory for the lifetime of the process
	Ephemeral bool
}

// Selection is the adapter chosen at startup. Backend is nil when
// persistence is disabled or the durable store could not be opened.
type Selection struct {
	Adapter Adapter
	Backend Backend
}

// Close releases the backend, if any
func (s Selection) Close() error {
	if s.Backend == nil {
		return nil
	}
	return s.Backend.Close()
}

// Durable reports whether writes reach a durable store
func (s Selection) Durable() bool {
	if s.Backend == nil {
		return false
	}
	_, mem := s.Backend.(*MemoryBackend)
	return !mem
}

// NewBackend builds the backend for location without opening it
func NewBackend(location string) (Backend, error) {
	switch {
	case location == KeyringLocation:
		connStr, err := keyring.ResolveConnectionString()
		if err != nil {
			return nil, fmt.Errorf("failed to resolve connection string: %w", err)
		}
		return postgres.New(connStr), nil
	case postgres.IsConnString(location) || strings.Contains(location, "host="):
		if err := postgres.ValidateConnString(location); err != nil {
			return nil, err
		}
		return postgres.New(location), nil
	case strings.EqualFold(filepath.Ext(location), ".json"):
		return NewJSONStore(ExpandHome(location)), nil
	default:
		return sqlite.NewStore(ExpandHome(location)), nil
	}
}

// Select opens the configured store. Configuration mistakes are returned;
// an unreachable store is logged and replaced with the no-op adapter.
func Select(opts Options) (Selection, error) {
	if opts.Disabled {
		logger.Info("Persistence disabled")
		return Selection{Adapter: NoopAdapter{}}, nil
	}
	if opts.Ephemeral {
		mem := NewMemoryBackend()
		return Selection{Adapter: NewKV(mem), Backend: mem}, nil
	}

	backend, err := NewBackend(opts.Location)
	if err != nil {
		if errors.Is(err, postgres.ErrEmbeddedCredentials) || errors.Is(err, postgres.ErrInvalidConnectionString) {
			return Selection{}, err
		}
		logger.Warn("Persistence unavailable, continuing without it", "error", err)
		return Selection{Adapter: NoopAdapter{}}, nil
	}

	if err := backend.Open(); err != nil {
		logger.Warn("Persistence unavailable, continuing without it", "store", backend.Location(), "error", err)
		return Selection{Adapter: NoopAdapter{}}, nil
	}
	logger.Debug("Opened store", "store", backend.Location())
	return Selection{Adapter: NewKV(backend), Backend: backend}, nil
}

// ExpandHome replaces a leading ~ with the user's home directory
func ExpandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}
