package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/passgate/internal/config"
	"github.com/MKhiriev/passgate/internal/logger"
)

// Storages groups the two key/value stores passgate needs.
type Storages struct {
	// Durable survives restarts and holds every encrypted secure entry.
	Durable KeyValueStore

	// Volatile lives only as long as the process (tab-scoped in spirit) and
	// holds session-bound scratch values cleared on logout.
	Volatile KeyValueStore
}

// NewStorages opens the durable backend selected by cfg.Backend and creates
// a fresh volatile memory store. For SQLite, pending migrations run before
// the store is returned.
func NewStorages(ctx context.Context, cfg config.Storage, log *logger.Logger) (*Storages, error) {
	log.Info().Str("func", "NewStorages").Str("backend", cfg.Backend).Msg("creating storages...")

	durable, err := newDurable(ctx, cfg, log)
	if err != nil {
		return nil, err
	}

	return &Storages{
		Durable:  durable,
		Volatile: NewMemoryStore(0),
	}, nil
}

func newDurable(ctx context.Context, cfg config.Storage, log *logger.Logger) (KeyValueStore, error) {
	switch cfg.Backend {
	case config.BackendMemory, "":
		return NewMemoryStore(cfg.QuotaBytes), nil

	case config.BackendFile:
		return NewFileStore(cfg.Path, cfg.QuotaBytes)

	case config.BackendSQLite:
		db, err := NewConnectSQLite(ctx, cfg.Path, log)
		if err != nil {
			return nil, fmt.Errorf("sqlite connection error: %w", err)
		}
		if err = db.Migrate(); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("migration failed: %w", err)
		}
		return NewSQLiteStore(db, log), nil

	case config.BackendRedis:
		client, err := NewConnectRedis(ctx, cfg.RedisAddress, cfg.RedisPassword, cfg.RedisDB, log)
		if err != nil {
			return nil, fmt.Errorf("redis connection error: %w", err)
		}
		return NewRedisStore(client, cfg.RedisNamespace, log), nil
	}

	return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, cfg.Backend)
}

// Close closes both stores, returning the first error.
func (s *Storages) Close() error {
	errV := s.Volatile.Close()
	if err := s.Durable.Close(); err != nil {
		return err
	}
	return errV
}
