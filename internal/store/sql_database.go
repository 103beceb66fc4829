package store

import (
	"database/sql"

	"github.com/MKhiriev/passgate/internal/logger"
	"github.com/MKhiriev/passgate/migrations"
)

// DB wraps a *sql.DB opened by [NewConnectSQLite].
type DB struct {
	*sql.DB
	logger *logger.Logger
}

// Migrate applies pending schema migrations.
func (db *DB) Migrate() error {
	return migrations.Migrate(db.DB)
}
