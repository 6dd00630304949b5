package storage

import (
	"context"
	"fmt"
	"strings"

	"github.com/alejandrodnm/soloqbet/internal/ports"
)

// Supported drivers.
const (
	DriverSQLite   = "sqlite"
	DriverFile     = "file"
	DriverPostgres = "postgres"
	DriverRedis    = "redis"
	DriverMemory   = "memory"
)

// Options selects and configures a document store.
type Options struct {
	Driver    string
	DSN       string // sqlite path, directory, postgres URL or redis URL
	KeyPrefix string // redis only
}

// Open builds the document store for opts.Driver.
func Open(ctx context.Context, opts Options) (ports.DocumentStore, error) {
	switch strings.ToLower(opts.Driver) {
	case "", DriverSQLite:
		return NewSQLiteStore(opts.DSN)
	case DriverFile:
		return NewFileStore(opts.DSN)
	case DriverPostgres:
		return NewPostgresStore(ctx, opts.DSN)
	case DriverRedis:
		return NewRedisStore(ctx, opts.DSN, opts.KeyPrefix)
	case DriverMemory:
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("storage.Open: unknown driver %q", opts.Driver)
	}
}
