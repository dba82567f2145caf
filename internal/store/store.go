// Package store persists the back-office collections as ordered sequences of
// JSON records, either durably or in process memory.
package store

import (
	"context"
	"encoding/json"
	"fmt"
)

type Collection string

const (
	Products Collection = "products"
	Orders   Collection = "orders"
	Users    Collection = "users"
)

// Collections lists every collection the back office owns.
var Collections = []Collection{Products, Orders, Users}

// Backend reads and writes whole collections. Callers serialize
// read-modify-write cycles; a backend only guarantees that a single
// WriteCollection replaces the sequence as a unit.
type Backend interface {
	ReadCollection(ctx context.Context, name Collection) ([]json.RawMessage, error)
	WriteCollection(ctx context.Context, name Collection, records []json.RawMessage) error
	Close() error
}

type Mode string

const (
	ModeFile   Mode = "file"
	ModeMemory Mode = "memory"
	ModeSQLite Mode = "sqlite"
)

type Options struct {
	Mode    Mode
	DataDir string // file mode
	DSN     string // sqlite mode
}

// Open builds the backend for opts.Mode.
func Open(opts Options) (Backend, error) {
	switch opts.Mode {
	case ModeFile:
		return NewFileBackend(opts.DataDir), nil
	case ModeMemory:
		return NewMemoryBackend(), nil
	case ModeSQLite:
		return OpenSQLite(opts.DSN)
	default:
		return nil, fmt.Errorf("unknown storage mode %q", opts.Mode)
	}
}
