package store

import (
	"bytes"
	"context"
	"encoding/json"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

// FileBackend keeps each collection in <dir>/<name>.json as a pretty-printed array.
type FileBackend struct {
	dir string
}

func NewFileBackend(dir string) *FileBackend {
	if dir == "" {
		dir = "."
	}
	return &FileBackend{dir: dir}
}

func (b *FileBackend) path(name Collection) string {
	return filepath.Join(b.dir, string(name)+".json")
}

func (b *FileBackend) ReadCollection(_ context.Context, name Collection) ([]json.RawMessage, error) {
	raw, err := os.ReadFile(b.path(name))
	if errors.Is(err, fs.ErrNotExist) {
		return []json.RawMessage{}, nil
	}
	if err != nil {
		return nil, errors.Wrapf(err, "read %s", name)
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return []json.RawMessage{}, nil
	}
	var out []json.RawMessage
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, errors.Wrapf(err, "decode %s", name)
	}
	if out == nil {
		out = []json.RawMessage{}
	}
	return out, nil
}

// WriteCollection rewrites the whole file through a temp file and rename so a
// crash mid-write leaves the previous version intact.
func (b *FileBackend) WriteCollection(_ context.Context, name Collection, records []json.RawMessage) error {
	if records == nil {
		records = []json.RawMessage{}
	}
	body, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return errors.Wrapf(err, "encode %s", name)
	}
	if err := os.MkdirAll(b.dir, 0o755); err != nil {
		return errors.Wrapf(err, "create data dir %s", b.dir)
	}

	tmp, err := os.CreateTemp(b.dir, string(name)+".*.tmp")
	if err != nil {
		return errors.Wrapf(err, "create temp for %s", name)
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()

	if _, err := tmp.Write(append(body, '\n')); err != nil {
		_ = tmp.Close()
		return errors.Wrapf(err, "write %s", name)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return errors.Wrapf(err, "sync %s", name)
	}
	if err := tmp.Close(); err != nil {
		return errors.Wrapf(err, "close %s", name)
	}
	if err := os.Rename(tmpName, b.path(name)); err != nil {
		return errors.Wrapf(err, "replace %s", name)
	}
	return nil
}

func (b *FileBackend) Close() error { return nil }
