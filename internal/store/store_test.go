package store_test

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"backoffice/internal/store"
)

func records(t *testing.T, vs ...any) []json.RawMessage {
	t.Helper()
	out := make([]json.RawMessage, 0, len(vs))
	for _, v := range vs {
		b, err := json.Marshal(v)
		require.NoError(t, err)
		out = append(out, b)
	}
	return out
}

func backends(t *testing.T) map[string]store.Backend {
	t.Helper()
	sqlite, err := store.OpenSQLite(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlite.Close() })

	return map[string]store.Backend{
		"file":   store.NewFileBackend(filepath.Join(t.TempDir(), "nested", "data")),
		"memory": store.NewMemoryBackend(),
		"sqlite": sqlite,
	}
}

func TestBackends_MissingCollectionIsEmpty(t *testing.T) {
	for name, b := range backends(t) {
		t.Run(name, func(t *testing.T) {
			got, err := b.ReadCollection(context.Background(), store.Products)
			require.NoError(t, err)
			assert.NotNil(t, got)
			assert.Empty(t, got)
		})
	}
}

func TestBackends_WriteReplacesWholeSequence(t *testing.T) {
	ctx := context.Background()
	for name, b := range backends(t) {
		t.Run(name, func(t *testing.T) {
			first := records(t, map[string]any{"id": 1}, map[string]any{"id": 2})
			require.NoError(t, b.WriteCollection(ctx, store.Orders, first))

			second := records(t, map[string]any{"id": 3})
			require.NoError(t, b.WriteCollection(ctx, store.Orders, second))

			got, err := b.ReadCollection(ctx, store.Orders)
			require.NoError(t, err)
			require.Len(t, got, 1)
			assert.JSONEq(t, `{"id":3}`, string(got[0]))

			others, err := b.ReadCollection(ctx, store.Users)
			require.NoError(t, err)
			assert.Empty(t, others)
		})
	}
}

func TestFileBackend_PrettyPrintedAndNoTempLeftovers(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "data")
	b := store.NewFileBackend(dir)

	require.NoError(t, b.WriteCollection(context.Background(), store.Users, records(t, map[string]any{"id": 1, "name": "Ada"})))

	raw, err := os.ReadFile(filepath.Join(dir, "users.json"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(raw), "[\n  {"), "expected indented array, got %q", raw)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "users.json", entries[0].Name())
}

func TestFileBackend_EmptyFileReadsAsEmpty(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "products.json"), []byte("  \n"), 0o644))

	got, err := store.NewFileBackend(dir).ReadCollection(context.Background(), store.Products)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestFileBackend_CorruptFileIsAnError(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "orders.json"), []byte("[{"), 0o644))

	_, err := store.NewFileBackend(dir).ReadCollection(context.Background(), store.Orders)
	assert.Error(t, err)
}

func TestMemoryBackend_DoesNotAliasCallerBuffers(t *testing.T) {
	ctx := context.Background()
	b := store.NewMemoryBackend()
	in := []json.RawMessage{json.RawMessage(`{"id":1}`)}
	require.NoError(t, b.WriteCollection(ctx, store.Products, in))

	in[0][6] = '9'

	got, err := b.ReadCollection(ctx, store.Products)
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":1}`, string(got[0]))

	got[0][6] = '7'
	again, err := b.ReadCollection(ctx, store.Products)
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":1}`, string(again[0]))
}

func TestOpen_SelectsVariantByMode(t *testing.T) {
	b, err := store.Open(store.Options{Mode: store.ModeMemory})
	require.NoError(t, err)
	assert.IsType(t, &store.MemoryBackend{}, b)

	b, err = store.Open(store.Options{Mode: store.ModeFile, DataDir: t.TempDir()})
	require.NoError(t, err)
	assert.IsType(t, &store.FileBackend{}, b)

	_, err = store.Open(store.Options{Mode: "s3"})
	assert.Error(t, err)
}
