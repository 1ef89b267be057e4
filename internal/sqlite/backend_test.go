package sqlite

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/gentry/pkg/types"
)

func TestBackend_Attach(t *testing.T) {
	tmpDir := t.TempDir()
	b := NewBackend(testProfile(t))
	config := types.Config{Backend: types.BackendSQLite, DataDir: tmpDir}

	require.NoError(t, b.Attach(config))
	defer b.Detach()

	assert.FileExists(t, filepath.Join(tmpDir, dbFile))
	assert.FileExists(t, filepath.Join(tmpDir, entriesFile))
	assert.ErrorIs(t, b.Attach(config), types.ErrAlreadyAttached)
}

func TestBackend_AttachCreatesDataDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "data")
	b := NewBackend(testProfile(t))
	require.NoError(t, b.Attach(types.Config{Backend: types.BackendSQLite, DataDir: dir}))
	defer b.Detach()

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestBackend_AttachInvalidConfig(t *testing.T) {
	tests := []struct {
		name   string
		config types.Config
		want   error
	}{
		{"empty backend", types.Config{DataDir: t.TempDir()}, types.ErrBackendEmpty},
		{"unknown backend", types.Config{Backend: "postgres", DataDir: t.TempDir()}, types.ErrBackendUnknown},
		{"unknown sync", types.Config{Backend: types.BackendSQLite, DataDir: t.TempDir(), SyncStrategy: "batch"}, types.ErrSyncStrategyUnknown},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewBackend(testProfile(t))
			assert.ErrorIs(t, b.Attach(tt.config), tt.want)
			_, err := b.Entries()
			assert.ErrorIs(t, err, types.ErrStoreDetached)
		})
	}
}

func TestBackend_Detach(t *testing.T) {
	b := NewBackend(testProfile(t))
	require.NoError(t, b.Attach(types.Config{Backend: types.BackendSQLite, DataDir: t.TempDir()}))
	entries, err := b.Entries()
	require.NoError(t, err)

	require.NoError(t, b.Detach())
	require.NoError(t, b.Detach(), "Detach is idempotent")

	_, err = b.Entries()
	assert.ErrorIs(t, err, types.ErrStoreDetached)
	_, err = entries.Get("urn:uuid:x")
	assert.ErrorIs(t, err, types.ErrStoreDetached)
}

func TestBackend_ReattachRebuildsFromJSONL(t *testing.T) {
	dir := t.TempDir()
	b := NewBackend(testProfile(t))
	config := types.Config{Backend: types.BackendSQLite, DataDir: dir}
	require.NoError(t, b.Attach(config))
	entries, err := b.Entries()
	require.NoError(t, err)

	id, err := entries.Set("", newContact(t, b, "Ada", "ada@x.com").Entry)
	require.NoError(t, err)
	require.NoError(t, b.Detach())

	// A stale database must not matter; JSONL is the source of truth.
	require.NoError(t, os.WriteFile(filepath.Join(dir, dbFile), []byte("garbage"), 0644))

	require.NoError(t, b.Attach(config))
	defer b.Detach()
	entries, err = b.Entries()
	require.NoError(t, err)
	got, err := entries.Get(id)
	require.NoError(t, err)
	assert.Equal(t, "Ada", got.Title)
}

func TestNewEntryID(t *testing.T) {
	a, b := newEntryID(), newEntryID()
	assert.Regexp(t, `^urn:uuid:[0-9a-f]{8}-[0-9a-f]{4}-7[0-9a-f]{3}-`, a)
	assert.NotEqual(t, a, b)
	assert.Less(t, a, b, "v7 IDs sort by creation time")
}
