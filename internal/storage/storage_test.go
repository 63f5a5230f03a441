package storage

import (
	"os"
	"path/filepath"
	"testing"

	"chatwidget/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func backends(t *testing.T) map[string]Store {
	dir := t.TempDir()
	stores := map[string]Store{
		"memory": NewMemoryStorage(),
		"disk":   NewDiskStorage(filepath.Join(dir, "disk"), ""),
		"sqlite": NewSQLiteStorage(filepath.Join(dir, "sqlite", "preferences.db")),
	}
	if addr := os.Getenv("CHATWIDGET_TEST_REDIS_ADDR"); addr != "" {
		stores["redis"] = NewRedisStorage(addr, 15, "chatwidget:test:"+t.Name())
	}
	return stores
}

func TestStore_Contract(t *testing.T) {
	for name, store := range backends(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, store.Init())
			t.Cleanup(func() { _ = store.Close() })

			_, err := store.Get("theme")
			assert.ErrorIs(t, err, ErrKeyNotFound)

			require.NoError(t, store.Set("theme", "dark"))
			value, err := store.Get("theme")
			require.NoError(t, err)
			assert.Equal(t, "dark", value)

			require.NoError(t, store.Set("theme", "light"))
			value, err = store.Get("theme")
			require.NoError(t, err)
			assert.Equal(t, "light", value)

			require.NoError(t, store.Delete("theme"))
			_, err = store.Get("theme")
			assert.ErrorIs(t, err, ErrKeyNotFound)

			assert.NoError(t, store.Delete("missing"))
		})
	}
}

func TestDiskStorage_PersistsAcrossInstances(t *testing.T) {
	dir := t.TempDir()

	first := NewDiskStorage(dir, "prefs.json")
	require.NoError(t, first.Init())
	require.NoError(t, first.Set("theme", "dark"))

	second := NewDiskStorage(dir, "prefs.json")
	require.NoError(t, second.Init())
	value, err := second.Get("theme")
	require.NoError(t, err)
	assert.Equal(t, "dark", value)

	_, err = os.Stat(filepath.Join(dir, "prefs.json.tmp"))
	assert.True(t, os.IsNotExist(err), "temp file is renamed away")
}

func TestDiskStorage_CorruptFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "preferences.json"), []byte("{not json"), 0o644))

	err := NewDiskStorage(dir, "").Init()
	assert.ErrorIs(t, err, ErrStorageInit)
	assert.ErrorContains(t, err, ErrInvalidData.Error())
}

func TestDiskStorage_NullFileStartsEmpty(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "preferences.json"), []byte("null"), 0o644))

	store := NewDiskStorage(dir, "")
	require.NoError(t, store.Init())

	_, err := store.Get("theme")
	assert.ErrorIs(t, err, ErrKeyNotFound)
	require.NoError(t, store.Set("theme", "dark"))

	value, err := store.Get("theme")
	require.NoError(t, err)
	assert.Equal(t, "dark", value)
}

func TestDiskStorage_WritesAfterCloseAreRejected(t *testing.T) {
	dir := t.TempDir()

	store := NewDiskStorage(dir, "")
	require.NoError(t, store.Init())
	require.NoError(t, store.Set("theme", "dark"))
	require.NoError(t, store.Set("other", "kept"))
	require.NoError(t, store.Close())

	assert.ErrorIs(t, store.Set("theme", "light"), ErrClosed)
	assert.ErrorIs(t, store.Delete("other"), ErrClosed)
	_, err := store.Get("theme")
	assert.ErrorIs(t, err, ErrClosed)

	reopened := NewDiskStorage(dir, "")
	require.NoError(t, reopened.Init())
	value, err := reopened.Get("other")
	require.NoError(t, err)
	assert.Equal(t, "kept", value)
	value, err = reopened.Get("theme")
	require.NoError(t, err)
	assert.Equal(t, "dark", value)
}

func TestSQLiteStorage_PersistsAcrossInstances(t *testing.T) {
	path := filepath.Join(t.TempDir(), "preferences.db")

	first := NewSQLiteStorage(path)
	require.NoError(t, first.Init())
	require.NoError(t, first.Set("theme", "light"))
	require.NoError(t, first.Close())

	second := NewSQLiteStorage(path)
	require.NoError(t, second.Init())
	defer second.Close()

	value, err := second.Get("theme")
	require.NoError(t, err)
	assert.Equal(t, "light", value)
}

func TestOpen(t *testing.T) {
	dir := t.TempDir()

	t.Run("disk", func(t *testing.T) {
		store := Open(config.StorageConfig{Type: "disk", DataDir: dir})
		assert.IsType(t, &DiskStorage{}, store)
	})

	t.Run("sqlite", func(t *testing.T) {
		store := Open(config.StorageConfig{Type: "sqlite", DataDir: dir})
		defer store.Close()
		assert.IsType(t, &SQLiteStorage{}, store)
		_, err := os.Stat(filepath.Join(dir, "preferences.db"))
		assert.NoError(t, err)
	})

	t.Run("unknown type", func(t *testing.T) {
		assert.IsType(t, &MemoryStorage{}, Open(config.StorageConfig{Type: "cassette"}))
	})

	t.Run("falls back to memory", func(t *testing.T) {
		blocker := filepath.Join(dir, "blocker")
		require.NoError(t, os.WriteFile(blocker, nil, 0o644))

		store := Open(config.StorageConfig{Type: "disk", DataDir: filepath.Join(blocker, "sub")})
		assert.IsType(t, &MemoryStorage{}, store)
		assert.NoError(t, store.Set("theme", "dark"))
	})

	t.Run("unreachable redis", func(t *testing.T) {
		store := Open(config.StorageConfig{Type: "redis", RedisAddr: "127.0.0.1:1"})
		assert.IsType(t, &MemoryStorage{}, store)
	})
}
