package storage

import (
	"path/filepath"

	"chatwidget/internal/config"
	"chatwidget/pkg/logger"
)

// Open builds the configured store. A store that fails to initialise is
// replaced by an in-memory one so the widget keeps working for the session.
func Open(cfg config.StorageConfig) Store {
	var store Store

	switch cfg.Type {
	case "disk":
		store = NewDiskStorage(cfg.DataDir, cfg.File)
	case "sqlite":
		store = NewSQLiteStorage(filepath.Join(cfg.DataDir, "preferences.db"))
	case "redis":
		store = NewRedisStorage(cfg.RedisAddr, cfg.RedisDB, cfg.RedisHash)
	default:
		store = NewMemoryStorage()
	}

	if err := store.Init(); err != nil {
		logger.Errorf("Failed to initialize %s storage: %v", cfg.Type, err)
		store = NewMemoryStorage()
		store.Init()
	}

	return store
}
