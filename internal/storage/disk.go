package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"chatwidget/pkg/logger"
)

// DiskStorage keeps every key in a single JSON document. Writes go through a
// temp file and a rename so a crash never leaves a half-written file behind.
type DiskStorage struct {
	dataDir string
	file    string
	mu      sync.RWMutex
	cache   map[string]string
	closed  bool
}

func NewDiskStorage(dataDir, file string) *DiskStorage {
	if file == "" {
		file = "preferences.json"
	}
	return &DiskStorage{
		dataDir: dataDir,
		file:    file,
		cache:   make(map[string]string),
	}
}

func (d *DiskStorage) path() string {
	return filepath.Join(d.dataDir, d.file)
}

func (d *DiskStorage) Init() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.closed = false

	if err := os.MkdirAll(d.dataDir, 0755); err != nil {
		return fmt.Errorf("%w: %v", ErrStorageInit, err)
	}

	if err := d.load(); err != nil {
		return fmt.Errorf("%w: %v", ErrStorageInit, err)
	}

	logger.Debugf("Disk storage initialized at %s", d.path())
	return nil
}

func (d *DiskStorage) load() error {
	data, err := os.ReadFile(d.path())
	if os.IsNotExist(err) {
		return d.save()
	}
	if err != nil {
		return err
	}

	values := make(map[string]string)
	if len(data) > 0 {
		if err := json.Unmarshal(data, &values); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidData, err)
		}
	}
	if values == nil {
		values = make(map[string]string)
	}

	d.cache = values
	return nil
}

func (d *DiskStorage) save() error {
	tempPath := d.path() + ".tmp"

	data, err := json.MarshalIndent(d.cache, "", "  ")
	if err != nil {
		return err
	}

	if err := os.WriteFile(tempPath, data, 0644); err != nil {
		return err
	}

	return os.Rename(tempPath, d.path())
}

func (d *DiskStorage) Get(key string) (string, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.closed {
		return "", ErrClosed
	}

	value, exists := d.cache[key]
	if !exists {
		return "", ErrKeyNotFound
	}

	return value, nil
}

func (d *DiskStorage) Set(key, value string) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed {
		return ErrClosed
	}

	previous, existed := d.cache[key]
	d.cache[key] = value

	if err := d.save(); err != nil {
		if existed {
			d.cache[key] = previous
		} else {
			delete(d.cache, key)
		}
		return fmt.Errorf("%w: %v", ErrFileOperation, err)
	}

	return nil
}

func (d *DiskStorage) Delete(key string) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed {
		return ErrClosed
	}

	previous, existed := d.cache[key]
	if !existed {
		return nil
	}
	delete(d.cache, key)

	if err := d.save(); err != nil {
		d.cache[key] = previous
		return fmt.Errorf("%w: %v", ErrFileOperation, err)
	}

	return nil
}

func (d *DiskStorage) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.closed = true
	d.cache = make(map[string]string)
	return nil
}
