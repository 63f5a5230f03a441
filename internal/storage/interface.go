package storage

// Store persists small client-side preferences such as the theme.
type Store interface {
	Get(key string) (string, error)
	Set(key, value string) error
	Delete(key string) error

	Init() error
	Close() error
}
