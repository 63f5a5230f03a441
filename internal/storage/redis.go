package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStorage shares preferences between machines through a Redis hash.
type RedisStorage struct {
	addr    string
	db      int
	hash    string
	timeout time.Duration
	client  *redis.Client
}

func NewRedisStorage(addr string, db int, hash string) *RedisStorage {
	if hash == "" {
		hash = "chatwidget:preferences"
	}
	return &RedisStorage{
		addr:    addr,
		db:      db,
		hash:    hash,
		timeout: 3 * time.Second,
	}
}

func (r *RedisStorage) Init() error {
	r.client = redis.NewClient(&redis.Options{Addr: r.addr, DB: r.db})

	ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
	defer cancel()

	if err := r.client.Ping(ctx).Err(); err != nil {
		_ = r.client.Close()
		r.client = nil
		return fmt.Errorf("%w: %v", ErrStorageInit, err)
	}

	return nil
}

func (r *RedisStorage) Get(key string) (string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
	defer cancel()

	value, err := r.client.HGet(ctx, r.hash, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrKeyNotFound
	}
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrBackend, err)
	}

	return value, nil
}

func (r *RedisStorage) Set(key, value string) error {
	ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
	defer cancel()

	if err := r.client.HSet(ctx, r.hash, key, value).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrBackend, err)
	}

	return nil
}

func (r *RedisStorage) Delete(key string) error {
	ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
	defer cancel()

	if err := r.client.HDel(ctx, r.hash, key).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrBackend, err)
	}

	return nil
}

func (r *RedisStorage) Close() error {
	if r.client == nil {
		return nil
	}
	return r.client.Close()
}
