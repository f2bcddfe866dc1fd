package repository

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"
)

type redisKV struct {
	client *redis.Client
	prefix string
}

// NewRedisKV stores each document as a plain Redis string under prefix+key.
func NewRedisKV(client *redis.Client, prefix string) KVStore {
	return &redisKV{client: client, prefix: prefix}
}

func (r *redisKV) Get(ctx context.Context, key string) ([]byte, error) {
	value, err := r.client.Get(ctx, r.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrKeyNotFound
	}
	return value, err
}

func (r *redisKV) Set(ctx context.Context, key string, value []byte) error {
	return r.client.Set(ctx, r.prefix+key, value, 0).Err()
}

func (r *redisKV) Delete(ctx context.Context, key string) error {
	return r.client.Del(ctx, r.prefix+key).Err()
}
