package repository

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/redis/go-redis/v9"
)

type redisSlotRepository struct {
	client *redis.Client
	prefix string
}

// NewRedisSlotRepository creates a SlotRepository storing each slot as a
// plain redis string under "<prefix>:<key>"
func NewRedisSlotRepository(client *redis.Client, prefix string) SlotRepository {
	return &redisSlotRepository{client: client, prefix: prefix}
}

func (r *redisSlotRepository) redisKey(key string) string {
	if r.prefix == "" {
		return key
	}
	return r.prefix + ":" + key
}

func (r *redisSlotRepository) Get(ctx context.Context, key string) ([]byte, error) {
	value, err := r.client.Get(ctx, r.redisKey(key)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrSlotNotFound
		}
		return nil, fmt.Errorf("failed to get slot %q: %w", key, err)
	}
	return value, nil
}

func (r *redisSlotRepository) Put(ctx context.Context, key string, value []byte) error {
	if err := r.client.Set(ctx, r.redisKey(key), value, 0).Err(); err != nil {
		return fmt.Errorf("failed to put slot %q: %w", key, err)
	}
	return nil
}

func (r *redisSlotRepository) Delete(ctx context.Context, key string) error {
	removed, err := r.client.Del(ctx, r.redisKey(key)).Result()
	if err != nil {
		return fmt.Errorf("failed to delete slot %q: %w", key, err)
	}
	if removed == 0 {
		return ErrSlotNotFound
	}
	return nil
}

func (r *redisSlotRepository) Keys(ctx context.Context) ([]string, error) {
	pattern := "*"
	if r.prefix != "" {
		pattern = r.prefix + ":*"
	}

	keys := []string{}
	iter := r.client.Scan(ctx, 0, pattern, 100).Iterator()
	for iter.Next(ctx) {
		key := iter.Val()
		if r.prefix != "" {
			key = strings.TrimPrefix(key, r.prefix+":")
		}
		keys = append(keys, key)
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("failed to list slots: %w", err)
	}

	sort.Strings(keys)
	return keys, nil
}
