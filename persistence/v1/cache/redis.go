// Package cache is the redis adapter the note service keeps its per user snapshots in.
package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// DefaultOperationTimeout bounds a single cache call when no timeout is configured
const DefaultOperationTimeout = 500 * time.Millisecond

// ErrConflict is returned by Patch when the key changed while it was being patched
var ErrConflict = errors.New("cache key changed during patch")

type Redis struct {
	client  *redis.Client
	timeout time.Duration
}

func NewRedis(client *redis.Client, operationTimeout time.Duration) *Redis {
	if operationTimeout <= 0 {
		operationTimeout = DefaultOperationTimeout
	}
	return &Redis{
		client:  client,
		timeout: operationTimeout,
	}
}

// Get returns the value under key, found is false on a miss
func (r *Redis) Get(ctx context.Context, key string) (value []byte, found bool, err error) {
	tcCtx, tcCancel := context.WithTimeout(ctx, r.timeout)
	defer tcCancel()

	value, err = r.client.Get(tcCtx, key).Bytes()
	switch {
	case errors.Is(err, redis.Nil):
		return nil, false, nil
	case err != nil:
		return nil, false, fmt.Errorf("failure to get %s from cache: %w", key, err)
	}
	return value, true, nil
}

func (r *Redis) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	tcCtx, tcCancel := context.WithTimeout(ctx, r.timeout)
	defer tcCancel()

	if err := r.client.Set(tcCtx, key, value, ttl).Err(); err != nil {
		return fmt.Errorf("failure to set %s into cache: %w", key, err)
	}
	return nil
}

func (r *Redis) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}

	tcCtx, tcCancel := context.WithTimeout(ctx, r.timeout)
	defer tcCancel()

	if err := r.client.Del(tcCtx, keys...).Err(); err != nil {
		return fmt.Errorf("failure to delete %v from cache: %w", keys, err)
	}
	return nil
}

// Patch rewrites the value under key with fn, keeping its remaining expiry. The read and the write run
// in a WATCH transaction: found is false when the key does not exist, and ErrConflict is returned when
// another client changed or deleted it in between. A missing key is never created.
func (r *Redis) Patch(ctx context.Context, key string, fn func(value []byte) ([]byte, error)) (found bool, err error) {
	tcCtx, tcCancel := context.WithTimeout(ctx, r.timeout)
	defer tcCancel()

	err = r.client.Watch(tcCtx, func(tx *redis.Tx) error {
		value, err := tx.Get(tcCtx, key).Bytes()
		if err != nil {
			return err
		}
		found = true

		patched, err := fn(value)
		if err != nil {
			return err
		}
		_, err = tx.TxPipelined(tcCtx, func(pipe redis.Pipeliner) error {
			pipe.SetArgs(tcCtx, key, patched, redis.SetArgs{Mode: "XX", KeepTTL: true})
			return nil
		})
		return err
	}, key)

	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, redis.Nil) && !found:
		return false, nil
	case errors.Is(err, redis.TxFailedErr), errors.Is(err, redis.Nil):
		return found, fmt.Errorf("failure to patch %s: %w", key, ErrConflict)
	default:
		return found, fmt.Errorf("failure to patch %s in cache: %w", key, err)
	}
}
