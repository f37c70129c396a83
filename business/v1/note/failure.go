package note

import (
	"context"
	"errors"
	"fmt"

	"github.com/sethvargo/go-retry"
)

// storeFailure logs the persistence error with its context and hides it behind ErrStore
func (s *Service) storeFailure(op string, err error, keysAndValues ...any) error {
	s.log.Errorw(op, append(keysAndValues, "ERROR", err)...)
	return fmt.Errorf("%w: %s: %v", ErrStore, op, err)
}

// cached returns the snapshot of userID. Misses, backend errors and unreadable entries all report false.
func (s *Service) cached(ctx context.Context, userID uint64) ([]Note, bool) {
	key := keyOf(userID)
	data, found, err := s.cache.Get(ctx, key)
	if err != nil {
		s.log.Errorw("cache get", "key", key, "ERROR", err)
		return nil, false
	}
	if !found {
		return nil, false
	}

	notes, err := decode(data)
	if err != nil {
		s.log.Errorw("error parsing cached response", "key", key, "ERROR", err)
		s.invalidate(ctx, userID)
		return nil, false
	}
	return notes, true
}

func (s *Service) fill(ctx context.Context, userID uint64, notes []Note) {
	key := keyOf(userID)
	data, err := encode(notes)
	if err != nil {
		s.log.Errorw("error parsing data to cache", "key", key, "ERROR", err)
		return
	}
	if err := s.cache.Set(ctx, key, data, s.cfg.CacheTTL); err != nil {
		s.log.Errorw("cache set", "key", key, "ERROR", err)
	}
}

// invalidate drops the snapshots of users. It runs even when the request was cancelled after its
// store write, and retries with backoff before giving up with a log line.
func (s *Service) invalidate(ctx context.Context, users ...uint64) {
	keys := keysOf(users)
	if len(keys) == 0 {
		return
	}

	b := retry.WithMaxRetries(uint64(s.cfg.RetryAttempts), retry.NewExponential(s.cfg.RetryBackoff))
	err := retry.Do(context.WithoutCancel(ctx), b, func(ctx context.Context) error {
		if err := s.cache.Delete(ctx, keys...); err != nil {
			return retry.RetryableError(err)
		}
		return nil
	})
	if err != nil {
		s.log.Errorw("cache invalidation", "keys", keys, "ERROR", err)
	}
}

// patch replaces n inside the snapshots of users that have one, keeping their expiry.
// Any snapshot that cannot be patched, including one changed by a concurrent request, is invalidated instead.
func (s *Service) patch(ctx context.Context, n Note, users ...uint64) {
	ctx = context.WithoutCancel(ctx)
	for _, u := range unique(users) {
		if !s.patchOne(ctx, n, u) {
			s.invalidate(ctx, u)
		}
	}
}

func (s *Service) patchOne(ctx context.Context, n Note, userID uint64) bool {
	key := keyOf(userID)
	_, err := s.cache.Patch(ctx, key, func(data []byte) ([]byte, error) {
		notes, err := decode(data)
		if err != nil {
			return nil, fmt.Errorf("error parsing cached response: %w", err)
		}
		if !replace(notes, n) {
			return nil, errNotCached
		}
		return encode(notes)
	})
	switch {
	case errors.Is(err, errNotCached):
		return false
	case err != nil:
		s.log.Errorw("cache patch", "key", key, "ERROR", err)
		return false
	}
	return true
}
