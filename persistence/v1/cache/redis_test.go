package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/require"
)

func newRedis(t *testing.T) (*Redis, *miniredis.Miniredis) {
	t.Helper()
	s := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: s.Addr()})
	t.Cleanup(func() {
		_ = rdb.Close()
	})
	return NewRedis(rdb, time.Second), s
}

func TestGetSetDelete(t *testing.T) {
	r, s := newRedis(t)
	ctx := context.Background()

	_, found, err := r.Get(ctx, "user_1")
	require.NoError(t, err)
	require.False(t, found)

	require.NoError(t, r.Set(ctx, "user_1", []byte(`[]`), time.Minute))
	got, found, err := r.Get(ctx, "user_1")
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, `[]`, string(got))
	require.Equal(t, time.Minute, s.TTL("user_1"))

	require.NoError(t, r.Set(ctx, "user_2", []byte(`[]`), time.Minute))
	require.NoError(t, r.Delete(ctx, "user_1", "user_2", "user_3"))
	require.False(t, s.Exists("user_1"))
	require.False(t, s.Exists("user_2"))
	require.NoError(t, r.Delete(ctx))
}

func TestExpiry(t *testing.T) {
	r, s := newRedis(t)
	ctx := context.Background()

	require.NoError(t, r.Set(ctx, "user_1", []byte(`[]`), time.Minute))
	s.FastForward(2 * time.Minute)

	_, found, err := r.Get(ctx, "user_1")
	require.NoError(t, err)
	require.False(t, found)
}

func TestPatch(t *testing.T) {
	r, s := newRedis(t)
	ctx := context.Background()

	require.NoError(t, r.Set(ctx, "user_1", []byte(`[]`), time.Minute))
	s.FastForward(20 * time.Second)

	found, err := r.Patch(ctx, "user_1", func(value []byte) ([]byte, error) {
		require.Equal(t, `[]`, string(value))
		return []byte(`[{"id":1}]`), nil
	})
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, 40*time.Second, s.TTL("user_1"))
	got, err := s.Get("user_1")
	require.NoError(t, err)
	require.Equal(t, `[{"id":1}]`, got)
}

func TestPatch_MissingKey(t *testing.T) {
	r, s := newRedis(t)

	found, err := r.Patch(context.Background(), "user_1", func(value []byte) ([]byte, error) {
		t.Fatal("fn must not run for a missing key")
		return nil, nil
	})
	require.NoError(t, err)
	require.False(t, found)
	require.False(t, s.Exists("user_1"))
}

func TestPatch_DeletedMeanwhile(t *testing.T) {
	r, s := newRedis(t)
	ctx := context.Background()
	require.NoError(t, r.Set(ctx, "user_1", []byte(`[]`), time.Hour))

	_, err := r.Patch(ctx, "user_1", func(value []byte) ([]byte, error) {
		require.NoError(t, r.Delete(ctx, "user_1"))
		return []byte(`[{"id":1}]`), nil
	})
	require.ErrorIs(t, err, ErrConflict)
	require.False(t, s.Exists("user_1"))
}

func TestPatch_RefilledMeanwhile(t *testing.T) {
	r, s := newRedis(t)
	ctx := context.Background()
	require.NoError(t, r.Set(ctx, "user_1", []byte(`[]`), time.Hour))

	_, err := r.Patch(ctx, "user_1", func(value []byte) ([]byte, error) {
		require.NoError(t, r.Set(ctx, "user_1", []byte(`[{"id":2}]`), time.Hour))
		return []byte(`[{"id":1}]`), nil
	})
	require.ErrorIs(t, err, ErrConflict)
	got, err := s.Get("user_1")
	require.NoError(t, err)
	require.Equal(t, `[{"id":2}]`, got)
}

func TestDefaultTimeout(t *testing.T) {
	r := NewRedis(redis.NewClient(&redis.Options{Addr: "localhost:0"}), 0)
	require.Equal(t, DefaultOperationTimeout, r.timeout)
}

func TestBackendDown(t *testing.T) {
	r, s := newRedis(t)
	s.Close()
	ctx := context.Background()

	_, found, err := r.Get(ctx, "user_1")
	require.Error(t, err)
	require.False(t, found)
	require.Error(t, r.Set(ctx, "user_1", []byte(`[]`), time.Minute))
	require.Error(t, r.Delete(ctx, "user_1"))
	_, err = r.Patch(ctx, "user_1", func(value []byte) ([]byte, error) { return value, nil })
	require.Error(t, err)
	require.NotErrorIs(t, err, ErrConflict)
}
