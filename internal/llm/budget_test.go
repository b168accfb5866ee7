package llm

import (
	"context"
	"strconv"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeBudgetStore struct {
	counters map[string]int64
}

func newFakeBudgetStore() *fakeBudgetStore {
	return &fakeBudgetStore{counters: make(map[string]int64)}
}

func (f *fakeBudgetStore) IncrBy(ctx context.Context, key string, value int64) *redis.IntCmd {
	f.counters[key] += value
	return redis.NewIntResult(f.counters[key], nil)
}

func (f *fakeBudgetStore) Expire(ctx context.Context, key string, expiration time.Duration) *redis.BoolCmd {
	return redis.NewBoolResult(true, nil)
}

func (f *fakeBudgetStore) Get(ctx context.Context, key string) *redis.StringCmd {
	v, ok := f.counters[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(strconv.FormatInt(v, 10), nil)
}

func TestBudgetAllow(t *testing.T) {
	store := newFakeBudgetStore()
	b := NewBudget(store, 100)

	ok, err := b.Allow(context.Background(), "u1", 60)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = b.Allow(context.Background(), "u1", 60)
	require.NoError(t, err)
	assert.False(t, ok, "second call puts u1 over the daily cap")

	// A different user has their own counter.
	ok, err = b.Allow(context.Background(), "u2", 60)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestBudgetRemaining(t *testing.T) {
	store := newFakeBudgetStore()
	b := NewBudget(store, 100)

	remaining, err := b.Remaining(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, int64(100), remaining)

	_, err = b.Allow(context.Background(), "u1", 30)
	require.NoError(t, err)

	remaining, err = b.Remaining(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, int64(70), remaining)

	_, err = b.Allow(context.Background(), "u1", 500)
	require.NoError(t, err)

	remaining, err = b.Remaining(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, int64(0), remaining, "overspend clamps to zero")
}
