package stats

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeKV struct {
	data map[string]string
}

func newFakeKV() *fakeKV {
	return &fakeKV{data: make(map[string]string)}
}

func (f *fakeKV) Get(ctx context.Context, key string) *redis.StringCmd {
	v, ok := f.data[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(v, nil)
}

func (f *fakeKV) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd {
	f.data[key] = string(value.([]byte))
	return redis.NewStatusResult("OK", nil)
}

func (f *fakeKV) Del(ctx context.Context, keys ...string) *redis.IntCmd {
	var n int64
	for _, k := range keys {
		if _, ok := f.data[k]; ok {
			delete(f.data, k)
			n++
		}
	}
	return redis.NewIntResult(n, nil)
}

type fakeLoader struct {
	journalCalls    int
	meditationCalls int
	journal         JournalStats
	meditation      MeditationStats
}

func (f *fakeLoader) JournalStats(ctx context.Context, userID string) (JournalStats, error) {
	f.journalCalls++
	return f.journal, nil
}

func (f *fakeLoader) MeditationStats(ctx context.Context, userID string) (MeditationStats, error) {
	f.meditationCalls++
	return f.meditation, nil
}

func newTestCache(t *testing.T) (*Cache, *fakeLoader, *time.Time) {
	t.Helper()
	loader := &fakeLoader{
		journal:    JournalStats{TotalEntries: 3, AvgMood: 7.5},
		meditation: MeditationStats{Sessions: 2, TotalMinutes: 40},
	}
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	c := New(newFakeKV(), loader, zap.NewNop())
	c.now = func() time.Time { return now }
	return c, loader, &now
}

func TestGetLoadsOnceWithinStalenessWindow(t *testing.T) {
	c, loader, now := newTestCache(t)
	ctx := context.Background()

	snap, err := c.Get(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 3, snap.Journal.TotalEntries)
	assert.Equal(t, 40, snap.Meditation.TotalMinutes)
	assert.Equal(t, 1, loader.journalCalls)

	// Four minutes later the cached values are still fresh.
	*now = now.Add(4 * time.Minute)
	_, err = c.Get(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 1, loader.journalCalls)
	assert.Equal(t, 1, loader.meditationCalls)
}

func TestGetReloadsAfterStaleness(t *testing.T) {
	c, loader, now := newTestCache(t)
	ctx := context.Background()

	_, err := c.Get(ctx, "u1")
	require.NoError(t, err)

	*now = now.Add(6 * time.Minute)
	loader.journal.TotalEntries = 4

	snap, err := c.Get(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 4, snap.Journal.TotalEntries)
	assert.Equal(t, 2, loader.journalCalls)
}

func TestRefreshForceBypassesCache(t *testing.T) {
	c, loader, _ := newTestCache(t)
	ctx := context.Background()

	_, err := c.Get(ctx, "u1")
	require.NoError(t, err)

	loader.meditation.TotalMinutes = 55
	snap, err := c.Refresh(ctx, "u1", true)
	require.NoError(t, err)
	assert.Equal(t, 55, snap.Meditation.TotalMinutes)
	assert.Equal(t, 2, loader.meditationCalls)
}

func TestInvalidateForcesReload(t *testing.T) {
	c, loader, _ := newTestCache(t)
	ctx := context.Background()

	_, err := c.Get(ctx, "u1")
	require.NoError(t, err)
	require.NoError(t, c.Invalidate(ctx, "u1"))

	loader.journal.AvgMood = 9.1
	snap, err := c.Get(ctx, "u1")
	require.NoError(t, err)
	assert.InDelta(t, 9.1, snap.Journal.AvgMood, 0.001)
	assert.Equal(t, 2, loader.journalCalls)
}

func TestCacheIsPerUser(t *testing.T) {
	c, loader, _ := newTestCache(t)
	ctx := context.Background()

	_, err := c.Get(ctx, "u1")
	require.NoError(t, err)
	_, err = c.Get(ctx, "u2")
	require.NoError(t, err)
	assert.Equal(t, 2, loader.journalCalls)
}
