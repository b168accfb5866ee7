// Package stats memoizes per-user wellness aggregates in redis so dashboard
// pages do not re-run the aggregate queries on every render. The cache is
// explicit: callers get a defined staleness window, a forceable Refresh, and
// an Invalidate hook the write paths call.
package stats

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// DefaultStaleness is how old a cached metric may be before a read
// triggers a refresh.
const DefaultStaleness = 5 * time.Minute

// Metric names. Each (userID, metric) pair maps to one cached entry.
const (
	MetricJournal    = "journal"
	MetricMeditation = "meditation"
)

type JournalStats struct {
	TotalEntries int     `json:"total_entries"`
	AvgMood      float64 `json:"avg_mood"`
}

type MeditationStats struct {
	Sessions     int `json:"sessions"`
	TotalMinutes int `json:"total_minutes"`
}

// Snapshot is the full cached view for one user.
type Snapshot struct {
	Journal    JournalStats    `json:"journal"`
	Meditation MeditationStats `json:"meditation"`
	FetchedAt  time.Time       `json:"last_updated"`
}

// Loader computes fresh aggregates from the wellness store.
type Loader interface {
	JournalStats(ctx context.Context, userID string) (JournalStats, error)
	MeditationStats(ctx context.Context, userID string) (MeditationStats, error)
}

// KV is the slice of the redis API the cache needs. *redis.Client
// satisfies it; tests substitute a map-backed fake.
type KV interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

type entry struct {
	Value     json.RawMessage `json:"value"`
	FetchedAt time.Time       `json:"fetched_at"`
}

type Cache struct {
	kv         KV
	loader     Loader
	staleAfter time.Duration
	now        func() time.Time
	logger     *zap.Logger
}

func New(kv KV, loader Loader, logger *zap.Logger) *Cache {
	return &Cache{
		kv:         kv,
		loader:     loader,
		staleAfter: DefaultStaleness,
		now:        time.Now,
		logger:     logger,
	}
}

func key(userID, metric string) string {
	return fmt.Sprintf("stats:%s:%s", userID, metric)
}

// Get returns the user's snapshot, refreshing any metric that is missing
// or older than the staleness window.
func (c *Cache) Get(ctx context.Context, userID string) (*Snapshot, error) {
	return c.Refresh(ctx, userID, false)
}

// Refresh rebuilds the snapshot. With force=false only missing or stale
// metrics hit the wellness store; with force=true everything is reloaded.
func (c *Cache) Refresh(ctx context.Context, userID string, force bool) (*Snapshot, error) {
	snap := &Snapshot{}

	jFetched, err := c.metric(ctx, userID, MetricJournal, force, &snap.Journal, func() (any, error) {
		return c.loader.JournalStats(ctx, userID)
	})
	if err != nil {
		return nil, err
	}

	mFetched, err := c.metric(ctx, userID, MetricMeditation, force, &snap.Meditation, func() (any, error) {
		return c.loader.MeditationStats(ctx, userID)
	})
	if err != nil {
		return nil, err
	}

	// The snapshot is as old as its oldest metric.
	snap.FetchedAt = jFetched
	if mFetched.Before(jFetched) {
		snap.FetchedAt = mFetched
	}
	return snap, nil
}

// Invalidate drops the user's cached metrics. Write paths (new journal
// entry, logged meditation) call this so the next read recomputes.
func (c *Cache) Invalidate(ctx context.Context, userID string) error {
	err := c.kv.Del(ctx, key(userID, MetricJournal), key(userID, MetricMeditation)).Err()
	if err != nil {
		return fmt.Errorf("invalidate stats for %s: %w", userID, err)
	}
	return nil
}

// metric loads one cached metric into dest, reloading through load when the
// entry is absent, stale, or force is set. Returns the entry's fetch time.
func (c *Cache) metric(ctx context.Context, userID, metric string, force bool, dest any, load func() (any, error)) (time.Time, error) {
	k := key(userID, metric)

	if !force {
		raw, err := c.kv.Get(ctx, k).Result()
		switch {
		case err == redis.Nil:
			// fall through to reload
		case err != nil:
			return time.Time{}, fmt.Errorf("read cached %s stats: %w", metric, err)
		default:
			var e entry
			if err := json.Unmarshal([]byte(raw), &e); err == nil &&
				c.now().Sub(e.FetchedAt) <= c.staleAfter {
				if err := json.Unmarshal(e.Value, dest); err == nil {
					return e.FetchedAt, nil
				}
			}
			// Corrupt or stale entries reload below.
		}
	}

	fresh, err := load()
	if err != nil {
		return time.Time{}, fmt.Errorf("load %s stats: %w", metric, err)
	}

	value, err := json.Marshal(fresh)
	if err != nil {
		return time.Time{}, fmt.Errorf("marshal %s stats: %w", metric, err)
	}
	fetchedAt := c.now()

	raw, err := json.Marshal(entry{Value: value, FetchedAt: fetchedAt})
	if err != nil {
		return time.Time{}, fmt.Errorf("marshal %s cache entry: %w", metric, err)
	}

	// TTL is a backstop well past the staleness window; staleness is
	// enforced on read.
	if err := c.kv.Set(ctx, k, raw, 4*c.staleAfter).Err(); err != nil {
		return time.Time{}, fmt.Errorf("store %s stats: %w", metric, err)
	}

	if err := json.Unmarshal(value, dest); err != nil {
		return time.Time{}, fmt.Errorf("decode %s stats: %w", metric, err)
	}
	return fetchedAt, nil
}
