package llm

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// BudgetStore is the slice of the redis API the budget needs. *redis.Client
// satisfies it; tests substitute a map-backed fake.
type BudgetStore interface {
	IncrBy(ctx context.Context, key string, value int64) *redis.IntCmd
	Expire(ctx context.Context, key string, expiration time.Duration) *redis.BoolCmd
	Get(ctx context.Context, key string) *redis.StringCmd
}

// Budget caps estimated chat tokens per user per day. Counters live in
// redis under a date-suffixed key that expires after 48h.
type Budget struct {
	rdb   BudgetStore
	daily int64
	now   func() time.Time
}

func NewBudget(rdb BudgetStore, dailyTokens int64) *Budget {
	return &Budget{
		rdb:   rdb,
		daily: dailyTokens,
		now:   time.Now,
	}
}

func (b *Budget) key(userID string) string {
	return fmt.Sprintf("chat_budget:%s:%s", userID, b.now().UTC().Format("2006-01-02"))
}

// Allow records the estimated spend and reports whether the user is still
// within today's budget. The estimate is charged before the call; a failed
// call keeps the charge, which errs on the conservative side.
func (b *Budget) Allow(ctx context.Context, userID string, estTokens int64) (bool, error) {
	key := b.key(userID)

	total, err := b.rdb.IncrBy(ctx, key, estTokens).Result()
	if err != nil {
		return false, fmt.Errorf("increment chat budget: %w", err)
	}
	// Expiry only matters on the first increment of the day; setting it
	// every time is harmless.
	if err := b.rdb.Expire(ctx, key, 48*time.Hour).Err(); err != nil {
		return false, fmt.Errorf("expire chat budget key: %w", err)
	}

	return total <= b.daily, nil
}

// Remaining reports the unspent portion of today's budget.
func (b *Budget) Remaining(ctx context.Context, userID string) (int64, error) {
	spent, err := b.rdb.Get(ctx, b.key(userID)).Int64()
	if err != nil && err != redis.Nil {
		return 0, fmt.Errorf("read chat budget: %w", err)
	}
	if remaining := b.daily - spent; remaining > 0 {
		return remaining, nil
	}
	return 0, nil
}
