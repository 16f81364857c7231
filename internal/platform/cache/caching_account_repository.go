// Package cache provides caching implementations for repository interfaces.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"account_backend/internal/feature/accounts/domain/entity"
	"account_backend/internal/feature/accounts/usecase"
)

// CachingAccountRepository decorates an AccountRepository with Redis caching
// of FindByID reads. The verification gate hits FindByID on every gated
// request, so those reads are the ones worth caching. Writes go straight
// through to the inner repository and invalidate the cached entry, which
// keeps the monotonic verified flag from ever being observed stale for longer
// than a failed invalidation plus the TTL.
type CachingAccountRepository struct {
	inner     usecase.AccountRepository
	rdb       *redis.Client
	ttl       time.Duration
	namespace string
}

// Compile-time check to ensure the decorator satisfies the decorated interface.
var _ usecase.AccountRepository = (*CachingAccountRepository)(nil)

// NewCachingAccountRepository decorates an AccountRepository with Redis caching.
// If ttl is 0, it defaults to 1 minute. If namespace is empty, it uses "accounts".
func NewCachingAccountRepository(rdb *redis.Client, ttl time.Duration, inner usecase.AccountRepository, namespace string) *CachingAccountRepository {
	if ttl <= 0 {
		ttl = time.Minute
	}
	if namespace == "" {
		namespace = "accounts"
	}
	return &CachingAccountRepository{
		inner:     inner,
		rdb:       rdb,
		ttl:       ttl,
		namespace: namespace,
	}
}

// Create persists the account and pre-warms nothing; a fresh account has no
// cached entry to invalidate.
func (c *CachingAccountRepository) Create(ctx context.Context, a *entity.Account) error {
	return c.inner.Create(ctx, a)
}

// FindByID retrieves an account, checking cache first then falling back to the database.
func (c *CachingAccountRepository) FindByID(ctx context.Context, id uint) (*entity.Account, error) {
	// Bypass cache if Redis is not configured
	if c.rdb == nil {
		return c.inner.FindByID(ctx, id)
	}

	key := c.cacheKey(id)

	// 1) Check cache
	if b, err := c.rdb.Get(ctx, key).Bytes(); err == nil && len(b) > 0 {
		var out entity.Account
		if err := json.Unmarshal(b, &out); err == nil {
			return &out, nil
		}
		// Delete corrupted cache entry
		_ = c.rdb.Del(ctx, key).Err()
	}

	// 2) Fallback to database
	out, err := c.inner.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// 3) Store in cache (best effort)
	if b, err := json.Marshal(out); err == nil {
		_ = c.rdb.Set(ctx, key, b, c.ttl).Err()
	}

	return out, nil
}

// FindByEmail is not cached; it is only used on signup and login, both of
// which must observe the database directly.
func (c *CachingAccountRepository) FindByEmail(ctx context.Context, email string) (*entity.Account, error) {
	return c.inner.FindByEmail(ctx, email)
}

// MarkVerified performs the verified transition on the inner repository and
// invalidates the cached entry so the gate observes the new state.
func (c *CachingAccountRepository) MarkVerified(ctx context.Context, id uint, at time.Time) (bool, error) {
	updated, err := c.inner.MarkVerified(ctx, id, at)
	if err != nil {
		return false, err
	}
	if c.rdb != nil {
		_ = c.rdb.Del(ctx, c.cacheKey(id)).Err() // Best effort: don't fail if cache deletion fails
	}
	return updated, nil
}

// cacheKey generates the cache key for an account ID.
func (c *CachingAccountRepository) cacheKey(id uint) string {
	return fmt.Sprintf("%s:id:%d", c.namespace, id)
}
