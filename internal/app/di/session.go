package di

import (
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"account_backend/internal/feature/accounts/adapters"
	"account_backend/internal/feature/accounts/usecase"
	"account_backend/internal/platform/cache"
	"account_backend/internal/platform/session"
)

// NewSessionRepository creates a SessionRepository implementation.
// If Redis is available, it returns a Redis-backed implementation.
// Otherwise, it falls back to PostgreSQL.
func NewSessionRepository(rdb *redis.Client, db *gorm.DB) usecase.SessionRepository {
	if rdb != nil {
		return session.NewSessionRedis(rdb, "session")
	}
	return adapters.NewSessionPostgres(db)
}

// NewAccountRepository creates the AccountRepository, decorated with a Redis
// cache for the per-request reads the verification gate performs. The
// decorator degrades to pass-through when rdb is nil.
func NewAccountRepository(rdb *redis.Client, db *gorm.DB, ttl time.Duration) usecase.AccountRepository {
	return cache.NewCachingAccountRepository(rdb, ttl, adapters.NewAccountPostgres(db), "accounts")
}
