package middleware

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/Diary-workout-tracker/diary-workout-tracker-backend/pkg/logger"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"
)

// LimitStore answers whether another request is allowed for an identity
// within a fixed window. Implementations own their own eviction.
type LimitStore interface {
	Allow(ctx context.Context, key string, limit int, window time.Duration) (bool, error)
}

// RedisLimitStore counts requests per key with INCR and lets redis expire
// the window.
type RedisLimitStore struct {
	Client *redis.Client
}

func (s RedisLimitStore) Allow(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	count, err := s.Client.Incr(ctx, "rate_limit:"+key).Result()
	if err != nil {
		return false, err
	}
	if count == 1 {
		s.Client.Expire(ctx, "rate_limit:"+key, window)
	}
	return count <= int64(limit), nil
}

// LocalLimitStore is the in-process fallback: one token bucket per key,
// entries evicted after sitting idle for three windows.
type LocalLimitStore struct {
	mu      sync.Mutex
	entries map[string]*localLimitEntry
}

type localLimitEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

func NewLocalLimitStore() *LocalLimitStore {
	return &LocalLimitStore{entries: make(map[string]*localLimitEntry)}
}

func (s *LocalLimitStore) Allow(_ context.Context, key string, limit int, window time.Duration) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	for k, e := range s.entries {
		if now.Sub(e.lastSeen) > 3*window {
			delete(s.entries, k)
		}
	}

	e, ok := s.entries[key]
	if !ok {
		e = &localLimitEntry{
			limiter: rate.NewLimiter(rate.Limit(float64(limit)/window.Seconds()), limit),
		}
		s.entries[key] = e
	}
	e.lastSeen = now
	return e.limiter.Allow(), nil
}

// RateLimit limits by client identity: the authenticated user id when
// present, the client IP otherwise.
func RateLimit(store LimitStore, limit int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.ClientIP()
		if userID, ok := c.Get("userId"); ok {
			key = userID.(string)
		}

		allowed, err := store.Allow(c.Request.Context(), key, limit, window)
		if err != nil {
			// a broken limiter store must not take the API down
			logger.Warn().Err(err).Msg("Rate limit store unavailable")
			c.Next()
			return
		}
		if !allowed {
			logger.Warn().
				Str("key", key).
				Str("path", c.Request.URL.Path).
				Msg("Rate limit exceeded")
			c.JSON(http.StatusTooManyRequests, gin.H{
				"error": "Too many requests",
			})
			c.Abort()
			return
		}
		c.Next()
	}
}
